package agenda_test

import (
	"context"
	"errors"
	"io"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-pickers/calendar"
	"github.com/tartampluch/go-pickers/internal/agenda"
	"github.com/tartampluch/go-pickers/internal/config"
)

// -----------------------------------------------------------------------------
// Mocks
// -----------------------------------------------------------------------------

// MockFetcher simulates the network layer for unit tests using `testify/mock`.
type MockFetcher struct {
	mock.Mock
}

// Fetch implements the agenda.Fetcher interface.
func (m *MockFetcher) Fetch(ctx context.Context, url, user, pass string) (io.ReadCloser, error) {
	args := m.Called(ctx, url, user, pass)
	if r := args.Get(0); r != nil {
		return r.(io.ReadCloser), args.Error(1)
	}
	return nil, args.Error(1)
}

// MockClock controls time for deterministic testing.
type MockClock struct {
	CurrentTime time.Time
}

func (m MockClock) Now() time.Time {
	return m.CurrentTime
}

func newLoader(fetcher agenda.Fetcher) *agenda.Loader {
	return &agenda.Loader{
		Clock:   MockClock{CurrentTime: time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)},
		Fetcher: fetcher,
	}
}

func writeTempFile(t *testing.T, pattern, content string) string {
	t.Helper()
	tmpFile, err := os.CreateTemp(t.TempDir(), pattern)
	require.NoError(t, err)
	_, err = tmpFile.WriteString(content)
	require.NoError(t, err)
	require.NoError(t, tmpFile.Close())
	return tmpFile.Name()
}

// -----------------------------------------------------------------------------
// Test Cases
// -----------------------------------------------------------------------------

func TestLoad_Local_VCard(t *testing.T) {
	// Scenario: A local vCard with one valid contact becomes a recurring entry.
	vcardContent := `BEGIN:VCARD
VERSION:4.0
FN:John Doe
BDAY:2000-01-01
END:VCARD`

	path := writeTempFile(t, "test_vcard_*.vcf", vcardContent)

	loader := newLoader(nil) // No fetcher needed for local mode
	entries, err := loader.Load(context.Background(), agenda.SourceConfig{
		Mode:      config.SourceModeLocal,
		LocalPath: path,
	})

	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "John Doe", entries[0].Summary)
	assert.Equal(t, calendar.Date{Year: 2000, Month: 1, Day: 1}, entries[0].Date)
	assert.True(t, entries[0].Recurring)
	assert.True(t, entries[0].YearKnown)
}

func TestLoad_Local_ICS(t *testing.T) {
	// Scenario: A minimal iCalendar feed with two one-off events.
	icsContent := "BEGIN:VCALENDAR\r\n" +
		"VERSION:2.0\r\n" +
		"PRODID:-//test//test//EN\r\n" +
		"BEGIN:VEVENT\r\n" +
		"UID:one@test\r\n" +
		"DTSTAMP:20250101T000000Z\r\n" +
		"DTSTART;VALUE=DATE:20250614\r\n" +
		"SUMMARY:Team offsite\r\n" +
		"END:VEVENT\r\n" +
		"BEGIN:VEVENT\r\n" +
		"UID:two@test\r\n" +
		"DTSTAMP:20250101T000000Z\r\n" +
		"DTSTART;VALUE=DATE:20251224\r\n" +
		"SUMMARY:Release freeze\r\n" +
		"END:VEVENT\r\n" +
		"END:VCALENDAR\r\n"

	path := writeTempFile(t, "test_feed_*.ics", icsContent)

	loader := newLoader(nil)
	entries, err := loader.Load(context.Background(), agenda.SourceConfig{
		Mode:      config.SourceModeLocal,
		LocalPath: path,
	})

	require.NoError(t, err)
	require.Len(t, entries, 2)

	byDate := make(map[calendar.Date]agenda.Entry)
	for _, e := range entries {
		byDate[e.Date] = e
	}

	offsite := byDate[calendar.Date{Year: 2025, Month: 6, Day: 14}]
	assert.Equal(t, "Team offsite", offsite.Summary)
	assert.False(t, offsite.Recurring, "iCal events are one-off dates")
}

func TestLoad_Web_TruncatedBirthday(t *testing.T) {
	// Scenario: A contact with a year-less --MM-DD birthday fetched over the web.
	vcardContent := "BEGIN:VCARD\nVERSION:3.0\nFN:Leap Baby\nBDAY:--02-29\nEND:VCARD"

	mockFetcher := new(MockFetcher)
	mockFetcher.On("Fetch", mock.Anything, "http://example.com/contacts.vcf", "", "").
		Return(io.NopCloser(strings.NewReader(vcardContent)), nil)

	loader := newLoader(mockFetcher)
	entries, err := loader.Load(context.Background(), agenda.SourceConfig{
		Mode:   config.SourceModeWeb,
		WebURL: "http://example.com/contacts.vcf",
	})

	require.NoError(t, err)
	require.Len(t, entries, 1)

	// Year-less dates land on the leap year fallback so Feb 29 survives.
	assert.Equal(t, config.DefaultLeapYear, entries[0].Date.Year)
	assert.Equal(t, 2, entries[0].Date.Month)
	assert.Equal(t, 29, entries[0].Date.Day)
	assert.False(t, entries[0].YearKnown)

	mockFetcher.AssertExpectations(t)
}

func TestLoad_Web_NetworkError(t *testing.T) {
	// Scenario: The fetcher returns a network error (e.g., DNS fail, 404).
	mockFetcher := new(MockFetcher)
	expectedErr := errors.New("network unreachable")

	mockFetcher.On("Fetch", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(nil, expectedErr)

	loader := newLoader(mockFetcher)
	entries, err := loader.Load(context.Background(), agenda.SourceConfig{
		Mode:   config.SourceModeWeb,
		WebURL: "http://bad-url.com/feed.ics",
	})

	assert.Error(t, err)
	assert.True(t, errors.Is(err, expectedErr) || strings.Contains(err.Error(), expectedErr.Error()))
	assert.Nil(t, entries)
}

func TestLoad_UnknownFormat(t *testing.T) {
	path := writeTempFile(t, "notes_*.txt", "not a feed")

	loader := newLoader(nil)
	_, err := loader.Load(context.Background(), agenda.SourceConfig{
		Mode:      config.SourceModeLocal,
		LocalPath: path,
	})

	assert.Error(t, err)
	assert.Contains(t, err.Error(), config.ErrFormatUnknown)
}

func TestLoad_ConfigErrors(t *testing.T) {
	tests := []struct {
		name    string
		cfg     agenda.SourceConfig
		wantErr string
	}{
		{"EmptyLocalPath", agenda.SourceConfig{Mode: config.SourceModeLocal}, config.ErrLocalPathEmpty},
		{"EmptyWebURL", agenda.SourceConfig{Mode: config.SourceModeWeb}, config.ErrWebURLEmpty},
		{"BadMode", agenda.SourceConfig{Mode: "carrier-pigeon"}, config.ErrModeUnsupport},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loader := newLoader(nil)
			_, err := loader.Load(context.Background(), tt.cfg)
			assert.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoad_DateFormats_TableDriven(t *testing.T) {
	// Comprehensive test for various date formats encountered in the wild.
	tests := []struct {
		name      string
		bdayValue string
		expectEnt bool
	}{
		{"ISO8601 Standard", "1990-10-25", true},
		{"Basic Format", "19901025", true},
		{"RFC3339", "1990-10-25T00:00:00Z", true},
		{"Truncated (Month-Day)", "--10-25", true},
		{"Truncated Basic", "--1025", true},
		{"Garbage Data", "not-a-date", false},
		{"Empty Date", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			content := "BEGIN:VCARD\nVERSION:3.0\nFN:Test\nBDAY:" + tt.bdayValue + "\nEND:VCARD"

			mockFetcher := new(MockFetcher)
			mockFetcher.On("Fetch", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
				Return(io.NopCloser(strings.NewReader(content)), nil)

			loader := newLoader(mockFetcher)
			entries, err := loader.Load(context.Background(), agenda.SourceConfig{
				Mode:   config.SourceModeWeb,
				WebURL: "http://x/feed.vcf",
			})

			require.NoError(t, err)
			if tt.expectEnt {
				assert.Len(t, entries, 1, "Valid date should produce an entry")
			} else {
				assert.Empty(t, entries, "Invalid date should be skipped silently")
			}
		})
	}
}

func TestLoad_ContextCancellation(t *testing.T) {
	// Scenario: User quits the app while a load is in flight.
	ctx, cancel := context.WithCancel(context.Background())

	path := writeTempFile(t, "cancel_test_*.vcf", "")
	cancel() // Cancel immediately before processing starts

	loader := newLoader(nil)
	_, err := loader.Load(ctx, agenda.SourceConfig{
		Mode:      config.SourceModeLocal,
		LocalPath: path,
	})

	assert.Error(t, err)
	assert.Equal(t, context.Canceled, err, "Should return context canceled error")
}

// -----------------------------------------------------------------------------
// Marker Set
// -----------------------------------------------------------------------------

func TestMarkerSet_Lookup(t *testing.T) {
	entries := []agenda.Entry{
		{Date: calendar.Date{Year: 2025, Month: 6, Day: 14}, YearKnown: true, Summary: "Team offsite"},
		{Date: calendar.Date{Year: 1990, Month: 6, Day: 14}, Recurring: true, YearKnown: true, Summary: "Alice"},
		{Date: calendar.Date{Year: 2000, Month: 12, Day: 24}, Recurring: true, Summary: "Bob"},
	}
	set := agenda.NewMarkerSet(entries)

	// Both the one-off event and the recurring birthday land on June 14 2025.
	day := calendar.Date{Year: 2025, Month: 6, Day: 14}
	assert.True(t, set.Has(day))
	on := set.On(day)
	require.Len(t, on, 2)
	assert.Equal(t, "Alice", on[0].Summary, "entries sorted by summary")
	assert.Equal(t, "Team offsite", on[1].Summary)

	// The one-off event does not repeat in other years.
	assert.False(t, set.Has(calendar.Date{Year: 2026, Month: 6, Day: 14}))

	// The birthday repeats, but never before the birth year.
	assert.True(t, set.Has(calendar.Date{Year: 2030, Month: 6, Day: 14}))
	assert.False(t, set.Has(calendar.Date{Year: 1980, Month: 6, Day: 14}))

	// Year-less birthdays match any year.
	assert.True(t, set.Has(calendar.Date{Year: 1980, Month: 12, Day: 24}))

	assert.False(t, set.Has(calendar.Date{Year: 2025, Month: 6, Day: 15}))
	assert.Empty(t, set.On(calendar.Date{Year: 2025, Month: 6, Day: 15}))
}

func TestEntry_Occurs(t *testing.T) {
	oneOff := agenda.Entry{Date: calendar.Date{Year: 2025, Month: 3, Day: 1}, YearKnown: true}
	assert.True(t, oneOff.Occurs(calendar.Date{Year: 2025, Month: 3, Day: 1}))
	assert.False(t, oneOff.Occurs(calendar.Date{Year: 2024, Month: 3, Day: 1}))

	birthday := agenda.Entry{Date: calendar.Date{Year: 2000, Month: 2, Day: 29}, Recurring: true, YearKnown: true}
	assert.True(t, birthday.Occurs(calendar.Date{Year: 2024, Month: 2, Day: 29}))
	assert.False(t, birthday.Occurs(calendar.Date{Year: 1996, Month: 2, Day: 29}), "before birth year")
}

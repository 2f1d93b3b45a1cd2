// Package agenda loads calendar entries from iCalendar or vCard sources so
// the date picker can mark days carrying events. vCard birthdays become
// yearly recurring entries; iCalendar events are one-off dates.
package agenda

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/emersion/go-ical"
	"github.com/emersion/go-vcard"
	"github.com/tartampluch/go-pickers/calendar"
	"github.com/tartampluch/go-pickers/internal/config"
)

// SourceConfig contains all parameters required to load an agenda source.
type SourceConfig struct {
	Mode      string // config.SourceModeLocal or config.SourceModeWeb
	LocalPath string // Absolute path to the .ics/.vcf file
	WebURL    string // HTTP(S) URL of the feed
	WebUser   string // HTTP Basic Auth Username
	WebPass   string // HTTP Basic Auth Password
}

// Loader is the service responsible for fetching and parsing agenda data.
type Loader struct {
	Clock   Clock   // Interface for time mocking.
	Fetcher Fetcher // Interface for network abstraction.
}

// Load executes the fetching and parsing pipeline and returns the entries.
func (l *Loader) Load(ctx context.Context, cfg SourceConfig) ([]Entry, error) {
	start := l.Clock.Now()
	log := slog.With(
		config.LogKeyComponent, config.CompAgenda,
		config.LogKeyMode, cfg.Mode,
	)
	log.InfoContext(ctx, config.MsgLoadStarted)

	reader, err := l.acquireStream(ctx, cfg)
	if err != nil {
		// If context error occurred during acquisition, return it directly.
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("%s: %w", config.ErrSourceLoad, err)
	}
	// Best effort close. Errors in Close() for read-only streams are rarely
	// actionable here.
	defer func() { _ = reader.Close() }()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var entries []Entry
	switch sourceFormat(cfg) {
	case config.ExtICS:
		entries, err = parseEvents(reader)
	case config.ExtVCF, config.ExtVCard:
		entries, err = parseBirthdays(ctx, reader)
	default:
		return nil, fmt.Errorf("%s: %q", config.ErrFormatUnknown, sourcePath(cfg))
	}
	if err != nil {
		return nil, err
	}

	log.Info(config.MsgLoadSuccess,
		config.LogKeyCount, len(entries),
		config.LogKeyDuration, l.Clock.Now().Sub(start).Milliseconds(),
	)
	return entries, nil
}

// acquireStream opens the appropriate data source based on configuration.
func (l *Loader) acquireStream(ctx context.Context, cfg SourceConfig) (io.ReadCloser, error) {
	switch cfg.Mode {
	case config.SourceModeLocal:
		if cfg.LocalPath == "" {
			return nil, errors.New(config.ErrLocalPathEmpty)
		}
		return os.Open(cfg.LocalPath)
	case config.SourceModeWeb:
		if cfg.WebURL == "" {
			return nil, errors.New(config.ErrWebURLEmpty)
		}
		if l.Fetcher == nil {
			return nil, errors.New(config.ErrFetcherMissing)
		}
		return l.Fetcher.Fetch(ctx, cfg.WebURL, cfg.WebUser, cfg.WebPass)
	default:
		return nil, fmt.Errorf("%s: %q", config.ErrModeUnsupport, cfg.Mode)
	}
}

func sourcePath(cfg SourceConfig) string {
	if cfg.Mode == config.SourceModeLocal {
		return cfg.LocalPath
	}
	return cfg.WebURL
}

// sourceFormat picks the parser from the source's file extension.
func sourceFormat(cfg SourceConfig) string {
	return strings.ToLower(filepath.Ext(sourcePath(cfg)))
}

// parseBirthdays reads a vCard stream and converts every BDAY into a yearly
// recurring entry. Malformed cards are skipped to maximize data recovery.
func parseBirthdays(ctx context.Context, r io.Reader) ([]Entry, error) {
	decoder := vcard.NewDecoder(r)
	var entries []Entry

	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		card, err := decoder.Decode()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			slog.Warn(config.MsgSkippedCard,
				config.LogKeyComponent, config.CompAgenda,
				config.LogKeyError, err)
			continue
		}

		bday := card.Get(config.VCardBDAY)
		if bday == nil || bday.Value == "" {
			continue
		}

		date, yearKnown, err := parseDate(bday.Value)
		if err != nil {
			slog.Debug(config.MsgSkippedDate,
				config.LogKeyComponent, config.CompAgenda,
				config.LogKeyValue, bday.Value)
			continue
		}

		// Name Strategy: FN (Formatted) > N (Structured) > Fallback
		name := config.FallbackName
		if fn := card.Get(config.VCardFN); fn != nil {
			name = fn.Value
		} else if n := card.Get(config.VCardN); n != nil {
			name = n.Value
		}

		entries = append(entries, Entry{
			Date:      date,
			Recurring: true,
			YearKnown: yearKnown,
			Summary:   name,
		})
	}
	return entries, nil
}

// parseEvents reads an iCalendar stream and converts every VEVENT with a
// parseable DTSTART into a one-off entry.
func parseEvents(r io.Reader) ([]Entry, error) {
	cal, err := ical.NewDecoder(r).Decode()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrICalParse, err)
	}

	var entries []Entry
	for _, event := range cal.Events() {
		dtStart := event.Props.Get(config.PropDTStart)
		if dtStart == nil || dtStart.Value == "" {
			continue
		}

		date, _, err := parseDate(dtStart.Value)
		if err != nil {
			slog.Warn(config.MsgSkippedEvent,
				config.LogKeyComponent, config.CompAgenda,
				config.LogKeyValue, dtStart.Value)
			continue
		}

		summary := ""
		if s := event.Props.Get(config.PropSummary); s != nil {
			summary = s.Value
		}

		entries = append(entries, Entry{
			Date:      date,
			YearKnown: true,
			Summary:   summary,
		})
	}
	return entries, nil
}

// parseDate handles the date formats found in vCard BDAY and iCal DTSTART
// values. Truncated --MM-DD dates fall back onto a leap year so February 29
// survives the conversion; the boolean reports whether the year was real.
func parseDate(value string) (calendar.Date, bool, error) {
	formatsWithYear := []string{
		config.DateFormatFullDash,
		config.DateFormatFullBasic,
		config.DateFormatRFC3339,
		config.DateFormatFullT,
	}

	for _, f := range formatsWithYear {
		if t, err := time.Parse(f, value); err == nil {
			return calendar.FromTime(t), true, nil
		}
	}

	formatsWithoutYear := []string{config.DateFormatNoYearD, config.DateFormatNoYearB}
	for _, f := range formatsWithoutYear {
		if t, err := time.Parse(f, value); err == nil {
			d := calendar.Date{
				Year:  config.DefaultLeapYear,
				Month: int(t.Month()),
				Day:   t.Day(),
			}
			return d, false, nil
		}
	}

	return calendar.Date{}, false, errors.New(config.ErrDateParse)
}

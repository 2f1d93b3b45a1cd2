package agenda

import (
	"sort"

	"github.com/tartampluch/go-pickers/calendar"
)

// Entry is a single agenda item ready for display.
type Entry struct {
	// Date is the parsed date. For recurring entries with an unknown year
	// it holds the leap year fallback.
	Date calendar.Date

	// Recurring marks entries that repeat every year (birthdays).
	Recurring bool

	// YearKnown indicates whether the source carried a real year or just
	// a truncated --MM-DD value.
	YearKnown bool

	// Summary is the display text: the contact name or the event summary.
	Summary string
}

// Occurs reports whether the entry falls on the given calendar day. A
// recurring entry matches the same month and day of any year, but never
// before the year it started when that year is known.
func (e Entry) Occurs(d calendar.Date) bool {
	if !e.Recurring {
		return e.Date == d
	}
	if e.Date.Month != d.Month || e.Date.Day != d.Day {
		return false
	}
	return !e.YearKnown || d.Year >= e.Date.Year
}

// monthDay indexes recurring entries independently of the year.
type monthDay struct {
	month, day int
}

// MarkerSet answers day-membership queries for a loaded entry list. It is
// immutable after construction and safe for concurrent reads.
type MarkerSet struct {
	exact     map[calendar.Date][]Entry
	recurring map[monthDay][]Entry
}

// NewMarkerSet indexes the given entries for per-day lookup.
func NewMarkerSet(entries []Entry) *MarkerSet {
	s := &MarkerSet{
		exact:     make(map[calendar.Date][]Entry),
		recurring: make(map[monthDay][]Entry),
	}
	for _, e := range entries {
		if e.Recurring {
			key := monthDay{e.Date.Month, e.Date.Day}
			s.recurring[key] = append(s.recurring[key], e)
		} else {
			s.exact[e.Date] = append(s.exact[e.Date], e)
		}
	}
	return s
}

// Has reports whether any entry occurs on the given day.
func (s *MarkerSet) Has(d calendar.Date) bool {
	if len(s.exact[d]) > 0 {
		return true
	}
	for _, e := range s.recurring[monthDay{d.Month, d.Day}] {
		if e.Occurs(d) {
			return true
		}
	}
	return false
}

// On returns the entries occurring on the given day, sorted by summary for
// stable display.
func (s *MarkerSet) On(d calendar.Date) []Entry {
	var out []Entry
	out = append(out, s.exact[d]...)
	for _, e := range s.recurring[monthDay{d.Month, d.Day}] {
		if e.Occurs(d) {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Summary < out[j].Summary })
	return out
}

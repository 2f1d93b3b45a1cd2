// Package calendar implements the pure date-grid model behind the date
// picker widget: mapping grid cells of a 7-column month view to calendar
// days, including the leading and trailing days of the adjacent months.
//
// All functions are stateless and safe for concurrent use; they only read
// their arguments and constant tables.
package calendar

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidDate is returned whenever a year, month, day or grid coordinate
// falls outside calendar validity.
var ErrInvalidDate = errors.New("calendar: invalid date")

// Supported year range. The proleptic Gregorian rules hold for any year, but
// the widgets have no use for era handling, so anything outside this range is
// rejected instead of silently extrapolated.
const (
	MinYear = 1
	MaxYear = 9999
)

// Columns is the fixed width of the month grid: one column per weekday.
const Columns = 7

// Membership tags a displayed day number with the month it belongs to,
// relative to the month being viewed.
type Membership int

const (
	PreviousMonth Membership = iota
	CurrentMonth
	NextMonth
)

// String returns a log-friendly name for the membership tag.
func (m Membership) String() string {
	switch m {
	case PreviousMonth:
		return "previous"
	case CurrentMonth:
		return "current"
	case NextMonth:
		return "next"
	default:
		return fmt.Sprintf("Membership(%d)", int(m))
	}
}

// CellContent is the resolved content of one grid cell: the day number to
// display and which month it belongs to.
type CellContent struct {
	Day        int
	Membership Membership
}

// Date is a validated (year, month, day) triple under the proleptic
// Gregorian calendar. The zero value is not a valid date; construct one
// through New or FromTime.
type Date struct {
	Year  int
	Month int // 1-12
	Day   int // 1-31
}

// New validates the triple and returns it as a Date.
func New(year, month, day int) (Date, error) {
	days, err := DaysInMonth(year, month)
	if err != nil {
		return Date{}, err
	}
	if day < 1 || day > days {
		return Date{}, fmt.Errorf("%w: day %d out of range for %d-%02d", ErrInvalidDate, day, year, month)
	}
	return Date{Year: year, Month: month, Day: day}, nil
}

// FromTime truncates a time.Time to its calendar date.
func FromTime(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: int(m), Day: d}
}

// Time returns the midnight instant of the date in the given location.
func (d Date) Time(loc *time.Location) time.Time {
	if loc == nil {
		loc = time.Local
	}
	return time.Date(d.Year, time.Month(d.Month), d.Day, 0, 0, 0, 0, loc)
}

// String formats the date as YYYY-MM-DD.
func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}

// weekdayLabels is the constant header row of the month grid. The week
// starts on Sunday; cell column 0 is always a Sunday.
var weekdayLabels = [Columns]string{"Su", "Mo", "Tu", "We", "Th", "Fr", "Sa"}

// WeekdayLabels returns the fixed, caller-independent weekday header row.
func WeekdayLabels() [Columns]string {
	return weekdayLabels
}

// IsLeapYear reports whether the year is a Gregorian leap year: divisible by
// four, except century years unless divisible by 400.
func IsLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

var monthLengths = [12]int{31, 28, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}

// DaysInMonth returns the number of days in the given month.
func DaysInMonth(year, month int) (int, error) {
	if err := validateMonth(year, month); err != nil {
		return 0, err
	}
	if month == 2 && IsLeapYear(year) {
		return 29, nil
	}
	return monthLengths[month-1], nil
}

// LeadingOffset returns the weekday index (0 = Sunday) of the first day of
// the month. It equals the number of leading cells in the grid that are
// filled with trailing days of the previous month.
func LeadingOffset(year, month int) (int, error) {
	if err := validateMonth(year, month); err != nil {
		return 0, err
	}
	first := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	return int(first.Weekday()), nil
}

// WeekRowCount returns the number of grid rows needed so that every day of
// the month is placed, given the month's leading offset.
func WeekRowCount(year, month int) (int, error) {
	offset, err := LeadingOffset(year, month)
	if err != nil {
		return 0, err
	}
	days, err := DaysInMonth(year, month)
	if err != nil {
		return 0, err
	}
	return (offset + days + Columns - 1) / Columns, nil
}

// ResolveCell determines which calendar day occupies the cell at (row,
// column) in the month view of year/month, and whether that day belongs to
// the previous, current or next month. Rows and columns are zero-based;
// column 0 is Sunday.
//
// Rollover across year boundaries is handled: the lead-in of January shows
// December of the previous year, and the tail of December shows January of
// the next year.
func ResolveCell(row, column, year, month int) (CellContent, error) {
	if row < 0 || column < 0 || column >= Columns {
		return CellContent{}, fmt.Errorf("%w: cell (%d,%d) outside %d-column grid", ErrInvalidDate, row, column, Columns)
	}
	offset, err := LeadingOffset(year, month)
	if err != nil {
		return CellContent{}, err
	}
	days, err := DaysInMonth(year, month)
	if err != nil {
		return CellContent{}, err
	}

	day := row*Columns + column - offset
	switch {
	case day < 0:
		prevYear, prevMonth := PreviousMonthOf(year, month)
		prevDays, err := DaysInMonth(prevYear, prevMonth)
		if err != nil {
			return CellContent{}, err
		}
		return CellContent{Day: prevDays + day + 1, Membership: PreviousMonth}, nil
	case day < days:
		return CellContent{Day: day + 1, Membership: CurrentMonth}, nil
	default:
		return CellContent{Day: day - days + 1, Membership: NextMonth}, nil
	}
}

// PreviousMonthOf returns the (year, month) pair preceding the given month,
// decrementing the year for January.
func PreviousMonthOf(year, month int) (int, int) {
	if month == 1 {
		return year - 1, 12
	}
	return year, month - 1
}

// NextMonthOf returns the (year, month) pair following the given month,
// incrementing the year for December.
func NextMonthOf(year, month int) (int, int) {
	if month == 12 {
		return year + 1, 1
	}
	return year, month + 1
}

func validateMonth(year, month int) error {
	if month < 1 || month > 12 {
		return fmt.Errorf("%w: month %d outside [1,12]", ErrInvalidDate, month)
	}
	if year < MinYear || year > MaxYear {
		return fmt.Errorf("%w: year %d outside [%d,%d]", ErrInvalidDate, year, MinYear, MaxYear)
	}
	return nil
}

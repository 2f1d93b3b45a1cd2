package datepicker

import (
	"testing"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-pickers/calendar"
)

func TestMonthGrid_CellDate(t *testing.T) {
	g := newMonthGrid(calendar.Date{Year: 2024, Month: 3, Day: 1}, nil)

	tests := []struct {
		name     string
		row, col int
		want     calendar.Date
		inMonth  bool
	}{
		{"LeadIn", 0, 0, calendar.Date{Year: 2024, Month: 2, Day: 25}, false},
		{"FirstOfMonth", 0, 5, calendar.Date{Year: 2024, Month: 3, Day: 1}, true},
		{"MidMonth", 2, 3, calendar.Date{Year: 2024, Month: 3, Day: 13}, true},
		{"LastOfMonth", 5, 0, calendar.Date{Year: 2024, Month: 3, Day: 31}, true},
		{"TrailOut", 5, 1, calendar.Date{Year: 2024, Month: 4, Day: 1}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cell, date, err := g.cellDate(tt.row, tt.col)
			require.NoError(t, err)
			assert.Equal(t, tt.want, date)
			assert.Equal(t, tt.inMonth, cell.Membership == calendar.CurrentMonth)
		})
	}
}

func TestMonthGrid_CellDateYearRollover(t *testing.T) {
	g := newMonthGrid(calendar.Date{Year: 2024, Month: 1, Day: 1}, nil)

	// January 2024 starts on a Monday; the first cell is December 31 2023.
	_, date, err := g.cellDate(0, 0)
	require.NoError(t, err)
	assert.Equal(t, calendar.Date{Year: 2023, Month: 12, Day: 31}, date)

	g.setMonth(2023, 12)
	rows := g.rows()
	_, date, err = g.cellDate(rows-1, 1)
	require.NoError(t, err)
	assert.Equal(t, calendar.Date{Year: 2024, Month: 1, Day: 1}, date)
}

func TestMonthGrid_Rows(t *testing.T) {
	g := newMonthGrid(calendar.Date{Year: 2015, Month: 2, Day: 1}, nil)
	assert.Equal(t, 4, g.rows(), "February 2015 packs into four rows")

	g.setMonth(2024, 3)
	assert.Equal(t, 6, g.rows())

	// Invalid state must not panic the renderer; it falls back to the max.
	g.month = 13
	assert.Equal(t, maxGridRows, g.rows())
}

func TestMonthGrid_TapPicksDate(t *testing.T) {
	_ = test.NewApp()

	var picked []calendar.Date
	g := newMonthGrid(calendar.Date{Year: 2024, Month: 3, Day: 15}, func(d calendar.Date) {
		picked = append(picked, d)
	})

	w := test.NewWindow(g)
	defer w.Close()
	w.Resize(fyne.NewSize(cellMinSize*calendar.Columns, cellMinSize*7))

	size := g.Size()
	cellW := size.Width / calendar.Columns
	cellH := size.Height / 7

	// The top row is the weekday header; tapping it picks nothing.
	test.TapAt(g, fyne.NewPos(cellW/2, cellH/2))
	assert.Empty(t, picked)

	// First day cell of March 2024 sits at row 0, column 5.
	test.TapAt(g, fyne.NewPos(5*cellW+cellW/2, cellH+cellH/2))
	require.Len(t, picked, 1)
	assert.Equal(t, calendar.Date{Year: 2024, Month: 3, Day: 1}, picked[0])

	// Lead-in cell resolves to the previous month.
	test.TapAt(g, fyne.NewPos(cellW/2, cellH+cellH/2))
	require.Len(t, picked, 2)
	assert.Equal(t, calendar.Date{Year: 2024, Month: 2, Day: 25}, picked[1])
}

func TestMonthGrid_Hover(t *testing.T) {
	_ = test.NewApp()

	g := newMonthGrid(calendar.Date{Year: 2024, Month: 3, Day: 15}, nil)
	w := test.NewWindow(g)
	defer w.Close()
	w.Resize(fyne.NewSize(cellMinSize*calendar.Columns, cellMinSize*7))

	size := g.Size()
	cellW := size.Width / calendar.Columns
	cellH := size.Height / 7

	assert.Equal(t, noHover, g.hovered)

	g.setHovered(g.cellAt(fyne.NewPos(cellW/2, cellH+cellH/2)))
	assert.Equal(t, 0, g.hovered)

	g.setHovered(g.cellAt(fyne.NewPos(-1, -1)))
	assert.Equal(t, noHover, g.hovered)
}

func TestMonthGrid_MarkerFunc(t *testing.T) {
	_ = test.NewApp()

	g := newMonthGrid(calendar.Date{Year: 2024, Month: 3, Day: 1}, nil)
	g.markerFunc = func(d calendar.Date) bool {
		return d == calendar.Date{Year: 2024, Month: 3, Day: 14}
	}

	w := test.NewWindow(g)
	defer w.Close()

	r := test.WidgetRenderer(g).(*monthGridRenderer)
	r.Refresh()

	marked := 0
	for _, dot := range r.dots {
		if dot.Visible() {
			marked++
		}
	}
	assert.Equal(t, 1, marked)
}

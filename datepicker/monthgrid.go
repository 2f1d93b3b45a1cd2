package datepicker

import (
	"fmt"
	"log/slog"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/tartampluch/go-pickers/calendar"
	"github.com/tartampluch/go-pickers/internal/config"
	"github.com/tartampluch/go-pickers/internal/l10n"
)

const (
	cellMinSize = 34
	dotRadius   = 2
	noHover     = -1
	maxGridRows = 6
	labelRowPad = 4
)

// monthGrid displays one month as a 7-column grid of day numbers, with a
// weekday header row on top. Days of the adjacent months filling the first
// and last rows are drawn attenuated. The grid itself is stateless about
// dates: every refresh re-resolves all cells from the calendar model.
type monthGrid struct {
	widget.BaseWidget

	year, month int
	selected    calendar.Date

	hovered int // linear cell index, noHover when the pointer is outside

	// onPicked receives the full date of a tapped cell, already adjusted
	// for previous/next month membership.
	onPicked func(calendar.Date)

	// markerFunc reports whether a day carries an agenda marker dot.
	markerFunc func(calendar.Date) bool
}

func newMonthGrid(selected calendar.Date, onPicked func(calendar.Date)) *monthGrid {
	g := &monthGrid{
		year:     selected.Year,
		month:    selected.Month,
		selected: selected,
		hovered:  noHover,
		onPicked: onPicked,
	}
	g.ExtendBaseWidget(g)
	return g
}

// setMonth changes the displayed month and re-resolves the grid.
func (g *monthGrid) setMonth(year, month int) {
	g.year = year
	g.month = month
	g.hovered = noHover
	g.Refresh()
}

// setSelected moves the selection highlight.
func (g *monthGrid) setSelected(d calendar.Date) {
	g.selected = d
	g.Refresh()
}

// rows returns the displayed week count, falling back to the maximum on
// invalid state so rendering never panics mid-frame.
func (g *monthGrid) rows() int {
	rows, err := calendar.WeekRowCount(g.year, g.month)
	if err != nil {
		slog.Warn(config.MsgSkippedDate,
			config.LogKeyComponent, config.CompDatePicker,
			config.LogKeyError, err,
		)
		return maxGridRows
	}
	return rows
}

// cellDate resolves the full date of a cell, mapping previous/next month
// membership onto the neighbouring (year, month) pair.
func (g *monthGrid) cellDate(row, col int) (calendar.CellContent, calendar.Date, error) {
	cell, err := calendar.ResolveCell(row, col, g.year, g.month)
	if err != nil {
		return calendar.CellContent{}, calendar.Date{}, err
	}

	y, m := g.year, g.month
	switch cell.Membership {
	case calendar.PreviousMonth:
		y, m = calendar.PreviousMonthOf(y, m)
	case calendar.NextMonth:
		y, m = calendar.NextMonthOf(y, m)
	}
	return cell, calendar.Date{Year: y, Month: m, Day: cell.Day}, nil
}

// Tapped implements fyne.Tappable: picking the day under the pointer.
func (g *monthGrid) Tapped(ev *fyne.PointEvent) {
	idx := g.cellAt(ev.Position)
	if idx < 0 {
		return
	}
	_, date, err := g.cellDate(idx/calendar.Columns, idx%calendar.Columns)
	if err != nil {
		return
	}
	if g.onPicked != nil {
		g.onPicked(date)
	}
}

// MouseIn implements desktop.Hoverable.
func (g *monthGrid) MouseIn(ev *desktop.MouseEvent) {
	g.setHovered(g.cellAt(ev.Position))
}

// MouseMoved implements desktop.Hoverable.
func (g *monthGrid) MouseMoved(ev *desktop.MouseEvent) {
	g.setHovered(g.cellAt(ev.Position))
}

// MouseOut implements desktop.Hoverable.
func (g *monthGrid) MouseOut() {
	g.setHovered(noHover)
}

func (g *monthGrid) setHovered(idx int) {
	if idx == g.hovered {
		return
	}
	g.hovered = idx
	g.Refresh()
}

// Cursor implements desktop.Cursorable.
func (g *monthGrid) Cursor() desktop.Cursor {
	return desktop.PointerCursor
}

// cellAt maps a pixel position to a linear day-cell index, or noHover when
// the position falls on the header row or outside the grid.
func (g *monthGrid) cellAt(pos fyne.Position) int {
	size := g.Size()
	rows := g.rows()
	if size.Width <= 0 || size.Height <= 0 {
		return noHover
	}

	cellW := size.Width / calendar.Columns
	cellH := size.Height / float32(rows+1) // +1 for the header row

	col := int(pos.X / cellW)
	row := int(pos.Y/cellH) - 1
	if col < 0 || col >= calendar.Columns || row < 0 || row >= rows {
		return noHover
	}
	return row*calendar.Columns + col
}

// CreateRenderer implements fyne.Widget.
func (g *monthGrid) CreateRenderer() fyne.WidgetRenderer {
	r := &monthGridRenderer{grid: g}

	for col := 0; col < calendar.Columns; col++ {
		label := canvas.NewText(l10n.WeekdayLabel(col), theme.Color(theme.ColorNameForeground))
		label.Alignment = fyne.TextAlignCenter
		label.TextStyle = fyne.TextStyle{Bold: true}
		r.labels = append(r.labels, label)
	}

	// The backing objects are allocated once for the largest possible grid;
	// rows beyond the current month's week count are hidden in Refresh.
	for i := 0; i < maxGridRows*calendar.Columns; i++ {
		bg := canvas.NewCircle(theme.Color(theme.ColorNameBackground))
		r.circles = append(r.circles, bg)

		num := canvas.NewText("", theme.Color(theme.ColorNameForeground))
		num.Alignment = fyne.TextAlignCenter
		r.numbers = append(r.numbers, num)

		dot := canvas.NewCircle(theme.Color(theme.ColorNamePrimary))
		dot.Hide()
		r.dots = append(r.dots, dot)
	}

	r.Refresh()
	return r
}

type monthGridRenderer struct {
	grid *monthGrid

	labels  []*canvas.Text
	circles []*canvas.Circle
	numbers []*canvas.Text
	dots    []*canvas.Circle
}

func (r *monthGridRenderer) MinSize() fyne.Size {
	return fyne.NewSize(
		cellMinSize*calendar.Columns,
		cellMinSize*float32(r.grid.rows()+1),
	)
}

func (r *monthGridRenderer) Layout(size fyne.Size) {
	rows := r.grid.rows()
	cellW := size.Width / calendar.Columns
	cellH := size.Height / float32(rows+1)

	for col, label := range r.labels {
		label.Resize(fyne.NewSize(cellW, cellH-labelRowPad))
		label.Move(fyne.NewPos(float32(col)*cellW, 0))
	}

	diameter := cellH
	if cellW < cellH {
		diameter = cellW
	}

	for i := range r.circles {
		row := i / calendar.Columns
		col := i % calendar.Columns
		x := float32(col) * cellW
		y := float32(row+1) * cellH

		r.circles[i].Resize(fyne.NewSize(diameter, diameter))
		r.circles[i].Move(fyne.NewPos(x+(cellW-diameter)/2, y+(cellH-diameter)/2))

		r.numbers[i].Resize(fyne.NewSize(cellW, cellH))
		r.numbers[i].Move(fyne.NewPos(x, y))

		r.dots[i].Resize(fyne.NewSize(dotRadius*2, dotRadius*2))
		r.dots[i].Move(fyne.NewPos(x+cellW/2-dotRadius, y+cellH-dotRadius*3))
	}
}

// Refresh re-resolves every cell from the calendar model and restyles it
// according to selection, hover and month membership.
func (r *monthGridRenderer) Refresh() {
	g := r.grid
	rows := g.rows()

	for col, label := range r.labels {
		label.Text = l10n.WeekdayLabel(col)
		label.Color = theme.Color(theme.ColorNameForeground)
		label.Refresh()
	}

	for i := range r.circles {
		row := i / calendar.Columns
		col := i % calendar.Columns

		if row >= rows {
			r.circles[i].Hide()
			r.numbers[i].Hide()
			r.dots[i].Hide()
			continue
		}

		cell, date, err := g.cellDate(row, col)
		if err != nil {
			r.circles[i].Hide()
			r.numbers[i].Hide()
			r.dots[i].Hide()
			continue
		}

		inMonth := cell.Membership == calendar.CurrentMonth
		selected := inMonth && date == g.selected
		hovered := i == g.hovered

		bg := r.circles[i]
		switch {
		case hovered:
			bg.FillColor = theme.Color(theme.ColorNameHover)
			bg.Show()
		case selected:
			bg.FillColor = theme.Color(theme.ColorNamePrimary)
			bg.Show()
		default:
			bg.Hide()
		}
		bg.Refresh()

		num := r.numbers[i]
		num.Text = fmt.Sprintf("%02d", cell.Day)
		switch {
		case selected && !hovered:
			num.Color = theme.Color(theme.ColorNameForegroundOnPrimary)
		case inMonth:
			num.Color = theme.Color(theme.ColorNameForeground)
		default:
			num.Color = theme.Color(theme.ColorNameDisabled)
		}
		num.Show()
		num.Refresh()

		dot := r.dots[i]
		if g.markerFunc != nil && g.markerFunc(date) {
			dot.FillColor = theme.Color(theme.ColorNamePrimary)
			dot.Show()
		} else {
			dot.Hide()
		}
		dot.Refresh()
	}

	r.Layout(g.Size())
}

func (r *monthGridRenderer) Objects() []fyne.CanvasObject {
	objects := make([]fyne.CanvasObject, 0, len(r.labels)+3*len(r.circles))
	for _, l := range r.labels {
		objects = append(objects, l)
	}
	for i := range r.circles {
		objects = append(objects, r.circles[i], r.numbers[i], r.dots[i])
	}
	return objects
}

func (r *monthGridRenderer) Destroy() {}

// Package datepicker provides a date input widget for Fyne. The widget is a
// button showing the selected date; tapping it opens a modal overlay with a
// month/year navigation header, a weekday header row and the month grid,
// backed by the pure calendar package for all date arithmetic.
package datepicker

import (
	"log/slog"
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/tartampluch/go-pickers/calendar"
	"github.com/tartampluch/go-pickers/internal/config"
	"github.com/tartampluch/go-pickers/internal/l10n"
)

// DatePicker is a button widget that opens a calendar overlay for picking a
// date.
type DatePicker struct {
	widget.BaseWidget

	// OnSubmit is called with the picked date when the OK button of the
	// overlay is pressed.
	OnSubmit func(calendar.Date)
	// OnCancel is called when the overlay is dismissed without picking.
	OnCancel func()
	// MarkerFunc, when set, marks days carrying agenda entries with a dot.
	MarkerFunc func(calendar.Date) bool

	selected calendar.Date
	hasValue bool

	button *widget.Button
	popup  *widget.PopUp
}

// New creates a DatePicker with no initial selection; the overlay opens on
// the given date's month.
func New(initial calendar.Date) *DatePicker {
	p := &DatePicker{selected: initial}
	p.ExtendBaseWidget(p)
	return p
}

// NewWithSelection creates a DatePicker that already holds a selected date.
func NewWithSelection(d calendar.Date) *DatePicker {
	p := New(d)
	p.hasValue = true
	return p
}

// Date returns the currently selected date. The boolean reports whether a
// date has been picked at all.
func (p *DatePicker) Date() (calendar.Date, bool) {
	return p.selected, p.hasValue
}

// SetDate replaces the selection and updates the button label.
func (p *DatePicker) SetDate(d calendar.Date) {
	p.selected = d
	p.hasValue = true
	if p.button != nil {
		p.button.SetText(p.displayText())
	}
}

func (p *DatePicker) displayText() string {
	if !p.hasValue {
		return l10n.T(config.TKeyBtnPickDate)
	}
	return p.selected.String()
}

// CreateRenderer implements fyne.Widget.
func (p *DatePicker) CreateRenderer() fyne.WidgetRenderer {
	p.button = widget.NewButton(p.displayText(), p.ShowPicker)
	return widget.NewSimpleRenderer(p.button)
}

// ShowPicker opens the calendar overlay on the canvas hosting the widget.
func (p *DatePicker) ShowPicker() {
	cv := fyne.CurrentApp().Driver().CanvasForObject(p)
	if cv == nil {
		return
	}

	panel := newPickerPanel(p.selected, p.MarkerFunc)
	content := container.NewVBox(
		panel.content,
		container.NewGridWithColumns(config.LayoutColumnsDouble,
			widget.NewButtonWithIcon(l10n.T(config.TKeyBtnCancel), theme.CancelIcon(), func() {
				p.dismiss()
				if p.OnCancel != nil {
					p.OnCancel()
				}
			}),
			newSubmitButton(func() {
				picked := panel.selected
				p.dismiss()
				p.SetDate(picked)
				slog.Debug(config.MsgDateSubmitted,
					config.LogKeyComponent, config.CompDatePicker,
					config.LogKeyDate, picked.String(),
				)
				if p.OnSubmit != nil {
					p.OnSubmit(picked)
				}
			}),
		),
	)

	p.popup = widget.NewModalPopUp(content, cv)
	p.popup.Show()
}

func (p *DatePicker) dismiss() {
	if p.popup != nil {
		p.popup.Hide()
		p.popup = nil
	}
}

func newSubmitButton(onTapped func()) *widget.Button {
	btn := widget.NewButtonWithIcon(l10n.T(config.TKeyBtnOK), theme.ConfirmIcon(), onTapped)
	btn.Importance = widget.HighImportance
	return btn
}

// pickerPanel is the overlay body: the navigation header plus the month
// grid. It tracks the viewed (year, month) separately from the selection so
// the user can browse without losing the picked day.
type pickerPanel struct {
	viewYear  int
	viewMonth int
	selected  calendar.Date

	monthLabel *widget.Label
	yearLabel  *widget.Label
	grid       *monthGrid

	content fyne.CanvasObject
}

func newPickerPanel(selected calendar.Date, markerFunc func(calendar.Date) bool) *pickerPanel {
	panel := &pickerPanel{
		viewYear:  selected.Year,
		viewMonth: selected.Month,
		selected:  selected,
	}

	panel.grid = newMonthGrid(selected, panel.pick)
	panel.grid.markerFunc = markerFunc

	panel.monthLabel = widget.NewLabel(l10n.MonthLabel(panel.viewMonth))
	panel.monthLabel.Alignment = fyne.TextAlignCenter
	panel.yearLabel = widget.NewLabel(strconv.Itoa(panel.viewYear))
	panel.yearLabel.Alignment = fyne.TextAlignCenter

	monthRow := container.NewBorder(nil, nil,
		navButton(theme.NavigateBackIcon(), func() { panel.shiftMonth(-1) }),
		navButton(theme.NavigateNextIcon(), func() { panel.shiftMonth(1) }),
		panel.monthLabel,
	)
	yearRow := container.NewBorder(nil, nil,
		navButton(theme.NavigateBackIcon(), func() { panel.shiftYear(-1) }),
		navButton(theme.NavigateNextIcon(), func() { panel.shiftYear(1) }),
		panel.yearLabel,
	)

	panel.content = container.NewVBox(
		container.NewGridWithColumns(config.LayoutColumnsDouble, monthRow, yearRow),
		panel.grid,
	)
	return panel
}

func navButton(icon fyne.Resource, onTapped func()) *widget.Button {
	btn := widget.NewButtonWithIcon("", icon, onTapped)
	btn.Importance = widget.LowImportance
	return btn
}

// pick handles a tapped day cell. Picking a day of an adjacent month
// re-targets the view onto that month.
func (panel *pickerPanel) pick(d calendar.Date) {
	panel.selected = d
	if d.Year != panel.viewYear || d.Month != panel.viewMonth {
		panel.setView(d.Year, d.Month)
	}
	panel.grid.setSelected(d)
}

func (panel *pickerPanel) shiftMonth(delta int) {
	y, m := panel.viewYear, panel.viewMonth
	if delta < 0 {
		y, m = calendar.PreviousMonthOf(y, m)
	} else {
		y, m = calendar.NextMonthOf(y, m)
	}
	panel.setView(y, m)
}

func (panel *pickerPanel) shiftYear(delta int) {
	panel.setView(panel.viewYear+delta, panel.viewMonth)
}

func (panel *pickerPanel) setView(year, month int) {
	if year < calendar.MinYear {
		year = calendar.MinYear
	}
	if year > calendar.MaxYear {
		year = calendar.MaxYear
	}
	panel.viewYear = year
	panel.viewMonth = month

	panel.monthLabel.SetText(l10n.MonthLabel(month))
	panel.yearLabel.SetText(strconv.Itoa(year))
	panel.grid.setMonth(year, month)
}

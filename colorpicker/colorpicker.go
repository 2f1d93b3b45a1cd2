// Package colorpicker provides a color input widget for Fyne. The widget
// itself is a tappable swatch; picking happens in a modal overlay combining
// a saturation/value area, a hue slider, RGBA sliders and a hex entry.
package colorpicker

import (
	"image/color"
	"log/slog"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/tartampluch/go-pickers/internal/config"
	"github.com/tartampluch/go-pickers/internal/l10n"
)

const (
	swatchSize    = 24
	svAreaSize    = 180
	previewHeight = 24
	markerRadius  = 6
)

// ColorPicker is a swatch button that opens a color picking overlay.
type ColorPicker struct {
	widget.BaseWidget

	// OnSubmit is called with the picked color when the OK button of the
	// overlay is pressed.
	OnSubmit func(color.NRGBA)
	// OnCancel is called when the overlay is dismissed without picking.
	OnCancel func()

	current color.NRGBA
	swatch  *canvas.Rectangle
	label   *widget.Label
	popup   *widget.PopUp
}

// New creates a ColorPicker starting at the given color.
func New(initial color.NRGBA) *ColorPicker {
	p := &ColorPicker{current: initial}
	p.ExtendBaseWidget(p)
	return p
}

// Color returns the currently held color.
func (p *ColorPicker) Color() color.NRGBA {
	return p.current
}

// SetColor replaces the held color and refreshes the swatch.
func (p *ColorPicker) SetColor(c color.NRGBA) {
	p.current = c
	if p.swatch != nil {
		p.swatch.FillColor = c
		p.swatch.Refresh()
	}
	if p.label != nil {
		p.label.SetText(FormatHex(c))
	}
}

// CreateRenderer implements fyne.Widget.
func (p *ColorPicker) CreateRenderer() fyne.WidgetRenderer {
	p.swatch = canvas.NewRectangle(p.current)
	p.swatch.SetMinSize(fyne.NewSize(swatchSize, swatchSize))
	p.swatch.CornerRadius = theme.InputRadiusSize()
	p.label = widget.NewLabel(FormatHex(p.current))
	return widget.NewSimpleRenderer(container.NewHBox(p.swatch, p.label))
}

// Tapped opens the picking overlay.
func (p *ColorPicker) Tapped(*fyne.PointEvent) {
	p.ShowPicker()
}

// Cursor implements desktop.Cursorable.
func (p *ColorPicker) Cursor() desktop.Cursor {
	return desktop.PointerCursor
}

// ShowPicker opens the modal overlay on the canvas hosting the widget.
func (p *ColorPicker) ShowPicker() {
	cv := fyne.CurrentApp().Driver().CanvasForObject(p)
	if cv == nil {
		return
	}

	panel := newPickerPanel(p.current)
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
				picked := panel.current()
				p.dismiss()
				p.SetColor(picked)
				slog.Debug(config.MsgColorSubmitted,
					config.LogKeyComponent, config.CompColorPicker,
					config.LogKeyColor, FormatHex(picked),
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

func (p *ColorPicker) dismiss() {
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

// pickerPanel holds the overlay controls and keeps them in sync. All
// controls edit the same color; the updating flag breaks feedback loops
// between them.
type pickerPanel struct {
	color    color.NRGBA
	updating bool

	sv      *svArea
	hue     *widget.Slider
	r, g, b *widget.Slider
	a       *widget.Slider
	hex     *HexEntry
	preview *canvas.Rectangle

	content fyne.CanvasObject
}

func newPickerPanel(initial color.NRGBA) *pickerPanel {
	panel := &pickerPanel{color: initial}

	panel.sv = newSVArea(func(s, v float64) {
		if panel.updating {
			return
		}
		h := panel.hue.Value
		panel.setColor(HSVToRGB(h, s, v, panel.color.A), false)
	})

	panel.hue = widget.NewSlider(0, 359)
	panel.hue.Step = 1
	panel.hue.OnChanged = func(h float64) {
		if panel.updating {
			return
		}
		panel.setColor(HSVToRGB(h, panel.sv.sat, panel.sv.val, panel.color.A), false)
	}

	channel := func(apply func(c color.NRGBA, v uint8) color.NRGBA) *widget.Slider {
		s := widget.NewSlider(0, 255)
		s.Step = 1
		s.OnChanged = func(v float64) {
			if panel.updating {
				return
			}
			panel.setColor(apply(panel.color, uint8(v)), true)
		}
		return s
	}
	panel.r = channel(func(c color.NRGBA, v uint8) color.NRGBA { c.R = v; return c })
	panel.g = channel(func(c color.NRGBA, v uint8) color.NRGBA { c.G = v; return c })
	panel.b = channel(func(c color.NRGBA, v uint8) color.NRGBA { c.B = v; return c })
	panel.a = channel(func(c color.NRGBA, v uint8) color.NRGBA { c.A = v; return c })

	panel.hex = NewHexEntry()
	panel.hex.OnSubmitted = func(s string) {
		if c, err := ParseHex(s); err == nil {
			panel.setColor(c, true)
		}
	}

	panel.preview = canvas.NewRectangle(initial)
	panel.preview.SetMinSize(fyne.NewSize(svAreaSize, previewHeight))
	panel.preview.CornerRadius = theme.InputRadiusSize()

	sliders := widget.NewForm(
		widget.NewFormItem(l10n.T(config.TKeyLblHue), panel.hue),
		widget.NewFormItem(l10n.T(config.TKeyLblRed), panel.r),
		widget.NewFormItem(l10n.T(config.TKeyLblGreen), panel.g),
		widget.NewFormItem(l10n.T(config.TKeyLblBlue), panel.b),
		widget.NewFormItem(l10n.T(config.TKeyLblAlpha), panel.a),
		widget.NewFormItem(l10n.T(config.TKeyLblHex), panel.hex),
	)

	panel.content = container.NewVBox(panel.sv, sliders, panel.preview)
	panel.setColor(initial, true)
	return panel
}

func (p *pickerPanel) current() color.NRGBA {
	return p.color
}

// setColor is the single write path for the panel state. syncHue controls
// whether the hue slider and SV area follow the change; edits originating
// from them keep their own positions to avoid hue collapsing on grey colors.
func (p *pickerPanel) setColor(c color.NRGBA, syncHue bool) {
	p.color = c
	p.updating = true
	defer func() { p.updating = false }()

	if syncHue {
		h, s, v := RGBToHSV(c)
		p.hue.SetValue(h)
		p.sv.setHSV(h, s, v)
	} else {
		p.sv.setHue(p.hue.Value)
	}

	p.r.SetValue(float64(c.R))
	p.g.SetValue(float64(c.G))
	p.b.SetValue(float64(c.B))
	p.a.SetValue(float64(c.A))
	p.hex.SetText(FormatHex(c))

	p.preview.FillColor = c
	p.preview.Refresh()
}

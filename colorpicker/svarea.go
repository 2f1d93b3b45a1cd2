package colorpicker

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"
)

// svArea is the saturation/value plane of the picker overlay: saturation
// grows left to right, value top to bottom (inverted), at a fixed hue.
type svArea struct {
	widget.BaseWidget

	hue      float64
	sat, val float64

	onChanged func(s, v float64)
}

func newSVArea(onChanged func(s, v float64)) *svArea {
	a := &svArea{val: 1, onChanged: onChanged}
	a.ExtendBaseWidget(a)
	return a
}

// setHSV repositions the marker and repaints the plane for a new hue.
func (a *svArea) setHSV(h, s, v float64) {
	a.hue = h
	a.sat = clamp01(s)
	a.val = clamp01(v)
	a.Refresh()
}

// setHue repaints the plane keeping the marker in place.
func (a *svArea) setHue(h float64) {
	a.hue = h
	a.Refresh()
}

// Tapped implements fyne.Tappable.
func (a *svArea) Tapped(ev *fyne.PointEvent) {
	a.pick(ev.Position)
}

// Dragged implements fyne.Draggable so the marker follows the pointer.
func (a *svArea) Dragged(ev *fyne.DragEvent) {
	a.pick(ev.Position)
}

// DragEnd implements fyne.Draggable.
func (a *svArea) DragEnd() {}

// Cursor implements desktop.Cursorable.
func (a *svArea) Cursor() desktop.Cursor {
	return desktop.PointerCursor
}

func (a *svArea) pick(pos fyne.Position) {
	size := a.Size()
	if size.Width <= 0 || size.Height <= 0 {
		return
	}
	a.sat = clamp01(float64(pos.X) / float64(size.Width))
	a.val = clamp01(1 - float64(pos.Y)/float64(size.Height))
	a.Refresh()
	if a.onChanged != nil {
		a.onChanged(a.sat, a.val)
	}
}

// CreateRenderer implements fyne.Widget.
func (a *svArea) CreateRenderer() fyne.WidgetRenderer {
	r := &svAreaRenderer{area: a}
	r.raster = canvas.NewRasterWithPixels(func(x, y, w, h int) color.Color {
		if w <= 1 || h <= 1 {
			return color.Black
		}
		s := float64(x) / float64(w-1)
		v := 1 - float64(y)/float64(h-1)
		return HSVToRGB(a.hue, s, v, 0xff)
	})
	r.marker = canvas.NewCircle(color.Transparent)
	r.marker.StrokeColor = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	r.marker.StrokeWidth = 2
	return r
}

type svAreaRenderer struct {
	area   *svArea
	raster *canvas.Raster
	marker *canvas.Circle
}

func (r *svAreaRenderer) MinSize() fyne.Size {
	return fyne.NewSize(svAreaSize, svAreaSize)
}

func (r *svAreaRenderer) Layout(size fyne.Size) {
	r.raster.Resize(size)
	r.placeMarker(size)
}

func (r *svAreaRenderer) placeMarker(size fyne.Size) {
	x := float32(r.area.sat) * size.Width
	y := float32(1-r.area.val) * size.Height
	r.marker.Resize(fyne.NewSize(markerRadius*2, markerRadius*2))
	r.marker.Move(fyne.NewPos(x-markerRadius, y-markerRadius))
}

func (r *svAreaRenderer) Refresh() {
	r.placeMarker(r.area.Size())
	canvas.Refresh(r.raster)
	canvas.Refresh(r.marker)
}

func (r *svAreaRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.raster, r.marker}
}

func (r *svAreaRenderer) Destroy() {}

package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"

	"StrokeBoard/internal/state"
)

// pixelsPerUnit is the screen size of one canvas unit at zoom 1.
const pixelsPerUnit = 100

// viewport maps between screen pixels and canvas units.
type viewport struct {
	panX, panY float32
	scale      float32
}

func (v *viewport) project(raw state.Point) state.Point {
	return state.Point{
		X: (raw.X - v.panX) / v.scale,
		Y: (raw.Y - v.panY) / v.scale,
	}
}

func (v *viewport) toScreen(p state.Point) fyne.Position {
	return fyne.NewPos(p.X*v.scale+v.panX, p.Y*v.scale+v.panY)
}

// polyline draws a point list as connected canvas.Line segments. It is the
// render target of one pooled stroke buffer, and also draws remote strokes.
type polyline struct {
	view   *viewport
	box    *fyne.Container
	points []state.Point
	color  color.Color
	width  float32
}

func newPolyline(view *viewport, c color.Color, width float32) *polyline {
	l := &polyline{view: view, box: container.NewWithoutLayout(), color: c, width: width}
	l.box.Hide()
	return l
}

func (l *polyline) SetVisible(visible bool) {
	if visible {
		l.box.Show()
	} else {
		l.box.Hide()
	}
}

func (l *polyline) SetPoints(points []state.Point) {
	l.points = points
	l.layout()
}

// layout positions one segment per consecutive point pair, reusing the
// segments already in the container.
func (l *polyline) layout() {
	want := len(l.points) - 1
	if want < 0 {
		want = 0
	}
	objects := l.box.Objects
	for len(objects) < want {
		seg := canvas.NewLine(l.color)
		seg.StrokeWidth = l.width
		objects = append(objects, seg)
	}
	objects = objects[:want]
	for i, obj := range objects {
		seg := obj.(*canvas.Line)
		seg.Position1 = l.view.toScreen(l.points[i])
		seg.Position2 = l.view.toScreen(l.points[i+1])
	}
	l.box.Objects = objects
	l.box.Refresh()
}

func (l *polyline) segments() int { return len(l.box.Objects) }

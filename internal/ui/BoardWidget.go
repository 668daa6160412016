package ui

import (
	"image/color"
	"log"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"

	"StrokeBoard/internal/capture"
	"StrokeBoard/internal/state"
)

var (
	localColor  color.Color = color.Black
	remoteColor color.Color = color.NRGBA{R: 30, G: 90, B: 200, A: 255}
)

const strokeWidth = 3

// BoardWidget is the drawing surface. Pointer input goes to a
// StrokeCapture whose pooled buffers render as polylines; strokes from
// peers render underneath in their own layer.
type BoardWidget struct {
	widget.BaseWidget

	Capture *capture.StrokeCapture
	Remote  *state.RemoteStrokes

	// OnStroke is called with every stroke committed on this board.
	OnStroke func(s state.Stroke)
	// OnClear is called after the local strokes were cleared.
	OnClear func()

	seq        *state.Sequencer
	view       *viewport
	lines      []*polyline
	remote     []*polyline
	remoteBox  *fyne.Container
	content    *fyne.Container
	background *canvas.Rectangle
	statusBar  *widget.Label
}

var _ fyne.Widget = (*BoardWidget)(nil)
var _ fyne.Draggable = (*BoardWidget)(nil)
var _ fyne.Scrollable = (*BoardWidget)(nil)
var _ desktop.Mouseable = (*BoardWidget)(nil)

func NewBoardWidget(cfg capture.Config, seq *state.Sequencer) *BoardWidget {
	b := &BoardWidget{
		Remote:     state.NewRemoteStrokes(),
		seq:        seq,
		view:       &viewport{scale: pixelsPerUnit},
		remoteBox:  container.NewWithoutLayout(),
		background: canvas.NewRectangle(color.White),
		statusBar:  widget.NewLabel("Ready"),
	}

	layers := []fyne.CanvasObject{b.remoteBox}
	var targets []state.LineRenderer
	for i := 0; i < cfg.PoolSize; i++ {
		l := newPolyline(b.view, localColor, strokeWidth)
		b.lines = append(b.lines, l)
		targets = append(targets, l)
		layers = append(layers, l.box)
	}
	b.content = container.NewStack(b.background, container.NewWithoutLayout(layers...))

	b.Capture = capture.New(cfg, capture.ProjectorFunc(b.view.project), targets)
	b.Capture.OnCommit = b.committed
	b.Capture.OnClear = func() {
		if b.OnClear != nil {
			b.OnClear()
		}
	}

	b.ExtendBaseWidget(b)
	return b
}

// Start validates the capture setup. On failure drawing stays disabled and
// the error is shown in the status bar; the rest of the board keeps
// working. Call it from the fyne goroutine.
func (b *BoardWidget) Start() error {
	err := b.Capture.Start()
	if err != nil {
		log.Printf("[BOARD] Drawing disabled: %v", err)
		b.statusBar.SetText("Drawing disabled: " + err.Error())
	}
	return err
}

func (b *BoardWidget) committed(index int, points []state.Point) {
	s := b.seq.NewStroke(points)
	log.Printf("[BOARD] Stroke %s committed in slot %d (%d points)", s.ID, index, len(points))
	if b.OnStroke != nil {
		b.OnStroke(s)
	}
}

// StatusBar returns the label the board reports into.
func (b *BoardWidget) StatusBar() *widget.Label { return b.statusBar }

// SetStatus updates the status bar from any goroutine.
func (b *BoardWidget) SetStatus(text string) {
	fyne.Do(func() {
		b.statusBar.SetText(text)
	})
}

// ClearPaths is called by a local UI button click.
func (b *BoardWidget) ClearPaths() {
	b.Capture.ClearAll()
}

// SetDrawing turns pointer drawing on or off.
func (b *BoardWidget) SetDrawing(on bool) {
	b.Capture.SetInputEnabled(on)
}

// ApplyRemote applies an op received from a peer. It must run on the fyne
// goroutine.
func (b *BoardWidget) ApplyRemote(op state.Op) {
	switch op.Type {
	case state.OpInsertStroke:
		if op.Stroke == nil || !b.Remote.Add(*op.Stroke) {
			return
		}
		l := newPolyline(b.view, remoteColor, strokeWidth)
		l.SetPoints(op.Stroke.Points)
		l.SetVisible(true)
		b.remote = append(b.remote, l)
		b.remoteBox.Add(l.box)
	case state.OpClear:
		if n := b.Remote.ClearSite(op.Site); n > 0 {
			log.Printf("[BOARD] Cleared %d strokes from %s", n, op.Site)
			b.rebuildRemote()
		}
	default:
		log.Printf("[BOARD] Ignoring unknown op %q", op.Type)
	}
}

func (b *BoardWidget) rebuildRemote() {
	b.remote = b.remote[:0]
	objects := make([]fyne.CanvasObject, 0, b.Remote.Len())
	for _, s := range b.Remote.All() {
		l := newPolyline(b.view, remoteColor, strokeWidth)
		l.SetPoints(s.Points)
		l.SetVisible(true)
		b.remote = append(b.remote, l)
		objects = append(objects, l.box)
	}
	b.remoteBox.Objects = objects
	b.remoteBox.Refresh()
}

// Strokes returns everything currently on the board: the committed local
// strokes followed by the remote ones.
func (b *BoardWidget) Strokes() []state.Stroke {
	var out []state.Stroke
	for _, pts := range b.Capture.Committed() {
		out = append(out, state.Stroke{Site: b.seq.Site(), Points: pts})
	}
	return append(out, b.Remote.All()...)
}

func pointOf(pos fyne.Position) state.Point {
	return state.Point{X: pos.X, Y: pos.Y}
}

func (b *BoardWidget) MouseDown(e *desktop.MouseEvent) {
	if e.Button == desktop.MouseButtonPrimary {
		b.Capture.OnPointerDown(pointOf(e.Position))
	}
}

func (b *BoardWidget) MouseUp(e *desktop.MouseEvent) {
	if e.Button == desktop.MouseButtonPrimary {
		b.Capture.OnPointerUp(pointOf(e.Position))
	}
}

func (b *BoardWidget) Dragged(e *fyne.DragEvent) {
	if b.Capture.State() == capture.Drawing && b.Capture.InputEnabled() {
		b.Capture.OnPointerMove(pointOf(e.Position))
		return
	}
	b.pan(e.Dragged.DX, e.Dragged.DY)
}

func (b *BoardWidget) Scrolled(e *fyne.ScrollEvent) {
	b.pan(e.Scrolled.DX, e.Scrolled.DY)
}

func (b *BoardWidget) pan(dx, dy float32) {
	b.view.panX += dx
	b.view.panY += dy
	for _, l := range b.lines {
		l.layout()
	}
	for _, l := range b.remote {
		l.layout()
	}
}

func (b *BoardWidget) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(b.content)
}

func (b *BoardWidget) MinSize() fyne.Size {
	return fyne.NewSize(300, 300)
}

// DragEnd closes the stroke. MouseUp only reaches the board when the
// button is released over it; DragEnd is delivered wherever the drag ends.
// An up while Idle is a no-op, so receiving both is harmless.
func (b *BoardWidget) DragEnd() {
	b.Capture.OnPointerUp(state.Point{})
}

func (b *BoardWidget) MouseIn(*desktop.MouseEvent)    {}
func (b *BoardWidget) MouseOut()                      {}
func (b *BoardWidget) MouseMoved(*desktop.MouseEvent) {}

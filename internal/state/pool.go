package state

import (
	"fmt"
	"reflect"
)

// LineRenderer is the host side of a stroke buffer. It receives the
// buffer's visibility and points whenever either changes.
type LineRenderer interface {
	SetVisible(visible bool)
	SetPoints(points []Point)
}

// StrokeBuffer is one reusable stroke slot of a StrokePool.
type StrokeBuffer struct {
	points   []Point
	visible  bool
	renderer LineRenderer
}

// Show marks the buffer visible.
func (b *StrokeBuffer) Show() {
	b.visible = true
	if b.renderer != nil {
		b.renderer.SetVisible(true)
	}
}

// Hide marks the buffer hidden. Points are kept.
func (b *StrokeBuffer) Hide() {
	b.visible = false
	if b.renderer != nil {
		b.renderer.SetVisible(false)
	}
}

// Append adds p to the end of the stroke.
func (b *StrokeBuffer) Append(p Point) {
	b.points = append(b.points, p)
	b.push()
}

// Reset clears the points and hides the buffer.
func (b *StrokeBuffer) Reset() {
	b.points = b.points[:0]
	b.push()
	b.Hide()
}

// Len returns the number of points in the buffer.
func (b *StrokeBuffer) Len() int { return len(b.points) }

// Visible reports whether the buffer should currently be rendered.
func (b *StrokeBuffer) Visible() bool { return b.visible }

// Last returns the most recently appended point.
func (b *StrokeBuffer) Last() (Point, bool) {
	if len(b.points) == 0 {
		return Point{}, false
	}
	return b.points[len(b.points)-1], true
}

// Points returns a copy of the buffer's points.
func (b *StrokeBuffer) Points() []Point {
	out := make([]Point, len(b.points))
	copy(out, b.points)
	return out
}

func (b *StrokeBuffer) push() {
	if b.renderer != nil {
		b.renderer.SetPoints(b.Points())
	}
}

// StrokePool owns a fixed number of stroke buffers and a cursor naming the
// buffer that receives the next stroke. The cursor equals Size() once every
// buffer holds a committed stroke; the next stroke start then clears the
// whole pool instead of wrapping modulo Size().
type StrokePool struct {
	buffers []*StrokeBuffer
	cursor  int
}

// NewStrokePool allocates n empty, hidden buffers with the cursor at 0.
func NewStrokePool(n int) (*StrokePool, error) {
	if n < 1 {
		return nil, fmt.Errorf("%w: pool size %d, need at least 1", ErrConfig, n)
	}
	p := &StrokePool{buffers: make([]*StrokeBuffer, n)}
	for i := range p.buffers {
		p.buffers[i] = &StrokeBuffer{}
	}
	return p, nil
}

// Bind attaches one renderer per buffer, in pool order, and pushes the
// current state of every buffer to its renderer.
func (p *StrokePool) Bind(renderers []LineRenderer) error {
	if len(renderers) != len(p.buffers) {
		return fmt.Errorf("%w: %d render targets for %d buffers", ErrConfig, len(renderers), len(p.buffers))
	}
	for i, r := range renderers {
		if isNil(r) {
			return fmt.Errorf("%w: render target %d is nil", ErrConfig, i)
		}
	}
	for i, r := range renderers {
		b := p.buffers[i]
		b.renderer = r
		b.push()
		r.SetVisible(b.visible)
	}
	return nil
}

// Size returns the pool capacity.
func (p *StrokePool) Size() int { return len(p.buffers) }

// Cursor returns the index of the buffer that receives the next stroke.
func (p *StrokePool) Cursor() int { return p.cursor }

// Full reports whether every buffer holds a committed stroke.
func (p *StrokePool) Full() bool { return p.cursor == len(p.buffers) }

// Buffer returns the buffer at index i.
func (p *StrokePool) Buffer(i int) (*StrokeBuffer, error) {
	if i < 0 || i >= len(p.buffers) {
		return nil, fmt.Errorf("%w: index %d, size %d", ErrIndex, i, len(p.buffers))
	}
	return p.buffers[i], nil
}

// Current returns the buffer at the cursor.
func (p *StrokePool) Current() (*StrokeBuffer, error) {
	return p.Buffer(p.cursor)
}

// ResetAll clears and hides every buffer and moves the cursor to 0.
func (p *StrokePool) ResetAll() {
	p.cursor = 0
	for _, b := range p.buffers {
		b.Reset()
	}
}

// Advance moves the cursor past the buffer holding the stroke just
// committed.
func (p *StrokePool) Advance() error {
	if p.cursor >= len(p.buffers) {
		return fmt.Errorf("%w: advance past %d", ErrIndex, p.cursor)
	}
	p.cursor++
	return nil
}

// ResetCurrent discards the stroke at the cursor without moving it.
func (p *StrokePool) ResetCurrent() error {
	b, err := p.Current()
	if err != nil {
		return err
	}
	b.Reset()
	return nil
}

// Visible returns the indices of the buffers currently shown, in pool
// order.
func (p *StrokePool) Visible() []int {
	var out []int
	for i, b := range p.buffers {
		if b.visible {
			out = append(out, i)
		}
	}
	return out
}

// isNil also catches a typed nil pointer stored in the interface.
func isNil(r LineRenderer) bool {
	if r == nil {
		return true
	}
	v := reflect.ValueOf(r)
	switch v.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.Interface:
		return v.IsNil()
	}
	return false
}

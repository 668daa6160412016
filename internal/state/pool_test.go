package state

import (
	"errors"
	"testing"
)

type recordingRenderer struct {
	visible bool
	points  []Point
}

func (r *recordingRenderer) SetVisible(v bool)   { r.visible = v }
func (r *recordingRenderer) SetPoints(p []Point) { r.points = p }

func TestNewStrokePool(t *testing.T) {
	for _, n := range []int{0, -1} {
		if _, err := NewStrokePool(n); !errors.Is(err, ErrConfig) {
			t.Errorf("NewStrokePool(%d) error = %v, want ErrConfig", n, err)
		}
	}

	p, err := NewStrokePool(3)
	if err != nil {
		t.Fatalf("NewStrokePool(3) error = %v", err)
	}
	if p.Size() != 3 || p.Cursor() != 0 || p.Full() {
		t.Errorf("new pool size=%d cursor=%d full=%v, want 3 0 false", p.Size(), p.Cursor(), p.Full())
	}
	for i := 0; i < 3; i++ {
		b, _ := p.Buffer(i)
		if b.Len() != 0 || b.Visible() {
			t.Errorf("buffer %d len=%d visible=%v, want empty and hidden", i, b.Len(), b.Visible())
		}
	}
}

func TestStrokePoolCurrentOutOfRange(t *testing.T) {
	p, _ := NewStrokePool(1)
	if err := p.Advance(); err != nil {
		t.Fatalf("Advance() error = %v", err)
	}
	if !p.Full() {
		t.Fatal("pool of one should be full after one advance")
	}
	if _, err := p.Current(); !errors.Is(err, ErrIndex) {
		t.Errorf("Current() on full pool error = %v, want ErrIndex", err)
	}
	if err := p.Advance(); !errors.Is(err, ErrIndex) {
		t.Errorf("Advance() past end error = %v, want ErrIndex", err)
	}
	if err := p.ResetCurrent(); !errors.Is(err, ErrIndex) {
		t.Errorf("ResetCurrent() on full pool error = %v, want ErrIndex", err)
	}
}

func TestStrokePoolResetAll(t *testing.T) {
	p, _ := NewStrokePool(2)
	for i := 0; i < 2; i++ {
		b, _ := p.Current()
		b.Show()
		b.Append(Point{X: float32(i), Y: 1})
		if err := p.Advance(); err != nil {
			t.Fatal(err)
		}
	}

	p.ResetAll()

	if p.Cursor() != 0 {
		t.Errorf("Cursor() = %d, want 0", p.Cursor())
	}
	for i := 0; i < 2; i++ {
		b, _ := p.Buffer(i)
		if b.Len() != 0 || b.Visible() {
			t.Errorf("buffer %d len=%d visible=%v after ResetAll", i, b.Len(), b.Visible())
		}
	}
	if v := p.Visible(); len(v) != 0 {
		t.Errorf("Visible() = %v, want none", v)
	}
}

func TestStrokePoolResetCurrentIdempotent(t *testing.T) {
	p, _ := NewStrokePool(2)
	b, _ := p.Current()
	b.Show()
	b.Append(Point{X: 1, Y: 2})

	if err := p.ResetCurrent(); err != nil {
		t.Fatal(err)
	}
	firstLen, firstVisible := b.Len(), b.Visible()
	if err := p.ResetCurrent(); err != nil {
		t.Fatal(err)
	}
	if b.Len() != firstLen || b.Visible() != firstVisible {
		t.Errorf("second ResetCurrent changed state: len %d->%d visible %v->%v",
			firstLen, b.Len(), firstVisible, b.Visible())
	}
	if b.Len() != 0 || b.Visible() {
		t.Errorf("after ResetCurrent len=%d visible=%v, want empty and hidden", b.Len(), b.Visible())
	}
	if p.Cursor() != 0 {
		t.Errorf("Cursor() = %d, want 0", p.Cursor())
	}
}

func TestStrokePoolBind(t *testing.T) {
	p, _ := NewStrokePool(2)

	if err := p.Bind([]LineRenderer{&recordingRenderer{}}); !errors.Is(err, ErrConfig) {
		t.Errorf("Bind with too few renderers error = %v, want ErrConfig", err)
	}
	if err := p.Bind([]LineRenderer{&recordingRenderer{}, nil}); !errors.Is(err, ErrConfig) {
		t.Errorf("Bind with nil renderer error = %v, want ErrConfig", err)
	}
	var typed *recordingRenderer
	if err := p.Bind([]LineRenderer{&recordingRenderer{}, typed}); !errors.Is(err, ErrConfig) {
		t.Errorf("Bind with typed nil renderer error = %v, want ErrConfig", err)
	}

	r0, r1 := &recordingRenderer{visible: true}, &recordingRenderer{}
	if err := p.Bind([]LineRenderer{r0, r1}); err != nil {
		t.Fatalf("Bind() error = %v", err)
	}
	if r0.visible {
		t.Error("Bind should push the hidden state of buffer 0")
	}

	b, _ := p.Current()
	b.Show()
	b.Append(Point{X: 1, Y: 1})
	b.Append(Point{X: 2, Y: 2})
	if !r0.visible || len(r0.points) != 2 {
		t.Errorf("renderer 0 visible=%v points=%v, want visible with 2 points", r0.visible, r0.points)
	}
	if r1.visible || len(r1.points) != 0 {
		t.Errorf("renderer 1 should be untouched, got visible=%v points=%v", r1.visible, r1.points)
	}

	b.Reset()
	if r0.visible || len(r0.points) != 0 {
		t.Errorf("after Reset renderer 0 visible=%v points=%v", r0.visible, r0.points)
	}
}

func TestStrokeBufferPointsIsCopy(t *testing.T) {
	var b StrokeBuffer
	b.Append(Point{X: 1, Y: 1})
	pts := b.Points()
	pts[0].X = 42

	last, ok := b.Last()
	if !ok || last.X != 1 {
		t.Errorf("Last() = %v, %v; buffer must not alias Points()", last, ok)
	}

	b.Reset()
	if _, ok := b.Last(); ok {
		t.Error("Last() on empty buffer should report false")
	}
}

func TestPointDist(t *testing.T) {
	tests := []struct {
		a, b Point
		want float64
	}{
		{Point{0, 0}, Point{3, 4}, 5},
		{Point{1, 1}, Point{1, 1}, 0},
		{Point{0, 0}, Point{0, -2}, 2},
	}
	for _, tt := range tests {
		if got := tt.a.Dist(tt.b); got != tt.want {
			t.Errorf("%v.Dist(%v) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}

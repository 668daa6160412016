package state

import "testing"

func TestRemoteStrokesAddDedup(t *testing.T) {
	rs := NewRemoteStrokes()
	s := Stroke{ID: "a", Site: "peer", Points: []Point{{1, 1}}}

	if !rs.Add(s) {
		t.Fatal("first Add should report new")
	}
	if rs.Add(s) {
		t.Error("duplicate Add should report false")
	}
	if rs.Len() != 1 {
		t.Errorf("Len() = %d, want 1", rs.Len())
	}
}

func TestRemoteStrokesClearSite(t *testing.T) {
	rs := NewRemoteStrokes()
	rs.Add(Stroke{ID: "1", Site: "a"})
	rs.Add(Stroke{ID: "2", Site: "b"})
	rs.Add(Stroke{ID: "3", Site: "a"})
	rs.Add(Stroke{ID: "4", Site: "c"})

	if n := rs.ClearSite("a"); n != 2 {
		t.Errorf("ClearSite(a) = %d, want 2", n)
	}

	all := rs.All()
	if len(all) != 2 || all[0].ID != "2" || all[1].ID != "4" {
		t.Errorf("All() = %+v, want strokes 2 and 4 in order", all)
	}

	// A cleared id may arrive again later.
	if !rs.Add(Stroke{ID: "1", Site: "a"}) {
		t.Error("Add after ClearSite should accept the id again")
	}
}

func TestSequencer(t *testing.T) {
	s := NewSequencer()
	if s.Site() == "" {
		t.Fatal("Site() is empty")
	}

	op := s.Stamp(Op{Type: OpClear})
	if op.Lamport != 1 || op.Site != s.Site() {
		t.Errorf("Stamp() = %+v, want lamport 1 and local site", op)
	}

	s.Observe(10)
	if op := s.Stamp(Op{}); op.Lamport != 11 {
		t.Errorf("Stamp() after Observe(10) lamport = %d, want 11", op.Lamport)
	}
	s.Observe(3)
	if op := s.Stamp(Op{}); op.Lamport != 12 {
		t.Errorf("Observe of an older value moved the clock back: lamport = %d", op.Lamport)
	}

	a := s.NewStroke([]Point{{0, 0}})
	b := s.NewStroke(nil)
	if a.ID == "" || a.ID == b.ID || a.Site != s.Site() || a.Time.IsZero() {
		t.Errorf("NewStroke ids %q %q site %q time %v", a.ID, b.ID, a.Site, a.Time)
	}
}

func TestBounds(t *testing.T) {
	if _, ok := Bounds(nil, 1); ok {
		t.Error("Bounds(nil) should report false")
	}

	r, ok := Bounds([]Point{{1, 2}, {4, -1}, {2, 5}}, 1)
	want := Rect{X: 0, Y: -2, Width: 5, Height: 8}
	if !ok || r != want {
		t.Errorf("Bounds() = %+v, %v; want %+v", r, ok, want)
	}

	r, ok = StrokesBounds([]Stroke{{Points: []Point{{0, 0}}}, {Points: []Point{{10, 10}}}}, 0)
	if !ok || r != (Rect{Width: 10, Height: 10}) {
		t.Errorf("StrokesBounds() = %+v, %v", r, ok)
	}
}

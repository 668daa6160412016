package state

// Rect is an axis-aligned rectangle in canvas space.
type Rect struct {
	X      float32
	Y      float32
	Width  float32
	Height float32
}

// Bounds returns the bounding box of points grown by padding on every side.
// It returns a zero Rect and false when points is empty.
func Bounds(points []Point, padding float32) (Rect, bool) {
	if len(points) == 0 {
		return Rect{}, false
	}

	minX, minY := points[0].X, points[0].Y
	maxX, maxY := points[0].X, points[0].Y
	for _, p := range points {
		if p.X < minX {
			minX = p.X
		}
		if p.X > maxX {
			maxX = p.X
		}
		if p.Y < minY {
			minY = p.Y
		}
		if p.Y > maxY {
			maxY = p.Y
		}
	}

	return Rect{
		X:      minX - padding,
		Y:      minY - padding,
		Width:  maxX - minX + 2*padding,
		Height: maxY - minY + 2*padding,
	}, true
}

// StrokesBounds returns the bounding box covering every stroke.
func StrokesBounds(strokes []Stroke, padding float32) (Rect, bool) {
	var all []Point
	for _, s := range strokes {
		all = append(all, s.Points...)
	}
	return Bounds(all, padding)
}

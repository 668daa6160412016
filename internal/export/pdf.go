package export

import (
	"fmt"
	"io"
	"os"

	"github.com/jung-kurt/gofpdf"

	"StrokeBoard/internal/state"
)

const (
	pageMargin = 10.0 // mm
	lineWidth  = 0.5  // mm
	padding    = 0.1  // canvas units around the drawing
)

// WritePDF renders strokes onto a single A4 landscape page, scaled to fit
// inside the margins. No strokes gives a blank page.
func WritePDF(w io.Writer, strokes []state.Stroke) error {
	p := gofpdf.New("L", "mm", "A4", "")
	p.AddPage()
	p.SetDrawColor(0, 0, 0)
	p.SetLineWidth(lineWidth)
	p.SetLineCapStyle("round")
	p.SetLineJoinStyle("round")

	if box, ok := state.StrokesBounds(strokes, padding); ok {
		pageW, pageH := p.GetPageSize()
		fit := newFit(box, pageW-2*pageMargin, pageH-2*pageMargin)
		for _, st := range strokes {
			for i := 1; i < len(st.Points); i++ {
				x1, y1 := fit.apply(st.Points[i-1])
				x2, y2 := fit.apply(st.Points[i])
				p.Line(x1, y1, x2, y2)
			}
		}
	}

	if err := p.Output(w); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}

// ExportPDF writes strokes to a PDF file at path.
func ExportPDF(path string, strokes []state.Stroke) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := WritePDF(f, strokes); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// fit maps canvas space onto the printable area with a uniform scale.
type fit struct {
	box   state.Rect
	scale float64
}

func newFit(box state.Rect, width, height float64) fit {
	scale := 1.0
	if box.Width > 0 || box.Height > 0 {
		sx, sy := width/float64(box.Width), height/float64(box.Height)
		switch {
		case box.Width <= 0:
			scale = sy
		case box.Height <= 0:
			scale = sx
		default:
			scale = min(sx, sy)
		}
	}
	return fit{box: box, scale: scale}
}

func (f fit) apply(pt state.Point) (float64, float64) {
	return pageMargin + float64(pt.X-f.box.X)*f.scale,
		pageMargin + float64(pt.Y-f.box.Y)*f.scale
}

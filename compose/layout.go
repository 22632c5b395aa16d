package compose

import (
	"image"
	"math"

	"statmeme/raster"
)

// Layout places the four panels on the canvas. Image cells hold the planes at
// one canvas pixel per sample; label cells sit below them.
type Layout struct {
	Canvas      image.Rectangle
	Images      [4]image.Rectangle
	Labels      [4]image.Rectangle
	CellBorder  int
	FrameBorder int
	LabelPx     int
}

const (
	imageRowShare = 0.92
	labelRowShare = 0.08
	gapShare      = 0.05
	padInches     = 0.1
)

// points converts a length in points to pixels at dpi.
func points(pt float64, dpi int) int {
	return int(math.Round(pt * float64(dpi) / 72))
}

// NewLayout computes the canvas for panels of the given shape.
func NewLayout(shape raster.Shape, dpi int, labelPt float64) Layout {
	l := Layout{
		CellBorder:  max(1, points(1.5, dpi)),
		FrameBorder: max(1, points(2, dpi)),
		LabelPx:     max(1, points(labelPt, dpi)),
	}

	w, h := shape.Width, shape.Height
	gap := max(int(math.Round(gapShare*float64(w))), 2*l.CellBorder+2)
	margin := max(int(math.Round(padInches*float64(dpi))), l.FrameBorder+l.CellBorder+2)
	labelH := max(int(math.Round(float64(h)*labelRowShare/imageRowShare)), 2*l.LabelPx)

	l.Canvas = image.Rect(0, 0, 2*margin+4*w+3*gap, 2*margin+h+gap+labelH)
	for i := range l.Images {
		x := margin + i*(w+gap)
		l.Images[i] = image.Rect(x, margin, x+w, margin+h)
		l.Labels[i] = image.Rect(x, margin+h+gap, x+w, margin+h+gap+labelH)
	}
	return l
}

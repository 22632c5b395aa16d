package letter

import (
	"errors"
	"image"
	"log/slog"
	"math"

	"golang.org/x/image/font"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"
)

// flattenSteps is the number of chords a curve segment is split into.
const flattenSteps = 12

var errNoOutline = errors.New("face has no outlines")

// drawStroked draws s thickened by a round pen of radius width, then the plain
// glyph on top.
func drawStroked(logger *slog.Logger, d *font.Drawer, tf *typeface, s string, width int) {
	err := errNoOutline
	if tf.font != nil {
		err = strokeOutline(d, tf, s, float32(width))
	}
	if err != nil {
		logger.Debug("outline stroke unavailable, stamping glyph", "font", tf.origin, "error", err)
		stampStroke(d, s, width)
		return
	}
	d.DrawString(s)
}

// stampStroke approximates a circular pen by drawing s at every offset inside
// the pen's disc.
func stampStroke(d *font.Drawer, s string, width int) {
	origin := d.Dot
	for dy := -width; dy <= width; dy++ {
		for dx := -width; dx <= width; dx++ {
			if dx*dx+dy*dy <= width*width {
				d.Dot = origin.Add(fixed.P(dx, dy))
				d.DrawString(s)
			}
		}
	}
	d.Dot = origin
	d.DrawString(s)
}

type point struct{ x, y float32 }

// strokeOutline rasterizes a capsule around every edge of the flattened glyph
// outlines. All pieces are wound the same way so overlaps saturate instead of
// cancelling.
func strokeOutline(d *font.Drawer, tf *typeface, s string, radius float32) error {
	b := d.Dst.Bounds()
	r := vector.NewRasterizer(b.Dx(), b.Dy())
	pen := newPen(radius)

	var buf sfnt.Buffer
	dot := d.Dot
	prev, hasPrev := sfnt.GlyphIndex(0), false
	for _, c := range s {
		idx, err := tf.font.GlyphIndex(&buf, c)
		if err != nil {
			return err
		}
		if hasPrev {
			if kern, err := tf.font.Kern(&buf, prev, idx, tf.ppem, font.HintingNone); err == nil {
				dot.X += kern
			}
		}

		segs, err := tf.font.LoadGlyph(&buf, idx, tf.ppem, nil)
		if err != nil {
			return err
		}
		origin := point{
			x: float32(dot.X)/64 - float32(b.Min.X),
			y: float32(dot.Y)/64 - float32(b.Min.Y),
		}
		for _, edge := range flatten(segs, origin) {
			pen.capsule(r, edge[0], edge[1])
		}

		adv, err := tf.font.GlyphAdvance(&buf, idx, tf.ppem, font.HintingNone)
		if err != nil {
			return err
		}
		dot.X += adv
		prev, hasPrev = idx, true
	}

	r.Draw(d.Dst, b, image.Opaque, image.Point{})
	return nil
}

// flatten turns outline segments into straight edges, closing every contour.
func flatten(segs sfnt.Segments, origin point) [][2]point {
	at := func(p fixed.Point26_6) point {
		return point{origin.x + float32(p.X)/64, origin.y + float32(p.Y)/64}
	}

	var edges [][2]point
	var cur, start point
	open := false
	closeContour := func() {
		if open && cur != start {
			edges = append(edges, [2]point{cur, start})
		}
	}

	for _, seg := range segs {
		switch seg.Op {
		case sfnt.SegmentOpMoveTo:
			closeContour()
			cur = at(seg.Args[0])
			start, open = cur, true
		case sfnt.SegmentOpLineTo:
			next := at(seg.Args[0])
			edges = append(edges, [2]point{cur, next})
			cur = next
		case sfnt.SegmentOpQuadTo:
			p1, p2 := at(seg.Args[0]), at(seg.Args[1])
			p0 := cur
			for i := 1; i <= flattenSteps; i++ {
				t := float32(i) / flattenSteps
				u := 1 - t
				next := point{
					u*u*p0.x + 2*u*t*p1.x + t*t*p2.x,
					u*u*p0.y + 2*u*t*p1.y + t*t*p2.y,
				}
				edges = append(edges, [2]point{cur, next})
				cur = next
			}
		case sfnt.SegmentOpCubeTo:
			p1, p2, p3 := at(seg.Args[0]), at(seg.Args[1]), at(seg.Args[2])
			p0 := cur
			for i := 1; i <= flattenSteps; i++ {
				t := float32(i) / flattenSteps
				u := 1 - t
				next := point{
					u*u*u*p0.x + 3*u*u*t*p1.x + 3*u*t*t*p2.x + t*t*t*p3.x,
					u*u*u*p0.y + 3*u*u*t*p1.y + 3*u*t*t*p2.y + t*t*t*p3.y,
				}
				edges = append(edges, [2]point{cur, next})
				cur = next
			}
		}
	}
	closeContour()
	return edges
}

// pen is a disc of the stroke radius, approximated by a regular polygon.
type pen struct {
	radius float32
	disc   []point
}

func newPen(radius float32) *pen {
	n := max(12, min(64, int(2*math.Pi*float64(radius)/2)))
	disc := make([]point, n)
	for i := range disc {
		a := 2 * math.Pi * float64(i) / float64(n)
		disc[i] = point{float32(math.Cos(a)) * radius, float32(math.Sin(a)) * radius}
	}
	return &pen{radius: radius, disc: disc}
}

// capsule adds the area swept by the pen moving from p to q.
func (pn *pen) capsule(r *vector.Rasterizer, p, q point) {
	pn.dot(r, p)
	pn.dot(r, q)

	dx, dy := q.x-p.x, q.y-p.y
	l := float32(math.Hypot(float64(dx), float64(dy)))
	if l == 0 {
		return
	}
	nx, ny := -dy/l*pn.radius, dx/l*pn.radius
	quad := []point{
		{p.x + nx, p.y + ny},
		{q.x + nx, q.y + ny},
		{q.x - nx, q.y - ny},
		{p.x - nx, p.y - ny},
	}
	if signedArea(quad) < 0 {
		quad[1], quad[3] = quad[3], quad[1]
	}
	polygon(r, quad)
}

func (pn *pen) dot(r *vector.Rasterizer, c point) {
	pts := make([]point, len(pn.disc))
	for i, v := range pn.disc {
		pts[i] = point{c.x + v.x, c.y + v.y}
	}
	polygon(r, pts)
}

func polygon(r *vector.Rasterizer, pts []point) {
	r.MoveTo(pts[0].x, pts[0].y)
	for _, p := range pts[1:] {
		r.LineTo(p.x, p.y)
	}
	r.ClosePath()
}

func signedArea(pts []point) float32 {
	var a float32
	for i, p := range pts {
		q := pts[(i+1)%len(pts)]
		a += p.x*q.y - q.x*p.y
	}
	return a / 2
}

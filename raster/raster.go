// Package raster holds the grayscale planes the meme pipeline passes between
// its stages: row-major float32 samples in [0, 1], 0 black and 1 white.
package raster

import (
	"image"
	"image/color"
)

type Image struct {
	// Pix holds the samples. The sample at (x, y) is
	// Pix[(y-Rect.Min.Y)*Stride + (x-Rect.Min.X)].
	Pix []float32
	// Stride is the Pix stride (in samples) between vertically adjacent pixels.
	Stride int
	// Rect is the image's bounds.
	Rect image.Rectangle
}

var _ image.Image = &Image{}

// New returns a black plane of the given shape.
func New(height, width int) *Image {
	r := image.Rect(0, 0, width, height)
	return &Image{
		Pix:    make([]float32, r.Dx()*r.Dy()),
		Stride: r.Dx(),
		Rect:   r,
	}
}

// Filled returns a plane with every sample set to v.
func Filled(height, width int, v float32) *Image {
	img := New(height, width)
	for i := range img.Pix {
		img.Pix[i] = v
	}
	return img
}

func (p *Image) Shape() Shape {
	return Shape{Height: p.Rect.Dy(), Width: p.Rect.Dx()}
}

func (p *Image) PixOffset(x, y int) int {
	return (y-p.Rect.Min.Y)*p.Stride + (x - p.Rect.Min.X)
}

func (p *Image) Value(x, y int) float32 {
	if !(image.Point{x, y}.In(p.Rect)) {
		return 0
	}
	return p.Pix[p.PixOffset(x, y)]
}

func (p *Image) SetValue(x, y int, v float32) {
	if !(image.Point{x, y}.In(p.Rect)) {
		return
	}
	p.Pix[p.PixOffset(x, y)] = v
}

// Row returns the samples of row y, aliasing Pix.
func (p *Image) Row(y int) []float32 {
	i := p.PixOffset(p.Rect.Min.X, y)
	return p.Pix[i : i+p.Rect.Dx()]
}

func (p *Image) Clone() *Image {
	c := New(p.Rect.Dy(), p.Rect.Dx())
	for y := range c.Rect.Dy() {
		copy(c.Row(y), p.Row(p.Rect.Min.Y+y))
	}
	return c
}

func (p *Image) ColorModel() color.Model { return color.Gray16Model }

func (p *Image) Bounds() image.Rectangle { return p.Rect }

// At maps the sample to gray, clamping to [0, 1] on the way.
func (p *Image) At(x, y int) color.Color {
	return p.Gray16At(x, y)
}

func (p *Image) Gray16At(x, y int) color.Gray16 {
	if !(image.Point{x, y}.In(p.Rect)) {
		return color.Gray16{}
	}
	return color.Gray16{Y: toGray16(p.Pix[p.PixOffset(x, y)])}
}

func toGray16(v float32) uint16 {
	switch {
	case !(v > 0): // also NaN
		return 0
	case v >= 1:
		return 0xffff
	}
	return uint16(v*0xffff + 0.5)
}

// Equal reports whether a and b have the same shape and identical samples.
func Equal(a, b *Image) bool {
	if a.Shape() != b.Shape() {
		return false
	}
	for y := range a.Rect.Dy() {
		ra, rb := a.Row(a.Rect.Min.Y+y), b.Row(b.Rect.Min.Y+y)
		for x := range ra {
			if ra[x] != rb[x] {
				return false
			}
		}
	}
	return true
}

package raster

import (
	"image"
	"image/color"

	"statmeme/okcolor"
)

// FromImage converts img to a plane of perceptual lightness. The result is
// anchored at (0, 0) whatever the bounds of img.
func FromImage(img image.Image) *Image {
	b := img.Bounds()
	dst := New(b.Dy(), b.Dx())

	switch src := img.(type) {
	case *Image:
		for y := range b.Dy() {
			row := dst.Row(y)
			copy(row, src.Row(b.Min.Y+y))
			for x, v := range row {
				row[x] = clampUnit(v)
			}
		}
	case *image.Paletted:
		lut := make([]float32, len(src.Palette))
		for i, c := range src.Palette {
			lut[i] = lightness(c)
		}
		for y := range b.Dy() {
			row := dst.Row(y)
			for x := range row {
				row[x] = lut[src.ColorIndexAt(b.Min.X+x, b.Min.Y+y)]
			}
		}
	default:
		for y := range b.Dy() {
			row := dst.Row(y)
			for x := range row {
				row[x] = lightness(img.At(b.Min.X+x, b.Min.Y+y))
			}
		}
	}

	return dst
}

func lightness(c color.Color) float32 {
	return float32(okcolor.Lightness(c))
}

func clampUnit(v float32) float32 {
	switch {
	case !(v > 0):
		return 0
	case v > 1:
		return 1
	}
	return v
}

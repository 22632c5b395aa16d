package compose

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"github.com/golang/freetype"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
)

// newLabelFace returns the bold label face, sized in points at dpi.
func newLabelFace(sizePt float64, dpi int) (font.Face, error) {
	f, err := truetype.Parse(gobold.TTF)
	if err != nil {
		return nil, fmt.Errorf("could not parse label font: %w", err)
	}

	return truetype.NewFace(f, &truetype.Options{
		Size:    sizePt,
		DPI:     float64(dpi),
		Hinting: font.HintingFull,
	}), nil
}

// fitLabelFace returns the label face, shrunk when the widest label would
// not fit in maxWidth pixels.
func fitLabelFace(sizePt float64, dpi int, labels []string, maxWidth int) (font.Face, error) {
	face, err := newLabelFace(sizePt, dpi)
	if err != nil {
		return nil, err
	}

	widest := 0
	for _, l := range labels {
		widest = max(widest, font.MeasureString(face, l).Ceil())
	}
	if widest <= maxWidth || widest == 0 {
		return face, nil
	}

	if err := face.Close(); err != nil {
		return nil, fmt.Errorf("could not release label font: %w", err)
	}
	return newLabelFace(max(1, sizePt*float64(maxWidth)/float64(widest)), dpi)
}

// drawStringCentered draws text centered in rect, both ways.
func drawStringCentered(dst draw.Image, face font.Face, c color.Color, text string, rect image.Rectangle) {
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(c),
		Face: face,
	}

	bounds, _ := d.BoundString(text)
	textWidth := (bounds.Max.X - bounds.Min.X).Ceil()
	textHeight := (bounds.Max.Y - bounds.Min.Y).Ceil()

	x := rect.Min.X + (rect.Dx()-textWidth)/2 - bounds.Min.X.Floor()
	y := rect.Min.Y + (rect.Dy()-textHeight)/2 - bounds.Min.Y.Floor()

	d.Dot = freetype.Pt(x, y)
	d.DrawString(text)
}

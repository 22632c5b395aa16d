// Package letter renders a single glyph, centered and scaled to a canvas, as
// a mask plane: 0 where the glyph is, 1 elsewhere.
package letter

import (
	"fmt"
	"image"
	"log/slog"
	"math"
	"unicode/utf8"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
	"golang.org/x/text/unicode/norm"

	"statmeme/raster"
)

// fontScale makes up for fonts whose glyphs fill less than their nominal size.
const fontScale = 1.15

type Options struct {
	Letter        string
	FontSizeRatio float64 // glyph size relative to the smaller canvas side, in (0, 1]
	StrokeWidth   int     // extra outline thickness in pixels
	Fonts         FontSource
}

func DefaultOptions() Options {
	return Options{
		Letter:        "S",
		FontSizeRatio: 0.95,
		StrokeWidth:   0,
		Fonts:         DefaultFontSource(),
	}
}

// FontSize returns the pixel size a glyph gets on a height x width canvas.
func FontSize(height, width int, ratio float64) float64 {
	return max(1, math.Trunc(float64(min(height, width))*ratio*fontScale))
}

// Mask renders opts.Letter in black on a white height x width plane.
func Mask(logger *slog.Logger, height, width int, opts Options) (*raster.Image, error) {
	switch {
	case height <= 0 || width <= 0:
		return nil, fmt.Errorf("invalid mask size %dx%d", width, height)
	case !(opts.FontSizeRatio > 0 && opts.FontSizeRatio <= 1):
		return nil, fmt.Errorf("font size ratio out of (0, 1]: %v", opts.FontSizeRatio)
	case opts.StrokeWidth < 0:
		return nil, fmt.Errorf("invalid stroke width: %d", opts.StrokeWidth)
	}

	text := norm.NFC.String(opts.Letter)
	if utf8.RuneCountInString(text) > 1 {
		logger.Debug("rendering more than one character, layout is best effort", "text", text)
	}

	size := FontSize(height, width, opts.FontSizeRatio)
	tf := loadTypeface(logger, opts.Fonts, size)
	defer func() {
		if err := tf.Close(); err != nil {
			logger.Warn("could not release font face", "font", tf.origin, "error", err)
		}
	}()

	coverage := image.NewAlpha(image.Rect(0, 0, width, height))
	d := &font.Drawer{
		Dst:  coverage,
		Src:  image.Opaque,
		Face: tf.face,
	}

	box, _ := d.BoundString(text)
	minX, minY := box.Min.X.Floor(), box.Min.Y.Floor()
	textW, textH := box.Max.X.Ceil()-minX, box.Max.Y.Ceil()-minY
	d.Dot = fixed.P(floorDiv(width-textW, 2)-minX, floorDiv(height-textH, 2)-minY)

	if opts.StrokeWidth > 0 {
		drawStroked(logger, d, tf, text, opts.StrokeWidth)
	} else {
		d.DrawString(text)
	}

	mask := raster.New(height, width)
	for y := range height {
		row := mask.Row(y)
		cov := coverage.Pix[y*coverage.Stride:]
		for x := range row {
			row[x] = 1 - float32(cov[x])/0xff
		}
	}

	logger.Info("created letter mask",
		"letter", text,
		"font", tf.origin,
		"size", size,
		"stroke", opts.StrokeWidth,
		"shape", mask.Shape().String(),
		"glyph", fmt.Sprintf("%dx%d", textW, textH))
	return mask, nil
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

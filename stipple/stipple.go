// Package stipple is the default stippling collaborator: it reduces a plane to
// dots by error diffusion, so 0 marks a dot and 1 the paper.
package stipple

import (
	"fmt"
	"image"
	"log/slog"

	"github.com/disintegration/gift"
	"golang.org/x/image/draw"

	"statmeme/palette"
	"statmeme/raster"
)

type Options struct {
	Palette  string  // palette.Load name; "bw" gives pure dots
	Contrast float32 // percentage in [-100, 100] applied before dithering
	Gamma    float32 // 1 leaves tones alone
}

func DefaultOptions() Options {
	return Options{Palette: "bw", Gamma: 1}
}

// Dither returns a stippled copy of src.
func Dither(logger *slog.Logger, src *raster.Image, opts Options) (*raster.Image, error) {
	pal, err := palette.Load(opts.Palette)
	if err != nil {
		return nil, err
	}
	if opts.Gamma <= 0 {
		return nil, fmt.Errorf("invalid gamma: %v", opts.Gamma)
	}

	var tone image.Image = src
	if opts.Contrast != 0 || opts.Gamma != 1 {
		g := gift.New(gift.Contrast(opts.Contrast), gift.Gamma(opts.Gamma))
		adjusted := image.NewGray16(g.Bounds(src.Bounds()))
		g.Draw(adjusted, src)
		tone = adjusted
		logger.Debug("adjusted tones", "contrast", opts.Contrast, "gamma", opts.Gamma)
	}

	logger.Info("stippling", "palette", opts.Palette, "colors", len(pal))
	r := src.Bounds()
	dest := image.NewPaletted(r, pal)
	draw.FloydSteinberg.Draw(dest, r, tone, r.Min)

	return raster.FromImage(dest), nil
}

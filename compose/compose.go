// Package compose lays the four meme panels side by side, labels them and
// writes the result as a raster file.
package compose

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"log/slog"

	"golang.org/x/image/draw"

	"statmeme/raster"
)

// Labels are the captions of the panels, in panel order.
var Labels = [4]string{"Reality", "Your Model", "Selection Bias", "Estimate"}

type Options struct {
	DPI        int
	Background color.Color
	LabelSize  float64 // points
}

func DefaultOptions() Options {
	return Options{
		DPI:        150,
		Background: color.White,
		LabelSize:  14,
	}
}

var borderColor = color.Black

// Render composes the panels onto a new canvas.
func Render(panels [4]*raster.Image, opts Options) (canvas *image.RGBA, err error) {
	if opts.DPI <= 0 {
		return nil, fmt.Errorf("invalid dpi: %d", opts.DPI)
	}
	if !(opts.LabelSize > 0) {
		return nil, fmt.Errorf("invalid label size: %v", opts.LabelSize)
	}
	if opts.Background == nil {
		opts.Background = color.White
	}
	for i, p := range panels {
		if p == nil {
			return nil, fmt.Errorf("image %d (%s) is missing", i+1, Labels[i])
		}
	}

	want := panels[0].Shape()
	for i, p := range panels {
		if err := raster.Expect(fmt.Sprintf("image %d (%s)", i+1, Labels[i]), p, want); err != nil {
			return nil, err
		}
	}

	l := NewLayout(want, opts.DPI, opts.LabelSize)
	face, err := fitLabelFace(opts.LabelSize, opts.DPI, Labels[:], want.Width-2*l.CellBorder)
	if err != nil {
		return nil, err
	}
	defer func() {
		if closeErr := face.Close(); closeErr != nil {
			err = errors.Join(err, fmt.Errorf("could not release label font: %w", closeErr))
		}
	}()

	canvas = image.NewRGBA(l.Canvas)
	draw.Draw(canvas, l.Canvas, image.NewUniform(opts.Background), image.Point{}, draw.Src)

	for i, p := range panels {
		draw.NearestNeighbor.Scale(canvas, l.Images[i], p, p.Bounds(), draw.Src, nil)
		frame(canvas, l.Images[i], l.CellBorder, borderColor)

		cell := canvas.SubImage(l.Labels[i]).(*image.RGBA)
		drawStringCentered(cell, face, color.Black, Labels[i], l.Labels[i])
		frame(canvas, l.Labels[i], l.CellBorder, borderColor)
	}
	frame(canvas, l.Canvas.Inset(l.FrameBorder), l.FrameBorder, borderColor)

	return canvas, nil
}

// Write renders the panels and saves them to path, the format following the
// extension.
func Write(logger *slog.Logger, path string, panels [4]*raster.Image, opts Options) error {
	canvas, err := Render(panels, opts)
	if err != nil {
		return err
	}

	if err := Save(logger, path, canvas, opts.DPI); err != nil {
		return err
	}

	shape := panels[0].Shape()
	b := canvas.Bounds()
	logger.Info("created statistics meme",
		"path", path,
		"panel", shape.String(),
		"dpi", opts.DPI,
		"background", fmt.Sprint(opts.Background),
		"size_in", fmt.Sprintf("%.1fx%.1f", float64(b.Dx())/float64(opts.DPI), float64(b.Dy())/float64(opts.DPI)))
	return nil
}

// frame draws a border of width w just outside r.
func frame(dst draw.Image, r image.Rectangle, w int, c color.Color) {
	src := image.NewUniform(c)
	outer := r.Inset(-w)
	for _, side := range []image.Rectangle{
		image.Rect(outer.Min.X, outer.Min.Y, outer.Max.X, r.Min.Y),
		image.Rect(outer.Min.X, r.Max.Y, outer.Max.X, outer.Max.Y),
		image.Rect(outer.Min.X, r.Min.Y, r.Min.X, r.Max.Y),
		image.Rect(r.Max.X, r.Min.Y, outer.Max.X, r.Max.Y),
	} {
		draw.Draw(dst, side, src, image.Point{}, draw.Src)
	}
}

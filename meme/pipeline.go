// Package meme wires the pipeline stages together behind the command line:
// original -> stipple -> letter mask -> masked estimate -> four panel image.
package meme

import (
	"fmt"
	"image"
	"log/slog"
	"path/filepath"

	"statmeme/bias"
	"statmeme/compose"
	"statmeme/letter"
	"statmeme/raster"
	"statmeme/stipple"
)

// Build returns the Reality, Your Model, Selection Bias and Estimate panels.
// An external stipple is used as given and must match the fitted original;
// without one the original is dithered.
func Build(logger *slog.Logger, original, external image.Image, opts *Options) ([4]*raster.Image, error) {
	var panels [4]*raster.Image

	if opts.Width > 0 || opts.Height > 0 {
		original = fit(logger, original, opts.Width, opts.Height, opts.Crop, opts.FillColor)
	}
	reality := raster.FromImage(original)
	shape := reality.Shape()

	var model *raster.Image
	if external != nil {
		model = raster.FromImage(external)
		if err := raster.Expect("stipple", model, shape); err != nil {
			return panels, err
		}
	} else {
		var err error
		if model, err = stipple.Dither(logger, reality, opts.stippleOptions()); err != nil {
			return panels, fmt.Errorf("could not stipple original: %w", err)
		}
	}

	mask, err := letter.Mask(logger, shape.Height, shape.Width, opts.letterOptions())
	if err != nil {
		return panels, fmt.Errorf("could not create letter mask: %w", err)
	}

	estimate, err := bias.Apply(logger, model, mask, opts.Threshold)
	if err != nil {
		return panels, err
	}

	panels = [4]*raster.Image{reality, model, mask, estimate}
	return panels, nil
}

// Create runs the whole pipeline for the image at srcPath, writing the meme to
// destPath. stipplePath may be empty.
func Create(logger *slog.Logger, srcPath, stipplePath, destPath string, opts *Options) error {
	original, imgType, err := raster.ReadFile(srcPath)
	if err != nil {
		return err
	}
	logger.Debug("read original", "format", imgType, "size", original.Bounds().Size())

	var external image.Image
	if stipplePath != "" {
		if external, _, err = raster.ReadFile(stipplePath); err != nil {
			return err
		}
	}

	panels, err := Build(logger, original, external, opts)
	if err != nil {
		return err
	}

	if err := ensureDir(filepath.Dir(destPath)); err != nil {
		return err
	}
	return compose.Write(logger, destPath, panels, opts.composeOptions())
}

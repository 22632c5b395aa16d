package meme

import (
	"fmt"
	"log/slog"
	"path/filepath"

	"statmeme/compose"
	"statmeme/letter"
)

// WriteMask saves just the letter mask for a height x width panel.
func WriteMask(logger *slog.Logger, path string, height, width int, opts *Options, dpi int) error {
	mask, err := letter.Mask(logger, height, width, opts.letterOptions())
	if err != nil {
		return fmt.Errorf("could not create letter mask: %w", err)
	}

	if err := ensureDir(filepath.Dir(path)); err != nil {
		return err
	}
	return compose.Save(logger, path, mask, dpi)
}

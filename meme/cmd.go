package meme

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"
)

type CLICmd struct {
	Original string `arg:"" help:"Original picture" type:"existingfile"`
	Stipple  string `help:"Stippled rendition of the original to use instead of dithering it" type:"existingfile"`
	Out      string `short:"o" help:"Destination file, the extension picks the format" default:"statistics_meme.png"`

	Options `embed:""`
}

func (c *CLICmd) Validate(kctx *kong.Context) error {
	out, err := filepath.Abs(c.Out)
	if err != nil {
		return fmt.Errorf("invalid output path %q: %w", c.Out, err)
	}
	c.Out = out

	return c.Options.validate()
}

func (c *CLICmd) Run() error {
	logger := slog.Default().With("file", c.Original)
	if err := Create(logger, c.Original, c.Stipple, c.Out, &c.Options); err != nil {
		logger.Error("could not create meme", "error", err)
		return err
	}
	return nil
}

type MaskCmd struct {
	Width        int      `help:"Mask width" default:"512"`
	Height       int      `help:"Mask height" default:"512"`
	Out          string   `short:"o" help:"Destination file, the extension picks the format" default:"mask.png"`
	Letter       string   `help:"Letter drawn as the mask" default:"S"`
	FontRatio    float64  `help:"Letter size relative to the smaller side, in (0, 1]" default:"0.95"`
	Stroke       int      `help:"Extra letter outline in pixels" default:"0"`
	Font         []string `help:"Candidate font files, tried in order instead of the platform list" sep:"none"`
	FallbackFont string   `help:"Font name tried when no candidate file loads" default:"Go Bold"`
	DPI          int      `name:"dpi" help:"Output resolution" default:"150"`
}

func (c *MaskCmd) Validate(kctx *kong.Context) error {
	switch {
	case c.Width <= 0:
		return fmt.Errorf("invalid mask width: %d", c.Width)
	case c.Height <= 0:
		return fmt.Errorf("invalid mask height: %d", c.Height)
	case c.DPI <= 0:
		return fmt.Errorf("invalid dpi: %d", c.DPI)
	}
	return nil
}

func (c *MaskCmd) Run() error {
	opts := Options{
		Letter:       c.Letter,
		FontRatio:    c.FontRatio,
		Stroke:       c.Stroke,
		Font:         c.Font,
		FallbackFont: c.FallbackFont,
	}
	logger := slog.Default().With("file", c.Out)
	return WriteMask(logger, c.Out, c.Height, c.Width, &opts, c.DPI)
}

func ensureDir(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("unable to create destination folder %q: %w", dir, err)
	}
	return nil
}

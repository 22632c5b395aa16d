package meme

import (
	"fmt"
	"image/color"

	"statmeme/compose"
	"statmeme/letter"
	"statmeme/palette"
	"statmeme/stipple"
)

// Options are the pipeline settings shared by every command.
type Options struct {
	Width  int    `help:"Panel width, the original is scaled to fit" group:"resize"`
	Height int    `help:"Panel height, the original is scaled to fit" group:"resize"`
	Crop   bool   `help:"Crop the original to keep the panel aspect ratio" default:"false" group:"resize"`
	Fill   string `help:"If given and not cropping, fill around the original with this color to keep the panel aspect ratio" group:"resize"`

	Letter       string   `help:"Letter drawn as the selection mask" default:"S" group:"mask"`
	FontRatio    float64  `help:"Letter size relative to the smaller panel side, in (0, 1]" default:"0.95" group:"mask"`
	Stroke       int      `help:"Extra letter outline in pixels" default:"0" group:"mask"`
	Font         []string `help:"Candidate font files, tried in order instead of the platform list" sep:"none" group:"mask"`
	FallbackFont string   `help:"Font name tried when no candidate file loads" default:"Go Bold" group:"mask"`
	Threshold    float64  `help:"Mask values below this erase the stipple, in [0, 1]" default:"0.5" group:"mask"`

	Palette  string  `help:"Stipple palette: bw, gray4, gray16 or a RIFF PAL file" default:"bw" group:"stipple"`
	Contrast float32 `help:"Contrast change in percent before stippling" default:"0" group:"stipple"`
	Gamma    float32 `help:"Gamma correction before stippling" default:"1" group:"stipple"`

	DPI        int     `name:"dpi" help:"Output resolution" default:"150" group:"output"`
	Background string  `help:"Background color name or #RGB, #RGBA, #RRGGBB, #RRGGBBAA" default:"white" group:"output"`
	LabelSize  float64 `help:"Label font size in points" default:"14" group:"output"`

	FillColor       color.Color `kong:"-"`
	BackgroundColor color.Color `kong:"-"`
}

// DefaultOptions mirrors the flag defaults for callers outside the CLI.
func DefaultOptions() Options {
	return Options{
		Letter:       "S",
		FontRatio:    0.95,
		FallbackFont: letter.DefaultFallback,
		Threshold:    0.5,
		Palette:      "bw",
		Gamma:        1,
		DPI:          150,
		Background:   "white",
		LabelSize:    14,
	}
}

func (o *Options) validate() error {
	var err error
	switch {
	case o.Width < 0:
		return fmt.Errorf("invalid panel width: %d", o.Width)
	case o.Height < 0:
		return fmt.Errorf("invalid panel height: %d", o.Height)
	case o.Letter == "":
		return fmt.Errorf("no letter given")
	case !(o.FontRatio > 0 && o.FontRatio <= 1):
		return fmt.Errorf("font ratio out of (0, 1]: %v", o.FontRatio)
	case o.Stroke < 0:
		return fmt.Errorf("invalid stroke width: %d", o.Stroke)
	case !(o.Threshold >= 0 && o.Threshold <= 1):
		return fmt.Errorf("threshold out of [0, 1]: %v", o.Threshold)
	case o.Gamma <= 0:
		return fmt.Errorf("invalid gamma: %v", o.Gamma)
	case o.Contrast < -100 || o.Contrast > 100:
		return fmt.Errorf("contrast out of [-100, 100]: %v", o.Contrast)
	case o.DPI <= 0:
		return fmt.Errorf("invalid dpi: %d", o.DPI)
	case !(o.LabelSize > 0):
		return fmt.Errorf("invalid label size: %v", o.LabelSize)
	}

	if (!o.Crop) && (o.Fill != "") {
		if o.FillColor, err = compose.ParseColor(o.Fill); err != nil {
			return fmt.Errorf("invalid fill color: %w", err)
		}
	}

	if o.BackgroundColor, err = compose.ParseColor(o.Background); err != nil {
		return fmt.Errorf("invalid background color: %w", err)
	}

	if _, err := palette.Load(o.Palette); err != nil {
		return err
	}

	return nil
}

func (o *Options) letterOptions() letter.Options {
	opts := letter.DefaultOptions()
	opts.Letter = o.Letter
	opts.FontSizeRatio = o.FontRatio
	opts.StrokeWidth = o.Stroke
	if len(o.Font) > 0 {
		opts.Fonts.Paths = o.Font
	}
	opts.Fonts.Fallback = o.FallbackFont
	return opts
}

func (o *Options) stippleOptions() stipple.Options {
	return stipple.Options{
		Palette:  o.Palette,
		Contrast: o.Contrast,
		Gamma:    o.Gamma,
	}
}

func (o *Options) composeOptions() compose.Options {
	opts := compose.DefaultOptions()
	opts.DPI = o.DPI
	opts.LabelSize = o.LabelSize
	if o.BackgroundColor != nil {
		opts.Background = o.BackgroundColor
	}
	return opts
}

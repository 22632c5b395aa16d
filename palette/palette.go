package palette

import (
	"fmt"
	"image/color"
	"log/slog"
	"os"
	"strings"
)

// Load returns a built-in palette (bw, gray4, gray16) or the palettes stored in
// a RIFF PAL file, merged into one.
func Load(name string) (color.Palette, error) {
	if pal, ok := builtin(strings.ToLower(name)); ok {
		return pal, nil
	}

	f, err := os.Open(name)
	if err != nil {
		return nil, fmt.Errorf("unknown palette %q: %w", name, err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil {
			slog.Error("could not close palette file", "name", name, "error", closeErr)
		}
	}()

	pals, err := ReadFrom(f)
	if err != nil {
		return nil, fmt.Errorf("could not load palette file %q: %w", name, err)
	}

	var res color.Palette
	for _, pal := range pals {
		res = append(res, pal...)
	}
	if len(res) == 0 {
		return nil, fmt.Errorf("palette file %q holds no colors", name)
	}
	return res, nil
}

func builtin(name string) (color.Palette, bool) {
	switch name {
	case "bw":
		return color.Palette{color.Gray{Y: 0}, color.Gray{Y: 0xff}}, true
	case "gray4":
		return grayRamp(4), true
	case "gray16":
		return grayRamp(16), true
	}
	return nil, false
}

func grayRamp(n int) color.Palette {
	pal := make(color.Palette, n)
	for i := range n {
		pal[i] = color.Gray{Y: uint8(i * 0xff / (n - 1))}
	}
	return pal
}

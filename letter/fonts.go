package letter

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gobolditalic"
	"golang.org/x/image/font/gofont/gomonobold"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
)

// DefaultFallback names the font used when no candidate file loads.
const DefaultFallback = "Go Bold"

// FontSource lists where a bold face is looked for, in order: each of Paths,
// then Fallback by name, then the built-in bitmap face.
type FontSource struct {
	Paths    []string
	Fallback string
}

func DefaultFontSource() FontSource {
	return FontSource{
		Paths:    SystemFontPaths(runtime.GOOS),
		Fallback: DefaultFallback,
	}
}

// SystemFontPaths returns the bold font candidates for goos.
func SystemFontPaths(goos string) []string {
	switch goos {
	case "darwin":
		return []string{
			"/System/Library/Fonts/Helvetica.ttc",
			"/System/Library/Fonts/Supplemental/Arial Bold.ttf",
			"/Library/Fonts/Arial Bold.ttf",
			"/System/Library/Fonts/HelveticaNeue.ttc",
		}
	case "windows":
		return []string{
			"C:/Windows/Fonts/arialbd.ttf",
			"C:/Windows/Fonts/calibrib.ttf",
			"C:/Windows/Fonts/impact.ttf",
		}
	default:
		return []string{
			"/usr/share/fonts/truetype/dejavu/DejaVuSans-Bold.ttf",
			"/usr/share/fonts/truetype/liberation/LiberationSans-Bold.ttf",
			"/usr/share/fonts/truetype/noto/NotoSans-Bold.ttf",
		}
	}
}

func fontDirs(goos string) []string {
	switch goos {
	case "darwin":
		return []string{"/System/Library/Fonts", "/System/Library/Fonts/Supplemental", "/Library/Fonts"}
	case "windows":
		return []string{"C:/Windows/Fonts"}
	default:
		return []string{"/usr/share/fonts/truetype", "/usr/share/fonts", "/usr/local/share/fonts"}
	}
}

var embedded = map[string][]byte{
	"gobold":       gobold.TTF,
	"gobolditalic": gobolditalic.TTF,
	"gomonobold":   gomonobold.TTF,
}

var errNoSuchFont = errors.New("no such font")

type typeface struct {
	origin string
	face   font.Face
	font   *sfnt.Font // nil for bitmap faces
	ppem   fixed.Int26_6
}

func (tf *typeface) Close() error {
	return tf.face.Close()
}

// loadTypeface never fails: the last tier is the 7x13 bitmap face.
func loadTypeface(logger *slog.Logger, src FontSource, size float64) *typeface {
	for _, path := range src.Paths {
		f, err := parseFontFile(path)
		if err == nil {
			var tf *typeface
			if tf, err = newTypeface(path, f, size); err == nil {
				logger.Info("loaded font", "path", path)
				return tf
			}
		}
		logger.Debug("font candidate unusable", "path", path, "error", err)
	}

	if src.Fallback != "" {
		f, err := lookupFont(src.Fallback)
		if err == nil {
			var tf *typeface
			if tf, err = newTypeface(src.Fallback, f, size); err == nil {
				logger.Info("loaded fallback font", "name", src.Fallback)
				return tf
			}
		}
		logger.Warn("fallback font unusable", "name", src.Fallback, "error", err)
	}

	logger.Warn("using built-in bitmap font, glyph may appear pixelated")
	return &typeface{origin: "basicfont.Face7x13", face: basicfont.Face7x13}
}

func newTypeface(origin string, f *sfnt.Font, size float64) (*typeface, error) {
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingNone,
	})
	if err != nil {
		return nil, fmt.Errorf("could not create face: %w", err)
	}
	return &typeface{
		origin: origin,
		face:   face,
		font:   f,
		ppem:   fixed.Int26_6(size * 64),
	}, nil
}

// parseFontFile loads a single font, or the first font of a collection.
func parseFontFile(path string) (*sfnt.Font, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	if strings.EqualFold(filepath.Ext(path), ".ttc") {
		coll, err := opentype.ParseCollection(data)
		if err != nil {
			return nil, fmt.Errorf("could not parse font collection: %w", err)
		}
		return coll.Font(0)
	}

	f, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("could not parse font: %w", err)
	}
	return f, nil
}

// lookupFont resolves a font name against the embedded Go fonts, then as a
// file name in the platform font directories.
func lookupFont(name string) (*sfnt.Font, error) {
	if data, ok := embedded[fontKey(name)]; ok {
		return opentype.Parse(data)
	}

	for _, dir := range fontDirs(runtime.GOOS) {
		f, err := parseFontFile(filepath.Join(dir, name))
		if err == nil {
			return f, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", errNoSuchFont, name)
}

func fontKey(name string) string {
	name = strings.ToLower(strings.TrimSuffix(name, filepath.Ext(name)))
	return strings.NewReplacer(" ", "", "-", "", "_", "").Replace(name)
}

package compose

import (
	"errors"
	"image"
	"image/color"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"statmeme/raster"
)

func discard() *slog.Logger { return slog.New(slog.NewTextHandler(io.Discard, nil)) }

func whitePanels(h, w int) [4]*raster.Image {
	var p [4]*raster.Image
	for i := range p {
		p[i] = raster.Filled(h, w, 1)
	}
	return p
}

func TestWriteUniformPanels(t *testing.T) {
	path := filepath.Join(t.TempDir(), "meme.png")
	opts := DefaultOptions()
	if err := Write(discard(), path, whitePanels(50, 50), opts); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	cfg, format, err := image.DecodeConfig(f)
	if err != nil {
		t.Fatalf("DecodeConfig() error = %v", err)
	}
	if format != "png" {
		t.Errorf("format = %q, want png", format)
	}
	if minW := 50 * 4; cfg.Width <= minW {
		t.Errorf("canvas width = %d px, want more than %d", cfg.Width, minW)
	}
	if cfg.Height <= 50 {
		t.Errorf("canvas height = %d px, want more than 50", cfg.Height)
	}

	if _, err := f.Seek(0, io.SeekStart); err != nil {
		t.Fatal(err)
	}
	dpi, err := DPI(f)
	if err != nil {
		t.Fatalf("DPI() error = %v", err)
	}
	if dpi != opts.DPI {
		t.Errorf("DPI() = %d, want %d", dpi, opts.DPI)
	}

	leftovers, _ := filepath.Glob(filepath.Join(filepath.Dir(path), "*.tmp"))
	if len(leftovers) != 0 {
		t.Errorf("temporary files left behind: %v", leftovers)
	}
}

func TestWriteFormats(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"m.jpg", "m.jpeg", "m.gif", "m.bmp", "m.tif", "m.TIFF"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name)
			if err := Write(discard(), path, whitePanels(20, 30), DefaultOptions()); err != nil {
				t.Fatalf("Write(%q) error = %v", name, err)
			}
			info, err := os.Stat(path)
			if err != nil {
				t.Fatal(err)
			}
			if info.Size() == 0 {
				t.Errorf("Write(%q) produced an empty file", name)
			}
		})
	}
}

func TestWriteUnsupportedFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "meme.svg")
	if err := Write(discard(), path, whitePanels(10, 10), DefaultOptions()); err == nil {
		t.Fatal("Write(.svg) error = nil, want error")
	}
	if _, err := os.Stat(path); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Write(.svg) left a file behind: %v", err)
	}
}

func TestRenderShapeMismatch(t *testing.T) {
	panels := whitePanels(50, 50)
	panels[2] = raster.Filled(50, 51, 1)

	_, err := Render(panels, DefaultOptions())
	var se *raster.ShapeError
	if !errors.As(err, &se) {
		t.Fatalf("Render() error = %v, want *raster.ShapeError", err)
	}
	if !errors.Is(err, raster.ErrShapeMismatch) {
		t.Errorf("Render() error does not match ErrShapeMismatch")
	}
	if se.Name != "image 3 (Selection Bias)" {
		t.Errorf("Name = %q, want image 3 (Selection Bias)", se.Name)
	}
	if want := (raster.Shape{Height: 50, Width: 51}); se.Actual != want {
		t.Errorf("Actual = %v, want %v", se.Actual, want)
	}
	if want := (raster.Shape{Height: 50, Width: 50}); se.Expected != want {
		t.Errorf("Expected = %v, want %v", se.Expected, want)
	}
}

func TestRenderInvalidOptions(t *testing.T) {
	opts := DefaultOptions()
	opts.DPI = 0
	if _, err := Render(whitePanels(5, 5), opts); err == nil {
		t.Error("Render(dpi=0) error = nil, want error")
	}

	panels := whitePanels(5, 5)
	panels[1] = nil
	if _, err := Render(panels, DefaultOptions()); err == nil {
		t.Error("Render(nil panel) error = nil, want error")
	}
}

func TestRenderPlacesPanelsUnscaled(t *testing.T) {
	var panels [4]*raster.Image
	for i := range panels {
		p := raster.New(12, 16)
		for j := range p.Pix {
			p.Pix[j] = float32((j+i)%3) / 2 // 0, 0.5, 1
		}
		panels[i] = p
	}

	opts := DefaultOptions()
	opts.Background = color.RGBA{R: 0xff, G: 0xc0, B: 0xcb, A: 0xff}
	canvas, err := Render(panels, opts)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	l := NewLayout(panels[0].Shape(), opts.DPI, opts.LabelSize)
	if canvas.Bounds() != l.Canvas {
		t.Fatalf("canvas = %v, want %v", canvas.Bounds(), l.Canvas)
	}
	for i, p := range panels {
		cell := l.Images[i]
		for y := range 12 {
			for x := range 16 {
				want := color.RGBAModel.Convert(p.At(x, y)).(color.RGBA)
				if got := canvas.RGBAAt(cell.Min.X+x, cell.Min.Y+y); got != want {
					t.Fatalf("panel %d pixel (%d,%d) = %v, want %v", i, x, y, got, want)
				}
			}
		}
		// border just outside the cell
		if got := canvas.RGBAAt(cell.Min.X-1, cell.Min.Y-1); got != (color.RGBA{A: 0xff}) {
			t.Errorf("panel %d border = %v, want black", i, got)
		}
	}

	// outer frame and background
	if got := canvas.RGBAAt(0, 0); got != (color.RGBA{A: 0xff}) {
		t.Errorf("frame corner = %v, want black", got)
	}
	bg := image.Pt(l.FrameBorder+1, l.FrameBorder+1)
	if got := canvas.RGBAAt(bg.X, bg.Y); got != opts.Background {
		t.Errorf("background = %v, want %v", got, opts.Background)
	}
}

func TestRenderDrawsLabels(t *testing.T) {
	opts := DefaultOptions()
	canvas, err := Render(whitePanels(200, 200), opts)
	if err != nil {
		t.Fatal(err)
	}
	l := NewLayout(raster.Shape{Height: 200, Width: 200}, opts.DPI, opts.LabelSize)
	for i, cell := range l.Labels {
		dark := 0
		for y := cell.Min.Y; y < cell.Max.Y; y++ {
			for x := cell.Min.X; x < cell.Max.X; x++ {
				if canvas.RGBAAt(x, y).R < 0x80 {
					dark++
				}
			}
		}
		if dark == 0 {
			t.Errorf("label %q not drawn", Labels[i])
		}
	}
}

func TestNewLayout(t *testing.T) {
	l := NewLayout(raster.Shape{Height: 50, Width: 50}, 150, 14)

	if l.CellBorder != 3 || l.FrameBorder != 4 || l.LabelPx != 29 {
		t.Errorf("borders = %d/%d, label = %d px", l.CellBorder, l.FrameBorder, l.LabelPx)
	}
	if want := image.Rect(0, 0, 254, 146); l.Canvas != want {
		t.Errorf("Canvas = %v, want %v", l.Canvas, want)
	}
	for i := range l.Images {
		if l.Images[i].Dx() != 50 || l.Images[i].Dy() != 50 {
			t.Errorf("image cell %d = %v, want 50x50", i, l.Images[i])
		}
		if l.Labels[i].Dx() != 50 {
			t.Errorf("label cell %d = %v, want width 50", i, l.Labels[i])
		}
		if i > 0 && l.Images[i].Min.X-l.Images[i-1].Max.X <= 2*l.CellBorder {
			t.Errorf("cells %d and %d borders touch", i-1, i)
		}
	}

	// width follows the panel width, height the panel height
	wide := NewLayout(raster.Shape{Height: 50, Width: 100}, 150, 14)
	if wide.Canvas.Dx() <= l.Canvas.Dx() || wide.Canvas.Dy() != l.Canvas.Dy() {
		t.Errorf("wider panels give canvas %v from %v", wide.Canvas, l.Canvas)
	}
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in   string
		want color.RGBA
	}{
		{"white", color.RGBA{0xff, 0xff, 0xff, 0xff}},
		{"LightGray", color.RGBA{0xd3, 0xd3, 0xd3, 0xff}},
		{"pink", color.RGBA{0xff, 0xc0, 0xcb, 0xff}},
		{"#abc", color.RGBA{0xaa, 0xbb, 0xcc, 0xff}},
		{"#102030", color.RGBA{0x10, 0x20, 0x30, 0xff}},
		{"#000000ff", color.RGBA{0, 0, 0, 0xff}},
		{"#fff0", color.RGBA{}},
	}
	for _, tt := range tests {
		got, err := ParseColor(tt.in)
		if err != nil {
			t.Errorf("ParseColor(%q) error = %v", tt.in, err)
			continue
		}
		if c := color.RGBAModel.Convert(got).(color.RGBA); c != tt.want {
			t.Errorf("ParseColor(%q) = %v, want %v", tt.in, c, tt.want)
		}
	}

	for _, bad := range []string{"", "notacolor", "#12", "#zzzzzz"} {
		if _, err := ParseColor(bad); err == nil {
			t.Errorf("ParseColor(%q) error = nil, want error", bad)
		}
	}
}

func TestFormatFor(t *testing.T) {
	tests := map[string]string{
		"a.png": "png", "a.PNG": "png", "a.jpg": "jpeg", "a.jpeg": "jpeg",
		"a.gif": "gif", "a.bmp": "bmp", "a.tif": "tiff", "a.tiff": "tiff",
	}
	for in, want := range tests {
		if got, err := FormatFor(in); err != nil || got != want {
			t.Errorf("FormatFor(%q) = %q, %v, want %q", in, got, err, want)
		}
	}
	if _, err := FormatFor("noext"); err == nil {
		t.Error("FormatFor(noext) error = nil, want error")
	}
}

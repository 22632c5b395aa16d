package raster

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"testing"
)

func TestShape(t *testing.T) {
	img := New(3, 5)
	if got, want := img.Shape(), (Shape{Height: 3, Width: 5}); got != want {
		t.Errorf("Shape() = %v, want %v", got, want)
	}
	if got := img.Shape().String(); got != "(3, 5)" {
		t.Errorf("String() = %q, want %q", got, "(3, 5)")
	}
	if got := len(img.Pix); got != 15 {
		t.Errorf("len(Pix) = %d, want 15", got)
	}
}

func TestCloneIsIndependent(t *testing.T) {
	img := Filled(2, 2, 0.25)
	c := img.Clone()
	c.SetValue(1, 1, 1)
	if img.Value(1, 1) != 0.25 {
		t.Error("writing to a clone changed the original")
	}
	if Equal(img, c) {
		t.Error("Equal() = true after diverging")
	}
}

func TestAtClamps(t *testing.T) {
	img := New(1, 3)
	img.Pix[0], img.Pix[1], img.Pix[2] = -0.5, 0.5, 2
	want := []uint16{0, 0x8000, 0xffff}
	for x, w := range want {
		if got := img.Gray16At(x, 0).Y; got != w {
			t.Errorf("Gray16At(%d) = %#x, want %#x", x, got, w)
		}
	}
}

func TestExpect(t *testing.T) {
	err := Expect("stipple", New(4, 4), Shape{Height: 4, Width: 5})
	if !errors.Is(err, ErrShapeMismatch) {
		t.Fatalf("Expect() = %v, want ErrShapeMismatch", err)
	}
	want := "shape mismatch: stipple has shape (4, 4), expected (4, 5)"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
	if err := Expect("stipple", New(4, 5), Shape{Height: 4, Width: 5}); err != nil {
		t.Errorf("Expect() = %v, want nil", err)
	}
}

func TestFromImage(t *testing.T) {
	src := image.NewRGBA(image.Rect(10, 10, 13, 11))
	src.Set(10, 10, color.Black)
	src.Set(11, 10, color.White)
	src.Set(12, 10, color.Transparent)

	got := FromImage(src)
	if got.Rect.Min != (image.Point{}) {
		t.Errorf("FromImage() origin = %v, want (0,0)", got.Rect.Min)
	}
	for x, want := range []float32{0, 1, 1} {
		if v := got.Value(x, 0); v != want {
			t.Errorf("FromImage() at %d = %v, want %v", x, v, want)
		}
	}
}

func TestFromImagePaletted(t *testing.T) {
	src := image.NewPaletted(image.Rect(0, 0, 2, 1), color.Palette{color.Black, color.White})
	src.SetColorIndex(1, 0, 1)

	got := FromImage(src)
	if got.Value(0, 0) != 0 || got.Value(1, 0) != 1 {
		t.Errorf("FromImage(paletted) = %v, want [0 1]", got.Pix)
	}
}

func TestDecodeRoundTrip(t *testing.T) {
	img := New(4, 4)
	for i := range img.Pix {
		img.Pix[i] = float32(i%2) // black and white only
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}

	got, imgType, err := Decode(&buf)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if imgType != "png" {
		t.Errorf("Decode() type = %q, want png", imgType)
	}
	if !Equal(got, img) {
		t.Errorf("Decode() = %v, want %v", got.Pix, img.Pix)
	}
}

package raster

import (
	"errors"
	"fmt"
)

var ErrShapeMismatch = errors.New("shape mismatch")

// Shape is the (height, width) of a plane.
type Shape struct {
	Height int
	Width  int
}

func (s Shape) String() string {
	return fmt.Sprintf("(%d, %d)", s.Height, s.Width)
}

// ShapeError reports a plane whose shape differs from the one expected.
type ShapeError struct {
	Name     string
	Expected Shape
	Actual   Shape
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("%s: %s has shape %s, expected %s", ErrShapeMismatch, e.Name, e.Actual, e.Expected)
}

func (e *ShapeError) Is(target error) bool {
	return target == ErrShapeMismatch
}

// Expect returns a *ShapeError when img is not of shape want.
func Expect(name string, img *Image, want Shape) error {
	if got := img.Shape(); got != want {
		return &ShapeError{Name: name, Expected: want, Actual: got}
	}
	return nil
}

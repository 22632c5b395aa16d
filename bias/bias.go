// Package bias simulates selection bias: samples that fall under the dark part
// of a mask are dropped from the stippled estimate.
package bias

import (
	"log/slog"

	"statmeme/raster"
)

const DefaultThreshold = 0.5

// Apply returns a copy of stipple erased to white wherever mask < threshold.
// Samples where mask >= threshold are kept as they are.
func Apply(logger *slog.Logger, stipple, mask *raster.Image, threshold float64) (*raster.Image, error) {
	if err := raster.Expect("mask", mask, stipple.Shape()); err != nil {
		return nil, err
	}

	out := stipple.Clone()
	for y := range out.Rect.Dy() {
		dst, m := out.Row(y), mask.Row(mask.Rect.Min.Y+y)
		for x := range dst {
			if float64(m[x]) < threshold {
				dst[x] = 1
			}
		}
	}

	st := Summarize(stipple, out, mask, threshold)
	logger.Info("applied mask",
		"threshold", threshold,
		"masked", st.Masked,
		"masked_pct", st.MaskedPercent(),
		"stipples", st.Stipples,
		"remaining", st.Remaining,
		"removed", st.Removed())
	return out, nil
}

// Stats describes how much of the stipple a mask removed.
type Stats struct {
	Total     int
	Masked    int
	Stipples  int // samples exactly 0 before masking
	Remaining int // samples exactly 0 after masking
}

func (s Stats) MaskedPercent() float64 {
	if s.Total == 0 {
		return 0
	}
	return float64(s.Masked) / float64(s.Total) * 100
}

func (s Stats) Removed() int {
	return s.Stipples - s.Remaining
}

// Summarize counts the effect of masking stipple into masked. The planes are
// assumed to share a shape.
func Summarize(stipple, masked, mask *raster.Image, threshold float64) Stats {
	st := Stats{Total: stipple.Rect.Dx() * stipple.Rect.Dy()}
	for y := range stipple.Rect.Dy() {
		s := stipple.Row(stipple.Rect.Min.Y + y)
		o := masked.Row(masked.Rect.Min.Y + y)
		m := mask.Row(mask.Rect.Min.Y + y)
		for x := range s {
			if float64(m[x]) < threshold {
				st.Masked++
			}
			if s[x] == 0 {
				st.Stipples++
			}
			if o[x] == 0 {
				st.Remaining++
			}
		}
	}
	return st
}

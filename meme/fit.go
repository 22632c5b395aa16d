package meme

import (
	"image"
	"image/color"
	"log/slog"
	"math"

	"golang.org/x/image/draw"
)

// fit scales img to width x height panels. A zero side keeps the source
// aspect ratio.
// With crop the source is trimmed to the panel aspect ratio; otherwise it is
// letterboxed in fillColor, or the panel shrinks to the source aspect ratio
// when fillColor is nil.
func fit(logger *slog.Logger, img image.Image, width, height int, crop bool, fillColor color.Color) image.Image {
	srcBounds := img.Bounds()
	srcWidth := float64(srcBounds.Dx())
	srcHeight := float64(srcBounds.Dy())

	destWidth, destHeight := float64(width), float64(height)
	switch {
	case width == 0 && height == 0:
		return img
	case width == 0:
		destWidth = max(1, math.Round(destHeight*srcWidth/srcHeight))
	case height == 0:
		destHeight = max(1, math.Round(destWidth*srcHeight/srcWidth))
	}

	if (srcWidth == destWidth) && (srcHeight == destHeight) {
		return img
	}

	canvas := image.Rect(0, 0, int(destWidth), int(destHeight))
	target := canvas

	srcAR := srcWidth / srcHeight
	destAR := destWidth / destHeight
	switch {
	case crop && srcAR < destAR:
		dh := int(math.Round((srcHeight - srcWidth/destAR) / 2))
		srcBounds.Min.Y += dh
		srcBounds.Max.Y -= dh
	case crop && srcAR > destAR:
		dw := int(math.Round((srcWidth - srcHeight*destAR) / 2))
		srcBounds.Min.X += dw
		srcBounds.Max.X -= dw
	case !crop && srcAR < destAR:
		w := int(math.Round(destHeight * srcAR))
		if fillColor == nil {
			canvas.Max.X = w
			target = canvas
		} else {
			target = centered(canvas, w, canvas.Dy())
		}
	case !crop && srcAR > destAR:
		h := int(math.Round(destWidth / srcAR))
		if fillColor == nil {
			canvas.Max.Y = h
			target = canvas
		} else {
			target = centered(canvas, canvas.Dx(), h)
		}
	}

	logger.Info("fitting original", "width", target.Dx(), "height", target.Dy(), "canvas", canvas.Size())
	dest := image.NewRGBA64(canvas)
	if fillColor != nil && target != canvas {
		draw.Draw(dest, canvas, image.NewUniform(fillColor), image.Point{}, draw.Src)
	}
	draw.CatmullRom.Scale(dest, target, img, srcBounds, draw.Over, nil)

	return dest
}

func centered(r image.Rectangle, w, h int) image.Rectangle {
	x := r.Min.X + (r.Dx()-w)/2
	y := r.Min.Y + (r.Dy()-h)/2
	return image.Rect(x, y, x+w, y+h)
}

package images

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"math"

	"github.com/fogleman/gg"
	"github.com/nfnt/resize"
	_ "golang.org/x/image/webp"
)

const jpegQuality = 85

// Prepare decodes an image and returns a JPEG of exactly width x height pixels.
// The source is scaled to cover the frame, centred, and clipped to a rounded
// rectangle with the given corner radius over a white background.
func Prepare(data []byte, width, height int, radius float64) ([]byte, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid target size %dx%d", width, height)
	}

	src, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	bounds := src.Bounds()
	if bounds.Dx() == 0 || bounds.Dy() == 0 {
		return nil, fmt.Errorf("image has no pixels (format %s)", format)
	}

	scale := math.Max(float64(width)/float64(bounds.Dx()), float64(height)/float64(bounds.Dy()))
	scaledW := uint(math.Ceil(float64(bounds.Dx()) * scale))
	scaledH := uint(math.Ceil(float64(bounds.Dy()) * scale))
	scaled := resize.Resize(scaledW, scaledH, src, resize.Lanczos3)

	dc := gg.NewContext(width, height)
	dc.SetRGB(1, 1, 1)
	dc.Clear()
	dc.DrawRoundedRectangle(0, 0, float64(width), float64(height), radius)
	dc.Clip()
	dc.DrawImageAnchored(scaled, width/2, height/2, 0.5, 0.5)
	dc.ResetClip()

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, dc.Image(), &jpeg.Options{Quality: jpegQuality}); err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}
	return buf.Bytes(), nil
}

package deck

import (
	"bytes"
	"fmt"
	"image"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
)

// imageSize reads the pixel dimensions from an encoded image without
// decoding the pixels.
func imageSize(data []byte) (int, int, error) {
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return 0, 0, fmt.Errorf("decode image header: %w", err)
	}
	return cfg.Width, cfg.Height, nil
}

// FitInto scales a w-by-h image to the largest size that fits inside the
// box while keeping aspect ratio, and centers it.
func FitInto(w, h int, box Box) Box {
	aspect := 1.0
	if h > 0 {
		aspect = float64(w) / float64(h)
	}
	boxAspect := 1.0
	if box.Height > 0 {
		boxAspect = float64(box.Width) / float64(box.Height)
	}

	var fw, fh int64
	if aspect > boxAspect {
		fw = box.Width
		fh = int64(float64(box.Width) / aspect)
	} else {
		fh = box.Height
		fw = int64(float64(box.Height) * aspect)
	}

	return Box{
		Left:   box.Left + (box.Width-fw)/2,
		Top:    box.Top + (box.Height-fh)/2,
		Width:  fw,
		Height: fh,
	}
}

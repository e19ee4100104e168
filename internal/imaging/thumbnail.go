package imaging

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"

	// Register the decoders for every MIME type the ingest gate accepts.
	_ "image/gif"
	_ "image/png"

	_ "golang.org/x/image/webp"

	"golang.org/x/image/draw"
)

// Processor produces JPEG thumbnails from uploaded images.
type Processor struct {
	maxWidth int
	quality  int // JPEG quality (1-100)
}

// NewProcessor creates a thumbnail processor. maxWidth bounds the longer
// side of the output; quality outside 1-100 falls back to 85.
func NewProcessor(maxWidth, quality int) *Processor {
	if maxWidth <= 0 {
		maxWidth = 400
	}
	if quality <= 0 || quality > 100 {
		quality = 85
	}
	return &Processor{
		maxWidth: maxWidth,
		quality:  quality,
	}
}

// Thumbnail decodes data, scales it down to fit the bounding box while
// keeping the aspect ratio, and returns it re-encoded as JPEG. Images
// already inside the box are re-encoded without scaling.
func (p *Processor) Thumbnail(data []byte) ([]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	resized := p.resize(img)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, resized, &jpeg.Options{Quality: p.quality}); err != nil {
		return nil, fmt.Errorf("failed to encode thumbnail: %w", err)
	}

	return buf.Bytes(), nil
}

// Dimensions returns the pixel dimensions of an encoded image without
// decoding the full pixel data.
func Dimensions(data []byte) (width, height int, err error) {
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return 0, 0, fmt.Errorf("failed to decode image header: %w", err)
	}
	return cfg.Width, cfg.Height, nil
}

func (p *Processor) resize(img image.Image) image.Image {
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	longer := width
	if height > longer {
		longer = height
	}
	if longer <= p.maxWidth {
		return img
	}

	scale := float64(p.maxWidth) / float64(longer)
	newWidth := int(float64(width) * scale)
	newHeight := int(float64(height) * scale)
	if newWidth < 1 {
		newWidth = 1
	}
	if newHeight < 1 {
		newHeight = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, newWidth, newHeight))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)

	return dst
}

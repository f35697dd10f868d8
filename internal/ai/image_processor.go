package ai

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png"

	"github.com/disintegration/imaging"
)

const (
	maxImageWidth = 1000 // px, enough to read game result banners
	jpegQuality   = 75
)

// ImageProcessor shrinks screenshots before they are sent to the model.
type ImageProcessor struct{}

func NewImageProcessor() *ImageProcessor {
	return &ImageProcessor{}
}

// OptimizeForAI decodes a PNG or JPEG screenshot, downsizes it to
// maxImageWidth keeping the aspect ratio and re-encodes it as JPEG.
// It returns the encoded bytes and their format name.
func (p *ImageProcessor) OptimizeForAI(data []byte) ([]byte, string, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, "", fmt.Errorf("failed to decode image: %w", err)
	}

	if img.Bounds().Dx() > maxImageWidth {
		img = imaging.Resize(img, maxImageWidth, 0, imaging.Lanczos)
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return nil, "", fmt.Errorf("failed to encode jpeg: %w", err)
	}

	return buf.Bytes(), "jpeg", nil
}

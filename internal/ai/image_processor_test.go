package ai

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"
)

func encodePNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		img.Set(x, h/2, color.RGBA{R: 200, A: 255})
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

func TestOptimizeForAIResizesWideImages(t *testing.T) {
	out, format, err := NewImageProcessor().OptimizeForAI(encodePNG(t, 2000, 1000))
	if err != nil {
		t.Fatalf("OptimizeForAI: %v", err)
	}
	if format != "jpeg" {
		t.Errorf("format = %q", format)
	}

	img, err := jpeg.Decode(bytes.NewReader(out))
	if err != nil {
		t.Fatalf("decode output: %v", err)
	}
	if b := img.Bounds(); b.Dx() != maxImageWidth || b.Dy() != 500 {
		t.Errorf("size = %dx%d", b.Dx(), b.Dy())
	}
}

func TestOptimizeForAIKeepsSmallImages(t *testing.T) {
	out, _, err := NewImageProcessor().OptimizeForAI(encodePNG(t, 400, 300))
	if err != nil {
		t.Fatalf("OptimizeForAI: %v", err)
	}
	img, err := jpeg.Decode(bytes.NewReader(out))
	if err != nil {
		t.Fatalf("decode output: %v", err)
	}
	if img.Bounds().Dx() != 400 {
		t.Errorf("width = %d", img.Bounds().Dx())
	}
}

func TestOptimizeForAIRejectsGarbage(t *testing.T) {
	if _, _, err := NewImageProcessor().OptimizeForAI([]byte("not an image")); err == nil {
		t.Error("expected decode error")
	}
}

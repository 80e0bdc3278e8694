package ocr

import (
	"bytes"
	"image"
	"image/png"
	"testing"
)

func TestInputFromImage(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 40, 60))
	in, err := InputFromImage(img, WithLanguages("chi_sim", "eng"), WithDPI(150))
	if err != nil {
		t.Fatalf("InputFromImage() error = %v", err)
	}
	if in.Format != ImageFormatPNG {
		t.Fatalf("format = %v", in.Format)
	}
	if in.DPI != 150 {
		t.Fatalf("dpi = %d", in.DPI)
	}
	if len(in.Languages) != 2 || in.Languages[0] != "chi_sim" {
		t.Fatalf("languages = %v", in.Languages)
	}
	decoded, err := png.Decode(bytes.NewReader(in.Image))
	if err != nil {
		t.Fatalf("decode payload: %v", err)
	}
	if decoded.Bounds().Dx() != 40 || decoded.Bounds().Dy() != 60 {
		t.Fatalf("payload bounds = %v", decoded.Bounds())
	}
}

func TestInputFromImageDownscalesOversized(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, maxEdge*2, maxEdge))
	in, err := InputFromImage(img)
	if err != nil {
		t.Fatalf("InputFromImage() error = %v", err)
	}
	decoded, err := png.Decode(bytes.NewReader(in.Image))
	if err != nil {
		t.Fatalf("decode payload: %v", err)
	}
	b := decoded.Bounds()
	if b.Dx() != maxEdge {
		t.Fatalf("width = %d, want %d", b.Dx(), maxEdge)
	}
	if b.Dy() != maxEdge/2 {
		t.Fatalf("height = %d, want %d", b.Dy(), maxEdge/2)
	}
}

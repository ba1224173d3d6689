package sink

import (
	"bytes"
	"image"
	"image/png"
	"testing"

	"github.com/matzehuels/blobsmith/pkg/errors"
)

func decodePNG(t *testing.T, data []byte) image.Image {
	t.Helper()
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("png.Decode: %v", err)
	}
	return img
}

func TestRenderPNG(t *testing.T) {
	s := loadScene(t)

	tests := []struct {
		name  string
		scale float64
		w, h  int
	}{
		{"default", 0, 400, 300},
		{"half", 0.5, 200, 150},
		{"double", 2, 800, 600},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var opts []PNGOption
			if tt.scale != 0 {
				opts = append(opts, WithScale(tt.scale))
			}
			data, err := RenderPNG(s, 1, opts...)
			if err != nil {
				t.Fatalf("RenderPNG: %v", err)
			}
			b := decodePNG(t, data).Bounds()
			if b.Dx() != tt.w || b.Dy() != tt.h {
				t.Errorf("size = %dx%d, want %dx%d", b.Dx(), b.Dy(), tt.w, tt.h)
			}
		})
	}
}

func TestRenderPNG_Pixels(t *testing.T) {
	s := loadScene(t)

	data, err := RenderPNG(s, 1)
	if err != nil {
		t.Fatalf("RenderPNG: %v", err)
	}
	img := decodePNG(t, data)

	// The opaque blob covers the canvas center; the corner is background.
	r, g, b, _ := img.At(200, 150).RGBA()
	if r>>8 != 0xE0 || g>>8 != 0x7B || b>>8 != 0x6C {
		t.Errorf("center = %02x%02x%02x, want E07B6C", r>>8, g>>8, b>>8)
	}
	r, g, b, _ = img.At(2, 2).RGBA()
	if r>>8 != 0xF7 || g>>8 != 0xE1 || b>>8 != 0xD7 {
		t.Errorf("corner = %02x%02x%02x, want F7E1D7", r>>8, g>>8, b>>8)
	}
}

func TestRenderPNG_Transparent(t *testing.T) {
	s := loadScene(t)

	data, err := RenderPNG(s, 1, WithTransparent())
	if err != nil {
		t.Fatalf("RenderPNG: %v", err)
	}
	if _, _, _, a := decodePNG(t, data).At(2, 2).RGBA(); a != 0 {
		t.Errorf("corner alpha = %d, want 0", a)
	}
}

func TestRenderPNG_GradientSlide(t *testing.T) {
	s := loadScene(t)

	data, err := RenderPNG(s, 0)
	if err != nil {
		t.Fatalf("RenderPNG: %v", err)
	}
	img := decodePNG(t, data)
	if b := img.Bounds(); b.Dx() != 400 || b.Dy() != 300 {
		t.Errorf("size = %dx%d, want 400x300", b.Dx(), b.Dy())
	}
}

func TestRenderPNG_InvalidScale(t *testing.T) {
	s := loadScene(t)

	for _, scale := range []float64{-1, 100} {
		if _, err := RenderPNG(s, 0, WithScale(scale)); !errors.Is(err, errors.ErrCodeInvalidInput) {
			t.Errorf("scale %g: got %v, want INVALID_INPUT", scale, err)
		}
	}
}

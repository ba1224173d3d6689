package sink

import (
	"testing"

	"github.com/matzehuels/blobsmith/pkg/errors"
)

func TestRenderSheet(t *testing.T) {
	s := loadScene(t)

	tests := []struct {
		name string
		opts []SheetOption
		w, h int
	}{
		// two slides in one row: 2*480 + 3*16 wide, 360 + 2*16 high
		{"default", nil, 1008, 392},
		{"one column", []SheetOption{WithColumns(1), WithThumbWidth(100), WithGap(0)}, 100, 150},
		{"wide", []SheetOption{WithColumns(5), WithThumbWidth(40), WithGap(4)}, 92, 38},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := RenderSheet(s, tt.opts...)
			if err != nil {
				t.Fatalf("RenderSheet: %v", err)
			}
			b := decodePNG(t, data).Bounds()
			if b.Dx() != tt.w || b.Dy() != tt.h {
				t.Errorf("size = %dx%d, want %dx%d", b.Dx(), b.Dy(), tt.w, tt.h)
			}
		})
	}
}

func TestRenderSheet_InvalidGeometry(t *testing.T) {
	s := loadScene(t)

	if _, err := RenderSheet(s, WithColumns(0)); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("got %v, want INVALID_INPUT", err)
	}
}

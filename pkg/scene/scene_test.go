package scene

import (
	"bytes"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/blobsmith/pkg/errors"
)

const deckTOML = `
width = 1920
height = 1080

[[slides]]
name = "title"
background = { gradient = { from = "#FDF8F3", to = "#E8F5F3" } }

[[slides.blobs]]
cx = 1780
cy = 120
rx = 260
ry = 220
color = "#B8E0D2"
opacity = 0.18
rotation = 15
seed = 100
style = "cloud"

[[slides.blobs]]
cx = 200
cy = 900
rx = 180
ry = 160
seed = 7
gradient = { from = "#1B8A8A", to = "#E07B6C" }

[[slides]]
background = { color = "#F7E1D7" }

[[slides.blobs]]
cx = 960
cy = 540
rx = 300
ry = 200
color = "#E07B6C"
`

func mustParse(t *testing.T, src string) *Scene {
	t.Helper()
	s, err := Parse(strings.NewReader(src))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	return s
}

func TestParse(t *testing.T) {
	s := mustParse(t, deckTOML)

	if len(s.Slides) != 2 {
		t.Fatalf("slides = %d, want 2", len(s.Slides))
	}
	title := s.Slides[0]
	if title.Background.Gradient == nil || title.Background.Gradient.From != "#FDF8F3" {
		t.Errorf("title background = %+v", title.Background)
	}
	if got := title.Blobs[0]; got.Style != "cloud" || got.Seed != 100 || got.Rotation != 15 {
		t.Errorf("first blob = %+v", got)
	}
	if got := title.Blobs[0].EffectiveOpacity(); got != 0.18 {
		t.Errorf("opacity = %v, want 0.18", got)
	}
	if title.Blobs[1].Gradient == nil {
		t.Fatal("second blob should be a gradient layer")
	}
}

func TestParse_Defaults(t *testing.T) {
	s := mustParse(t, `
[[slides]]
[[slides.blobs]]
cx = 10
cy = 10
rx = 5
ry = 5
color = "#000"
`)
	if s.Width != DefaultWidth || s.Height != DefaultHeight {
		t.Errorf("size = %gx%g, want %gx%g", s.Width, s.Height, DefaultWidth, DefaultHeight)
	}
	if got := s.Slides[0].Background.Color; got != DefaultBackground {
		t.Errorf("background = %q, want %q", got, DefaultBackground)
	}
	if got := s.Slides[0].Blobs[0].EffectiveOpacity(); got != DefaultOpacity {
		t.Errorf("opacity = %v, want %v", got, DefaultOpacity)
	}
}

func TestParse_ExplicitZeroOpacity(t *testing.T) {
	s := mustParse(t, `
[[slides]]
[[slides.blobs]]
cx = 10
cy = 10
rx = 5
ry = 5
color = "#000"
opacity = 0.0
`)
	if got := s.Slides[0].Blobs[0].EffectiveOpacity(); got != 0 {
		t.Errorf("opacity = %v, want 0", got)
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name    string
		src     string
		code    errors.Code
		contain string
	}{
		{
			name: "syntax",
			src:  "width = ",
			code: errors.ErrCodeInvalidScene,
		},
		{
			name:    "unknown key",
			src:     "[[slides]]\nnmae = \"x\"\n",
			code:    errors.ErrCodeInvalidScene,
			contain: "nmae",
		},
		{
			name:    "no slides",
			src:     "width = 100\n",
			code:    errors.ErrCodeInvalidScene,
			contain: "no slides",
		},
		{
			name: "negative size",
			src:  "width = -1\n[[slides]]\n",
			code: errors.ErrCodeInvalidScene,
		},
		{
			name: "bad background",
			src:  "[[slides]]\nbackground = { color = \"teal\" }\n",
			code: errors.ErrCodeInvalidColor,
		},
		{
			name: "missing color",
			src:  "[[slides]]\n[[slides.blobs]]\ncx = 1\ncy = 1\nrx = 1\nry = 1\n",
			code: errors.ErrCodeInvalidScene,
		},
		{
			name:    "opacity out of range",
			src:     "[[slides]]\n[[slides.blobs]]\ncx = 1\ncy = 1\nrx = 1\nry = 1\ncolor = \"#fff\"\nopacity = 1.5\n",
			code:    errors.ErrCodeInvalidScene,
			contain: "opacity",
		},
		{
			name: "zero radius",
			src:  "[[slides]]\n[[slides.blobs]]\ncx = 1\ncy = 1\nrx = 0\nry = 1\ncolor = \"#fff\"\n",
			code: errors.ErrCodeInvalidGeometry,
		},
		{
			name: "bad gradient color",
			src:  "[[slides]]\n[[slides.blobs]]\ncx = 1\ncy = 1\nrx = 1\nry = 1\ngradient = { from = \"#fff\", to = \"#ggg\" }\n",
			code: errors.ErrCodeInvalidColor,
		},
		{
			name:    "nan opacity",
			src:     "[[slides]]\n[[slides.blobs]]\ncx = 1\ncy = 1\nrx = 1\nry = 1\ncolor = \"#fff\"\nopacity = nan\n",
			code:    errors.ErrCodeInvalidScene,
			contain: "opacity",
		},
		{
			name: "infinite rotation",
			src:  "[[slides]]\n[[slides.blobs]]\ncx = 1\ncy = 1\nrx = 1\nry = 1\ncolor = \"#fff\"\nrotation = inf\n",
			code: errors.ErrCodeInvalidGeometry,
		},
		{
			name: "too many points",
			src:  "[[slides]]\n[[slides.blobs]]\ncx = 1\ncy = 1\nrx = 1\nry = 1\ncolor = \"#fff\"\npoints = 2000000\n",
			code: errors.ErrCodeInvalidGeometry,
		},
		{
			name: "nan width",
			src:  "width = nan\n[[slides]]\n",
			code: errors.ErrCodeInvalidScene,
		},
		{
			name:    "unsafe gradient id",
			src:     "[[slides]]\n[[slides.blobs]]\ncx = 1\ncy = 1\nrx = 1\nry = 1\ngradient = { from = \"#fff\", to = \"#000\", id = 'x\" onload=\"alert(1)' }\n",
			code:    errors.ErrCodeInvalidScene,
			contain: "gradient id",
		},
		{
			name: "slide name with separator",
			src:  "[[slides]]\nname = \"a/b\"\n",
			code: errors.ErrCodeInvalidScene,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(tt.src))
			if err == nil {
				t.Fatal("expected error")
			}
			if got := errors.GetCode(err); got != tt.code {
				t.Errorf("code = %q, want %q (err: %v)", got, tt.code, err)
			}
			if tt.contain != "" && !strings.Contains(err.Error(), tt.contain) {
				t.Errorf("error %q should mention %q", err, tt.contain)
			}
		})
	}
}

func TestParse_NormalizesColors(t *testing.T) {
	s := mustParse(t, `
[[slides]]
background = { color = " ffffff " }

[[slides.blobs]]
cx = 10
cy = 10
rx = 5
ry = 5
color = "E07B6C"

[[slides.blobs]]
cx = 10
cy = 10
rx = 5
ry = 5
gradient = { from = "fff", to = "#1B8A8A" }

[[slides]]
background = { gradient = { from = "FDF8F3", to = "#FEE5E0" } }
`)
	sl := s.Slides[0]
	if got := sl.Background.Color; got != "#ffffff" {
		t.Errorf("background = %q, want #ffffff", got)
	}
	if got := sl.Blobs[0].Color; got != "#E07B6C" {
		t.Errorf("layer color = %q, want #E07B6C", got)
	}
	if g := sl.Blobs[1].Gradient; g.From != "#fff" || g.To != "#1B8A8A" {
		t.Errorf("layer gradient = %q -> %q", g.From, g.To)
	}
	if g := s.Slides[1].Background.Gradient; g.From != "#FDF8F3" {
		t.Errorf("background gradient from = %q, want #FDF8F3", g.From)
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "deck.toml")
	if err := os.WriteFile(path, []byte(deckTOML), 0o644); err != nil {
		t.Fatal(err)
	}

	s, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(s.Slides) != 2 {
		t.Errorf("slides = %d, want 2", len(s.Slides))
	}

	_, err = Load(filepath.Join(dir, "missing.toml"))
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("missing file: got %v, want FILE_NOT_FOUND", err)
	}
}

func TestLoad_ExampleDeck(t *testing.T) {
	s, err := Load(filepath.Join("..", "..", "examples", "scene", "backgrounds.toml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	want := []string{"title", "section", "chat", "reveal"}
	if len(s.Slides) != len(want) {
		t.Fatalf("slides = %d, want %d", len(s.Slides), len(want))
	}
	for i, name := range want {
		if got := s.SlideName(i); got != name {
			t.Errorf("slide %d name = %q, want %q", i, got, name)
		}
	}
}

func TestEncodeRoundTrip(t *testing.T) {
	s := mustParse(t, deckTOML)

	var buf bytes.Buffer
	if err := Encode(&buf, s); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	again := mustParse(t, buf.String())
	if mustHash(t, s) != mustHash(t, again) {
		t.Error("hash changed after encode/parse")
	}
}

func TestSceneSlide(t *testing.T) {
	s := mustParse(t, deckTOML)

	if _, err := s.Slide(1); err != nil {
		t.Errorf("Slide(1): %v", err)
	}
	for _, i := range []int{-1, 2} {
		if _, err := s.Slide(i); !errors.Is(err, errors.ErrCodeSlideNotFound) {
			t.Errorf("Slide(%d): got %v, want SLIDE_NOT_FOUND", i, err)
		}
	}
}

func TestSlideName(t *testing.T) {
	s := mustParse(t, deckTOML)

	if got := s.SlideName(0); got != "title" {
		t.Errorf("SlideName(0) = %q, want title", got)
	}
	if got := s.SlideName(1); got != "slide2" {
		t.Errorf("SlideName(1) = %q, want slide2", got)
	}
}

func TestSlideShapes(t *testing.T) {
	s := mustParse(t, deckTOML)

	shapes, err := s.Slides[0].Shapes()
	if err != nil {
		t.Fatalf("Shapes: %v", err)
	}
	if len(shapes) != 2 {
		t.Fatalf("shapes = %d, want 2", len(shapes))
	}

	solid := shapes[0]
	if solid.Gradient != nil || solid.Color != "#B8E0D2" || solid.Opacity != 0.18 {
		t.Errorf("solid shape = %+v", solid)
	}
	if len(solid.Path.Segments) != 10 {
		t.Errorf("cloud segments = %d, want 10", len(solid.Path.Segments))
	}
	if solid.Path.Rotation != 15 {
		t.Errorf("rotation = %v, want 15", solid.Path.Rotation)
	}

	grad := shapes[1]
	if grad.Gradient == nil {
		t.Fatal("expected gradient shape")
	}
	if grad.Gradient.ID != "grad_7" {
		t.Errorf("gradient id = %q, want grad_7", grad.Gradient.ID)
	}
	if grad.Gradient.Opacity != DefaultOpacity {
		t.Errorf("gradient opacity = %v, want %v", grad.Gradient.Opacity, DefaultOpacity)
	}
	if len(grad.Path.Segments) != 7 {
		t.Errorf("gradient segments = %d, want 7", len(grad.Path.Segments))
	}
}

func mustHash(t *testing.T, s *Scene) string {
	t.Helper()
	h, err := s.Hash()
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}
	return h
}

func mustSlideHash(t *testing.T, s *Scene, i int) string {
	t.Helper()
	h, err := s.SlideHash(i)
	if err != nil {
		t.Fatalf("SlideHash(%d): %v", i, err)
	}
	return h
}

func TestHash(t *testing.T) {
	a := mustParse(t, deckTOML)
	b := mustParse(t, deckTOML)

	if mustHash(t, a) != mustHash(t, b) {
		t.Error("identical scenes should hash equally")
	}
	if h := mustHash(t, a); len(h) != 64 {
		t.Errorf("hash length = %d, want 64", len(h))
	}

	s0, s1 := mustSlideHash(t, a, 0), mustSlideHash(t, a, 1)
	b.Slides[1].Blobs[0].Seed++
	if mustSlideHash(t, b, 0) != s0 {
		t.Error("editing slide 1 changed slide 0's hash")
	}
	if mustSlideHash(t, b, 1) == s1 {
		t.Error("editing slide 1 should change its hash")
	}
	if mustHash(t, a) == mustHash(t, b) {
		t.Error("scene hash should change")
	}

	b.Width = 1280
	if mustSlideHash(t, b, 0) == s0 {
		t.Error("canvas size should be part of the slide hash")
	}
}

func TestHash_Errors(t *testing.T) {
	s := mustParse(t, deckTOML)
	if _, err := s.SlideHash(5); !errors.Is(err, errors.ErrCodeSlideNotFound) {
		t.Errorf("SlideHash(5): got %v, want SLIDE_NOT_FOUND", err)
	}

	nan := math.NaN()
	s.Slides[0].Blobs[0].Opacity = &nan
	if _, err := s.Hash(); !errors.Is(err, errors.ErrCodeInvalidScene) {
		t.Errorf("Hash with NaN: got %v, want INVALID_SCENE", err)
	}
	if _, err := s.SlideHash(0); !errors.Is(err, errors.ErrCodeInvalidScene) {
		t.Errorf("SlideHash with NaN: got %v, want INVALID_SCENE", err)
	}
}

package pipeline

import (
	"testing"

	"github.com/matzehuels/blobsmith/pkg/errors"
)

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"svg", false},
		{"png", false},
		{"pdf", false},
		{"json", false},
		{"sheet", false},
		{"invalid", true},
		{"SVG", true}, // case-sensitive; Options normalizes
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateFormat(tt.format)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
		}
		if err != nil && !errors.Is(err, errors.ErrCodeInvalidFormat) {
			t.Errorf("ValidateFormat(%q) code = %q", tt.format, errors.GetCode(err))
		}
	}
}

func TestValidateAndSetDefaults(t *testing.T) {
	var o Options
	if err := o.ValidateAndSetDefaults(); err != nil {
		t.Fatal(err)
	}
	if len(o.Formats) != 1 || o.Formats[0] != FormatSVG {
		t.Errorf("Formats = %v, want [svg]", o.Formats)
	}
	if o.Scale != DefaultScale {
		t.Errorf("Scale = %v, want %v", o.Scale, DefaultScale)
	}
	if o.Logger == nil {
		t.Error("Logger should default to a discard logger")
	}

	formats := []string{" PNG", "svg", "png"}
	o = Options{Formats: formats}
	if err := o.ValidateAndSetDefaults(); err != nil {
		t.Fatal(err)
	}
	if len(o.Formats) != 2 || o.Formats[0] != "png" || o.Formats[1] != "svg" {
		t.Errorf("Formats = %v, want [png svg]", o.Formats)
	}
	if formats[0] != " PNG" {
		t.Error("caller's slice should not be modified")
	}
}

func TestValidateAndSetDefaults_Errors(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		code errors.Code
	}{
		{"bad format", Options{Formats: []string{"gif"}}, errors.ErrCodeInvalidFormat},
		{"negative scale", Options{Scale: -1}, errors.ErrCodeInvalidInput},
		{"huge scale", Options{Scale: MaxScale + 1}, errors.ErrCodeInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.ValidateAndSetDefaults()
			if !errors.Is(err, tt.code) {
				t.Errorf("got %v, want %s", err, tt.code)
			}
		})
	}
}

func TestSlideIndices(t *testing.T) {
	o := Options{}
	idx, err := o.SlideIndices(3)
	if err != nil || len(idx) != 3 || idx[2] != 2 {
		t.Errorf("all slides = %v, %v", idx, err)
	}

	o.Slides = []int{2, 0, 2}
	idx, err = o.SlideIndices(3)
	if err != nil || len(idx) != 2 || idx[0] != 2 || idx[1] != 0 {
		t.Errorf("selected = %v, %v; want [2 0]", idx, err)
	}

	o.Slides = []int{3}
	if _, err := o.SlideIndices(3); !errors.Is(err, errors.ErrCodeSlideNotFound) {
		t.Errorf("out of range: got %v", err)
	}
}

func TestArtifactKeyOpts(t *testing.T) {
	o := Options{Scale: 2}
	if k := o.ArtifactKeyOpts(FormatSVG); k.Scale != 0 {
		t.Errorf("svg key should ignore scale, got %v", k.Scale)
	}
	if k := o.ArtifactKeyOpts(FormatPNG); k.Scale != 2 {
		t.Errorf("png key scale = %v, want 2", k.Scale)
	}
}

func TestExtensionAndContentType(t *testing.T) {
	tests := []struct{ format, ext, ctype string }{
		{FormatSVG, "svg", "image/svg+xml"},
		{FormatPNG, "png", "image/png"},
		{FormatSheet, "png", "image/png"},
		{FormatPDF, "pdf", "application/pdf"},
		{FormatJSON, "json", "application/json"},
	}
	for _, tt := range tests {
		if got := Extension(tt.format); got != tt.ext {
			t.Errorf("Extension(%s) = %s, want %s", tt.format, got, tt.ext)
		}
		if got := ContentType(tt.format); got != tt.ctype {
			t.Errorf("ContentType(%s) = %s, want %s", tt.format, got, tt.ctype)
		}
	}
}

// Package pipeline renders scenes into artifacts with caching.
//
// The CLI and the HTTP service both go through a [Runner] so they share the
// same cache keys, the same defaults and the same observability events.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Render(ctx, s, pipeline.Options{
//	    Formats: []string{"svg", "png"},
//	    Scale:   2,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, a := range result.Artifacts {
//	    fmt.Println(a.Slide, a.Format, len(a.Data), a.Cached)
//	}
//
// Each (slide, format) pair is cached separately under a key derived from
// the slide's content hash, so editing one slide re-renders only that slide.
// The contact sheet depends on every slide and is keyed by the scene hash.
package pipeline

import (
	"fmt"
	"io"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/blobsmith/pkg/cache"
	"github.com/matzehuels/blobsmith/pkg/errors"
)

const (
	// DefaultScale is the raster scale factor for PNG output.
	DefaultScale = 1.0

	// MaxScale bounds the raster scale factor.
	MaxScale = 8.0

	// SheetSlide is the Slide value of the contact sheet artifact.
	SheetSlide = -1
)

// Format constants for output formats.
const (
	FormatSVG   = "svg"
	FormatPNG   = "png"
	FormatPDF   = "pdf"
	FormatJSON  = "json"
	FormatSheet = "sheet"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:   true,
	FormatPNG:   true,
	FormatPDF:   true,
	FormatJSON:  true,
	FormatSheet: true,
}

// Extension returns the file extension for a format.
func Extension(format string) string {
	if format == FormatSheet {
		return "png"
	}
	return format
}

// ContentType returns the MIME type for a format.
func ContentType(format string) string {
	switch format {
	case FormatSVG:
		return "image/svg+xml"
	case FormatPNG, FormatSheet:
		return "image/png"
	case FormatPDF:
		return "application/pdf"
	case FormatJSON:
		return "application/json"
	}
	return "application/octet-stream"
}

// =============================================================================
// Options
// =============================================================================

// Options configures a render run.
type Options struct {
	Formats []string `json:"formats,omitempty"`
	Slides  []int    `json:"slides,omitempty"` // empty means every slide
	Scale   float64  `json:"scale,omitempty"`
	Refresh bool     `json:"refresh,omitempty"` // skip cache reads, still write

	Logger *log.Logger `json:"-"`

	validated bool
}

// Result contains the outputs of a render run.
type Result struct {
	// SceneHash is the content hash of the rendered scene.
	SceneHash string

	// Artifacts are ordered by slide, then by the order of Options.Formats.
	// A contact sheet comes last.
	Artifacts []Artifact

	Stats     Stats
	CacheInfo CacheInfo
}

// Artifact is one rendered output.
type Artifact struct {
	Slide  int // SheetSlide for the contact sheet
	Name   string
	Format string
	Data   []byte
	Cached bool
}

// Stats contains run statistics.
type Stats struct {
	Slides     int
	Bytes      int
	RenderTime time.Duration
}

// CacheInfo counts cache hits and misses across artifacts.
type CacheInfo struct {
	Hits   int
	Misses int
}

// AllHit reports whether every artifact came from the cache.
func (c CacheInfo) AllHit() bool { return c.Misses == 0 && c.Hits > 0 }

// Get returns the artifact for slide and format.
func (r *Result) Get(slide int, format string) (Artifact, bool) {
	for _, a := range r.Artifacts {
		if a.Slide == slide && a.Format == format {
			return a, true
		}
	}
	return Artifact{}, false
}

// =============================================================================
// Validation
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: %s)", format, strings.Join(FormatNames(), ", "))
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// FormatNames returns the supported formats in sorted order.
func FormatNames() []string {
	names := make([]string, 0, len(ValidFormats))
	for f := range ValidFormats {
		names = append(names, f)
	}
	slices.Sort(names)
	return names
}

// ValidateAndSetDefaults checks options and applies defaults.
// This method is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	o.Formats = slices.Clone(o.Formats)
	for i, f := range o.Formats {
		o.Formats[i] = strings.ToLower(strings.TrimSpace(f))
	}
	o.Formats = dedupe(o.Formats)
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}

	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
	if !(o.Scale > 0) || o.Scale > MaxScale {
		return errors.New(errors.ErrCodeInvalidInput, "scale must be in (0, %g], got %g", MaxScale, o.Scale)
	}

	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	o.validated = true
	return nil
}

// SlideIndices resolves Options.Slides against a scene of n slides.
func (o *Options) SlideIndices(n int) ([]int, error) {
	if len(o.Slides) == 0 {
		idx := make([]int, n)
		for i := range idx {
			idx[i] = i
		}
		return idx, nil
	}
	for _, i := range o.Slides {
		if i < 0 || i >= n {
			return nil, errors.New(errors.ErrCodeSlideNotFound, "slide %d out of range (scene has %d)", i, n)
		}
	}
	return dedupe(o.Slides), nil
}

// ArtifactKeyOpts returns cache key options for a format. Scale only
// affects PNG slides; the contact sheet has a fixed thumbnail size.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	k := cache.ArtifactKeyOpts{Format: format}
	if format == FormatPNG {
		k.Scale = o.Scale
	}
	return k
}

func dedupe[T comparable](in []T) []T {
	seen := make(map[T]bool, len(in))
	out := in[:0:0]
	for _, v := range in {
		if !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	return out
}

func (a Artifact) String() string {
	if a.Slide == SheetSlide {
		return fmt.Sprintf("sheet.%s", Extension(a.Format))
	}
	return fmt.Sprintf("%d:%s.%s", a.Slide, a.Name, Extension(a.Format))
}

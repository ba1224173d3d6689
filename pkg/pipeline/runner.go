package pipeline

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/blobsmith/pkg/cache"
	"github.com/matzehuels/blobsmith/pkg/observability"
	"github.com/matzehuels/blobsmith/pkg/scene"
)

// Runner renders scenes with caching.
//
// The Runner is stateless except for the cache and logger. Multiple
// goroutines can safely use the same Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
	TTL    time.Duration // artifact lifetime, defaults to cache.TTLArtifact
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
		TTL:    cache.TTLArtifact,
	}
}

// Render renders the selected slides of s in every requested format.
// The context is checked between artifacts.
func (r *Runner) Render(ctx context.Context, s *scene.Scene, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	r.applyLogger(&opts)

	slides, err := opts.SlideIndices(len(s.Slides))
	if err != nil {
		return nil, err
	}

	sceneHash, err := s.Hash()
	if err != nil {
		return nil, err
	}
	result := &Result{SceneHash: sceneHash}
	start := time.Now()

	for _, i := range slides {
		slideHash, err := s.SlideHash(i)
		if err != nil {
			return nil, err
		}
		for _, format := range opts.Formats {
			if format == FormatSheet {
				continue
			}
			if err := ctx.Err(); err != nil {
				return nil, err
			}

			key := r.Keyer.ArtifactKey(slideHash, opts.ArtifactKeyOpts(format))
			data, hit, err := r.cached(ctx, key, opts.Refresh, i, format, func() ([]byte, error) {
				return RenderSlide(s, i, format, opts)
			})
			if err != nil {
				return nil, fmt.Errorf("slide %d (%s) %s: %w", i, s.SlideName(i), format, err)
			}
			result.add(Artifact{Slide: i, Name: s.SlideName(i), Format: format, Data: data, Cached: hit})
		}
		result.Stats.Slides++
	}

	if slices.Contains(opts.Formats, FormatSheet) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		key := r.Keyer.ArtifactKey(result.SceneHash, opts.ArtifactKeyOpts(FormatSheet))
		data, hit, err := r.cached(ctx, key, opts.Refresh, SheetSlide, FormatSheet, func() ([]byte, error) {
			return RenderSheet(s)
		})
		if err != nil {
			return nil, fmt.Errorf("contact sheet: %w", err)
		}
		result.add(Artifact{Slide: SheetSlide, Name: "sheet", Format: FormatSheet, Data: data, Cached: hit})
	}

	result.Stats.RenderTime = time.Since(start)
	opts.Logger.Info("rendered scene",
		"slides", result.Stats.Slides,
		"artifacts", len(result.Artifacts),
		"cached", result.CacheInfo.Hits,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// cached returns the entry under key, or renders, stores and returns it.
// Cache read and write failures are logged and otherwise ignored.
func (r *Runner) cached(ctx context.Context, key string, refresh bool, slide int, format string, render func() ([]byte, error)) ([]byte, bool, error) {
	if !refresh {
		data, hit, err := r.Cache.Get(ctx, key)
		if err != nil {
			r.Logger.Warn("cache read failed", "key", key, "err", err)
		}
		if err == nil && hit {
			observability.Cache().OnCacheHit(ctx, "artifact")
			r.Logger.Debug("cache hit", "slide", slide, "format", format)
			return data, true, nil
		}
		observability.Cache().OnCacheMiss(ctx, "artifact")
	}

	hooks := observability.Render()
	hooks.OnRenderStart(ctx, slide, format)
	start := time.Now()
	data, err := render()
	hooks.OnRenderComplete(ctx, slide, format, len(data), time.Since(start), err)
	if err != nil {
		return nil, false, err
	}
	r.Logger.Debug("rendered", "slide", slide, "format", format, "bytes", len(data), "duration", time.Since(start))

	if err := r.Cache.Set(ctx, key, data, r.TTL); err != nil {
		r.Logger.Warn("cache write failed", "key", key, "err", err)
	} else {
		observability.Cache().OnCacheSet(ctx, "artifact", len(data))
	}
	return data, false, nil
}

// RenderOne renders a single artifact. Pass SheetSlide with FormatSheet for
// the contact sheet.
func (r *Runner) RenderOne(ctx context.Context, s *scene.Scene, slide int, format string, opts Options) (Artifact, error) {
	opts.Formats = []string{format}
	opts.validated = false
	if slide != SheetSlide {
		opts.Slides = []int{slide}
	} else if format != FormatSheet {
		return Artifact{}, fmt.Errorf("slide %d only supports format %s", SheetSlide, FormatSheet)
	}

	res, err := r.Render(ctx, s, opts)
	if err != nil {
		return Artifact{}, err
	}
	a, ok := res.Get(slide, format)
	if !ok {
		return Artifact{}, fmt.Errorf("no %s artifact for slide %d", format, slide)
	}
	return a, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}

func (res *Result) add(a Artifact) {
	res.Artifacts = append(res.Artifacts, a)
	res.Stats.Bytes += len(a.Data)
	if a.Cached {
		res.CacheInfo.Hits++
	} else {
		res.CacheInfo.Misses++
	}
}


// Package pkg provides the core libraries for blobsmith.
//
// # Overview
//
// Blobsmith generates smooth, closed, organic "blob" outlines for slide
// backgrounds and renders decks of them. The pkg directory is organized as:
//
//  1. [blob] - Deterministic blob geometry (presets, seeded variation, beziers)
//  2. [scene] - TOML scene model: slides, backgrounds and blob layers
//  3. [render] - Sinks for SVG, PNG, PDF, JSON and contact sheets
//  4. [pipeline] - Cached orchestration of scene → artifacts
//  5. [cache] - File, Redis, MongoDB and null backends plus key derivation
//  6. [observability] - Render, cache and HTTP hooks
//  7. [errors] - Coded errors shared by the CLI and the HTTP API
//
// # Architecture
//
//	scene.toml
//	    ↓
//	[scene] package (parse, defaults, validate)
//	    ↓
//	[blob] package (one path per layer)
//	    ↓
//	[render/sink] package (SVG / PNG / PDF / JSON / sheet)
//	    ↓
//	[pipeline] + [cache]
//
// # Quick Start
//
//	p, err := blob.Generate(blob.Spec{
//	    Center: blob.Point{X: 960, Y: 540},
//	    RX:     300,
//	    RY:     220,
//	    Style:  blob.Cloud,
//	    Seed:   7,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(p.D())
//
// [blob]: github.com/matzehuels/blobsmith/pkg/blob
// [scene]: github.com/matzehuels/blobsmith/pkg/scene
// [render]: github.com/matzehuels/blobsmith/pkg/render
// [pipeline]: github.com/matzehuels/blobsmith/pkg/pipeline
// [cache]: github.com/matzehuels/blobsmith/pkg/cache
// [observability]: github.com/matzehuels/blobsmith/pkg/observability
// [errors]: github.com/matzehuels/blobsmith/pkg/errors
package pkg

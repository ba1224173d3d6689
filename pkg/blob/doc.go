// Package blob generates smooth, organically irregular closed outlines.
//
// # Overview
//
// A blob is described by a [Spec]: a center, two nominal radii, a [Style]
// preset, a rotation and an integer seed. [Generate] samples the style's
// vertex count at evenly spaced angles, perturbs each radius with a sum of
// sine waves plus a little seeded jitter, and joins the vertices with one
// cubic Bezier per edge using Catmull-Rom style control points:
//
//	cp1 = v[i]   + (v[i+1] - v[i-1]) * smooth
//	cp2 = v[i+1] - (v[i+2] - v[i])   * smooth
//
// The result is a [Path]: a move-to, N cubic curves and a close.
//
// # Styles
//
// Four presets ship with the package:
//
//	style    points  var1  var2  smooth
//	organic  6       0.22  0.15  0.25
//	amoeba   8       0.35  0.20  0.30
//	cloud    10      0.15  0.25  0.20
//	wave     5       0.30  0.10  0.35
//
// Unknown style names fall back to [Organic]. This is not an error.
//
// # Reproducible Randomness
//
// The jitter comes from a PCG generator seeded from [Spec.Seed], so the same
// spec always produces the same path, byte for byte:
//
//	a, _ := blob.Generate(spec)
//	b, _ := blob.Generate(spec)
//	a.D() == b.D() // always true
//
// # Gradient Blobs
//
// [GenerateGradient] is the simpler sibling used for gradient-filled shapes:
// seven vertices, two harmonics, no jitter, and a two-stop linear gradient
// keyed by an ID.
//
// # Rotation
//
// Rotation is kept as a transform about the center (see [Path.Transform]),
// which is how SVG consumers apply it. [Path.Bake] applies it to the
// coordinates for consumers that need absolute geometry.
package blob

// Package scene describes decks of decorative slides built from blob layers.
//
// A scene is a TOML file with a canvas size and a list of slides. Each slide
// has a background fill and any number of blob layers:
//
//	width = 1920
//	height = 1080
//
//	[[slides]]
//	name = "title"
//	background = { color = "#FDF8F3" }
//
//	[[slides.blobs]]
//	cx = 1780
//	cy = 120
//	rx = 260
//	ry = 220
//	color = "#E8F5F3"
//	opacity = 0.18
//	rotation = 15
//	seed = 100
//	style = "cloud"
//
// A layer with a gradient table is generated with [blob.GenerateGradient]
// instead of [blob.Generate]:
//
//	[[slides.blobs]]
//	cx = 400
//	cy = 300
//	rx = 120
//	ry = 90
//	seed = 5
//	gradient = { from = "#1B8A8A", to = "#E07B6C" }
//
// [Load] and [Parse] decode, apply defaults and validate. Validation
// generates every layer once, so geometry errors surface at load time rather
// than halfway through a render.
package scene

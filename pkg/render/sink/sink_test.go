package sink

import (
	"strings"
	"testing"

	"github.com/matzehuels/blobsmith/pkg/scene"
)

const testScene = `
width = 400
height = 300

[[slides]]
name = "intro"
background = { gradient = { from = "#FDF8F3", to = "#E8F5F3" } }

[[slides.blobs]]
cx = 300
cy = 60
rx = 80
ry = 60
color = "#1B8A8A"
opacity = 0.25
rotation = 15
seed = 100
style = "cloud"

[[slides.blobs]]
cx = 80
cy = 220
rx = 70
ry = 50
seed = 7
gradient = { from = "#1B8A8A", to = "#E07B6C" }

[[slides]]
name = "plain"
background = { color = "#F7E1D7" }

[[slides.blobs]]
cx = 200
cy = 150
rx = 120
ry = 90
color = "#E07B6C"
opacity = 1.0
`

func loadScene(t *testing.T) *scene.Scene {
	t.Helper()
	s, err := scene.Parse(strings.NewReader(testScene))
	if err != nil {
		t.Fatalf("scene.Parse: %v", err)
	}
	return s
}

package scene

import (
	"image/color"
	"math"
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/matzehuels/blobsmith/pkg/errors"
)

// ParseColor converts a "#rgb" or "#rrggbb" hex color and an opacity in
// [0, 1] into a non-premultiplied RGBA color. The leading "#" is optional.
func ParseColor(hex string, opacity float64) (color.NRGBA, error) {
	c, err := parseHex(hex)
	if err != nil {
		return color.NRGBA{}, err
	}
	r, g, b := c.Clamped().RGB255()
	a := uint8(math.Round(max(0, min(opacity, 1)) * 255))
	return color.NRGBA{R: r, G: g, B: b, A: a}, nil
}

// NormalizeColor validates hex and returns it trimmed with a leading "#",
// the form SVG consumers accept. Digits and their case are kept.
func NormalizeColor(hex string) (string, error) {
	if _, err := parseHex(hex); err != nil {
		return "", err
	}
	return "#" + strings.TrimPrefix(strings.TrimSpace(hex), "#"), nil
}

func parseHex(hex string) (colorful.Color, error) {
	hex = strings.TrimSpace(hex)
	if hex == "" {
		return colorful.Color{}, errors.New(errors.ErrCodeInvalidColor, "color cannot be empty")
	}
	if !strings.HasPrefix(hex, "#") {
		hex = "#" + hex
	}
	if n := len(hex) - 1; n != 3 && n != 6 {
		return colorful.Color{}, errors.New(errors.ErrCodeInvalidColor, "invalid color %q: want #rgb or #rrggbb", hex)
	}

	c, err := colorful.Hex(hex)
	if err != nil {
		return colorful.Color{}, errors.Wrap(errors.ErrCodeInvalidColor, err, "invalid color %q", hex)
	}
	return c, nil
}

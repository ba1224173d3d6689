package blob

// Style names a shape preset.
type Style string

// Known styles.
const (
	Organic Style = "organic" // natural flowing shape
	Amoeba  Style = "amoeba"  // more irregular, more vertices
	Cloud   Style = "cloud"   // puffy, many small lobes
	Wave    Style = "wave"    // few vertices, long flowing edges
)

// DefaultStyle is used for unknown style names.
const DefaultStyle = Organic

// Preset holds the shape parameters for a style.
type Preset struct {
	Points int     // vertex count
	Var1   float64 // amplitude of the 3rd harmonic
	Var2   float64 // amplitude of the 2nd harmonic
	Smooth float64 // control point tension
}

const (
	baseScale    = 0.85 // nominal radius multiplier before variation
	yDamping     = 0.9  // vertical variation is damped relative to horizontal
	harmonic5Amp = 0.08
	jitterAmp    = 0.05
)

// Envelope returns the maximum absolute variation the preset can add to the
// base radius scale. Every radial scale factor lies in
// [0.85-Envelope, 0.85+Envelope].
func (p Preset) Envelope() float64 {
	return p.Var1 + p.Var2 + harmonic5Amp + jitterAmp
}

func (s Style) preset() (Preset, bool) {
	switch s {
	case Organic:
		return Preset{Points: 6, Var1: 0.22, Var2: 0.15, Smooth: 0.25}, true
	case Amoeba:
		return Preset{Points: 8, Var1: 0.35, Var2: 0.20, Smooth: 0.30}, true
	case Cloud:
		return Preset{Points: 10, Var1: 0.15, Var2: 0.25, Smooth: 0.20}, true
	case Wave:
		return Preset{Points: 5, Var1: 0.30, Var2: 0.10, Smooth: 0.35}, true
	}
	return Preset{}, false
}

// Known reports whether s names a built-in preset.
func (s Style) Known() bool {
	_, ok := s.preset()
	return ok
}

// ResolveStyle returns s if it is known and DefaultStyle otherwise.
func ResolveStyle(s Style) Style {
	if s.Known() {
		return s
	}
	return DefaultStyle
}

// PresetFor returns the preset for s, falling back to DefaultStyle.
func PresetFor(s Style) Preset {
	p, _ := ResolveStyle(s).preset()
	return p
}

// Styles lists the built-in styles in table order.
func Styles() []Style {
	return []Style{Organic, Amoeba, Cloud, Wave}
}

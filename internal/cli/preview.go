package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/blobsmith/pkg/blob"
	"github.com/matzehuels/blobsmith/pkg/render/sink"
)

const (
	previewCols   = 64
	previewRows   = 28
	previewMargin = 1.35 // canvas size relative to the blob's extent
	rotationStep  = 15.0
	previewFill   = "█"
	previewEmpty  = "·"
)

var (
	previewBlobStyle  = lipgloss.NewStyle().Foreground(colorTeal)
	previewFrameStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorDim)
)

// previewCommand creates the interactive preview command.
func (c *CLI) previewCommand() *cobra.Command {
	var styleName string
	m := PreviewModel{RX: 150, RY: 110, Color: "#E07B6C", Opacity: 0.6}

	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Explore blob seeds and styles in the terminal",
		Long: `Draw a blob as a character raster and adjust it live.

Keys:
  ←/→ or h/l   previous/next seed
  tab          next style
  r/R          rotate by ±15°
  +/-          add/remove a vertex (0 restores the preset)
  w            write the current blob as SVG
  q            quit`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := parseStyle(styleName)
			if err != nil {
				return err
			}
			m.Style = st
			m.Dir = "."
			final, err := tea.NewProgram(m, tea.WithContext(cmd.Context())).Run()
			if err != nil {
				return err
			}
			if pm, ok := final.(PreviewModel); ok && pm.Written != "" {
				printSuccess("Last written: %s", pm.Written)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&styleName, "style", string(blob.DefaultStyle), "initial style")
	cmd.Flags().Int64Var(&m.Seed, "seed", 0, "initial seed")
	cmd.Flags().Float64Var(&m.RX, "rx", m.RX, "horizontal radius")
	cmd.Flags().Float64Var(&m.RY, "ry", m.RY, "vertical radius")
	cmd.Flags().StringVar(&m.Color, "color", m.Color, "fill color for written SVGs")
	cmd.Flags().Float64Var(&m.Opacity, "opacity", m.Opacity, "fill opacity for written SVGs")

	return cmd
}

// =============================================================================
// PreviewModel - Interactive blob explorer
// =============================================================================

// PreviewModel is the bubbletea model for the blob previewer.
type PreviewModel struct {
	Style    blob.Style
	Seed     int64
	Rotation float64
	Points   int // 0 uses the preset
	RX, RY   float64
	Color    string
	Opacity  float64

	Dir     string // where w writes SVGs
	Written string // last written file
	Status  string
}

// Spec returns the blob spec for the current state, centered on the origin.
func (m PreviewModel) Spec() blob.Spec {
	return blob.Spec{
		RX:       m.RX,
		RY:       m.RY,
		Style:    m.Style,
		Rotation: m.Rotation,
		Seed:     m.Seed,
		Points:   m.Points,
	}
}

func (m PreviewModel) Init() tea.Cmd {
	return nil
}

func (m PreviewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	m.Status = ""
	switch key.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case "right", "l":
		m.Seed++
	case "left", "h":
		m.Seed--
	case "tab":
		m.Style = nextStyle(m.Style)
	case "r":
		m.Rotation = normDegrees(m.Rotation + rotationStep)
	case "R":
		m.Rotation = normDegrees(m.Rotation - rotationStep)
	case "+", "=":
		if n := m.vertexCount(); n < blob.MaxPoints {
			m.Points = n + 1
		}
	case "-", "_":
		if n := m.vertexCount(); n > blob.MinPoints {
			m.Points = n - 1
		}
	case "0":
		m.Points = 0
	case "w":
		path, err := m.writeSVG()
		if err != nil {
			m.Status = "error: " + err.Error()
		} else {
			m.Written = path
			m.Status = "wrote " + path
		}
	}
	return m, nil
}

func (m PreviewModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Blob Preview"))
	b.WriteString("\n")
	b.WriteString(StyleDim.Render("←/→ seed  tab style  r/R rotate  +/- points  w write  q quit"))
	b.WriteString("\n\n")

	p, err := blob.Generate(m.Spec())
	if err != nil {
		b.WriteString(styleIconError.Render(iconError) + " " + err.Error() + "\n")
		return b.String()
	}
	b.WriteString(previewFrameStyle.Render(rasterize(p, previewCols, previewRows)))
	b.WriteString("\n")

	fmt.Fprintf(&b, "%s %s  %s %d  %s %g°  %s %d\n",
		StyleDim.Render("style"), StyleHighlight.Render(string(m.Style)),
		StyleDim.Render("seed"), m.Seed,
		StyleDim.Render("rotation"), m.Rotation,
		StyleDim.Render("points"), m.vertexCount())
	if m.Status != "" {
		b.WriteString(StyleDim.Render(m.Status))
		b.WriteString("\n")
	}
	return b.String()
}

// vertexCount returns the effective number of vertices.
func (m PreviewModel) vertexCount() int {
	if m.Points > 0 {
		return m.Points
	}
	return blob.PresetFor(m.Style).Points
}

// writeSVG writes the current blob to Dir as blob_<style>_<seed>.svg.
func (m PreviewModel) writeSVG() (string, error) {
	spec := m.Spec()
	size := 2 * previewMargin * max(m.RX, m.RY)
	spec.Center = blob.Point{X: size / 2, Y: size / 2}
	p, err := blob.Generate(spec)
	if err != nil {
		return "", err
	}
	name := fmt.Sprintf("blob_%s_%d.svg", m.Style, m.Seed)
	path := filepath.Join(m.Dir, name)
	doc := sink.Document(size, size, sink.BlobElement(p, m.Color, m.Opacity))
	if err := os.WriteFile(path, doc, 0o644); err != nil {
		return "", err
	}
	return path, nil
}

// rasterize samples p on a cols×rows character grid. Terminal cells are about
// twice as tall as wide, so each row covers two columns' worth of height.
func rasterize(p blob.Path, cols, rows int) string {
	baked := p.Bake()
	b := baked.Bounds()
	half := previewMargin * max(b.Width()/2, b.Height()*float64(cols)/float64(4*rows))
	cx, cy := (b.Min.X+b.Max.X)/2, (b.Min.Y+b.Max.Y)/2

	xStep := 2 * half / float64(cols)
	yStep := xStep * 2
	top := cy - yStep*float64(rows)/2

	var out strings.Builder
	for r := range rows {
		y := top + (float64(r)+0.5)*yStep
		for c := range cols {
			x := cx - half + (float64(c)+0.5)*xStep
			if baked.Contains(blob.Point{X: x, Y: y}) {
				out.WriteString(previewBlobStyle.Render(previewFill))
			} else {
				out.WriteString(StyleDim.Render(previewEmpty))
			}
		}
		if r < rows-1 {
			out.WriteByte('\n')
		}
	}
	return out.String()
}

func nextStyle(s blob.Style) blob.Style {
	styles := blob.Styles()
	for i, st := range styles {
		if st == s {
			return styles[(i+1)%len(styles)]
		}
	}
	return styles[0]
}

func normDegrees(d float64) float64 {
	for d >= 360 {
		d -= 360
	}
	for d < 0 {
		d += 360
	}
	return d
}

package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/blobsmith/pkg/blob"
	"github.com/matzehuels/blobsmith/pkg/render/sink"
	"github.com/matzehuels/blobsmith/pkg/scene"
)

// blobOpts holds the flags for the blob command.
type blobOpts struct {
	layer    scene.Layer
	opacity  float64
	gradient bool
	svg      bool
	json     bool
	width    float64 // document size for --svg, defaults to fit the blob
	height   float64
}

// blobCommand creates the blob command.
func (c *CLI) blobCommand() *cobra.Command {
	opts := blobOpts{
		layer: scene.Layer{
			CX:    200,
			CY:    200,
			RX:    150,
			RY:    150,
			Style: string(blob.DefaultStyle),
			Color: "#E07B6C",
		},
		opacity: scene.DefaultOpacity,
	}
	var from, to string

	cmd := &cobra.Command{
		Use:   "blob",
		Short: "Generate one blob",
		Long: `Generate one blob and print its SVG path data.

With --svg the blob is wrapped in a standalone SVG document; with --json the
geometry (path data, vertices, transform, bounds) is printed instead.
--gradient switches to the seven-point gradient variant filled from --from
to --to.`,
		Example: `  blobsmith blob --cx 300 --cy 200 --rx 180 --ry 120 --style cloud --seed 7
  blobsmith blob --svg --rotation 20 --color "#1B8A8A" --opacity 0.4 > blob.svg
  blobsmith blob --gradient --from "#E07B6C" --to "#F2C57C" --svg`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.svg && opts.json {
				return fmt.Errorf("--svg and --json are mutually exclusive")
			}
			if opts.gradient {
				opts.layer.Gradient = &scene.LayerGradient{From: from, To: to}
			}
			return runBlob(cmd.OutOrStdout(), &opts)
		},
	}

	f := cmd.Flags()
	f.Float64Var(&opts.layer.CX, "cx", opts.layer.CX, "center x")
	f.Float64Var(&opts.layer.CY, "cy", opts.layer.CY, "center y")
	f.Float64Var(&opts.layer.RX, "rx", opts.layer.RX, "horizontal radius")
	f.Float64Var(&opts.layer.RY, "ry", opts.layer.RY, "vertical radius")
	f.StringVar(&opts.layer.Style, "style", opts.layer.Style, "shape style: organic, amoeba, cloud, wave")
	f.Float64Var(&opts.layer.Rotation, "rotation", 0, "rotation in degrees about the center")
	f.Int64Var(&opts.layer.Seed, "seed", 0, "random seed")
	f.IntVar(&opts.layer.Points, "points", 0, "vertex count override (0 uses the style preset)")
	f.StringVar(&opts.layer.Color, "color", opts.layer.Color, "fill color")
	f.Float64Var(&opts.opacity, "opacity", opts.opacity, "fill opacity")
	f.BoolVar(&opts.gradient, "gradient", false, "use the gradient variant")
	f.StringVar(&from, "from", "#E07B6C", "gradient start color")
	f.StringVar(&to, "to", "#F2C57C", "gradient end color")
	f.BoolVar(&opts.svg, "svg", false, "print a standalone SVG document")
	f.BoolVar(&opts.json, "json", false, "print the geometry as JSON")
	f.Float64Var(&opts.width, "width", 0, "SVG width (default: cx + rx*1.5)")
	f.Float64Var(&opts.height, "height", 0, "SVG height (default: cy + ry*1.5)")

	_ = cmd.RegisterFlagCompletionFunc("style", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return styleNames(), cobra.ShellCompDirectiveNoFileComp
	})

	return cmd
}

// runBlob generates the blob described by opts and writes it to w.
func runBlob(w io.Writer, opts *blobOpts) error {
	l := opts.layer
	l.Opacity = &opts.opacity
	colors := []*string{&l.Color}
	if l.Gradient != nil {
		g := *l.Gradient
		l.Gradient = &g
		colors = []*string{&g.From, &g.To}
	}
	for _, c := range colors {
		n, err := scene.NormalizeColor(*c)
		if err != nil {
			return err
		}
		*c = n
	}
	if math.IsNaN(opts.opacity) || opts.opacity < 0 || opts.opacity > 1 {
		return fmt.Errorf("opacity must be in [0, 1], got %g", opts.opacity)
	}

	sh, err := l.Shape()
	if err != nil {
		return err
	}

	switch {
	case opts.json:
		data, err := json.MarshalIndent(sink.Describe(blob.Style(l.Style), l.Seed, sh), "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(w, "%s\n", data)
		return err
	case opts.svg:
		width, height := opts.width, opts.height
		if width <= 0 {
			width = l.CX + l.RX*1.5
		}
		if height <= 0 {
			height = l.CY + l.RY*1.5
		}
		_, err := w.Write(sink.Document(width, height, shapeElement(sh)))
		return err
	default:
		_, err := fmt.Fprintln(w, sh.Path.D())
		return err
	}
}

// shapeElement renders a generated shape as SVG markup.
func shapeElement(sh scene.Shape) string {
	if sh.Gradient != nil {
		return sink.GradientElement(blob.GradientBlob{Path: sh.Path, Gradient: *sh.Gradient})
	}
	return sink.BlobElement(sh.Path, sh.Color, sh.Opacity)
}

// styleNames lists the built-in style names.
func styleNames() []string {
	styles := blob.Styles()
	names := make([]string, len(styles))
	for i, s := range styles {
		names[i] = string(s)
	}
	return names
}

// parseStyle validates a style name. Unlike generation, which silently falls
// back to organic, interactive commands reject unknown names.
func parseStyle(s string) (blob.Style, error) {
	st := blob.Style(strings.ToLower(strings.TrimSpace(s)))
	if !st.Known() {
		return "", fmt.Errorf("unknown style %q (want one of %s)", s, strings.Join(styleNames(), ", "))
	}
	return st, nil
}

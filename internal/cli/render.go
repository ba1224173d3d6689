package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/blobsmith/pkg/errors"
	"github.com/matzehuels/blobsmith/pkg/pipeline"
	"github.com/matzehuels/blobsmith/pkg/scene"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output  string   // output base path, or a directory
	formats []string // output formats: svg, png, pdf, json, sheet
	slides  []int    // 1-based slide numbers; empty renders every slide
	scale   float64  // PNG scale factor
	noCache bool     // bypass the cache entirely
	refresh bool     // re-render, then update the cache
}

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	var formatsStr string
	opts := renderOpts{scale: pipeline.DefaultScale}

	cmd := &cobra.Command{
		Use:   "render <scene.toml>",
		Short: "Render a scene to SVG, PNG, PDF, JSON or a contact sheet",
		Long: `Render every slide of a TOML scene in the requested formats.

Files are written as <base>_<NN>_<name>.<ext>, where NN is the 1-based slide
number. The contact sheet (format "sheet") is written as <base>_sheet.png.
The base defaults to the scene path without its extension; -o sets another
base path or, when it names a directory, writes into it.`,
		Example: `  blobsmith render deck.toml
  blobsmith render deck.toml -f svg,png --scale 2 -o out/
  blobsmith render deck.toml -f pdf --slide 2 --slide 3
  blobsmith render deck.toml -f sheet`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.formats = parseFormats(formatsStr)
			if err := pipeline.ValidateFormats(opts.formats); err != nil {
				return err
			}
			return c.runRender(cmd.Context(), args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output base path or directory")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), png, pdf, json, sheet (comma-separated)")
	cmd.Flags().IntSliceVar(&opts.slides, "slide", nil, "render only these slides (1-based, repeatable)")
	cmd.Flags().Float64Var(&opts.scale, "scale", opts.scale, "PNG scale factor")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "ignore cached artifacts and re-render")

	_ = cmd.RegisterFlagCompletionFunc("format", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return pipeline.FormatNames(), cobra.ShellCompDirectiveNoFileComp
	})

	return cmd
}

// runRender loads the scene, renders it through the cached pipeline and
// writes one file per artifact.
func (c *CLI) runRender(ctx context.Context, input string, opts *renderOpts) error {
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	if err := errors.ValidateScenePath(input); err != nil {
		return err
	}
	s, err := scene.Load(input)
	if err != nil {
		return err
	}
	logger.Debugf("Loaded %s: %d slides, %.0fx%.0f", input, len(s.Slides), s.Width, s.Height)

	runner, err := c.newRunner(ctx, opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	popts := pipeline.Options{
		Formats: opts.formats,
		Scale:   opts.scale,
		Refresh: opts.refresh,
		Logger:  logger,
	}
	for _, n := range opts.slides {
		popts.Slides = append(popts.Slides, n-1)
	}

	spin := newSpinnerWithContext(ctx, fmt.Sprintf("Rendering %s...", filepath.Base(input)))
	spin.Start()
	result, err := runner.Render(ctx, s, popts)
	if err != nil {
		spin.StopWithError("Render failed")
		return err
	}
	spin.Stop()

	base, err := outputBase(opts.output, input)
	if err != nil {
		return err
	}

	printSuccess("Rendered %s", input)
	for _, a := range result.Artifacts {
		path := artifactPath(base, a)
		if err := writeArtifact(path, a.Data); err != nil {
			return err
		}
		printFile(path)
	}
	printStats(result.Stats.Slides, len(result.Artifacts), result.CacheInfo.AllHit())
	prog.done(fmt.Sprintf("Wrote %d files", len(result.Artifacts)))
	return nil
}

// outputBase derives the base output path. An empty output uses the input
// path without its extension; an existing directory (or one given with a
// trailing separator) receives files named after the input.
func outputBase(output, input string) (string, error) {
	stem := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))
	if output == "" {
		return strings.TrimSuffix(input, filepath.Ext(input)), nil
	}
	if strings.HasSuffix(output, string(filepath.Separator)) || strings.HasSuffix(output, "/") {
		if err := os.MkdirAll(output, 0o755); err != nil {
			return "", err
		}
		return filepath.Join(output, stem), nil
	}
	if info, err := os.Stat(output); err == nil && info.IsDir() {
		return filepath.Join(output, stem), nil
	}
	ext := strings.TrimPrefix(filepath.Ext(output), ".")
	if pipeline.ValidFormats[ext] {
		return strings.TrimSuffix(output, filepath.Ext(output)), nil
	}
	return output, nil
}

// artifactPath names an artifact file: <base>_<NN>_<name>.<ext> for slides
// and <base>_sheet.png for the contact sheet.
func artifactPath(base string, a pipeline.Artifact) string {
	ext := pipeline.Extension(a.Format)
	if a.Slide == pipeline.SheetSlide {
		return fmt.Sprintf("%s_sheet.%s", base, ext)
	}
	return fmt.Sprintf("%s_%02d_%s.%s", base, a.Slide+1, fileSafe(a.Name), ext)
}

// fileSafe replaces characters that are awkward in file names.
func fileSafe(name string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		}
		return '-'
	}, name)
}

func writeArtifact(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, data, 0o644)
}

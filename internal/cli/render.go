package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/mindgrid/pkg/pipeline"
)

// renderCommand creates the render command for generating artifacts.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		output     string
		formatsStr string
		noCache    bool
	)
	opts := pipeline.Options{}
	opts.SetLayoutDefaults()
	opts.SetRenderDefaults()

	cmd := &cobra.Command{
		Use:   "render [document.json|outline.toml]",
		Short: "Render a mind map document to SVG, DOT, or JSON",
		Long: `Render a mind map document to one or more artifact formats.

The full pipeline runs: the document is loaded and indexed, the layout
strategy computes positions, and each requested format is generated.
Every stage is cached, so re-rendering an unchanged document is fast.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Input = args[0]
			opts.Formats = parseFormats(formatsStr)
			return c.runRender(cmd.Context(), opts, output, noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), dot, gv, json (comma-separated)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "bypass the document cache")
	cmd.Flags().StringVar(&opts.Title, "title", "", "title annotation in the SVG output")
	cmd.Flags().BoolVar(&opts.HideEdges, "no-edges", false, "omit parent-child connector edges")
	cmd.Flags().BoolVar(&opts.Interactive, "interactive", false, "embed collapse/expand interaction in the SVG")
	cmd.Flags().BoolVar(&opts.Detailed, "detailed", false, "include depth and metadata in DOT labels")
	addLayoutFlags(cmd, &opts)

	return cmd
}

// runRender executes the full pipeline and writes one file per format.
func (c *CLI) runRender(ctx context.Context, opts pipeline.Options, output string, noCache bool) error {
	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()
	opts.Logger = c.Logger

	spinner := newSpinnerWithContext(ctx, "Rendering...")
	spinner.Start()

	result, err := runner.Execute(ctx, opts)
	if err != nil {
		spinner.StopWithError("Render failed")
		return err
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	base := renderBasePath(output, opts.Input)
	for _, format := range opts.Formats {
		path := base + "." + artifactExt(format)
		if len(opts.Formats) == 1 && output != "" {
			path = output
		}
		if err := os.WriteFile(path, result.Artifacts[format], 0644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		printFile(path)
	}

	printSuccess("Render complete")
	printStats(result.Stats.NodeCount, result.Stats.RootCount, result.CacheInfo.RenderHit)
	return nil
}

// artifactExt maps a format to its file extension. The gv format emits
// SVG content, so it writes gv.svg rather than shadowing DOT's .gv.
func artifactExt(format string) string {
	if format == pipeline.FormatGV {
		return "gv.svg"
	}
	return format
}

// renderBasePath derives the base output path from the output and input
// file paths, stripping a known format extension from the output if set.
func renderBasePath(output, input string) string {
	if output == "" {
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/mindgrid/pkg/layout"
	"github.com/matzehuels/mindgrid/pkg/pipeline"
)

// layoutCommand creates the layout command for computing node positions.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		output  string
		noCache bool
	)
	opts := pipeline.Options{}
	opts.SetLayoutDefaults()

	cmd := &cobra.Command{
		Use:   "layout [document.json|outline.toml]",
		Short: "Compute node positions for a mind map document",
		Long: `Compute node positions for a mind map document.

The layout command reads a document (JSON node array or TOML outline),
runs the selected layout strategy, and writes positions plus bounds as
a layout.json file. Re-running with an unchanged document shape reuses
the cached result; only structural edits force a recomputation.

Strategies: horizontal (default), vertical, radial, fishbone.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Input = args[0]
			return c.runLayout(cmd.Context(), opts, output, noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.layout.json)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "bypass the document cache")
	addLayoutFlags(cmd, &opts)

	return cmd
}

// addLayoutFlags registers the strategy and spacing flags shared by the
// layout, render, and virtualize commands.
func addLayoutFlags(cmd *cobra.Command, opts *pipeline.Options) {
	cmd.Flags().StringVarP(&opts.Mode, "mode", "m", opts.Mode, "layout strategy: horizontal (default), vertical, radial, fishbone")
	cmd.Flags().Float64Var(&opts.Config.HSpacing, "h-spacing", opts.Config.HSpacing, "gap between depth columns")
	cmd.Flags().Float64Var(&opts.Config.VSpacing, "v-spacing", opts.Config.VSpacing, "gap between sibling bands")
	cmd.Flags().Float64Var(&opts.Config.RadialRadius, "radial-radius", opts.Config.RadialRadius, "radius step per ring (radial)")
	cmd.Flags().Float64Var(&opts.Config.FishboneAngle, "fishbone-angle", opts.Config.FishboneAngle, "spine angle in degrees (fishbone)")
}

// runLayout loads the document, computes the layout, and writes output.
func (c *CLI) runLayout(ctx context.Context, opts pipeline.Options, output string, noCache bool) error {
	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()
	opts.Logger = c.Logger

	doc, err := runner.Load(ctx, opts)
	if err != nil {
		return err
	}
	tree, err := doc.Tree()
	if err != nil {
		return err
	}

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Computing %s layout...", opts.Mode))
	spinner.Start()

	res, cacheHit, err := runner.ComputeLayoutWithCacheInfo(ctx, tree, opts)
	if err != nil {
		spinner.StopWithError("Layout failed")
		return fmt.Errorf("compute layout: %w", err)
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	outputPath := output
	if outputPath == "" {
		base := strings.TrimSuffix(opts.Input, filepath.Ext(opts.Input))
		outputPath = base + ".layout.json"
	}
	if err := writeLayoutFile(res, tree.Signature(), opts.Mode, outputPath); err != nil {
		return fmt.Errorf("write output %s: %w", outputPath, err)
	}

	printSuccess("Layout complete")
	printFile(outputPath)
	printStats(tree.Len(), len(tree.Roots()), cacheHit)
	printNewline()
	printNextStep("Render", "mindgrid render "+opts.Input)

	return nil
}

// layoutFile is the on-disk layout artifact written by the layout command.
type layoutFile struct {
	Signature string                     `json:"signature"`
	Mode      string                     `json:"mode"`
	Positions map[string]layout.Position `json:"positions"`
	Bounds    layout.Bounds              `json:"bounds"`
}

func writeLayoutFile(res layout.Result, signature, mode, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(layoutFile{
		Signature: signature,
		Mode:      mode,
		Positions: res.Positions,
		Bounds:    res.Bounds,
	})
}

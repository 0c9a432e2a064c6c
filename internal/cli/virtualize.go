package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/mindgrid/pkg/observability"
	"github.com/matzehuels/mindgrid/pkg/pipeline"
	"github.com/matzehuels/mindgrid/pkg/virtualize"
)

// virtualizeCommand creates the virtualize command for viewport culling.
func (c *CLI) virtualizeCommand() *cobra.Command {
	var (
		vp        virtualize.Viewport
		threshold int
		padding   float64
		showIDs   bool
		noCache   bool
	)
	opts := pipeline.Options{}
	opts.SetLayoutDefaults()

	cmd := &cobra.Command{
		Use:   "virtualize [document.json|outline.toml]",
		Short: "Report which nodes fall inside a viewport",
		Long: `Report which nodes of a laid-out document fall inside a viewport.

The document is laid out with the selected strategy, then culled
against the viewport rectangle. Ancestors of visible nodes are always
retained so the connector chain back to the root stays drawable.
Documents at or below the threshold skip culling entirely.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if vp.Width <= 0 || vp.Height <= 0 {
				return fmt.Errorf("viewport must have positive width and height")
			}
			opts.Input = args[0]
			vopts := virtualize.Options{Threshold: threshold, Padding: padding, Config: opts.Config}
			return c.runVirtualize(cmd.Context(), opts, vp, vopts, showIDs, noCache)
		},
	}

	cmd.Flags().Float64Var(&vp.X, "x", 0, "viewport left edge")
	cmd.Flags().Float64Var(&vp.Y, "y", 0, "viewport top edge")
	cmd.Flags().Float64Var(&vp.Width, "width", 1600, "viewport width")
	cmd.Flags().Float64Var(&vp.Height, "height", 1200, "viewport height")
	cmd.Flags().IntVar(&threshold, "threshold", virtualize.DefaultThreshold, "document size below which culling is skipped")
	cmd.Flags().Float64Var(&padding, "padding", virtualize.DefaultPadding, "margin added around the viewport")
	cmd.Flags().BoolVar(&showIDs, "ids", false, "print the visible node IDs")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	addLayoutFlags(cmd, &opts)

	return cmd
}

func (c *CLI) runVirtualize(ctx context.Context, opts pipeline.Options, vp virtualize.Viewport, vopts virtualize.Options, showIDs, noCache bool) error {
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
	res, err := runner.ComputeLayout(ctx, tree, opts)
	if err != nil {
		return fmt.Errorf("compute layout: %w", err)
	}

	start := time.Now()
	result := virtualize.Virtualize(tree, res.Positions, vp, vopts)
	observability.Engine().OnVirtualize(ctx, result.Stats.Total, result.Stats.Kept,
		result.Stats.Bypassed, time.Since(start))

	if result.Stats.Bypassed {
		printInfo("Below threshold, culling skipped")
	}
	printSuccess("%d of %d nodes visible", result.Stats.Kept, result.Stats.Total)
	printDetail("culled: %d", result.Stats.Culled)
	printDetail("intersecting: %d, bridged: %d, anchored: %d",
		result.Stats.Intersect, result.Stats.Bridged, result.Stats.Anchored)

	if showIDs {
		printNewline()
		for _, id := range result.Visible {
			fmt.Println(id)
		}
	}
	return nil
}

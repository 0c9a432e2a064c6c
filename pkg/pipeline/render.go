package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/matzehuels/mindgrid/pkg/document"
	"github.com/matzehuels/mindgrid/pkg/layout"
	"github.com/matzehuels/mindgrid/pkg/mindmap"
	"github.com/matzehuels/mindgrid/pkg/observability"
	"github.com/matzehuels/mindgrid/pkg/render/dot"
	"github.com/matzehuels/mindgrid/pkg/render/svg"
)

// jsonArtifact is the shape of the "json" output format: the document
// plus its computed geometry, enough for an external renderer to paint
// without re-running the engine.
type jsonArtifact struct {
	ID        string                     `json:"id,omitempty"`
	Title     string                     `json:"title,omitempty"`
	Mode      string                     `json:"mode"`
	Signature string                     `json:"signature"`
	Positions map[string]layout.Position `json:"positions"`
	Bounds    layout.Bounds              `json:"bounds"`
}

// renderFormats produces every requested output format.
func renderFormats(ctx context.Context, tree *mindmap.Tree, doc *document.Document, res layout.Result, opts Options) (map[string][]byte, error) {
	out := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		start := time.Now()
		observability.Engine().OnRenderStart(ctx, format)
		data, err := renderFormat(tree, doc, res, format, opts)
		observability.Engine().OnRenderComplete(ctx, format, len(data), time.Since(start), err)
		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		out[format] = data
	}
	return out, nil
}

func renderFormat(tree *mindmap.Tree, doc *document.Document, res layout.Result, format string, opts Options) ([]byte, error) {
	switch format {
	case FormatSVG:
		svgOpts := []svg.Option{svg.WithConfig(opts.Config)}
		if title := renderTitle(doc, opts); title != "" {
			svgOpts = append(svgOpts, svg.WithTitle(title))
		}
		if opts.HideEdges {
			svgOpts = append(svgOpts, svg.WithoutEdges())
		}
		if opts.Interactive {
			svgOpts = append(svgOpts, svg.WithInteraction())
		}
		return svg.Render(tree, res, svgOpts...), nil

	case FormatDOT:
		return []byte(dot.ToDOT(tree, dot.Options{Detailed: opts.Detailed})), nil

	case FormatGV:
		return dot.RenderSVG(dot.ToDOT(tree, dot.Options{Detailed: opts.Detailed}))

	case FormatJSON:
		artifact := jsonArtifact{
			Mode:      opts.Mode,
			Signature: tree.Signature(),
			Positions: res.Positions,
			Bounds:    res.Bounds,
		}
		if doc != nil {
			artifact.ID = doc.ID
			artifact.Title = doc.Title
		}
		return json.MarshalIndent(artifact, "", "  ")

	default:
		return nil, fmt.Errorf("invalid format: %q", format)
	}
}

func renderTitle(doc *document.Document, opts Options) string {
	if opts.Title != "" {
		return opts.Title
	}
	if doc != nil {
		return doc.Title
	}
	return ""
}

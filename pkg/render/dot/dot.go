// Package dot exports mind-map trees to Graphviz DOT and renders them.
package dot

import (
	"bytes"
	"context"
	"fmt"
	"maps"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/mindgrid/pkg/mindmap"
)

// Options configures DOT export.
type Options struct {
	// Detailed includes depth and metadata in node labels.
	// When false, only the node content is shown.
	Detailed bool

	// IncludeHidden exports descendants of collapsed nodes too.
	// Collapsed subtree roots are always drawn with a distinct style.
	IncludeHidden bool
}

// ToDOT converts a tree to Graphviz DOT format. Computed positions are
// not carried over; Graphviz lays the graph out itself. The result can
// be rendered with [RenderSVG] or fed to external graph tooling.
//
// Collapsed nodes are rendered with dashed outlines and grey fill to
// mark that they hide a subtree.
func ToDOT(t *mindmap.Tree, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=24, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.5;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	ids := t.VisibleNodes()
	if opts.IncludeHidden {
		ids = allIDs(t)
	}

	for _, id := range ids {
		n, _ := t.Node(id)
		label := fmtLabel(t, *n, opts.Detailed)
		attrs := fmtAttrs(*n, label)
		fmt.Fprintf(&buf, "  %q [%s];\n", id, strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, id := range ids {
		parent, ok := t.Parent(id)
		if !ok {
			continue
		}
		fmt.Fprintf(&buf, "  %q -> %q;\n", parent, id)
	}

	buf.WriteString("}\n")
	return buf.String()
}

func allIDs(t *mindmap.Tree) []string {
	nodes := t.Nodes()
	out := make([]string, 0, len(nodes))
	orphaned := make(map[string]bool)
	for _, id := range t.Orphans() {
		orphaned[id] = true
	}
	for _, n := range nodes {
		if !orphaned[n.ID] {
			out = append(out, n.ID)
		}
	}
	return out
}

func fmtLabel(t *mindmap.Tree, n mindmap.Node, detailed bool) string {
	label := n.Content
	if label == "" {
		label = n.ID
	}
	if !detailed {
		return label
	}

	parts := []string{fmt.Sprintf("depth: %d", t.Depth(n.ID))}
	for _, k := range slices.Sorted(maps.Keys(n.Meta)) {
		parts = append(parts, fmt.Sprintf("%s: %v", k, n.Meta[k]))
	}

	return label + "\n" + strings.Join(parts, "\n")
}

func fmtAttrs(n mindmap.Node, label string) []string {
	attrs := []string{fmt.Sprintf("label=%q", label)}
	if n.Collapsed {
		attrs = append(attrs, "style=\"rounded,filled,dashed\"", "fillcolor=lightgrey", "fontcolor=black")
	}
	return attrs
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(dot string) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox rewrites Graphviz's point-based svg element so the
// viewBox starts at the origin and width/height match it.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}

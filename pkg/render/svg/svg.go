// Package svg renders computed mind-map layouts as standalone SVG.
package svg

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/matzehuels/mindgrid/pkg/layout"
	"github.com/matzehuels/mindgrid/pkg/mindmap"
)

const nodeInteractionCSS = `
    .node-box { transition: stroke-width 0.2s ease; }
    .node-box.highlight { stroke-width: 3; }
    .node-text { transition: transform 0.2s ease; transform-origin: center; transform-box: fill-box; }
    .node-text.highlight { transform: scale(1.06); font-weight: bold; }`

const nodeInteractionJS = `
    function highlight(ids) {
      document.querySelectorAll('.node-box').forEach(b => b.classList.toggle('highlight', ids.includes(b.id.replace('node-', ''))));
      document.querySelectorAll('.node-text').forEach(t => t.classList.toggle('highlight', ids.includes(t.dataset.node)));
    }
    function clearHighlight() {
      document.querySelectorAll('.node-box, .node-text').forEach(el => el.classList.remove('highlight'));
    }
    document.querySelectorAll('.node-box').forEach(el => {
      el.addEventListener('mouseenter', () => highlight([el.id.replace('node-', '')]));
      el.addEventListener('mouseleave', clearHighlight);
    });`

// Option configures SVG rendering.
type Option func(*renderer)

type renderer struct {
	cfg      layout.Config
	title    string
	subset   map[string]bool
	edges    bool
	interact bool
	padding  float64
}

// WithConfig sets the geometry config used for node sizing. It should
// match the config the layout was computed with.
func WithConfig(cfg layout.Config) Option { return func(r *renderer) { r.cfg = cfg } }

// WithTitle adds a document title to the SVG.
func WithTitle(title string) Option { return func(r *renderer) { r.title = title } }

// WithSubset restricts drawing to the given node IDs, typically the
// output of a virtualization pass. Edges to culled nodes are dropped.
func WithSubset(ids []string) Option {
	return func(r *renderer) {
		r.subset = make(map[string]bool, len(ids))
		for _, id := range ids {
			r.subset[id] = true
		}
	}
}

// WithoutEdges suppresses parent-child connector paths.
func WithoutEdges() Option { return func(r *renderer) { r.edges = false } }

// WithInteraction embeds a hover-highlight script.
func WithInteraction() Option { return func(r *renderer) { r.interact = true } }

// Render draws the tree at the given positions. Nodes without a
// position (culled or orphaned) are skipped silently. The viewBox is
// fitted to the drawn content plus a margin.
func Render(t *mindmap.Tree, res layout.Result, opts ...Option) []byte {
	r := renderer{cfg: layout.DefaultConfig(), edges: true, padding: 20}
	for _, opt := range opts {
		opt(&r)
	}

	var boxes []box
	for _, id := range t.VisibleNodes() {
		if r.subset != nil && !r.subset[id] {
			continue
		}
		pos, ok := res.Positions[id]
		if !ok {
			continue
		}
		n, _ := t.Node(id)
		boxes = append(boxes, box{
			id:      id,
			label:   n.Content,
			x:       pos.X,
			y:       pos.Y,
			w:       r.cfg.EstimateNodeWidth(n.Content),
			h:       r.cfg.NodeHeight,
			parent:  parentOf(t, id),
			special: len(t.AllChildren(id)) > 0 && n.Collapsed,
		})
	}

	minX, minY, maxX, maxY := contentBounds(boxes, r.padding)

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="%.1f %.1f %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		minX, minY, maxX-minX, maxY-minY, maxX-minX, maxY-minY)

	if r.title != "" {
		fmt.Fprintf(&buf, "  <title>%s</title>\n", escape(r.title))
	}
	buf.WriteString("  <style>\n    .node-box { fill: #fff; stroke: #333; stroke-width: 1.5; }\n" +
		"    .node-box.collapsed { fill: #eee; }\n" +
		"    .node-text { font-family: sans-serif; font-size: 14px; }\n" +
		"    .edge { fill: none; stroke: #999; stroke-width: 1.5; }\n")
	if r.interact {
		buf.WriteString(nodeInteractionCSS + "\n")
	}
	buf.WriteString("  </style>\n")

	if r.edges {
		drawn := make(map[string]bool, len(boxes))
		for _, b := range boxes {
			drawn[b.id] = true
		}
		for _, b := range boxes {
			if b.parent == "" || !drawn[b.parent] {
				continue
			}
			renderEdge(&buf, res.Positions[b.parent], b, &r, t)
		}
	}

	for _, b := range boxes {
		renderBox(&buf, b)
	}
	for _, b := range boxes {
		renderText(&buf, b)
	}

	if r.interact {
		fmt.Fprintf(&buf, "  <script><![CDATA[%s\n  ]]></script>\n", nodeInteractionJS)
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

type box struct {
	id      string
	label   string
	x, y    float64
	w, h    float64
	parent  string
	special bool // collapsed with hidden children
}

func parentOf(t *mindmap.Tree, id string) string {
	p, ok := t.Parent(id)
	if !ok {
		return ""
	}
	return p
}

func contentBounds(boxes []box, pad float64) (minX, minY, maxX, maxY float64) {
	if len(boxes) == 0 {
		return 0, 0, 100, 100
	}
	minX, minY = boxes[0].x, boxes[0].y
	maxX, maxY = boxes[0].x+boxes[0].w, boxes[0].y+boxes[0].h
	for _, b := range boxes[1:] {
		minX = min(minX, b.x)
		minY = min(minY, b.y)
		maxX = max(maxX, b.x+b.w)
		maxY = max(maxY, b.y+b.h)
	}
	return minX - pad, minY - pad, maxX + pad, maxY + pad
}

func renderBox(buf *bytes.Buffer, b box) {
	class := "node-box"
	if b.special {
		class += " collapsed"
	}
	fmt.Fprintf(buf, `  <rect id="node-%s" class="%s" x="%.1f" y="%.1f" width="%.1f" height="%.1f" rx="6"/>`+"\n",
		escape(b.id), class, b.x, b.y, b.w, b.h)
}

func renderText(buf *bytes.Buffer, b box) {
	label := b.label
	if label == "" {
		label = b.id
	}
	fmt.Fprintf(buf, `  <text class="node-text" data-node="%s" x="%.1f" y="%.1f" text-anchor="middle" dominant-baseline="central">%s</text>`+"\n",
		escape(b.id), b.x+b.w/2, b.y+b.h/2, escape(label))
}

// renderEdge draws a cubic connector from the parent box edge to the
// child box edge, bowing along the dominant axis between them.
func renderEdge(buf *bytes.Buffer, parent layout.Position, b box, r *renderer, t *mindmap.Tree) {
	pn, _ := t.Node(b.parent)
	pw := r.cfg.EstimateNodeWidth(pn.Content)
	ph := r.cfg.NodeHeight

	px, py := parent.X+pw/2, parent.Y+ph/2
	cx, cy := b.x+b.w/2, b.y+b.h/2

	dx, dy := cx-px, cy-py
	var x1, y1, x2, y2 float64
	if abs(dx) >= abs(dy) {
		// Horizontal-ish: leave the parent's side, enter the child's side.
		x1, y1 = px+sign(dx)*pw/2, py
		x2, y2 = cx-sign(dx)*b.w/2, cy
		mid := (x1 + x2) / 2
		fmt.Fprintf(buf, `  <path class="edge" d="M %.1f %.1f C %.1f %.1f, %.1f %.1f, %.1f %.1f"/>`+"\n",
			x1, y1, mid, y1, mid, y2, x2, y2)
		return
	}
	// Vertical-ish: leave the parent's top/bottom edge.
	x1, y1 = px, py+sign(dy)*ph/2
	x2, y2 = cx, cy-sign(dy)*b.h/2
	mid := (y1 + y2) / 2
	fmt.Fprintf(buf, `  <path class="edge" d="M %.1f %.1f C %.1f %.1f, %.1f %.1f, %.1f %.1f"/>`+"\n",
		x1, y1, x1, mid, x2, mid, x2, y2)
}

func escape(s string) string {
	return strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
		`"`, "&quot;",
	).Replace(s)
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

func sign(v float64) float64 {
	if v < 0 {
		return -1
	}
	return 1
}

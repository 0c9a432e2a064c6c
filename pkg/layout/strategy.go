package layout

import (
	"errors"
	"fmt"

	"github.com/matzehuels/mindgrid/pkg/mindmap"
)

// ErrUnknownMode is returned by [ParseMode] and [Compute] when the requested
// layout mode is not one of the four supported strategies.
var ErrUnknownMode = errors.New("unknown layout mode")

// Mode selects a layout strategy.
type Mode string

// Supported layout modes.
const (
	ModeHorizontal Mode = "horizontal" // left-to-right tree (default)
	ModeVertical   Mode = "vertical"   // top-to-bottom tree
	ModeRadial     Mode = "radial"     // concentric rings around the root
	ModeFishbone   Mode = "fishbone"   // Ishikawa-style diagonal spines
)

// ValidModes is the set of supported layout modes.
var ValidModes = map[Mode]bool{
	ModeHorizontal: true,
	ModeVertical:   true,
	ModeRadial:     true,
	ModeFishbone:   true,
}

// ParseMode converts a user-supplied string into a Mode.
// An empty string selects the default horizontal strategy.
func ParseMode(s string) (Mode, error) {
	if s == "" {
		return ModeHorizontal, nil
	}
	m := Mode(s)
	if !ValidModes[m] {
		return "", fmt.Errorf("%w: %q (must be one of: horizontal, vertical, radial, fishbone)", ErrUnknownMode, s)
	}
	return m, nil
}

// Strategy is one placement algorithm. Implementations never mutate the
// tree, are deterministic, and cover every visible node in their result.
type Strategy interface {
	// Name returns the mode string identifying the strategy.
	Name() string

	// Layout computes positions and bounds for all visible nodes.
	Layout(t *mindmap.Tree, cfg Config) Result
}

// StrategyFor returns the Strategy implementing the given mode.
func StrategyFor(mode Mode) (Strategy, error) {
	switch mode {
	case ModeHorizontal, "":
		return Horizontal{}, nil
	case ModeVertical:
		return Vertical{}, nil
	case ModeRadial:
		return Radial{}, nil
	case ModeFishbone:
		return Fishbone{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownMode, mode)
	}
}

// Compute runs the strategy selected by mode over an indexed tree.
// It is pure: same tree, mode and config always produce an identical
// result. An empty tree yields an empty result, not an error.
func Compute(t *mindmap.Tree, mode Mode, cfg Config) (Result, error) {
	s, err := StrategyFor(mode)
	if err != nil {
		return emptyResult(), err
	}
	if t == nil || t.Len() == 0 || len(t.Roots()) == 0 {
		return emptyResult(), nil
	}
	return s.Layout(t, cfg), nil
}

// visibleWidths estimates node box widths for every visible node.
// All strategies share this map for bounds computation.
func visibleWidths(t *mindmap.Tree, cfg Config) map[string]float64 {
	visible := t.VisibleNodes()
	widths := make(map[string]float64, len(visible))
	for _, id := range visible {
		n, _ := t.Node(id)
		widths[id] = cfg.EstimateNodeWidth(n.Content)
	}
	return widths
}

package layout

import "math"

// Default layout parameters. These are the single source of truth for the
// CLI, the HTTP API and the pipeline; override individual fields on the
// value returned by DefaultConfig.
const (
	// DefaultNodeWidth is the base node box width in canvas units.
	DefaultNodeWidth = 120.0

	// DefaultNodeHeight is the node box height in canvas units.
	// Node heights are uniform; only widths vary with content.
	DefaultNodeHeight = 50.0

	// DefaultMinNodeWidth is the lower clamp for estimated node widths.
	DefaultMinNodeWidth = 60.0

	// DefaultMaxNodeWidth is the upper clamp for estimated node widths.
	DefaultMaxNodeWidth = 300.0

	// DefaultCharWidth is the canvas width contributed by one narrow
	// character of content.
	DefaultCharWidth = 8.0

	// DefaultHSpacing is the base horizontal gap between depth columns.
	DefaultHSpacing = 60.0

	// DefaultVSpacing is the gap between sibling bands on the stacking axis.
	DefaultVSpacing = 30.0

	// DefaultRadialRadius is the radius step per ring in the radial layout.
	DefaultRadialRadius = 180.0

	// DefaultFishboneAngle is the spine angle in degrees above/below the
	// horizontal in the fishbone layout.
	DefaultFishboneAngle = 35.0

	// DefaultFishboneStep is the spacing between spine members, measured
	// along the diagonal spine.
	DefaultFishboneStep = 160.0

	// DefaultCanvasWidth and DefaultCanvasHeight size the abstract canvas
	// used by the radial and fishbone strategies for their anchor points.
	DefaultCanvasWidth  = 1600.0
	DefaultCanvasHeight = 1200.0
)

// Config holds node dimensions, spacing constants and strategy parameters
// for a single layout invocation. A Config is treated as immutable once
// passed to Compute; changing any field forces a fresh computation because
// the pipeline folds the Config into its cache key.
type Config struct {
	NodeWidth  float64 `json:"node_width"`
	NodeHeight float64 `json:"node_height"`

	MinNodeWidth float64 `json:"min_node_width"`
	MaxNodeWidth float64 `json:"max_node_width"`
	CharWidth    float64 `json:"char_width"`

	HSpacing float64 `json:"h_spacing"` // between depth columns (horizontal), between siblings (vertical)
	VSpacing float64 `json:"v_spacing"` // between siblings (horizontal), between depth rows (vertical)

	RadialRadius  float64 `json:"radial_radius"`
	FishboneAngle float64 `json:"fishbone_angle"` // degrees
	FishboneStep  float64 `json:"fishbone_step"`

	CanvasWidth  float64 `json:"canvas_width"`
	CanvasHeight float64 `json:"canvas_height"`
}

// DefaultConfig returns a Config populated with the package defaults.
func DefaultConfig() Config {
	return Config{
		NodeWidth:     DefaultNodeWidth,
		NodeHeight:    DefaultNodeHeight,
		MinNodeWidth:  DefaultMinNodeWidth,
		MaxNodeWidth:  DefaultMaxNodeWidth,
		CharWidth:     DefaultCharWidth,
		HSpacing:      DefaultHSpacing,
		VSpacing:      DefaultVSpacing,
		RadialRadius:  DefaultRadialRadius,
		FishboneAngle: DefaultFishboneAngle,
		FishboneStep:  DefaultFishboneStep,
		CanvasWidth:   DefaultCanvasWidth,
		CanvasHeight:  DefaultCanvasHeight,
	}
}

// EstimateNodeWidth estimates the rendered width of a node from its content
// length. Each code point contributes one width unit; code points above 127
// contribute two (a cheap CJK/full-width proxy). The scaled total is clamped
// to [MinNodeWidth, MaxNodeWidth].
func (c Config) EstimateNodeWidth(content string) float64 {
	units := 0
	for _, r := range content {
		if r > 127 {
			units += 2
		} else {
			units++
		}
	}
	w := float64(units) * c.CharWidth
	return math.Min(math.Max(w, c.MinNodeWidth), c.MaxNodeWidth)
}

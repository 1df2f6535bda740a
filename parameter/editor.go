package parameter

import "time"

// Control Point Limits
const (
	// MaxControlPoints is the hard ceiling across all modes
	MaxControlPoints = 50

	// MinLinearPoints is the floor in linear mode (the two anchors)
	MinLinearPoints = 2
)

// Influence Range
const (
	InfluenceMin     = 0.5
	InfluenceMax     = 2.0
	InfluenceDefault = 1.0

	// InfluenceStep per wheel event
	InfluenceStep = 0.1
)

// Hit Testing (device pixels, independent of raster scale)
const (
	// SelectRadiusPx for picking an existing point under the pointer
	SelectRadiusPx = 10.0

	// OverlapRejectFactor times SelectRadiusPx blocks adds on top of existing points
	OverlapRejectFactor = 1.5

	// LineTolerancePx is the max perpendicular distance for linear-mode adds
	LineTolerancePx = 10.0
)

// Placement
const (
	// EdgeSnapThreshold snaps drags to exactly 0 or 1 near the boundary (normalized)
	EdgeSnapThreshold = 0.02

	// CopyOffset displaces a duplicated point so it doesn't land on its source (normalized)
	CopyOffset = 0.03
)

// Field Raster Bounds
const (
	MaxFieldDim = 4096

	DefaultFieldWidth  = 360
	DefaultFieldHeight = 360
)

// Host Layout Hints
const (
	NodeMinWidth  = 360
	NodeMinHeight = 510
)

// RenderDebounce is the quiescence interval before a field recompute
// Aligned with a ~30fps paint cadence
const RenderDebounce = 33 * time.Millisecond

package core

import (
	"github.com/lixenwraith/gradient-lab/parameter"
	"github.com/lixenwraith/gradient-lab/vmath"
)

// ControlPoint is a user-placed stop driving the gradient field
// Position is normalized to [0,1]² so it is canvas-size independent
// Influence scales the point's effective pull radius in distance-weighted modes
type ControlPoint struct {
	X, Y      float64
	Color     RGB
	Influence float64
}

// Clamp coerces all fields into their valid ranges
// A no-op on already-valid points
func (p ControlPoint) Clamp() ControlPoint {
	p.X = vmath.Clamp01(p.X)
	p.Y = vmath.Clamp01(p.Y)
	p.Influence = vmath.Clamp(p.Influence, parameter.InfluenceMin, parameter.InfluenceMax)
	return p
}

// Pos returns the point's position as a vector
func (p ControlPoint) Pos() vmath.Vec2 {
	return vmath.Vec2{X: p.X, Y: p.Y}
}

// DefaultPair is the canonical red→blue fallback set
// Used whenever a mode would otherwise render from nothing
func DefaultPair() []ControlPoint {
	return []ControlPoint{
		{X: 0.2, Y: 0.2, Color: RGBRed, Influence: parameter.InfluenceDefault},
		{X: 0.8, Y: 0.8, Color: RGBBlue, Influence: parameter.InfluenceDefault},
	}
}

// ClonePoints deep-copies a control point set
func ClonePoints(pts []ControlPoint) []ControlPoint {
	out := make([]ControlPoint, len(pts))
	copy(out, pts)
	return out
}

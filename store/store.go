// Package store owns the live control point set and the per-family
// mode caches. All mutation guards live here so the synthesizer only
// ever sees an invariant-respecting set.
package store

import (
	"fmt"

	"github.com/lixenwraith/gradient-lab/core"
	"github.com/lixenwraith/gradient-lab/parameter"
	"github.com/lixenwraith/gradient-lab/vmath"
)

// modeCache holds the last-known set per mode family
// Exactly one family mirrors the live set at any time
type modeCache struct {
	linear []core.ControlPoint
	other  []core.ControlPoint
}

// PointStore is the single owner of the control point set
type PointStore struct {
	points []core.ControlPoint
	mode   core.InterpMode
	cache  modeCache
}

// NewPointStore starts with the canonical default pair in the given mode
func NewPointStore(mode core.InterpMode) *PointStore {
	s := &PointStore{mode: mode}
	s.points = core.DefaultPair()
	s.Commit()
	return s
}

// Mode returns the active interpolation mode
func (s *PointStore) Mode() core.InterpMode {
	return s.mode
}

// Len returns the live point count
func (s *PointStore) Len() int {
	return len(s.points)
}

// Points borrows the live set for one synthesis or paint pass
// Callers must not retain or mutate the slice
func (s *PointStore) Points() []core.ControlPoint {
	return s.points
}

// At returns a copy of the point at index i
func (s *PointStore) At(i int) (core.ControlPoint, error) {
	if i < 0 || i >= len(s.points) {
		return core.ControlPoint{}, fmt.Errorf("%w: %d", core.ErrIndexRange, i)
	}
	return s.points[i], nil
}

// anchors returns the linear-mode anchor segment endpoints
func (s *PointStore) anchors() (vmath.Vec2, vmath.Vec2) {
	return s.points[0].Pos(), s.points[1].Pos()
}

// Add appends a clamped point, projecting it onto the anchor segment in
// linear mode. Points are only ever appended so anchor indices stay 0/1.
func (s *PointStore) Add(p core.ControlPoint) (int, error) {
	if len(s.points) >= parameter.MaxControlPoints {
		return -1, fmt.Errorf("%w: %d", core.ErrLimitReached, parameter.MaxControlPoints)
	}
	p = p.Clamp()
	if s.mode == core.ModeLinear {
		a, b := s.anchors()
		proj, _ := vmath.ProjectToSegment(p.Pos(), a, b)
		p.X, p.Y = proj.X, proj.Y
	}
	s.points = append(s.points, p)
	return len(s.points) - 1, nil
}

// Remove deletes the point at index i
// Linear mode refuses to drop below two points or touch an anchor
func (s *PointStore) Remove(i int) error {
	if i < 0 || i >= len(s.points) {
		return fmt.Errorf("%w: %d", core.ErrIndexRange, i)
	}
	if s.mode == core.ModeLinear {
		if len(s.points) <= parameter.MinLinearPoints || i < 2 {
			return core.ErrMinimumPoints
		}
	}
	s.points = append(s.points[:i], s.points[i+1:]...)
	return nil
}

// Move repositions the point at index i, clamped to [0,1]
// Moving a linear anchor re-projects the whole tail onto the new segment;
// moving a tail point re-projects the incoming position so the point
// never leaves the segment
func (s *PointStore) Move(i int, x, y float64) error {
	if i < 0 || i >= len(s.points) {
		return fmt.Errorf("%w: %d", core.ErrIndexRange, i)
	}
	x = vmath.Clamp01(x)
	y = vmath.Clamp01(y)

	if s.mode == core.ModeLinear && i >= 2 {
		a, b := s.anchors()
		proj, _ := vmath.ProjectToSegment(vmath.Vec2{X: x, Y: y}, a, b)
		x, y = proj.X, proj.Y
	}
	s.points[i].X = x
	s.points[i].Y = y

	if s.mode == core.ModeLinear && i < 2 {
		s.reprojectTail()
	}
	return nil
}

// reprojectTail pins every non-anchor point back onto the anchor segment
func (s *PointStore) reprojectTail() {
	a, b := s.anchors()
	for i := 2; i < len(s.points); i++ {
		proj, _ := vmath.ProjectToSegment(s.points[i].Pos(), a, b)
		s.points[i].X = proj.X
		s.points[i].Y = proj.Y
	}
}

// SetColor recolors the point at index i
func (s *PointStore) SetColor(i int, c core.RGB) error {
	if i < 0 || i >= len(s.points) {
		return fmt.Errorf("%w: %d", core.ErrIndexRange, i)
	}
	s.points[i].Color = c
	return nil
}

// AdjustInfluence nudges the point's influence by delta, clamped into range
func (s *PointStore) AdjustInfluence(i int, delta float64) error {
	if i < 0 || i >= len(s.points) {
		return fmt.Errorf("%w: %d", core.ErrIndexRange, i)
	}
	s.points[i].Influence = vmath.Clamp(
		s.points[i].Influence+delta,
		parameter.InfluenceMin,
		parameter.InfluenceMax,
	)
	return nil
}

// SwitchMode saves the live set into the outgoing family's cache and
// loads the incoming family's cache as the new live set
func (s *PointStore) SwitchMode(mode core.InterpMode) {
	s.Commit()
	s.mode = mode
	s.loadFamily()
}

// Commit writes the live set into the active family's cache
// Called on drag release and after every non-drag mutation
func (s *PointStore) Commit() {
	cp := core.ClonePoints(s.points)
	if s.mode.Family() == core.FamilyLinear {
		s.cache.linear = cp
	} else {
		s.cache.other = cp
	}
}

// loadFamily installs the active family's cached set, defaulting to the
// canonical pair when the cache is empty or too small for linear mode
func (s *PointStore) loadFamily() {
	var src []core.ControlPoint
	if s.mode.Family() == core.FamilyLinear {
		src = s.cache.linear
	} else {
		src = s.cache.other
	}
	if len(src) == 0 || (s.mode.Family() == core.FamilyLinear && len(src) < parameter.MinLinearPoints) {
		src = core.DefaultPair()
	}
	s.points = core.ClonePoints(src)
	if s.mode.Family() == core.FamilyLinear {
		s.reprojectTail()
	}
	s.Commit()
}

// ClearAll resets to the mode's canonical default set:
// the red/blue anchor pair for linear, empty for everything else
// (the synthesizer substitutes the default pair at render time)
func (s *PointStore) ClearAll() {
	if s.mode.Family() == core.FamilyLinear {
		s.points = core.DefaultPair()
	} else {
		s.points = nil
	}
	s.Commit()
}

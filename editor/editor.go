// Package editor is the host-facing edit state machine. It interprets
// semantic intents against the point store, enforcing per-mode guard
// rails, and hands out synthesized fields and snapshots.
package editor

import (
	"math"

	"github.com/lixenwraith/gradient-lab/core"
	"github.com/lixenwraith/gradient-lab/field"
	"github.com/lixenwraith/gradient-lab/input"
	"github.com/lixenwraith/gradient-lab/parameter"
	"github.com/lixenwraith/gradient-lab/store"
	"github.com/lixenwraith/gradient-lab/vmath"
)

// editState tracks the single-pointer interaction model
type editState uint8

const (
	stateIdle editState = iota
	stateDragging
)

// Editor owns the transient interaction state and delegates all point
// mutation to the store. One mutating intent is handled to completion
// before the next is accepted.
type Editor struct {
	store *store.PointStore

	width  int
	height int
	nodeW  int
	nodeH  int

	state     editState
	dragIndex int
	selected  int // last interacted point, -1 when none

	dirty bool
}

// New creates an editor over a fresh store
func New(width, height int, mode core.InterpMode) (*Editor, error) {
	e := &Editor{
		store:    store.NewPointStore(mode),
		selected: -1,
		nodeW:    parameter.NodeMinWidth,
		nodeH:    parameter.NodeMinHeight,
	}
	if err := e.Configure(width, height, mode); err != nil {
		return nil, err
	}
	return e, nil
}

// Configure sets the raster size and active mode
func (e *Editor) Configure(width, height int, mode core.InterpMode) error {
	cfg := field.Config{Width: width, Height: height, Mode: mode}
	if err := cfg.Validate(); err != nil {
		return err
	}
	e.width = width
	e.height = height
	if mode != e.store.Mode() {
		e.store.SwitchMode(mode)
		e.selected = -1
		e.state = stateIdle
	}
	e.dirty = true
	return nil
}

// Mode returns the active interpolation mode
func (e *Editor) Mode() core.InterpMode {
	return e.store.Mode()
}

// Size returns the raster dimensions
func (e *Editor) Size() (int, int) {
	return e.width, e.height
}

// Selected returns the index of the active point, or -1
func (e *Editor) Selected() int {
	return e.selected
}

// Points returns a copy of the live set for marker drawing or a
// detached synthesis pass
func (e *Editor) Points() []core.ControlPoint {
	return core.ClonePoints(e.store.Points())
}

// At returns a copy of one live point
func (e *Editor) At(i int) (core.ControlPoint, error) {
	return e.store.At(i)
}

// FieldConfig describes the current synthesis parameters
func (e *Editor) FieldConfig() field.Config {
	return field.Config{Width: e.width, Height: e.height, Mode: e.store.Mode()}
}

// RenderField synthesizes a fresh pixel field from the live set
func (e *Editor) RenderField() (*field.Buffer, error) {
	return field.Synthesize(e.store.Points(), e.FieldConfig())
}

// ConsumeDirty reports whether the field needs recomputing since the
// last call, and resets the flag
func (e *Editor) ConsumeDirty() bool {
	d := e.dirty
	e.dirty = false
	return d
}

// Apply handles one semantic intent to completion
// Rejections return a sentinel error and leave the state unchanged;
// system intents (quit/resize/save) are the host's business and no-ops here
func (e *Editor) Apply(in input.Intent) error {
	switch in.Type {
	case input.IntentPointerDown:
		return e.pointerDown(in.X, in.Y)
	case input.IntentPointerDrag:
		return e.pointerDrag(in.X, in.Y)
	case input.IntentPointerUp:
		return e.pointerUp()
	case input.IntentReweight:
		return e.reweight(in.X, in.Y, in.Delta)
	case input.IntentRecolor:
		return e.recolor(in.Color)
	case input.IntentCopy:
		return e.copySelected()
	case input.IntentDelete:
		return e.deleteSelected()
	case input.IntentClearAll:
		return e.clearAll()
	case input.IntentSwitchMode:
		return e.switchMode(in.Mode)
	}
	return nil
}

// pointerDown selects the point under the press or adds a new one
func (e *Editor) pointerDown(x, y int) error {
	if e.state == stateDragging {
		// Single active pointer model: a second press is ignored
		return nil
	}
	press := vmath.Vec2{X: float64(x), Y: float64(y)}

	if hit := e.hitTest(press); hit >= 0 {
		e.selected = hit
		e.dragIndex = hit
		e.state = stateDragging
		return nil
	}

	// Miss: try to add at the press position
	if e.store.Mode() == core.ModeLinear {
		proj := e.projectToAnchorsPx(press)
		if press.Sub(proj).Length() > parameter.LineTolerancePx {
			return core.ErrNotOnLine
		}
	}
	if e.nearestPointPx(press) < parameter.SelectRadiusPx*parameter.OverlapRejectFactor {
		return core.ErrOverlap
	}

	nx, ny := e.normalize(x, y)
	idx, err := e.store.Add(core.ControlPoint{
		X:         nx,
		Y:         ny,
		Color:     core.RGBWhite,
		Influence: parameter.InfluenceDefault,
	})
	if err != nil {
		return err
	}
	e.selected = idx
	e.dragIndex = idx
	e.state = stateDragging
	e.dirty = true
	return nil
}

// pointerDrag moves the dragged point, snapping to the exact boundary
// when close to it
func (e *Editor) pointerDrag(x, y int) error {
	if e.state != stateDragging {
		return nil
	}
	nx, ny := e.normalize(x, y)
	nx = edgeSnap(nx)
	ny = edgeSnap(ny)
	if err := e.store.Move(e.dragIndex, nx, ny); err != nil {
		return err
	}
	e.dirty = true
	return nil
}

// pointerUp commits the live set into the active family cache
func (e *Editor) pointerUp() error {
	if e.state != stateDragging {
		return nil
	}
	e.store.Commit()
	e.state = stateIdle
	return nil
}

// reweight nudges the influence of the point under the wheel
// Disabled entirely in voronoi mode, whose distance ignores influence
func (e *Editor) reweight(x, y, delta int) error {
	if e.store.Mode() == core.ModeVoronoi {
		return nil
	}
	hit := e.hitTest(vmath.Vec2{X: float64(x), Y: float64(y)})
	if hit < 0 {
		return nil
	}
	if err := e.store.AdjustInfluence(hit, float64(delta)*parameter.InfluenceStep); err != nil {
		return err
	}
	e.selected = hit
	e.store.Commit()
	e.dirty = true
	return nil
}

// recolor applies a color to the selected point
// An invalid hex still recolors (to white) and reports the warning
func (e *Editor) recolor(hex string) error {
	if e.selected < 0 || e.selected >= e.store.Len() {
		return nil
	}
	c, cerr := core.HexToRGB(hex)
	if err := e.store.SetColor(e.selected, c); err != nil {
		return err
	}
	e.store.Commit()
	e.dirty = true
	return cerr
}

// copySelected duplicates the selected point with a small offset
// The store re-projects the duplicate onto the segment in linear mode
func (e *Editor) copySelected() error {
	if e.selected < 0 || e.selected >= e.store.Len() {
		return nil
	}
	src, err := e.store.At(e.selected)
	if err != nil {
		return err
	}
	src.X += parameter.CopyOffset
	src.Y += parameter.CopyOffset
	idx, err := e.store.Add(src)
	if err != nil {
		return err
	}
	e.selected = idx
	e.store.Commit()
	e.dirty = true
	return nil
}

// deleteSelected removes the selected point under the store's guard rails
func (e *Editor) deleteSelected() error {
	if e.selected < 0 || e.selected >= e.store.Len() {
		return nil
	}
	if err := e.store.Remove(e.selected); err != nil {
		return err
	}
	e.selected = -1
	e.store.Commit()
	e.dirty = true
	return nil
}

// clearAll resets to the mode's canonical default set
func (e *Editor) clearAll() error {
	e.store.ClearAll()
	e.selected = -1
	e.state = stateIdle
	e.dirty = true
	return nil
}

// switchMode commits the live set and swaps in the target family's cache
func (e *Editor) switchMode(mode core.InterpMode) error {
	if mode == e.store.Mode() {
		return nil
	}
	e.store.SwitchMode(mode)
	e.selected = -1
	e.state = stateIdle
	e.dirty = true
	return nil
}

// Snapshot serializes the full editor state for the host boundary
func (e *Editor) Snapshot() store.Snapshot {
	live, linear, other := e.store.EncodeSets()
	return store.Snapshot{
		ControlPoints:   live,
		LinearCache:     linear,
		OtherModesCache: other,
		Width:           e.width,
		Height:          e.height,
		Interpolation:   e.store.Mode().String(),
		NodeSize:        [2]int{e.nodeW, e.nodeH},
	}
}

// LoadSnapshot installs a snapshot, clamping out-of-range values
// Interaction state resets; field recompute is flagged
func (e *Editor) LoadSnapshot(snap store.Snapshot) {
	snap.ClampLayout()
	e.width = snap.Width
	e.height = snap.Height
	e.nodeW = snap.NodeSize[0]
	e.nodeH = snap.NodeSize[1]
	e.store.Restore(snap.ControlPoints, snap.LinearCache, snap.OtherModesCache,
		core.ParseMode(snap.Interpolation))
	e.selected = -1
	e.state = stateIdle
	e.dirty = true
}

// normalize maps device pixels into [0,1]² field space
func (e *Editor) normalize(x, y int) (float64, float64) {
	return vmath.Clamp01(float64(x) / float64(e.width)),
		vmath.Clamp01(float64(y) / float64(e.height))
}

// devicePos returns a point's position in device pixels
func (e *Editor) devicePos(p core.ControlPoint) vmath.Vec2 {
	return vmath.Vec2{X: p.X * float64(e.width), Y: p.Y * float64(e.height)}
}

// hitTest returns the nearest point within the selection radius, or -1
// The radius is fixed in device pixels, independent of raster scale
func (e *Editor) hitTest(press vmath.Vec2) int {
	best := -1
	bestD := parameter.SelectRadiusPx
	for i, p := range e.store.Points() {
		if d := press.Sub(e.devicePos(p)).Length(); d <= bestD {
			best = i
			bestD = d
		}
	}
	return best
}

// nearestPointPx returns the device-pixel distance to the closest point
func (e *Editor) nearestPointPx(press vmath.Vec2) float64 {
	nearest := math.Inf(1)
	for _, p := range e.store.Points() {
		if d := press.Sub(e.devicePos(p)).Length(); d < nearest {
			nearest = d
		}
	}
	return nearest
}

// projectToAnchorsPx projects a device-pixel press onto the anchor
// segment, also in device pixels
func (e *Editor) projectToAnchorsPx(press vmath.Vec2) vmath.Vec2 {
	p0, _ := e.store.At(0)
	p1, _ := e.store.At(1)
	proj, _ := vmath.ProjectToSegment(press, e.devicePos(p0), e.devicePos(p1))
	return proj
}

// edgeSnap pins values near the boundary to exactly 0 or 1
func edgeSnap(v float64) float64 {
	if v < parameter.EdgeSnapThreshold {
		return 0
	}
	if v > 1-parameter.EdgeSnapThreshold {
		return 1
	}
	return v
}

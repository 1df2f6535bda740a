package store

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/lixenwraith/gradient-lab/core"
	"github.com/lixenwraith/gradient-lab/parameter"
)

// ErrMalformedSnapshot is reported when a snapshot document cannot be
// parsed at all; individually bad fields are recovered with defaults
var ErrMalformedSnapshot = errors.New("malformed snapshot")

// SnapshotPoint is the wire form of one control point
type SnapshotPoint struct {
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	Color     string  `json:"color"`
	Influence float64 `json:"influence"`
}

// Snapshot is the boundary contract with the host renderer and
// persistence layer
type Snapshot struct {
	ControlPoints   []SnapshotPoint `json:"control_points"`
	LinearCache     []SnapshotPoint `json:"linear_cache"`
	OtherModesCache []SnapshotPoint `json:"other_modes_cache"`
	Width           int             `json:"width"`
	Height          int             `json:"height"`
	Interpolation   string          `json:"interpolation"`
	NodeSize        [2]int          `json:"node_size"`
}

// Marshal serializes the snapshot as indented JSON
func (s Snapshot) Marshal() ([]byte, error) {
	return json.MarshalIndent(s, "", "  ")
}

// ParseSnapshot decodes a snapshot document field by field, substituting
// defaults for the offending fields only, never discarding the rest
func ParseSnapshot(data []byte) (Snapshot, error) {
	var raw struct {
		ControlPoints   json.RawMessage `json:"control_points"`
		LinearCache     json.RawMessage `json:"linear_cache"`
		OtherModesCache json.RawMessage `json:"other_modes_cache"`
		Width           json.RawMessage `json:"width"`
		Height          json.RawMessage `json:"height"`
		Interpolation   json.RawMessage `json:"interpolation"`
		NodeSize        json.RawMessage `json:"node_size"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return Snapshot{}, fmt.Errorf("%w: %v", ErrMalformedSnapshot, err)
	}

	var snap Snapshot
	decodeField(raw.ControlPoints, &snap.ControlPoints)
	decodeField(raw.LinearCache, &snap.LinearCache)
	decodeField(raw.OtherModesCache, &snap.OtherModesCache)
	decodeField(raw.Width, &snap.Width)
	decodeField(raw.Height, &snap.Height)
	decodeField(raw.Interpolation, &snap.Interpolation)
	decodeField(raw.NodeSize, &snap.NodeSize)

	snap.ClampLayout()
	return snap, nil
}

// decodeField leaves dst at its zero value when the raw field is absent
// or does not decode
func decodeField(raw json.RawMessage, dst any) {
	if len(raw) == 0 {
		return
	}
	_ = json.Unmarshal(raw, dst)
}

// ClampLayout coerces raster and node dimensions into their valid ranges
func (s *Snapshot) ClampLayout() {
	if s.Width < 1 || s.Width > parameter.MaxFieldDim {
		s.Width = parameter.DefaultFieldWidth
	}
	if s.Height < 1 || s.Height > parameter.MaxFieldDim {
		s.Height = parameter.DefaultFieldHeight
	}
	if s.NodeSize[0] < parameter.NodeMinWidth {
		s.NodeSize[0] = parameter.NodeMinWidth
	}
	if s.NodeSize[1] < parameter.NodeMinHeight {
		s.NodeSize[1] = parameter.NodeMinHeight
	}
}

// encodePoints converts a live set to wire form
func encodePoints(pts []core.ControlPoint) []SnapshotPoint {
	out := make([]SnapshotPoint, len(pts))
	for i, p := range pts {
		out[i] = SnapshotPoint{
			X:         p.X,
			Y:         p.Y,
			Color:     p.Color.Hex(),
			Influence: p.Influence,
		}
	}
	return out
}

// decodePoints converts wire points back to a clamped live set
// Bad colors coerce to white; oversized lists truncate at the cap
func decodePoints(pts []SnapshotPoint) []core.ControlPoint {
	if len(pts) > parameter.MaxControlPoints {
		pts = pts[:parameter.MaxControlPoints]
	}
	out := make([]core.ControlPoint, len(pts))
	for i, sp := range pts {
		c, _ := core.HexToRGB(sp.Color)
		out[i] = core.ControlPoint{
			X:         sp.X,
			Y:         sp.Y,
			Color:     c,
			Influence: sp.Influence,
		}.Clamp()
	}
	return out
}

// EncodeSets emits the live set and both family caches in wire form
func (s *PointStore) EncodeSets() (live, linear, other []SnapshotPoint) {
	return encodePoints(s.points), encodePoints(s.cache.linear), encodePoints(s.cache.other)
}

// Restore installs a snapshot's point sets and mode
// A missing or malformed live list (nil, as opposed to a valid empty
// list) falls back to the canonical default pair; the live set then
// overwrites its own family cache so exactly one cache mirrors it again
func (s *PointStore) Restore(live, linear, other []SnapshotPoint, mode core.InterpMode) {
	s.mode = mode
	s.cache.linear = decodePoints(linear)
	s.cache.other = decodePoints(other)

	pts := decodePoints(live)
	if live == nil || (mode.Family() == core.FamilyLinear && len(pts) < parameter.MinLinearPoints) {
		pts = core.DefaultPair()
	}
	s.points = pts
	if mode.Family() == core.FamilyLinear {
		s.reprojectTail()
	}
	s.Commit()
}

package core

// InterpMode selects the field synthesis algorithm
type InterpMode uint8

const (
	ModeIDW InterpMode = iota
	ModeIDWSoft
	ModeRadial
	ModeVoronoi
	ModeLinear
)

// ModeFamily groups modes by control point semantics
// Linear mode has structurally different points (anchors + on-segment tail)
// so its set is cached separately from every other mode
type ModeFamily uint8

const (
	FamilyOther ModeFamily = iota
	FamilyLinear
)

// Family returns the cache family the mode belongs to
func (m InterpMode) Family() ModeFamily {
	if m == ModeLinear {
		return FamilyLinear
	}
	return FamilyOther
}

// String returns the wire name used in snapshots
func (m InterpMode) String() string {
	switch m {
	case ModeIDW:
		return "idw"
	case ModeIDWSoft:
		return "idw(soft)"
	case ModeRadial:
		return "radial"
	case ModeVoronoi:
		return "voronoi"
	case ModeLinear:
		return "linear"
	}
	return "idw"
}

// ParseMode maps a wire name to a mode
// Unknown or malformed names fall back to idw
func ParseMode(s string) InterpMode {
	switch s {
	case "idw":
		return ModeIDW
	case "idw(soft)", "idw_soft":
		return ModeIDWSoft
	case "radial":
		return ModeRadial
	case "voronoi":
		return ModeVoronoi
	case "linear":
		return ModeLinear
	}
	return ModeIDW
}

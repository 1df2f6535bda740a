package core

import "errors"

// Editing failures are transient and user-visible, never fatal to the host
var (
	ErrInvalidColor  = errors.New("invalid color format")
	ErrLimitReached  = errors.New("control point limit reached")
	ErrNotOnLine     = errors.New("point not on anchor line")
	ErrMinimumPoints = errors.New("linear mode keeps at least its two anchors")
	ErrOverlap       = errors.New("too close to an existing point")
	ErrFieldSize     = errors.New("field dimensions must be positive")
	ErrIndexRange    = errors.New("control point index out of range")
)

package field

import "github.com/lixenwraith/gradient-lab/core"

// Buffer is a dense width×height RGBA byte field
// Reuses its backing array across Resize calls to avoid per-frame allocation
type Buffer struct {
	width  int
	height int
	data   []uint8 // 4 bytes per pixel, row-major
}

// NewBuffer creates a buffer with the specified dimensions
func NewBuffer(width, height int) *Buffer {
	b := &Buffer{}
	b.Resize(width, height)
	return b
}

// Resize adjusts buffer dimensions, reallocates only if capacity insufficient
func (b *Buffer) Resize(width, height int) {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	size := width * height * 4
	if cap(b.data) < size {
		b.data = make([]uint8, size)
	} else {
		b.data = b.data[:size]
	}
	b.width = width
	b.height = height
}

// Width returns the buffer width in pixels
func (b *Buffer) Width() int {
	return b.width
}

// Height returns the buffer height in pixels
func (b *Buffer) Height() int {
	return b.height
}

// Data returns the raw RGBA bytes, handed by reference to the renderer
func (b *Buffer) Data() []uint8 {
	return b.data
}

func (b *Buffer) inBounds(x, y int) bool {
	return x >= 0 && x < b.width && y >= 0 && y < b.height
}

// Set writes an opaque pixel
func (b *Buffer) Set(x, y int, c core.RGB) {
	if !b.inBounds(x, y) {
		return
	}
	i := (y*b.width + x) * 4
	b.data[i+0] = c.R
	b.data[i+1] = c.G
	b.data[i+2] = c.B
	b.data[i+3] = 255
}

// At reads a pixel back; out-of-bounds reads return opaque black
func (b *Buffer) At(x, y int) core.RGB {
	if !b.inBounds(x, y) {
		return core.RGBBlack
	}
	i := (y*b.width + x) * 4
	return core.RGB{R: b.data[i+0], G: b.data[i+1], B: b.data[i+2]}
}

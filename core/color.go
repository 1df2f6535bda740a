package core

import (
	"fmt"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// RGB stores explicit 8-bit color channels, decoupled from tcell
type RGB struct {
	R, G, B uint8
}

// Predefined colors
var (
	RGBBlack = RGB{0, 0, 0}
	RGBWhite = RGB{255, 255, 255}
	RGBRed   = RGB{255, 0, 0}
	RGBBlue  = RGB{0, 0, 255}
)

// HexToRGB parses a 6-hex-digit color, with or without leading '#'
// Invalid input coerces to opaque white and reports ErrInvalidColor
func HexToRGB(hex string) (RGB, error) {
	s := strings.TrimPrefix(hex, "#")
	if !isHex6(s) {
		return RGBWhite, fmt.Errorf("%w: %q", ErrInvalidColor, hex)
	}
	c, err := colorful.Hex("#" + strings.ToLower(s))
	if err != nil {
		return RGBWhite, fmt.Errorf("%w: %q", ErrInvalidColor, hex)
	}
	r, g, b := c.RGB255()
	return RGB{r, g, b}, nil
}

func isHex6(s string) bool {
	if len(s) != 6 {
		return false
	}
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
		case r >= 'a' && r <= 'f':
		case r >= 'A' && r <= 'F':
		default:
			return false
		}
	}
	return true
}

// Hex formats the color as "#rrggbb"
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// Complementary returns the per-channel inverse
// Used for outline/label contrast, never for field synthesis
func (c RGB) Complementary() RGB {
	return RGB{255 - c.R, 255 - c.G, 255 - c.B}
}

// Lerp blends toward o by factor f per channel, f clamped to [0,1]
func (c RGB) Lerp(o RGB, f float64) RGB {
	if f <= 0 {
		return c
	}
	if f >= 1 {
		return o
	}
	return RGB{
		R: lerpChannel(c.R, o.R, f),
		G: lerpChannel(c.G, o.G, f),
		B: lerpChannel(c.B, o.B, f),
	}
}

func lerpChannel(a, b uint8, f float64) uint8 {
	return uint8(float64(a) + f*(float64(b)-float64(a)) + 0.5)
}

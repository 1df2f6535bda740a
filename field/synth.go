package field

import (
	"fmt"
	"sort"

	"github.com/lixenwraith/gradient-lab/core"
	"github.com/lixenwraith/gradient-lab/parameter"
	"github.com/lixenwraith/gradient-lab/vmath"
)

// coincidenceEpsilon keeps IDW weights finite when a pixel lands exactly
// on a control point
const coincidenceEpsilon = 1e-6

// Config bounds one synthesis call
type Config struct {
	Width  int
	Height int
	Mode   core.InterpMode
}

// Validate rejects rasters the engine must not attempt
func (c Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("%w: %dx%d", core.ErrFieldSize, c.Width, c.Height)
	}
	if c.Width > parameter.MaxFieldDim || c.Height > parameter.MaxFieldDim {
		return fmt.Errorf("%w: %dx%d exceeds %d", core.ErrFieldSize, c.Width, c.Height, parameter.MaxFieldDim)
	}
	return nil
}

// Synthesize computes a fresh pixel field from the control point set
// Deterministic: identical inputs always produce an identical field
func Synthesize(points []core.ControlPoint, cfg Config) (*Buffer, error) {
	dst := NewBuffer(0, 0)
	if err := SynthesizeInto(dst, points, cfg); err != nil {
		return nil, err
	}
	return dst, nil
}

// SynthesizeInto recomputes the field into dst, reusing its allocation
// The point slice is borrowed for the duration of the call and not retained
func SynthesizeInto(dst *Buffer, points []core.ControlPoint, cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	// Degenerate sets render the canonical default pair instead of a
	// visibly broken field
	pts := points
	if cfg.Mode == core.ModeLinear {
		if len(pts) < 2 {
			pts = core.DefaultPair()
		}
	} else if len(pts) == 0 {
		pts = core.DefaultPair()
	}

	dst.Resize(cfg.Width, cfg.Height)

	switch cfg.Mode {
	case core.ModeIDW:
		synthDistanceWeighted(dst, pts, false)
	case core.ModeIDWSoft:
		synthDistanceWeighted(dst, pts, true)
	case core.ModeRadial:
		synthNearest(dst, pts, radialDistance)
	case core.ModeVoronoi:
		synthNearest(dst, pts, voronoiDistance)
	case core.ModeLinear:
		synthLinear(dst, pts)
	default:
		synthDistanceWeighted(dst, pts, false)
	}
	return nil
}

// synthDistanceWeighted blends every point by inverse distance
// soft uses 1/d (gentler falloff, larger blend radius) instead of 1/d²
func synthDistanceWeighted(dst *Buffer, pts []core.ControlPoint, soft bool) {
	fw := float64(dst.width)
	fh := float64(dst.height)
	for py := 0; py < dst.height; py++ {
		ny := float64(py) / fh
		for px := 0; px < dst.width; px++ {
			nx := float64(px) / fw

			var sumW, sumR, sumG, sumB float64
			for i := range pts {
				p := &pts[i]
				d := vmath.Distance(nx, ny, p.X, p.Y)/p.Influence + coincidenceEpsilon
				var w float64
				if soft {
					w = 1 / d
				} else {
					w = 1 / (d * d)
				}
				sumW += w
				sumR += w * float64(p.Color.R)
				sumG += w * float64(p.Color.G)
				sumB += w * float64(p.Color.B)
			}

			if sumW == 0 {
				dst.Set(px, py, core.RGBWhite)
				continue
			}
			dst.Set(px, py, core.RGB{
				R: uint8(sumR/sumW + 0.5),
				G: uint8(sumG/sumW + 0.5),
				B: uint8(sumB/sumW + 0.5),
			})
		}
	}
}

// radialDistance is Euclidean stretched by the point's influence
func radialDistance(nx, ny float64, p *core.ControlPoint) float64 {
	return vmath.Distance(nx, ny, p.X, p.Y) / p.Influence
}

// voronoiDistance is Manhattan and deliberately ignores influence,
// producing diamond-shaped cells
func voronoiDistance(nx, ny float64, p *core.ControlPoint) float64 {
	return vmath.DistanceManhattan(nx, ny, p.X, p.Y)
}

// synthNearest paints each pixel with its nearest point's color
// Strict less-than keeps the first-encountered index on ties
func synthNearest(dst *Buffer, pts []core.ControlPoint, dist func(float64, float64, *core.ControlPoint) float64) {
	fw := float64(dst.width)
	fh := float64(dst.height)
	for py := 0; py < dst.height; py++ {
		ny := float64(py) / fh
		for px := 0; px < dst.width; px++ {
			nx := float64(px) / fw

			best := 0
			bestD := dist(nx, ny, &pts[0])
			for i := 1; i < len(pts); i++ {
				if d := dist(nx, ny, &pts[i]); d < bestD {
					best = i
					bestD = d
				}
			}
			dst.Set(px, py, pts[best].Color)
		}
	}
}

type linearStop struct {
	t     float64
	color core.RGB
}

// synthLinear projects every pixel onto the anchor segment and blends
// between the two t-sorted stops bracketing the pixel's own t
func synthLinear(dst *Buffer, pts []core.ControlPoint) {
	a := pts[0].Pos()
	b := pts[1].Pos()

	// Every point, anchors included, becomes a stop at its own projection
	stops := make([]linearStop, len(pts))
	for i := range pts {
		_, t := vmath.ProjectToSegment(pts[i].Pos(), a, b)
		stops[i] = linearStop{t: t, color: pts[i].Color}
	}
	// Stable sort keeps coincident stops in insertion order
	sort.SliceStable(stops, func(i, j int) bool {
		return stops[i].t < stops[j].t
	})

	fw := float64(dst.width)
	fh := float64(dst.height)
	for py := 0; py < dst.height; py++ {
		ny := float64(py) / fh
		for px := 0; px < dst.width; px++ {
			nx := float64(px) / fw
			_, t := vmath.ProjectToSegment(vmath.Vec2{X: nx, Y: ny}, a, b)
			dst.Set(px, py, colorAtParam(stops, t))
		}
	}
}

// colorAtParam blends between the stops bracketing t
// Outside the stop range the nearest end color extends unchanged
func colorAtParam(stops []linearStop, t float64) core.RGB {
	if t <= stops[0].t {
		return stops[0].color
	}
	last := len(stops) - 1
	if t >= stops[last].t {
		return stops[last].color
	}
	for i := 0; i < last; i++ {
		t0, t1 := stops[i].t, stops[i+1].t
		if t > t1 {
			continue
		}
		if t1 == t0 {
			return stops[i].color
		}
		return stops[i].color.Lerp(stops[i+1].color, (t-t0)/(t1-t0))
	}
	return stops[last].color
}

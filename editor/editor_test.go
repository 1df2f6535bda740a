package editor

import (
	"errors"
	"math"
	"reflect"
	"testing"

	"github.com/lixenwraith/gradient-lab/core"
	"github.com/lixenwraith/gradient-lab/field"
	"github.com/lixenwraith/gradient-lab/input"
	"github.com/lixenwraith/gradient-lab/parameter"
	"github.com/lixenwraith/gradient-lab/vmath"
)

func newEditor(t *testing.T, mode core.InterpMode) *Editor {
	t.Helper()
	e, err := New(100, 100, mode)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return e
}

func apply(t *testing.T, e *Editor, in input.Intent) {
	t.Helper()
	if err := e.Apply(in); err != nil {
		t.Fatalf("Apply(%+v) failed: %v", in, err)
	}
}

func down(x, y int) input.Intent { return input.Intent{Type: input.IntentPointerDown, X: x, Y: y} }
func drag(x, y int) input.Intent { return input.Intent{Type: input.IntentPointerDrag, X: x, Y: y} }
func up() input.Intent           { return input.Intent{Type: input.IntentPointerUp} }
func wheel(x, y, d int) input.Intent {
	return input.Intent{Type: input.IntentReweight, X: x, Y: y, Delta: d}
}

func TestNewRejectsBadRaster(t *testing.T) {
	if _, err := New(0, 100, core.ModeIDW); !errors.Is(err, core.ErrFieldSize) {
		t.Errorf("Expected ErrFieldSize, got %v", err)
	}
}

func TestPressMissAddsAndDrags(t *testing.T) {
	e := newEditor(t, core.ModeIDW)

	// Far from both default points at device (20,20) and (80,80)
	apply(t, e, down(50, 10))
	if e.Selected() != 2 {
		t.Fatalf("Expected new point selected at index 2, got %d", e.Selected())
	}
	p, _ := e.At(2)
	if p.X != 0.5 || p.Y != 0.1 {
		t.Errorf("Expected new point at (0.5, 0.1), got (%v, %v)", p.X, p.Y)
	}
	if p.Influence != parameter.InfluenceDefault {
		t.Errorf("Expected default influence, got %v", p.Influence)
	}

	apply(t, e, drag(60, 30))
	p, _ = e.At(2)
	if p.X != 0.6 || p.Y != 0.3 {
		t.Errorf("Drag: expected (0.6, 0.3), got (%v, %v)", p.X, p.Y)
	}
	apply(t, e, up())

	// The commit survives a family round trip
	apply(t, e, input.Intent{Type: input.IntentSwitchMode, Mode: core.ModeLinear})
	apply(t, e, input.Intent{Type: input.IntentSwitchMode, Mode: core.ModeIDW})
	p, _ = e.At(2)
	if p.X != 0.6 || p.Y != 0.3 {
		t.Errorf("Committed point lost across mode switch: (%v, %v)", p.X, p.Y)
	}
}

func TestPressHitSelectsExisting(t *testing.T) {
	e := newEditor(t, core.ModeIDW)

	// Within the selection radius of the default red point
	apply(t, e, down(22, 21))
	if e.Selected() != 0 {
		t.Errorf("Expected selection of point 0, got %d", e.Selected())
	}
	if len(e.Points()) != 2 {
		t.Errorf("Hit must not add a point, got %d", len(e.Points()))
	}
}

func TestOverlapRejection(t *testing.T) {
	e := newEditor(t, core.ModeIDW)

	// 12px from point 0: outside the 10px pick radius, inside 1.5×
	err := e.Apply(down(32, 20))
	if !errors.Is(err, core.ErrOverlap) {
		t.Errorf("Expected ErrOverlap, got %v", err)
	}
	if len(e.Points()) != 2 {
		t.Errorf("Rejected add changed the set: %d points", len(e.Points()))
	}
}

func TestSecondPressWhileDraggingIgnored(t *testing.T) {
	e := newEditor(t, core.ModeIDW)

	apply(t, e, down(50, 50))
	n := len(e.Points())
	apply(t, e, down(50, 10)) // ignored, no error, no add
	if len(e.Points()) != n {
		t.Errorf("Second press added a point: %d vs %d", len(e.Points()), n)
	}
	apply(t, e, up())
}

func TestEdgeSnap(t *testing.T) {
	e := newEditor(t, core.ModeIDW)

	apply(t, e, down(50, 50))
	apply(t, e, drag(1, 99))
	p, _ := e.At(e.Selected())
	if p.X != 0 {
		t.Errorf("Expected x snapped to exactly 0, got %v", p.X)
	}
	if p.Y != 1 {
		t.Errorf("Expected y snapped to exactly 1, got %v", p.Y)
	}
	apply(t, e, up())
}

func TestLinearAddRequiresOnLine(t *testing.T) {
	e := newEditor(t, core.ModeLinear)

	// Default anchors run device (20,20)→(80,80); this press is ~28px off
	err := e.Apply(down(50, 10))
	if !errors.Is(err, core.ErrNotOnLine) {
		t.Errorf("Expected ErrNotOnLine, got %v", err)
	}
	if len(e.Points()) != 2 {
		t.Errorf("Rejected add changed the set: %d points", len(e.Points()))
	}

	// A press within tolerance lands on the segment
	apply(t, e, down(52, 50))
	apply(t, e, up())
	if len(e.Points()) != 3 {
		t.Fatalf("Expected on-line add, got %d points", len(e.Points()))
	}
	p, _ := e.At(2)
	a, _ := e.At(0)
	b, _ := e.At(1)
	proj, _ := vmath.ProjectToSegment(p.Pos(), a.Pos(), b.Pos())
	if math.Abs(proj.X-p.X) > 1e-9 || math.Abs(proj.Y-p.Y) > 1e-9 {
		t.Errorf("Added point off the anchor segment: (%v, %v)", p.X, p.Y)
	}
}

// No sequence of intents can change the anchors' identity or delete them
func TestAnchorImmutability(t *testing.T) {
	e := newEditor(t, core.ModeLinear)
	a0, _ := e.At(0)

	// Select anchor 0, try to delete it
	apply(t, e, down(20, 20))
	apply(t, e, up())
	if e.Selected() != 0 {
		t.Fatalf("Expected anchor 0 selected, got %d", e.Selected())
	}
	if err := e.Apply(input.Intent{Type: input.IntentDelete}); !errors.Is(err, core.ErrMinimumPoints) {
		t.Errorf("Expected ErrMinimumPoints deleting an anchor, got %v", err)
	}
	got, _ := e.At(0)
	if got != a0 {
		t.Errorf("Anchor 0 changed: %v vs %v", got, a0)
	}

	// Dragging an anchor keeps its index and re-pins the tail
	apply(t, e, down(46, 50)) // on-line add near the middle
	apply(t, e, up())
	apply(t, e, down(20, 20)) // grab anchor 0
	apply(t, e, drag(10, 50))
	apply(t, e, up())
	p0, _ := e.At(0)
	if p0.X != 0.1 || p0.Y != 0.5 {
		t.Errorf("Anchor 0 did not move to (0.1, 0.5): (%v, %v)", p0.X, p0.Y)
	}
	p2, _ := e.At(2)
	b0, _ := e.At(0)
	b1, _ := e.At(1)
	proj, _ := vmath.ProjectToSegment(p2.Pos(), b0.Pos(), b1.Pos())
	if math.Abs(proj.X-p2.X) > 1e-9 || math.Abs(proj.Y-p2.Y) > 1e-9 {
		t.Errorf("Tail point left the segment after anchor move: (%v, %v)", p2.X, p2.Y)
	}
}

func TestPointerAddLimit(t *testing.T) {
	e, err := New(1000, 1000, core.ModeIDW)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	// Default pair occupies (200,200) and (800,800) device px; place the
	// rest on a sparse grid well clear of them
	placed := 2
	for gy := 0; gy < 10 && placed < parameter.MaxControlPoints; gy++ {
		for gx := 0; gx < 10 && placed < parameter.MaxControlPoints; gx++ {
			x := gx*100 + 50
			y := gy*100 + 50
			if aerr := e.Apply(down(x, y)); aerr != nil {
				t.Fatalf("Add %d at (%d,%d) failed: %v", placed, x, y, aerr)
			}
			apply(t, e, up())
			placed++
		}
	}
	if len(e.Points()) != parameter.MaxControlPoints {
		t.Fatalf("Expected %d points, got %d", parameter.MaxControlPoints, len(e.Points()))
	}

	if err := e.Apply(down(950, 950)); !errors.Is(err, core.ErrLimitReached) {
		t.Errorf("Expected ErrLimitReached on 51st point, got %v", err)
	}
	if len(e.Points()) != parameter.MaxControlPoints {
		t.Errorf("Rejected add changed count: %d", len(e.Points()))
	}
}

func TestReweight(t *testing.T) {
	e := newEditor(t, core.ModeIDW)

	apply(t, e, wheel(20, 20, 1))
	p, _ := e.At(0)
	if math.Abs(p.Influence-1.1) > 1e-9 {
		t.Errorf("Expected influence 1.1, got %v", p.Influence)
	}

	// Wheel away from any point is a no-op
	apply(t, e, wheel(50, 50, 1))
	p, _ = e.At(0)
	if math.Abs(p.Influence-1.1) > 1e-9 {
		t.Errorf("Far wheel changed influence to %v", p.Influence)
	}
}

func TestReweightDisabledInVoronoi(t *testing.T) {
	e := newEditor(t, core.ModeVoronoi)

	apply(t, e, wheel(20, 20, 1))
	p, _ := e.At(0)
	if p.Influence != parameter.InfluenceDefault {
		t.Errorf("Voronoi reweight must be disabled, influence %v", p.Influence)
	}
}

func TestRecolor(t *testing.T) {
	e := newEditor(t, core.ModeIDW)
	apply(t, e, down(22, 21))
	apply(t, e, up())

	apply(t, e, input.Intent{Type: input.IntentRecolor, Color: "#00ff00"})
	p, _ := e.At(0)
	if p.Color != (core.RGB{R: 0, G: 255, B: 0}) {
		t.Errorf("Expected green, got %v", p.Color)
	}

	// Invalid hex recolors to white and surfaces the warning
	err := e.Apply(input.Intent{Type: input.IntentRecolor, Color: "bogus"})
	if !errors.Is(err, core.ErrInvalidColor) {
		t.Errorf("Expected ErrInvalidColor warning, got %v", err)
	}
	p, _ = e.At(0)
	if p.Color != core.RGBWhite {
		t.Errorf("Expected white fallback, got %v", p.Color)
	}
}

func TestCopySelected(t *testing.T) {
	e := newEditor(t, core.ModeIDW)
	apply(t, e, down(22, 21))
	apply(t, e, up())

	apply(t, e, input.Intent{Type: input.IntentCopy})
	if len(e.Points()) != 3 {
		t.Fatalf("Expected 3 points after copy, got %d", len(e.Points()))
	}
	src, _ := e.At(0)
	dup, _ := e.At(2)
	if math.Abs(dup.X-(src.X+parameter.CopyOffset)) > 1e-9 ||
		math.Abs(dup.Y-(src.Y+parameter.CopyOffset)) > 1e-9 {
		t.Errorf("Copy offset wrong: src (%v,%v), dup (%v,%v)", src.X, src.Y, dup.X, dup.Y)
	}
	if dup.Color != src.Color || dup.Influence != src.Influence {
		t.Errorf("Copy must clone color and influence")
	}
	if e.Selected() != 2 {
		t.Errorf("Copy should select the duplicate, got %d", e.Selected())
	}
}

func TestClearAll(t *testing.T) {
	idw := newEditor(t, core.ModeIDW)
	apply(t, idw, input.Intent{Type: input.IntentClearAll})
	if len(idw.Points()) != 0 {
		t.Errorf("Non-linear clear-all must empty the set, got %d", len(idw.Points()))
	}

	lin := newEditor(t, core.ModeLinear)
	apply(t, lin, input.Intent{Type: input.IntentClearAll})
	pts := lin.Points()
	if len(pts) != 2 || pts[0].Color != core.RGBRed || pts[1].Color != core.RGBBlue {
		t.Errorf("Linear clear-all must restore the red/blue pair, got %v", pts)
	}
}

func TestEditorSnapshotRoundTrip(t *testing.T) {
	e := newEditor(t, core.ModeLinear)
	apply(t, e, down(52, 50))
	apply(t, e, drag(60, 60))
	apply(t, e, up())
	apply(t, e, wheel(60, 60, -1))
	apply(t, e, input.Intent{Type: input.IntentSwitchMode, Mode: core.ModeRadial})

	snap := e.Snapshot()

	other := newEditor(t, core.ModeIDW)
	other.LoadSnapshot(snap)
	if !reflect.DeepEqual(other.Snapshot(), snap) {
		t.Errorf("Snapshot round trip drifted:\n%+v\nvs\n%+v", other.Snapshot(), snap)
	}
	if !reflect.DeepEqual(other.Points(), e.Points()) {
		t.Errorf("Live points drifted across round trip")
	}
	if other.Mode() != core.ModeRadial {
		t.Errorf("Mode lost: %v", other.Mode())
	}
}

func TestConsumeDirty(t *testing.T) {
	e := newEditor(t, core.ModeIDW)
	if !e.ConsumeDirty() {
		t.Error("A fresh editor needs an initial render")
	}
	if e.ConsumeDirty() {
		t.Error("Dirty must reset after consumption")
	}
	apply(t, e, down(50, 50))
	if !e.ConsumeDirty() {
		t.Error("Adding a point must mark the field dirty")
	}
	apply(t, e, up())
}

func TestRenderFieldMatchesConfig(t *testing.T) {
	e := newEditor(t, core.ModeIDW)
	buf, err := e.RenderField()
	if err != nil {
		t.Fatalf("RenderField failed: %v", err)
	}
	w, h := e.Size()
	if buf.Width() != w || buf.Height() != h {
		t.Errorf("Expected a %dx%d field, got %dx%d", w, h, buf.Width(), buf.Height())
	}

	// Deterministic against a direct synthesis of the same set
	want, err := field.Synthesize(e.Points(), e.FieldConfig())
	if err != nil {
		t.Fatalf("Synthesize failed: %v", err)
	}
	if buf.At(50, 50) != want.At(50, 50) {
		t.Errorf("RenderField diverged from direct synthesis at (50, 50)")
	}
}

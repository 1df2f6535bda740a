package input

import (
	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/gradient-lab/core"
)

// recolorPalette cycles through on each recolor intent
var recolorPalette = []string{
	"#ff0000", "#ff8000", "#ffff00", "#00ff00", "#00ffff",
	"#0000ff", "#8000ff", "#ff00ff", "#ffffff", "#000000",
}

// modeKeys maps the digit row onto interpolation modes
var modeKeys = map[rune]core.InterpMode{
	'1': core.ModeIDW,
	'2': core.ModeIDWSoft,
	'3': core.ModeRadial,
	'4': core.ModeVoronoi,
	'5': core.ModeLinear,
}

// Machine parses tcell events into semantic intents
// It tracks the previous button mask so tcell's merged mouse state can
// be split into press/drag/release
type Machine struct {
	buttons    tcell.ButtonMask
	paletteIdx int
}

// NewMachine creates an input machine in its idle state
func NewMachine() *Machine {
	return &Machine{}
}

// Process parses one event; returns nil when no intent results
func (m *Machine) Process(ev tcell.Event) *Intent {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		return &Intent{Type: IntentResize}
	case *tcell.EventKey:
		return m.processKey(ev)
	case *tcell.EventMouse:
		return m.processMouse(ev)
	}
	return nil
}

func (m *Machine) processKey(ev *tcell.EventKey) *Intent {
	switch ev.Key() {
	case tcell.KeyCtrlC, tcell.KeyEscape:
		return &Intent{Type: IntentQuit}
	case tcell.KeyRune:
	default:
		return nil
	}

	r := ev.Rune()
	if mode, ok := modeKeys[r]; ok {
		return &Intent{Type: IntentSwitchMode, Mode: mode}
	}
	switch r {
	case 'q':
		return &Intent{Type: IntentQuit}
	case 'c':
		color := recolorPalette[m.paletteIdx%len(recolorPalette)]
		m.paletteIdx++
		return &Intent{Type: IntentRecolor, Color: color}
	case 'y':
		return &Intent{Type: IntentCopy}
	case 'd', 'x':
		return &Intent{Type: IntentDelete}
	case 'C':
		return &Intent{Type: IntentClearAll}
	case 's':
		return &Intent{Type: IntentSave}
	}
	return nil
}

func (m *Machine) processMouse(ev *tcell.EventMouse) *Intent {
	x, y := ev.Position()
	btns := ev.Buttons()

	// Wheel bits are momentary; keep them out of the held-button state
	switch {
	case btns&tcell.WheelUp != 0:
		return &Intent{Type: IntentReweight, X: x, Y: y, Delta: 1}
	case btns&tcell.WheelDown != 0:
		return &Intent{Type: IntentReweight, X: x, Y: y, Delta: -1}
	}

	had := m.buttons&tcell.Button1 != 0
	has := btns&tcell.Button1 != 0
	m.buttons = btns

	switch {
	case !had && has:
		return &Intent{Type: IntentPointerDown, X: x, Y: y}
	case had && has:
		return &Intent{Type: IntentPointerDrag, X: x, Y: y}
	case had && !has:
		return &Intent{Type: IntentPointerUp, X: x, Y: y}
	}
	return nil
}

package input

import "github.com/lixenwraith/gradient-lab/core"

// IntentType discriminates semantic edit actions
type IntentType uint8

const (
	IntentNone IntentType = iota

	// System
	IntentQuit   // Ctrl+C, q
	IntentResize // Terminal resize event
	IntentSave   // s: write snapshot to disk

	// Pointer
	IntentPointerDown // Primary press: select existing point or add a new one
	IntentPointerDrag // Motion while the primary button is held
	IntentPointerUp   // Release: commit point
	IntentReweight    // Wheel over a point nudges its influence

	// Context actions on the selected point
	IntentRecolor  // c: cycle palette color
	IntentCopy     // y: duplicate with a small offset
	IntentDelete   // d, x: remove under the guard rails
	IntentClearAll // C: reset to the mode's canonical default set

	// Mode
	IntentSwitchMode // 1..5
)

// Intent represents a parsed semantic action
// Pure data struct with no engine dependencies
type Intent struct {
	Type  IntentType
	X, Y  int             // Pointer position in terminal cells
	Delta int             // Wheel direction for reweight, ±1
	Mode  core.InterpMode // Target for IntentSwitchMode
	Color string          // Hex color for IntentRecolor
}

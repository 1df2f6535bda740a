// gradient-lab is a terminal host for the gradient field editor.
// The pixel field is painted with half-block cells (two field rows per
// terminal row); native mouse and key events are adapted into semantic
// editor intents.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/gradient-lab/core"
	"github.com/lixenwraith/gradient-lab/editor"
	"github.com/lixenwraith/gradient-lab/field"
	"github.com/lixenwraith/gradient-lab/input"
	"github.com/lixenwraith/gradient-lab/parameter"
	"github.com/lixenwraith/gradient-lab/store"
)

const (
	statusRows    = 1
	statusLinger  = 2 * time.Second
	fieldRowScale = 2 // field rows per terminal row with '▀'
)

type App struct {
	screen  tcell.Screen
	editor  *editor.Editor
	machine *input.Machine
	sched   *editor.Scheduler
	sound   *soundPlayer

	fieldBuf     *field.Buffer
	snapshotPath string

	status      string
	statusUntil time.Time
}

func NewApp(snapshotPath string, mode core.InterpMode) (*App, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}
	screen.EnableMouse()

	cols, rows := screen.Size()
	ed, err := editor.New(cols, fieldHeight(rows), mode)
	if err != nil {
		screen.Fini()
		return nil, err
	}

	a := &App{
		screen:       screen,
		editor:       ed,
		machine:      input.NewMachine(),
		sched:        editor.NewScheduler(parameter.RenderDebounce),
		snapshotPath: snapshotPath,
	}

	if audioEnabled() {
		a.sound, err = newSoundPlayer()
		if err != nil {
			// Non-fatal, the editor runs silent
			log.Printf("Audio initialization failed: %v", err)
		}
	} else {
		a.sound = &soundPlayer{}
	}

	a.loadSnapshot()
	return a, nil
}

func fieldHeight(rows int) int {
	h := (rows - statusRows) * fieldRowScale
	if h < 1 {
		h = 1
	}
	return h
}

// loadSnapshot restores saved state when the snapshot file exists
// The raster is then re-fit to the terminal, keeping points and caches
func (a *App) loadSnapshot() {
	data, err := os.ReadFile(a.snapshotPath)
	if err != nil {
		return
	}
	snap, err := store.ParseSnapshot(data)
	if err != nil {
		log.Printf("Snapshot %s: %v", a.snapshotPath, err)
		return
	}
	a.editor.LoadSnapshot(snap)
	cols, rows := a.screen.Size()
	if err := a.editor.Configure(cols, fieldHeight(rows), a.editor.Mode()); err != nil {
		log.Printf("Snapshot raster re-fit: %v", err)
	}
}

func (a *App) saveSnapshot() {
	data, err := a.editor.Snapshot().Marshal()
	if err != nil {
		a.setStatus("save failed: " + err.Error())
		return
	}
	if err := os.WriteFile(a.snapshotPath, data, 0644); err != nil {
		a.setStatus("save failed: " + err.Error())
		return
	}
	a.setStatus("saved " + a.snapshotPath)
	a.sound.playCommit()
}

func (a *App) setStatus(msg string) {
	a.status = msg
	a.statusUntil = time.Now().Add(statusLinger)
}

func (a *App) handleResize() {
	a.screen.Sync()
	cols, rows := a.screen.Size()
	if err := a.editor.Configure(cols, fieldHeight(rows), a.editor.Mode()); err != nil {
		a.setStatus(err.Error())
	}
}

// handleEvent adapts one terminal event; returns false to quit
func (a *App) handleEvent(ev tcell.Event) bool {
	in := a.machine.Process(ev)
	if in == nil {
		return true
	}

	switch in.Type {
	case input.IntentQuit:
		return false
	case input.IntentResize:
		a.handleResize()
		return true
	case input.IntentSave:
		a.saveSnapshot()
		return true
	}

	// Terminal cells are one field column wide and two field rows tall
	in.Y *= fieldRowScale

	if err := a.editor.Apply(*in); err != nil {
		a.setStatus(err.Error())
		a.sound.playError()
	} else if in.Type == input.IntentPointerUp {
		a.sound.playCommit()
	}
	return true
}

func toTcell(c core.RGB) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

func (a *App) fieldColor(x, y int) core.RGB {
	if a.fieldBuf == nil {
		return core.RGBBlack
	}
	return a.fieldBuf.At(x, y)
}

func (a *App) draw() {
	cols, rows := a.screen.Size()
	fieldRows := rows - statusRows

	for ty := 0; ty < fieldRows; ty++ {
		for tx := 0; tx < cols; tx++ {
			top := a.fieldColor(tx, ty*fieldRowScale)
			bot := a.fieldColor(tx, ty*fieldRowScale+1)
			style := tcell.StyleDefault.Foreground(toTcell(top)).Background(toTcell(bot))
			a.screen.SetContent(tx, ty, '▀', nil, style)
		}
	}

	a.drawMarkers()
	a.drawStatus(cols, rows)
	a.screen.Show()
}

// drawMarkers overlays the control points, outlined in their
// complementary color for contrast against the field
func (a *App) drawMarkers() {
	w, h := a.editor.Size()
	selected := a.editor.Selected()
	for i, p := range a.editor.Points() {
		cx := int(p.X * float64(w))
		if cx >= w {
			cx = w - 1
		}
		py := int(p.Y * float64(h))
		if py >= h {
			py = h - 1
		}
		cy := py / fieldRowScale
		marker := '●'
		if i == selected {
			marker = '◆'
		}
		style := tcell.StyleDefault.
			Foreground(toTcell(p.Color.Complementary())).
			Background(toTcell(p.Color))
		a.screen.SetContent(cx, cy, marker, nil, style)
	}
}

func (a *App) drawStatus(cols, rows int) {
	msg := a.status
	if msg == "" || time.Now().After(a.statusUntil) {
		influence := "-"
		if sel := a.editor.Selected(); sel >= 0 {
			if p, err := a.editor.At(sel); err == nil {
				influence = strconv.FormatFloat(p.Influence, 'f', 1, 64)
			}
		}
		msg = fmt.Sprintf(" %s | points %d | influence %s | 1-5 mode  c color  y copy  d del  C clear  s save  q quit",
			a.editor.Mode(), len(a.editor.Points()), influence)
	} else {
		msg = " " + msg
	}

	style := tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorDarkSlateGray)
	y := rows - 1
	for x := 0; x < cols; x++ {
		r := ' '
		if x < len(msg) {
			r = rune(msg[x])
		}
		a.screen.SetContent(x, y, r, nil, style)
	}
}

func (a *App) run() {
	eventChan := make(chan tcell.Event, 100)
	go func() {
		for {
			eventChan <- a.screen.PollEvent()
		}
	}()

	ticker := time.NewTicker(250 * time.Millisecond) // status expiry repaint
	defer ticker.Stop()
	defer a.sched.Stop()

	// First paint without waiting for an edit
	if a.editor.ConsumeDirty() {
		a.sched.Invalidate(a.editor.Points(), a.editor.FieldConfig())
	}
	a.draw()

	for {
		select {
		case ev := <-eventChan:
			if !a.handleEvent(ev) {
				return
			}
			if a.editor.ConsumeDirty() {
				a.sched.Invalidate(a.editor.Points(), a.editor.FieldConfig())
			}
			a.draw()

		case buf := <-a.sched.Fields():
			a.fieldBuf = buf
			a.draw()

		case <-ticker.C:
			a.draw()
		}
	}
}

// audioEnabled defaults on; GRADIENT_LAB_AUDIO=false disables cues
func audioEnabled() bool {
	if v := os.Getenv("GRADIENT_LAB_AUDIO"); v != "" {
		if enabled, err := strconv.ParseBool(v); err == nil {
			return enabled
		}
	}
	return true
}

func main() {
	snapshotPath := flag.String("snapshot", "gradient-lab.json", "snapshot file to load and save")
	modeName := flag.String("mode", "idw", "initial interpolation mode (idw, idw(soft), radial, voronoi, linear)")
	flag.Parse()

	log.SetOutput(os.Stderr)

	app, err := NewApp(*snapshotPath, core.ParseMode(*modeName))
	if err != nil {
		log.Fatalf("init: %v", err)
	}
	defer app.screen.Fini()

	app.run()
}

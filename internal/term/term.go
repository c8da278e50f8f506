// Package term runs the sand simulation in a terminal, drawing two grid rows
// per character cell with upper half blocks.
package term

import (
	"context"
	"fmt"
	"image/color"
	"time"

	"falling-sand/internal/core"
	"falling-sand/internal/render"
	"falling-sand/internal/sims/sand"

	"github.com/gdamore/tcell/v2"
)

const (
	halfBlock   = '▀'
	framePeriod = 16 * time.Millisecond
)

var (
	background  = color.RGBA{A: 255}
	statusStyle = tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorBlack)
)

// cellWriter is the part of tcell.Screen the renderer needs.
type cellWriter interface {
	SetContent(x, y int, primary rune, combining []rune, style tcell.Style)
}

// App owns the terminal session state for one simulation.
type App struct {
	sim    *sand.Sim
	step   *core.FixedStep
	pixels []byte
	seed   int64

	paused   bool
	tickOnce bool
	stroking bool
	last     sand.Point
}

// New wraps sim for terminal play.
func New(sim *sand.Sim, tps int, seed int64) *App {
	size := sim.Size()
	return &App{
		sim:    sim,
		step:   core.NewFixedStep(tps),
		pixels: make([]byte, 4*size.W*size.H),
		seed:   seed,
	}
}

// Run drives the screen until the user quits or ctx ends. The caller owns
// screen initialization and Fini.
func (a *App) Run(ctx context.Context, screen tcell.Screen) error {
	screen.EnableMouse()
	defer screen.DisableMouse()

	ticker := time.NewTicker(framePeriod)
	defer ticker.Stop()

	done := make(chan struct{})
	defer close(done)
	events := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-done:
				return
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev := <-events:
			if !a.HandleEvent(ev) {
				return nil
			}
			if _, ok := ev.(*tcell.EventResize); ok {
				screen.Sync()
			}
		case <-ticker.C:
			a.Tick()
			screen.Clear()
			a.Draw(screen)
			screen.Show()
		}
	}
}

// Tick advances the simulation by the frames the fixed step owes. A pending
// single step runs even while paused.
func (a *App) Tick() {
	n := a.step.Due()
	if a.paused {
		n = 0
	}
	if a.tickOnce {
		n = max(n, 1)
		a.tickOnce = false
	}
	for ; n > 0; n-- {
		a.sim.Step()
	}
}

// HandleEvent applies one input event. It returns false when the user quits.
func (a *App) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return a.handleKey(ev)
	case *tcell.EventMouse:
		a.handleMouse(ev)
	}
	return true
}

func (a *App) handleKey(ev *tcell.EventKey) bool {
	m := a.sim.Matrix()
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return false
	case tcell.KeyUp:
		m.Brush.Grow()
	case tcell.KeyDown:
		m.Brush.Shrink()
	case tcell.KeyLeft:
		m.Brush.PrevMaterial()
	case tcell.KeyRight:
		m.Brush.NextMaterial()
	case tcell.KeyF5:
		m.DebugChunks = !m.DebugChunks
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q':
			return false
		case ' ':
			a.paused = !a.paused
		case 'n':
			a.tickOnce = true
		case 'f':
			m.Brush.ToggleFire()
		case 'c':
			m.Clear()
		case 'r':
			a.sim.Reset(a.seed)
		case 's':
			a.seed = time.Now().UnixNano()
			a.sim.Reset(a.seed)
		case '[':
			m.Brush.PrevMaterial()
		case ']':
			m.Brush.NextMaterial()
		}
	}
	return true
}

// handleMouse paints with the primary button and erases with the secondary,
// joining consecutive drag positions into a line.
func (a *App) handleMouse(ev *tcell.EventMouse) {
	m := a.sim.Matrix()
	buttons := ev.Buttons()
	switch {
	case buttons&tcell.WheelUp != 0:
		m.Brush.NextMaterial()
		return
	case buttons&tcell.WheelDown != 0:
		m.Brush.PrevMaterial()
		return
	}

	paint := buttons&tcell.Button1 != 0
	erase := buttons&tcell.Button2 != 0
	x, y := ev.Position()
	cur := sand.Pt(x, y*2)
	if (!paint && !erase) || !m.InBounds(cur) {
		a.stroking = false
		return
	}
	from := cur
	if a.stroking {
		from = a.last
	}
	if erase {
		a.sim.EraseLine(from, cur)
	} else {
		a.sim.PaintLine(from, cur)
	}
	a.last = cur
	a.stroking = true
}

// Draw renders the grid and a status line below it.
func (a *App) Draw(screen cellWriter) {
	size := a.sim.Size()
	a.sim.Draw(a.pixels)
	render.HalfBlocks(a.pixels, size.W, size.H, background, func(col, row int, top, bottom color.RGBA) {
		style := tcell.StyleDefault.Foreground(rgb(top)).Background(rgb(bottom))
		screen.SetContent(col, row, halfBlock, nil, style)
	})
	drawText(screen, 0, (size.H+1)/2, a.Status())
}

// Status summarizes the brush and run state.
func (a *App) Status() string {
	m := a.sim.Matrix()
	mode := "paint"
	if m.Brush.PlaceFire {
		mode = "fire"
	}
	state := "running"
	if a.paused {
		state = "paused"
	}
	return fmt.Sprintf("%s  size %d  %s  %s  frame %d  cells %d",
		m.Brush.Material(), m.Brush.Size, mode, state, m.Frame(), m.Grid().Len())
}

// Paused reports whether stepping is suspended.
func (a *App) Paused() bool { return a.paused }

func drawText(screen cellWriter, x, y int, text string) {
	for _, r := range text {
		screen.SetContent(x, y, r, nil, statusStyle)
		x++
	}
}

func rgb(c color.RGBA) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

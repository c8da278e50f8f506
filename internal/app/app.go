//go:build ebiten

package app

import (
	"time"

	"falling-sand/internal/core"
	"falling-sand/internal/render"
	"falling-sand/internal/sims/sand"
	"falling-sand/internal/ui"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// hudWidth is the width of the parameter panel in screen pixels.
const hudWidth = 280

// Game adapts a core simulation to the ebiten.Game interface.
type Game struct {
	sim     core.Sim
	sand    *sand.Sim
	painter *render.GridPainter
	overlay *ui.Overlay
	hud     *ui.HUD

	scale    int
	paused   bool
	tickOnce bool
	seed     int64

	stroking bool
	last     sand.Point
}

// New constructs a Game for the provided simulation.
func New(sim core.Sim, scale int, seed int64) *Game {
	if scale <= 0 {
		scale = 1
	}
	gp := render.NewGridPainter(sim.Size().W, sim.Size().H)
	g := &Game{
		sim:     sim,
		painter: gp,
		overlay: ui.NewOverlay(sim, scale),
		hud:     ui.NewHUD(sim, hudWidth),
		scale:   scale,
		seed:    seed,
	}
	g.sand, _ = sim.(*sand.Sim)
	return g
}

// Reset reinitializes the simulation state with the provided seed.
func (g *Game) Reset(seed int64) {
	g.seed = seed
	g.sim.Reset(seed)
	g.tickOnce = false
}

// Update handles per-frame logic and advances the simulation.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.paused = !g.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
		g.paused = false
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyN) {
		g.tickOnce = true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.Reset(g.seed)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		g.Reset(time.Now().UnixNano())
	}

	if g.overlay != nil {
		g.overlay.Update()
	}
	consumed := false
	if g.hud != nil {
		consumed = g.hud.Update(g.viewWidth())
	}
	if g.sand != nil {
		g.handleBrush(consumed)
	}

	if (!g.paused) || g.tickOnce {
		g.sim.Step()
		g.tickOnce = false
	}
	return nil
}

// handleBrush applies the painting controls: left drag paints, right drag
// erases, the wheel or brackets cycle materials and the arrows resize.
func (g *Game) handleBrush(consumed bool) {
	m := g.sand.Matrix()
	brush := &m.Brush

	_, wheel := ebiten.Wheel()
	switch {
	case wheel > 0 || inpututil.IsKeyJustPressed(ebiten.KeyBracketRight):
		brush.NextMaterial()
	case wheel < 0 || inpututil.IsKeyJustPressed(ebiten.KeyBracketLeft):
		brush.PrevMaterial()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowUp) {
		brush.Grow()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowDown) {
		brush.Shrink()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF) {
		brush.ToggleFire()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF5) {
		m.DebugChunks = !m.DebugChunks
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyC) {
		m.Clear()
	}

	left := ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	right := ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight)
	mx, my := ebiten.CursorPosition()
	if consumed || (!left && !right) || mx >= g.viewWidth() {
		g.stroking = false
		return
	}
	cur := sand.Pt(mx/g.scale, my/g.scale)
	from := cur
	if g.stroking {
		from = g.last
	}
	if right {
		g.sand.EraseLine(from, cur)
	} else {
		g.sand.PaintLine(from, cur)
	}
	g.last = cur
	g.stroking = true
}

// Draw renders the current simulation state.
func (g *Game) Draw(screen *ebiten.Image) {
	g.painter.Blit(screen, g.sim, g.scale)
	if g.overlay != nil {
		g.overlay.Draw(screen)
	}
	if g.hud != nil {
		g.hud.Draw(screen, g.viewWidth(), g.scale)
	}
}

// Layout returns the logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	s := g.sim.Size()
	w := g.viewWidth()
	if g.hud != nil {
		w += g.hud.Width()
	}
	return w, s.H * g.scale
}

// ScreenSize reports the window size the game wants.
func (g *Game) ScreenSize() (int, int) { return g.Layout(0, 0) }

func (g *Game) viewWidth() int { return g.sim.Size().W * g.scale }

package term

import (
	"strings"
	"testing"

	"falling-sand/internal/render"
	"falling-sand/internal/sims/sand"

	"github.com/gdamore/tcell/v2"
)

type recordedCell struct {
	r     rune
	style tcell.Style
}

type fakeScreen struct {
	cells map[[2]int]recordedCell
}

func newFakeScreen() *fakeScreen {
	return &fakeScreen{cells: map[[2]int]recordedCell{}}
}

func (f *fakeScreen) SetContent(x, y int, primary rune, _ []rune, style tcell.Style) {
	f.cells[[2]int{x, y}] = recordedCell{r: primary, style: style}
}

func (f *fakeScreen) row(y int) string {
	var b strings.Builder
	for x := 0; ; x++ {
		c, ok := f.cells[[2]int{x, y}]
		if !ok {
			return b.String()
		}
		b.WriteRune(c.r)
	}
}

func newTestApp(t *testing.T, w, h int, scene string) *App {
	t.Helper()
	cfg := sand.DefaultConfig()
	cfg.Width = w
	cfg.Height = h
	cfg.Scene = scene
	cfg.BrushSize = 1
	return New(sand.NewSim(cfg, nil), 60, cfg.Seed)
}

func TestDrawHalfBlocks(t *testing.T) {
	app := newTestApp(t, 4, 3, sand.SceneFloor)
	screen := newFakeScreen()
	app.Draw(screen)

	for y := 0; y < 2; y++ {
		for x := 0; x < 4; x++ {
			if c := screen.cells[[2]int{x, y}]; c.r != halfBlock {
				t.Fatalf("cell (%d,%d) = %q, want half block", x, y, c.r)
			}
		}
	}

	buf := make([]byte, 4*4*3)
	app.sim.Draw(buf)
	fg, bg, _ := screen.cells[[2]int{2, 1}].style.Decompose()
	if fg != rgb(render.PixelAt(buf, 4, 2, 2)) {
		t.Fatalf("floor row foreground = %v", fg)
	}
	if bg != rgb(background) {
		t.Fatalf("odd last row should pair with the background, got %v", bg)
	}

	status := screen.row(2)
	if !strings.Contains(status, "Sand") || !strings.Contains(status, "running") {
		t.Fatalf("status line = %q", status)
	}
}

func TestKeys(t *testing.T) {
	app := newTestApp(t, 8, 8, sand.SceneEmpty)
	m := app.sim.Matrix()

	app.HandleEvent(tcell.NewEventKey(tcell.KeyRune, ' ', tcell.ModNone))
	if !app.Paused() {
		t.Fatal("space should pause")
	}
	app.HandleEvent(tcell.NewEventKey(tcell.KeyUp, 0, tcell.ModNone))
	if m.Brush.Size != 2 {
		t.Fatalf("brush size = %d, want 2", m.Brush.Size)
	}
	before := m.Brush.Material()
	app.HandleEvent(tcell.NewEventKey(tcell.KeyRight, 0, tcell.ModNone))
	if m.Brush.Material() == before {
		t.Fatal("right arrow should select the next material")
	}
	app.HandleEvent(tcell.NewEventKey(tcell.KeyRune, 'f', tcell.ModNone))
	if !m.Brush.PlaceFire {
		t.Fatal("f should toggle fire mode")
	}

	if app.HandleEvent(tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone)) {
		t.Fatal("q should quit")
	}
	if app.HandleEvent(tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone)) {
		t.Fatal("escape should quit")
	}
}

func TestTickRespectsPause(t *testing.T) {
	app := newTestApp(t, 8, 8, sand.SceneEmpty)
	m := app.sim.Matrix()

	app.Tick()
	if m.Frame() != 1 {
		t.Fatalf("first tick should step, frame = %d", m.Frame())
	}

	app.HandleEvent(tcell.NewEventKey(tcell.KeyRune, ' ', tcell.ModNone))
	app.Tick()
	if m.Frame() != 1 {
		t.Fatal("paused app stepped")
	}
	app.HandleEvent(tcell.NewEventKey(tcell.KeyRune, 'n', tcell.ModNone))
	app.Tick()
	if m.Frame() != 2 {
		t.Fatalf("single step not taken, frame = %d", m.Frame())
	}
}

func TestMouseStroke(t *testing.T) {
	app := newTestApp(t, 10, 10, sand.SceneEmpty)
	m := app.sim.Matrix()

	app.HandleEvent(tcell.NewEventMouse(1, 2, tcell.Button1, tcell.ModNone))
	if c, ok := m.CellAt(sand.Pt(1, 4)); !ok || c.Material != sand.Sand {
		t.Fatal("press should paint at the upper half of the cell")
	}
	app.HandleEvent(tcell.NewEventMouse(5, 2, tcell.Button1, tcell.ModNone))
	for x := 1; x <= 5; x++ {
		if _, ok := m.CellAt(sand.Pt(x, 4)); !ok {
			t.Fatalf("drag left a gap at x=%d", x)
		}
	}

	app.HandleEvent(tcell.NewEventMouse(5, 2, tcell.ButtonNone, tcell.ModNone))
	app.HandleEvent(tcell.NewEventMouse(3, 2, tcell.Button2, tcell.ModNone))
	if _, ok := m.CellAt(sand.Pt(3, 4)); ok {
		t.Fatal("secondary button should erase")
	}
	if m.Grid().Len() != 4 {
		t.Fatalf("erase should remove one cell, %d left", m.Grid().Len())
	}

	m.Brush.PlaceFire = true
	app.HandleEvent(tcell.NewEventMouse(3, 2, tcell.ButtonNone, tcell.ModNone))
	app.HandleEvent(tcell.NewEventMouse(4, 2, tcell.Button2, tcell.ModNone))
	if _, ok := m.CellAt(sand.Pt(4, 4)); ok {
		t.Fatal("secondary button should erase in fire mode too")
	}
	if m.Grid().Len() != 3 {
		t.Fatalf("fire mode erase left %d cells, want 3", m.Grid().Len())
	}
	m.Brush.PlaceFire = false

	app.HandleEvent(tcell.NewEventMouse(0, 0, tcell.WheelUp, tcell.ModNone))
	if m.Brush.Material() == sand.Sand {
		t.Fatal("wheel should cycle the material")
	}
}

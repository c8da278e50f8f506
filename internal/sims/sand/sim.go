package sand

import (
	"image"

	"falling-sand/internal/core"
)

// Scene presets applied by Reset.
const (
	SceneEmpty = "empty"
	SceneFloor = "floor"
	SceneDemo  = "demo"
)

func knownScene(name string) bool {
	switch name {
	case SceneEmpty, SceneFloor, SceneDemo:
		return true
	}
	return false
}

// Sim adapts a Matrix to the core.Sim contract. It owns the Env that the
// front ends share with brush operations.
type Sim struct {
	cfg    Config
	matrix *Matrix
	env    *Env
}

// NewSim builds a simulation for cfg and paints the configured scene. A nil
// colors falls back to the flat material colors.
func NewSim(cfg Config, colors ColorSource) *Sim {
	s := &Sim{
		cfg:    cfg,
		matrix: NewWithConfig(cfg),
		env:    NewEnv(cfg.Seed),
	}
	if colors != nil {
		s.env.Colors = colors
	}
	s.Reset(cfg.Seed)
	return s
}

// Name returns the registry name.
func (s *Sim) Name() string { return "sand" }

// Size returns the grid dimensions.
func (s *Sim) Size() core.Size { return core.Size{W: s.matrix.Width(), H: s.matrix.Height()} }

// Reset clears the grid, reseeds the random source and rebuilds the scene. A
// zero seed reuses the configured one.
func (s *Sim) Reset(seed int64) {
	if seed == 0 {
		seed = s.cfg.Seed
	}
	s.env.RNG.Reseed(seed)
	s.matrix.Reset()
	s.buildScene(s.cfg.Scene)
}

// Step advances one frame.
func (s *Sim) Step() { s.matrix.Update(s.env) }

// Draw renders the grid into buf.
func (s *Sim) Draw(buf []byte) { s.matrix.Draw(buf) }

// Matrix exposes the engine.
func (s *Sim) Matrix() *Matrix { return s.matrix }

// Env exposes the random source and color lookup used for painting.
func (s *Sim) Env() *Env { return s.env }

// SetColors swaps the color source used for new cells.
func (s *Sim) SetColors(colors ColorSource) {
	if colors == nil {
		colors = FlatColors
	}
	s.env.Colors = colors
}

// Paint stamps the brush at p with the selected material.
func (s *Sim) Paint(p Point) {
	s.matrix.DrawBrush(s.env, p, s.matrix.Brush.Material())
}

// PaintLine stamps the brush along a stroke with the selected material.
func (s *Sim) PaintLine(from, to Point) {
	s.matrix.SetLine(s.env, from.X, from.Y, to.X, to.Y, s.matrix.Brush.Material())
}

// EraseLine clears cells under the brush along a stroke, also in fire mode.
func (s *Sim) EraseLine(from, to Point) {
	s.matrix.EraseLine(s.env, from.X, from.Y, to.X, to.Y)
}

// Brush returns the brush size and whether it ignites instead of painting.
func (s *Sim) Brush() (int, bool) {
	return s.matrix.Brush.Size, s.matrix.Brush.PlaceFire
}

// ChunkActivity reports every chunk's bounds, clipped to the grid, and whether
// it stepped during the last frame.
func (s *Sim) ChunkActivity(visit func(r image.Rectangle, active bool)) {
	grid := image.Rect(0, 0, s.matrix.Width(), s.matrix.Height())
	for _, c := range s.matrix.chunks.All() {
		r := image.Rect(c.Origin.X, c.Origin.Y, c.Origin.X+c.Size, c.Origin.Y+c.Size).Intersect(grid)
		visit(r, c.ShouldStep)
	}
}

// FireMask writes 1 for every burning cell and 0 elsewhere into mask, which
// must hold width*height values.
func (s *Sim) FireMask(mask []float32) {
	w := s.matrix.Width()
	if len(mask) < w*s.matrix.Height() {
		return
	}
	clear(mask)
	for _, c := range s.matrix.grid.Cells() {
		if c.OnFire {
			mask[c.Pos.Y*w+c.Pos.X] = 1
		}
	}
}

func (s *Sim) buildScene(name string) {
	m := s.matrix
	w, h := m.Width(), m.Height()
	switch name {
	case SceneFloor:
		s.fillRect(0, h-1, w, 1, Rock)
	case SceneDemo:
		floor := max(1, h/32)
		s.fillRect(0, h-floor, w, floor, Rock)

		// Walls of a basin on the right hold a water pool.
		basin := w / 3
		wallH := max(2, h/6)
		s.fillRect(w-basin, h-floor-wallH, 1, wallH, Rock)
		s.fillRect(w-basin+1, h-floor-wallH/2, basin-1, wallH/2, Water)

		// A wood beam with an oil slick on top.
		beamY := h / 2
		s.fillRect(w/8, beamY, w/4, 1, Wood)
		s.fillRect(w/8, beamY-1, w/4, 1, Oil)

		// Sand hangs over the middle and falls on the first frames.
		s.fillRect(w/2-w/16, h/6, w/8, h/8, Sand)
	}
}

func (s *Sim) fillRect(x, y, w, h int, material Material) {
	for py := y; py < y+h; py++ {
		for px := x; px < x+w; px++ {
			s.matrix.SetCell(s.env, Point{X: px, Y: py}, material)
		}
	}
}

func init() {
	core.Register("sand", func(cfg map[string]string) core.Sim {
		return NewSim(FromMap(cfg), nil)
	})
}

package sand

import (
	"falling-sand/pkg/core"

	"golang.org/x/sync/errgroup"
)

// Env carries the caller-owned collaborators used while mutating the grid.
type Env struct {
	RNG    *core.RNG
	Colors ColorSource
}

// NewEnv returns an Env seeded with seed and painting flat material colors.
func NewEnv(seed int64) *Env {
	return &Env{RNG: core.NewRNG(seed), Colors: FlatColors}
}

func (e *Env) colors() ColorSource {
	if e == nil || e.Colors == nil {
		return FlatColors
	}
	return e.Colors
}

// Stats summarises the state after the latest frame.
type Stats struct {
	Frame        uint64
	Cells        int
	Burning      int
	ActiveChunks int
	Chunks       int
}

// Matrix owns the grid, its chunk schedule and the brush, and advances the
// simulation one frame per Update.
type Matrix struct {
	cfg    Config
	grid   *Grid
	chunks *Chunks

	Brush       Brush
	DebugChunks bool

	sweepLeft bool
	frame     uint64
	fallback  *Env
}

// New allocates an empty w×h matrix with the default tuning.
func New(w, h int) *Matrix {
	cfg := DefaultConfig()
	cfg.Width = w
	cfg.Height = h
	return NewWithConfig(cfg)
}

// NewWithConfig allocates an empty matrix. It panics when the dimensions are
// not positive or too large to allocate.
func NewWithConfig(cfg Config) *Matrix {
	grid := NewGrid(cfg.Width, cfg.Height)
	return &Matrix{
		cfg:    cfg,
		grid:   grid,
		chunks: NewChunks(cfg.Width, cfg.Height, cfg.ChunkSize, cfg.ClusterMargin, cfg.MaxIdleFrames),
		Brush:  NewBrush(cfg.BrushSize),
	}
}

// Width returns the number of columns.
func (m *Matrix) Width() int { return m.grid.Width() }

// Height returns the number of rows.
func (m *Matrix) Height() int { return m.grid.Height() }

// Config returns the active configuration.
func (m *Matrix) Config() Config { return m.cfg }

// Params exposes the tuning constants for in-place adjustment between frames.
func (m *Matrix) Params() *Params { return &m.cfg.Params }

// Grid exposes the index. External readers must only use it between frames.
func (m *Matrix) Grid() *Grid { return m.grid }

// Chunks exposes the activity tracker.
func (m *Matrix) Chunks() *Chunks { return m.chunks }

// Frame returns the number of completed updates.
func (m *Matrix) Frame() uint64 { return m.frame }

// InBounds reports whether p lies inside the grid.
func (m *Matrix) InBounds(p Point) bool { return m.grid.InBounds(p) }

// CellAt returns a copy of the cell at p.
func (m *Matrix) CellAt(p Point) (Cell, bool) {
	c := m.grid.At(p)
	if c == nil {
		return Cell{}, false
	}
	return *c, true
}

// SetClusterMargin changes how close to a chunk edge a mutation must be to
// wake the neighbouring chunk.
func (m *Matrix) SetClusterMargin(margin int) {
	m.cfg.ClusterMargin = margin
	m.chunks.SetMargin(margin)
}

// SetMaxIdleFrames changes the forced re-step interval of sleeping chunks.
func (m *Matrix) SetMaxIdleFrames(frames int) {
	m.cfg.MaxIdleFrames = frames
	m.chunks.SetMaxIdle(frames)
}

// Stats reports cell and chunk counts.
func (m *Matrix) Stats() Stats {
	cols, rows := m.chunks.Dims()
	st := Stats{
		Frame:        m.frame,
		Cells:        m.grid.Len(),
		ActiveChunks: m.chunks.ActiveCount(),
		Chunks:       cols * rows,
	}
	for i := range m.grid.cells {
		if m.grid.cells[i].OnFire {
			st.Burning++
		}
	}
	return st
}

// Clear removes every cell and wakes all chunks.
func (m *Matrix) Clear() {
	m.grid.Reset()
	m.chunks.Wake()
}

// Reset empties the grid and restarts the frame schedule from scratch.
func (m *Matrix) Reset() {
	m.grid.Reset()
	m.chunks = NewChunks(m.cfg.Width, m.cfg.Height, m.cfg.ChunkSize, m.cfg.ClusterMargin, m.cfg.MaxIdleFrames)
	m.sweepLeft = false
	m.frame = 0
}

// SetCell creates a cell of material at p, replacing any occupant. Setting
// Empty destroys the occupant. Positions outside the grid are ignored.
func (m *Matrix) SetCell(env *Env, p Point, material Material) {
	if !m.grid.InBounds(p) || !material.Valid() {
		return
	}
	if material == Empty {
		m.destroy(p)
		return
	}
	m.grid.Insert(NewCell(p, material, env.colors()))
	m.chunks.MarkClusterActive(p)
}

// Ignite sets the cell at p on fire when its material can burn.
func (m *Matrix) Ignite(p Point) bool {
	c := m.grid.At(p)
	if c == nil || !c.Material.Flammable() || c.OnFire {
		return false
	}
	c.OnFire = true
	m.chunks.MarkClusterActive(p)
	return true
}

func (m *Matrix) destroy(p Point) {
	if m.grid.Remove(p) {
		m.chunks.MarkClusterActive(p)
	}
}

func (m *Matrix) relocate(from, to Point) bool {
	if !m.grid.Relocate(from, to, true) {
		return false
	}
	m.chunks.MarkClusterActive(from)
	m.chunks.MarkClusterActive(to)
	return true
}

// Update advances the simulation by one frame. Rows are swept bottom to top
// so falling cells land on already-resolved rows; the horizontal direction
// alternates every frame.
func (m *Matrix) Update(env *Env) {
	if env == nil {
		if m.fallback == nil {
			m.fallback = NewEnv(m.cfg.Seed)
		}
		env = m.fallback
	}
	m.beginFrame()

	w, h := m.grid.Width(), m.grid.Height()
	for y := h - 1; y >= 0; y-- {
		if m.sweepLeft {
			for x := w - 1; x >= 0; x-- {
				m.stepAt(Point{X: x, Y: y}, env)
			}
		} else {
			for x := 0; x < w; x++ {
				m.stepAt(Point{X: x, Y: y}, env)
			}
		}
	}
	m.sweepLeft = !m.sweepLeft
	m.frame++
}

// beginFrame promotes chunk requests and resets per-cell frame state. Both
// passes touch only independent records, so large grids fan them out.
func (m *Matrix) beginFrame() {
	cells := m.grid.cells
	workers := m.cfg.Workers
	if workers <= 1 || len(cells) < m.cfg.ParallelThreshold {
		m.chunks.StartStep()
		for i := range cells {
			cells[i].beginFrame()
		}
		return
	}

	var g errgroup.Group
	g.SetLimit(workers)
	g.Go(func() error {
		m.chunks.StartStep()
		return nil
	})
	shard := (len(cells) + workers - 1) / workers
	for lo := 0; lo < len(cells); lo += shard {
		part := cells[lo:min(lo+shard, len(cells))]
		g.Go(func() error {
			for i := range part {
				part[i].beginFrame()
			}
			return nil
		})
	}
	_ = g.Wait()
}

func (m *Matrix) stepAt(p Point, env *Env) {
	if !m.chunks.Active(p) {
		return
	}
	h, occ := m.grid.Lookup(p)
	if occ != Occupied || m.grid.cells[h].Processed {
		return
	}
	if m.updateCell(h, env) {
		m.grid.cells[h].Processed = true
	}
}

// updateCell runs the per-cell rules. It reports false when the cell was
// destroyed, in which case h no longer refers to it.
func (m *Matrix) updateCell(h int, env *Env) bool {
	c := &m.grid.cells[h]
	if c.applyPhysics(&m.cfg.Params, env.RNG) {
		m.chunks.MarkClusterActive(c.Pos)
	}
	if c.HP == 0 {
		m.destroy(c.Pos)
		return false
	}

	burning := c.WasOnFire && c.OnFire
	c.WasOnFire = c.OnFire
	if burning {
		m.fireStep(h, env)
	}

	switch m.grid.cells[h].Material.Kind() {
	case KindMovableSolid:
		m.movableSolidStep(h, env)
	case KindLiquid:
		m.liquidStep(h, env)
	case KindGas:
		m.gasStep(h, env)
	}
	return true
}

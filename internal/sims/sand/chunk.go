package sand

// Chunk is a square block of the grid scheduled as a unit.
type Chunk struct {
	Origin Point
	Size   int

	ShouldStep          bool
	ShouldStepNextFrame bool

	idleFrames int
}

// startStep promotes the request flag raised during the previous frame. A
// chunk left idle for maxIdle frames is forced awake; zero disables that.
func (c *Chunk) startStep(maxIdle int) {
	c.ShouldStep = c.ShouldStepNextFrame
	c.ShouldStepNextFrame = false
	if c.ShouldStep {
		c.idleFrames = 0
		return
	}
	if maxIdle <= 0 {
		return
	}
	c.idleFrames++
	if c.idleFrames >= maxIdle {
		c.ShouldStep = true
		c.idleFrames = 0
	}
}

// Contains reports whether p lies inside the chunk.
func (c *Chunk) Contains(p Point) bool {
	return p.X >= c.Origin.X && p.X < c.Origin.X+c.Size &&
		p.Y >= c.Origin.Y && p.Y < c.Origin.Y+c.Size
}

// Chunks partitions a grid into fixed-size chunks. Edge chunks may extend
// past the grid when the size does not divide the dimensions.
type Chunks struct {
	size       int
	cols, rows int
	margin     int
	maxIdle    int
	chunks     []Chunk
}

// NewChunks covers a w×h grid with size×size chunks. Every chunk starts
// requesting a step so the first frame visits the whole grid. A cluster mark
// reaches into a neighbouring chunk only when the position is within margin
// cells of the shared edge; margin <= 0 always marks the full 3×3 block.
func NewChunks(w, h, size, margin, maxIdle int) *Chunks {
	if size <= 0 {
		size = 16
	}
	cols := (w + size - 1) / size
	rows := (h + size - 1) / size
	cs := &Chunks{
		size:    size,
		cols:    cols,
		rows:    rows,
		margin:  margin,
		maxIdle: maxIdle,
		chunks:  make([]Chunk, cols*rows),
	}
	for cy := 0; cy < rows; cy++ {
		for cx := 0; cx < cols; cx++ {
			cs.chunks[cy*cols+cx] = Chunk{
				Origin:              Point{X: cx * size, Y: cy * size},
				Size:                size,
				ShouldStepNextFrame: true,
			}
		}
	}
	return cs
}

// Size returns the chunk edge length.
func (cs *Chunks) Size() int { return cs.size }

// Dims returns the number of chunk columns and rows.
func (cs *Chunks) Dims() (int, int) { return cs.cols, cs.rows }

// All exposes the chunk array in row-major order.
func (cs *Chunks) All() []Chunk { return cs.chunks }

func (cs *Chunks) coords(p Point) (int, int, bool) {
	if p.X < 0 || p.Y < 0 {
		return 0, 0, false
	}
	cx, cy := p.X/cs.size, p.Y/cs.size
	if cx >= cs.cols || cy >= cs.rows {
		return 0, 0, false
	}
	return cx, cy, true
}

// At returns the chunk containing p, or nil outside the partition.
func (cs *Chunks) At(p Point) *Chunk {
	cx, cy, ok := cs.coords(p)
	if !ok {
		return nil
	}
	return &cs.chunks[cy*cs.cols+cx]
}

// Active reports whether the chunk containing p steps this frame.
func (cs *Chunks) Active(p Point) bool {
	c := cs.At(p)
	return c != nil && c.ShouldStep
}

// StartStep begins a frame on every chunk.
func (cs *Chunks) StartStep() {
	for i := range cs.chunks {
		cs.chunks[i].startStep(cs.maxIdle)
	}
}

// SetMargin changes the cluster margin used by MarkClusterActive.
func (cs *Chunks) SetMargin(margin int) { cs.margin = margin }

// SetMaxIdle changes how many idle frames force a chunk awake.
func (cs *Chunks) SetMaxIdle(frames int) { cs.maxIdle = frames }

// MarkActive requests a step next frame for the chunk containing p.
func (cs *Chunks) MarkActive(p Point) {
	if c := cs.At(p); c != nil {
		c.ShouldStepNextFrame = true
	}
}

// MarkClusterActive marks the chunk containing p and the neighbouring chunks
// that p is close enough to influence.
func (cs *Chunks) MarkClusterActive(p Point) {
	cx, cy, ok := cs.coords(p)
	if !ok {
		return
	}
	lx, ly := p.X-cx*cs.size, p.Y-cy*cs.size
	for dy := -1; dy <= 1; dy++ {
		if !cs.nearEdge(ly, dy) {
			continue
		}
		for dx := -1; dx <= 1; dx++ {
			if !cs.nearEdge(lx, dx) {
				continue
			}
			nx, ny := cx+dx, cy+dy
			if nx < 0 || ny < 0 || nx >= cs.cols || ny >= cs.rows {
				continue
			}
			cs.chunks[ny*cs.cols+nx].ShouldStepNextFrame = true
		}
	}
}

func (cs *Chunks) nearEdge(local, dir int) bool {
	if dir == 0 || cs.margin <= 0 {
		return true
	}
	if dir < 0 {
		return local < cs.margin
	}
	return local >= cs.size-cs.margin
}

// ActiveCount returns how many chunks step this frame.
func (cs *Chunks) ActiveCount() int {
	n := 0
	for i := range cs.chunks {
		if cs.chunks[i].ShouldStep {
			n++
		}
	}
	return n
}

// Wake requests a step next frame for every chunk.
func (cs *Chunks) Wake() {
	for i := range cs.chunks {
		cs.chunks[i].ShouldStepNextFrame = true
	}
}

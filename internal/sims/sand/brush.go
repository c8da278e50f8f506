package sand

const maxBrushSize = 255

// Brush is the interactive painting tool.
type Brush struct {
	Size          int
	MaterialIndex int
	// PlaceFire switches the brush to igniting flammable cells instead of
	// painting material.
	PlaceFire bool
}

// NewBrush returns a sand brush of the given size, clamped to [1,255].
func NewBrush(size int) Brush {
	b := Brush{Size: size, MaterialIndex: int(Sand)}
	b.clampSize()
	return b
}

// Material returns the selected material. An out of range index reads as
// Empty.
func (b *Brush) Material() Material {
	all := Materials()
	if b.MaterialIndex < 0 || b.MaterialIndex >= len(all) {
		return Empty
	}
	return all[b.MaterialIndex]
}

// NextMaterial selects the following material, wrapping around.
func (b *Brush) NextMaterial() Material {
	n := len(Materials())
	b.MaterialIndex = ((b.MaterialIndex+1)%n + n) % n
	return b.Material()
}

// PrevMaterial selects the preceding material, wrapping around.
func (b *Brush) PrevMaterial() Material {
	n := len(Materials())
	b.MaterialIndex = ((b.MaterialIndex-1)%n + n) % n
	return b.Material()
}

// Grow enlarges the brush by one cell.
func (b *Brush) Grow() {
	b.Size++
	b.clampSize()
}

// Shrink reduces the brush by one cell.
func (b *Brush) Shrink() {
	b.Size--
	b.clampSize()
}

// ToggleFire flips between painting and igniting.
func (b *Brush) ToggleFire() bool {
	b.PlaceFire = !b.PlaceFire
	return b.PlaceFire
}

func (b *Brush) clampSize() {
	b.Size = min(max(b.Size, 1), maxBrushSize)
}

// DrawBrush stamps a filled square of the brush size centred on pos. In fire
// mode the flammable cells under the brush are ignited and no material is
// written. Rows are painted bottom up.
func (m *Matrix) DrawBrush(env *Env, pos Point, material Material) {
	m.stamp(env, pos, material, m.Brush.PlaceFire)
}

func (m *Matrix) stamp(env *Env, pos Point, material Material, ignite bool) {
	size := m.Brush.Size
	lower, upper := size/2, (size+1)/2
	for y := pos.Y + upper - 1; y >= pos.Y-lower; y-- {
		for x := pos.X - lower; x < pos.X+upper; x++ {
			p := Point{X: x, Y: y}
			if !m.grid.InBounds(p) {
				continue
			}
			if ignite {
				m.Ignite(p)
				continue
			}
			m.SetCell(env, p, material)
		}
	}
}

// SetLine stamps the brush along the line from (x0,y0) to (x1,y1). The start
// is clamped into the grid; the stroke ends at the first point outside it.
func (m *Matrix) SetLine(env *Env, x0, y0, x1, y1 int, material Material) {
	m.line(x0, y0, x1, y1, func(p Point) { m.DrawBrush(env, p, material) })
}

// EraseLine clears the brush square along the line, whatever the brush mode.
func (m *Matrix) EraseLine(env *Env, x0, y0, x1, y1 int) {
	m.line(x0, y0, x1, y1, func(p Point) { m.stamp(env, p, Empty, false) })
}

func (m *Matrix) line(x0, y0, x1, y1 int, visit func(Point)) {
	start := m.grid.Clamp(Point{X: x0, Y: y0})
	bresenham(start, Point{X: x1, Y: y1}, func(p Point) bool {
		if !m.grid.InBounds(p) {
			return false
		}
		visit(p)
		return true
	})
}

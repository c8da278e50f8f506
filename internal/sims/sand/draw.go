package sand

import "image/color"

// ChunkHighlight paints cells of stepping chunks when DebugChunks is set.
var ChunkHighlight = color.RGBA{R: 255, G: 32, B: 32, A: 255}

// Draw writes one RGBA quadruple per grid cell into buf in row-major order.
// A buffer shorter than 4*width*height is left untouched.
func (m *Matrix) Draw(buf []byte) {
	w, h := m.grid.Width(), m.grid.Height()
	if len(buf) < 4*w*h {
		return
	}
	bg := Empty.Props().Color
	for i := 0; i < w*h; i++ {
		o := i * 4
		buf[o], buf[o+1], buf[o+2], buf[o+3] = bg.R, bg.G, bg.B, bg.A
	}
	for i := range m.grid.cells {
		c := &m.grid.cells[i]
		col := c.Color
		if m.DebugChunks && m.chunks.Active(c.Pos) {
			col = ChunkHighlight
		}
		o := (c.Pos.Y*w + c.Pos.X) * 4
		buf[o], buf[o+1], buf[o+2], buf[o+3] = col.R, col.G, col.B, col.A
	}
}

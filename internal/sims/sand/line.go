package sand

// walkGrid visits the 4-connected cells of the line from a to b, a first,
// until visit returns false. Each step moves along exactly one axis.
func walkGrid(a, b Point, visit func(Point) bool) {
	dx, dy := b.X-a.X, b.Y-a.Y
	nx, ny := abs(dx), abs(dy)
	sx, sy := sign(dx), sign(dy)

	p := a
	if !visit(p) {
		return
	}
	for ix, iy := 0, 0; ix < nx || iy < ny; {
		// Compare (0.5+ix)/nx against (0.5+iy)/ny without division.
		if (1+2*ix)*ny < (1+2*iy)*nx {
			p.X += sx
			ix++
		} else {
			p.Y += sy
			iy++
		}
		if !visit(p) {
			return
		}
	}
}

// bresenham visits the 8-connected cells of the line from a to b, a first,
// until visit returns false.
func bresenham(a, b Point, visit func(Point) bool) {
	dx := abs(b.X - a.X)
	dy := -abs(b.Y - a.Y)
	sx, sy := sign(b.X-a.X), sign(b.Y-a.Y)
	err := dx + dy
	p := a
	for {
		if !visit(p) {
			return
		}
		if p == b {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			p.X += sx
		}
		if e2 <= dx {
			err += dx
			p.Y += sy
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func sign(v int) int {
	switch {
	case v < 0:
		return -1
	case v > 0:
		return 1
	default:
		return 0
	}
}

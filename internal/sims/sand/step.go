package sand

// maxObstacles bounds how many occupied cells a single move may look past.
const maxObstacles = 2

var neighbours8 = [8]Point{
	{-1, -1}, {0, -1}, {1, -1},
	{-1, 0}, {1, 0},
	{-1, 1}, {0, 1}, {1, 1},
}

// movableSolidStep drops the cell straight down and, once it lands while
// still falling, slides it diagonally. Liquids reuse it as their first phase.
func (m *Matrix) movableSolidStep(h int, env *Env) bool {
	c := &m.grid.cells[h]
	pos := c.Pos
	bottom := pos.Add(Point{Y: roundToInt(c.Vel.Y)})

	if c.FreeFalling {
		for _, d := range neighbours8 {
			if n := m.grid.At(pos.Add(d)); n != nil {
				n.attemptFreeFall(env.RNG)
			}
		}
	}

	if m.tryMove(h, bottom, false) {
		m.grid.cells[h].FreeFalling = true
		return true
	}

	coin := env.RNG.Bool()
	c = &m.grid.cells[h]
	if !c.FreeFalling {
		c.Vel = Velocity{}
		return false
	}

	dir := 1
	switch {
	case c.Vel.X < 0:
		dir = -1
	case c.Vel.X == 0 && coin:
		dir = -1
	}

	props := c.Props()
	if props.Kind == KindMovableSolid {
		c.Vel.X = c.Vel.Y * m.cfg.Params.SlideFactor * float32(dir)
		c.Vel.Y *= -m.cfg.Params.BounceDamping
	} else {
		c.Vel.Y = 0
	}

	reach := max(1, abs(roundToInt(c.Vel.X))) * int(props.Dispersion)
	first := pos.Add(Point{X: dir * reach, Y: 1})
	second := pos.Add(Point{X: -dir * reach, Y: 1})
	if m.tryMove(h, first, true) {
		return true
	}
	return m.tryMove(h, second, true)
}

// liquidStep falls like a movable solid and otherwise spreads sideways by the
// material's dispersion.
func (m *Matrix) liquidStep(h int, env *Env) bool {
	if m.movableSolidStep(h, env) {
		return true
	}
	c := &m.grid.cells[h]
	reach := int(c.Props().Dispersion)
	if reach == 0 {
		return false
	}
	target := c.Pos.Add(Point{X: reach * env.RNG.Sign()})
	return m.tryMove(h, target, false)
}

// gasStep is the movable solid rule upside down: straight up, then diagonally
// up in a random order.
func (m *Matrix) gasStep(h int, env *Env) bool {
	c := &m.grid.cells[h]
	pos := c.Pos
	if m.tryMove(h, pos.Add(Point{Y: -1}), false) {
		return true
	}

	reach := max(1, int(m.grid.cells[h].Props().Dispersion))
	dir := env.RNG.Sign()
	if m.tryMove(h, pos.Add(Point{X: dir * reach, Y: -1}), true) {
		return true
	}
	return m.tryMove(h, pos.Add(Point{X: -dir * reach, Y: -1}), true)
}

// tryMove walks the grid line from the cell towards target and relocates the
// cell to the furthest reachable coordinate: a vacant cell or one holding a
// lighter material, which is swapped out. An orthogonal walk stops at a cell
// of the same material, and at a denser one while it has no destination yet.
// Otherwise walks look past at most maxObstacles occupied cells.
func (m *Matrix) tryMove(h int, target Point, diagonal bool) bool {
	if h < 0 || h >= len(m.grid.cells) {
		return false
	}
	c := &m.grid.cells[h]
	origin, material := c.Pos, c.Material
	if origin == target {
		return false
	}
	density := material.Density()
	start := m.grid.Clamp(origin)

	var best Point
	found := false
	obstacles := 0
	walkGrid(start, target, func(p Point) bool {
		if p == origin {
			return true
		}
		oh, occ := m.grid.Lookup(p)
		switch occ {
		case Wall:
			return false
		case Vacant:
			best, found = p, true
			return true
		}
		if obstacles >= maxObstacles {
			return false
		}
		obstacles++
		other := m.grid.cells[oh].Material
		if other == material && !diagonal {
			return false
		}
		if other.Density() < density {
			best, found = p, true
			return true
		}
		if !found && !diagonal {
			return false
		}
		return true
	})

	if !found || best == start {
		return false
	}
	return m.relocate(origin, best)
}

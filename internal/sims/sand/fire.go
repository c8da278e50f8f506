package sand

import "math"

var fireDirections = [8]Point{
	{-1, -1}, {0, -1}, {1, -1},
	{1, 0}, {1, 1}, {0, 1},
	{-1, 1}, {-1, 0},
}

// fireStep spreads fire from the burning cell h. Neighbours are visited in a
// fresh random order; the first extinguishing neighbour puts the fire out and
// nothing is ignited. Otherwise every flammable neighbour that beats its roll
// and is not shielded by a protecting material catches fire.
func (m *Matrix) fireStep(h int, env *Env) {
	c := &m.grid.cells[h]
	if c.HP > 0 {
		c.HP--
	}
	pos := c.Pos
	m.chunks.MarkClusterActive(pos)

	radius := max(1, m.cfg.Params.FireSpreadRadius)
	candidates := make([]Point, 0, 8*radius)
	for dist := 1; dist <= radius; dist++ {
		for _, d := range fireDirections {
			candidates = append(candidates, Point{X: pos.X + d.X*dist, Y: pos.Y + d.Y*dist})
		}
	}
	order := env.RNG.Perm(len(candidates))
	draws := make([]float32, len(candidates))
	for i := range draws {
		draws[i] = env.RNG.Float32()
	}

	var ignite []Point
	for k, i := range order {
		p := candidates[i]
		n := m.grid.At(p)
		if n == nil {
			continue
		}
		props := n.Props()
		if props.ExtinguishesFire {
			m.extinguish(h, p, env)
			return
		}
		if n.OnFire || props.Flammability <= draws[k] {
			continue
		}
		if m.protected(p) {
			continue
		}
		ignite = append(ignite, p)
	}

	for _, p := range ignite {
		if n := m.grid.At(p); n != nil {
			n.OnFire = true
			m.chunks.MarkClusterActive(p)
		}
	}

	chance := m.cfg.Params.SmokeEmitChance
	if chance > 0 && env.RNG.Float64() < chance {
		above := pos.Add(Point{Y: -1})
		if _, occ := m.grid.Lookup(above); occ == Vacant {
			m.spawn(env, above, Smoke)
		}
	}
}

// extinguish puts out the fire h using the extinguisher at p. Liquid
// extinguishers boil off a Smoke cell above the fire.
func (m *Matrix) extinguish(h int, p Point, env *Env) {
	ex := m.grid.At(p)
	props := ex.Props()
	ex.HP = uint64(math.Round(float64(ex.HP) * float64(props.ExtinguishDamage)))
	m.chunks.MarkClusterActive(p)

	fire := &m.grid.cells[h]
	fire.OnFire = false
	fire.WasOnFire = false
	pos := fire.Pos
	m.chunks.MarkClusterActive(pos)

	if props.Kind == KindLiquid {
		m.spawn(env, pos.Add(Point{Y: -1}), Smoke)
	}
}

// spawn creates a cell that sits out the rest of the current frame.
func (m *Matrix) spawn(env *Env, p Point, material Material) {
	m.SetCell(env, p, material)
	if c := m.grid.At(p); c != nil {
		c.Processed = true
	}
}

// protected reports whether a fire-protecting cell lies within the protection
// radius of p.
func (m *Matrix) protected(p Point) bool {
	r := m.cfg.Params.FireProtectionRadius
	for dy := -r; dy <= r; dy++ {
		for dx := -r; dx <= r; dx++ {
			c := m.grid.At(Point{X: p.X + dx, Y: p.Y + dy})
			if c != nil && c.Props().ProtectsFromFire {
				return true
			}
		}
	}
	return false
}

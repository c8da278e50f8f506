package sand

import (
	"image/color"
	"math"

	"falling-sand/pkg/core"

	"github.com/lucasb-eyer/go-colorful"
)

// Point is an integer grid coordinate. Y grows downwards.
type Point struct {
	X, Y int
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y int) Point { return Point{X: x, Y: y} }

// Add returns p+q.
func (p Point) Add(q Point) Point { return Point{X: p.X + q.X, Y: p.Y + q.Y} }

// Velocity is measured in cells per frame.
type Velocity struct {
	X, Y float32
}

// ColorSource assigns the base color of a freshly created cell. Texture-backed
// implementations live outside the engine.
type ColorSource interface {
	ColorFor(p Point, m Material) color.RGBA
}

// ColorFunc adapts a plain function to ColorSource.
type ColorFunc func(p Point, m Material) color.RGBA

// ColorFor calls f.
func (f ColorFunc) ColorFor(p Point, m Material) color.RGBA { return f(p, m) }

// FlatColors paints every cell with its material's table color.
var FlatColors ColorSource = ColorFunc(func(_ Point, m Material) color.RGBA {
	return m.Props().Color
})

var fireColor = colorful.Color{R: 1, G: 0.42, B: 0.08}

// Cell is one material-bearing occupant of the grid.
type Cell struct {
	Pos     Point
	PrevPos Point
	Vel     Velocity
	HP      uint64

	Material  Material
	Color     color.RGBA
	BaseColor color.RGBA

	FreeFalling bool
	OnFire      bool
	WasOnFire   bool
	Processed   bool
}

// NewCell builds a cell of material m at p with full health.
func NewCell(p Point, m Material, colors ColorSource) Cell {
	if colors == nil {
		colors = FlatColors
	}
	base := colors.ColorFor(p, m)
	return Cell{
		Pos:       p,
		PrevPos:   p,
		HP:        m.Props().HP,
		Material:  m,
		Color:     base,
		BaseColor: base,
	}
}

// Props returns the material table entry of the cell.
func (c *Cell) Props() *Properties { return c.Material.Props() }

// beginFrame resets per-frame flags. A cell counts as free falling when its
// row changed since the previous frame.
func (c *Cell) beginFrame() {
	c.Processed = false
	c.FreeFalling = c.Pos.Y != c.PrevPos.Y
	c.PrevPos = c.Pos
}

// applyPhysics runs the per-frame update: gravity, fire and decay damage and
// color derivation. It reports whether hp changed.
func (c *Cell) applyPhysics(p *Params, rng *core.RNG) bool {
	props := c.Props()
	switch props.Kind {
	case KindMovableSolid, KindLiquid:
		c.Vel.Y += p.Gravity
		if c.Vel.Y > p.MaxFallSpeed {
			c.Vel.Y = p.MaxFallSpeed
		}
	}

	before := c.HP
	if c.OnFire && c.HP > 0 {
		c.HP--
	}
	if props.Decay > 0 {
		c.HP -= min(c.HP, props.Decay)
	}
	c.refreshColor(rng)
	return c.HP != before
}

// attemptFreeFall knocks a resting cell loose unless its inertia holds it.
func (c *Cell) attemptFreeFall(rng *core.RNG) {
	if rng.Float32() > c.Props().InertialResistance {
		c.FreeFalling = true
	}
}

// refreshColor derives the display color from the base color, remaining health
// and fire state.
func (c *Cell) refreshColor(rng *core.RNG) {
	props := c.Props()
	base, ok := colorful.MakeColor(c.BaseColor)
	if !ok {
		c.Color = c.BaseColor
		return
	}
	if props.HP > 0 && c.HP < props.HP {
		ratio := float64(c.HP) / float64(props.HP)
		if props.Kind == KindGas {
			base = colorful.Color{}.BlendRgb(base, ratio)
		} else {
			h, s, v := base.Hsv()
			base = colorful.Hsv(h, s, v*(0.55+0.45*ratio))
		}
	}
	if c.OnFire {
		t := 0.55
		if rng != nil {
			t += 0.35 * rng.Float64()
		}
		base = base.BlendLab(fireColor, t)
	}
	r, g, b := base.Clamped().RGB255()
	c.Color = color.RGBA{R: r, G: g, B: b, A: c.BaseColor.A}
}

func roundToInt(v float32) int {
	return int(math.Round(float64(v)))
}

//go:build ebiten

package ui

import (
	"image"
	"image/color"
	"math"

	"falling-sand/internal/core"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

type chunkProvider interface {
	ChunkActivity(visit func(r image.Rectangle, active bool))
}

type fireMaskProvider interface {
	FireMask(mask []float32)
}

type brushProvider interface {
	Brush() (size int, placeFire bool)
}

// Overlay draws optional debugging visuals on top of the base simulation.
type Overlay struct {
	sim       core.Sim
	scale     int
	showGrid  bool
	showHeat  bool
	showBrush bool

	mask    []float32
	maskImg *ebiten.Image
	maskBuf []byte

	pixel *ebiten.Image
}

// NewOverlay constructs a new overlay instance.
func NewOverlay(sim core.Sim, scale int) *Overlay {
	o := &Overlay{sim: sim, scale: scale, showBrush: true}
	o.pixel = ebiten.NewImage(1, 1)
	o.pixel.Fill(color.White)
	return o
}

// Update toggles layers: 1 chunk grid, 2 fire heat, 3 brush cursor.
func (o *Overlay) Update() {
	if inpututil.IsKeyJustPressed(ebiten.KeyDigit1) {
		o.showGrid = !o.showGrid
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyDigit2) {
		o.showHeat = !o.showHeat
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyDigit3) {
		o.showBrush = !o.showBrush
	}
}

// Draw renders the overlay onto the provided screen.
func (o *Overlay) Draw(screen *ebiten.Image) {
	size := o.sim.Size()
	if size.W <= 0 || size.H <= 0 {
		return
	}
	scale := o.scale
	if scale <= 0 {
		scale = 1
	}

	if o.showHeat {
		if provider, ok := o.sim.(fireMaskProvider); ok {
			o.drawHeat(screen, provider, size, scale)
		}
	}
	if o.showGrid {
		if provider, ok := o.sim.(chunkProvider); ok {
			o.drawChunks(screen, provider, scale)
		}
	}
	if o.showBrush {
		if provider, ok := o.sim.(brushProvider); ok {
			o.drawBrush(screen, provider, size, scale)
		}
	}
}

func (o *Overlay) drawChunks(screen *ebiten.Image, provider chunkProvider, scale int) {
	sleeping := color.RGBA{R: 70, G: 80, B: 100, A: 90}
	awake := color.RGBA{R: 255, G: 60, B: 60, A: 200}
	s := float64(scale)
	provider.ChunkActivity(func(r image.Rectangle, active bool) {
		col := sleeping
		if active {
			col = awake
		}
		o.strokeRect(screen, float64(r.Min.X)*s, float64(r.Min.Y)*s, float64(r.Dx())*s, float64(r.Dy())*s, 1, col)
	})
}

func (o *Overlay) drawBrush(screen *ebiten.Image, provider brushProvider, size core.Size, scale int) {
	mx, my := ebiten.CursorPosition()
	gx, gy := mx/scale, my/scale
	if gx < 0 || gy < 0 || gx >= size.W || gy >= size.H {
		return
	}
	brush, fire := provider.Brush()
	col := color.RGBA{R: 230, G: 230, B: 240, A: 160}
	if fire {
		col = color.RGBA{R: 255, G: 140, B: 40, A: 200}
	}
	lower := brush / 2
	s := float64(scale)
	x := float64(gx-lower) * s
	y := float64(gy-lower) * s
	o.strokeRect(screen, x, y, float64(brush)*s, float64(brush)*s, math.Max(1, s/2), col)
}

func (o *Overlay) drawHeat(screen *ebiten.Image, provider fireMaskProvider, size core.Size, scale int) {
	total := size.W * size.H
	if o.maskImg == nil || o.maskImg.Bounds().Dx() != size.W || o.maskImg.Bounds().Dy() != size.H {
		o.maskImg = ebiten.NewImage(size.W, size.H)
	}
	if len(o.maskBuf) != 4*total {
		o.maskBuf = make([]byte, 4*total)
		o.mask = make([]float32, total)
	}
	provider.FireMask(o.mask)
	o.drawMask(screen, o.mask, color.RGBA{R: 255, G: 120, B: 40, A: 0}, scale)
}

func (o *Overlay) strokeRect(screen *ebiten.Image, x, y, w, h, thickness float64, col color.RGBA) {
	o.drawLine(screen, x, y, x+w, y, thickness, col)
	o.drawLine(screen, x, y+h, x+w, y+h, thickness, col)
	o.drawLine(screen, x, y, x, y+h, thickness, col)
	o.drawLine(screen, x+w, y, x+w, y+h, thickness, col)
}

func (o *Overlay) drawLine(screen *ebiten.Image, x1, y1, x2, y2, thickness float64, col color.RGBA) {
	if o.pixel == nil || thickness <= 0 {
		return
	}
	dx := x2 - x1
	dy := y2 - y1
	length := math.Hypot(dx, dy)
	if length <= 1e-4 {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(length, thickness)
	op.GeoM.Translate(0, -thickness/2)
	op.GeoM.Rotate(math.Atan2(dy, dx))
	op.GeoM.Translate(x1, y1)
	tint(op, col)
	screen.DrawImage(o.pixel, op)
}

// tint colors a white source with the straight-alpha color col.
func tint(op *ebiten.DrawImageOptions, col color.RGBA) {
	a := float32(col.A) / 255
	op.ColorScale.Scale(float32(col.R)/255*a, float32(col.G)/255*a, float32(col.B)/255*a, a)
}

func (o *Overlay) drawMask(screen *ebiten.Image, mask []float32, col color.RGBA, scale int) {
	const (
		maxAlpha      = 170.0
		glowBase      = 0.45
		glowRange     = 0.55
		intensityBias = 0.75
	)

	for i := range mask {
		base := i * 4
		intensity := clamp01(float64(mask[i]))
		if intensity == 0 {
			o.maskBuf[base+0] = 0
			o.maskBuf[base+1] = 0
			o.maskBuf[base+2] = 0
			o.maskBuf[base+3] = 0
			continue
		}

		alpha := uint8(math.Round(maxAlpha * math.Pow(intensity, intensityBias)))
		glow := glowBase + glowRange*math.Sqrt(intensity)

		o.maskBuf[base+0] = scaleColorComponent(col.R, glow)
		o.maskBuf[base+1] = scaleColorComponent(col.G, glow)
		o.maskBuf[base+2] = scaleColorComponent(col.B, glow)
		o.maskBuf[base+3] = alpha
	}
	o.maskImg.WritePixels(o.maskBuf)
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(scale), float64(scale))
	screen.DrawImage(o.maskImg, op)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func scaleColorComponent(value uint8, factor float64) uint8 {
	scaled := math.Round(float64(value) * factor)
	if scaled < 0 {
		return 0
	}
	if scaled > 255 {
		return 255
	}
	return uint8(scaled)
}

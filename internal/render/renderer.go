//go:build ebiten

package render

import (
	"falling-sand/internal/core"

	"github.com/hajimehoshi/ebiten/v2"
)

// GridPainter uploads a simulation's RGBA frame into a single image.
type GridPainter struct {
	w, h int
	img  *ebiten.Image
	buf  []byte
}

// NewGridPainter allocates a painter for a grid of size w*h.
func NewGridPainter(w, h int) *GridPainter {
	gp := &GridPainter{w: w, h: h, buf: make([]byte, 4*w*h)}
	gp.img = ebiten.NewImage(w, h)
	return gp
}

// Blit renders sim into the painter image and draws it scaled onto dst.
func (gp *GridPainter) Blit(dst *ebiten.Image, sim core.Sim, scale int) {
	if s := sim.Size(); s.W != gp.w || s.H != gp.h {
		return
	}
	sim.Draw(gp.buf)
	gp.img.WritePixels(gp.buf)

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(scale), float64(scale))
	dst.DrawImage(gp.img, op)
}

// Pixels exposes the last uploaded frame.
func (gp *GridPainter) Pixels() []byte { return gp.buf }

// Size returns the dimensions of the underlying image.
func (gp *GridPainter) Size() (int, int) { return gp.w, gp.h }

// Package assets provides the cell color lookup used when cells are created:
// per-material textures sampled by position with a jittered flat fallback.
package assets

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	_ "image/png"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strings"

	"falling-sand/internal/sims/sand"

	"github.com/lucasb-eyer/go-colorful"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

// Missing is returned for materials without a table entry.
var Missing = color.RGBA{R: 255, G: 0, B: 255, A: 255}

// textureExts lists the formats registered with image.Decode, in lookup order.
var textureExts = []string{".png", ".bmp", ".webp"}

// Palette implements sand.ColorSource. Materials with a texture are sampled
// at the cell position modulo the texture size; the rest get their table color
// with a small deterministic brightness jitter so flat areas keep some grain.
type Palette struct {
	textures map[sand.Material]image.Image
	jitter   float64

	// Strict paints untextured materials with Missing instead of their table
	// color, which makes absent texture files obvious on screen.
	Strict bool
}

// NewPalette returns a palette without textures.
func NewPalette(jitter float64) *Palette {
	return &Palette{textures: map[sand.Material]image.Image{}, jitter: jitter}
}

// LoadDir loads a texture per material from dir, named after the material in
// lower case ("sand.png", "water.webp"). Missing files are skipped; a file that
// fails to decode is reported and skipped.
func LoadDir(dir string, jitter float64) (*Palette, error) {
	p := NewPalette(jitter)
	var errs []error
	for _, m := range sand.Materials() {
		if m == sand.Empty {
			continue
		}
		img, err := loadTexture(dir, strings.ToLower(m.String()))
		switch {
		case errors.Is(err, fs.ErrNotExist):
			continue
		case err != nil:
			errs = append(errs, err)
			continue
		}
		p.textures[m] = img
		log.Printf("assets: loaded %s texture (%dx%d)", m, img.Bounds().Dx(), img.Bounds().Dy())
	}
	return p, errors.Join(errs...)
}

func loadTexture(dir, name string) (image.Image, error) {
	for _, ext := range textureExts {
		path := filepath.Join(dir, name+ext)
		f, err := os.Open(path)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, err
		}
		img, _, err := image.Decode(f)
		f.Close()
		if err != nil {
			return nil, fmt.Errorf("decode %s: %w", path, err)
		}
		if img.Bounds().Empty() {
			return nil, fmt.Errorf("texture %s is empty", path)
		}
		return img, nil
	}
	return nil, fs.ErrNotExist
}

// SetTexture installs img for m. A nil image removes the texture.
func (p *Palette) SetTexture(m sand.Material, img image.Image) {
	if img == nil || img.Bounds().Empty() {
		delete(p.textures, m)
		return
	}
	p.textures[m] = img
}

// HasTexture reports whether m is sampled from a texture.
func (p *Palette) HasTexture(m sand.Material) bool {
	_, ok := p.textures[m]
	return ok
}

// ColorFor returns the base color of a new cell of material m at pos.
func (p *Palette) ColorFor(pos sand.Point, m sand.Material) color.RGBA {
	if !m.Valid() {
		return Missing
	}
	if img, ok := p.textures[m]; ok {
		b := img.Bounds()
		x := b.Min.X + mod(pos.X, b.Dx())
		y := b.Min.Y + mod(pos.Y, b.Dy())
		return color.RGBAModel.Convert(img.At(x, y)).(color.RGBA)
	}
	if p.Strict && m != sand.Empty {
		return Missing
	}
	base := m.Props().Color
	if p.jitter <= 0 || m == sand.Empty {
		return base
	}
	c, _ := colorful.MakeColor(base)
	h, s, v := c.Hsv()
	v *= 1 + p.jitter*(hash01(pos)*2-1)
	r, g, bl := colorful.Hsv(h, s, v).Clamped().RGB255()
	return color.RGBA{R: r, G: g, B: bl, A: base.A}
}

func mod(v, n int) int {
	v %= n
	if v < 0 {
		v += n
	}
	return v
}

// hash01 maps a position to a stable value in [0,1).
func hash01(p sand.Point) float64 {
	h := uint32(p.X)*73856093 ^ uint32(p.Y)*19349663
	h ^= h >> 13
	h *= 0x5bd1e995
	h ^= h >> 15
	return float64(h&0xffff) / 65536
}

package assets

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"falling-sand/internal/sims/sand"

	"golang.org/x/image/bmp"
)

func checker(w, h int, a, b color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if (x+y)%2 == 0 {
				img.SetRGBA(x, y, a)
			} else {
				img.SetRGBA(x, y, b)
			}
		}
	}
	return img
}

func writeImage(t *testing.T, path string, encode func(*os.File) error) {
	t.Helper()
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := encode(f); err != nil {
		t.Fatal(err)
	}
}

func TestLoadDirSamplesTextures(t *testing.T) {
	dir := t.TempDir()
	red := color.RGBA{R: 200, A: 255}
	blue := color.RGBA{B: 200, A: 255}
	writeImage(t, filepath.Join(dir, "sand.png"), func(f *os.File) error {
		return png.Encode(f, checker(2, 2, red, blue))
	})
	writeImage(t, filepath.Join(dir, "rock.bmp"), func(f *os.File) error {
		return bmp.Encode(f, checker(3, 3, blue, red))
	})

	p, err := LoadDir(dir, 0)
	if err != nil {
		t.Fatalf("LoadDir: %v", err)
	}
	if !p.HasTexture(sand.Sand) || !p.HasTexture(sand.Rock) || p.HasTexture(sand.Water) {
		t.Fatal("unexpected texture set")
	}
	if got := p.ColorFor(sand.Pt(0, 0), sand.Sand); got != red {
		t.Fatalf("sand (0,0) = %v", got)
	}
	if got := p.ColorFor(sand.Pt(3, 0), sand.Sand); got != blue {
		t.Fatalf("sand (3,0) should wrap to blue, got %v", got)
	}
	if got := p.ColorFor(sand.Pt(-1, 0), sand.Sand); got != blue {
		t.Fatalf("negative coordinates should wrap, got %v", got)
	}
	if got := p.ColorFor(sand.Pt(0, 0), sand.Rock); got != blue {
		t.Fatalf("rock (0,0) = %v", got)
	}
	if got := p.ColorFor(sand.Pt(0, 0), sand.Water); got != sand.Water.Props().Color {
		t.Fatalf("untextured water = %v", got)
	}
}

func TestLoadDirReportsCorruptFiles(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "water.png"), []byte("not a png"), 0o644); err != nil {
		t.Fatal(err)
	}
	p, err := LoadDir(dir, 0)
	if err == nil {
		t.Fatal("expected decode error")
	}
	if p == nil || p.HasTexture(sand.Water) {
		t.Fatal("corrupt texture must be skipped")
	}
}

func TestColorForFallbacks(t *testing.T) {
	p := NewPalette(0.1)
	if got := p.ColorFor(sand.Pt(0, 0), sand.Material(200)); got != Missing {
		t.Fatalf("unknown material = %v", got)
	}
	a := p.ColorFor(sand.Pt(5, 9), sand.Sand)
	if b := p.ColorFor(sand.Pt(5, 9), sand.Sand); a != b {
		t.Fatal("jitter must be deterministic per position")
	}
	base := sand.Sand.Props().Color
	if diff := int(a.R) - int(base.R); diff > 40 || diff < -40 {
		t.Fatalf("jitter moved red channel by %d", diff)
	}

	p.Strict = true
	if got := p.ColorFor(sand.Pt(0, 0), sand.Sand); got != Missing {
		t.Fatalf("strict palette without texture = %v", got)
	}
	p.SetTexture(sand.Sand, checker(1, 1, base, base))
	if got := p.ColorFor(sand.Pt(4, 4), sand.Sand); got != base {
		t.Fatalf("textured sand = %v", got)
	}
	p.SetTexture(sand.Sand, nil)
	if p.HasTexture(sand.Sand) {
		t.Fatal("nil texture should remove the entry")
	}
}

func TestPaletteFeedsEngine(t *testing.T) {
	p := NewPalette(0)
	p.Strict = true
	m := sand.New(4, 4)
	env := &sand.Env{RNG: sand.NewEnv(1).RNG, Colors: p}
	m.SetCell(env, sand.Pt(1, 1), sand.Dirt)
	c, _ := m.CellAt(sand.Pt(1, 1))
	if c.BaseColor != Missing {
		t.Fatalf("engine ignored the palette: %v", c.BaseColor)
	}
}

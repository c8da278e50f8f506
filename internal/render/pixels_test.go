package render

import (
	"image/color"
	"testing"
)

func TestFillAndPixelAccess(t *testing.T) {
	buf := make([]byte, 4*3*2)
	grey := color.RGBA{R: 9, G: 9, B: 9, A: 255}
	Fill(buf, grey)
	if got := PixelAt(buf, 3, 2, 1); got != grey {
		t.Fatalf("PixelAt after Fill = %v", got)
	}

	red := color.RGBA{R: 255, A: 255}
	SetPixel(buf, 3, 1, 0, red)
	if got := PixelAt(buf, 3, 1, 0); got != red {
		t.Fatalf("PixelAt(1,0) = %v", got)
	}
	SetPixel(buf, 3, 5, 0, red)
	SetPixel(buf, 3, 0, 9, red)
	if got := PixelAt(buf, 3, 3, 0); got != (color.RGBA{}) {
		t.Fatalf("out of range read = %v", got)
	}
}

func TestStrokeRect(t *testing.T) {
	buf := make([]byte, 4*5*5)
	white := color.RGBA{R: 255, G: 255, B: 255, A: 255}
	StrokeRect(buf, 5, 1, 1, 3, 3, white)

	lit := 0
	for y := 0; y < 5; y++ {
		for x := 0; x < 5; x++ {
			if PixelAt(buf, 5, x, y) == white {
				lit++
			}
		}
	}
	if lit != 8 {
		t.Fatalf("3x3 outline lit %d pixels, want 8", lit)
	}
	if PixelAt(buf, 5, 2, 2) == white {
		t.Fatal("outline filled the interior")
	}
}

func TestHalfBlocksPairsRows(t *testing.T) {
	w, h := 2, 3
	buf := make([]byte, 4*w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			SetPixel(buf, w, x, y, color.RGBA{R: uint8(y), G: uint8(x), A: 255})
		}
	}
	bg := color.RGBA{B: 1}
	cells := 0
	HalfBlocks(buf, w, h, bg, func(col, row int, top, bottom color.RGBA) {
		cells++
		if top.R != uint8(row*2) || top.G != uint8(col) {
			t.Fatalf("cell (%d,%d) top = %v", col, row, top)
		}
		if row == 1 && bottom != bg {
			t.Fatalf("odd last row should pair with background, got %v", bottom)
		}
		if row == 0 && bottom.R != 1 {
			t.Fatalf("cell (%d,0) bottom = %v", col, bottom)
		}
	})
	if cells != 4 {
		t.Fatalf("visited %d cells, want 4", cells)
	}
}

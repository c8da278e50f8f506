package render

import "image/color"

// Fill paints every RGBA quadruple of buf with col.
func Fill(buf []byte, col color.RGBA) {
	for base := 0; base+3 < len(buf); base += 4 {
		buf[base+0] = col.R
		buf[base+1] = col.G
		buf[base+2] = col.B
		buf[base+3] = col.A
	}
}

// PixelAt reads the pixel at (x,y) of a w-wide RGBA buffer. Coordinates
// outside the buffer read as transparent black.
func PixelAt(buf []byte, w, x, y int) color.RGBA {
	if x < 0 || y < 0 || x >= w {
		return color.RGBA{}
	}
	base := (y*w + x) * 4
	if base+3 >= len(buf) {
		return color.RGBA{}
	}
	return color.RGBA{R: buf[base], G: buf[base+1], B: buf[base+2], A: buf[base+3]}
}

// SetPixel writes col at (x,y) of a w-wide RGBA buffer, ignoring
// out-of-range coordinates.
func SetPixel(buf []byte, w, x, y int, col color.RGBA) {
	if x < 0 || y < 0 || x >= w {
		return
	}
	base := (y*w + x) * 4
	if base+3 >= len(buf) {
		return
	}
	buf[base+0] = col.R
	buf[base+1] = col.G
	buf[base+2] = col.B
	buf[base+3] = col.A
}

// StrokeRect outlines the rectangle with top-left (x,y) and size w×h on a
// bufW-wide RGBA buffer.
func StrokeRect(buf []byte, bufW, x, y, w, h int, col color.RGBA) {
	if w <= 0 || h <= 0 {
		return
	}
	for i := x; i < x+w; i++ {
		SetPixel(buf, bufW, i, y, col)
		SetPixel(buf, bufW, i, y+h-1, col)
	}
	for j := y; j < y+h; j++ {
		SetPixel(buf, bufW, x, j, col)
		SetPixel(buf, bufW, x+w-1, j, col)
	}
}

// HalfBlocks walks a w×h RGBA buffer two rows at a time, as a terminal draws
// it with upper half block glyphs. An odd last row pairs with bg.
func HalfBlocks(buf []byte, w, h int, bg color.RGBA, visit func(col, row int, top, bottom color.RGBA)) {
	for y := 0; y < h; y += 2 {
		for x := 0; x < w; x++ {
			top := PixelAt(buf, w, x, y)
			bottom := bg
			if y+1 < h {
				bottom = PixelAt(buf, w, x, y+1)
			}
			visit(x, y/2, top, bottom)
		}
	}
}

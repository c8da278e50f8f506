package core

// Bounds describes a W×H grid addressed in row-major order.
type Bounds struct {
	W, H int
}

// NewBounds returns bounds for a grid of the given dimensions. Non-positive
// dimensions are raised to one.
func NewBounds(w, h int) Bounds {
	if w <= 0 {
		w = 1
	}
	if h <= 0 {
		h = 1
	}
	return Bounds{W: w, H: h}
}

// Contains reports whether (x, y) lies inside [0,W)×[0,H).
func (b Bounds) Contains(x, y int) bool {
	return x >= 0 && x < b.W && y >= 0 && y < b.H
}

// Clamp pins the coordinates to the nearest in-bounds cell.
func (b Bounds) Clamp(x, y int) (int, int) {
	return clampInt(x, 0, b.W-1), clampInt(y, 0, b.H-1)
}

// Index returns the linear slice index for coordinates (x, y) after clamping.
func (b Bounds) Index(x, y int) int {
	x, y = b.Clamp(x, y)
	return y*b.W + x
}

// Area returns W*H.
func (b Bounds) Area() int { return b.W * b.H }

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

package chartview

// MinPlotPx is the smallest plot width/height (in pixels) for which pixel
// based passes (gestures, hit testing, rendering) run at all.
const MinPlotPx = 10.0

// Point is a control-local pixel position.
type Point struct {
	X, Y float64
}

// Rect is a pixel rectangle. W and H are never negative for rectangles produced
// by this package.
type Rect struct {
	X, Y, W, H float64
}

// RectFromPoints returns the normalized rectangle spanned by two corners.
func RectFromPoints(a, b Point) Rect {
	x0, x1 := a.X, b.X
	if x0 > x1 {
		x0, x1 = x1, x0
	}
	y0, y1 := a.Y, b.Y
	if y0 > y1 {
		y0, y1 = y1, y0
	}
	return Rect{X: x0, Y: y0, W: x1 - x0, H: y1 - y0}
}

func (r Rect) Right() float64  { return r.X + r.W }
func (r Rect) Bottom() float64 { return r.Y + r.H }

// Empty reports whether the rectangle covers no area.
func (r Rect) Empty() bool { return r.W <= 0 || r.H <= 0 }

// Contains reports whether p lies inside r (edges inclusive).
func (r Rect) Contains(p Point) bool {
	if r.Empty() {
		return false
	}
	return p.X >= r.X && p.X <= r.Right() && p.Y >= r.Y && p.Y <= r.Bottom()
}

// ContainsX reports whether x lies within the horizontal extent of r.
func (r Rect) ContainsX(x float64) bool {
	return r.W > 0 && x >= r.X && x <= r.Right()
}

// XFraction converts a pixel x into a fraction of the rectangle width.
func (r Rect) XFraction(x float64) float64 {
	if r.W <= 0 {
		return 0
	}
	return (x - r.X) / r.W
}

// YFractionFromBottom converts a pixel y into a fraction of the height measured
// from the bottom edge (0 = bottom, 1 = top).
func (r Rect) YFractionFromBottom(y float64) float64 {
	if r.H <= 0 {
		return 0
	}
	return 1 - (y-r.Y)/r.H
}

// Size is a control size in pixels.
type Size struct {
	W, H float64
}

// Area is the plot region expressed as fractions of the control size.
type Area struct {
	X, Y, W, H float64
}

// DefaultArea leaves room on the left for five stacked axes and a little
// margin for labels at the top and bottom.
var DefaultArea = Area{X: 0.28, Y: 0.06, W: 0.69, H: 0.84}

// PlotRect computes the plot rectangle for a control of the given size.
// ok is false when either side falls below MinPlotPx; callers must skip any
// pixel based pass in that case.
func (a Area) PlotRect(size Size) (Rect, bool) {
	r := Rect{
		X: a.X * size.W,
		Y: a.Y * size.H,
		W: a.W * size.W,
		H: a.H * size.H,
	}
	if r.W < MinPlotPx || r.H < MinPlotPx {
		return r, false
	}
	return r, true
}

func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

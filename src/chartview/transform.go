package chartview

import (
	"math"

	"github.com/iafilius/MultiAxisChart/src/logging"
)

const (
	MinZoomX = 0.05
	MaxZoomX = 100.0

	// wheelZoomStep is the zoom factor applied per wheel notch.
	wheelZoomStep = 1.12
	// overscroll is how far (in visible widths) the view may pan past either data edge.
	overscroll = 0.5
	// rectZoomMinFrac is the smallest horizontal extent a rectangle zoom accepts.
	rectZoomMinFrac = 1e-6
)

// Transform is the horizontal pan/zoom shared by every series.
//
// World (sample) fractions and plot pixel fractions are related by
//
//	pixelFrac  = (worldFrac - panX) * zoomX
//	worldFrac  = panX + pixelFrac / zoomX
//
// so panX is the world fraction at the left plot edge and 1/zoomX is the
// visible world width. Every exported mutator leaves the pan clamp satisfied.
type Transform struct {
	panX  float64
	zoomX float64
}

// NewTransform returns the identity view (panX=0, zoomX=1).
func NewTransform() Transform { return Transform{zoomX: 1} }

func (t Transform) PanX() float64  { return t.panX }
func (t Transform) ZoomX() float64 { return t.zoomX }

// Reset returns to the identity view.
func (t *Transform) Reset() {
	t.panX = 0
	t.zoomX = 1
}

// IsIdentity reports whether the whole data range is visible unzoomed.
func (t Transform) IsIdentity() bool { return t.panX == 0 && t.zoomX == 1 }

// ToWorld maps a plot pixel fraction to a world fraction.
func (t Transform) ToWorld(pixelFrac float64) float64 {
	return t.panX + pixelFrac/t.zoomX
}

// ToPixelFrac maps a world fraction to a plot pixel fraction.
func (t Transform) ToPixelFrac(worldFrac float64) float64 {
	return (worldFrac - t.panX) * t.zoomX
}

// VisibleWindow returns the world fractions at the left and right plot edges.
func (t Transform) VisibleWindow() (float64, float64) {
	return t.panX, t.panX + 1/t.zoomX
}

// ClampPan enforces the pan rule. A view at least as wide as the data snaps
// back to identity; otherwise panX stays within half a view of either edge.
func (t *Transform) ClampPan() {
	if t.zoomX <= 0 || math.IsNaN(t.zoomX) || math.IsNaN(t.panX) {
		t.Reset()
		return
	}
	viewWidth := 1 / t.zoomX
	if viewWidth >= 1 {
		t.panX = 0
		t.zoomX = 1
		return
	}
	t.panX = clampFloat(t.panX, -overscroll, 1-viewWidth+overscroll)
}

// PanBy moves the view by delta world fractions.
func (t *Transform) PanBy(delta float64) {
	if math.IsNaN(delta) || math.IsInf(delta, 0) {
		return
	}
	t.panX += delta
	t.ClampPan()
}

// ZoomAtFraction zooms one wheel step in or out, keeping the world position
// under pointerFrac (a plot pixel fraction) fixed on screen.
func (t *Transform) ZoomAtFraction(pointerFrac float64, zoomIn bool) {
	world := t.ToWorld(pointerFrac)
	z := t.zoomX
	if zoomIn {
		z *= wheelZoomStep
	} else {
		z /= wheelZoomStep
	}
	t.zoomX = clampFloat(z, MinZoomX, MaxZoomX)
	t.panX = world - pointerFrac/t.zoomX
	t.ClampPan()
}

// Zoom applies one wheel event at pixelX. A positive delta zooms in, a negative
// one zooms out and zero is ignored.
func (t *Transform) Zoom(pixelX float64, plot Rect, wheelDelta int) {
	if wheelDelta == 0 || plot.W < MinPlotPx {
		return
	}
	t.ZoomAtFraction(plot.XFraction(pixelX), wheelDelta > 0)
}

// RectangleZoomX zooms so that the plot fractions [x1Frac, x2Frac] fill the
// plot. Both are clamped to [0,1]; a span not wider than 1e-6 is ignored.
func (t *Transform) RectangleZoomX(x1Frac, x2Frac float64) {
	x1 := clampFloat(x1Frac, 0, 1)
	x2 := clampFloat(x2Frac, 0, 1)
	if !(x2 > x1+rectZoomMinFrac) {
		logging.Debugf("rectangle zoom ignored: degenerate span [%g, %g]", x1, x2)
		return
	}
	w1, w2 := t.ToWorld(x1), t.ToWorld(x2)
	t.zoomX = clampFloat(1/(w2-w1), MinZoomX, MaxZoomX)
	t.panX = w1
	t.ClampPan()
}

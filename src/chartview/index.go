package chartview

import "math"

// NearestIndex snaps pixelX to the closest sample index of a series with
// maxPoints samples under the current transform. The result is clamped to
// [0, maxPoints-1]; a series with fewer than two points always yields 0.
func (t Transform) NearestIndex(pixelX float64, plot Rect, maxPoints int) int {
	if maxPoints <= 1 || plot.W <= 0 {
		return 0
	}
	world := t.ToWorld(plot.XFraction(pixelX))
	idx := math.Round(world * float64(maxPoints-1))
	if math.IsNaN(idx) {
		return 0
	}
	// clamp before converting so huge values cannot overflow int
	idx = clampFloat(idx, 0, float64(maxPoints-1))
	return int(idx)
}

// IndexToPixelX is the forward mapping used by renderers: the pixel x at which
// sample idx is drawn. It may lie outside the plot when idx is not visible.
func (t Transform) IndexToPixelX(idx int, plot Rect, maxPoints int) float64 {
	if maxPoints <= 1 {
		return plot.X
	}
	world := float64(idx) / float64(maxPoints-1)
	return plot.X + t.ToPixelFrac(world)*plot.W
}

// VisibleIndexRange returns the first and last sample index that fall inside
// the visible window, widened by one sample on each side so line segments
// entering and leaving the plot can be drawn. ok is false when no sample is
// visible.
func (t Transform) VisibleIndexRange(maxPoints int) (int, int, bool) {
	if maxPoints <= 0 {
		return 0, 0, false
	}
	if maxPoints == 1 {
		return 0, 0, true
	}
	lo, hi := t.VisibleWindow()
	last := float64(maxPoints - 1)
	first := int(math.Floor(lo*last)) - 1
	end := int(math.Ceil(hi*last)) + 1
	if end < 0 || first > maxPoints-1 {
		return 0, 0, false
	}
	return clampInt(first, 0, maxPoints-1), clampInt(end, 0, maxPoints-1), true
}

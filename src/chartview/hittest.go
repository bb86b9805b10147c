package chartview

const (
	// AxisSpacing is the horizontal distance between stacked axes.
	AxisSpacing = 60.0
	// AxisLabelW and AxisLabelH size the clickable min/max label boxes.
	AxisLabelW = 54.0
	AxisLabelH = 16.0
)

// HitRegion is one clickable axis label rectangle.
type HitRegion struct {
	Slot  int
	Bound Bound
	Rect  Rect
}

// HitTestIndex holds the clickable axis label regions of the current layout
// pass. It is rebuilt every pass and never carried across frames.
type HitTestIndex struct {
	regions [MaxSeries][2]Rect
	ordinal [MaxSeries]int
}

// Rebuild recomputes the regions. Enabled axes stack outward from the plot's
// left edge in slot order; the max label is centered on the plot top and the
// min label on the plot bottom. Disabled slots and an invalid plot produce
// empty regions.
func (h *HitTestIndex) Rebuild(plot Rect, valid bool, enabled [MaxSeries]bool) {
	*h = HitTestIndex{}
	if !valid {
		return
	}
	n := 0
	for slot := 0; slot < MaxSeries; slot++ {
		h.ordinal[slot] = -1
		if !enabled[slot] {
			continue
		}
		h.ordinal[slot] = n
		x := axisLineX(plot, n) - AxisLabelW - 2
		h.regions[slot][BoundMax] = Rect{X: x, Y: plot.Y - AxisLabelH/2, W: AxisLabelW, H: AxisLabelH}
		h.regions[slot][BoundMin] = Rect{X: x, Y: plot.Bottom() - AxisLabelH/2, W: AxisLabelW, H: AxisLabelH}
		n++
	}
}

// axisLineX is the x of the vertical axis line for the n-th enabled axis.
func axisLineX(plot Rect, n int) float64 {
	return plot.X - float64(n)*AxisSpacing
}

// AxisLineX returns where the renderer draws the axis line of slot, and false
// when the slot had no regions in this pass.
func (h *HitTestIndex) AxisLineX(plot Rect, slot int) (float64, bool) {
	if !validSlot(slot) || h.regions[slot][BoundMax].Empty() {
		return 0, false
	}
	return axisLineX(plot, h.ordinal[slot]), true
}

// Region returns the rectangle of one label; it is empty for disabled slots.
func (h *HitTestIndex) Region(slot int, b Bound) Rect {
	if !validSlot(slot) {
		return Rect{}
	}
	return h.regions[slot][b]
}

// Regions lists every non-empty region in slot order, max before min.
func (h *HitTestIndex) Regions() []HitRegion {
	var out []HitRegion
	for slot := 0; slot < MaxSeries; slot++ {
		for _, b := range []Bound{BoundMax, BoundMin} {
			if r := h.regions[slot][b]; !r.Empty() {
				out = append(out, HitRegion{Slot: slot, Bound: b, Rect: r})
			}
		}
	}
	return out
}

// Hit returns the region under p, if any.
func (h *HitTestIndex) Hit(p Point) (HitRegion, bool) {
	for _, r := range h.Regions() {
		if r.Rect.Contains(p) {
			return r, true
		}
	}
	return HitRegion{}, false
}

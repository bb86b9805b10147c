// Package chartview is the interaction engine of a multi-axis chart: up to
// five series share one horizontal sample axis while each owns its vertical
// range. It converts pointer gestures into pan/zoom, axis range and cursor
// state and never draws anything itself.
//
// All methods must be called from the goroutine that delivers input events.
package chartview

import (
	"math"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/iafilius/MultiAxisChart/src/logging"
)

// Series is the data of one slot. Values is owned by the chart once set.
type Series struct {
	Values  []float64
	Name    string
	Enabled bool
}

// Prompter asks the user for a replacement value. ok is false when the user
// cancelled or entered something that is not a number.
type Prompter func(prompt string, current float64) (value float64, ok bool)

// Chart is the engine instance: series, per-axis ranges, the shared transform,
// cursors, hit regions and the gesture controller.
type Chart struct {
	series  [MaxSeries]Series
	axes    *AxisRangeStore
	view    Transform
	cursors *CursorSet
	hits    HitTestIndex
	ctl     Controller

	area Area
	size Size

	prompt   Prompter
	onRedraw func()
}

// Option configures a Chart at construction.
type Option func(*Chart)

// WithPrompter injects the numeric entry capability used for axis label edits.
func WithPrompter(p Prompter) Option { return func(c *Chart) { c.prompt = p } }

// WithArea overrides DefaultArea.
func WithArea(a Area) Option { return func(c *Chart) { c.area = a } }

// WithSize sets the initial control size.
func WithSize(w, h float64) Option { return func(c *Chart) { c.size = Size{W: w, H: h} } }

// WithRedrawFunc registers a callback run whenever state visible to the
// renderer changed.
func WithRedrawFunc(fn func()) Option { return func(c *Chart) { c.onRedraw = fn } }

// New creates an empty chart at the identity view.
func New(opts ...Option) *Chart {
	c := &Chart{
		axes:    NewAxisRangeStore(),
		view:    NewTransform(),
		cursors: NewCursorSet(),
		ctl:     newController(),
		area:    DefaultArea,
	}
	for _, o := range opts {
		o(c)
	}
	c.RefreshHitRegions()
	return c
}

func (c *Chart) redraw() {
	if c.onRedraw != nil {
		c.onRedraw()
	}
}

// SetSeries replaces slot wholesale. A slot still at its default range is
// autoscaled to the new data. An invalid slot is rejected without any change.
func (c *Chart) SetSeries(slot int, values []float64, enabled bool, name string) error {
	if !validSlot(slot) {
		return errors.Wrapf(ErrInvalidSlot, "set series %d", slot)
	}
	vals := make([]float64, len(values))
	copy(vals, values)
	c.series[slot] = Series{Values: vals, Name: name, Enabled: enabled}
	if c.axes.IsDefault(slot) {
		c.axes.Autoscale(slot, vals)
	}
	c.cursors.ClampTo(c.MaxPoints())
	logging.Debugf("series %d %q: %d points enabled=%t", slot, name, len(vals), enabled)
	c.RefreshHitRegions()
	c.redraw()
	return nil
}

// SetEnabled shows or hides a slot without touching its data.
func (c *Chart) SetEnabled(slot int, enabled bool) error {
	if !validSlot(slot) {
		return errors.Wrapf(ErrInvalidSlot, "enable series %d", slot)
	}
	c.series[slot].Enabled = enabled
	c.cursors.ClampTo(c.MaxPoints())
	c.RefreshHitRegions()
	c.redraw()
	return nil
}

// Series returns a copy of slot's descriptor. The Values slice is shared and
// must not be modified.
func (c *Chart) Series(slot int) (Series, bool) {
	if !validSlot(slot) {
		return Series{}, false
	}
	return c.series[slot], true
}

// SetAxisRange replaces one axis range. Invalid slots are ignored.
func (c *Chart) SetAxisRange(slot int, min, max float64) {
	if !validSlot(slot) {
		logging.Debugf("set axis range: ignoring slot %d", slot)
		return
	}
	c.axes.SetRange(slot, min, max)
	c.redraw()
}

// AxisRange returns the current range of slot.
func (c *Chart) AxisRange(slot int) (AxisRange, bool) { return c.axes.Range(slot) }

// AutoScaleAll refits every enabled axis to its data and resets the view.
func (c *Chart) AutoScaleAll() {
	for slot := 0; slot < MaxSeries; slot++ {
		if c.series[slot].Enabled {
			c.axes.Autoscale(slot, c.series[slot].Values)
		}
	}
	c.view.Reset()
	c.redraw()
}

// AutoScale refits one axis to its series data, whether or not the series is
// shown. Invalid slots are ignored.
func (c *Chart) AutoScale(slot int) {
	if !validSlot(slot) {
		return
	}
	c.axes.Autoscale(slot, c.series[slot].Values)
	c.redraw()
}

// ResetView returns the horizontal transform to identity.
func (c *Chart) ResetView() {
	c.view.Reset()
	c.redraw()
}

// Transform returns the current horizontal transform.
func (c *Chart) Transform() Transform { return c.view }

// MaxPoints is the length of the longest enabled series.
func (c *Chart) MaxPoints() int {
	n := 0
	for _, s := range c.series {
		if s.Enabled && len(s.Values) > n {
			n = len(s.Values)
		}
	}
	return n
}

func (c *Chart) enabledSlots() [MaxSeries]bool {
	var en [MaxSeries]bool
	for i, s := range c.series {
		en[i] = s.Enabled
	}
	return en
}

// Resize updates the control size and recomputes the hit regions.
func (c *Chart) Resize(w, h float64) {
	c.size = Size{W: w, H: h}
	c.RefreshHitRegions()
}

// SetArea changes the normalized plot area.
func (c *Chart) SetArea(a Area) {
	c.area = a
	c.RefreshHitRegions()
	c.redraw()
}

// Size returns the control size last given to Resize.
func (c *Chart) Size() Size { return c.size }

// PlotRect returns the plot rectangle for the current size; ok is false when
// it is below the MinPlotPx floor.
func (c *Chart) PlotRect() (Rect, bool) { return c.area.PlotRect(c.size) }

// RefreshHitRegions is the layout pass producer of the hit-test index.
func (c *Chart) RefreshHitRegions() {
	plot, ok := c.PlotRect()
	c.hits.Rebuild(plot, ok, c.enabledSlots())
}

// HitRegions returns the clickable axis label regions of the current pass.
func (c *Chart) HitRegions() []HitRegion { return c.hits.Regions() }

// HandleEvent feeds one pointer or wheel event through the controller.
func (c *Chart) HandleEvent(ev Event) Result {
	res := c.ctl.Handle(c, ev)
	if res.Redraw {
		c.redraw()
	}
	return res
}

// Mode reports the interaction state.
func (c *Chart) Mode() Mode { return c.ctl.Mode() }

// ArmRectZoom makes the next secondary-button drag a rectangle zoom.
func (c *Chart) ArmRectZoom() bool { return c.ctl.Arm() }

// RectZoomArmed reports whether a rectangle zoom is armed.
func (c *Chart) RectZoomArmed() bool { return c.ctl.RectArmed() }

// CancelGesture drops any in-progress pan or rectangle zoom.
func (c *Chart) CancelGesture() {
	if c.ctl.Cancel() {
		c.redraw()
	}
}

func (c *Chart) applyRectZoom(sel Rect) {
	plot, ok := c.PlotRect()
	if !ok {
		return
	}
	c.view.RectangleZoomX(plot.XFraction(sel.X), plot.XFraction(sel.Right()))
	fTop := plot.YFractionFromBottom(sel.Y)
	fBottom := plot.YFractionFromBottom(sel.Bottom())
	for slot := 0; slot < MaxSeries; slot++ {
		if !c.series[slot].Enabled {
			continue
		}
		r := c.axes.ranges[slot]
		vTop, vBottom := r.ValueAt(fTop), r.ValueAt(fBottom)
		c.axes.SetRange(slot, math.Min(vTop, vBottom), math.Max(vTop, vBottom))
	}
	logging.Debugf("rectangle zoom applied: pan=%.4f zoom=%.4f", c.view.panX, c.view.zoomX)
}

func (c *Chart) requestEdit(slot int, b Bound) Result {
	r := c.axes.ranges[slot]
	req := EditRequest{Slot: slot, Bound: b, Current: r.Min}
	if b == BoundMax {
		req.Current = r.Max
	}
	if c.prompt == nil {
		return Result{Edit: &req}
	}
	v, ok := c.prompt(req.Prompt(c.series[slot].Name), req.Current)
	if !ok {
		logging.Debugf("axis %d %s edit cancelled", slot, b)
		return Result{}
	}
	if err := c.ApplyEdit(req, v); err != nil {
		logging.Warnf("axis %d %s edit rejected: %v", slot, b, err)
		return Result{}
	}
	return Result{Redraw: true}
}

// ApplyEdit commits a value for an axis bound requested earlier.
func (c *Chart) ApplyEdit(req EditRequest, v float64) error {
	if !validSlot(req.Slot) {
		return errors.Wrapf(ErrInvalidSlot, "edit axis %d", req.Slot)
	}
	if !finite(v) {
		return errors.Wrapf(ErrInvalidNumber, "edit axis %d %s: %v", req.Slot, req.Bound, v)
	}
	c.axes.Edit(req.Slot, req.Bound, v)
	c.redraw()
	return nil
}

// ApplyEditText parses user input and commits it. On a parse error the prior
// range is kept and an error wrapping ErrInvalidNumber is returned.
func (c *Chart) ApplyEditText(req EditRequest, text string) error {
	v, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
	if err != nil {
		return errors.Wrapf(ErrInvalidNumber, "%q", text)
	}
	return c.ApplyEdit(req, v)
}

// PlaceCursor snaps cursor i to the sample nearest pixelX.
func (c *Chart) PlaceCursor(i int, pixelX float64) bool {
	plot, ok := c.PlotRect()
	if !ok {
		return false
	}
	placed := c.cursors.PlaceNearest(i, pixelX, plot, c.MaxPoints(), c.view)
	if placed {
		c.redraw()
	}
	return placed
}

// SetCursor places cursor i at a sample index.
func (c *Chart) SetCursor(i, idx int) error {
	if !c.cursors.Set(i, idx, c.MaxPoints()) {
		return errors.Wrapf(ErrInvalidCursor, "set cursor %d", i)
	}
	c.redraw()
	return nil
}

// ToggleCursor enables or disables cursor i, keeping its index.
func (c *Chart) ToggleCursor(i int) error {
	if !c.cursors.Toggle(i) {
		return errors.Wrapf(ErrInvalidCursor, "toggle cursor %d", i)
	}
	c.redraw()
	return nil
}

// Cursor returns cursor i.
func (c *Chart) Cursor(i int) (Cursor, bool) { return c.cursors.Cursor(i) }

// Reading is one series value under a cursor.
type Reading struct {
	Slot  int
	Name  string
	Index int
	Value float64
	// Valid is false when the series is shorter than the cursor index or the
	// sample is not a finite number.
	Valid bool
}

// CursorReadout lists the value of every enabled series at cursor i.
func (c *Chart) CursorReadout(i int) ([]Reading, error) {
	cur, ok := c.cursors.Cursor(i)
	if !ok {
		return nil, errors.Wrapf(ErrInvalidCursor, "readout %d", i)
	}
	var out []Reading
	for slot, s := range c.series {
		if !s.Enabled {
			continue
		}
		r := Reading{Slot: slot, Name: s.Name, Index: cur.Index}
		if cur.Index < len(s.Values) && finite(s.Values[cur.Index]) {
			r.Value = s.Values[cur.Index]
			r.Valid = true
		}
		out = append(out, r)
	}
	return out, nil
}

// AxisLayout describes one vertical axis for the renderer.
type AxisLayout struct {
	Range   AxisRange
	LineX   float64
	Visible bool
}

// State is everything a renderer needs for one frame.
type State struct {
	PanX, ZoomX float64
	Size        Size
	Plot        Rect
	PlotValid   bool
	MaxPoints   int
	Series      [MaxSeries]Series
	Axes        [MaxSeries]AxisLayout
	Cursors     []Cursor
	Preview     *Rect
	Hits        []HitRegion
	Mode        Mode
	RectArmed   bool
}

// Snapshot captures the current state for rendering.
func (c *Chart) Snapshot() State {
	plot, ok := c.PlotRect()
	st := State{
		PanX:      c.view.panX,
		ZoomX:     c.view.zoomX,
		Size:      c.size,
		Plot:      plot,
		PlotValid: ok,
		MaxPoints: c.MaxPoints(),
		Series:    c.series,
		Cursors:   c.cursors.Enabled(),
		Hits:      c.hits.Regions(),
		Mode:      c.ctl.Mode(),
		RectArmed: c.ctl.RectArmed(),
	}
	for slot := range st.Axes {
		st.Axes[slot].Range = c.axes.ranges[slot]
		if x, vis := c.hits.AxisLineX(plot, slot); vis {
			st.Axes[slot].LineX = x
			st.Axes[slot].Visible = true
		}
	}
	if r, ok := c.ctl.Preview(); ok {
		st.Preview = &r
	}
	return st
}

// Transform returns the view carried by a snapshot.
func (s State) Transform() Transform { return Transform{panX: s.PanX, zoomX: s.ZoomX} }

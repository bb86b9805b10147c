package chartview

import "github.com/iafilius/MultiAxisChart/src/logging"

// RectZoomMinPx is the minimum width and height, in pixels, a dragged
// rectangle must exceed before it is applied as a zoom.
const RectZoomMinPx = 6.0

// Mode names the interaction state for renderers and tests.
type Mode int

const (
	ModeIdle Mode = iota
	ModePanning
	ModeRectZooming
)

func (m Mode) String() string {
	switch m {
	case ModePanning:
		return "panning"
	case ModeRectZooming:
		return "rect-zooming"
	default:
		return "idle"
	}
}

// mode is the tagged interaction state. Exactly one variant is active.
type mode interface {
	kind() Mode
}

type idleMode struct {
	// rectArmed is set from the menu; the next secondary press starts a
	// rectangle zoom.
	rectArmed bool
}

type panningMode struct {
	last Point
}

type rectZoomingMode struct {
	start, current Point
}

func (idleMode) kind() Mode        { return ModeIdle }
func (panningMode) kind() Mode     { return ModePanning }
func (rectZoomingMode) kind() Mode { return ModeRectZooming }

// Controller turns pointer events into transform, axis range and edit
// operations on a Chart. It owns nothing but the gesture state; the chart is
// passed in on every call.
type Controller struct {
	state mode
}

func newController() Controller { return Controller{state: idleMode{}} }

// Mode reports the active state.
func (c *Controller) Mode() Mode {
	if c.state == nil {
		return ModeIdle
	}
	return c.state.kind()
}

// RectArmed reports whether the next secondary press starts a rectangle zoom.
func (c *Controller) RectArmed() bool {
	st, ok := c.state.(idleMode)
	return ok && st.rectArmed
}

// Preview returns the in-progress rectangle zoom selection.
func (c *Controller) Preview() (Rect, bool) {
	st, ok := c.state.(rectZoomingMode)
	if !ok {
		return Rect{}, false
	}
	return RectFromPoints(st.start, st.current), true
}

// Arm makes the next secondary press start a rectangle zoom. It has no effect
// while a gesture is in progress.
func (c *Controller) Arm() bool {
	if c.Mode() != ModeIdle {
		return false
	}
	c.state = idleMode{rectArmed: true}
	return true
}

// Cancel abandons any in-progress gesture and disarms rectangle zoom.
func (c *Controller) Cancel() bool {
	changed := c.Mode() != ModeIdle || c.RectArmed()
	c.state = idleMode{}
	return changed
}

// Handle dispatches one event. Wheel events zoom in every state.
func (c *Controller) Handle(ch *Chart, ev Event) Result {
	if c.state == nil {
		c.state = idleMode{}
	}
	if ev.Type == EventWheel {
		return c.wheel(ch, ev)
	}
	switch st := c.state.(type) {
	case idleMode:
		return c.handleIdle(ch, st, ev)
	case panningMode:
		return c.handlePanning(ch, st, ev)
	case rectZoomingMode:
		return c.handleRectZooming(ch, st, ev)
	}
	return Result{}
}

func (c *Controller) wheel(ch *Chart, ev Event) Result {
	plot, ok := ch.PlotRect()
	if !ok || ev.WheelDelta == 0 {
		return Result{}
	}
	before := ch.view
	ch.view.Zoom(ev.Pos.X, plot, ev.WheelDelta)
	return Result{Redraw: ch.view != before}
}

func (c *Controller) handleIdle(ch *Chart, st idleMode, ev Event) Result {
	if ev.Type != EventDown {
		return Result{}
	}
	plot, ok := ch.PlotRect()
	if !ok {
		return Result{}
	}
	switch ev.Button {
	case ButtonPrimary:
		// axis labels take priority over starting a pan
		if hit, found := ch.hits.Hit(ev.Pos); found {
			return ch.requestEdit(hit.Slot, hit.Bound)
		}
		logging.Debugf("gesture: idle -> panning at (%.0f, %.0f)", ev.Pos.X, ev.Pos.Y)
		c.state = panningMode{last: ev.Pos}
		return Result{}
	case ButtonSecondary:
		if !st.rectArmed || !plot.Contains(ev.Pos) {
			return Result{}
		}
		logging.Debugf("gesture: idle -> rect-zooming at (%.0f, %.0f)", ev.Pos.X, ev.Pos.Y)
		c.state = rectZoomingMode{start: ev.Pos, current: ev.Pos}
		return Result{Redraw: true}
	}
	return Result{}
}

func (c *Controller) handlePanning(ch *Chart, st panningMode, ev Event) Result {
	switch ev.Type {
	case EventMove:
		plot, ok := ch.PlotRect()
		if !ok {
			return Result{}
		}
		dx := ev.Pos.X - st.last.X
		dy := ev.Pos.Y - st.last.Y
		c.state = panningMode{last: ev.Pos}
		if dx == 0 && dy == 0 {
			return Result{}
		}
		if dx != 0 {
			// the data follows the pointer: dragging right reveals earlier samples
			ch.view.PanBy(-(dx / plot.W) / ch.view.zoomX)
		}
		if dy != 0 {
			frac := dy / plot.H
			for slot := 0; slot < MaxSeries; slot++ {
				if ch.series[slot].Enabled {
					ch.axes.ShiftBySpanFraction(slot, frac)
				}
			}
		}
		return Result{Redraw: true}
	case EventUp:
		if ev.Button != ButtonPrimary {
			return Result{}
		}
		logging.Debugf("gesture: panning -> idle (pan=%.4f zoom=%.4f)", ch.view.panX, ch.view.zoomX)
		c.state = idleMode{}
		return Result{Redraw: true}
	}
	return Result{}
}

func (c *Controller) handleRectZooming(ch *Chart, st rectZoomingMode, ev Event) Result {
	switch ev.Type {
	case EventMove:
		c.state = rectZoomingMode{start: st.start, current: ev.Pos}
		return Result{Redraw: true}
	case EventUp:
		if ev.Button != ButtonSecondary {
			return Result{}
		}
		c.state = idleMode{}
		sel := RectFromPoints(st.start, ev.Pos)
		if sel.W > RectZoomMinPx && sel.H > RectZoomMinPx {
			ch.applyRectZoom(sel)
		} else {
			logging.Debugf("gesture: rectangle %.0fx%.0f below %.0fpx, discarded", sel.W, sel.H, RectZoomMinPx)
		}
		return Result{Redraw: true}
	}
	return Result{}
}

package main

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"strconv"
	"strings"

	fyne "fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/iafilius/MultiAxisChart/src/chartview"
	"github.com/iafilius/MultiAxisChart/src/logging"
	"github.com/iafilius/MultiAxisChart/src/render"
	"github.com/iafilius/MultiAxisChart/src/uihelpers"
)

// chartWidget hosts a chartview.Chart: it forwards pointer and wheel input to
// the engine and shows the rendered frame plus an optional hover crosshair.
type chartWidget struct {
	widget.BaseWidget
	chart *chartview.Chart
	win   fyne.Window
	img   *canvas.Image

	crosshair bool
	hovering  bool
	mouse     fyne.Position

	// onStatus is called with every rendered state.
	onStatus func(chartview.State)
}

func newChartWidget(win fyne.Window, opts ...chartview.Option) *chartWidget {
	cw := &chartWidget{win: win}
	cw.img = canvas.NewImageFromImage(image.NewRGBA(image.Rect(0, 0, 1, 1)))
	cw.img.FillMode = canvas.ImageFillStretch
	opts = append(opts, chartview.WithRedrawFunc(cw.redraw))
	cw.chart = chartview.New(opts...)
	cw.ExtendBaseWidget(cw)
	return cw
}

// redraw renders the current engine state into the image.
func (cw *chartWidget) redraw() {
	st := cw.chart.Snapshot()
	if st.Size.W < 1 || st.Size.H < 1 {
		return
	}
	img, err := render.Frame(st, render.DefaultOptions)
	if err != nil {
		logging.Warnf("chart render: %v", err)
		return
	}
	cw.img.Image = img
	cw.img.Refresh()
	if cw.onStatus != nil {
		cw.onStatus(st)
	}
}

func (cw *chartWidget) setCrosshair(on bool) {
	cw.crosshair = on
	cw.Refresh()
}

func toPoint(p fyne.Position) chartview.Point {
	return chartview.Point{X: float64(p.X), Y: float64(p.Y)}
}

// buttonOf maps a desktop button; ok is false for buttons the engine ignores.
func buttonOf(b desktop.MouseButton) (chartview.Button, bool) {
	switch b {
	case desktop.MouseButtonPrimary:
		return chartview.ButtonPrimary, true
	case desktop.MouseButtonSecondary:
		return chartview.ButtonSecondary, true
	}
	return 0, false
}

// wheelDelta reduces a scroll event to one zoom step; scrolling up zooms in.
func wheelDelta(ev *fyne.ScrollEvent) int {
	switch {
	case ev.Scrolled.DY > 0:
		return 1
	case ev.Scrolled.DY < 0:
		return -1
	}
	return 0
}

func (cw *chartWidget) dispatch(ev chartview.Event) {
	res := cw.chart.HandleEvent(ev)
	if res.Edit != nil {
		cw.promptEdit(*res.Edit)
	}
}

func (cw *chartWidget) MouseDown(ev *desktop.MouseEvent) {
	b, ok := buttonOf(ev.Button)
	if !ok {
		return
	}
	if b == chartview.ButtonSecondary && !cw.chart.RectZoomArmed() {
		cw.showContextMenu(ev.Position, ev.AbsolutePosition)
		return
	}
	cw.dispatch(chartview.Event{Type: chartview.EventDown, Button: b, Pos: toPoint(ev.Position)})
}

func (cw *chartWidget) MouseUp(ev *desktop.MouseEvent) {
	b, ok := buttonOf(ev.Button)
	if !ok {
		return
	}
	cw.dispatch(chartview.Event{Type: chartview.EventUp, Button: b, Pos: toPoint(ev.Position)})
}

func (cw *chartWidget) MouseIn(ev *desktop.MouseEvent) {
	cw.hovering = true
	cw.mouse = ev.Position
	cw.Refresh()
}

func (cw *chartWidget) MouseMoved(ev *desktop.MouseEvent) {
	cw.hovering = true
	cw.mouse = ev.Position
	cw.dispatch(chartview.Event{Type: chartview.EventMove, Pos: toPoint(ev.Position)})
	if cw.crosshair {
		cw.Refresh()
	}
}

func (cw *chartWidget) MouseOut() {
	cw.hovering = false
	cw.Refresh()
}

func (cw *chartWidget) Scrolled(ev *fyne.ScrollEvent) {
	cw.dispatch(chartview.Event{Type: chartview.EventWheel, Pos: toPoint(ev.Position), WheelDelta: wheelDelta(ev)})
}

func (cw *chartWidget) showContextMenu(pos, abs fyne.Position) {
	x := float64(pos.X)
	items := []*fyne.MenuItem{
		fyne.NewMenuItem("Rectangle zoom", func() { cw.chart.ArmRectZoom() }),
		fyne.NewMenuItemSeparator(),
	}
	for i := 0; i < chartview.MaxCursors; i++ {
		i := i
		c, _ := cw.chart.Cursor(i)
		items = append(items, fyne.NewMenuItem("Place "+c.Name+" here", func() { cw.chart.PlaceCursor(i, x) }))
		if c.Enabled {
			items = append(items, fyne.NewMenuItem("Hide "+c.Name, func() { _ = cw.chart.ToggleCursor(i) }))
		}
	}
	items = append(items,
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Reset view", cw.chart.ResetView),
		fyne.NewMenuItem("Autoscale all", cw.chart.AutoScaleAll),
	)
	widget.ShowPopUpMenuAtPosition(fyne.NewMenu("", items...), cw.win.Canvas(), abs)
}

// promptEdit asks for a new axis bound. Text that is not a number is reported
// and leaves the range unchanged.
func (cw *chartWidget) promptEdit(req chartview.EditRequest) {
	s, _ := cw.chart.Series(req.Slot)
	entry := widget.NewEntry()
	entry.SetText(strconv.FormatFloat(req.Current, 'g', -1, 64))
	items := []*widget.FormItem{widget.NewFormItem(req.Prompt(s.Name), entry)}
	dialog.ShowForm("Edit axis range", "Apply", "Cancel", items, func(ok bool) {
		if !ok {
			return
		}
		if err := cw.chart.ApplyEditText(req, entry.Text); err != nil {
			logging.Warnf("axis %d %s: %v", req.Slot, req.Bound, err)
			dialog.ShowError(err, cw.win)
		}
	}, cw.win)
}

// crosshairText lists the sample under x and every enabled series value there.
func crosshairText(st chartview.State, x float64) (string, bool) {
	if !st.PlotValid || st.MaxPoints == 0 || !st.Plot.ContainsX(x) {
		return "", false
	}
	idx := st.Transform().NearestIndex(x, st.Plot, st.MaxPoints)
	lines := []string{"#" + strconv.Itoa(idx)}
	for _, s := range st.Series {
		if !s.Enabled {
			continue
		}
		v := math.NaN()
		if idx < len(s.Values) {
			v = s.Values[idx]
		}
		lines = append(lines, fmt.Sprintf("%s: %s", uihelpers.TruncateLabel(s.Name, 16), uihelpers.FormatNumericTick(v)))
	}
	return strings.Join(lines, "\n"), true
}

func (cw *chartWidget) CreateRenderer() fyne.WidgetRenderer {
	lineV := canvas.NewLine(color.RGBA{R: 200, G: 200, B: 200, A: 220})
	lineV.StrokeWidth = 1
	lineH := canvas.NewLine(color.RGBA{R: 200, G: 200, B: 200, A: 220})
	lineH.StrokeWidth = 1
	label := widget.NewLabel("")
	label.Wrapping = fyne.TextWrapOff
	labelBG := canvas.NewRectangle(color.RGBA{R: 0, G: 0, B: 0, A: 170})
	r := &chartRenderer{cw: cw, lineV: lineV, lineH: lineH, label: label, labelBG: labelBG}
	r.objs = []fyne.CanvasObject{cw.img, lineV, lineH, labelBG, label}
	return r
}

type chartRenderer struct {
	cw      *chartWidget
	lineV   *canvas.Line
	lineH   *canvas.Line
	label   *widget.Label
	labelBG *canvas.Rectangle
	objs    []fyne.CanvasObject
}

func (r *chartRenderer) Destroy() {}

func (r *chartRenderer) Layout(size fyne.Size) {
	r.cw.img.Resize(size)
	r.cw.img.Move(fyne.NewPos(0, 0))
	cur := r.cw.chart.Size()
	if float32(cur.W) != size.Width || float32(cur.H) != size.Height {
		r.cw.chart.Resize(float64(size.Width), float64(size.Height))
		r.cw.redraw()
	}
	r.layoutCrosshair(size)
}

func (r *chartRenderer) hideCrosshair() {
	off := fyne.NewPos(-10, -10)
	r.lineV.Position1, r.lineV.Position2 = off, off
	r.lineH.Position1, r.lineH.Position2 = off, off
	r.labelBG.Resize(fyne.NewSize(0, 0))
	r.labelBG.Move(fyne.NewPos(-1000, -1000))
	r.label.Move(fyne.NewPos(-1000, -1000))
}

func (r *chartRenderer) layoutCrosshair(size fyne.Size) {
	cw := r.cw
	if !cw.crosshair || !cw.hovering || cw.chart.Mode() != chartview.ModeIdle {
		r.hideCrosshair()
		return
	}
	st := cw.chart.Snapshot()
	text, ok := crosshairText(st, float64(cw.mouse.X))
	if !ok || !st.Plot.Contains(toPoint(cw.mouse)) {
		r.hideCrosshair()
		return
	}
	x, y := cw.mouse.X, cw.mouse.Y
	top, bottom := float32(st.Plot.Y), float32(st.Plot.Bottom())
	left, right := float32(st.Plot.X), float32(st.Plot.Right())
	r.lineV.Position1 = fyne.NewPos(x, top)
	r.lineV.Position2 = fyne.NewPos(x, bottom)
	r.lineH.Position1 = fyne.NewPos(left, y)
	r.lineH.Position2 = fyne.NewPos(right, y)

	r.label.SetText(text)
	pad := float32(4)
	ts := r.label.MinSize()
	bgW, bgH := ts.Width+2*pad, ts.Height+2*pad
	tx, ty := x+8, y+8
	if tx+bgW > size.Width {
		tx = x - 8 - bgW
	}
	if ty+bgH > size.Height {
		ty = size.Height - bgH
	}
	r.labelBG.Resize(fyne.NewSize(bgW, bgH))
	r.labelBG.Move(fyne.NewPos(tx, ty))
	r.label.Resize(ts)
	r.label.Move(fyne.NewPos(tx+pad, ty+pad))
}

func (r *chartRenderer) MinSize() fyne.Size           { return fyne.NewSize(320, 240) }
func (r *chartRenderer) Objects() []fyne.CanvasObject { return r.objs }

func (r *chartRenderer) Refresh() {
	r.Layout(r.cw.Size())
	r.lineV.StrokeColor = theme.Color(theme.ColorNameDisabled)
	r.lineH.StrokeColor = theme.Color(theme.ColorNameDisabled)
	r.lineV.Refresh()
	r.lineH.Refresh()
	r.labelBG.Refresh()
	r.label.Refresh()
	r.cw.img.Refresh()
}

var (
	_ desktop.Mouseable = (*chartWidget)(nil)
	_ desktop.Hoverable = (*chartWidget)(nil)
	_ fyne.Scrollable   = (*chartWidget)(nil)
)

// Package render rasterizes a chartview.State: series lines through
// go-chart, then axes, labels, cursors and the zoom preview on top.
package render

import (
	"bytes"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"math"
	"strconv"

	"github.com/pkg/errors"
	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/iafilius/MultiAxisChart/src/chartview"
	"github.com/iafilius/MultiAxisChart/src/logging"
	"github.com/iafilius/MultiAxisChart/src/uihelpers"
)

// Palette holds one color per series slot. Axis lines and labels reuse it.
var Palette = [chartview.MaxSeries]color.RGBA{
	{R: 66, G: 133, B: 244, A: 255},
	{R: 234, G: 67, B: 53, A: 255},
	{R: 52, G: 168, B: 83, A: 255},
	{R: 251, G: 188, B: 5, A: 255},
	{R: 171, G: 71, B: 188, A: 255},
}

var (
	bgColor      = color.RGBA{R: 18, G: 18, B: 18, A: 255}
	plotColor    = color.RGBA{R: 26, G: 26, B: 30, A: 255}
	gridColor    = color.RGBA{R: 52, G: 52, B: 58, A: 255}
	frameColor   = color.RGBA{R: 110, G: 110, B: 118, A: 255}
	previewFill  = color.RGBA{R: 90, G: 140, B: 220, A: 60}
	previewColor = color.RGBA{R: 140, G: 180, B: 255, A: 255}
)

// Options select the optional layers of a frame.
type Options struct {
	Grid    bool
	Readout bool
	// Title is drawn above the plot when set.
	Title string
}

// DefaultOptions is what the viewer and screenshots use.
var DefaultOptions = Options{Grid: true, Readout: true}

// Frame draws st at its control size.
func Frame(st chartview.State, opt Options) (*image.RGBA, error) {
	w, h := int(math.Round(st.Size.W)), int(math.Round(st.Size.H))
	if w < 1 || h < 1 {
		return nil, errors.Errorf("render: invalid frame size %dx%d", w, h)
	}
	img := blank(w, h)
	if !st.PlotValid {
		drawText(img, "plot area too small", 6, 16, frameColor)
		return img, nil
	}
	plot := pixelRect(st.Plot)
	draw.Draw(img, plot, image.NewUniform(plotColor), image.Point{}, draw.Src)
	if opt.Grid {
		drawGrid(img, st)
	}

	layer, err := seriesLayer(st)
	if err != nil {
		logging.Warnf("render: series layer: %v", err)
	} else if layer != nil {
		// the layer shares the frame's coordinates; copying the plot rect clips
		// lines that run past the visible range
		draw.Draw(img, plot, layer, plot.Min, draw.Over)
	}

	strokeRect(img, plot, frameColor)
	drawAxes(img, st)
	drawCursors(img, st)
	if st.Preview != nil {
		sel := pixelRect(*st.Preview).Intersect(img.Bounds())
		draw.Draw(img, sel, image.NewUniform(previewFill), image.Point{}, draw.Over)
		strokeRect(img, sel, previewColor)
	}
	if opt.Readout {
		drawReadout(img, st)
	}
	if opt.Title != "" {
		drawText(img, opt.Title, plot.Min.X, plot.Min.Y-textHeight, textColor)
	}
	return img, nil
}

// EncodePNG renders st and writes it as PNG.
func EncodePNG(st chartview.State, opt Options) ([]byte, error) {
	img, err := Frame(st, opt)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, errors.Wrap(err, "render: encode png")
	}
	return buf.Bytes(), nil
}

// seriesLayer renders every enabled series into a transparent image of the
// frame size. Each series is normalized by its own axis range so one shared
// [0,1] vertical range serves all axes. It returns nil when nothing is drawable.
func seriesLayer(st chartview.State) (image.Image, error) {
	tr := st.Transform()
	first, last, ok := tr.VisibleIndexRange(st.MaxPoints)
	if !ok {
		return nil, nil
	}
	var series []chart.Series
	for slot, s := range st.Series {
		if !s.Enabled || len(s.Values) == 0 {
			continue
		}
		ax := st.Axes[slot].Range
		style := chart.Style{
			StrokeColor: toDrawing(Palette[slot]),
			StrokeWidth: 1.5,
		}
		if len(s.Values) == 1 || st.MaxPoints == 1 {
			style = chart.Style{StrokeWidth: 0, DotWidth: 3, DotColor: toDrawing(Palette[slot])}
		}
		for _, seg := range segments(s.Values, first, last) {
			ys := make([]float64, len(seg.xs))
			for i, x := range seg.xs {
				ys[i] = ax.FractionOf(s.Values[int(x)])
			}
			series = append(series, chart.ContinuousSeries{Name: s.Name, XValues: seg.xs, YValues: ys, Style: style})
		}
	}
	if len(series) == 0 {
		return nil, nil
	}

	lo, hi := tr.VisibleWindow()
	scale := float64(st.MaxPoints - 1)
	if st.MaxPoints < 2 {
		scale = 1
	}
	w, h := int(math.Round(st.Size.W)), int(math.Round(st.Size.H))
	plot := pixelRect(st.Plot)
	hidden := chart.Style{Hidden: true}
	ch := chart.Chart{
		Width:  w,
		Height: h,
		Background: chart.Style{
			FillColor: drawing.ColorTransparent,
			Padding: chart.Box{
				Top:    plot.Min.Y,
				Left:   plot.Min.X,
				Right:  w - plot.Max.X,
				Bottom: h - plot.Max.Y,
			},
		},
		Canvas: chart.Style{FillColor: drawing.ColorTransparent},
		XAxis:  chart.XAxis{Style: hidden, Range: &chart.ContinuousRange{Min: lo * scale, Max: hi * scale}},
		YAxis:  chart.YAxis{Style: hidden, Range: &chart.ContinuousRange{Min: 0, Max: 1}},
		Series: series,
	}
	var buf bytes.Buffer
	if err := ch.Render(chart.PNG, &buf); err != nil {
		return nil, errors.Wrap(err, "go-chart render")
	}
	img, err := png.Decode(&buf)
	if err != nil {
		return nil, errors.Wrap(err, "decode series layer")
	}
	return img, nil
}

type segment struct{ xs []float64 }

// segments splits values[first..last] at non-finite samples so gaps are not
// bridged by a line.
func segments(values []float64, first, last int) []segment {
	if last >= len(values) {
		last = len(values) - 1
	}
	var out []segment
	var cur []float64
	for i := first; i <= last; i++ {
		v := values[i]
		if math.IsNaN(v) || math.IsInf(v, 0) {
			if len(cur) > 0 {
				out = append(out, segment{xs: cur})
				cur = nil
			}
			continue
		}
		cur = append(cur, float64(i))
	}
	if len(cur) > 0 {
		out = append(out, segment{xs: cur})
	}
	// go-chart needs two points to stroke; a lone sample is duplicated in place
	for i := range out {
		if len(out[i].xs) == 1 {
			out[i].xs = append(out[i].xs, out[i].xs[0])
		}
	}
	return out
}

// drawGrid draws horizontal lines at the ticks of the first enabled axis and
// vertical lines at sample-index ticks of the visible window.
func drawGrid(img *image.RGBA, st chartview.State) {
	plot := pixelRect(st.Plot)
	for slot, s := range st.Series {
		if !s.Enabled {
			continue
		}
		r := st.Axes[slot].Range
		ticks := uihelpers.InsideTicks(uihelpers.BuildNumericTicks(r.Min, r.Max, 6), r.Min, r.Max)
		for _, v := range ticks {
			y := int(math.Round(st.Plot.Bottom() - r.FractionOf(v)*st.Plot.H))
			hline(img, plot.Min.X, plot.Max.X, y, gridColor)
		}
		break
	}
	tr := st.Transform()
	first, last, ok := tr.VisibleIndexRange(st.MaxPoints)
	if !ok || st.MaxPoints < 2 {
		return
	}
	for _, idx := range uihelpers.BuildIndexTicks(first, last, 8) {
		x := tr.IndexToPixelX(idx, st.Plot, st.MaxPoints)
		if !st.Plot.ContainsX(x) {
			continue
		}
		xi := int(math.Round(x))
		vline(img, xi, plot.Min.Y, plot.Max.Y, gridColor)
		drawTextCentered(img, uihelpers.FormatNumericTick(float64(idx)), xi, plot.Max.Y+textHeight+2, frameColor)
	}
}

// drawAxes draws the vertical line of every visible axis plus its min/max
// labels inside the hit regions the engine computed.
func drawAxes(img *image.RGBA, st chartview.State) {
	plot := pixelRect(st.Plot)
	for slot, ax := range st.Axes {
		if !ax.Visible {
			continue
		}
		x := int(math.Round(ax.LineX))
		vline(img, x, plot.Min.Y, plot.Max.Y, Palette[slot])
		name := uihelpers.TruncateLabel(st.Series[slot].Name, 8)
		if name == "" {
			name = "Axis " + strconv.Itoa(slot+1)
		}
		drawTextCentered(img, name, x-int(chartview.AxisLabelW/2)-2, plot.Min.Y-int(chartview.AxisLabelH), Palette[slot])
	}
	for _, hr := range st.Hits {
		r := pixelRect(hr.Rect)
		draw.Draw(img, r, image.NewUniform(labelBG), image.Point{}, draw.Over)
		strokeRect(img, r, Palette[hr.Slot])
		v := st.Axes[hr.Slot].Range.Min
		if hr.Bound == chartview.BoundMax {
			v = st.Axes[hr.Slot].Range.Max
		}
		drawLabelIn(img, uihelpers.FormatNumericTick(v), r, textColor)
	}
}

func drawCursors(img *image.RGBA, st chartview.State) {
	tr := st.Transform()
	plot := pixelRect(st.Plot)
	for _, c := range st.Cursors {
		x := tr.IndexToPixelX(c.Index, st.Plot, st.MaxPoints)
		if !st.Plot.ContainsX(x) {
			continue
		}
		xi := int(math.Round(x))
		vline(img, xi, plot.Min.Y, plot.Max.Y, c.Color)
		drawText(img, c.Name, xi+3, plot.Min.Y+textHeight, c.Color)
	}
}

// drawReadout lists the value of every enabled series at each enabled cursor
// in a box at the top right of the plot.
func drawReadout(img *image.RGBA, st chartview.State) {
	var lines []string
	var cols []color.RGBA
	for _, c := range st.Cursors {
		lines = append(lines, c.Name+" #"+uihelpers.FormatNumericTick(float64(c.Index)))
		cols = append(cols, c.Color)
		for slot, s := range st.Series {
			if !s.Enabled {
				continue
			}
			val := "-"
			if c.Index < len(s.Values) {
				val = uihelpers.FormatNumericTick(s.Values[c.Index])
			}
			lines = append(lines, "  "+uihelpers.TruncateLabel(s.Name, 12)+": "+val)
			cols = append(cols, Palette[slot])
		}
	}
	if len(lines) == 0 {
		return
	}
	plot := pixelRect(st.Plot)
	drawTextBox(img, lines, cols, plot.Max.X-6, plot.Min.Y+6)
}

// blank returns a frame filled with the background color.
func blank(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(bgColor), image.Point{}, draw.Src)
	return img
}

func pixelRect(r chartview.Rect) image.Rectangle {
	return image.Rect(
		int(math.Round(r.X)), int(math.Round(r.Y)),
		int(math.Round(r.Right())), int(math.Round(r.Bottom())),
	)
}

func toDrawing(c color.RGBA) drawing.Color {
	return drawing.Color{R: c.R, G: c.G, B: c.B, A: c.A}
}

func hline(img *image.RGBA, x0, x1, y int, c color.Color) {
	draw.Draw(img, image.Rect(x0, y, x1, y+1), image.NewUniform(c), image.Point{}, draw.Over)
}

func vline(img *image.RGBA, x, y0, y1 int, c color.Color) {
	draw.Draw(img, image.Rect(x, y0, x+1, y1), image.NewUniform(c), image.Point{}, draw.Over)
}

func strokeRect(img *image.RGBA, r image.Rectangle, c color.Color) {
	if r.Empty() {
		return
	}
	hline(img, r.Min.X, r.Max.X, r.Min.Y, c)
	hline(img, r.Min.X, r.Max.X, r.Max.Y-1, c)
	vline(img, r.Min.X, r.Min.Y, r.Max.Y, c)
	vline(img, r.Max.X-1, r.Min.Y, r.Max.Y, c)
}

package render

import (
	"bytes"
	"image"
	"image/png"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iafilius/MultiAxisChart/src/chartview"
)

func ramp(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = float64(i)
	}
	return out
}

func TestFrameDrawsAxesAndCursor(t *testing.T) {
	ch := chartview.New(chartview.WithSize(400, 300))
	require.NoError(t, ch.SetSeries(0, ramp(51), true, "ramp"))
	require.NoError(t, ch.SetSeries(1, []float64{5, 5, 5, 5}, true, "flat"))
	require.NoError(t, ch.SetCursor(0, 25))
	st := ch.Snapshot()

	img, err := Frame(st, DefaultOptions)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 400, 300), img.Bounds())
	assert.Equal(t, bgColor, img.RGBAAt(2, 2))

	plot := pixelRect(st.Plot)
	mid := plot.Min.Y + plot.Dy()/2
	assert.Equal(t, Palette[0], img.RGBAAt(int(math.Round(st.Axes[0].LineX)), mid))
	assert.Equal(t, Palette[1], img.RGBAAt(int(math.Round(st.Axes[1].LineX)), mid))

	c, ok := ch.Cursor(0)
	require.True(t, ok)
	cx := int(math.Round(st.Transform().IndexToPixelX(25, st.Plot, st.MaxPoints)))
	assert.Equal(t, c.Color, img.RGBAAt(cx, mid))
}

func TestFrameClipsSeriesToPlot(t *testing.T) {
	ch := chartview.New(chartview.WithSize(400, 300))
	require.NoError(t, ch.SetSeries(0, []float64{100, 100, 100}, true, "high"))
	ch.SetAxisRange(0, 0, 1)
	st := ch.Snapshot()

	img, err := Frame(st, Options{})
	require.NoError(t, err)
	plot := pixelRect(st.Plot)
	for _, x := range []int{plot.Min.X + 40, plot.Min.X + plot.Dx()/2, plot.Max.X - 10} {
		assert.Equal(t, bgColor, img.RGBAAt(x, plot.Min.Y-3), "x=%d", x)
	}
}

func TestFramePreview(t *testing.T) {
	ch := chartview.New(chartview.WithSize(400, 300))
	require.NoError(t, ch.SetSeries(0, ramp(10), true, "ramp"))
	plot, ok := ch.PlotRect()
	require.True(t, ok)
	require.True(t, ch.ArmRectZoom())
	start := chartview.Point{X: plot.X + 20, Y: plot.Y + 20}
	end := chartview.Point{X: plot.X + 120, Y: plot.Y + 90}
	ch.HandleEvent(chartview.Event{Type: chartview.EventDown, Button: chartview.ButtonSecondary, Pos: start})
	ch.HandleEvent(chartview.Event{Type: chartview.EventMove, Pos: end})
	st := ch.Snapshot()
	require.NotNil(t, st.Preview)

	img, err := Frame(st, Options{})
	require.NoError(t, err)
	sel := pixelRect(*st.Preview)
	assert.Equal(t, previewColor, img.RGBAAt(sel.Min.X+5, sel.Min.Y))
	assert.Equal(t, previewColor, img.RGBAAt(sel.Min.X, sel.Min.Y+5))
}

func TestFrameSmallAndEmpty(t *testing.T) {
	_, err := Frame(chartview.New().Snapshot(), DefaultOptions)
	assert.Error(t, err, "zero size")

	img, err := Frame(chartview.New(chartview.WithSize(8, 8)).Snapshot(), DefaultOptions)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 8, 8), img.Bounds())

	// no series at all still yields a framed plot
	empty := chartview.New(chartview.WithSize(300, 200)).Snapshot()
	img, err = Frame(empty, DefaultOptions)
	require.NoError(t, err)
	plot := pixelRect(empty.Plot)
	assert.Equal(t, plotColor, img.RGBAAt(plot.Min.X+plot.Dx()/2, plot.Min.Y+plot.Dy()/2))
}

func TestEncodePNG(t *testing.T) {
	ch := chartview.New(chartview.WithSize(320, 240))
	require.NoError(t, ch.SetSeries(0, []float64{1, math.NaN(), 3, 2}, true, "gappy"))
	data, err := EncodePNG(ch.Snapshot(), DefaultOptions)
	require.NoError(t, err)
	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 320, 240), img.Bounds())
}

func TestSegmentsSplitAtGaps(t *testing.T) {
	vals := []float64{1, math.NaN(), 2, 3, math.Inf(1), 4}
	segs := segments(vals, 0, 5)
	require.Len(t, segs, 3)
	assert.Equal(t, []float64{0, 0}, segs[0].xs)
	assert.Equal(t, []float64{2, 3}, segs[1].xs)
	assert.Equal(t, []float64{5, 5}, segs[2].xs)

	// the window can extend past a short series
	segs = segments([]float64{1, 2}, 0, 9)
	require.Len(t, segs, 1)
	assert.Equal(t, []float64{0, 1}, segs[0].xs)

	assert.Empty(t, segments([]float64{math.NaN()}, 0, 0))
}

func TestDrawLabelInClipsText(t *testing.T) {
	img := blank(100, 40)
	r := image.Rect(10, 10, 40, 26)
	drawLabelIn(img, "123456789012", r, textColor)
	// nothing spills to the right of the box
	for y := 0; y < 40; y++ {
		for x := 45; x < 100; x++ {
			require.Equal(t, bgColor, img.RGBAAt(x, y), "(%d,%d)", x, y)
		}
	}
}

func TestFrameWithRangeAtFloatSpacing(t *testing.T) {
	ch := chartview.New(chartview.WithSize(400, 300))
	require.NoError(t, ch.SetSeries(0, []float64{1e9, 1e9, 1e9}, true, "big"))
	ch.SetAxisRange(0, 1e9, 1e9)
	r, _ := ch.AxisRange(0)
	require.Equal(t, math.Nextafter(1e9, math.Inf(1)), r.Max)

	img, err := Frame(ch.Snapshot(), DefaultOptions)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 400, 300), img.Bounds())
}

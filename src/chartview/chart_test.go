package chartview

import (
	"math"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetSeriesInvalidSlot(t *testing.T) {
	redraws := 0
	ch := New(WithSize(800, 600), WithRedrawFunc(func() { redraws++ }))
	before := ch.Snapshot()

	for _, slot := range []int{-1, MaxSeries, 99} {
		err := ch.SetSeries(slot, []float64{1, 2, 3}, true, "x")
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrInvalidSlot), "slot %d: %v", slot, err)
	}
	assert.Equal(t, before, ch.Snapshot())
	assert.Zero(t, redraws)
}

func TestSetSeriesCopiesValues(t *testing.T) {
	ch := New(WithSize(800, 600))
	vals := []float64{1, 2, 3}
	require.NoError(t, ch.SetSeries(0, vals, true, "a"))
	vals[0] = 100
	s, ok := ch.Series(0)
	require.True(t, ok)
	assert.Equal(t, []float64{1, 2, 3}, s.Values)
	assert.Equal(t, "a", s.Name)
	assert.True(t, s.Enabled)
}

func TestSetSeriesAutoscalesOnlyDefaultRanges(t *testing.T) {
	ch := New(WithSize(800, 600))
	require.NoError(t, ch.SetSeries(0, []float64{0, 10}, true, "a"))
	r, _ := ch.AxisRange(0)
	assert.InDelta(t, -0.5, r.Min, 1e-12)
	assert.InDelta(t, 10.5, r.Max, 1e-12)

	// a fitted range is no longer the default one
	require.NoError(t, ch.SetSeries(0, []float64{100, 200}, true, "a"))
	r, _ = ch.AxisRange(0)
	assert.InDelta(t, -0.5, r.Min, 1e-12)

	require.NoError(t, ch.SetSeries(1, []float64{100, 200}, true, "b"))
	r, _ = ch.AxisRange(1)
	assert.InDelta(t, 95, r.Min, 1e-12)
	assert.InDelta(t, 205, r.Max, 1e-12)

	ch.SetAxisRange(0, -1, 1)
	require.NoError(t, ch.SetSeries(0, []float64{5, 6}, true, "a"))
	r, _ = ch.AxisRange(0)
	assert.Equal(t, AxisRange{Min: -1, Max: 1}, r, "user range survives new data")
}

func TestSetAxisRangeIgnoresInvalidSlot(t *testing.T) {
	ch := New(WithSize(800, 600))
	before := ch.Snapshot()
	ch.SetAxisRange(-1, 3, 4)
	ch.SetAxisRange(MaxSeries, 3, 4)
	assert.Equal(t, before, ch.Snapshot())

	ch.SetAxisRange(4, 9, 2)
	r, _ := ch.AxisRange(4)
	assert.Equal(t, AxisRange{Min: 2, Max: 9}, r)
}

func TestAutoScaleAll(t *testing.T) {
	ch := newTestChart(t)
	ch.SetAxisRange(0, 5, 6)
	ch.SetAxisRange(2, 5, 6)
	ch.HandleEvent(wheel(400, 200, 1))
	require.False(t, ch.Transform().IsIdentity())

	ch.AutoScaleAll()
	assert.True(t, ch.Transform().IsIdentity())
	r0, _ := ch.AxisRange(0)
	assert.InDelta(t, -50, r0.Min, 1e-9)
	assert.InDelta(t, 1050, r0.Max, 1e-9)
	r2, _ := ch.AxisRange(2)
	assert.Equal(t, AxisRange{Min: 5, Max: 6}, r2, "disabled axes keep their range")
}

func TestAutoScaleSingleSlot(t *testing.T) {
	ch := New(WithSize(800, 600))
	require.NoError(t, ch.SetSeries(3, []float64{0, 100}, false, "hidden"))
	ch.SetAxisRange(3, 1, 2)
	ch.AutoScale(3)
	r, _ := ch.AxisRange(3)
	assert.InDelta(t, -5, r.Min, 1e-12)
	assert.InDelta(t, 105, r.Max, 1e-12)

	before := ch.Snapshot()
	ch.AutoScale(MaxSeries)
	assert.Equal(t, before, ch.Snapshot())
}

func TestAutoScaleConstantAndEmptySeries(t *testing.T) {
	ch := New(WithSize(800, 600))
	require.NoError(t, ch.SetSeries(0, []float64{4, 4, 4}, true, "flat"))
	r, _ := ch.AxisRange(0)
	assert.Less(t, r.Min, 4.0)
	assert.Greater(t, r.Max, 4.0)

	require.NoError(t, ch.SetSeries(1, nil, true, "empty"))
	r, _ = ch.AxisRange(1)
	assert.Equal(t, DefaultAxisRange, r)
}

func TestApplyEditText(t *testing.T) {
	ch := newTestChart(t)
	ch.SetAxisRange(0, 0, 10)
	req := EditRequest{Slot: 0, Bound: BoundMax, Current: 10}

	for _, text := range []string{"", "abc", "1,5", "NaN", "inf"} {
		err := ch.ApplyEditText(req, text)
		require.Error(t, err, "text %q", text)
		assert.True(t, errors.Is(err, ErrInvalidNumber), "text %q: %v", text, err)
		r, _ := ch.AxisRange(0)
		assert.Equal(t, AxisRange{Min: 0, Max: 10}, r)
	}

	require.NoError(t, ch.ApplyEditText(req, " 25.5 "))
	r, _ := ch.AxisRange(0)
	assert.Equal(t, AxisRange{Min: 0, Max: 25.5}, r)

	// a max below min drags min below it
	require.NoError(t, ch.ApplyEditText(req, "-5"))
	r, _ = ch.AxisRange(0)
	assert.Equal(t, -5.0, r.Max)
	assert.Less(t, r.Min, r.Max)

	err := ch.ApplyEdit(EditRequest{Slot: 7}, 1)
	assert.True(t, errors.Is(err, ErrInvalidSlot))
}

func TestCursorsThroughChart(t *testing.T) {
	ch := newTestChart(t)
	require.True(t, ch.PlaceCursor(0, 550)) // middle of the plot
	c, _ := ch.Cursor(0)
	assert.Equal(t, 500, c.Index)
	assert.False(t, ch.PlaceCursor(0, 100), "left of the plot")

	readings, err := ch.CursorReadout(0)
	require.NoError(t, err)
	require.Len(t, readings, 2, "only enabled series")
	assert.Equal(t, Reading{Slot: 0, Name: "ramp", Index: 500, Value: 500, Valid: true}, readings[0])
	assert.Equal(t, 1, readings[1].Slot)
	assert.False(t, readings[1].Valid, "short series has no sample 500")

	require.NoError(t, ch.SetCursor(1, 5))
	readings, err = ch.CursorReadout(1)
	require.NoError(t, err)
	assert.Equal(t, 5.0, readings[1].Value)
	assert.True(t, readings[1].Valid)

	require.NoError(t, ch.ToggleCursor(1))
	assert.Len(t, ch.Snapshot().Cursors, 1)

	assert.True(t, errors.Is(ch.SetCursor(3, 1), ErrInvalidCursor))
	assert.True(t, errors.Is(ch.ToggleCursor(-1), ErrInvalidCursor))
	_, err = ch.CursorReadout(5)
	assert.True(t, errors.Is(err, ErrInvalidCursor))
}

func TestCursorReadoutSkipsNaN(t *testing.T) {
	ch := New(WithSize(800, 600))
	require.NoError(t, ch.SetSeries(0, []float64{1, math.NaN(), 3}, true, "gappy"))
	require.NoError(t, ch.SetCursor(0, 1))
	readings, err := ch.CursorReadout(0)
	require.NoError(t, err)
	require.Len(t, readings, 1)
	assert.False(t, readings[0].Valid)
}

func TestCursorIndexClampedWhenSeriesShrinks(t *testing.T) {
	ch := newTestChart(t)
	require.NoError(t, ch.SetCursor(0, 900))
	require.NoError(t, ch.SetSeries(0, []float64{1, 2, 3}, true, "ramp"))
	c, _ := ch.Cursor(0)
	assert.Equal(t, 10, c.Index, "slot 1 still holds 11 samples")
}

func TestSetEnabledUpdatesHitRegions(t *testing.T) {
	ch := newTestChart(t)
	assert.Len(t, ch.HitRegions(), 4)
	require.NoError(t, ch.SetEnabled(2, true))
	assert.Len(t, ch.HitRegions(), 6)
	require.NoError(t, ch.SetEnabled(0, false))
	assert.Len(t, ch.HitRegions(), 4)
	assert.Equal(t, 11, ch.MaxPoints(), "longest enabled series is slot 1")
	assert.True(t, errors.Is(ch.SetEnabled(9, true), ErrInvalidSlot))
}

func TestRedrawCallback(t *testing.T) {
	redraws := 0
	ch := newTestChart(t, WithRedrawFunc(func() { redraws++ }))
	start := redraws
	ch.HandleEvent(wheel(500, 200, 1))
	assert.Equal(t, start+1, redraws)
	ch.HandleEvent(move(500, 200)) // idle move
	assert.Equal(t, start+1, redraws)
	ch.ResetView()
	assert.Equal(t, start+2, redraws)
	ch.CancelGesture() // nothing to cancel
	assert.Equal(t, start+2, redraws)
}

func TestSnapshotAxesAndResize(t *testing.T) {
	ch := newTestChart(t)
	st := ch.Snapshot()
	assert.True(t, st.PlotValid)
	assert.Equal(t, 1001, st.MaxPoints)
	assert.Equal(t, ModeIdle, st.Mode)
	assert.True(t, st.Axes[0].Visible)
	assert.Equal(t, 200.0, st.Axes[0].LineX)
	assert.True(t, st.Axes[1].Visible)
	assert.Equal(t, 200-AxisSpacing, st.Axes[1].LineX)
	assert.False(t, st.Axes[2].Visible)
	assert.True(t, st.Transform().IsIdentity())

	ch.Resize(2000, 1000)
	st = ch.Snapshot()
	assert.Equal(t, Rect{X: 400, Y: 100, W: 1400, H: 800}, st.Plot)
	assert.Equal(t, Size{W: 2000, H: 1000}, ch.Size())

	ch.SetArea(Area{X: 0.5, Y: 0.5, W: 0.5, H: 0.5})
	plot, ok := ch.PlotRect()
	require.True(t, ok)
	assert.Equal(t, Rect{X: 1000, Y: 500, W: 1000, H: 500}, plot)
}

func TestNewDefaults(t *testing.T) {
	ch := New()
	_, ok := ch.PlotRect()
	assert.False(t, ok, "zero size has no plot")
	assert.Empty(t, ch.HitRegions())
	assert.Zero(t, ch.MaxPoints())
	for slot := 0; slot < MaxSeries; slot++ {
		r, _ := ch.AxisRange(slot)
		assert.Equal(t, DefaultAxisRange, r)
	}
	_, ok = ch.Series(MaxSeries)
	assert.False(t, ok)
}

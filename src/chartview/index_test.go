package chartview

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNearestIndexIdentity(t *testing.T) {
	plot := Rect{X: 100, Y: 0, W: 800, H: 300}
	tr := NewTransform()
	cases := []struct {
		px   float64
		want int
	}{
		{100, 0},
		{900, 1000},
		{500, 500},
		{100.39, 0}, // 0.39 px is under half a sample (0.4 px per sample)
		{100.41, 1},
		{50, 0},      // left of the plot clamps
		{2000, 1000}, // right of the plot clamps
	}
	for _, c := range cases {
		assert.Equal(t, c.want, tr.NearestIndex(c.px, plot, 1001), "px=%v", c.px)
	}
}

func TestNearestIndexShortSeries(t *testing.T) {
	plot := Rect{X: 0, Y: 0, W: 500, H: 300}
	tr := NewTransform()
	assert.Equal(t, 0, tr.NearestIndex(400, plot, 0))
	assert.Equal(t, 0, tr.NearestIndex(400, plot, 1))
	assert.Equal(t, 1, tr.NearestIndex(400, plot, 2))
	assert.Equal(t, 0, tr.NearestIndex(400, Rect{}, 50))
}

func TestNearestIndexZoomed(t *testing.T) {
	plot := Rect{X: 100, Y: 0, W: 800, H: 300}
	tr := Transform{panX: 0.25, zoomX: 2}
	assert.Equal(t, 250, tr.NearestIndex(100, plot, 1001))
	assert.Equal(t, 750, tr.NearestIndex(900, plot, 1001))
	assert.Equal(t, 500, tr.NearestIndex(500, plot, 1001))
}

func TestNearestIndexMonotonic(t *testing.T) {
	plot := Rect{X: 37, Y: 0, W: 613, H: 300}
	transforms := []Transform{
		NewTransform(),
		{panX: 0.1, zoomX: 3.3},
		{panX: -0.5, zoomX: 100},
		{panX: 0.9, zoomX: 1.5},
	}
	for _, tr := range transforms {
		for _, n := range []int{2, 7, 1000, 123457} {
			prev := -1
			for px := -50.0; px < 800; px += 0.37 {
				idx := tr.NearestIndex(px, plot, n)
				require.GreaterOrEqual(t, idx, prev, "transform %+v n=%d px=%v", tr, n, px)
				require.GreaterOrEqual(t, idx, 0)
				require.Less(t, idx, n)
				prev = idx
			}
		}
	}
}

func TestIndexToPixelXRoundTrip(t *testing.T) {
	plot := Rect{X: 80, Y: 0, W: 900, H: 300}
	tr := Transform{panX: 0.2, zoomX: 4}
	first, last, ok := tr.VisibleIndexRange(401)
	require.True(t, ok)
	for idx := first; idx <= last; idx++ {
		px := tr.IndexToPixelX(idx, plot, 401)
		assert.Equal(t, idx, tr.NearestIndex(px, plot, 401))
	}
	assert.Equal(t, plot.X, tr.IndexToPixelX(0, plot, 1))
}

func TestVisibleIndexRange(t *testing.T) {
	first, last, ok := NewTransform().VisibleIndexRange(101)
	require.True(t, ok)
	assert.Equal(t, 0, first)
	assert.Equal(t, 100, last)

	first, last, ok = Transform{panX: 0.25, zoomX: 2}.VisibleIndexRange(101)
	require.True(t, ok)
	assert.Equal(t, 24, first)
	assert.Equal(t, 76, last)

	first, last, ok = Transform{panX: -0.5, zoomX: 2}.VisibleIndexRange(101)
	require.True(t, ok)
	assert.Equal(t, 0, first)
	assert.Equal(t, 1, last)

	_, _, ok = NewTransform().VisibleIndexRange(0)
	assert.False(t, ok)

	first, last, ok = NewTransform().VisibleIndexRange(1)
	require.True(t, ok)
	assert.Equal(t, 0, first)
	assert.Equal(t, 0, last)
}

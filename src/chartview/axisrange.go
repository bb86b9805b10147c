package chartview

import (
	"math"

	"github.com/iafilius/MultiAxisChart/src/logging"
)

const (
	// MaxSeries is the fixed number of series / axis slots.
	MaxSeries = 5

	// degenerateEps widens a range whose bounds coincide.
	degenerateEps = 1e-9
	// editEps is the gap kept between bounds when an edit would invert them.
	editEps = 1e-6
	// autoscalePadPct is the padding added on both ends by Autoscale.
	autoscalePadPct = 0.05
)

// AxisRange is the visible value range of one vertical axis. Min < Max holds
// for every range handed out by AxisRangeStore.
type AxisRange struct {
	Min, Max float64
}

// DefaultAxisRange is the range of a slot that has never been scaled.
var DefaultAxisRange = AxisRange{Min: 0, Max: 1}

// Span returns Max-Min.
func (r AxisRange) Span() float64 { return r.Max - r.Min }

// ValueAt maps a fraction measured from the bottom of the plot to a value.
func (r AxisRange) ValueAt(fracFromBottom float64) float64 {
	if s := r.Span(); !math.IsInf(s, 0) {
		return r.Min + fracFromBottom*s
	}
	// Max-Min overflows near the float limits; work on half values
	return 2 * (r.Min/2 + fracFromBottom*(r.Max/2-r.Min/2))
}

// FractionOf maps a value to its fraction from the bottom of the plot.
func (r AxisRange) FractionOf(v float64) float64 {
	s := r.Span()
	if s == 0 {
		return 0
	}
	if math.IsInf(s, 0) {
		return (v/2 - r.Min/2) / (r.Max/2 - r.Min/2)
	}
	return (v - r.Min) / s
}

// AxisRangeStore holds one range per series slot.
// Out-of-range slots are ignored by every mutator.
type AxisRangeStore struct {
	ranges   [MaxSeries]AxisRange
	explicit [MaxSeries]bool
}

// NewAxisRangeStore returns a store with every slot at DefaultAxisRange.
func NewAxisRangeStore() *AxisRangeStore {
	s := &AxisRangeStore{}
	for i := range s.ranges {
		s.ranges[i] = DefaultAxisRange
	}
	return s
}

func validSlot(slot int) bool { return slot >= 0 && slot < MaxSeries }

// Range returns the range of slot; ok is false for an invalid slot.
func (s *AxisRangeStore) Range(slot int) (AxisRange, bool) {
	if !validSlot(slot) {
		return AxisRange{}, false
	}
	return s.ranges[slot], true
}

// All returns a copy of every range.
func (s *AxisRangeStore) All() [MaxSeries]AxisRange { return s.ranges }

// IsDefault reports whether slot has never been set, edited or scaled.
func (s *AxisRangeStore) IsDefault(slot int) bool {
	return validSlot(slot) && !s.explicit[slot]
}

// Reset puts slot back to DefaultAxisRange.
func (s *AxisRangeStore) Reset(slot int) {
	if !validSlot(slot) {
		return
	}
	s.ranges[slot] = DefaultAxisRange
	s.explicit[slot] = false
}

// SetRange replaces the range of slot. Equal bounds are widened by 1e-9,
// swapped bounds are put in order and non-finite input is ignored.
func (s *AxisRangeStore) SetRange(slot int, min, max float64) {
	if !validSlot(slot) {
		return
	}
	if !finite(min) || !finite(max) {
		logging.Debugf("axis %d: ignoring non-finite range (%v, %v)", slot, min, max)
		return
	}
	if min > max {
		min, max = max, min
	}
	if min == max {
		max = min + degenerateEps
	}
	s.ranges[slot] = ordered(AxisRange{Min: min, Max: max})
	s.explicit[slot] = true
}

// Autoscale fits slot to data with 5% padding. Empty data (or data without a
// single finite sample) leaves the range untouched.
func (s *AxisRangeStore) Autoscale(slot int, data []float64) {
	if !validSlot(slot) {
		return
	}
	min, max, ok := finiteMinMax(data)
	if !ok {
		return
	}
	pad := (max - min) * autoscalePadPct
	if !finite(max-min) || !finite(min-pad) || !finite(max+pad) {
		// padding would leave the float range; fit the data as is
		pad = 0
	}
	if math.Abs(max-min) < degenerateEps {
		max = min + 1
		pad = 0.1
	}
	s.ranges[slot] = ordered(AxisRange{Min: min - pad, Max: max + pad})
	s.explicit[slot] = true
}

// ShiftBySpanFraction moves both bounds by frac times the current span.
func (s *AxisRangeStore) ShiftBySpanFraction(slot int, frac float64) {
	if !validSlot(slot) || !finite(frac) {
		return
	}
	r := s.ranges[slot]
	delta := frac * r.Span()
	if math.IsInf(r.Span(), 0) {
		delta = 2 * (frac * (r.Max/2 - r.Min/2))
	}
	next := AxisRange{Min: r.Min + delta, Max: r.Max + delta}
	if !finite(next.Min) || !finite(next.Max) {
		logging.Debugf("axis %d: shift by %v leaves the float range", slot, frac)
		return
	}
	s.ranges[slot] = ordered(next)
	s.explicit[slot] = true
}

// EditMin sets the lower bound. When v would reach or pass the upper bound,
// the upper bound is pushed to v+1e-6.
func (s *AxisRangeStore) EditMin(slot int, v float64) {
	if !validSlot(slot) || !finite(v) {
		return
	}
	r := s.ranges[slot]
	r.Min = v
	if v >= r.Max {
		r.Max = v + editEps
	}
	s.ranges[slot] = ordered(r)
	s.explicit[slot] = true
}

// EditMax sets the upper bound. When v would reach or pass the lower bound,
// the lower bound is pushed to v-1e-6.
func (s *AxisRangeStore) EditMax(slot int, v float64) {
	if !validSlot(slot) || !finite(v) {
		return
	}
	r := s.ranges[slot]
	r.Max = v
	if v <= r.Min {
		r.Min = v - editEps
	}
	s.ranges[slot] = ordered(r)
	s.explicit[slot] = true
}

// Edit dispatches to EditMin or EditMax.
func (s *AxisRangeStore) Edit(slot int, b Bound, v float64) {
	if b == BoundMax {
		s.EditMax(slot, v)
		return
	}
	s.EditMin(slot, v)
}

// ordered restores Min < Max when an epsilon was lost to float rounding at
// large magnitudes.
func ordered(r AxisRange) AxisRange {
	if r.Min < r.Max {
		return r
	}
	r.Max = math.Nextafter(r.Min, math.Inf(1))
	return r
}

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }

// finiteMinMax returns the extrema of data ignoring NaN and ±Inf samples.
func finiteMinMax(data []float64) (float64, float64, bool) {
	min, max := math.Inf(1), math.Inf(-1)
	seen := false
	for _, v := range data {
		if !finite(v) {
			continue
		}
		seen = true
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	return min, max, seen
}

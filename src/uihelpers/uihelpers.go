// Package uihelpers holds tick and label helpers shared by the renderer and
// the viewer.
package uihelpers

import (
	"math"
	"strconv"
)

// BuildIndexTicks returns up to about n sample indices between first and last
// (inclusive) on a 1,2,2.5,5 * 10^k step, for vertical gridlines.
// Steps below one sample are rounded up so every tick is a whole index.
func BuildIndexTicks(first, last, n int) []int {
	if n < 2 || last < first {
		return nil
	}
	if last == first {
		return []int{first}
	}
	span := float64(last - first)
	rawStep := span / float64(n-1)
	mag := pow10Floor(rawStep)
	norm := rawStep / mag
	var step float64
	switch {
	case norm <= 1:
		step = 1 * mag
	case norm <= 2:
		step = 2 * mag
	case norm <= 2.5:
		step = 2.5 * mag
	case norm <= 5:
		step = 5 * mag
	default:
		step = 10 * mag
	}
	if step < 1 {
		step = 1
	}
	var out []int
	start := math.Ceil(float64(first)/step) * step
	for v := start; v <= float64(last); v += step {
		idx := int(math.Round(v))
		if len(out) > 0 && out[len(out)-1] == idx {
			continue
		}
		out = append(out, idx)
	}
	return out
}

// pow10Floor returns 10^floor(log10(x)) safeguarding tiny values.
func pow10Floor(x float64) float64 {
	if x <= 0 {
		return 1
	}
	e := float64(int64(math.Floor(math.Log10(x))))
	return math.Pow(10, e)
}

// round6 rounds to 6 decimal places to stabilize test comparisons / labels prep.
// Magnitudes where that would overflow or lose the value are returned as is.
func round6(v float64) float64 {
	if math.Abs(v) >= 1e12 {
		return v
	}
	return math.Round(v*1e6) / 1e6
}

// maxNumericTicks bounds BuildNumericTicks output.
const maxNumericTicks = 64

// BuildNumericTicks generates up to n tick marks spanning [min,max] using the 1,2,2.5,5 pattern.
// Returns slice of raw numeric positions (label formatting left to caller).
func BuildNumericTicks(min, max float64, n int) []float64 {
	if n < 2 || math.IsNaN(min) || math.IsNaN(max) || math.IsInf(min, 0) || math.IsInf(max, 0) {
		return nil
	}
	if max <= min {
		max = min + 1
	}
	span := max - min
	if !(span > 0) || math.IsInf(span, 0) {
		return []float64{min, max}
	}
	mag := math.Pow(10, math.Floor(math.Log10(span/float64(n-1))))
	candidates := []float64{1, 2, 2.5, 5, 10}
	bestStep := mag
	bestScore := math.MaxFloat64
	for _, c := range candidates {
		step := c * mag
		count := math.Ceil(span/step) + 1
		if count < 2 {
			count = 2
		}
		diff := math.Abs(count - float64(n))
		if diff < bestScore {
			bestScore = diff
			bestStep = step
		}
	}
	start := math.Floor(min/bestStep) * bestStep
	end := math.Ceil(max/bestStep) * bestStep
	// a step below the float spacing at this magnitude cannot advance
	width := end - start
	if !(bestStep > 0) || start+bestStep == start || math.IsNaN(width) || math.IsInf(width, 0) {
		return []float64{min, max}
	}
	kf := math.Round(width / bestStep)
	if kf < 1 || kf > maxNumericTicks {
		return []float64{min, max}
	}
	k := int(kf)
	out := make([]float64, 0, k+1)
	for i := 0; i <= k; i++ {
		out = append(out, round6(start+float64(i)*bestStep))
	}
	return out
}

// InsideTicks keeps the ticks within [min,max].
func InsideTicks(ticks []float64, min, max float64) []float64 {
	out := ticks[:0:0]
	for _, v := range ticks {
		if v >= min && v <= max {
			out = append(out, v)
		}
	}
	return out
}

// FormatNumericTick provides a compact label for axis bounds and readouts.
func FormatNumericTick(v float64) string {
	av := math.Abs(v)
	switch {
	case math.IsNaN(v):
		return "-"
	case av >= 1e6:
		return strconv.FormatFloat(v, 'g', 4, 64)
	case av >= 100:
		return strconv.FormatInt(int64(math.Round(v)), 10)
	case av >= 10:
		return strconv.FormatFloat(v, 'f', 1, 64)
	case av >= 1:
		return strconv.FormatFloat(v, 'f', 2, 64)
	case av >= 0.01:
		return strconv.FormatFloat(v, 'f', 3, 64)
	case av == 0:
		return "0"
	case av < 1e-4:
		return strconv.FormatFloat(v, 'g', 3, 64)
	default:
		return strconv.FormatFloat(v, 'f', 4, 64)
	}
}

// TruncateLabel shortens s to at most n runes with a trailing ellipsis.
func TruncateLabel(s string, n int) string {
	r := []rune(s)
	if n <= 0 || len(r) <= n {
		return s
	}
	if n == 1 {
		return string(r[:1])
	}
	return string(r[:n-1]) + "…"
}

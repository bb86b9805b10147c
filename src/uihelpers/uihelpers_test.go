package uihelpers

import (
	"math"
	"testing"
	"time"
)

func TestBuildIndexTicks(t *testing.T) {
	full := BuildIndexTicks(0, 1000, 6)
	want := []int{0, 200, 400, 600, 800, 1000}
	if len(full) != len(want) {
		t.Fatalf("ticks %v want %v", full, want)
	}
	for i := range want {
		if full[i] != want[i] {
			t.Fatalf("ticks %v want %v", full, want)
		}
	}

	zoomed := BuildIndexTicks(24, 76, 5)
	if len(zoomed) != 2 || zoomed[0] != 40 || zoomed[1] != 60 {
		t.Fatalf("zoomed ticks %v want [40 60]", zoomed)
	}

	// a handful of samples never yields fractional or repeated indices
	few := BuildIndexTicks(0, 3, 10)
	if len(few) != 4 {
		t.Fatalf("few ticks %v want [0 1 2 3]", few)
	}
	for i, v := range few {
		if v != i {
			t.Fatalf("few ticks %v want [0 1 2 3]", few)
		}
	}

	if single := BuildIndexTicks(7, 7, 5); len(single) != 1 || single[0] != 7 {
		t.Fatalf("single ticks %v", single)
	}
	if got := BuildIndexTicks(5, 1, 5); got != nil {
		t.Fatalf("inverted range should be nil got %v", got)
	}
	if got := BuildIndexTicks(0, 10, 1); got != nil {
		t.Fatalf("n<2 should be nil got %v", got)
	}
}

func TestBuildNumericTicksAndFormat(t *testing.T) {
	cases := []struct {
		min, max float64
		n        int
	}{
		{0, 100, 6},
		{0, 1, 5},
		{5, 5.2, 4},
		{-10, 10, 7},
		{-1e9, 3e9, 5},
	}
	for _, c := range cases {
		vals := BuildNumericTicks(c.min, c.max, c.n)
		if len(vals) < 2 {
			t.Fatalf("expected >=2 ticks for %#v got %v", c, vals)
		}
		if vals[0] > c.min && math.Abs(vals[0]-c.min) > 1e-6 { // allow start below min but not above
			t.Fatalf("first tick %v should not exceed min %v", vals[0], c.min)
		}
		if last := vals[len(vals)-1]; last < c.max && math.Abs(last-c.max) > 1e-6 { // allow end above max but not below
			t.Fatalf("last tick %v should not be below max %v (vals=%v)", last, c.max, vals)
		}
		inside := InsideTicks(vals, c.min, c.max)
		for _, v := range inside {
			if v < c.min || v > c.max {
				t.Fatalf("inside tick %v outside [%v,%v]", v, c.min, c.max)
			}
		}
	}
	if got := BuildNumericTicks(math.Inf(-1), 1, 5); got != nil {
		t.Fatalf("infinite bound should yield nil got %v", got)
	}

	formats := []struct {
		in   float64
		want string
	}{
		{123.4, "123"},
		{12.34, "12.3"},
		{1.234, "1.23"},
		{0.1234, "0.123"},
		{0.001234, "0.0012"},
		{0, "0"},
		{-250.6, "-251"},
		{2.5e7, "2.5e+07"},
		{math.NaN(), "-"},
	}
	for _, f := range formats {
		if got := FormatNumericTick(f.in); got != f.want {
			t.Fatalf("format %v => %q want %q", f.in, got, f.want)
		}
	}
}

func TestTruncateLabel(t *testing.T) {
	if got := TruncateLabel("Temperature", 6); got != "Tempe…" {
		t.Fatalf("truncate => %q", got)
	}
	if got := TruncateLabel("Flow", 6); got != "Flow" {
		t.Fatalf("short label changed => %q", got)
	}
	if got := TruncateLabel("Flow", 0); got != "Flow" {
		t.Fatalf("n=0 should keep label => %q", got)
	}
}

func TestBuildNumericTicksBelowFloatSpacing(t *testing.T) {
	cases := []struct{ min, max float64 }{
		{1e9, math.Nextafter(1e9, math.Inf(1))},
		{1e17, 1e17},
		{-1e15, math.Nextafter(-1e15, math.Inf(1))},
		{-1e308, 1e308},
		{0, math.MaxFloat64},
	}
	for _, c := range cases {
		done := make(chan []float64, 1)
		go func() { done <- BuildNumericTicks(c.min, c.max, 6) }()
		select {
		case vals := <-done:
			if len(vals) < 2 || len(vals) > maxNumericTicks+1 {
				t.Fatalf("range [%v,%v]: ticks %v", c.min, c.max, vals)
			}
			for _, v := range vals {
				if math.IsNaN(v) || math.IsInf(v, 0) {
					t.Fatalf("range [%v,%v]: non-finite tick in %v", c.min, c.max, vals)
				}
			}
		case <-time.After(3 * time.Second):
			t.Fatalf("range [%v,%v]: BuildNumericTicks did not return", c.min, c.max)
		}
	}
}

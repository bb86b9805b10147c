package chartview

import (
	"fmt"
	"image/color"
)

// MaxCursors is the fixed number of read-out cursors.
const MaxCursors = 3

// Cursor is a vertical read-out marker bound to a sample index.
type Cursor struct {
	Enabled bool
	Index   int
	Color   color.RGBA
	Name    string
}

var defaultCursorColors = [MaxCursors]color.RGBA{
	{R: 255, G: 196, B: 0, A: 255},
	{R: 0, G: 200, B: 255, A: 255},
	{R: 255, G: 64, B: 160, A: 255},
}

// CursorSet holds the three cursors. Cursors only move when placed explicitly.
type CursorSet struct {
	cursors [MaxCursors]Cursor
}

// NewCursorSet returns three disabled cursors named C1..C3 at index 0.
func NewCursorSet() *CursorSet {
	cs := &CursorSet{}
	for i := range cs.cursors {
		cs.cursors[i] = Cursor{Name: fmt.Sprintf("C%d", i+1), Color: defaultCursorColors[i]}
	}
	return cs
}

func validCursor(i int) bool { return i >= 0 && i < MaxCursors }

// Cursor returns cursor i; ok is false for an invalid index.
func (cs *CursorSet) Cursor(i int) (Cursor, bool) {
	if !validCursor(i) {
		return Cursor{}, false
	}
	return cs.cursors[i], true
}

// All returns a copy of every cursor, enabled or not.
func (cs *CursorSet) All() [MaxCursors]Cursor { return cs.cursors }

// Enabled returns the enabled cursors in slot order.
func (cs *CursorSet) Enabled() []Cursor {
	var out []Cursor
	for _, c := range cs.cursors {
		if c.Enabled {
			out = append(out, c)
		}
	}
	return out
}

// PlaceNearest snaps cursor i to the sample nearest pixelX and enables it.
// Nothing happens unless the series has at least two points and pixelX lies
// within the plot.
func (cs *CursorSet) PlaceNearest(i int, pixelX float64, plot Rect, maxPoints int, t Transform) bool {
	if !validCursor(i) || maxPoints <= 1 || !plot.ContainsX(pixelX) {
		return false
	}
	cs.cursors[i].Index = t.NearestIndex(pixelX, plot, maxPoints)
	cs.cursors[i].Enabled = true
	return true
}

// Set places cursor i at idx clamped to the series length and enables it.
func (cs *CursorSet) Set(i, idx, maxPoints int) bool {
	if !validCursor(i) {
		return false
	}
	if maxPoints < 1 {
		idx = 0
	} else {
		idx = clampInt(idx, 0, maxPoints-1)
	}
	cs.cursors[i].Index = idx
	cs.cursors[i].Enabled = true
	return true
}

// Toggle flips cursor i on or off. The index is kept either way.
func (cs *CursorSet) Toggle(i int) bool {
	if !validCursor(i) {
		return false
	}
	cs.cursors[i].Enabled = !cs.cursors[i].Enabled
	return true
}

// SetStyle renames and recolors cursor i.
func (cs *CursorSet) SetStyle(i int, name string, col color.RGBA) bool {
	if !validCursor(i) {
		return false
	}
	if name != "" {
		cs.cursors[i].Name = name
	}
	cs.cursors[i].Color = col
	return true
}

// ClampTo pulls every cursor index back into [0, maxPoints-1] after the
// series data changed length.
func (cs *CursorSet) ClampTo(maxPoints int) {
	hi := maxPoints - 1
	if hi < 0 {
		hi = 0
	}
	for i := range cs.cursors {
		cs.cursors[i].Index = clampInt(cs.cursors[i].Index, 0, hi)
	}
}

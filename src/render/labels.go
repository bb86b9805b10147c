package render

import (
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

var (
	textColor   = color.RGBA{R: 235, G: 235, B: 235, A: 255}
	shadowColor = color.RGBA{R: 0, G: 0, B: 0, A: 180}
	labelBG     = color.RGBA{R: 0, G: 0, B: 0, A: 170}
)

var face = basicfont.Face7x13

// textHeight is the line advance of face.
const textHeight = 13

// textWidth measures s in pixels.
func textWidth(s string) int {
	d := &font.Drawer{Face: face}
	return d.MeasureString(s).Ceil()
}

// drawText draws s with its baseline at (x, y) over a one pixel shadow.
func drawText(img *image.RGBA, s string, x, y int, c color.Color) {
	if s == "" {
		return
	}
	sh := &font.Drawer{Dst: img, Src: image.NewUniform(shadowColor), Face: face, Dot: fixed.P(x+1, y+1)}
	sh.DrawString(s)
	d := &font.Drawer{Dst: img, Src: image.NewUniform(c), Face: face, Dot: fixed.P(x, y)}
	d.DrawString(s)
}

func drawTextCentered(img *image.RGBA, s string, cx, y int, c color.Color) {
	drawText(img, s, cx-textWidth(s)/2, y, c)
}

// drawLabelIn centers s inside r, clipping the text to r's width.
func drawLabelIn(img *image.RGBA, s string, r image.Rectangle, c color.Color) {
	for len(s) > 1 && textWidth(s) > r.Dx()-2 {
		s = s[:len(s)-1]
	}
	asc := face.Metrics().Ascent.Ceil()
	x := r.Min.X + (r.Dx()-textWidth(s))/2
	y := r.Min.Y + (r.Dy()+asc)/2 - 1
	drawText(img, s, x, y, c)
}

// drawTextBox draws lines in a dark box whose top right corner is (right, top).
func drawTextBox(img *image.RGBA, lines []string, cols []color.RGBA, right, top int) {
	const pad = 6
	w := 0
	for _, l := range lines {
		if tw := textWidth(l); tw > w {
			w = tw
		}
	}
	box := image.Rect(right-w-2*pad, top, right, top+len(lines)*textHeight+2*pad)
	draw.Draw(img, box, image.NewUniform(labelBG), image.Point{}, draw.Over)
	asc := face.Metrics().Ascent.Ceil()
	for i, l := range lines {
		c := color.Color(textColor)
		if i < len(cols) {
			c = cols[i]
		}
		drawText(img, l, box.Min.X+pad, box.Min.Y+pad+asc+i*textHeight, c)
	}
}

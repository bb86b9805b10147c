package main

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/iafilius/MultiAxisChart/src/chartview"
	"github.com/iafilius/MultiAxisChart/src/config"
	"github.com/iafilius/MultiAxisChart/src/dataset"
	"github.com/iafilius/MultiAxisChart/src/logging"
	"github.com/iafilius/MultiAxisChart/src/render"
)

// ShotOptions selects the view of the zoomed screenshot.
type ShotOptions struct {
	// Zoom is the horizontal zoom to reach with wheel steps.
	Zoom float64
	// Center is the plot fraction the wheel events are anchored at.
	Center float64
}

// RunScreenshots renders a curated set of views of cols and writes them as
// PNGs under outDir. It runs headlessly without creating a UI window and
// drives the chart through the same events the viewer feeds it.
func RunScreenshots(cfg config.Config, cols []dataset.Column, outDir string, so ShotOptions) ([]string, error) {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return nil, errors.Wrap(err, "create out dir")
	}
	ch := chartview.New(
		chartview.WithSize(float64(cfg.Width), float64(cfg.Height)),
		chartview.WithArea(cfg.Area),
	)
	if err := dataset.Apply(ch, cols); err != nil {
		return nil, err
	}
	plot, ok := ch.PlotRect()
	if !ok {
		return nil, errors.Errorf("plot area of a %dx%d image is too small", cfg.Width, cfg.Height)
	}
	at := func(fx, fy float64) chartview.Point {
		return chartview.Point{X: plot.X + fx*plot.W, Y: plot.Y + fy*plot.H}
	}

	toRender := []struct {
		name  string
		title string
		setup func()
	}{
		{"overview.png", "Overview", func() {}},
		{"zoomed.png", "Wheel zoom", func() { wheelZoomTo(ch, plot, so) }},
		{"cursors.png", "Cursors", func() {
			ch.ResetView()
			for i, fx := range []float64{0.25, 0.5, 0.75} {
				ch.PlaceCursor(i, at(fx, 0).X)
			}
		}},
		{"rect_select.png", "Rectangle selection", func() {
			ch.ArmRectZoom()
			ch.HandleEvent(chartview.Event{Type: chartview.EventDown, Button: chartview.ButtonSecondary, Pos: at(0.3, 0.2)})
			ch.HandleEvent(chartview.Event{Type: chartview.EventMove, Pos: at(0.6, 0.7)})
		}},
		{"rect_zoomed.png", "Rectangle zoom applied", func() {
			ch.HandleEvent(chartview.Event{Type: chartview.EventUp, Button: chartview.ButtonSecondary, Pos: at(0.6, 0.7)})
		}},
	}

	paths := make([]string, 0, len(toRender))
	for _, item := range toRender {
		item.setup()
		opt := render.DefaultOptions
		opt.Title = item.title
		data, err := render.EncodePNG(ch.Snapshot(), opt)
		if err != nil {
			return paths, errors.Wrapf(err, "render %s", item.name)
		}
		outPath := filepath.Join(outDir, item.name)
		if err := os.WriteFile(outPath, data, 0o644); err != nil {
			return paths, errors.Wrapf(err, "write %s", outPath)
		}
		logging.Debugf("screenshot %s: zoom=%.3f pan=%.3f", outPath, ch.Transform().ZoomX(), ch.Transform().PanX())
		paths = append(paths, outPath)
	}
	return paths, nil
}

// wheelZoomTo sends zoom-in wheel steps at the requested plot fraction until
// the requested zoom is reached or the zoom limit stops progress.
func wheelZoomTo(ch *chartview.Chart, plot chartview.Rect, so ShotOptions) {
	center := so.Center
	if center < 0 || center > 1 {
		center = 0.5
	}
	pos := chartview.Point{X: plot.X + center*plot.W, Y: plot.Y + plot.H/2}
	for i := 0; i < 200 && ch.Transform().ZoomX() < so.Zoom; i++ {
		res := ch.HandleEvent(chartview.Event{Type: chartview.EventWheel, Pos: pos, WheelDelta: 1})
		if !res.Redraw {
			break
		}
	}
}

package main

import (
	"fmt"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	fyne "fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/pkg/errors"

	"github.com/iafilius/MultiAxisChart/src/chartview"
	"github.com/iafilius/MultiAxisChart/src/config"
	"github.com/iafilius/MultiAxisChart/src/dataset"
	"github.com/iafilius/MultiAxisChart/src/logging"
	"github.com/iafilius/MultiAxisChart/src/render"
	"github.com/iafilius/MultiAxisChart/src/uihelpers"
)

type uiState struct {
	app    fyne.App
	window fyne.Window
	cfg    config.Config

	filePath string
	// loadSeq numbers load requests; older results are dropped.
	loadSeq int
	// enabled is the per-slot visibility restored from preferences.
	enabled [chartview.MaxSeries]bool

	view         *chartWidget
	seriesChecks [chartview.MaxSeries]*widget.Check
	crosshairChk *widget.Check
	fileLabel    *widget.Label
	statusLabel  *widget.Label
}

// dark theme wrapper
type darkTheme struct{}

func (d *darkTheme) Color(name fyne.ThemeColorName, variant fyne.ThemeVariant) color.Color {
	return theme.DefaultTheme().Color(name, theme.VariantDark)
}
func (d *darkTheme) Font(style fyne.TextStyle) fyne.Resource { return theme.DefaultTheme().Font(style) }
func (d *darkTheme) Icon(name fyne.ThemeIconName) fyne.Resource {
	return theme.DefaultTheme().Icon(name)
}
func (d *darkTheme) Size(name fyne.ThemeSizeName) float32 { return theme.DefaultTheme().Size(name) }

func runViewer(cfg config.Config) error {
	a := app.NewWithID("com.multiaxischart.viewer")
	a.Settings().SetTheme(&darkTheme{})
	w := a.NewWindow("Multi-Axis Chart")
	w.Resize(fyne.NewSize(float32(cfg.Width), float32(cfg.Height)))

	state := &uiState{app: a, window: w, cfg: cfg, filePath: cfg.DataFile}
	for i := range state.enabled {
		state.enabled[i] = true
	}
	state.fileLabel = widget.NewLabel("")
	state.statusLabel = widget.NewLabel("")
	state.view = newChartWidget(w, chartview.WithArea(cfg.Area))
	state.view.onStatus = func(st chartview.State) { state.statusLabel.SetText(statusText(st)) }

	// series toggles (callbacks assigned after prefs are loaded)
	seriesBox := container.NewHBox()
	for i := range state.seriesChecks {
		state.seriesChecks[i] = widget.NewCheck(fmt.Sprintf("Series %d", i+1), nil)
		seriesBox.Add(state.seriesChecks[i])
	}
	state.crosshairChk = widget.NewCheck("Crosshair", nil)

	top := container.NewHBox(
		widget.NewButton("Open…", func() { openFileDialog(state) }),
		widget.NewButton("Reload", func() { loadAll(state) }),
		widget.NewButton("Reset view", state.view.chart.ResetView),
		widget.NewButton("Autoscale", state.view.chart.AutoScaleAll),
		widget.NewButton("Rect zoom", func() { state.view.chart.ArmRectZoom() }),
		state.crosshairChk,
		widget.NewSeparator(),
		seriesBox,
		widget.NewLabel("File:"), state.fileLabel,
	)
	content := container.NewBorder(top, state.statusLabel, nil, nil, state.view)
	w.SetContent(content)

	buildMenus(state)
	loadPrefs(state)
	for i, chk := range state.seriesChecks {
		i := i
		chk.SetChecked(state.enabled[i])
		chk.OnChanged = func(b bool) {
			state.enabled[i] = b
			if err := state.view.chart.SetEnabled(i, b); err != nil {
				logging.Warnf("series %d: %v", i, err)
			}
			savePrefs(state)
		}
	}
	state.crosshairChk.OnChanged = func(b bool) {
		state.view.setCrosshair(b)
		savePrefs(state)
	}
	state.crosshairChk.SetChecked(state.view.crosshair)

	w.Canvas().SetOnTypedKey(func(ev *fyne.KeyEvent) {
		if ev.Name == fyne.KeyEscape {
			state.view.chart.CancelGesture()
		}
	})
	w.SetOnClosed(func() { savePrefs(state) })

	loadAll(state)
	w.ShowAndRun()
	return nil
}

// statusText summarizes the view for the status bar.
func statusText(st chartview.State) string {
	lo, hi := st.Transform().VisibleWindow()
	var b strings.Builder
	fmt.Fprintf(&b, "zoom %.2fx  samples %d", st.ZoomX, st.MaxPoints)
	if st.MaxPoints > 1 {
		n := float64(st.MaxPoints - 1)
		fmt.Fprintf(&b, "  view %s..%s", uihelpers.FormatNumericTick(lo*n), uihelpers.FormatNumericTick(hi*n))
	}
	switch {
	case st.Mode != chartview.ModeIdle:
		fmt.Fprintf(&b, "  [%s]", st.Mode)
	case st.RectArmed:
		b.WriteString("  [rectangle zoom armed: drag with the right button]")
	}
	if !st.PlotValid {
		b.WriteString("  plot too small")
	}
	return b.String()
}

// menus and dialogs
func buildMenus(state *uiState) {
	if state == nil || state.window == nil || state.app == nil {
		return
	}
	var items []*fyne.MenuItem
	for _, f := range recentFiles(state) {
		f := f
		items = append(items, fyne.NewMenuItem(truncatePath(f, 60), func() {
			state.filePath = f
			loadAll(state)
		}))
	}
	clearRecent := fyne.NewMenuItem("Clear Recent", func() { clearRecentFiles(state); buildMenus(state) })
	recentMenu := fyne.NewMenu("Open Recent", append(items, clearRecent)...)
	fileMenu := fyne.NewMenu("File",
		fyne.NewMenuItem("Open…", func() { openFileDialog(state) }),
		fyne.NewMenuItem("Reload", func() { loadAll(state) }),
		fyne.NewMenuItem("Demo Data", func() { state.filePath = ""; loadAll(state) }),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Export Chart…", func() { exportChartPNG(state, "chart.png") }),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Quit", func() { state.window.Close() }),
	)
	viewMenu := fyne.NewMenu("View",
		fyne.NewMenuItem("Reset View", state.view.chart.ResetView),
		fyne.NewMenuItem("Autoscale All", state.view.chart.AutoScaleAll),
		fyne.NewMenuItem("Rectangle Zoom", func() { state.view.chart.ArmRectZoom() }),
	)
	state.window.SetMainMenu(fyne.NewMainMenu(fileMenu, recentMenu, viewMenu))

	canv := state.window.Canvas()
	if canv != nil {
		for _, mod := range []fyne.KeyModifier{fyne.KeyModifierSuper, fyne.KeyModifierControl} {
			canv.AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyO, Modifier: mod}, func(fyne.Shortcut) { openFileDialog(state) })
			canv.AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyR, Modifier: mod}, func(fyne.Shortcut) { loadAll(state) })
			canv.AddShortcut(&desktop.CustomShortcut{KeyName: fyne.Key0, Modifier: mod}, func(fyne.Shortcut) { state.view.chart.ResetView() })
			canv.AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyW, Modifier: mod}, func(fyne.Shortcut) { state.window.Close() })
		}
	}
}

// file open dialog
func openFileDialog(state *uiState) {
	d := dialog.NewFileOpen(func(rc fyne.URIReadCloser, err error) {
		if err != nil || rc == nil {
			return
		}
		defer rc.Close()
		state.filePath = rc.URI().Path()
		addRecentFile(state, state.filePath)
		buildMenus(state)
		loadAll(state)
	}, state.window)
	d.Show()
}

// loadResult is what a background load hands back to the UI goroutine.
type loadResult struct {
	path   string
	cols   []dataset.Column
	source string
	err    error
}

// loadColumnsAsync reads path (or generates demo data) on its own goroutine
// and passes the outcome to done from that goroutine.
func loadColumnsAsync(path string, demoPoints int, done func(loadResult)) {
	go func() {
		defer logging.TimeTrack(time.Now(), "load "+path)
		cols, source, err := loadColumns(path, demoPoints)
		done(loadResult{path: path, cols: cols, source: source, err: err})
	}()
}

// loadAll reads the current file (or demo data) in the background, then loads
// it into the chart on the UI goroutine and refits every axis. Only the most
// recent request is applied.
func loadAll(state *uiState) {
	state.loadSeq++
	seq := state.loadSeq
	state.statusLabel.SetText("loading " + truncatePath(state.filePath, 60) + "…")
	loadColumnsAsync(state.filePath, state.cfg.DemoPoints, func(res loadResult) {
		fyne.Do(func() {
			if seq != state.loadSeq {
				logging.Debugf("discarding stale load of %s", res.path)
				return
			}
			showLoaded(state, res)
		})
	})
}

func showLoaded(state *uiState, res loadResult) {
	if res.err != nil {
		logging.Errorf("load %s: %v", res.path, res.err)
		dialog.ShowError(res.err, state.window)
		return
	}
	cols, source := res.cols, res.source
	if err := applyColumns(state.view.chart, cols, state.enabled); err != nil {
		dialog.ShowError(err, state.window)
		return
	}
	for i, chk := range state.seriesChecks {
		name := fmt.Sprintf("Series %d", i+1)
		if i < len(cols) && cols[i].Name != "" {
			name = uihelpers.TruncateLabel(cols[i].Name, 18)
		}
		chk.Text = name
		if i < len(cols) {
			chk.Enable()
		} else {
			chk.Disable()
		}
		chk.Refresh()
	}
	state.fileLabel.SetText(truncatePath(source, 60))
	state.window.SetTitle("Multi-Axis Chart - " + source)
	savePrefs(state)
	logging.Infof("loaded %d series from %s", len(cols), source)
}

// applyColumns replaces every slot: columns fill the first slots with the
// given visibility, the rest are cleared. All loaded axes are refitted and the
// view is reset.
func applyColumns(ch *chartview.Chart, cols []dataset.Column, enabled [chartview.MaxSeries]bool) error {
	for slot := 0; slot < chartview.MaxSeries; slot++ {
		if slot >= len(cols) {
			if err := ch.SetSeries(slot, nil, false, ""); err != nil {
				return err
			}
			continue
		}
		if err := ch.SetSeries(slot, cols[slot].Values, enabled[slot], cols[slot].Name); err != nil {
			return err
		}
		ch.AutoScale(slot)
	}
	ch.ResetView()
	return nil
}

// export PNG
func exportChartPNG(state *uiState, defaultName string) {
	img, err := render.Frame(state.view.chart.Snapshot(), render.DefaultOptions)
	if err != nil {
		dialog.ShowError(errors.Wrap(err, "export"), state.window)
		return
	}
	fs := dialog.NewFileSave(func(wc fyne.URIWriteCloser, err error) {
		if err != nil || wc == nil {
			return
		}
		defer wc.Close()
		if err := png.Encode(wc, img); err != nil {
			dialog.ShowError(err, state.window)
		}
	}, state.window)
	fs.SetFileName(defaultName)
	fs.Show()
}

// recent files helpers
func recentFiles(state *uiState) []string {
	raw := state.app.Preferences().StringWithFallback("recentFiles", "")
	var out []string
	for _, p := range splitRecent(raw) {
		if _, err := os.Stat(p); err == nil {
			out = append(out, p)
		}
	}
	return out
}

func addRecentFile(state *uiState, path string) {
	list := mergeRecent(recentFiles(state), path, 10)
	state.app.Preferences().SetString("recentFiles", strings.Join(list, "\n"))
}

func clearRecentFiles(state *uiState) {
	if state == nil || state.app == nil {
		return
	}
	state.app.Preferences().SetString("recentFiles", "")
}

func splitRecent(raw string) []string {
	var out []string
	for _, p := range strings.Split(raw, "\n") {
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// mergeRecent puts path first and keeps at most max distinct entries.
func mergeRecent(list []string, path string, max int) []string {
	out := []string{path}
	for _, f := range list {
		if f != path && len(out) < max {
			out = append(out, f)
		}
	}
	return out
}

// prefs
func savePrefs(state *uiState) {
	if state == nil || state.app == nil {
		return
	}
	prefs := state.app.Preferences()
	prefs.SetString("lastFile", state.filePath)
	for i, on := range state.enabled {
		prefs.SetBool("seriesEnabled"+strconv.Itoa(i), on)
	}
	if state.view != nil {
		prefs.SetBool("crosshair", state.view.crosshair)
	}
}

func loadPrefs(state *uiState) {
	if state == nil || state.app == nil {
		return
	}
	prefs := state.app.Preferences()
	// a file given on the command line or in the environment wins
	if state.filePath == "" {
		if f := prefs.StringWithFallback("lastFile", ""); f != "" {
			if _, err := os.Stat(f); err == nil {
				state.filePath = f
			}
		}
	}
	for i := range state.enabled {
		state.enabled[i] = prefs.BoolWithFallback("seriesEnabled"+strconv.Itoa(i), state.enabled[i])
	}
	state.view.crosshair = prefs.BoolWithFallback("crosshair", false)
}

// utils
func truncatePath(p string, n int) string {
	if len(p) <= n {
		return p
	}
	base := filepath.Base(p)
	if len(base)+4 >= n {
		return "..." + base
	}
	dir := filepath.Dir(p)
	left := n - len(base) - 4
	if left <= 0 {
		return "..." + base
	}
	if len(dir) > left {
		dir = dir[:left]
	}
	return dir + "/..." + base
}

// Package mainwindow provides the main application window.
package mainwindow

import (
	"fmt"
	"log"
	"path/filepath"
	"time"

	"measuremate/internal/app"
	"measuremate/internal/export"
	mmimage "measuremate/internal/image"
	"measuremate/internal/measure"
	"measuremate/internal/project"
	"measuremate/internal/units"
	"measuremate/internal/watcher"
	"measuremate/pkg/colorutil"
	"measuremate/pkg/geometry"
	"measuremate/ui/canvas"
	"measuremate/ui/dialogs"
	"measuremate/ui/panels"
	"measuremate/ui/prefs"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"
)

// removeHitDistance is the pick radius, in screen pixels, for right-click
// removal of a measurement line.
const removeHitDistance = 8.0

// MainWindow is the primary application window.
type MainWindow struct {
	fyne.Window
	app       fyne.App
	state     *app.State
	prefs     *prefs.Prefs
	canvas    *canvas.ImageCanvas
	sidePanel *panels.SidePanel
	watcher   *watcher.FileWatcher

	statusLabel   *widget.Label
	positionLabel *widget.Label
	zoomLabel     *widget.Label

	// Menu items that need state tracking
	fitToWindowItem *fyne.MenuItem

	shiftDown bool
}

// New creates the main window.
func New(fyneApp fyne.App, state *app.State, p *prefs.Prefs) *MainWindow {
	win := fyneApp.NewWindow("MeasureMate")

	mw := &MainWindow{
		Window: win,
		app:    fyneApp,
		state:  state,
		prefs:  p,
	}

	mw.setupUI()
	mw.setupMenus()
	mw.setupShortcuts()
	mw.setupEventHandlers()
	mw.setupWatcher()

	return mw
}

// setupUI creates the main UI layout.
func (mw *MainWindow) setupUI() {
	mw.canvas = canvas.NewImageCanvas(mw.state.Session.View)
	mw.canvas.SetStyle(canvasStyle(mw.state.Settings))

	mw.canvas.OnLeftClick(mw.handleLeftClick)
	mw.canvas.OnRightClick(mw.handleRightClick)
	mw.canvas.OnMouseMove(mw.handleMouseMove)
	mw.canvas.OnZoomChange(func(zoom float64) {
		mw.zoomLabel.SetText(fmt.Sprintf("Zoom: %.0f%%", zoom*100))
		mw.state.Emit(app.EventZoomChanged, zoom)
	})

	mw.sidePanel = panels.NewSidePanel(mw.state)
	mw.sidePanel.SetWindow(mw.Window)

	mw.statusLabel = widget.NewLabel("Open a blueprint image to begin")
	mw.positionLabel = widget.NewLabel("")
	mw.zoomLabel = widget.NewLabel("Zoom: 100%")

	statusBar := container.NewBorder(nil, nil, nil,
		container.NewHBox(mw.positionLabel, mw.zoomLabel),
		mw.statusLabel,
	)

	toolbar := mw.createToolbar()

	canvasArea := container.NewBorder(
		toolbar, nil, nil, nil,
		mw.canvas.Container(),
	)

	split := container.NewHSplit(mw.sidePanel.Container(), canvasArea)
	split.SetOffset(0.25)

	content := container.NewBorder(
		nil,
		container.NewPadded(statusBar),
		nil, nil,
		split,
	)

	mw.SetContent(content)
	mw.Resize(fyne.NewSize(1200, 800))
}

// createToolbar creates the toolbar with zoom controls.
func (mw *MainWindow) createToolbar() fyne.CanvasObject {
	zoomOutBtn := widget.NewButton("-", mw.onZoomOut)
	zoomInBtn := widget.NewButton("+", mw.onZoomIn)
	fitBtn := widget.NewButton("Fit", mw.onToggleFitToWindow)
	actualBtn := widget.NewButton("1:1", mw.onActualSize)

	return container.NewHBox(
		widget.NewLabel("Zoom:"),
		zoomOutBtn,
		zoomInBtn,
		fitBtn,
		actualBtn,
	)
}

// setupMenus creates the application menus.
func (mw *MainWindow) setupMenus() {
	fileMenu := fyne.NewMenu("File",
		fyne.NewMenuItem("Open Image...", mw.onOpenImage),
		fyne.NewMenuItem("Open Session...", mw.onOpenSession),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Save Session", mw.onSaveSession),
		fyne.NewMenuItem("Save Session As...", mw.onSaveSessionAs),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Export CSV...", mw.onExportCSV),
		fyne.NewMenuItem("Export Annotated Image...", mw.onExportImage),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Quit", func() { mw.app.Quit() }),
	)

	editMenu := fyne.NewMenu("Edit",
		fyne.NewMenuItem("Undo Measurement", mw.onUndo),
		fyne.NewMenuItem("Cancel Points", mw.onCancelGesture),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Settings...", mw.onSettings),
	)

	unitItems := make([]*fyne.MenuItem, 0, len(units.All()))
	for _, u := range units.All() {
		unit := u
		unitItems = append(unitItems, fyne.NewMenuItem(unit.String(), func() {
			mw.state.SetDisplayUnit(unit)
		}))
	}
	measureItems := []*fyne.MenuItem{
		fyne.NewMenuItem("Calibrate", mw.onStartCalibration),
		fyne.NewMenuItem("Reset Calibration", mw.onResetCalibration),
		fyne.NewMenuItemSeparator(),
	}
	measureItems = append(measureItems, unitItems...)
	measureMenu := fyne.NewMenu("Measure", measureItems...)

	mw.fitToWindowItem = fyne.NewMenuItem("  Fit to Window", mw.onToggleFitToWindow)

	viewMenu := fyne.NewMenu("View",
		fyne.NewMenuItem("Zoom In", mw.onZoomIn),
		fyne.NewMenuItem("Zoom Out", mw.onZoomOut),
		mw.fitToWindowItem,
		fyne.NewMenuItem("Actual Size", mw.onActualSize),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Toggle Grid", func() { mw.toggleSetting(&mw.state.Settings.GridEnabled) }),
		fyne.NewMenuItem("Toggle Crosshair", func() { mw.toggleSetting(&mw.state.Settings.ShowCrosshair) }),
		fyne.NewMenuItem("Toggle Rulers", func() { mw.toggleSetting(&mw.state.Settings.ShowRulers) }),
	)

	helpMenu := fyne.NewMenu("Help",
		fyne.NewMenuItem("Keyboard Shortcuts", func() { dialogs.ShowShortcuts(mw.Window) }),
		fyne.NewMenuItem("About", func() { dialogs.ShowAbout(mw.Window) }),
	)

	mainMenu := fyne.NewMainMenu(fileMenu, editMenu, measureMenu, viewMenu, helpMenu)
	mw.SetMainMenu(mainMenu)
}

// setupShortcuts wires keyboard shortcuts and modifier tracking.
func (mw *MainWindow) setupShortcuts() {
	type binding struct {
		key      fyne.KeyName
		modifier fyne.KeyModifier
		action   func()
	}
	bindings := []binding{
		{fyne.KeyO, fyne.KeyModifierControl, mw.onOpenImage},
		{fyne.KeyO, fyne.KeyModifierControl | fyne.KeyModifierShift, mw.onOpenSession},
		{fyne.KeyS, fyne.KeyModifierControl, mw.onSaveSession},
		{fyne.KeyE, fyne.KeyModifierControl, mw.onExportImage},
		{fyne.KeyZ, fyne.KeyModifierControl, mw.onUndo},
		{fyne.KeyR, fyne.KeyModifierControl, mw.onResetCalibration},
		{fyne.Key0, fyne.KeyModifierControl, mw.onActualSize},
		{fyne.KeyF, fyne.KeyModifierControl, mw.onToggleFitToWindow},
	}
	for _, b := range bindings {
		action := b.action
		mw.Canvas().AddShortcut(
			&desktop.CustomShortcut{KeyName: b.key, Modifier: b.modifier},
			func(fyne.Shortcut) { action() },
		)
	}

	mw.Canvas().SetOnTypedKey(func(ev *fyne.KeyEvent) {
		switch ev.Name {
		case fyne.KeyEscape:
			mw.onCancelGesture()
		case fyne.KeyF1:
			dialogs.ShowShortcuts(mw.Window)
		case fyne.KeyPlus, fyne.KeyEqual:
			mw.onZoomIn()
		case fyne.KeyMinus:
			mw.onZoomOut()
		}
	})

	// Shift tracking for axis snap. Tapped events carry no modifiers, so
	// the held state is sampled when the click lands.
	if deskCanvas, ok := mw.Canvas().(desktop.Canvas); ok {
		deskCanvas.SetOnKeyDown(func(ev *fyne.KeyEvent) {
			if ev.Name == desktop.KeyShiftLeft || ev.Name == desktop.KeyShiftRight {
				mw.shiftDown = true
				mw.canvas.SetSnapActive(true)
			}
		})
		deskCanvas.SetOnKeyUp(func(ev *fyne.KeyEvent) {
			if ev.Name == desktop.KeyShiftLeft || ev.Name == desktop.KeyShiftRight {
				mw.shiftDown = false
				mw.canvas.SetSnapActive(false)
			}
		})
	}
}

// setupEventHandlers registers for application events.
func (mw *MainWindow) setupEventHandlers() {
	mw.state.On(app.EventImageLoaded, func(data interface{}) {
		mw.canvas.SetView(mw.state.Session.View)
		mw.canvas.SetLayer(mw.state.Image)
		mw.canvas.SetFitToWindow(true)
		mw.fitToWindowItem.Label = "✓ Fit to Window"
		mw.syncOverlays()
		if mw.state.Image != nil {
			mw.watchImage(mw.state.Image.Path)
			mw.updateStatus("Loaded " + filepath.Base(mw.state.Image.Path) + " - calibrate to start measuring")
		}
	})

	mw.state.On(app.EventSessionLoaded, func(data interface{}) {
		mw.canvas.SetView(mw.state.Session.View)
		mw.SetTitle("MeasureMate - " + filepath.Base(mw.state.SessionPath))
		mw.updateStatus("Session loaded: " + mw.state.SessionPath)
	})

	mw.state.On(app.EventSessionSaved, func(data interface{}) {
		if path, ok := data.(string); ok {
			mw.SetTitle("MeasureMate - " + filepath.Base(path))
			mw.updateStatus("Session saved: " + path)
		}
	})

	mw.state.On(app.EventCalibrationChanged, func(data interface{}) {
		mw.syncOverlays()
	})

	mw.state.On(app.EventMeasurementsChanged, func(data interface{}) {
		mw.syncOverlays()
	})

	mw.state.On(app.EventDisplayUnitChanged, func(data interface{}) {
		mw.syncOverlays()
	})

	mw.state.On(app.EventModeChanged, func(data interface{}) {
		if mode, ok := data.(measure.Mode); ok && mode == measure.ModeCalibrate {
			mw.updateStatus("Calibration: click both ends of a known distance")
		}
		mw.canvas.SetAnchor(nil, nil)
	})

	mw.state.On(app.EventSettingsChanged, func(data interface{}) {
		mw.canvas.SetStyle(canvasStyle(mw.state.Settings))
		mw.syncOverlays()
	})

	mw.state.On(app.EventModified, func(data interface{}) {
		if modified, ok := data.(bool); ok && modified {
			title := mw.Title()
			if len(title) > 0 && title[len(title)-1] != '*' {
				mw.SetTitle(title + " *")
			}
		}
	})
}

// setupWatcher reloads the blueprint from disk when the file changes.
func (mw *MainWindow) setupWatcher() {
	fw, err := watcher.New(500 * time.Millisecond)
	if err != nil {
		return
	}
	mw.watcher = fw
	mw.SetOnClosed(func() {
		fw.Close()
		mw.prefs.Save()
	})
}

func (mw *MainWindow) watchImage(path string) {
	if mw.watcher == nil {
		return
	}
	mw.watcher.Watch(path, func(string) {
		if err := mw.state.ReloadImage(); err != nil {
			return
		}
		mw.canvas.SetLayer(mw.state.Image)
		mw.updateStatus("Image reloaded from disk")
	})
}

// RestoreLastImage reopens the previously used image, if any.
func (mw *MainWindow) RestoreLastImage() {
	path := mw.prefs.String(app.KeyLastImage, "")
	if path == "" {
		return
	}
	if err := mw.state.LoadImage(path); err != nil {
		return
	}
	mw.state.SetModified(false)
}

// OpenPath loads an image or session file given on the command line.
func (mw *MainWindow) OpenPath(path string) error {
	if filepath.Ext(path) == project.Extension {
		return mw.state.LoadSession(path)
	}
	return mw.state.LoadImage(path)
}

// updateStatus updates the status bar text.
func (mw *MainWindow) updateStatus(text string) {
	mw.statusLabel.SetText(text)
}

// Click handling

func (mw *MainWindow) handleLeftClick(x, y float64) {
	if mw.state.Image == nil {
		mw.updateStatus("Open an image before measuring")
		return
	}

	session := mw.state.Session
	snap := mw.shiftDown
	point := geometry.Point2D{X: x, Y: y}

	pair, complete := session.AddPoint(point, snap)
	if !complete {
		if anchor, ok := session.PendingPoint(); ok {
			mw.canvas.SetAnchor(&anchor, mw.previewTemplate())
		}
		if session.Mode == measure.ModeCalibrate {
			mw.updateStatus("Click the second reference point")
		} else {
			mw.updateStatus("Click the second point")
		}
		return
	}

	mw.canvas.SetAnchor(nil, nil)

	if session.Mode == measure.ModeCalibrate {
		mw.finishCalibration(pair)
		return
	}

	if _, err := session.RecordMeasurement(pair); err != nil {
		mw.updateStatus("Calibrate before measuring")
		return
	}
	mw.state.Emit(app.EventMeasurementsChanged, nil)
	mw.state.SetModified(true)
}

// finishCalibration asks for the reference distance and applies it.
func (mw *MainWindow) finishCalibration(pair measure.PointPair) {
	dialogs.NewCalibrationDialog(
		mw.Window,
		mw.state.Session.DisplayUnit,
		func(distance float64, unit units.Unit) {
			if err := mw.state.Session.CompleteCalibration(pair, distance, unit); err != nil {
				dialog.ShowError(err, mw.Window)
				return
			}
			mw.state.Emit(app.EventCalibrationChanged, mw.state.Session.Calibration)
			mw.state.Emit(app.EventModeChanged, measure.ModeMeasure)
			mw.state.SetModified(true)
			mw.updateStatus(fmt.Sprintf("Calibrated: %.2f px per %s - click two points to measure",
				mw.state.Session.Calibration.PixelsPerUnit, unit.Abbrev()))
		},
		func() {
			mw.updateStatus("Calibration cancelled")
		},
	).Show()
}

// handleRightClick removes the measurement line nearest to the click.
func (mw *MainWindow) handleRightClick(x, y float64) {
	session := mw.state.Session
	point := geometry.Point2D{X: x, Y: y}

	scale := session.View.EffectiveScale()
	if scale <= 0 {
		return
	}
	threshold := removeHitDistance / scale

	bestID := 0
	bestDist := threshold
	for _, m := range session.Log.Items() {
		d := geometry.PointToSegmentDistance(point, m.Start, m.End)
		if d <= bestDist {
			bestDist = d
			bestID = m.ID
		}
	}
	if bestID == 0 {
		return
	}

	session.Log.RemoveByID(bestID)
	mw.state.Emit(app.EventMeasurementsChanged, nil)
	mw.state.SetModified(true)
}

func (mw *MainWindow) handleMouseMove(x, y float64) {
	mw.positionLabel.SetText(fmt.Sprintf("%.0f, %.0f px", x, y))
}

// previewTemplate builds the preview line style for the active mode.
func (mw *MainWindow) previewTemplate() *canvas.Line {
	s := mw.state.Settings
	if mw.state.Session.Mode == measure.ModeCalibrate {
		return &canvas.Line{
			Color:      colorutil.ParseHex(s.CalibrationLineColor, colorutil.Red),
			PointColor: colorutil.ParseHex(s.CalibrationPointColor, colorutil.Red),
			Width:      int(s.CalibrationLineWidth),
		}
	}
	return &canvas.Line{
		Color:      colorutil.ParseHex(s.MeasurementLineColor, colorutil.Blue),
		PointColor: colorutil.ParseHex(s.MeasurementPointColor, colorutil.Blue),
		Width:      int(s.MeasurementLineWidth),
	}
}

// syncOverlays rebuilds the canvas overlay lines from the session.
func (mw *MainWindow) syncOverlays() {
	session := mw.state.Session
	s := mw.state.Settings

	if cal := session.Calibration; cal != nil {
		mw.canvas.SetCalibrationLine(&canvas.Line{
			Start:      cal.ReferenceStart,
			End:        cal.ReferenceEnd,
			Color:      colorutil.ParseHex(s.CalibrationLineColor, colorutil.Red),
			PointColor: colorutil.ParseHex(s.CalibrationPointColor, colorutil.Red),
			TextColor:  colorutil.ParseHex(s.CalibrationLineColor, colorutil.Red),
			Width:      int(s.CalibrationLineWidth),
			Label:      fmt.Sprintf("%g %s", cal.DeclaredDistance, cal.DeclaredUnit.Abbrev()),
		})
		mw.canvas.SetRulerCalibration(cal.PixelsPerUnit, cal.DeclaredUnit.Abbrev())
	} else {
		mw.canvas.SetCalibrationLine(nil)
		mw.canvas.SetRulerCalibration(0, "")
	}

	items := session.Log.Items()
	lines := make([]canvas.Line, 0, len(items))
	for _, m := range items {
		line := canvas.Line{
			ID:         m.ID,
			Start:      m.Start,
			End:        m.End,
			Color:      colorutil.ParseHex(s.MeasurementLineColor, colorutil.Blue),
			PointColor: colorutil.ParseHex(s.MeasurementPointColor, colorutil.Blue),
			TextColor:  colorutil.ParseHex(s.MeasurementTextColor, colorutil.Blue),
			Width:      int(s.MeasurementLineWidth),
		}
		if m.Style != nil {
			line.Color = colorutil.ParseHex(m.Style.LineColor, line.Color)
			line.PointColor = colorutil.ParseHex(m.Style.PointColor, line.PointColor)
			line.TextColor = colorutil.ParseHex(m.Style.TextColor, line.TextColor)
			if m.Style.LineWidth > 0 {
				line.Width = int(m.Style.LineWidth)
			}
		}
		if value, err := m.Value(session.Calibration, session.DisplayUnit); err == nil {
			line.Label = fmt.Sprintf("%.2f %s", value, session.DisplayUnit.Abbrev())
		}
		lines = append(lines, line)
	}
	mw.canvas.SetMeasurements(lines)
}

// Menu action handlers

func (mw *MainWindow) onOpenImage() {
	fd := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		reader.Close()
		path := reader.URI().Path()
		mw.saveLastDir(path)
		if err := mw.state.LoadImage(path); err != nil {
			dialog.ShowError(err, mw.Window)
			return
		}
		mw.prefs.SetString(app.KeyLastImage, path)
	}, mw.Window)
	fd.SetFilter(storage.NewExtensionFileFilter(mmimage.SupportedExtensions))
	if loc := mw.getLastDir(); loc != nil {
		fd.SetLocation(loc)
	}
	fd.Show()
}

func (mw *MainWindow) onOpenSession() {
	fd := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		reader.Close()
		path := reader.URI().Path()
		mw.saveLastDir(path)
		if err := mw.state.LoadSession(path); err != nil {
			dialog.ShowError(err, mw.Window)
		}
	}, mw.Window)
	fd.SetFilter(storage.NewExtensionFileFilter([]string{project.Extension}))
	if loc := mw.getLastDir(); loc != nil {
		fd.SetLocation(loc)
	}
	fd.Show()
}

func (mw *MainWindow) onSaveSession() {
	if mw.state.SessionPath == "" {
		mw.onSaveSessionAs()
		return
	}
	if err := mw.state.SaveSession(mw.state.SessionPath, ""); err != nil {
		dialog.ShowError(err, mw.Window)
	}
}

func (mw *MainWindow) onSaveSessionAs() {
	fd := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil || writer == nil {
			return
		}
		writer.Close()
		path := writer.URI().Path()
		if filepath.Ext(path) != project.Extension {
			path += project.Extension
		}
		mw.saveLastDir(path)
		if err := mw.state.SaveSession(path, ""); err != nil {
			dialog.ShowError(err, mw.Window)
		}
	}, mw.Window)
	fd.SetFileName("session" + project.Extension)
	if loc := mw.getLastDir(); loc != nil {
		fd.SetLocation(loc)
	}
	fd.Show()
}

func (mw *MainWindow) onExportCSV() {
	if mw.state.Session.Log.Len() == 0 {
		mw.updateStatus("Nothing to export")
		return
	}
	fd := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil || writer == nil {
			return
		}
		writer.Close()
		path := writer.URI().Path()
		if filepath.Ext(path) != ".csv" {
			path += ".csv"
		}
		mw.saveLastDir(path)
		defaults := measure.Style{
			LineColor: mw.state.Settings.MeasurementLineColor,
			LineWidth: mw.state.Settings.MeasurementLineWidth,
		}
		if err := export.SaveCSV(path, mw.state.Session, defaults); err != nil {
			dialog.ShowError(err, mw.Window)
			return
		}
		log.Printf("Exported CSV %s (%d measurements)", path, mw.state.Session.Log.Len())
		mw.updateStatus("Exported " + path)
	}, mw.Window)
	fd.SetFileName("measurements.csv")
	if loc := mw.getLastDir(); loc != nil {
		fd.SetLocation(loc)
	}
	fd.Show()
}

func (mw *MainWindow) onExportImage() {
	if mw.state.Image == nil {
		mw.updateStatus("Open an image before exporting")
		return
	}
	fd := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil || writer == nil {
			return
		}
		writer.Close()
		path := writer.URI().Path()
		if filepath.Ext(path) == "" {
			path += ".png"
		}
		mw.saveLastDir(path)

		opts := mw.state.Settings.ExportOptions()
		opts.Scale = mw.state.Session.View.EffectiveScale()
		rendered, err := export.Render(mw.state.Image.Image, mw.state.Session, opts)
		if err != nil {
			dialog.ShowError(err, mw.Window)
			return
		}
		if err := export.SaveImage(path, rendered); err != nil {
			dialog.ShowError(err, mw.Window)
			return
		}
		log.Printf("Exported annotated image %s (scale %.2f)", path, opts.Scale)
		mw.updateStatus("Exported " + path)
	}, mw.Window)
	fd.SetFileName("measurements.png")
	if loc := mw.getLastDir(); loc != nil {
		fd.SetLocation(loc)
	}
	fd.Show()
}

func (mw *MainWindow) onUndo() {
	if mw.state.Session.Log.RemoveLast() == nil {
		return
	}
	mw.state.Emit(app.EventMeasurementsChanged, nil)
	mw.state.SetModified(true)
}

func (mw *MainWindow) onCancelGesture() {
	mw.state.Session.CancelGesture()
	mw.canvas.SetAnchor(nil, nil)
	mw.updateStatus("Points cancelled")
}

func (mw *MainWindow) onStartCalibration() {
	mw.state.Session.SetMode(measure.ModeCalibrate)
	mw.state.Emit(app.EventModeChanged, measure.ModeCalibrate)
}

func (mw *MainWindow) onResetCalibration() {
	if mw.state.Session.Calibration == nil {
		return
	}
	mw.state.Session.ResetCalibration()
	mw.state.Emit(app.EventCalibrationChanged, nil)
	mw.state.Emit(app.EventModeChanged, measure.ModeCalibrate)
	mw.state.Emit(app.EventMeasurementsChanged, nil)
	mw.state.SetModified(true)
}

func (mw *MainWindow) onSettings() {
	dialogs.NewSettingsDialog(mw.state.Settings, mw.Window, func(s *app.Settings) {
		s.Store(mw.prefs)
		mw.prefs.Save()
		mw.state.Session.View.SetZoomBounds(s.MinZoom, s.MaxZoom)
		mw.state.Emit(app.EventSettingsChanged, s)
	}).Show()
}

func (mw *MainWindow) toggleSetting(flag *bool) {
	*flag = !*flag
	mw.state.Settings.Store(mw.prefs)
	mw.state.Emit(app.EventSettingsChanged, mw.state.Settings)
}

func (mw *MainWindow) onZoomIn() {
	mw.disableFitToWindow()
	mw.canvas.ZoomIn()
}

func (mw *MainWindow) onZoomOut() {
	mw.disableFitToWindow()
	mw.canvas.ZoomOut()
}

func (mw *MainWindow) onToggleFitToWindow() {
	enabled := !mw.canvas.FitEnabled()
	mw.canvas.SetFitToWindow(enabled)

	if enabled {
		mw.fitToWindowItem.Label = "✓ Fit to Window"
	} else {
		mw.fitToWindowItem.Label = "  Fit to Window"
	}
}

func (mw *MainWindow) onActualSize() {
	mw.disableFitToWindow()
	mw.canvas.ResetZoom()
}

func (mw *MainWindow) disableFitToWindow() {
	if mw.canvas.FitEnabled() {
		mw.canvas.SetFitToWindow(false)
		mw.fitToWindowItem.Label = "  Fit to Window"
	}
}

// getLastDir returns the last used directory as a ListableURI, or nil.
func (mw *MainWindow) getLastDir() fyne.ListableURI {
	path := mw.prefs.String(app.KeyLastDirectory, "")
	if path == "" {
		return nil
	}
	uri := storage.NewFileURI(path)
	listable, err := storage.ListerForURI(uri)
	if err != nil {
		return nil
	}
	return listable
}

// saveLastDir saves the directory of the given file path.
func (mw *MainWindow) saveLastDir(filePath string) {
	mw.prefs.SetString(app.KeyLastDirectory, filepath.Dir(filePath))
}

// canvasStyle resolves the settings into the canvas drawing style.
func canvasStyle(s *app.Settings) canvas.Style {
	style := canvas.DefaultStyle()
	style.ShowLabels = s.ShowLabels
	style.LabelBG = s.LabelBackground
	style.LabelBGColor = colorutil.ParseHex(s.LabelBGColor, colorutil.White)
	style.PointSize = int(s.PointSize)
	style.GridEnabled = s.GridEnabled
	style.GridColor = colorutil.ParseHex(s.GridColor, style.GridColor)
	style.GridSpacing = s.GridSpacing
	style.ShowCrosshair = s.ShowCrosshair
	style.CrosshairColor = colorutil.ParseHex(s.CrosshairColor, colorutil.Green)
	style.ShowRulers = s.ShowRulers
	style.RulerColor = colorutil.ParseHex(s.RulerColor, colorutil.Black)
	style.RulerBGColor = colorutil.ParseHex(s.RulerBGColor, style.RulerBGColor)
	return style
}

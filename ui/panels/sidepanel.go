// Package panels provides UI panels for the application.
package panels

import (
	"fmt"

	"measuremate/internal/app"
	"measuremate/internal/measure"
	"measuremate/internal/units"
	"measuremate/ui/dialogs"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
)

// SidePanel holds the calibration controls and the measurement log list.
type SidePanel struct {
	state     *app.State
	window    fyne.Window
	container fyne.CanvasObject

	modeLabel        *widget.Label
	calibrationLabel *widget.Label
	calibrateButton  *widget.Button
	resetButton      *widget.Button

	unitSelect *widget.Select

	list       *widget.List
	listRows   []string
	selectedID int // measurement ID, 0 when nothing selected

	undoButton   *widget.Button
	deleteButton *widget.Button
	styleButton  *widget.Button
	clearButton  *widget.Button

	countLabel *widget.Label
	totalLabel *widget.Label
}

// NewSidePanel creates the side panel and subscribes it to state events.
func NewSidePanel(state *app.State) *SidePanel {
	sp := &SidePanel{state: state}

	sp.modeLabel = widget.NewLabel("")
	sp.calibrationLabel = widget.NewLabel("Not calibrated")
	sp.calibrationLabel.Wrapping = fyne.TextWrapWord

	sp.calibrateButton = widget.NewButton("Calibrate", sp.startCalibration)
	sp.resetButton = widget.NewButton("Reset Calibration", sp.resetCalibration)

	sp.unitSelect = widget.NewSelect(units.Names(), sp.unitChanged)
	sp.unitSelect.SetSelected(state.Session.DisplayUnit.String())

	sp.list = widget.NewList(
		func() int { return len(sp.listRows) },
		func() fyne.CanvasObject {
			label := widget.NewLabel("")
			label.TextStyle = fyne.TextStyle{Monospace: true}
			return label
		},
		func(i widget.ListItemID, obj fyne.CanvasObject) {
			if i >= 0 && i < len(sp.listRows) {
				obj.(*widget.Label).SetText(sp.listRows[i])
			}
		},
	)
	sp.list.OnSelected = func(i widget.ListItemID) {
		items := sp.state.Session.Log.Items()
		if i >= 0 && i < len(items) {
			sp.selectedID = items[i].ID
		}
		sp.updateButtons()
	}
	sp.list.OnUnselected = func(widget.ListItemID) {
		sp.selectedID = 0
		sp.updateButtons()
	}

	sp.undoButton = widget.NewButton("Undo", sp.undo)
	sp.deleteButton = widget.NewButton("Delete", sp.deleteSelected)
	sp.styleButton = widget.NewButton("Style...", sp.editStyle)
	sp.clearButton = widget.NewButton("Clear All", sp.clearAll)

	sp.countLabel = widget.NewLabel("0 measurements")
	sp.totalLabel = widget.NewLabel("Total: -")

	calibrationBox := container.NewVBox(
		sp.modeLabel,
		sp.calibrationLabel,
		container.NewGridWithColumns(2, sp.calibrateButton, sp.resetButton),
	)

	buttons := container.NewGridWithColumns(2,
		sp.undoButton, sp.deleteButton,
		sp.styleButton, sp.clearButton,
	)

	measurementsBox := container.NewBorder(
		nil,
		container.NewVBox(buttons, sp.countLabel, sp.totalLabel),
		nil, nil,
		sp.list,
	)

	sp.container = container.NewBorder(
		container.NewVBox(
			widget.NewCard("Calibration", "", calibrationBox),
			widget.NewCard("Display Unit", "", sp.unitSelect),
		),
		nil, nil, nil,
		widget.NewCard("Measurements", "", measurementsBox),
	)

	for _, ev := range []app.EventType{
		app.EventSessionLoaded,
		app.EventImageLoaded,
		app.EventCalibrationChanged,
		app.EventMeasurementsChanged,
		app.EventDisplayUnitChanged,
		app.EventModeChanged,
	} {
		state.On(ev, func(interface{}) { sp.Refresh() })
	}

	sp.Refresh()
	return sp
}

// Container returns the panel container.
func (sp *SidePanel) Container() fyne.CanvasObject {
	return sp.container
}

// SetWindow sets the parent window for dialogs.
func (sp *SidePanel) SetWindow(w fyne.Window) {
	sp.window = w
}

// Refresh rebuilds the labels and list rows from the session.
func (sp *SidePanel) Refresh() {
	session := sp.state.Session

	sp.modeLabel.SetText("Mode: " + session.Mode.String())

	if cal := session.Calibration; cal != nil {
		sp.calibrationLabel.SetText(fmt.Sprintf("%.2f px = 1 %s (%g %s reference)",
			cal.PixelsPerUnit, cal.DeclaredUnit.Abbrev(),
			cal.DeclaredDistance, cal.DeclaredUnit.Abbrev()))
	} else {
		sp.calibrationLabel.SetText("Not calibrated")
	}

	if sp.unitSelect.Selected != session.DisplayUnit.String() {
		sp.unitSelect.SetSelected(session.DisplayUnit.String())
	}

	items := session.Log.Items()
	sp.listRows = make([]string, len(items))
	for i, m := range items {
		value, err := m.Value(session.Calibration, session.DisplayUnit)
		if err != nil {
			sp.listRows[i] = fmt.Sprintf("#%-3d  -", m.ID)
			continue
		}
		sp.listRows[i] = fmt.Sprintf("#%-3d  %.3f %s", m.ID, value, session.DisplayUnit.Abbrev())
	}
	sp.list.Refresh()

	sp.countLabel.SetText(fmt.Sprintf("%d measurements", len(items)))
	if total, err := session.Total(); err == nil {
		sp.totalLabel.SetText(fmt.Sprintf("Total: %.3f %s", total, session.DisplayUnit.Abbrev()))
	} else {
		sp.totalLabel.SetText("Total: -")
	}

	sp.updateButtons()
}

func (sp *SidePanel) updateButtons() {
	hasItems := sp.state.Session.Log.Len() > 0
	if hasItems {
		sp.undoButton.Enable()
		sp.clearButton.Enable()
	} else {
		sp.undoButton.Disable()
		sp.clearButton.Disable()
	}

	if sp.selectedID != 0 && sp.state.Session.Log.ByID(sp.selectedID) != nil {
		sp.deleteButton.Enable()
		sp.styleButton.Enable()
	} else {
		sp.deleteButton.Disable()
		sp.styleButton.Disable()
	}
}

func (sp *SidePanel) startCalibration() {
	sp.state.Session.SetMode(measure.ModeCalibrate)
	sp.state.Emit(app.EventModeChanged, measure.ModeCalibrate)
}

func (sp *SidePanel) resetCalibration() {
	if sp.state.Session.Calibration == nil {
		return
	}
	dialog.ShowConfirm("Reset Calibration",
		"Discard the current calibration? Measurements are kept but show no values until you recalibrate.",
		func(ok bool) {
			if !ok {
				return
			}
			sp.state.Session.ResetCalibration()
			sp.state.Emit(app.EventCalibrationChanged, nil)
			sp.state.Emit(app.EventModeChanged, measure.ModeCalibrate)
			sp.state.Emit(app.EventMeasurementsChanged, nil)
			sp.state.SetModified(true)
		},
		sp.window,
	)
}

func (sp *SidePanel) unitChanged(name string) {
	unit, err := units.Parse(name)
	if err != nil {
		return
	}
	if unit == sp.state.Session.DisplayUnit {
		return
	}
	sp.state.SetDisplayUnit(unit)
	sp.state.SetModified(true)
}

func (sp *SidePanel) undo() {
	if sp.state.Session.Log.RemoveLast() == nil {
		return
	}
	sp.state.Emit(app.EventMeasurementsChanged, nil)
	sp.state.SetModified(true)
}

func (sp *SidePanel) deleteSelected() {
	if sp.selectedID == 0 {
		return
	}
	if !sp.state.Session.Log.RemoveByID(sp.selectedID) {
		return
	}
	sp.selectedID = 0
	sp.list.UnselectAll()
	sp.state.Emit(app.EventMeasurementsChanged, nil)
	sp.state.SetModified(true)
}

func (sp *SidePanel) editStyle() {
	m := sp.state.Session.Log.ByID(sp.selectedID)
	if m == nil {
		return
	}

	s := sp.state.Settings
	defaults := measure.Style{
		LineColor:  s.MeasurementLineColor,
		PointColor: s.MeasurementPointColor,
		TextColor:  s.MeasurementTextColor,
		LineWidth:  s.MeasurementLineWidth,
	}

	dialogs.NewStyleDialog(m.Style, defaults, sp.window, func(style *measure.Style) {
		m.Style = style
		sp.state.Emit(app.EventMeasurementsChanged, nil)
		sp.state.SetModified(true)
	}).Show()
}

func (sp *SidePanel) clearAll() {
	if sp.state.Session.Log.Len() == 0 {
		return
	}
	dialog.ShowConfirm("Clear Measurements",
		"Remove all measurements? This cannot be undone.",
		func(ok bool) {
			if !ok {
				return
			}
			sp.state.Session.Log.Clear()
			sp.selectedID = 0
			sp.list.UnselectAll()
			sp.state.Emit(app.EventMeasurementsChanged, nil)
			sp.state.SetModified(true)
		},
		sp.window,
	)
}

package app

import (
	"measuremate/internal/export"
	"measuremate/internal/measure"
	"measuremate/pkg/colorutil"
	"measuremate/ui/prefs"
)

// Preference keys for visual settings. Colors are "#RRGGBB" strings.
const (
	KeyCalibrationLineColor  = "calibration_line_color"
	KeyCalibrationPointColor = "calibration_point_color"
	KeyCalibrationLineWidth  = "calibration_line_width"
	KeyMeasurementLineColor  = "measurement_line_color"
	KeyMeasurementPointColor = "measurement_point_color"
	KeyMeasurementLineWidth  = "measurement_line_width"
	KeyMeasurementTextColor  = "measurement_text_color"
	KeyPointSize             = "point_size"
	KeyShowLabels            = "show_measurement_labels"
	KeyLabelBackground       = "label_background"
	KeyLabelBGColor          = "label_bg_color"
	KeyGridEnabled           = "grid_enabled"
	KeyGridColor             = "grid_color"
	KeyGridSpacing           = "grid_spacing"
	KeyShowCrosshair         = "show_crosshair"
	KeyCrosshairColor        = "crosshair_color"
	KeyShowRulers            = "show_rulers"
	KeyRulerColor            = "ruler_color"
	KeyRulerBGColor          = "ruler_bg_color"
	KeyMinZoom               = "min_zoom"
	KeyMaxZoom               = "max_zoom"
	KeyLastDirectory         = "last_directory"
	KeyLastImage             = "last_image"
)

// Settings holds the visual and view preferences in parsed form.
type Settings struct {
	CalibrationLineColor  string
	CalibrationPointColor string
	CalibrationLineWidth  float64
	MeasurementLineColor  string
	MeasurementPointColor string
	MeasurementLineWidth  float64
	MeasurementTextColor  string
	PointSize             float64
	ShowLabels            bool
	LabelBackground       bool
	LabelBGColor          string
	GridEnabled           bool
	GridColor             string
	GridSpacing           int
	ShowCrosshair         bool
	CrosshairColor        string
	ShowRulers            bool
	RulerColor            string
	RulerBGColor          string
	MinZoom               float64
	MaxZoom               float64
}

// DefaultSettings returns the stock settings: red calibration, blue
// measurements, green crosshair.
func DefaultSettings() *Settings {
	return &Settings{
		CalibrationLineColor:  "#FF0000",
		CalibrationPointColor: "#FF0000",
		CalibrationLineWidth:  2,
		MeasurementLineColor:  "#0000FF",
		MeasurementPointColor: "#0000FF",
		MeasurementLineWidth:  2,
		MeasurementTextColor:  "#0000FF",
		PointSize:             4,
		ShowLabels:            true,
		LabelBackground:       true,
		LabelBGColor:          "#FFFFFF",
		GridEnabled:           false,
		GridColor:             "#CCCCCC",
		GridSpacing:           50,
		ShowCrosshair:         true,
		CrosshairColor:        "#00FF00",
		ShowRulers:            true,
		RulerColor:            "#000000",
		RulerBGColor:          "#E0E0E0",
		MinZoom:               measure.DefaultMinZoom,
		MaxZoom:               measure.DefaultMaxZoom,
	}
}

// LoadSettings reads settings from preferences, falling back to defaults
// for missing keys.
func LoadSettings(p *prefs.Prefs) *Settings {
	d := DefaultSettings()
	return &Settings{
		CalibrationLineColor:  p.String(KeyCalibrationLineColor, d.CalibrationLineColor),
		CalibrationPointColor: p.String(KeyCalibrationPointColor, d.CalibrationPointColor),
		CalibrationLineWidth:  p.Float(KeyCalibrationLineWidth, d.CalibrationLineWidth),
		MeasurementLineColor:  p.String(KeyMeasurementLineColor, d.MeasurementLineColor),
		MeasurementPointColor: p.String(KeyMeasurementPointColor, d.MeasurementPointColor),
		MeasurementLineWidth:  p.Float(KeyMeasurementLineWidth, d.MeasurementLineWidth),
		MeasurementTextColor:  p.String(KeyMeasurementTextColor, d.MeasurementTextColor),
		PointSize:             p.Float(KeyPointSize, d.PointSize),
		ShowLabels:            p.Bool(KeyShowLabels, d.ShowLabels),
		LabelBackground:       p.Bool(KeyLabelBackground, d.LabelBackground),
		LabelBGColor:          p.String(KeyLabelBGColor, d.LabelBGColor),
		GridEnabled:           p.Bool(KeyGridEnabled, d.GridEnabled),
		GridColor:             p.String(KeyGridColor, d.GridColor),
		GridSpacing:           p.Int(KeyGridSpacing, d.GridSpacing),
		ShowCrosshair:         p.Bool(KeyShowCrosshair, d.ShowCrosshair),
		CrosshairColor:        p.String(KeyCrosshairColor, d.CrosshairColor),
		ShowRulers:            p.Bool(KeyShowRulers, d.ShowRulers),
		RulerColor:            p.String(KeyRulerColor, d.RulerColor),
		RulerBGColor:          p.String(KeyRulerBGColor, d.RulerBGColor),
		MinZoom:               p.Float(KeyMinZoom, d.MinZoom),
		MaxZoom:               p.Float(KeyMaxZoom, d.MaxZoom),
	}
}

// Store writes the settings back into preferences.
func (s *Settings) Store(p *prefs.Prefs) {
	p.SetString(KeyCalibrationLineColor, s.CalibrationLineColor)
	p.SetString(KeyCalibrationPointColor, s.CalibrationPointColor)
	p.SetFloat(KeyCalibrationLineWidth, s.CalibrationLineWidth)
	p.SetString(KeyMeasurementLineColor, s.MeasurementLineColor)
	p.SetString(KeyMeasurementPointColor, s.MeasurementPointColor)
	p.SetFloat(KeyMeasurementLineWidth, s.MeasurementLineWidth)
	p.SetString(KeyMeasurementTextColor, s.MeasurementTextColor)
	p.SetFloat(KeyPointSize, s.PointSize)
	p.SetBool(KeyShowLabels, s.ShowLabels)
	p.SetBool(KeyLabelBackground, s.LabelBackground)
	p.SetString(KeyLabelBGColor, s.LabelBGColor)
	p.SetBool(KeyGridEnabled, s.GridEnabled)
	p.SetString(KeyGridColor, s.GridColor)
	p.SetInt(KeyGridSpacing, s.GridSpacing)
	p.SetBool(KeyShowCrosshair, s.ShowCrosshair)
	p.SetString(KeyCrosshairColor, s.CrosshairColor)
	p.SetBool(KeyShowRulers, s.ShowRulers)
	p.SetString(KeyRulerColor, s.RulerColor)
	p.SetString(KeyRulerBGColor, s.RulerBGColor)
	p.SetFloat(KeyMinZoom, s.MinZoom)
	p.SetFloat(KeyMaxZoom, s.MaxZoom)
}

// ExportOptions resolves the settings into rendering options for the
// labelled-image exporter.
func (s *Settings) ExportOptions() export.Options {
	opts := export.DefaultOptions()
	opts.CalibrationLineColor = colorutil.ParseHex(s.CalibrationLineColor, colorutil.Red)
	opts.CalibrationLineWidth = s.CalibrationLineWidth
	opts.MeasurementLineColor = colorutil.ParseHex(s.MeasurementLineColor, colorutil.Blue)
	opts.MeasurementPointColor = colorutil.ParseHex(s.MeasurementPointColor, colorutil.Blue)
	opts.MeasurementTextColor = colorutil.ParseHex(s.MeasurementTextColor, colorutil.Blue)
	opts.MeasurementLineWidth = s.MeasurementLineWidth
	opts.PointSize = s.PointSize
	opts.ShowLabels = s.ShowLabels
	opts.LabelBackground = s.LabelBackground
	opts.LabelBGColor = colorutil.ParseHex(s.LabelBGColor, colorutil.White)
	opts.ShowRulers = s.ShowRulers
	opts.RulerColor = colorutil.ParseHex(s.RulerColor, colorutil.Black)
	opts.RulerBGColor = colorutil.ParseHex(s.RulerBGColor, opts.RulerBGColor)
	return opts
}

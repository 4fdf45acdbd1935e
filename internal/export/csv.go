package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"time"

	"measuremate/internal/measure"
)

// WriteCSV writes the measurement log as CSV: one row per measurement in
// insertion order, a blank separator, then a summary block. defaults
// supplies the line color and width for measurements without a style
// override. Fails when no calibration is active.
func WriteCSV(w io.Writer, s *measure.Session, defaults measure.Style) error {
	summary, err := Summarize(s.Log, s.Calibration, s.DisplayUnit)
	if err != nil {
		return err
	}

	cw := csv.NewWriter(w)

	header := []string{
		"Measurement #",
		fmt.Sprintf("Distance (%s)", s.DisplayUnit),
		"Start X (px)",
		"Start Y (px)",
		"End X (px)",
		"End Y (px)",
		"Pixel Distance",
		"Line Color",
		"Line Width",
	}
	if err := cw.Write(header); err != nil {
		return err
	}

	for i, m := range s.Log.Items() {
		val, err := m.Value(s.Calibration, s.DisplayUnit)
		if err != nil {
			return err
		}
		lineColor := defaults.LineColor
		lineWidth := defaults.LineWidth
		if st := m.Style; st != nil {
			if st.LineColor != "" {
				lineColor = st.LineColor
			}
			if st.LineWidth > 0 {
				lineWidth = st.LineWidth
			}
		}
		row := []string{
			fmt.Sprintf("%d", i+1),
			fmt.Sprintf("%.3f", val),
			fmt.Sprintf("%.1f", m.Start.X),
			fmt.Sprintf("%.1f", m.Start.Y),
			fmt.Sprintf("%.1f", m.End.X),
			fmt.Sprintf("%.1f", m.End.Y),
			fmt.Sprintf("%.1f", m.PixelDistance),
			lineColor,
			fmt.Sprintf("%g", lineWidth),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	rows := [][]string{
		{},
		{"Summary"},
		{"Total Measurements", fmt.Sprintf("%d", summary.Count)},
		{"Total Distance", fmt.Sprintf("%.3f %s", summary.Total, summary.Unit)},
		{"Mean Distance", fmt.Sprintf("%.3f %s", summary.Mean, summary.Unit)},
		{"Calibration Unit", s.Calibration.DeclaredUnit.String()},
		{"Export Date", time.Now().Format("2006-01-02 15:04:05")},
	}
	for _, row := range rows {
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// SaveCSV writes the log to a CSV file at path.
func SaveCSV(path string, s *measure.Session, defaults measure.Style) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return WriteCSV(f, s, defaults)
}

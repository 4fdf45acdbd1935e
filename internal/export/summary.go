// Package export renders the measurement log into shareable artifacts: a
// labelled copy of the blueprint image and a CSV table. It reads the core
// state but never mutates it.
package export

import (
	"measuremate/internal/measure"
	"measuremate/internal/units"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Summary aggregates the measurement log in a single display unit.
type Summary struct {
	Unit  units.Unit
	Count int
	Total float64
	Mean  float64
	Min   float64
	Max   float64
}

// Summarize computes log statistics in the given display unit. Fails when
// no calibration is active. An empty log yields a zero Summary.
func Summarize(log *measure.Log, cal *measure.Calibration, display units.Unit) (Summary, error) {
	vals, err := log.Values(display, cal)
	if err != nil {
		return Summary{}, err
	}
	s := Summary{Unit: display, Count: len(vals)}
	if len(vals) == 0 {
		return s, nil
	}

	s.Total = floats.Sum(vals)
	s.Mean = stat.Mean(vals, nil)
	s.Min = floats.Min(vals)
	s.Max = floats.Max(vals)
	return s, nil
}

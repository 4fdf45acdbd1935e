// Package units provides the measurement units supported by the application
// and conversions between them.
package units

import (
	"fmt"
	"strings"
)

// Unit is a supported real-world length unit.
type Unit int

const (
	Meter Unit = iota
	Centimeter
	Foot
	Inch
)

// All returns every supported unit in display order.
func All() []Unit {
	return []Unit{Meter, Centimeter, Foot, Inch}
}

// Names returns the display names of every supported unit, for select widgets.
func Names() []string {
	all := All()
	names := make([]string, len(all))
	for i, u := range all {
		names[i] = u.String()
	}
	return names
}

// String returns the full unit name as shown in the UI.
func (u Unit) String() string {
	switch u {
	case Meter:
		return "meters"
	case Centimeter:
		return "centimeters"
	case Foot:
		return "feet"
	case Inch:
		return "inches"
	default:
		return "unknown"
	}
}

// Abbrev returns the short unit suffix used in measurement labels.
func (u Unit) Abbrev() string {
	switch u {
	case Meter:
		return "m"
	case Centimeter:
		return "cm"
	case Foot:
		return "ft"
	case Inch:
		return "in"
	default:
		return "?"
	}
}

// Meters returns the length of one u in meters. Every conversion is a pure
// multiplicative factor through this canonical base.
func (u Unit) Meters() float64 {
	switch u {
	case Meter:
		return 1.0
	case Centimeter:
		return 0.01
	case Foot:
		return 0.3048
	case Inch:
		return 0.0254
	default:
		return 1.0
	}
}

// Parse resolves a unit from its name or abbreviation.
func Parse(s string) (Unit, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "meters", "meter", "m":
		return Meter, nil
	case "centimeters", "centimeter", "cm":
		return Centimeter, nil
	case "feet", "foot", "ft":
		return Foot, nil
	case "inches", "inch", "in":
		return Inch, nil
	default:
		return Meter, fmt.Errorf("unknown unit %q", s)
	}
}

// Convert converts a value from one unit to another via the meter base.
func Convert(value float64, from, to Unit) float64 {
	return value * from.Meters() / to.Meters()
}

// MarshalText implements encoding.TextMarshaler so units serialize as names
// in preference and session files.
func (u Unit) MarshalText() ([]byte, error) {
	return []byte(u.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (u *Unit) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*u = parsed
	return nil
}

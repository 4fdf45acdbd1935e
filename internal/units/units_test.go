package units

import (
	"encoding/json"
	"math"
	"testing"
)

func TestConvertFeetToInches(t *testing.T) {
	got := Convert(5, Foot, Inch)
	if math.Abs(got-60) > 1e-9 {
		t.Errorf("5 feet = %v inches, want 60", got)
	}
}

func TestConvertMetersToCentimeters(t *testing.T) {
	got := Convert(2.5, Meter, Centimeter)
	if math.Abs(got-250) > 1e-9 {
		t.Errorf("2.5 m = %v cm, want 250", got)
	}
}

func TestConvertIdentity(t *testing.T) {
	for _, u := range All() {
		if got := Convert(7.25, u, u); math.Abs(got-7.25) > 1e-12 {
			t.Errorf("identity conversion for %v changed value: %v", u, got)
		}
	}
}

func TestConvertRoundTrip(t *testing.T) {
	// Converting A -> B -> A must return the original value within
	// floating-point tolerance.
	for _, from := range All() {
		for _, to := range All() {
			orig := 123.456
			back := Convert(Convert(orig, from, to), to, from)
			if math.Abs(back-orig)/orig > 1e-9 {
				t.Errorf("round trip %v -> %v -> %v: got %v, want %v", from, to, from, back, orig)
			}
		}
	}
}

func TestMeterFactors(t *testing.T) {
	cases := []struct {
		unit Unit
		want float64
	}{
		{Meter, 1.0},
		{Centimeter, 0.01},
		{Foot, 0.3048},
		{Inch, 0.0254},
	}
	for _, c := range cases {
		if got := c.unit.Meters(); got != c.want {
			t.Errorf("%v.Meters() = %v, want %v", c.unit, got, c.want)
		}
	}
}

func TestParse(t *testing.T) {
	cases := map[string]Unit{
		"meters":      Meter,
		"Feet":        Foot,
		"in":          Inch,
		"cm":          Centimeter,
		" inches ":    Inch,
		"centimeter":  Centimeter,
	}
	for s, want := range cases {
		got, err := Parse(s)
		if err != nil {
			t.Errorf("Parse(%q) returned error: %v", s, err)
			continue
		}
		if got != want {
			t.Errorf("Parse(%q) = %v, want %v", s, got, want)
		}
	}

	if _, err := Parse("furlongs"); err == nil {
		t.Error("Parse should reject unknown units")
	}
}

func TestUnitJSONRoundTrip(t *testing.T) {
	for _, u := range All() {
		data, err := json.Marshal(u)
		if err != nil {
			t.Fatalf("marshal %v: %v", u, err)
		}
		var back Unit
		if err := json.Unmarshal(data, &back); err != nil {
			t.Fatalf("unmarshal %s: %v", data, err)
		}
		if back != u {
			t.Errorf("JSON round trip: got %v, want %v", back, u)
		}
	}
}

package geo

import (
	"math"
	"testing"
)

func TestDistanceToKnownPair(t *testing.T) {
	// Trafalgar Square to Westminster Abbey, roughly 960m apart.
	from := Location{Latitude: 51.5080, Longitude: -0.1281}
	to := Location{Latitude: 51.4994, Longitude: -0.1273}

	distance := from.DistanceTo(to)
	if distance < 900 || distance > 1000 {
		t.Fatalf("expected distance near 960m, got %.1f", distance)
	}
}

func TestDistanceToSelfIsZero(t *testing.T) {
	loc := Location{Latitude: 47.6062, Longitude: -122.3321}
	if distance := loc.DistanceTo(loc); distance != 0 {
		t.Fatalf("expected zero distance to self, got %f", distance)
	}
}

func TestBearingToIsNormalized(t *testing.T) {
	from := Location{Latitude: 0, Longitude: 0}
	to := Location{Latitude: 0, Longitude: -1}

	bearing := from.BearingTo(to)
	if bearing < 0 || bearing >= 360 {
		t.Fatalf("expected bearing in [0, 360), got %f", bearing)
	}
	if math.Abs(bearing-270) > 1 {
		t.Fatalf("expected westward bearing near 270, got %f", bearing)
	}
}

func TestHeadingValuePreferenceOrder(t *testing.T) {
	course := 10.0
	device := 20.0
	user := 30.0

	testCases := []struct {
		name     string
		heading  Heading
		expected *float64
	}{
		{name: "course wins", heading: Heading{Course: &course, Device: &device, User: &user}, expected: &course},
		{name: "device wins without course", heading: Heading{Device: &device, User: &user}, expected: &device},
		{name: "user is last resort", heading: Heading{User: &user}, expected: &user},
		{name: "all empty", heading: Heading{}, expected: nil},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			got := testCase.heading.Value()
			if testCase.expected == nil {
				if got != nil {
					t.Fatalf("expected nil heading value, got %f", *got)
				}
				return
			}
			if got == nil || *got != *testCase.expected {
				t.Fatalf("expected heading value %f, got %v", *testCase.expected, got)
			}
		})
	}
}

func TestFormatDistance(t *testing.T) {
	testCases := []struct {
		name     string
		meters   float64
		units    UnitSystem
		expected string
	}{
		{name: "short metric", meters: 42, units: UnitsMetric, expected: "40 meters"},
		{name: "long metric", meters: 2500, units: UnitsMetric, expected: "2.5 kilometers"},
		{name: "short imperial", meters: 30, units: UnitsImperial, expected: "100 feet"},
		{name: "long imperial", meters: 3218, units: UnitsImperial, expected: "2.0 miles"},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			if got := FormatDistance(testCase.meters, testCase.units); got != testCase.expected {
				t.Fatalf("expected %q, got %q", testCase.expected, got)
			}
		})
	}
}

func TestCardinalDirectionWrapsAround(t *testing.T) {
	if got := CardinalDirection(359); got != "north" {
		t.Fatalf("expected north near 359 degrees, got %q", got)
	}
	if got := CardinalDirection(-90); got != "west" {
		t.Fatalf("expected west at -90 degrees, got %q", got)
	}
	if got := CardinalDirection(135); got != "southeast" {
		t.Fatalf("expected southeast at 135 degrees, got %q", got)
	}
}

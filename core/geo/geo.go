package geo

import (
	"fmt"
	"math"
)

const earthRadiusMeters = 6371000.0

// Location is a WGS84 coordinate pair.
type Location struct {
	Latitude  float64
	Longitude float64
}

// DistanceTo returns the great-circle distance to other in meters.
func (l Location) DistanceTo(other Location) float64 {
	lat1 := l.Latitude * math.Pi / 180
	lat2 := other.Latitude * math.Pi / 180
	dLat := (other.Latitude - l.Latitude) * math.Pi / 180
	dLon := (other.Longitude - l.Longitude) * math.Pi / 180

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)

	return earthRadiusMeters * 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
}

// BearingTo returns the initial bearing towards other in degrees, normalized
// to [0, 360).
func (l Location) BearingTo(other Location) float64 {
	lat1 := l.Latitude * math.Pi / 180
	lat2 := other.Latitude * math.Pi / 180
	dLon := (other.Longitude - l.Longitude) * math.Pi / 180

	y := math.Sin(dLon) * math.Cos(lat2)
	x := math.Cos(lat1)*math.Sin(lat2) - math.Sin(lat1)*math.Cos(lat2)*math.Cos(dLon)

	bearing := math.Atan2(y, x) * 180 / math.Pi
	return math.Mod(bearing+360, 360)
}

// Heading carries every heading source the device can report. Sources are
// nullable and consumers collapse them with Value.
type Heading struct {
	// Course is the direction of travel derived from movement.
	Course *float64
	// Device is the compass heading of the device itself.
	Device *float64
	// User is an explicitly user-selected heading.
	User *float64
}

// Value collapses the heading sources in preference order: course, then
// device, then user. Returns nil when no source has a value.
func (h Heading) Value() *float64 {
	if h.Course != nil {
		return h.Course
	}
	if h.Device != nil {
		return h.Device
	}
	return h.User
}

type UnitSystem string

const (
	UnitsMetric   UnitSystem = "metric"
	UnitsImperial UnitSystem = "imperial"
)

// FormatDistance renders a distance in meters as a short spoken phrase in the
// requested unit system. Small distances round to steps a listener can act
// on.
func FormatDistance(meters float64, units UnitSystem) string {
	if units == UnitsImperial {
		feet := meters * 3.28084
		if feet < 1000 {
			return fmt.Sprintf("%d feet", roundToNearest(feet, 10))
		}
		miles := feet / 5280
		return fmt.Sprintf("%.1f miles", miles)
	}

	if meters < 1000 {
		return fmt.Sprintf("%d meters", roundToNearest(meters, 5))
	}
	return fmt.Sprintf("%.1f kilometers", meters/1000)
}

func roundToNearest(value float64, step int) int {
	if step <= 0 {
		return int(math.Round(value))
	}
	return int(math.Round(value/float64(step))) * step
}

// CardinalDirection names a bearing in degrees with one of eight compass
// points.
func CardinalDirection(bearing float64) string {
	directions := []string{
		"north", "northeast", "east", "southeast",
		"south", "southwest", "west", "northwest",
	}
	normalized := math.Mod(math.Mod(bearing, 360)+360, 360)
	index := int(math.Round(normalized/45)) % len(directions)
	return directions[index]
}

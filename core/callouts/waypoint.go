package callouts

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/bnavac/soundscape/core/geo"
	"github.com/bnavac/soundscape/core/sounds"
)

// WaypointPhase distinguishes the lifecycle moment a waypoint callout
// narrates.
type WaypointPhase string

const (
	WaypointArrival   WaypointPhase = "arrival"
	WaypointDeparture WaypointPhase = "departure"
	WaypointDistance  WaypointPhase = "distance"
)

// WaypointCallout narrates arrival at, departure from, or remaining distance
// to a route waypoint.
type WaypointCallout struct {
	id        string
	timestamp time.Time

	phase    WaypointPhase
	index    int
	name     string
	location geo.Location
	units    geo.UnitSystem
}

func NewWaypointCallout(phase WaypointPhase, index int, name string, location geo.Location, units geo.UnitSystem) *WaypointCallout {
	return &WaypointCallout{
		id:        uuid.NewString(),
		timestamp: time.Now(),
		phase:     phase,
		index:     index,
		name:      name,
		location:  location,
		units:     units,
	}
}

func (c *WaypointCallout) ID() string               { return c.id }
func (c *WaypointCallout) Origin() Origin           { return OriginWaypoint }
func (c *WaypointCallout) Timestamp() time.Time     { return c.timestamp }
func (c *WaypointCallout) IncludeInHistory() bool   { return true }
func (c *WaypointCallout) IncludePrefixSound() bool { return c.phase != WaypointDistance }
func (c *WaypointCallout) Phase() WaypointPhase     { return c.phase }

func (c *WaypointCallout) Sounds(location *geo.Location, isRepeat bool, automotive bool) []sounds.Sound {
	out := []sounds.Sound{}
	if c.IncludePrefixSound() {
		out = append(out, sounds.Glyph(prefixGlyph(c.Origin())))
	}

	switch c.phase {
	case WaypointArrival:
		out = append(out, sounds.SpokenAt(c.name, c.location))
		if !automotive {
			// Arrival narration follows the primary content.
			out = append(out, sounds.Spoken(fmt.Sprintf("You have arrived at waypoint %d", c.index+1)))
		}
	case WaypointDeparture:
		out = append(out, sounds.SpokenAt(c.name, c.location))
		if !automotive {
			out = append(out, sounds.Spoken(fmt.Sprintf("Departing waypoint %d", c.index+1)))
		}
	case WaypointDistance:
		distance := c.DistanceDescription(location)
		if distance == nil {
			// Distance updates are meaningless without a fix.
			return nil
		}
		out = append(out, sounds.SpokenAt(fmt.Sprintf("%s, %s away", c.name, *distance), c.location))
	}

	return out
}

func (c *WaypointCallout) DistanceDescription(location *geo.Location) *string {
	if location == nil {
		return nil
	}
	description := geo.FormatDistance(location.DistanceTo(c.location), c.units)
	return &description
}

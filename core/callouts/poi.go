package callouts

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/bnavac/soundscape/core/geo"
	"github.com/bnavac/soundscape/core/sounds"
)

// POICallout announces a nearby point of interest, spatialized at the POI's
// location.
type POICallout struct {
	id        string
	timestamp time.Time

	name     string
	location geo.Location
	units    geo.UnitSystem
}

func NewPOICallout(name string, location geo.Location, units geo.UnitSystem) *POICallout {
	return &POICallout{
		id:        uuid.NewString(),
		timestamp: time.Now(),
		name:      name,
		location:  location,
		units:     units,
	}
}

func (c *POICallout) ID() string               { return c.id }
func (c *POICallout) Origin() Origin           { return OriginPOI }
func (c *POICallout) Timestamp() time.Time     { return c.timestamp }
func (c *POICallout) IncludeInHistory() bool   { return true }
func (c *POICallout) IncludePrefixSound() bool { return true }
func (c *POICallout) Name() string             { return c.name }
func (c *POICallout) Location() geo.Location   { return c.location }

func (c *POICallout) Sounds(location *geo.Location, isRepeat bool, automotive bool) []sounds.Sound {
	out := []sounds.Sound{}
	if c.IncludePrefixSound() {
		out = append(out, sounds.Glyph(prefixGlyph(c.Origin())))
	}

	phrase := c.name
	if !automotive {
		if distance := c.DistanceDescription(location); distance != nil {
			direction := geo.CardinalDirection(location.BearingTo(c.location))
			phrase = fmt.Sprintf("%s, %s to the %s", c.name, *distance, direction)
		}
	}

	return append(out, sounds.SpokenAt(phrase, c.location))
}

func (c *POICallout) DistanceDescription(location *geo.Location) *string {
	if location == nil {
		return nil
	}
	description := geo.FormatDistance(location.DistanceTo(c.location), c.units)
	return &description
}

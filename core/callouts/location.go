package callouts

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/bnavac/soundscape/core/geo"
	"github.com/bnavac/soundscape/core/sounds"
)

// LocationCallout answers an explicit "where am I" request with the facing
// direction sampled when the request was made.
type LocationCallout struct {
	id        string
	timestamp time.Time

	heading geo.Heading
}

func NewLocationCallout(heading geo.Heading) *LocationCallout {
	return &LocationCallout{
		id:        uuid.NewString(),
		timestamp: time.Now(),
		heading:   heading,
	}
}

func (c *LocationCallout) ID() string               { return c.id }
func (c *LocationCallout) Origin() Origin           { return OriginLocation }
func (c *LocationCallout) Timestamp() time.Time     { return c.timestamp }
func (c *LocationCallout) IncludeInHistory() bool   { return true }
func (c *LocationCallout) IncludePrefixSound() bool { return true }

func (c *LocationCallout) Sounds(location *geo.Location, isRepeat bool, automotive bool) []sounds.Sound {
	heading := c.heading.Value()
	if heading == nil && location == nil {
		// Nothing meaningful to say.
		return nil
	}

	out := []sounds.Sound{}
	if c.IncludePrefixSound() {
		out = append(out, sounds.Glyph(prefixGlyph(c.Origin())))
	}

	if heading != nil {
		out = append(out, sounds.Spoken(fmt.Sprintf("Facing %s", geo.CardinalDirection(*heading))))
	} else {
		out = append(out, sounds.Spoken("Heading unknown"))
	}

	return out
}

func (c *LocationCallout) DistanceDescription(location *geo.Location) *string { return nil }

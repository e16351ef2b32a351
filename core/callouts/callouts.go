// Package callouts models candidate audio announcements derived from domain
// events, the groups that schedule them atomically, and the bounded history
// of what was said.
package callouts

import (
	"time"

	"github.com/bnavac/soundscape/core/geo"
	"github.com/bnavac/soundscape/core/sounds"
)

// Origin categorizes why a callout was produced. Origins drive filtering and
// the prefix glyph chosen for a callout.
type Origin string

const (
	OriginPOI      Origin = "poi"
	OriginWaypoint Origin = "waypoint"
	OriginLocation Origin = "location"
	OriginSystem   Origin = "system"
)

// Callout is one candidate announcement. Implementations are immutable after
// construction and must degrade gracefully: when the inputs cannot produce
// meaningful output, Sounds returns an empty list and the callout is skipped,
// never an error.
type Callout interface {
	ID() string
	Origin() Origin
	Timestamp() time.Time

	// IncludeInHistory reports whether the callout should be recorded after
	// it played.
	IncludeInHistory() bool
	// IncludePrefixSound reports whether a category glyph precedes the spoken
	// content.
	IncludePrefixSound() bool

	// Sounds produces the ordered audio for this callout. location is the
	// user's position at speak time and may be nil. isRepeat marks a replay
	// of an earlier episode. automotive requests shortened phrasing.
	Sounds(location *geo.Location, isRepeat bool, automotive bool) []sounds.Sound

	// DistanceDescription renders the distance from location to the callout
	// subject, or nil when the callout has no spatial subject or location is
	// unknown.
	DistanceDescription(location *geo.Location) *string
}

// prefixGlyph maps an origin to its sense glyph.
func prefixGlyph(origin Origin) string {
	switch origin {
	case OriginPOI:
		return sounds.GlyphPOISense
	case OriginWaypoint:
		return sounds.GlyphWaypointSense
	case OriginLocation:
		return sounds.GlyphLocationSense
	default:
		return sounds.GlyphAnnounceSense
	}
}

// Package generators translates domain events into callout groups. Manual
// generators answer explicit user commands; automatic generators react to
// state changes such as movement or route progress. The orchestrator consults
// generators in a fixed priority order and plays the first non-nil response.
package generators

import (
	"github.com/bnavac/soundscape/core/callouts"
	"github.com/bnavac/soundscape/core/events"
	"github.com/bnavac/soundscape/core/geo"
)

// Environment is the world state sampled at the moment an event is handled.
// Location and the heading components may be nil when no fix is available.
type Environment struct {
	Location        *geo.Location
	Heading         geo.Heading
	Units           geo.UnitSystem
	ProximityRadius float64
	Automotive      bool
}

// Response is the outcome of handling an event. A nil *Response means the
// generator did not recognize the event and the next generator should be
// consulted. A non-nil Response with a nil Group means the event was consumed
// without producing audio.
type Response struct {
	Group *callouts.Group
}

// Generator turns events it recognizes into callout groups.
//
// Handle must be idempotent against event kinds outside its RespondsTo set:
// return nil with no side effects.
type Generator interface {
	// Automatic reports whether the generator reacts to state changes rather
	// than explicit user commands. Automatic generators are muted when
	// automatic callouts are disabled.
	Automatic() bool
	RespondsTo(kind events.Kind) bool
	Handle(event events.Event, env Environment) *Response
}

// POI is a named point of interest.
type POI struct {
	Name     string
	Location geo.Location
}

// POISource yields the points of interest near a location, closest first.
type POISource interface {
	POIsNear(location geo.Location, radiusMeters float64) []POI
}

package events

import (
	"fmt"

	"github.com/bnavac/soundscape/core/geo"
)

const (
	KindLocationUpdated Kind = "geo.location_updated"
	KindHeadingUpdated  Kind = "geo.heading_updated"
)

type LocationUpdatedEvent struct {
	BaseEvent
	Location geo.Location
}

func (e LocationUpdatedEvent) String() string {
	return fmt.Sprintf("location updated (%.5f, %.5f)", e.Location.Latitude, e.Location.Longitude)
}

func NewLocationUpdatedEvent(location geo.Location, opts ...RebaseOption) LocationUpdatedEvent {
	base := NewBaseEvent(KindLocationUpdated)
	for _, opt := range opts {
		opt(&base)
	}

	return LocationUpdatedEvent{BaseEvent: base, Location: location}
}

type HeadingUpdatedEvent struct {
	BaseEvent
	Heading geo.Heading
}

func (e HeadingUpdatedEvent) String() string { return "heading updated" }

func NewHeadingUpdatedEvent(heading geo.Heading, opts ...RebaseOption) HeadingUpdatedEvent {
	base := NewBaseEvent(KindHeadingUpdated)
	for _, opt := range opts {
		opt(&base)
	}

	return HeadingUpdatedEvent{BaseEvent: base, Heading: heading}
}

package events

import (
	"fmt"

	"github.com/bnavac/soundscape/core/geo"
)

const (
	KindWaypointArrived  Kind = "route.waypoint_arrived"
	KindWaypointDeparted Kind = "route.waypoint_departed"
	KindWaypointDistance Kind = "route.waypoint_distance"
)

// Waypoint identifies one stop along an active route or tour.
type Waypoint struct {
	Index    int
	Name     string
	Location geo.Location
}

type WaypointArrivedEvent struct {
	BaseEvent
	Waypoint Waypoint
}

func (e WaypointArrivedEvent) String() string {
	return fmt.Sprintf("arrived at waypoint %d", e.Waypoint.Index)
}

func NewWaypointArrivedEvent(waypoint Waypoint, opts ...RebaseOption) WaypointArrivedEvent {
	base := NewBaseEvent(KindWaypointArrived)
	for _, opt := range opts {
		opt(&base)
	}

	return WaypointArrivedEvent{BaseEvent: base, Waypoint: waypoint}
}

type WaypointDepartedEvent struct {
	BaseEvent
	Waypoint Waypoint
}

func (e WaypointDepartedEvent) String() string {
	return fmt.Sprintf("departed waypoint %d", e.Waypoint.Index)
}

func NewWaypointDepartedEvent(waypoint Waypoint, opts ...RebaseOption) WaypointDepartedEvent {
	base := NewBaseEvent(KindWaypointDeparted)
	for _, opt := range opts {
		opt(&base)
	}

	return WaypointDepartedEvent{BaseEvent: base, Waypoint: waypoint}
}

type WaypointDistanceEvent struct {
	BaseEvent
	Waypoint Waypoint
}

func (e WaypointDistanceEvent) String() string {
	return fmt.Sprintf("distance update for waypoint %d", e.Waypoint.Index)
}

func NewWaypointDistanceEvent(waypoint Waypoint, opts ...RebaseOption) WaypointDistanceEvent {
	base := NewBaseEvent(KindWaypointDistance)
	for _, opt := range opts {
		opt(&base)
	}

	return WaypointDistanceEvent{BaseEvent: base, Waypoint: waypoint}
}

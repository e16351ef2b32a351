package generators

import (
	"github.com/bnavac/soundscape/core/callouts"
	"github.com/bnavac/soundscape/core/events"
)

// WaypointGenerator narrates route progress: arrivals, departures, and
// remaining-distance updates.
type WaypointGenerator struct{}

func NewWaypointGenerator() *WaypointGenerator { return &WaypointGenerator{} }

func (g *WaypointGenerator) Automatic() bool { return true }

func (g *WaypointGenerator) RespondsTo(kind events.Kind) bool {
	switch kind {
	case events.KindWaypointArrived, events.KindWaypointDeparted, events.KindWaypointDistance:
		return true
	}
	return false
}

func (g *WaypointGenerator) Handle(event events.Event, env Environment) *Response {
	var (
		phase    callouts.WaypointPhase
		waypoint events.Waypoint
		policy   callouts.PlaybackPolicy
	)

	switch e := event.(type) {
	case events.WaypointArrivedEvent:
		// Arrivals preempt whatever is being said; the user is there now.
		phase, waypoint, policy = callouts.WaypointArrival, e.Waypoint, callouts.PolicyInterruptAndClear
	case events.WaypointDepartedEvent:
		phase, waypoint, policy = callouts.WaypointDeparture, e.Waypoint, callouts.PolicyEnqueue
	case events.WaypointDistanceEvent:
		phase, waypoint, policy = callouts.WaypointDistance, e.Waypoint, callouts.PolicyEnqueue
	default:
		return nil
	}

	opts := []callouts.GroupOption{}
	if env.Location != nil {
		opts = append(opts, callouts.WithRepeatFrom(*env.Location))
	}

	callout := callouts.NewWaypointCallout(phase, waypoint.Index, waypoint.Name, waypoint.Location, env.Units)
	return &Response{Group: callouts.NewGroup([]callouts.Callout{callout}, policy, opts...)}
}

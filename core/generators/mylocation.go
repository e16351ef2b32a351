package generators

import (
	"github.com/bnavac/soundscape/core/callouts"
	"github.com/bnavac/soundscape/core/events"
)

// MyLocationGenerator answers the explicit "my location" command with the
// facing direction sampled when the command arrived.
type MyLocationGenerator struct{}

func NewMyLocationGenerator() *MyLocationGenerator { return &MyLocationGenerator{} }

func (g *MyLocationGenerator) Automatic() bool { return false }

func (g *MyLocationGenerator) RespondsTo(kind events.Kind) bool {
	return kind == events.KindMyLocation
}

func (g *MyLocationGenerator) Handle(event events.Event, env Environment) *Response {
	if !g.RespondsTo(event.Kind()) {
		return nil
	}

	opts := []callouts.GroupOption{callouts.WithPlayModeSounds()}
	if env.Location != nil {
		opts = append(opts, callouts.WithRepeatFrom(*env.Location))
	}

	group := callouts.NewGroup(
		[]callouts.Callout{callouts.NewLocationCallout(env.Heading)},
		callouts.PolicyInterruptAndClear,
		opts...,
	)
	return &Response{Group: group}
}

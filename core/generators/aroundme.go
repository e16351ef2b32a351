package generators

import (
	"github.com/bnavac/soundscape/core/callouts"
	"github.com/bnavac/soundscape/core/events"
)

// aroundMeLimit caps how many nearby places one "around me" request narrates.
const aroundMeLimit = 4

// AroundMeGenerator answers the explicit "around me" command with the
// closest points of interest.
type AroundMeGenerator struct {
	pois POISource
}

func NewAroundMeGenerator(pois POISource) *AroundMeGenerator {
	return &AroundMeGenerator{pois: pois}
}

func (g *AroundMeGenerator) Automatic() bool { return false }

func (g *AroundMeGenerator) RespondsTo(kind events.Kind) bool {
	return kind == events.KindAroundMe
}

func (g *AroundMeGenerator) Handle(event events.Event, env Environment) *Response {
	if !g.RespondsTo(event.Kind()) {
		return nil
	}

	if env.Location == nil || g.pois == nil {
		group := callouts.NewGroup(
			[]callouts.Callout{callouts.NewAnnouncementCallout("Your location is unknown")},
			callouts.PolicyInterruptAndClear,
			callouts.WithPlayModeSounds(),
		)
		return &Response{Group: group}
	}

	pois := g.pois.POIsNear(*env.Location, env.ProximityRadius)
	if len(pois) > aroundMeLimit {
		pois = pois[:aroundMeLimit]
	}

	if len(pois) == 0 {
		group := callouts.NewGroup(
			[]callouts.Callout{callouts.NewAnnouncementCallout("Nothing to call out right now")},
			callouts.PolicyInterruptAndClear,
			callouts.WithPlayModeSounds(),
		)
		return &Response{Group: group}
	}

	groupCallouts := make([]callouts.Callout, 0, len(pois))
	for _, poi := range pois {
		groupCallouts = append(groupCallouts, callouts.NewPOICallout(poi.Name, poi.Location, env.Units))
	}

	group := callouts.NewGroup(
		groupCallouts,
		callouts.PolicyInterruptAndClear,
		callouts.WithPlayModeSounds(),
		callouts.WithRepeatFrom(*env.Location),
	)
	return &Response{Group: group}
}

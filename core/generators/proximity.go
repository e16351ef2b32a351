package generators

import (
	"sync"

	"github.com/bnavac/soundscape/core/callouts"
	"github.com/bnavac/soundscape/core/events"
	"github.com/bnavac/soundscape/core/geo"
)

// ProximityGenerator announces points of interest as the user moves within
// range of them. Each place is announced once; it becomes eligible again only
// after the user moves well clear of it.
type ProximityGenerator struct {
	pois POISource

	mu        sync.Mutex
	announced map[string]geo.Location
}

func NewProximityGenerator(pois POISource) *ProximityGenerator {
	return &ProximityGenerator{
		pois:      pois,
		announced: map[string]geo.Location{},
	}
}

func (g *ProximityGenerator) Automatic() bool { return true }

func (g *ProximityGenerator) RespondsTo(kind events.Kind) bool {
	return kind == events.KindLocationUpdated
}

func (g *ProximityGenerator) Handle(event events.Event, env Environment) *Response {
	locationEvent, ok := event.(events.LocationUpdatedEvent)
	if !ok {
		return nil
	}
	if g.pois == nil || env.ProximityRadius <= 0 {
		return &Response{}
	}

	location := locationEvent.Location

	g.mu.Lock()
	// Moving well clear of a place re-arms it for a future announcement.
	for name, poiLocation := range g.announced {
		if location.DistanceTo(poiLocation) > 2*env.ProximityRadius {
			delete(g.announced, name)
		}
	}

	fresh := []POI{}
	for _, poi := range g.pois.POIsNear(location, env.ProximityRadius) {
		if _, seen := g.announced[poi.Name]; seen {
			continue
		}
		g.announced[poi.Name] = poi.Location
		fresh = append(fresh, poi)
	}
	g.mu.Unlock()

	if len(fresh) == 0 {
		return &Response{}
	}

	groupCallouts := make([]callouts.Callout, 0, len(fresh))
	for _, poi := range fresh {
		logger.Debug("announcing nearby place", "name", poi.Name)
		groupCallouts = append(groupCallouts, callouts.NewPOICallout(poi.Name, poi.Location, env.Units))
	}

	group := callouts.NewGroup(
		groupCallouts,
		callouts.PolicyEnqueue,
		callouts.WithRepeatFrom(location),
	)
	return &Response{Group: group}
}

// Package orchestration is the single authority over what is audible right
// now. It routes domain events through an ordered generator list, schedules
// the resulting callout groups (at most one playing at any instant), and
// bridges group playback to the audio output boundary.
package orchestration

import (
	"context"
	"sync"

	"github.com/bnavac/soundscape/core/callouts"
	"github.com/bnavac/soundscape/core/events"
	"github.com/bnavac/soundscape/core/generators"
	"github.com/bnavac/soundscape/core/geo"
	"github.com/bnavac/soundscape/core/settings"
	"github.com/bnavac/soundscape/core/synthesis"
)

type Orchestrator struct {
	generators      []generators.Generator
	engine          synthesis.Engine
	audioOutput     audioOutput
	locations       LocationProvider
	settings        *settings.Settings
	history         *callouts.History
	historyDelegate callouts.HistoryDelegate
	groupDelegate   callouts.GroupDelegate

	loop    *eventLoop
	tracked *trackedLocation

	// mu guards the scheduling state: the single playing slot, the pending
	// FIFO, and the repeat anchor.
	mu         sync.Mutex
	pending    []*callouts.Group
	playing    *playingGroup
	lastPlayed *callouts.Group

	baseContext context.Context
	closeOnce   sync.Once
}

type playingGroup struct {
	group  *callouts.Group
	cancel context.CancelFunc
}

func NewOrchestrator(opts ...OrchestratorOption) *Orchestrator {
	tracked := &trackedLocation{}

	o := &Orchestrator{
		settings:      settings.Default(),
		groupDelegate: noopGroupDelegate{},
		loop:          newEventLoop(),
		tracked:       tracked,
		locations:     tracked,
		baseContext:   context.Background(),
	}

	for _, opt := range opts {
		opt(o)
	}

	historyOpts := []callouts.HistoryOption{}
	if o.historyDelegate != nil {
		historyOpts = append(historyOpts, callouts.WithHistoryDelegate(o.historyDelegate))
	}
	o.history = callouts.NewHistory(o.settings.HistoryDepth(), historyOpts...)

	return o
}

// Orchestrate starts the event loop. ctx cancellation closes the
// orchestrator.
//
// Contract: call Orchestrate at most once per orchestrator instance.
func (o *Orchestrator) Orchestrate(ctx context.Context) {
	if o == nil {
		return
	}

	o.baseContext = ctx
	if started := o.loop.StartLoop(ctx, o.routeEvent); started {
		go func() {
			<-ctx.Done()
			o.Close()
		}()
	}
}

// Close stops event intake, interrupts whatever is playing, and waits for the
// event loop to drain. Idempotent.
func (o *Orchestrator) Close() {
	if o == nil {
		return
	}

	o.closeOnce.Do(func() {
		o.loop.Stop()

		o.mu.Lock()
		playing := o.playing
		dropped := o.pending
		o.pending = nil
		o.mu.Unlock()

		interruptGroups(dropped)
		if playing != nil {
			playing.cancel()
		}

		o.loop.AwaitDone()
	})
}

// Ingest queues a domain event for routing. Returns false once the
// orchestrator is closed or the queue is unavailable.
func (o *Orchestrator) Ingest(event events.Event) bool {
	if o == nil {
		return false
	}
	return o.loop.Ingest(event)
}

// UpdateLocation reports a new position fix.
func (o *Orchestrator) UpdateLocation(location geo.Location) bool {
	return o.Ingest(events.NewLocationUpdatedEvent(location))
}

// UpdateHeading reports new heading information. Unset components keep their
// previous value.
func (o *Orchestrator) UpdateHeading(heading geo.Heading) bool {
	return o.Ingest(events.NewHeadingUpdatedEvent(heading))
}

// AnnounceMyLocation asks for an immediate "where am I" callout.
func (o *Orchestrator) AnnounceMyLocation() bool {
	return o.Ingest(events.NewMyLocationEvent())
}

// AnnounceAroundMe asks for an immediate narration of nearby places.
func (o *Orchestrator) AnnounceAroundMe() bool {
	return o.Ingest(events.NewAroundMeEvent())
}

// Announce speaks a free-form system notice.
func (o *Orchestrator) Announce(text string) bool {
	return o.Ingest(events.NewAnnouncementEvent(text))
}

// RepeatLast replays the most recently played group.
func (o *Orchestrator) RepeatLast() bool {
	return o.Ingest(events.NewRepeatCalloutsEvent())
}

// SetCalloutsEnabled toggles automatic callouts and speaks a confirmation.
func (o *Orchestrator) SetCalloutsEnabled(enabled bool) bool {
	return o.Ingest(events.NewCalloutsToggledEvent(enabled))
}

// History returns the bounded record of played callouts.
func (o *Orchestrator) History() *callouts.History {
	if o == nil {
		return nil
	}
	return o.history
}

// routeEvent runs on the event loop goroutine; generator consultation and
// scheduling decisions are serialized here.
func (o *Orchestrator) routeEvent(ctx context.Context, event events.Event) {
	switch e := event.(type) {
	case events.LocationUpdatedEvent:
		location := e.Location
		o.tracked.update(&location, nil)
		o.audioOutput.UpdateListener(&location, o.locations.Heading().Value())
	case events.HeadingUpdatedEvent:
		heading := e.Heading
		o.tracked.update(nil, &heading)
		o.audioOutput.UpdateListener(o.locations.Location(), heading.Value())
	case events.CalloutsToggledEvent:
		o.settings.SetAutomaticCallouts(e.Enabled)
		if !e.Enabled {
			// Events queued behind the toggle describe a world the user
			// just muted; drop them before they are routed.
			o.loop.Clear()
		}
	case events.RepeatCalloutsEvent:
		o.repeatLastGroup()
		return
	}

	automaticEnabled := o.settings.AutomaticCalloutsEnabled()

	env := generators.Environment{
		Location:        o.locations.Location(),
		Heading:         o.locations.Heading(),
		Units:           o.settings.Units(),
		ProximityRadius: o.settings.ProximityRadius(),
		Automotive:      o.settings.AutomotiveMode(),
	}

	for _, generator := range o.generators {
		if !generator.RespondsTo(event.Kind()) {
			continue
		}
		// The on/off confirmation must play even while automatic callouts
		// are muted, otherwise toggling back on would be silent.
		if generator.Automatic() && !automaticEnabled && event.Kind() != events.KindCalloutsToggled {
			continue
		}

		response := generator.Handle(event, env)
		if response == nil {
			continue
		}
		if response.Group != nil {
			o.submit(response.Group)
		}
		return
	}
	// Nobody handled the event; that is not an error.
}

func (o *Orchestrator) repeatLastGroup() {
	o.mu.Lock()
	last := o.lastPlayed
	o.mu.Unlock()
	if last == nil {
		return
	}

	opts := []callouts.GroupOption{callouts.AsRepeat()}
	if anchor := last.RepeatFrom(); anchor != nil {
		opts = append(opts, callouts.WithRepeatFrom(*anchor))
	}
	if last.PlayModeSounds() {
		opts = append(opts, callouts.WithPlayModeSounds())
	}

	o.submit(callouts.NewGroup(last.Callouts(), callouts.PolicyInterruptAndClear, opts...))
}

// submit schedules a group per its policy. Callouts whose origin is disabled
// in settings are filtered out first; a fully filtered group is dropped.
func (o *Orchestrator) submit(group *callouts.Group) {
	group = o.filterByOrigin(group)
	if group == nil {
		return
	}

	o.mu.Lock()

	if group.Policy() == callouts.PolicyInterruptAndClear {
		dropped := o.pending
		o.pending = nil
		if o.playing != nil {
			// The new group starts once the interrupted player winds down
			// and reports back.
			o.pending = append(o.pending, group)
			playing := o.playing
			o.mu.Unlock()
			interruptGroups(dropped)
			playing.cancel()
			return
		}
		o.startLocked(group)
		o.mu.Unlock()
		interruptGroups(dropped)
		return
	}

	if o.playing != nil {
		o.pending = append(o.pending, group)
		o.mu.Unlock()
		return
	}
	o.startLocked(group)
	o.mu.Unlock()
}

// interruptGroups fires the terminal lifecycle notifications for groups that
// left the pending queue without ever playing. Callers must not hold mu.
func interruptGroups(groups []*callouts.Group) {
	for _, group := range groups {
		group.Interrupt()
	}
}

// startLocked promotes a group to the playing slot. Callers hold mu.
func (o *Orchestrator) startLocked(group *callouts.Group) {
	playCtx, cancel := context.WithCancel(o.baseContext)
	o.playing = &playingGroup{group: group, cancel: cancel}

	player := &groupPlayer{
		engine:     o.engine,
		output:     &o.audioOutput,
		delegate:   o.groupDelegate,
		locations:  o.locations,
		voice:      o.settings.Voice(),
		automotive: o.settings.AutomotiveMode(),
		onCalloutPlayed: func(callout callouts.Callout) {
			if callout.IncludeInHistory() {
				o.history.Insert(callout)
			}
		},
	}

	go func() {
		defer cancel()
		player.play(playCtx, group)
		o.playbackFinished(group)
	}()
}

func (o *Orchestrator) playbackFinished(group *callouts.Group) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.playing != nil && o.playing.group == group {
		o.playing = nil
	}
	if !group.IsRepeat() {
		o.lastPlayed = group
	}

	if len(o.pending) > 0 && o.loop.CanIngest() {
		next := o.pending[0]
		o.pending = o.pending[1:]
		o.startLocked(next)
	}
}

// trackedLocation is the default provider, fed by location and heading
// events flowing through the orchestrator.
type trackedLocation struct {
	mu       sync.RWMutex
	location *geo.Location
	heading  geo.Heading
}

func (t *trackedLocation) Location() *geo.Location {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if t.location == nil {
		return nil
	}
	location := *t.location
	return &location
}

func (t *trackedLocation) Heading() geo.Heading {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.heading
}

// update merges new data; unset heading components keep their last value.
func (t *trackedLocation) update(location *geo.Location, heading *geo.Heading) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if location != nil {
		loc := *location
		t.location = &loc
	}
	if heading != nil {
		if heading.Course != nil {
			t.heading.Course = heading.Course
		}
		if heading.Device != nil {
			t.heading.Device = heading.Device
		}
		if heading.User != nil {
			t.heading.User = heading.User
		}
	}
}

func (o *Orchestrator) filterByOrigin(group *callouts.Group) *callouts.Group {
	allCallouts := group.Callouts()
	allowed := make([]callouts.Callout, 0, len(allCallouts))
	for _, callout := range allCallouts {
		if o.settings.OriginEnabled(string(callout.Origin())) {
			allowed = append(allowed, callout)
		}
	}

	if len(allowed) == len(allCallouts) {
		return group
	}
	if len(allowed) == 0 {
		logger.Debug("dropping group, all origins disabled", "group", group.ID())
		return nil
	}

	opts := []callouts.GroupOption{}
	if group.PlayModeSounds() {
		opts = append(opts, callouts.WithPlayModeSounds())
	}
	if group.IsRepeat() {
		opts = append(opts, callouts.AsRepeat())
	}
	if anchor := group.RepeatFrom(); anchor != nil {
		opts = append(opts, callouts.WithRepeatFrom(*anchor))
	}
	return callouts.NewGroup(allowed, group.Policy(), opts...)
}

// noopGroupDelegate keeps every callout live and observes nothing.
type noopGroupDelegate struct{}

func (noopGroupDelegate) CalloutsStarted(*callouts.Group)                   {}
func (noopGroupDelegate) CalloutsSkipped(*callouts.Group)                   {}
func (noopGroupDelegate) CalloutsCompleted(*callouts.Group)                 {}
func (noopGroupDelegate) CalloutStarting(callouts.Callout)                  {}
func (noopGroupDelegate) CalloutSkipped(callouts.Callout)                   {}
func (noopGroupDelegate) CalloutFinished(callouts.Callout, bool)            {}
func (noopGroupDelegate) IsCalloutWithinRegionToLive(callouts.Callout) bool { return true }

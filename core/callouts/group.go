package callouts

import (
	"sync"

	"github.com/google/uuid"

	"github.com/bnavac/soundscape/core/geo"
)

// PlaybackPolicy decides how a group is scheduled against whatever is
// currently audible.
type PlaybackPolicy int

const (
	// PolicyEnqueue appends the group behind anything pending; submission
	// order among enqueued groups is preserved.
	PolicyEnqueue PlaybackPolicy = iota
	// PolicyInterruptAndClear cancels the playing group, drops everything
	// pending, and plays immediately.
	PolicyInterruptAndClear
)

func (p PlaybackPolicy) String() string {
	if p == PolicyInterruptAndClear {
		return "interrupt_and_clear"
	}
	return "enqueue"
}

// GroupState is the playback lifecycle of one announcement episode.
type GroupState int

const (
	GroupQueued GroupState = iota
	GroupPlaying
	GroupCompleted
	GroupInterrupted
)

func (s GroupState) String() string {
	switch s {
	case GroupQueued:
		return "queued"
	case GroupPlaying:
		return "playing"
	case GroupCompleted:
		return "completed"
	case GroupInterrupted:
		return "interrupted"
	}
	return "unknown"
}

// GroupDelegate observes group and per-callout lifecycle. Callbacks fire from
// the playback context; implementations must not block.
type GroupDelegate interface {
	CalloutsStarted(group *Group)
	// CalloutsSkipped fires instead of CalloutsCompleted when no callout in
	// the group produced audio.
	CalloutsSkipped(group *Group)
	CalloutsCompleted(group *Group)

	CalloutStarting(callout Callout)
	CalloutSkipped(callout Callout)
	CalloutFinished(callout Callout, completed bool)

	// IsCalloutWithinRegionToLive gates a queued callout right before it is
	// spoken, letting the owner invalidate callouts that went stale while
	// waiting.
	IsCalloutWithinRegionToLive(callout Callout) bool
}

// Group is an ordered, atomically-scheduled run of callouts. At most one
// group is in the playing state system-wide; the orchestrator enforces that
// invariant.
type Group struct {
	id string

	mu       sync.Mutex
	state    GroupState
	callouts []Callout
	cursor   int

	policy         PlaybackPolicy
	playModeSounds bool
	isRepeat       bool
	repeatFrom     *geo.Location

	onComplete   func(finished bool)
	completeOnce sync.Once
}

type GroupOption func(*Group)

// WithPlayModeSounds prepends a mode glyph before the group's first callout.
func WithPlayModeSounds() GroupOption {
	return func(g *Group) { g.playModeSounds = true }
}

// WithRepeatFrom anchors the group so it can later be replayed against the
// location it originally described.
func WithRepeatFrom(location geo.Location) GroupOption {
	return func(g *Group) {
		loc := location
		g.repeatFrom = &loc
	}
}

// AsRepeat marks the group as a replay of an earlier episode; callouts are
// asked for their repeat phrasing.
func AsRepeat() GroupOption {
	return func(g *Group) { g.isRepeat = true }
}

// WithCompletion registers a callback invoked exactly once when the group
// reaches a terminal state. finished is true only for normal completion.
func WithCompletion(onComplete func(finished bool)) GroupOption {
	return func(g *Group) {
		if onComplete != nil {
			g.onComplete = onComplete
		}
	}
}

func NewGroup(groupCallouts []Callout, policy PlaybackPolicy, opts ...GroupOption) *Group {
	group := &Group{
		id:         uuid.NewString(),
		state:      GroupQueued,
		callouts:   append([]Callout(nil), groupCallouts...),
		policy:     policy,
		onComplete: func(bool) {},
	}

	for _, opt := range opts {
		opt(group)
	}

	return group
}

func (g *Group) ID() string             { return g.id }
func (g *Group) Policy() PlaybackPolicy { return g.policy }
func (g *Group) PlayModeSounds() bool   { return g.playModeSounds }
func (g *Group) IsRepeat() bool         { return g.isRepeat }

// RepeatFrom returns a copy of the anchor location, or nil when the group is
// not repeatable from a fixed point.
func (g *Group) RepeatFrom() *geo.Location {
	if g == nil || g.repeatFrom == nil {
		return nil
	}
	loc := *g.repeatFrom
	return &loc
}

func (g *Group) State() GroupState {
	if g == nil {
		return GroupQueued
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state
}

// Callouts returns the full ordered callout list regardless of playback
// progress, so an episode can be rebuilt for repeats.
func (g *Group) Callouts() []Callout {
	if g == nil {
		return nil
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]Callout(nil), g.callouts...)
}

// NextCallout advances the playback cursor. ok is false once the queue is
// exhausted or the group left the playing state.
func (g *Group) NextCallout() (callout Callout, ok bool) {
	if g == nil {
		return nil, false
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	if g.state != GroupPlaying || g.cursor >= len(g.callouts) {
		return nil, false
	}

	callout = g.callouts[g.cursor]
	g.cursor++
	return callout, true
}

// Start transitions Queued to Playing. Returns false when the group already
// left the queued state.
func (g *Group) Start() bool {
	if g == nil {
		return false
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	if g.state != GroupQueued {
		return false
	}
	g.state = GroupPlaying
	return true
}

// Complete transitions Playing to Completed and fires the completion callback
// with finished set. Calling Complete on a terminal group is a no-op.
func (g *Group) Complete() {
	g.finish(GroupCompleted, true)
}

// Interrupt transitions Queued or Playing to Interrupted and fires the
// completion callback with finished unset. Idempotent.
func (g *Group) Interrupt() {
	g.finish(GroupInterrupted, false)
}

func (g *Group) finish(terminal GroupState, finished bool) {
	if g == nil {
		return
	}

	g.mu.Lock()
	if g.state == GroupCompleted || g.state == GroupInterrupted {
		g.mu.Unlock()
		return
	}
	g.state = terminal
	onComplete := g.onComplete
	g.mu.Unlock()

	g.completeOnce.Do(func() { onComplete(finished) })
}

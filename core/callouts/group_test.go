package callouts

import (
	"testing"

	"github.com/bnavac/soundscape/core/geo"
)

func TestGroupLifecycleHappyPath(t *testing.T) {
	completions := []bool{}
	group := NewGroup(
		[]Callout{NewAnnouncementCallout("hello")},
		PolicyEnqueue,
		WithCompletion(func(finished bool) { completions = append(completions, finished) }),
	)

	if group.State() != GroupQueued {
		t.Fatalf("expected new group to be queued, got %s", group.State())
	}

	if !group.Start() {
		t.Fatalf("expected queued group to start")
	}
	if group.State() != GroupPlaying {
		t.Fatalf("expected playing state, got %s", group.State())
	}

	group.Complete()
	if group.State() != GroupCompleted {
		t.Fatalf("expected completed state, got %s", group.State())
	}
	if len(completions) != 1 || !completions[0] {
		t.Fatalf("expected one completion callback with finished=true, got %v", completions)
	}
}

func TestGroupInterruptFiresCallbackWithFinishedFalse(t *testing.T) {
	completions := []bool{}
	group := NewGroup(nil, PolicyInterruptAndClear,
		WithCompletion(func(finished bool) { completions = append(completions, finished) }))

	group.Start()
	group.Interrupt()

	if group.State() != GroupInterrupted {
		t.Fatalf("expected interrupted state, got %s", group.State())
	}
	if len(completions) != 1 || completions[0] {
		t.Fatalf("expected one completion callback with finished=false, got %v", completions)
	}
}

func TestGroupTerminalTransitionsAreIdempotent(t *testing.T) {
	calls := 0
	group := NewGroup(nil, PolicyEnqueue, WithCompletion(func(bool) { calls++ }))

	group.Start()
	group.Complete()
	group.Complete()
	group.Interrupt()

	if group.State() != GroupCompleted {
		t.Fatalf("expected terminal state to stick, got %s", group.State())
	}
	if calls != 1 {
		t.Fatalf("expected completion callback to fire exactly once, got %d", calls)
	}
}

func TestGroupStartIsSingleShot(t *testing.T) {
	group := NewGroup(nil, PolicyEnqueue)

	if !group.Start() {
		t.Fatalf("expected first start to succeed")
	}
	if group.Start() {
		t.Fatalf("expected second start to be rejected")
	}
}

func TestNextCalloutWalksInOrderWhilePlaying(t *testing.T) {
	first := NewAnnouncementCallout("first")
	second := NewAnnouncementCallout("second")
	group := NewGroup([]Callout{first, second}, PolicyEnqueue)

	if _, ok := group.NextCallout(); ok {
		t.Fatalf("expected no callouts before the group starts playing")
	}

	group.Start()

	got, ok := group.NextCallout()
	if !ok || got.ID() != first.ID() {
		t.Fatalf("expected first callout in order")
	}
	got, ok = group.NextCallout()
	if !ok || got.ID() != second.ID() {
		t.Fatalf("expected second callout in order")
	}
	if _, ok := group.NextCallout(); ok {
		t.Fatalf("expected exhausted group to yield no callout")
	}
}

func TestNextCalloutStopsAfterInterrupt(t *testing.T) {
	group := NewGroup([]Callout{NewAnnouncementCallout("a"), NewAnnouncementCallout("b")}, PolicyEnqueue)
	group.Start()

	if _, ok := group.NextCallout(); !ok {
		t.Fatalf("expected a callout while playing")
	}

	group.Interrupt()
	if _, ok := group.NextCallout(); ok {
		t.Fatalf("expected no callouts after interruption")
	}
}

func TestRepeatFromReturnsCopy(t *testing.T) {
	anchor := geo.Location{Latitude: 1, Longitude: 2}
	group := NewGroup(nil, PolicyEnqueue, WithRepeatFrom(anchor))

	got := group.RepeatFrom()
	if got == nil {
		t.Fatalf("expected repeat anchor to be set")
	}
	got.Latitude = 99
	if second := group.RepeatFrom(); second.Latitude != 1 {
		t.Fatalf("expected anchor mutation to not leak, got latitude %f", second.Latitude)
	}
}

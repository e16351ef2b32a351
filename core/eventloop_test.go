package orchestration

import (
	"context"
	"testing"
	"time"

	"github.com/bnavac/soundscape/core/events"
)

func TestEventLoopProcessesInOrder(t *testing.T) {
	loop := newEventLoop()
	defer loop.Stop()

	seen := make(chan events.Kind, 8)
	if started := loop.StartLoop(context.Background(), func(_ context.Context, event events.Event) {
		seen <- event.Kind()
	}); !started {
		t.Fatal("expected loop to start")
	}

	loop.Ingest(events.NewMyLocationEvent())
	loop.Ingest(events.NewAroundMeEvent())

	for _, want := range []events.Kind{events.KindMyLocation, events.KindAroundMe} {
		select {
		case got := <-seen:
			if got != want {
				t.Fatalf("expected %s, got %s", want, got)
			}
		case <-time.After(time.Second):
			t.Fatalf("timed out waiting for %s", want)
		}
	}
}

func TestEventLoopRefusesIngestAfterStop(t *testing.T) {
	loop := newEventLoop()
	loop.StartLoop(context.Background(), func(context.Context, events.Event) {})

	loop.Stop()
	loop.AwaitDone()

	if loop.CanIngest() {
		t.Fatal("expected a stopped loop to refuse ingestion")
	}
	if loop.Ingest(events.NewMyLocationEvent()) {
		t.Fatal("expected ingest to fail after stop")
	}
}

func TestEventLoopClearDropsQueuedEvents(t *testing.T) {
	loop := newEventLoop()
	defer loop.Stop()

	for i := 0; i < 5; i++ {
		loop.Ingest(events.NewMyLocationEvent())
	}
	if loop.queuedEventCount() != 5 {
		t.Fatalf("expected 5 queued events, got %d", loop.queuedEventCount())
	}

	loop.Clear()
	if loop.queuedEventCount() != 0 {
		t.Fatalf("expected empty queue after clear, got %d", loop.queuedEventCount())
	}
}

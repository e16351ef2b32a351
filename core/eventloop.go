package orchestration

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/bnavac/soundscape/core/events"
)

const eventQueueCapacity = 32

// eventLoop serializes domain events onto a single goroutine so group state
// transitions are never evaluated concurrently with each other.
type eventLoop struct {
	queue   chan eventQueueItem
	closeCh chan struct{}
	done    chan struct{}

	startOnce sync.Once
	endOnce   sync.Once

	started atomic.Bool
}

func newEventLoop() *eventLoop {
	return &eventLoop{
		queue:   make(chan eventQueueItem, eventQueueCapacity),
		closeCh: make(chan struct{}),
		done:    make(chan struct{}),
	}
}

func (loop *eventLoop) CanIngest() bool {
	if loop == nil {
		return false
	}

	select {
	case <-loop.closeCh:
		return false
	default:
		return true
	}
}

func (loop *eventLoop) StartLoop(baseCtx context.Context, route func(context.Context, events.Event)) (started bool) {
	if loop == nil || route == nil || !loop.CanIngest() {
		return false
	}

	loop.startOnce.Do(func() {
		started = true
		loop.started.Store(true)
		go func() {
			defer close(loop.done)

			for {
				select {
				case <-loop.closeCh:
					return
				case queuedEvent := <-loop.queue:
					if !loop.CanIngest() {
						return
					}
					loop.processQueuedEvent(baseCtx, queuedEvent, route)
				}
			}
		}()
	})

	return started
}

func (loop *eventLoop) Stop() {
	if loop == nil {
		return
	}

	loop.endOnce.Do(func() { close(loop.closeCh) })
}

// Clear drops everything still queued without stopping the loop.
func (loop *eventLoop) Clear() {
	if loop == nil {
		return
	}

	for {
		select {
		case <-loop.queue:
		default:
			return
		}
	}
}

func (loop *eventLoop) AwaitDone() {
	if loop == nil {
		return
	}

	if loop.started.Load() {
		<-loop.done
	}
}

type eventQueueItem struct {
	event    events.Event
	queuedAt time.Time
}

func (loop *eventLoop) Ingest(event events.Event) bool {
	if loop == nil || !loop.CanIngest() {
		return false
	}

	queueItem := eventQueueItem{event: event, queuedAt: time.Now()}
	select {
	case <-loop.closeCh:
		return false
	case loop.queue <- queueItem:
		return true
	}
}

func (loop *eventLoop) processQueuedEvent(
	baseContext context.Context,
	queuedEvent eventQueueItem,
	route func(context.Context, events.Event),
) {
	eventCtx, eventCancel := context.WithCancel(baseContext)
	defer eventCancel()

	go func() {
		select {
		case <-loop.closeCh:
			eventCancel()
		case <-eventCtx.Done():
		}
	}()

	ctx, span := tracer.Start(eventCtx, "route event")
	defer span.End()

	queuedTime := time.Since(queuedEvent.queuedAt).Seconds()
	span.AddEvent("taken out of queue", trace.WithAttributes(attribute.Float64("event.queued_time", queuedTime)))
	span.SetAttributes(
		attribute.Float64("event.queued_time", queuedTime),
		attribute.String("event.kind", string(queuedEvent.event.Kind())),
	)

	route(ctx, queuedEvent.event)
}

func (loop *eventLoop) queuedEventCount() int {
	if loop == nil {
		return 0
	}

	return len(loop.queue)
}

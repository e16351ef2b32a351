package events

import "time"

type Kind string

// Event is the closed contract every domain event satisfies. The event
// vocabulary is enumerable; generators declare which kinds they respond to.
type Event interface {
	Kind() Kind
	Timestamp() time.Time
	String() string
}

type BaseEvent struct {
	kind      Kind
	timestamp time.Time
}

func NewBaseEvent(kind Kind) BaseEvent {
	return BaseEvent{kind: kind, timestamp: time.Now()}
}

func (b BaseEvent) Kind() Kind           { return b.kind }
func (b BaseEvent) Timestamp() time.Time { return b.timestamp }

type RebaseOption func(*BaseEvent)

// WithBase replaces the event base, preserving the original timestamp when an
// event is re-emitted in another shape.
func WithBase(base BaseEvent) RebaseOption {
	return func(o *BaseEvent) {
		kind := o.kind
		*o = base
		o.kind = kind
	}
}

package events

const (
	KindMyLocation     Kind = "user.my_location"
	KindAroundMe       Kind = "user.around_me"
	KindRepeatCallouts Kind = "user.repeat_callouts"
)

type MyLocationEvent struct{ BaseEvent }

func (e MyLocationEvent) String() string { return "my location" }

func NewMyLocationEvent(opts ...RebaseOption) MyLocationEvent {
	base := NewBaseEvent(KindMyLocation)
	for _, opt := range opts {
		opt(&base)
	}

	return MyLocationEvent{BaseEvent: base}
}

type AroundMeEvent struct{ BaseEvent }

func (e AroundMeEvent) String() string { return "around me" }

func NewAroundMeEvent(opts ...RebaseOption) AroundMeEvent {
	base := NewBaseEvent(KindAroundMe)
	for _, opt := range opts {
		opt(&base)
	}

	return AroundMeEvent{BaseEvent: base}
}

type RepeatCalloutsEvent struct{ BaseEvent }

func (e RepeatCalloutsEvent) String() string { return "repeat callouts" }

func NewRepeatCalloutsEvent(opts ...RebaseOption) RepeatCalloutsEvent {
	base := NewBaseEvent(KindRepeatCallouts)
	for _, opt := range opts {
		opt(&base)
	}

	return RepeatCalloutsEvent{BaseEvent: base}
}

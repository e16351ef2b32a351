package events

const (
	KindAnnouncement    Kind = "system.announcement"
	KindCalloutsToggled Kind = "system.callouts_toggled"
)

type AnnouncementEvent struct {
	BaseEvent
	Text string
}

func (e AnnouncementEvent) String() string { return e.Text }

func NewAnnouncementEvent(text string, opts ...RebaseOption) AnnouncementEvent {
	base := NewBaseEvent(KindAnnouncement)
	for _, opt := range opts {
		opt(&base)
	}

	return AnnouncementEvent{BaseEvent: base, Text: text}
}

type CalloutsToggledEvent struct {
	BaseEvent
	Enabled bool
}

func (e CalloutsToggledEvent) String() string {
	if e.Enabled {
		return "callouts enabled"
	}
	return "callouts disabled"
}

func NewCalloutsToggledEvent(enabled bool, opts ...RebaseOption) CalloutsToggledEvent {
	base := NewBaseEvent(KindCalloutsToggled)
	for _, opt := range opts {
		opt(&base)
	}

	return CalloutsToggledEvent{BaseEvent: base, Enabled: enabled}
}

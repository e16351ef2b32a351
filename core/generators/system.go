package generators

import (
	"github.com/bnavac/soundscape/core/callouts"
	"github.com/bnavac/soundscape/core/events"
	"github.com/bnavac/soundscape/core/sounds"
)

// SystemGenerator speaks application-level notices: free-form announcements
// and the callouts on/off confirmation.
type SystemGenerator struct{}

func NewSystemGenerator() *SystemGenerator { return &SystemGenerator{} }

func (g *SystemGenerator) Automatic() bool { return true }

func (g *SystemGenerator) RespondsTo(kind events.Kind) bool {
	return kind == events.KindAnnouncement || kind == events.KindCalloutsToggled
}

func (g *SystemGenerator) Handle(event events.Event, env Environment) *Response {
	switch e := event.(type) {
	case events.AnnouncementEvent:
		if e.Text == "" {
			return &Response{}
		}
		callout := callouts.NewAnnouncementCallout(e.Text, callouts.WithHistory())
		return &Response{Group: callouts.NewGroup(
			[]callouts.Callout{callout},
			callouts.PolicyEnqueue,
		)}
	case events.CalloutsToggledEvent:
		text, glyph := "Callouts off", sounds.GlyphCalloutsOff
		if e.Enabled {
			text, glyph = "Callouts on", sounds.GlyphCalloutsOn
		}
		callout := callouts.NewAnnouncementCallout(text, callouts.WithGlyph(glyph))
		// Toggling off must silence pending speech immediately.
		return &Response{Group: callouts.NewGroup(
			[]callouts.Callout{callout},
			callouts.PolicyInterruptAndClear,
		)}
	}
	return nil
}

package callouts

import (
	"time"

	"github.com/google/uuid"

	"github.com/bnavac/soundscape/core/geo"
	"github.com/bnavac/soundscape/core/sounds"
)

// AnnouncementCallout speaks a free-form system notice. It carries no spatial
// subject.
type AnnouncementCallout struct {
	id        string
	timestamp time.Time

	text             string
	includeInHistory bool
	prefixSound      bool
	glyph            string
}

type AnnouncementOption func(*AnnouncementCallout)

// WithHistory records the announcement in the callout history after it
// played.
func WithHistory() AnnouncementOption {
	return func(c *AnnouncementCallout) { c.includeInHistory = true }
}

// WithoutPrefixSound drops the announce glyph in front of the spoken text.
func WithoutPrefixSound() AnnouncementOption {
	return func(c *AnnouncementCallout) { c.prefixSound = false }
}

// WithGlyph replaces the default announce glyph with a specific asset.
func WithGlyph(asset string) AnnouncementOption {
	return func(c *AnnouncementCallout) { c.glyph = asset }
}

func NewAnnouncementCallout(text string, opts ...AnnouncementOption) *AnnouncementCallout {
	callout := &AnnouncementCallout{
		id:          uuid.NewString(),
		timestamp:   time.Now(),
		text:        text,
		prefixSound: true,
	}
	for _, opt := range opts {
		opt(callout)
	}
	return callout
}

func (c *AnnouncementCallout) ID() string               { return c.id }
func (c *AnnouncementCallout) Origin() Origin           { return OriginSystem }
func (c *AnnouncementCallout) Timestamp() time.Time     { return c.timestamp }
func (c *AnnouncementCallout) IncludeInHistory() bool   { return c.includeInHistory }
func (c *AnnouncementCallout) IncludePrefixSound() bool { return c.prefixSound }
func (c *AnnouncementCallout) Text() string             { return c.text }

func (c *AnnouncementCallout) Sounds(location *geo.Location, isRepeat bool, automotive bool) []sounds.Sound {
	if c.text == "" {
		return nil
	}

	out := []sounds.Sound{}
	if c.prefixSound {
		glyph := c.glyph
		if glyph == "" {
			glyph = prefixGlyph(c.Origin())
		}
		out = append(out, sounds.Glyph(glyph))
	}
	return append(out, sounds.Spoken(c.text))
}

func (c *AnnouncementCallout) DistanceDescription(location *geo.Location) *string { return nil }

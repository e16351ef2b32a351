// Package sounds defines the immutable description of one unit of audio: a
// short non-speech glyph, a spoken phrase, or a layered combination of both.
// A Sound carries no playback state; it is handed to the audio boundary by
// whichever callout produced it.
package sounds

import (
	"fmt"

	"github.com/bnavac/soundscape/core/geo"
)

// MaxLayers bounds how many component sounds a layered sound may combine.
const MaxLayers = 4

type Kind string

const (
	KindGlyph   Kind = "glyph"
	KindSpoken  Kind = "spoken"
	KindLayered Kind = "layered"
)

// Glyph asset identifiers known to the audio boundary.
const (
	GlyphEnterMode     = "mode_enter"
	GlyphExitMode      = "mode_exit"
	GlyphPOISense      = "poi_sense"
	GlyphMobilitySense = "mobility_sense"
	GlyphSafetySense   = "safety_sense"
	GlyphLocationSense = "location_sense"
	GlyphWaypointSense = "waypoint_sense"
	GlyphAnnounceSense = "announce_sense"
	GlyphCalloutsOn    = "callouts_on"
	GlyphCalloutsOff   = "callouts_off"
)

// Sound is a tagged variant over glyph, spoken, and layered audio. Instances
// are immutable once constructed.
type Sound struct {
	kind     Kind
	glyph    string
	text     string
	location *geo.Location
	layers   []Sound
}

// Glyph builds a short non-speech cue referencing a known asset id.
func Glyph(asset string) Sound {
	return Sound{kind: KindGlyph, glyph: asset}
}

// Spoken builds a spoken phrase with no spatial binding.
func Spoken(text string) Sound {
	return Sound{kind: KindSpoken, text: text}
}

// SpokenAt builds a spoken phrase anchored to a location so the audio
// boundary can spatialize it.
func SpokenAt(text string, location geo.Location) Sound {
	loc := location
	return Sound{kind: KindSpoken, text: text, location: &loc}
}

// Layered combines up to MaxLayers sounds into one unit played as a single
// episode.
func Layered(layers ...Sound) (Sound, error) {
	if len(layers) == 0 {
		return Sound{}, fmt.Errorf("layered sound needs at least one layer")
	}
	if len(layers) > MaxLayers {
		return Sound{}, fmt.Errorf("layered sound supports at most %d layers, got %d", MaxLayers, len(layers))
	}

	copied := append([]Sound(nil), layers...)
	return Sound{kind: KindLayered, layers: copied}, nil
}

func (s Sound) Kind() Kind { return s.kind }

// Glyph returns the asset id for glyph sounds and "" otherwise.
func (s Sound) Glyph() string { return s.glyph }

// Text returns the spoken phrase for spoken sounds and "" otherwise.
func (s Sound) Text() string { return s.text }

// Location returns a copy of the spatial anchor, or nil when the sound is not
// spatialized.
func (s Sound) Location() *geo.Location {
	if s.location == nil {
		return nil
	}
	loc := *s.location
	return &loc
}

// Layers returns a copy of the component sounds of a layered sound.
func (s Sound) Layers() []Sound {
	if len(s.layers) == 0 {
		return nil
	}
	return append([]Sound(nil), s.layers...)
}

func (s Sound) String() string {
	switch s.kind {
	case KindGlyph:
		return fmt.Sprintf("glyph(%s)", s.glyph)
	case KindSpoken:
		return fmt.Sprintf("spoken(%q)", s.text)
	case KindLayered:
		return fmt.Sprintf("layered(%d)", len(s.layers))
	}
	return "sound(unknown)"
}

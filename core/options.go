package orchestration

import (
	"github.com/bnavac/soundscape/core/audio"
	"github.com/bnavac/soundscape/core/callouts"
	"github.com/bnavac/soundscape/core/generators"
	"github.com/bnavac/soundscape/core/geo"
	"github.com/bnavac/soundscape/core/settings"
	"github.com/bnavac/soundscape/core/synthesis"
)

type OrchestratorOption func(*Orchestrator)

// WithGenerators supplies the ordered generator list. Events are offered to
// generators in the given order; the first non-nil response wins.
func WithGenerators(gens ...generators.Generator) OrchestratorOption {
	return func(o *Orchestrator) { o.generators = append(o.generators, gens...) }
}

// WithSynthesisEngine sets the engine spoken sounds are rendered with.
func WithSynthesisEngine(engine synthesis.Engine) OrchestratorOption {
	return func(o *Orchestrator) { o.engine = engine }
}

// WithSettings replaces the default runtime settings.
func WithSettings(s *settings.Settings) OrchestratorOption {
	return func(o *Orchestrator) {
		if s != nil {
			o.settings = s
		}
	}
}

// WithLocationProvider replaces the internal event-fed provider with an
// external source of position and heading.
func WithLocationProvider(provider LocationProvider) OrchestratorOption {
	return func(o *Orchestrator) {
		if provider != nil {
			o.locations = provider
		}
	}
}

// WithHistoryDelegate observes callout history mutations.
func WithHistoryDelegate(delegate callouts.HistoryDelegate) OrchestratorOption {
	return func(o *Orchestrator) { o.historyDelegate = delegate }
}

// WithGroupDelegate observes group and per-callout playback lifecycle and
// gates stale callouts through IsCalloutWithinRegionToLive.
func WithGroupDelegate(delegate callouts.GroupDelegate) OrchestratorOption {
	return func(o *Orchestrator) {
		if delegate != nil {
			o.groupDelegate = delegate
		}
	}
}

// LocationProvider exposes the current fix and heading. The orchestrator
// polls it synchronously while building callouts; it never subscribes.
type LocationProvider interface {
	Location() *geo.Location
	Heading() geo.Heading
}

type audioOutputBase interface {
	EncodingInfo() audio.EncodingInfo
	SendAudio(audio []byte) error
	ClearBuffer()
}

// AudioOutputV0 is an output client whose mark confirmation is a blocking
// wait.
type AudioOutputV0 interface {
	audioOutputBase
	AwaitMark() error
}

func WithAudioOutputV0(client AudioOutputV0) OrchestratorOption {
	return func(o *Orchestrator) { o.audioOutput.Set(client) }
}

// AudioOutputV1 is an output client with callback-based mark handling.
type AudioOutputV1 interface {
	audioOutputBase
	Mark(string, func(string)) error
}

func WithAudioOutputV1(client AudioOutputV1) OrchestratorOption {
	return func(o *Orchestrator) { o.audioOutput.Set(client) }
}

// SpatialAudioOutput is an optional output capability: clients that implement
// it receive listener and per-sound source positions for spatialization.
type SpatialAudioOutput interface {
	UpdateListener(location *geo.Location, heading *float64)
	SetSource(location *geo.Location)
}

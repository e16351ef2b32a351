package orchestration

import (
	"reflect"

	"github.com/bnavac/soundscape/core/audio"
	"github.com/bnavac/soundscape/core/geo"
)

// audioOutput normalizes legacy (v0) and callback-mark (v1) clients behind
// one facade used while playing callout groups.
//
// Methods do best-effort forwarding and ignore client errors: audio output is
// a non-fatal side effect, the worst outcome of a broken device is a skipped
// announcement.
type audioOutput struct {

	// base stores the configured output client regardless of protocol version.
	base audioOutputBase
	// v0 is set when the output client supports the legacy mark-wait API.
	v0 AudioOutputV0
	// v1 is set when the output client supports callback-based mark handling.
	v1 AudioOutputV1
	// spatial is set when the output client can place sounds in space.
	spatial SpatialAudioOutput
}

func newAudioOutput(client audioOutputBase) *audioOutput {
	audioOutput := audioOutput{}
	audioOutput.Set(client)
	return &audioOutput
}

// Set replaces the configured output client and recomputes version-specific
// capabilities. Nil and typed-nil clients are treated as unconfigured.
func (a *audioOutput) Set(client audioOutputBase) {
	if a == nil {
		return
	}

	a.base = nil
	a.v0 = nil
	a.v1 = nil
	a.spatial = nil

	if isNilAudioOutputBase(client) {
		return
	}
	a.base = client

	if spatial, ok := client.(SpatialAudioOutput); ok {
		a.spatial = spatial
	}

	if v1, ok := client.(AudioOutputV1); ok {
		a.v1 = v1
		return
	}

	if v0, ok := client.(AudioOutputV0); ok {
		a.v0 = v0
	}
}

// isConfigured reports whether the facade has a usable typed output client.
// Version-specific bindings are checked instead of base so unsupported or
// typed-nil interface values are not considered configured.
func (a *audioOutput) isConfigured() bool {
	if a == nil {
		return false
	}

	return a.v0 != nil || a.v1 != nil
}

// SendAudio forwards a buffer to the configured output client. v1 is
// preferred when available; without a usable client the buffer is dropped.
func (a *audioOutput) SendAudio(audio []byte) {
	if a.v1 != nil {
		a.v1.SendAudio(audio)
	} else if a.v0 != nil {
		a.v0.SendAudio(audio)
	}
}

// Mark requests a callback once everything sent before the mark has been
// played. For v0 clients the blocking AwaitMark is bridged to a callback.
// Without output configured, the callback fires immediately so playback state
// keeps progressing.
func (a *audioOutput) Mark(mark string, callback func(string)) {
	if a.v1 != nil {
		a.v1.Mark(mark, callback)
	} else if a.v0 != nil {
		go func() {
			a.v0.AwaitMark()
			callback(mark)
		}()
	} else {
		callback(mark)
	}
}

// Clear drops buffered, not yet played audio on the configured client.
func (a *audioOutput) Clear() {
	if a.v1 != nil {
		a.v1.ClearBuffer()
	} else if a.v0 != nil {
		a.v0.ClearBuffer()
	}
}

// UpdateListener forwards the listener pose to spatial-capable clients.
func (a *audioOutput) UpdateListener(location *geo.Location, heading *float64) {
	if a.spatial != nil {
		a.spatial.UpdateListener(location, heading)
	}
}

// SetSource positions the sound about to be sent. Non-spatial clients play
// everything centered.
func (a *audioOutput) SetSource(location *geo.Location) {
	if a.spatial != nil {
		a.spatial.SetSource(location)
	}
}

// EncodingInfo returns the active output encoding metadata, falling back to
// the project default when no client is configured or the client reports an
// incomplete encoding.
func (a *audioOutput) EncodingInfo() audio.EncodingInfo {
	var info audio.EncodingInfo
	if a.v1 != nil {
		info = a.v1.EncodingInfo()
	} else if a.v0 != nil {
		info = a.v0.EncodingInfo()
	}
	if info.IsZero() {
		return audio.GetDefaultEncodingInfo()
	}
	return info
}

// isNilAudioOutputBase detects nil and typed-nil interface values so Set can
// avoid storing unusable interface wrappers as configured clients.
func isNilAudioOutputBase(client audioOutputBase) bool {
	if client == nil {
		return true
	}

	v := reflect.ValueOf(client)
	switch v.Kind() {
	case reflect.Chan, reflect.Func, reflect.Interface, reflect.Map, reflect.Pointer, reflect.Slice:
		return v.IsNil()
	default:
		return false
	}
}

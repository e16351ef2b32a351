package orchestration

import (
	"testing"
	"time"

	"github.com/bnavac/soundscape/core/audio"
	"github.com/bnavac/soundscape/core/geo"
)

type legacyOutput struct {
	sent   [][]byte
	awaits int
}

func (o *legacyOutput) EncodingInfo() audio.EncodingInfo { return audio.GetDefaultEncodingInfo() }
func (o *legacyOutput) SendAudio(buffer []byte) error {
	o.sent = append(o.sent, buffer)
	return nil
}
func (o *legacyOutput) ClearBuffer() {}
func (o *legacyOutput) AwaitMark() error {
	o.awaits++
	return nil
}

type spatialStubOutput struct {
	stubOutput
	sources []*geo.Location
}

func (o *spatialStubOutput) UpdateListener(location *geo.Location, heading *float64) {}
func (o *spatialStubOutput) SetSource(location *geo.Location) {
	o.sources = append(o.sources, location)
}

func TestAudioOutputUnconfigured(t *testing.T) {
	output := newAudioOutput(nil)

	if output.isConfigured() {
		t.Fatal("expected nil client to leave the facade unconfigured")
	}
	if got := output.EncodingInfo(); got != audio.GetDefaultEncodingInfo() {
		t.Fatalf("expected default encoding fallback, got %+v", got)
	}

	// Marks must confirm immediately so playback state keeps progressing.
	confirmed := make(chan struct{})
	output.Mark("m", func(string) { close(confirmed) })
	select {
	case <-confirmed:
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for mark confirmation")
	}
}

type zeroEncodingOutput struct {
	stubOutput
}

func (o *zeroEncodingOutput) EncodingInfo() audio.EncodingInfo { return audio.EncodingInfo{} }

func TestAudioOutputFallsBackOnIncompleteEncoding(t *testing.T) {
	output := newAudioOutput(&zeroEncodingOutput{})

	if got := output.EncodingInfo(); got != audio.GetDefaultEncodingInfo() {
		t.Fatalf("expected default encoding for a zero client encoding, got %+v", got)
	}
}

func TestAudioOutputTypedNilIsUnconfigured(t *testing.T) {
	var client *legacyOutput
	output := newAudioOutput(client)

	if output.isConfigured() {
		t.Fatal("expected typed-nil client to leave the facade unconfigured")
	}
}

func TestAudioOutputBridgesLegacyMarks(t *testing.T) {
	client := &legacyOutput{}
	output := newAudioOutput(client)

	if !output.isConfigured() {
		t.Fatal("expected a v0 client to configure the facade")
	}

	confirmed := make(chan struct{})
	output.Mark("m", func(string) { close(confirmed) })
	select {
	case <-confirmed:
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for bridged mark confirmation")
	}
	if client.awaits != 1 {
		t.Fatalf("expected one AwaitMark call, got %d", client.awaits)
	}
}

func TestAudioOutputForwardsSpatialHints(t *testing.T) {
	client := &spatialStubOutput{}
	output := newAudioOutput(client)

	location := geo.Location{Latitude: 45, Longitude: 16}
	output.SetSource(&location)
	output.SetSource(nil)

	if len(client.sources) != 2 {
		t.Fatalf("expected 2 source updates, got %d", len(client.sources))
	}
	if client.sources[0] == nil || client.sources[1] != nil {
		t.Fatal("expected source hints forwarded in order")
	}
}

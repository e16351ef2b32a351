package synthesis

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/bnavac/soundscape/core/audio"
)

// scriptedEngine exposes its sink so tests can drive buffer production
// directly.
type scriptedEngine struct {
	mu        sync.Mutex
	sink      Sink
	stopCalls int
	startErr  error
}

func (e *scriptedEngine) Synthesize(_ context.Context, _ string, _ string, sink Sink) (func(), error) {
	if e.startErr != nil {
		return nil, e.startErr
	}

	e.mu.Lock()
	e.sink = sink
	e.mu.Unlock()

	return func() {
		e.mu.Lock()
		e.stopCalls++
		e.mu.Unlock()
	}, nil
}

func (e *scriptedEngine) stops() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.stopCalls
}

type streamRecorder struct {
	mu          sync.Mutex
	buffers     [][]byte
	completions []error
}

func (r *streamRecorder) onBuffer(buffer []byte) {
	r.mu.Lock()
	r.buffers = append(r.buffers, buffer)
	r.mu.Unlock()
}

func (r *streamRecorder) onComplete(err error) {
	r.mu.Lock()
	r.completions = append(r.completions, err)
	r.mu.Unlock()
}

func (r *streamRecorder) delivered() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.buffers)
}

func (r *streamRecorder) terminal() (error, int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.completions) == 0 {
		return nil, 0
	}
	return r.completions[0], len(r.completions)
}

func newTestStream(t *testing.T, engine *scriptedEngine, recorder *streamRecorder) *Stream {
	t.Helper()

	stream, err := NewStream(context.Background(), engine, "hello", "test-voice",
		WithBufferCallback(recorder.onBuffer),
		WithCompletionCallback(recorder.onComplete),
	)
	if err != nil {
		t.Fatalf("failed to build stream: %v", err)
	}
	return stream
}

func pcmBuffer(seed byte) []byte {
	return []byte{seed, 0, seed, 0}
}

func TestStreamNeverExceedsDemand(t *testing.T) {
	engine := &scriptedEngine{}
	recorder := &streamRecorder{}
	stream := newTestStream(t, engine, recorder)

	encoding := audio.GetDefaultEncodingInfo()
	for i := byte(0); i < 5; i++ {
		engine.sink.AddBuffer(pcmBuffer(i), encoding)
	}

	if got := recorder.delivered(); got != 0 {
		t.Fatalf("expected no deliveries before demand, got %d", got)
	}

	stream.Request(2)
	if got := recorder.delivered(); got != 2 {
		t.Fatalf("expected exactly 2 deliveries for demand 2, got %d", got)
	}

	stream.Request(1)
	if got := recorder.delivered(); got != 3 {
		t.Fatalf("expected cumulative deliveries 3, got %d", got)
	}
	if got := stream.Delivered(); got != 3 {
		t.Fatalf("expected stream to count 3 deliveries, got %d", got)
	}
}

func TestStreamCompletesAfterDrain(t *testing.T) {
	engine := &scriptedEngine{}
	recorder := &streamRecorder{}
	stream := newTestStream(t, engine, recorder)

	encoding := audio.GetDefaultEncodingInfo()
	engine.sink.AddBuffer(pcmBuffer(1), encoding)
	engine.sink.AddBuffer(pcmBuffer(2), encoding)
	engine.sink.Finish()

	if err, count := recorder.terminal(); count != 0 {
		t.Fatalf("expected no terminal completion while buffers are queued, got %v", err)
	}

	stream.Request(10)

	if got := recorder.delivered(); got != 2 {
		t.Fatalf("expected both buffers delivered, got %d", got)
	}
	err, count := recorder.terminal()
	if count != 1 {
		t.Fatalf("expected exactly one terminal completion, got %d", count)
	}
	if err != nil {
		t.Fatalf("expected successful completion, got %v", err)
	}
	if engine.stops() == 0 {
		t.Fatalf("expected engine to be released on completion")
	}
}

func TestStreamRenderFailureWhenNoBuffersProduced(t *testing.T) {
	engine := &scriptedEngine{}
	recorder := &streamRecorder{}
	stream := newTestStream(t, engine, recorder)

	stream.Request(4)
	engine.sink.Finish()

	err, count := recorder.terminal()
	if count != 1 {
		t.Fatalf("expected exactly one terminal completion, got %d", count)
	}
	if !errors.Is(err, ErrRenderFailed) {
		t.Fatalf("expected ErrRenderFailed for a silent voice, got %v", err)
	}
}

func TestStreamCancelStopsDeliveriesExactlyOnce(t *testing.T) {
	engine := &scriptedEngine{}
	recorder := &streamRecorder{}
	stream := newTestStream(t, engine, recorder)

	encoding := audio.GetDefaultEncodingInfo()
	engine.sink.AddBuffer(pcmBuffer(1), encoding)
	engine.sink.AddBuffer(pcmBuffer(2), encoding)
	stream.Request(1)

	if got := recorder.delivered(); got != 1 {
		t.Fatalf("expected one delivery before cancel, got %d", got)
	}

	stream.Cancel()
	stream.Cancel()

	engine.sink.AddBuffer(pcmBuffer(3), encoding)
	stream.Request(10)

	if got := recorder.delivered(); got != 1 {
		t.Fatalf("expected zero deliveries after cancel, got %d", got)
	}
	err, count := recorder.terminal()
	if count != 1 {
		t.Fatalf("expected exactly one terminal completion, got %d", count)
	}
	if !errors.Is(err, ErrCancelled) {
		t.Fatalf("expected ErrCancelled, got %v", err)
	}
	if engine.stops() == 0 {
		t.Fatalf("expected engine stop on cancel")
	}
}

func TestStreamConversionFailureTerminates(t *testing.T) {
	engine := &scriptedEngine{}
	recorder := &streamRecorder{}
	stream := newTestStream(t, engine, recorder)

	stream.Request(1)
	mismatched := audio.EncodingInfo{SampleRate: 8000, Format: audio.EncodingLinear16}
	engine.sink.AddBuffer(pcmBuffer(1), mismatched)

	err, count := recorder.terminal()
	if count != 1 {
		t.Fatalf("expected exactly one terminal completion, got %d", count)
	}
	if !errors.Is(err, ErrConversionFailed) {
		t.Fatalf("expected ErrConversionFailed, got %v", err)
	}
	if got := recorder.delivered(); got != 0 {
		t.Fatalf("expected no deliveries for unconvertible audio, got %d", got)
	}
}

func TestStreamEmptyBuffersAreDropped(t *testing.T) {
	engine := &scriptedEngine{}
	recorder := &streamRecorder{}
	stream := newTestStream(t, engine, recorder)

	encoding := audio.GetDefaultEncodingInfo()
	stream.Request(5)
	engine.sink.AddBuffer(nil, encoding)
	engine.sink.AddBuffer(pcmBuffer(1), encoding)
	engine.sink.Finish()

	if got := recorder.delivered(); got != 1 {
		t.Fatalf("expected only the non-empty buffer delivered, got %d", got)
	}
	if err, _ := recorder.terminal(); err != nil {
		t.Fatalf("expected successful completion despite dropped buffer, got %v", err)
	}
}

func TestStreamFlushIsReentrantSafe(t *testing.T) {
	engine := &scriptedEngine{}
	recorder := &streamRecorder{}

	var stream *Stream
	stream, err := NewStream(context.Background(), engine, "hello", "test-voice",
		WithBufferCallback(func(buffer []byte) {
			recorder.onBuffer(buffer)
			// Re-enter the flush path from inside a delivery.
			stream.Request(1)
		}),
		WithCompletionCallback(recorder.onComplete),
	)
	if err != nil {
		t.Fatalf("failed to build stream: %v", err)
	}

	encoding := audio.GetDefaultEncodingInfo()
	for i := byte(0); i < 4; i++ {
		engine.sink.AddBuffer(pcmBuffer(i), encoding)
	}
	engine.sink.Finish()

	stream.Request(1)

	if got := recorder.delivered(); got != 4 {
		t.Fatalf("expected re-entrant demand to drain all buffers, got %d", got)
	}
	if err, count := recorder.terminal(); count != 1 || err != nil {
		t.Fatalf("expected one successful completion, got %v (%d)", err, count)
	}
}

func TestStreamEngineFailurePropagates(t *testing.T) {
	engine := &scriptedEngine{}
	recorder := &streamRecorder{}
	_ = newTestStream(t, engine, recorder)

	engineErr := fmt.Errorf("socket closed")
	engine.sink.Fail(engineErr)

	err, count := recorder.terminal()
	if count != 1 {
		t.Fatalf("expected one terminal completion, got %d", count)
	}
	if !errors.Is(err, engineErr) {
		t.Fatalf("expected engine error to surface, got %v", err)
	}
}

func TestNewStreamRequiresEngine(t *testing.T) {
	if _, err := NewStream(context.Background(), nil, "hello", "voice"); err == nil {
		t.Fatalf("expected error for missing engine")
	}
}

func TestNewStreamSurfacesEngineStartErrors(t *testing.T) {
	engine := &scriptedEngine{startErr: fmt.Errorf("no api key")}

	if _, err := NewStream(context.Background(), engine, "hello", "voice"); err == nil {
		t.Fatalf("expected engine start error to surface")
	}
}

// Package synthesis turns text into a lazy, cancellable, demand-gated
// sequence of audio buffers. The consumer requests buffers explicitly; the
// producing engine can run ahead, but completed buffers beyond outstanding
// demand stay queued inside the stream.
package synthesis

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/bnavac/soundscape/core/audio"
)

var (
	// ErrCancelled is the terminal completion after consumer cancellation.
	ErrCancelled = errors.New("synthesis cancelled")
	// ErrRenderFailed is the terminal completion when the engine finished
	// without ever producing audio. A voice that renders nothing is broken,
	// not silent.
	ErrRenderFailed = errors.New("synthesizer produced no audio")
	// ErrConversionFailed is the terminal completion when an engine buffer
	// cannot be converted to the canonical playback format.
	ErrConversionFailed = errors.New("failed to convert synthesized audio")
)

// Stream is a single non-restartable synthesis subscription. All internal
// state lives behind one mutex because buffers are produced on the engine's
// execution context while demand arrives from the consumer's.
type Stream struct {
	mu sync.Mutex

	queue     [][]byte
	demand    int
	delivered int

	produced   bool
	engineDone bool
	terminated bool

	// flushing/flushPending implement the trylock-or-defer pattern: a flush
	// triggered from within a delivery callback marks flushPending instead of
	// re-entering the drain loop.
	flushing     bool
	flushPending bool

	encoding   audio.EncodingInfo
	onBuffer   func(buffer []byte)
	onComplete func(err error)

	stop         func()
	stopOnce     sync.Once
	completeOnce sync.Once
}

type StreamOption func(*Stream)

// WithEncoding sets the canonical format buffers are converted to before
// delivery.
func WithEncoding(encoding audio.EncodingInfo) StreamOption {
	return func(s *Stream) { s.encoding = encoding }
}

// WithBufferCallback registers the consumer's delivery callback. Deliveries
// respect outstanding demand and stop permanently after a terminal
// completion.
func WithBufferCallback(onBuffer func(buffer []byte)) StreamOption {
	return func(s *Stream) {
		if onBuffer != nil {
			s.onBuffer = onBuffer
		}
	}
}

// WithCompletionCallback registers the terminal completion callback, invoked
// exactly once with nil on success or one of the terminal errors.
func WithCompletionCallback(onComplete func(err error)) StreamOption {
	return func(s *Stream) {
		if onComplete != nil {
			s.onComplete = onComplete
		}
	}
}

// NewStream starts synthesis of text through the engine and returns the
// demand-gated subscription. No buffers are delivered until the consumer
// calls Request.
func NewStream(ctx context.Context, engine Engine, text string, voice string, opts ...StreamOption) (*Stream, error) {
	if engine == nil {
		return nil, fmt.Errorf("synthesis engine not configured")
	}

	stream := &Stream{
		encoding:   audio.GetDefaultEncodingInfo(),
		onBuffer:   func([]byte) {},
		onComplete: func(error) {},
	}
	for _, opt := range opts {
		opt(stream)
	}

	stop, err := engine.Synthesize(ctx, text, voice, stream)
	if err != nil {
		return nil, fmt.Errorf("failed to start synthesis: %w", err)
	}
	stream.stop = stop

	return stream, nil
}

// Request grants the stream permission to deliver up to count more buffers.
func (s *Stream) Request(count int) {
	if s == nil || count <= 0 {
		return
	}

	s.mu.Lock()
	s.demand += count
	s.mu.Unlock()
	s.flush()
}

// Cancel tears the stream down: the engine is stopped, undelivered buffers
// are discarded, and no delivery happens afterwards. Cancelling an already
// terminal stream is a no-op.
func (s *Stream) Cancel() {
	s.terminate(ErrCancelled)
}

// Delivered reports how many buffers reached the consumer.
func (s *Stream) Delivered() int {
	if s == nil {
		return 0
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.delivered
}

// AddBuffer accepts one engine buffer: validate, convert to the canonical
// format, queue, then flush as far as outstanding demand allows.
func (s *Stream) AddBuffer(buffer []byte, encoding audio.EncodingInfo) {
	if s == nil {
		return
	}

	if len(buffer) == 0 {
		logger.Warn("dropping empty synthesis buffer")
		return
	}

	converted, err := audio.Convert(buffer, encoding, s.encoding)
	if err != nil {
		s.terminate(fmt.Errorf("%w: %w", ErrConversionFailed, err))
		return
	}

	s.mu.Lock()
	if s.terminated {
		s.mu.Unlock()
		return
	}
	s.produced = true
	s.queue = append(s.queue, converted)
	s.mu.Unlock()

	s.flush()
}

// Finish marks the engine side complete. The terminal completion fires once
// every queued buffer has been drained by demand, or immediately with
// ErrRenderFailed when nothing was ever produced.
func (s *Stream) Finish() {
	if s == nil {
		return
	}

	s.mu.Lock()
	s.engineDone = true
	s.mu.Unlock()
	s.flush()
}

// Fail terminates the stream with an engine-side error.
func (s *Stream) Fail(err error) {
	if err == nil {
		err = ErrRenderFailed
	}
	s.terminate(err)
}

func (s *Stream) flush() {
	s.mu.Lock()
	if s.flushing {
		s.flushPending = true
		s.mu.Unlock()
		return
	}
	s.flushing = true

	for {
		s.flushPending = false
		for !s.terminated && s.demand > 0 && len(s.queue) > 0 {
			buffer := s.queue[0]
			s.queue = s.queue[1:]
			s.demand--
			s.delivered++
			onBuffer := s.onBuffer

			// Deliver outside the lock; the callback may call Request or
			// Cancel re-entrantly.
			s.mu.Unlock()
			onBuffer(buffer)
			s.mu.Lock()
		}
		if !s.flushPending {
			break
		}
	}
	s.flushing = false

	finished := false
	var terminalErr error
	if !s.terminated && s.engineDone && len(s.queue) == 0 {
		s.terminated = true
		finished = true
		if !s.produced {
			terminalErr = ErrRenderFailed
		}
	}
	onComplete := s.onComplete
	s.mu.Unlock()

	if finished {
		s.stopEngine()
		s.completeOnce.Do(func() { onComplete(terminalErr) })
	}
}

func (s *Stream) terminate(err error) {
	if s == nil {
		return
	}

	s.mu.Lock()
	if s.terminated {
		s.mu.Unlock()
		return
	}
	s.terminated = true
	s.queue = nil
	s.demand = 0
	onComplete := s.onComplete
	s.mu.Unlock()

	s.stopEngine()
	s.completeOnce.Do(func() { onComplete(err) })
}

func (s *Stream) stopEngine() {
	s.stopOnce.Do(func() {
		if s.stop != nil {
			s.stop()
		}
	})
}

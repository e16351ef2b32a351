package synthesis

import (
	"context"

	"github.com/bnavac/soundscape/core/audio"
)

// Engine is the external speech engine boundary. Implementations produce raw
// audio buffers for one utterance and hand them to the sink from their own
// execution context.
type Engine interface {
	// Synthesize begins producing audio for text in the given voice. Buffers
	// arrive at sink as they are rendered; the engine signals Finish exactly
	// once when it has nothing more to produce, or Fail on an unrecoverable
	// engine error. The returned stop function halts production and must be
	// safe to call more than once, including after Finish.
	Synthesize(ctx context.Context, text string, voice string, sink Sink) (stop func(), err error)
}

// Sink receives engine output. Implemented by Stream; engines never see the
// demand bookkeeping behind it.
type Sink interface {
	AddBuffer(buffer []byte, encoding audio.EncodingInfo)
	Finish()
	Fail(err error)
}

package orchestration

import (
	"context"

	"go.opentelemetry.io/otel/attribute"

	"github.com/bnavac/soundscape/core/audio"
	"github.com/bnavac/soundscape/core/callouts"
	"github.com/bnavac/soundscape/core/sounds"
	"github.com/bnavac/soundscape/core/synthesis"
)

// speechPrefetch is the initial demand granted to a synthesis stream; further
// buffers are requested one at a time as the device confirms playback, so a
// fast engine cannot flood the output buffer.
const speechPrefetch = 2

// groupPlayer plays one callout group to completion or interruption. It runs
// on its own goroutine; cancelling the context interrupts the group and
// clears whatever the device has not played yet.
type groupPlayer struct {
	engine    synthesis.Engine
	output    *audioOutput
	delegate  callouts.GroupDelegate
	locations LocationProvider

	voice      string
	automotive bool

	// onCalloutPlayed fires after a callout's sounds fully drained, from the
	// playback goroutine.
	onCalloutPlayed func(callouts.Callout)
}

func (p *groupPlayer) play(ctx context.Context, group *callouts.Group) {
	if p == nil || group == nil || !group.Start() {
		return
	}

	ctx, span := tracer.Start(ctx, "play callout group")
	defer span.End()
	span.SetAttributes(
		attribute.String("group.id", group.ID()),
		attribute.String("group.policy", group.Policy().String()),
	)

	p.delegate.CalloutsStarted(group)

	if group.PlayModeSounds() {
		p.playSound(ctx, sounds.Glyph(sounds.GlyphEnterMode))
	}

	playedAny := false
	for {
		if ctx.Err() != nil {
			break
		}
		callout, ok := group.NextCallout()
		if !ok {
			break
		}

		if !p.delegate.IsCalloutWithinRegionToLive(callout) {
			p.delegate.CalloutSkipped(callout)
			continue
		}

		calloutSounds := callout.Sounds(p.locations.Location(), group.IsRepeat(), p.automotive)
		if len(calloutSounds) == 0 {
			p.delegate.CalloutSkipped(callout)
			continue
		}

		p.delegate.CalloutStarting(callout)
		completed := true
		for _, sound := range calloutSounds {
			if err := p.playSound(ctx, sound); err != nil {
				completed = false
				if ctx.Err() != nil {
					break
				}
				// A broken sound silences itself, not the rest of the group.
				logger.Warn("skipping sound after playback failure",
					"callout", callout.ID(), "error", err)
				span.RecordError(err)
			}
		}

		if ctx.Err() != nil {
			p.delegate.CalloutFinished(callout, false)
			break
		}

		p.delegate.CalloutFinished(callout, completed)
		if completed {
			playedAny = true
			if p.onCalloutPlayed != nil {
				p.onCalloutPlayed(callout)
			}
		}
	}

	if ctx.Err() != nil {
		group.Interrupt()
		p.output.Clear()
		p.delegate.CalloutsSkipped(group)
		return
	}

	if group.PlayModeSounds() {
		p.playSound(ctx, sounds.Glyph(sounds.GlyphExitMode))
	}

	group.Complete()
	if playedAny {
		p.delegate.CalloutsCompleted(group)
	} else {
		p.delegate.CalloutsSkipped(group)
	}
}

func (p *groupPlayer) playSound(ctx context.Context, sound sounds.Sound) error {
	switch sound.Kind() {
	case sounds.KindGlyph:
		return p.playGlyph(ctx, sound)
	case sounds.KindSpoken:
		return p.playSpoken(ctx, sound)
	case sounds.KindLayered:
		return p.playLayered(ctx, sound)
	}
	return nil
}

func (p *groupPlayer) playGlyph(ctx context.Context, sound sounds.Sound) error {
	p.output.SetSource(sound.Location())
	p.output.SendAudio(audio.Earcon(sound.Glyph(), p.output.EncodingInfo()))
	return p.awaitDrain(ctx)
}

// playLayered mixes glyph-only layers into a single buffer; layers containing
// speech are played sequentially instead, since speech has to be rendered
// before it could be mixed.
func (p *groupPlayer) playLayered(ctx context.Context, sound sounds.Sound) error {
	layers := sound.Layers()

	glyphsOnly := true
	for _, layer := range layers {
		if layer.Kind() != sounds.KindGlyph {
			glyphsOnly = false
			break
		}
	}

	if !glyphsOnly {
		for _, layer := range layers {
			if err := p.playSound(ctx, layer); err != nil {
				return err
			}
		}
		return nil
	}

	encoding := p.output.EncodingInfo()
	buffers := make([][]byte, 0, len(layers))
	for _, layer := range layers {
		buffers = append(buffers, audio.Earcon(layer.Glyph(), encoding))
	}

	p.output.SetSource(sound.Location())
	p.output.SendAudio(audio.Mix(buffers...))
	return p.awaitDrain(ctx)
}

func (p *groupPlayer) playSpoken(ctx context.Context, sound sounds.Sound) error {
	p.output.SetSource(sound.Location())

	done := make(chan error, 1)
	var stream *synthesis.Stream
	stream, err := synthesis.NewStream(ctx, p.engine, sound.Text(), p.voice,
		synthesis.WithEncoding(p.output.EncodingInfo()),
		synthesis.WithBufferCallback(func(buffer []byte) {
			p.output.SendAudio(buffer)
			// One more buffer is requested only once the device played this
			// one; the mark keeps synthesis paced to playback.
			p.output.Mark("", func(string) { stream.Request(1) })
		}),
		synthesis.WithCompletionCallback(func(err error) { done <- err }),
	)
	if err != nil {
		return err
	}
	stream.Request(speechPrefetch)

	select {
	case <-ctx.Done():
		stream.Cancel()
		p.output.Clear()
		return ctx.Err()
	case err := <-done:
		if err != nil {
			return err
		}
	}

	return p.awaitDrain(ctx)
}

// awaitDrain blocks until everything sent so far has been played, or the
// context is cancelled.
func (p *groupPlayer) awaitDrain(ctx context.Context) error {
	drained := make(chan struct{})
	p.output.Mark("drain", func(string) { close(drained) })

	select {
	case <-ctx.Done():
		p.output.Clear()
		return ctx.Err()
	case <-drained:
		return nil
	}
}

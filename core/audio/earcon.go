package audio

import (
	"encoding/binary"
	"math"
	"time"
)

// earconSpec describes a glyph as a short sequence of sine tones.
type earconSpec struct {
	tones    []float64
	duration time.Duration
}

var earconSpecs = map[string]earconSpec{
	"mode_enter":     {tones: []float64{660, 880}, duration: 180 * time.Millisecond},
	"mode_exit":      {tones: []float64{880, 660}, duration: 180 * time.Millisecond},
	"poi_sense":      {tones: []float64{1040}, duration: 120 * time.Millisecond},
	"mobility_sense": {tones: []float64{520}, duration: 120 * time.Millisecond},
	"safety_sense":   {tones: []float64{392, 784}, duration: 160 * time.Millisecond},
	"location_sense": {tones: []float64{784}, duration: 140 * time.Millisecond},
	"waypoint_sense": {tones: []float64{660, 990}, duration: 200 * time.Millisecond},
	"announce_sense": {tones: []float64{880}, duration: 120 * time.Millisecond},
	"callouts_on":    {tones: []float64{523, 659, 784}, duration: 240 * time.Millisecond},
	"callouts_off":   {tones: []float64{784, 659, 523}, duration: 240 * time.Millisecond},
}

// Earcon renders the glyph asset as linear16 PCM at the given sample rate.
// Unknown glyphs fall back to a neutral single tone so a missing asset never
// silences the rest of a callout.
func Earcon(glyph string, encoding EncodingInfo) []byte {
	spec, ok := earconSpecs[glyph]
	if !ok {
		spec = earconSpec{tones: []float64{700}, duration: 100 * time.Millisecond}
	}

	sampleRate := encoding.SampleRate
	if sampleRate <= 0 {
		sampleRate = DefaultSampleRate
	}

	samplesPerTone := int(float64(sampleRate) * spec.duration.Seconds() / float64(len(spec.tones)))
	out := make([]byte, 0, samplesPerTone*len(spec.tones)*2)
	for _, frequency := range spec.tones {
		for i := 0; i < samplesPerTone; i++ {
			// Linear fade at tone edges to avoid clicks.
			envelope := 1.0
			fade := samplesPerTone / 10
			if fade > 0 {
				if i < fade {
					envelope = float64(i) / float64(fade)
				} else if samplesPerTone-i < fade {
					envelope = float64(samplesPerTone-i) / float64(fade)
				}
			}

			sample := math.Sin(2*math.Pi*frequency*float64(i)/float64(sampleRate)) * envelope * 0.4
			out = binary.LittleEndian.AppendUint16(out, uint16(int16(sample*32767)))
		}
	}
	return out
}

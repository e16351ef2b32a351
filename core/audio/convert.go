package audio

import (
	"encoding/binary"
	"fmt"
)

// ErrEmptyBuffer is returned when a synthesizer hands over a zero-length
// buffer. Empty buffers are never forwarded to playback.
var ErrEmptyBuffer = fmt.Errorf("audio buffer is empty")

// Convert transcodes a buffer from one encoding to the canonical playback
// encoding. Sample-rate conversion is not performed; mismatched rates are a
// conversion failure.
func Convert(buffer []byte, from EncodingInfo, to EncodingInfo) ([]byte, error) {
	if len(buffer) == 0 {
		return nil, ErrEmptyBuffer
	}

	if width := from.SampleBytes(); width > 0 && len(buffer)%width != 0 {
		return nil, fmt.Errorf("buffer of %d bytes is not aligned to %d byte %s samples",
			len(buffer), width, from.Format.Name())
	}

	if from.SampleRate != to.SampleRate {
		return nil, fmt.Errorf("cannot convert sample rate %d to %d", from.SampleRate, to.SampleRate)
	}

	if from.Format == to.Format {
		return buffer, nil
	}

	if to.Format != EncodingLinear16 {
		return nil, fmt.Errorf("unsupported conversion target %q", to.Format.Name())
	}

	switch from.Format {
	case EncodingMulaw:
		return expandG711(buffer, decodeMulawSample), nil
	case EncodingALaw:
		return expandG711(buffer, decodeALawSample), nil
	}

	return nil, fmt.Errorf("unsupported conversion source %q", from.Format.Name())
}

func expandG711(buffer []byte, decode func(byte) int16) []byte {
	out := make([]byte, len(buffer)*2)
	for i, sample := range buffer {
		binary.LittleEndian.PutUint16(out[i*2:], uint16(decode(sample)))
	}
	return out
}

func decodeMulawSample(sample byte) int16 {
	sample = ^sample
	sign := sample & 0x80
	exponent := (sample >> 4) & 0x07
	mantissa := sample & 0x0F

	value := ((int16(mantissa) << 3) + 0x84) << exponent
	value -= 0x84
	if sign != 0 {
		return -value
	}
	return value
}

func decodeALawSample(sample byte) int16 {
	sample ^= 0x55
	sign := sample & 0x80
	exponent := (sample >> 4) & 0x07
	mantissa := sample & 0x0F

	var value int16
	if exponent == 0 {
		value = (int16(mantissa) << 4) + 8
	} else {
		value = ((int16(mantissa) << 4) + 0x108) << (exponent - 1)
	}
	if sign != 0 {
		return -value
	}
	return value
}

// Mix sums linear16 buffers sample by sample with clipping, producing one
// buffer as long as the longest input. Used to collapse layered glyphs into a
// single playable unit.
func Mix(buffers ...[]byte) []byte {
	longest := 0
	for _, buffer := range buffers {
		if len(buffer) > longest {
			longest = len(buffer)
		}
	}
	if longest == 0 {
		return nil
	}

	out := make([]byte, longest)
	for i := 0; i+1 < longest; i += 2 {
		sum := 0
		for _, buffer := range buffers {
			if i+1 < len(buffer) {
				sum += int(int16(binary.LittleEndian.Uint16(buffer[i:])))
			}
		}
		if sum > 32767 {
			sum = 32767
		} else if sum < -32768 {
			sum = -32768
		}
		binary.LittleEndian.PutUint16(out[i:], uint16(int16(sum)))
	}
	return out
}

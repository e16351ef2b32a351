package audio

import (
	"encoding/binary"
	"errors"
	"testing"
)

func TestConvertSameFormatPassesThrough(t *testing.T) {
	encoding := GetDefaultEncodingInfo()
	buffer := []byte{1, 2, 3, 4}

	out, err := Convert(buffer, encoding, encoding)
	if err != nil {
		t.Fatalf("unexpected conversion error: %v", err)
	}
	if len(out) != len(buffer) {
		t.Fatalf("expected pass-through buffer length %d, got %d", len(buffer), len(out))
	}
}

func TestConvertRejectsEmptyBuffer(t *testing.T) {
	encoding := GetDefaultEncodingInfo()

	if _, err := Convert(nil, encoding, encoding); !errors.Is(err, ErrEmptyBuffer) {
		t.Fatalf("expected ErrEmptyBuffer, got %v", err)
	}
}

func TestConvertRejectsMisalignedBuffer(t *testing.T) {
	encoding := GetDefaultEncodingInfo()

	// Three bytes cannot hold a whole number of linear16 samples.
	if _, err := Convert([]byte{1, 2, 3}, encoding, encoding); err == nil {
		t.Fatalf("expected alignment error for a torn sample")
	}
}

func TestConvertRejectsSampleRateMismatch(t *testing.T) {
	from := EncodingInfo{SampleRate: 8000, Format: EncodingLinear16}
	to := EncodingInfo{SampleRate: 16000, Format: EncodingLinear16}

	if _, err := Convert([]byte{1, 2}, from, to); err == nil {
		t.Fatalf("expected sample-rate mismatch error")
	}
}

func TestConvertMulawExpandsToLinear16(t *testing.T) {
	from := EncodingInfo{SampleRate: DefaultSampleRate, Format: EncodingMulaw}
	to := EncodingInfo{SampleRate: DefaultSampleRate, Format: EncodingLinear16}

	out, err := Convert([]byte{0xFF, 0x00}, from, to)
	if err != nil {
		t.Fatalf("unexpected conversion error: %v", err)
	}
	if len(out) != 4 {
		t.Fatalf("expected 2 samples of linear16, got %d bytes", len(out))
	}

	// 0xFF decodes to silence and 0x00 decodes to the negative extreme.
	if first := int16(binary.LittleEndian.Uint16(out[0:])); first != 0 {
		t.Fatalf("expected first sample 0, got %d", first)
	}
	if second := int16(binary.LittleEndian.Uint16(out[2:])); second != -32124 {
		t.Fatalf("expected second sample -32124, got %d", second)
	}
}

func TestMixClipsAndPads(t *testing.T) {
	loud := make([]byte, 4)
	loudNeg := int16(-30000)
	binary.LittleEndian.PutUint16(loud[0:], uint16(int16(30000)))
	binary.LittleEndian.PutUint16(loud[2:], uint16(loudNeg))

	longer := make([]byte, 6)
	longerNeg := int16(-10000)
	binary.LittleEndian.PutUint16(longer[0:], uint16(int16(10000)))
	binary.LittleEndian.PutUint16(longer[2:], uint16(longerNeg))
	binary.LittleEndian.PutUint16(longer[4:], uint16(int16(123)))

	out := Mix(loud, longer)
	if len(out) != 6 {
		t.Fatalf("expected mix to span longest input (6 bytes), got %d", len(out))
	}

	if first := int16(binary.LittleEndian.Uint16(out[0:])); first != 32767 {
		t.Fatalf("expected positive clip at 32767, got %d", first)
	}
	if second := int16(binary.LittleEndian.Uint16(out[2:])); second != -32768 {
		t.Fatalf("expected negative clip at -32768, got %d", second)
	}
	if tail := int16(binary.LittleEndian.Uint16(out[4:])); tail != 123 {
		t.Fatalf("expected unmixed tail sample 123, got %d", tail)
	}
}

func TestEarconProducesAudioForUnknownGlyph(t *testing.T) {
	out := Earcon("not_a_real_glyph", GetDefaultEncodingInfo())
	if len(out) == 0 {
		t.Fatalf("expected fallback earcon to produce audio")
	}
}

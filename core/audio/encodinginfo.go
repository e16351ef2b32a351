package audio

// The playback pipeline normalizes everything to linear16 mono at 16kHz
// before panning; synthesis engines may deliver the other G711-family
// encodings and Convert expands them.
const (
	DefaultSampleRate = 16000
	DefaultFormat     = "linear16"
)

// GetDefaultEncodingInfo returns the canonical playback encoding.
func GetDefaultEncodingInfo() EncodingInfo {
	return EncodingInfo{SampleRate: DefaultSampleRate, Format: EncodingLinear16}
}

// EncodingInfo describes the wire format of a PCM buffer.
type EncodingInfo struct {
	SampleRate int
	Format     encodingFormat
}

// IsZero reports whether either component is missing. Zero encodings fall
// back to the canonical one at the playback boundary.
func (e EncodingInfo) IsZero() bool {
	return e.SampleRate == 0 || e.Format == ""
}

// SampleBytes is the width of one sample in this encoding, or -1 when the
// format is unknown.
func (e EncodingInfo) SampleBytes() int {
	switch e.Format {
	case EncodingMulaw, EncodingALaw:
		return 1
	case EncodingLinear16:
		return 2
	}
	return -1
}

// SilenceByte is the byte value that renders as silence when repeated. The
// playback device pads underruns with it.
func (e EncodingInfo) SilenceByte() byte {
	switch e.Format {
	case EncodingALaw:
		return 0x55
	case EncodingMulaw:
		return 0xFF
	}
	return 0
}

type encodingFormat string

const (
	EncodingMulaw    encodingFormat = "mulaw"
	EncodingALaw     encodingFormat = "alaw"
	EncodingLinear16 encodingFormat = "linear16"
)

// Name is the format identifier as synthesis APIs spell it.
func (e encodingFormat) Name() string {
	return string(e)
}

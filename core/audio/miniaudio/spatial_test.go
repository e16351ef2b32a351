package miniaudio

import (
	"math"
	"testing"

	"github.com/bnavac/soundscape/core/geo"
)

func TestGainsCenteredWithoutGeometry(t *testing.T) {
	s := spatialState{}

	left, right := s.gains()
	if math.Abs(left-right) > 1e-9 {
		t.Fatalf("expected centered gains, got left=%f right=%f", left, right)
	}
	if math.Abs(left*left+right*right-1) > 1e-9 {
		t.Fatalf("expected constant power, got %f", left*left+right*right)
	}
}

func TestGainsPanTowardSource(t *testing.T) {
	heading := 0.0
	s := spatialState{}
	s.updateListener(&geo.Location{Latitude: 45, Longitude: 16}, &heading)

	// Source due east of a north-facing listener should favor the right
	// channel.
	s.setSource(&geo.Location{Latitude: 45, Longitude: 16.001})
	left, right := s.gains()
	if right <= left {
		t.Fatalf("expected right-heavy pan, got left=%f right=%f", left, right)
	}

	s.setSource(&geo.Location{Latitude: 45, Longitude: 15.999})
	left, right = s.gains()
	if left <= right {
		t.Fatalf("expected left-heavy pan, got left=%f right=%f", left, right)
	}

	s.setSource(nil)
	left, right = s.gains()
	if math.Abs(left-right) > 1e-9 {
		t.Fatalf("expected centered gains after clearing source, got left=%f right=%f", left, right)
	}
}

func TestPanToStereoInterleavesWithGains(t *testing.T) {
	mono := []byte{0x00, 0x10, 0x00, 0x20} // samples 4096, 8192
	out := panToStereo(mono, 1, 0.5)

	if len(out) != 8 {
		t.Fatalf("expected 8 bytes of stereo audio, got %d", len(out))
	}
	if out[0] != 0x00 || out[1] != 0x10 {
		t.Fatalf("expected left sample unchanged, got % x", out[:2])
	}
	if out[2] != 0x00 || out[3] != 0x08 {
		t.Fatalf("expected right sample halved, got % x", out[2:4])
	}
}

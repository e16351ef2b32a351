package miniaudio

import (
	"math"
	"sync"

	"github.com/bnavac/soundscape/core/geo"
)

// spatialState tracks where the listener and the currently playing sound are.
// Sounds are panned with a constant power law so perceived loudness stays the
// same across the stereo field.
type spatialState struct {
	mu       sync.Mutex
	listener *geo.Location
	heading  *float64
	source   *geo.Location
}

func (s *spatialState) updateListener(location *geo.Location, heading *float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if location != nil {
		loc := *location
		s.listener = &loc
	}
	if heading != nil {
		h := *heading
		s.heading = &h
	}
}

func (s *spatialState) setSource(location *geo.Location) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if location == nil {
		s.source = nil
		return
	}
	loc := *location
	s.source = &loc
}

// gains returns the left/right channel gains for the current geometry.
// Without a listener fix, heading, or source the sound plays centered.
func (s *spatialState) gains() (left, right float64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	centered := math.Sqrt2 / 2
	if s.listener == nil || s.heading == nil || s.source == nil {
		return centered, centered
	}

	relative := s.listener.BearingTo(*s.source) - *s.heading
	for relative < -180 {
		relative += 360
	}
	for relative > 180 {
		relative -= 360
	}

	pan := math.Sin(relative * math.Pi / 180)
	angle := (pan + 1) * math.Pi / 4
	return math.Cos(angle), math.Sin(angle)
}

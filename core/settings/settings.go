// Package settings holds user-level tunables for the callout pipeline. Values
// load from a YAML file with environment overrides and can be flipped at
// runtime, so access is mutex-guarded.
package settings

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/jinzhu/copier"
	"gopkg.in/yaml.v3"

	"github.com/bnavac/soundscape/core/geo"
)

const envPrefix = "SOUNDSCAPE_"

type Values struct {
	// AutomaticCallouts is the master switch for state-change announcements.
	AutomaticCallouts bool `yaml:"automatic_callouts"`
	// DisabledOrigins suppresses automatic callouts from specific origins.
	DisabledOrigins []string `yaml:"disabled_origins"`
	// HistoryDepth bounds the callout history record.
	HistoryDepth int `yaml:"history_depth"`
	// Voice selects the synthesis voice identifier.
	Voice string `yaml:"voice"`
	// Units selects metric or imperial distance phrasing.
	Units string `yaml:"units"`
	// ProximityRadiusMeters is the trigger distance for nearby POI callouts.
	ProximityRadiusMeters float64 `yaml:"proximity_radius_meters"`
	// AutomotiveMode shortens spoken callouts for in-vehicle use.
	AutomotiveMode bool `yaml:"automotive_mode"`
}

func defaults() Values {
	return Values{
		AutomaticCallouts:     true,
		HistoryDepth:          50,
		Voice:                 "aura-asteria-en",
		Units:                 string(geo.UnitsMetric),
		ProximityRadiusMeters: 50,
	}
}

type Settings struct {
	mu     sync.RWMutex
	values Values
}

// Default returns settings with built-in defaults and environment overrides
// applied.
func Default() *Settings {
	values := defaults()
	applyEnvOverrides(&values)
	return &Settings{values: values}
}

// Load reads settings from a YAML file, then applies environment overrides on
// top. Missing keys keep their defaults.
func Load(path string) (*Settings, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read settings file: %w", err)
	}

	values := defaults()
	if err := yaml.Unmarshal(raw, &values); err != nil {
		return nil, fmt.Errorf("failed to parse settings file: %w", err)
	}
	applyEnvOverrides(&values)

	if err := validate(values); err != nil {
		return nil, err
	}

	return &Settings{values: values}, nil
}

func validate(values Values) error {
	if values.HistoryDepth <= 0 {
		return fmt.Errorf("history_depth must be positive, got %d", values.HistoryDepth)
	}
	if values.ProximityRadiusMeters <= 0 {
		return fmt.Errorf("proximity_radius_meters must be positive, got %f", values.ProximityRadiusMeters)
	}
	switch geo.UnitSystem(values.Units) {
	case geo.UnitsMetric, geo.UnitsImperial:
	default:
		return fmt.Errorf("units must be %q or %q, got %q", geo.UnitsMetric, geo.UnitsImperial, values.Units)
	}
	return nil
}

func applyEnvOverrides(values *Values) {
	if value, ok := os.LookupEnv(envPrefix + "AUTOMATIC_CALLOUTS"); ok {
		if parsed, err := strconv.ParseBool(value); err == nil {
			values.AutomaticCallouts = parsed
		}
	}
	if value, ok := os.LookupEnv(envPrefix + "HISTORY_DEPTH"); ok {
		if parsed, err := strconv.Atoi(value); err == nil {
			values.HistoryDepth = parsed
		}
	}
	if value, ok := os.LookupEnv(envPrefix + "VOICE"); ok && value != "" {
		values.Voice = value
	}
	if value, ok := os.LookupEnv(envPrefix + "UNITS"); ok && value != "" {
		values.Units = value
	}
	if value, ok := os.LookupEnv(envPrefix + "PROXIMITY_RADIUS_METERS"); ok {
		if parsed, err := strconv.ParseFloat(value, 64); err == nil {
			values.ProximityRadiusMeters = parsed
		}
	}
	if value, ok := os.LookupEnv(envPrefix + "DISABLED_ORIGINS"); ok && value != "" {
		origins := []string{}
		for _, origin := range strings.Split(value, ",") {
			if trimmed := strings.TrimSpace(origin); trimmed != "" {
				origins = append(origins, trimmed)
			}
		}
		values.DisabledOrigins = origins
	}
}

// Snapshot returns a deep copy of the current values for use across one
// announcement episode without holding the lock.
func (s *Settings) Snapshot() Values {
	if s == nil {
		return defaults()
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	snapshot := Values{}
	if err := copier.Copy(&snapshot, &s.values); err != nil {
		return s.values
	}
	return snapshot
}

func (s *Settings) AutomaticCalloutsEnabled() bool {
	if s == nil {
		return false
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.values.AutomaticCallouts
}

func (s *Settings) SetAutomaticCallouts(enabled bool) {
	if s == nil {
		return
	}
	s.mu.Lock()
	s.values.AutomaticCallouts = enabled
	s.mu.Unlock()
}

// OriginEnabled reports whether automatic callouts from the origin category
// are allowed.
func (s *Settings) OriginEnabled(origin string) bool {
	if s == nil {
		return true
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, disabled := range s.values.DisabledOrigins {
		if disabled == origin {
			return false
		}
	}
	return true
}

func (s *Settings) SetOriginEnabled(origin string, enabled bool) {
	if s == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	filtered := s.values.DisabledOrigins[:0]
	for _, disabled := range s.values.DisabledOrigins {
		if disabled != origin {
			filtered = append(filtered, disabled)
		}
	}
	s.values.DisabledOrigins = filtered
	if !enabled {
		s.values.DisabledOrigins = append(s.values.DisabledOrigins, origin)
	}
}

func (s *Settings) HistoryDepth() int {
	if s == nil {
		return defaults().HistoryDepth
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.values.HistoryDepth
}

func (s *Settings) Voice() string {
	if s == nil {
		return defaults().Voice
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.values.Voice
}

func (s *Settings) Units() geo.UnitSystem {
	if s == nil {
		return geo.UnitsMetric
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return geo.UnitSystem(s.values.Units)
}

func (s *Settings) ProximityRadius() float64 {
	if s == nil {
		return defaults().ProximityRadiusMeters
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.values.ProximityRadiusMeters
}

func (s *Settings) AutomotiveMode() bool {
	if s == nil {
		return false
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.values.AutomotiveMode
}

func (s *Settings) SetAutomotiveMode(enabled bool) {
	if s == nil {
		return
	}
	s.mu.Lock()
	s.values.AutomotiveMode = enabled
	s.mu.Unlock()
}

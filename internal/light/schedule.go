package light

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Schedule maps times of day to color temperatures, optionally per location.
// Location entries take precedence over Default.
type Schedule struct {
	Default   map[string]int            `yaml:"default"`
	Locations map[string]map[string]int `yaml:"locations"`
}

// LoadSchedule loads a schedule from a YAML file
func LoadSchedule(filepath string) (*Schedule, error) {
	data, err := os.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to read schedule file: %w", err)
	}

	return LoadScheduleFromBytes(data)
}

// LoadScheduleFromBytes loads a schedule from YAML data
func LoadScheduleFromBytes(data []byte) (*Schedule, error) {
	var schedule Schedule
	if err := yaml.Unmarshal(data, &schedule); err != nil {
		return nil, fmt.Errorf("failed to parse schedule YAML: %w", err)
	}

	if err := schedule.Validate(); err != nil {
		return nil, fmt.Errorf("schedule validation failed: %w", err)
	}

	return &schedule, nil
}

// Validate checks time-of-day keys and color temperature values
func (s *Schedule) Validate() error {
	if err := validateEntries("default", s.Default); err != nil {
		return err
	}
	for location, entries := range s.Locations {
		if location == "" {
			return fmt.Errorf("location name must not be empty")
		}
		if err := validateEntries(location, entries); err != nil {
			return err
		}
	}
	return nil
}

func validateEntries(scope string, entries map[string]int) error {
	for timeOfDay, kelvin := range entries {
		if !isKnownTimeOfDay(timeOfDay) {
			return fmt.Errorf("%s: unknown time of day %q", scope, timeOfDay)
		}
		if kelvin <= 0 {
			return fmt.Errorf("%s: color temperature for %s must be positive, got %d", scope, timeOfDay, kelvin)
		}
	}
	return nil
}

// Lookup returns the scheduled color temperature for a location and time of day
func (s *Schedule) Lookup(location, timeOfDay string) (int, bool) {
	if s == nil {
		return 0, false
	}
	if entries, ok := s.Locations[location]; ok {
		if kelvin, ok := entries[timeOfDay]; ok {
			return kelvin, true
		}
	}
	kelvin, ok := s.Default[timeOfDay]
	return kelvin, ok
}

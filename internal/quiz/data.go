package quiz

import (
	_ "embed"
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed teams.yaml
var defaultRoster []byte

// ErrEmptyRoster is returned when a roster declares no teams.
var ErrEmptyRoster = errors.New("quiz: roster has no teams")

// Team is one quiz entry: players are shown, the tag is the answer.
type Team struct {
	Name    string   `yaml:"name"`
	Tag     string   `yaml:"tag"`
	Aliases []string `yaml:"aliases"`
	Players []string `yaml:"players"`
}

// Roster is the full set of teams for one quiz round.
type Roster struct {
	Teams []Team `yaml:"teams"`
}

// LoadRoster parses and validates a YAML roster.
func LoadRoster(data []byte) (*Roster, error) {
	var r Roster
	if err := yaml.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("parsing roster: %w", err)
	}
	if len(r.Teams) == 0 {
		return nil, ErrEmptyRoster
	}
	seen := make(map[string]struct{}, len(r.Teams))
	for i, t := range r.Teams {
		if t.Name == "" || t.Tag == "" {
			return nil, fmt.Errorf("team %d: name and tag are required", i)
		}
		if _, dup := seen[t.Tag]; dup {
			return nil, fmt.Errorf("duplicate team tag %q", t.Tag)
		}
		seen[t.Tag] = struct{}{}
	}
	return &r, nil
}

// DefaultRoster loads the embedded roster.
func DefaultRoster() (*Roster, error) {
	return LoadRoster(defaultRoster)
}

package gallery

import (
	"fmt"
	"io"
	"os"

	"github.com/BurntSushi/toml"

	errs "github.com/matzehuels/stepwise/pkg/errors"
)

// Scenario is a named request stored in a TOML file.
type Scenario struct {
	Name        string  `toml:"name" json:"name"`
	Description string  `toml:"description" json:"description,omitempty"`
	PaceScale   float64 `toml:"pace_scale" json:"pace_scale,omitempty"`
	Request
}

type scenarioFile struct {
	Scenarios []Scenario `toml:"scenario"`
}

// ReadScenarios decodes a TOML scenario file. Every scenario needs a unique
// name and a known algorithm.
func ReadScenarios(r io.Reader) ([]Scenario, error) {
	var f scenarioFile
	if _, err := toml.NewDecoder(r).Decode(&f); err != nil {
		return nil, errs.Wrap(errs.ErrCodeInvalidScenario, err, "decode scenarios")
	}
	seen := make(map[string]bool, len(f.Scenarios))
	for i, sc := range f.Scenarios {
		if sc.Name == "" {
			return nil, errs.New(errs.ErrCodeInvalidScenario, "scenario %d has no name", i+1)
		}
		if seen[sc.Name] {
			return nil, errs.New(errs.ErrCodeInvalidScenario, "duplicate scenario %q", sc.Name)
		}
		seen[sc.Name] = true
		if _, ok := Lookup(sc.Resolve()); !ok {
			return nil, errs.New(errs.ErrCodeInvalidScenario, "scenario %q: unknown algorithm %q", sc.Name, sc.Resolve())
		}
		if sc.PaceScale < 0 {
			return nil, errs.New(errs.ErrCodeInvalidScenario, "scenario %q: pace_scale must not be negative", sc.Name)
		}
	}
	return f.Scenarios, nil
}

// LoadScenarios reads a TOML scenario file from disk.
func LoadScenarios(path string) ([]Scenario, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadScenarios(f)
}

// FindScenario returns the scenario with the given name.
func FindScenario(scenarios []Scenario, name string) (Scenario, error) {
	for _, sc := range scenarios {
		if sc.Name == name {
			return sc, nil
		}
	}
	return Scenario{}, errs.New(errs.ErrCodeScenarioNotFound, "scenario %q not found", name)
}

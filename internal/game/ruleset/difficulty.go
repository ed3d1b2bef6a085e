// Package ruleset holds the difficulty profiles that parameterise a session.
package ruleset

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrInvalidDifficulty is returned when a difficulty name is not registered.
var ErrInvalidDifficulty = errors.New("invalid difficulty")

// Difficulty is an immutable named bundle of rule parameters.
//
// Invariant: Name is non-empty, MaxHealth >= 1, both scales > 0.
type Difficulty struct {
	Name             string  `yaml:"name"`
	MaxHealth        int     `yaml:"max_health"`
	OverhealPenalty  bool    `yaml:"overheal_penalty"`
	EnemyHealthScale float64 `yaml:"enemy_health_scale"`
	EnemyDamageScale float64 `yaml:"enemy_damage_scale"`
	ConfusionEnabled bool    `yaml:"confusion_enabled"`
}

// Validate checks the Difficulty invariants.
//
// Postcondition: Returns nil if valid, or an error naming the first violation.
func (d Difficulty) Validate() error {
	if d.Name == "" {
		return errors.New("difficulty name must not be empty")
	}
	if d.MaxHealth < 1 {
		return fmt.Errorf("difficulty %q: max_health must be >= 1, got %d", d.Name, d.MaxHealth)
	}
	if d.EnemyHealthScale <= 0 {
		return fmt.Errorf("difficulty %q: enemy_health_scale must be > 0, got %v", d.Name, d.EnemyHealthScale)
	}
	if d.EnemyDamageScale <= 0 {
		return fmt.Errorf("difficulty %q: enemy_damage_scale must be > 0, got %v", d.Name, d.EnemyDamageScale)
	}
	return nil
}

// Built-in profiles.
var (
	Easy = Difficulty{
		Name:             "Easy",
		MaxHealth:        10,
		OverhealPenalty:  false,
		EnemyHealthScale: 0.7,
		EnemyDamageScale: 0.7,
		ConfusionEnabled: false,
	}
	Hard = Difficulty{
		Name:             "Hard",
		MaxHealth:        10,
		OverhealPenalty:  true,
		EnemyHealthScale: 1.5,
		EnemyDamageScale: 1.5,
		ConfusionEnabled: true,
	}
)

// Registry provides lookup of difficulty profiles by name.
// It is populated once at start-up and read-only afterwards.
type Registry struct {
	profiles map[string]Difficulty
}

// NewRegistry returns a Registry holding the built-in Easy and Hard profiles.
//
// Postcondition: Lookup("Easy") and Lookup("Hard") succeed.
func NewRegistry() *Registry {
	r := &Registry{profiles: make(map[string]Difficulty)}
	r.profiles[Easy.Name] = Easy
	r.profiles[Hard.Name] = Hard
	return r
}

// Register adds or replaces a profile.
//
// Precondition: d must satisfy Validate.
// Postcondition: Lookup(d.Name) returns d.
func (r *Registry) Register(d Difficulty) error {
	if err := d.Validate(); err != nil {
		return err
	}
	r.profiles[d.Name] = d
	return nil
}

// Lookup returns the profile registered under name.
//
// Postcondition: Returns the profile, or an error wrapping ErrInvalidDifficulty.
func (r *Registry) Lookup(name string) (Difficulty, error) {
	d, ok := r.profiles[name]
	if !ok {
		return Difficulty{}, fmt.Errorf("%w: %q", ErrInvalidDifficulty, name)
	}
	return d, nil
}

// Names returns the registered profile names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.profiles))
	for n := range r.profiles {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// LoadDifficulties reads all .yaml files in dir and parses each as a Difficulty.
//
// Precondition: dir must be a readable directory path.
// Postcondition: Returns all parsed and validated profiles or a non-nil error.
func LoadDifficulties(dir string) ([]Difficulty, error) {
	files, err := yamlFiles(dir)
	if err != nil {
		return nil, err
	}
	out := make([]Difficulty, 0, len(files))
	for _, path := range files {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}
		var d Difficulty
		dec := yaml.NewDecoder(strings.NewReader(string(data)))
		dec.KnownFields(true)
		if err := dec.Decode(&d); err != nil {
			return nil, fmt.Errorf("parsing difficulty file %s: %w", path, err)
		}
		if err := d.Validate(); err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		out = append(out, d)
	}
	return out, nil
}

// LoadRegistry returns a Registry with the built-in profiles plus every profile
// found in dir. An empty dir yields the built-ins only.
//
// Postcondition: Returns a populated Registry or a non-nil error.
func LoadRegistry(dir string) (*Registry, error) {
	r := NewRegistry()
	if dir == "" {
		return r, nil
	}
	loaded, err := LoadDifficulties(dir)
	if err != nil {
		return nil, err
	}
	for _, d := range loaded {
		if err := r.Register(d); err != nil {
			return nil, err
		}
	}
	return r, nil
}

func yamlFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading directory %s: %w", dir, err)
	}
	var paths []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if strings.HasSuffix(name, ".yaml") || strings.HasSuffix(name, ".yml") {
			paths = append(paths, filepath.Join(dir, name))
		}
	}
	return paths, nil
}

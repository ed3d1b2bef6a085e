// Package condition tracks turn-counted status effects applied to adversaries.
package condition

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Built-in condition IDs.
const (
	Stunned  = "stunned"
	Poisoned = "poisoned"
)

// Action names that conditions may restrict.
const (
	ActionAttack  = "attack"
	ActionAbility = "ability"
)

// ConditionDef is the static definition of a condition, loaded from YAML.
type ConditionDef struct {
	ID              string   `yaml:"id"`
	Name            string   `yaml:"name"`
	Description     string   `yaml:"description"`
	DurationType    string   `yaml:"duration_type"` // "rounds" | "permanent"
	MaxStacks       int      `yaml:"max_stacks"`    // 0 = unstackable
	DamagePerTurn   int      `yaml:"damage_per_turn"`
	RestrictActions []string `yaml:"restrict_actions"`
}

// Validate checks the definition invariants.
func (d *ConditionDef) Validate() error {
	if d.ID == "" {
		return fmt.Errorf("condition id must not be empty")
	}
	switch d.DurationType {
	case "rounds", "permanent":
	default:
		return fmt.Errorf("condition %q: duration_type must be rounds or permanent, got %q", d.ID, d.DurationType)
	}
	if d.MaxStacks < 0 {
		return fmt.Errorf("condition %q: max_stacks must be >= 0", d.ID)
	}
	if d.DamagePerTurn < 0 {
		return fmt.Errorf("condition %q: damage_per_turn must be >= 0", d.ID)
	}
	return nil
}

// Registry holds all known ConditionDefs keyed by ID.
type Registry struct {
	defs map[string]*ConditionDef
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{defs: make(map[string]*ConditionDef)}
}

// DefaultRegistry returns a Registry holding the built-in stunned and
// poisoned conditions.
//
// Postcondition: Get(Stunned) and Get(Poisoned) succeed.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(&ConditionDef{
		ID:              Stunned,
		Name:            "Stunned",
		Description:     "Cannot strike back this round.",
		DurationType:    "rounds",
		RestrictActions: []string{ActionAttack},
	})
	r.Register(&ConditionDef{
		ID:            Poisoned,
		Name:          "Poisoned",
		Description:   "Takes damage at the end of each turn.",
		DurationType:  "rounds",
		DamagePerTurn: 2,
	})
	return r
}

// Register adds def to the registry, overwriting any existing entry with the same ID.
// Precondition: def must not be nil and def.ID must not be empty.
func (r *Registry) Register(def *ConditionDef) {
	r.defs[def.ID] = def
}

// Get returns the ConditionDef for id, or (nil, false) if not found.
func (r *Registry) Get(id string) (*ConditionDef, bool) {
	d, ok := r.defs[id]
	return d, ok
}

// All returns a snapshot slice of all registered ConditionDefs sorted by ID.
func (r *Registry) All() []*ConditionDef {
	out := make([]*ConditionDef, 0, len(r.defs))
	for _, d := range r.defs {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// LoadDirectory reads every *.yaml file in dir, parses each as a ConditionDef,
// and registers it over the built-in definitions.
// Precondition: dir must be a readable directory.
// Postcondition: Returns a non-nil Registry, or an error if any file fails to parse.
func LoadDirectory(dir string) (*Registry, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading condition dir %q: %w", dir, err)
	}
	reg := DefaultRegistry()
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".yaml") {
			continue
		}
		path := filepath.Join(dir, e.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading %q: %w", path, err)
		}
		var def ConditionDef
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&def); err != nil {
			return nil, fmt.Errorf("parsing %q: %w", path, err)
		}
		if err := def.Validate(); err != nil {
			return nil, fmt.Errorf("%q: %w", path, err)
		}
		reg.Register(&def)
	}
	return reg, nil
}

package condition

import (
	"errors"
	"sort"
)

// ActiveCondition is one condition applied to an adversary.
type ActiveCondition struct {
	Def    *ConditionDef
	Stacks int
	// Remaining counts rounds left; -1 never expires.
	Remaining int
}

// ActiveSet is the set of conditions on one boss or enemy, keyed by ID.
// Callers serialise access.
type ActiveSet struct {
	conditions map[string]*ActiveCondition
}

// NewActiveSet creates an empty ActiveSet.
func NewActiveSet() *ActiveSet {
	return &ActiveSet{conditions: make(map[string]*ActiveCondition)}
}

// stackLimit returns n bounded by def's stacking rule: unstackable
// definitions always hold one stack.
func stackLimit(def *ConditionDef, n int) int {
	switch {
	case def.MaxStacks == 0:
		return 1
	case n > def.MaxStacks:
		return def.MaxStacks
	}
	return n
}

// Apply adds def with the given stacks and duration, or merges into an
// existing entry: stacks add up to MaxStacks and the longer duration wins.
//
// Precondition: def must not be nil. duration -1 means permanent.
// Postcondition: Has(def.ID) is true.
func (s *ActiveSet) Apply(def *ConditionDef, stacks, duration int) error {
	if def == nil {
		return errors.New("condition: Apply with nil definition")
	}
	ac, ok := s.conditions[def.ID]
	if !ok {
		s.conditions[def.ID] = &ActiveCondition{Def: def, Stacks: stackLimit(def, stacks), Remaining: duration}
		return nil
	}
	ac.Stacks = stackLimit(def, ac.Stacks+stacks)
	ac.Remaining = max(ac.Remaining, duration)
	return nil
}

// Remove drops the condition id. Missing ids are ignored.
func (s *ActiveSet) Remove(id string) {
	delete(s.conditions, id)
}

// Tick advances every round-counted condition by one round and returns the
// IDs that expired, in sorted order. Permanent entries are untouched.
//
// Postcondition: Has(id) is false for every returned id.
func (s *ActiveSet) Tick() []string {
	var expired []string
	for _, id := range s.IDs() {
		ac := s.conditions[id]
		if ac.Def.DurationType != "rounds" || ac.Remaining < 0 {
			continue
		}
		if ac.Remaining--; ac.Remaining <= 0 {
			delete(s.conditions, id)
			expired = append(expired, id)
		}
	}
	return expired
}

// Has reports whether condition id is active.
func (s *ActiveSet) Has(id string) bool {
	_, ok := s.conditions[id]
	return ok
}

// Stacks returns the stack count of id, or 0.
func (s *ActiveSet) Stacks(id string) int {
	if ac, ok := s.conditions[id]; ok {
		return ac.Stacks
	}
	return 0
}

// All returns the active conditions sorted by ID. The entries are shared
// with the set; callers must not modify them.
func (s *ActiveSet) All() []*ActiveCondition {
	out := make([]*ActiveCondition, 0, len(s.conditions))
	for _, id := range s.IDs() {
		out = append(out, s.conditions[id])
	}
	return out
}

// IDs returns the active condition IDs in sorted order.
func (s *ActiveSet) IDs() []string {
	ids := make([]string, 0, len(s.conditions))
	for id := range s.conditions {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Len returns the number of active conditions.
func (s *ActiveSet) Len() int { return len(s.conditions) }

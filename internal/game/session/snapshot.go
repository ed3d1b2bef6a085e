package session

import (
	"github.com/cory-johannsen/tilerpg/internal/game/subsystem"
	"github.com/cory-johannsen/tilerpg/internal/game/world"
)

// PlayerView is the read-only player state shown to renderers.
type PlayerView struct {
	X            int      `yaml:"x"`
	Y            int      `yaml:"y"`
	Health       int      `yaml:"health"`
	MaxHealth    int      `yaml:"max_health"`
	Gold         int      `yaml:"gold"`
	Mana         int      `yaml:"mana"`
	MaxMana      int      `yaml:"max_mana"`
	Level        int      `yaml:"level"`
	Exp          int      `yaml:"exp"`
	ExpToNext    int      `yaml:"exp_to_next"`
	Confused     int      `yaml:"confused,omitempty"`
	Spells       []int    `yaml:"spells"`
	Achievements []string `yaml:"achievements,omitempty"`
}

// BossView is the read-only state of an active boss battle.
type BossView struct {
	Name       string   `yaml:"name"`
	Health     int      `yaml:"health"`
	MaxHealth  int      `yaml:"max_health"`
	Strength   int      `yaml:"strength"`
	Cooldown   int      `yaml:"cooldown"`
	Shielded   bool     `yaml:"shielded,omitempty"`
	Conditions []string `yaml:"conditions,omitempty"`
	Round      int      `yaml:"round"`
}

// Snapshot is a read-only view of the session for renderers.
type Snapshot struct {
	SessionID       string        `yaml:"session_id"`
	State           State         `yaml:"state"`
	SelectedFeature int           `yaml:"selected_feature"`
	Features        []FeatureView `yaml:"features"`
	// Grid is the live grid; renderers must not mutate it.
	Grid *world.Grid `yaml:"-"`
	// Map is the grid as glyph lines with the player drawn as '@'.
	Map            []string          `yaml:"map,omitempty"`
	Player         *PlayerView       `yaml:"player,omitempty"`
	PendingMessage string            `yaml:"message,omitempty"`
	Boss           *BossView         `yaml:"boss,omitempty"`
	Narrative      string            `yaml:"narrative,omitempty"`
	Subsystems     map[string]string `yaml:"subsystems,omitempty"`
	// Error is the last rejected intent, set by Run.
	Error string `yaml:"error,omitempty"`
}

// Snapshot returns the current view of the session.
func (s *Session) Snapshot() Snapshot {
	snap := Snapshot{
		SessionID:       s.ID,
		State:           s.state,
		SelectedFeature: s.selected,
		Features:        s.features.views(),
		Grid:            s.grid,
		PendingMessage:  s.pending,
		Narrative:       s.narrative,
		Subsystems:      subsystem.Summaries(s.subsystems),
	}
	if p := s.player; p != nil {
		snap.Player = &PlayerView{
			X: p.X, Y: p.Y,
			Health: p.Health, MaxHealth: p.MaxHealth,
			Gold: p.Gold,
			Mana: p.Mana, MaxMana: p.MaxMana,
			Level: p.Level, Exp: p.Exp, ExpToNext: p.ExpToNext,
			Confused:     p.Confused,
			Spells:       p.UnlockedSpells(),
			Achievements: p.Achievements(),
		}
		if s.grid != nil {
			snap.Map = s.grid.Lines()
			if s.grid.InBounds(p.X, p.Y) {
				row := []rune(snap.Map[p.Y])
				row[p.X] = '@'
				snap.Map[p.Y] = string(row)
			}
		}
	}
	if bb := s.battle; bb != nil {
		b := bb.Boss
		snap.Boss = &BossView{
			Name:       b.Name,
			Health:     b.CurrentHealth,
			MaxHealth:  b.MaxHealth,
			Strength:   b.Strength,
			Cooldown:   b.AbilityCooldown,
			Shielded:   b.Shielded,
			Conditions: b.Conditions.IDs(),
			Round:      bb.Round,
		}
	}
	return snap
}

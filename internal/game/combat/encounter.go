package combat

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/cory-johannsen/tilerpg/internal/game/character"
	"github.com/cory-johannsen/tilerpg/internal/game/dice"
	"github.com/cory-johannsen/tilerpg/internal/game/npc"
)

// EncounterResult describes one resolved simple encounter.
type EncounterResult struct {
	Enemy    *npc.Enemy
	Damage   int
	Defeated bool
	Leveled  bool
	Message  string
}

// Resolver resolves simple encounters. The player makes no choices in them.
type Resolver struct {
	roller *dice.Roller
	types  []npc.EnemyType
	logger *zap.Logger
}

// NewResolver creates a Resolver drawing enemies from types.
//
// Precondition: roller non-nil; types non-empty.
func NewResolver(roller *dice.Roller, types []npc.EnemyType, logger *zap.Logger) *Resolver {
	if len(types) == 0 {
		panic("combat.NewResolver: precondition violated: types must be non-empty")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Resolver{roller: roller, types: types, logger: logger}
}

// ResolveEncounter spawns an enemy with base strength 1-3 and a random type,
// and applies its single hit to p.
//
// The hit is 1..max(1, strength); an active weaken buff lowers the ceiling by
// one (minimum 1) and each shield level absorbs one point (minimum 1 dealt).
// If p survives, the enemy is defeated: p gains exp equal to its strength,
// gold equal to p's boots level, and a bonus point.
//
// Precondition: p non-nil.
// Postcondition: p.Health has dropped by exactly result.Damage before rewards.
func (r *Resolver) ResolveEncounter(p *character.Player) EncounterResult {
	base := r.roller.Between("enemy strength", 1, 3)
	typ := r.types[r.roller.Pick("enemy type", len(r.types))]
	enemy := npc.NewEnemy(typ, base, p.Difficulty.EnemyHealthScale)

	ceiling := enemy.AttackCeiling()
	if p.Weakened() {
		ceiling = max(1, ceiling-1)
	}
	dmg := r.roller.Between("enemy damage", 1, ceiling)
	dmg = max(1, dmg-p.ShieldLevel)
	p.TakeDamage(dmg)
	p.UpdateWeaken()

	res := EncounterResult{
		Enemy:   enemy,
		Damage:  dmg,
		Message: fmt.Sprintf("Enemy Encounter! Took %d damage from a %s.", dmg, enemy.Name()),
	}
	if p.Alive() {
		res.Defeated = true
		exp := max(0, enemy.Strength)
		p.AddGold(p.BootsLevel)
		p.RecordEnemyDefeated()
		p.AddBonus()
		res.Leveled = p.GainExp(exp)
		res.Message += fmt.Sprintf(" You defeated the %s! +%d exp.", enemy.Name(), exp)
		if res.Leveled {
			res.Message += fmt.Sprintf(" Level up! You are now level %d.", p.Level)
		}
	}

	r.logger.Info("encounter resolved",
		zap.String("enemy_id", enemy.ID),
		zap.String("enemy", enemy.Name()),
		zap.Stringer("effect", enemy.Type.Effect),
		zap.Int("strength", enemy.Strength),
		zap.Int("damage", dmg),
		zap.Int("player_health", p.Health),
		zap.Bool("defeated", res.Defeated),
	)
	return res
}

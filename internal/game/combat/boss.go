package combat

import (
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/cory-johannsen/tilerpg/internal/game/character"
	"github.com/cory-johannsen/tilerpg/internal/game/condition"
	"github.com/cory-johannsen/tilerpg/internal/game/dice"
	"github.com/cory-johannsen/tilerpg/internal/game/npc"
)

// VictoryExp is the experience awarded for defeating a boss.
const VictoryExp = 10

// BossBattle is the turn-based duel between the player and one boss.
// It is not safe for concurrent use; the caller must serialise access.
//
// Invariant: once Outcome is terminal no further action is accepted.
type BossBattle struct {
	Boss    *npc.Boss
	Outcome Outcome
	// Round counts resolved rounds, starting at 0.
	Round int

	player     *character.Player
	roller     *dice.Roller
	logger     *zap.Logger
	tookDamage bool
}

// NewBossBattle starts a battle between p and b.
//
// Precondition: b, p and roller non-nil.
// Postcondition: Outcome == Active; Round == 0.
func NewBossBattle(b *npc.Boss, p *character.Player, roller *dice.Roller, logger *zap.Logger) *BossBattle {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BossBattle{Boss: b, Outcome: Active, player: p, roller: roller, logger: logger}
}

// Intro returns the opening line of the battle.
func (bb *BossBattle) Intro() string {
	return fmt.Sprintf("Boss Fight: %s!", bb.Boss.Name)
}

// Narrative joins the narratives of events into one line.
func Narrative(events []RoundEvent) string {
	parts := make([]string, 0, len(events))
	for _, e := range events {
		parts = append(parts, e.Narrative)
	}
	return strings.Join(parts, " ")
}

// Act resolves one round.
//
// The player acts first. Quit ends the battle as Aborted at once with no boss
// turn. Otherwise the boss's cooldown ticks and its ability fires when the
// cooldown expires, whatever the player did. A boss still standing then
// counter-attacks unless stunned and takes damage from its conditions.
// Conditions tick, the player regains one mana and one weaken turn is spent.
// Victory is checked before defeat.
//
// Precondition: Outcome == Active.
// Postcondition: Returns the round's events, or ErrBattleOver.
func (bb *BossBattle) Act(a Action) ([]RoundEvent, error) {
	if bb.Outcome.Terminal() {
		return nil, ErrBattleOver
	}
	p, b := bb.player, bb.Boss
	var events []RoundEvent

	switch a.Type {
	case ActionAttack:
		dmg := bb.roller.Between("player attack", 2, 4) + p.SwordLevel
		b.TakeDamage(dmg)
		events = append(events, RoundEvent{ActorName: "You", Damage: dmg, Narrative: fmt.Sprintf("You attack for %d!", dmg)})
	case ActionSpell:
		events = append(events, bb.castSpell(a.Spell))
	case ActionQuit:
		bb.Outcome = Aborted
		events = append(events, RoundEvent{ActorName: "You", Narrative: fmt.Sprintf("You fled from the %s.", b.Name)})
		bb.logger.Info("boss battle aborted", zap.String("boss", b.Name), zap.Int("round", bb.Round))
		return events, nil
	default:
		return nil, fmt.Errorf("unsupported boss action %s", a.Type)
	}

	b.AbilityCooldown--
	if b.AbilityCooldown <= 0 {
		events = append(events, bb.triggerAbility())
		b.AbilityCooldown = npc.AbilityCooldown
	}
	if b.Alive() {
		events = append(events, bb.counterAttack())
		if dot := condition.DamagePerTurn(b.Conditions); dot > 0 {
			b.TakeDamage(dot)
			events = append(events, RoundEvent{ActorName: b.Name, Damage: dot, Narrative: fmt.Sprintf("Poison deals %d damage to the %s.", dot, b.Name)})
		}
	}
	b.Conditions.Tick()
	p.RestoreMana(1)
	p.UpdateWeaken()
	bb.Round++

	switch {
	case !b.Alive():
		bb.Outcome = Victory
		p.RecordBossDefeated(!bb.tookDamage)
		msg := fmt.Sprintf("You defeated the %s! +%d exp.", b.Name, VictoryExp)
		if p.GainExp(VictoryExp) {
			msg += fmt.Sprintf(" Level up! You are now level %d.", p.Level)
		}
		events = append(events, RoundEvent{ActorName: "You", Narrative: msg})
	case !p.Alive():
		bb.Outcome = Defeat
		events = append(events, RoundEvent{ActorName: b.Name, Narrative: fmt.Sprintf("You were defeated by the %s.", b.Name)})
	}

	bb.logger.Info("boss round",
		zap.String("boss_id", b.ID),
		zap.String("boss", b.Name),
		zap.Int("round", bb.Round),
		zap.Stringer("action", a.Type),
		zap.Int("boss_health", b.CurrentHealth),
		zap.Int("player_health", p.Health),
		zap.Stringer("outcome", bb.Outcome),
	)
	return events, nil
}

func (bb *BossBattle) castSpell(index int) RoundEvent {
	before := bb.Boss.CurrentHealth
	res, err := bb.player.UseSpell(index, bb.Boss, bb.roller)
	if err != nil {
		var msg string
		switch {
		case errors.Is(err, character.ErrSpellLocked):
			msg = "Spell not unlocked!"
		case errors.Is(err, character.ErrInsufficientMana):
			msg = "Not enough mana!"
		default:
			msg = "Spell fizzled."
		}
		bb.logger.Debug("spell failed", zap.Int("spell", index), zap.Error(err))
		return RoundEvent{ActorName: "You", Narrative: msg}
	}
	return RoundEvent{ActorName: "You", Damage: before - bb.Boss.CurrentHealth, Narrative: res.Message}
}

func (bb *BossBattle) triggerAbility() RoundEvent {
	b := bb.Boss
	if condition.IsActionRestricted(b.Conditions, condition.ActionAbility) {
		return RoundEvent{ActorName: b.Name, Narrative: fmt.Sprintf("The %s cannot use its ability!", b.Name)}
	}
	switch b.Ability {
	case npc.AbilityMultiStrike:
		d := bb.roller.Between("multi strike", 2, 4) + b.Strength
		bb.hitPlayer(d)
		bb.hitPlayer(d / 2)
		return RoundEvent{ActorName: b.Name, Damage: d + d/2, Narrative: fmt.Sprintf("%s lashes twice! %d and %d damage!", b.Name, d, d/2)}
	case npc.AbilityShield:
		b.Shielded = true
		return RoundEvent{ActorName: b.Name, Narrative: fmt.Sprintf("%s shields itself (half damage next turn)!", b.Name)}
	default:
		d := bb.roller.Between("breath", 4, 8) + b.Strength
		bb.hitPlayer(d)
		return RoundEvent{ActorName: b.Name, Damage: d, Narrative: fmt.Sprintf("%s breathes fire! %d damage!", b.Name, d)}
	}
}

func (bb *BossBattle) counterAttack() RoundEvent {
	p, b := bb.player, bb.Boss
	if condition.IsActionRestricted(b.Conditions, condition.ActionAttack) {
		return RoundEvent{ActorName: b.Name, Narrative: fmt.Sprintf("The %s is stunned and cannot attack!", b.Name)}
	}
	if p.BlockNext {
		p.BlockNext = false
		return RoundEvent{ActorName: b.Name, Narrative: "You blocked the boss's attack!"}
	}
	hi := 6
	if p.Weakened() {
		hi--
	}
	d := bb.roller.Between("boss attack", 3, hi) + b.Strength
	if b.Shielded {
		d /= 2
		b.Shielded = false
	}
	bb.hitPlayer(d)
	return RoundEvent{ActorName: b.Name, Damage: d, Narrative: fmt.Sprintf("Boss hits you for %d!", d)}
}

func (bb *BossBattle) hitPlayer(d int) {
	if d > 0 {
		bb.tookDamage = true
	}
	bb.player.TakeDamage(d)
}

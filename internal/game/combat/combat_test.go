package combat_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/tilerpg/internal/game/character"
	"github.com/cory-johannsen/tilerpg/internal/game/combat"
	"github.com/cory-johannsen/tilerpg/internal/game/condition"
	"github.com/cory-johannsen/tilerpg/internal/game/dice"
	"github.com/cory-johannsen/tilerpg/internal/game/npc"
	"github.com/cory-johannsen/tilerpg/internal/game/ruleset"
)

// fixedSrc is a deterministic Source for testing. Values at or above n are
// clamped to n-1 so one value can drive rolls of different widths.
type fixedSrc struct{ val int }

func (f fixedSrc) Intn(n int) int {
	if f.val >= n {
		return n - 1
	}
	return f.val
}

// seqSrc replays vals in order, clamped the same way as fixedSrc.
type seqSrc struct {
	vals []int
	i    int
}

func (s *seqSrc) Intn(n int) int {
	v := s.vals[s.i%len(s.vals)]
	s.i++
	if v >= n {
		v = n - 1
	}
	return v
}

func roller(src dice.Source) *dice.Roller { return dice.NewLoggedRoller(src, nil) }

func boss(idx, strength, health int) *npc.Boss {
	return npc.NewBoss(npc.DefaultBosses()[idx], strength, health, condition.DefaultRegistry())
}

func TestOutcome_String(t *testing.T) {
	assert.Equal(t, "active", combat.Active.String())
	assert.Equal(t, "victory", combat.Victory.String())
	assert.Equal(t, "defeat", combat.Defeat.String())
	assert.Equal(t, "aborted", combat.Aborted.String())
	assert.False(t, combat.Active.Terminal())
	assert.True(t, combat.Aborted.Terminal())
	assert.Equal(t, "spell", combat.ActionSpell.String())
	assert.Equal(t, "unknown", combat.ActionUnknown.String())
}

func TestResolveEncounter_Survived(t *testing.T) {
	p := character.New(ruleset.Easy, 5, 5)
	p.BootsLevel = 2
	// strength roll 2 → base 3; type 1 → Orc (strength 4); damage roll 3 → 4
	r := combat.NewResolver(roller(&seqSrc{vals: []int{2, 1, 3}}), npc.DefaultEnemyTypes(), nil)
	res := r.ResolveEncounter(p)

	assert.Equal(t, "Orc", res.Enemy.Name())
	assert.Equal(t, 4, res.Enemy.Strength)
	assert.Equal(t, 5, res.Enemy.Health, "8 scaled by 0.7")
	assert.Equal(t, 4, res.Damage)
	assert.Equal(t, 6, p.Health)
	assert.True(t, res.Defeated)
	assert.Equal(t, 4, p.Exp)
	assert.Equal(t, 2, p.Gold)
	assert.Equal(t, 1, p.BonusPoints)
	assert.True(t, p.HasAchievement(character.FirstBlood))
	assert.Equal(t, "Enemy Encounter! Took 4 damage from a Orc. You defeated the Orc! +4 exp.", res.Message)
}

func TestResolveEncounter_DamageRange_Property(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		p := character.New(ruleset.Easy, 5, 5)
		r := combat.NewResolver(roller(dice.NewSeededSource(rapid.Int64().Draw(rt, "seed"))), npc.DefaultEnemyTypes(), nil)
		res := r.ResolveEncounter(p)
		assert.GreaterOrEqual(rt, res.Damage, 1)
		assert.LessOrEqual(rt, res.Damage, res.Enemy.AttackCeiling())
		assert.Equal(rt, 10-res.Damage, p.Health)
	})
}

func TestResolveEncounter_WeakenLowersCeiling(t *testing.T) {
	p := character.New(ruleset.Easy, 5, 5)
	p.WeakenTurns = 5
	res := combat.NewResolver(roller(&seqSrc{vals: []int{2, 1, 3}}), npc.DefaultEnemyTypes(), nil).ResolveEncounter(p)
	assert.Equal(t, 3, res.Damage)
	assert.Equal(t, 4, p.WeakenTurns)
}

func TestResolveEncounter_ShieldFloorsAtOne(t *testing.T) {
	p := character.New(ruleset.Easy, 5, 5)
	p.ShieldLevel = 5
	res := combat.NewResolver(roller(&seqSrc{vals: []int{2, 1, 3}}), npc.DefaultEnemyTypes(), nil).ResolveEncounter(p)
	assert.Equal(t, 1, res.Damage)
}

func TestResolveEncounter_ZeroStrengthStillHits(t *testing.T) {
	p := character.New(ruleset.Easy, 5, 5)
	// base 1, Slime → strength 0
	res := combat.NewResolver(roller(&seqSrc{vals: []int{0, 2, 0}}), npc.DefaultEnemyTypes(), nil).ResolveEncounter(p)
	assert.Equal(t, 0, res.Enemy.Strength)
	assert.Equal(t, 1, res.Damage)
	assert.Equal(t, 0, p.Exp)
}

func TestResolveEncounter_PlayerDies(t *testing.T) {
	p := character.New(ruleset.Easy, 5, 5)
	p.Health = 1
	res := combat.NewResolver(roller(fixedSrc{2}), npc.DefaultEnemyTypes(), nil).ResolveEncounter(p)
	assert.False(t, res.Defeated)
	assert.LessOrEqual(t, p.Health, 0)
	assert.Equal(t, 0, p.EnemiesDefeated)
	assert.NotContains(t, res.Message, "defeated")
}

func TestResolveEncounter_Logs(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	p := character.New(ruleset.Easy, 5, 5)
	combat.NewResolver(roller(fixedSrc{0}), npc.DefaultEnemyTypes(), zap.New(core)).ResolveEncounter(p)
	entries := logs.FilterMessage("encounter resolved").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "Goblin", entries[0].ContextMap()["enemy"])
}

func TestNewResolver_PanicsWithoutTypes(t *testing.T) {
	assert.Panics(t, func() { combat.NewResolver(roller(fixedSrc{0}), nil, nil) })
}

// Attack with a roll of 3 against a 10-health Hydra leaves it at 7.
func TestBossBattle_AttackDealsTwoToFour(t *testing.T) {
	p := character.New(ruleset.Easy, 5, 5)
	b := boss(0, 1, 10)
	bb := combat.NewBossBattle(b, p, roller(fixedSrc{1}), nil)
	assert.Equal(t, "Boss Fight: Dread Hydra!", bb.Intro())

	events, err := bb.Act(combat.Action{Type: combat.ActionAttack})
	require.NoError(t, err)
	assert.Equal(t, 7, b.CurrentHealth)
	assert.Equal(t, 3, events[0].Damage)
	assert.Equal(t, 2, b.AbilityCooldown)
	assert.Equal(t, 5, p.Health, "counter-attack 4+1")
	assert.Equal(t, combat.Active, bb.Outcome)
	assert.Equal(t, 1, bb.Round)
	assert.Equal(t, "You attack for 3! Boss hits you for 5!", combat.Narrative(events))
}

func TestBossBattle_AttackRange_Property(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		p := character.New(ruleset.Easy, 5, 5)
		p.Health = 1000
		p.SwordLevel = rapid.IntRange(0, 3).Draw(rt, "sword")
		b := boss(0, 1, 100)
		bb := combat.NewBossBattle(b, p, roller(dice.NewSeededSource(rapid.Int64().Draw(rt, "seed"))), nil)
		_, err := bb.Act(combat.Action{Type: combat.ActionAttack})
		require.NoError(rt, err)
		dealt := 100 - b.CurrentHealth
		assert.GreaterOrEqual(rt, dealt, 2+p.SwordLevel)
		assert.LessOrEqual(rt, dealt, 4+p.SwordLevel)
	})
}

func TestBossBattle_ShieldHalvesCounter_Property(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		roll := rapid.IntRange(0, 3).Draw(rt, "roll")
		strength := rapid.IntRange(0, 6).Draw(rt, "strength")
		p := character.New(ruleset.Easy, 5, 5)
		p.Health = 100
		b := boss(1, strength, 100)
		b.Shielded = true
		bb := combat.NewBossBattle(b, p, roller(fixedSrc{roll}), nil)
		_, err := bb.Act(combat.Action{Type: combat.ActionAttack})
		require.NoError(rt, err)
		assert.Equal(rt, 100-(3+roll+strength)/2, p.Health)
		assert.False(rt, b.Shielded)
	})
}

func TestBossBattle_GolemShieldsThenHalves(t *testing.T) {
	p := character.New(ruleset.Easy, 5, 5)
	p.Health = 50
	b := boss(1, 2, 100)
	b.AbilityCooldown = 1
	bb := combat.NewBossBattle(b, p, roller(fixedSrc{3}), nil)
	events, err := bb.Act(combat.Action{Type: combat.ActionAttack})
	require.NoError(t, err)
	assert.Equal(t, 46, p.Health, "(6+2)/2")
	assert.False(t, b.Shielded)
	assert.Equal(t, 3, b.AbilityCooldown)
	assert.Contains(t, combat.Narrative(events), "shields itself")
}

func TestBossBattle_HydraLashesTwice(t *testing.T) {
	p := character.New(ruleset.Easy, 5, 5)
	b := boss(0, 1, 100)
	b.AbilityCooldown = 1
	bb := combat.NewBossBattle(b, p, roller(fixedSrc{0}), nil)
	events, err := bb.Act(combat.Action{Type: combat.ActionAttack})
	require.NoError(t, err)
	// ability 3 + 1, counter 3 + 1
	assert.Equal(t, 2, p.Health)
	assert.Contains(t, combat.Narrative(events), "lashes twice! 3 and 1 damage!")
}

func TestBossBattle_DrakeBreath(t *testing.T) {
	p := character.New(ruleset.Easy, 5, 5)
	p.Health = 30
	b := boss(2, 3, 100)
	b.AbilityCooldown = 1
	bb := combat.NewBossBattle(b, p, roller(fixedSrc{0}), nil)
	_, err := bb.Act(combat.Action{Type: combat.ActionAttack})
	require.NoError(t, err)
	// breath 4+3, counter 3+3
	assert.Equal(t, 30-7-6, p.Health)
}

func TestBossBattle_AbilityFiresOnKillingRound(t *testing.T) {
	p := character.New(ruleset.Easy, 5, 5)
	p.Health = 30
	b := boss(2, 3, 1)
	b.AbilityCooldown = 1
	bb := combat.NewBossBattle(b, p, roller(fixedSrc{0}), nil)
	events, err := bb.Act(combat.Action{Type: combat.ActionAttack})
	require.NoError(t, err)
	assert.Equal(t, combat.Victory, bb.Outcome)
	assert.Equal(t, -1, b.CurrentHealth)
	assert.Equal(t, 3, b.AbilityCooldown, "cooldown resets even when the boss falls")
	narrative := combat.Narrative(events)
	assert.Contains(t, narrative, "breathes fire! 7 damage!")
	assert.NotContains(t, narrative, "Boss hits you")
	assert.False(t, p.HasAchievement(character.Untouchable))
}

func TestBossBattle_CooldownStaysPositive_Property(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		p := character.New(ruleset.Easy, 5, 5)
		p.Health = 1000
		b := boss(rapid.IntRange(0, 2).Draw(rt, "boss"), 1, rapid.IntRange(1, 12).Draw(rt, "health"))
		b.AbilityCooldown = rapid.IntRange(1, 3).Draw(rt, "cooldown")
		bb := combat.NewBossBattle(b, p, roller(dice.NewSeededSource(rapid.Int64().Draw(rt, "seed"))), nil)
		for bb.Outcome == combat.Active {
			_, err := bb.Act(combat.Action{Type: combat.ActionAttack})
			require.NoError(rt, err)
			if b.AbilityCooldown < 1 || b.AbilityCooldown > 3 {
				rt.Fatalf("cooldown %d after round %d", b.AbilityCooldown, bb.Round)
			}
		}
	})
}

func TestBossBattle_WeakenLowersCounterCeiling(t *testing.T) {
	p := character.New(ruleset.Easy, 5, 5)
	p.Health = 20
	p.WeakenTurns = 5
	bb := combat.NewBossBattle(boss(0, 1, 100), p, roller(fixedSrc{3}), nil)
	_, err := bb.Act(combat.Action{Type: combat.ActionAttack})
	require.NoError(t, err)
	assert.Equal(t, 14, p.Health, "counter capped at 5+1 while weakened")
	assert.Equal(t, 4, p.WeakenTurns)

	p.WeakenTurns = 0
	p.Health = 20
	_, err = bb.Act(combat.Action{Type: combat.ActionAttack})
	require.NoError(t, err)
	assert.Equal(t, 13, p.Health, "full 6+1 counter once the buff is gone")
}

func TestBossBattle_RestrictedAbilityIsSuppressed(t *testing.T) {
	p := character.New(ruleset.Easy, 5, 5)
	p.Health = 30
	b := boss(2, 3, 100)
	b.AbilityCooldown = 1
	silenced := &condition.ConditionDef{ID: "silenced", DurationType: "rounds", RestrictActions: []string{condition.ActionAbility}}
	require.NoError(t, b.Conditions.Apply(silenced, 1, 2))
	bb := combat.NewBossBattle(b, p, roller(fixedSrc{0}), nil)
	events, err := bb.Act(combat.Action{Type: combat.ActionAttack})
	require.NoError(t, err)
	assert.Equal(t, 24, p.Health, "counter 3+3 only")
	assert.Equal(t, 3, b.AbilityCooldown)
	assert.Contains(t, combat.Narrative(events), "cannot use its ability")
}

func TestBossBattle_BlockNegatesCounter(t *testing.T) {
	p := character.New(ruleset.Easy, 5, 5)
	p.BlockNext = true
	bb := combat.NewBossBattle(boss(0, 1, 100), p, roller(fixedSrc{0}), nil)
	events, err := bb.Act(combat.Action{Type: combat.ActionAttack})
	require.NoError(t, err)
	assert.Equal(t, 10, p.Health)
	assert.False(t, p.BlockNext)
	assert.Contains(t, combat.Narrative(events), "blocked")
}

func TestBossBattle_StunSkipsCounter(t *testing.T) {
	p := character.New(ruleset.Easy, 5, 5)
	require.NoError(t, p.UnlockSpell(3))
	b := boss(0, 1, 100)
	bb := combat.NewBossBattle(b, p, roller(fixedSrc{0}), nil)
	events, err := bb.Act(combat.Action{Type: combat.ActionSpell, Spell: 3})
	require.NoError(t, err)
	assert.Equal(t, 10, p.Health)
	assert.Contains(t, combat.Narrative(events), "stunned and cannot attack")
	assert.False(t, b.Conditions.Has(condition.Stunned), "stun lasts one round")
	assert.Equal(t, 3, p.Mana, "5 - 3 + 1 regen")

	_, err = bb.Act(combat.Action{Type: combat.ActionAttack})
	require.NoError(t, err)
	assert.Equal(t, 6, p.Health, "boss strikes again")
}

func TestBossBattle_PoisonTicks(t *testing.T) {
	p := character.New(ruleset.Easy, 5, 5)
	p.Health = 100
	p.MaxHealth = 100
	require.NoError(t, p.UnlockSpell(4))
	b := boss(0, 1, 50)
	bb := combat.NewBossBattle(b, p, roller(fixedSrc{0}), nil)

	_, err := bb.Act(combat.Action{Type: combat.ActionSpell, Spell: 4})
	require.NoError(t, err)
	assert.Equal(t, 48, b.CurrentHealth)
	for i := 0; i < 3; i++ {
		_, err = bb.Act(combat.Action{Type: combat.ActionAttack})
		require.NoError(t, err)
	}
	// three attacks of 2 and two more poison ticks
	assert.Equal(t, 48-6-4, b.CurrentHealth)
	assert.False(t, b.Conditions.Has(condition.Poisoned))
}

func TestBossBattle_SpellFailureStillProceeds(t *testing.T) {
	p := character.New(ruleset.Easy, 5, 5)
	bb := combat.NewBossBattle(boss(0, 1, 100), p, roller(fixedSrc{0}), nil)
	events, err := bb.Act(combat.Action{Type: combat.ActionSpell, Spell: 4})
	require.NoError(t, err)
	assert.Equal(t, "Spell not unlocked!", events[0].Narrative)
	assert.Equal(t, 6, p.Health)

	p.Mana = 0
	events, err = bb.Act(combat.Action{Type: combat.ActionSpell, Spell: 0})
	require.NoError(t, err)
	assert.Equal(t, "Not enough mana!", events[0].Narrative)
	assert.Equal(t, 1, p.Mana)
}

func TestBossBattle_FireballDamagesBoss(t *testing.T) {
	p := character.New(ruleset.Easy, 5, 5)
	b := boss(0, 1, 100)
	bb := combat.NewBossBattle(b, p, roller(fixedSrc{0}), nil)
	events, err := bb.Act(combat.Action{Type: combat.ActionSpell, Spell: 0})
	require.NoError(t, err)
	assert.Equal(t, 96, b.CurrentHealth)
	assert.Equal(t, 4, events[0].Damage)
	assert.Equal(t, 4, p.Mana)
}

func TestBossBattle_Quit(t *testing.T) {
	p := character.New(ruleset.Easy, 5, 5)
	b := boss(0, 1, 10)
	bb := combat.NewBossBattle(b, p, roller(fixedSrc{0}), nil)
	events, err := bb.Act(combat.Action{Type: combat.ActionQuit})
	require.NoError(t, err)
	assert.Equal(t, combat.Aborted, bb.Outcome)
	assert.Len(t, events, 1)
	assert.Equal(t, 10, p.Health)
	assert.Equal(t, 3, b.AbilityCooldown)
	assert.Equal(t, 0, p.BossesDefeated)

	_, err = bb.Act(combat.Action{Type: combat.ActionAttack})
	assert.ErrorIs(t, err, combat.ErrBattleOver)
}

func TestBossBattle_Victory(t *testing.T) {
	p := character.New(ruleset.Easy, 5, 5)
	b := boss(0, 1, 2)
	bb := combat.NewBossBattle(b, p, roller(fixedSrc{0}), nil)
	events, err := bb.Act(combat.Action{Type: combat.ActionAttack})
	require.NoError(t, err)
	assert.Equal(t, combat.Victory, bb.Outcome)
	assert.Equal(t, 1, p.BossesDefeated)
	assert.Equal(t, 2, p.Level, "10 exp levels up")
	assert.True(t, p.HasAchievement(character.Untouchable))
	assert.Contains(t, combat.Narrative(events), "You defeated the Dread Hydra!")

	_, err = bb.Act(combat.Action{Type: combat.ActionAttack})
	assert.ErrorIs(t, err, combat.ErrBattleOver)
}

func TestBossBattle_VictoryAfterDamageIsNotUntouchable(t *testing.T) {
	p := character.New(ruleset.Easy, 5, 5)
	b := boss(0, 1, 5)
	bb := combat.NewBossBattle(b, p, roller(fixedSrc{0}), nil)
	_, err := bb.Act(combat.Action{Type: combat.ActionAttack})
	require.NoError(t, err)
	_, err = bb.Act(combat.Action{Type: combat.ActionAttack})
	require.NoError(t, err)
	_, err = bb.Act(combat.Action{Type: combat.ActionAttack})
	require.NoError(t, err)
	assert.Equal(t, combat.Victory, bb.Outcome)
	assert.False(t, p.HasAchievement(character.Untouchable))
}

func TestBossBattle_Defeat(t *testing.T) {
	p := character.New(ruleset.Easy, 5, 5)
	p.Health = 1
	bb := combat.NewBossBattle(boss(2, 3, 100), p, roller(fixedSrc{0}), nil)
	_, err := bb.Act(combat.Action{Type: combat.ActionAttack})
	require.NoError(t, err)
	assert.Equal(t, combat.Defeat, bb.Outcome)
	assert.Equal(t, -5, p.Health)
}

func TestBossBattle_ManaRegenCapped(t *testing.T) {
	p := character.New(ruleset.Easy, 5, 5)
	p.Health = 100
	bb := combat.NewBossBattle(boss(0, 1, 100), p, roller(fixedSrc{0}), nil)
	_, err := bb.Act(combat.Action{Type: combat.ActionAttack})
	require.NoError(t, err)
	assert.Equal(t, 5, p.Mana)
}

func TestBossBattle_UnknownAction(t *testing.T) {
	p := character.New(ruleset.Easy, 5, 5)
	bb := combat.NewBossBattle(boss(0, 1, 100), p, roller(fixedSrc{0}), nil)
	_, err := bb.Act(combat.Action{})
	assert.Error(t, err)
	assert.Equal(t, 0, bb.Round)
}

func TestBossBattle_LogsRounds(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	p := character.New(ruleset.Easy, 5, 5)
	bb := combat.NewBossBattle(boss(0, 1, 100), p, roller(fixedSrc{0}), zap.New(core))
	_, err := bb.Act(combat.Action{Type: combat.ActionAttack})
	require.NoError(t, err)
	entries := logs.FilterMessage("boss round").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "Dread Hydra", entries[0].ContextMap()["boss"])
}

package event

import (
	"go.uber.org/zap"

	"github.com/cory-johannsen/tilerpg/internal/game/character"
	"github.com/cory-johannsen/tilerpg/internal/game/combat"
	"github.com/cory-johannsen/tilerpg/internal/game/dice"
)

// DefaultChance is the percent chance used for both checks when unset.
const DefaultChance = 20

// Options selects which checks run and their percent chances.
type Options struct {
	RandomEvents    bool
	EnemyEncounters bool
	EventChance     int
	EncounterChance int
}

// Kind reports what, if anything, fired after a move.
type Kind uint8

const (
	KindNone Kind = iota
	KindEvent
	KindEncounter
)

func (k Kind) String() string {
	switch k {
	case KindEvent:
		return "event"
	case KindEncounter:
		return "encounter"
	default:
		return "none"
	}
}

// Outcome is the result of one dispatch.
type Outcome struct {
	Kind      Kind
	Event     *Event
	Encounter *combat.EncounterResult
	// Message is the text to show the player; empty when nothing fired.
	Message string
}

// Dispatcher rolls world events and enemy encounters.
type Dispatcher struct {
	roller   *dice.Roller
	events   []Event
	resolver *combat.Resolver
	scripts  *ScriptBridge
	logger   *zap.Logger
}

// NewDispatcher creates a Dispatcher over events.
//
// Precondition: roller and resolver non-nil; events non-empty.
func NewDispatcher(roller *dice.Roller, events []Event, resolver *combat.Resolver, logger *zap.Logger) *Dispatcher {
	if roller == nil || resolver == nil {
		panic("event.NewDispatcher: roller and resolver must not be nil")
	}
	if len(events) == 0 {
		panic("event.NewDispatcher: events must be non-empty")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Dispatcher{roller: roller, events: events, resolver: resolver, logger: logger}
}

// SetScripts attaches the bridge used by script effects. A nil bridge makes
// script effects show only their description.
func (d *Dispatcher) SetScripts(b *ScriptBridge) { d.scripts = b }

// Events returns the catalog the dispatcher draws from.
func (d *Dispatcher) Events() []Event { return d.events }

// AfterMove runs the checks for one successful move in priority order: a
// random event, else an enemy encounter. At most one fires.
//
// Precondition: p non-nil.
// Postcondition: Outcome.Kind == KindNone iff no randomness-gated check passed.
func (d *Dispatcher) AfterMove(p *character.Player, opts Options) Outcome {
	if opts.RandomEvents && d.roller.Chance("event", opts.EventChance) {
		ev := d.events[d.roller.Pick("event choice", len(d.events))]
		msg := d.Apply(ev, p)
		d.logger.Info("event fired",
			zap.String("event", ev.Name),
			zap.Int("player_health", p.Health),
		)
		return Outcome{Kind: KindEvent, Event: &ev, Message: msg}
	}
	if opts.EnemyEncounters && d.roller.Chance("encounter", opts.EncounterChance) {
		res := d.resolver.ResolveEncounter(p)
		return Outcome{Kind: KindEncounter, Encounter: &res, Message: res.Message}
	}
	return Outcome{}
}

// Apply applies ev's effect to p and returns the message to display.
func (d *Dispatcher) Apply(ev Event, p *character.Player) string {
	if ev.Effect == nil {
		return ev.Description
	}
	eff := ev.Effect
	if eff.Kind == EffectScript {
		if d.scripts == nil {
			return ev.Description
		}
		if extra := d.scripts.Run(eff.Hook, ev.Name, p); extra != "" {
			return ev.Description + " " + extra
		}
		return ev.Description
	}
	if eff.Kind == EffectNone {
		return ev.Description
	}

	res, err := d.roller.RollExpr(eff.Amount)
	if err != nil {
		d.logger.Warn("event amount", zap.String("event", ev.Name), zap.Error(err))
		return ev.Description
	}
	n := res.Total()
	switch eff.Kind {
	case EffectGold:
		p.AddGold(n)
	case EffectDamage:
		p.TakeDamage(n)
	case EffectHeal:
		p.Health = min(p.MaxHealth, p.Health+n)
	case EffectMana:
		p.RestoreMana(n)
	case EffectConfuse:
		p.Confuse(n)
	}
	return ev.Description
}

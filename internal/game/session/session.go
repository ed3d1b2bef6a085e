package session

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/cory-johannsen/tilerpg/internal/config"
	"github.com/cory-johannsen/tilerpg/internal/game/character"
	"github.com/cory-johannsen/tilerpg/internal/game/combat"
	"github.com/cory-johannsen/tilerpg/internal/game/condition"
	"github.com/cory-johannsen/tilerpg/internal/game/dice"
	"github.com/cory-johannsen/tilerpg/internal/game/event"
	"github.com/cory-johannsen/tilerpg/internal/game/npc"
	"github.com/cory-johannsen/tilerpg/internal/game/ruleset"
	"github.com/cory-johannsen/tilerpg/internal/game/subsystem"
	"github.com/cory-johannsen/tilerpg/internal/game/world"
)

// Deps are the collaborators a Session is built from. Nil catalogs fall back
// to the built-in tables.
type Deps struct {
	Game         config.GameConfig
	Difficulties *ruleset.Registry
	EnemyTypes   []npc.EnemyType
	Bosses       []npc.BossTemplate
	Events       []event.Event
	Conditions   *condition.Registry
	// Scripts, when non-nil, runs script-effect events.
	Scripts *event.ScriptBridge
	Roller  *dice.Roller
	Logger  *zap.Logger
}

// Session is one game: the player, the world and the state machine around
// them. It is not safe for concurrent use; callers serialise intents.
type Session struct {
	ID string

	cfg        config.GameConfig
	diffs      *ruleset.Registry
	bosses     []npc.BossTemplate
	conditions *condition.Registry
	dispatcher *event.Dispatcher
	roller     *dice.Roller
	logger     *zap.Logger

	state    State
	features Features
	selected int

	player     *character.Player
	grid       *world.Grid
	subsystems []subsystem.Subsystem
	battle     *combat.BossBattle
	narrative  string

	pending   string
	countdown int
}

// New creates a session on the feature-select screen.
//
// Precondition: d.Roller non-nil; d.Game valid per config.Validate.
// Postcondition: State() == FeatureSelect.
func New(d Deps) (*Session, error) {
	if d.Roller == nil {
		return nil, errors.New("session: roller must not be nil")
	}
	logger := d.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	if d.Difficulties == nil {
		d.Difficulties = ruleset.NewRegistry()
	}
	if len(d.EnemyTypes) == 0 {
		d.EnemyTypes = npc.DefaultEnemyTypes()
	}
	if len(d.Bosses) == 0 {
		d.Bosses = npc.DefaultBosses()
	}
	if len(d.Events) == 0 {
		d.Events = event.DefaultEvents()
	}
	if d.Conditions == nil {
		d.Conditions = condition.DefaultRegistry()
	}
	for _, name := range []string{d.Game.Difficulty, d.Game.HardDifficulty} {
		if _, err := d.Difficulties.Lookup(name); err != nil {
			return nil, fmt.Errorf("session: %w", err)
		}
	}

	id := uuid.New().String()
	logger = logger.With(zap.String("session_id", id))
	resolver := combat.NewResolver(d.Roller, d.EnemyTypes, logger)
	dispatcher := event.NewDispatcher(d.Roller, d.Events, resolver, logger)
	if d.Scripts != nil {
		dispatcher.SetScripts(d.Scripts)
	}

	return &Session{
		ID:         id,
		cfg:        d.Game,
		diffs:      d.Difficulties,
		bosses:     d.Bosses,
		conditions: d.Conditions,
		dispatcher: dispatcher,
		roller:     d.Roller,
		logger:     logger,
		state:      FeatureSelect,
		features:   FeaturesFromConfig(d.Game.Features),
	}, nil
}

// State returns the current state.
func (s *Session) State() State { return s.state }

// Done reports whether the session has quit.
func (s *Session) Done() bool { return s.state == Quit }

// Player returns the active player, or nil before the first game starts.
func (s *Session) Player() *character.Player { return s.player }

// Grid returns the active world grid, or nil before the first game starts.
func (s *Session) Grid() *world.Grid { return s.grid }

// Features returns the current flag set.
func (s *Session) Features() Features { return s.features }

// PendingMessage returns the message awaiting dismissal, or "".
func (s *Session) PendingMessage() string { return s.pending }

// Battle returns the active boss battle, or nil.
func (s *Session) Battle() *combat.BossBattle { return s.battle }

// Subsystems returns the subsystems composed for the current game.
func (s *Session) Subsystems() []subsystem.Subsystem { return s.subsystems }

// Handle applies one intent.
//
// In playing and boss_battle a pending message is dismissed by the next
// key-press intent, which then has no other effect.
//
// Postcondition: returns an error wrapping ErrIntentNotAllowed, and changes
// nothing, when the current state does not accept in.Kind.
func (s *Session) Handle(in Intent) error {
	if s.pending != "" && !in.Kind.external() && (s.state == Playing || s.state == BossBattle) {
		s.clearMessage()
		s.logger.Debug("message dismissed", zap.Stringer("intent", in))
		return nil
	}
	if !Allowed(s.state, in.Kind) {
		return fmt.Errorf("%w: %s in %s", ErrIntentNotAllowed, in, s.state)
	}

	switch in.Kind {
	case IntentUp:
		s.selected = (s.selected + int(featureCount) - 1) % int(featureCount)
	case IntentDown:
		s.selected = (s.selected + 1) % int(featureCount)
	case IntentToggle:
		i := in.Index
		if i < 0 {
			i = s.selected
		}
		if i >= int(featureCount) {
			return fmt.Errorf("feature index %d out of range [0,%d)", i, featureCount)
		}
		s.selected = i
		s.features[i] = !s.features[i]
	case IntentConfirm:
		if err := s.startGame(); err != nil {
			return err
		}
	case IntentMove:
		s.move(in.DX, in.DY)
	case IntentPause:
		s.transition(Paused)
	case IntentResume:
		s.transition(Playing)
	case IntentToMenu, IntentRestart:
		s.transition(FeatureSelect)
	case IntentQuit:
		s.transition(Quit)
	case IntentBuy:
		msg, err := s.player.Buy(in.Index, s.roller)
		if err != nil {
			return fmt.Errorf("buying item %d: %w", in.Index, err)
		}
		s.setMessage(msg)
	case IntentBoss:
		if in.Index < 0 || in.Index >= len(s.bosses) {
			return fmt.Errorf("boss index %d out of range [0,%d)", in.Index, len(s.bosses))
		}
		t := s.bosses[in.Index]
		return s.StartBoss(in.Index, t.Strength, t.Health)
	case IntentAttack:
		return s.act(combat.Action{Type: combat.ActionAttack})
	case IntentCast:
		return s.act(combat.Action{Type: combat.ActionSpell, Spell: in.Index})
	case IntentAbort:
		return s.act(combat.Action{Type: combat.ActionQuit})
	case IntentTick:
		for range max(1, in.Count) {
			s.Tick()
		}
	}
	return nil
}

// Tick advances one frame: the pending message counts down and subsystems
// update. Ticks outside playing have no effect.
func (s *Session) Tick() {
	if s.state != Playing {
		return
	}
	if s.pending != "" {
		s.countdown--
		if s.countdown <= 0 {
			s.clearMessage()
		}
	}
	s.updateSubsystems(subsystem.TriggerTick)
}

// StartBoss begins a battle against the boss at catalog index with the given
// base strength and health, scaled by the player's difficulty.
//
// Precondition: State() == Playing.
// Postcondition: State() == BossBattle on success.
func (s *Session) StartBoss(index, strength, health int) error {
	if s.state != Playing {
		return fmt.Errorf("%w: boss(%d) in %s", ErrIntentNotAllowed, index, s.state)
	}
	if index < 0 || index >= len(s.bosses) {
		return fmt.Errorf("boss index %d out of range [0,%d)", index, len(s.bosses))
	}
	if strength < 0 || health < 1 {
		return fmt.Errorf("boss stats must be strength >= 0 and health >= 1, got %d/%d", strength, health)
	}
	diff := s.player.Difficulty
	b := npc.NewBoss(s.bosses[index],
		npc.Scale(strength, diff.EnemyDamageScale),
		npc.Scale(health, diff.EnemyHealthScale),
		s.conditions)
	s.battle = combat.NewBossBattle(b, s.player, s.roller, s.logger)
	s.narrative = s.battle.Intro()
	s.clearMessage()
	s.transition(BossBattle)
	return nil
}

func (s *Session) startGame() error {
	name := s.cfg.Difficulty
	if s.features[DifficultyLevels] {
		name = s.cfg.HardDifficulty
	}
	diff, err := s.diffs.Lookup(name)
	if err != nil {
		return fmt.Errorf("starting game: %w", err)
	}
	grid, err := world.Generate(s.cfg.MapSize, s.roller)
	if err != nil {
		return fmt.Errorf("starting game: %w", err)
	}
	cx, cy := grid.Center()
	s.grid = grid
	s.player = character.New(diff, cx, cy)
	s.battle = nil
	s.narrative = ""
	s.clearMessage()
	s.subsystems = subsystem.Build(subsystem.Flags{
		Dungeon:   s.features[ProceduralDungeons],
		Quests:    s.features[DynamicQuests],
		Weather:   s.features[WeatherSystem],
		Particles: s.features[ParticleEffects],
	}, grid.Size(), s.player, s.roller, s.logger)

	s.logger.Info("game started",
		zap.String("difficulty", diff.Name),
		zap.Int("map_size", grid.Size()),
		zap.Int("subsystems", len(s.subsystems)),
	)
	s.transition(Playing)
	return nil
}

func (s *Session) move(dx, dy int) {
	if !world.ResolveMove(s.grid, s.player, dx, dy, s.roller) {
		return
	}
	s.player.Visit(s.player.X, s.player.Y, s.grid.WalkableCount())
	s.updateSubsystems(subsystem.TriggerMove)

	out := s.dispatcher.AfterMove(s.player, event.Options{
		RandomEvents:    s.features[RandomEvents],
		EnemyEncounters: s.features[EnemyEncounters],
		EventChance:     s.cfg.EventChance,
		EncounterChance: s.cfg.EncounterChance,
	})
	if out.Kind == event.KindEncounter {
		s.updateSubsystems(subsystem.TriggerEncounter)
	}
	if out.Message != "" {
		s.setMessage(out.Message)
	}
	if !s.player.Alive() {
		s.transition(GameOver)
	}
}

func (s *Session) act(a combat.Action) error {
	events, err := s.battle.Act(a)
	if err != nil {
		return fmt.Errorf("boss battle: %w", err)
	}
	s.narrative = combat.Narrative(events)

	switch s.battle.Outcome {
	case combat.Victory, combat.Aborted:
		s.battle = nil
		s.transition(Playing)
		s.setMessage(s.narrative)
	case combat.Defeat:
		s.battle = nil
		s.transition(GameOver)
	}
	return nil
}

func (s *Session) updateSubsystems(trigger subsystem.Trigger) {
	f := subsystem.Frame{Trigger: trigger, Player: s.player, Size: s.grid.Size()}
	for _, sub := range s.subsystems {
		if msg := sub.Update(f); msg != "" {
			s.setMessage(msg)
		}
	}
}

func (s *Session) setMessage(msg string) {
	s.pending = msg
	s.countdown = s.cfg.MessageTicks
}

func (s *Session) clearMessage() {
	s.pending = ""
	s.countdown = 0
}

func (s *Session) transition(to State) {
	if s.state == to {
		return
	}
	s.logger.Info("state transition",
		zap.Stringer("from", s.state),
		zap.Stringer("to", to),
	)
	s.state = to
}

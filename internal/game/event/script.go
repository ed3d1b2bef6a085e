package event

import (
	"fmt"
	"strings"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"

	"github.com/cory-johannsen/tilerpg/internal/game/character"
	"github.com/cory-johannsen/tilerpg/internal/scripting"
)

// ScriptBridge binds a scripting.Manager to the player an event is applied
// to. Hooks receive the event name and may read or adjust the player through
// engine.player.
type ScriptBridge struct {
	mgr    *scripting.Manager
	logger *zap.Logger
	player *character.Player
	notes  []string
}

// NewScriptBridge installs player callbacks on mgr. A nil logger discards
// hook failures.
//
// Precondition: mgr non-nil.
// Postcondition: mgr.GetPlayer, mgr.AdjustPlayer and mgr.Notify are owned by the bridge.
func NewScriptBridge(mgr *scripting.Manager, logger *zap.Logger) *ScriptBridge {
	if mgr == nil {
		panic("event.NewScriptBridge: mgr must not be nil")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	b := &ScriptBridge{mgr: mgr, logger: logger}
	mgr.GetPlayer = b.playerInfo
	mgr.AdjustPlayer = b.adjust
	mgr.Notify = func(msg string) { b.notes = append(b.notes, msg) }
	return b
}

// Run calls hook for the event named name with p bound as the player.
// The returned text is the hook's string result followed by any
// engine.notify messages, space separated.
func (b *ScriptBridge) Run(hook, name string, p *character.Player) string {
	b.player = p
	b.notes = nil
	defer func() { b.player = nil }()

	ret, err := b.mgr.CallHook(hook, lua.LString(name))
	if err != nil {
		b.logger.Warn("script hook failed", zap.String("hook", hook), zap.String("event", name), zap.Error(err))
	}
	var parts []string
	if s, ok := ret.(lua.LString); ok && s != "" {
		parts = append(parts, string(s))
	}
	parts = append(parts, b.notes...)
	return strings.Join(parts, " ")
}

func (b *ScriptBridge) playerInfo() *scripting.PlayerInfo {
	p := b.player
	if p == nil {
		return nil
	}
	return &scripting.PlayerInfo{
		X: p.X, Y: p.Y,
		Health: p.Health, MaxHealth: p.MaxHealth,
		Mana: p.Mana, MaxMana: p.MaxMana,
		Gold: p.Gold, Level: p.Level,
	}
}

// adjust applies a scripted stat change. Health and mana stay within their
// maximums; negative health is damage and may go below zero.
func (b *ScriptBridge) adjust(stat string, delta int) error {
	p := b.player
	if p == nil {
		return fmt.Errorf("no player bound")
	}
	switch stat {
	case "gold":
		p.AddGold(delta)
	case "health":
		if delta < 0 {
			p.TakeDamage(-delta)
		} else {
			p.Health = min(p.MaxHealth, p.Health+delta)
		}
	case "mana":
		p.Mana = max(0, min(p.MaxMana, p.Mana+delta))
	case "exp":
		if delta < 0 {
			return fmt.Errorf("exp delta must be >= 0, got %d", delta)
		}
		p.GainExp(delta)
	case "confused":
		p.Confuse(delta)
	default:
		return fmt.Errorf("unknown stat %q", stat)
	}
	return nil
}

// Package session implements the game session state machine: feature
// selection, exploration, pause, boss battles and game over.
package session

import (
	"errors"
	"fmt"
)

// ErrIntentNotAllowed is returned when an intent is not accepted in the
// session's current state. The session is left unchanged.
var ErrIntentNotAllowed = errors.New("intent not allowed")

// State is the session's lifecycle state.
type State uint8

const (
	FeatureSelect State = iota
	Playing
	Paused
	BossBattle
	GameOver
	// Quit is terminal; no intent is accepted afterwards.
	Quit
)

var stateNames = [...]string{
	FeatureSelect: "feature_select",
	Playing:       "playing",
	Paused:        "paused",
	BossBattle:    "boss_battle",
	GameOver:      "gameover",
	Quit:          "quit",
}

func (s State) String() string {
	if int(s) < len(stateNames) {
		return stateNames[s]
	}
	return fmt.Sprintf("state(%d)", s)
}

// MarshalText encodes the state by name.
func (s State) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// IntentKind names an input action.
type IntentKind uint8

const (
	IntentUp IntentKind = iota
	IntentDown
	IntentToggle
	IntentConfirm
	IntentMove
	IntentPause
	IntentResume
	IntentToMenu
	IntentBuy
	IntentCast
	IntentAttack
	IntentAbort
	IntentRestart
	IntentQuit
	// IntentBoss starts a boss battle from outside the movement loop.
	IntentBoss
	// IntentTick advances the frame clock Count times.
	IntentTick
)

var intentNames = [...]string{
	IntentUp:      "up",
	IntentDown:    "down",
	IntentToggle:  "toggle",
	IntentConfirm: "confirm",
	IntentMove:    "move",
	IntentPause:   "pause",
	IntentResume:  "resume",
	IntentToMenu:  "to_menu",
	IntentBuy:     "buy",
	IntentCast:    "cast",
	IntentAttack:  "attack",
	IntentAbort:   "abort",
	IntentRestart: "restart",
	IntentQuit:    "quit",
	IntentBoss:    "boss",
	IntentTick:    "tick",
}

func (k IntentKind) String() string {
	if int(k) < len(intentNames) {
		return intentNames[k]
	}
	return fmt.Sprintf("intent(%d)", k)
}

// external intents do not come from a key press and never dismiss a message.
func (k IntentKind) external() bool { return k == IntentBoss || k == IntentTick }

// transitions lists the intents each state accepts.
var transitions = map[State]map[IntentKind]bool{
	FeatureSelect: {IntentUp: true, IntentDown: true, IntentToggle: true, IntentConfirm: true, IntentQuit: true, IntentTick: true},
	Playing:       {IntentMove: true, IntentPause: true, IntentBuy: true, IntentBoss: true, IntentTick: true},
	Paused:        {IntentResume: true, IntentToMenu: true, IntentQuit: true, IntentTick: true},
	BossBattle:    {IntentAttack: true, IntentCast: true, IntentAbort: true, IntentTick: true},
	GameOver:      {IntentRestart: true, IntentQuit: true, IntentTick: true},
}

// Allowed reports whether state s accepts intents of kind k.
func Allowed(s State, k IntentKind) bool {
	return transitions[s][k]
}

// Intent is one input action. Only the fields its Kind uses are read.
type Intent struct {
	Kind IntentKind
	// DX and DY are the move vector for IntentMove.
	DX, DY int
	// Index selects a feature, shop item, spell or boss. A negative feature
	// index toggles the highlighted feature.
	Index int
	// Count is the number of ticks for IntentTick.
	Count int
}

// Simple returns an intent with no arguments.
func Simple(k IntentKind) Intent { return Intent{Kind: k} }

// Move returns a move intent.
func Move(dx, dy int) Intent { return Intent{Kind: IntentMove, DX: dx, DY: dy} }

// Toggle returns a feature toggle intent.
func Toggle(i int) Intent { return Intent{Kind: IntentToggle, Index: i} }

// Buy returns a shop purchase intent.
func Buy(i int) Intent { return Intent{Kind: IntentBuy, Index: i} }

// Cast returns a spell intent.
func Cast(i int) Intent { return Intent{Kind: IntentCast, Index: i} }

// Boss returns an intent that starts the boss at catalog index i.
func Boss(i int) Intent { return Intent{Kind: IntentBoss, Index: i} }

// Ticks returns an intent advancing n frames.
func Ticks(n int) Intent { return Intent{Kind: IntentTick, Count: n} }

func (in Intent) String() string {
	switch in.Kind {
	case IntentMove:
		return fmt.Sprintf("move(%d,%d)", in.DX, in.DY)
	case IntentToggle, IntentBuy, IntentCast, IntentBoss:
		return fmt.Sprintf("%s(%d)", in.Kind, in.Index)
	case IntentTick:
		return fmt.Sprintf("tick(%d)", in.Count)
	default:
		return in.Kind.String()
	}
}

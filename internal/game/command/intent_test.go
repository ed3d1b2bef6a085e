package command

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cory-johannsen/tilerpg/internal/game/session"
)

func TestParseIntent_Table(t *testing.T) {
	r := DefaultRegistry()
	cases := []struct {
		line string
		want session.Intent
	}{
		{"north", session.Move(0, -1)},
		{"s", session.Move(0, 1)},
		{"east", session.Move(1, 0)},
		{"a", session.Move(-1, 0)},
		{"up", session.Simple(session.IntentUp)},
		{"next", session.Simple(session.IntentDown)},
		{"toggle", session.Toggle(-1)},
		{"toggle 3", session.Toggle(3)},
		{"enter", session.Simple(session.IntentConfirm)},
		{"p", session.Simple(session.IntentPause)},
		{"resume", session.Simple(session.IntentResume)},
		{"menu", session.Simple(session.IntentToMenu)},
		{"buy 1", session.Buy(1)},
		{"cast 0", session.Cast(0)},
		{"attack", session.Simple(session.IntentAttack)},
		{"run", session.Simple(session.IntentAbort)},
		{"restart", session.Simple(session.IntentRestart)},
		{"q", session.Simple(session.IntentQuit)},
		{"boss 2", session.Boss(2)},
		{"tick", session.Ticks(1)},
		{"wait 30", session.Ticks(30)},
	}
	for _, tc := range cases {
		t.Run(tc.line, func(t *testing.T) {
			in, cmd, err := r.ParseIntent(tc.line)
			require.NoError(t, err)
			require.NotNil(t, cmd)
			assert.Equal(t, tc.want, in)
		})
	}
}

func TestParseIntent_Blank(t *testing.T) {
	in, cmd, err := DefaultRegistry().ParseIntent("   ")
	require.NoError(t, err)
	assert.Nil(t, cmd)
	assert.Equal(t, session.Intent{}, in)
}

func TestParseIntent_Help(t *testing.T) {
	_, cmd, err := DefaultRegistry().ParseIntent("?")
	require.NoError(t, err)
	require.NotNil(t, cmd)
	assert.Equal(t, HandlerHelp, cmd.Handler)
}

func TestParseIntent_Unknown(t *testing.T) {
	_, _, err := DefaultRegistry().ParseIntent("teleport home")
	assert.ErrorIs(t, err, ErrUnknownCommand)
}

func TestParseIntent_BadArguments(t *testing.T) {
	r := DefaultRegistry()
	for _, line := range []string{"buy", "buy sword", "cast", "boss x", "toggle y", "tick 0", "tick -2"} {
		_, _, err := r.ParseIntent(line)
		assert.ErrorIs(t, err, ErrBadArgument, line)
	}
}

func TestToIntent_HelpHasNoIntent(t *testing.T) {
	cmd, ok := DefaultRegistry().Resolve("help")
	require.True(t, ok)
	_, err := ToIntent(cmd, nil)
	assert.Error(t, err)
}

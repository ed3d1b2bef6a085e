package command

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/cory-johannsen/tilerpg/internal/game/session"
	"github.com/cory-johannsen/tilerpg/internal/game/world"
)

// ErrUnknownCommand is returned for lines naming no registered command.
var ErrUnknownCommand = errors.New("unknown command")

// ErrBadArgument is returned when a command's argument is missing or malformed.
var ErrBadArgument = errors.New("bad argument")

// ToIntent builds the session intent for cmd with args.
//
// Precondition: cmd non-nil and cmd.Handler != HandlerHelp.
// Postcondition: Returns an intent or an error wrapping ErrBadArgument.
func ToIntent(cmd *Command, args []string) (session.Intent, error) {
	switch cmd.Handler {
	case HandlerMove:
		dx, dy := world.Direction(cmd.Name).Vector()
		return session.Move(dx, dy), nil
	case HandlerUp:
		return session.Simple(session.IntentUp), nil
	case HandlerDown:
		return session.Simple(session.IntentDown), nil
	case HandlerToggle:
		i, err := optionalInt(cmd, args, -1)
		return session.Toggle(i), err
	case HandlerStart:
		return session.Simple(session.IntentConfirm), nil
	case HandlerPause:
		return session.Simple(session.IntentPause), nil
	case HandlerResume:
		return session.Simple(session.IntentResume), nil
	case HandlerMenu:
		return session.Simple(session.IntentToMenu), nil
	case HandlerRestart:
		return session.Simple(session.IntentRestart), nil
	case HandlerQuit:
		return session.Simple(session.IntentQuit), nil
	case HandlerAttack:
		return session.Simple(session.IntentAttack), nil
	case HandlerFlee:
		return session.Simple(session.IntentAbort), nil
	case HandlerBuy:
		i, err := requiredInt(cmd, args)
		return session.Buy(i), err
	case HandlerCast:
		i, err := requiredInt(cmd, args)
		return session.Cast(i), err
	case HandlerBoss:
		i, err := requiredInt(cmd, args)
		return session.Boss(i), err
	case HandlerTick:
		n, err := optionalInt(cmd, args, 1)
		if err == nil && n < 1 {
			err = fmt.Errorf("%w: %s: frames must be >= 1, got %d", ErrBadArgument, cmd.Name, n)
		}
		return session.Ticks(n), err
	}
	return session.Intent{}, fmt.Errorf("command %q has no intent (handler %q)", cmd.Name, cmd.Handler)
}

func requiredInt(cmd *Command, args []string) (int, error) {
	if len(args) == 0 {
		return 0, fmt.Errorf("%w: %s needs an index", ErrBadArgument, cmd.Name)
	}
	return atoi(cmd, args[0])
}

func optionalInt(cmd *Command, args []string, def int) (int, error) {
	if len(args) == 0 {
		return def, nil
	}
	return atoi(cmd, args[0])
}

func atoi(cmd *Command, s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %s: %q is not a number", ErrBadArgument, cmd.Name, s)
	}
	return n, nil
}

// ParseIntent parses line and resolves it to an intent.
//
// Postcondition: cmd is nil for blank lines. For help, cmd is set and the
// intent is zero. err wraps ErrUnknownCommand or ErrBadArgument on failure.
func (r *Registry) ParseIntent(line string) (in session.Intent, cmd *Command, err error) {
	res := Parse(line)
	if res.Command == "" {
		return session.Intent{}, nil, nil
	}
	cmd, found := r.Resolve(res.Command)
	if !found {
		return session.Intent{}, nil, fmt.Errorf("%w: %q", ErrUnknownCommand, res.Command)
	}
	if cmd.Handler == HandlerHelp {
		return session.Intent{}, cmd, nil
	}
	in, err = ToIntent(cmd, res.Args)
	return in, cmd, err
}

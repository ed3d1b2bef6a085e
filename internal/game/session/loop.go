package session

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
)

// InputSource yields intents. ok == false means the source is exhausted.
type InputSource interface {
	Next() (in Intent, ok bool, err error)
}

// Renderer consumes snapshots.
type Renderer interface {
	Render(Snapshot)
}

type input struct {
	intent Intent
	ok     bool
	err    error
}

// Run renders the initial snapshot, then applies intents from src and renders
// after each one. Rejected intents are reported in the next snapshot's Error.
//
// Postcondition: returns nil on quit or source exhaustion, ctx.Err() on
// cancellation, or the source's error.
func (s *Session) Run(ctx context.Context, src InputSource, r Renderer) error {
	r.Render(s.Snapshot())

	done := make(chan struct{})
	defer close(done)
	inputs := make(chan input)
	go func() {
		for {
			in, ok, err := src.Next()
			select {
			case inputs <- input{intent: in, ok: ok, err: err}:
			case <-done:
				return
			}
			if !ok || err != nil {
				return
			}
		}
	}()

	for {
		var next input
		select {
		case <-ctx.Done():
			return ctx.Err()
		case next = <-inputs:
		}
		if next.err != nil {
			return fmt.Errorf("reading input: %w", next.err)
		}
		if !next.ok {
			s.logger.Info("input exhausted")
			return nil
		}

		snapErr := ""
		if err := s.Handle(next.intent); err != nil {
			level := s.logger.Warn
			if errors.Is(err, ErrIntentNotAllowed) {
				level = s.logger.Debug
			}
			level("intent rejected", zap.Stringer("intent", next.intent), zap.Error(err))
			snapErr = err.Error()
		}
		snap := s.Snapshot()
		snap.Error = snapErr
		r.Render(snap)
		if s.Done() {
			return nil
		}
	}
}

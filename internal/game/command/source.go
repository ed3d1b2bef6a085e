package command

import (
	"bufio"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/cory-johannsen/tilerpg/internal/game/session"
)

// LineSource reads one command per line and yields session intents.
// Blank lines and comments are skipped. Unknown commands, malformed
// arguments, and help requests are answered on the feedback writer and
// reading continues.
type LineSource struct {
	scanner  *bufio.Scanner
	reg      *Registry
	feedback io.Writer
	logger   *zap.Logger
	line     int
}

// NewLineSource creates a LineSource.
//
// Precondition: r, reg, feedback and logger must be non-nil.
func NewLineSource(r io.Reader, reg *Registry, feedback io.Writer, logger *zap.Logger) *LineSource {
	if r == nil || reg == nil || feedback == nil || logger == nil {
		panic("command.NewLineSource: nil argument")
	}
	return &LineSource{
		scanner:  bufio.NewScanner(r),
		reg:      reg,
		feedback: feedback,
		logger:   logger,
	}
}

// Next returns the next intent.
//
// Postcondition: ok is false at end of input; err is the reader's error, if any.
func (s *LineSource) Next() (session.Intent, bool, error) {
	for s.scanner.Scan() {
		s.line++
		in, cmd, err := s.reg.ParseIntent(s.scanner.Text())
		if err != nil {
			s.logger.Debug("command rejected", zap.Int("line", s.line), zap.Error(err))
			fmt.Fprintf(s.feedback, "%v (type 'help' for commands)\n", err)
			continue
		}
		if cmd == nil {
			continue
		}
		if cmd.Handler == HandlerHelp {
			fmt.Fprint(s.feedback, s.reg.Help())
			continue
		}
		return in, true, nil
	}
	if err := s.scanner.Err(); err != nil {
		return session.Intent{}, false, fmt.Errorf("line %d: %w", s.line+1, err)
	}
	return session.Intent{}, false, nil
}

package render

import (
	"fmt"
	"io"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/cory-johannsen/tilerpg/internal/game/session"
)

// YAML writes each snapshot as one YAML document.
type YAML struct {
	enc    *yaml.Encoder
	logger *zap.Logger
	frames int
	err    error
}

// NewYAML creates a YAML renderer writing to w.
//
// Precondition: w and logger must be non-nil.
func NewYAML(w io.Writer, logger *zap.Logger) *YAML {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	return &YAML{enc: enc, logger: logger}
}

// Render encodes snap. After the first write error further snapshots are dropped.
func (r *YAML) Render(snap session.Snapshot) {
	if r.err != nil {
		return
	}
	if err := r.enc.Encode(snap); err != nil {
		r.err = fmt.Errorf("rendering frame %d: %w", r.frames, err)
		r.logger.Warn("render failed", zap.Error(r.err))
		return
	}
	r.frames++
}

// Frames returns how many snapshots were written.
func (r *YAML) Frames() int { return r.frames }

// Close flushes the encoder and reports the first render error.
func (r *YAML) Close() error {
	if err := r.enc.Close(); err != nil && r.err == nil {
		r.err = err
	}
	return r.err
}

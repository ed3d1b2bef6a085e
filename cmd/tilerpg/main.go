// Package main runs a tile RPG session on the terminal: commands are read
// line by line from stdin and every resulting snapshot is written to stdout,
// as YAML documents or as colored text screens.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/cory-johannsen/tilerpg/internal/config"
	"github.com/cory-johannsen/tilerpg/internal/game/command"
	"github.com/cory-johannsen/tilerpg/internal/game/condition"
	"github.com/cory-johannsen/tilerpg/internal/game/dice"
	"github.com/cory-johannsen/tilerpg/internal/game/event"
	"github.com/cory-johannsen/tilerpg/internal/game/npc"
	"github.com/cory-johannsen/tilerpg/internal/game/ruleset"
	"github.com/cory-johannsen/tilerpg/internal/game/session"
	"github.com/cory-johannsen/tilerpg/internal/observability"
	"github.com/cory-johannsen/tilerpg/internal/render"
	"github.com/cory-johannsen/tilerpg/internal/scripting"
	"github.com/cory-johannsen/tilerpg/internal/server"
)

// options are the command-line flags.
type options struct {
	configPath string
	difficulty string
	seed       int64
	scriptPath string
	format     string
	color      bool
}

func main() {
	var opts options
	flag.StringVar(&opts.configPath, "config", "", "path to configuration file; empty = defaults plus TILERPG_ env")
	flag.StringVar(&opts.difficulty, "difficulty", "", "difficulty profile used when the difficulty toggle is off")
	flag.Int64Var(&opts.seed, "seed", 0, "deterministic random seed; 0 = use config (crypto/rand when unset)")
	flag.StringVar(&opts.scriptPath, "script", "", "extra Lua file defining event hooks")
	flag.StringVar(&opts.format, "format", "yaml", "snapshot output: yaml or text")
	flag.BoolVar(&opts.color, "color", true, "use ANSI colors with -format text")
	flag.Parse()

	if err := run(context.Background(), opts, os.Stdin, os.Stdout, os.Stderr); err != nil {
		log.Fatal(err)
	}
}

// run wires and plays one session. Every resource opened here is released
// before it returns.
func run(ctx context.Context, opts options, stdin io.Reader, stdout, stderr io.Writer) error {
	start := time.Now()

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if opts.difficulty != "" {
		cfg.Game.Difficulty = opts.difficulty
	}
	if opts.seed != 0 {
		cfg.Game.Seed = opts.seed
	}

	logger, err := observability.NewLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("initializing logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	roller := dice.NewLoggedRoller(dice.NewSource(cfg.Game.Seed), observability.Named(logger, "dice"))

	deps, closeScripts, err := loadContent(cfg, opts.scriptPath, roller, logger)
	if err != nil {
		return fmt.Errorf("loading content: %w", err)
	}
	defer closeScripts()
	deps.Game = cfg.Game
	deps.Roller = roller
	deps.Logger = observability.Named(logger, "session")

	sess, err := session.New(deps)
	if err != nil {
		return fmt.Errorf("creating session: %w", err)
	}

	renderer, closeRenderer, err := newRenderer(opts.format, opts.color, stdout, observability.Named(logger, "render"))
	if err != nil {
		return err
	}
	src := command.NewLineSource(stdin, command.DefaultRegistry(), stderr, observability.Named(logger, "command"))

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	lifecycle := server.NewLifecycle(logger)
	lifecycle.Add("session", &server.FuncService{
		StartFn: func() error {
			err := sess.Run(ctx, src, renderer)
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		},
		StopFn: cancel,
	})

	logger.Info("tilerpg ready",
		zap.String("session_id", sess.ID),
		zap.Int("map_size", cfg.Game.MapSize),
		zap.Int64("seed", cfg.Game.Seed),
		zap.Duration("startup", time.Since(start)),
	)

	runErr := lifecycle.Run(ctx)
	if err := closeRenderer(); err != nil {
		logger.Error("writing snapshots", zap.Error(err))
	}
	if runErr != nil {
		return fmt.Errorf("session ended with error: %w", runErr)
	}
	return nil
}

// newRenderer selects the snapshot renderer for format.
//
// Postcondition: on success the returned close func is non-nil.
func newRenderer(format string, color bool, w io.Writer, logger *zap.Logger) (session.Renderer, func() error, error) {
	switch format {
	case "yaml":
		y := render.NewYAML(w, logger)
		return y, y.Close, nil
	case "text":
		return render.NewText(w, color), func() error { return nil }, nil
	}
	return nil, nil, fmt.Errorf("unknown output format %q (want yaml or text)", format)
}

// loadContent builds the session catalogs from the configured content
// directories, falling back to the built-in tables for unset ones.
//
// Postcondition: the returned close func is non-nil and safe to call once.
func loadContent(cfg config.Config, scriptPath string, roller *dice.Roller, logger *zap.Logger) (session.Deps, func(), error) {
	var deps session.Deps
	noop := func() {}
	c := cfg.Content

	diffs, err := ruleset.LoadRegistry(c.DifficultiesDir)
	if err != nil {
		return deps, noop, err
	}
	deps.Difficulties = diffs

	if c.EnemiesDir != "" {
		if deps.EnemyTypes, err = npc.LoadEnemyTypes(c.EnemiesDir); err != nil {
			return deps, noop, err
		}
		logger.Info("loaded enemy types", zap.Int("count", len(deps.EnemyTypes)))
	}
	if c.BossesDir != "" {
		if deps.Bosses, err = npc.LoadBosses(c.BossesDir); err != nil {
			return deps, noop, err
		}
		logger.Info("loaded bosses", zap.Int("count", len(deps.Bosses)))
	}
	if c.ConditionsDir != "" {
		if deps.Conditions, err = condition.LoadDirectory(c.ConditionsDir); err != nil {
			return deps, noop, err
		}
	}
	if c.EventsDir != "" {
		if deps.Events, err = event.LoadEvents(c.EventsDir); err != nil {
			return deps, noop, err
		}
		logger.Info("loaded events", zap.Int("count", len(deps.Events)))
	}

	if c.ScriptDir == "" && scriptPath == "" {
		return deps, noop, nil
	}
	scriptStart := time.Now()
	mgr := scripting.NewManager(roller, observability.Named(logger, "scripting"))
	mgr.SetInstructionLimit(c.ScriptInstructionLimit)
	if c.ScriptDir != "" {
		if err := mgr.LoadDir(c.ScriptDir); err != nil {
			mgr.Close()
			return deps, noop, err
		}
	}
	if scriptPath != "" {
		if err := mgr.LoadFile(scriptPath); err != nil {
			mgr.Close()
			return deps, noop, err
		}
	}
	deps.Scripts = event.NewScriptBridge(mgr, observability.Named(logger, "events"))
	logger.Info("scripting engine initialized", zap.Duration("elapsed", time.Since(scriptStart)))
	return deps, mgr.Close, nil
}

// Package config provides Viper-based configuration loading for the tilerpg runner.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// LoggingConfig holds structured logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: "debug", "info", "warn", "error".
	Level string `mapstructure:"level"`
	// Format is the log output format: "json" or "console".
	Format string `mapstructure:"format"`
}

// FeatureConfig holds the initial state of the feature-select toggles.
type FeatureConfig struct {
	RandomEvents       bool `mapstructure:"random_events"`
	DifficultyLevels   bool `mapstructure:"difficulty_levels"`
	EnemyEncounters    bool `mapstructure:"enemy_encounters"`
	ProceduralDungeons bool `mapstructure:"procedural_dungeons"`
	DynamicQuests      bool `mapstructure:"dynamic_quests"`
	WeatherSystem      bool `mapstructure:"weather_system"`
	ParticleEffects    bool `mapstructure:"particle_effects"`
}

// GameConfig holds simulation tuning.
type GameConfig struct {
	// MapSize is the edge length of the square world grid.
	MapSize int `mapstructure:"map_size"`
	// Difficulty is the profile used when the difficulty toggle is off.
	Difficulty string `mapstructure:"difficulty"`
	// HardDifficulty is the profile used when the difficulty toggle is on.
	HardDifficulty string `mapstructure:"hard_difficulty"`
	// Seed selects a deterministic random source. 0 = crypto/rand.
	Seed int64 `mapstructure:"seed"`
	// EventChance is the percent chance a random event fires on a move.
	EventChance int `mapstructure:"event_chance"`
	// EncounterChance is the percent chance of an enemy encounter on a move.
	EncounterChance int `mapstructure:"encounter_chance"`
	// MessageTicks is how many ticks a pending message stays visible.
	MessageTicks int `mapstructure:"message_ticks"`
	// Features are the toggles preselected on the feature-select screen.
	Features FeatureConfig `mapstructure:"features"`
}

// ContentConfig holds optional content directories. Empty = built-in tables.
type ContentConfig struct {
	DifficultiesDir string `mapstructure:"difficulties_dir"`
	EnemiesDir      string `mapstructure:"enemies_dir"`
	BossesDir       string `mapstructure:"bosses_dir"`
	EventsDir       string `mapstructure:"events_dir"`
	ConditionsDir   string `mapstructure:"conditions_dir"`
	// ScriptDir holds *.lua files defining scripted event hooks.
	ScriptDir string `mapstructure:"script_dir"`
	// ScriptInstructionLimit caps Lua opcodes per hook call. 0 = default.
	ScriptInstructionLimit int `mapstructure:"script_instruction_limit"`
}

// Config is the top-level application configuration.
type Config struct {
	Logging LoggingConfig `mapstructure:"logging"`
	Game    GameConfig    `mapstructure:"game"`
	Content ContentConfig `mapstructure:"content"`
}

// Validate checks all configuration invariants.
//
// Postcondition: Returns nil if configuration is valid, or an error describing all violations.
func (c Config) Validate() error {
	var errs []string

	if err := validateLogging(c.Logging); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateGame(c.Game); err != nil {
		errs = append(errs, err.Error())
	}
	if c.Content.ScriptInstructionLimit < 0 {
		errs = append(errs, fmt.Sprintf("content.script_instruction_limit must be >= 0, got %d", c.Content.ScriptInstructionLimit))
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

func validateLogging(l LoggingConfig) error {
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[l.Level] {
		return fmt.Errorf("logging.level must be one of [debug, info, warn, error], got %q", l.Level)
	}
	validFormats := map[string]bool{"json": true, "console": true}
	if !validFormats[l.Format] {
		return fmt.Errorf("logging.format must be one of [json, console], got %q", l.Format)
	}
	return nil
}

func validateGame(g GameConfig) error {
	var errs []string
	if g.MapSize < 5 || g.MapSize%2 == 0 {
		errs = append(errs, fmt.Sprintf("game.map_size must be an odd number >= 5, got %d", g.MapSize))
	}
	if g.Difficulty == "" {
		errs = append(errs, "game.difficulty must not be empty")
	}
	if g.HardDifficulty == "" {
		errs = append(errs, "game.hard_difficulty must not be empty")
	}
	if g.EventChance < 0 || g.EventChance > 100 {
		errs = append(errs, fmt.Sprintf("game.event_chance must be 0-100, got %d", g.EventChance))
	}
	if g.EncounterChance < 0 || g.EncounterChance > 100 {
		errs = append(errs, fmt.Sprintf("game.encounter_chance must be 0-100, got %d", g.EncounterChance))
	}
	if g.MessageTicks < 1 {
		errs = append(errs, fmt.Sprintf("game.message_ticks must be >= 1, got %d", g.MessageTicks))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}

// Default returns the configuration used when no file is supplied.
//
// Postcondition: Default().Validate() == nil.
func Default() Config {
	v := viper.New()
	setDefaults(v)
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		panic(fmt.Sprintf("config: unmarshalling defaults: %v", err))
	}
	return cfg
}

// Load reads configuration from the given file path, applies environment variable
// overrides, and validates the result. An empty path loads defaults plus
// environment overrides only.
//
// Postcondition: Returns a valid Config or a non-nil error.
func Load(path string) (Config, error) {
	v := viper.New()

	// Environment variable overrides with TILERPG_ prefix
	v.SetEnvPrefix("TILERPG")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("reading config file: %w", err)
		}
	}

	return LoadFromViper(v)
}

// LoadFromViper builds a Config from an already-configured Viper instance.
//
// Precondition: v must be non-nil and have configuration values set.
// Postcondition: Returns a valid Config or a non-nil error.
func LoadFromViper(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshalling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")

	v.SetDefault("game.map_size", 11)
	v.SetDefault("game.difficulty", "Easy")
	v.SetDefault("game.hard_difficulty", "Hard")
	v.SetDefault("game.seed", 0)
	v.SetDefault("game.event_chance", 20)
	v.SetDefault("game.encounter_chance", 20)
	v.SetDefault("game.message_ticks", 180)
	v.SetDefault("game.features.random_events", false)
	v.SetDefault("game.features.difficulty_levels", false)
	v.SetDefault("game.features.enemy_encounters", false)
	v.SetDefault("game.features.procedural_dungeons", false)
	v.SetDefault("game.features.dynamic_quests", false)
	v.SetDefault("game.features.weather_system", false)
	v.SetDefault("game.features.particle_effects", false)

	v.SetDefault("content.difficulties_dir", "")
	v.SetDefault("content.enemies_dir", "")
	v.SetDefault("content.bosses_dir", "")
	v.SetDefault("content.events_dir", "")
	v.SetDefault("content.conditions_dir", "")
	v.SetDefault("content.script_dir", "")
	v.SetDefault("content.script_instruction_limit", 0)
}

package session

import "github.com/cory-johannsen/tilerpg/internal/config"

// Feature indexes the feature-select list.
type Feature uint8

const (
	RandomEvents Feature = iota
	DifficultyLevels
	EnemyEncounters
	ProceduralDungeons
	DynamicQuests
	WeatherSystem
	ParticleEffects
	featureCount
)

var featureInfo = [featureCount]struct{ key, title string }{
	RandomEvents:       {"random_events", "Random Events"},
	DifficultyLevels:   {"difficulty_levels", "Difficulty Levels"},
	EnemyEncounters:    {"enemy_encounters", "Enemy Encounters"},
	ProceduralDungeons: {"procedural_dungeons", "Procedural Dungeons"},
	DynamicQuests:      {"dynamic_quests", "Dynamic Quests"},
	WeatherSystem:      {"weather_system", "Weather System"},
	ParticleEffects:    {"particle_effects", "Particle Effects"},
}

// Key returns the flag's config key.
func (f Feature) Key() string { return featureInfo[f].key }

// Title returns the flag's display name.
func (f Feature) Title() string { return featureInfo[f].title }

// Features is the set of feature flags, indexed by Feature.
type Features [featureCount]bool

// FeaturesFromConfig maps configured defaults onto a flag set.
func FeaturesFromConfig(c config.FeatureConfig) Features {
	var f Features
	f[RandomEvents] = c.RandomEvents
	f[DifficultyLevels] = c.DifficultyLevels
	f[EnemyEncounters] = c.EnemyEncounters
	f[ProceduralDungeons] = c.ProceduralDungeons
	f[DynamicQuests] = c.DynamicQuests
	f[WeatherSystem] = c.WeatherSystem
	f[ParticleEffects] = c.ParticleEffects
	return f
}

// Enabled reports whether f is on.
func (fs Features) Enabled(f Feature) bool { return fs[f] }

// FeatureView is one row of the feature-select list.
type FeatureView struct {
	Key     string `yaml:"key"`
	Title   string `yaml:"title"`
	Enabled bool   `yaml:"enabled"`
}

func (fs Features) views() []FeatureView {
	out := make([]FeatureView, featureCount)
	for i := range out {
		f := Feature(i)
		out[i] = FeatureView{Key: f.Key(), Title: f.Title(), Enabled: fs[f]}
	}
	return out
}

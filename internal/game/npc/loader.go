package npc

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// LoadEnemyTypeFromBytes parses a single enemy type from raw YAML bytes.
//
// Postcondition: Returns a validated EnemyType, or an error.
func LoadEnemyTypeFromBytes(data []byte) (EnemyType, error) {
	var t EnemyType
	if err := decodeStrict(data, &t); err != nil {
		return EnemyType{}, fmt.Errorf("parsing enemy type YAML: %w", err)
	}
	if err := t.Validate(); err != nil {
		return EnemyType{}, err
	}
	return t, nil
}

// LoadBossFromBytes parses a single boss template from raw YAML bytes.
//
// Postcondition: Returns a validated BossTemplate, or an error.
func LoadBossFromBytes(data []byte) (BossTemplate, error) {
	var t BossTemplate
	if err := decodeStrict(data, &t); err != nil {
		return BossTemplate{}, fmt.Errorf("parsing boss YAML: %w", err)
	}
	if err := t.Validate(); err != nil {
		return BossTemplate{}, err
	}
	return t, nil
}

// LoadEnemyTypes reads all *.yaml files in dir, in name order, as enemy types.
//
// Precondition: dir must be a readable directory.
// Postcondition: Returns all types or an error on the first parse or validate failure.
func LoadEnemyTypes(dir string) ([]EnemyType, error) {
	return loadAll(dir, "enemy", LoadEnemyTypeFromBytes)
}

// LoadBosses reads all *.yaml files in dir, in name order, as boss templates.
//
// Precondition: dir must be a readable directory.
// Postcondition: Returns all templates or an error on the first parse or validate failure.
func LoadBosses(dir string) ([]BossTemplate, error) {
	return loadAll(dir, "boss", LoadBossFromBytes)
}

func loadAll[T any](dir, kind string, parse func([]byte) (T, error)) ([]T, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading %s dir %q: %w", kind, dir, err)
	}
	var out []T
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".yaml") {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading %q: %w", path, err)
		}
		v, err := parse(data)
		if err != nil {
			return nil, fmt.Errorf("loading %q: %w", path, err)
		}
		out = append(out, v)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("no %s definitions in %q", kind, dir)
	}
	return out, nil
}

func decodeStrict(data []byte, v any) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	return dec.Decode(v)
}

// internal/defs/loader.go
package defs

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
)

// LoadTowerDefinitions reads a JSON array of tower definitions and overrides
// the matching TowerLibrary entries. Kinds absent from the file keep their
// built-in stats.
func LoadTowerDefinitions(path string) error {
	file, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read tower definitions file: %w", err)
	}

	var towerDefs []TowerDefinition
	if err := json.Unmarshal(file, &towerDefs); err != nil {
		return fmt.Errorf("failed to unmarshal tower definitions: %w", err)
	}

	lib := make(map[TowerKind]TowerDefinition, len(TowerLibrary))
	for k, v := range TowerLibrary {
		lib[k] = v
	}
	for _, def := range towerDefs {
		kind, err := ParseTowerKind(def.ID)
		if err != nil {
			return fmt.Errorf("tower definitions: %w", err)
		}
		lib[kind] = def
	}
	if err := ValidateTowers(lib); err != nil {
		return fmt.Errorf("tower definitions: %w", err)
	}

	TowerLibrary = lib
	log.Printf("Loaded %d tower definitions from %s", len(towerDefs), path)
	return nil
}

// LoadEnemyDefinitions reads a JSON array of enemy definitions and overrides
// the matching EnemyLibrary entries.
func LoadEnemyDefinitions(path string) error {
	file, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read enemy definitions file: %w", err)
	}

	var enemyDefs []EnemyDefinition
	if err := json.Unmarshal(file, &enemyDefs); err != nil {
		return fmt.Errorf("failed to unmarshal enemy definitions: %w", err)
	}

	lib := make(map[EnemyKind]EnemyDefinition, len(EnemyLibrary))
	for k, v := range EnemyLibrary {
		lib[k] = v
	}
	for _, def := range enemyDefs {
		kind, err := ParseEnemyKind(def.ID)
		if err != nil {
			return fmt.Errorf("enemy definitions: %w", err)
		}
		lib[kind] = def
	}
	if err := ValidateEnemies(lib); err != nil {
		return fmt.Errorf("enemy definitions: %w", err)
	}

	EnemyLibrary = lib
	log.Printf("Loaded %d enemy definitions from %s", len(enemyDefs), path)
	return nil
}

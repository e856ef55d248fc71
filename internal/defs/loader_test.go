package defs

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadTowerDefinitionsOverrides(t *testing.T) {
	saved := TowerLibrary
	defer func() { TowerLibrary = saved }()

	path := writeFile(t, "towers.json", `[
		{"id": "turret", "name": "Heavy Turret", "cost": 75, "fire_rate_ms": 500,
		 "shot_count": 1, "damage": 40, "element": "physical", "range": 9}
	]`)
	if err := LoadTowerDefinitions(path); err != nil {
		t.Fatalf("load failed: %v", err)
	}
	turret := TowerLibrary[TowerTurret]
	if turret.Cost != 75 || turret.Damage != 40 || turret.Range != 9 {
		t.Errorf("override not applied: %+v", turret)
	}
	if TowerLibrary[TowerCryo].Cost != saved[TowerCryo].Cost {
		t.Error("kinds absent from the file should keep built-in stats")
	}
}

func TestLoadTowerDefinitionsRejectsInvalid(t *testing.T) {
	saved := TowerLibrary
	defer func() { TowerLibrary = saved }()

	cases := map[string]string{
		"unknown id": `[{"id": "laser", "cost": 10, "shot_count": 1, "element": "fire"}]`,
		"zero cost":  `[{"id": "pyro", "cost": 0, "shot_count": 1, "element": "fire"}]`,
		"bad json":   `{`,
	}
	for name, body := range cases {
		path := writeFile(t, "towers.json", body)
		if err := LoadTowerDefinitions(path); err == nil {
			t.Errorf("%s: expected error", name)
		}
	}
	if TowerLibrary[TowerPyro].Cost != saved[TowerPyro].Cost {
		t.Error("rejected file must not change the library")
	}
}

func TestLoadEnemyDefinitions(t *testing.T) {
	saved := EnemyLibrary
	defer func() { EnemyLibrary = saved }()

	path := writeFile(t, "enemies.json", `[{"id": "fire_imp", "health": 60, "speed": 4, "weakness": "ice"}]`)
	if err := LoadEnemyDefinitions(path); err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if EnemyLibrary[EnemyFireImp].Health != 60 {
		t.Errorf("expected imp health 60, got %v", EnemyLibrary[EnemyFireImp].Health)
	}

	bad := writeFile(t, "enemies.json", `[{"id": "normal", "health": 10, "weakness": "physical"}]`)
	if err := LoadEnemyDefinitions(bad); err == nil {
		t.Error("physical is not a valid weakness tag")
	}
	noSpeed := writeFile(t, "enemies.json", `[{"id": "normal", "health": 10, "weakness": "none"}]`)
	if err := LoadEnemyDefinitions(noSpeed); err == nil {
		t.Error("a unit without speed never reaches the goal and must be rejected")
	}
	if EnemyLibrary[EnemyNormal].Speed <= 0 {
		t.Errorf("rejected override must leave the library intact, got speed %v", EnemyLibrary[EnemyNormal].Speed)
	}
	if err := LoadEnemyDefinitions(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestValidateEnemiesRejectsStationaryUnits(t *testing.T) {
	lib := make(map[EnemyKind]EnemyDefinition, len(EnemyLibrary))
	for k, def := range EnemyLibrary {
		def.Speed = 0
		lib[k] = def
	}
	if err := ValidateEnemies(lib); err == nil {
		t.Error("expected zero speed to be rejected")
	}
}

func TestBuiltInLibrariesValidate(t *testing.T) {
	if err := ValidateTowers(TowerLibrary); err != nil {
		t.Error(err)
	}
	if err := ValidateEnemies(EnemyLibrary); err != nil {
		t.Error(err)
	}
}

func TestKindRoundTrip(t *testing.T) {
	for _, k := range TowerKinds {
		got, err := ParseTowerKind(k.String())
		if err != nil || got != k {
			t.Errorf("tower kind %v did not round-trip", k)
		}
	}
	for _, k := range EnemyKinds {
		got, err := ParseEnemyKind(k.String())
		if err != nil || got != k {
			t.Errorf("enemy kind %v did not round-trip", k)
		}
	}
}

// internal/defs/waves.go
package defs

import (
	"fmt"
	"go-tower-siege/internal/config"
	"math"
	"time"
)

// WaveEntry is one (unit type, count) pair of a wave.
type WaveEntry struct {
	Kind  EnemyKind
	Count int
}

// WaveDefinition describes the units of one wave and how they are paced.
type WaveDefinition struct {
	Units            []WaveEntry
	SpawnDelay       time.Duration // minimum time between two spawns
	HealthMultiplier float64       // applied to the base health of every unit
}

// TotalCount returns the number of units the wave spawns.
func (w WaveDefinition) TotalCount() int {
	total := 0
	for _, e := range w.Units {
		total += e.Count
	}
	return total
}

// CountOf returns how many units of kind k the wave spawns.
func (w WaveDefinition) CountOf(k EnemyKind) int {
	n := 0
	for _, e := range w.Units {
		if e.Kind == k {
			n += e.Count
		}
	}
	return n
}

// WavePatterns is the predefined campaign, indexed from zero.
var WavePatterns = []WaveDefinition{
	{
		Units:            []WaveEntry{{EnemyNormal, 5}},
		SpawnDelay:       1200 * time.Millisecond,
		HealthMultiplier: 1.0,
	},
	{
		Units:            []WaveEntry{{EnemyNormal, 8}, {EnemyIceGolem, 3}},
		SpawnDelay:       1000 * time.Millisecond,
		HealthMultiplier: 1.25,
	},
	{
		Units:            []WaveEntry{{EnemyNormal, 10}, {EnemyIceGolem, 5}, {EnemyFireImp, 1}},
		SpawnDelay:       900 * time.Millisecond,
		HealthMultiplier: 1.5,
	},
	{
		Units:            []WaveEntry{{EnemyNormal, 5}, {EnemyIceGolem, 10}, {EnemyFireImp, 2}},
		SpawnDelay:       800 * time.Millisecond,
		HealthMultiplier: 2.0,
	},
	{
		Units:            []WaveEntry{{EnemyNormal, 15}, {EnemyIceGolem, 15}, {EnemyFireImp, 5}},
		SpawnDelay:       700 * time.Millisecond,
		HealthMultiplier: 3.0,
	},
}

// EndlessLevel converts a zero-based wave index into the endless level. The
// first wave after the campaign is level 1.
func EndlessLevel(waveIndex, predefined int) int {
	return waveIndex - predefined + 1
}

// EndlessHealthMultiplier grows linearly with the level without bound.
func EndlessHealthMultiplier(level int) float64 {
	return config.EndlessBaseHealthMultiplier + config.EndlessHealthPerLevel*float64(level)
}

// EndlessWave synthesizes the wave for the given endless level.
func EndlessWave(level int) WaveDefinition {
	if level < 0 {
		level = 0
	}
	total := config.EndlessBaseCount + config.EndlessCountPerLevel*level
	if total > config.EndlessMaxCount {
		total = config.EndlessMaxCount
	}

	delay := config.EndlessBaseSpawnDelay - time.Duration(level)*config.EndlessSpawnDelayStep
	if delay < config.EndlessMinSpawnDelay {
		delay = config.EndlessMinSpawnDelay
	}

	lvl := float64(level)
	golemRatio := math.Min(config.EndlessSpecialRatioCap, config.EndlessGolemRatioBase+config.EndlessRatioPerLevel*lvl)
	impRatio := math.Min(config.EndlessSpecialRatioCap, config.EndlessImpRatioBase+config.EndlessRatioPerLevel*lvl)
	golems := int(float64(total) * golemRatio)
	imps := int(float64(total) * impRatio)

	return WaveDefinition{
		Units: []WaveEntry{
			{EnemyNormal, total - golems - imps},
			{EnemyIceGolem, golems},
			{EnemyFireImp, imps},
		},
		SpawnDelay:       delay,
		HealthMultiplier: EndlessHealthMultiplier(level),
	}
}

// WaveFor returns the definition of the wave at a zero-based index. In
// standard mode there is nothing past the campaign.
func WaveFor(waves []WaveDefinition, index int, mode Mode) (WaveDefinition, bool) {
	if index < 0 {
		return WaveDefinition{}, false
	}
	if index < len(waves) {
		return waves[index], true
	}
	if mode != ModeEndless {
		return WaveDefinition{}, false
	}
	return EndlessWave(EndlessLevel(index, len(waves))), true
}

// ValidateWaves rejects waves the director cannot run.
func ValidateWaves(waves []WaveDefinition) error {
	for i, w := range waves {
		if len(w.Units) == 0 {
			return fmt.Errorf("wave %d: no units", i)
		}
		for _, e := range w.Units {
			if _, ok := enemyKindIDs[e.Kind]; !ok {
				return fmt.Errorf("wave %d: unknown enemy kind %d", i, int(e.Kind))
			}
			if e.Count < 0 {
				return fmt.Errorf("wave %d: negative count for %s", i, e.Kind)
			}
		}
		if w.TotalCount() == 0 {
			return fmt.Errorf("wave %d: spawns no units", i)
		}
		if w.SpawnDelay <= 0 {
			return fmt.Errorf("wave %d: spawn delay must be positive", i)
		}
		if w.HealthMultiplier <= 0 {
			return fmt.Errorf("wave %d: health multiplier must be positive", i)
		}
	}
	return nil
}

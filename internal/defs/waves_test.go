package defs

import (
	"testing"
	"time"
)

func TestEndlessHealthMultiplier(t *testing.T) {
	if got := EndlessHealthMultiplier(0); got != 5.0 {
		t.Errorf("expected 5.0 at level 0, got %v", got)
	}
	prev := EndlessHealthMultiplier(0)
	for level := 1; level <= 200; level++ {
		got := EndlessHealthMultiplier(level)
		if got <= prev {
			t.Fatalf("multiplier did not increase at level %d: %v <= %v", level, got, prev)
		}
		prev = got
	}
}

func TestEndlessWaveScaling(t *testing.T) {
	tests := []struct {
		level     int
		wantCount int
		wantDelay time.Duration
	}{
		{0, 20, 200 * time.Millisecond},
		{1, 25, 195 * time.Millisecond},
		{4, 40, 180 * time.Millisecond},
		{20, 120, 100 * time.Millisecond},
		{40, 150, 100 * time.Millisecond},
	}
	for _, tt := range tests {
		w := EndlessWave(tt.level)
		if got := w.TotalCount(); got != tt.wantCount {
			t.Errorf("level %d: expected %d units, got %d", tt.level, tt.wantCount, got)
		}
		if w.SpawnDelay != tt.wantDelay {
			t.Errorf("level %d: expected delay %v, got %v", tt.level, tt.wantDelay, w.SpawnDelay)
		}
	}
}

func TestEndlessCompositionCapped(t *testing.T) {
	for _, level := range []int{1, 10, 50, 500} {
		w := EndlessWave(level)
		total := float64(w.TotalCount())
		for _, k := range []EnemyKind{EnemyIceGolem, EnemyFireImp} {
			if ratio := float64(w.CountOf(k)) / total; ratio > 0.40+1e-9 {
				t.Errorf("level %d: %s ratio %v exceeds cap", level, k, ratio)
			}
		}
		if w.CountOf(EnemyNormal) <= 0 {
			t.Errorf("level %d: expected base units in the mix", level)
		}
	}
}

func TestWaveFor(t *testing.T) {
	waves := WavePatterns
	if _, ok := WaveFor(waves, len(waves), ModeStandard); ok {
		t.Error("standard mode should have no wave past the campaign")
	}
	w, ok := WaveFor(waves, len(waves), ModeEndless)
	if !ok {
		t.Fatal("endless mode should synthesize waves past the campaign")
	}
	if w.HealthMultiplier != EndlessHealthMultiplier(1) {
		t.Errorf("first endless wave should be level 1, got multiplier %v", w.HealthMultiplier)
	}
	w, ok = WaveFor(waves, 2, ModeEndless)
	if !ok || w.TotalCount() != waves[2].TotalCount() {
		t.Error("predefined waves should be returned as-is in endless mode")
	}
	if _, ok := WaveFor(waves, -1, ModeEndless); ok {
		t.Error("negative index should not resolve")
	}
}

func TestValidateWaves(t *testing.T) {
	if err := ValidateWaves(WavePatterns); err != nil {
		t.Fatalf("built-in waves should validate: %v", err)
	}
	bad := []WaveDefinition{
		{SpawnDelay: time.Second, HealthMultiplier: 1},
		{Units: []WaveEntry{{EnemyNormal, 0}}, SpawnDelay: time.Second, HealthMultiplier: 1},
		{Units: []WaveEntry{{EnemyNormal, 1}}, HealthMultiplier: 1},
		{Units: []WaveEntry{{EnemyNormal, 1}}, SpawnDelay: time.Second},
		{Units: []WaveEntry{{EnemyKind(42), 1}}, SpawnDelay: time.Second, HealthMultiplier: 1},
	}
	for i, w := range bad {
		if err := ValidateWaves([]WaveDefinition{w}); err == nil {
			t.Errorf("case %d: expected validation error", i)
		}
	}
}

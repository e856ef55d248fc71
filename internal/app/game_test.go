package app

import (
	"errors"
	"go-tower-siege/internal/component"
	"go-tower-siege/internal/config"
	"go-tower-siege/internal/defs"
	"go-tower-siege/internal/event"
	"go-tower-siege/internal/interfaces"
	"go-tower-siege/internal/system"
	"go-tower-siege/internal/types"
	"go-tower-siege/internal/utils"
	"go-tower-siege/pkg/gridmap"
	"testing"
	"time"
)

type memStore struct {
	records map[defs.Mode]interfaces.Progress
	saves   int
	err     error
}

func newMemStore() *memStore {
	return &memStore{records: make(map[defs.Mode]interfaces.Progress)}
}

func (s *memStore) SaveProgress(mode defs.Mode, p interfaces.Progress) error {
	if s.err != nil {
		return s.err
	}
	s.saves++
	s.records[mode] = p
	return nil
}

func (s *memStore) LoadProgress(mode defs.Mode) (interfaces.Progress, bool, error) {
	p, ok := s.records[mode]
	return p, ok, nil
}

type countingRenderer struct {
	next    int
	live    map[int]bool
	removed int
}

func (r *countingRenderer) GetVisualHandle(string) interfaces.VisualHandle {
	r.next++
	r.live[r.next] = true
	return r.next
}

func (r *countingRenderer) PlaceVisual(interfaces.VisualHandle, utils.Vec3, float64) {}

func (r *countingRenderer) RemoveVisual(h interfaces.VisualHandle) {
	delete(r.live, h.(int))
	r.removed++
}

var buildable = gridmap.Cell{X: 0, Z: 0}

func singleWave(kind defs.EnemyKind, count int) []defs.WaveDefinition {
	return []defs.WaveDefinition{{
		Units:            []defs.WaveEntry{{Kind: kind, Count: count}},
		SpawnDelay:       100 * time.Millisecond,
		HealthMultiplier: 1,
	}}
}

func newTestGame(t *testing.T, opts Options) *Game {
	t.Helper()
	if opts.Seed == 0 {
		opts.Seed = 42
	}
	g, err := NewGame(opts)
	if err != nil {
		t.Fatalf("NewGame: %v", err)
	}
	return g
}

func tickUntil(g *Game, maxTicks int, done func() bool) bool {
	for i := 0; i < maxTicks; i++ {
		if done() {
			return true
		}
		g.Tick(0.05)
	}
	return done()
}

func TestBuildAndSell(t *testing.T) {
	r := &countingRenderer{live: map[int]bool{}}
	g := newTestGame(t, Options{Renderer: r})

	if st := g.RequestBuild(buildable, defs.TowerTurret); st != interfaces.StatusOK {
		t.Fatalf("expected ok, got %s", st)
	}
	snap := g.Snapshot()
	if snap.Currency != 150 {
		t.Errorf("expected currency 150, got %d", snap.Currency)
	}
	if snap.TowerBuildCounts[defs.TowerTurret] != 1 {
		t.Errorf("expected 1 turret built, got %d", snap.TowerBuildCounts[defs.TowerTurret])
	}
	if _, ok := g.TowerAt(buildable); !ok {
		t.Fatal("tower should stand on the cell")
	}
	if len(r.live) != 1 {
		t.Errorf("expected one visual, got %d", len(r.live))
	}

	if st := g.RequestSell(buildable); st != interfaces.StatusOK {
		t.Fatalf("expected ok, got %s", st)
	}
	snap = g.Snapshot()
	if snap.Currency != 175 {
		t.Errorf("expected currency 175, got %d", snap.Currency)
	}
	if _, ok := g.TowerAt(buildable); ok {
		t.Error("tower should be gone")
	}
	if len(r.live) != 0 {
		t.Errorf("sold tower's visual should be removed, %d left", len(r.live))
	}
	if snap.TowerBuildCounts[defs.TowerTurret] != 1 {
		t.Error("selling must not change build counts")
	}
}

func TestRejectedCommandsDoNotMutate(t *testing.T) {
	g := newTestGame(t, Options{})
	if st := g.RequestBuild(buildable, defs.TowerPyro); st != interfaces.StatusOK {
		t.Fatalf("expected ok, got %s", st)
	}
	before := g.Snapshot()
	entities := len(g.ECS().Towers)

	cases := []struct {
		name string
		run  func() interfaces.Status
		want interfaces.Status
	}{
		{"occupied", func() interfaces.Status { return g.RequestBuild(buildable, defs.TowerTurret) }, interfaces.StatusInvalidPlacement},
		{"path", func() interfaces.Status { return g.RequestBuild(gridmap.Cell{X: 0, Z: 1}, defs.TowerTurret) }, interfaces.StatusInvalidPlacement},
		{"goal", func() interfaces.Status { return g.RequestBuild(gridmap.Cell{X: 19, Z: 10}, defs.TowerTurret) }, interfaces.StatusInvalidPlacement},
		{"out of bounds", func() interfaces.Status { return g.RequestBuild(gridmap.Cell{X: -1, Z: 0}, defs.TowerTurret) }, interfaces.StatusInvalidPlacement},
		{"unaffordable", func() interfaces.Status { return g.RequestBuild(gridmap.Cell{X: 1, Z: 0}, defs.TowerCryo) }, interfaces.StatusInsufficientFunds},
		{"sell empty", func() interfaces.Status { return g.RequestSell(gridmap.Cell{X: 1, Z: 0}) }, interfaces.StatusNoActionTaken},
		{"sell path", func() interfaces.Status { return g.RequestSell(gridmap.Cell{X: 0, Z: 1}) }, interfaces.StatusNoActionTaken},
	}
	for _, tc := range cases {
		if got := tc.run(); got != tc.want {
			t.Errorf("%s: expected %s, got %s", tc.name, tc.want, got)
		}
	}

	after := g.Snapshot()
	if after.Currency != before.Currency || after.TowerBuildCounts[defs.TowerPyro] != 1 {
		t.Errorf("rejected commands changed state: before %+v after %+v", before, after)
	}
	if len(g.ECS().Towers) != entities {
		t.Errorf("expected %d towers, got %d", entities, len(g.ECS().Towers))
	}
}

func TestKillPaysOutAndCompletesWave(t *testing.T) {
	waves := append(singleWave(defs.EnemyIceGolem, 1), singleWave(defs.EnemyNormal, 1)...)
	g := newTestGame(t, Options{Waves: waves})

	if st := g.RequestStartNextWave(); st != interfaces.StatusOK {
		t.Fatalf("expected ok, got %s", st)
	}
	if st := g.RequestStartNextWave(); st != interfaces.StatusNoActionTaken {
		t.Errorf("second start while active: expected no action, got %s", st)
	}
	g.Tick(0.016)

	ids := g.ECS().EnemyIDs()
	if len(ids) != 1 {
		t.Fatalf("expected one unit on the field, got %d", len(ids))
	}
	id := ids[0]
	g.ECS().Healths[id].Value = 100

	hit := func(el defs.Element) bool { return system.ApplyDamage(g.ECS(), g.Events(), id, 30, el) }
	hit(defs.ElementPhysical)
	if hp := g.ECS().Healths[id].Value; hp != 70 {
		t.Errorf("expected 70, got %v", hp)
	}
	hit(defs.ElementFire)
	if hp := g.ECS().Healths[id].Value; hp != 10 {
		t.Errorf("expected 10, got %v", hp)
	}
	if !hit(defs.ElementIce) {
		t.Fatal("ice hit should kill")
	}

	var killed []types.EntityID
	g.Events().Subscribe(event.EnemyKilled, event.ListenerFunc(func(e event.Event) {
		killed = append(killed, e.Data.(types.EntityID))
	}))
	g.Tick(0.016)

	snap := g.Snapshot()
	if len(killed) != 1 || killed[0] != id {
		t.Errorf("expected one kill event for %d, got %v", id, killed)
	}
	if snap.Score != config.KillScore {
		t.Errorf("expected score %d, got %d", config.KillScore, snap.Score)
	}
	want := config.StartingCurrency + config.KillReward + config.WaveCompletionBonus
	if snap.Currency != want {
		t.Errorf("expected currency %d, got %d", want, snap.Currency)
	}
	if snap.IsWaveActive || snap.CurrentWaveIndex != 1 || snap.Ended {
		t.Errorf("expected idle at wave 1, got %+v", snap)
	}
	if _, exists := g.ECS().Enemies[id]; exists {
		t.Error("dead unit should be removed")
	}
}

func TestLastLifeEndsInDefeat(t *testing.T) {
	store := newMemStore()
	g := newTestGame(t, Options{Waves: singleWave(defs.EnemyNormal, 3), Store: store})
	g.ECS().GameState.Lives = 1
	g.SetSpeed(4)

	var ended []interfaces.Summary
	g.Events().Subscribe(event.SessionEnded, event.ListenerFunc(func(e event.Event) {
		ended = append(ended, e.Data.(interfaces.Summary))
	}))

	g.RequestStartNextWave()
	if !tickUntil(g, 2000, func() bool { return g.Snapshot().Ended }) {
		t.Fatal("session never ended")
	}

	snap := g.Snapshot()
	if snap.Lives != 0 || snap.Victory {
		t.Errorf("expected defeat with 0 lives, got %+v", snap)
	}
	sum, ok := g.Summary()
	if !ok || sum.Victory || sum.WavesSurvived != 0 {
		t.Errorf("unexpected summary %+v (ok=%v)", sum, ok)
	}
	if len(ended) != 1 {
		t.Errorf("expected one SessionEnded event, got %d", len(ended))
	}
	if n := len(g.ECS().Enemies); n != 0 {
		t.Errorf("units should be cleared on session end, %d left", n)
	}

	gameTime := g.ECS().GameTime
	for i := 0; i < 100; i++ {
		g.Tick(0.05)
	}
	if g.ECS().GameTime != gameTime || len(g.ECS().Enemies) != 0 {
		t.Error("ticks after the end must not mutate state")
	}
	if st := g.RequestBuild(buildable, defs.TowerTurret); st != interfaces.StatusNoActionTaken {
		t.Errorf("build after end: expected no action, got %s", st)
	}
	if st := g.RequestStartNextWave(); st != interfaces.StatusNoActionTaken {
		t.Errorf("start after end: expected no action, got %s", st)
	}
	if g.Snapshot().Currency != config.StartingCurrency {
		t.Error("currency changed after the end")
	}
	if store.saves != 0 {
		t.Errorf("a lost wave must not be persisted, got %d saves", store.saves)
	}
}

func TestStandardVictory(t *testing.T) {
	store := newMemStore()
	g := newTestGame(t, Options{Waves: singleWave(defs.EnemyNormal, 1), Store: store})
	g.RequestStartNextWave()
	g.Tick(0.016)
	for _, id := range g.ECS().EnemyIDs() {
		system.ApplyDamage(g.ECS(), g.Events(), id, 1000, defs.ElementPhysical)
	}
	g.Tick(0.016)

	sum, ok := g.Summary()
	if !ok || !sum.Victory {
		t.Fatalf("expected victory, got %+v (ok=%v)", sum, ok)
	}
	if sum.WavesSurvived != 1 || sum.FinalScore != config.KillScore {
		t.Errorf("unexpected summary %+v", sum)
	}
	if p := store.records[defs.ModeStandard]; p.WaveIndex != 1 {
		t.Errorf("expected the completed wave to be persisted, got %+v", p)
	}
}

func TestEndlessRunsPastCampaign(t *testing.T) {
	g := newTestGame(t, Options{Mode: defs.ModeEndless, Waves: singleWave(defs.EnemyNormal, 1)})
	g.RequestStartNextWave()
	g.Tick(0.016)
	for _, id := range g.ECS().EnemyIDs() {
		system.ApplyDamage(g.ECS(), g.Events(), id, 1000, defs.ElementPhysical)
	}
	g.Tick(0.016)

	if g.Snapshot().Ended {
		t.Fatal("endless mode has no victory")
	}
	if st := g.RequestStartNextWave(); st != interfaces.StatusOK {
		t.Fatalf("expected an endless wave, got %s", st)
	}
	want := defs.EndlessWave(1).TotalCount()
	if n := len(g.ECS().Wave.Queue); n != want {
		t.Errorf("expected %d queued units, got %d", want, n)
	}
}

func TestContinueRestoresProgress(t *testing.T) {
	store := newMemStore()
	store.records[defs.ModeStandard] = interfaces.Progress{
		WaveIndex: 2, Currency: 500, Lives: 7, Score: 300,
		TowerBuildCounts: map[defs.TowerKind]int{defs.TowerCryo: 2},
	}
	g := newTestGame(t, Options{Store: store, Continue: true})
	snap := g.Snapshot()
	if snap.CurrentWaveIndex != 2 || snap.Currency != 500 || snap.Lives != 7 || snap.Score != 300 {
		t.Errorf("progress not restored: %+v", snap)
	}
	if snap.TowerBuildCounts[defs.TowerCryo] != 2 {
		t.Errorf("build counts not restored: %v", snap.TowerBuildCounts)
	}

	store.records[defs.ModeStandard] = interfaces.Progress{WaveIndex: len(defs.WavePatterns), Currency: 900, Lives: 3}
	g = newTestGame(t, Options{Store: store, Continue: true})
	if snap := g.Snapshot(); snap.CurrentWaveIndex != 0 || snap.Currency != config.StartingCurrency {
		t.Errorf("a finished run should start fresh, got %+v", snap)
	}
}

func TestExitPersistsAndReportsErrors(t *testing.T) {
	store := newMemStore()
	r := &countingRenderer{live: map[int]bool{}}
	g := newTestGame(t, Options{Store: store, Renderer: r})
	g.RequestBuild(buildable, defs.TowerTurret)
	if err := g.Exit(); err != nil {
		t.Fatalf("Exit: %v", err)
	}
	if p := store.records[defs.ModeStandard]; p.Currency != 150 || p.Lives != config.StartingLives {
		t.Errorf("unexpected saved record %+v", p)
	}
	if len(r.live) != 0 {
		t.Errorf("exit should release every visual, %d left", len(r.live))
	}

	store.err = errors.New("disk full")
	g = newTestGame(t, Options{Store: store})
	if err := g.Exit(); !errors.Is(err, store.err) {
		t.Errorf("expected wrapped store error, got %v", err)
	}
}

func TestExitMidWaveLeavesSessionIdle(t *testing.T) {
	g := newTestGame(t, Options{Store: newMemStore(), Waves: singleWave(defs.EnemyNormal, 3)})
	if st := g.RequestStartNextWave(); st != interfaces.StatusOK {
		t.Fatalf("expected wave start, got %s", st)
	}
	g.Tick(0.05)
	if err := g.Exit(); err != nil {
		t.Fatalf("Exit: %v", err)
	}
	for i := 0; i < 500; i++ {
		g.Tick(0.05)
	}

	if phase := g.ECS().GameState.Phase; phase != component.PhaseIdle {
		t.Errorf("expected idle phase after exit, got %s", phase)
	}
	if g.Snapshot().IsWaveActive {
		t.Error("snapshot should not report a running wave after exit")
	}
	if len(g.ECS().Enemies) != 0 {
		t.Errorf("expected no units after exit, got %d", len(g.ECS().Enemies))
	}
	if st := g.RequestStartNextWave(); st != interfaces.StatusOK {
		t.Errorf("expected the interrupted wave to restart, got %s", st)
	}
	if g.ECS().GameState.WaveIndex != 0 {
		t.Errorf("expected wave index 0, got %d", g.ECS().GameState.WaveIndex)
	}
}

func TestPauseSkipsSimulation(t *testing.T) {
	g := newTestGame(t, Options{Waves: singleWave(defs.EnemyNormal, 2)})
	g.RequestStartNextWave()
	g.SetPaused(true)
	for i := 0; i < 20; i++ {
		g.Tick(0.05)
	}
	if g.ECS().GameTime != 0 || len(g.ECS().Enemies) != 0 {
		t.Error("paused ticks must not mutate state")
	}
	if !g.Snapshot().Paused {
		t.Error("snapshot should report the pause")
	}
	g.SetPaused(false)
	g.Tick(0.05)
	if len(g.ECS().Enemies) != 1 {
		t.Errorf("expected a spawn after resuming, got %d units", len(g.ECS().Enemies))
	}
}

func TestAutoAdvanceStartsWaves(t *testing.T) {
	g := newTestGame(t, Options{AutoAdvance: true})
	if g.Snapshot().IsWaveActive {
		t.Fatal("auto-advance waits before the first wave")
	}
	if !tickUntil(g, 200, func() bool { return g.Snapshot().IsWaveActive }) {
		t.Fatal("auto-advance never started a wave")
	}
	if g.ECS().GameTime < config.AutoAdvanceDelay.Seconds() {
		t.Errorf("wave started early at t=%v", g.ECS().GameTime)
	}

	h := newTestGame(t, Options{})
	h.SetAutoAdvance(true)
	h.SetAutoAdvance(false)
	tickUntil(h, 200, func() bool { return false })
	if h.Snapshot().IsWaveActive {
		t.Error("cancelled auto-advance still started a wave")
	}
}

func TestTowersEngageUnits(t *testing.T) {
	g := newTestGame(t, Options{Waves: singleWave(defs.EnemyNormal, 3)})
	for _, c := range []gridmap.Cell{{X: 1, Z: 0}, {X: 3, Z: 0}, {X: 1, Z: 2}, {X: 3, Z: 2}} {
		if st := g.RequestBuild(c, defs.TowerTurret); st != interfaces.StatusOK {
			t.Fatalf("build at %v: %s", c, st)
		}
	}
	fired, hits := 0, 0
	g.Events().Subscribe(event.ProjectileFired, event.ListenerFunc(func(event.Event) { fired++ }))
	g.Events().Subscribe(event.UnitHit, event.ListenerFunc(func(event.Event) { hits++ }))

	g.RequestStartNextWave()
	tickUntil(g, 4000, func() bool { return g.Snapshot().Ended })

	if fired == 0 || hits == 0 {
		t.Errorf("expected shots and hits, got %d fired, %d hits", fired, hits)
	}
	if n := len(g.ECS().Projectiles); n != 0 {
		t.Errorf("projectiles should be cleared at the end, %d left", n)
	}
}

func TestNewGameRejectsMalformedWaves(t *testing.T) {
	bad := []defs.WaveDefinition{{SpawnDelay: time.Second, HealthMultiplier: 1}}
	if _, err := NewGame(Options{Waves: bad}); err == nil {
		t.Error("expected an error for a wave without units")
	}
	if _, err := NewGame(Options{Mode: "sideways"}); err == nil {
		t.Error("expected an error for an unknown mode")
	}
}

// internal/app/game.go
package app

import (
	"errors"
	"fmt"
	"go-tower-siege/internal/component"
	"go-tower-siege/internal/config"
	"go-tower-siege/internal/defs"
	"go-tower-siege/internal/entity"
	"go-tower-siege/internal/event"
	"go-tower-siege/internal/interfaces"
	"go-tower-siege/internal/system"
	"go-tower-siege/internal/types"
	"go-tower-siege/internal/utils"
	"go-tower-siege/pkg/gridmap"
	"log"
	"maps"
)

const projectileVisualKey = "projectile"

// Options configures a session.
type Options struct {
	Mode        defs.Mode
	Seed        int64 // zero picks a time-based seed
	AutoAdvance bool
	Continue    bool // resume from the mode's persisted record
	Store       interfaces.ProgressStore
	Renderer    interfaces.Renderer
	Grid        *gridmap.Grid
	Waves       []defs.WaveDefinition // defaults to defs.WavePatterns
}

// Game is the simulation controller. It owns the entity context, the event
// dispatcher and every system, and is the only place state is mutated.
type Game struct {
	Grid *gridmap.Grid

	ecs             *entity.ECS
	eventDispatcher *event.Dispatcher
	rng             *utils.PRNGService
	renderer        interfaces.Renderer
	store           interfaces.ProgressStore

	MovementSystem   *system.MovementSystem
	WaveSystem       *system.WaveSystem
	CombatSystem     *system.CombatSystem
	ProjectileSystem *system.ProjectileSystem
	EconomySystem    *system.EconomySystem
	StateSystem      *system.StateSystem

	autoAdvance     bool
	isPaused        bool
	speedMultiplier float64
	pendingStart    bool
	nextWaveAt      float64

	snapshot interfaces.Snapshot
	summary  *interfaces.Summary
}

// NewGame validates the definition tables and the map and builds a session.
// Malformed definitions are returned as errors.
func NewGame(opts Options) (*Game, error) {
	if opts.Mode == "" {
		opts.Mode = defs.ModeStandard
	}
	if _, err := defs.ParseMode(string(opts.Mode)); err != nil {
		return nil, err
	}
	if opts.Grid == nil {
		opts.Grid = gridmap.NewDefaultGrid(config.TileSize)
	}
	if opts.Waves == nil {
		opts.Waves = defs.WavePatterns
	}
	if opts.Renderer == nil {
		opts.Renderer = interfaces.NopRenderer{}
	}
	if err := validate(opts); err != nil {
		return nil, err
	}

	ecs := entity.NewECS()
	eventDispatcher := event.NewDispatcher()
	rng := utils.NewPRNGService(opts.Seed)
	economy := system.NewEconomySystem(ecs, eventDispatcher)

	g := &Game{
		Grid:             opts.Grid,
		ecs:              ecs,
		eventDispatcher:  eventDispatcher,
		rng:              rng,
		renderer:         opts.Renderer,
		store:            opts.Store,
		MovementSystem:   system.NewMovementSystem(ecs),
		WaveSystem:       system.NewWaveSystem(ecs, opts.Grid, eventDispatcher, rng, opts.Waves),
		CombatSystem:     system.NewCombatSystem(ecs),
		ProjectileSystem: system.NewProjectileSystem(ecs, eventDispatcher),
		EconomySystem:    economy,
		StateSystem:      system.NewStateSystem(ecs, economy, eventDispatcher, len(opts.Waves)),
		autoAdvance:      opts.AutoAdvance,
		speedMultiplier:  1.0,
	}

	state := ecs.GameState
	state.Mode = opts.Mode
	state.Currency = config.StartingCurrency
	state.Lives = config.StartingLives
	if opts.Continue {
		g.resume()
	}

	eventDispatcher.Subscribe(event.UnitSpawned, &GameEventListener{game: g})

	log.Printf("New %s session, seed %d, starting at wave %d", state.Mode, rng.Seed(), state.WaveIndex+1)
	if g.autoAdvance {
		g.scheduleNextWave()
	}
	g.refreshSnapshot()
	return g, nil
}

func validate(opts Options) error {
	if err := defs.ValidateTowers(defs.TowerLibrary); err != nil {
		return fmt.Errorf("tower definitions: %w", err)
	}
	if err := defs.ValidateEnemies(defs.EnemyLibrary); err != nil {
		return fmt.Errorf("enemy definitions: %w", err)
	}
	if err := defs.ValidateWaves(opts.Waves); err != nil {
		return fmt.Errorf("wave definitions: %w", err)
	}
	if err := opts.Grid.Validate(); err != nil {
		return fmt.Errorf("map: %w", err)
	}
	if len(opts.Waves) == 0 && opts.Mode == defs.ModeStandard {
		return errors.New("standard mode needs at least one predefined wave")
	}
	return nil
}

// resume restores the mode's persisted record. A finished standard run or a
// record with no lives left starts a fresh session instead.
func (g *Game) resume() {
	if g.store == nil {
		return
	}
	state := g.ecs.GameState
	p, found, err := g.store.LoadProgress(state.Mode)
	if err != nil {
		log.Printf("Error: loading %s progress: %v", state.Mode, err)
		return
	}
	if !found {
		return
	}
	if p.Lives <= 0 || p.Currency < 0 || p.WaveIndex < 0 {
		log.Printf("Ignoring invalid %s progress record: %+v", state.Mode, p)
		return
	}
	if state.Mode == defs.ModeStandard && p.WaveIndex >= g.WaveSystem.TotalWaves() {
		log.Printf("Saved %s run already finished, starting fresh", state.Mode)
		return
	}
	state.WaveIndex = p.WaveIndex
	state.Currency = p.Currency
	state.Lives = p.Lives
	state.Score = p.Score
	for kind, n := range p.TowerBuildCounts {
		state.BuildCounts[kind] = n
	}
}

// GameEventListener creates visuals for units the wave director spawns.
type GameEventListener struct {
	game *Game
}

// OnEvent implements event.Listener.
func (l *GameEventListener) OnEvent(e event.Event) {
	if e.Type != event.UnitSpawned {
		return
	}
	data, ok := e.Data.(event.UnitSpawnedData)
	if !ok {
		return
	}
	def := defs.EnemyLibrary[data.Kind]
	l.game.attachVisual(data.ID, def.Visuals.ModelKey, def.Visuals.Scale)
}

// Tick advances the simulation by deltaTime seconds of wall-clock time. It
// does nothing while paused or after the session has ended.
func (g *Game) Tick(deltaTime float64) {
	state := g.ecs.GameState
	if g.isPaused || state.Ended() || deltaTime <= 0 {
		return
	}
	if deltaTime > config.MaxDeltaTime {
		deltaTime = config.MaxDeltaTime
	}
	dt := deltaTime * g.speedMultiplier
	g.ecs.GameTime += dt
	now := g.ecs.GameTime

	if g.pendingStart && state.Phase == component.PhaseIdle && now >= g.nextWaveAt {
		g.startWave()
	}

	if state.Phase == component.PhaseActive {
		g.WaveSystem.Update(now)
	}
	g.MovementSystem.Update(dt)
	for _, intent := range g.CombatSystem.Update(now) {
		g.spawnProjectile(intent)
	}
	g.ProjectileSystem.Update(dt)
	g.cleanupProjectiles()

	removed, lost := g.EconomySystem.Update()
	for _, id := range removed {
		g.disposeEntity(id)
	}
	if lost {
		g.endSession(component.OutcomeDefeat)
		return
	}

	if state.Phase == component.PhaseActive && g.ecs.Wave != nil && g.ecs.Wave.Complete() {
		g.completeWave()
	}
	if state.Ended() {
		return
	}

	g.syncVisuals()
	g.refreshSnapshot()
}

// RequestStartNextWave starts the next wave if none is running.
func (g *Game) RequestStartNextWave() interfaces.Status {
	state := g.ecs.GameState
	if state.Ended() || state.Phase != component.PhaseIdle {
		return interfaces.StatusNoActionTaken
	}
	if !g.startWave() {
		return interfaces.StatusNoActionTaken
	}
	g.refreshSnapshot()
	return interfaces.StatusOK
}

func (g *Game) startWave() bool {
	state := g.ecs.GameState
	wave := g.WaveSystem.StartWave(state.WaveIndex, state.Mode)
	if wave == nil {
		return false
	}
	g.pendingStart = false
	g.StateSystem.SwitchToWaveState(wave)
	return true
}

func (g *Game) completeWave() {
	won := g.StateSystem.CompleteWave()
	g.persist()
	if won {
		g.endSession(component.OutcomeVictory)
		return
	}
	if g.autoAdvance {
		g.scheduleNextWave()
	}
}

func (g *Game) scheduleNextWave() {
	if g.ecs.GameState.Phase != component.PhaseIdle {
		return
	}
	g.pendingStart = true
	g.nextWaveAt = g.ecs.GameTime + config.AutoAdvanceDelay.Seconds()
}

// SetAutoAdvance toggles automatic wave starts. Turning it on between waves
// schedules the next one.
func (g *Game) SetAutoAdvance(on bool) {
	if g.ecs.GameState.Ended() || g.autoAdvance == on {
		return
	}
	g.autoAdvance = on
	if on {
		g.scheduleNextWave()
	} else {
		g.pendingStart = false
	}
	g.refreshSnapshot()
}

// SetPaused freezes or resumes the simulation. Rendering may continue.
func (g *Game) SetPaused(on bool) {
	if g.isPaused == on {
		return
	}
	g.isPaused = on
	g.refreshSnapshot()
}

// IsPaused reports whether ticks are currently skipped.
func (g *Game) IsPaused() bool {
	return g.isPaused
}

// SetSpeed sets the multiplier applied to every tick's delta.
func (g *Game) SetSpeed(multiplier float64) {
	if multiplier <= 0 {
		return
	}
	g.speedMultiplier = multiplier
}

// Speed returns the current speed multiplier.
func (g *Game) Speed() float64 {
	return g.speedMultiplier
}

// Snapshot returns the read-only view of the session.
func (g *Game) Snapshot() interfaces.Snapshot {
	s := g.snapshot
	s.TowerBuildCounts = maps.Clone(g.snapshot.TowerBuildCounts)
	return s
}

// Summary returns the end-of-run report once the session has ended.
func (g *Game) Summary() (interfaces.Summary, bool) {
	if g.summary == nil {
		return interfaces.Summary{}, false
	}
	s := *g.summary
	s.TowerBuildCounts = maps.Clone(g.summary.TowerBuildCounts)
	return s, true
}

// Events exposes the dispatcher so front-ends can subscribe.
func (g *Game) Events() *event.Dispatcher {
	return g.eventDispatcher
}

// ECS gives renderers read access to the entity context.
func (g *Game) ECS() *entity.ECS {
	return g.ecs
}

// Seed returns the seed the session's shuffles are drawn from.
func (g *Game) Seed() int64 {
	return g.rng.Seed()
}

// Exit persists a running session and releases every visual. An interrupted
// wave is dropped and the session returns to idle, so the same wave index can
// be started again.
func (g *Game) Exit() error {
	state := g.ecs.GameState
	var err error
	if !state.Ended() {
		err = g.save()
	}
	for _, id := range g.allEntityIDs() {
		g.disposeEntity(id)
	}
	g.ecs.Wave = nil
	g.pendingStart = false
	if state.Phase == component.PhaseActive {
		state.Phase = component.PhaseIdle
	}
	g.refreshSnapshot()
	return err
}

func (g *Game) endSession(outcome component.Outcome) {
	g.StateSystem.End(outcome)
	g.pendingStart = false
	for _, id := range g.ecs.EnemyIDs() {
		g.disposeEntity(id)
	}
	for _, id := range g.ecs.ProjectileIDs() {
		g.disposeEntity(id)
	}

	state := g.ecs.GameState
	g.summary = &interfaces.Summary{
		Mode:             state.Mode,
		Victory:          outcome == component.OutcomeVictory,
		FinalScore:       state.Score,
		WavesSurvived:    state.WaveIndex,
		Lives:            state.Lives,
		Currency:         state.Currency,
		TowerBuildCounts: maps.Clone(state.BuildCounts),
	}
	g.refreshSnapshot()
	g.eventDispatcher.Dispatch(event.Event{Type: event.SessionEnded, Data: *g.summary})
}

// persist writes the session record. Failures are logged and never stop the
// simulation.
func (g *Game) persist() {
	if err := g.save(); err != nil {
		log.Printf("Error: saving %s progress: %v", g.ecs.GameState.Mode, err)
	}
}

func (g *Game) save() error {
	if g.store == nil {
		return nil
	}
	state := g.ecs.GameState
	p := interfaces.Progress{
		WaveIndex:        state.WaveIndex,
		Currency:         state.Currency,
		Lives:            state.Lives,
		Score:            state.Score,
		TowerBuildCounts: maps.Clone(state.BuildCounts),
	}
	if err := g.store.SaveProgress(state.Mode, p); err != nil {
		return fmt.Errorf("save %s progress: %w", state.Mode, err)
	}
	return nil
}

func (g *Game) refreshSnapshot() {
	state := g.ecs.GameState
	g.snapshot = interfaces.Snapshot{
		Mode:             state.Mode,
		Lives:            state.Lives,
		Score:            state.Score,
		Currency:         state.Currency,
		CurrentWaveIndex: state.WaveIndex,
		TotalWaveCount:   g.WaveSystem.TotalWaves(),
		IsWaveActive:     state.Phase == component.PhaseActive,
		TowerBuildCounts: maps.Clone(state.BuildCounts),
		AutoAdvance:      g.autoAdvance,
		Paused:           g.isPaused,
		Ended:            state.Ended(),
		Victory:          state.Outcome == component.OutcomeVictory,
	}
	g.eventDispatcher.Dispatch(event.Event{Type: event.SnapshotChanged, Data: g.Snapshot()})
}

func (g *Game) spawnProjectile(intent system.FireIntent) {
	id := g.ecs.NewEntity()
	origin := intent.Origin
	g.ecs.Positions[id] = &component.Position{X: origin.X, Y: origin.Y, Z: origin.Z}
	g.ecs.Projectiles[id] = &component.Projectile{
		Source:    intent.Source,
		Origin:    origin,
		Direction: intent.Direction,
		Speed:     config.ProjectileSpeed,
		Stats:     intent.Stats,
	}
	g.attachVisual(id, projectileVisualKey, 1)
	g.eventDispatcher.Dispatch(event.Event{Type: event.ProjectileFired, Data: id})
}

func (g *Game) cleanupProjectiles() {
	for _, id := range g.ecs.ProjectileIDs() {
		if g.ecs.Projectiles[id].ShouldRemove() {
			g.disposeEntity(id)
		}
	}
}

func (g *Game) attachVisual(id types.EntityID, key string, scale float64) {
	handle := g.renderer.GetVisualHandle(key)
	if handle == nil {
		return
	}
	g.ecs.Renderables[id] = &component.Renderable{Handle: handle, Scale: scale}
	if pos, ok := g.ecs.Positions[id]; ok {
		g.renderer.PlaceVisual(handle, *pos, scale)
	}
}

func (g *Game) syncVisuals() {
	for id, r := range g.ecs.Renderables {
		if pos, ok := g.ecs.Positions[id]; ok {
			g.renderer.PlaceVisual(r.Handle, *pos, r.Scale)
		}
	}
}

// disposeEntity releases the entity's visual and removes it from the world.
func (g *Game) disposeEntity(id types.EntityID) {
	if r, ok := g.ecs.Renderables[id]; ok {
		g.renderer.RemoveVisual(r.Handle)
	}
	g.ecs.RemoveEntity(id)
}

func (g *Game) allEntityIDs() []types.EntityID {
	ids := g.ecs.EnemyIDs()
	ids = append(ids, g.ecs.ProjectileIDs()...)
	ids = append(ids, g.ecs.TowerIDs()...)
	return ids
}

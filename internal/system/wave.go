// internal/system/wave.go
package system

import (
	"go-tower-siege/internal/component"
	"go-tower-siege/internal/config"
	"go-tower-siege/internal/defs"
	"go-tower-siege/internal/entity"
	"go-tower-siege/internal/event"
	"go-tower-siege/internal/types"
	"go-tower-siege/internal/utils"
	"go-tower-siege/pkg/gridmap"
	"log"
)

// WaveSystem builds spawn queues and releases hostile units at the wave's
// pace.
type WaveSystem struct {
	ecs             *entity.ECS
	eventDispatcher *event.Dispatcher
	rng             *utils.PRNGService
	waves           []defs.WaveDefinition
	route           []utils.Vec3
}

func NewWaveSystem(ecs *entity.ECS, grid *gridmap.Grid, eventDispatcher *event.Dispatcher, rng *utils.PRNGService, waves []defs.WaveDefinition) *WaveSystem {
	ws := &WaveSystem{
		ecs:             ecs,
		eventDispatcher: eventDispatcher,
		rng:             rng,
		waves:           waves,
		route:           routeFor(grid),
	}
	eventDispatcher.Subscribe(event.EnemyKilled, ws)
	eventDispatcher.Subscribe(event.EnemyEscaped, ws)
	return ws
}

// routeFor converts the grid's waypoint cells into world points at unit
// height.
func routeFor(grid *gridmap.Grid) []utils.Vec3 {
	route := make([]utils.Vec3, len(grid.Waypoints))
	for i, wp := range grid.Waypoints {
		x, z := grid.CellToWorld(wp)
		route[i] = utils.Vec3{X: x, Y: config.UnitHeight, Z: z}
	}
	return route
}

// TotalWaves returns the number of predefined waves.
func (s *WaveSystem) TotalWaves() int {
	return len(s.waves)
}

// StartWave prepares the wave at index. It returns nil when the mode has no
// wave there.
func (s *WaveSystem) StartWave(index int, mode defs.Mode) *component.Wave {
	waveDef, ok := defs.WaveFor(s.waves, index, mode)
	if !ok {
		return nil
	}

	queue := make([]defs.EnemyKind, 0, waveDef.TotalCount())
	for _, entry := range waveDef.Units {
		for i := 0; i < entry.Count; i++ {
			queue = append(queue, entry.Kind)
		}
	}
	s.rng.Shuffle(len(queue), func(i, j int) { queue[i], queue[j] = queue[j], queue[i] })

	delay := waveDef.SpawnDelay.Seconds()
	log.Printf("Wave %d: %d units, delay %v, health x%.2f", index+1, len(queue), waveDef.SpawnDelay, waveDef.HealthMultiplier)
	return &component.Wave{
		Index:            index,
		Queue:            queue,
		SpawnDelay:       delay,
		HealthMultiplier: waveDef.HealthMultiplier,
		LastSpawnAt:      s.ecs.GameTime - delay, // first unit leaves on the next update
	}
}

// Update releases at most one queued unit once the spawn delay has elapsed.
func (s *WaveSystem) Update(now float64) {
	wave := s.ecs.Wave
	if wave == nil || wave.Drained() {
		return
	}
	if now-wave.LastSpawnAt < wave.SpawnDelay {
		return
	}

	kind := wave.Queue[0]
	wave.Queue = wave.Queue[1:]
	s.spawnEnemy(kind, wave)
	wave.LastSpawnAt = now
}

func (s *WaveSystem) spawnEnemy(kind defs.EnemyKind, wave *component.Wave) types.EntityID {
	def, ok := defs.EnemyLibrary[kind]
	if !ok {
		log.Printf("Error: Enemy definition not found for kind: %s", kind)
		return 0
	}

	id := s.ecs.NewEntity()
	start := s.route[0]
	hp := def.Health * wave.HealthMultiplier
	s.ecs.Positions[id] = &component.Position{X: start.X, Y: start.Y, Z: start.Z}
	s.ecs.Velocities[id] = &component.Velocity{Speed: def.Speed}
	s.ecs.Paths[id] = &component.Path{Waypoints: s.route, CurrentIndex: 1}
	s.ecs.Healths[id] = &component.Health{Value: hp, Max: hp}
	s.ecs.Enemies[id] = &component.Enemy{
		Kind:     kind,
		Weakness: def.Weakness,
		Wave:     wave.Index,
	}
	wave.Spawned++
	wave.Alive++

	s.eventDispatcher.Dispatch(event.Event{Type: event.UnitSpawned, Data: event.UnitSpawnedData{
		ID:   id,
		Kind: kind,
		Wave: wave.Index,
	}})
	return id
}

// OnEvent keeps the running wave's alive count in step with removals.
func (s *WaveSystem) OnEvent(e event.Event) {
	if e.Type != event.EnemyKilled && e.Type != event.EnemyEscaped {
		return
	}
	id, ok := e.Data.(types.EntityID)
	if !ok || s.ecs.Wave == nil {
		return
	}
	if enemy, exists := s.ecs.Enemies[id]; exists && enemy.Wave == s.ecs.Wave.Index && s.ecs.Wave.Alive > 0 {
		s.ecs.Wave.Alive--
	}
}

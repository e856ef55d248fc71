// cmd/tdterm/main.go
package main

import (
	"flag"
	"fmt"
	"go-tower-siege/internal/app"
	"go-tower-siege/internal/config"
	"go-tower-siege/internal/defs"
	"go-tower-siege/internal/event"
	"go-tower-siege/internal/interfaces"
	"go-tower-siege/internal/storage"
	"go-tower-siege/internal/types"
	"go-tower-siege/pkg/gridmap"
	"image/color"
	"log"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
)

const (
	frameInterval = 16 * time.Millisecond
	cellWidth     = 2 // terminal columns per grid cell
	hitFlash      = 0.1
	sampleRate    = beep.SampleRate(44100)
)

// Terminal is a headless session drawn with tcell.
type Terminal struct {
	screen    tcell.Screen
	game      *app.Game
	cursor    gridmap.Cell
	selected  defs.TowerKind
	message   string
	flashes   map[types.EntityID]float64
	audioInit bool
	lastTick  time.Time
}

func NewTerminal(game *app.Game) (*Terminal, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}

	t := &Terminal{
		screen:   screen,
		game:     game,
		flashes:  make(map[types.EntityID]float64),
		lastTick: time.Now(),
	}
	if err := t.initAudio(); err != nil {
		log.Printf("Audio initialization failed: %v", err)
	}

	game.Events().Subscribe(event.UnitHit, event.ListenerFunc(t.onUnitHit))
	game.Events().Subscribe(event.EnemyKilled, event.ListenerFunc(func(event.Event) { t.playTone(440, 80) }))
	game.Events().Subscribe(event.EnemyEscaped, event.ListenerFunc(func(event.Event) { t.playTone(110, 200) }))
	return t, nil
}

func (t *Terminal) initAudio() error {
	err := speaker.Init(sampleRate, sampleRate.N(time.Second/10))
	if err == nil {
		t.audioInit = true
	}
	return err
}

func (t *Terminal) playTone(freq float64, ms int) {
	if !t.audioInit {
		return
	}
	sine, err := generators.SineTone(sampleRate, freq)
	if err != nil {
		return
	}
	speaker.Play(beep.Take(sampleRate.N(time.Duration(ms)*time.Millisecond), sine))
}

func (t *Terminal) onUnitHit(e event.Event) {
	hit, ok := e.Data.(event.UnitHitData)
	if !ok {
		return
	}
	t.flashes[hit.ID] = hit.Time + hitFlash
	t.playTone(880, 30)
}

// Run drives the session until the player quits.
func (t *Terminal) Run() {
	events := make(chan tcell.Event, 16)
	done := make(chan struct{})
	defer close(done)
	go pumpEvents(t.screen.PollEvent, events, done)

	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	for {
		select {
		case ev := <-events:
			if key, ok := ev.(*tcell.EventKey); ok && !t.handleKey(key) {
				return
			}
		case now := <-ticker.C:
			dt := now.Sub(t.lastTick).Seconds()
			t.lastTick = now
			t.game.Tick(dt)
			t.draw()
		}
	}
}

// pumpEvents forwards polled events until poll returns nil or done is closed.
func pumpEvents(poll func() tcell.Event, out chan<- tcell.Event, done <-chan struct{}) {
	for {
		ev := poll()
		if ev == nil {
			return
		}
		select {
		case out <- ev:
		case <-done:
			return
		}
	}
}

// handleKey returns false when the player quits.
func (t *Terminal) handleKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return false
	case tcell.KeyUp:
		t.moveCursor(0, -1)
	case tcell.KeyDown:
		t.moveCursor(0, 1)
	case tcell.KeyLeft:
		t.moveCursor(-1, 0)
	case tcell.KeyRight:
		t.moveCursor(1, 0)
	case tcell.KeyEnter:
		t.report(t.game.RequestBuild(t.cursor, t.selected))
	case tcell.KeyRune:
		switch r := ev.Rune(); r {
		case 'q':
			return false
		case 'h':
			t.moveCursor(-1, 0)
		case 'j':
			t.moveCursor(0, 1)
		case 'k':
			t.moveCursor(0, -1)
		case 'l':
			t.moveCursor(1, 0)
		case '1', '2', '3', '4':
			if i := int(r - '1'); i < len(defs.TowerKinds) {
				t.selected = defs.TowerKinds[i]
			}
		case 'b':
			t.report(t.game.RequestBuild(t.cursor, t.selected))
		case 'x':
			t.report(t.game.RequestSell(t.cursor))
		case ' ', 'n':
			t.report(t.game.RequestStartNextWave())
		case 'a':
			t.game.SetAutoAdvance(!t.game.Snapshot().AutoAdvance)
		case 'p':
			t.game.SetPaused(!t.game.IsPaused())
		case 'f':
			t.game.SetSpeed(nextSpeed(t.game.Speed()))
		}
	}
	return true
}

func nextSpeed(current float64) float64 {
	for i, m := range config.SpeedMultipliers {
		if m == current {
			return config.SpeedMultipliers[(i+1)%len(config.SpeedMultipliers)]
		}
	}
	return config.SpeedMultipliers[0]
}

func (t *Terminal) moveCursor(dx, dz int) {
	next := gridmap.Cell{X: t.cursor.X + dx, Z: t.cursor.Z + dz}
	if t.game.Grid.InBounds(next) {
		t.cursor = next
	}
}

func (t *Terminal) report(st interfaces.Status) {
	if st == interfaces.StatusOK {
		t.message = ""
		return
	}
	t.message = st.String()
}

func rgb(c color.RGBA) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

func (t *Terminal) draw() {
	t.screen.Clear()
	grid := t.game.Grid
	ecs := t.game.ECS()

	for z := 0; z < grid.Height(); z++ {
		for x := 0; x < grid.Width(); x++ {
			cell := gridmap.Cell{X: x, Z: z}
			kind, _ := grid.Tile(cell)
			bg := config.BuildableColor
			switch kind {
			case gridmap.TilePath:
				bg = config.PathColor
			case gridmap.TileGoal:
				bg = config.GoalColor
			}
			style := tcell.StyleDefault.Background(rgb(bg))
			if cell == t.cursor {
				style = style.Reverse(true)
			}
			t.setCell(cell, ' ', style)
		}
	}

	for _, id := range ecs.TowerIDs() {
		tower := ecs.Towers[id]
		def := defs.TowerLibrary[tower.Kind]
		style := tcell.StyleDefault.Foreground(rgb(def.Visuals.Color)).Background(rgb(config.BuildableColor)).Bold(true)
		if tower.Cell == t.cursor {
			style = style.Reverse(true)
		}
		t.setCell(tower.Cell, []rune(def.Name)[0], style)
	}

	for _, id := range ecs.EnemyIDs() {
		enemy := ecs.Enemies[id]
		pos, ok := ecs.Positions[id]
		if !ok || !enemy.Targetable() {
			continue
		}
		fg := rgb(defs.EnemyLibrary[enemy.Kind].Visuals.Color)
		if until, ok := t.flashes[id]; ok && ecs.GameTime < until {
			fg = rgb(config.HitFlashColor)
		}
		cell := grid.WorldToCell(pos.X, pos.Z)
		t.setCell(cell, '●', tcell.StyleDefault.Foreground(fg).Background(rgb(config.PathColor)))
	}

	for _, id := range ecs.ProjectileIDs() {
		pos := ecs.Positions[id]
		if pos == nil {
			continue
		}
		t.setCell(grid.WorldToCell(pos.X, pos.Z), '·', tcell.StyleDefault.Foreground(tcell.ColorYellow))
	}

	for id := range t.flashes {
		if _, ok := ecs.Enemies[id]; !ok {
			delete(t.flashes, id)
		}
	}

	t.drawStatus(grid.Height() + 1)
	t.screen.Show()
}

func (t *Terminal) setCell(cell gridmap.Cell, r rune, style tcell.Style) {
	x := cell.X * cellWidth
	t.screen.SetContent(x, cell.Z, r, nil, style)
	for i := 1; i < cellWidth; i++ {
		t.screen.SetContent(x+i, cell.Z, ' ', nil, style)
	}
}

func (t *Terminal) drawStatus(row int) {
	snap := t.game.Snapshot()
	wave := fmt.Sprintf("%d/%d", snap.CurrentWaveIndex+1, snap.TotalWaveCount)
	if snap.Mode == defs.ModeEndless && snap.CurrentWaveIndex >= snap.TotalWaveCount {
		wave = fmt.Sprintf("%d (endless)", snap.CurrentWaveIndex+1)
	}
	lines := []string{
		fmt.Sprintf("Lives %d  Score %d  $%d  Wave %s  Speed x%g", snap.Lives, snap.Score, snap.Currency, wave, t.game.Speed()),
		fmt.Sprintf("Tower: %s ($%d)  auto:%v  paused:%v", defs.TowerLibrary[t.selected].Name, defs.TowerLibrary[t.selected].Cost, snap.AutoAdvance, snap.Paused),
		"arrows/hjkl move  1-4 tower  b/Enter build  x sell  space wave  a auto  p pause  f speed  q quit",
		t.message,
	}
	if sum, ok := t.game.Summary(); ok {
		outcome := "DEFEAT"
		if sum.Victory {
			outcome = "VICTORY"
		}
		lines[3] = fmt.Sprintf("%s  final score %d  waves survived %d", outcome, sum.FinalScore, sum.WavesSurvived)
	}
	for i, line := range lines {
		for x, r := range []rune(line) {
			t.screen.SetContent(x, row+i, r, nil, tcell.StyleDefault)
		}
	}
}

func (t *Terminal) Close() {
	if t.audioInit {
		speaker.Close()
	}
	t.screen.Fini()
}

func main() {
	modeFlag := flag.String("mode", "standard", "session mode: standard or endless")
	dbPath := flag.String("db", "", "SQLite file for progress (in-memory when empty)")
	seed := flag.Int64("seed", 0, "random seed (0 picks one from the clock)")
	cont := flag.Bool("continue", false, "resume the saved run for the mode")
	auto := flag.Bool("auto", false, "start waves automatically")
	flag.Parse()

	mode, err := defs.ParseMode(*modeFlag)
	if err != nil {
		log.Fatal(err)
	}

	var store interfaces.ProgressStore = storage.NewMemoryStore()
	var db *storage.SQLiteStore
	if *dbPath != "" {
		db, err = storage.OpenDB(*dbPath)
		if err != nil {
			log.Fatalf("Failed to open database: %v", err)
		}
		defer db.Close()
		store = db
	}

	game, err := app.NewGame(app.Options{
		Mode:        mode,
		Seed:        *seed,
		AutoAdvance: *auto,
		Continue:    *cont,
		Store:       store,
	})
	if err != nil {
		log.Fatalf("Failed to start session: %v", err)
	}

	term, err := NewTerminal(game)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize terminal: %v\n", err)
		os.Exit(1)
	}
	term.Run()
	term.Close()

	if sum, ok := game.Summary(); ok && db != nil {
		if err := db.RecordRun(sum); err != nil {
			log.Printf("Error: recording run: %v", err)
		}
	}
	if err := game.Exit(); err != nil {
		log.Printf("Error: %v", err)
	}
}

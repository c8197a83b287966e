package platformer

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vovakirdan/tui-platformer/internal/config"
	"github.com/vovakirdan/tui-platformer/internal/core"
	"github.com/vovakirdan/tui-platformer/internal/level"
	"github.com/vovakirdan/tui-platformer/internal/registry"
)

var testRC = core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 1}

// testTuning returns the defaults without procedural enemies.
func testTuning() config.Tuning {
	t := config.DefaultTuning()
	t.Game.MaxEnemies = 0
	return t
}

// testLevel is flat ground with the player standing at x=400 and the goal
// far to the right.
func testLevel(name string) level.Level {
	return level.Level{
		Name:   name,
		Ground: level.Ground{Y: 680, StartX: 0, EndX: 3000},
		Goal:   core.NewRect(2900, 600, 40, 80),
		Spawn:  core.V(400, 590),
	}
}

func newTestGame(t *testing.T, tune config.Tuning, levels ...level.Level) *Game {
	t.Helper()
	g := New(WithTuning(tune), WithLevels(level.Pack{Levels: levels, Source: "test"}))
	g.Reset(testRC)
	g.StartLevel(0)
	return g
}

func hold(actions ...core.Action) core.InputFrame {
	f := core.NewInputFrame()
	for _, a := range actions {
		f.Set(a)
	}
	return f
}

func hasEvent(events []Event, kind EventKind) bool {
	for _, e := range events {
		if e.Kind == kind {
			return true
		}
	}
	return false
}

// stepUntil steps with empty input until an event of kind fires.
func stepUntil(t *testing.T, g *Game, kind EventKind, maxFrames int) Event {
	t.Helper()
	for i := 0; i < maxFrames; i++ {
		g.Step(hold())
		for _, e := range g.Events() {
			if e.Kind == kind {
				return e
			}
		}
	}
	t.Fatalf("no %v event within %d frames", kind, maxFrames)
	return Event{}
}

func TestGameRegistered(t *testing.T) {
	for _, id := range []string{IDCampaign, IDArena} {
		g, err := registry.Create(id)
		if err != nil {
			t.Fatalf("Create(%q): %v", id, err)
		}
		if g.ID() != id {
			t.Errorf("ID() = %q, expected %q", g.ID(), id)
		}
	}
}

func TestGameStartsInMenu(t *testing.T) {
	g := New(WithTuning(testTuning()), WithLevels(level.Pack{Levels: []level.Level{testLevel("A")}}))
	g.Reset(testRC)

	st := g.State()
	if !st.InMenu || st.GameOver || st.Paused {
		t.Errorf("state = %+v, expected the menu", st)
	}
	if g.Snapshot().Mode != ModeMenu {
		t.Errorf("mode = %v", g.Snapshot().Mode)
	}
}

func TestGameStandsStill(t *testing.T) {
	g := newTestGame(t, testTuning(), testLevel("A"))

	for i := 0; i < 120; i++ {
		g.Step(hold())
	}

	snap := g.Snapshot()
	if snap.Player.Pos != core.V(400, 590) {
		t.Errorf("player drifted to %v", snap.Player.Pos)
	}
	if !snap.Player.OnGround || snap.Player.VelY != 0 {
		t.Errorf("on_ground=%v vel_y=%v", snap.Player.OnGround, snap.Player.VelY)
	}
	if snap.Tick != 120 {
		t.Errorf("tick = %d", snap.Tick)
	}
}

func TestGameMenuSelection(t *testing.T) {
	g := New(WithTuning(testTuning()), WithLevels(level.Pack{
		Levels: []level.Level{testLevel("A"), testLevel("B"), testLevel("C")},
	}))
	g.Reset(testRC)

	steps := []struct {
		in       core.InputFrame
		selected int
	}{
		{hold(core.ActionRight), 1},
		{hold(core.ActionRight), 1}, // Held, not pressed again
		{hold(), 1},
		{hold(core.ActionRight), 2},
		{hold(), 2},
		{hold(core.ActionRight), 0}, // Wraps
		{hold(core.ActionLeft), 2},  // Wraps back
		{hold(), 2},
		{hold(core.ActionLeft), 1},
	}
	for i, s := range steps {
		g.Step(s.in)
		snap := g.Snapshot()
		if snap.Selected != s.selected {
			t.Fatalf("step %d: selected = %d, expected %d", i, snap.Selected, s.selected)
		}
		if snap.LevelIndex != s.selected {
			t.Errorf("step %d: previewed level %d, expected %d", i, snap.LevelIndex, s.selected)
		}
	}

	g.Step(hold(core.ActionConfirm))
	if st := g.State(); st.InMenu || st.Level != "B" {
		t.Errorf("after confirm: %+v", st)
	}
	if g.Snapshot().Mode != ModePlaying {
		t.Errorf("mode = %v, expected playing", g.Snapshot().Mode)
	}
}

func TestGamePauseAndBack(t *testing.T) {
	g := newTestGame(t, testTuning(), testLevel("A"))

	g.Step(hold())
	g.Step(hold(core.ActionPause))
	if !g.State().Paused {
		t.Fatal("expected paused")
	}

	tick := g.Snapshot().Tick
	for i := 0; i < 10; i++ {
		g.Step(hold(core.ActionRight))
	}
	if g.Snapshot().Tick != tick || g.Snapshot().Player.Pos.X != 400 {
		t.Error("simulation advanced while paused")
	}

	g.Step(hold(core.ActionPause))
	if g.State().Paused {
		t.Fatal("expected resumed")
	}

	g.Step(hold(core.ActionPause))
	g.Step(hold(core.ActionBack))
	if !g.State().InMenu {
		t.Error("back from pause did not return to the menu")
	}
}

func TestGameEnemyContact(t *testing.T) {
	lvl := testLevel("A")
	lvl.Enemies = []level.EnemyTemplate{{X: 400, Y: 662, Type: "fast", Speed: fptr(0)}}
	g := newTestGame(t, testTuning(), lvl)

	g.Step(hold(core.ActionRight))

	snap := g.Snapshot()
	if snap.Lives != 2 || !snap.Invulnerable {
		t.Errorf("lives=%d invulnerable=%v", snap.Lives, snap.Invulnerable)
	}
	if snap.Player.Pos != lvl.Spawn {
		t.Errorf("player at %v, expected respawn at %v", snap.Player.Pos, lvl.Spawn)
	}
	if !hasEvent(g.Events(), EventPlayerHit) {
		t.Error("no player_hit event")
	}

	// No further damage while invulnerable.
	for i := 0; i < 60; i++ {
		g.Step(hold())
		if g.Snapshot().Lives != 2 {
			t.Fatalf("lost a life during invulnerability at frame %d", i)
		}
	}
}

func TestGameOverFreezesAndRestarts(t *testing.T) {
	tune := testTuning()
	tune.Game.Lives = 1
	lvl := testLevel("A")
	lvl.Enemies = []level.EnemyTemplate{{X: 400, Y: 662, Type: "basic", Speed: fptr(0)}}
	g := newTestGame(t, tune, lvl)

	g.Step(hold())
	if !g.State().GameOver {
		t.Fatal("expected game over")
	}
	if !hasEvent(g.Events(), EventGameOver) {
		t.Error("no game_over event")
	}

	tick := g.Snapshot().Tick
	for i := 0; i < 10; i++ {
		g.Step(hold(core.ActionRight))
	}
	if g.Snapshot().Tick != tick {
		t.Error("simulation advanced after game over")
	}

	g.Step(hold(core.ActionRestart))
	snap := g.Snapshot()
	if g.State().GameOver || snap.Lives != 1 || snap.Score != 0 {
		t.Errorf("after restart: game_over=%v lives=%d score=%d", g.State().GameOver, snap.Lives, snap.Score)
	}
	if len(snap.Enemies) != 1 {
		t.Errorf("enemies = %d after restart, expected 1", len(snap.Enemies))
	}
}

func TestGameOverBackToMenu(t *testing.T) {
	tune := testTuning()
	tune.Game.Lives = 1
	lvl := testLevel("A")
	lvl.Enemies = []level.EnemyTemplate{{X: 400, Y: 662, Speed: fptr(0)}}
	g := newTestGame(t, tune, lvl)

	g.Step(hold())
	g.Step(hold(core.ActionBack))

	if st := g.State(); !st.InMenu || st.GameOver {
		t.Errorf("state = %+v, expected the menu", st)
	}
}

func TestGameFallDeath(t *testing.T) {
	lvl := testLevel("A")
	lvl.Ground.EndX = 100
	g := newTestGame(t, testTuning(), lvl)

	e := stepUntil(t, g, EventPlayerDied, 300)

	snap := g.Snapshot()
	if e.Value != 2 || snap.Lives != 2 {
		t.Errorf("lives = %d (event %d), expected 2", snap.Lives, e.Value)
	}
	if snap.Player.Pos != lvl.Spawn {
		t.Errorf("player at %v, expected spawn", snap.Player.Pos)
	}
}

func TestGameLandingEvent(t *testing.T) {
	lvl := testLevel("A")
	lvl.Spawn = core.V(400, 300)
	g := newTestGame(t, testTuning(), lvl)

	e := stepUntil(t, g, EventLanded, 120)

	if e.Pos != core.V(400, 680) {
		t.Errorf("landed at %v, expected (400, 680)", e.Pos)
	}
	if g.particles.Count() != burstLanding {
		t.Errorf("particles = %d, expected %d", g.particles.Count(), burstLanding)
	}

	g.Step(hold())
	if hasEvent(g.Events(), EventLanded) {
		t.Error("landing fired twice")
	}
}

func TestGameLandsOnOneWayPlatform(t *testing.T) {
	lvl := testLevel("A")
	lvl.Spawn = core.V(400, 200)
	lvl.Platforms = []level.Platform{
		{Rect: core.NewRect(300, 500, 200, 20), Type: level.PlatformOneWay},
	}
	g := newTestGame(t, testTuning(), lvl)

	for i := 0; i < 120; i++ {
		g.Step(hold())
	}

	p := g.player
	if math.Abs(p.FeetY()-500) > 1e-9 || !p.OnGround {
		t.Errorf("feet = %v on_ground=%v, expected standing on the platform top", p.FeetY(), p.OnGround)
	}
}

func TestGameBlockWall(t *testing.T) {
	lvl := testLevel("A")
	block := core.NewRect(500, 500, 100, 180)
	lvl.Platforms = []level.Platform{{Rect: block, Type: level.PlatformBlock}}
	g := newTestGame(t, testTuning(), lvl)

	for i := 0; i < 60; i++ {
		g.Step(hold(core.ActionRight))
	}

	got := g.player.Rect().Right()
	if want := block.Left() - core.BlockSeparation; math.Abs(got-want) > 1e-9 {
		t.Errorf("right edge = %v, expected %v", got, want)
	}
}

func TestGameDecorDoesNotCollide(t *testing.T) {
	lvl := testLevel("A")
	lvl.Platforms = []level.Platform{{Rect: core.NewRect(500, 500, 100, 180), Type: level.PlatformDecor}}
	g := newTestGame(t, testTuning(), lvl)

	for i := 0; i < 60; i++ {
		g.Step(hold(core.ActionRight))
	}

	if g.player.Pos.X <= 600 {
		t.Errorf("player stopped at %v behind a decor platform", g.player.Pos.X)
	}
}

func TestGameShootKillsEnemy(t *testing.T) {
	lvl := testLevel("A")
	lvl.Enemies = []level.EnemyTemplate{{X: 600, Y: 662, Type: "fast", Speed: fptr(0)}}
	g := newTestGame(t, testTuning(), lvl)

	in := hold(core.ActionShoot)
	in.SetAim(core.V(600, 662).Sub(g.camera.Offset))
	g.Step(in)
	if !hasEvent(g.Events(), EventShot) {
		t.Fatal("no shot event")
	}

	e := stepUntil(t, g, EventEnemyKilled, 60)
	if e.Value != 1 {
		t.Errorf("points = %d, expected 1", e.Value)
	}
	if g.Snapshot().Score != 1 {
		t.Errorf("score = %d, expected 1", g.Snapshot().Score)
	}
}

func TestGameShootWithoutAim(t *testing.T) {
	g := newTestGame(t, testTuning(), testLevel("A"))

	g.Step(hold(core.ActionShoot))

	if g.projectiles.Count() != 1 {
		t.Fatalf("projectiles = %d, expected 1", g.projectiles.Count())
	}
	pr := g.projectiles.Projectiles[0]
	if pr.Vel.X <= 0 || pr.Vel.Y != 0 {
		t.Errorf("velocity = %v, expected straight right", pr.Vel)
	}
}

func TestGameRespawnsTemplates(t *testing.T) {
	tune := testTuning()
	tune.Game.SpawnCooldown = 0.5
	lvl := testLevel("A")
	lvl.Enemies = []level.EnemyTemplate{{X: 2000, Y: 662, Speed: fptr(0)}}
	g := newTestGame(t, tune, lvl)

	g.Step(hold())
	g.enemies.Clear()

	g.Step(hold())
	if len(g.enemies.Enemies) != 1 {
		t.Errorf("enemies = %d, expected the template back at once", len(g.enemies.Enemies))
	}
}

func TestGameGoalTransition(t *testing.T) {
	tune := testTuning()
	tune.Transition.FadeOut = 0.1
	tune.Transition.FadeIn = 0.1

	first := testLevel("A")
	first.Goal = core.NewRect(380, 650, 40, 30)
	second := testLevel("B")
	second.Spawn = core.V(1000, 590)
	g := newTestGame(t, tune, first, second)

	g.Step(hold())
	if !hasEvent(g.Events(), EventGoalReached) {
		t.Fatal("no goal_reached event")
	}
	snap := g.Snapshot()
	if !snap.TransitionActive || snap.Phase != PhaseFadeOut || !snap.Victory || snap.NextLevel != 1 {
		t.Fatalf("after goal: active=%v phase=%v victory=%v next=%d",
			snap.TransitionActive, snap.Phase, snap.Victory, snap.NextLevel)
	}

	e := stepUntil(t, g, EventLevelLoaded, 30)
	if e.Value != 1 {
		t.Errorf("loaded level %d, expected 1", e.Value)
	}
	snap = g.Snapshot()
	if snap.LevelIndex != 1 || snap.Phase != PhaseFadeIn || snap.Player.Pos != second.Spawn {
		t.Errorf("after swap: level=%d phase=%v player=%v", snap.LevelIndex, snap.Phase, snap.Player.Pos)
	}
	if snap.Score != 0 || snap.Lives != 3 {
		t.Errorf("score and lives changed across levels: %d/%d", snap.Score, snap.Lives)
	}

	for i := 0; i < 30 && g.Snapshot().TransitionActive; i++ {
		g.Step(hold())
	}
	snap = g.Snapshot()
	if snap.TransitionActive || snap.Victory || snap.Phase != PhaseNone {
		t.Errorf("transition did not finish: active=%v victory=%v phase=%v",
			snap.TransitionActive, snap.Victory, snap.Phase)
	}
}

func TestGameGoalWrapsToFirstLevel(t *testing.T) {
	lvl := testLevel("Only")
	lvl.Goal = core.NewRect(380, 650, 40, 30)
	g := newTestGame(t, testTuning(), lvl)

	g.Step(hold())

	if g.Snapshot().NextLevel != 0 {
		t.Errorf("next level = %d, expected 0", g.Snapshot().NextLevel)
	}
}

func TestArenaStartsPlaying(t *testing.T) {
	g := NewArena(WithTuning(config.DefaultTuning()))
	g.Reset(testRC)

	st := g.State()
	if st.InMenu || st.Level != "Arena" {
		t.Errorf("state = %+v", st)
	}
	snap := g.Snapshot()
	if len(snap.Enemies) != config.DefaultTuning().Game.MaxEnemies {
		t.Errorf("enemies = %d", len(snap.Enemies))
	}
	if snap.Level.Goal != (core.Rect{}) {
		t.Errorf("arena has a goal %v", snap.Level.Goal)
	}
}

// script plays a fixed input sequence covering every action.
func script(g *Game, frames int) {
	for i := 0; i < frames; i++ {
		in := core.NewInputFrame()
		switch {
		case i%90 < 40:
			in.Set(core.ActionRight)
		case i%90 < 70:
			in.Set(core.ActionLeft)
		}
		if i%45 == 10 {
			in.Set(core.ActionJump)
		}
		if i%120 == 30 {
			in.Set(core.ActionDash)
		}
		if i%20 == 5 {
			in.Set(core.ActionShoot)
			in.SetAim(core.V(float64(200+i%600), 300))
		}
		g.Step(in)
	}
}

func TestDeterminism(t *testing.T) {
	run := func(seed int64) uint64 {
		g := NewArena(WithTuning(config.DefaultTuning()))
		g.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: seed})
		script(g, 600)
		snap := g.Snapshot()
		return snap.Hash()
	}

	h1 := run(42)
	h2 := run(42)
	if h1 != h2 {
		t.Errorf("same seed gave different hashes: %x != %x", h1, h2)
	}

	if h3 := run(43); h3 == h1 {
		t.Errorf("different seeds gave the same hash %x", h1)
	}
}

func TestRenderMenu(t *testing.T) {
	g := New(WithTuning(testTuning()), WithLevels(level.Pack{
		Levels: []level.Level{testLevel("Meadow"), testLevel("Caves")},
	}))
	g.Reset(testRC)

	scr := core.NewScreen(80, 24)
	g.Render(scr)
	out := scr.String()

	for _, want := range []string{"P L A T F O R M E R", "> Meadow <", "Caves"} {
		if !strings.Contains(out, want) {
			t.Errorf("menu is missing %q", want)
		}
	}
}

func TestRenderPlaying(t *testing.T) {
	lvl := testLevel("Meadow")
	lvl.Enemies = []level.EnemyTemplate{{X: 700, Y: 658, Type: "tank", Speed: fptr(0)}}
	g := newTestGame(t, testTuning(), lvl)
	// Past the first blink.
	for i := 0; i < 10; i++ {
		g.Step(hold())
	}

	scr := core.NewScreen(80, 24)
	g.Render(scr)
	out := scr.String()

	for _, want := range []string{"Score: 0", "Meadow", string(HeadChar), string(HeartChar), "#"} {
		if !strings.Contains(out, want) {
			t.Errorf("screen is missing %q:\n%s", want, out)
		}
	}
}

func TestRenderOverlays(t *testing.T) {
	g := newTestGame(t, testTuning(), testLevel("A"))
	g.Step(hold(core.ActionPause))

	scr := core.NewScreen(80, 24)
	g.Render(scr)
	if !strings.Contains(scr.String(), "PAUSED") {
		t.Error("pause overlay missing")
	}

	tune := testTuning()
	tune.Game.Lives = 1
	lvl := testLevel("A")
	lvl.Enemies = []level.EnemyTemplate{{X: 400, Y: 662, Speed: fptr(0)}}
	g = newTestGame(t, tune, lvl)
	g.Step(hold())
	g.Render(scr)
	if !strings.Contains(scr.String(), "GAME OVER") {
		t.Error("game over overlay missing")
	}
}

func TestRenderTooSmall(t *testing.T) {
	g := New(WithTuning(testTuning()), WithLevels(level.Pack{Levels: []level.Level{testLevel("A")}}))
	g.Reset(core.RuntimeConfig{ScreenW: 20, ScreenH: 8, TickRate: 60, Seed: 1})

	scr := core.NewScreen(30, 8)
	g.Render(scr)
	if !strings.Contains(scr.String(), "Terminal too small") {
		t.Errorf("expected the too-small message, got:\n%s", scr.String())
	}

	g.Step(hold(core.ActionConfirm))
	if !g.State().InMenu {
		t.Error("input processed on a too-small screen")
	}
}

func TestGameResize(t *testing.T) {
	g := New(WithTuning(testTuning()), WithLevels(level.Pack{Levels: []level.Level{testLevel("A")}}))
	g.Reset(core.RuntimeConfig{ScreenW: 20, ScreenH: 8, TickRate: 60, Seed: 1})

	g.Resize(80, 24)
	g.Step(hold(core.ActionConfirm))
	if g.State().InMenu {
		t.Error("input ignored after growing the screen")
	}

	g.Resize(10, 5)
	tick := g.Snapshot().Tick
	g.Step(hold())
	if g.Snapshot().Tick != tick {
		t.Error("simulation advanced on a too-small screen")
	}
}

func TestCellToView(t *testing.T) {
	const viewW, viewH = 1366.0, 769.0
	scr := core.NewScreen(80, 24)
	v := newViewport(scr, core.Vec2{}, viewW, viewH)

	tests := []struct{ x, y int }{
		{0, 1}, {40, 12}, {79, 23}, {13, 7},
	}
	for _, tc := range tests {
		p := CellToView(tc.x, tc.y, 80, 24, viewW, viewH)
		if x, y := v.cell(p); x != tc.x || y != tc.y {
			t.Errorf("cell (%d, %d) -> %v -> cell (%d, %d)", tc.x, tc.y, p, x, y)
		}
	}

	if p := CellToView(5, 5, 0, 0, viewW, viewH); p != (core.Vec2{}) {
		t.Errorf("empty screen gave %v", p)
	}
}

func TestSetDifficultyPreset(t *testing.T) {
	t.Cleanup(func() { SetDifficultyPreset("") })

	tests := []struct {
		name    string
		want    config.DifficultyPreset
		wantErr bool
	}{
		{"hard", config.DifficultyHard, false},
		{" Easy ", config.DifficultyEasy, false},
		{"", "", false},
		{"nightmare", "", true},
	}

	for _, tc := range tests {
		SetDifficultyPreset("hard")
		err := SetDifficultyPreset(tc.name)
		if (err != nil) != tc.wantErr {
			t.Errorf("SetDifficultyPreset(%q) error = %v, wantErr %v", tc.name, err, tc.wantErr)
		}
		if difficultyPreset != tc.want {
			t.Errorf("SetDifficultyPreset(%q) left preset %q, expected %q", tc.name, difficultyPreset, tc.want)
		}
	}
}

func TestCheckSources(t *testing.T) {
	t.Cleanup(func() {
		SetConfigPath("")
		SetLevelsPath("")
	})
	dir := t.TempDir()
	missing := filepath.Join(dir, "missing.yaml")

	goodLevels := filepath.Join(dir, "levels.yaml")
	if err := os.WriteFile(goodLevels, []byte("levels:\n  - name: Flat\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name    string
		config  string
		levels  string
		wantErr bool
	}{
		{"defaults", "", "", false},
		{"readable levels", "", goodLevels, false},
		{"missing levels", "", missing, true},
		{"missing config", missing, "", true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			SetConfigPath(tc.config)
			SetLevelsPath(tc.levels)
			err := CheckSources()
			if (err != nil) != tc.wantErr {
				t.Errorf("CheckSources() error = %v, wantErr %v", err, tc.wantErr)
			}
		})
	}
}

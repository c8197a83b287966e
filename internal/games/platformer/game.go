// Package platformer implements the side-scrolling platformer simulation:
// a stick figure with a stamina-gated jump, double jump and dash, one-way
// platforms and solid blocks, patrolling and flying enemies, projectiles,
// and a goal door that fades into the next level.
//
// The simulation is deterministic for a given seed and input sequence and
// never touches the wall clock; the frame delta is the only time source.
package platformer

import (
	"math/rand"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-platformer/internal/config"
	"github.com/vovakirdan/tui-platformer/internal/core"
	"github.com/vovakirdan/tui-platformer/internal/level"
	"github.com/vovakirdan/tui-platformer/internal/registry"
)

// Registry IDs.
const (
	IDCampaign = "platformer"
	IDArena    = "platformer_arena"
)

// Minimum terminal size for the cell renderer.
const (
	minScreenW = 40
	minScreenH = 12
)

// aimReach is how far ahead of the player a shot without an aim point goes.
const aimReach = 100.0

// configPath stores the custom tuning path set via CLI
var configPath string

// levelsPath stores the custom level file set via CLI
var levelsPath string

// difficultyPreset stores the difficulty preset set via CLI
var difficultyPreset config.DifficultyPreset

// SetConfigPath sets the custom tuning path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetLevelsPath sets the custom level file for loading.
func SetLevelsPath(path string) {
	levelsPath = path
}

// SetDifficultyPreset sets the difficulty preset. An unknown name clears
// the preset and is returned as an error.
func SetDifficultyPreset(preset string) error {
	p, err := config.ParsePreset(preset)
	difficultyPreset = p
	return err
}

// CheckSources loads the tuning and level files set through SetConfigPath
// and SetLevelsPath, reporting the first one that cannot be used. Games
// created afterwards fall back to defaults silently, so frontends call this
// once before starting.
func CheckSources() error {
	t, err := config.LoadTuning(configPath)
	if err != nil {
		return err
	}
	if _, err := level.Load(levelsPath, level.DefaultsFrom(t)); err != nil {
		return err
	}
	return nil
}

func init() {
	registry.Register(IDCampaign, func() registry.Game { return New() })
	registry.Register(IDArena, func() registry.Game { return NewArena() })
}

// Option customizes a Game before Reset.
type Option func(*Game)

// WithTuning uses t instead of loading the tuning from disk.
func WithTuning(t config.Tuning) Option {
	return func(g *Game) {
		g.fixedTuning = &t
	}
}

// WithLevels uses p instead of loading the level pack from disk.
func WithLevels(p level.Pack) Option {
	return func(g *Game) {
		g.fixedPack = &p
	}
}

// Game is the frame orchestrator. It owns every subsystem and runs them in
// a fixed order once per step.
type Game struct {
	arena bool

	fixedTuning *config.Tuning
	fixedPack   *level.Pack

	tuning config.Tuning
	rc     core.RuntimeConfig
	pack   level.Pack

	selected int // Level highlighted in the menu
	levelIdx int
	lvl      level.Level
	oneWay   []core.Rect
	blocks   []core.Rect

	player      *Player
	enemies     *EnemySystem
	projectiles *ProjectileSystem
	particles   *ParticleSystem
	camera      *Camera
	state       *State
	rng         *rand.Rand

	tick           uint64
	prev           core.InputFrame
	events         []Event
	screenTooSmall bool
}

// New creates the campaign: a level menu, then the level pack in order.
func New(opts ...Option) *Game {
	g := &Game{}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// NewArena creates the arena: one open field with endless procedural
// enemies and no exit. It starts playing immediately.
func NewArena(opts ...Option) *Game {
	g := New(opts...)
	g.arena = true
	return g
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	if g.arena {
		return IDArena
	}
	return IDCampaign
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	if g.arena {
		return "Platformer (Arena)"
	}
	return "Platformer"
}

// Reset loads tuning and levels and returns to the level menu (the arena
// starts playing right away).
func (g *Game) Reset(rc core.RuntimeConfig) {
	g.rc = rc
	g.tuning = g.loadTuning()
	g.pack = g.loadPack()

	g.rng = rand.New(rand.NewSource(rc.Seed)) //#nosec G404 -- gameplay randomness, not security
	g.player = NewPlayer(core.Vec2{}, g.tuning, g.rng)
	g.enemies = NewEnemySystem(g.tuning, g.rng)
	g.projectiles = NewProjectileSystem(g.tuning.Projectile.DespawnMargin)
	g.particles = NewParticleSystem(g.rng, g.tuning.Physics.Gravity)
	g.camera = NewCamera(g.tuning.Camera)
	g.state = NewState(g.tuning)

	g.tick = 0
	g.prev = core.NewInputFrame()
	g.events = g.events[:0]
	g.selected = 0
	g.screenTooSmall = rc.ScreenW < minScreenW || rc.ScreenH < minScreenH

	g.loadLevel(0)
	g.player.Reset(g.lvl.Spawn)
	g.camera.CenterOn(g.player.Pos)

	if g.arena {
		g.newGame()
	}
}

func (g *Game) loadTuning() config.Tuning {
	if g.fixedTuning != nil {
		return *g.fixedTuning
	}
	t, err := config.LoadTuning(configPath)
	if err != nil {
		log.Warn("using default tuning", "err", err)
		t = config.DefaultTuning()
	}
	if difficultyPreset != "" {
		config.ApplyPreset(&t, difficultyPreset)
	}
	return t
}

func (g *Game) loadPack() level.Pack {
	if g.arena {
		return level.Pack{Levels: []level.Level{arenaLevel(g.tuning)}, Source: IDArena}
	}
	if g.fixedPack != nil && g.fixedPack.Len() > 0 {
		return *g.fixedPack
	}
	d := level.DefaultsFrom(g.tuning)
	p, err := level.Load(levelsPath, d)
	if err != nil {
		log.Warn("using embedded levels", "err", err)
		p = level.Embedded(d)
	}
	return p
}

// arenaLevel is a wide flat field with a few ledges and no goal.
func arenaLevel(t config.Tuning) level.Level {
	gy := t.Game.GroundY
	return level.Level{
		Name:   "Arena",
		Ground: level.Ground{Y: gy, StartX: t.Game.GroundStartX, EndX: t.Game.GroundEndX},
		Platforms: []level.Platform{
			{Rect: core.NewRect(500, gy-160, 220, 20), Color: core.ColorPlatform, Type: level.PlatformOneWay},
			{Rect: core.NewRect(1100, gy-260, 260, 20), Color: core.ColorPlatform, Type: level.PlatformOneWay},
			{Rect: core.NewRect(1750, gy-160, 220, 20), Color: core.ColorPlatform, Type: level.PlatformOneWay},
		},
		Spawn: core.V(t.Camera.ViewportW/2, gy-t.Player.FeetOffset()),
	}
}

// loadLevel switches the level geometry without touching entities.
func (g *Game) loadLevel(i int) {
	n := g.pack.Len()
	if n > 0 {
		i = ((i % n) + n) % n
	}
	g.levelIdx = i
	g.lvl = g.pack.At(i)
	g.oneWay = g.lvl.Rects(level.PlatformOneWay)
	g.blocks = g.lvl.Rects(level.PlatformBlock)
}

// newGame starts a fresh run on the selected level.
func (g *Game) newGame() {
	g.state.NewGame()
	g.loadLevel(g.selected)
	g.enterLevel()
}

// enterLevel places every entity for the current level.
func (g *Game) enterLevel() {
	g.player.Reset(g.lvl.Spawn)
	g.projectiles.Clear()
	g.particles.Clear()
	g.enemies.Instantiate(g.lvl.Enemies, g.lvl.Ground.Y)
	g.camera.CenterOn(g.player.Pos)
	g.emit(EventLevelLoaded, g.player.Pos, g.levelIdx)
}

// StartLevel skips the menu and starts a new run on level i.
func (g *Game) StartLevel(i int) {
	g.selected = i
	g.newGame()
	g.selected = g.levelIdx
}

// Step advances the game by one fixed tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	return g.StepDT(in, g.rc.FrameDelta())
}

// StepDT advances the game by dt seconds.
func (g *Game) StepDT(in core.InputFrame, dt float64) core.StepResult {
	g.events = g.events[:0]
	if g.screenTooSmall {
		return core.StepResult{State: g.State()}
	}
	defer func() { g.prev = in.Clone() }()

	switch g.state.Mode {
	case ModeMenu:
		g.stepMenu(in)
		return core.StepResult{State: g.State()}
	case ModePaused:
		if in.Has(core.ActionPause) {
			g.state.Mode = ModePlaying
		} else if in.Has(core.ActionBack) {
			g.state.Mode = ModeMenu
		}
		return core.StepResult{State: g.State()}
	}

	// Game over freezes the world until restart or back.
	if g.state.GameOver() {
		if in.Has(core.ActionRestart) {
			g.newGame()
		} else if in.Has(core.ActionBack) {
			g.state.Mode = ModeMenu
		}
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionPause) {
		g.state.Mode = ModePaused
		return core.StepResult{State: g.State()}
	}

	g.tick++
	g.simulate(in, dt)

	if g.state.GameOver() {
		g.emit(EventGameOver, g.player.Pos, g.state.Score)
	}
	return core.StepResult{State: g.State()}
}

// stepMenu cycles the level selection on left/right presses and starts the
// run on confirm.
func (g *Game) stepMenu(in core.InputFrame) {
	n := g.pack.Len()
	if n == 0 {
		n = 1
	}
	if g.pressed(in, core.ActionLeft) {
		g.selected = (g.selected - 1 + n) % n
		g.loadLevel(g.selected)
	}
	if g.pressed(in, core.ActionRight) {
		g.selected = (g.selected + 1) % n
		g.loadLevel(g.selected)
	}
	if in.Has(core.ActionConfirm) {
		g.newGame()
	}
}

// pressed reports a held action that was not held on the previous step.
func (g *Game) pressed(in core.InputFrame, a core.Action) bool {
	return in.Has(a) && !g.prev.Has(a)
}

// simulate runs one frame of play. The order of the stages matters: each
// stage sees the results of the ones before it.
func (g *Game) simulate(in core.InputFrame, dt float64) {
	// 1. Input
	pin := PlayerInput{
		Left:  in.Has(core.ActionLeft),
		Right: in.Has(core.ActionRight),
		Jump:  in.Has(core.ActionJump),
		Dash:  in.Has(core.ActionDash),
	}
	if in.Has(core.ActionShoot) {
		g.shoot(in)
	}

	// 2. Player
	g.player.Update(dt, pin, g.oneWay, g.lvl.Ground)

	// 3. Solid blocks
	body := g.player.Rect()
	if i, ok := core.FirstOverlap(body, g.blocks); ok {
		g.player.Pos, g.player.VelY = core.ResolveBlockCollision(body, g.player.Pos, g.player.VelY, g.blocks[i])
	}

	// 4. Death and goal
	if g.player.IsDead() {
		g.state.PlayerHit()
		g.player.Reset(g.lvl.Spawn)
		g.particles.Emit(g.player.Pos, core.ColorDamage, burstDamage)
		g.emit(EventPlayerDied, g.player.Pos, g.state.Lives)
	}
	if !g.state.TransitionActive && g.player.FeetRect().Intersects(g.lvl.Goal) {
		n := g.pack.Len()
		if n == 0 {
			n = 1
		}
		g.state.StartTransition((g.levelIdx + 1) % n)
		g.emit(EventGoalReached, g.player.Pos, g.state.NextLevel)
	}

	// 5. Level transition
	if g.state.TickTransition(dt) {
		g.loadLevel(g.state.NextLevel)
		g.enterLevel()
		g.state.CompleteTransition()
	}

	// 6. Camera
	g.camera.Update(g.player.Pos)

	// 7. Projectiles
	g.projectiles.Update(dt, g.camera.Offset, g.camera.ViewW, g.camera.ViewH)

	// 8. Enemies
	g.enemies.Update(dt, g.oneWay, g.lvl.Ground.Y)
	g.enemies.UpdateSpawnTimer(dt)

	// 9. Projectiles against enemies
	for _, h := range g.enemies.HitByProjectiles(g.projectiles, g.tuning.Projectile.Radius, g.particles) {
		if h.Killed {
			g.state.Score += h.Points
			g.emit(EventEnemyKilled, h.Enemy.Pos, h.Points)
		} else {
			g.emit(EventEnemyHit, h.Enemy.Pos, h.Enemy.HP)
		}
	}

	// 10. Enemies against the player
	if !g.state.Invulnerable {
		if e, hit := g.enemies.TouchesPlayer(g.player.Rect(), g.particles); hit {
			g.state.PlayerHit()
			g.player.Reset(g.lvl.Spawn)
			g.emit(EventPlayerHit, e.Pos, g.state.Lives)
		}
	}

	// 11. Invulnerability
	g.state.TickInvulnerability(dt)

	// 12. Particles and landing dust
	g.particles.Update(dt)
	p := g.player
	if !p.PrevOnGround && p.OnGround && p.VelY == 0 {
		feetY := p.FeetY()
		if feetY >= g.lvl.Ground.Y {
			feetY = g.lvl.Ground.Y
		}
		at := core.V(p.Pos.X, feetY)
		g.particles.Emit(at, core.ColorLanding, burstLanding)
		g.emit(EventLanded, at, 0)
	}
	p.PrevOnGround = p.OnGround
}

// shoot fires towards the aim point, or straight ahead when there is none.
func (g *Game) shoot(in core.InputFrame) {
	aim := g.player.Pos.Add(core.V(float64(g.player.Facing)*aimReach, 0))
	if in.HasAim {
		aim = g.camera.ScreenToWorld(in.Aim)
	}
	proj, ok := g.player.Shoot(aim)
	if !ok {
		return
	}
	g.projectiles.Add(proj)
	g.particles.Emit(proj.Pos, core.ColorImpact, burstImpact)
	g.emit(EventShot, proj.Pos, 0)
}

func (g *Game) emit(kind EventKind, pos core.Vec2, value int) {
	g.events = append(g.events, Event{Kind: kind, Pos: pos, Value: value})
}

// Events returns what happened during the last step. The slice is reused by
// the next step.
func (g *Game) Events() []Event {
	return g.events
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.state.Score,
		GameOver: g.state.Mode != ModeMenu && g.state.GameOver(),
		Paused:   g.state.Mode == ModePaused,
		InMenu:   g.state.Mode == ModeMenu,
		Level:    g.lvl.Name,
	}
}

// ViewSize returns the world size of the camera view.
func (g *Game) ViewSize() (w, h float64) {
	if g.camera == nil {
		c := g.loadTuning().Camera
		return c.ViewportW, c.ViewportH
	}
	return g.camera.ViewW, g.camera.ViewH
}

// Resize adapts to a new screen size without restarting the run.
func (g *Game) Resize(w, h int) {
	g.rc.ScreenW, g.rc.ScreenH = w, h
	g.screenTooSmall = w < minScreenW || h < minScreenH
}

// Tuning returns the tuning in use.
func (g *Game) Tuning() config.Tuning {
	return g.tuning
}

// Levels returns the loaded level pack.
func (g *Game) Levels() level.Pack {
	return g.pack
}

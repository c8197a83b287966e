package platformer

import (
	"fmt"
	"hash/fnv"

	"github.com/vovakirdan/tui-platformer/internal/core"
	"github.com/vovakirdan/tui-platformer/internal/level"
)

// PlayerView is the read-only player state exposed to frontends.
type PlayerView struct {
	Pos          core.Vec2
	Rect         core.Rect
	VelY         float64
	Facing       int
	WalkCycle    float64
	Stamina      float64
	StaminaMax   float64
	AirJumpsLeft int
	OnGround     bool
	Dashing      bool
	Blinking     bool
	Recoil       float64
}

// EnemyView is the read-only state of one enemy.
type EnemyView struct {
	Pos      core.Vec2
	Kind     EnemyKind
	Dir      int
	Radius   float64
	HP       int
	HitFlash float64
}

// Snapshot is a copy of everything a frontend needs to draw one frame.
// Level shares its slices with the game and must not be modified.
type Snapshot struct {
	Tick uint64

	Mode     Mode
	Score    int
	Lives    int
	Victory  bool
	GameOver bool

	Invulnerable bool
	InvulnTimer  float64

	TransitionActive bool
	Phase            Phase
	TransitionTimer  float64
	TransitionAlpha  float64
	NextLevel        int

	LevelIndex int
	Selected   int
	LevelNames []string
	Level      level.Level

	Camera      core.Vec2
	Player      PlayerView
	Enemies     []EnemyView
	Projectiles []core.Vec2
	Particles   []Particle
}

// Snapshot returns the current game state.
func (g *Game) Snapshot() Snapshot {
	p := g.player
	snap := Snapshot{
		Tick:     g.tick,
		Mode:     g.state.Mode,
		Score:    g.state.Score,
		Lives:    g.state.Lives,
		Victory:  g.state.Victory,
		GameOver: g.state.GameOver(),

		Invulnerable: g.state.Invulnerable,
		InvulnTimer:  g.state.InvulnTimer,

		TransitionActive: g.state.TransitionActive,
		Phase:            g.state.Phase,
		TransitionTimer:  g.state.TransitionTimer,
		TransitionAlpha:  g.state.TransitionAlpha(),
		NextLevel:        g.state.NextLevel,

		LevelIndex: g.levelIdx,
		Selected:   g.selected,
		LevelNames: g.pack.Names(),
		Level:      g.lvl,

		Camera: g.camera.Offset,
		Player: PlayerView{
			Pos:          p.Pos,
			Rect:         p.Rect(),
			VelY:         p.VelY,
			Facing:       p.Facing,
			WalkCycle:    p.WalkCycle,
			Stamina:      p.Stamina,
			StaminaMax:   g.tuning.Stamina.Max,
			AirJumpsLeft: p.AirJumpsLeft,
			OnGround:     p.OnGround,
			Dashing:      p.Dashing(),
			Blinking:     p.Blinking(),
			Recoil:       p.Recoil,
		},
	}

	snap.Enemies = make([]EnemyView, len(g.enemies.Enemies))
	for i, e := range g.enemies.Enemies {
		snap.Enemies[i] = EnemyView{
			Pos:      e.Pos,
			Kind:     e.Kind,
			Dir:      e.Dir,
			Radius:   e.Radius,
			HP:       e.HP,
			HitFlash: e.HitFlash,
		}
	}

	snap.Projectiles = make([]core.Vec2, len(g.projectiles.Projectiles))
	for i, pr := range g.projectiles.Projectiles {
		snap.Projectiles[i] = pr.Pos
	}

	snap.Particles = append([]Particle(nil), g.particles.Particles...)
	return snap
}

// Hash returns an FNV-1a hash of the simulation state for determinism
// testing. Floats are hashed by their exact bits.
func (snap *Snapshot) Hash() uint64 {
	h := fnv.New64a()

	fmt.Fprintf(h, "T:%d;M:%d;S:%d;L:%d;V:%v;I:%v:%b;",
		snap.Tick, snap.Mode, snap.Score, snap.Lives, snap.Victory,
		snap.Invulnerable, snap.InvulnTimer)
	fmt.Fprintf(h, "X:%v:%d:%b:%d;LV:%d;C:%b:%b;",
		snap.TransitionActive, snap.Phase, snap.TransitionTimer, snap.NextLevel,
		snap.LevelIndex, snap.Camera.X, snap.Camera.Y)

	p := snap.Player
	fmt.Fprintf(h, "P:%b:%b:%b:%d:%b:%d:%v;",
		p.Pos.X, p.Pos.Y, p.VelY, p.Facing, p.Stamina, p.AirJumpsLeft, p.OnGround)

	fmt.Fprintf(h, "E:")
	for _, e := range snap.Enemies {
		fmt.Fprintf(h, "%d:%b:%b:%d:%d,", e.Kind, e.Pos.X, e.Pos.Y, e.Dir, e.HP)
	}

	fmt.Fprintf(h, ";B:")
	for _, pr := range snap.Projectiles {
		fmt.Fprintf(h, "%b:%b,", pr.X, pr.Y)
	}

	fmt.Fprintf(h, ";F:")
	for _, pa := range snap.Particles {
		fmt.Fprintf(h, "%b:%b:%b,", pa.Pos.X, pa.Pos.Y, pa.Life)
	}

	return h.Sum64()
}

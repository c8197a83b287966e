package platformer

import (
	"math"
	"math/rand"
	"testing"

	"github.com/vovakirdan/tui-platformer/internal/config"
	"github.com/vovakirdan/tui-platformer/internal/core"
	"github.com/vovakirdan/tui-platformer/internal/level"
)

func fptr(v float64) *float64 { return &v }
func iptr(v int) *int         { return &v }

func newTestEnemies(t *testing.T) (*EnemySystem, *ParticleSystem) {
	t.Helper()
	tune := config.DefaultTuning()
	rng := rand.New(rand.NewSource(42))
	return NewEnemySystem(tune, rng), NewParticleSystem(rng, tune.Physics.Gravity)
}

func TestCanonicalKind(t *testing.T) {
	tests := []struct {
		name     string
		expected EnemyKind
	}{
		{"tank", KindTank},
		{"FAST", KindFast},
		{" flyer ", KindFlyer},
		{"basic", KindBasic},
		{"walker", KindBasic},
		{"ground", KindBasic},
		{"unknown_string", KindBasic},
		{"", KindBasic},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := CanonicalKind(tc.name); got != tc.expected {
				t.Errorf("CanonicalKind(%q) = %v, expected %v", tc.name, got, tc.expected)
			}
		})
	}
}

func TestNewEnemyFromTemplateDefaults(t *testing.T) {
	tune := config.DefaultTuning().Enemies

	tests := []struct {
		kind   string
		radius float64
		speed  float64
		hp     int
	}{
		{"unknown_string", 20, 100, 1},
		{"basic", 20, 100, 1},
		{"tank", 32, 60, 3},
		{"fast", 18, 140, 1},
		{"flyer", 22, 110, 1},
	}

	for _, tc := range tests {
		t.Run(tc.kind, func(t *testing.T) {
			e := NewEnemyFromTemplate(level.EnemyTemplate{X: 10, Y: 20, Type: tc.kind}, 3, tune)
			if e.Radius != tc.radius || e.Speed != tc.speed || e.HP != tc.hp {
				t.Errorf("got radius=%v speed=%v hp=%d, expected %v/%v/%d",
					e.Radius, e.Speed, e.HP, tc.radius, tc.speed, tc.hp)
			}
			if e.Dir != 1 || e.TemplateID != 3 || e.Pos != core.V(10, 20) {
				t.Errorf("dir=%d id=%d pos=%v", e.Dir, e.TemplateID, e.Pos)
			}
		})
	}
}

func TestNewEnemyFromTemplateOverrides(t *testing.T) {
	tune := config.DefaultTuning().Enemies

	t.Run("width and height give the radius", func(t *testing.T) {
		e := NewEnemyFromTemplate(level.EnemyTemplate{Type: "tank", Width: fptr(40), Height: fptr(60)}, 0, tune)
		if e.Radius != 30 {
			t.Errorf("radius = %v, expected 30", e.Radius)
		}
	})

	t.Run("width alone keeps the default", func(t *testing.T) {
		e := NewEnemyFromTemplate(level.EnemyTemplate{Type: "tank", Width: fptr(80)}, 0, tune)
		if e.Radius != 32 {
			t.Errorf("radius = %v, expected 32", e.Radius)
		}
	})

	t.Run("explicit radius wins", func(t *testing.T) {
		e := NewEnemyFromTemplate(level.EnemyTemplate{Radius: fptr(12), Width: fptr(40), Height: fptr(60)}, 0, tune)
		if e.Radius != 12 {
			t.Errorf("radius = %v, expected 12", e.Radius)
		}
	})

	t.Run("speed hp and dir", func(t *testing.T) {
		e := NewEnemyFromTemplate(level.EnemyTemplate{Speed: fptr(0), HP: iptr(4), Dir: fptr(-0.5)}, 0, tune)
		if e.Speed != 0 || e.HP != 4 || e.Dir != -1 {
			t.Errorf("speed=%v hp=%d dir=%d", e.Speed, e.HP, e.Dir)
		}
	})

	t.Run("hp below one is raised to one", func(t *testing.T) {
		for _, hp := range []int{0, -3} {
			e := NewEnemyFromTemplate(level.EnemyTemplate{Type: "tank", HP: iptr(hp)}, 0, tune)
			if e.HP != 1 {
				t.Errorf("template hp %d gave HP %d, expected 1", hp, e.HP)
			}
		}
	})

	t.Run("flyer extras", func(t *testing.T) {
		e := NewEnemyFromTemplate(level.EnemyTemplate{Y: 300, Type: "flyer"}, 0, tune)
		if e.BaseY != 300 || e.FlyPhase != 0 {
			t.Errorf("base_y=%v phase=%v, expected 300/0", e.BaseY, e.FlyPhase)
		}
		e = NewEnemyFromTemplate(level.EnemyTemplate{Y: 300, Type: "flyer", BaseY: fptr(250), FlyPhase: fptr(1.5), VelY: fptr(9)}, 0, tune)
		if e.BaseY != 250 || e.FlyPhase != 1.5 || e.VelY != 0 {
			t.Errorf("base_y=%v phase=%v vel_y=%v", e.BaseY, e.FlyPhase, e.VelY)
		}
	})

	t.Run("walker vel_y", func(t *testing.T) {
		e := NewEnemyFromTemplate(level.EnemyTemplate{Type: "walker", VelY: fptr(-50)}, 0, tune)
		if e.VelY != -50 || e.Kind != KindBasic {
			t.Errorf("vel_y=%v kind=%v", e.VelY, e.Kind)
		}
	})
}

func TestInstantiateFromTemplates(t *testing.T) {
	s, _ := newTestEnemies(t)
	templates := []level.EnemyTemplate{
		{X: 100, Y: 600, Type: "tank"},
		{X: 200, Y: 600, Type: "fast"},
		{X: 300, Y: 400, Type: "flyer"},
	}

	s.Instantiate(templates, 680)

	if len(s.Enemies) != 3 || s.Cap() != 3 {
		t.Fatalf("got %d enemies, cap %d", len(s.Enemies), s.Cap())
	}
	for i, e := range s.Enemies {
		if e.TemplateID != i {
			t.Errorf("enemy %d has template id %d", i, e.TemplateID)
		}
	}
	if s.SpawnTimer() != 0 {
		t.Errorf("spawn timer = %v, expected 0", s.SpawnTimer())
	}
}

func TestInstantiateKeepsHPPositive(t *testing.T) {
	s, _ := newTestEnemies(t)
	s.Instantiate([]level.EnemyTemplate{
		{X: 100, Y: 600, Type: "fast", HP: iptr(0)},
		{X: 200, Y: 600, Type: "basic", HP: iptr(-2)},
	}, 680)

	if len(s.Enemies) != 2 {
		t.Fatalf("got %d enemies, expected 2", len(s.Enemies))
	}
	for i, e := range s.Enemies {
		if e.HP < 1 {
			t.Errorf("enemy %d entered the roster with HP %d", i, e.HP)
		}
	}
}

func TestInstantiateProcedural(t *testing.T) {
	s, _ := newTestEnemies(t)
	tune := config.DefaultTuning()
	const groundY = 680

	s.Instantiate(nil, groundY)

	if len(s.Enemies) != tune.Game.MaxEnemies || s.Cap() != tune.Game.MaxEnemies {
		t.Fatalf("got %d enemies, cap %d, expected %d", len(s.Enemies), s.Cap(), tune.Game.MaxEnemies)
	}

	// Roll many to cover every kind.
	for i := 0; i < 200; i++ {
		e := s.randomEnemy()
		if e.Pos.X < 100 || e.Pos.X > 2500 {
			t.Errorf("x = %v outside 100..2500", e.Pos.X)
		}
		if e.Dir != 1 && e.Dir != -1 {
			t.Errorf("dir = %d", e.Dir)
		}
		if e.TemplateID != noTemplate {
			t.Errorf("template id = %d", e.TemplateID)
		}
		switch e.Kind {
		case KindFlyer:
			if e.BaseY < groundY-280 || e.BaseY > groundY-140 {
				t.Errorf("flyer base_y %v outside band", e.BaseY)
			}
			if e.FlyPhase < 0 || e.FlyPhase >= 6.28 {
				t.Errorf("flyer phase %v", e.FlyPhase)
			}
		case KindTank, KindFast:
			if e.Pos.Y+e.Radius != groundY {
				t.Errorf("%v feet at %v, expected on the ground", e.Kind, e.Pos.Y+e.Radius)
			}
		default:
			t.Errorf("procedural kind %v", e.Kind)
		}
	}
}

func TestEnemyPatrolCorridor(t *testing.T) {
	s, _ := newTestEnemies(t)
	tune := config.DefaultTuning().Enemies

	// The corridor is fixed, even for ground running far past it.
	s.Enemies = []Enemy{
		{Pos: core.V(tune.PatrolMinX+1, 660), Dir: -1, Kind: KindBasic, Radius: 20, Speed: 100},
		{Pos: core.V(tune.PatrolMaxX-1, 660), Dir: 1, Kind: KindBasic, Radius: 20, Speed: 100},
		{Pos: core.V(1000, 660), Dir: 1, Kind: KindBasic, Radius: 20, Speed: 100},
	}

	s.Update(frame60, nil, 680)

	if s.Enemies[0].Dir != 1 {
		t.Errorf("enemy past min x kept dir %d", s.Enemies[0].Dir)
	}
	if s.Enemies[1].Dir != -1 {
		t.Errorf("enemy past max x kept dir %d", s.Enemies[1].Dir)
	}
	if s.Enemies[2].Dir != 1 {
		t.Errorf("enemy inside the corridor turned")
	}
	if want := 1000 + 100*frame60; math.Abs(s.Enemies[2].Pos.X-want) > 1e-9 {
		t.Errorf("x = %v, expected %v", s.Enemies[2].Pos.X, want)
	}
}

func TestEnemyFlyerBob(t *testing.T) {
	s, _ := newTestEnemies(t)
	s.Enemies = []Enemy{{Pos: core.V(500, 300), Dir: 1, Kind: KindFlyer, Radius: 22, Speed: 0, BaseY: 300, FlyPhase: 0.5}}

	s.Update(0.25, nil, 680)

	e := s.Enemies[0]
	if e.FlyPhase != 1.0 {
		t.Errorf("phase = %v, expected 1.0", e.FlyPhase)
	}
	if want := 300 + math.Sin(1.0)*25; e.Pos.Y != want {
		t.Errorf("y = %v, expected %v", e.Pos.Y, want)
	}
	if e.VelY != 0 {
		t.Errorf("flyer picked up vertical velocity %v", e.VelY)
	}
}

func TestEnemyWalkerGravityAndPlatforms(t *testing.T) {
	s, _ := newTestEnemies(t)
	plat := core.NewRect(400, 500, 200, 20)

	s.Enemies = []Enemy{
		{Pos: core.V(100, 300), Dir: 1, Kind: KindBasic, Radius: 20}, // falls to ground
		{Pos: core.V(500, 440), Dir: 1, Kind: KindTank, Radius: 32},  // lands on the platform
	}

	for i := 0; i < 120; i++ {
		s.Update(frame60, []core.Rect{plat}, 680)
	}

	if got := s.Enemies[0].Pos.Y + s.Enemies[0].Radius; got != 680 {
		t.Errorf("walker feet at %v, expected ground 680", got)
	}
	if got := s.Enemies[1].Pos.Y + s.Enemies[1].Radius; got != plat.Top() {
		t.Errorf("tank feet at %v, expected platform top %v", got, plat.Top())
	}
	for i, e := range s.Enemies {
		if e.VelY != 0 {
			t.Errorf("enemy %d VelY = %v after settling", i, e.VelY)
		}
	}
}

func TestEnemyHitFlashDecays(t *testing.T) {
	s, _ := newTestEnemies(t)
	s.Enemies = []Enemy{{Pos: core.V(500, 300), Kind: KindFlyer, Radius: 22, BaseY: 300, HitFlash: 0.2, Dir: 1}}

	s.Update(0.15, nil, 680)
	if math.Abs(s.Enemies[0].HitFlash-0.05) > 1e-9 {
		t.Errorf("flash = %v, expected 0.05", s.Enemies[0].HitFlash)
	}
	s.Update(0.15, nil, 680)
	if s.Enemies[0].HitFlash != 0 {
		t.Errorf("flash = %v, expected 0", s.Enemies[0].HitFlash)
	}
}

func TestHitByProjectiles(t *testing.T) {
	tune := config.DefaultTuning()

	tests := []struct {
		name       string
		enemy      Enemy
		wantKilled bool
		wantPoints int
		wantHP     int
	}{
		{"fast dies", Enemy{Pos: core.V(100, 100), Kind: KindFast, Radius: 18, HP: 1}, true, 1, 0},
		{"basic dies", Enemy{Pos: core.V(100, 100), Kind: KindBasic, Radius: 20, HP: 1}, true, 1, 0},
		{"tank dies", Enemy{Pos: core.V(100, 100), Kind: KindTank, Radius: 32, HP: 1}, true, 2, 0},
		{"tank survives", Enemy{Pos: core.V(100, 100), Kind: KindTank, Radius: 32, HP: 3}, false, 0, 2},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s, fx := newTestEnemies(t)
			s.Enemies = []Enemy{tc.enemy}
			ps := NewProjectileSystem(200)
			ps.Add(Projectile{Pos: core.V(110, 100)})

			hits := s.HitByProjectiles(ps, tune.Projectile.Radius, fx)

			if len(hits) != 1 {
				t.Fatalf("got %d hits, expected 1", len(hits))
			}
			h := hits[0]
			if h.Killed != tc.wantKilled || h.Points != tc.wantPoints || h.Enemy.HP != tc.wantHP {
				t.Errorf("hit = %+v", h)
			}
			if ps.Count() != 0 {
				t.Errorf("projectile not consumed")
			}
			if tc.wantKilled {
				if len(s.Enemies) != 0 {
					t.Error("dead enemy still in the roster")
				}
				if fx.Count() != burstExplosion {
					t.Errorf("particles = %d, expected %d", fx.Count(), burstExplosion)
				}
			} else {
				if s.Enemies[0].HitFlash != tune.Enemies.HitFlash {
					t.Errorf("flash = %v", s.Enemies[0].HitFlash)
				}
				if fx.Count() != 0 {
					t.Errorf("survivor emitted %d particles", fx.Count())
				}
			}
		})
	}
}

func TestHitByProjectilesOneEnemyPerShot(t *testing.T) {
	s, fx := newTestEnemies(t)
	s.Enemies = []Enemy{
		{Pos: core.V(100, 100), Kind: KindBasic, Radius: 20, HP: 1},
		{Pos: core.V(105, 100), Kind: KindBasic, Radius: 20, HP: 1},
	}
	ps := NewProjectileSystem(200)
	ps.Add(Projectile{Pos: core.V(102, 100)})
	ps.Add(Projectile{Pos: core.V(900, 900)}) // Miss

	hits := s.HitByProjectiles(ps, 6, fx)

	if len(hits) != 1 {
		t.Fatalf("got %d hits, expected 1", len(hits))
	}
	if len(s.Enemies) != 1 || s.Enemies[0].Pos.X != 105 {
		t.Errorf("expected only the first enemy removed, got %+v", s.Enemies)
	}
	if ps.Count() != 1 || ps.Projectiles[0].Pos != core.V(900, 900) {
		t.Errorf("expected the missing projectile to remain, got %+v", ps.Projectiles)
	}
}

func TestTouchesPlayer(t *testing.T) {
	s, fx := newTestEnemies(t)
	player := core.NewRect(380, 570, 40, 110)

	s.Enemies = []Enemy{
		{Pos: core.V(100, 660), Kind: KindBasic, Radius: 20},
		{Pos: core.V(430, 660), Kind: KindFast, Radius: 18},
		{Pos: core.V(400, 660), Kind: KindTank, Radius: 32},
	}

	e, hit := s.TouchesPlayer(player, fx)
	if !hit {
		t.Fatal("expected a touch")
	}
	if e.Kind != KindFast {
		t.Errorf("first touching enemy = %v, expected fast", e.Kind)
	}
	if fx.Count() != burstDamage {
		t.Errorf("particles = %d, expected %d", fx.Count(), burstDamage)
	}

	s.Enemies = s.Enemies[:1]
	if _, hit := s.TouchesPlayer(player, fx); hit {
		t.Error("distant enemy touched the player")
	}
}

func TestSpawnTimerTemplates(t *testing.T) {
	s, _ := newTestEnemies(t)
	cd := config.DefaultTuning().Game.SpawnCooldown
	templates := []level.EnemyTemplate{
		{X: 100, Y: 600, Type: "basic"},
		{X: 200, Y: 600, Type: "fast"},
		{X: 300, Y: 600, Type: "tank"},
	}
	s.Instantiate(templates, 680)

	// All alive: the attempt fails and the timer stays expired.
	if s.UpdateSpawnTimer(frame60) {
		t.Fatal("spawned with every template alive")
	}
	if s.SpawnTimer() > 0 {
		t.Errorf("timer = %v after a failed attempt", s.SpawnTimer())
	}

	// Kill templates 0 and 1; the lowest id comes back first.
	s.Enemies = s.Enemies[2:]
	if !s.UpdateSpawnTimer(frame60) {
		t.Fatal("expected a spawn")
	}
	if got := s.Enemies[len(s.Enemies)-1].TemplateID; got != 0 {
		t.Errorf("spawned template %d, expected 0", got)
	}
	if s.SpawnTimer() != cd {
		t.Errorf("timer = %v, expected cooldown %v", s.SpawnTimer(), cd)
	}

	// The cooldown blocks the next spawn.
	if s.UpdateSpawnTimer(frame60) {
		t.Error("spawned during cooldown")
	}
	for i := 0; i < int(cd*60)+1; i++ {
		s.UpdateSpawnTimer(frame60)
	}
	if len(s.Enemies) != 3 {
		t.Fatalf("got %d enemies, expected all 3 templates back", len(s.Enemies))
	}
	seen := map[int]bool{}
	for _, e := range s.Enemies {
		if seen[e.TemplateID] {
			t.Errorf("template %d alive twice", e.TemplateID)
		}
		seen[e.TemplateID] = true
	}
}

func TestSpawnTimerProcedural(t *testing.T) {
	s, _ := newTestEnemies(t)
	s.Instantiate(nil, 680)
	limit := s.Cap()

	if s.UpdateSpawnTimer(frame60) {
		t.Fatal("spawned at the cap")
	}

	s.Enemies = s.Enemies[:limit-1]
	if !s.UpdateSpawnTimer(frame60) {
		t.Fatal("expected a spawn below the cap")
	}
	if len(s.Enemies) != limit {
		t.Errorf("got %d enemies, expected %d", len(s.Enemies), limit)
	}
}

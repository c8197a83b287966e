package platformer

import (
	"math"
	"math/rand"
	"strings"

	"github.com/vovakirdan/tui-platformer/internal/config"
	"github.com/vovakirdan/tui-platformer/internal/core"
	"github.com/vovakirdan/tui-platformer/internal/level"
)

// EnemyKind is the closed set of enemy variants.
type EnemyKind int

const (
	KindBasic EnemyKind = iota // Walker, the fallback for unknown names
	KindTank                   // Big, slow, three hits
	KindFast                   // Small and quick
	KindFlyer                  // Ignores gravity, bobs on a sine wave
)

// String returns the level-file name of the kind.
func (k EnemyKind) String() string {
	switch k {
	case KindTank:
		return "tank"
	case KindFast:
		return "fast"
	case KindFlyer:
		return "flyer"
	default:
		return "basic"
	}
}

// CanonicalKind maps a level-file type name to a kind.
// "walker" and "ground" are aliases of basic; anything unknown is basic.
func CanonicalKind(name string) EnemyKind {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "tank":
		return KindTank
	case "fast":
		return KindFast
	case "flyer":
		return KindFlyer
	default:
		return KindBasic
	}
}

// noTemplate marks an enemy that was not created from a level template.
const noTemplate = -1

// Enemy is one live enemy.
//
// Walkers (basic, tank, fast) use VelY. Flyers use FlyPhase and BaseY
// instead and keep VelY at 0.
type Enemy struct {
	Pos        core.Vec2
	Dir        int // -1 or +1
	Kind       EnemyKind
	Radius     float64
	Speed      float64
	HP         int
	HitFlash   float64
	TemplateID int // Index into the level's templates, or -1

	VelY float64

	FlyPhase float64
	BaseY    float64
}

// Rect returns the enemy's bounding square.
func (e *Enemy) Rect() core.Rect {
	return core.NewRect(e.Pos.X-e.Radius, e.Pos.Y-e.Radius, 2*e.Radius, 2*e.Radius)
}

// statsFor returns the tuning defaults for a kind.
func statsFor(k EnemyKind, t config.EnemyTuning) config.EnemyStats {
	switch k {
	case KindTank:
		return t.Tank
	case KindFast:
		return t.Fast
	case KindFlyer:
		return t.Flyer
	default:
		return t.Basic
	}
}

// NewEnemyFromTemplate builds an enemy from a level template.
// The radius is the template radius, else half the larger of width and height
// when both are given, else the kind default.
func NewEnemyFromTemplate(tpl level.EnemyTemplate, id int, t config.EnemyTuning) Enemy {
	kind := CanonicalKind(tpl.Type)
	stats := statsFor(kind, t)

	e := Enemy{
		Pos:        core.V(tpl.X, tpl.Y),
		Dir:        1,
		Kind:       kind,
		Radius:     stats.Radius,
		Speed:      stats.Speed,
		HP:         stats.HP,
		TemplateID: id,
	}

	switch {
	case tpl.Radius != nil:
		e.Radius = *tpl.Radius
	case tpl.Width != nil && tpl.Height != nil:
		e.Radius = math.Max(*tpl.Width, *tpl.Height) / 2
	}
	if tpl.Speed != nil {
		e.Speed = *tpl.Speed
	}
	if tpl.HP != nil {
		e.HP = *tpl.HP
	}
	e.HP = max(1, e.HP)
	if tpl.Dir != nil && *tpl.Dir < 0 {
		e.Dir = -1
	}

	if kind == KindFlyer {
		if tpl.FlyPhase != nil {
			e.FlyPhase = *tpl.FlyPhase
		}
		e.BaseY = tpl.Y
		if tpl.BaseY != nil {
			e.BaseY = *tpl.BaseY
		}
	} else if tpl.VelY != nil {
		e.VelY = *tpl.VelY
	}

	return e
}

// EnemySystem owns the enemy roster and the spawn policy.
type EnemySystem struct {
	Enemies []Enemy

	templates  []level.EnemyTemplate
	cap        int
	spawnTimer float64

	tuning  config.EnemyTuning
	maxRand int
	spawnCD float64
	gravity float64
	groundY float64 // Ground used to place procedural walkers
	rng     *rand.Rand
}

// NewEnemySystem creates an empty enemy system.
func NewEnemySystem(t config.Tuning, rng *rand.Rand) *EnemySystem {
	return &EnemySystem{
		tuning:  t.Enemies,
		maxRand: t.Game.MaxEnemies,
		spawnCD: t.Game.SpawnCooldown,
		gravity: t.Physics.Gravity,
		groundY: t.Game.GroundY,
		rng:     rng,
	}
}

// Instantiate replaces the roster for a new level. With templates, one enemy
// per template is created and the cap is the template count. Without
// templates the roster is filled with random enemies up to the global cap.
// The spawn timer restarts at 0.
func (s *EnemySystem) Instantiate(templates []level.EnemyTemplate, groundY float64) {
	s.templates = templates
	s.groundY = groundY
	s.Enemies = s.Enemies[:0]
	s.spawnTimer = 0

	if len(templates) > 0 {
		for i, tpl := range templates {
			s.Enemies = append(s.Enemies, NewEnemyFromTemplate(tpl, i, s.tuning))
		}
		s.cap = len(templates)
		return
	}

	s.cap = s.maxRand
	for i := 0; i < s.cap; i++ {
		s.Enemies = append(s.Enemies, s.randomEnemy())
	}
}

// Cap returns the current population cap.
func (s *EnemySystem) Cap() int {
	return s.cap
}

// SpawnTimer returns the remaining spawn cooldown.
func (s *EnemySystem) SpawnTimer() float64 {
	return s.spawnTimer
}

// randomEnemy rolls a procedural enemy: 30% tank, 40% fast, 30% flyer.
// Walkers start standing on the ground; flyers hover 140-280px above it.
func (s *EnemySystem) randomEnemy() Enemy {
	x := float64(100 + s.rng.Intn(2401)) // 100..2500

	var kind EnemyKind
	switch r := s.rng.Float64(); {
	case r < 0.3:
		kind = KindTank
	case r < 0.7:
		kind = KindFast
	default:
		kind = KindFlyer
	}

	stats := statsFor(kind, s.tuning)
	e := Enemy{
		Kind:       kind,
		Radius:     stats.Radius,
		Speed:      stats.Speed,
		HP:         stats.HP,
		TemplateID: noTemplate,
	}

	if kind == KindFlyer {
		e.BaseY = s.groundY - float64(140+s.rng.Intn(141)) // ground-280..ground-140
		e.FlyPhase = s.rng.Float64() * 6.28
		e.Pos = core.V(x, e.BaseY)
	} else {
		e.Pos = core.V(x, s.groundY-e.Radius)
	}

	e.Dir = 1
	if s.rng.Intn(2) == 0 {
		e.Dir = -1
	}
	return e
}

// Update moves every enemy. Enemies patrol a fixed corridor independent of
// the level width. Walkers fall onto the ground line and land on one-way
// platforms while descending; flyers bob around BaseY.
func (s *EnemySystem) Update(dt float64, oneWay []core.Rect, groundY float64) {
	t := s.tuning
	for i := range s.Enemies {
		e := &s.Enemies[i]

		e.Pos.X += float64(e.Dir) * e.Speed * dt
		if e.Pos.X < t.PatrolMinX {
			e.Dir = 1
		}
		if e.Pos.X > t.PatrolMaxX {
			e.Dir = -1
		}

		if e.Kind == KindFlyer {
			e.FlyPhase += dt * t.FlyRate
			e.Pos.Y = e.BaseY + math.Sin(e.FlyPhase)*t.FlyAmplitude
		} else {
			e.VelY += s.gravity * dt
			e.Pos.Y += e.VelY * dt

			if e.Pos.Y+e.Radius > groundY {
				e.Pos.Y = groundY - e.Radius
				e.VelY = 0
			}

			if e.VelY >= 0 {
				feetY := e.Pos.Y + e.Radius
				if j, ok := core.FirstOverlap(e.Rect(), oneWay); ok {
					top := oneWay[j].Top()
					if feetY-e.VelY*dt <= top+2 {
						e.Pos.Y = top - e.Radius
						e.VelY = 0
					}
				}
			}
		}

		if e.HitFlash > 0 {
			e.HitFlash = math.Max(0, e.HitFlash-dt)
		}
	}
}

// Hit records one projectile striking an enemy.
type Hit struct {
	Enemy  Enemy // State right after the hit
	Killed bool
	Points int // Awarded for a kill, else 0
}

// HitByProjectiles resolves projectile/enemy contacts. Each projectile hits
// at most one enemy and is consumed by the hit. Enemies reaching 0 HP burst
// into particles and leave the roster. Hits are returned in resolution order.
func (s *EnemySystem) HitByProjectiles(ps *ProjectileSystem, projRadius float64, fx *ParticleSystem) []Hit {
	var hits []Hit
	for pi := 0; pi < len(ps.Projectiles); {
		proj := ps.Projectiles[pi]
		consumed := false

		for ei := range s.Enemies {
			e := &s.Enemies[ei]
			if !core.PointCircleHit(proj.Pos, projRadius, e.Pos, e.Radius) {
				continue
			}

			e.HP--
			e.HitFlash = s.tuning.HitFlash
			hit := Hit{Enemy: *e}
			if e.HP <= 0 {
				fx.Emit(e.Pos, core.ColorExplosion, burstExplosion)
				hit.Killed = true
				hit.Points = statsFor(e.Kind, s.tuning).Score
				s.Enemies = append(s.Enemies[:ei], s.Enemies[ei+1:]...)
			}
			hits = append(hits, hit)
			ps.Remove(pi)
			consumed = true
			break
		}

		if !consumed {
			pi++
		}
	}
	return hits
}

// TouchesPlayer reports whether any enemy circle overlaps the player's
// rectangle. The first touching enemy emits damage particles; the rest are
// not checked.
func (s *EnemySystem) TouchesPlayer(player core.Rect, fx *ParticleSystem) (Enemy, bool) {
	for _, e := range s.Enemies {
		if core.CircleRectIntersects(e.Pos, e.Radius, player) {
			fx.Emit(e.Pos, core.ColorDamage, burstDamage)
			return e, true
		}
	}
	return Enemy{}, false
}

// UpdateSpawnTimer counts the cooldown down and tries to spawn when it runs
// out. Only a successful spawn restarts the cooldown; otherwise the attempt
// repeats next frame.
func (s *EnemySystem) UpdateSpawnTimer(dt float64) bool {
	s.spawnTimer -= dt
	if s.spawnTimer > 0 {
		return false
	}
	if !s.spawn() {
		return false
	}
	s.spawnTimer = s.spawnCD
	return true
}

// spawn adds the lowest-indexed template that has no live instance, or a
// random enemy when below the procedural cap.
func (s *EnemySystem) spawn() bool {
	if len(s.templates) > 0 {
		alive := make(map[int]bool, len(s.Enemies))
		for _, e := range s.Enemies {
			if e.TemplateID != noTemplate {
				alive[e.TemplateID] = true
			}
		}
		for id, tpl := range s.templates {
			if !alive[id] {
				s.Enemies = append(s.Enemies, NewEnemyFromTemplate(tpl, id, s.tuning))
				return true
			}
		}
		return false
	}

	if len(s.Enemies) < s.cap {
		s.Enemies = append(s.Enemies, s.randomEnemy())
		return true
	}
	return false
}

// Clear removes all enemies.
func (s *EnemySystem) Clear() {
	s.Enemies = s.Enemies[:0]
}

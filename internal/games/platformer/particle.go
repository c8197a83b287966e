package platformer

import (
	"math"
	"math/rand"

	"github.com/vovakirdan/tui-platformer/internal/core"
)

// Particle tuning. Particles are cosmetic and live about half a second.
const (
	particleMinSpeed  = 50.0
	particleMaxSpeed  = 150.0
	particleDecayRate = 2.0 // Life lost per second
	particleGravity   = 0.5 // Fraction of world gravity
)

// Burst sizes for the feedback effects.
const (
	burstExplosion = 12
	burstDamage    = 15
	burstImpact    = 6
	burstLanding   = 10
)

// Particle is a short-lived colored point.
type Particle struct {
	Pos   core.Vec2
	Vel   core.Vec2
	Color core.RGB
	Life  float64 // (0, 1], removed at <= 0
}

// ParticleSystem owns every live particle.
type ParticleSystem struct {
	Particles []Particle

	rng     *rand.Rand
	gravity float64
}

// NewParticleSystem creates an empty particle system drawing directions and
// speeds from rng.
func NewParticleSystem(rng *rand.Rand, gravity float64) *ParticleSystem {
	return &ParticleSystem{rng: rng, gravity: gravity}
}

// Emit spawns count particles at origin flying in random directions.
func (s *ParticleSystem) Emit(origin core.Vec2, color core.RGB, count int) {
	for i := 0; i < count; i++ {
		angle := s.rng.Float64() * 2 * math.Pi
		speed := particleMinSpeed + s.rng.Float64()*(particleMaxSpeed-particleMinSpeed)
		s.Particles = append(s.Particles, Particle{
			Pos:   origin,
			Vel:   core.V(math.Cos(angle)*speed, math.Sin(angle)*speed),
			Color: color,
			Life:  1.0,
		})
	}
}

// Update moves particles, pulls them down and removes the expired ones.
func (s *ParticleSystem) Update(dt float64) {
	alive := s.Particles[:0]
	for _, p := range s.Particles {
		p.Pos = p.Pos.Add(p.Vel.Scale(dt))
		p.Vel.Y += s.gravity * particleGravity * dt
		p.Life -= dt * particleDecayRate
		if p.Life > 0 {
			alive = append(alive, p)
		}
	}
	s.Particles = alive
}

// Clear removes all particles.
func (s *ParticleSystem) Clear() {
	s.Particles = s.Particles[:0]
}

// Count returns the number of live particles.
func (s *ParticleSystem) Count() int {
	return len(s.Particles)
}

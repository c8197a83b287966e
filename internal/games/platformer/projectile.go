package platformer

import (
	"github.com/vovakirdan/tui-platformer/internal/core"
)

// Projectile is a player shot flying in a straight line.
type Projectile struct {
	Pos core.Vec2
	Vel core.Vec2
}

// ProjectileSystem owns every live projectile. Projectiles have no lifetime;
// they disappear when they leave the view (plus a margin) or hit an enemy.
type ProjectileSystem struct {
	Projectiles []Projectile

	margin float64
}

// NewProjectileSystem creates an empty system despawning shots margin pixels
// outside the view.
func NewProjectileSystem(margin float64) *ProjectileSystem {
	return &ProjectileSystem{margin: margin}
}

// Add appends a projectile.
func (s *ProjectileSystem) Add(p Projectile) {
	s.Projectiles = append(s.Projectiles, p)
}

// Update integrates positions and drops projectiles outside the view
// [offset, offset+view] expanded by the margin.
func (s *ProjectileSystem) Update(dt float64, offset core.Vec2, viewW, viewH float64) {
	bounds := core.NewRect(offset.X, offset.Y, viewW, viewH).Expand(s.margin)

	alive := s.Projectiles[:0]
	for _, p := range s.Projectiles {
		p.Pos = p.Pos.Add(p.Vel.Scale(dt))
		if p.Pos.X < bounds.Left() || p.Pos.X > bounds.Right() ||
			p.Pos.Y < bounds.Top() || p.Pos.Y > bounds.Bottom() {
			continue
		}
		alive = append(alive, p)
	}
	s.Projectiles = alive
}

// Remove deletes the projectile at index i, keeping order.
func (s *ProjectileSystem) Remove(i int) {
	if i < 0 || i >= len(s.Projectiles) {
		return
	}
	s.Projectiles = append(s.Projectiles[:i], s.Projectiles[i+1:]...)
}

// Clear removes all projectiles.
func (s *ProjectileSystem) Clear() {
	s.Projectiles = s.Projectiles[:0]
}

// Count returns the number of live projectiles.
func (s *ProjectileSystem) Count() int {
	return len(s.Projectiles)
}

// Package level describes the static world a run takes place in: ground
// bounds, platforms, the goal door, the spawn point and enemy templates.
// Levels are read-only once loaded.
package level

import (
	"github.com/vovakirdan/tui-platformer/internal/config"
	"github.com/vovakirdan/tui-platformer/internal/core"
)

// PlatformType controls how a platform collides.
type PlatformType string

const (
	PlatformOneWay PlatformType = "platform" // Landable from above only
	PlatformBlock  PlatformType = "block"    // Solid on all four sides
	PlatformDecor  PlatformType = "decor"    // No collision
)

// CanonicalPlatformType lowercases t and maps unknown values to PlatformOneWay.
func CanonicalPlatformType(t string) PlatformType {
	switch p := PlatformType(lower(t)); p {
	case PlatformOneWay, PlatformBlock, PlatformDecor:
		return p
	default:
		return PlatformOneWay
	}
}

// Platform is a colored axis-aligned rectangle.
type Platform struct {
	Rect  core.Rect
	Color core.RGB
	Type  PlatformType
}

// Ground is the flat floor of a level, solid for StartX <= x <= EndX.
type Ground struct {
	Y      float64
	StartX float64
	EndX   float64
}

// EnemyTemplate is one enemy slot of a level. Nil fields fall back to the
// kind's defaults when the enemy is created.
type EnemyTemplate struct {
	X, Y   float64
	Type   string
	Radius *float64
	Width  *float64
	Height *float64
	Speed  *float64
	HP     *int
	Dir    *float64

	// Kind-specific extras
	FlyPhase *float64 // flyer
	BaseY    *float64 // flyer
	VelY     *float64 // walkers
}

// Level is a complete level definition.
type Level struct {
	Name      string
	Ground    Ground
	Platforms []Platform
	Goal      core.Rect
	Spawn     core.Vec2
	Enemies   []EnemyTemplate
}

// Rects returns the rectangles of all platforms of the given type, in
// level order.
func (l *Level) Rects(t PlatformType) []core.Rect {
	var out []core.Rect
	for _, p := range l.Platforms {
		if p.Type == t {
			out = append(out, p.Rect)
		}
	}
	return out
}

// Defaults are the fallbacks used for fields a level file leaves out.
type Defaults struct {
	Ground Ground
	Goal   core.Rect
	Spawn  core.Vec2
}

// DefaultsFrom derives level fallbacks from the tuning: ground from the game
// group, spawn centered in the viewport with feet on the ground.
func DefaultsFrom(t config.Tuning) Defaults {
	return Defaults{
		Ground: Ground{
			Y:      t.Game.GroundY,
			StartX: t.Game.GroundStartX,
			EndX:   t.Game.GroundEndX,
		},
		Goal:  core.NewRect(2300, -30, 70, 110),
		Spawn: core.V(t.Camera.ViewportW/2, t.Game.GroundY-t.Player.FeetOffset()),
	}
}

// Default returns the synthetic level used when no level list is available:
// flat ground from 0 to 10000, a spawn near the origin and a door far right.
func Default() Level {
	return Level{
		Name:   "Level 1",
		Ground: Ground{Y: 0, StartX: 0, EndX: 10000},
		Goal:   core.NewRect(1000, -110, 70, 110),
		Spawn:  core.V(40, -40),
	}
}

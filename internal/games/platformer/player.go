package platformer

import (
	"math"
	"math/rand"

	"github.com/vovakirdan/tui-platformer/internal/config"
	"github.com/vovakirdan/tui-platformer/internal/core"
	"github.com/vovakirdan/tui-platformer/internal/level"
)

// Player tolerances for standing on things.
const (
	groundSnapEpsilon  = 0.1 // Feet this close above the ground count as grounded
	platformEdgeSlack  = 5.0 // Horizontal slack past a platform's edges
	platformStandSlack = 6.0 // Vertical distance from a platform top that counts as standing
)

// PlayerInput is the held state of the player's controls for one frame.
type PlayerInput struct {
	Left  bool
	Right bool
	Jump  bool
	Dash  bool
}

// Player is the stick figure. Pos is the center of the head; the feet are
// HeadRadius+BodyHeight+LegHeight below it.
type Player struct {
	Pos       core.Vec2
	VelY      float64
	Facing    int // -1 or +1
	WalkCycle float64

	Stamina      float64
	IdleTimer    float64 // Seconds since the last stamina-consuming action
	RegenTimer   float64 // Accumulator drained in RegenInterval steps
	AirJumpsLeft int

	DashTimer float64
	DashDir   int

	OnGround     bool
	PrevOnGround bool

	// Cosmetic
	BlinkTimer float64
	BlinkClose float64
	Recoil     float64

	jumpLatch bool
	dashLatch bool

	tuning config.Tuning
	rng    *rand.Rand
}

// NewPlayer creates a player standing at spawn with full stamina.
func NewPlayer(spawn core.Vec2, t config.Tuning, rng *rand.Rand) *Player {
	p := &Player{tuning: t, rng: rng, Facing: 1}
	p.Reset(spawn)
	return p
}

// Reset puts the player back at spawn: stamina full, timers and latches
// cleared. Facing and the cosmetic blink cycle are kept.
func (p *Player) Reset(spawn core.Vec2) {
	p.Pos = spawn
	p.VelY = 0
	p.Stamina = p.tuning.Stamina.Max
	p.IdleTimer = 0
	p.RegenTimer = 0
	p.AirJumpsLeft = 1
	p.jumpLatch = false
	p.dashLatch = false
	p.DashTimer = 0
	p.DashDir = 1
	p.Recoil = 0
	p.PrevOnGround = true
}

// FeetY returns the y coordinate of the bottom of the legs.
func (p *Player) FeetY() float64 {
	return p.Pos.Y + p.tuning.Player.FeetOffset()
}

// Rect returns the full body rectangle, head to feet.
func (p *Player) Rect() core.Rect {
	pt := p.tuning.Player
	return core.NewRect(p.Pos.X-pt.HeadRadius, p.Pos.Y-pt.HeadRadius, 2*pt.HeadRadius, pt.Height())
}

// FeetRect returns the leg rectangle used for the goal check.
func (p *Player) FeetRect() core.Rect {
	pt := p.tuning.Player
	return core.NewRect(p.Pos.X-pt.HeadRadius, p.Pos.Y+pt.HeadRadius+pt.BodyHeight, 2*pt.HeadRadius, pt.LegHeight)
}

// IsDead reports whether the player fell below the death line.
func (p *Player) IsDead() bool {
	return p.Pos.Y > p.tuning.Game.DeathBelowY
}

// Dashing reports whether a dash is in progress.
func (p *Player) Dashing() bool {
	return p.DashTimer > 0
}

// Update advances the player by dt. oneWay holds the one-way platform
// rectangles of the level. It returns true when a horizontal key is held.
func (p *Player) Update(dt float64, in PlayerInput, oneWay []core.Rect, ground level.Ground) bool {
	phys := p.tuning.Physics
	st := p.tuning.Stamina

	// Walk
	moving := false
	if in.Left {
		p.Pos.X -= phys.MoveSpeed * dt
		p.Facing = -1
		moving = true
	}
	if in.Right {
		p.Pos.X += phys.MoveSpeed * dt
		p.Facing = 1
		moving = true
	}
	if moving {
		p.WalkCycle += p.tuning.Player.WalkRate * dt
	} else {
		p.WalkCycle = 0
	}

	p.OnGround = p.checkGround(oneWay, ground)
	if p.OnGround {
		p.AirJumpsLeft = 1
	}

	// Jump and dash fire on the press edge only.
	if in.Jump && !p.jumpLatch {
		switch {
		case p.OnGround && p.Stamina >= st.JumpCost:
			p.VelY = phys.JumpForce
			p.spend(st.JumpCost)
			p.AirJumpsLeft = 1
		case !p.OnGround && p.AirJumpsLeft > 0 && p.Stamina >= st.DoubleJumpCost:
			p.VelY = phys.JumpForce
			p.spend(st.DoubleJumpCost)
			p.AirJumpsLeft--
		}
	}

	if in.Dash && !p.dashLatch && p.DashTimer <= 0 && p.Stamina >= p.tuning.Dash.Cost {
		dir := p.Facing
		if in.Left {
			dir = -1
		} else if in.Right {
			dir = 1
		}
		if dir != 0 {
			p.DashDir = dir
			p.DashTimer = p.tuning.Dash.Duration
			p.spend(p.tuning.Dash.Cost)
		}
	}

	p.jumpLatch = in.Jump
	p.dashLatch = in.Dash

	// Gravity. prevFeet is where the feet were before this frame's fall,
	// i.e. FeetY() - VelY*dt after integration.
	prevFeet := p.FeetY()
	p.VelY += phys.Gravity * dt
	p.Pos.Y += p.VelY * dt
	if p.overGround(ground) && p.FeetY() > ground.Y {
		p.Pos.Y = ground.Y - p.tuning.Player.FeetOffset()
		p.VelY = 0
	}

	p.landOnPlatforms(prevFeet, oneWay)

	if p.DashTimer > 0 {
		p.Pos.X += float64(p.DashDir) * p.tuning.Dash.Speed * dt
		p.DashTimer = math.Max(0, p.DashTimer-dt)
	}

	p.Pos.X = math.Max(p.tuning.Player.HeadRadius, p.Pos.X)

	p.regenerate(dt)
	p.tickCosmetics(dt)

	return moving
}

// spend deducts stamina for an action and restarts the regen delay.
func (p *Player) spend(cost float64) {
	p.Stamina = math.Max(0, p.Stamina-cost)
	p.IdleTimer = 0
	p.RegenTimer = 0
}

func (p *Player) overGround(g level.Ground) bool {
	return p.Pos.X >= g.StartX && p.Pos.X <= g.EndX
}

// checkGround decides whether the player stands on the ground or a one-way
// platform. On first contact the feet snap to the surface and the fall
// stops. One-way platforms only catch a player that is not rising.
func (p *Player) checkGround(oneWay []core.Rect, ground level.Ground) bool {
	feet := p.FeetY()
	offset := p.tuning.Player.FeetOffset()

	if feet >= ground.Y-groundSnapEpsilon && p.overGround(ground) {
		if p.OnGround {
			return true
		}
		p.Pos.Y = ground.Y - offset
		p.VelY = 0
		return true
	}

	if p.VelY < 0 {
		return false
	}
	for _, r := range oneWay {
		if p.Pos.X > r.Left()-platformEdgeSlack && p.Pos.X < r.Right()+platformEdgeSlack &&
			math.Abs(feet-r.Top()) <= platformStandSlack {
			p.Pos.Y = r.Top() - offset
			p.VelY = 0
			return true
		}
	}
	return false
}

// landOnPlatforms stops a descending player on the first overlapping one-way
// platform whose top the feet were at or above before this frame.
func (p *Player) landOnPlatforms(prevFeet float64, oneWay []core.Rect) {
	if p.VelY < 0 {
		return
	}
	body := p.Rect()
	for _, r := range oneWay {
		if !body.Intersects(r) {
			continue
		}
		if prevFeet <= r.Top() {
			p.Pos.Y = r.Top() - p.tuning.Player.FeetOffset()
			p.VelY = 0
			return
		}
	}
}

// regenerate refills stamina in RegenAmount steps once the player has gone
// RegenDelay seconds without spending any. Only time past the delay counts
// towards the first step.
func (p *Player) regenerate(dt float64) {
	st := p.tuning.Stamina

	p.IdleTimer += dt
	if p.IdleTimer < st.RegenDelay || p.Stamina >= st.Max {
		p.RegenTimer = 0
		return
	}

	p.RegenTimer += math.Min(dt, p.IdleTimer-st.RegenDelay)
	for p.RegenTimer >= st.RegenInterval && p.Stamina < st.Max {
		p.Stamina = math.Min(st.Max, p.Stamina+st.RegenAmount)
		p.RegenTimer -= st.RegenInterval
	}
	if p.Stamina >= st.Max {
		p.RegenTimer = 0
	}
}

func (p *Player) tickCosmetics(dt float64) {
	pt := p.tuning.Player

	p.BlinkTimer -= dt
	if p.BlinkTimer <= 0 && p.BlinkClose <= 0 {
		p.BlinkClose = pt.BlinkClose
		p.BlinkTimer = pt.BlinkMin + p.rng.Float64()*(pt.BlinkMax-pt.BlinkMin)
	}
	if p.BlinkClose > 0 {
		p.BlinkClose = math.Max(0, p.BlinkClose-dt)
	}
	if p.Recoil > 0 {
		p.Recoil = math.Max(0, p.Recoil-dt)
	}
}

// Shoot fires a projectile from the head towards aim. It reports false when
// aim is exactly at the player's position.
func (p *Player) Shoot(aim core.Vec2) (Projectile, bool) {
	d := aim.Sub(p.Pos)
	dist := d.Len()
	if dist == 0 {
		return Projectile{}, false
	}

	dir := d.Scale(1 / dist)
	pt := p.tuning.Projectile
	p.Recoil = pt.Recoil
	return Projectile{
		Pos: p.Pos.Add(dir.Scale(p.tuning.Player.HeadRadius + pt.MuzzleOffset)),
		Vel: dir.Scale(p.tuning.Physics.ProjectileSpeed),
	}, true
}

// Blinking reports whether the eyes are currently closed.
func (p *Player) Blinking() bool {
	return p.BlinkClose > 0
}

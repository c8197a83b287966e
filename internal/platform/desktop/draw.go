package desktop

import (
	"fmt"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"

	"github.com/vovakirdan/tui-platformer/internal/config"
	"github.com/vovakirdan/tui-platformer/internal/core"
	"github.com/vovakirdan/tui-platformer/internal/games/platformer"
	"github.com/vovakirdan/tui-platformer/internal/level"
)

const (
	lineWidth = 3
	lineH     = 16 // Text line height for basicfont
)

// artist draws snapshots with vector shapes.
type artist struct {
	player     config.PlayerTuning
	projRadius float32
	face       font.Face
}

func newArtist(t config.Tuning) *artist {
	return &artist{
		player:     t.Player,
		projRadius: float32(t.Projectile.Radius),
		face:       basicfont.Face7x13,
	}
}

func rgba(c core.RGB, alpha float64) color.RGBA {
	a := core.ClampF(alpha, 0, 1)
	// Premultiplied, as image/color expects.
	return color.RGBA{
		R: uint8(float64(c.R) * a),
		G: uint8(float64(c.G) * a),
		B: uint8(float64(c.B) * a),
		A: uint8(255 * a),
	}
}

func opaque(c core.RGB) color.RGBA {
	return rgba(c, 1)
}

func (a *artist) draw(screen *ebiten.Image, snap *platformer.Snapshot) {
	screen.Fill(opaque(core.ColorSky))

	if snap.Mode == platformer.ModeMenu {
		a.drawMenu(screen, snap)
		return
	}

	cam := snap.Camera
	a.drawGround(screen, cam, snap.Level.Ground)
	a.drawPlatforms(screen, cam, snap.Level.Platforms)
	a.drawGoal(screen, cam, snap.Level.Goal)
	a.drawEnemies(screen, cam, snap.Enemies)

	for _, p := range snap.Projectiles {
		vector.DrawFilledCircle(screen, float32(p.X-cam.X), float32(p.Y-cam.Y), a.projRadius, opaque(core.ColorGold), true)
	}
	for _, p := range snap.Particles {
		vector.DrawFilledRect(screen, float32(p.Pos.X-cam.X)-2, float32(p.Pos.Y-cam.Y)-2, 4, 4, rgba(p.Color, p.Life), false)
	}

	if !snap.Invulnerable || (snap.Tick/4)%2 == 0 {
		a.drawPlayer(screen, cam, snap.Player)
	}

	if snap.TransitionAlpha > 0 {
		b := screen.Bounds()
		vector.DrawFilledRect(screen, 0, 0, float32(b.Dx()), float32(b.Dy()), rgba(core.ColorBlack, snap.TransitionAlpha), false)
	}

	a.drawHUD(screen, snap)
	a.drawOverlay(screen, snap)
}

func (a *artist) drawGround(screen *ebiten.Image, cam core.Vec2, g level.Ground) {
	h := float32(screen.Bounds().Dy())
	top := float32(g.Y - cam.Y)
	if top >= h {
		return
	}
	x := float32(g.StartX - cam.X)
	w := float32(g.EndX - g.StartX)
	vector.DrawFilledRect(screen, x, top, w, h-top, opaque(core.ColorGround), false)
	vector.DrawFilledRect(screen, x, top, w, 4, opaque(core.ColorGround.Scale(0.7)), false)
}

func (a *artist) drawPlatforms(screen *ebiten.Image, cam core.Vec2, platforms []level.Platform) {
	for _, p := range platforms {
		x := float32(p.Rect.X - cam.X)
		y := float32(p.Rect.Y - cam.Y)
		w, h := float32(p.Rect.W), float32(p.Rect.H)

		switch p.Type {
		case level.PlatformDecor:
			vector.DrawFilledRect(screen, x, y, w, h, rgba(p.Color, 0.5), false)
		case level.PlatformBlock:
			vector.DrawFilledRect(screen, x, y, w, h, opaque(p.Color), false)
			vector.StrokeRect(screen, x, y, w, h, 2, opaque(p.Color.Scale(0.6)), false)
		default:
			vector.DrawFilledRect(screen, x, y, w, h, opaque(p.Color), false)
			vector.StrokeLine(screen, x, y, x+w, y, 2, opaque(core.ColorWhite), false)
		}
	}
}

func (a *artist) drawGoal(screen *ebiten.Image, cam core.Vec2, goal core.Rect) {
	if goal.W <= 0 || goal.H <= 0 {
		return
	}
	x, y := float32(goal.X-cam.X), float32(goal.Y-cam.Y)
	w, h := float32(goal.W), float32(goal.H)
	vector.DrawFilledRect(screen, x, y, w, h, opaque(core.ColorDoor), false)
	vector.StrokeRect(screen, x, y, w, h, lineWidth, opaque(core.ColorDoor.Scale(0.6)), false)
	vector.DrawFilledCircle(screen, x+w*0.8, y+h*0.55, 4, opaque(core.ColorGold), true)
}

func (a *artist) drawEnemies(screen *ebiten.Image, cam core.Vec2, enemies []platformer.EnemyView) {
	for _, e := range enemies {
		c := platformer.ColorEnemy
		if e.Kind == platformer.KindFlyer {
			c = platformer.ColorFlyer
		}
		if e.HitFlash > 0 {
			c = core.ColorWhite
		}

		x, y, r := float32(e.Pos.X-cam.X), float32(e.Pos.Y-cam.Y), float32(e.Radius)
		vector.DrawFilledCircle(screen, x, y, r, opaque(c), true)
		if e.Kind == platformer.KindTank {
			vector.StrokeCircle(screen, x, y, r, lineWidth, opaque(core.ColorBlack), true)
		}

		// Eyes look in the walking direction.
		ex := x + float32(e.Dir)*r*0.35
		vector.DrawFilledCircle(screen, ex-r*0.2, y-r*0.2, r*0.15, opaque(core.ColorWhite), true)
		vector.DrawFilledCircle(screen, ex+r*0.2, y-r*0.2, r*0.15, opaque(core.ColorWhite), true)
	}
}

func (a *artist) drawPlayer(screen *ebiten.Image, cam core.Vec2, p platformer.PlayerView) {
	pt := a.player
	hx, hy := float32(p.Pos.X-cam.X), float32(p.Pos.Y-cam.Y)
	r := float32(pt.HeadRadius)
	shirt := opaque(core.ColorShirt)
	skin := opaque(core.ColorSkin)

	neck := hy + r
	hip := neck + float32(pt.BodyHeight)
	feet := hip + float32(pt.LegHeight)

	vector.StrokeLine(screen, hx, neck, hx, hip, lineWidth, shirt, true)

	// Legs swing with the walk cycle and tuck while airborne.
	swing := float32(math.Sin(p.WalkCycle)) * float32(pt.LegHeight) * 0.5
	if !p.OnGround {
		swing = float32(pt.LegHeight) * 0.3
	}
	vector.StrokeLine(screen, hx, hip, hx-swing, feet, lineWidth, shirt, true)
	vector.StrokeLine(screen, hx, hip, hx+swing, feet, lineWidth, shirt, true)

	f := float32(p.Facing)
	arm := float32(pt.ArmLength) * (1 - float32(p.Recoil))
	shoulder := neck + float32(pt.BodyHeight)*0.25
	vector.StrokeLine(screen, hx, shoulder, hx+f*arm, shoulder, lineWidth, skin, true)
	vector.StrokeLine(screen, hx, shoulder, hx-f*arm*0.6, shoulder+arm*0.6, lineWidth, skin, true)

	if p.Dashing {
		for i := float32(1); i <= 3; i++ {
			y := neck + i*float32(pt.BodyHeight)/4
			vector.StrokeLine(screen, hx-f*(r+10*i), y, hx-f*(r+10*i+14), y, 2, opaque(core.ColorStamina), false)
		}
	}

	vector.DrawFilledCircle(screen, hx, hy, r, skin, true)
	eyeX := hx + f*r*0.35
	if p.Blinking {
		vector.StrokeLine(screen, eyeX-3, hy-3, eyeX+3, hy-3, 2, opaque(core.ColorBlack), false)
	} else {
		vector.DrawFilledCircle(screen, eyeX, hy-3, 2.5, opaque(core.ColorBlack), true)
	}
}

func (a *artist) drawText(screen *ebiten.Image, s string, x, y int, c core.RGB) {
	text.Draw(screen, s, a.face, x, y, opaque(c))
}

func (a *artist) drawCentered(screen *ebiten.Image, s string, y int, c core.RGB) {
	w := font.MeasureString(a.face, s).Ceil()
	a.drawText(screen, s, (screen.Bounds().Dx()-w)/2, y, c)
}

func (a *artist) drawHUD(screen *ebiten.Image, snap *platformer.Snapshot) {
	const pad = 12
	vector.DrawFilledRect(screen, 0, 0, float32(screen.Bounds().Dx()), 2*pad+lineH, rgba(core.ColorBlack, 0.4), false)

	x := float32(pad)
	for range max(snap.Lives, 0) {
		vector.DrawFilledCircle(screen, x+6, pad+lineH/2, 6, opaque(core.ColorHeart), true)
		x += 18
	}

	a.drawText(screen, fmt.Sprintf("Score: %d", snap.Score), int(x)+pad, pad+lineH-3, core.ColorWhite)

	const barW, barH = 160, 10
	bx := x + 140
	filled := float32(0)
	if snap.Player.StaminaMax > 0 {
		filled = float32(snap.Player.Stamina / snap.Player.StaminaMax * barW)
	}
	vector.DrawFilledRect(screen, bx, pad+3, filled, barH, opaque(core.ColorStamina), false)
	vector.StrokeRect(screen, bx, pad+3, barW, barH, 1, opaque(core.ColorWhite), false)

	name := snap.Level.Name
	w := font.MeasureString(a.face, name).Ceil()
	a.drawText(screen, name, screen.Bounds().Dx()-w-pad, pad+lineH-3, core.ColorWhite)
}

func (a *artist) drawOverlay(screen *ebiten.Image, snap *platformer.Snapshot) {
	mid := screen.Bounds().Dy() / 2
	switch {
	case snap.GameOver:
		a.drawCentered(screen, "GAME OVER", mid-lineH, core.ColorHeart)
		a.drawCentered(screen, fmt.Sprintf("Score: %d", snap.Score), mid+lineH, core.ColorWhite)
		a.drawCentered(screen, "R restart  M menu", mid+2*lineH, core.ColorWhite)
	case snap.Mode == platformer.ModePaused:
		a.drawCentered(screen, "PAUSED", mid-lineH, core.ColorWhite)
		a.drawCentered(screen, "P resume  M menu", mid+lineH, core.ColorWhite)
	case snap.Victory && snap.Phase == platformer.PhaseFadeOut:
		a.drawCentered(screen, "LEVEL COMPLETE", mid, core.ColorGold)
	}
}

func (a *artist) drawMenu(screen *ebiten.Image, snap *platformer.Snapshot) {
	top := screen.Bounds().Dy()/2 - (len(snap.LevelNames)+6)*lineH/2
	a.drawCentered(screen, "P L A T F O R M E R", top, core.ColorGold)
	a.drawCentered(screen, "Choose a level", top+2*lineH, core.ColorWhite)

	for i, name := range snap.LevelNames {
		line, c := "  "+name+"  ", core.ColorWhite
		if i == snap.Selected {
			line, c = "> "+name+" <", core.ColorGold
		}
		a.drawCentered(screen, line, top+(4+i)*lineH, c)
	}

	a.drawCentered(screen, "Left/Right select  Enter play  Click or F shoot", top+(5+len(snap.LevelNames))*lineH, core.ColorWhite)
}

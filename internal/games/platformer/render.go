package platformer

import (
	"fmt"
	"math"
	"strings"

	"github.com/vovakirdan/tui-platformer/internal/core"
	"github.com/vovakirdan/tui-platformer/internal/level"
)

// Visual characters for the cell renderer
const (
	GroundTopChar = '▀'
	GroundChar    = '▒'
	OneWayChar    = '='
	BlockChar     = '█'
	DecorChar     = '░'
	DoorChar      = '▓'
	ProjectileCh  = '•'
	ParticleChar  = '·'
	HeadChar      = 'O'
	HeadBlinkChar = '-'
	BodyChar      = '|'
	HeartChar     = '♥'
)

// enemyGlyphs by kind
var enemyGlyphs = map[EnemyKind]rune{
	KindBasic: '@',
	KindTank:  '#',
	KindFast:  '>',
	KindFlyer: 'v',
}

// Enemy colors shared with the window frontend.
var (
	ColorEnemy = core.RGB{R: 200, G: 40, B: 40}
	ColorFlyer = core.RGB{R: 170, G: 60, B: 200}
)

// hudRows is the number of rows above the world view.
const hudRows = 1

// Render draws the current game state into the screen buffer.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.screenTooSmall {
		dst.DrawTextCentered(dst.Height()/2-1, "Terminal too small")
		dst.DrawTextCentered(dst.Height()/2+1, fmt.Sprintf("Need %dx%d", minScreenW, minScreenH))
		return
	}

	snap := g.Snapshot()
	RenderSnapshot(dst, &snap, g.camera.ViewW, g.camera.ViewH)
}

// viewport maps world coordinates to screen cells.
type viewport struct {
	offset core.Vec2
	sx, sy float64
	rows   int
	cols   int
}

func newViewport(dst *core.Screen, offset core.Vec2, viewW, viewH float64) viewport {
	rows := dst.Height() - hudRows
	return viewport{
		offset: offset,
		sx:     float64(dst.Width()) / viewW,
		sy:     float64(rows) / viewH,
		rows:   rows,
		cols:   dst.Width(),
	}
}

func (v viewport) cell(p core.Vec2) (int, int) {
	x := int(math.Floor((p.X - v.offset.X) * v.sx))
	y := int(math.Floor((p.Y-v.offset.Y)*v.sy)) + hudRows
	return x, y
}

// CellToView maps the center of screen cell (x, y) back to viewport
// coordinates, inverting the scaling RenderSnapshot uses. Cells in the HUD
// row map to negative y.
func CellToView(x, y, screenW, screenH int, viewW, viewH float64) core.Vec2 {
	rows := screenH - hudRows
	if screenW <= 0 || rows <= 0 {
		return core.Vec2{}
	}
	return core.V(
		(float64(x)+0.5)*viewW/float64(screenW),
		(float64(y-hudRows)+0.5)*viewH/float64(rows),
	)
}

// rect converts a world rectangle to a cell rectangle at least one cell big.
func (v viewport) rect(r core.Rect) (x, y, w, h int) {
	x0, y0 := v.cell(core.V(r.Left(), r.Top()))
	x1, y1 := v.cell(core.V(r.Right(), r.Bottom()))
	return x0, y0, max(1, x1-x0), max(1, y1-y0)
}

// RenderSnapshot draws a snapshot into dst, scaling a viewW x viewH world
// view to the screen below a one-line HUD.
func RenderSnapshot(dst *core.Screen, snap *Snapshot, viewW, viewH float64) {
	if snap.Mode == ModeMenu {
		renderMenu(dst, snap)
		return
	}

	v := newViewport(dst, snap.Camera, viewW, viewH)

	renderGround(dst, v, snap.Level.Ground)
	renderPlatforms(dst, v, snap.Level.Platforms)
	renderGoal(dst, v, snap.Level.Goal)
	renderEnemies(dst, v, snap.Enemies)

	for _, p := range snap.Projectiles {
		x, y := v.cell(p)
		dst.SetColor(x, y, ProjectileCh, core.ColorGold)
	}
	for _, p := range snap.Particles {
		x, y := v.cell(p.Pos)
		dst.SetColor(x, y, ParticleChar, p.Color.Scale(p.Life))
	}

	// Flicker while invulnerable
	if !snap.Invulnerable || (snap.Tick/4)%2 == 0 {
		renderPlayer(dst, v, snap.Player)
	}

	if snap.TransitionAlpha > 0 {
		darken(dst, 1-snap.TransitionAlpha)
	}

	renderHUD(dst, snap)
	renderOverlay(dst, snap)
}

func renderGround(dst *core.Screen, v viewport, g level.Ground) {
	left, top := v.cell(core.V(g.StartX, g.Y))
	right, _ := v.cell(core.V(g.EndX, g.Y))
	left = max(left, 0)
	right = min(right, v.cols-1)
	if top < hudRows {
		top = hudRows
	}
	for y := top; y < v.rows+hudRows; y++ {
		ch := GroundChar
		if y == top {
			ch = GroundTopChar
		}
		for x := left; x <= right; x++ {
			dst.SetColor(x, y, ch, core.ColorGround)
		}
	}
}

func renderPlatforms(dst *core.Screen, v viewport, platforms []level.Platform) {
	for _, p := range platforms {
		x, y, w, h := v.rect(p.Rect)
		switch p.Type {
		case level.PlatformBlock:
			dst.FillRect(x, y, w, h, BlockChar, p.Color)
		case level.PlatformDecor:
			dst.FillRect(x, y, w, h, DecorChar, p.Color)
		default:
			// One-way platforms are drawn as their top edge only.
			dst.FillRect(x, y, w, 1, OneWayChar, p.Color)
		}
	}
}

func renderGoal(dst *core.Screen, v viewport, goal core.Rect) {
	if goal.W <= 0 || goal.H <= 0 {
		return
	}
	x, y, w, h := v.rect(goal)
	dst.FillRect(x, y, w, h, DoorChar, core.ColorDoor)
}

func renderEnemies(dst *core.Screen, v viewport, enemies []EnemyView) {
	for _, e := range enemies {
		color := ColorEnemy
		if e.Kind == KindFlyer {
			color = ColorFlyer
		}
		if e.HitFlash > 0 {
			color = core.ColorWhite
		}
		glyph := enemyGlyphs[e.Kind]
		if e.Kind == KindFast && e.Dir < 0 {
			glyph = '<'
		}

		x, y, w, h := v.rect(core.NewRect(e.Pos.X-e.Radius, e.Pos.Y-e.Radius, 2*e.Radius, 2*e.Radius))
		dst.FillRect(x, y, w, h, glyph, color)
	}
}

func renderPlayer(dst *core.Screen, v viewport, p PlayerView) {
	head := HeadChar
	if p.Blinking {
		head = HeadBlinkChar
	}
	hx, hy := v.cell(p.Pos)
	dst.SetColor(hx, hy, head, core.ColorSkin)

	// Body and legs fill the rest of the player rectangle.
	_, bottom := v.cell(core.V(p.Pos.X, p.Rect.Bottom()-1))
	for y := hy + 1; y < bottom; y++ {
		dst.SetColor(hx, y, BodyChar, core.ColorShirt)
	}
	if bottom > hy {
		legs := '^'
		switch {
		case !p.OnGround:
			legs = 'A'
		case p.WalkCycle > 0 && int(p.WalkCycle)%2 == 1:
			legs = 'λ'
		}
		dst.SetColor(hx, bottom, legs, core.ColorShirt)
	}

	if p.Dashing {
		dst.SetColor(hx-p.Facing, hy+1, '≡', core.ColorStamina)
	}
	arm := '/'
	if p.Facing < 0 {
		arm = '\\'
	}
	dst.SetColor(hx+p.Facing, hy+1, arm, core.ColorSkin)
}

// darken scales every colored cell towards black.
func darken(dst *core.Screen, f float64) {
	for y := 0; y < dst.Height(); y++ {
		for x := 0; x < dst.Width(); x++ {
			c := dst.GetCell(x, y)
			if c.HasColor {
				c.Color = c.Color.Scale(f)
				dst.SetCell(x, y, c)
			} else if f < 0.5 && c.Rune != ' ' {
				dst.Set(x, y, ' ')
			}
		}
	}
}

func renderHUD(dst *core.Screen, snap *Snapshot) {
	hearts := strings.Repeat(string(HeartChar), max(snap.Lives, 0))
	dst.DrawTextColor(1, 0, hearts, core.ColorHeart)

	x := 2 + max(snap.Lives, 0)
	score := fmt.Sprintf("Score: %d", snap.Score)
	dst.DrawText(x, 0, score)
	x += len(score) + 2

	const barW = 10
	filled := 0
	if snap.Player.StaminaMax > 0 {
		filled = int(math.Round(snap.Player.Stamina / snap.Player.StaminaMax * barW))
	}
	dst.DrawText(x, 0, "[")
	for i := 0; i < barW; i++ {
		if i < filled {
			dst.SetColor(x+1+i, 0, '█', core.ColorStamina)
		} else {
			dst.Set(x+1+i, 0, '·')
		}
	}
	dst.DrawText(x+1+barW, 0, "]")

	name := snap.Level.Name
	dst.DrawText(dst.Width()-len([]rune(name))-1, 0, name)
}

func renderOverlay(dst *core.Screen, snap *Snapshot) {
	mid := dst.Height() / 2
	switch {
	case snap.GameOver:
		dst.DrawTextCentered(mid-1, "GAME OVER")
		dst.DrawTextCentered(mid+1, fmt.Sprintf("Score: %d", snap.Score))
		dst.DrawTextCentered(mid+2, "R restart  M menu")
	case snap.Mode == ModePaused:
		dst.DrawTextCentered(mid-1, "PAUSED")
		dst.DrawTextCentered(mid+1, "P resume  M menu")
	case snap.Victory && snap.Phase == PhaseFadeOut:
		dst.DrawTextCentered(mid, "LEVEL COMPLETE")
	}
}

func renderMenu(dst *core.Screen, snap *Snapshot) {
	top := max(1, dst.Height()/2-len(snap.LevelNames)/2-3)
	dst.DrawTextCentered(top, "P L A T F O R M E R")
	dst.DrawTextCentered(top+2, "Choose a level")

	for i, name := range snap.LevelNames {
		line := "  " + name + "  "
		if i == snap.Selected {
			line = "> " + name + " <"
		}
		dst.DrawTextCentered(top+4+i, line)
	}

	dst.DrawTextCentered(top+5+len(snap.LevelNames), "←/→ select  Enter play")
}

package platformer

import (
	"math"

	"github.com/vovakirdan/tui-platformer/internal/config"
	"github.com/vovakirdan/tui-platformer/internal/core"
)

// Camera is a smoothed follow camera. Offset is the world position of the
// view's top-left corner.
type Camera struct {
	Offset core.Vec2
	Lag    float64
	ViewW  float64
	ViewH  float64
}

// NewCamera creates a camera at the world origin.
func NewCamera(cfg config.CameraTuning) *Camera {
	return &Camera{Lag: cfg.Lag, ViewW: cfg.ViewportW, ViewH: cfg.ViewportH}
}

// halfView returns half the viewport, rounded down to whole pixels.
func (c *Camera) halfView() core.Vec2 {
	return core.V(math.Floor(c.ViewW/2), math.Floor(c.ViewH/2))
}

// Update moves the offset a Lag fraction of the way towards centering target.
func (c *Camera) Update(target core.Vec2) {
	goal := target.Sub(c.halfView())
	c.Offset = c.Offset.Add(goal.Sub(c.Offset).Scale(c.Lag))
}

// SetPosition places the view's top-left corner directly.
func (c *Camera) SetPosition(x, y float64) {
	c.Offset = core.V(x, y)
}

// CenterOn snaps the camera so target is in the middle of the view.
func (c *Camera) CenterOn(target core.Vec2) {
	c.Offset = target.Sub(c.halfView())
}

// WorldToScreen converts world coordinates to view coordinates.
func (c *Camera) WorldToScreen(p core.Vec2) core.Vec2 {
	return p.Sub(c.Offset)
}

// ScreenToWorld converts view coordinates to world coordinates.
func (c *Camera) ScreenToWorld(p core.Vec2) core.Vec2 {
	return p.Add(c.Offset)
}

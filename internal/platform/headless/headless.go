// Package headless runs the platformer without a frontend, driven by a
// reproducible autopilot. It backs the sim command and soak tests.
package headless

import (
	"math/rand"

	"github.com/vovakirdan/tui-platformer/internal/core"
	"github.com/vovakirdan/tui-platformer/internal/games/platformer"
)

// Autopilot produces pseudo-random but reproducible input: it mostly walks
// right, jumps and dashes now and then and shoots at random points of the
// view.
type Autopilot struct {
	rng          *rand.Rand
	viewW, viewH float64

	dir     core.Action
	turnIn  int
	jumpIn  int
	jumpFor int
	shootIn int
	dashed  bool
}

// NewAutopilot creates an autopilot aiming inside a viewW x viewH view.
func NewAutopilot(seed int64, viewW, viewH float64) *Autopilot {
	a := &Autopilot{
		rng:   rand.New(rand.NewSource(seed)), //#nosec G404 -- test input, not security
		viewW: viewW,
		viewH: viewH,
		dir:   core.ActionRight,
	}
	a.turnIn = a.between(60, 240)
	a.jumpIn = a.between(30, 120)
	a.shootIn = a.between(20, 60)
	return a
}

func (a *Autopilot) between(lo, hi int) int {
	return lo + a.rng.Intn(hi-lo+1)
}

// Next returns the input for the next frame.
func (a *Autopilot) Next() core.InputFrame {
	in := core.NewInputFrame()

	a.turnIn--
	if a.turnIn <= 0 {
		a.dir = core.ActionRight
		if a.rng.Float64() < 0.2 {
			a.dir = core.ActionLeft
		}
		a.turnIn = a.between(60, 240)
	}
	in.Set(a.dir)

	if a.jumpFor > 0 {
		in.Set(core.ActionJump)
		a.jumpFor--
	} else {
		a.jumpIn--
		if a.jumpIn <= 0 {
			a.jumpFor = a.between(5, 20)
			a.jumpIn = a.between(30, 120)
		}
	}

	// Dash is edge-triggered, so never hold it two frames in a row.
	if !a.dashed && a.rng.Float64() < 0.02 {
		in.Set(core.ActionDash)
		a.dashed = true
	} else {
		a.dashed = false
	}

	a.shootIn--
	if a.shootIn <= 0 {
		in.Set(core.ActionShoot)
		in.SetAim(core.V(a.rng.Float64()*a.viewW, a.rng.Float64()*a.viewH))
		a.shootIn = a.between(20, 60)
	}

	return in
}

// Options controls a headless run.
type Options struct {
	Frames         int
	Seed           int64 // Seeds both the game and the autopilot
	TickRate       int
	Level          int // Level to start on when the mode opens in its menu
	StopOnGameOver bool
}

// Result summarizes a headless run.
type Result struct {
	Frames   int
	Score    int
	Lives    int
	Level    string
	GameOver bool
	Hash     uint64
	Events   map[platformer.EventKind]int
}

// Run resets g and plays it with an autopilot.
func Run(g *platformer.Game, opts Options) Result {
	if opts.TickRate <= 0 {
		opts.TickRate = 60
	}
	g.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: opts.TickRate, Seed: opts.Seed})
	if g.State().InMenu {
		g.StartLevel(opts.Level)
	}

	vw, vh := g.ViewSize()
	pilot := NewAutopilot(opts.Seed, vw, vh)

	res := Result{Events: make(map[platformer.EventKind]int)}
	for res.Frames < opts.Frames {
		state := g.Step(pilot.Next()).State
		res.Frames++
		for _, ev := range g.Events() {
			res.Events[ev.Kind]++
		}
		if state.GameOver && opts.StopOnGameOver {
			break
		}
	}

	snap := g.Snapshot()
	res.Score = snap.Score
	res.Lives = snap.Lives
	res.Level = snap.Level.Name
	res.GameOver = snap.GameOver
	res.Hash = snap.Hash()
	return res
}

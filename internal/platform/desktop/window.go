// Package desktop runs the platformer in a native window through Ebitengine.
// Unlike the terminal frontend it sees real key releases, so movement keys
// map directly to held actions.
package desktop

import (
	"errors"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/vovakirdan/tui-platformer/internal/core"
	"github.com/vovakirdan/tui-platformer/internal/games/platformer"
	"github.com/vovakirdan/tui-platformer/internal/storage"
)

// heldKeys are movement bindings sampled every tick while down.
var heldKeys = map[core.Action][]ebiten.Key{
	core.ActionLeft:  {ebiten.KeyArrowLeft, ebiten.KeyA, ebiten.KeyQ},
	core.ActionRight: {ebiten.KeyArrowRight, ebiten.KeyD},
	core.ActionJump:  {ebiten.KeySpace, ebiten.KeyArrowUp, ebiten.KeyW, ebiten.KeyZ},
	core.ActionDash:  {ebiten.KeyShiftLeft, ebiten.KeyShiftRight, ebiten.KeyX},
}

// triggerKeys fire once per key press.
var triggerKeys = map[core.Action][]ebiten.Key{
	core.ActionShoot:   {ebiten.KeyF},
	core.ActionConfirm: {ebiten.KeyEnter, ebiten.KeyNumpadEnter},
	core.ActionBack:    {ebiten.KeyM, ebiten.KeyB},
	core.ActionRestart: {ebiten.KeyR},
	core.ActionPause:   {ebiten.KeyP, ebiten.KeyEscape},
}

// Window adapts a platformer game to ebiten.Game.
type Window struct {
	game   *platformer.Game
	store  *storage.Store
	logger *log.Logger
	art    *artist

	in         core.InputFrame
	scoreSaved bool
}

// NewWindow creates a window frontend for game. store and logger may be nil.
func NewWindow(game *platformer.Game, store *storage.Store, logger *log.Logger) *Window {
	if logger == nil {
		logger = log.Default()
	}
	return &Window{
		game:   game,
		store:  store,
		logger: logger,
		art:    newArtist(game.Tuning()),
		in:     core.NewInputFrame(),
	}
}

// Update samples input and advances the simulation by one tick.
func (w *Window) Update() error {
	if ebiten.IsKeyPressed(ebiten.KeyControl) && inpututil.IsKeyJustPressed(ebiten.KeyC) {
		return ebiten.Termination
	}

	w.in.Clear()
	for a, keys := range heldKeys {
		for _, k := range keys {
			if ebiten.IsKeyPressed(k) {
				w.in.Set(a)
				break
			}
		}
	}
	for a, keys := range triggerKeys {
		for _, k := range keys {
			if inpututil.IsKeyJustPressed(k) {
				w.in.Set(a)
				break
			}
		}
	}
	// The logical screen is the camera view, so the cursor is already in
	// viewport coordinates.
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		w.in.Set(core.ActionShoot)
		w.in.SetAim(core.V(float64(x), float64(y)))
	}

	state := w.game.Step(w.in).State
	w.logEvents()

	if state.GameOver && !w.scoreSaved {
		if w.store != nil && state.Score > 0 {
			if _, err := w.store.SaveScore(w.game.ID(), state.Level, state.Score); err != nil {
				w.logger.Warn("could not save score", "error", err)
			}
		}
		w.scoreSaved = true
	}
	if !state.GameOver {
		w.scoreSaved = false
	}
	return nil
}

func (w *Window) logEvents() {
	for _, ev := range w.game.Events() {
		switch ev.Kind {
		case platformer.EventLevelLoaded:
			w.logger.Debug("level loaded", "index", ev.Value, "name", w.game.State().Level)
		case platformer.EventGameOver:
			w.logger.Info("game over", "score", ev.Value)
		}
	}
}

// Draw renders the current snapshot.
func (w *Window) Draw(screen *ebiten.Image) {
	snap := w.game.Snapshot()
	w.art.draw(screen, &snap)
}

// Layout keeps the logical screen at the camera view size; Ebitengine
// scales it to the window.
func (w *Window) Layout(_, _ int) (int, int) {
	vw, vh := w.game.ViewSize()
	return int(vw), int(vh)
}

// Run opens a window and plays game until the window is closed.
func Run(game *platformer.Game, store *storage.Store, cfg core.RuntimeConfig, logger *log.Logger) error {
	if cfg.TickRate <= 0 {
		cfg.TickRate = 60
	}
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	vw, vh := game.ViewSize()
	cfg.ScreenW, cfg.ScreenH = int(vw), int(vh)
	game.Reset(cfg)

	ebiten.SetTPS(cfg.TickRate)
	ebiten.SetWindowSize(cfg.ScreenW, cfg.ScreenH)
	ebiten.SetWindowTitle(game.Title())
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	err := ebiten.RunGame(NewWindow(game, store, logger))
	if errors.Is(err, ebiten.Termination) {
		return nil
	}
	return err
}

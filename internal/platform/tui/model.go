package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-platformer/internal/core"
	"github.com/vovakirdan/tui-platformer/internal/games/platformer"
	"github.com/vovakirdan/tui-platformer/internal/registry"
	"github.com/vovakirdan/tui-platformer/internal/storage"
)

// resizer is implemented by games that can change screen size mid-run.
type resizer interface {
	Resize(w, h int)
}

// viewSizer is implemented by games that accept mouse aim in viewport
// coordinates.
type viewSizer interface {
	ViewSize() (w, h float64)
}

// Model is the Bubble Tea model running one game.
type Model struct {
	game     registry.Game
	screen   *core.Screen
	renderer *ScreenRenderer
	store    *storage.Store
	config   core.RuntimeConfig
	keys     KeyMap

	held    heldKeys
	pending core.InputFrame // One-shot actions for the next tick

	gameState  core.GameState
	quitting   bool
	backToMenu bool
	exitOnBack bool // Back in the game's own menu leaves the game
	scoreSaved bool // Whether the score has been saved for this game over
}

// NewModel creates a new Bubble Tea model for the given game.
func NewModel(game registry.Game, store *storage.Store, cfg core.RuntimeConfig) Model {
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = 60
	}

	return Model{
		game:     game,
		screen:   core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		renderer: NewScreenRenderer(nil),
		store:    store,
		config:   cfg,
		keys:     DefaultKeyMap(),
		held:     newHeldKeys(cfg.TickRate),
		pending:  core.NewInputFrame(),
	}
}

// WithRenderer returns the model drawing through r (one per SSH session).
func (m Model) WithRenderer(r *lipgloss.Renderer) Model {
	m.renderer = NewScreenRenderer(r)
	return m
}

// WithExitOnBack returns the model leaving the game when Back is pressed in
// the game's level menu.
func (m Model) WithExitOnBack() Model {
	m.exitOnBack = true
	return m
}

// Init initializes the model and starts the game.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.config)
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey turns a key press into held walk keys or a one-shot action.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	a, dir := m.keys.Action(msg)

	switch {
	case a == core.ActionQuit:
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Screenshot):
		m.saveScreenshot()
		return m, nil
	case a == core.ActionBack && m.exitOnBack && m.gameState.InMenu:
		m.backToMenu = true
		return m, tea.Quit
	}

	if dir != core.ActionNone {
		m.held.press(dir)
	}
	switch a {
	case core.ActionNone:
	case core.ActionLeft, core.ActionRight:
		m.held.press(a)
	default:
		m.pending.Set(a)
	}
	return m, nil
}

// handleMouse shoots at the clicked cell.
func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return m, nil
	}

	m.pending.Set(core.ActionShoot)
	if vs, ok := m.game.(viewSizer); ok {
		w, h := vs.ViewSize()
		m.pending.SetAim(platformer.CellToView(msg.X, msg.Y, m.screen.Width(), m.screen.Height(), w, h))
	}
	return m, nil
}

// handleResize processes window resize events.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)

	if r, ok := m.game.(resizer); ok {
		r.Resize(msg.Width, msg.Height)
	} else if !m.gameState.GameOver {
		m.game.Reset(m.config)
	}
	return m, nil
}

// handleTick runs one simulation step with the held and pending actions.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	in := m.pending.Clone()
	m.held.apply(&in)

	result := m.game.Step(in)
	m.gameState = result.State

	if m.gameState.GameOver && !m.scoreSaved {
		if m.store != nil && m.gameState.Score > 0 {
			//nolint:errcheck // Best-effort save, game continues regardless
			m.store.SaveScore(m.game.ID(), m.gameState.Level, m.gameState.Score)
		}
		m.scoreSaved = true
	}
	if !m.gameState.GameOver {
		m.scoreSaved = false
	}
	if m.gameState.InMenu || m.gameState.Paused {
		m.held.releaseAll()
	}

	m.pending.Clear()
	m.held.advance()
	return m, tickCmd(m.config.TickRate)
}

// saveScreenshot saves the current screen to a text file.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		return
	}
	dir := filepath.Join(home, ".platformer", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	filename := fmt.Sprintf("%s_%s.txt", m.game.ID(), time.Now().Format("20060102_150405"))
	//nolint:errcheck // Best-effort save, game continues regardless
	os.WriteFile(filepath.Join(dir, filename), []byte(m.screen.String()), 0o600)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	return m.renderer.Render(m.screen)
}

// IsQuitting returns true if the user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if the user left the game for the mode picker.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// Run starts the Bubble Tea program with the given game.
func Run(game registry.Game, store *storage.Store, cfg core.RuntimeConfig) error {
	_, err := run(NewModel(game, store, cfg))
	return err
}

// RunFromMenu runs the game until the player quits or backs out of the
// level menu. It reports whether the mode picker should be shown again.
func RunFromMenu(game registry.Game, store *storage.Store, cfg core.RuntimeConfig) (bool, error) {
	m, err := run(NewModel(game, store, cfg).WithExitOnBack())
	if err != nil {
		return false, err
	}
	return m.BackToMenu(), nil
}

func run(model Model) (Model, error) {
	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	final, err := p.Run()
	if err != nil {
		return model, err
	}
	if m, ok := final.(Model); ok {
		return m, nil
	}
	return model, nil
}

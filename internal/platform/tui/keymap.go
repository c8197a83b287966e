package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-platformer/internal/core"
)

// KeyMap holds the in-game key bindings.
type KeyMap struct {
	Left       key.Binding
	Right      key.Binding
	Jump       key.Binding
	Dash       key.Binding
	Shoot      key.Binding
	Confirm    key.Binding
	Back       key.Binding
	Restart    key.Binding
	Pause      key.Binding
	Quit       key.Binding
	Screenshot key.Binding
}

// DefaultKeyMap returns the default bindings. Both QWERTY (A/W) and AZERTY
// (Q/Z) movement keys work.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Left: key.NewBinding(
			key.WithKeys("left", "a", "q"),
			key.WithHelp("←/a/q", "left"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "d"),
			key.WithHelp("→/d", "right"),
		),
		Jump: key.NewBinding(
			key.WithKeys(" ", "up", "w", "z"),
			key.WithHelp("space/↑", "jump"),
		),
		Dash: key.NewBinding(
			key.WithKeys("x", "shift+left", "shift+right"),
			key.WithHelp("x", "dash"),
		),
		Shoot: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f/click", "shoot"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "play"),
		),
		Back: key.NewBinding(
			key.WithKeys("m", "b"),
			key.WithHelp("m", "menu"),
		),
		Restart: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "restart"),
		),
		Pause: key.NewBinding(
			key.WithKeys("p", "esc"),
			key.WithHelp("p/esc", "pause"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
		Screenshot: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "screenshot"),
		),
	}
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Left, k.Right, k.Jump, k.Dash, k.Shoot, k.Pause, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Left, k.Right, k.Jump, k.Dash, k.Shoot},
		{k.Confirm, k.Pause, k.Back, k.Restart},
		{k.Screenshot, k.Quit},
	}
}

// Action returns the game action bound to msg, or ActionNone.
// A shifted arrow dashes and also steers, so it reports the direction in dir.
func (k KeyMap) Action(msg tea.KeyMsg) (a core.Action, dir core.Action) {
	switch {
	case key.Matches(msg, k.Quit):
		return core.ActionQuit, core.ActionNone
	case key.Matches(msg, k.Dash):
		switch msg.String() {
		case "shift+left":
			return core.ActionDash, core.ActionLeft
		case "shift+right":
			return core.ActionDash, core.ActionRight
		}
		return core.ActionDash, core.ActionNone
	case key.Matches(msg, k.Left):
		return core.ActionLeft, core.ActionNone
	case key.Matches(msg, k.Right):
		return core.ActionRight, core.ActionNone
	case key.Matches(msg, k.Jump):
		return core.ActionJump, core.ActionNone
	case key.Matches(msg, k.Shoot):
		return core.ActionShoot, core.ActionNone
	case key.Matches(msg, k.Confirm):
		return core.ActionConfirm, core.ActionNone
	case key.Matches(msg, k.Back):
		return core.ActionBack, core.ActionNone
	case key.Matches(msg, k.Restart):
		return core.ActionRestart, core.ActionNone
	case key.Matches(msg, k.Pause):
		return core.ActionPause, core.ActionNone
	}
	return core.ActionNone, core.ActionNone
}

// MenuKeyMap holds the bindings of the mode picker.
type MenuKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Select key.Binding
	Scores key.Binding
	Quit   key.Binding
}

// DefaultMenuKeyMap returns the default mode picker bindings.
func DefaultMenuKeyMap() MenuKeyMap {
	return MenuKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k", "w"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j", "s"),
			key.WithHelp("↓/j", "down"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "select"),
		),
		Scores: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "scores"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp returns key bindings for the short help view.
func (k MenuKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Select, k.Scores, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k MenuKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

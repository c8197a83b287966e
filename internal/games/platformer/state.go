package platformer

import (
	"math"

	"github.com/vovakirdan/tui-platformer/internal/config"
)

// Mode is the top-level screen the session is on.
type Mode int

const (
	ModeMenu Mode = iota
	ModePlaying
	ModePaused
)

// String returns a lowercase name for the mode.
func (m Mode) String() string {
	switch m {
	case ModePlaying:
		return "playing"
	case ModePaused:
		return "paused"
	default:
		return "menu"
	}
}

// Phase is the step of a level transition.
type Phase int

const (
	PhaseNone Phase = iota
	PhaseFadeOut
	PhaseFadeIn
)

// String returns a lowercase name for the phase.
func (p Phase) String() string {
	switch p {
	case PhaseFadeOut:
		return "fade_out"
	case PhaseFadeIn:
		return "fade_in"
	default:
		return "none"
	}
}

// State holds the session rules: score, lives, invulnerability and the
// level transition sub-machine.
type State struct {
	Mode    Mode
	Score   int
	Lives   int
	Victory bool

	Invulnerable bool
	InvulnTimer  float64

	TransitionActive bool
	Phase            Phase
	TransitionTimer  float64
	NextLevel        int

	invulnTime float64
	fadeOut    float64
	fadeIn     float64
	lives      int
}

// NewState creates a state in the menu.
func NewState(t config.Tuning) *State {
	s := &State{
		invulnTime: t.Game.InvulnTime,
		fadeOut:    t.Transition.FadeOut,
		fadeIn:     t.Transition.FadeIn,
		lives:      t.Game.Lives,
	}
	s.NewGame()
	s.Mode = ModeMenu
	return s
}

// NewGame resets score, lives and every timer and enters PLAYING.
func (s *State) NewGame() {
	s.Mode = ModePlaying
	s.Score = 0
	s.Lives = s.lives
	s.Victory = false
	s.Invulnerable = false
	s.InvulnTimer = 0
	s.clearTransition()
}

func (s *State) clearTransition() {
	s.TransitionActive = false
	s.Phase = PhaseNone
	s.TransitionTimer = 0
	s.NextLevel = -1
}

// PlayerHit costs a life and starts the invulnerability window.
func (s *State) PlayerHit() {
	s.Lives--
	s.Invulnerable = true
	s.InvulnTimer = s.invulnTime
}

// TickInvulnerability counts the invulnerability window down.
func (s *State) TickInvulnerability(dt float64) {
	if !s.Invulnerable {
		return
	}
	s.InvulnTimer -= dt
	if s.InvulnTimer <= 0 {
		s.Invulnerable = false
	}
}

// StartTransition begins fading out towards level next.
func (s *State) StartTransition(next int) {
	s.TransitionActive = true
	s.Phase = PhaseFadeOut
	s.TransitionTimer = 0
	s.NextLevel = next
	s.Victory = true
}

// TickTransition advances the active transition. It returns true on the
// frame the fade-out finishes; the caller must then swap the level and call
// CompleteTransition.
func (s *State) TickTransition(dt float64) bool {
	if !s.TransitionActive {
		return false
	}
	s.TransitionTimer += dt

	switch s.Phase {
	case PhaseFadeOut:
		return s.fadeOut <= 0 || s.TransitionTimer >= s.fadeOut
	case PhaseFadeIn:
		if s.fadeIn <= 0 || s.TransitionTimer >= s.fadeIn {
			s.clearTransition()
			s.Victory = false
		}
	}
	return false
}

// CompleteTransition enters the fade-in after the level swap.
func (s *State) CompleteTransition() {
	s.Phase = PhaseFadeIn
	s.TransitionTimer = 0
}

// TransitionAlpha returns how dark the screen is, 0 (clear) to 1 (black).
func (s *State) TransitionAlpha() float64 {
	if !s.TransitionActive {
		return 0
	}
	switch s.Phase {
	case PhaseFadeOut:
		if s.fadeOut <= 0 {
			return 1
		}
		return math.Min(1, s.TransitionTimer/s.fadeOut)
	case PhaseFadeIn:
		if s.fadeIn <= 0 {
			return 0
		}
		return math.Max(0, 1-s.TransitionTimer/s.fadeIn)
	}
	return 0
}

// GameOver reports whether all lives are gone.
func (s *State) GameOver() bool {
	return s.Lives <= 0
}

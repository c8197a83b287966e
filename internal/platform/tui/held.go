package tui

import (
	"time"

	"github.com/vovakirdan/tui-platformer/internal/core"
)

// Terminals report key presses and auto-repeats but never releases. A walk
// key therefore counts as held for a while after each event: long enough
// after the first press to bridge the auto-repeat delay, and briefly after
// each repeat.
const (
	firstHold  = 450 * time.Millisecond
	repeatHold = 120 * time.Millisecond
)

// heldKeys emulates held walk keys from press events.
type heldKeys struct {
	until  map[core.Action]int // Last tick each action is held for
	tick   int
	first  int
	repeat int
}

func newHeldKeys(tickRate int) heldKeys {
	return heldKeys{
		until:  make(map[core.Action]int),
		first:  ticksFor(firstHold, tickRate),
		repeat: ticksFor(repeatHold, tickRate),
	}
}

// press records a key event for a walk action. Pressing one direction
// releases the other.
func (h *heldKeys) press(a core.Action) {
	switch a {
	case core.ActionLeft:
		delete(h.until, core.ActionRight)
	case core.ActionRight:
		delete(h.until, core.ActionLeft)
	}

	if end, ok := h.until[a]; ok && end >= h.tick {
		h.until[a] = h.tick + h.repeat
		return
	}
	h.until[a] = h.tick + h.first
}

// releaseAll drops every held action.
func (h *heldKeys) releaseAll() {
	for a := range h.until {
		delete(h.until, a)
	}
}

// apply marks the currently held actions in f.
func (h *heldKeys) apply(f *core.InputFrame) {
	for a, end := range h.until {
		if end >= h.tick {
			f.Set(a)
		}
	}
}

// advance moves to the next tick and forgets expired actions.
func (h *heldKeys) advance() {
	h.tick++
	for a, end := range h.until {
		if end < h.tick {
			delete(h.until, a)
		}
	}
}

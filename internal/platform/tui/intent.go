package tui

import (
	"time"

	"github.com/vovakirdan/numrun/internal/core"
)

// Terminals deliver key presses and auto-repeats but no releases. A
// direction therefore counts as held until its window runs out: the first
// press covers the keyboard's initial repeat delay, later repeats only
// need to bridge the repeat interval.
const (
	holdFirst  = 500 * time.Millisecond
	holdRepeat = 180 * time.Millisecond
)

// holdTracker turns walk key presses into a held movement intent.
type holdTracker struct {
	left, right time.Time // hold expiry
}

// press records a walk key press at now. Pressing one direction releases
// the other.
func (h *holdTracker) press(a core.Action, now time.Time) {
	switch a {
	case core.ActionLeft:
		h.left = extend(h.left, now)
		h.right = time.Time{}
	case core.ActionRight:
		h.right = extend(h.right, now)
		h.left = time.Time{}
	}
}

func extend(until, now time.Time) time.Time {
	if now.Before(until) {
		return now.Add(holdRepeat)
	}
	return now.Add(holdFirst)
}

// release drops every held direction.
func (h *holdTracker) release() {
	*h = holdTracker{}
}

// intent reports the directions still held at now.
func (h *holdTracker) intent(now time.Time) core.Intent {
	return core.Intent{
		Left:  now.Before(h.left),
		Right: now.Before(h.right),
	}
}

package tui

import (
	"time"

	"github.com/vovakirdan/cylitris/internal/core"
)

// DefaultReleaseAfter is used when the game does not configure one.
// It must exceed the terminal's initial key-repeat delay.
const DefaultReleaseAfter = 450 * time.Millisecond

// HoldDetector turns a stream of key presses into start/end edges.
// Terminals report a held key as a press followed by auto-repeats and
// never report the release, so the key counts as released once no press
// has arrived for releaseAfter.
type HoldDetector struct {
	releaseAfter time.Duration
	held         bool
	last         time.Time
}

// NewHoldDetector creates a detector. A non-positive releaseAfter
// selects DefaultReleaseAfter.
func NewHoldDetector(releaseAfter time.Duration) HoldDetector {
	if releaseAfter <= 0 {
		releaseAfter = DefaultReleaseAfter
	}
	return HoldDetector{releaseAfter: releaseAfter}
}

// Press records a key press. It returns ActionSoftDropStart on the first
// press of a hold and ActionNone for repeats.
func (h *HoldDetector) Press(now time.Time) core.Action {
	h.last = now
	if h.held {
		return core.ActionNone
	}
	h.held = true
	return core.ActionSoftDropStart
}

// Poll returns ActionSoftDropEnd once the hold has gone quiet.
func (h *HoldDetector) Poll(now time.Time) core.Action {
	if !h.held || now.Sub(h.last) < h.releaseAfter {
		return core.ActionNone
	}
	h.held = false
	return core.ActionSoftDropEnd
}

// Held reports whether a hold is in progress.
func (h *HoldDetector) Held() bool {
	return h.held
}

// SetReleaseAfter changes the quiet period. A non-positive value is ignored.
func (h *HoldDetector) SetReleaseAfter(d time.Duration) {
	if d > 0 {
		h.releaseAfter = d
	}
}

// Reset forgets any hold in progress without emitting an edge.
func (h *HoldDetector) Reset() {
	h.held = false
	h.last = time.Time{}
}

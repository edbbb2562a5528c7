package tui

import (
	"testing"
	"time"

	"github.com/vovakirdan/cylitris/internal/core"
)

func TestHoldDetectorEdges(t *testing.T) {
	t0 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	h := NewHoldDetector(300 * time.Millisecond)

	if got := h.Poll(t0); got != core.ActionNone {
		t.Errorf("Poll before any press = %v, want None", got)
	}

	if got := h.Press(t0); got != core.ActionSoftDropStart {
		t.Errorf("first Press = %v, want SoftDropStart", got)
	}

	// Auto-repeats keep the hold alive without new edges
	for i := 1; i <= 5; i++ {
		now := t0.Add(time.Duration(i) * 50 * time.Millisecond)
		if got := h.Press(now); got != core.ActionNone {
			t.Errorf("repeat %d = %v, want None", i, got)
		}
		if got := h.Poll(now); got != core.ActionNone {
			t.Errorf("Poll during hold = %v, want None", got)
		}
	}

	last := t0.Add(250 * time.Millisecond)
	if got := h.Poll(last.Add(299 * time.Millisecond)); got != core.ActionNone {
		t.Errorf("Poll just before release = %v, want None", got)
	}
	if got := h.Poll(last.Add(300 * time.Millisecond)); got != core.ActionSoftDropEnd {
		t.Errorf("Poll after quiet period = %v, want SoftDropEnd", got)
	}
	if h.Held() {
		t.Error("hold should be over")
	}

	// Only one end edge per hold
	if got := h.Poll(last.Add(time.Second)); got != core.ActionNone {
		t.Errorf("second Poll = %v, want None", got)
	}

	// A new press starts a new hold
	if got := h.Press(last.Add(2 * time.Second)); got != core.ActionSoftDropStart {
		t.Errorf("Press after release = %v, want SoftDropStart", got)
	}
}

func TestHoldDetectorDefaults(t *testing.T) {
	h := NewHoldDetector(0)
	if h.releaseAfter != DefaultReleaseAfter {
		t.Errorf("releaseAfter = %v, want %v", h.releaseAfter, DefaultReleaseAfter)
	}

	h.SetReleaseAfter(-time.Second)
	if h.releaseAfter != DefaultReleaseAfter {
		t.Errorf("negative SetReleaseAfter changed value to %v", h.releaseAfter)
	}

	h.SetReleaseAfter(100 * time.Millisecond)
	if h.releaseAfter != 100*time.Millisecond {
		t.Errorf("releaseAfter = %v, want 100ms", h.releaseAfter)
	}
}

func TestHoldDetectorReset(t *testing.T) {
	t0 := time.Now()
	h := NewHoldDetector(100 * time.Millisecond)
	h.Press(t0)
	h.Reset()

	if h.Held() {
		t.Error("Reset should drop the hold")
	}
	if got := h.Poll(t0.Add(time.Second)); got != core.ActionNone {
		t.Errorf("Poll after Reset = %v, want None", got)
	}
}

package timer

import (
	"time"

	"github.com/attnlabs/focusd/internal/domain/settings"
)

// State is the authoritative, persisted representation of the focus timer.
// Remaining is only meaningful relative to UpdatedAt: any reader must derive
// the true remaining time with EffectiveRemaining instead of trusting the
// stored value, which is what lets the timer survive process suspension.
type State struct {
	Running   bool  `json:"isRunning"`
	Remaining int   `json:"secondsRemaining"`
	WorkPhase bool  `json:"isWorkPhase"`
	UpdatedAt int64 `json:"lastUpdateTimestamp"` // epoch milliseconds
}

// DefaultState is the first-run timer: stopped at a full work phase.
func DefaultState(set settings.Settings, now time.Time) State {
	return State{
		Running:   false,
		Remaining: set.WorkSeconds(),
		WorkPhase: true,
		UpdatedAt: Millis(now),
	}
}

// EffectiveRemaining reconciles the stored countdown against the wall clock.
// For a stopped timer the stored value is already exact.
func (s State) EffectiveRemaining(now time.Time) int {
	if !s.Running {
		if s.Remaining < 0 {
			return 0
		}
		return s.Remaining
	}
	elapsed := (Millis(now) - s.UpdatedAt) / 1000
	remaining := int64(s.Remaining) - elapsed
	if remaining < 0 {
		return 0
	}
	return int(remaining)
}

// PhaseSeconds returns the configured duration for the phase the state is in.
func (s State) PhaseSeconds(set settings.Settings) int {
	if s.WorkPhase {
		return set.WorkSeconds()
	}
	return set.BreakSeconds()
}

// Millis converts t to epoch milliseconds.
func Millis(t time.Time) int64 {
	return t.UnixMilli()
}

package timer

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/attnlabs/focusd/internal/domain/settings"
	"github.com/attnlabs/focusd/internal/notify"
)

// persistEveryTicks throttles state writes while the timer runs. A crash
// between writes loses at most this many seconds of countdown, which the
// wall-clock reconciliation absorbs on the next read.
const persistEveryTicks = 5

// Store is the slice of the persisted store the engine needs.
type Store interface {
	TimerState(ctx context.Context) (State, error)
	SaveTimerState(ctx context.Context, s State) error
	TimerStats(ctx context.Context) (Stats, error)
	SaveTimerStats(ctx context.Context, s Stats) error
}

// SettingsSource supplies the current durations. Phase completions read it
// fresh so a settings change mid-phase shapes the next phase, not the running
// one.
type SettingsSource interface {
	Settings(ctx context.Context) (settings.Settings, error)
}

// Engine is the single writer of timer state. All transitions, including the
// phase flip when the countdown hits zero, happen under one mutex, so a
// completion fires exactly once no matter how many readers observe it.
type Engine struct {
	store    Store
	settings SettingsSource
	notifier notify.Notifier
	logger   *slog.Logger
	now      func() time.Time

	mu           sync.Mutex
	cur          *State
	sincePersist int
}

// EngineOption configures an Engine.
type EngineOption func(*Engine)

// WithEngineClock overrides the wall clock, for tests.
func WithEngineClock(now func() time.Time) EngineOption {
	return func(e *Engine) { e.now = now }
}

// NewEngine creates an engine. notifier may be nil.
func NewEngine(store Store, src SettingsSource, notifier notify.Notifier, logger *slog.Logger, opts ...EngineOption) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	e := &Engine{
		store:    store,
		settings: src,
		notifier: notifier,
		logger:   logger,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// State returns the reconciled timer state. A running timer whose countdown
// has expired while nobody was looking completes here, on the read path.
func (e *Engine) State(ctx context.Context) (State, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	s, err := e.loadLocked(ctx)
	if err != nil {
		return State{}, err
	}
	if !s.Running {
		return s, nil
	}

	now := e.now()
	eff := s.EffectiveRemaining(now)
	if eff == 0 {
		return e.completeLocked(ctx, s)
	}
	s.Remaining = eff
	s.UpdatedAt = Millis(now)
	e.cur = &s
	return s, nil
}

// Start resumes the countdown. Starting an already running timer is a no-op.
// A timer with no time left starts a fresh phase of the configured length.
func (e *Engine) Start(ctx context.Context) (State, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	s, err := e.loadLocked(ctx)
	if err != nil {
		return State{}, err
	}
	if s.Running {
		return s, nil
	}
	if s.Remaining <= 0 {
		set, err := e.settings.Settings(ctx)
		if err != nil {
			return State{}, fmt.Errorf("loading settings: %w", err)
		}
		s.Remaining = s.PhaseSeconds(set)
	}
	s.Running = true
	s.UpdatedAt = Millis(e.now())
	if err := e.persistLocked(ctx, s); err != nil {
		return State{}, err
	}
	return s, nil
}

// Pause freezes the countdown at its reconciled value.
func (e *Engine) Pause(ctx context.Context) (State, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	s, err := e.loadLocked(ctx)
	if err != nil {
		return State{}, err
	}
	if !s.Running {
		return s, nil
	}
	now := e.now()
	s.Remaining = s.EffectiveRemaining(now)
	s.Running = false
	s.UpdatedAt = Millis(now)
	if err := e.persistLocked(ctx, s); err != nil {
		return State{}, err
	}
	return s, nil
}

// Reset stops the timer and restores a full work phase at the current
// configured length.
func (e *Engine) Reset(ctx context.Context) (State, error) {
	set, err := e.settings.Settings(ctx)
	if err != nil {
		return State{}, fmt.Errorf("loading settings: %w", err)
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	s := DefaultState(set, e.now())
	if err := e.persistLocked(ctx, s); err != nil {
		return State{}, err
	}
	return s, nil
}

// SetState overwrites the timer wholesale. Clients use this to push a state
// they computed themselves; the engine only clamps the obviously broken bits.
func (e *Engine) SetState(ctx context.Context, s State) (State, error) {
	if s.Remaining < 0 {
		s.Remaining = 0
	}
	if s.UpdatedAt <= 0 {
		s.UpdatedAt = Millis(e.now())
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.persistLocked(ctx, s); err != nil {
		return State{}, err
	}
	return s, nil
}

// Tick advances a running timer by reconciling against the wall clock, so a
// stalled ticker cannot slow the countdown down. Persistence is throttled;
// the completion write is immediate.
func (e *Engine) Tick(ctx context.Context) {
	e.mu.Lock()
	defer e.mu.Unlock()

	s, err := e.loadLocked(ctx)
	if err != nil {
		e.logger.Warn("tick skipped, cannot load timer state", "error", err)
		return
	}
	if !s.Running {
		return
	}

	now := e.now()
	eff := s.EffectiveRemaining(now)
	s.Remaining = eff
	s.UpdatedAt = Millis(now)
	if eff == 0 {
		if _, err := e.completeLocked(ctx, s); err != nil {
			e.logger.Warn("phase completion failed", "error", err)
		}
		return
	}

	e.cur = &s
	e.sincePersist++
	if e.sincePersist >= persistEveryTicks {
		if err := e.persistLocked(ctx, s); err != nil {
			e.logger.Warn("failed to persist timer state", "error", err)
		}
	}
}

// Stats returns the accumulated session statistics.
func (e *Engine) Stats(ctx context.Context) (Stats, error) {
	st, err := e.store.TimerStats(ctx)
	if err != nil {
		return Stats{}, fmt.Errorf("loading timer stats: %w", err)
	}
	return st, nil
}

// Flush persists the cached state immediately. The driver calls this on
// shutdown so the throttle never costs a clean exit anything.
func (e *Engine) Flush(ctx context.Context) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.cur == nil {
		return
	}
	if err := e.persistLocked(ctx, *e.cur); err != nil {
		e.logger.Warn("failed to flush timer state", "error", err)
	}
}

func (e *Engine) loadLocked(ctx context.Context) (State, error) {
	if e.cur != nil {
		return *e.cur, nil
	}
	s, err := e.store.TimerState(ctx)
	if err != nil {
		return State{}, fmt.Errorf("loading timer state: %w", err)
	}
	e.cur = &s
	return s, nil
}

func (e *Engine) persistLocked(ctx context.Context, s State) error {
	if err := e.store.SaveTimerState(ctx, s); err != nil {
		return fmt.Errorf("saving timer state: %w", err)
	}
	e.cur = &s
	e.sincePersist = 0
	return nil
}

// completeLocked flips the phase when a countdown expires. The completed
// phase's duration comes from the current settings, as does the fresh
// countdown for the phase that follows. The timer stops; the user decides
// when the next phase begins.
func (e *Engine) completeLocked(ctx context.Context, s State) (State, error) {
	set, err := e.settings.Settings(ctx)
	if err != nil {
		return State{}, fmt.Errorf("loading settings: %w", err)
	}

	now := e.now()
	completedWork := s.WorkPhase
	completedMinutes := set.WorkMinutes
	if !completedWork {
		completedMinutes = set.BreakMinutes
	}

	s.WorkPhase = !completedWork
	s.Remaining = s.PhaseSeconds(set)
	s.Running = false
	s.UpdatedAt = Millis(now)
	if err := e.persistLocked(ctx, s); err != nil {
		return State{}, err
	}

	e.recordCompletion(ctx, completedWork, completedMinutes, now)
	if e.notifier != nil {
		msg := notify.Notification{Title: "Focus timer", Priority: 2}
		if completedWork {
			msg.Message = "Work session complete. Time for a break."
		} else {
			msg.Message = "Break over. Ready for another work session?"
		}
		e.notifier.Notify(ctx, msg)
	}
	e.logger.Info("phase complete", "work", completedWork, "minutes", completedMinutes)
	return s, nil
}

// recordCompletion updates the statistics record. Stats are best effort: a
// storage failure here must not undo the phase flip.
func (e *Engine) recordCompletion(ctx context.Context, workSession bool, minutes int, now time.Time) {
	st, err := e.store.TimerStats(ctx)
	if err != nil {
		e.logger.Warn("skipping stats update, cannot load timer stats", "error", err)
		return
	}
	entry := SessionEntry{
		ID:              uuid.NewString(),
		Timestamp:       Millis(now),
		DurationMinutes: minutes,
		WorkSession:     workSession,
	}
	st = st.RecordCompletion(entry, now)
	if err := e.store.SaveTimerStats(ctx, st); err != nil {
		e.logger.Warn("failed to persist timer stats", "error", err)
	}
}

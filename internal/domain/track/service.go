package track

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// DefaultFlushInterval bounds data loss from an abrupt termination: the
// tracker flushes a running session this often and restarts its clock.
const DefaultFlushInterval = 10 * time.Second

// Store is the slice of the persisted store the tracker needs.
type Store interface {
	TimeData(ctx context.Context) (TimeData, error)
	SaveTimeData(ctx context.Context, td TimeData) error
}

// Guard is notified whenever a new domain becomes active, so it can raise a
// focus-violation warning. Implementations must not block tab switching.
type Guard interface {
	DomainActivated(ctx context.Context, domain string)
}

// TabResolver re-resolves the currently focused tab. Idle transitions do not
// carry a URL, so the tracker queries this on idle -> active.
type TabResolver interface {
	ActiveTab(ctx context.Context) (string, bool)
}

// Tracker owns the current active session and turns tab/window/idle events
// into per-day per-domain seconds in the store. Storage failures are logged
// and skipped; losing one flush is acceptable, blocking tab switches is not.
type Tracker struct {
	store    Store
	guard    Guard
	tabs     TabResolver
	logger   *slog.Logger
	now      func() time.Time
	interval time.Duration

	mu      sync.Mutex
	session ActiveSession
	idle    bool
}

// Option configures a Tracker.
type Option func(*Tracker)

// WithClock overrides the wall clock, for tests.
func WithClock(now func() time.Time) Option {
	return func(t *Tracker) { t.now = now }
}

// WithFlushInterval overrides the periodic self-heal interval.
func WithFlushInterval(d time.Duration) Option {
	return func(t *Tracker) { t.interval = d }
}

// NewTracker creates a tracker. guard and tabs may be nil.
func NewTracker(store Store, guard Guard, tabs TabResolver, logger *slog.Logger, opts ...Option) *Tracker {
	if logger == nil {
		logger = slog.Default()
	}
	t := &Tracker{
		store:    store,
		guard:    guard,
		tabs:     tabs,
		logger:   logger,
		now:      time.Now,
		interval: DefaultFlushInterval,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// OnTabActivated handles a tab switch or in-tab navigation. The previous
// session is flushed before the new one starts, so no interval is counted
// against two domains.
func (t *Tracker) OnTabActivated(ctx context.Context, url string) {
	if url == "" {
		return
	}

	t.mu.Lock()
	if t.idle {
		t.mu.Unlock()
		return
	}
	t.flushLocked(ctx)
	domain := ExtractDomain(url)
	t.session = ActiveSession{
		Domain:    domain,
		URL:       url,
		StartedAt: t.now(),
	}
	t.mu.Unlock()

	if t.guard != nil {
		t.guard.DomainActivated(ctx, domain)
	}
}

// OnIdleStateChanged pauses attribution while the user is idle or the screen
// is locked, and resumes against the re-resolved focused tab on active.
func (t *Tracker) OnIdleStateChanged(ctx context.Context, state IdleState) {
	switch state {
	case IdleIdle, IdleLocked:
		t.mu.Lock()
		t.idle = true
		t.flushLocked(ctx)
		t.mu.Unlock()
	case IdleActive:
		t.mu.Lock()
		t.idle = false
		t.mu.Unlock()
		if t.tabs != nil {
			if url, ok := t.tabs.ActiveTab(ctx); ok {
				t.OnTabActivated(ctx, url)
			}
		}
	default:
		t.logger.Warn("unknown idle state", "state", string(state))
	}
}

// OnBrowserFocusLost ends attribution entirely: unlike idle, losing window
// focus also clears the active domain.
func (t *Tracker) OnBrowserFocusLost(ctx context.Context) {
	t.mu.Lock()
	t.flushLocked(ctx)
	t.session = ActiveSession{}
	t.mu.Unlock()
}

// Flush commits the running session's elapsed seconds and, when the user is
// still actively on a domain, restarts the session clock. Snapshot readers
// call this to fold the live session into the store without ending it.
func (t *Tracker) Flush(ctx context.Context) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.flushLocked(ctx)
	if !t.idle && t.session.Domain != "" {
		t.session.StartedAt = t.now()
	}
}

// Current returns the active session snapshot.
func (t *Tracker) Current() ActiveSession {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.session
}

// Run drives the periodic self-heal flush until ctx is cancelled, then
// performs one final flush so a clean shutdown loses nothing.
func (t *Tracker) Run(ctx context.Context) {
	ticker := time.NewTicker(t.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			t.Flush(context.WithoutCancel(ctx))
			return
		case <-ticker.C:
			t.Flush(ctx)
		}
	}
}

// flushLocked commits elapsed seconds for the current session. The session
// clock always stops, even when the duration is discarded as sub-second
// noise; the domain is kept so the caller decides what happens next.
// Callers must hold t.mu.
func (t *Tracker) flushLocked(ctx context.Context) {
	if t.session.Domain == "" || t.session.StartedAt.IsZero() {
		return
	}

	duration := int64(t.now().Sub(t.session.StartedAt) / time.Second)
	t.session.StartedAt = time.Time{}
	if duration < 1 {
		return
	}

	td, err := t.store.TimeData(ctx)
	if err != nil {
		t.logger.Warn("skipping flush, cannot load time data", "error", err)
		return
	}
	td = td.Clone()
	td.Add(DayKey(t.now()), t.session.Domain, duration)
	if err := t.store.SaveTimeData(ctx, td); err != nil {
		t.logger.Warn("failed to persist session", "domain", t.session.Domain, "seconds", duration, "error", err)
		return
	}
	t.logger.Debug("flushed session", "domain", t.session.Domain, "seconds", duration)
}

// Package ui is the terminal popup for the tracking daemon: a live timer,
// today's breakdown, the site list and the daily insight, all fetched over
// the daemon's RPC endpoint.
package ui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/attnlabs/focusd/internal/domain/report"
	"github.com/attnlabs/focusd/internal/domain/settings"
	"github.com/attnlabs/focusd/internal/domain/timer"
	"github.com/attnlabs/focusd/internal/rpc"
)

// Daemon is the RPC client surface the popup needs.
type Daemon interface {
	Call(ctx context.Context, action string, params any, out any) error
}

// MsgTick arrives once per second from the external ticker.
type MsgTick struct{}

// Screens.
const (
	screenTimer = iota
	screenStats
	screenSites
	screenInsight
)

// refreshEveryTicks bounds how stale the displayed state can get even when
// local countdown and server agree.
const refreshEveryTicks = 30

// driftToleranceSeconds is how far the local countdown may wander from the
// timestamp-derived value before snapping back.
const driftToleranceSeconds = 2

type msgState timer.State
type msgSettings settings.Settings
type msgDay report.DaySummary
type msgOverview report.Overview
type msgTimerStats timer.Stats
type msgInsight string
type msgErr struct{ err error }

// Model is the bubbletea model for the popup.
type Model struct {
	daemon Daemon

	screen     int
	state      timer.State
	settings   settings.Settings
	remaining  int
	sinceSync  int
	day        report.DaySummary
	overview   report.Overview
	timerStats timer.Stats
	insight    string
	selected   int
	err        error
}

// NewModel creates the popup model.
func NewModel(daemon Daemon) *Model {
	return &Model{daemon: daemon}
}

func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.fetchState(), m.fetchSettings(), m.fetchDay(), m.fetchTimerStats())
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case MsgTick:
		return m.handleTick()
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)
	case msgState:
		m.state = timer.State(msg)
		m.remaining = m.state.EffectiveRemaining(time.Now())
		m.sinceSync = 0
		m.err = nil
		return m, nil
	case msgSettings:
		m.settings = settings.Settings(msg)
		return m, nil
	case msgDay:
		m.day = report.DaySummary(msg)
		return m, nil
	case msgOverview:
		m.overview = report.Overview(msg)
		if m.selected >= len(m.overview.Sites) {
			m.selected = len(m.overview.Sites) - 1
		}
		if m.selected < 0 {
			m.selected = 0
		}
		return m, nil
	case msgTimerStats:
		m.timerStats = timer.Stats(msg)
		return m, nil
	case msgInsight:
		m.insight = string(msg)
		return m, nil
	case msgErr:
		m.err = msg.err
		return m, nil
	case tea.WindowSizeMsg:
		return m, nil
	}
	return m, nil
}

// handleTick drives the local countdown. The display decrements locally for
// smoothness; the timestamp-derived value wins whenever they drift apart.
func (m *Model) handleTick() (tea.Model, tea.Cmd) {
	if m.state.Running {
		if m.remaining > 0 {
			m.remaining--
		}
		expected := m.state.EffectiveRemaining(time.Now())
		drift := m.remaining - expected
		if drift < -driftToleranceSeconds || drift > driftToleranceSeconds {
			m.remaining = expected
		}
		if m.remaining == 0 {
			// The daemon flips the phase; pick up the new one.
			return m, m.fetchState()
		}
	}

	m.sinceSync++
	if m.sinceSync >= refreshEveryTicks {
		m.sinceSync = 0
		return m, tea.Batch(m.fetchState(), m.fetchDay())
	}
	return m, nil
}

func (m *Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "1":
		m.screen = screenTimer
	case "2":
		m.screen = screenStats
		return m, m.fetchDay()
	case "3":
		m.screen = screenSites
		return m, m.fetchOverview()
	case "4":
		m.screen = screenInsight
		return m, m.fetchInsight()
	case " ", "enter":
		if m.screen == screenTimer {
			return m, m.setRunning(!m.state.Running)
		}
	case "r":
		if m.screen == screenTimer {
			return m, m.resetTimer()
		}
	case "f":
		return m, m.toggleFocusMode()
	case "up", "k":
		if m.screen == screenSites && m.selected > 0 {
			m.selected--
		}
	case "down", "j":
		if m.screen == screenSites && m.selected < len(m.overview.Sites)-1 {
			m.selected++
		}
	case "c":
		if m.screen == screenSites {
			if site, ok := m.selectedSite(); ok {
				return m, m.cycleCategory(site.Domain)
			}
		}
	case "x":
		if m.screen == screenSites {
			if site, ok := m.selectedSite(); ok {
				return m, m.deleteSite(site.Domain)
			}
		}
	}
	return m, nil
}

func (m *Model) selectedSite() (report.SiteTotal, bool) {
	if m.selected < 0 || m.selected >= len(m.overview.Sites) {
		return report.SiteTotal{}, false
	}
	return m.overview.Sites[m.selected], true
}

func (m *Model) fetchState() tea.Cmd {
	return func() tea.Msg {
		var state timer.State
		if err := m.daemon.Call(context.Background(), "getPomodoroState", nil, &state); err != nil {
			return msgErr{err}
		}
		return msgState(state)
	}
}

func (m *Model) fetchSettings() tea.Cmd {
	return func() tea.Msg {
		var set settings.Settings
		if err := m.daemon.Call(context.Background(), "getSettings", nil, &set); err != nil {
			return msgErr{err}
		}
		return msgSettings(set)
	}
}

func (m *Model) fetchDay() tea.Cmd {
	return func() tea.Msg {
		var day report.DaySummary
		if err := m.daemon.Call(context.Background(), "getTodayStats", nil, &day); err != nil {
			return msgErr{err}
		}
		return msgDay(day)
	}
}

func (m *Model) fetchOverview() tea.Cmd {
	return func() tea.Msg {
		var overview report.Overview
		if err := m.daemon.Call(context.Background(), "listSites", nil, &overview); err != nil {
			return msgErr{err}
		}
		return msgOverview(overview)
	}
}

func (m *Model) fetchTimerStats() tea.Cmd {
	return func() tea.Msg {
		var stats timer.Stats
		if err := m.daemon.Call(context.Background(), "getTimerStats", nil, &stats); err != nil {
			return msgErr{err}
		}
		return msgTimerStats(stats)
	}
}

func (m *Model) fetchInsight() tea.Cmd {
	return func() tea.Msg {
		var resp rpc.InsightResponse
		if err := m.daemon.Call(context.Background(), "generateInsight", nil, &resp); err != nil {
			return msgErr{err}
		}
		return msgInsight(resp.Text)
	}
}

func (m *Model) setRunning(running bool) tea.Cmd {
	return func() tea.Msg {
		var state timer.State
		params := rpc.SetTimerRunningParams{Running: running}
		if err := m.daemon.Call(context.Background(), "setPomodoroState", params, &state); err != nil {
			return msgErr{err}
		}
		return msgState(state)
	}
}

func (m *Model) resetTimer() tea.Cmd {
	return func() tea.Msg {
		var state timer.State
		if err := m.daemon.Call(context.Background(), "resetPomodoro", nil, &state); err != nil {
			return msgErr{err}
		}
		return msgState(state)
	}
}

func (m *Model) toggleFocusMode() tea.Cmd {
	enabled := !m.settings.FocusMode
	return func() tea.Msg {
		var set settings.Settings
		params := rpc.SetFocusModeParams{Enabled: enabled}
		if err := m.daemon.Call(context.Background(), "setFocusMode", params, &set); err != nil {
			return msgErr{err}
		}
		return msgSettings(set)
	}
}

func (m *Model) cycleCategory(domain string) tea.Cmd {
	cmd := func() tea.Msg {
		var resp rpc.CategoryResponse
		params := rpc.DomainParams{Domain: domain}
		if err := m.daemon.Call(context.Background(), "cycleCategory", params, &resp); err != nil {
			return msgErr{err}
		}
		return nil
	}
	return tea.Sequence(cmd, m.fetchOverview())
}

func (m *Model) deleteSite(domain string) tea.Cmd {
	cmd := func() tea.Msg {
		var resp rpc.OKResponse
		params := rpc.DomainParams{Domain: domain}
		if err := m.daemon.Call(context.Background(), "deleteSite", params, &resp); err != nil {
			return msgErr{err}
		}
		return nil
	}
	return tea.Sequence(cmd, m.fetchOverview())
}

package rpc

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/attnlabs/focusd/internal/domain/category"
	"github.com/attnlabs/focusd/internal/domain/report"
	"github.com/attnlabs/focusd/internal/domain/settings"
	"github.com/attnlabs/focusd/internal/domain/timer"
	"github.com/attnlabs/focusd/internal/domain/track"
)

// TrackService defines tracking operations needed by the RPC surface.
type TrackService interface {
	OnTabActivated(ctx context.Context, url string)
	OnIdleStateChanged(ctx context.Context, state track.IdleState)
	OnBrowserFocusLost(ctx context.Context)
	Flush(ctx context.Context)
	Current() track.ActiveSession
}

// TimerService defines timer operations needed by the RPC surface.
type TimerService interface {
	State(ctx context.Context) (timer.State, error)
	Start(ctx context.Context) (timer.State, error)
	Pause(ctx context.Context) (timer.State, error)
	Reset(ctx context.Context) (timer.State, error)
	SetState(ctx context.Context, s timer.State) (timer.State, error)
	Stats(ctx context.Context) (timer.Stats, error)
}

// CategoryService defines category operations needed by the RPC surface.
type CategoryService interface {
	All(ctx context.Context) (category.Map, error)
	Set(ctx context.Context, domain string, cat category.Category) error
	Cycle(ctx context.Context, domain string) (category.Category, error)
}

// ReportService defines reporting operations needed by the RPC surface.
type ReportService interface {
	Day(ctx context.Context, day string) (report.DaySummary, error)
	Today(ctx context.Context) (report.DaySummary, error)
	Overview(ctx context.Context) (report.Overview, error)
	DeleteSite(ctx context.Context, domain string) error
	Export(ctx context.Context) (report.Archive, error)
	Import(ctx context.Context, arc report.Archive) error
	ClearAll(ctx context.Context) error
}

// InsightService defines insight generation needed by the RPC surface.
type InsightService interface {
	Summarize(ctx context.Context, day report.DaySummary, stats timer.Stats) string
}

// SettingsStore defines the settings slice of the store.
type SettingsStore interface {
	Settings(ctx context.Context) (settings.Settings, error)
	SaveSettings(ctx context.Context, s settings.Settings) error
}

// Handler dispatches RPC actions to domain services.
type Handler struct {
	tabs       *track.TabCache
	tracker    TrackService
	engine     TimerService
	categories CategoryService
	reports    ReportService
	insights   InsightService
	settings   SettingsStore
	logger     *slog.Logger
}

// NewHandler creates an RPC handler. tabs may be nil when no browser feeds
// the daemon.
func NewHandler(tabs *track.TabCache, tracker TrackService, engine TimerService, categories CategoryService, reports ReportService, insights InsightService, settingsStore SettingsStore, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		tabs:       tabs,
		tracker:    tracker,
		engine:     engine,
		categories: categories,
		reports:    reports,
		insights:   insights,
		settings:   settingsStore,
		logger:     logger,
	}
}

// Handle dispatches one action. Every branch returns either a JSON-encodable
// result or an error already mapped for the transport.
func (h *Handler) Handle(ctx context.Context, action string, params json.RawMessage) (any, error) {
	switch action {

	// Browser event stream.
	case "tabActivated":
		var req TabActivatedParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		if h.tabs != nil {
			h.tabs.Record(req.URL)
		}
		h.tracker.OnTabActivated(ctx, req.URL)
		return OKResponse{Success: true}, nil
	case "idleStateChanged":
		var req IdleStateParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		h.tracker.OnIdleStateChanged(ctx, track.IdleState(req.State))
		return OKResponse{Success: true}, nil
	case "browserFocusLost":
		h.tracker.OnBrowserFocusLost(ctx)
		return OKResponse{Success: true}, nil

	// Popup queries.
	case "getCurrentTab":
		sess := h.tracker.Current()
		return CurrentTabResponse{URL: sess.URL, Domain: sess.Domain}, nil
	case "getTodayStats":
		var req StatsParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		// Flush first so the summary includes the live session.
		h.tracker.Flush(ctx)
		if req.Date != "" {
			return call(h.reports.Day(ctx, req.Date))
		}
		return call(h.reports.Today(ctx))

	// Timer.
	case "getPomodoroState":
		return call(h.engine.State(ctx))
	case "setPomodoroState":
		var req SetTimerRunningParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		if req.Running {
			return call(h.engine.Start(ctx))
		}
		return call(h.engine.Pause(ctx))
	case "updatePomodoroState":
		var req timer.State
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		return call(h.engine.SetState(ctx, req))
	case "resetPomodoro":
		return call(h.engine.Reset(ctx))
	case "getTimerStats":
		return call(h.engine.Stats(ctx))

	// Settings and focus mode.
	case "getSettings":
		return call(h.settings.Settings(ctx))
	case "saveSettings":
		var req settings.Settings
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		req = req.Normalized()
		if err := h.settings.SaveSettings(ctx, req); err != nil {
			return nil, MapError(err)
		}
		return req, nil
	case "setFocusMode":
		var req SetFocusModeParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		set, err := h.settings.Settings(ctx)
		if err != nil {
			return nil, MapError(err)
		}
		set.FocusMode = req.Enabled
		if err := h.settings.SaveSettings(ctx, set); err != nil {
			return nil, MapError(err)
		}
		return set, nil

	// Categories.
	case "setCategory":
		var req SetCategoryParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		cat := category.Category(req.Category)
		if err := h.categories.Set(ctx, req.Domain, cat); err != nil {
			return nil, MapError(err)
		}
		return CategoryResponse{Domain: req.Domain, Category: req.Category}, nil
	case "cycleCategory":
		var req DomainParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		next, err := h.categories.Cycle(ctx, req.Domain)
		if err != nil {
			return nil, MapError(err)
		}
		return CategoryResponse{Domain: req.Domain, Category: string(next)}, nil

	// Sites and reporting.
	case "listSites":
		h.tracker.Flush(ctx)
		return call(h.reports.Overview(ctx))
	case "deleteSite":
		var req DomainParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		if err := h.reports.DeleteSite(ctx, req.Domain); err != nil {
			return nil, MapError(err)
		}
		return OKResponse{Success: true}, nil
	case "generateInsight":
		h.tracker.Flush(ctx)
		day, err := h.reports.Today(ctx)
		if err != nil {
			return nil, MapError(err)
		}
		stats, err := h.engine.Stats(ctx)
		if err != nil {
			return nil, MapError(err)
		}
		return InsightResponse{Text: h.insights.Summarize(ctx, day, stats)}, nil

	// Data lifecycle.
	case "exportData":
		h.tracker.Flush(ctx)
		return call(h.reports.Export(ctx))
	case "importData":
		var arc report.Archive
		if err := decodeParams(params, &arc); err != nil {
			return nil, err
		}
		if err := h.reports.Import(ctx, arc); err != nil {
			return nil, MapError(err)
		}
		return OKResponse{Success: true}, nil
	case "clearData":
		if err := h.reports.ClearAll(ctx); err != nil {
			return nil, MapError(err)
		}
		return OKResponse{Success: true}, nil

	default:
		return nil, unknownAction(action)
	}
}

// call collapses the common (value, error) pattern into a dispatch result.
func call[T any](v T, err error) (any, error) {
	if err != nil {
		return nil, MapError(err)
	}
	return v, nil
}

func decodeParams(params json.RawMessage, out any) error {
	if len(params) == 0 {
		return nil
	}
	if err := json.Unmarshal(params, out); err != nil {
		return invalidParams("malformed params: %v", err)
	}
	return nil
}

// Package assistant exposes a read-mostly MCP surface over the daemon's data,
// so an LLM client on the same machine can answer questions about browsing
// time and focus sessions.
package assistant

import (
	"context"
	"log/slog"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/attnlabs/focusd/internal/domain/report"
	"github.com/attnlabs/focusd/internal/domain/timer"
)

const serverInstructions = `focusd tracks per-domain browsing time and focus timer sessions.
Use get_today_stats for the current day's breakdown, list_sites for all-time
totals, get_timer_state and get_timer_stats for the focus timer, and
generate_insight for a ready-made daily summary. All tools are read-only.`

// ReportService defines reporting operations needed by the assistant.
type ReportService interface {
	Day(ctx context.Context, day string) (report.DaySummary, error)
	Today(ctx context.Context) (report.DaySummary, error)
	Overview(ctx context.Context) (report.Overview, error)
}

// TimerService defines timer reads needed by the assistant.
type TimerService interface {
	State(ctx context.Context) (timer.State, error)
	Stats(ctx context.Context) (timer.Stats, error)
}

// InsightService defines insight generation needed by the assistant.
type InsightService interface {
	Summarize(ctx context.Context, day report.DaySummary, stats timer.Stats) string
}

// Services contains the domain services the assistant reads from.
type Services struct {
	Reports  ReportService
	Timer    TimerService
	Insights InsightService
}

// Config contains server configuration.
type Config struct {
	Services Services
	Logger   *slog.Logger
}

// NewServer creates and configures the MCP server with all tools.
func NewServer(cfg Config) *sdkmcp.Server {
	server := sdkmcp.NewServer(&sdkmcp.Implementation{
		Name:    "focusd",
		Version: "0.1.0",
	}, &sdkmcp.ServerOptions{
		Instructions: serverInstructions,
		Logger:       cfg.Logger,
	})

	registerTools(server, cfg.Services)

	return server
}

// Run serves the assistant over stdio until ctx is cancelled.
func Run(ctx context.Context, cfg Config) error {
	server := NewServer(cfg)
	return server.Run(ctx, &sdkmcp.StdioTransport{})
}

package assistant

import (
	"context"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/attnlabs/focusd/internal/domain/report"
	"github.com/attnlabs/focusd/internal/domain/timer"
)

// GetStatsParams selects a day; empty means today.
type GetStatsParams struct {
	Date string `json:"date,omitempty" jsonschema:"day in YYYY-MM-DD form, defaults to today"`
}

// EmptyParams is used by tools that take no arguments.
type EmptyParams struct{}

// InsightResult carries a generated summary.
type InsightResult struct {
	Text string `json:"text"`
}

func registerTools(server *sdkmcp.Server, svc Services) {
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "get_today_stats",
		Description: "Get the per-domain time breakdown and productivity rate for a day",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, in GetStatsParams) (*sdkmcp.CallToolResult, report.DaySummary, error) {
		var (
			day report.DaySummary
			err error
		)
		if in.Date != "" {
			day, err = svc.Reports.Day(ctx, in.Date)
		} else {
			day, err = svc.Reports.Today(ctx)
		}
		return nil, day, err
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "list_sites",
		Description: "List every tracked site with its all-time seconds and category",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, _ EmptyParams) (*sdkmcp.CallToolResult, report.Overview, error) {
		overview, err := svc.Reports.Overview(ctx)
		return nil, overview, err
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "get_timer_state",
		Description: "Get the focus timer's current phase, remaining seconds and running flag",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, _ EmptyParams) (*sdkmcp.CallToolResult, timer.State, error) {
		state, err := svc.Timer.State(ctx)
		return nil, state, err
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "get_timer_stats",
		Description: "Get completed session counts, total focused minutes and day streaks",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, _ EmptyParams) (*sdkmcp.CallToolResult, timer.Stats, error) {
		stats, err := svc.Timer.Stats(ctx)
		return nil, stats, err
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "generate_insight",
		Description: "Generate a short plain-text productivity summary for today",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, _ EmptyParams) (*sdkmcp.CallToolResult, InsightResult, error) {
		day, err := svc.Reports.Today(ctx)
		if err != nil {
			return nil, InsightResult{}, err
		}
		stats, err := svc.Timer.Stats(ctx)
		if err != nil {
			return nil, InsightResult{}, err
		}
		return nil, InsightResult{Text: svc.Insights.Summarize(ctx, day, stats)}, nil
	})
}

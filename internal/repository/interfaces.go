package repository

import (
	"context"

	"github.com/attnlabs/focusd/internal/domain/category"
	"github.com/attnlabs/focusd/internal/domain/settings"
	"github.com/attnlabs/focusd/internal/domain/timer"
	"github.com/attnlabs/focusd/internal/domain/track"
)

// Store persists the five whole-value records the daemon keeps. Each getter
// returns a usable default when the record has never been written, so callers
// never deal with a missing-record case.
type Store interface {
	TimeData(ctx context.Context) (track.TimeData, error)
	SaveTimeData(ctx context.Context, td track.TimeData) error

	Categories(ctx context.Context) (category.Map, error)
	SaveCategories(ctx context.Context, m category.Map) error

	Settings(ctx context.Context) (settings.Settings, error)
	SaveSettings(ctx context.Context, s settings.Settings) error

	TimerState(ctx context.Context) (timer.State, error)
	SaveTimerState(ctx context.Context, s timer.State) error

	TimerStats(ctx context.Context) (timer.Stats, error)
	SaveTimerStats(ctx context.Context, s timer.Stats) error

	// Seed writes defaults for records that do not exist yet.
	Seed(ctx context.Context) error
	// Clear deletes every record.
	Clear(ctx context.Context) error
}

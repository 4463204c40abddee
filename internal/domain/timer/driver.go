package timer

import (
	"context"
	"log/slog"
	"time"
)

// Driver ticks the engine once per second. It exists so the engine itself
// stays free of goroutines and fully deterministic under test.
type Driver struct {
	engine   *Engine
	logger   *slog.Logger
	interval time.Duration
}

// NewDriver creates a driver with a one second tick.
func NewDriver(engine *Engine, logger *slog.Logger) *Driver {
	if logger == nil {
		logger = slog.Default()
	}
	return &Driver{engine: engine, logger: logger, interval: time.Second}
}

// Run ticks until ctx is cancelled, then flushes the throttled state so a
// clean shutdown never loses countdown progress.
func (d *Driver) Run(ctx context.Context) {
	ticker := time.NewTicker(d.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			d.engine.Flush(context.WithoutCancel(ctx))
			d.logger.Debug("timer driver stopped")
			return
		case <-ticker.C:
			d.engine.Tick(ctx)
		}
	}
}

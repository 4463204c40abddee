// Package guard raises a warning when the user opens an unproductive site
// during a running work phase with focus mode enabled.
package guard

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/attnlabs/focusd/internal/domain/category"
	"github.com/attnlabs/focusd/internal/domain/settings"
	"github.com/attnlabs/focusd/internal/domain/timer"
	"github.com/attnlabs/focusd/internal/notify"
)

// CategorySource resolves a domain's category.
type CategorySource interface {
	Get(ctx context.Context, domain string) (category.Category, error)
}

// SettingsSource supplies the current settings.
type SettingsSource interface {
	Settings(ctx context.Context) (settings.Settings, error)
}

// TimerSource supplies the reconciled timer state.
type TimerSource interface {
	State(ctx context.Context) (timer.State, error)
}

// Service checks each domain activation against focus mode. It never blocks:
// any lookup failure means no warning, and repeated activations of the same
// violating domain each warn once because the check runs per activation.
type Service struct {
	categories CategorySource
	settings   SettingsSource
	timer      TimerSource
	notifier   notify.Notifier
	logger     *slog.Logger
}

// NewService creates a guard service.
func NewService(categories CategorySource, settings SettingsSource, timer TimerSource, notifier notify.Notifier, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		categories: categories,
		settings:   settings,
		timer:      timer,
		notifier:   notifier,
		logger:     logger,
	}
}

// DomainActivated fires a warning when every condition holds at once: focus
// mode on, timer running, work phase, and the domain categorized unproductive.
func (s *Service) DomainActivated(ctx context.Context, domain string) {
	if domain == "" {
		return
	}

	set, err := s.settings.Settings(ctx)
	if err != nil {
		s.logger.Warn("focus check skipped, cannot load settings", "error", err)
		return
	}
	if !set.FocusMode {
		return
	}

	state, err := s.timer.State(ctx)
	if err != nil {
		s.logger.Warn("focus check skipped, cannot load timer state", "error", err)
		return
	}
	if !state.Running || !state.WorkPhase {
		return
	}

	cat, err := s.categories.Get(ctx, domain)
	if err != nil {
		s.logger.Warn("focus check skipped, cannot resolve category", "domain", domain, "error", err)
		return
	}
	if cat != category.Unproductive {
		return
	}

	s.logger.Info("focus violation", "domain", domain)
	if s.notifier != nil {
		s.notifier.Notify(ctx, notify.Notification{
			Title:    "Stay focused!",
			Message:  fmt.Sprintf("%s is marked unproductive. Back to work?", domain),
			Priority: 2,
		})
	}
}

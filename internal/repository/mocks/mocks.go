package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/attnlabs/focusd/internal/domain/category"
	"github.com/attnlabs/focusd/internal/domain/settings"
	"github.com/attnlabs/focusd/internal/domain/timer"
	"github.com/attnlabs/focusd/internal/domain/track"
)

// Store is a mock for repository.Store.
type Store struct {
	mock.Mock
}

func (m *Store) TimeData(ctx context.Context) (track.TimeData, error) {
	args := m.Called(ctx)
	if td, ok := args.Get(0).(track.TimeData); ok {
		return td, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Store) SaveTimeData(ctx context.Context, td track.TimeData) error {
	args := m.Called(ctx, td)
	return args.Error(0)
}

func (m *Store) Categories(ctx context.Context) (category.Map, error) {
	args := m.Called(ctx)
	if cats, ok := args.Get(0).(category.Map); ok {
		return cats, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Store) SaveCategories(ctx context.Context, cats category.Map) error {
	args := m.Called(ctx, cats)
	return args.Error(0)
}

func (m *Store) Settings(ctx context.Context) (settings.Settings, error) {
	args := m.Called(ctx)
	if set, ok := args.Get(0).(settings.Settings); ok {
		return set, args.Error(1)
	}
	return settings.Settings{}, args.Error(1)
}

func (m *Store) SaveSettings(ctx context.Context, set settings.Settings) error {
	args := m.Called(ctx, set)
	return args.Error(0)
}

func (m *Store) TimerState(ctx context.Context) (timer.State, error) {
	args := m.Called(ctx)
	if s, ok := args.Get(0).(timer.State); ok {
		return s, args.Error(1)
	}
	return timer.State{}, args.Error(1)
}

func (m *Store) SaveTimerState(ctx context.Context, s timer.State) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *Store) TimerStats(ctx context.Context) (timer.Stats, error) {
	args := m.Called(ctx)
	if s, ok := args.Get(0).(timer.Stats); ok {
		return s, args.Error(1)
	}
	return timer.Stats{}, args.Error(1)
}

func (m *Store) SaveTimerStats(ctx context.Context, s timer.Stats) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *Store) Seed(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *Store) Clear(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

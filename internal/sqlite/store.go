package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/attnlabs/focusd/internal/domain/category"
	"github.com/attnlabs/focusd/internal/domain/settings"
	"github.com/attnlabs/focusd/internal/domain/timer"
	"github.com/attnlabs/focusd/internal/domain/track"
	"github.com/attnlabs/focusd/internal/repository"
)

// Record names. These match the keys the export archive uses.
const (
	recordTimeData   = "timeData"
	recordCategories = "siteCategories"
	recordSettings   = "settings"
	recordTimerState = "pomodoroState"
	recordTimerStats = "pomodoroStats"
)

// Store implements repository.Store on the single records table. Every record
// is read and written whole, so each save is one atomic row replacement.
type Store struct {
	db *DB
}

// NewStore creates a Store.
func NewStore(db *DB) *Store {
	return &Store{db: db}
}

func (s *Store) get(ctx context.Context, name string, out any) error {
	query := `SELECT value FROM records WHERE name = ?`

	var raw string
	err := s.db.QueryRowContext(ctx, query, name).Scan(&raw)
	if err == sql.ErrNoRows {
		return repository.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to get record %s: %w", name, err)
	}

	if err := json.Unmarshal([]byte(raw), out); err != nil {
		return fmt.Errorf("failed to decode record %s: %w", name, repository.ErrCorruptRecord)
	}
	return nil
}

func (s *Store) put(ctx context.Context, name string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode record %s: %w", name, err)
	}

	query := `
		INSERT INTO records (name, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(name) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`
	if _, err := s.db.ExecContext(ctx, query, name, string(raw)); err != nil {
		return fmt.Errorf("failed to save record %s: %w", name, err)
	}
	return nil
}

// TimeData returns the tracked time record, or an empty one if never written.
func (s *Store) TimeData(ctx context.Context) (track.TimeData, error) {
	var td track.TimeData
	err := s.get(ctx, recordTimeData, &td)
	if err == repository.ErrNotFound {
		return make(track.TimeData), nil
	}
	if err != nil {
		return nil, err
	}
	if td == nil {
		td = make(track.TimeData)
	}
	return td, nil
}

// SaveTimeData writes the tracked time record.
func (s *Store) SaveTimeData(ctx context.Context, td track.TimeData) error {
	return s.put(ctx, recordTimeData, td)
}

// Categories returns the category map, or an empty one if never written.
func (s *Store) Categories(ctx context.Context) (category.Map, error) {
	var m category.Map
	err := s.get(ctx, recordCategories, &m)
	if err == repository.ErrNotFound {
		return make(category.Map), nil
	}
	if err != nil {
		return nil, err
	}
	if m == nil {
		m = make(category.Map)
	}
	return m, nil
}

// SaveCategories writes the category map.
func (s *Store) SaveCategories(ctx context.Context, m category.Map) error {
	return s.put(ctx, recordCategories, m)
}

// Settings returns the stored settings, normalized, or the defaults if never
// written.
func (s *Store) Settings(ctx context.Context) (settings.Settings, error) {
	var set settings.Settings
	err := s.get(ctx, recordSettings, &set)
	if err == repository.ErrNotFound {
		return settings.Default(), nil
	}
	if err != nil {
		return settings.Settings{}, err
	}
	return set.Normalized(), nil
}

// SaveSettings writes the settings record.
func (s *Store) SaveSettings(ctx context.Context, set settings.Settings) error {
	return s.put(ctx, recordSettings, set)
}

// TimerState returns the timer state, or a stopped full work phase derived
// from the current settings if never written.
func (s *Store) TimerState(ctx context.Context) (timer.State, error) {
	var st timer.State
	err := s.get(ctx, recordTimerState, &st)
	if err == repository.ErrNotFound {
		set, err := s.Settings(ctx)
		if err != nil {
			return timer.State{}, err
		}
		return timer.DefaultState(set, time.Now()), nil
	}
	if err != nil {
		return timer.State{}, err
	}
	return st, nil
}

// SaveTimerState writes the timer state record.
func (s *Store) SaveTimerState(ctx context.Context, st timer.State) error {
	return s.put(ctx, recordTimerState, st)
}

// TimerStats returns the timer statistics, or zeroed statistics if never
// written.
func (s *Store) TimerStats(ctx context.Context) (timer.Stats, error) {
	var st timer.Stats
	err := s.get(ctx, recordTimerStats, &st)
	if err == repository.ErrNotFound {
		return timer.Stats{}, nil
	}
	if err != nil {
		return timer.Stats{}, err
	}
	return st, nil
}

// SaveTimerStats writes the timer statistics record.
func (s *Store) SaveTimerStats(ctx context.Context, st timer.Stats) error {
	return s.put(ctx, recordTimerStats, st)
}

// Seed writes defaults for any record that does not exist yet. Existing
// records are left alone, so running it on every startup is safe.
func (s *Store) Seed(ctx context.Context) error {
	defaults := []struct {
		name  string
		value any
	}{
		{recordTimeData, make(track.TimeData)},
		{recordCategories, make(category.Map)},
		{recordSettings, settings.Default()},
		{recordTimerState, timer.DefaultState(settings.Default(), time.Now())},
		{recordTimerStats, timer.Stats{}},
	}

	for _, d := range defaults {
		raw, err := json.Marshal(d.value)
		if err != nil {
			return fmt.Errorf("failed to encode default %s: %w", d.name, err)
		}
		query := `INSERT INTO records (name, value) VALUES (?, ?) ON CONFLICT(name) DO NOTHING`
		if _, err := s.db.ExecContext(ctx, query, d.name, string(raw)); err != nil {
			return fmt.Errorf("failed to seed record %s: %w", d.name, err)
		}
	}
	return nil
}

// Clear deletes every record.
func (s *Store) Clear(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM records`); err != nil {
		return fmt.Errorf("failed to clear records: %w", err)
	}
	return nil
}

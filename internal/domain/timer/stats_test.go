package timer_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/attnlabs/focusd/internal/domain/timer"
)

func workEntry(ts time.Time, minutes int) timer.SessionEntry {
	return timer.SessionEntry{ID: "e", Timestamp: timer.Millis(ts), DurationMinutes: minutes, WorkSession: true}
}

func TestRecordCompletionWorkSession(t *testing.T) {
	now := time.Date(2026, 8, 28, 11, 0, 0, 0, time.Local)
	var stats timer.Stats

	stats = stats.RecordCompletion(workEntry(now, 25), now)
	require.Equal(t, 1, stats.TotalSessions)
	require.Equal(t, 25, stats.TotalMinutes)
	require.Equal(t, 1, stats.SessionsToday)
	require.Equal(t, 1, stats.CurrentStreakDays)
	require.Equal(t, 1, stats.LongestStreakDays)
	require.Len(t, stats.History, 1)

	stats = stats.RecordCompletion(workEntry(now.Add(time.Hour), 25), now.Add(time.Hour))
	require.Equal(t, 2, stats.TotalSessions)
	require.Equal(t, 2, stats.SessionsToday)
	require.Equal(t, 1, stats.CurrentStreakDays)
}

func TestRecordCompletionBreakOnlyAppendsHistory(t *testing.T) {
	now := time.Date(2026, 8, 28, 11, 0, 0, 0, time.Local)
	var stats timer.Stats

	entry := timer.SessionEntry{ID: "b", Timestamp: timer.Millis(now), DurationMinutes: 5, WorkSession: false}
	stats = stats.RecordCompletion(entry, now)
	require.Zero(t, stats.TotalSessions)
	require.Zero(t, stats.TotalMinutes)
	require.Zero(t, stats.SessionsToday)
	require.Len(t, stats.History, 1)
}

func TestRecordCompletionResetsSessionsTodayOnNewDay(t *testing.T) {
	day1 := time.Date(2026, 8, 27, 20, 0, 0, 0, time.Local)
	day2 := time.Date(2026, 8, 28, 9, 0, 0, 0, time.Local)
	var stats timer.Stats

	stats = stats.RecordCompletion(workEntry(day1, 25), day1)
	stats = stats.RecordCompletion(workEntry(day1.Add(time.Hour), 25), day1.Add(time.Hour))
	require.Equal(t, 2, stats.SessionsToday)

	stats = stats.RecordCompletion(workEntry(day2, 25), day2)
	require.Equal(t, 1, stats.SessionsToday)
	require.Equal(t, 3, stats.TotalSessions)
	require.Equal(t, 2, stats.CurrentStreakDays)
	require.Equal(t, 2, stats.LongestStreakDays)
}

func TestRecomputeStreaks(t *testing.T) {
	day := func(d int) time.Time {
		return time.Date(2026, 8, d, 12, 0, 0, 0, time.Local)
	}
	history := []timer.SessionEntry{
		workEntry(day(20), 25),
		workEntry(day(21), 25),
		workEntry(day(22), 25),
		// gap on the 23rd
		workEntry(day(24), 25),
		workEntry(day(25), 25),
	}

	current, longest := timer.RecomputeStreaks(history, day(25))
	require.Equal(t, 2, current)
	require.Equal(t, 3, longest)

	// A run that ended the day before yesterday is broken.
	current, _ = timer.RecomputeStreaks(history, day(27))
	require.Zero(t, current)

	// Yesterday's run still counts as current.
	current, _ = timer.RecomputeStreaks(history, day(26))
	require.Equal(t, 2, current)
}

func TestRecomputeStreaksIgnoresBreaks(t *testing.T) {
	now := time.Date(2026, 8, 28, 12, 0, 0, 0, time.Local)
	history := []timer.SessionEntry{
		{ID: "b", Timestamp: timer.Millis(now), DurationMinutes: 5, WorkSession: false},
	}
	current, longest := timer.RecomputeStreaks(history, now)
	require.Zero(t, current)
	require.Zero(t, longest)
}

func TestMergeStatsNeverReduces(t *testing.T) {
	now := time.Date(2026, 8, 28, 12, 0, 0, 0, time.Local)
	existing := timer.Stats{
		TotalSessions:     10,
		TotalMinutes:      250,
		SessionsToday:     3,
		LastSessionDay:    "2026-08-28",
		CurrentStreakDays: 4,
		LongestStreakDays: 9,
		History:           []timer.SessionEntry{workEntry(now, 25)},
	}
	imported := timer.Stats{
		TotalSessions:     2,
		TotalMinutes:      50,
		SessionsToday:     1,
		CurrentStreakDays: 7,
		LongestStreakDays: 7,
		History:           []timer.SessionEntry{workEntry(now.Add(-time.Hour), 25)},
	}

	merged := timer.MergeStats(existing, imported)
	require.Equal(t, 12, merged.TotalSessions)
	require.Equal(t, 300, merged.TotalMinutes)
	require.Equal(t, 3, merged.SessionsToday)
	require.Equal(t, 7, merged.CurrentStreakDays)
	require.Equal(t, 9, merged.LongestStreakDays)
	require.Len(t, merged.History, 2)

	require.GreaterOrEqual(t, merged.TotalSessions, existing.TotalSessions)
	require.GreaterOrEqual(t, merged.TotalMinutes, existing.TotalMinutes)
	require.GreaterOrEqual(t, merged.SessionsToday, existing.SessionsToday)
	require.GreaterOrEqual(t, merged.CurrentStreakDays, existing.CurrentStreakDays)
	require.GreaterOrEqual(t, merged.LongestStreakDays, existing.LongestStreakDays)
}

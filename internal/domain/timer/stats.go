package timer

import (
	"sort"
	"time"
)

const dayLayout = "2006-01-02"

// SessionEntry is one completed phase in the session history.
type SessionEntry struct {
	ID              string `json:"id"`
	Timestamp       int64  `json:"timestamp"` // epoch milliseconds
	DurationMinutes int    `json:"durationMinutes"`
	WorkSession     bool   `json:"wasWorkSession"`
}

// Stats accumulates completed work sessions. Counters only ever grow;
// SessionsToday resets when a completion lands on a new local day.
type Stats struct {
	TotalSessions     int            `json:"totalSessions"`
	TotalMinutes      int            `json:"totalMinutes"`
	SessionsToday     int            `json:"sessionsToday"`
	LastSessionDay    string         `json:"lastSessionDate,omitempty"`
	CurrentStreakDays int            `json:"currentStreak"`
	LongestStreakDays int            `json:"longestStreak"`
	History           []SessionEntry `json:"sessionHistory"`
}

// RecordCompletion appends entry and, for work sessions, advances every
// counter. Break completions only land in the history. now anchors the
// local-day bookkeeping and must match the entry's timestamp.
func (s Stats) RecordCompletion(entry SessionEntry, now time.Time) Stats {
	s.History = append(append([]SessionEntry(nil), s.History...), entry)
	if !entry.WorkSession {
		return s
	}

	day := now.Format(dayLayout)
	s.TotalSessions++
	s.TotalMinutes += entry.DurationMinutes
	if s.LastSessionDay != day {
		s.SessionsToday = 0
		s.LastSessionDay = day
	}
	s.SessionsToday++
	s.CurrentStreakDays, s.LongestStreakDays = RecomputeStreaks(s.History, now)
	return s
}

// RecomputeStreaks derives the current and longest runs of consecutive local
// days with at least one completed work session. The current streak counts a
// run ending today or yesterday; an older run has already been broken.
func RecomputeStreaks(history []SessionEntry, now time.Time) (current, longest int) {
	seen := make(map[string]struct{})
	for _, e := range history {
		if e.WorkSession {
			seen[time.UnixMilli(e.Timestamp).In(now.Location()).Format(dayLayout)] = struct{}{}
		}
	}
	if len(seen) == 0 {
		return 0, 0
	}

	days := make([]time.Time, 0, len(seen))
	for key := range seen {
		d, err := time.ParseInLocation(dayLayout, key, now.Location())
		if err != nil {
			continue
		}
		days = append(days, d)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })

	run := 0
	for i, d := range days {
		if i > 0 && days[i-1].AddDate(0, 0, 1).Equal(d) {
			run++
		} else {
			run = 1
		}
		if run > longest {
			longest = run
		}
	}

	today, _ := time.ParseInLocation(dayLayout, now.Format(dayLayout), now.Location())
	last := days[len(days)-1]
	if last.Equal(today) || last.AddDate(0, 0, 1).Equal(today) {
		current = 1
		for i := len(days) - 2; i >= 0; i-- {
			if !days[i].AddDate(0, 0, 1).Equal(days[i+1]) {
				break
			}
			current++
		}
	}
	return current, longest
}

// MergeStats folds imported statistics into the existing ones without ever
// reducing them: totals sum, today's count and streaks take the larger value,
// and histories concatenate.
func MergeStats(existing, imported Stats) Stats {
	merged := Stats{
		TotalSessions:  existing.TotalSessions + imported.TotalSessions,
		TotalMinutes:   existing.TotalMinutes + imported.TotalMinutes,
		SessionsToday:  maxInt(existing.SessionsToday, imported.SessionsToday),
		LastSessionDay: existing.LastSessionDay,
	}
	if merged.LastSessionDay == "" {
		merged.LastSessionDay = imported.LastSessionDay
	}
	merged.CurrentStreakDays = maxInt(existing.CurrentStreakDays, imported.CurrentStreakDays)
	merged.LongestStreakDays = maxInt(existing.LongestStreakDays, imported.LongestStreakDays)
	merged.History = append(append([]SessionEntry(nil), existing.History...), imported.History...)
	return merged
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

package report

import (
	"fmt"
	"time"

	"github.com/attnlabs/focusd/internal/domain/category"
	"github.com/attnlabs/focusd/internal/domain/settings"
	"github.com/attnlabs/focusd/internal/domain/timer"
	"github.com/attnlabs/focusd/internal/domain/track"
)

// ArchiveVersion marks the export format. Imports accept any archive that
// carries the required records, so the version is informational.
const ArchiveVersion = "1.0.0"

// Totals groups per-category seconds for one day.
type Totals struct {
	Work         int64 `json:"work"`
	Neutral      int64 `json:"neutral"`
	Unproductive int64 `json:"unproductive"`
	All          int64 `json:"total"`
}

// DaySummary splits one day's tracked time by category.
type DaySummary struct {
	Day          string           `json:"date"`
	Work         map[string]int64 `json:"work"`
	Neutral      map[string]int64 `json:"neutral"`
	Unproductive map[string]int64 `json:"unproductive"`
	Totals       Totals           `json:"totals"`
	Rate         int              `json:"productivityRate"`
}

// SiteTotal is one domain's standing across all recorded days.
type SiteTotal struct {
	Domain   string            `json:"domain"`
	Seconds  int64             `json:"seconds"`
	Category category.Category `json:"category"`
}

// Overview is the all-time aggregate across every recorded day.
type Overview struct {
	Days   int         `json:"days"`
	Sites  []SiteTotal `json:"sites"`
	Totals Totals      `json:"totals"`
	Rate   int         `json:"productivityRate"`
}

// Archive is the full-state export document.
type Archive struct {
	ExportDate     time.Time          `json:"exportDate"`
	Version        string             `json:"version"`
	TimeData       track.TimeData     `json:"timeData"`
	SiteCategories category.Map       `json:"siteCategories"`
	Settings       *settings.Settings `json:"settings,omitempty"`
	PomodoroStats  *timer.Stats       `json:"pomodoroStats,omitempty"`
}

// ProductivityRate is the percentage of categorized time spent on work
// domains, with neutral time excluded from the denominator. No categorized
// time means a rate of zero.
func ProductivityRate(work, unproductive int64) int {
	total := work + unproductive
	if total == 0 {
		return 0
	}
	return int(work * 100 / total)
}

// FormatSeconds renders a duration the way the popup displays it.
func FormatSeconds(seconds int64) string {
	if seconds < 0 {
		seconds = 0
	}
	switch {
	case seconds < 60:
		return fmt.Sprintf("%ds", seconds)
	case seconds < 3600:
		return fmt.Sprintf("%dm", seconds/60)
	default:
		return fmt.Sprintf("%dh %dm", seconds/3600, (seconds%3600)/60)
	}
}

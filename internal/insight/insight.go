// Package insight turns a day's aggregated activity into a short, friendly
// summary. An external text generator can supply the wording; its output is
// sanitized, and a rule-based fallback guarantees the feature never fails.
package insight

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"github.com/attnlabs/focusd/internal/domain/report"
	"github.com/attnlabs/focusd/internal/domain/timer"
)

// maxInsightLen caps generated summaries. Anything longer is truncated at a
// word boundary with an ellipsis.
const maxInsightLen = 500

// Generator produces free-form summary text from a prompt. Implementations
// typically wrap an LLM API; errors route the summarizer to its fallback.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// forbidden matches wording that would make the summary read as health
// advice. A generated text containing any of these is discarded outright
// rather than edited.
var forbidden = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\bdiagnos`),
	regexp.MustCompile(`(?i)\bdisorder`),
	regexp.MustCompile(`(?i)\badhd\b`),
	regexp.MustCompile(`(?i)\bprescri`),
	regexp.MustCompile(`(?i)\btherap`),
	regexp.MustCompile(`(?i)\bmedicat`),
	regexp.MustCompile(`(?i)\bsymptom`),
	regexp.MustCompile(`(?i)\bmental (illness|health condition)`),
	regexp.MustCompile(`(?i)\bclinical`),
	regexp.MustCompile(`(?i)\btreatment\b`),
}

// Summarizer generates daily insights. gen may be nil, in which case every
// insight comes from the rule-based fallback.
type Summarizer struct {
	gen    Generator
	logger *slog.Logger
}

// NewSummarizer creates a summarizer.
func NewSummarizer(gen Generator, logger *slog.Logger) *Summarizer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Summarizer{gen: gen, logger: logger}
}

// Summarize produces a one-paragraph insight for the given day summary and
// timer statistics. It never returns an error: generator failures and
// rejected output fall back to rule-based text.
func (s *Summarizer) Summarize(ctx context.Context, day report.DaySummary, stats timer.Stats) string {
	if s.gen != nil {
		text, err := s.gen.Generate(ctx, buildPrompt(day, stats))
		if err != nil {
			s.logger.Warn("insight generation failed, using fallback", "error", err)
		} else if clean, ok := Sanitize(text); ok {
			return clean
		} else {
			s.logger.Warn("generated insight rejected by sanitizer")
		}
	}
	return Fallback(day, stats)
}

// Sanitize validates and trims generated text. It reports false when the
// text is empty or contains forbidden wording.
func Sanitize(text string) (string, bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", false
	}
	for _, re := range forbidden {
		if re.MatchString(text) {
			return "", false
		}
	}
	if len(text) > maxInsightLen {
		cut := text[:maxInsightLen]
		if idx := strings.LastIndexByte(cut, ' '); idx > 0 {
			cut = cut[:idx]
		}
		text = cut + "…"
	}
	return text, true
}

// Fallback composes a summary from thresholds alone. It always produces
// something, including for a day with no tracked activity.
func Fallback(day report.DaySummary, stats timer.Stats) string {
	if day.Totals.All == 0 {
		return "No browsing activity tracked today yet. Once you start working, your time breakdown will show up here."
	}

	var b strings.Builder
	total := report.FormatSeconds(day.Totals.All)
	work := report.FormatSeconds(day.Totals.Work)
	switch {
	case day.Rate >= 70:
		fmt.Fprintf(&b, "Great focus today: %d%% of your categorized time (%s of %s tracked) went to work sites.", day.Rate, work, total)
	case day.Rate >= 40:
		fmt.Fprintf(&b, "A balanced day: %d%% of your categorized time went to work sites, %s tracked in total.", day.Rate, total)
	default:
		fmt.Fprintf(&b, "Distractions won today: only %d%% of your categorized time went to work sites out of %s tracked.", day.Rate, total)
	}

	if stats.SessionsToday > 0 {
		fmt.Fprintf(&b, " You completed %d focus session%s today.", stats.SessionsToday, plural(stats.SessionsToday))
	}
	if stats.CurrentStreakDays > 1 {
		fmt.Fprintf(&b, " That keeps your %d-day streak alive.", stats.CurrentStreakDays)
	}
	return b.String()
}

// buildPrompt renders the day's numbers for the generator. Only aggregates
// are included; individual URLs never leave the process.
func buildPrompt(day report.DaySummary, stats timer.Stats) string {
	var b strings.Builder
	b.WriteString("Write a short, encouraging productivity summary (2-3 sentences, plain text) for this browsing day. ")
	b.WriteString("Do not give medical or mental-health advice.\n")
	fmt.Fprintf(&b, "Work: %s. Neutral: %s. Unproductive: %s. Productivity rate: %d%%.\n",
		report.FormatSeconds(day.Totals.Work),
		report.FormatSeconds(day.Totals.Neutral),
		report.FormatSeconds(day.Totals.Unproductive),
		day.Rate)
	fmt.Fprintf(&b, "Focus sessions completed today: %d. Current streak: %d days.\n",
		stats.SessionsToday, stats.CurrentStreakDays)
	return b.String()
}

func plural(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}

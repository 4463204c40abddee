package insight_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/attnlabs/focusd/internal/domain/report"
	"github.com/attnlabs/focusd/internal/domain/timer"
	"github.com/attnlabs/focusd/internal/insight"
)

type fixedGenerator struct {
	text string
	err  error
}

func (g fixedGenerator) Generate(context.Context, string) (string, error) {
	return g.text, g.err
}

func daySummary(work, neutral, unproductive int64) report.DaySummary {
	day := report.AggregateDay("2026-08-28", nil, nil)
	day.Totals.Work = work
	day.Totals.Neutral = neutral
	day.Totals.Unproductive = unproductive
	day.Totals.All = work + neutral + unproductive
	day.Rate = report.ProductivityRate(work, unproductive)
	return day
}

func TestSanitizeRejectsMedicalWording(t *testing.T) {
	rejected := []string{
		"You may have ADHD, consider getting a diagnosis.",
		"This pattern suggests an attention disorder.",
		"Therapy could help with your focus.",
		"These are symptoms of burnout.",
	}
	for _, text := range rejected {
		_, ok := insight.Sanitize(text)
		require.False(t, ok, "should reject: %s", text)
	}

	clean, ok := insight.Sanitize("Great focus today, most of your time went to work sites.")
	require.True(t, ok)
	require.NotEmpty(t, clean)
}

func TestSanitizeRejectsEmpty(t *testing.T) {
	_, ok := insight.Sanitize("   \n ")
	require.False(t, ok)
}

func TestSanitizeCapsLength(t *testing.T) {
	long := strings.Repeat("focus and flow ", 100)
	clean, ok := insight.Sanitize(long)
	require.True(t, ok)
	require.LessOrEqual(t, len(clean), 510)
	require.True(t, strings.HasSuffix(clean, "…"))
}

func TestSummarizeUsesGeneratorWhenClean(t *testing.T) {
	s := insight.NewSummarizer(fixedGenerator{text: "A solid day of focused work."}, nil)
	got := s.Summarize(context.Background(), daySummary(3000, 0, 1200), timer.Stats{})
	require.Equal(t, "A solid day of focused work.", got)
}

func TestSummarizeFallsBackOnGeneratorError(t *testing.T) {
	s := insight.NewSummarizer(fixedGenerator{err: errors.New("api down")}, nil)
	got := s.Summarize(context.Background(), daySummary(3000, 0, 1200), timer.Stats{})
	require.NotEmpty(t, got)
	require.Contains(t, got, "71%")
}

func TestSummarizeFallsBackOnRejectedOutput(t *testing.T) {
	s := insight.NewSummarizer(fixedGenerator{text: "You should seek a diagnosis."}, nil)
	got := s.Summarize(context.Background(), daySummary(3000, 0, 1200), timer.Stats{})
	require.NotContains(t, got, "diagnosis")
	require.NotEmpty(t, got)
}

func TestFallbackThresholds(t *testing.T) {
	high := insight.Fallback(daySummary(7000, 100, 3000), timer.Stats{})
	require.Contains(t, high, "Great focus")

	mid := insight.Fallback(daySummary(5000, 0, 5000), timer.Stats{})
	require.Contains(t, mid, "balanced")

	low := insight.Fallback(daySummary(1000, 0, 9000), timer.Stats{})
	require.Contains(t, low, "Distractions")
}

func TestFallbackZeroActivity(t *testing.T) {
	got := insight.Fallback(daySummary(0, 0, 0), timer.Stats{})
	require.Contains(t, got, "No browsing activity")
}

func TestFallbackMentionsSessionsAndStreak(t *testing.T) {
	stats := timer.Stats{SessionsToday: 3, CurrentStreakDays: 5}
	got := insight.Fallback(daySummary(3000, 0, 1200), stats)
	require.Contains(t, got, "3 focus sessions")
	require.Contains(t, got, "5-day streak")
}

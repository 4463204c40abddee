package report_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/attnlabs/focusd/internal/domain/category"
	"github.com/attnlabs/focusd/internal/domain/report"
	"github.com/attnlabs/focusd/internal/domain/settings"
	"github.com/attnlabs/focusd/internal/domain/timer"
	"github.com/attnlabs/focusd/internal/domain/track"
)

// memStore is an in-memory report.Store.
type memStore struct {
	mu    sync.Mutex
	td    track.TimeData
	cats  category.Map
	set   settings.Settings
	stats timer.Stats
}

func newMemStore() *memStore {
	return &memStore{
		td:   make(track.TimeData),
		cats: make(category.Map),
		set:  settings.Default(),
	}
}

func (s *memStore) TimeData(context.Context) (track.TimeData, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.td.Clone(), nil
}

func (s *memStore) SaveTimeData(_ context.Context, td track.TimeData) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.td = td.Clone()
	return nil
}

func (s *memStore) Categories(context.Context) (category.Map, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cats.Clone(), nil
}

func (s *memStore) SaveCategories(_ context.Context, m category.Map) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cats = m.Clone()
	return nil
}

func (s *memStore) Settings(context.Context) (settings.Settings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.set, nil
}

func (s *memStore) SaveSettings(_ context.Context, set settings.Settings) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.set = set
	return nil
}

func (s *memStore) TimerStats(context.Context) (timer.Stats, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stats, nil
}

func (s *memStore) SaveTimerStats(_ context.Context, st timer.Stats) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stats = st
	return nil
}

func (s *memStore) Clear(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.td = nil
	s.cats = nil
	s.set = settings.Settings{}
	s.stats = timer.Stats{}
	return nil
}

func (s *memStore) Seed(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.td == nil {
		s.td = make(track.TimeData)
	}
	if s.cats == nil {
		s.cats = make(category.Map)
	}
	s.set = s.set.Normalized()
	return nil
}

var testNow = time.Date(2026, 8, 28, 15, 0, 0, 0, time.Local)

func newService(store *memStore) *report.Service {
	return report.NewService(store, nil, report.WithClock(func() time.Time { return testNow }))
}

func TestAggregateDaySplitsByCategory(t *testing.T) {
	rec := track.DayRecord{
		"github.com":  3000,
		"docs.rs":     600,
		"reddit.com":  1200,
		"example.com": 450,
	}
	cats := category.Map{
		"github.com": category.Work,
		"docs.rs":    category.Work,
		"reddit.com": category.Unproductive,
	}

	sum := report.AggregateDay("2026-08-28", rec, cats)
	require.Equal(t, int64(3600), sum.Totals.Work)
	require.Equal(t, int64(450), sum.Totals.Neutral)
	require.Equal(t, int64(1200), sum.Totals.Unproductive)
	require.Equal(t, int64(5250), sum.Totals.All)
	require.Equal(t, sum.Totals.All, sum.Totals.Work+sum.Totals.Neutral+sum.Totals.Unproductive)
	require.Equal(t, int64(3000), sum.Work["github.com"])
	require.Equal(t, int64(450), sum.Neutral["example.com"])
}

func TestProductivityRateExcludesNeutral(t *testing.T) {
	// 3000s work, 1200s unproductive: 3000/4200 = 71.4%, truncated.
	rec := track.DayRecord{"github.com": 3000, "reddit.com": 1200, "example.com": 9999}
	cats := category.Map{"github.com": category.Work, "reddit.com": category.Unproductive}

	sum := report.AggregateDay("2026-08-28", rec, cats)
	require.Equal(t, 71, sum.Rate)
}

func TestProductivityRateZeroWhenNoCategorizedTime(t *testing.T) {
	require.Zero(t, report.ProductivityRate(0, 0))

	rec := track.DayRecord{"example.com": 500}
	sum := report.AggregateDay("2026-08-28", rec, nil)
	require.Zero(t, sum.Rate)
}

func TestAggregateDayEmpty(t *testing.T) {
	sum := report.AggregateDay("2026-08-28", nil, nil)
	require.Equal(t, "2026-08-28", sum.Day)
	require.Empty(t, sum.Work)
	require.Empty(t, sum.Neutral)
	require.Empty(t, sum.Unproductive)
	require.Zero(t, sum.Totals.All)
	require.Zero(t, sum.Rate)
}

func TestAggregateAllSortsBySeconds(t *testing.T) {
	td := track.TimeData{
		"2026-08-27": {"github.com": 100, "reddit.com": 900},
		"2026-08-28": {"github.com": 1000},
	}
	cats := category.Map{"github.com": category.Work, "reddit.com": category.Unproductive}

	overview := report.AggregateAll(td, cats)
	require.Equal(t, 2, overview.Days)
	require.Len(t, overview.Sites, 2)
	require.Equal(t, "github.com", overview.Sites[0].Domain)
	require.Equal(t, int64(1100), overview.Sites[0].Seconds)
	require.Equal(t, category.Work, overview.Sites[0].Category)
	require.Equal(t, int64(2000), overview.Totals.All)
	require.Equal(t, 55, overview.Rate)
}

func TestServiceTodayUsesClock(t *testing.T) {
	store := newMemStore()
	store.td = track.TimeData{"2026-08-28": {"github.com": 60}}
	svc := newService(store)

	sum, err := svc.Today(context.Background())
	require.NoError(t, err)
	require.Equal(t, "2026-08-28", sum.Day)
	require.Equal(t, int64(60), sum.Totals.All)
}

func TestDeleteSiteRemovesEverywhere(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	store.td = track.TimeData{
		"2026-08-27": {"reddit.com": 100},
		"2026-08-28": {"reddit.com": 50, "github.com": 10},
	}
	store.cats = category.Map{"reddit.com": category.Unproductive}
	svc := newService(store)

	require.NoError(t, svc.DeleteSite(ctx, "reddit.com"))

	require.NotContains(t, store.td, "2026-08-27")
	require.NotContains(t, store.td["2026-08-28"], "reddit.com")
	require.NotContains(t, store.cats, "reddit.com")
}

func TestDeleteSiteEmptyDomain(t *testing.T) {
	svc := newService(newMemStore())
	require.ErrorIs(t, svc.DeleteSite(context.Background(), ""), category.ErrEmptyDomain)
}

func TestExportSnapshotsEverything(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	store.td = track.TimeData{"2026-08-28": {"github.com": 60}}
	store.cats = category.Map{"github.com": category.Work}
	store.stats = timer.Stats{TotalSessions: 4}
	svc := newService(store)

	arc, err := svc.Export(ctx)
	require.NoError(t, err)
	require.Equal(t, report.ArchiveVersion, arc.Version)
	require.Equal(t, testNow, arc.ExportDate)
	require.Equal(t, int64(60), arc.TimeData["2026-08-28"]["github.com"])
	require.Equal(t, category.Work, arc.SiteCategories["github.com"])
	require.NotNil(t, arc.Settings)
	require.Equal(t, 4, arc.PomodoroStats.TotalSessions)
}

func TestImportRejectsMissingRecords(t *testing.T) {
	svc := newService(newMemStore())
	err := svc.Import(context.Background(), report.Archive{TimeData: track.TimeData{}})
	require.ErrorIs(t, err, report.ErrInvalidArchive)

	err = svc.Import(context.Background(), report.Archive{SiteCategories: category.Map{}})
	require.ErrorIs(t, err, report.ErrInvalidArchive)
}

func TestImportOverwritesDaysAndMergesStats(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	store.td = track.TimeData{
		"2026-08-27": {"github.com": 100},
		"2026-08-28": {"github.com": 500},
	}
	store.cats = category.Map{"github.com": category.Work}
	store.stats = timer.Stats{TotalSessions: 10, TotalMinutes: 250, SessionsToday: 2, CurrentStreakDays: 3, LongestStreakDays: 5}
	svc := newService(store)

	arc := report.Archive{
		TimeData:       track.TimeData{"2026-08-28": {"reddit.com": 60}},
		SiteCategories: category.Map{"reddit.com": category.Unproductive},
		Settings:       &settings.Settings{WorkMinutes: 50, BreakMinutes: 10},
		PomodoroStats:  &timer.Stats{TotalSessions: 2, TotalMinutes: 50, SessionsToday: 4, CurrentStreakDays: 1, LongestStreakDays: 1},
	}
	require.NoError(t, svc.Import(ctx, arc))

	// Archive days replace local days wholesale; untouched days survive.
	require.Equal(t, int64(100), store.td["2026-08-27"]["github.com"])
	require.Equal(t, int64(60), store.td["2026-08-28"]["reddit.com"])
	require.NotContains(t, store.td["2026-08-28"], "github.com")

	// Category assignments merge, archive winning on conflict.
	require.Equal(t, category.Work, store.cats.Get("github.com"))
	require.Equal(t, category.Unproductive, store.cats.Get("reddit.com"))

	require.Equal(t, 50, store.set.WorkMinutes)

	// Statistics never shrink.
	require.Equal(t, 12, store.stats.TotalSessions)
	require.Equal(t, 300, store.stats.TotalMinutes)
	require.Equal(t, 4, store.stats.SessionsToday)
	require.Equal(t, 3, store.stats.CurrentStreakDays)
	require.Equal(t, 5, store.stats.LongestStreakDays)
}

func TestClearAllWipesAndReseeds(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	store.td = track.TimeData{"2026-08-28": {"github.com": 60}}
	svc := newService(store)

	require.NoError(t, svc.ClearAll(ctx))
	require.Empty(t, store.td)
	require.Equal(t, settings.Default().WorkMinutes, store.set.WorkMinutes)
}

func TestFormatSeconds(t *testing.T) {
	cases := []struct {
		in   int64
		want string
	}{
		{0, "0s"},
		{45, "45s"},
		{60, "1m"},
		{3599, "59m"},
		{3600, "1h 0m"},
		{5400, "1h 30m"},
		{-5, "0s"},
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, report.FormatSeconds(tc.in))
	}
}

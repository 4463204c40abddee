package report

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/attnlabs/focusd/internal/domain/category"
	"github.com/attnlabs/focusd/internal/domain/settings"
	"github.com/attnlabs/focusd/internal/domain/timer"
	"github.com/attnlabs/focusd/internal/domain/track"
)

// Store is the slice of the persisted store the reporting service needs. It
// is the widest of the domain store views because export and import touch
// every record.
type Store interface {
	TimeData(ctx context.Context) (track.TimeData, error)
	SaveTimeData(ctx context.Context, td track.TimeData) error
	Categories(ctx context.Context) (category.Map, error)
	SaveCategories(ctx context.Context, m category.Map) error
	Settings(ctx context.Context) (settings.Settings, error)
	SaveSettings(ctx context.Context, s settings.Settings) error
	TimerStats(ctx context.Context) (timer.Stats, error)
	SaveTimerStats(ctx context.Context, s timer.Stats) error
	Clear(ctx context.Context) error
	Seed(ctx context.Context) error
}

// Service aggregates tracked time and owns export, import and wipe.
type Service struct {
	store  Store
	logger *slog.Logger
	now    func() time.Time
}

// NewService creates a reporting service.
func NewService(store Store, logger *slog.Logger, opts ...Option) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Service{store: store, logger: logger, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Option configures a Service.
type Option func(*Service)

// WithClock overrides the wall clock, for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// AggregateDay splits one day's record by category. Every domain lands in
// exactly one bucket, so the bucket sums always equal the day's total.
func AggregateDay(day string, rec track.DayRecord, cats category.Map) DaySummary {
	sum := DaySummary{
		Day:          day,
		Work:         make(map[string]int64),
		Neutral:      make(map[string]int64),
		Unproductive: make(map[string]int64),
	}
	for domain, seconds := range rec {
		switch cats.Get(domain) {
		case category.Work:
			sum.Work[domain] += seconds
			sum.Totals.Work += seconds
		case category.Unproductive:
			sum.Unproductive[domain] += seconds
			sum.Totals.Unproductive += seconds
		default:
			sum.Neutral[domain] += seconds
			sum.Totals.Neutral += seconds
		}
		sum.Totals.All += seconds
	}
	sum.Rate = ProductivityRate(sum.Totals.Work, sum.Totals.Unproductive)
	return sum
}

// AggregateAll folds every recorded day into per-site and per-category
// totals, sorted by time spent.
func AggregateAll(td track.TimeData, cats category.Map) Overview {
	perSite := make(map[string]int64)
	var totals Totals
	for _, rec := range td {
		for domain, seconds := range rec {
			perSite[domain] += seconds
			switch cats.Get(domain) {
			case category.Work:
				totals.Work += seconds
			case category.Unproductive:
				totals.Unproductive += seconds
			default:
				totals.Neutral += seconds
			}
			totals.All += seconds
		}
	}

	sites := make([]SiteTotal, 0, len(perSite))
	for domain, seconds := range perSite {
		sites = append(sites, SiteTotal{Domain: domain, Seconds: seconds, Category: cats.Get(domain)})
	}
	sort.Slice(sites, func(i, j int) bool {
		if sites[i].Seconds != sites[j].Seconds {
			return sites[i].Seconds > sites[j].Seconds
		}
		return sites[i].Domain < sites[j].Domain
	})

	return Overview{
		Days:   len(td),
		Sites:  sites,
		Totals: totals,
		Rate:   ProductivityRate(totals.Work, totals.Unproductive),
	}
}

// Day summarizes a single day. A day with no recorded time yields a summary
// of empty buckets and zero totals.
func (s *Service) Day(ctx context.Context, day string) (DaySummary, error) {
	td, err := s.store.TimeData(ctx)
	if err != nil {
		return DaySummary{}, fmt.Errorf("loading time data: %w", err)
	}
	cats, err := s.store.Categories(ctx)
	if err != nil {
		return DaySummary{}, fmt.Errorf("loading categories: %w", err)
	}
	return AggregateDay(day, td[day], cats), nil
}

// Today summarizes the current local day.
func (s *Service) Today(ctx context.Context) (DaySummary, error) {
	return s.Day(ctx, track.DayKey(s.now()))
}

// Overview summarizes all recorded history.
func (s *Service) Overview(ctx context.Context) (Overview, error) {
	td, err := s.store.TimeData(ctx)
	if err != nil {
		return Overview{}, fmt.Errorf("loading time data: %w", err)
	}
	cats, err := s.store.Categories(ctx)
	if err != nil {
		return Overview{}, fmt.Errorf("loading categories: %w", err)
	}
	return AggregateAll(td, cats), nil
}

// DeleteSite removes a domain from every day's record and from the category
// map in one pass, so no orphan category assignment survives.
func (s *Service) DeleteSite(ctx context.Context, domain string) error {
	if domain == "" {
		return category.ErrEmptyDomain
	}

	td, err := s.store.TimeData(ctx)
	if err != nil {
		return fmt.Errorf("loading time data: %w", err)
	}
	td = td.Clone()
	td.DeleteDomain(domain)
	if err := s.store.SaveTimeData(ctx, td); err != nil {
		return fmt.Errorf("saving time data: %w", err)
	}

	cats, err := s.store.Categories(ctx)
	if err != nil {
		return fmt.Errorf("loading categories: %w", err)
	}
	if _, ok := cats[domain]; ok {
		cats = cats.Clone()
		delete(cats, domain)
		if err := s.store.SaveCategories(ctx, cats); err != nil {
			return fmt.Errorf("saving categories: %w", err)
		}
	}

	s.logger.Info("deleted site", "domain", domain)
	return nil
}

// Export snapshots every record into a portable archive.
func (s *Service) Export(ctx context.Context) (Archive, error) {
	td, err := s.store.TimeData(ctx)
	if err != nil {
		return Archive{}, fmt.Errorf("loading time data: %w", err)
	}
	cats, err := s.store.Categories(ctx)
	if err != nil {
		return Archive{}, fmt.Errorf("loading categories: %w", err)
	}
	set, err := s.store.Settings(ctx)
	if err != nil {
		return Archive{}, fmt.Errorf("loading settings: %w", err)
	}
	stats, err := s.store.TimerStats(ctx)
	if err != nil {
		return Archive{}, fmt.Errorf("loading timer stats: %w", err)
	}

	if td == nil {
		td = make(track.TimeData)
	}
	if cats == nil {
		cats = make(category.Map)
	}
	return Archive{
		ExportDate:     s.now(),
		Version:        ArchiveVersion,
		TimeData:       td,
		SiteCategories: cats,
		Settings:       &set,
		PomodoroStats:  &stats,
	}, nil
}

// Import merges an archive into the live data. Days and category assignments
// present in the archive overwrite their local counterparts; statistics merge
// without ever shrinking; settings apply only when the archive carries them.
func (s *Service) Import(ctx context.Context, arc Archive) error {
	if arc.TimeData == nil || arc.SiteCategories == nil {
		return ErrInvalidArchive
	}

	td, err := s.store.TimeData(ctx)
	if err != nil {
		return fmt.Errorf("loading time data: %w", err)
	}
	td = td.Clone()
	for day, rec := range arc.TimeData {
		merged := make(track.DayRecord, len(rec))
		for domain, seconds := range rec {
			merged[domain] = seconds
		}
		td[day] = merged
	}
	if err := s.store.SaveTimeData(ctx, td); err != nil {
		return fmt.Errorf("saving time data: %w", err)
	}

	cats, err := s.store.Categories(ctx)
	if err != nil {
		return fmt.Errorf("loading categories: %w", err)
	}
	cats = cats.Clone()
	for domain, cat := range arc.SiteCategories {
		if cat.Valid() {
			cats[domain] = cat
		}
	}
	if err := s.store.SaveCategories(ctx, cats); err != nil {
		return fmt.Errorf("saving categories: %w", err)
	}

	if arc.Settings != nil {
		if err := s.store.SaveSettings(ctx, arc.Settings.Normalized()); err != nil {
			return fmt.Errorf("saving settings: %w", err)
		}
	}

	if arc.PomodoroStats != nil {
		stats, err := s.store.TimerStats(ctx)
		if err != nil {
			return fmt.Errorf("loading timer stats: %w", err)
		}
		if err := s.store.SaveTimerStats(ctx, timer.MergeStats(stats, *arc.PomodoroStats)); err != nil {
			return fmt.Errorf("saving timer stats: %w", err)
		}
	}

	s.logger.Info("imported archive", "days", len(arc.TimeData), "sites", len(arc.SiteCategories))
	return nil
}

// ClearAll wipes every record and reseeds the defaults.
func (s *Service) ClearAll(ctx context.Context) error {
	if err := s.store.Clear(ctx); err != nil {
		return fmt.Errorf("clearing store: %w", err)
	}
	if err := s.store.Seed(ctx); err != nil {
		return fmt.Errorf("reseeding store: %w", err)
	}
	s.logger.Info("cleared all data")
	return nil
}

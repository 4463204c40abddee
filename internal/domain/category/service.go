package category

import (
	"context"
	"fmt"
	"log/slog"
)

// Store is the slice of the persisted store the category service needs.
type Store interface {
	Categories(ctx context.Context) (Map, error)
	SaveCategories(ctx context.Context, m Map) error
}

// Service handles category assignment for domains.
type Service struct {
	store  Store
	logger *slog.Logger
}

// NewService creates a new category service.
func NewService(store Store, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{store: store, logger: logger}
}

// Get returns the category assigned to domain, defaulting to Neutral.
func (s *Service) Get(ctx context.Context, domain string) (Category, error) {
	cats, err := s.store.Categories(ctx)
	if err != nil {
		return Neutral, fmt.Errorf("loading categories: %w", err)
	}
	return cats.Get(domain), nil
}

// All returns the full category map.
func (s *Service) All(ctx context.Context) (Map, error) {
	cats, err := s.store.Categories(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading categories: %w", err)
	}
	return cats, nil
}

// Set assigns a category to a domain. Assigning Neutral removes the entry,
// since absence already means neutral.
func (s *Service) Set(ctx context.Context, domain string, cat Category) error {
	if domain == "" {
		return ErrEmptyDomain
	}
	if !cat.Valid() {
		return ErrUnknownCategory
	}

	cats, err := s.store.Categories(ctx)
	if err != nil {
		return fmt.Errorf("loading categories: %w", err)
	}
	cats = cats.Clone()
	if cat == Neutral {
		delete(cats, domain)
	} else {
		cats[domain] = cat
	}
	if err := s.store.SaveCategories(ctx, cats); err != nil {
		return fmt.Errorf("saving categories: %w", err)
	}
	return nil
}

// Cycle advances a domain to the next category in the settings-page order
// and returns the new assignment.
func (s *Service) Cycle(ctx context.Context, domain string) (Category, error) {
	if domain == "" {
		return Neutral, ErrEmptyDomain
	}

	cats, err := s.store.Categories(ctx)
	if err != nil {
		return Neutral, fmt.Errorf("loading categories: %w", err)
	}
	next := cats.Get(domain).Next()
	if err := s.Set(ctx, domain, next); err != nil {
		return Neutral, err
	}
	return next, nil
}

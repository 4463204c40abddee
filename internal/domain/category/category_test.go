package category_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/attnlabs/focusd/internal/domain/category"
	"github.com/attnlabs/focusd/internal/repository/mocks"
)

func TestCategoryNextCycle(t *testing.T) {
	require.Equal(t, category.Work, category.Neutral.Next())
	require.Equal(t, category.Unproductive, category.Work.Next())
	require.Equal(t, category.Neutral, category.Unproductive.Next())
}

func TestMapGetDefaultsToNeutral(t *testing.T) {
	m := category.Map{"github.com": category.Work}
	require.Equal(t, category.Work, m.Get("github.com"))
	require.Equal(t, category.Neutral, m.Get("example.com"))

	var empty category.Map
	require.Equal(t, category.Neutral, empty.Get("github.com"))
}

func TestMapGetInvalidEntryFallsBack(t *testing.T) {
	m := category.Map{"github.com": category.Category("bogus")}
	require.Equal(t, category.Neutral, m.Get("github.com"))
}

func TestServiceSetNeutralRemovesEntry(t *testing.T) {
	ctx := context.Background()
	store := &mocks.Store{}
	store.On("Categories", ctx).Return(category.Map{"reddit.com": category.Unproductive}, nil)
	store.On("SaveCategories", ctx, category.Map{}).Return(nil)

	svc := category.NewService(store, nil)
	require.NoError(t, svc.Set(ctx, "reddit.com", category.Neutral))
	store.AssertExpectations(t)
}

func TestServiceSetRejectsInvalid(t *testing.T) {
	ctx := context.Background()
	svc := category.NewService(&mocks.Store{}, nil)

	err := svc.Set(ctx, "reddit.com", category.Category("bogus"))
	require.ErrorIs(t, err, category.ErrUnknownCategory)

	err = svc.Set(ctx, "", category.Work)
	require.ErrorIs(t, err, category.ErrEmptyDomain)
}

func TestServiceCycleFromUnknown(t *testing.T) {
	ctx := context.Background()
	store := &mocks.Store{}
	store.On("Categories", ctx).Return(category.Map{}, nil)
	store.On("SaveCategories", ctx, category.Map{"example.com": category.Work}).Return(nil)

	svc := category.NewService(store, nil)
	next, err := svc.Cycle(ctx, "example.com")
	require.NoError(t, err)
	require.Equal(t, category.Work, next)
	store.AssertExpectations(t)
}

func TestServiceCycleBackToNeutralRemoves(t *testing.T) {
	ctx := context.Background()
	store := &mocks.Store{}
	store.On("Categories", ctx).Return(category.Map{"reddit.com": category.Unproductive}, nil)
	store.On("SaveCategories", ctx, category.Map{}).Return(nil)

	svc := category.NewService(store, nil)
	next, err := svc.Cycle(ctx, "reddit.com")
	require.NoError(t, err)
	require.Equal(t, category.Neutral, next)
	store.AssertExpectations(t)
}

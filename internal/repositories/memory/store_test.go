package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chrisdamba/menuintel/internal/models"
	"github.com/chrisdamba/menuintel/internal/repositories"
)

var now = time.Date(2024, 1, 31, 12, 0, 0, 0, time.UTC)

func seeded(t *testing.T) *Store {
	t.Helper()
	ctx := context.Background()
	s := NewStore()

	require.NoError(t, s.Restaurants().BulkCreate(ctx, []*models.Restaurant{{ID: "r1", Name: "Da Mario"}}))
	require.NoError(t, s.Categories().BulkCreate(ctx, []*models.Category{
		{ID: "c-pizze", RestaurantID: "r1", Name: "Pizze"},
		{ID: "c-primi", RestaurantID: "r1", Name: "Primi"},
	}))
	require.NoError(t, s.MenuItems().BulkCreate(ctx, []*models.MenuItem{
		{ID: "i1", RestaurantID: "r1", CategoryID: "c-pizze", Name: "Pizza Margherita", Price: 9, Cost: 2.7},
		{ID: "i2", RestaurantID: "r1", CategoryID: "c-primi", Name: "Cacio e pepe", Price: 11, Cost: 3.3},
		{ID: "i3", RestaurantID: "other", Name: "Elsewhere", Price: 5},
	}))

	order := func(id string, daysAgo int, status string, lines ...models.OrderItem) *models.Order {
		return &models.Order{
			ID: id, RestaurantID: "r1", Status: status,
			OrderPlacedAt: now.AddDate(0, 0, -daysAgo), Items: lines,
		}
	}
	require.NoError(t, s.Orders().BulkCreate(ctx, []*models.Order{
		order("o1", 25, models.OrderStatusServed, models.OrderItem{MenuItemID: "i1", Quantity: 2, UnitPrice: 9}),
		order("o2", 3, models.OrderStatusServed,
			models.OrderItem{MenuItemID: "i1", Quantity: 1, UnitPrice: 9},
			models.OrderItem{MenuItemID: "i2", Quantity: 4, UnitPrice: 11}),
		order("o3", 2, models.OrderStatusCancelled, models.OrderItem{MenuItemID: "i1", Quantity: 10, UnitPrice: 9}),
		order("o4", 45, models.OrderStatusServed, models.OrderItem{MenuItemID: "i1", Quantity: 7, UnitPrice: 9}),
	}))
	return s
}

func TestItemAnalyticsWindow(t *testing.T) {
	s := seeded(t)
	got, err := s.Analytics().GetItemAnalytics(context.Background(), "i1", "r1", now, 30)
	require.NoError(t, err)

	// o3 is cancelled and o4 is outside the window
	assert.Equal(t, 3, got.TotalOrders)
	assert.Equal(t, 27.0, got.TotalRevenue)
	assert.InDelta(t, 0.7, got.ProfitMargin, 1e-9)
	assert.Equal(t, 0.5, got.SeasonalTrend)
}

func TestItemAnalyticsWindowFollowsAsOf(t *testing.T) {
	s := seeded(t)
	ctx := context.Background()

	// three weeks earlier o4 and o1 fall inside the window and o2 is later
	earlier := now.AddDate(0, 0, -21)
	got, err := s.Analytics().GetItemAnalytics(ctx, "i1", "r1", earlier, 30)
	require.NoError(t, err)
	assert.Equal(t, 9, got.TotalOrders)
	assert.Equal(t, 81.0, got.TotalRevenue)
	assert.InDelta(t, 2.0/7.0, got.SeasonalTrend, 1e-9)

	popular, err := s.Analytics().GetPopularCategories(ctx, "r1", earlier, 30, 3)
	require.NoError(t, err)
	assert.Equal(t, []string{"Pizze"}, popular)
}

func TestItemAnalyticsNotFound(t *testing.T) {
	s := seeded(t)
	_, err := s.Analytics().GetItemAnalytics(context.Background(), "i3", "r1", now, 30)
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}

func TestPopularCategories(t *testing.T) {
	s := seeded(t)
	got, err := s.Analytics().GetPopularCategories(context.Background(), "r1", now, 30, 3)
	require.NoError(t, err)
	assert.Equal(t, []string{"Primi", "Pizze"}, got)

	got, err = s.Analytics().GetPopularCategories(context.Background(), "r1", now, 30, 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"Primi"}, got)

	got, err = s.Analytics().GetPopularCategories(context.Background(), "nobody", now, 30, 3)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestMenuItemsByRestaurant(t *testing.T) {
	s := seeded(t)
	got, err := s.MenuItems().GetByRestaurantID(context.Background(), "r1")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Cacio e pepe", got[0].Name)
	assert.Equal(t, "Primi", got[0].Category)
	assert.Equal(t, "Pizza Margherita", got[1].Name)

	none, err := s.MenuItems().GetByRestaurantID(context.Background(), "missing")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestCancelledContext(t *testing.T) {
	s := seeded(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.MenuItems().GetByRestaurantID(ctx, "r1")
	assert.ErrorIs(t, err, context.Canceled)
	_, err = s.Analytics().GetItemAnalytics(ctx, "i1", "r1", now, 30)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRestaurants(t *testing.T) {
	s := seeded(t)
	ctx := context.Background()

	r, err := s.Restaurants().GetByID(ctx, "r1")
	require.NoError(t, err)
	assert.Equal(t, "Da Mario", r.Name)

	_, err = s.Restaurants().GetByID(ctx, "zzz")
	assert.ErrorIs(t, err, repositories.ErrNotFound)

	n, err := s.Restaurants().Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

package factories

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chrisdamba/menuintel/internal/models"
	"github.com/chrisdamba/menuintel/internal/repositories/memory"
)

func seedConfig() models.SeedConfig {
	return models.SeedConfig{
		Seed:               7,
		Restaurants:        2,
		ItemsPerRestaurant: 10,
		OrdersPerDay:       20,
		Days:               7,
		EndDate:            time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC), // a Sunday
	}
}

func TestDatasetShape(t *testing.T) {
	cfg := seedConfig()
	d := NewGenerator(cfg.Seed).Dataset(cfg)

	require.Len(t, d.Restaurants, 2)
	assert.Len(t, d.MenuItems, 20)
	assert.NotEmpty(t, d.Categories)

	itemIDs := map[string]*models.MenuItem{}
	for _, item := range d.MenuItems {
		itemIDs[item.ID] = item
		assert.Greater(t, item.Price, item.Cost)
		assert.Greater(t, item.Cost, 0.0)
		assert.NotEmpty(t, item.Category)
	}

	// one week of the weekday pattern: 20 * (0.7+0.8+0.9+1.0+1.1+1.3+1.2) = 140 per restaurant
	assert.Len(t, d.Orders, 280)
	for _, o := range d.Orders {
		assert.False(t, o.OrderPlacedAt.Before(time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)))
		assert.True(t, o.OrderPlacedAt.Before(time.Date(2024, 3, 11, 0, 0, 0, 0, time.UTC)))
		require.NotEmpty(t, o.Items)
		for _, line := range o.Items {
			item, ok := itemIDs[line.MenuItemID]
			require.True(t, ok)
			assert.Equal(t, o.RestaurantID, item.RestaurantID)
			assert.Equal(t, item.Price, line.UnitPrice)
		}
	}
}

func TestSameSeedSameMenu(t *testing.T) {
	cfg := seedConfig()
	a := NewGenerator(42).RestaurantDataset(cfg)
	b := NewGenerator(42).RestaurantDataset(cfg)

	require.Len(t, b.MenuItems, len(a.MenuItems))
	for i := range a.MenuItems {
		assert.Equal(t, a.MenuItems[i].Name, b.MenuItems[i].Name)
		assert.Equal(t, a.MenuItems[i].Price, b.MenuItems[i].Price)
	}
	assert.Equal(t, a.Restaurants[0].Name, b.Restaurants[0].Name)
	assert.Equal(t, len(a.Orders), len(b.Orders))
}

func TestMenuIsCappedAndDistinct(t *testing.T) {
	g := NewGenerator(1)
	r := g.CreateRestaurant()
	_, items := g.CreateMenu(r, 1000)

	names := map[string]bool{}
	for _, item := range items {
		assert.False(t, names[item.Name], "duplicate %s", item.Name)
		names[item.Name] = true
	}
	total := 0
	for _, c := range dishesByCategory {
		total += len(c.dishes)
	}
	assert.Len(t, items, total)
}

func TestCreateOrdersEdgeCases(t *testing.T) {
	g := NewGenerator(1)
	r := g.CreateRestaurant()
	assert.Empty(t, g.CreateOrders(r, nil, time.Now(), 10))

	_, items := g.CreateMenu(r, 1)
	orders := g.CreateOrders(r, items, time.Date(2024, 3, 6, 0, 0, 0, 0, time.UTC), 10)
	assert.Len(t, orders, 10)
	for _, o := range orders {
		assert.Equal(t, items[0].ID, o.Items[0].MenuItemID)
	}
}

func TestLoadIntoMemoryStore(t *testing.T) {
	ctx := context.Background()
	cfg := seedConfig()
	cfg.Restaurants = 1
	d := NewGenerator(cfg.Seed).Dataset(cfg)

	s := memory.NewStore()
	require.NoError(t, d.Load(ctx, Sinks{
		Restaurants: s.Restaurants(),
		Categories:  s.Categories(),
		MenuItems:   s.MenuItems(),
		Orders:      s.Orders(),
	}))

	n, err := s.MenuItems().Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 10, n)

	popular, err := s.Analytics().GetPopularCategories(ctx, d.Restaurants[0].ID, cfg.EndDate.Add(23*time.Hour), 30, 3)
	require.NoError(t, err)
	assert.NotEmpty(t, popular)
}

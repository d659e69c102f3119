package factories

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/jaswdr/faker"

	"github.com/chrisdamba/menuintel/internal/models"
	"github.com/chrisdamba/menuintel/internal/repositories"
)

// Generator produces a demo trattoria dataset. The same seed yields the same
// names, prices and order volumes; IDs are always fresh cuids.
type Generator struct {
	fake faker.Faker
	rng  *rand.Rand
}

func NewGenerator(seed int64) *Generator {
	return &Generator{
		fake: faker.NewWithSeed(rand.NewSource(seed)),
		rng:  rand.New(rand.NewSource(seed)),
	}
}

type Dataset struct {
	Restaurants []*models.Restaurant
	Categories  []*models.Category
	MenuItems   []*models.MenuItem
	Orders      []*models.Order
}

func (d *Dataset) merge(o Dataset) {
	d.Restaurants = append(d.Restaurants, o.Restaurants...)
	d.Categories = append(d.Categories, o.Categories...)
	d.MenuItems = append(d.MenuItems, o.MenuItems...)
	d.Orders = append(d.Orders, o.Orders...)
}

// RestaurantDataset builds one restaurant with its menu and order history.
func (g *Generator) RestaurantDataset(cfg models.SeedConfig) Dataset {
	r := g.CreateRestaurant()
	categories, items := g.CreateMenu(r, cfg.ItemsPerRestaurant)

	end := cfg.EndDate
	if end.IsZero() {
		end = time.Now().UTC()
	}
	start := end.Truncate(24*time.Hour).AddDate(0, 0, -cfg.Days+1)

	var orders []*models.Order
	for day := 0; day < cfg.Days; day++ {
		orders = append(orders, g.CreateOrders(r, items, start.AddDate(0, 0, day), cfg.OrdersPerDay)...)
	}
	return Dataset{
		Restaurants: []*models.Restaurant{r},
		Categories:  categories,
		MenuItems:   items,
		Orders:      orders,
	}
}

func (g *Generator) Dataset(cfg models.SeedConfig) Dataset {
	var d Dataset
	for i := 0; i < cfg.Restaurants; i++ {
		d.merge(g.RestaurantDataset(cfg))
	}
	return d
}

// Sinks are the stores a dataset is written to.
type Sinks struct {
	Restaurants repositories.RestaurantRepository
	Categories  repositories.CategoryRepository
	MenuItems   repositories.MenuItemRepository
	Orders      repositories.OrderRepository
}

// Load writes d in dependency order.
func (d Dataset) Load(ctx context.Context, s Sinks) error {
	if err := s.Restaurants.BulkCreate(ctx, d.Restaurants); err != nil {
		return fmt.Errorf("load restaurants: %w", err)
	}
	if err := s.Categories.BulkCreate(ctx, d.Categories); err != nil {
		return fmt.Errorf("load categories: %w", err)
	}
	if err := s.MenuItems.BulkCreate(ctx, d.MenuItems); err != nil {
		return fmt.Errorf("load menu items: %w", err)
	}
	if err := s.Orders.BulkCreate(ctx, d.Orders); err != nil {
		return fmt.Errorf("load orders: %w", err)
	}
	return nil
}

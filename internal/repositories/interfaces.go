package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/chrisdamba/menuintel/internal/models"
)

var ErrNotFound = errors.New("not found")

type RestaurantRepository interface {
	BulkCreate(ctx context.Context, restaurants []*models.Restaurant) error
	GetByID(ctx context.Context, id string) (*models.Restaurant, error)
	GetAll(ctx context.Context) ([]*models.Restaurant, error)
	Count(ctx context.Context) (int, error)
}

type CategoryRepository interface {
	BulkCreate(ctx context.Context, categories []*models.Category) error
}

type MenuItemRepository interface {
	BulkCreate(ctx context.Context, menuItems []*models.MenuItem) error
	GetByRestaurantID(ctx context.Context, restaurantID string) ([]*models.MenuItem, error)
	Count(ctx context.Context) (int, error)
}

type OrderRepository interface {
	BulkCreate(ctx context.Context, orders []*models.Order) error
	Count(ctx context.Context) (int, error)
}

// AnalyticsRepository answers the read-model queries the optimizer needs.
// Windows trail back windowDays from asOf (exclusive).
type AnalyticsRepository interface {
	GetItemAnalytics(ctx context.Context, itemID, restaurantID string, asOf time.Time, windowDays int) (*models.MenuItemAnalytics, error)
	GetPopularCategories(ctx context.Context, restaurantID string, asOf time.Time, windowDays, limit int) ([]string, error)
}

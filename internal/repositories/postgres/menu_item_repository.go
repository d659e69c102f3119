package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jmoiron/sqlx"

	"github.com/chrisdamba/menuintel/internal/models"
)

type MenuItemRepository struct {
	db   *sqlx.DB
	pool *pgxpool.Pool
}

func NewMenuItemRepository(db *sqlx.DB, pool *pgxpool.Pool) *MenuItemRepository {
	return &MenuItemRepository{db: db, pool: pool}
}

func (r *MenuItemRepository) BulkCreate(ctx context.Context, menuItems []*models.MenuItem) error {
	_, err := r.pool.CopyFrom(
		ctx,
		pgx.Identifier{"menu_items"},
		[]string{
			"id", "restaurant_id", "category_id", "name", "description",
			"price", "cost", "prep_time", "available",
		},
		pgx.CopyFromSlice(len(menuItems), func(i int) ([]interface{}, error) {
			var categoryID interface{}
			if menuItems[i].CategoryID != "" {
				categoryID = menuItems[i].CategoryID
			}
			return []interface{}{
				menuItems[i].ID,
				menuItems[i].RestaurantID,
				categoryID,
				menuItems[i].Name,
				menuItems[i].Description,
				menuItems[i].Price,
				menuItems[i].Cost,
				menuItems[i].PrepTime,
				menuItems[i].Available,
			}, nil
		}),
	)
	if err != nil {
		return fmt.Errorf("copy menu items: %w", err)
	}
	return nil
}

const menuItemsByRestaurantQuery = `
	SELECT
		mi.id,
		mi.restaurant_id,
		COALESCE(mi.category_id, '') AS category_id,
		COALESCE(c.name, '') AS category,
		mi.name,
		mi.description,
		mi.price,
		mi.cost,
		mi.prep_time,
		mi.available
	FROM menu_items mi
	LEFT JOIN categories c ON c.id = mi.category_id
	WHERE mi.restaurant_id = $1
	ORDER BY mi.name, mi.id`

// GetByRestaurantID lists a restaurant's items in a stable order. An unknown
// restaurant has an empty menu.
func (r *MenuItemRepository) GetByRestaurantID(ctx context.Context, restaurantID string) ([]*models.MenuItem, error) {
	menuItems := []*models.MenuItem{}
	if err := r.db.SelectContext(ctx, &menuItems, menuItemsByRestaurantQuery, restaurantID); err != nil {
		return nil, fmt.Errorf("list menu items for %s: %w", restaurantID, err)
	}
	return menuItems, nil
}

func (r *MenuItemRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count, "SELECT COUNT(*) FROM menu_items")
	return count, err
}

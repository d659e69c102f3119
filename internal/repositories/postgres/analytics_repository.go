package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/chrisdamba/menuintel/internal/models"
	"github.com/chrisdamba/menuintel/internal/repositories"
)

// AnalyticsRepository computes trailing-window item analytics with SQL
// aggregates. Cancelled orders never count.
type AnalyticsRepository struct {
	db *sqlx.DB
}

func NewAnalyticsRepository(db *sqlx.DB) *AnalyticsRepository {
	return &AnalyticsRepository{db: db}
}

type itemAnalyticsRow struct {
	ItemID     string  `db:"item_id"`
	Name       string  `db:"name"`
	Price      float64 `db:"price"`
	Cost       float64 `db:"cost"`
	PrepTime   float64 `db:"prep_time"`
	Quantity   int     `db:"quantity"`
	Revenue    float64 `db:"revenue"`
	FirstHalf  int     `db:"first_half"`
	SecondHalf int     `db:"second_half"`
}

const itemAnalyticsQuery = `
	SELECT
		mi.id AS item_id,
		mi.name,
		mi.price,
		mi.cost,
		mi.prep_time,
		COALESCE(SUM(w.quantity), 0) AS quantity,
		COALESCE(SUM(w.quantity * w.unit_price), 0) AS revenue,
		COALESCE(SUM(w.quantity) FILTER (WHERE w.placed_at < $4), 0) AS first_half,
		COALESCE(SUM(w.quantity) FILTER (WHERE w.placed_at >= $4), 0) AS second_half
	FROM menu_items mi
	LEFT JOIN (
		SELECT oi.menu_item_id, oi.quantity, oi.unit_price, o.placed_at
		FROM order_items oi
		JOIN orders o ON o.id = oi.order_id
		WHERE o.restaurant_id = $2
			AND o.status <> 'cancelled'
			AND o.placed_at >= $3
			AND o.placed_at < $5
	) w ON w.menu_item_id = mi.id
	WHERE mi.id = $1 AND mi.restaurant_id = $2
	GROUP BY mi.id, mi.name, mi.price, mi.cost, mi.prep_time`

func (r *AnalyticsRepository) GetItemAnalytics(ctx context.Context, itemID, restaurantID string, asOf time.Time, windowDays int) (*models.MenuItemAnalytics, error) {
	w := repositories.TrailingWindow(asOf, windowDays)

	var row itemAnalyticsRow
	err := r.db.GetContext(ctx, &row, itemAnalyticsQuery, itemID, restaurantID, w.Since, w.Mid, w.Until)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repositories.ErrNotFound
		}
		return nil, fmt.Errorf("item analytics %s: %w", itemID, err)
	}

	item := models.MenuItem{Price: row.Price, Cost: row.Cost}
	return &models.MenuItemAnalytics{
		ItemID:                 row.ItemID,
		Name:                   row.Name,
		TotalOrders:            row.Quantity,
		TotalRevenue:           row.Revenue,
		ProfitMargin:           item.ProfitMargin(),
		SeasonalTrend:          models.SeasonalTrend(row.FirstHalf, row.SecondHalf),
		PreparationTimeMinutes: row.PrepTime,
	}, nil
}

const popularCategoriesQuery = `
	SELECT c.name
	FROM order_items oi
	JOIN orders o ON o.id = oi.order_id
	JOIN menu_items mi ON mi.id = oi.menu_item_id
	JOIN categories c ON c.id = mi.category_id
	WHERE o.restaurant_id = $1
		AND o.status <> 'cancelled'
		AND o.placed_at >= $2
		AND o.placed_at < $3
	GROUP BY c.name
	ORDER BY SUM(oi.quantity) DESC, c.name
	LIMIT $4`

func (r *AnalyticsRepository) GetPopularCategories(ctx context.Context, restaurantID string, asOf time.Time, windowDays, limit int) ([]string, error) {
	w := repositories.TrailingWindow(asOf, windowDays)

	names := []string{}
	if err := r.db.SelectContext(ctx, &names, popularCategoriesQuery, restaurantID, w.Since, w.Until, limit); err != nil {
		return nil, fmt.Errorf("popular categories for %s: %w", restaurantID, err)
	}
	return names, nil
}

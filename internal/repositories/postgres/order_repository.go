package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jmoiron/sqlx"

	"github.com/chrisdamba/menuintel/internal/models"
)

type OrderRepository struct {
	db   *sqlx.DB
	pool *pgxpool.Pool
}

func NewOrderRepository(db *sqlx.DB, pool *pgxpool.Pool) *OrderRepository {
	return &OrderRepository{db: db, pool: pool}
}

// BulkCreate copies orders and their lines in one transaction.
func (r *OrderRepository) BulkCreate(ctx context.Context, orders []*models.Order) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin order copy: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.CopyFrom(
		ctx,
		pgx.Identifier{"orders"},
		[]string{"id", "restaurant_id", "total_amount", "placed_at", "status"},
		pgx.CopyFromSlice(len(orders), func(i int) ([]interface{}, error) {
			o := orders[i]
			return []interface{}{o.ID, o.RestaurantID, o.TotalAmount, o.OrderPlacedAt, o.Status}, nil
		}),
	)
	if err != nil {
		return fmt.Errorf("copy orders: %w", err)
	}

	var lines [][]interface{}
	for _, o := range orders {
		for _, oi := range o.Items {
			lines = append(lines, []interface{}{oi.ID, o.ID, oi.MenuItemID, oi.Quantity, oi.UnitPrice})
		}
	}
	_, err = tx.CopyFrom(
		ctx,
		pgx.Identifier{"order_items"},
		[]string{"id", "order_id", "menu_item_id", "quantity", "unit_price"},
		pgx.CopyFromRows(lines),
	)
	if err != nil {
		return fmt.Errorf("copy order items: %w", err)
	}
	return tx.Commit(ctx)
}

func (r *OrderRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count, "SELECT COUNT(*) FROM orders")
	return count, err
}

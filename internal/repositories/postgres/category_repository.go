package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/chrisdamba/menuintel/internal/models"
)

type CategoryRepository struct {
	pool *pgxpool.Pool
}

func NewCategoryRepository(pool *pgxpool.Pool) *CategoryRepository {
	return &CategoryRepository{pool: pool}
}

func (r *CategoryRepository) BulkCreate(ctx context.Context, categories []*models.Category) error {
	_, err := r.pool.CopyFrom(
		ctx,
		pgx.Identifier{"categories"},
		[]string{"id", "restaurant_id", "name"},
		pgx.CopyFromSlice(len(categories), func(i int) ([]interface{}, error) {
			return []interface{}{categories[i].ID, categories[i].RestaurantID, categories[i].Name}, nil
		}),
	)
	if err != nil {
		return fmt.Errorf("copy categories: %w", err)
	}
	return nil
}

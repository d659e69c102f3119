package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jmoiron/sqlx"

	"github.com/chrisdamba/menuintel/internal/models"
	"github.com/chrisdamba/menuintel/internal/repositories"
)

type RestaurantRepository struct {
	db   *sqlx.DB
	pool *pgxpool.Pool
}

func NewRestaurantRepository(db *sqlx.DB, pool *pgxpool.Pool) *RestaurantRepository {
	return &RestaurantRepository{db: db, pool: pool}
}

type restaurantRow struct {
	ID        string    `db:"id"`
	Name      string    `db:"name"`
	Town      string    `db:"town"`
	Currency  string    `db:"currency"`
	Lat       float64   `db:"lat"`
	Lon       float64   `db:"lon"`
	Cuisines  string    `db:"cuisines"`
	CreatedAt time.Time `db:"created_at"`
}

func (r restaurantRow) toModel() *models.Restaurant {
	var cuisines []string
	if r.Cuisines != "" {
		cuisines = strings.Split(r.Cuisines, ",")
	}
	return &models.Restaurant{
		ID:        r.ID,
		Name:      r.Name,
		Town:      r.Town,
		Currency:  r.Currency,
		Location:  models.Location{Lat: r.Lat, Lon: r.Lon},
		Cuisines:  cuisines,
		CreatedAt: r.CreatedAt,
	}
}

const restaurantColumns = `id, name, town, currency, lat, lon,
	array_to_string(cuisines, ',') AS cuisines, created_at`

func (r *RestaurantRepository) BulkCreate(ctx context.Context, restaurants []*models.Restaurant) error {
	_, err := r.pool.CopyFrom(
		ctx,
		pgx.Identifier{"restaurants"},
		[]string{"id", "name", "town", "currency", "lat", "lon", "cuisines", "created_at"},
		pgx.CopyFromSlice(len(restaurants), func(i int) ([]interface{}, error) {
			rs := restaurants[i]
			return []interface{}{
				rs.ID,
				rs.Name,
				rs.Town,
				rs.Currency,
				rs.Location.Lat,
				rs.Location.Lon,
				rs.Cuisines,
				rs.CreatedAt,
			}, nil
		}),
	)
	if err != nil {
		return fmt.Errorf("copy restaurants: %w", err)
	}
	return nil
}

func (r *RestaurantRepository) GetByID(ctx context.Context, id string) (*models.Restaurant, error) {
	var row restaurantRow
	err := r.db.GetContext(ctx, &row, `SELECT `+restaurantColumns+` FROM restaurants WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repositories.ErrNotFound
		}
		return nil, fmt.Errorf("get restaurant %s: %w", id, err)
	}
	return row.toModel(), nil
}

func (r *RestaurantRepository) GetAll(ctx context.Context) ([]*models.Restaurant, error) {
	var rows []restaurantRow
	if err := r.db.SelectContext(ctx, &rows, `SELECT `+restaurantColumns+` FROM restaurants ORDER BY name, id`); err != nil {
		return nil, fmt.Errorf("list restaurants: %w", err)
	}
	out := make([]*models.Restaurant, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toModel())
	}
	return out, nil
}

func (r *RestaurantRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count, "SELECT COUNT(*) FROM restaurants")
	return count, err
}

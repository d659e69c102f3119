package cmd

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/chrisdamba/menuintel/internal/factories"
	"github.com/chrisdamba/menuintel/internal/metrics"
	"github.com/chrisdamba/menuintel/internal/optimizer"
	"github.com/chrisdamba/menuintel/internal/repositories"
	"github.com/chrisdamba/menuintel/internal/repositories/memory"
	"github.com/chrisdamba/menuintel/internal/repositories/postgres"
	"github.com/chrisdamba/menuintel/internal/seasonality"
	"github.com/chrisdamba/menuintel/internal/storage"
	"github.com/chrisdamba/menuintel/internal/weather"
)

const dateLayout = "2006-01-02"

type stores struct {
	restaurants repositories.RestaurantRepository
	menuItems   repositories.MenuItemRepository
	analytics   repositories.AnalyticsRepository
	sinks       factories.Sinks
	close       func()
}

// openStores connects to Postgres when database.url is set. Otherwise it
// falls back to an in-memory store filled with generated demo data.
func openStores(ctx context.Context) (*stores, error) {
	if cfg.Database.URL == "" {
		s := memory.NewStore()
		sinks := factories.Sinks{
			Restaurants: s.Restaurants(),
			Categories:  s.Categories(),
			MenuItems:   s.MenuItems(),
			Orders:      s.Orders(),
		}
		data := factories.NewGenerator(cfg.Seed.Seed).Dataset(cfg.Seed)
		if err := data.Load(ctx, sinks); err != nil {
			return nil, err
		}
		logger.Warn("no database.url configured, using in-memory demo data",
			zap.Int("restaurants", len(data.Restaurants)),
			zap.Int("menu_items", len(data.MenuItems)),
			zap.Int("orders", len(data.Orders)),
		)
		return &stores{
			restaurants: s.Restaurants(),
			menuItems:   s.MenuItems(),
			analytics:   s.Analytics(),
			sinks:       sinks,
			close:       func() {},
		}, nil
	}

	db, err := storage.Connect(ctx, cfg.Database, logger)
	if err != nil {
		return nil, err
	}
	return postgresStores(db), nil
}

func postgresStores(db *storage.DB) *stores {
	restaurants := postgres.NewRestaurantRepository(db.SQL, db.Pool)
	menuItems := postgres.NewMenuItemRepository(db.SQL, db.Pool)
	return &stores{
		restaurants: restaurants,
		menuItems:   menuItems,
		analytics:   postgres.NewAnalyticsRepository(db.SQL),
		sinks: factories.Sinks{
			Restaurants: restaurants,
			Categories:  postgres.NewCategoryRepository(db.Pool),
			MenuItems:   menuItems,
			Orders:      postgres.NewOrderRepository(db.SQL, db.Pool),
		},
		close: db.Close,
	}
}

func loadAnalyzer() (*seasonality.Analyzer, error) {
	if cfg.Seasonality.CatalogFile == "" {
		return seasonality.NewAnalyzer(seasonality.DefaultCatalog()), nil
	}
	catalog, err := seasonality.LoadCatalogFile(cfg.Seasonality.CatalogFile)
	if err != nil {
		return nil, err
	}
	logger.Info("loaded ingredient catalog",
		zap.String("path", cfg.Seasonality.CatalogFile),
		zap.Int("ingredients", catalog.Len()),
	)
	return seasonality.NewAnalyzer(catalog), nil
}

// newEngine wires an engine over s. s may be nil for commands that only use
// the seasonality analyzer.
func newEngine(s *stores, collector *metrics.Collector) (*optimizer.Engine, error) {
	analyzer, err := loadAnalyzer()
	if err != nil {
		return nil, err
	}
	provider, err := weather.NewProvider(cfg.Weather, logger)
	if err != nil {
		return nil, err
	}
	deps := optimizer.Deps{
		Weather:  provider,
		Analyzer: analyzer,
		Metrics:  collector,
	}
	if s != nil {
		deps.MenuItems = s.menuItems
		deps.Analytics = s.analytics
	}
	return optimizer.NewEngine(deps, cfg.Optimizer, logger), nil
}

// parseDate reads YYYY-MM-DD, defaulting to today in UTC.
func parseDate(raw string) (time.Time, error) {
	if raw == "" {
		now := time.Now().UTC()
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC), nil
	}
	d, err := time.Parse(dateLayout, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, want YYYY-MM-DD", raw)
	}
	return d, nil
}

package optimizer

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/chrisdamba/menuintel/internal/demand"
	"github.com/chrisdamba/menuintel/internal/metrics"
	"github.com/chrisdamba/menuintel/internal/models"
	"github.com/chrisdamba/menuintel/internal/repositories"
	"github.com/chrisdamba/menuintel/internal/seasonality"
	"github.com/chrisdamba/menuintel/internal/weather"
)

type Deps struct {
	MenuItems repositories.MenuItemRepository
	Analytics repositories.AnalyticsRepository
	Weather   weather.Provider
	Analyzer  *seasonality.Analyzer
	Predictor *demand.Predictor
	Metrics   *metrics.Collector
}

// Engine turns a restaurant's menu, its recent sales and the weather into a
// ranked list of optimization suggestions.
type Engine struct {
	menuItems repositories.MenuItemRepository
	analytics repositories.AnalyticsRepository
	weather   weather.Provider
	analyzer  *seasonality.Analyzer
	predictor *demand.Predictor
	metrics   *metrics.Collector
	cfg       models.OptimizerConfig
	logger    *zap.Logger
}

func DefaultConfig() models.OptimizerConfig {
	return models.OptimizerConfig{
		WindowDays:         models.DefaultWindowDays,
		PopularLimit:       models.DefaultPopularLimit,
		StoreTimeout:       5 * time.Second,
		MaxRetries:         2,
		RetryBackoff:       100 * time.Millisecond,
		MaxConcurrency:     8,
		SeasonalAddRevenue: 800,
		CategoryAddRevenue: 500,
	}
}

// withDefaults fills zero values. Zero retries and zero placeholder revenue
// are legitimate settings and are kept.
func withDefaults(cfg models.OptimizerConfig) models.OptimizerConfig {
	def := DefaultConfig()
	if cfg.WindowDays <= 0 {
		cfg.WindowDays = def.WindowDays
	}
	if cfg.PopularLimit <= 0 {
		cfg.PopularLimit = def.PopularLimit
	}
	if cfg.StoreTimeout <= 0 {
		cfg.StoreTimeout = def.StoreTimeout
	}
	if cfg.MaxRetries < 0 {
		cfg.MaxRetries = 0
	}
	if cfg.MaxConcurrency <= 0 {
		cfg.MaxConcurrency = def.MaxConcurrency
	}
	return cfg
}

func NewEngine(deps Deps, cfg models.OptimizerConfig, logger *zap.Logger) *Engine {
	if deps.Analyzer == nil {
		deps.Analyzer = seasonality.NewAnalyzer(seasonality.DefaultCatalog())
	}
	if deps.Predictor == nil {
		deps.Predictor = demand.NewPredictor()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{
		menuItems: deps.MenuItems,
		analytics: deps.Analytics,
		weather:   deps.Weather,
		analyzer:  deps.Analyzer,
		predictor: deps.Predictor,
		metrics:   deps.Metrics,
		cfg:       withDefaults(cfg),
		logger:    logger.With(zap.String("component", "optimizer")),
	}
}

func validateRestaurantID(id string) error {
	if strings.TrimSpace(id) == "" {
		return &ValidationError{Field: "restaurantId", Reason: "must not be empty"}
	}
	return nil
}

// GenerateSuggestions evaluates every rule for one restaurant as of
// referenceDate. Any store or weather failure fails the run; there are no
// partial results.
func (e *Engine) GenerateSuggestions(ctx context.Context, restaurantID string, referenceDate time.Time) ([]models.OptimizationSuggestion, error) {
	started := time.Now()
	suggestions, err := e.generate(ctx, restaurantID, referenceDate)
	e.metrics.ObserveRun(started, err)
	if err != nil {
		e.logger.Error("suggestion run failed",
			zap.String("restaurant_id", restaurantID),
			zap.Error(err),
		)
		return nil, err
	}
	for _, s := range suggestions {
		e.metrics.SuggestionEmitted(string(s.Type), string(s.Impact))
	}
	e.logger.Info("suggestions generated",
		zap.String("restaurant_id", restaurantID),
		zap.Int("suggestions", len(suggestions)),
		zap.Duration("elapsed", time.Since(started)),
	)
	return suggestions, nil
}

func (e *Engine) generate(ctx context.Context, restaurantID string, referenceDate time.Time) ([]models.OptimizationSuggestion, error) {
	if err := validateRestaurantID(restaurantID); err != nil {
		return nil, err
	}

	var items []*models.MenuItem
	err := e.call(ctx, opListMenuItems, func(ctx context.Context) error {
		var err error
		items, err = e.menuItems.GetByRestaurantID(ctx, restaurantID)
		return err
	})
	if err != nil {
		return nil, err
	}

	snap, err := e.fetch(ctx, restaurantID, repositories.EndOfDay(referenceDate), items)
	if err != nil {
		return nil, err
	}

	month := referenceDate.Month()
	suggestions := make([]models.OptimizationSuggestion, 0, 2*len(items)+2)
	for i, item := range items {
		ic := itemContext{
			item:       item,
			analytics:  snap.analytics[i],
			weather:    snap.weather,
			seasonal:   e.analyzer.AnalyzeMenu([]seasonality.DishInput{dishInput(item)}, month),
			windowDays: e.cfg.WindowDays,
		}
		for _, rule := range itemRules {
			suggestions = append(suggestions, rule(ic)...)
		}
	}

	mc := menuContext{
		seasonal:   e.analyzer.SuggestSeasonalDishes(month),
		popular:    snap.popular,
		windowDays: e.cfg.WindowDays,
		cfg:        e.cfg,
	}
	for _, rule := range menuRules {
		suggestions = append(suggestions, rule(mc)...)
	}

	rank(suggestions)
	return suggestions, nil
}

type snapshot struct {
	weather   models.Weather
	popular   []string
	analytics []*models.MenuItemAnalytics
}

// fetch fans out the weather, popularity and per-item analytics reads and
// waits for all of them. The first failure cancels the rest. Analytics
// windows end at asOf.
func (e *Engine) fetch(ctx context.Context, restaurantID string, asOf time.Time, items []*models.MenuItem) (snapshot, error) {
	snap := snapshot{analytics: make([]*models.MenuItemAnalytics, len(items))}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.cfg.MaxConcurrency)

	g.Go(func() error {
		return e.call(gctx, opWeather, func(ctx context.Context) error {
			w, err := e.weather.CurrentWeather(ctx)
			snap.weather = w
			return err
		})
	})
	g.Go(func() error {
		return e.call(gctx, opPopularCategories, func(ctx context.Context) error {
			popular, err := e.analytics.GetPopularCategories(ctx, restaurantID, asOf, e.cfg.WindowDays, e.cfg.PopularLimit)
			snap.popular = popular
			return err
		})
	})
	for i, item := range items {
		g.Go(func() error {
			return e.call(gctx, opItemAnalytics, func(ctx context.Context) error {
				a, err := e.analytics.GetItemAnalytics(ctx, item.ID, restaurantID, asOf, e.cfg.WindowDays)
				if err != nil {
					return err
				}
				if a == nil {
					a = &models.MenuItemAnalytics{ItemID: item.ID, Name: item.Name}
				}
				snap.analytics[i] = a
				return nil
			})
		})
	}

	if err := g.Wait(); err != nil {
		return snapshot{}, err
	}
	return snap, nil
}

// PredictDemand scores date for a restaurant using the current weather.
func (e *Engine) PredictDemand(ctx context.Context, restaurantID string, date time.Time) (int, error) {
	w, err := e.currentWeather(ctx, restaurantID)
	if err != nil {
		return 0, err
	}
	e.metrics.DemandPredicted()
	return e.predictor.Predict(date, w), nil
}

// ForecastDemand scores days consecutive dates from start under the current
// weather.
func (e *Engine) ForecastDemand(ctx context.Context, restaurantID string, start time.Time, days int) ([]demand.DailyDemand, error) {
	if days <= 0 {
		return nil, &ValidationError{Field: "days", Reason: "must be positive"}
	}
	w, err := e.currentWeather(ctx, restaurantID)
	if err != nil {
		return nil, err
	}
	e.metrics.DemandPredicted()
	return e.predictor.PredictRange(start, days, w), nil
}

func (e *Engine) currentWeather(ctx context.Context, restaurantID string) (models.Weather, error) {
	if err := validateRestaurantID(restaurantID); err != nil {
		return models.Weather{}, err
	}
	var w models.Weather
	err := e.call(ctx, opWeather, func(ctx context.Context) error {
		var err error
		w, err = e.weather.CurrentWeather(ctx)
		return err
	})
	return w, err
}

func (e *Engine) AnalyzeMenuIngredients(items []seasonality.DishInput, referenceDate time.Time) seasonality.MenuSeasonalReport {
	return e.analyzer.AnalyzeMenu(items, referenceDate.Month())
}

func (e *Engine) SeasonalMenuSuggestions(referenceDate time.Time) []string {
	return e.SeasonalDishes(referenceDate).Advisories()
}

// SeasonalDishes is the structured form of SeasonalMenuSuggestions.
func (e *Engine) SeasonalDishes(referenceDate time.Time) seasonality.SeasonalDishes {
	return e.analyzer.SuggestSeasonalDishes(referenceDate.Month())
}

// NewReport wraps a run's suggestions for publishing.
func NewReport(restaurantID string, referenceDate, generatedAt time.Time, suggestions []models.OptimizationSuggestion) models.SuggestionReport {
	return models.SuggestionReport{
		ID:            uuid.NewString(),
		RestaurantID:  restaurantID,
		GeneratedAt:   generatedAt.UTC(),
		ReferenceDate: referenceDate,
		Suggestions:   suggestions,
	}
}

func dishInput(item *models.MenuItem) seasonality.DishInput {
	return seasonality.DishInput{Name: item.Name, Description: item.Description}
}

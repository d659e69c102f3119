package memory

import (
	"context"
	"sort"
	"time"

	"github.com/chrisdamba/menuintel/internal/models"
	"github.com/chrisdamba/menuintel/internal/repositories"
)

// AnalyticsRepository mirrors the SQL aggregates of the postgres store.
type AnalyticsRepository struct{ s *Store }

// countable reports whether an order falls in the window for a restaurant.
func countable(o *models.Order, restaurantID string, w repositories.Window) bool {
	return o.RestaurantID == restaurantID &&
		o.Status != models.OrderStatusCancelled &&
		w.Contains(o.OrderPlacedAt)
}

func (r *AnalyticsRepository) GetItemAnalytics(ctx context.Context, itemID, restaurantID string, asOf time.Time, windowDays int) (*models.MenuItemAnalytics, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	item, ok := r.s.items[itemID]
	if !ok || item.RestaurantID != restaurantID {
		return nil, repositories.ErrNotFound
	}

	w := repositories.TrailingWindow(asOf, windowDays)
	var quantity, firstHalf, secondHalf int
	var revenue float64
	for _, o := range r.s.orders {
		if !countable(o, restaurantID, w) {
			continue
		}
		for _, line := range o.Items {
			if line.MenuItemID != itemID {
				continue
			}
			quantity += line.Quantity
			revenue += line.LineTotal()
			if w.InFirstHalf(o.OrderPlacedAt) {
				firstHalf += line.Quantity
			} else {
				secondHalf += line.Quantity
			}
		}
	}

	return &models.MenuItemAnalytics{
		ItemID:                 item.ID,
		Name:                   item.Name,
		TotalOrders:            quantity,
		TotalRevenue:           revenue,
		ProfitMargin:           item.ProfitMargin(),
		SeasonalTrend:          models.SeasonalTrend(firstHalf, secondHalf),
		PreparationTimeMinutes: item.PrepTime,
	}, nil
}

func (r *AnalyticsRepository) GetPopularCategories(ctx context.Context, restaurantID string, asOf time.Time, windowDays, limit int) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	w := repositories.TrailingWindow(asOf, windowDays)
	volume := make(map[string]int)
	for _, o := range r.s.orders {
		if !countable(o, restaurantID, w) {
			continue
		}
		for _, line := range o.Items {
			item, ok := r.s.items[line.MenuItemID]
			if !ok {
				continue
			}
			c, ok := r.s.categories[item.CategoryID]
			if !ok {
				continue
			}
			volume[c.Name] += line.Quantity
		}
	}

	names := make([]string, 0, len(volume))
	for name := range volume {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if volume[names[i]] != volume[names[j]] {
			return volume[names[i]] > volume[names[j]]
		}
		return names[i] < names[j]
	})
	if limit > 0 && len(names) > limit {
		names = names[:limit]
	}
	return names, nil
}

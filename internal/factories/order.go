package factories

import (
	"math"
	"math/rand"
	"time"

	"github.com/lucsky/cuid"

	"github.com/chrisdamba/menuintel/internal/demand"
	"github.com/chrisdamba/menuintel/internal/models"
)

const cancelRate = 0.04

// CreateOrders generates one day of orders for a restaurant. Volume follows
// the weekday demand pattern and item choice is Zipf-skewed so the tail of
// the menu sells poorly.
func (g *Generator) CreateOrders(restaurant *models.Restaurant, items []*models.MenuItem, day time.Time, perDay int) []*models.Order {
	if len(items) == 0 || perDay <= 0 {
		return nil
	}
	mult, ok := demand.WeekdayMultipliers[day.Weekday()]
	if !ok {
		mult = 1.0
	}
	count := int(math.Round(float64(perDay) * mult))

	var zipf *rand.Zipf
	if len(items) > 1 {
		zipf = rand.NewZipf(g.rng, 1.3, 2, uint64(len(items)-1))
	}
	pickItem := func() *models.MenuItem {
		if zipf == nil {
			return items[0]
		}
		return items[zipf.Uint64()]
	}

	midnight := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
	orders := make([]*models.Order, 0, count)
	for i := 0; i < count; i++ {
		order := &models.Order{
			ID:            cuid.New(),
			RestaurantID:  restaurant.ID,
			OrderPlacedAt: midnight.Add(g.serviceTime()),
			Status:        models.OrderStatusServed,
		}
		if g.rng.Float64() < cancelRate {
			order.Status = models.OrderStatusCancelled
		}

		lines := g.rng.Intn(3) + 1
		for l := 0; l < lines; l++ {
			item := pickItem()
			line := models.OrderItem{
				ID:         cuid.New(),
				OrderID:    order.ID,
				MenuItemID: item.ID,
				Quantity:   g.fake.IntBetween(1, 3),
				UnitPrice:  item.Price,
			}
			order.Items = append(order.Items, line)
			order.TotalAmount += line.LineTotal()
		}
		order.TotalAmount = roundCents(order.TotalAmount)
		orders = append(orders, order)
	}
	return orders
}

// serviceTime lands an order in lunch (12-15) or dinner (19-23) service.
func (g *Generator) serviceTime() time.Duration {
	hour := 12 + g.rng.Intn(3)
	if g.rng.Float64() < 0.6 {
		hour = 19 + g.rng.Intn(4)
	}
	return time.Duration(hour)*time.Hour + time.Duration(g.rng.Intn(60))*time.Minute
}

package models

import "time"

type Order struct {
	ID            string      `json:"id"`
	RestaurantID  string      `json:"restaurant_id"`
	Items         []OrderItem `json:"items"`
	TotalAmount   float64     `json:"total_amount"`
	OrderPlacedAt time.Time   `json:"order_placed_at"`
	Status        string      `json:"status"` // e.g., "placed", "served", "cancelled"
}

type OrderItem struct {
	ID         string  `json:"id"`
	OrderID    string  `json:"order_id"`
	MenuItemID string  `json:"menu_item_id"`
	Quantity   int     `json:"quantity"`
	UnitPrice  float64 `json:"unit_price"`
}

func (oi OrderItem) LineTotal() float64 {
	return float64(oi.Quantity) * oi.UnitPrice
}

// MenuItemAnalytics summarises one item over a trailing window.
type MenuItemAnalytics struct {
	ItemID                 string  `json:"itemId"`
	Name                   string  `json:"name"`
	TotalOrders            int     `json:"totalOrders"`
	TotalRevenue           float64 `json:"totalRevenue"`
	ProfitMargin           float64 `json:"profitMargin"`
	SeasonalTrend          float64 `json:"seasonalTrend"`
	PreparationTimeMinutes float64 `json:"preparationTimeMinutes"`
}

// SeasonalTrend compares quantity ordered in the second half of a window with
// the first half. An empty window is flat; growth from nothing is capped at 2.
func SeasonalTrend(firstHalf, secondHalf int) float64 {
	switch {
	case firstHalf == 0 && secondHalf == 0:
		return 1.0
	case firstHalf == 0:
		return 2.0
	}
	return float64(secondHalf) / float64(firstHalf)
}

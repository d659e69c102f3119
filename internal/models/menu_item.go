package models

type MenuItem struct {
	ID           string  `json:"id" db:"id"`
	RestaurantID string  `json:"restaurant_id" db:"restaurant_id"`
	CategoryID   string  `json:"category_id" db:"category_id"`
	Category     string  `json:"category" db:"category"`
	Name         string  `json:"name" db:"name"`
	Description  string  `json:"description" db:"description"`
	Price        float64 `json:"price" db:"price"`
	Cost         float64 `json:"cost" db:"cost"`          // ingredient cost per portion
	PrepTime     float64 `json:"prep_time" db:"prep_time"` // Preparation time in minutes
	Available    bool    `json:"available" db:"available"`
}

type Category struct {
	ID           string `json:"id" db:"id"`
	RestaurantID string `json:"restaurant_id" db:"restaurant_id"`
	Name         string `json:"name" db:"name"`
}

// ProfitMargin is (price - cost) / price, or 0 for unpriced items.
func (m MenuItem) ProfitMargin() float64 {
	if m.Price <= 0 {
		return 0
	}
	return (m.Price - m.Cost) / m.Price
}

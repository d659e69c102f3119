package factories

import (
	"github.com/lucsky/cuid"

	"github.com/chrisdamba/menuintel/internal/models"
)

type dish struct {
	name        string
	description string
	minPrice    int
	maxPrice    int
	prepTime    int
}

// dishesByCategory draws on the ingredient catalog so every seeded menu has
// something in and out of season whatever the month.
var dishesByCategory = []struct {
	category string
	dishes   []dish
}{
	{"Antipasti", []dish{
		{"Bruschetta al pomodoro", "Pane tostato, pomodoro, basilico", 6, 9, 8},
		{"Carciofi alla romana", "Carciofi, mentuccia, aglio", 8, 12, 25},
		{"Fiori di zucca fritti", "Fiori di zucca, mozzarella, acciughe", 9, 13, 15},
		{"Summer tomato soup", "Pomodoro, basilico, olio nuovo", 7, 10, 10},
	}},
	{"Primi", []dish{
		{"Spaghetti alle vongole", "Vongole, aglio, prezzemolo", 14, 19, 18},
		{"Risotto ai funghi porcini", "Riso carnaroli, funghi porcini, parmigiano", 15, 22, 25},
		{"Rigatoni alla carbonara", "Guanciale, uova, pecorino", 12, 15, 15},
		{"Pappardelle al cinghiale", "Ragù di cinghiale, rosmarino", 14, 18, 20},
		{"Ribollita", "Cavolo nero, cannellini, pane toscano", 10, 13, 30},
		{"Risotto alla zucca", "Riso, zucca, salvia, parmigiano", 13, 17, 25},
	}},
	{"Secondi", []dish{
		{"Abbacchio al forno", "Agnello, rosmarino, patate", 18, 25, 40},
		{"Tagliata di manzo", "Manzo, rucola, parmigiano", 20, 28, 15},
		{"Salmone alla griglia", "Salmone, limone, zucchine", 17, 23, 15},
		{"Parmigiana di melanzane", "Melanzane, pomodoro, mozzarella, parmigiano", 12, 16, 35},
	}},
	{"Pizze", []dish{
		{"Pizza Margherita", "Pomodoro, mozzarella, basilico", 7, 10, 10},
		{"Pizza ai peperoni", "Peperoni, mozzarella, origano", 9, 12, 10},
		{"Pizza tartufo e porcini", "Tartufo, funghi porcini, mozzarella", 14, 19, 12},
	}},
	{"Dolci", []dish{
		{"Crostata di fragole", "Fragole, crema, frolla", 6, 8, 5},
		{"Torta di castagne", "Castagne, ricotta, miele", 6, 8, 5},
		{"Fichi caramellati", "Fichi, mascarpone", 7, 9, 8},
		{"Sorbetto all'arancia", "Arance, limone", 5, 6, 3},
	}},
}

// CreateMenu picks n distinct dishes spread over the categories. n is capped
// at the number of dishes available.
func (g *Generator) CreateMenu(restaurant *models.Restaurant, n int) ([]*models.Category, []*models.MenuItem) {
	type pick struct {
		category int
		dish     dish
	}
	var pool []pick
	for ci, c := range dishesByCategory {
		for _, d := range c.dishes {
			pool = append(pool, pick{category: ci, dish: d})
		}
	}
	g.rng.Shuffle(len(pool), func(i, j int) { pool[i], pool[j] = pool[j], pool[i] })
	if n > len(pool) {
		n = len(pool)
	}

	categoryByIndex := make(map[int]*models.Category)
	var categories []*models.Category
	items := make([]*models.MenuItem, 0, n)
	for _, p := range pool[:n] {
		cat, ok := categoryByIndex[p.category]
		if !ok {
			cat = &models.Category{
				ID:           cuid.New(),
				RestaurantID: restaurant.ID,
				Name:         dishesByCategory[p.category].category,
			}
			categoryByIndex[p.category] = cat
			categories = append(categories, cat)
		}
		items = append(items, g.createMenuItem(restaurant, cat, p.dish))
	}
	return categories, items
}

func (g *Generator) createMenuItem(restaurant *models.Restaurant, category *models.Category, d dish) *models.MenuItem {
	price := g.fake.Float64(2, d.minPrice, d.maxPrice)
	// food cost between 25% and 65% of price, so some items land under a 50% margin
	costShare := g.fake.Float64(2, 25, 65) / 100
	return &models.MenuItem{
		ID:           cuid.New(),
		RestaurantID: restaurant.ID,
		CategoryID:   category.ID,
		Category:     category.Name,
		Name:         d.name,
		Description:  d.description,
		Price:        price,
		Cost:         roundCents(price * costShare),
		PrepTime:     float64(d.prepTime),
		Available:    true,
	}
}

func roundCents(v float64) float64 {
	return float64(int64(v*100+0.5)) / 100
}

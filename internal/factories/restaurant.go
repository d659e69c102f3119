package factories

import (
	"time"

	"github.com/lucsky/cuid"

	"github.com/chrisdamba/menuintel/internal/models"
)

var towns = []string{"Roma", "Firenze", "Bologna", "Napoli", "Torino", "Verona", "Lecce"}

var cuisineStyles = []string{"Romana", "Toscana", "Emiliana", "Napoletana", "Piemontese", "Pugliese", "Pizzeria", "Trattoria"}

func (g *Generator) CreateRestaurant() *models.Restaurant {
	return &models.Restaurant{
		ID:       cuid.New(),
		Name:     g.restaurantName(),
		Town:     g.fake.RandomStringElement(towns),
		Currency: "EUR",
		Location: models.Location{
			// greater Rome
			Lat: 41.80 + g.rng.Float64()*0.2,
			Lon: 12.35 + g.rng.Float64()*0.3,
		},
		Cuisines:  g.cuisines(),
		CreatedAt: time.Now().UTC().Truncate(time.Second),
	}
}

func (g *Generator) restaurantName() string {
	prefixes := []string{"Trattoria", "Osteria", "Pizzeria", "Ristorante", "Taverna"}
	return g.fake.RandomStringElement(prefixes) + " da " + g.fake.Person().FirstName()
}

func (g *Generator) cuisines() []string {
	count := g.rng.Intn(2) + 1
	seen := make(map[string]bool, count)
	out := make([]string, 0, count)
	for len(out) < count {
		c := g.fake.RandomStringElement(cuisineStyles)
		if seen[c] {
			continue
		}
		seen[c] = true
		out = append(out, c)
	}
	return out
}


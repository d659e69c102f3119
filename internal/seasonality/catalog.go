package seasonality

import (
	"fmt"
	"os"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

// lower is the single case folding used for catalog keys, lookups and dish
// text. Casers keep state, so each call gets its own.
func lower(s string) string {
	return cases.Lower(language.Und).String(s)
}

type Category string

const (
	CategoryVegetable Category = "vegetable"
	CategoryFruit     Category = "fruit"
	CategoryMeat      Category = "meat"
	CategoryFish      Category = "fish"
	CategoryDairy     Category = "dairy"
	CategoryHerb      Category = "herb"
	CategoryGrain     Category = "grain"
)

type Availability string

const (
	YearRound Availability = "year_round"
	Seasonal  Availability = "seasonal"
	Limited   Availability = "limited"
)

type Quality string

const (
	QualityExcellent Quality = "excellent"
	QualityGood      Quality = "good"
	QualityFair      Quality = "fair"
	QualityPoor      Quality = "poor"
)

// PeakSeason is an inclusive month window. Start > End wraps the year end.
type PeakSeason struct {
	Start int `yaml:"start" json:"start"`
	End   int `yaml:"end" json:"end"`
}

type Ingredient struct {
	Key              string       `yaml:"key" json:"key"`
	Name             string       `yaml:"name" json:"name"`
	Category         Category     `yaml:"category" json:"category"`
	PeakSeason       PeakSeason   `yaml:"peak_season" json:"peakSeason"`
	Availability     Availability `yaml:"availability" json:"availability"`
	CostMultiplier   float64      `yaml:"cost_multiplier" json:"costMultiplier"`
	OffSeasonQuality Quality      `yaml:"off_season_quality" json:"offSeasonQuality"`
}

// Catalog is an ordered, read-only set of ingredients plus a substitution
// table. Build one with NewCatalog, DefaultCatalog or LoadCatalogFile.
type Catalog struct {
	ingredients   []Ingredient
	index         map[string]int
	substitutions map[string][]string
}

func NewCatalog(ingredients []Ingredient, substitutions map[string][]string) (*Catalog, error) {
	c := &Catalog{
		ingredients:   make([]Ingredient, 0, len(ingredients)),
		index:         make(map[string]int, len(ingredients)),
		substitutions: make(map[string][]string, len(substitutions)),
	}
	for _, ing := range ingredients {
		if err := validateIngredient(ing); err != nil {
			return nil, err
		}
		key := lower(ing.Key)
		if _, dup := c.index[key]; dup {
			return nil, fmt.Errorf("duplicate ingredient %q", ing.Key)
		}
		ing.Key = key
		c.index[key] = len(c.ingredients)
		c.ingredients = append(c.ingredients, ing)
	}
	for name, alts := range substitutions {
		c.substitutions[lower(name)] = append([]string(nil), alts...)
	}
	return c, nil
}

func validateIngredient(ing Ingredient) error {
	if strings.TrimSpace(ing.Key) == "" {
		return fmt.Errorf("ingredient with empty key")
	}
	if ing.Name == "" {
		return fmt.Errorf("ingredient %q: empty name", ing.Key)
	}
	switch ing.Category {
	case CategoryVegetable, CategoryFruit, CategoryMeat, CategoryFish, CategoryDairy, CategoryHerb, CategoryGrain:
	default:
		return fmt.Errorf("ingredient %q: unknown category %q", ing.Key, ing.Category)
	}
	switch ing.Availability {
	case YearRound, Seasonal, Limited:
	default:
		return fmt.Errorf("ingredient %q: unknown availability %q", ing.Key, ing.Availability)
	}
	switch ing.OffSeasonQuality {
	case QualityExcellent, QualityGood, QualityFair, QualityPoor:
	default:
		return fmt.Errorf("ingredient %q: unknown quality %q", ing.Key, ing.OffSeasonQuality)
	}
	if ing.PeakSeason.Start < 1 || ing.PeakSeason.Start > 12 || ing.PeakSeason.End < 1 || ing.PeakSeason.End > 12 {
		return fmt.Errorf("ingredient %q: peak season months must be 1-12, got %d-%d",
			ing.Key, ing.PeakSeason.Start, ing.PeakSeason.End)
	}
	if ing.CostMultiplier < 1.0 {
		return fmt.Errorf("ingredient %q: cost multiplier %.2f below 1.0", ing.Key, ing.CostMultiplier)
	}
	// a zero premium off season would read as in season
	if ing.Availability != YearRound && costImpact(ing.CostMultiplier) == 0 {
		return fmt.Errorf("ingredient %q: seasonal ingredient needs a cost multiplier of at least 1.01", ing.Key)
	}
	return nil
}

// Ingredients returns a copy of the catalog in catalog order.
func (c *Catalog) Ingredients() []Ingredient {
	return append([]Ingredient(nil), c.ingredients...)
}

func (c *Catalog) Len() int { return len(c.ingredients) }

// Lookup finds an ingredient by key, ignoring case.
func (c *Catalog) Lookup(key string) (Ingredient, bool) {
	i, ok := c.index[lower(strings.TrimSpace(key))]
	if !ok {
		return Ingredient{}, false
	}
	return c.ingredients[i], true
}

// Alternatives returns the substitutes recorded for an ingredient, never nil.
func (c *Catalog) Alternatives(key string) []string {
	alts := c.substitutions[lower(key)]
	return append([]string{}, alts...)
}

type catalogFile struct {
	Ingredients   []Ingredient        `yaml:"ingredients"`
	Substitutions map[string][]string `yaml:"substitutions"`
}

// LoadCatalogFile reads a YAML catalog:
//
//	ingredients:
//	  - key: pomodoro
//	    name: Pomodoro
//	    category: vegetable
//	    peak_season: {start: 6, end: 9}
//	    availability: seasonal
//	    cost_multiplier: 2.5
//	    off_season_quality: poor
//	substitutions:
//	  pomodoro: [passata di pomodoro]
func LoadCatalogFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog %s: %w", path, err)
	}
	return ParseCatalog(data)
}

func ParseCatalog(data []byte) (*Catalog, error) {
	var f catalogFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	if len(f.Ingredients) == 0 {
		return nil, fmt.Errorf("catalog has no ingredients")
	}
	return NewCatalog(f.Ingredients, f.Substitutions)
}

func seasonal(key, name string, cat Category, start, end int, avail Availability, mult float64, q Quality) Ingredient {
	return Ingredient{
		Key:              key,
		Name:             name,
		Category:         cat,
		PeakSeason:       PeakSeason{Start: start, End: end},
		Availability:     avail,
		CostMultiplier:   mult,
		OffSeasonQuality: q,
	}
}

func yearRound(key, name string, cat Category) Ingredient {
	return seasonal(key, name, cat, 1, 12, YearRound, 1.0, QualityExcellent)
}

// defaultIngredients is an Italian kitchen calendar. Order matters: seasonal
// suggestions are listed in this order.
var defaultIngredients = []Ingredient{
	// summer vegetables
	seasonal("pomodoro", "Pomodoro", CategoryVegetable, 6, 9, Seasonal, 2.5, QualityPoor),
	seasonal("zucchine", "Zucchine", CategoryVegetable, 5, 9, Seasonal, 1.8, QualityFair),
	seasonal("melanzane", "Melanzane", CategoryVegetable, 6, 9, Seasonal, 2.0, QualityFair),
	seasonal("peperoni", "Peperoni", CategoryVegetable, 7, 9, Seasonal, 1.9, QualityFair),
	seasonal("fiori_di_zucca", "Fiori di zucca", CategoryVegetable, 5, 7, Limited, 3.5, QualityPoor),
	// spring
	seasonal("asparagi", "Asparagi", CategoryVegetable, 3, 5, Limited, 3.0, QualityPoor),
	seasonal("carciofi", "Carciofi", CategoryVegetable, 2, 5, Seasonal, 2.2, QualityFair),
	seasonal("piselli", "Piselli", CategoryVegetable, 4, 6, Seasonal, 1.6, QualityGood),
	seasonal("fave", "Fave", CategoryVegetable, 4, 6, Seasonal, 1.7, QualityFair),
	// autumn and winter
	seasonal("zucca", "Zucca", CategoryVegetable, 9, 12, Seasonal, 1.5, QualityGood),
	seasonal("funghi_porcini", "Funghi porcini", CategoryVegetable, 9, 11, Limited, 4.0, QualityPoor),
	seasonal("tartufo", "Tartufo", CategoryVegetable, 10, 12, Limited, 5.0, QualityPoor),
	seasonal("cavolo_nero", "Cavolo nero", CategoryVegetable, 11, 2, Seasonal, 1.6, QualityFair),
	seasonal("radicchio", "Radicchio", CategoryVegetable, 11, 3, Seasonal, 1.7, QualityGood),
	seasonal("castagne", "Castagne", CategoryFruit, 10, 12, Seasonal, 2.4, QualityPoor),
	// fruit
	seasonal("fragole", "Fragole", CategoryFruit, 4, 6, Seasonal, 2.2, QualityPoor),
	seasonal("pesche", "Pesche", CategoryFruit, 6, 8, Seasonal, 2.0, QualityFair),
	seasonal("fichi", "Fichi", CategoryFruit, 8, 9, Limited, 2.8, QualityPoor),
	seasonal("arance", "Arance", CategoryFruit, 12, 4, Seasonal, 1.4, QualityGood),
	yearRound("limone", "Limone", CategoryFruit),
	// fish
	seasonal("vongole", "Vongole", CategoryFish, 10, 3, Seasonal, 1.6, QualityGood),
	seasonal("acciughe", "Acciughe", CategoryFish, 4, 9, Seasonal, 1.5, QualityGood),
	yearRound("salmone", "Salmone", CategoryFish),
	// meat
	seasonal("agnello", "Agnello", CategoryMeat, 3, 5, Seasonal, 1.4, QualityGood),
	seasonal("cinghiale", "Cinghiale", CategoryMeat, 10, 1, Limited, 1.8, QualityFair),
	yearRound("manzo", "Manzo", CategoryMeat),
	yearRound("guanciale", "Guanciale", CategoryMeat),
	// dairy
	yearRound("mozzarella", "Mozzarella", CategoryDairy),
	yearRound("parmigiano", "Parmigiano", CategoryDairy),
	seasonal("ricotta", "Ricotta", CategoryDairy, 3, 6, Seasonal, 1.2, QualityGood),
	// herbs
	seasonal("basilico", "Basilico", CategoryHerb, 5, 9, Seasonal, 2.0, QualityFair),
	yearRound("rosmarino", "Rosmarino", CategoryHerb),
	yearRound("salvia", "Salvia", CategoryHerb),
	// grains
	yearRound("riso", "Riso", CategoryGrain),
	yearRound("farro", "Farro", CategoryGrain),
}

var defaultSubstitutions = map[string][]string{
	"pomodoro":       {"Pomodori pelati", "Passata di pomodoro", "Pomodorini secchi"},
	"zucchine":       {"Zucca", "Cavolfiore"},
	"melanzane":      {"Funghi champignon", "Zucca"},
	"peperoni":       {"Peperoni arrostiti in barattolo"},
	"fiori_di_zucca": {"Zucchine"},
	"asparagi":       {"Broccoletti", "Fagiolini"},
	"carciofi":       {"Carciofini sott'olio", "Cuori di carciofo surgelati"},
	"piselli":        {"Piselli surgelati"},
	"fave":           {"Fagioli cannellini"},
	"zucca":          {"Patate dolci", "Carote"},
	"funghi_porcini": {"Porcini secchi", "Funghi champignon"},
	"tartufo":        {"Olio al tartufo", "Funghi porcini"},
	"cavolo_nero":    {"Spinaci", "Bietole"},
	"radicchio":      {"Indivia", "Rucola"},
	"castagne":       {"Castagne secche", "Nocciole"},
	"fragole":        {"Frutti di bosco surgelati", "Mele"},
	"pesche":         {"Pesche sciroppate", "Albicocche secche"},
	"fichi":          {"Fichi secchi"},
	"arance":         {"Limone", "Mandarini"},
	"vongole":        {"Cozze", "Vongole surgelate"},
	"acciughe":       {"Acciughe sott'olio", "Sardine"},
	"agnello":        {"Manzo", "Maiale"},
	"cinghiale":      {"Manzo"},
	"ricotta":        {"Mascarpone", "Stracchino"},
	"basilico":       {"Prezzemolo", "Pesto conservato", "Basilico secco"},
}

// DefaultCatalog builds the built-in catalog. Each call returns a fresh value.
func DefaultCatalog() *Catalog {
	c, err := NewCatalog(defaultIngredients, defaultSubstitutions)
	if err != nil {
		panic(fmt.Sprintf("seasonality: invalid default catalog: %v", err))
	}
	return c
}

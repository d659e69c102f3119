package seasonality

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCatalog(t *testing.T) *Catalog {
	t.Helper()
	c, err := NewCatalog([]Ingredient{
		seasonal("cavolo", "Cavolo", CategoryVegetable, 11, 2, Seasonal, 1.6, QualityFair),
		seasonal("asparagi", "Asparagi", CategoryVegetable, 3, 5, Limited, 3.0, QualityPoor),
		yearRound("riso", "Riso", CategoryGrain),
	}, map[string][]string{"Asparagi": {"Fagiolini", "Broccoletti"}})
	require.NoError(t, err)
	return c
}

func TestClassifyPomodoroInJanuary(t *testing.T) {
	c := NewClassifier(DefaultCatalog())

	got, err := c.Classify("pomodoro", time.January)
	require.NoError(t, err)

	assert.Equal(t, "Pomodoro", got.Ingredient)
	assert.Equal(t, OutOfSeason, got.Status)
	assert.Equal(t, 150, got.CostImpactPercent)
	assert.Equal(t, QualityPoor, got.Quality)
	assert.Equal(t, []string{"Pomodori pelati", "Passata di pomodoro", "Pomodorini secchi"}, got.Alternatives)
	assert.Contains(t, got.Recommendation, "150%")
}

func TestClassifyUnknownIngredient(t *testing.T) {
	c := NewClassifier(DefaultCatalog())
	_, err := c.Classify("durian", time.March)
	assert.ErrorIs(t, err, ErrIngredientNotFound)
}

func TestClassifyIsCaseInsensitive(t *testing.T) {
	c := NewClassifier(DefaultCatalog())
	got, err := c.Classify("  POMODORO ", time.July)
	require.NoError(t, err)
	assert.Equal(t, InSeason, got.Status)
}

func TestWraparoundSeason(t *testing.T) {
	c := NewClassifier(testCatalog(t))
	for m := time.January; m <= time.December; m++ {
		got, err := c.Classify("cavolo", m)
		require.NoError(t, err)
		switch m {
		case time.November, time.December, time.January, time.February:
			assert.Equal(t, InSeason, got.Status, "month %d", m)
		case time.October, time.March:
			assert.Equal(t, Transitioning, got.Status, "month %d", m)
		default:
			assert.Equal(t, OutOfSeason, got.Status, "month %d", m)
		}
	}
}

func TestTransitionBoundaries(t *testing.T) {
	c := NewClassifier(testCatalog(t))
	tests := []struct {
		month time.Month
		want  Status
	}{
		{time.February, Transitioning},
		{time.March, InSeason},
		{time.May, InSeason},
		{time.June, Transitioning},
		{time.July, OutOfSeason},
		{time.January, OutOfSeason},
	}
	for _, tt := range tests {
		t.Run(tt.month.String(), func(t *testing.T) {
			got, err := c.Classify("asparagi", tt.month)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.Status)
			if tt.want != InSeason {
				assert.Equal(t, 200, got.CostImpactPercent)
				assert.Equal(t, []string{"Fagiolini", "Broccoletti"}, got.Alternatives)
			}
		})
	}
}

func TestDecemberPrecedesJanuary(t *testing.T) {
	c, err := NewCatalog([]Ingredient{
		seasonal("arance", "Arance", CategoryFruit, 1, 3, Seasonal, 1.4, QualityGood),
		seasonal("zucca", "Zucca", CategoryVegetable, 9, 12, Seasonal, 1.5, QualityGood),
	}, nil)
	require.NoError(t, err)
	cl := NewClassifier(c)

	got, err := cl.Classify("arance", time.December)
	require.NoError(t, err)
	assert.Equal(t, Transitioning, got.Status)

	got, err = cl.Classify("zucca", time.January)
	require.NoError(t, err)
	assert.Equal(t, Transitioning, got.Status)
	assert.Empty(t, got.Alternatives)
	assert.NotNil(t, got.Alternatives)
}

func TestCostImpactZeroIffInSeason(t *testing.T) {
	catalog := DefaultCatalog()
	c := NewClassifier(catalog)
	for _, ing := range catalog.Ingredients() {
		for m := time.January; m <= time.December; m++ {
			got, err := c.Classify(ing.Key, m)
			require.NoError(t, err)
			assert.Equal(t, got.CostImpactPercent == 0, got.Status == InSeason, "%s month %d", ing.Key, m)
			if ing.Availability == YearRound {
				assert.Equal(t, InSeason, got.Status)
				assert.Equal(t, QualityExcellent, got.Quality)
			}
			if got.Status == InSeason {
				assert.Equal(t, QualityExcellent, got.Quality)
			}
		}
	}
}

func TestNewCatalogValidation(t *testing.T) {
	tests := []struct {
		name string
		ing  Ingredient
	}{
		{"bad month", seasonal("x", "X", CategoryFruit, 0, 5, Seasonal, 1.5, QualityGood)},
		{"bad category", seasonal("x", "X", "mineral", 1, 5, Seasonal, 1.5, QualityGood)},
		{"cheap out of season", seasonal("x", "X", CategoryFruit, 1, 5, Seasonal, 1.0, QualityGood)},
		{"multiplier below one", seasonal("x", "X", CategoryFruit, 1, 5, Seasonal, 0.8, QualityGood)},
		{"empty key", seasonal(" ", "X", CategoryFruit, 1, 5, Seasonal, 1.5, QualityGood)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewCatalog([]Ingredient{tt.ing}, nil)
			assert.Error(t, err)
		})
	}

	_, err := NewCatalog([]Ingredient{yearRound("riso", "Riso", CategoryGrain), yearRound("RISO", "Riso", CategoryGrain)}, nil)
	assert.Error(t, err)
}

func TestLoadCatalogFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
ingredients:
  - key: Pomodoro
    name: Pomodoro
    category: vegetable
    peak_season: {start: 6, end: 9}
    availability: seasonal
    cost_multiplier: 2.5
    off_season_quality: poor
  - key: riso
    name: Riso
    category: grain
    peak_season: {start: 1, end: 12}
    availability: year_round
    cost_multiplier: 1
    off_season_quality: excellent
substitutions:
  POMODORO: [Passata di pomodoro]
`), 0o644))

	c, err := LoadCatalogFile(path)
	require.NoError(t, err)
	assert.Equal(t, 2, c.Len())

	ing, ok := c.Lookup("pomodoro")
	require.True(t, ok)
	assert.Equal(t, "pomodoro", ing.Key)
	assert.Equal(t, []string{"Passata di pomodoro"}, c.Alternatives("pomodoro"))

	_, err = ParseCatalog([]byte("ingredients: []"))
	assert.Error(t, err)
}

func TestExtract(t *testing.T) {
	e := NewExtractor(DefaultCatalog())
	tests := []struct {
		name, desc string
		want       []string
	}{
		{"Pizza Margherita", "Pomodoro, mozzarella, basilico", []string{"pomodoro", "mozzarella", "basilico"}},
		{"Fiori di zucca fritti", "ripieni di ricotta", []string{"fiori_di_zucca", "zucca", "ricotta"}},
		{"Tiramisù", "servito con un sorriso", []string{"riso"}},
		{"Acqua", "", nil},
		{"TAGLIATA DI MANZO", "Rosmarino", []string{"manzo", "rosmarino"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, e.Extract(tt.name, tt.desc))
		})
	}
}

func TestAnalyzeMenuPizzaMargheritaInJanuary(t *testing.T) {
	a := NewAnalyzer(DefaultCatalog())

	report := a.AnalyzeMenu([]DishInput{
		{Name: "Pizza Margherita", Description: "Pomodoro, mozzarella, basilico"},
	}, time.January)

	require.Len(t, report.Analyses, 3)
	assert.Equal(t, "Pomodoro", report.Analyses[0].Ingredient)
	assert.Equal(t, OutOfSeason, report.Analyses[0].Status)
	assert.Equal(t, InSeason, report.Analyses[1].Status)
	assert.Equal(t, "Basilico", report.Analyses[2].Ingredient)
	assert.Equal(t, OutOfSeason, report.Analyses[2].Status)

	// (150 + 0 + 100) / 3
	assert.Equal(t, 83, report.AggregateCostImpactPercent)
	require.Len(t, report.Recommendations, 2)
	assert.Contains(t, report.Recommendations[0], "seasonal menu")
	assert.Contains(t, report.Recommendations[1], "83%")
}

func TestAnalyzeMenuNoDedupAcrossDishes(t *testing.T) {
	a := NewAnalyzer(DefaultCatalog())
	report := a.AnalyzeMenu([]DishInput{
		{Name: "Caprese", Description: "mozzarella e basilico"},
		{Name: "Pesto", Description: "basilico, parmigiano"},
	}, time.July)

	keys := make([]string, 0, len(report.Analyses))
	for _, an := range report.Analyses {
		keys = append(keys, an.Key)
	}
	assert.Equal(t, []string{"mozzarella", "basilico", "parmigiano", "basilico"}, keys)
	assert.Equal(t, 0, report.AggregateCostImpactPercent)
	assert.Equal(t, []string{"Great seasonal alignment: most ingredients are at peak quality."}, report.Recommendations)
}

func TestAnalyzeMenuEmpty(t *testing.T) {
	a := NewAnalyzer(DefaultCatalog())
	for _, items := range [][]DishInput{nil, {}, {{Name: "Acqua frizzante"}}} {
		report := a.AnalyzeMenu(items, time.May)
		assert.Empty(t, report.Analyses)
		assert.Empty(t, report.Recommendations)
		assert.Equal(t, 0, report.AggregateCostImpactPercent)
	}
}

func TestAnalyzeMenuIsIdempotent(t *testing.T) {
	a := NewAnalyzer(DefaultCatalog())
	items := []DishInput{
		{Name: "Risotto ai funghi porcini", Description: "riso, porcini, parmigiano"},
		{Name: "Spaghetti alle vongole", Description: "vongole, prezzemolo"},
	}
	first := a.AnalyzeMenu(items, time.March)
	second := a.AnalyzeMenu(items, time.March)
	assert.Equal(t, first, second)
}

func TestSuggestSeasonalDishesJanuary(t *testing.T) {
	a := NewAnalyzer(DefaultCatalog())
	got := a.SuggestSeasonalDishes(time.January)

	assert.Equal(t, []string{"Cavolo nero", "Radicchio", "Arance", "Limone", "Vongole"}, got.InSeason)
	assert.Equal(t, []string{"Pomodoro", "Zucchine", "Melanzane"}, got.Avoid)

	adv := got.Advisories()
	require.Len(t, adv, 2)
	assert.Contains(t, adv[0], "Cavolo nero, Radicchio")
	assert.Contains(t, adv[1], "Pomodoro, Zucchine, Melanzane")
}

func TestSuggestSeasonalDishesYearRound(t *testing.T) {
	c := testCatalog(t)
	a := NewAnalyzer(c)
	for m := time.January; m <= time.December; m++ {
		got := a.SuggestSeasonalDishes(m)
		assert.NotContains(t, got.Avoid, "Riso", "month %d", m)
		assert.Contains(t, got.InSeason, "Riso", "month %d", m)
	}

	empty := SeasonalDishes{}.Advisories()
	assert.Len(t, empty, 2)
}

func TestSuggestSeasonalDishesYearRoundFirst(t *testing.T) {
	c, err := NewCatalog([]Ingredient{
		yearRound("riso", "Riso", CategoryGrain),
		seasonal("pomodoro", "Pomodoro", CategoryVegetable, 6, 9, Seasonal, 2.5, QualityPoor),
	}, nil)
	require.NoError(t, err)

	got := NewAnalyzer(c).SuggestSeasonalDishes(time.January)
	assert.Equal(t, []string{"Riso"}, got.InSeason)
	assert.Equal(t, []string{"Pomodoro"}, got.Avoid)

	got = NewAnalyzer(c).SuggestSeasonalDishes(time.July)
	assert.Equal(t, []string{"Riso", "Pomodoro"}, got.InSeason)
	assert.Empty(t, got.Avoid)
}

func TestNonASCIIKeyRoundTrips(t *testing.T) {
	c, err := NewCatalog([]Ingredient{
		seasonal("İncir", "Fichi", CategoryFruit, 8, 9, Limited, 2.8, QualityPoor),
	}, map[string][]string{"İncir": {"Fichi secchi"}})
	require.NoError(t, err)

	keys := NewExtractor(c).Extract("Crostata di İncir", "")
	require.Len(t, keys, 1)

	_, ok := c.Lookup(keys[0])
	require.True(t, ok)
	_, ok = c.Lookup("İncir")
	require.True(t, ok)

	got, err := NewClassifier(c).Classify(keys[0], time.January)
	require.NoError(t, err)
	assert.Equal(t, "Fichi", got.Ingredient)
	assert.Equal(t, []string{"Fichi secchi"}, got.Alternatives)

	report := NewAnalyzer(c).AnalyzeMenu([]DishInput{{Name: "Crostata di İncir"}}, time.January)
	require.Len(t, report.Analyses, 1)
	assert.Equal(t, OutOfSeason, report.Analyses[0].Status)
}

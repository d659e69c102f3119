package optimizer

import (
	"sort"

	"github.com/chrisdamba/menuintel/internal/models"
)

// rank orders suggestions by impact, keeping generation order within a rank.
func rank(suggestions []models.OptimizationSuggestion) {
	sort.SliceStable(suggestions, func(i, j int) bool {
		return suggestions[i].Impact.Rank() > suggestions[j].Impact.Rank()
	})
}

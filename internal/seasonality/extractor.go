package seasonality

import "strings"

type matcher struct {
	key  string
	name string
}

// Extractor finds catalog ingredients mentioned in free-text dish copy.
// Matching is plain substring search, so short keys can hit inside longer
// words ("riso" in "sorriso").
type Extractor struct {
	matchers []matcher
}

func NewExtractor(catalog *Catalog) *Extractor {
	ms := make([]matcher, 0, catalog.Len())
	for _, ing := range catalog.Ingredients() {
		ms = append(ms, matcher{
			key:  lower(ing.Key),
			name: lower(ing.Name),
		})
	}
	return &Extractor{matchers: ms}
}

// Extract returns the catalog keys found in name and description, in catalog
// order.
func (e *Extractor) Extract(name, description string) []string {
	text := lower(name + " " + description)
	var found []string
	for _, m := range e.matchers {
		if strings.Contains(text, m.key) || strings.Contains(text, m.name) {
			found = append(found, m.key)
		}
	}
	return found
}

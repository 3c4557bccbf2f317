package dietary

import (
	"sort"
	"strings"

	"github.com/wecare/foodcheck/pkg/model"
)

// Allergen keyword table: canonical allergen name to the ingredient substrings
// that indicate it. Matching is case-insensitive substring over ingredient
// names and tags. Read-only after init, safe for concurrent use.
var allergenKeywords = map[string][]string{
	"Peanuts":   {"peanut", "groundnut"},
	"Tree Nuts": {"almond", "hazelnut", "walnut", "cashew", "pistachio", "pecan", "macadamia", "brazil nut"},
	"Milk":      {"milk", "cream", "butter", "cheese", "whey", "casein", "lactose", "yogurt", "yoghurt"},
	"Eggs":      {"egg", "albumin", "ovalbumin"},
	"Wheat":     {"wheat", "flour", "semolina", "spelt", "bulgur"},
	"Soy":       {"soy", "soya", "soybean", "tofu", "edamame"},
	"Fish":      {"fish", "anchovy", "tuna", "salmon", "cod", "sardine"},
	"Shellfish": {"shrimp", "prawn", "crab", "lobster", "crayfish"},
	"Sesame":    {"sesame", "tahini"},
	"Mustard":   {"mustard"},
	"Celery":    {"celery", "celeriac"},
	"Lupin":     {"lupin", "lupine"},
	"Sulfites":  {"sulfite", "sulphite", "e220", "e221", "e222", "e223", "e224", "e226", "e227", "e228"},
	"Mollusks":  {"mussel", "oyster", "clam", "scallop", "squid", "octopus", "snail"},
	"Gluten":    {"gluten", "wheat", "barley", "rye", "oats", "malt"},
}

// DetectAllergens matches the product's ingredients against the keyword
// table and returns the canonical names of every allergen found, sorted.
func DetectAllergens(p *model.Product) []string {
	found := make(map[string]bool)
	for _, ingredient := range p.Ingredients {
		ing := strings.ToLower(ingredient)
		for allergen, keywords := range allergenKeywords {
			if found[allergen] {
				continue
			}
			for _, kw := range keywords {
				if strings.Contains(ing, kw) {
					found[allergen] = true
					break
				}
			}
		}
	}
	detected := make([]string, 0, len(found))
	for allergen := range found {
		detected = append(detected, allergen)
	}
	sort.Strings(detected)
	return detected
}

// IntersectUserAllergens returns the subset of the user's declared allergens
// that were detected, preserving the user's order and spelling. Names match
// case-insensitively, with common aliases (Dairy for Milk) folded in.
func IntersectUserAllergens(detected, userAllergens []string) []string {
	detectedSet := make(map[string]bool, len(detected))
	for _, a := range detected {
		detectedSet[canonicalAllergen(a)] = true
	}
	present := []string{}
	for _, a := range userAllergens {
		if detectedSet[canonicalAllergen(a)] {
			present = append(present, a)
		}
	}
	return present
}

// canonicalAllergen folds case and common user-facing aliases so "Dairy"
// matches a detected "Milk".
func canonicalAllergen(name string) string {
	n := strings.ToLower(strings.TrimSpace(name))
	switch n {
	case "dairy", "lactose":
		return "milk"
	case "peanut":
		return "peanuts"
	case "nuts", "tree nut":
		return "tree nuts"
	case "egg":
		return "eggs"
	case "mollusc", "molluscs", "mollusk":
		return "mollusks"
	case "sulphites":
		return "sulfites"
	}
	return n
}

package dietary

import (
	"fmt"
	"strings"

	"github.com/wecare/foodcheck/pkg/model"
)

// dietRule is a named predicate over a product. It returns whether the
// product is compatible and a human-readable reason either way.
type dietRule func(p *model.Product) (bool, string)

// Ingredient keyword sets used by the diet rules.
var (
	meatKeywords = []string{
		"beef", "pork", "chicken", "turkey", "lamb", "veal", "bacon",
		"ham", "sausage", "gelatin", "gelatine", "meat", "duck",
	}
	fishKeywords = []string{
		"fish", "anchovy", "tuna", "salmon", "cod", "sardine",
		"shrimp", "prawn", "crab", "lobster",
	}
	dairyKeywords = []string{
		"milk", "cream", "butter", "cheese", "whey", "casein",
		"lactose", "yogurt", "yoghurt",
	}
	animalKeywords = []string{
		"egg", "honey", "milk", "cream", "butter", "cheese", "whey",
		"casein", "lactose", "yogurt", "yoghurt",
	}
	glutenKeywords = []string{"wheat", "barley", "rye", "gluten", "malt", "spelt", "semolina"}
)

// Nutrient limits used by the threshold diets, grams per 100g.
const (
	ketoSugarLimit     = 5.0
	lowSugarLimit      = 5.0
	lowSodiumSaltLimit = 0.3
	lowFatSatLimit     = 1.5
)

var dietRules = map[string]dietRule{
	"vegan": func(p *model.Product) (bool, string) {
		if ing, ok := findIngredient(p, append(meatKeywords, fishKeywords...)); ok {
			return false, fmt.Sprintf("contains animal product: %s", ing)
		}
		if ing, ok := findIngredient(p, animalKeywords); ok {
			return false, fmt.Sprintf("contains animal-derived ingredient: %s", ing)
		}
		return true, "no animal-derived ingredients found"
	},
	"vegetarian": func(p *model.Product) (bool, string) {
		if ing, ok := findIngredient(p, append(meatKeywords, fishKeywords...)); ok {
			return false, fmt.Sprintf("contains meat or fish: %s", ing)
		}
		return true, "no meat or fish ingredients found"
	},
	"pescatarian": func(p *model.Product) (bool, string) {
		if ing, ok := findIngredient(p, meatKeywords); ok {
			return false, fmt.Sprintf("contains meat: %s", ing)
		}
		return true, "no meat ingredients found"
	},
	"gluten-free": func(p *model.Product) (bool, string) {
		if ing, ok := findIngredient(p, glutenKeywords); ok {
			return false, fmt.Sprintf("contains gluten source: %s", ing)
		}
		return true, "no gluten sources found"
	},
	"lactose-free": func(p *model.Product) (bool, string) {
		if ing, ok := findIngredient(p, dairyKeywords); ok {
			return false, fmt.Sprintf("contains dairy: %s", ing)
		}
		return true, "no dairy ingredients found"
	},
	"keto": func(p *model.Product) (bool, string) {
		sugars, ok := p.Nutrient(model.NutrientSugars)
		if !ok {
			return false, "sugar content unknown, cannot confirm keto compatibility"
		}
		if sugars > ketoSugarLimit {
			return false, fmt.Sprintf("sugars %.1fg/100g exceed keto limit of %.1fg", sugars, ketoSugarLimit)
		}
		return true, fmt.Sprintf("sugars %.1fg/100g within keto limit", sugars)
	},
	"low-sugar": func(p *model.Product) (bool, string) {
		sugars, ok := p.Nutrient(model.NutrientSugars)
		if !ok {
			return false, "sugar content unknown"
		}
		if sugars > lowSugarLimit {
			return false, fmt.Sprintf("sugars %.1fg/100g exceed low-sugar limit of %.1fg", sugars, lowSugarLimit)
		}
		return true, fmt.Sprintf("sugars %.1fg/100g within low-sugar limit", sugars)
	},
	"low-sodium": func(p *model.Product) (bool, string) {
		salt, ok := p.Nutrient(model.NutrientSalt)
		if !ok {
			return false, "salt content unknown"
		}
		if salt > lowSodiumSaltLimit {
			return false, fmt.Sprintf("salt %.2fg/100g exceeds low-sodium limit of %.2fg", salt, lowSodiumSaltLimit)
		}
		return true, fmt.Sprintf("salt %.2fg/100g within low-sodium limit", salt)
	},
	"low-fat": func(p *model.Product) (bool, string) {
		sat, ok := p.Nutrient(model.NutrientSaturatedFat)
		if !ok {
			return false, "fat content unknown"
		}
		if sat > lowFatSatLimit {
			return false, fmt.Sprintf("saturated fat %.1fg/100g exceeds low-fat limit of %.1fg", sat, lowFatSatLimit)
		}
		return true, fmt.Sprintf("saturated fat %.1fg/100g within low-fat limit", sat)
	},
}

// EvaluateDiets checks the product against each requested diet. Evaluation is
// total: an unrecognized diet name yields a not-compatible entry rather than
// an error.
func EvaluateDiets(p *model.Product, diets []string) []model.DietCompatibility {
	results := make([]model.DietCompatibility, 0, len(diets))
	for _, diet := range diets {
		rule, ok := dietRules[strings.ToLower(strings.TrimSpace(diet))]
		if !ok {
			results = append(results, model.DietCompatibility{
				Diet:       diet,
				Compatible: false,
				Reason:     "diet definition not recognized",
			})
			continue
		}
		compatible, reason := rule(p)
		results = append(results, model.DietCompatibility{
			Diet:       diet,
			Compatible: compatible,
			Reason:     reason,
		})
	}
	return results
}

// findIngredient returns the first product ingredient containing any of the
// given keywords, case-insensitively.
func findIngredient(p *model.Product, keywords []string) (string, bool) {
	for _, ingredient := range p.Ingredients {
		ing := strings.ToLower(ingredient)
		for _, kw := range keywords {
			if strings.Contains(ing, kw) {
				return ingredient, true
			}
		}
	}
	return "", false
}

package product

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"strings"

	"github.com/wecare/foodcheck/pkg/model"
	"github.com/wecare/foodcheck/pkg/scoring"
)

// Load reads a product JSON file and normalizes it. File and parse problems
// are input errors, fatal to the run; missing fields inside a parseable
// record are not, they just leave the corresponding Product fields empty.
func Load(path string) (*model.Product, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading product file: %w", err)
	}
	return Parse(data)
}

// Parse normalizes a raw product payload. Both the flat foodcheck shape and
// the OpenFoodFacts API shape (wrapped in a "product" key) are accepted.
func Parse(data []byte) (*model.Product, error) {
	var raw map[string]interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing product JSON: %w", err)
	}
	return Normalize(raw), nil
}

// Normalize maps an arbitrary product record into the canonical Product.
// Absent fields degrade (empty name, missing nutrients) rather than fail.
func Normalize(raw map[string]interface{}) *model.Product {
	// OpenFoodFacts wraps the record in a "product" key.
	record := raw
	if inner, ok := raw["product"].(map[string]interface{}); ok {
		record = inner
	}

	// The barcode may sit beside the wrapper rather than inside it.
	barcode := str(record, "code", "barcode", "_id", "id")
	if barcode == "" {
		barcode = str(raw, "code", "barcode", "id")
	}

	p := &model.Product{
		Barcode:     barcode,
		Name:        str(record, "name", "product_name", "product_name_en"),
		Brand:       str(record, "brand", "brands", "brand_owner"),
		Nutrients:   normalizeNutrients(record),
		Ingredients: normalizeIngredients(record),
		Additives:   normalizeAdditives(record),
	}
	if p.Name == "" {
		p.Name = "Unknown Product"
	}
	p.ExternalScore = normalizeScore(raw, record)
	return p
}

// Aliases per canonical nutrient key, checked in order. OpenFoodFacts uses
// the *_100g forms, the flat shape uses the canonical names directly.
var nutrientAliases = map[string][]string{
	model.NutrientProtein:      {"protein_g", "proteins_100g", "proteins", "protein"},
	model.NutrientSaturatedFat: {"saturated_fat_g", "saturated-fat_100g", "saturated-fat", "saturated_fat"},
	model.NutrientSugars:       {"sugars_g", "sugars_100g", "sugars", "sugar"},
	model.NutrientFiber:        {"fiber_g", "fiber_100g", "fiber", "fibre"},
	model.NutrientSalt:         {"salt_g", "salt_100g", "salt"},
	model.NutrientEnergy:       {"energy_kcal", "energy-kcal_100g", "energy-kcal", "calories"},
}

func normalizeNutrients(record map[string]interface{}) map[string]float64 {
	// Candidate containers, most specific first.
	var sources []map[string]interface{}
	for _, key := range []string{"nutrients", "nutriments"} {
		if m, ok := record[key].(map[string]interface{}); ok {
			sources = append(sources, m)
		}
	}
	if m, ok := record["nutrition"].(map[string]interface{}); ok {
		sources = append(sources, flattenNutrition(m))
	}

	out := make(map[string]float64)
	for canonical, aliases := range nutrientAliases {
		for _, src := range sources {
			if v, ok := pick(src, aliases...); ok {
				out[canonical] = v
				break
			}
		}
	}
	return out
}

// flattenNutrition unpacks the nested legacy shape
// {calories, protein, fat: {saturated}, carbohydrates: {sugar}, fiber, salt}.
func flattenNutrition(n map[string]interface{}) map[string]interface{} {
	flat := make(map[string]interface{}, len(n)+2)
	for k, v := range n {
		flat[k] = v
	}
	if fat, ok := n["fat"].(map[string]interface{}); ok {
		if sat, ok := fat["saturated"]; ok {
			flat["saturated_fat"] = sat
		}
	}
	if carbs, ok := n["carbohydrates"].(map[string]interface{}); ok {
		if sugar, ok := carbs["sugar"]; ok {
			flat["sugar"] = sugar
		}
	}
	return flat
}

func normalizeIngredients(record map[string]interface{}) []string {
	var out []string
	switch ings := record["ingredients"].(type) {
	case []interface{}:
		for _, item := range ings {
			switch ing := item.(type) {
			case string:
				out = append(out, ing)
			case map[string]interface{}:
				if name := str(ing, "text", "name", "id"); name != "" {
					out = append(out, strings.TrimPrefix(name, "en:"))
				}
			}
		}
	}
	if out == nil {
		if tags, ok := record["ingredients_tags"].([]interface{}); ok {
			for _, t := range tags {
				if s, ok := t.(string); ok {
					out = append(out, strings.TrimPrefix(s, "en:"))
				}
			}
		}
	}
	return out
}

func normalizeAdditives(record map[string]interface{}) []string {
	keys := []string{"additives", "additives_tags"}
	var out []string
	for _, key := range keys {
		tags, ok := record[key].([]interface{})
		if !ok {
			continue
		}
		for _, t := range tags {
			s, ok := t.(string)
			if !ok {
				continue
			}
			out = append(out, strings.ToUpper(strings.TrimPrefix(s, "en:")))
		}
		break
	}
	return out
}

// normalizeScore accepts an externally supplied score either as an object
// with the full breakdown or as a bare number.
func normalizeScore(raw, record map[string]interface{}) *model.Score {
	var v interface{}
	for _, container := range []map[string]interface{}{raw, record} {
		for _, key := range []string{"score", "external_score"} {
			if s, ok := container[key]; ok && s != nil {
				v = s
				break
			}
		}
		if v != nil {
			break
		}
	}
	switch s := v.(type) {
	case float64:
		total := int(math.Round(s))
		return &model.Score{Total: total, Category: scoring.Categorize(total)}
	case map[string]interface{}:
		total, ok := pick(s, "total")
		if !ok {
			return nil
		}
		score := &model.Score{Total: int(math.Round(total))}
		if c, ok := s["category"].(string); ok {
			score.Category = c
		} else {
			score.Category = scoring.Categorize(score.Total)
		}
		if n, ok := pick(s, "nutrition_score"); ok {
			score.NutritionScore = int(math.Round(n))
		}
		if a, ok := pick(s, "additives_score"); ok {
			score.AdditivesScore = int(math.Round(a))
		}
		return score
	}
	return nil
}

// pick returns the first present numeric value among the given keys.
func pick(m map[string]interface{}, keys ...string) (float64, bool) {
	for _, k := range keys {
		if v, ok := m[k]; ok {
			if f, ok := v.(float64); ok {
				return f, true
			}
		}
	}
	return 0, false
}

func str(m map[string]interface{}, keys ...string) string {
	for _, k := range keys {
		if v, ok := m[k].(string); ok && v != "" {
			return v
		}
	}
	return ""
}

package model

// Product is the normalized snapshot of a single food product. It is built once
// by the loader and never mutated during an analysis.
type Product struct {
	Barcode     string             `json:"barcode,omitempty"`
	Name        string             `json:"name"`
	Brand       string             `json:"brand,omitempty"`
	Nutrients   map[string]float64 `json:"nutrients"`
	Ingredients []string           `json:"ingredients"`
	Additives   []string           `json:"additives"`
	// ExternalScore is a score supplied by the product source, if any.
	ExternalScore *Score `json:"external_score,omitempty"`
}

// Nutrient keys recognized in Product.Nutrients. Any subset may be absent.
const (
	NutrientProtein      = "protein_g"
	NutrientSaturatedFat = "saturated_fat_g"
	NutrientSugars       = "sugars_g"
	NutrientFiber        = "fiber_g"
	NutrientSalt         = "salt_g"
	NutrientEnergy       = "energy_kcal"
)

// Nutrient returns the named nutrient value and whether it was present.
func (p *Product) Nutrient(name string) (float64, bool) {
	if p.Nutrients == nil {
		return 0, false
	}
	v, ok := p.Nutrients[name]
	return v, ok
}

// Score is a 0-100 quality score broken down into its two weighted components.
type Score struct {
	Total          int    `json:"total"`
	Category       string `json:"category"`
	NutritionScore int    `json:"nutrition_score"`
	AdditivesScore int    `json:"additives_score"`
}

// AllergenAnalysis lists allergens found in the product and the subset the user
// declared as their own.
type AllergenAnalysis struct {
	DetectedAllergens    []string `json:"detected_allergens"`
	UserAllergensPresent []string `json:"user_allergens_present"`
}

// DietCompatibility is the verdict for one requested diet.
type DietCompatibility struct {
	Diet       string `json:"diet"`
	Compatible bool   `json:"compatible"`
	Reason     string `json:"reason"`
}

// Analysis is the full result returned for one product.
type Analysis struct {
	Product           string              `json:"product"`
	Brand             string              `json:"brand,omitempty"`
	AllergensAnalysis AllergenAnalysis    `json:"allergens_analysis"`
	DietCompatibility []DietCompatibility `json:"diet_compatibility"`
	Score             *Score              `json:"score,omitempty"`
	// ScoreSource records which tier actually produced the score
	// (external, ai, local). Provenance only, not part of the score itself.
	ScoreSource string `json:"score_source,omitempty"`
	// Degraded is set when a requested tier failed and the result came
	// from a fallback.
	Degraded bool `json:"degraded,omitempty"`
}

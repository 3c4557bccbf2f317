package scoring

import "github.com/wecare/foodcheck/pkg/model"

// Tier is a coarse bucket for a nutrient value per 100g.
type Tier string

const (
	TierHigh   Tier = "high"
	TierMedium Tier = "medium"
	TierLow    Tier = "low"
)

// Per-nutrient thresholds, grams (or kcal) per 100g. A value at or above High
// classifies High; at or above Medium classifies Medium; below is Low.
type thresholds struct {
	High   float64
	Medium float64
}

var nutrientThresholds = map[string]thresholds{
	model.NutrientProtein:      {High: 5.0, Medium: 2.5},
	model.NutrientSaturatedFat: {High: 5.0, Medium: 1.5},
	model.NutrientSugars:       {High: 22.5, Medium: 5.0},
	model.NutrientFiber:        {High: 6.0, Medium: 3.0},
	model.NutrientSalt:         {High: 1.5, Medium: 0.3},
	model.NutrientEnergy:       {High: 400, Medium: 200},
}

// ClassifyNutrient buckets a nutrient value into a tier. A missing value
// classifies Medium so incomplete records degrade gracefully instead of
// scoring an undeserved extreme.
//
// Boundary inclusivity follows the nutrient's direction: for protein and
// fiber a value at the High threshold is already High (5.0g protein counts as
// high-protein), while for the capped nutrients a value at the High threshold
// is still Medium (exactly 5.0g saturated fat is not yet penalized as high).
func ClassifyNutrient(name string, value float64, present bool) Tier {
	if !present {
		return TierMedium
	}
	t, ok := nutrientThresholds[name]
	if !ok {
		return TierMedium
	}
	if higherIsBetter[name] {
		switch {
		case value >= t.High:
			return TierHigh
		case value >= t.Medium:
			return TierMedium
		default:
			return TierLow
		}
	}
	switch {
	case value <= t.Medium:
		return TierLow
	case value <= t.High:
		return TierMedium
	default:
		return TierHigh
	}
}

// Weights per nutrient; they sum to 1.0 so the weighted tier points land on a
// 0-10 scale before the final x10.
var nutritionWeights = map[string]float64{
	model.NutrientProtein:      0.2,
	model.NutrientSaturatedFat: 0.2,
	model.NutrientSugars:       0.2,
	model.NutrientFiber:        0.1,
	model.NutrientSalt:         0.1,
	model.NutrientEnergy:       0.2,
}

// Nutrients where more is better. For the rest the Low tier is the best one.
var higherIsBetter = map[string]bool{
	model.NutrientProtein: true,
	model.NutrientFiber:   true,
}

// tierPoints converts a tier into 0-10 points, accounting for direction:
// high protein scores 10, high salt scores 0.
func tierPoints(nutrient string, tier Tier) float64 {
	if tier == TierMedium {
		return 5
	}
	best := TierLow
	if higherIsBetter[nutrient] {
		best = TierHigh
	}
	if tier == best {
		return 10
	}
	return 0
}

// NutritionScore aggregates the six nutrient tiers into a 0-100 score.
// Total over any product: with every nutrient absent all tiers are Medium and
// the score is exactly 50.
func NutritionScore(p *model.Product) float64 {
	var sum float64
	for name, weight := range nutritionWeights {
		value, present := p.Nutrient(name)
		tier := ClassifyNutrient(name, value, present)
		sum += tierPoints(name, tier) * weight
	}
	return clamp(sum * 10)
}

func clamp(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/wecare/foodcheck/pkg/model"
)

func TestClassifyNutrientBoundaries(t *testing.T) {
	tests := []struct {
		nutrient string
		value    float64
		want     Tier
	}{
		// protein: >=5 High, >=2.5 Medium, else Low
		{model.NutrientProtein, 5.0, TierHigh},
		{model.NutrientProtein, 4.999, TierMedium},
		{model.NutrientProtein, 2.5, TierMedium},
		{model.NutrientProtein, 2.4999, TierLow},
		{model.NutrientProtein, 0, TierLow},
		// saturated fat: <=1.5 Low, <=5 Medium, else High
		{model.NutrientSaturatedFat, 1.5, TierLow},
		{model.NutrientSaturatedFat, 1.51, TierMedium},
		{model.NutrientSaturatedFat, 5.0, TierMedium},
		{model.NutrientSaturatedFat, 5.01, TierHigh},
		// sugars: <=5 Low, <=22.5 Medium, else High
		{model.NutrientSugars, 5.0, TierLow},
		{model.NutrientSugars, 22.5, TierMedium},
		{model.NutrientSugars, 22.51, TierHigh},
		// fiber: >=6 High, >=3 Medium, else Low
		{model.NutrientFiber, 6.0, TierHigh},
		{model.NutrientFiber, 3.0, TierMedium},
		{model.NutrientFiber, 2.999, TierLow},
		// salt: <=0.3 Low, <=1.5 Medium, else High
		{model.NutrientSalt, 0.3, TierLow},
		{model.NutrientSalt, 1.5, TierMedium},
		{model.NutrientSalt, 1.51, TierHigh},
		// energy: <=200 Low, <=400 Medium, else High
		{model.NutrientEnergy, 200, TierLow},
		{model.NutrientEnergy, 400, TierMedium},
		{model.NutrientEnergy, 401, TierHigh},
	}

	for _, tt := range tests {
		got := ClassifyNutrient(tt.nutrient, tt.value, true)
		assert.Equal(t, tt.want, got, "%s=%v", tt.nutrient, tt.value)
	}
}

func TestClassifyNutrientMissingIsMedium(t *testing.T) {
	for nutrient := range nutrientThresholds {
		assert.Equal(t, TierMedium, ClassifyNutrient(nutrient, 0, false), nutrient)
	}
}

func TestTierPointsDirection(t *testing.T) {
	// High protein is the best tier, high salt the worst.
	assert.Equal(t, 10.0, tierPoints(model.NutrientProtein, TierHigh))
	assert.Equal(t, 0.0, tierPoints(model.NutrientProtein, TierLow))
	assert.Equal(t, 0.0, tierPoints(model.NutrientSalt, TierHigh))
	assert.Equal(t, 10.0, tierPoints(model.NutrientSalt, TierLow))
	assert.Equal(t, 5.0, tierPoints(model.NutrientSalt, TierMedium))
	assert.Equal(t, 10.0, tierPoints(model.NutrientFiber, TierHigh))
	assert.Equal(t, 0.0, tierPoints(model.NutrientEnergy, TierHigh))
}

func TestNutritionScoreAllMissingIsBaseline(t *testing.T) {
	p := &model.Product{Name: "empty"}
	assert.Equal(t, 50.0, NutritionScore(p))
}

func TestNutritionScoreBestCase(t *testing.T) {
	p := &model.Product{
		Nutrients: map[string]float64{
			model.NutrientProtein:      10,
			model.NutrientSaturatedFat: 1.0,
			model.NutrientSugars:       3,
			model.NutrientFiber:        7,
			model.NutrientSalt:         0.2,
			model.NutrientEnergy:       150,
		},
	}
	assert.Equal(t, 100.0, NutritionScore(p))
}

func TestNutritionScoreWorstCase(t *testing.T) {
	p := &model.Product{
		Nutrients: map[string]float64{
			model.NutrientProtein:      0,
			model.NutrientSaturatedFat: 20,
			model.NutrientSugars:       50,
			model.NutrientFiber:        0,
			model.NutrientSalt:         3,
			model.NutrientEnergy:       600,
		},
	}
	assert.Equal(t, 0.0, NutritionScore(p))
}

func TestNutritionScorePartialData(t *testing.T) {
	// High protein (10 pts x 0.2 weight), everything else missing
	// (5 pts each): 2 + 5*0.8 = 6 -> 60.
	p := &model.Product{
		Nutrients: map[string]float64{model.NutrientProtein: 12},
	}
	assert.Equal(t, 60.0, NutritionScore(p))
}

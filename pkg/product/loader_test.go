package product

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wecare/foodcheck/pkg/model"
)

func TestParseFlatShape(t *testing.T) {
	raw := `{
	  "name": "Protein Bar",
	  "brand": "Acme",
	  "nutrients": {
	    "protein_g": 20,
	    "sugars_g": 4.5,
	    "salt_g": 0.2
	  },
	  "ingredients": ["oats", "peanut", "honey"],
	  "additives": ["E300", "e330"]
	}`
	p, err := Parse([]byte(raw))
	require.NoError(t, err)

	assert.Equal(t, "Protein Bar", p.Name)
	assert.Equal(t, "Acme", p.Brand)
	assert.Equal(t, []string{"oats", "peanut", "honey"}, p.Ingredients)
	assert.Equal(t, []string{"E300", "E330"}, p.Additives)

	protein, ok := p.Nutrient(model.NutrientProtein)
	require.True(t, ok)
	assert.Equal(t, 20.0, protein)

	// Absent nutrients stay absent, they are not defaulted to zero.
	_, ok = p.Nutrient(model.NutrientFiber)
	assert.False(t, ok)
	assert.Nil(t, p.ExternalScore)
}

func TestParseOpenFoodFactsShape(t *testing.T) {
	raw := `{
	  "code": "3017620422003",
	  "product": {
	    "product_name": "Hazelnut Spread",
	    "brands": "Choconut",
	    "nutriments": {
	      "energy-kcal_100g": 539,
	      "proteins_100g": 6.3,
	      "saturated-fat_100g": 10.6,
	      "sugars_100g": 56.3,
	      "fiber_100g": 0,
	      "salt_100g": 0.107
	    },
	    "ingredients": [
	      {"id": "en:sugar", "text": "sugar"},
	      {"id": "en:hazelnut", "text": "hazelnuts"},
	      {"id": "en:skimmed-milk-powder", "text": "skimmed milk powder"}
	    ],
	    "additives_tags": ["en:e322", "en:e476"]
	  }
	}`
	p, err := Parse([]byte(raw))
	require.NoError(t, err)

	assert.Equal(t, "3017620422003", p.Barcode)
	assert.Equal(t, "Hazelnut Spread", p.Name)
	assert.Equal(t, "Choconut", p.Brand)
	assert.Equal(t, []string{"sugar", "hazelnuts", "skimmed milk powder"}, p.Ingredients)
	assert.Equal(t, []string{"E322", "E476"}, p.Additives)

	energy, ok := p.Nutrient(model.NutrientEnergy)
	require.True(t, ok)
	assert.Equal(t, 539.0, energy)

	fiber, ok := p.Nutrient(model.NutrientFiber)
	require.True(t, ok)
	assert.Equal(t, 0.0, fiber, "explicit zero is present, not missing")

	sat, ok := p.Nutrient(model.NutrientSaturatedFat)
	require.True(t, ok)
	assert.Equal(t, 10.6, sat)
}

func TestParseLegacyNestedNutrition(t *testing.T) {
	raw := `{
	  "name": "Yogurt",
	  "nutrition": {
	    "calories": 95,
	    "protein": 4.2,
	    "fat": {"total": 3.5, "saturated": 2.1},
	    "carbohydrates": {"total": 12, "sugar": 11.5},
	    "fiber": 0.4,
	    "salt": 0.13
	  }
	}`
	p, err := Parse([]byte(raw))
	require.NoError(t, err)

	sat, ok := p.Nutrient(model.NutrientSaturatedFat)
	require.True(t, ok)
	assert.Equal(t, 2.1, sat)

	sugar, ok := p.Nutrient(model.NutrientSugars)
	require.True(t, ok)
	assert.Equal(t, 11.5, sugar)

	energy, ok := p.Nutrient(model.NutrientEnergy)
	require.True(t, ok)
	assert.Equal(t, 95.0, energy)
}

func TestParseExternalScoreObject(t *testing.T) {
	raw := `{
	  "name": "Scored",
	  "score": {"total": 72, "category": "Good", "nutrition_score": 70, "additives_score": 75}
	}`
	p, err := Parse([]byte(raw))
	require.NoError(t, err)
	require.NotNil(t, p.ExternalScore)
	assert.Equal(t, 72, p.ExternalScore.Total)
	assert.Equal(t, "Good", p.ExternalScore.Category)
	assert.Equal(t, 70, p.ExternalScore.NutritionScore)
	assert.Equal(t, 75, p.ExternalScore.AdditivesScore)
}

func TestParseExternalScoreBareNumber(t *testing.T) {
	p, err := Parse([]byte(`{"name": "Scored", "score": 85}`))
	require.NoError(t, err)
	require.NotNil(t, p.ExternalScore)
	assert.Equal(t, 85, p.ExternalScore.Total)
	assert.Equal(t, "Excellent", p.ExternalScore.Category)
}

func TestParseInvalidJSON(t *testing.T) {
	_, err := Parse([]byte("not json"))
	assert.Error(t, err)
}

func TestParseMissingNameDefaults(t *testing.T) {
	p, err := Parse([]byte(`{}`))
	require.NoError(t, err)
	assert.Equal(t, "Unknown Product", p.Name)
	assert.Empty(t, p.Nutrients)
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "product.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"name": "Crackers"}`), 0o644))

	p, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "Crackers", p.Name)

	_, err = Load(filepath.Join(dir, "missing.json"))
	assert.Error(t, err)
}

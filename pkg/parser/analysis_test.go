package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validWithScore = `{
  "allergens_analysis": {
    "detected_allergens": ["Peanuts"],
    "user_allergens_present": []
  },
  "diet_compatibility": [
    {"diet": "Vegan", "compatible": false, "reason": "contains milk"}
  ],
  "score": {
    "total": 62,
    "category": "Good",
    "nutrition_score": 55,
    "additives_score": 70
  }
}`

func TestParseAnalysisResponseValid(t *testing.T) {
	resp, err := ParseAnalysisResponse(validWithScore, true)
	require.NoError(t, err)

	allergens := resp.Allergens()
	assert.Equal(t, []string{"Peanuts"}, allergens.DetectedAllergens)
	assert.Empty(t, allergens.UserAllergensPresent)

	diets := resp.Diets()
	require.Len(t, diets, 1)
	assert.Equal(t, "Vegan", diets[0].Diet)
	assert.False(t, diets[0].Compatible)

	score := resp.ScoreBreakdown()
	require.NotNil(t, score)
	assert.Equal(t, 62, score.Total)
	assert.Equal(t, "Good", score.Category)
	assert.Equal(t, 55, score.NutritionScore)
	assert.Equal(t, 70, score.AdditivesScore)
}

func TestParseAnalysisResponseStripsFences(t *testing.T) {
	fenced := "```json\n" + validWithScore + "\n```"
	resp, err := ParseAnalysisResponse(fenced, true)
	require.NoError(t, err)
	assert.NotNil(t, resp.ScoreBreakdown())
}

func TestParseAnalysisResponseInvalidJSON(t *testing.T) {
	_, err := ParseAnalysisResponse("the product looks fine to me", false)
	assert.Error(t, err)
}

func TestParseAnalysisResponseMissingAllergenBlock(t *testing.T) {
	raw := `{"diet_compatibility": []}`
	_, err := ParseAnalysisResponse(raw, false)
	assert.Error(t, err)
}

func TestParseAnalysisResponseMissingScoreWhenRequested(t *testing.T) {
	raw := `{
	  "allergens_analysis": {"detected_allergens": [], "user_allergens_present": []},
	  "diet_compatibility": []
	}`

	// Without scoring the response is complete.
	resp, err := ParseAnalysisResponse(raw, false)
	require.NoError(t, err)
	assert.Nil(t, resp.ScoreBreakdown())

	// With scoring requested the missing block is a collaborator failure.
	_, err = ParseAnalysisResponse(raw, true)
	assert.Error(t, err)
}

func TestParseAnalysisResponseIncompleteScore(t *testing.T) {
	raw := `{
	  "allergens_analysis": {"detected_allergens": [], "user_allergens_present": []},
	  "diet_compatibility": [],
	  "score": {"category": "Good", "nutrition_score": 55, "additives_score": 70}
	}`
	_, err := ParseAnalysisResponse(raw, true)
	assert.Error(t, err, "score.total missing must fail validation")
}

func TestParseAnalysisResponseScoreOutOfRange(t *testing.T) {
	raw := `{
	  "allergens_analysis": {"detected_allergens": [], "user_allergens_present": []},
	  "diet_compatibility": [],
	  "score": {"total": 140, "category": "Excellent", "nutrition_score": 50, "additives_score": 50}
	}`
	_, err := ParseAnalysisResponse(raw, true)
	assert.Error(t, err)
}

func TestParseAnalysisResponseDietEntryMissingReason(t *testing.T) {
	raw := `{
	  "allergens_analysis": {"detected_allergens": [], "user_allergens_present": []},
	  "diet_compatibility": [{"diet": "Vegan", "compatible": true}]
	}`
	_, err := ParseAnalysisResponse(raw, false)
	assert.Error(t, err)
}

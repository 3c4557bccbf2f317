package prompts

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/wecare/foodcheck/pkg/model"
)

// Response schema embedded in the prompt. The score block is included only
// when local/external scoring is unavailable and the backend is asked to
// produce one.
const analysisSchema = `{
  "allergens_analysis": {
    "detected_allergens": ["list of allergens in product"],
    "user_allergens_present": ["list of user allergens found in product"]
  },
  "diet_compatibility": [
    {
      "diet": "name of diet",
      "compatible": true,
      "reason": "explanation"
    }
  ]`

const scoreSchema = `,
  "score": {
    "total": 0,
    "category": "category name",
    "nutrition_score": 0,
    "additives_score": 0
  }`

// BuildAnalysisPrompt creates the product-analysis prompt: normalized product
// data, the user's allergens and diets, and the response schema the backend
// must follow.
func BuildAnalysisPrompt(p *model.Product, userAllergens, userDiets []string, calculateScore bool) (string, error) {
	productJSON, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal product: %w", err)
	}

	allergens := "None"
	if len(userAllergens) > 0 {
		allergens = strings.Join(userAllergens, ", ")
	}
	diets := "None"
	if len(userDiets) > 0 {
		diets = strings.Join(userDiets, ", ")
	}

	schema := analysisSchema
	scoringTask := ""
	scoringGuidelines := ""
	if calculateScore {
		schema += scoreSchema
		scoringTask = "\n3. A product quality score (0-100)"
		scoringGuidelines = `
SCORING GUIDELINES:
- Nutritional value (60% of total): evaluate protein, saturated fat, sugars, fiber, salt, calories per 100g
- Additives (40% of total): evaluate E-codes and other additives
- Final score is 0-100 with categories: Excellent (81-100), Good (61-80), Average (41-60), Low Quality (21-40), Very Low Quality (0-20)
`
	}
	schema += "\n}"

	return fmt.Sprintf(`You are a precise nutrition analysis assistant.

Analyze the following food product and provide:
1. Allergen analysis
2. Diet compatibility assessment%s

PRODUCT INFORMATION:
%s

USER ALLERGENS: %s

USER DIETARY PREFERENCES: %s
%s
Be comprehensive in allergen detection. Only include user allergens that are actually present in the product.

Respond with a JSON object matching this exact schema:
%s

Strictly adhere to this schema. Reply with JSON only, no prose.`,
		scoringTask, string(productJSON), allergens, diets, scoringGuidelines, schema), nil
}

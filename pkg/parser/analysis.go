package parser

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/wecare/foodcheck/pkg/model"
)

// AIResponse mirrors the JSON schema the backend is asked to follow. The
// response is untrusted external input: every required key is checked before
// the result counts as a successful analysis.
type AIResponse struct {
	AllergensAnalysis struct {
		DetectedAllergens    []string `json:"detected_allergens" validate:"required"`
		UserAllergensPresent []string `json:"user_allergens_present" validate:"required"`
	} `json:"allergens_analysis"`
	DietCompatibility []dietEntry `json:"diet_compatibility" validate:"dive"`
	Score             *scoreEntry `json:"score,omitempty"`
}

type dietEntry struct {
	Diet       string `json:"diet" validate:"required"`
	Compatible bool   `json:"compatible"`
	Reason     string `json:"reason" validate:"required"`
}

// Pointer fields distinguish a missing key from a literal zero.
type scoreEntry struct {
	Total          *int   `json:"total" validate:"required,min=0,max=100"`
	Category       string `json:"category" validate:"required"`
	NutritionScore *int   `json:"nutrition_score" validate:"required,min=0,max=100"`
	AdditivesScore *int   `json:"additives_score" validate:"required,min=0,max=100"`
}

var validate = validator.New()

// ParseAnalysisResponse decodes and validates a raw backend reply. Any
// decode or schema failure is an error; when scoring was requested a missing
// or incomplete score block is an error too, never a partial success.
func ParseAnalysisResponse(raw string, scoringRequested bool) (*AIResponse, error) {
	cleaned := stripFences(raw)

	var resp AIResponse
	if err := json.Unmarshal([]byte(cleaned), &resp); err != nil {
		return nil, fmt.Errorf("AI response is not valid JSON: %w", err)
	}
	if err := validate.Struct(&resp); err != nil {
		return nil, fmt.Errorf("AI response failed schema validation: %w", err)
	}
	if scoringRequested {
		if resp.Score == nil {
			return nil, fmt.Errorf("AI response is missing the requested score")
		}
	}
	return &resp, nil
}

// Allergens converts the validated allergen block to the model type.
func (r *AIResponse) Allergens() model.AllergenAnalysis {
	return model.AllergenAnalysis{
		DetectedAllergens:    r.AllergensAnalysis.DetectedAllergens,
		UserAllergensPresent: r.AllergensAnalysis.UserAllergensPresent,
	}
}

// Diets converts the validated diet entries to the model type.
func (r *AIResponse) Diets() []model.DietCompatibility {
	out := make([]model.DietCompatibility, 0, len(r.DietCompatibility))
	for _, d := range r.DietCompatibility {
		out = append(out, model.DietCompatibility{
			Diet:       d.Diet,
			Compatible: d.Compatible,
			Reason:     d.Reason,
		})
	}
	return out
}

// ScoreBreakdown converts the validated score block, or nil when absent.
func (r *AIResponse) ScoreBreakdown() *model.Score {
	if r.Score == nil {
		return nil
	}
	return &model.Score{
		Total:          *r.Score.Total,
		Category:       r.Score.Category,
		NutritionScore: *r.Score.NutritionScore,
		AdditivesScore: *r.Score.AdditivesScore,
	}
}

// stripFences removes markdown code fences such as ```json ... ``` so JSON can be parsed
func stripFences(text string) string {
	re := regexp.MustCompile("```[a-zA-Z]*\n|```")
	return strings.TrimSpace(re.ReplaceAllString(text, ""))
}

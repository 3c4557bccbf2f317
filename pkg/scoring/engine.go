package scoring

import (
	"math"

	"github.com/wecare/foodcheck/pkg/model"
)

// Overall composition weights.
const (
	nutritionWeight = 0.6
	additivesWeight = 0.4
)

// Score category bands. Non-overlapping and covering 0-100.
type band struct {
	Min, Max int
	Label    string
}

var categoryBands = []band{
	{81, 100, "Excellent"},
	{61, 80, "Good"},
	{41, 60, "Average"},
	{21, 40, "Low Quality"},
	{0, 20, "Very Low Quality"},
}

// Categorize maps a 0-100 total to its category label. Out-of-range input is
// clamped first, so the lookup is total.
func Categorize(total int) string {
	if total < 0 {
		total = 0
	}
	if total > 100 {
		total = 100
	}
	for _, b := range categoryBands {
		if total >= b.Min && total <= b.Max {
			return b.Label
		}
	}
	// Unreachable: the bands cover 0-100 with no gaps.
	return categoryBands[len(categoryBands)-1].Label
}

// Engine is the local scoring engine. It is a pure function of the product
// and the additive table and cannot fail: missing nutrients classify Medium
// and unknown additives classify Unknown.
type Engine struct {
	additives AdditiveTable
}

// NewEngine creates an engine using the given additive table, or the built-in
// table when nil.
func NewEngine(table AdditiveTable) *Engine {
	if table == nil {
		table = defaultAdditiveTable
	}
	return &Engine{additives: table}
}

// Score computes the full breakdown: nutrition and additives sub-scores, the
// 60/40 weighted total, and the category band.
func (e *Engine) Score(p *model.Product) *model.Score {
	nutrition := NutritionScore(p)
	additives := AdditivesScore(p, e.additives)
	total := int(math.Round(nutrition*nutritionWeight + additives*additivesWeight))
	return &model.Score{
		Total:          total,
		Category:       Categorize(total),
		NutritionScore: int(math.Round(nutrition)),
		AdditivesScore: int(math.Round(additives)),
	}
}

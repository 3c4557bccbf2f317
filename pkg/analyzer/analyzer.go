package analyzer

import (
	"github.com/wecare/foodcheck/pkg/dietary"
	"github.com/wecare/foodcheck/pkg/llm"
	"github.com/wecare/foodcheck/pkg/model"
	"github.com/wecare/foodcheck/pkg/parser"
	"github.com/wecare/foodcheck/pkg/prompts"
	"github.com/wecare/foodcheck/pkg/scoring"
)

// Analyzer runs the full product analysis: local allergen and diet
// evaluation plus score resolution through the configured strategy chain.
type Analyzer struct {
	resolver  *scoring.Resolver
	allergens []string
	diets     []string
}

// New builds an analyzer. backend may be nil, in which case the ai scoring
// tier is skipped and auto mode resolves external then local.
func New(backend llm.LLM, table scoring.AdditiveTable, userAllergens, userDiets []string) *Analyzer {
	engine := scoring.NewEngine(table)
	var ai scoring.AIScorer
	if backend != nil {
		ai = &aiScorer{backend: backend, allergens: userAllergens, diets: userDiets}
	}
	return &Analyzer{
		resolver:  scoring.NewResolver(engine, ai),
		allergens: userAllergens,
		diets:     userDiets,
	}
}

// Analyze evaluates one product. Allergen and diet results are always
// computed locally; only the score goes through the resolver. The call
// cannot fail for modes auto, ai and local; pinned external mode fails with
// ErrDataUnavailable when the product carries no usable external score.
func (a *Analyzer) Analyze(p *model.Product, mode scoring.Mode) (*model.Analysis, error) {
	detected := dietary.DetectAllergens(p)
	analysis := &model.Analysis{
		Product: p.Name,
		Brand:   p.Brand,
		AllergensAnalysis: model.AllergenAnalysis{
			DetectedAllergens:    detected,
			UserAllergensPresent: dietary.IntersectUserAllergens(detected, a.allergens),
		},
		DietCompatibility: dietary.EvaluateDiets(p, a.diets),
	}

	res, err := a.resolver.Resolve(p, mode)
	if err != nil {
		return nil, err
	}
	analysis.Score = res.Score
	analysis.ScoreSource = res.Source
	analysis.Degraded = res.Degraded
	return analysis, nil
}

// aiScorer adapts the LLM backend to the resolver's AIScorer contract:
// build the schema-guided prompt, ask for a score, validate the reply.
type aiScorer struct {
	backend   llm.LLM
	allergens []string
	diets     []string
}

func (s *aiScorer) ScoreProduct(p *model.Product) (*model.Score, error) {
	prompt, err := prompts.BuildAnalysisPrompt(p, s.allergens, s.diets, true)
	if err != nil {
		return nil, err
	}
	raw, err := s.backend.Chat(prompt)
	if err != nil {
		return nil, err
	}
	resp, err := parser.ParseAnalysisResponse(raw, true)
	if err != nil {
		return nil, err
	}
	return resp.ScoreBreakdown(), nil
}

package scoring

import (
	"errors"
	"fmt"

	"github.com/wecare/foodcheck/pkg/model"
)

// Mode selects which scoring source the resolver uses.
type Mode string

const (
	ModeAuto     Mode = "auto"
	ModeExternal Mode = "external"
	ModeAI       Mode = "ai"
	ModeLocal    Mode = "local"
)

// ParseMode validates a --scoring flag value.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeAuto, ModeExternal, ModeAI, ModeLocal:
		return Mode(s), nil
	}
	return "", fmt.Errorf("invalid scoring mode %q (valid: auto, external, ai, local)", s)
}

// ErrDataUnavailable is returned when a pinned source has no usable data,
// e.g. external mode on a product without an external score.
var ErrDataUnavailable = errors.New("no usable data for requested score source")

// CollaboratorError wraps a failure of the AI collaborator: unreachable,
// timed out, or a response failing schema validation.
type CollaboratorError struct {
	Err error
}

func (e *CollaboratorError) Error() string {
	return fmt.Sprintf("AI collaborator failed: %v", e.Err)
}

func (e *CollaboratorError) Unwrap() error { return e.Err }

// AIScorer is the AI collaborator as the resolver sees it: hand over a
// product, get back a validated score or an error.
type AIScorer interface {
	ScoreProduct(p *model.Product) (*model.Score, error)
}

// Strategy is one scoring source. Attempt either produces a full breakdown or
// an error that moves the resolver to the next tier.
type Strategy interface {
	Name() string
	Attempt(p *model.Product) (*model.Score, error)
}

// Resolution is a resolved score plus provenance.
type Resolution struct {
	Score *model.Score
	// Source names the strategy that produced the score.
	Source string
	// Degraded is set when an earlier tier was attempted and failed.
	Degraded bool
}

type externalStrategy struct{}

func (externalStrategy) Name() string { return "external" }

func (externalStrategy) Attempt(p *model.Product) (*model.Score, error) {
	s := p.ExternalScore
	if s == nil {
		return nil, ErrDataUnavailable
	}
	if s.Total < 0 || s.Total > 100 {
		return nil, fmt.Errorf("external score %d out of range: %w", s.Total, ErrDataUnavailable)
	}
	out := *s
	if out.Category == "" {
		out.Category = Categorize(out.Total)
	}
	return &out, nil
}

type aiStrategy struct {
	scorer AIScorer
}

func (aiStrategy) Name() string { return "ai" }

func (s aiStrategy) Attempt(p *model.Product) (*model.Score, error) {
	if s.scorer == nil {
		return nil, fmt.Errorf("no AI backend configured: %w", ErrDataUnavailable)
	}
	score, err := s.scorer.ScoreProduct(p)
	if err != nil {
		var ce *CollaboratorError
		if errors.As(err, &ce) {
			return nil, err
		}
		return nil, &CollaboratorError{Err: err}
	}
	return score, nil
}

type localStrategy struct {
	engine *Engine
}

func (localStrategy) Name() string { return "local" }

func (s localStrategy) Attempt(p *model.Product) (*model.Score, error) {
	return s.engine.Score(p), nil
}

// Resolver picks a score from an ordered list of strategies.
type Resolver struct {
	engine *Engine
	ai     AIScorer
}

// NewResolver builds a resolver over the local engine and an optional AI
// collaborator (nil means the ai tier always fails over).
func NewResolver(engine *Engine, ai AIScorer) *Resolver {
	if engine == nil {
		engine = NewEngine(nil)
	}
	return &Resolver{engine: engine, ai: ai}
}

// chain returns the strategies the mode allows, in fallback order.
func (r *Resolver) chain(mode Mode) []Strategy {
	switch mode {
	case ModeExternal:
		return []Strategy{externalStrategy{}}
	case ModeAI:
		// Pinned AI still falls back to local on collaborator failure;
		// the result is marked degraded rather than failing the run.
		return []Strategy{aiStrategy{scorer: r.ai}, localStrategy{engine: r.engine}}
	case ModeLocal:
		return []Strategy{localStrategy{engine: r.engine}}
	default:
		return []Strategy{
			externalStrategy{},
			aiStrategy{scorer: r.ai},
			localStrategy{engine: r.engine},
		}
	}
}

// Resolve walks the mode's strategy chain and returns the first success.
// Modes auto, ai and local cannot fail because the local engine is total;
// external can fail with ErrDataUnavailable.
//
// Degraded marks results produced after a genuine tier failure (malformed
// external score, collaborator error). A tier skipped because it simply has
// no data, such as auto on a product without an external score, is the
// normal path and is not flagged.
func (r *Resolver) Resolve(p *model.Product, mode Mode) (*Resolution, error) {
	var firstErr error
	degraded := false
	for _, strat := range r.chain(mode) {
		score, err := strat.Attempt(p)
		if err != nil {
			if firstErr == nil {
				firstErr = err
			}
			hadData := strat.Name() == "external" && p.ExternalScore != nil
			if !errors.Is(err, ErrDataUnavailable) || hadData {
				degraded = true
			}
			continue
		}
		return &Resolution{Score: score, Source: strat.Name(), Degraded: degraded}, nil
	}
	return nil, firstErr
}

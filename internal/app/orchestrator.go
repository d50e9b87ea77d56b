package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/sahanarao-sps/sps-team30-project/internal/domain"
)

// Orchestrator runs one analysis: translate, then score the translation.
// The two calls are sequential; scoring never starts before translation has
// succeeded.
type Orchestrator struct {
	translator domain.Translator
	scorer     domain.Scorer
}

func NewOrchestrator(translator domain.Translator, scorer domain.Scorer) *Orchestrator {
	return &Orchestrator{translator: translator, scorer: scorer}
}

// Run returns the completed analysis. Transport failures surface as
// *domain.TransportError and an unusable score as domain.ErrMalformedScore,
// both wrapped.
func (o *Orchestrator) Run(ctx context.Context, input domain.UserInput) (domain.Analysis, error) {
	translation, err := o.translator.Translate(ctx, input)
	if err != nil {
		return domain.Analysis{}, fmt.Errorf("translate: %w", err)
	}

	raw, err := o.scorer.Score(ctx, translation)
	if err != nil {
		return domain.Analysis{}, fmt.Errorf("score: %w", err)
	}

	score, err := domain.ParseScore(raw)
	if err != nil {
		slog.WarnContext(ctx, "Sentiment collaborator returned an unusable score", "raw", raw)
		return domain.Analysis{}, fmt.Errorf("score: %w", err)
	}

	return domain.Analysis{
		Input:       input,
		Translation: translation,
		Score:       score,
		RawScore:    raw,
	}, nil
}

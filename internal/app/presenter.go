package app

import (
	"context"
	"log/slog"
	"sync"

	"github.com/sahanarao-sps/sps-team30-project/internal/adapter/metrics"
	"github.com/sahanarao-sps/sps-team30-project/internal/animation"
	"github.com/sahanarao-sps/sps-team30-project/internal/domain"
	"github.com/sahanarao-sps/sps-team30-project/internal/sentiment"
)

const (
	scorePrefix       = "Sentiment score: "
	originalPrefix    = "Original Message: "
	translationPrefix = "Translated Message: "
)

// Presentation is what a Present call put on the surface.
type Presentation struct {
	Classification sentiment.Classification
	TargetWidth    int
	// Run is nil when the animation was not started.
	Run *animation.Run
}

// Presenter renders analyses onto one surface. It owns the surface's only
// animator, so at most one bar animation runs per surface.
type Presenter struct {
	surface  domain.Surface
	animator *animation.Animator
	rnd      sentiment.RandomSource
	metrics  *metrics.AnalysisMetrics // nil disables metrics

	mu sync.Mutex // serializes Present

	// lifetime outlives any single request; Close cancels it and with it
	// the running animation.
	lifetime context.Context
	cancel   context.CancelFunc
}

func NewPresenter(surface domain.Surface, animator *animation.Animator, rnd sentiment.RandomSource, m *metrics.AnalysisMetrics) *Presenter {
	if rnd == nil {
		rnd = sentiment.DefaultSource
	}
	lifetime, cancel := context.WithCancel(context.Background())
	return &Presenter{
		surface:  surface,
		animator: animator,
		rnd:      rnd,
		metrics:  m,
		lifetime: lifetime,
		cancel:   cancel,
	}
}

// Present rewrites the text blocks and starts the bar animation without
// waiting for it. While a previous bar is still running the surface is left
// untouched and animation.ErrAnimationInProgress is returned, so the text
// never describes a different score than the bar.
func (p *Presenter) Present(ctx context.Context, analysis domain.Analysis) (Presentation, error) {
	cls := sentiment.Classify(analysis.Score, p.rnd)
	pres := Presentation{
		Classification: cls,
		TargetWidth:    sentiment.TargetWidth(analysis.Score),
	}

	// mu covers the whole render so concurrent callers cannot interleave
	// blocks. Every Start of this animator happens under it, so Active can
	// only turn false behind our back, never true.
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.animator.Active() {
		slog.WarnContext(ctx, "Animation already running, surface left unchanged")
		return pres, animation.ErrAnimationInProgress
	}

	p.surface.Clear()
	p.surface.WriteBlock(scorePrefix + analysis.RawScore)
	p.surface.WriteBlock(cls.Message)
	p.surface.WriteBlock(originalPrefix + analysis.Input.Text)
	p.surface.WriteBlock(translationPrefix + string(analysis.Translation))
	p.surface.ShowBar()

	if p.metrics != nil {
		p.metrics.BucketsTotal.WithLabelValues(cls.Bucket.String()).Inc()
	}

	// The run must survive the request that started it, so it is bound to
	// the presenter's lifetime while keeping the request's values for logging.
	runCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	stop := context.AfterFunc(p.lifetime, cancel)

	run, err := p.animator.Start(runCtx, analysis.Score, p.surface.DrawFrame)
	if err != nil {
		stop()
		cancel()
		return pres, err
	}

	go func() {
		<-run.Done()
		stop()
		cancel()
	}()

	pres.Run = run
	return pres, nil
}

// PresentAndWait presents and blocks until the bar reaches its target.
func (p *Presenter) PresentAndWait(ctx context.Context, analysis domain.Analysis) (Presentation, domain.Frame, error) {
	pres, err := p.Present(ctx, analysis)
	if err != nil {
		return pres, domain.Frame{}, err
	}
	return pres, pres.Run.Wait(), nil
}

// Animating reports whether the bar is still moving.
func (p *Presenter) Animating() bool {
	return p.animator.Active()
}

// Close stops any running animation. The presenter must not be used afterwards.
func (p *Presenter) Close() {
	p.cancel()
}

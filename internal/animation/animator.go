// Package animation drives the sentiment bar from empty to its target width
// one percentage point per tick.
package animation

import (
	"context"
	"errors"
	"log/slog"
	"math"
	"sync/atomic"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/sahanarao-sps/sps-team30-project/internal/adapter/metrics"
	"github.com/sahanarao-sps/sps-team30-project/internal/domain"
	"github.com/sahanarao-sps/sps-team30-project/internal/sentiment"
)

const (
	DefaultTickInterval = 20 * time.Millisecond

	startScore = -1.0
	scoreStep  = 0.02
)

var (
	ErrNonFiniteScore      = errors.New("score is not finite")
	ErrAnimationInProgress = errors.New("animation already in progress")
)

// FrameFunc receives every frame of a run, in order, from the run's goroutine.
type FrameFunc func(frame domain.Frame)

// Animator runs at most one bar animation at a time.
type Animator struct {
	clock    clockwork.Clock
	interval time.Duration
	metrics  *metrics.AnalysisMetrics // nil disables metrics

	active atomic.Bool
}

// NewAnimator creates an animator ticking at interval on clock.
func NewAnimator(clock clockwork.Clock, interval time.Duration, m *metrics.AnalysisMetrics) *Animator {
	if interval <= 0 {
		interval = DefaultTickInterval
	}
	return &Animator{clock: clock, interval: interval, metrics: m}
}

// Active reports whether a run is in progress.
func (a *Animator) Active() bool {
	return a.active.Load()
}

// Run is one animation in progress.
type Run struct {
	target int
	done   chan struct{}
	last   domain.Frame
}

// Target is the width the run stops at.
func (r *Run) Target() int { return r.target }

// Done is closed when the run has stopped.
func (r *Run) Done() <-chan struct{} { return r.done }

// Wait blocks until the run stops and returns the last frame drawn.
func (r *Run) Wait() domain.Frame {
	<-r.done
	return r.last
}

// Start begins animating toward the width of score. It fails fast with
// ErrNonFiniteScore for NaN or infinite scores and with ErrAnimationInProgress
// while another run of this animator is still going.
func (a *Animator) Start(ctx context.Context, score domain.Score, onFrame FrameFunc) (*Run, error) {
	if math.IsNaN(float64(score)) || math.IsInf(float64(score), 0) {
		a.observeRun("rejected_non_finite")
		return nil, ErrNonFiniteScore
	}
	if !a.active.CompareAndSwap(false, true) {
		a.observeRun("rejected_in_progress")
		return nil, ErrAnimationInProgress
	}

	run := &Run{
		target: sentiment.TargetWidth(score),
		done:   make(chan struct{}),
		last:   domain.Frame{Width: 0, Score: startScore, Glyph: sentiment.TierForWidth(0).Glyph()},
	}
	go a.run(ctx, run, onFrame)

	return run, nil
}

// Animate starts a run and waits for it to finish.
func (a *Animator) Animate(ctx context.Context, score domain.Score, onFrame FrameFunc) (domain.Frame, error) {
	run, err := a.Start(ctx, score, onFrame)
	if err != nil {
		return domain.Frame{}, err
	}
	return run.Wait(), nil
}

func (a *Animator) run(ctx context.Context, run *Run, onFrame FrameFunc) {
	defer close(run.done)
	defer a.active.Store(false)

	ticker := a.clock.NewTicker(a.interval)
	defer ticker.Stop()

	width := 0
	for {
		select {
		case <-ctx.Done():
			slog.DebugContext(ctx, "Animation cancelled", "width", width, "target", run.target)
			a.observeRun("cancelled")
			return
		case <-ticker.Chan():
			if width >= run.target {
				a.observeRun("completed")
				return
			}

			width++
			frame := domain.Frame{
				Width: width,
				Score: startScore + scoreStep*float64(width),
				Glyph: sentiment.TierForWidth(width).Glyph(),
			}
			run.last = frame
			if onFrame != nil {
				onFrame(frame)
			}
			if a.metrics != nil {
				a.metrics.AnimationFrames.Inc()
			}
		}
	}
}

func (a *Animator) observeRun(outcome string) {
	if a.metrics != nil {
		a.metrics.AnimationRuns.WithLabelValues(outcome).Inc()
	}
}

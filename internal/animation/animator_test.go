package animation

import (
	"context"
	"math"
	"runtime"
	"sync"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/sahanarao-sps/sps-team30-project/internal/adapter/metrics"
	"github.com/sahanarao-sps/sps-team30-project/internal/domain"
	"github.com/sahanarao-sps/sps-team30-project/internal/sentiment"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testTick = 20 * time.Millisecond

type frameRecorder struct {
	mu     sync.Mutex
	frames []domain.Frame
}

func (r *frameRecorder) record(f domain.Frame) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.frames = append(r.frames, f)
}

func (r *frameRecorder) get() []domain.Frame {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.Frame, len(r.frames))
	copy(out, r.frames)
	return out
}

// drive advances the fake clock until the run stops.
func drive(t *testing.T, clock *clockwork.FakeClock, run *Run) domain.Frame {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	for {
		select {
		case <-run.Done():
			return run.Wait()
		case <-ctx.Done():
			t.Fatal("animation did not stop")
			return domain.Frame{}
		default:
			clock.Advance(testTick)
			runtime.Gosched()
		}
	}
}

func TestAnimator_ConvergesToTarget(t *testing.T) {
	tests := []struct {
		name  string
		score domain.Score
		want  int
	}{
		{"positive", 0.8, 90},
		{"neutral", 0, 50},
		{"negative", -0.9, 5},
		{"minimum", -1, 0},
		{"maximum", 1, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clock := clockwork.NewFakeClock()
			animator := NewAnimator(clock, testTick, nil)
			rec := &frameRecorder{}

			run, err := animator.Start(context.Background(), tt.score, rec.record)
			require.NoError(t, err)
			assert.Equal(t, tt.want, run.Target())

			last := drive(t, clock, run)
			assert.Equal(t, tt.want, last.Width)

			frames := rec.get()
			require.Len(t, frames, tt.want)
			for i, f := range frames {
				assert.Equal(t, i+1, f.Width)
				assert.InDelta(t, -1+0.02*float64(i+1), f.Score, 1e-9)
				assert.Equal(t, sentiment.TierForWidth(f.Width).Glyph(), f.Glyph)
			}
			assert.False(t, animator.Active())
		})
	}
}

func TestAnimator_TerminatesForEveryScoreInRange(t *testing.T) {
	clock := clockwork.NewFakeClock()
	animator := NewAnimator(clock, testTick, nil)

	for i := -100; i <= 100; i++ {
		score := domain.Score(float64(i) / 100)
		want := int(math.Round(((float64(score) + 1) / 2) * 100))

		run, err := animator.Start(context.Background(), score, nil)
		require.NoError(t, err, "score %v", score)

		last := drive(t, clock, run)
		assert.Equal(t, want, last.Width, "score %v", score)
	}
}

func TestAnimator_FinalLabel(t *testing.T) {
	clock := clockwork.NewFakeClock()
	animator := NewAnimator(clock, testTick, nil)

	run, err := animator.Start(context.Background(), 0.8, nil)
	require.NoError(t, err)

	assert.Equal(t, "0.80", drive(t, clock, run).Label())
}

func TestAnimator_RejectsNonFiniteScore(t *testing.T) {
	animator := NewAnimator(clockwork.NewFakeClock(), testTick, nil)

	for _, score := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		called := false
		run, err := animator.Start(context.Background(), domain.Score(score), func(domain.Frame) { called = true })
		assert.ErrorIs(t, err, ErrNonFiniteScore)
		assert.Nil(t, run)
		assert.False(t, called)
		assert.False(t, animator.Active())
	}
}

func TestAnimator_AnimateNaNFailsFast(t *testing.T) {
	animator := NewAnimator(clockwork.NewRealClock(), time.Millisecond, nil)

	done := make(chan error, 1)
	go func() {
		_, err := animator.Animate(context.Background(), domain.Score(math.NaN()), nil)
		done <- err
	}()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, ErrNonFiniteScore)
	case <-time.After(time.Second):
		t.Fatal("Animate(NaN) did not return")
	}
}

func TestAnimator_RejectsConcurrentRun(t *testing.T) {
	clock := clockwork.NewFakeClock()
	animator := NewAnimator(clock, testTick, nil)

	first, err := animator.Start(context.Background(), 0.5, nil)
	require.NoError(t, err)
	assert.True(t, animator.Active())

	second, err := animator.Start(context.Background(), -0.5, nil)
	assert.ErrorIs(t, err, ErrAnimationInProgress)
	assert.Nil(t, second)

	assert.Equal(t, 75, drive(t, clock, first).Width)

	// Guard is released once the run stops.
	third, err := animator.Start(context.Background(), -0.5, nil)
	require.NoError(t, err)
	assert.Equal(t, 25, drive(t, clock, third).Width)
}

func TestAnimator_GuardIsPerInstance(t *testing.T) {
	clock := clockwork.NewFakeClock()
	a := NewAnimator(clock, testTick, nil)
	b := NewAnimator(clock, testTick, nil)

	runA, err := a.Start(context.Background(), 0.2, nil)
	require.NoError(t, err)
	runB, err := b.Start(context.Background(), -0.2, nil)
	require.NoError(t, err)

	assert.Equal(t, 60, drive(t, clock, runA).Width)
	assert.Equal(t, 40, drive(t, clock, runB).Width)
}

func TestAnimator_CancelReleasesGuard(t *testing.T) {
	clock := clockwork.NewFakeClock()
	animator := NewAnimator(clock, testTick, nil)

	ctx, cancel := context.WithCancel(context.Background())
	run, err := animator.Start(ctx, 1, nil)
	require.NoError(t, err)

	cancel()
	select {
	case <-run.Done():
	case <-time.After(5 * time.Second):
		t.Fatal("cancelled run did not stop")
	}

	assert.Less(t, run.Wait().Width, 100)
	assert.False(t, animator.Active())
}

func TestAnimator_RecordsMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.NewAnalysisMetrics(reg)
	clock := clockwork.NewFakeClock()
	animator := NewAnimator(clock, testTick, m)

	run, err := animator.Start(context.Background(), 0, nil)
	require.NoError(t, err)
	drive(t, clock, run)

	_, err = animator.Start(context.Background(), domain.Score(math.NaN()), nil)
	require.Error(t, err)

	assert.InDelta(t, 50, testutil.ToFloat64(m.AnimationFrames), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.AnimationRuns.WithLabelValues("completed")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.AnimationRuns.WithLabelValues("rejected_non_finite")), 0)
}

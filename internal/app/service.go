package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/sahanarao-sps/sps-team30-project/internal/adapter/metrics"
	"github.com/sahanarao-sps/sps-team30-project/internal/animation"
	"github.com/sahanarao-sps/sps-team30-project/internal/domain"
	"github.com/sahanarao-sps/sps-team30-project/internal/platform/correlation"
	"github.com/sahanarao-sps/sps-team30-project/internal/surface"
	"golang.org/x/sync/singleflight"
)

// sharedAnalyzeTimeout bounds one coalesced pipeline run, independent of the
// callers waiting on it.
const sharedAnalyzeTimeout = 30 * time.Second

// Result is the outcome of one Analyze call.
type Result struct {
	Analysis     domain.Analysis
	Presentation Presentation
}

// Service is the application layer: the only component that references the
// orchestrator and the surface registry together.
type Service struct {
	orchestrator *Orchestrator
	surfaces     *SurfaceRegistry
	languages    []string
	metrics      *metrics.AnalysisMetrics // nil disables metrics
	analyzeGroup singleflight.Group
}

// NewService creates the application layer service. languages is the
// enumeration offered by the source-language selector.
func NewService(orchestrator *Orchestrator, surfaces *SurfaceRegistry, languages []string, m *metrics.AnalysisMetrics) *Service {
	return &Service{
		orchestrator: orchestrator,
		surfaces:     surfaces,
		languages:    slices.Clone(languages),
		metrics:      m,
	}
}

// Languages returns the selectable source languages.
func (s *Service) Languages() []string {
	return slices.Clone(s.languages)
}

// CreateSurface registers a new display surface.
func (s *Service) CreateSurface(ctx context.Context) (uuid.UUID, error) {
	id, err := s.surfaces.Create()
	if err != nil {
		slog.WarnContext(ctx, "Surface limit reached", "surfaces", s.surfaces.Size())
		return uuid.Nil, err
	}
	slog.InfoContext(correlation.WithSurface(ctx, id.String()), "Surface created")
	return id, nil
}

// SurfaceExists reports whether id names a live surface.
func (s *Service) SurfaceExists(id uuid.UUID) bool {
	return s.surfaces.Exists(id)
}

// DeleteSurface stops the surface's animation and forgets it.
func (s *Service) DeleteSurface(ctx context.Context, id uuid.UUID) error {
	if !s.surfaces.Remove(id) {
		return fmt.Errorf("surface %s: %w", id, domain.ErrSurfaceNotFound)
	}
	slog.InfoContext(correlation.WithSurface(ctx, id.String()), "Surface deleted")
	return nil
}

// Snapshot returns the current content of a surface.
func (s *Service) Snapshot(_ context.Context, id uuid.UUID) (surface.Snapshot, error) {
	return s.surfaces.Snapshot(id)
}

// Analyze translates and scores the input, then presents it on the surface.
// Identical concurrent requests for the same surface are collapsed into one
// pipeline run; every caller receives the shared result.
//
// When the surface is still animating a previous score nothing is redrawn and
// the returned error wraps animation.ErrAnimationInProgress alongside the
// analysis that was not shown.
func (s *Service) Analyze(ctx context.Context, surfaceID uuid.UUID, input domain.UserInput) (Result, error) {
	ctx = correlation.WithSurface(ctx, surfaceID.String())

	if !slices.Contains(s.languages, input.SourceLanguage) {
		s.observe("invalid_language")
		return Result{}, fmt.Errorf("%q: %w", input.SourceLanguage, domain.ErrUnknownLanguage)
	}

	entry, err := s.surfaces.lookup(surfaceID)
	if err != nil {
		s.observe("not_found")
		return Result{}, err
	}

	key := surfaceID.String() + "\x00" + input.SourceLanguage + "\x00" + input.Text
	// The shared run serves every joined caller, so it must not die with
	// whichever request happened to start it.
	ch := s.analyzeGroup.DoChan(key, func() (any, error) {
		runCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), sharedAnalyzeTimeout)
		defer cancel()
		return s.analyze(runCtx, entry, input)
	})

	select {
	case res := <-ch:
		if res.Shared {
			slog.DebugContext(ctx, "Analysis coalesced with an in-flight request")
		}
		result, _ := res.Val.(Result)
		return result, res.Err
	case <-ctx.Done():
		return Result{}, fmt.Errorf("analyze: %w", ctx.Err())
	}
}

func (s *Service) analyze(ctx context.Context, entry *surfaceEntry, input domain.UserInput) (Result, error) {
	analysis, err := s.orchestrator.Run(ctx, input)
	if err != nil {
		s.observe(failureLabel(err))
		slog.WarnContext(ctx, "Analysis failed", "error", err)
		return Result{}, err
	}

	pres, err := entry.presenter.Present(ctx, analysis)
	result := Result{Analysis: analysis, Presentation: pres}
	if err != nil {
		s.observe(failureLabel(err))
		return result, fmt.Errorf("present: %w", err)
	}

	s.observe("ok")
	slog.InfoContext(ctx, "Analysis presented",
		"score", analysis.RawScore,
		"bucket", pres.Classification.Bucket.String(),
		"target_width", pres.TargetWidth,
	)
	return result, nil
}

func (s *Service) observe(result string) {
	if s.metrics != nil {
		s.metrics.AnalysesTotal.WithLabelValues(result).Inc()
	}
}

func failureLabel(err error) string {
	var transportErr *domain.TransportError
	switch {
	case errors.Is(err, domain.ErrMalformedScore):
		return "malformed_score"
	case errors.As(err, &transportErr):
		return "transport_error"
	case errors.Is(err, animation.ErrAnimationInProgress):
		return "conflict"
	default:
		return "error"
	}
}

package httpserver

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/sahanarao-sps/sps-team30-project/internal/app"
	"github.com/sahanarao-sps/sps-team30-project/internal/domain"
	"github.com/sahanarao-sps/sps-team30-project/internal/platform/correlation"
	apperrors "github.com/sahanarao-sps/sps-team30-project/internal/platform/errors"
	"github.com/sahanarao-sps/sps-team30-project/internal/surface"
)

type analyzeRequest struct {
	Text           string `json:"text"`
	SourceLanguage string `json:"sourceLanguage"`
}

type analyzeResponse struct {
	SurfaceID      string  `json:"surface_id"`
	Score          float64 `json:"score"`
	RawScore       string  `json:"raw_score"`
	Bucket         string  `json:"bucket"`
	Message        string  `json:"message"`
	Original       string  `json:"original"`
	Translated     string  `json:"translated"`
	SourceLanguage string  `json:"source_language"`
	TargetWidth    int     `json:"target_width"`
	FinalGlyph     string  `json:"final_glyph"`
}

type snapshotResponse struct {
	SurfaceID string `json:"surface_id"`
	surface.Snapshot
	Subscribers *int `json:"subscribers,omitempty"`
}

func (s *Server) registerAPIRoutes() {
	api := s.echo.Group("/api", middleware.BodyLimit(apiBodyLimit))
	api.GET("/languages", s.handleLanguages)
	api.POST("/surfaces", s.handleCreateSurface)
	api.GET("/surfaces/:id", s.handleSnapshot)
	api.DELETE("/surfaces/:id", s.handleDeleteSurface)
	api.POST("/surfaces/:id/analyze", s.handleAnalyze,
		newRateLimiter(s.config.AnalyzeRatePerSecond, s.config.AnalyzeBurst))
}

func (s *Server) handleLanguages(c echo.Context) error {
	if err := c.JSON(http.StatusOK, map[string][]string{"languages": s.app.Languages()}); err != nil {
		return fmt.Errorf("failed to write languages response: %w", err)
	}
	return nil
}

func (s *Server) handleCreateSurface(c echo.Context) error {
	id, err := s.app.CreateSurface(c.Request().Context())
	if err != nil {
		return domainError(err)
	}

	if err := c.JSON(http.StatusCreated, map[string]string{"surface_id": id.String()}); err != nil {
		return fmt.Errorf("failed to write surface response: %w", err)
	}
	return nil
}

func (s *Server) handleSnapshot(c echo.Context) error {
	id, err := parseSurfaceID(c)
	if err != nil {
		return err
	}

	snap, err := s.app.Snapshot(c.Request().Context(), id)
	if err != nil {
		return domainError(err).WithField("surface_id", id.String())
	}

	resp := snapshotResponse{SurfaceID: id.String(), Snapshot: snap}
	if s.presence != nil {
		n := s.presence.Subscribers(id)
		resp.Subscribers = &n
	}

	if err := c.JSON(http.StatusOK, resp); err != nil {
		return fmt.Errorf("failed to write snapshot response: %w", err)
	}
	return nil
}

func (s *Server) handleDeleteSurface(c echo.Context) error {
	id, err := parseSurfaceID(c)
	if err != nil {
		return err
	}
	if err := s.app.DeleteSurface(c.Request().Context(), id); err != nil {
		return domainError(err).WithField("surface_id", id.String())
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) handleAnalyze(c echo.Context) error {
	id, err := parseSurfaceID(c)
	if err != nil {
		return err
	}
	ctx := correlation.WithSurface(c.Request().Context(), id.String())

	var req analyzeRequest
	if err := c.Bind(&req); err != nil {
		var httpErr *echo.HTTPError
		if errors.As(err, &httpErr) {
			return WrapHTTPError(httpErr)
		}
		return apperrors.ValidationError("invalid request body")
	}
	if req.SourceLanguage == "" {
		return apperrors.ValidationError("sourceLanguage is required")
	}

	result, err := s.app.Analyze(ctx, id, domain.UserInput{Text: req.Text, SourceLanguage: req.SourceLanguage})
	if err != nil {
		return domainError(err).
			WithField("surface_id", id.String()).
			WithField("source_language", req.SourceLanguage)
	}

	if err := c.JSON(http.StatusOK, newAnalyzeResponse(id, result)); err != nil {
		return fmt.Errorf("failed to write analyze response: %w", err)
	}
	return nil
}

func newAnalyzeResponse(id uuid.UUID, result app.Result) analyzeResponse {
	cls := result.Presentation.Classification
	return analyzeResponse{
		SurfaceID:      id.String(),
		Score:          float64(result.Analysis.Score),
		RawScore:       result.Analysis.RawScore,
		Bucket:         cls.Bucket.String(),
		Message:        cls.Message,
		Original:       result.Analysis.Input.Text,
		Translated:     string(result.Analysis.Translation),
		SourceLanguage: result.Analysis.Input.SourceLanguage,
		TargetWidth:    result.Presentation.TargetWidth,
		FinalGlyph:     cls.Tier.Glyph(),
	}
}

func parseSurfaceID(c echo.Context) (uuid.UUID, error) {
	raw := c.Param("id")
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, apperrors.ValidationError("invalid UUID format").WithField("surface_id", raw)
	}
	return id, nil
}

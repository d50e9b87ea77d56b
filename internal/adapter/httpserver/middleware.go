package httpserver

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/failsafe-go/failsafe-go/circuitbreaker"
	"github.com/labstack/echo/v4"
	"github.com/sahanarao-sps/sps-team30-project/internal/animation"
	"github.com/sahanarao-sps/sps-team30-project/internal/domain"
	"github.com/sahanarao-sps/sps-team30-project/internal/platform/correlation"
	apperrors "github.com/sahanarao-sps/sps-team30-project/internal/platform/errors"
)

// correlationMiddleware reuses a well-formed X-Correlation-ID from the caller
// or mints a new one, and echoes it on the response.
func correlationMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		id := correlation.FromHeader(c.Request().Header.Get(correlation.Header))
		if id == "" {
			id = correlation.NewID()
		}
		ctx := correlation.WithID(c.Request().Context(), id)
		c.SetRequest(c.Request().WithContext(ctx))
		c.Response().Header().Set(correlation.Header, id)
		return next(c)
	}
}

func ErrorHandlingMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			err := next(c)
			if err == nil {
				return nil
			}

			var httpErr *echo.HTTPError
			if errors.As(err, &httpErr) {
				return err
			}

			return HandleError(c, err)
		}
	}
}

// HandleError writes err as a structured JSON error response.
func HandleError(c echo.Context, err error) error {
	if err == nil {
		return nil
	}

	structuredErr := apperrors.AsStructuredError(err)
	logError(c, structuredErr)
	if err := c.JSON(structuredErr.HTTPStatus(), structuredErr.ToResponse()); err != nil {
		return fmt.Errorf("failed to write error response: %w", err)
	}
	return nil
}

// domainError maps pipeline errors to their HTTP representation.
func domainError(err error) *apperrors.Error {
	var transportErr *domain.TransportError
	switch {
	case errors.Is(err, domain.ErrUnknownLanguage):
		return apperrors.ValidationError("unsupported source language")
	case errors.Is(err, domain.ErrSurfaceNotFound):
		return apperrors.NotFoundError("surface not found")
	case errors.Is(err, domain.ErrSurfaceLimit):
		return apperrors.UnavailableError("surface limit reached", err)
	case errors.Is(err, domain.ErrMalformedScore):
		return apperrors.MalformedScoreError("sentiment service returned a malformed score", err)
	case errors.Is(err, animation.ErrAnimationInProgress):
		return apperrors.ConflictError("animation already in progress", err)
	case errors.As(err, &transportErr):
		e := apperrors.ExternalError("text analysis service unavailable", err).
			WithField("endpoint", transportErr.Endpoint)
		if transportErr.StatusCode != 0 {
			e.WithField("upstream_status", transportErr.StatusCode)
		}
		if errors.Is(err, circuitbreaker.ErrOpen) {
			e.WithField("circuit_open", true)
		}
		return e
	case errors.Is(err, animation.ErrNonFiniteScore):
		return apperrors.MalformedScoreError("score is not finite", err)
	default:
		return apperrors.InternalError("internal server error", err)
	}
}

func logError(c echo.Context, err *apperrors.Error) {
	ctx := c.Request().Context()
	attrs := []any{
		"error_type", err.Type,
		"message", err.Message,
		"path", c.Request().URL.Path,
		"method", c.Request().Method,
		"status", err.HTTPStatus(),
	}

	for k, v := range err.Context {
		attrs = append(attrs, k, v)
	}

	switch err.Type {
	case apperrors.TypeValidation:
		slog.InfoContext(ctx, "Validation error", attrs...)
	case apperrors.TypeNotFound:
		slog.InfoContext(ctx, "Not found", attrs...)
	case apperrors.TypeConflict:
		slog.WarnContext(ctx, "Conflict", attrs...)
	case apperrors.TypeMalformedScore, apperrors.TypeUnavailable:
		if err.Cause != nil {
			attrs = append(attrs, "cause", err.Cause)
		}
		slog.WarnContext(ctx, "Unprocessable upstream result", attrs...)
	case apperrors.TypeInternal:
		if err.Cause != nil {
			attrs = append(attrs, "cause", err.Cause)
		}
		slog.ErrorContext(ctx, "Internal error", attrs...)
	case apperrors.TypeExternal:
		if err.Cause != nil {
			attrs = append(attrs, "cause", err.Cause)
		}
		slog.ErrorContext(ctx, "External service error", attrs...)
	default:
		slog.ErrorContext(ctx, "Unknown error type", attrs...)
	}
}

// WrapHTTPError converts an echo.HTTPError into a structured error.
func WrapHTTPError(httpErr *echo.HTTPError) *apperrors.Error {
	message := http.StatusText(httpErr.Code)
	if msg, ok := httpErr.Message.(string); ok {
		message = msg
	}

	var errType apperrors.ErrorType
	switch httpErr.Code {
	case http.StatusBadRequest, http.StatusRequestEntityTooLarge, http.StatusUnsupportedMediaType:
		errType = apperrors.TypeValidation
	case http.StatusNotFound:
		errType = apperrors.TypeNotFound
	case http.StatusConflict:
		errType = apperrors.TypeConflict
	case http.StatusBadGateway:
		errType = apperrors.TypeExternal
	case http.StatusServiceUnavailable:
		errType = apperrors.TypeUnavailable
	default:
		errType = apperrors.TypeInternal
	}

	err := &apperrors.Error{
		Type:    errType,
		Message: message,
		Context: make(map[string]any),
	}
	if httpErr.Internal != nil {
		err.Cause = httpErr.Internal
	}
	return err
}

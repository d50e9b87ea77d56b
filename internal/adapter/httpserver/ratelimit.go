package httpserver

import (
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"
)

// Visitors idle for this long are dropped from the limiter store.
const limiterIdleExpiry = 5 * time.Minute

type rateLimitedResponse struct {
	Error string `json:"error"`
	Type  string `json:"type"`
}

// newRateLimiter throttles analyze calls per client IP; each one costs two
// collaborator round-trips.
func newRateLimiter(ratePerSecond float64, burst int) echo.MiddlewareFunc {
	retryAfter := retryAfterSeconds(ratePerSecond)
	deny := func(c echo.Context, _ string, _ error) error {
		c.Response().Header().Set("Retry-After", retryAfter)
		return c.JSON(http.StatusTooManyRequests, rateLimitedResponse{
			Error: "rate limit exceeded",
			Type:  "rate_limited",
		})
	}

	return middleware.RateLimiterWithConfig(middleware.RateLimiterConfig{
		Store: middleware.NewRateLimiterMemoryStoreWithConfig(middleware.RateLimiterMemoryStoreConfig{
			Rate:      rate.Limit(ratePerSecond),
			Burst:     burst,
			ExpiresIn: limiterIdleExpiry,
		}),
		IdentifierExtractor: func(c echo.Context) (string, error) {
			return c.RealIP(), nil
		},
		DenyHandler: deny,
	})
}

// retryAfterSeconds is the time to earn one token back, at least one second.
func retryAfterSeconds(ratePerSecond float64) string {
	if ratePerSecond <= 0 {
		return "60"
	}
	return strconv.Itoa(max(1, int(math.Ceil(1/ratePerSecond))))
}

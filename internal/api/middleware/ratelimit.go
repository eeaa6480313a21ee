package middleware

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/acquisitions/accounts-api/internal/api/metrics"
)

// Limiter is the throttling decision the rate-limit middleware delegates
// to, implemented by the Redis fixed-window limiter.
type Limiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

// RateLimit throttles requests per client IP within the given group.
// Limiter outages fail open: an unreachable Redis must not lock users
// out of sign-in.
func RateLimit(limiter Limiter, group string, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ok, err := limiter.Allow(c.Request().Context(), group+":"+c.RealIP())
			if err != nil {
				log.Warn().Err(err).Str("group", group).Msg("rate limiter unavailable")
				metrics.RateLimitDecisionsTotal.WithLabelValues("error").Inc()
				return next(c)
			}
			if !ok {
				metrics.RateLimitDecisionsTotal.WithLabelValues("blocked").Inc()
				return echo.NewHTTPError(http.StatusTooManyRequests, "too many requests")
			}
			metrics.RateLimitDecisionsTotal.WithLabelValues("allowed").Inc()
			return next(c)
		}
	}
}

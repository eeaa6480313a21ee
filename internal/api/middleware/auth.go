package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/acquisitions/accounts-api/internal/api/metrics"
	"github.com/acquisitions/accounts-api/internal/core/domain"
	"github.com/acquisitions/accounts-api/internal/core/ports"
)

// TokenCookie is the cookie carrying the signed auth token. It is set on
// sign-up/sign-in and cleared on sign-out.
const TokenCookie = "token"

const identityKey = "identity"

// Authenticate verifies the auth token and attaches the decoded identity
// to the request context. The token is read from the auth cookie first,
// falling back to an Authorization bearer header.
//
// A missing token is the normal anonymous path and is rejected without
// logging; only verification failures produce a diagnostic entry.
func Authenticate(codec ports.TokenCodec, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw := tokenFromRequest(c)
			if raw == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
			}

			identity, err := codec.Verify(raw)
			if err != nil {
				log.Debug().Err(err).
					Str("method", c.Request().Method).
					Str("path", c.Path()).
					Msg("token verification failed")
				metrics.TokenVerificationsTotal.WithLabelValues("rejected").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid or expired token")
			}
			metrics.TokenVerificationsTotal.WithLabelValues("ok").Inc()

			c.Set(identityKey, identity)
			return next(c)
		}
	}
}

func tokenFromRequest(c echo.Context) string {
	if cookie, err := c.Cookie(TokenCookie); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	parts := strings.SplitN(c.Request().Header.Get("Authorization"), " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
		return parts[1]
	}
	return ""
}

// IdentityFromContext returns the identity attached by Authenticate.
func IdentityFromContext(c echo.Context) (domain.Identity, bool) {
	identity, ok := c.Get(identityKey).(domain.Identity)
	return identity, ok
}

package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/renovatepro/renovate-api/internal/api/metrics"
	"github.com/renovatepro/renovate-api/internal/core/domain"
)

const (
	// SessionCookie is the name of the cookie carrying the session token.
	SessionCookie = "token"

	ContextKeySession = "session"
	ContextKeyUserID  = "user_id"
	ContextKeyRole    = "role"
)

// SessionVerifier is the subset of the auth service the middleware needs.
type SessionVerifier interface {
	VerifySession(ctx context.Context, token string) (*domain.Session, error)
}

// Auth verifies the session token from the token cookie, or from an
// Authorization: Bearer header when no cookie is present, and stores the
// session in the context. Every failure is a plain 401; the reason is logged.
func Auth(verifier SessionVerifier, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			session, err := verifier.VerifySession(c.Request().Context(), tokenFromRequest(c))
			if err != nil {
				result := verificationResult(err)
				metrics.SessionVerificationsTotal.WithLabelValues(result).Inc()
				log.Debug().Err(err).Str("result", result).Str("path", c.Path()).Msg("session rejected")
				return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
			}
			metrics.SessionVerificationsTotal.WithLabelValues("ok").Inc()

			c.Set(ContextKeySession, session)
			c.Set(ContextKeyUserID, session.ID)
			c.Set(ContextKeyRole, session.Role)

			return next(c)
		}
	}
}

func tokenFromRequest(c echo.Context) string {
	if cookie, err := c.Cookie(SessionCookie); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	parts := strings.SplitN(c.Request().Header.Get(echo.HeaderAuthorization), " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
		return strings.TrimSpace(parts[1])
	}
	return ""
}

func verificationResult(err error) string {
	switch {
	case errors.Is(err, domain.ErrMissingToken):
		return "missing"
	case errors.Is(err, domain.ErrSessionExpired):
		return "expired"
	case errors.Is(err, domain.ErrTokenRevoked):
		return "revoked"
	default:
		return "invalid"
	}
}

// SessionFrom returns the session stored by Auth, or nil.
func SessionFrom(c echo.Context) *domain.Session {
	s, _ := c.Get(ContextKeySession).(*domain.Session)
	return s
}

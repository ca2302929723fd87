package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/renovatepro/renovate-api/internal/api/metrics"
	"github.com/renovatepro/renovate-api/internal/api/middleware"
	"github.com/renovatepro/renovate-api/internal/core/domain"
)

// ctxSession returns the session injected by the Auth middleware. A missing
// session means the route was wired without Auth.
func ctxSession(c echo.Context) (*domain.Session, error) {
	s := middleware.SessionFrom(c)
	if s == nil || s.ID == "" {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	return s, nil
}

// bindAndValidate decodes the request into req and runs struct validation.
func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if c.Echo().Validator == nil {
		return nil
	}
	return c.Validate(req)
}

// recordAuthz counts the outcome of an authorization-gated operation.
func recordAuthz(action string, err error) {
	outcome := "allowed"
	switch {
	case err == nil:
	case errors.Is(err, domain.ErrForbidden):
		outcome = "forbidden"
	case errors.Is(err, domain.ErrUnauthenticated):
		outcome = "unauthenticated"
	case errors.Is(err, domain.ErrOrderNotFound),
		errors.Is(err, domain.ErrPortfolioItemNotFound),
		errors.Is(err, domain.ErrServiceNotFound),
		errors.Is(err, domain.ErrUserNotFound):
		outcome = "not_found"
	default:
		var ve *domain.ValidationError
		if errors.As(err, &ve) {
			outcome = "invalid"
		} else {
			outcome = "error"
		}
	}
	metrics.AuthzDecisionsTotal.WithLabelValues(action, outcome).Inc()
}

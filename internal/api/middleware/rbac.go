package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/renovatepro/renovate-api/internal/api/metrics"
	"github.com/renovatepro/renovate-api/internal/core/domain"
)

// RBAC admits sessions whose account role is one of allowedRoles, e.g. the
// admin/designer gate on catalog writes and the assignment pickers. It only
// looks at the role; per-order relationships are decided by authz. Must run
// after Auth.
func RBAC(allowedRoles ...string) echo.MiddlewareFunc {
	allowed := make(map[string]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
	}
	denied := fmt.Errorf("%w: requires role %s", domain.ErrForbidden, strings.Join(allowedRoles, " or "))

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			session := SessionFrom(c)
			if session == nil {
				metrics.AuthzDecisionsTotal.WithLabelValues("role_gate", "unauthenticated").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
			}
			if _, ok := allowed[session.Role]; !ok {
				metrics.AuthzDecisionsTotal.WithLabelValues("role_gate", "forbidden").Inc()
				return denied
			}
			return next(c)
		}
	}
}

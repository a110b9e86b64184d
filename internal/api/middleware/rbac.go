package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/shopstack/portal/internal/core/domain"
)

// RBAC enforces role-based access control. It is the single gating point in
// the system: services behind it perform no authorization checks of their
// own, so a route without RBAC is a route open to every authenticated role.
func RBAC(allowedRoles ...domain.Role) echo.MiddlewareFunc {
	allowed := make(map[domain.Role]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			sess, ok := c.Get(SessionKey).(*domain.Session)
			if !ok || sess == nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "not authenticated")
			}

			// Exhaustive over the closed Role set; a session can only carry
			// a parsed role, so default is unreachable by construction.
			switch sess.Role {
			case domain.RoleAdmin, domain.RoleUser:
				if _, ok := allowed[sess.Role]; ok {
					return next(c)
				}
			}
			return c.JSON(http.StatusForbidden, map[string]string{"error": "forbidden"})
		}
	}
}

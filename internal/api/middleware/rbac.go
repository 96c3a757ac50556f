package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/shaggymission/adoption-web/internal/core/domain"
)

// ResolveRole looks the role up for the identity on every request. Lookup
// problems resolve to RoleNone and leave a notice for the page.
func ResolveRole() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id, ok := IdentityFrom(c)
			sess := SessionFrom(c)
			if !ok || sess == nil {
				WithRole(c, domain.RoleNone, "")
				return next(c)
			}
			res := sess.ResolveRole(c.Request().Context(), id.UserID)
			WithRole(c, res.Role, res.Notice)
			return next(c)
		}
	}
}

// RequireRole enforces role-based access control.
func RequireRole(allowedRoles ...domain.Role) echo.MiddlewareFunc {
	allowed := make(map[domain.Role]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if _, ok := allowed[RoleFrom(c)]; !ok {
				return domain.ErrForbidden
			}
			return next(c)
		}
	}
}

// RequireSection admits the request only when the :section path parameter
// names a section visible to the role.
func RequireSection() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			section, ok := domain.ParseSection(c.Param("section"))
			if !ok {
				return echo.ErrNotFound
			}
			if !domain.CanView(RoleFrom(c), section) {
				return domain.ErrForbidden
			}
			return next(c)
		}
	}
}

package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/shaggymission/adoption-web/internal/core/domain"
)

// RequireIdentity stops the request before any protected content renders
// when the session holds no usable identity. Browser routes are redirected
// to redirectTo; an empty redirectTo answers 401 instead.
func RequireIdentity(redirectTo string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			sess := SessionFrom(c)
			if sess == nil {
				return domain.ErrUnauthenticated
			}
			id, ok := sess.LoadIdentity(c.Request().Context())
			if !ok {
				if redirectTo == "" {
					return domain.ErrUnauthenticated
				}
				return c.Redirect(http.StatusSeeOther, redirectTo)
			}
			WithIdentity(c, id)
			return next(c)
		}
	}
}

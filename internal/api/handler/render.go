package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"

	"github.com/shaggymission/adoption-web/internal/api/middleware"
	"github.com/shaggymission/adoption-web/internal/api/view"
)

var errInvalidForm = echo.NewHTTPError(http.StatusBadRequest, "invalid form data")

// render fills the layout fields shared by every page and renders it.
func render(c echo.Context, status int, name string, p view.Page) error {
	p.CSRF, _ = c.Get(echomiddleware.DefaultCSRFConfig.ContextKey).(string)
	_, p.SignedIn = middleware.IdentityFrom(c)
	return c.Render(status, name, p)
}

// gone reports whether the browser dropped the request. Nothing is written
// back in that case.
func gone(c echo.Context) bool {
	return c.Request().Context().Err() != nil
}

// fieldErrors extracts per-field messages from a validation failure.
func fieldErrors(err error) (map[string]string, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.Fields, true
	}
	return nil, false
}

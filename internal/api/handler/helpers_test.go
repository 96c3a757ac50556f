package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/shaggymission/adoption-web/internal/api/middleware"
	"github.com/shaggymission/adoption-web/internal/api/view"
	"github.com/shaggymission/adoption-web/internal/core/domain"
	"github.com/shaggymission/adoption-web/internal/core/service"
	"github.com/shaggymission/adoption-web/internal/infrastructure/db/memory"
)

type noRoles struct{}

func (noRoles) LookupRole(context.Context, string) (string, error) { return "", nil }

func newEcho(t *testing.T) *echo.Echo {
	t.Helper()
	r, err := view.New()
	if err != nil {
		t.Fatalf("parse templates: %v", err)
	}
	e := echo.New()
	e.Renderer = r
	e.Validator = NewValidator()
	return e
}

func newSession() *service.Session {
	mgr := service.NewSessionManager(memory.NewStorage(0), noRoles{}, zerolog.Nop())
	return mgr.For(uuid.NewString())
}

func formRequest(target string, values url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(values.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	return req
}

// newContext builds a context carrying a fresh session and, when id is
// valid, a signed-in identity with role.
func newContext(e *echo.Echo, req *http.Request, id domain.Identity, role domain.Role) (echo.Context, *httptest.ResponseRecorder, *service.Session) {
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	sess := newSession()
	middleware.WithSession(c, sess)
	if id.Valid() {
		middleware.WithIdentity(c, id)
		middleware.WithRole(c, role, "")
	}
	return c, rec, sess
}

func failedForm(msg string) domain.Form {
	f := domain.NewForm(false)
	_ = f.Begin()
	f.Fail(msg)
	return f
}

func succeededForm(terminal bool, msg string) domain.Form {
	f := domain.NewForm(terminal)
	_ = f.Begin()
	f.Succeed(msg)
	return f
}

package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/shaggymission/adoption-web/internal/core/domain"
	"github.com/shaggymission/adoption-web/internal/core/service"
	"github.com/shaggymission/adoption-web/internal/infrastructure/db/memory"
)

const testSecret = "test-secret"

type stubRoles struct {
	role string
	err  error
}

func (r stubRoles) LookupRole(context.Context, string) (string, error) { return r.role, r.err }

func newManager(roles stubRoles) (*service.SessionManager, *memory.Storage) {
	store := memory.NewStorage(0)
	return service.NewSessionManager(store, roles, zerolog.Nop()), store
}

func runSession(t *testing.T, mgr *service.SessionManager, cookie *http.Cookie) (*service.Session, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if cookie != nil {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var got *service.Session
	mw := Session(SessionConfig{Secret: testSecret, TTL: time.Hour}, mgr)
	if err := mw(func(c echo.Context) error {
		got = SessionFrom(c)
		return nil
	})(c); err != nil {
		t.Fatalf("middleware error: %v", err)
	}
	return got, rec
}

func TestSession_IssuesCookieForNewVisitor(t *testing.T) {
	mgr, _ := newManager(stubRoles{})
	sess, rec := runSession(t, mgr, nil)
	if sess == nil {
		t.Fatalf("session not attached")
	}

	cookies := rec.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Name != SessionCookieName {
		t.Fatalf("expected session cookie, got %v", cookies)
	}
	if !cookies[0].HttpOnly {
		t.Fatalf("session cookie must be HttpOnly")
	}
	sid, err := ParseSessionToken(cookies[0].Value, testSecret)
	if err != nil || sid != sess.ID() {
		t.Fatalf("cookie sid %q (err %v) does not match session %q", sid, err, sess.ID())
	}
}

func TestSession_ReusesValidCookie(t *testing.T) {
	mgr, _ := newManager(stubRoles{})
	sid := uuid.NewString()
	token, err := NewSessionToken(sid, testSecret, time.Hour, time.Now())
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	sess, rec := runSession(t, mgr, &http.Cookie{Name: SessionCookieName, Value: token})
	if sess.ID() != sid {
		t.Fatalf("expected sid %s, got %s", sid, sess.ID())
	}
	if len(rec.Result().Cookies()) != 0 {
		t.Fatalf("no new cookie expected")
	}
}

func TestSession_RejectsBadTokens(t *testing.T) {
	sid := uuid.NewString()
	forged, _ := NewSessionToken(sid, "other-secret", time.Hour, time.Now())
	expired, _ := NewSessionToken(sid, testSecret, time.Hour, time.Now().Add(-2*time.Hour))
	notUUID, _ := NewSessionToken("abc", testSecret, time.Hour, time.Now())

	for name, value := range map[string]string{"forged": forged, "expired": expired, "not uuid": notUUID, "garbage": "x.y.z"} {
		mgr, _ := newManager(stubRoles{})
		sess, _ := runSession(t, mgr, &http.Cookie{Name: SessionCookieName, Value: value})
		if sess.ID() == sid || sess.ID() == "abc" {
			t.Fatalf("%s: token must not be trusted", name)
		}
	}
}

func TestRequireIdentity(t *testing.T) {
	mgr, _ := newManager(stubRoles{})
	sess := mgr.For(uuid.NewString())

	e := echo.New()
	newCtx := func() (echo.Context, *httptest.ResponseRecorder) {
		rec := httptest.NewRecorder()
		c := e.NewContext(httptest.NewRequest(http.MethodGet, "/dashboard", nil), rec)
		c.Set(keySession, sess)
		return c, rec
	}

	// No identity: redirect, protected handler never runs.
	c, rec := newCtx()
	err := RequireIdentity("/login")(func(echo.Context) error {
		t.Fatalf("protected handler must not run")
		return nil
	})(c)
	if err != nil || rec.Code != http.StatusSeeOther || rec.Header().Get(echo.HeaderLocation) != "/login" {
		t.Fatalf("expected redirect to /login, got %d %q (err %v)", rec.Code, rec.Header().Get(echo.HeaderLocation), err)
	}

	// API flavour answers 401.
	c, _ = newCtx()
	err = RequireIdentity("")(func(echo.Context) error { return nil })(c)
	if !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}

	// With identity the handler sees it.
	if err := sess.SaveUserID(context.Background(), "u1"); err != nil {
		t.Fatalf("save: %v", err)
	}
	c, _ = newCtx()
	var seen domain.Identity
	err = RequireIdentity("/login")(func(c echo.Context) error {
		seen, _ = IdentityFrom(c)
		return nil
	})(c)
	if err != nil || seen.UserID != "u1" {
		t.Fatalf("expected identity u1, got %+v (err %v)", seen, err)
	}
}

func TestResolveRole_FailsClosed(t *testing.T) {
	tests := []struct {
		roles      stubRoles
		want       domain.Role
		wantNotice bool
	}{
		{stubRoles{role: "Admin"}, domain.RoleAdmin, false},
		{stubRoles{role: "Janitor"}, domain.RoleNone, false},
		{stubRoles{err: errors.New("down")}, domain.RoleNone, true},
	}
	for _, tt := range tests {
		mgr, _ := newManager(tt.roles)
		e := echo.New()
		c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
		c.Set(keySession, mgr.For(uuid.NewString()))
		c.Set(keyIdentity, domain.Identity{UserID: "u1"})

		if err := ResolveRole()(func(echo.Context) error { return nil })(c); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got := RoleFrom(c); got != tt.want {
			t.Fatalf("expected %s, got %s", tt.want, got)
		}
		if (RoleNoticeFrom(c) != "") != tt.wantNotice {
			t.Fatalf("notice mismatch for %+v: %q", tt.roles, RoleNoticeFrom(c))
		}
	}
}

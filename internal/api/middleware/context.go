package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/shaggymission/adoption-web/internal/core/domain"
	"github.com/shaggymission/adoption-web/internal/core/service"
)

// Context keys set by this package.
const (
	keySession    = "session"
	keyIdentity   = "identity"
	keyRole       = "role"
	keyRoleNotice = "role_notice"
)

// SessionFrom returns the session attached by Session. It is nil when the
// middleware did not run.
func SessionFrom(c echo.Context) *service.Session {
	s, _ := c.Get(keySession).(*service.Session)
	return s
}

// IdentityFrom returns the identity attached by RequireIdentity.
func IdentityFrom(c echo.Context) (domain.Identity, bool) {
	id, ok := c.Get(keyIdentity).(domain.Identity)
	return id, ok
}

// RoleFrom returns the role attached by ResolveRole, or RoleNone.
func RoleFrom(c echo.Context) domain.Role {
	if r, ok := c.Get(keyRole).(domain.Role); ok {
		return r
	}
	return domain.RoleNone
}

// RoleNoticeFrom returns the non-fatal role lookup notice, if any.
func RoleNoticeFrom(c echo.Context) string {
	n, _ := c.Get(keyRoleNotice).(string)
	return n
}

// ActorFrom combines identity and role for the dashboard services.
func ActorFrom(c echo.Context) service.Actor {
	id, _ := IdentityFrom(c)
	return service.Actor{Identity: id, Role: RoleFrom(c)}
}

// WithSession attaches sess to the request context.
func WithSession(c echo.Context, sess *service.Session) {
	c.Set(keySession, sess)
}

func WithIdentity(c echo.Context, id domain.Identity) {
	c.Set(keyIdentity, id)
}

// WithRole attaches the resolved role and its lookup notice.
func WithRole(c echo.Context, role domain.Role, notice string) {
	c.Set(keyRole, role)
	c.Set(keyRoleNotice, notice)
}

package middleware

import (
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/shaggymission/adoption-web/internal/core/service"
)

const (
	SessionCookieName = "sm_session"
	sessionIssuer     = "shaggy-mission-web"
)

// SessionConfig controls the session cookie.
type SessionConfig struct {
	Secret string
	TTL    time.Duration
	Secure bool
}

// Session attaches the browser's session. The cookie holds an HS256 token
// whose jti is the session id; a missing, expired, or forged token starts a
// fresh anonymous session.
func Session(cfg SessionConfig, sessions *service.SessionManager) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			sid, ok := sessionID(c, cfg.Secret)
			if !ok {
				sid = uuid.NewString()
				if err := issueCookie(c, cfg, sid); err != nil {
					return err
				}
			}
			WithSession(c, sessions.For(sid))
			return next(c)
		}
	}
}

func sessionID(c echo.Context, secret string) (string, bool) {
	cookie, err := c.Cookie(SessionCookieName)
	if err != nil || cookie.Value == "" {
		return "", false
	}
	sid, err := ParseSessionToken(cookie.Value, secret)
	if err != nil {
		return "", false
	}
	return sid, true
}

// ParseSessionToken validates a session token and returns its session id.
func ParseSessionToken(token, secret string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	tkn, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithIssuer(sessionIssuer), jwt.WithExpirationRequired())
	if err != nil || !tkn.Valid {
		return "", jwt.ErrTokenInvalidClaims
	}
	if _, err := uuid.Parse(claims.ID); err != nil {
		return "", jwt.ErrTokenInvalidId
	}
	return claims.ID, nil
}

// NewSessionToken signs a token for sid.
func NewSessionToken(sid, secret string, ttl time.Duration, now time.Time) (string, error) {
	claims := jwt.RegisteredClaims{
		ID:        sid,
		Issuer:    sessionIssuer,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

func issueCookie(c echo.Context, cfg SessionConfig, sid string) error {
	token, err := NewSessionToken(sid, cfg.Secret, cfg.TTL, time.Now())
	if err != nil {
		return err
	}
	c.SetCookie(&http.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(cfg.TTL.Seconds()),
		HttpOnly: true,
		Secure:   cfg.Secure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/shaggymission/adoption-web/internal/core/domain"
	"github.com/shaggymission/adoption-web/internal/core/ports"
	"github.com/shaggymission/adoption-web/internal/pkg/metrics"
)

// Session storage keys. "user" and "userId" hold the identity; everything
// else is view support.
const (
	keyUser        = "user"
	keyUserID      = "userId"
	keyAuthCookies = "authCookies"
	keyViewPrefix  = "view:"
	keyFlashPrefix = "flash:"
)

// RoleLookupNotice is shown when the role service could not be reached or
// answered with an error.
const RoleLookupNotice = "Error loading user data"

// SessionManager hands out per-browser sessions over a shared store.
type SessionManager struct {
	store ports.Storage
	roles ports.RoleGateway
	log   zerolog.Logger
}

func NewSessionManager(store ports.Storage, roles ports.RoleGateway, log zerolog.Logger) *SessionManager {
	return &SessionManager{
		store: store,
		roles: roles,
		log:   log.With().Str("component", "session").Logger(),
	}
}

// For returns the session identified by sid.
func (m *SessionManager) For(sid string) *Session {
	return &Session{sid: sid, store: m.store, roles: m.roles, log: m.log.With().Str("session_id", sid).Logger()}
}

// Session is the explicit session context handed to every page controller.
type Session struct {
	sid   string
	store ports.Storage
	roles ports.RoleGateway
	log   zerolog.Logger
}

func (s *Session) ID() string { return s.sid }

// LoadIdentity reads the persisted identity. The stored user id is
// authoritative; the profile only adds fields when it belongs to that id.
// A stored profile that cannot be parsed, or that lacks a user id, resets
// the whole session. Storage errors count as unauthenticated.
func (s *Session) LoadIdentity(ctx context.Context) (domain.Identity, bool) {
	profile, hasProfile, ok := s.loadProfile(ctx)
	if !ok {
		return domain.Identity{}, false
	}

	userID, err := s.store.GetItem(ctx, s.sid, keyUserID)
	switch {
	case errors.Is(err, ports.ErrItemNotFound):
		return profile, hasProfile
	case err != nil:
		s.log.Error().Err(err).Msg("identity read failed")
		return domain.Identity{}, false
	}

	id := domain.Identity{UserID: userID}
	if !id.Valid() {
		s.reset(ctx, "blank user id")
		return domain.Identity{}, false
	}
	if hasProfile && profile.UserID == userID {
		return profile, true
	}
	if hasProfile {
		s.log.Warn().Str("user_id", userID).Msg("ignoring profile of another user")
	}
	return id, true
}

// loadProfile reads the full profile. ok is false when the session was
// reset or storage failed.
func (s *Session) loadProfile(ctx context.Context) (id domain.Identity, found, ok bool) {
	raw, err := s.store.GetItem(ctx, s.sid, keyUser)
	switch {
	case errors.Is(err, ports.ErrItemNotFound):
		return domain.Identity{}, false, true
	case err != nil:
		s.log.Error().Err(err).Msg("identity read failed")
		return domain.Identity{}, false, false
	}
	if jerr := json.Unmarshal([]byte(raw), &id); jerr != nil || !id.Valid() {
		s.reset(ctx, "unreadable identity")
		return domain.Identity{}, false, false
	}
	return id, true, true
}

func (s *Session) reset(ctx context.Context, reason string) {
	metrics.SessionResetsTotal.Inc()
	s.log.Warn().Str("reason", reason).Msg("clearing session")
	if err := s.store.Clear(ctx, s.sid); err != nil {
		s.log.Error().Err(err).Msg("session clear failed")
	}
}

// SaveIdentity persists the full profile and the bare user id.
func (s *Session) SaveIdentity(ctx context.Context, id domain.Identity) error {
	b, err := json.Marshal(id)
	if err != nil {
		return err
	}
	if err := s.store.SetItem(ctx, s.sid, keyUser, string(b), 0); err != nil {
		return err
	}
	return s.store.SetItem(ctx, s.sid, keyUserID, id.UserID, 0)
}

// SaveUserID persists only the user id, as login does. A profile left by
// another user is dropped.
func (s *Session) SaveUserID(ctx context.Context, userID string) error {
	if prev, found, _ := s.loadProfile(ctx); found && prev.UserID != userID {
		if err := s.store.RemoveItem(ctx, s.sid, keyUser); err != nil {
			return err
		}
	}
	return s.store.SetItem(ctx, s.sid, keyUserID, userID, 0)
}

// ClearIdentity drops every key of the session, returning it to anonymous.
func (s *Session) ClearIdentity(ctx context.Context) error {
	return s.store.Clear(ctx, s.sid)
}

// RoleResolution is the role plus a notice to display when the lookup failed.
type RoleResolution struct {
	Role   domain.Role
	Notice string
}

// ResolveRole asks the role service for the user's role. It never fails:
// any problem resolves to RoleNone.
func (s *Session) ResolveRole(ctx context.Context, userID string) RoleResolution {
	raw, err := s.roles.LookupRole(ctx, userID)
	if err != nil {
		metrics.RoleResolutionsTotal.WithLabelValues(string(domain.RoleNone), "fallback").Inc()
		s.log.Warn().Err(err).Str("user_id", userID).Msg("role lookup failed; using NoRole")
		return RoleResolution{Role: domain.RoleNone, Notice: RoleLookupNotice}
	}
	role := domain.ParseRole(raw)
	result := "resolved"
	if role == domain.RoleNone && raw != string(domain.RoleNone) {
		result = "fallback"
	}
	metrics.RoleResolutionsTotal.WithLabelValues(string(role), result).Inc()
	return RoleResolution{Role: role}
}

// AuthCookies returns the cookies the auth service set at login.
func (s *Session) AuthCookies(ctx context.Context) string {
	v, _ := s.store.GetItem(ctx, s.sid, keyAuthCookies)
	return v
}

func (s *Session) SetAuthCookies(ctx context.Context, cookies string) error {
	if cookies == "" {
		return nil
	}
	return s.store.SetItem(ctx, s.sid, keyAuthCookies, cookies, 0)
}

// LoadView decodes the named view state into v. Missing or corrupt state
// reports false; corrupt state is discarded.
func (s *Session) LoadView(ctx context.Context, name string, v any) bool {
	raw, err := s.store.GetItem(ctx, s.sid, keyViewPrefix+name)
	if err != nil {
		return false
	}
	if err := json.Unmarshal([]byte(raw), v); err != nil {
		s.log.Warn().Err(err).Str("view", name).Msg("discarding corrupt view state")
		_ = s.store.RemoveItem(ctx, s.sid, keyViewPrefix+name)
		return false
	}
	return true
}

func (s *Session) SaveView(ctx context.Context, name string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return s.store.SetItem(ctx, s.sid, keyViewPrefix+name, string(b), 0)
}

// SetFlash stores a message that disappears after ttl.
func (s *Session) SetFlash(ctx context.Context, name, msg string, ttl time.Duration) error {
	return s.store.SetItem(ctx, s.sid, keyFlashPrefix+name, msg, ttl)
}

// Flash returns the message while it is still live.
func (s *Session) Flash(ctx context.Context, name string) string {
	v, _ := s.store.GetItem(ctx, s.sid, keyFlashPrefix+name)
	return v
}

// PopFlash returns a one-shot message and removes it.
func (s *Session) PopFlash(ctx context.Context, name string) string {
	v, err := s.store.GetItem(ctx, s.sid, keyFlashPrefix+name)
	if err != nil {
		return ""
	}
	_ = s.store.RemoveItem(ctx, s.sid, keyFlashPrefix+name)
	return v
}

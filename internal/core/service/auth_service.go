package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/shaggymission/adoption-web/internal/core/domain"
	"github.com/shaggymission/adoption-web/internal/core/ports"
)

const (
	LoginFailedMessage     = "Error signing in"
	RegisterSuccessMessage = "User registered successfully!"
	RegisterFailedMessage  = "Registration failed"
	RecoverSuccessMessage  = "Password recovery email sent successfully! Please check your inbox."
	RecoverFailedMessage   = "Email not found. Please check if you're registered."
	RegisterRedirectDelay  = 2 * time.Second
	PathDashboard          = "/dashboard"
	PathCollaborator       = "/collaborator"
	PathHome               = "/"
	PathLogin              = "/login"
)

// FormResult is what a form page renders after a submit.
type FormResult struct {
	Form          domain.Form
	Redirect      string
	RedirectAfter time.Duration
}

// AuthService drives the login, register, and forgot-password pages and
// logout.
type AuthService struct {
	auth  ports.AuthGateway
	users ports.UserGateway
	guard ports.SubmitGuard
	log   zerolog.Logger
}

func NewAuthService(auth ports.AuthGateway, users ports.UserGateway, guard ports.SubmitGuard, log zerolog.Logger) *AuthService {
	return &AuthService{
		auth:  auth,
		users: users,
		guard: guard,
		log:   log.With().Str("component", "auth").Logger(),
	}
}

// Login signs in. On success only the user id is stored; the profile is
// not known at this point.
func (s *AuthService) Login(ctx context.Context, sess *Session, c ports.Credentials) (FormResult, error) {
	form := domain.NewForm(false)
	_ = form.Begin()

	var res ports.LoginResult
	err := inFlight(ctx, s.guard, s.log, sess.ID(), "login", func() error {
		var err error
		res, err = s.auth.Login(ctx, c)
		return err
	})
	if canceled(ctx) {
		return FormResult{}, ctx.Err()
	}
	if err == nil && res.UserID == "" {
		s.log.Warn().Msg("login response carried no userId")
		err = &domain.RemoteError{Operation: "login", Status: 200}
	}
	if err != nil {
		form.Fail(FailureMessage(err, LoginFailedMessage))
		return FormResult{Form: form}, nil
	}

	if err := sess.SaveUserID(ctx, res.UserID); err != nil {
		s.log.Error().Err(err).Msg("storing user id failed")
		form.Fail(LoginFailedMessage)
		return FormResult{Form: form}, nil
	}
	if err := sess.SetAuthCookies(ctx, res.Cookies); err != nil {
		s.log.Warn().Err(err).Msg("storing auth cookies failed")
	}
	s.log.Info().Str("user_id", res.UserID).Msg("user signed in")

	form.Succeed(res.Message)
	return FormResult{Form: form, Redirect: PathDashboard}, nil
}

// Register creates an account, saves the identity, and schedules the move
// to the collaborator page.
func (s *AuthService) Register(ctx context.Context, sess *Session, r ports.Registration) (FormResult, error) {
	form := domain.NewForm(true)
	_ = form.Begin()

	var res ports.RegisterResult
	err := inFlight(ctx, s.guard, s.log, sess.ID(), "register", func() error {
		var err error
		res, err = s.users.RegisterUser(ctx, r)
		return err
	})
	if canceled(ctx) {
		return FormResult{}, ctx.Err()
	}
	if err != nil {
		form.Fail(failureMessage(err, RegisterFailedMessage, NetworkErrorMessage))
		return FormResult{Form: form}, nil
	}

	if err := sess.SaveIdentity(ctx, res.Identity); err != nil {
		s.log.Error().Err(err).Msg("storing identity failed")
	}
	if !res.Identity.Valid() {
		s.log.Warn().Str("email", r.Email).Msg("registration response carried no userId")
	}

	msg := res.Message
	if msg == "" {
		msg = RegisterSuccessMessage
	}
	form.Succeed(msg)
	return FormResult{Form: form, Redirect: PathCollaborator, RedirectAfter: RegisterRedirectDelay}, nil
}

// RecoverPassword requests a recovery email. Success replaces the form.
func (s *AuthService) RecoverPassword(ctx context.Context, sess *Session, email string) (FormResult, error) {
	form := domain.NewForm(true)
	_ = form.Begin()

	err := inFlight(ctx, s.guard, s.log, sess.ID(), "recover_password", func() error {
		_, err := s.auth.RecoverPassword(ctx, email)
		return err
	})
	if canceled(ctx) {
		return FormResult{}, ctx.Err()
	}
	if err != nil {
		form.Fail(FailureMessage(err, RecoverFailedMessage))
		return FormResult{Form: form}, nil
	}
	form.Succeed(RecoverSuccessMessage)
	return FormResult{Form: form}, nil
}

// Logout tells the auth service, then always clears the local session.
func (s *AuthService) Logout(ctx context.Context, sess *Session) {
	if err := s.auth.Logout(ctx, sess.AuthCookies(ctx)); err != nil {
		s.log.Warn().Err(err).Msg("remote logout failed; clearing local session anyway")
	}
	if err := sess.ClearIdentity(context.WithoutCancel(ctx)); err != nil {
		s.log.Error().Err(err).Msg("clearing session failed")
	}
}

package handler

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/shaggymission/adoption-web/internal/api/middleware"
	"github.com/shaggymission/adoption-web/internal/api/view"
	"github.com/shaggymission/adoption-web/internal/core/domain"
	"github.com/shaggymission/adoption-web/internal/core/ports"
	"github.com/shaggymission/adoption-web/internal/core/service"
)

// AuthService is what the login, register, and forgot-password pages need.
type AuthService interface {
	Login(ctx context.Context, sess *service.Session, c ports.Credentials) (service.FormResult, error)
	Register(ctx context.Context, sess *service.Session, r ports.Registration) (service.FormResult, error)
	RecoverPassword(ctx context.Context, sess *service.Session, email string) (service.FormResult, error)
	Logout(ctx context.Context, sess *service.Session)
}

type AuthHandler struct {
	authService AuthService
}

func NewAuthHandler(authService AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// authFormPage is the model of the three auth pages. Values never carries
// a password back to the browser.
type authFormPage struct {
	Form   domain.Form
	Values any
	Errors map[string]string
}

func (h *AuthHandler) LoginPage(c echo.Context) error {
	return render(c, http.StatusOK, view.PageLogin, view.Page{
		Title: "Sign In",
		Data:  authFormPage{Form: domain.NewForm(false), Values: loginForm{}},
	})
}

// Login signs the user in and moves to the dashboard on success.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginForm
	if err := c.Bind(&req); err != nil {
		return errInvalidForm
	}
	req.Email = strings.TrimSpace(req.Email)
	echoed := loginForm{Email: req.Email}

	if err := c.Validate(&req); err != nil {
		fields, ok := fieldErrors(err)
		if !ok {
			return err
		}
		return render(c, http.StatusUnprocessableEntity, view.PageLogin, view.Page{
			Title: "Sign In",
			Data:  authFormPage{Form: domain.NewForm(false), Values: echoed, Errors: fields},
		})
	}

	res, err := h.authService.Login(c.Request().Context(), middleware.SessionFrom(c), ports.Credentials{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		if gone(c) {
			return nil
		}
		return err
	}
	if res.Form.Succeeded() && res.Redirect != "" {
		return c.Redirect(http.StatusSeeOther, res.Redirect)
	}
	return render(c, http.StatusOK, view.PageLogin, view.Page{
		Title: "Sign In",
		Data:  authFormPage{Form: res.Form, Values: echoed},
	})
}

func (h *AuthHandler) RegisterPage(c echo.Context) error {
	return render(c, http.StatusOK, view.PageRegister, view.Page{
		Title: "Create Account",
		Data:  authFormPage{Form: domain.NewForm(true), Values: registerForm{}},
	})
}

// Register creates the account. A successful page stays up for a moment
// with the server's message, then the browser moves on by itself.
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerForm
	if err := c.Bind(&req); err != nil {
		return errInvalidForm
	}
	req.FirstName = strings.TrimSpace(req.FirstName)
	req.LastName = strings.TrimSpace(req.LastName)
	req.Email = strings.TrimSpace(req.Email)
	req.Phone = strings.TrimSpace(req.Phone)
	echoed := req
	echoed.Password = ""

	if err := c.Validate(&req); err != nil {
		fields, ok := fieldErrors(err)
		if !ok {
			return err
		}
		return render(c, http.StatusUnprocessableEntity, view.PageRegister, view.Page{
			Title: "Create Account",
			Data:  authFormPage{Form: domain.NewForm(true), Values: echoed, Errors: fields},
		})
	}

	res, err := h.authService.Register(c.Request().Context(), middleware.SessionFrom(c), ports.Registration{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Password:  req.Password,
		Phone:     req.Phone,
	})
	if err != nil {
		if gone(c) {
			return nil
		}
		return err
	}

	page := view.Page{
		Title: "Create Account",
		Data:  authFormPage{Form: res.Form, Values: echoed},
	}
	if res.Form.Succeeded() && res.Redirect != "" {
		page.Refresh = &view.Refresh{URL: res.Redirect, Seconds: int(res.RedirectAfter / time.Second)}
	}
	return render(c, http.StatusOK, view.PageRegister, page)
}

func (h *AuthHandler) ForgotPasswordPage(c echo.Context) error {
	return render(c, http.StatusOK, view.PageForgotPassword, view.Page{
		Title: "Forgot Password",
		Data:  authFormPage{Form: domain.NewForm(true), Values: forgotForm{}},
	})
}

func (h *AuthHandler) ForgotPassword(c echo.Context) error {
	var req forgotForm
	if err := c.Bind(&req); err != nil {
		return errInvalidForm
	}
	req.Email = strings.TrimSpace(req.Email)

	if err := c.Validate(&req); err != nil {
		fields, ok := fieldErrors(err)
		if !ok {
			return err
		}
		return render(c, http.StatusUnprocessableEntity, view.PageForgotPassword, view.Page{
			Title: "Forgot Password",
			Data:  authFormPage{Form: domain.NewForm(true), Values: req, Errors: fields},
		})
	}

	res, err := h.authService.RecoverPassword(c.Request().Context(), middleware.SessionFrom(c), req.Email)
	if err != nil {
		if gone(c) {
			return nil
		}
		return err
	}
	return render(c, http.StatusOK, view.PageForgotPassword, view.Page{
		Title: "Forgot Password",
		Data:  authFormPage{Form: res.Form, Values: req},
	})
}

// Logout always ends on the home page, whatever the auth service says.
func (h *AuthHandler) Logout(c echo.Context) error {
	h.authService.Logout(c.Request().Context(), middleware.SessionFrom(c))
	return c.Redirect(http.StatusSeeOther, service.PathHome)
}

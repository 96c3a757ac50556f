package gateway

import (
	"context"
	"net/http"
	"strings"

	"github.com/shaggymission/adoption-web/internal/core/ports"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	UserID  string `json:"userId"`
	Message string `json:"message"`
}

// Login signs in and captures the cookies the auth service set, so that
// logout can replay them.
func (g *Gateway) Login(ctx context.Context, c ports.Credentials) (ports.LoginResult, error) {
	var resp loginResponse
	hdr, err := g.do(ctx, call{
		op:     opLogin,
		method: http.MethodPost,
		url:    g.endpoints.LoginURL,
		in:     loginRequest{Email: c.Email, Password: c.Password},
		out:    &resp,
	})
	if err != nil {
		return ports.LoginResult{}, err
	}
	return ports.LoginResult{
		UserID:  resp.UserID,
		Message: resp.Message,
		Cookies: cookieHeader(hdr),
	}, nil
}

// Logout asks the auth service to end its session. cookies is the value
// captured at login and may be empty.
func (g *Gateway) Logout(ctx context.Context, cookies string) error {
	_, err := g.do(ctx, call{
		op:      opLogout,
		method:  http.MethodPost,
		url:     g.endpoints.LogoutURL,
		headers: map[string]string{"Cookie": cookies},
	})
	return err
}

type recoverRequest struct {
	Email string `json:"email"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// RecoverPassword requests a recovery email and returns the server message.
func (g *Gateway) RecoverPassword(ctx context.Context, email string) (string, error) {
	var resp messageResponse
	_, err := g.do(ctx, call{
		op:     opRecoverPassword,
		method: http.MethodPost,
		url:    g.endpoints.RecoverPasswordURL,
		in:     recoverRequest{Email: email},
		out:    &resp,
	})
	return resp.Message, err
}

// cookieHeader turns Set-Cookie response headers into a Cookie request
// header value.
func cookieHeader(h http.Header) string {
	var parts []string
	for _, line := range h.Values("Set-Cookie") {
		c, err := http.ParseSetCookie(line)
		if err != nil {
			continue
		}
		parts = append(parts, c.Name+"="+c.Value)
	}
	return strings.Join(parts, "; ")
}

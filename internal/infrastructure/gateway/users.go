package gateway

import (
	"context"
	"net/http"

	"github.com/shaggymission/adoption-web/internal/core/domain"
	"github.com/shaggymission/adoption-web/internal/core/ports"
)

type registerRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	Phone     string `json:"phone"`
}

type registerResponse struct {
	UserID  string `json:"userId"`
	Message string `json:"message"`
}

// RegisterUser creates an account. The returned identity is built from the
// submitted profile plus the server-issued id.
func (g *Gateway) RegisterUser(ctx context.Context, r ports.Registration) (ports.RegisterResult, error) {
	var resp registerResponse
	_, err := g.do(ctx, call{
		op:     opRegisterUser,
		method: http.MethodPost,
		url:    g.endpoints.RegisterUserURL,
		in: registerRequest{
			FirstName: r.FirstName,
			LastName:  r.LastName,
			Email:     r.Email,
			Password:  r.Password,
			Phone:     r.Phone,
		},
		out: &resp,
	})
	if err != nil {
		return ports.RegisterResult{}, err
	}
	return ports.RegisterResult{
		Identity: domain.Identity{
			UserID:    resp.UserID,
			Email:     r.Email,
			FirstName: r.FirstName,
			LastName:  r.LastName,
		},
		Message: resp.Message,
	}, nil
}

func (g *Gateway) ListUsers(ctx context.Context, page int) (domain.UserPage, error) {
	var resp userListDTO
	_, err := g.do(ctx, call{
		op:     opListUsers,
		method: http.MethodGet,
		url:    pageURL(g.endpoints.ListUsersURL, page),
		out:    &resp,
	})
	if err != nil {
		return domain.UserPage{}, err
	}

	users := make([]domain.User, 0, len(resp.Users))
	for _, u := range resp.Users {
		users = append(users, u.toDomain())
	}
	current := resp.CurrentPage
	if current < 1 {
		current = page
	}
	return domain.UserPage{Users: users, Page: current, TotalPages: resp.TotalPages}, nil
}

func (g *Gateway) DeleteUser(ctx context.Context, id string) error {
	_, err := g.do(ctx, call{
		op:     opDeleteUser,
		method: http.MethodDelete,
		url:    recordURL(g.endpoints.DeleteUserURL, id),
	})
	return err
}

package ports

import (
	"context"

	"github.com/shaggymission/adoption-web/internal/core/domain"
)

// Credentials are submitted by the login form.
type Credentials struct {
	Email    string
	Password string
}

// LoginResult carries what the auth service hands back on success. Cookies
// are the credentialed cookies it set, replayed on logout.
type LoginResult struct {
	UserID  string
	Message string
	Cookies string
}

// Registration is submitted by the register form.
type Registration struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
	Phone     string
}

// RegisterResult is the created identity plus the server's message.
type RegisterResult struct {
	Identity domain.Identity
	Message  string
}

// AdoptionSubmission is submitted by the adopt modal.
type AdoptionSubmission struct {
	UserID  string
	PetID   string
	Message string
}

// AuthGateway covers sign-in, sign-out, and password recovery.
type AuthGateway interface {
	Login(ctx context.Context, c Credentials) (LoginResult, error)
	Logout(ctx context.Context, cookies string) error
	RecoverPassword(ctx context.Context, email string) (string, error)
}

// RoleGateway resolves a user's role. The raw role string is returned;
// callers decide how to treat unknown values.
type RoleGateway interface {
	LookupRole(ctx context.Context, userID string) (string, error)
}

type UserGateway interface {
	RegisterUser(ctx context.Context, r Registration) (RegisterResult, error)
	ListUsers(ctx context.Context, page int) (domain.UserPage, error)
	DeleteUser(ctx context.Context, id string) error
}

type PetGateway interface {
	ListPets(ctx context.Context, page int) (domain.PetPage, error)
	RegisterPet(ctx context.Context, in domain.PetInput) error
	UpdatePet(ctx context.Context, id string, in domain.PetInput) error
	DeletePet(ctx context.Context, id string) error
	SearchPetsByBreed(ctx context.Context, breed string) ([]domain.Pet, error)
}

type AdoptionGateway interface {
	SubmitAdoptionRequest(ctx context.Context, s AdoptionSubmission) error
	ListAdoptionRequests(ctx context.Context) ([]domain.AdoptionRequest, error)
}

// DecisionSubmitter receives adoption decisions after they are applied
// locally. Failures never roll back the local change.
type DecisionSubmitter interface {
	SubmitDecision(ctx context.Context, d domain.AdoptionDecision) error
}

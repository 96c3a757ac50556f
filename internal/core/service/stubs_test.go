package service

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/shaggymission/adoption-web/internal/core/domain"
	"github.com/shaggymission/adoption-web/internal/core/ports"
	"github.com/shaggymission/adoption-web/internal/infrastructure/db/memory"
)

// ---------------------------------------------------------------------------
// Stubs
// ---------------------------------------------------------------------------

type stubRoles struct {
	role  string
	err   error
	calls int
	seen  []string
}

func (r *stubRoles) LookupRole(_ context.Context, userID string) (string, error) {
	r.calls++
	r.seen = append(r.seen, userID)
	return r.role, r.err
}

type stubAuth struct {
	loginFn   func(ports.Credentials) (ports.LoginResult, error)
	logoutErr error
	recover   func(string) (string, error)

	logoutCookies []string
}

func (a *stubAuth) Login(_ context.Context, c ports.Credentials) (ports.LoginResult, error) {
	return a.loginFn(c)
}

func (a *stubAuth) Logout(_ context.Context, cookies string) error {
	a.logoutCookies = append(a.logoutCookies, cookies)
	return a.logoutErr
}

func (a *stubAuth) RecoverPassword(_ context.Context, email string) (string, error) {
	return a.recover(email)
}

type stubUsers struct {
	registerFn func(ports.Registration) (ports.RegisterResult, error)
	pages      map[int]domain.UserPage
	listErr    error
	deleteErr  error

	listCalls []int
	deleted   []string
}

func (u *stubUsers) RegisterUser(_ context.Context, r ports.Registration) (ports.RegisterResult, error) {
	return u.registerFn(r)
}

func (u *stubUsers) ListUsers(_ context.Context, page int) (domain.UserPage, error) {
	u.listCalls = append(u.listCalls, page)
	if u.listErr != nil {
		return domain.UserPage{}, u.listErr
	}
	return u.pages[page], nil
}

func (u *stubUsers) DeleteUser(_ context.Context, id string) error {
	if u.deleteErr != nil {
		return u.deleteErr
	}
	u.deleted = append(u.deleted, id)
	for p, page := range u.pages {
		kept := page.Users[:0:0]
		for _, usr := range page.Users {
			if usr.ID != id {
				kept = append(kept, usr)
			}
		}
		page.Users = kept
		u.pages[p] = page
	}
	return nil
}

type stubPets struct {
	pets      []domain.Pet
	perPage   int
	listErr   error
	writeErr  error
	searchErr error
	found     []domain.Pet

	listCalls   []int
	searchCalls []string
	registered  []domain.PetInput
	updated     map[string]domain.PetInput
	deleted     []string
}

func (p *stubPets) ListPets(_ context.Context, page int) (domain.PetPage, error) {
	p.listCalls = append(p.listCalls, page)
	if p.listErr != nil {
		return domain.PetPage{}, p.listErr
	}
	per := p.perPage
	if per == 0 {
		per = 10
	}
	total := (len(p.pets) + per - 1) / per
	if total == 0 {
		total = 1
	}
	start := (page - 1) * per
	end := min(start+per, len(p.pets))
	var items []domain.Pet
	if start < len(p.pets) {
		items = append(items, p.pets[start:end]...)
	}
	return domain.PetPage{Pets: items, CurrentPage: page, TotalPages: total}, nil
}

func (p *stubPets) RegisterPet(_ context.Context, in domain.PetInput) error {
	if p.writeErr != nil {
		return p.writeErr
	}
	p.registered = append(p.registered, in)
	return nil
}

func (p *stubPets) UpdatePet(_ context.Context, id string, in domain.PetInput) error {
	if p.writeErr != nil {
		return p.writeErr
	}
	if p.updated == nil {
		p.updated = map[string]domain.PetInput{}
	}
	p.updated[id] = in
	return nil
}

func (p *stubPets) DeletePet(_ context.Context, id string) error {
	if p.writeErr != nil {
		return p.writeErr
	}
	p.deleted = append(p.deleted, id)
	kept := p.pets[:0:0]
	for _, pet := range p.pets {
		if pet.ID != id {
			kept = append(kept, pet)
		}
	}
	p.pets = kept
	return nil
}

func (p *stubPets) SearchPetsByBreed(_ context.Context, breed string) ([]domain.Pet, error) {
	p.searchCalls = append(p.searchCalls, breed)
	return p.found, p.searchErr
}

type stubAdoptions struct {
	requests  []domain.AdoptionRequest
	submitErr error
	submitted []ports.AdoptionSubmission
}

func (a *stubAdoptions) SubmitAdoptionRequest(_ context.Context, s ports.AdoptionSubmission) error {
	if a.submitErr != nil {
		return a.submitErr
	}
	a.submitted = append(a.submitted, s)
	return nil
}

func (a *stubAdoptions) ListAdoptionRequests(_ context.Context) ([]domain.AdoptionRequest, error) {
	return append([]domain.AdoptionRequest(nil), a.requests...), nil
}

type stubDecisions struct {
	mu  sync.Mutex
	got []domain.AdoptionDecision
	err error
}

func (d *stubDecisions) SubmitDecision(_ context.Context, dec domain.AdoptionDecision) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.got = append(d.got, dec)
	return d.err
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func newTestSession(roles ports.RoleGateway) (*Session, *memory.Storage) {
	store := memory.NewStorage(0)
	return NewSessionManager(store, roles, zerolog.Nop()).For("sid-1"), store
}

var (
	admin       = Actor{Identity: domain.Identity{UserID: "admin-1"}, Role: domain.RoleAdmin}
	contributor = Actor{Identity: domain.Identity{UserID: "contrib-1"}, Role: domain.RoleContributor}
)

package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shaggymission/adoption-web/internal/core/domain"
	"github.com/shaggymission/adoption-web/internal/core/service"
)

// stubDashboard records the actions it receives and answers every one
// with err.
type stubDashboard struct {
	calls  []string
	err    error
	pets   []domain.Pet
	banner string
}

func (s *stubDashboard) record(name string) error {
	s.calls = append(s.calls, name)
	return s.err
}

func (s *stubDashboard) Page(_ context.Context, _ *service.Session, actor service.Actor, notice string) service.DashboardPage {
	return service.DashboardPage{
		Actor:    actor,
		Notice:   notice,
		Sections: domain.VisibleSections(actor.Role),
		View: service.DashboardView{
			ActiveSection: domain.SectionDashboard,
			Pets:          domain.PetPage{Pets: s.pets, CurrentPage: 1, TotalPages: 1},
			Users:         domain.UserPage{Page: 1},
			RegisterForm:  service.EmptyPetForm(),
		},
		Banner:      s.banner,
		BannerFor:   service.PetBannerDuration,
		Tiers:       domain.DonationTiers,
		Statuses:    domain.HealthStatuses,
		CanEditPets: domain.Allows(actor.Role, domain.AffordanceEditPet),
		CanDelUsers: domain.Allows(actor.Role, domain.AffordanceDeleteUser),
		CanDecide:   domain.Allows(actor.Role, domain.AffordanceDecideAdoption),
	}
}

func (s *stubDashboard) Navigate(context.Context, *service.Session, service.Actor, domain.Section) error {
	return s.record("Navigate")
}

func (s *stubDashboard) PetsPage(context.Context, *service.Session, service.Actor, int) error {
	return s.record("PetsPage")
}

func (s *stubDashboard) UsersPage(context.Context, *service.Session, service.Actor, int) error {
	return s.record("UsersPage")
}

func (s *stubDashboard) Search(context.Context, *service.Session, service.Actor, string) error {
	return s.record("Search")
}

func (s *stubDashboard) ClearSearch(context.Context, *service.Session, service.Actor) error {
	return s.record("ClearSearch")
}

func (s *stubDashboard) RegisterPet(context.Context, *service.Session, service.Actor, service.PetForm) error {
	return s.record("RegisterPet")
}

func (s *stubDashboard) StartEdit(context.Context, *service.Session, service.Actor, string) error {
	return s.record("StartEdit")
}

func (s *stubDashboard) CancelEdit(context.Context, *service.Session, service.Actor) error {
	return s.record("CancelEdit")
}

func (s *stubDashboard) UpdatePet(context.Context, *service.Session, service.Actor, string, service.PetForm) error {
	return s.record("UpdatePet")
}

func (s *stubDashboard) DeletePet(context.Context, *service.Session, service.Actor, string) error {
	return s.record("DeletePet")
}

func (s *stubDashboard) DeleteUser(context.Context, *service.Session, service.Actor, string) error {
	return s.record("DeleteUser")
}

func (s *stubDashboard) OpenAdopt(context.Context, *service.Session, service.Actor, string) error {
	return s.record("OpenAdopt")
}

func (s *stubDashboard) CloseAdopt(context.Context, *service.Session, service.Actor) error {
	return s.record("CloseAdopt")
}

func (s *stubDashboard) SubmitAdoption(context.Context, *service.Session, service.Actor, string) error {
	return s.record("SubmitAdoption")
}

func (s *stubDashboard) DecideAdoption(context.Context, *service.Session, service.Actor, string, domain.Decision) error {
	return s.record("DecideAdoption")
}

var (
	adminID       = domain.Identity{UserID: "u1", FirstName: "Ana"}
	contributorID = domain.Identity{UserID: "u2", FirstName: "Bo"}
)

func TestDashboardHandler_Show_NoRole(t *testing.T) {
	e := newEcho(t)
	h := NewDashboardHandler(&stubDashboard{}, zerolog.Nop())

	c, rec, _ := newContext(e, httptest.NewRequest(http.MethodGet, "/dashboard", nil), adminID, domain.RoleNone)

	require.NoError(t, h.Show(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "No Role Assigned")
	assert.Contains(t, body, `action="/logout"`)
	assert.NotContains(t, body, "Manage Users")
}

func TestDashboardHandler_Show_RoleSections(t *testing.T) {
	tests := []struct {
		role      domain.Role
		id        domain.Identity
		wantAdmin bool
	}{
		{domain.RoleAdmin, adminID, true},
		{domain.RoleContributor, contributorID, false},
	}
	for _, tt := range tests {
		t.Run(string(tt.role), func(t *testing.T) {
			e := newEcho(t)
			h := NewDashboardHandler(&stubDashboard{}, zerolog.Nop())
			c, rec, _ := newContext(e, httptest.NewRequest(http.MethodGet, "/dashboard", nil), tt.id, tt.role)

			require.NoError(t, h.Show(c))
			body := rec.Body.String()
			for _, label := range []string{"Pets", "Register Pet", "Donate"} {
				assert.Contains(t, body, ">"+label+"</a>")
			}
			assert.Equal(t, tt.wantAdmin, strings.Contains(body, ">Manage Users</a>"))
			assert.Equal(t, tt.wantAdmin, strings.Contains(body, ">Adoption Requests</a>"))
			assert.Contains(t, body, "Welcome, "+tt.id.FirstName)
		})
	}
}

func TestDashboardHandler_Show_BannerDismissesItself(t *testing.T) {
	e := newEcho(t)
	h := NewDashboardHandler(&stubDashboard{banner: service.PetRegisteredMessage}, zerolog.Nop())
	c, rec, _ := newContext(e, httptest.NewRequest(http.MethodGet, "/dashboard", nil), contributorID, domain.RoleContributor)

	require.NoError(t, h.Show(c))
	body := rec.Body.String()
	assert.Contains(t, body, service.PetRegisteredMessage)
	assert.Contains(t, body, "@keyframes dismiss-banner")
	assert.Contains(t, body, "dismiss-banner 0s linear 3000ms forwards")
}

func TestDashboardHandler_Show_NoBannerNoDismissal(t *testing.T) {
	e := newEcho(t)
	h := NewDashboardHandler(&stubDashboard{}, zerolog.Nop())
	c, rec, _ := newContext(e, httptest.NewRequest(http.MethodGet, "/dashboard", nil), contributorID, domain.RoleContributor)

	require.NoError(t, h.Show(c))
	assert.NotContains(t, rec.Body.String(), "dismiss-banner")
}

func TestDashboardHandler_ActionRedirects(t *testing.T) {
	e := newEcho(t)
	stub := &stubDashboard{}
	h := NewDashboardHandler(stub, zerolog.Nop())

	c, rec, _ := newContext(e, httptest.NewRequest(http.MethodGet, "/dashboard/pets", nil), adminID, domain.RoleAdmin)
	c.SetParamNames("section")
	c.SetParamValues("pets")

	require.NoError(t, h.Navigate(c))
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/dashboard", rec.Header().Get(echo.HeaderLocation))
	assert.Equal(t, []string{"Navigate"}, stub.calls)
}

func TestDashboardHandler_InFlightSetsNotice(t *testing.T) {
	e := newEcho(t)
	stub := &stubDashboard{err: domain.ErrRequestInFlight}
	h := NewDashboardHandler(stub, zerolog.Nop())

	c, rec, sess := newContext(e, formRequest("/dashboard/pets/p1/delete", url.Values{}), adminID, domain.RoleAdmin)
	c.SetParamNames("id")
	c.SetParamValues("p1")

	require.NoError(t, h.DeletePet(c))
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, service.InFlightMessage, sess.PopFlash(context.Background(), service.FlashNotice))
}

func TestDashboardHandler_ErrorsPropagate(t *testing.T) {
	e := newEcho(t)
	h := NewDashboardHandler(&stubDashboard{err: domain.ErrForbidden}, zerolog.Nop())

	c, _, _ := newContext(e, formRequest("/dashboard/users/u9/delete", url.Values{}), contributorID, domain.RoleContributor)
	c.SetParamNames("id")
	c.SetParamValues("u9")

	err := h.DeleteUser(c)
	assert.True(t, errors.Is(err, domain.ErrForbidden))
}

func TestDashboardHandler_RegisterPet_Invalid(t *testing.T) {
	e := newEcho(t)
	stub := &stubDashboard{}
	h := NewDashboardHandler(stub, zerolog.Nop())

	req := formRequest("/dashboard/pets", url.Values{
		"breed":        {"Beagle"},
		"healthStatus": {"Good"},
		"location":     {"Lima"},
	})
	c, rec, _ := newContext(e, req, contributorID, domain.RoleContributor)

	require.NoError(t, h.RegisterPet(c))
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "name is required")
	assert.Contains(t, body, `value="Beagle"`)
	assert.Empty(t, stub.calls)
}

func TestDashboardHandler_RegisterPet_Valid(t *testing.T) {
	e := newEcho(t)
	stub := &stubDashboard{}
	h := NewDashboardHandler(stub, zerolog.Nop())

	req := formRequest("/dashboard/pets", url.Values{
		"name":         {"Rex"},
		"breed":        {"Beagle"},
		"age":          {"3"},
		"healthStatus": {"Needs Care"},
		"location":     {"Lima"},
		"images":       {""},
	})
	c, rec, _ := newContext(e, req, contributorID, domain.RoleContributor)

	require.NoError(t, h.RegisterPet(c))
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, []string{"RegisterPet"}, stub.calls)
}

func TestDashboardHandler_BadParams(t *testing.T) {
	e := newEcho(t)
	h := NewDashboardHandler(&stubDashboard{}, zerolog.Nop())

	c, _, _ := newContext(e, formRequest("/dashboard/adoption-requests/r1/maybe", url.Values{}), adminID, domain.RoleAdmin)
	c.SetParamNames("id", "decision")
	c.SetParamValues("r1", "maybe")
	assert.ErrorIs(t, h.DecideAdoption(c), echo.ErrNotFound)

	c, _, _ = newContext(e, httptest.NewRequest(http.MethodGet, "/dashboard/pets/page/x", nil), adminID, domain.RoleAdmin)
	c.SetParamNames("page")
	c.SetParamValues("x")
	var he *echo.HTTPError
	require.ErrorAs(t, h.PetsPage(c), &he)
	assert.Equal(t, http.StatusBadRequest, he.Code)
}

func TestDashboardHandler_Show_AdminControls(t *testing.T) {
	e := newEcho(t)
	stub := &stubDashboard{pets: []domain.Pet{{ID: "p1", Name: "Rex", Breed: "Beagle"}}}
	h := NewDashboardHandler(stub, zerolog.Nop())

	for role, want := range map[domain.Role]bool{domain.RoleAdmin: true, domain.RoleContributor: false} {
		c, rec, _ := newContext(e, httptest.NewRequest(http.MethodGet, "/dashboard", nil), adminID, role)
		// Render the pets section directly through the invalid path, which
		// lets the test pick the active section.
		require.NoError(t, h.invalid(c, nil, func(v *service.DashboardView) { v.ActiveSection = domain.SectionPets }))
		body := rec.Body.String()
		assert.Contains(t, body, "Rex")
		assert.Equal(t, want, strings.Contains(body, `/dashboard/pets/p1/edit`), "edit control for %s", role)
		assert.Equal(t, want, strings.Contains(body, `/dashboard/pets/p1/delete`), "delete control for %s", role)
	}
}

package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/shaggymission/adoption-web/internal/core/domain"
	"github.com/shaggymission/adoption-web/internal/core/ports"
)

const (
	dashboardView = "dashboard"

	FlashPetRegistered = "pet-registered"
	FlashNotice        = "notice"

	PetRegisteredMessage     = "Pet registered successfully!"
	PetBannerDuration        = 3 * time.Second
	AdoptionSubmittedMessage = "Adoption request submitted successfully!"
)

// Actor is the signed-in user acting on the dashboard.
type Actor struct {
	Identity domain.Identity
	Role     domain.Role
}

// DashboardView is the dashboard state kept in the session between
// requests.
type DashboardView struct {
	ActiveSection domain.Section           `json:"activeSection"`
	Pets          domain.PetPage           `json:"pets"`
	Users         domain.UserPage          `json:"users"`
	Requests      []domain.AdoptionRequest `json:"requests"`
	SearchBreed   string                   `json:"searchBreed,omitempty"`
	SearchResults []domain.Pet             `json:"searchResults,omitempty"`
	RegisterForm  PetForm                  `json:"registerForm"`
	EditingPetID  string                   `json:"editingPetId,omitempty"`
	EditForm      PetForm                  `json:"editForm"`
	AdoptPet      *domain.Pet              `json:"adoptPet,omitempty"`
}

func newDashboardView() DashboardView {
	return DashboardView{
		ActiveSection: domain.SectionDashboard,
		Pets:          domain.PetPage{CurrentPage: 1, TotalPages: 1},
		Users:         domain.UserPage{Page: 1},
		RegisterForm:  EmptyPetForm(),
	}
}

// DashboardPage is everything the dashboard template needs.
type DashboardPage struct {
	Actor       Actor
	Notice      string
	Sections    []domain.Section
	View        DashboardView
	Banner      string
	BannerFor   time.Duration
	Alert       string
	Tiers       []domain.DonationTier
	Statuses    []domain.HealthStatus
	FormErrors  map[string]string
	CanEditPets bool
	CanDelUsers bool
	CanDecide   bool
}

// DashboardService implements every dashboard action. Each action loads the
// session's view, applies the change, and saves it back unless the request
// was cancelled in the meantime.
type DashboardService struct {
	pets      ports.PetGateway
	users     ports.UserGateway
	adoptions ports.AdoptionGateway
	decisions ports.DecisionSubmitter
	guard     ports.SubmitGuard
	log       zerolog.Logger
	now       func() time.Time
}

func NewDashboardService(
	pets ports.PetGateway,
	users ports.UserGateway,
	adoptions ports.AdoptionGateway,
	decisions ports.DecisionSubmitter,
	guard ports.SubmitGuard,
	log zerolog.Logger,
) *DashboardService {
	return &DashboardService{
		pets:      pets,
		users:     users,
		adoptions: adoptions,
		decisions: decisions,
		guard:     guard,
		log:       log.With().Str("component", "dashboard").Logger(),
		now:       time.Now,
	}
}

// Page assembles the render model for the current view.
func (s *DashboardService) Page(ctx context.Context, sess *Session, actor Actor, notice string) DashboardPage {
	view := s.load(ctx, sess, actor)
	return DashboardPage{
		Actor:       actor,
		Notice:      notice,
		Sections:    domain.VisibleSections(actor.Role),
		View:        view,
		Banner:      sess.Flash(ctx, FlashPetRegistered),
		BannerFor:   PetBannerDuration,
		Alert:       sess.PopFlash(ctx, FlashNotice),
		Tiers:       domain.DonationTiers,
		Statuses:    domain.HealthStatuses,
		CanEditPets: domain.Allows(actor.Role, domain.AffordanceEditPet),
		CanDelUsers: domain.Allows(actor.Role, domain.AffordanceDeleteUser),
		CanDecide:   domain.Allows(actor.Role, domain.AffordanceDecideAdoption),
	}
}

func (s *DashboardService) load(ctx context.Context, sess *Session, actor Actor) DashboardView {
	view := newDashboardView()
	if !sess.LoadView(ctx, dashboardView, &view) {
		return newDashboardView()
	}
	// The role may have changed since the view was saved.
	if !domain.CanView(actor.Role, view.ActiveSection) {
		view.ActiveSection = domain.SectionDashboard
	}
	return view
}

func (s *DashboardService) save(ctx context.Context, sess *Session, view DashboardView) error {
	if canceled(ctx) {
		return ctx.Err()
	}
	if err := sess.SaveView(ctx, dashboardView, view); err != nil {
		return fmt.Errorf("save dashboard view: %w", err)
	}
	return nil
}

// Navigate switches the active section. Entering a list section resets its
// pagination and fetches its first page.
func (s *DashboardService) Navigate(ctx context.Context, sess *Session, actor Actor, section domain.Section) error {
	if !domain.CanView(actor.Role, section) {
		return domain.ErrForbidden
	}
	view := s.load(ctx, sess, actor)
	view.ActiveSection = section
	view.EditingPetID = ""
	view.AdoptPet = nil

	switch section {
	case domain.SectionPets:
		s.fetchPets(ctx, sess, &view, 1)
	case domain.SectionUsers:
		s.fetchUsers(ctx, sess, &view, 1)
	case domain.SectionAdoptionRequests:
		s.fetchRequests(ctx, sess, &view)
	}
	return s.save(ctx, sess, view)
}

// PetsPage moves the pet list to page. Out of range pages are ignored.
func (s *DashboardService) PetsPage(ctx context.Context, sess *Session, actor Actor, page int) error {
	if !domain.CanView(actor.Role, domain.SectionPets) {
		return domain.ErrForbidden
	}
	view := s.load(ctx, sess, actor)
	if page < 1 || page > max(view.Pets.TotalPages, 1) {
		return nil
	}
	s.fetchPets(ctx, sess, &view, page)
	return s.save(ctx, sess, view)
}

// UsersPage moves the user list to page. Moving forward is refused once the
// directory reports the last page.
func (s *DashboardService) UsersPage(ctx context.Context, sess *Session, actor Actor, page int) error {
	if !domain.CanView(actor.Role, domain.SectionUsers) {
		return domain.ErrForbidden
	}
	view := s.load(ctx, sess, actor)
	cur := view.Users
	if page < 1 || (page > cur.Page && !cur.HasNext()) {
		return nil
	}
	s.fetchUsers(ctx, sess, &view, page)
	return s.save(ctx, sess, view)
}

// Search looks pets up by breed. Blank input sends nothing and changes
// nothing.
func (s *DashboardService) Search(ctx context.Context, sess *Session, actor Actor, breed string) error {
	if !domain.CanView(actor.Role, domain.SectionPets) {
		return domain.ErrForbidden
	}
	breed = strings.TrimSpace(breed)
	if breed == "" {
		return nil
	}
	view := s.load(ctx, sess, actor)

	var found []domain.Pet
	err := inFlight(ctx, s.guard, s.log, sess.ID(), "search_pets", func() error {
		var err error
		found, err = s.pets.SearchPetsByBreed(ctx, breed)
		return err
	})
	if errors.Is(err, domain.ErrRequestInFlight) {
		return err
	}
	if canceled(ctx) {
		return ctx.Err()
	}
	view.SearchBreed = breed
	if err != nil {
		s.log.Warn().Err(err).Str("breed", breed).Msg("pet search failed")
		view.SearchResults = nil
	} else {
		view.SearchResults = found
	}
	return s.save(ctx, sess, view)
}

func (s *DashboardService) ClearSearch(ctx context.Context, sess *Session, actor Actor) error {
	view := s.load(ctx, sess, actor)
	view.SearchBreed = ""
	view.SearchResults = nil
	return s.save(ctx, sess, view)
}

// RegisterPet submits the register form. On success the form resets, a
// short-lived banner is set, and the pet list refreshes when it is on
// screen. Failures keep the typed values.
func (s *DashboardService) RegisterPet(ctx context.Context, sess *Session, actor Actor, form PetForm) error {
	if !domain.CanView(actor.Role, domain.SectionRegisterPet) {
		return domain.ErrForbidden
	}
	view := s.load(ctx, sess, actor)

	err := inFlight(ctx, s.guard, s.log, sess.ID(), "register_pet", func() error {
		return s.pets.RegisterPet(ctx, form.Input())
	})
	if errors.Is(err, domain.ErrRequestInFlight) {
		return err
	}
	if canceled(ctx) {
		return ctx.Err()
	}
	if err != nil {
		s.log.Error().Err(err).Str("name", form.Name).Msg("pet registration failed")
		view.RegisterForm = form
		return s.save(ctx, sess, view)
	}

	view.RegisterForm = EmptyPetForm()
	if err := sess.SetFlash(ctx, FlashPetRegistered, PetRegisteredMessage, PetBannerDuration); err != nil {
		s.log.Warn().Err(err).Msg("setting banner failed")
	}
	if view.ActiveSection == domain.SectionPets {
		s.fetchPets(ctx, sess, &view, view.Pets.CurrentPage)
	}
	return s.save(ctx, sess, view)
}

// StartEdit opens the edit form for a pet on the current page.
func (s *DashboardService) StartEdit(ctx context.Context, sess *Session, actor Actor, petID string) error {
	if !domain.Allows(actor.Role, domain.AffordanceEditPet) {
		return domain.ErrForbidden
	}
	view := s.load(ctx, sess, actor)
	pet, ok := view.Pets.Find(petID)
	if !ok {
		return domain.ErrPetNotFound
	}
	view.EditingPetID = pet.ID
	view.EditForm = PetFormFrom(pet)
	return s.save(ctx, sess, view)
}

func (s *DashboardService) CancelEdit(ctx context.Context, sess *Session, actor Actor) error {
	view := s.load(ctx, sess, actor)
	view.EditingPetID = ""
	view.EditForm = PetForm{}
	return s.save(ctx, sess, view)
}

// UpdatePet saves the edit form. Success closes it and refreshes the page;
// failure leaves it open with the typed values.
func (s *DashboardService) UpdatePet(ctx context.Context, sess *Session, actor Actor, petID string, form PetForm) error {
	if !domain.Allows(actor.Role, domain.AffordanceEditPet) {
		return domain.ErrForbidden
	}
	view := s.load(ctx, sess, actor)

	err := inFlight(ctx, s.guard, s.log, sess.ID(), "update_pet", func() error {
		return s.pets.UpdatePet(ctx, petID, form.Input())
	})
	if errors.Is(err, domain.ErrRequestInFlight) {
		return err
	}
	if canceled(ctx) {
		return ctx.Err()
	}
	if err != nil {
		s.log.Error().Err(err).Str("pet_id", petID).Msg("pet update failed")
		view.EditingPetID = petID
		view.EditForm = form
		return s.save(ctx, sess, view)
	}

	view.EditingPetID = ""
	view.EditForm = PetForm{}
	s.fetchPets(ctx, sess, &view, view.Pets.CurrentPage)
	return s.save(ctx, sess, view)
}

// DeletePet removes a pet and refreshes the current page.
func (s *DashboardService) DeletePet(ctx context.Context, sess *Session, actor Actor, petID string) error {
	if !domain.Allows(actor.Role, domain.AffordanceDeletePet) {
		return domain.ErrForbidden
	}
	view := s.load(ctx, sess, actor)

	err := inFlight(ctx, s.guard, s.log, sess.ID(), "delete_pet", func() error {
		return s.pets.DeletePet(ctx, petID)
	})
	if errors.Is(err, domain.ErrRequestInFlight) {
		return err
	}
	if canceled(ctx) {
		return ctx.Err()
	}
	if err != nil {
		s.log.Error().Err(err).Str("pet_id", petID).Msg("pet delete failed")
		return nil
	}
	s.fetchPets(ctx, sess, &view, view.Pets.CurrentPage)
	return s.save(ctx, sess, view)
}

// DeleteUser removes a user and refreshes the current user page.
func (s *DashboardService) DeleteUser(ctx context.Context, sess *Session, actor Actor, userID string) error {
	if !domain.Allows(actor.Role, domain.AffordanceDeleteUser) {
		return domain.ErrForbidden
	}
	view := s.load(ctx, sess, actor)

	err := inFlight(ctx, s.guard, s.log, sess.ID(), "delete_user", func() error {
		return s.users.DeleteUser(ctx, userID)
	})
	if errors.Is(err, domain.ErrRequestInFlight) {
		return err
	}
	if canceled(ctx) {
		return ctx.Err()
	}
	if err != nil {
		s.log.Error().Err(err).Str("user_id", userID).Msg("user delete failed")
		return nil
	}
	s.fetchUsers(ctx, sess, &view, view.Users.Page)
	return s.save(ctx, sess, view)
}

// OpenAdopt opens the adopt modal for a pet from the list or the search
// results.
func (s *DashboardService) OpenAdopt(ctx context.Context, sess *Session, actor Actor, petID string) error {
	if !domain.CanView(actor.Role, domain.SectionPets) {
		return domain.ErrForbidden
	}
	view := s.load(ctx, sess, actor)
	pet, ok := view.Pets.Find(petID)
	if !ok {
		pet, ok = (domain.PetPage{Pets: view.SearchResults}).Find(petID)
	}
	if !ok {
		return domain.ErrPetNotFound
	}
	view.AdoptPet = &pet
	return s.save(ctx, sess, view)
}

func (s *DashboardService) CloseAdopt(ctx context.Context, sess *Session, actor Actor) error {
	view := s.load(ctx, sess, actor)
	view.AdoptPet = nil
	return s.save(ctx, sess, view)
}

// SubmitAdoption sends the adopt modal. Success closes the modal and sets a
// confirmation; failure leaves it open.
func (s *DashboardService) SubmitAdoption(ctx context.Context, sess *Session, actor Actor, message string) error {
	view := s.load(ctx, sess, actor)
	if view.AdoptPet == nil {
		return domain.ErrNoPetSelected
	}
	petID := view.AdoptPet.ID

	err := inFlight(ctx, s.guard, s.log, sess.ID(), "submit_adoption", func() error {
		return s.adoptions.SubmitAdoptionRequest(ctx, ports.AdoptionSubmission{
			UserID:  actor.Identity.UserID,
			PetID:   petID,
			Message: message,
		})
	})
	if errors.Is(err, domain.ErrRequestInFlight) {
		return err
	}
	if canceled(ctx) {
		return ctx.Err()
	}
	if err != nil {
		s.log.Error().Err(err).Str("pet_id", petID).Msg("adoption request failed")
		return nil
	}

	view.AdoptPet = nil
	if err := sess.SetFlash(ctx, FlashNotice, AdoptionSubmittedMessage, 0); err != nil {
		s.log.Warn().Err(err).Msg("setting notice failed")
	}
	return s.save(ctx, sess, view)
}

// DecideAdoption approves or rejects a pending request in the listed
// requests, then hands the decision to the decision sink. Sink failures are
// logged and do not undo the change.
func (s *DashboardService) DecideAdoption(ctx context.Context, sess *Session, actor Actor, requestID string, d domain.Decision) error {
	if !domain.Allows(actor.Role, domain.AffordanceDecideAdoption) {
		return domain.ErrForbidden
	}
	view := s.load(ctx, sess, actor)

	idx := -1
	for i := range view.Requests {
		if view.Requests[i].ID == requestID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return domain.ErrAdoptionRequestNotFound
	}
	if err := view.Requests[idx].Decide(d); err != nil {
		return err
	}
	if err := s.save(ctx, sess, view); err != nil {
		return err
	}
	if err := sess.SetFlash(ctx, FlashNotice, fmt.Sprintf("Adoption request %s successfully!", d.PastTense()), 0); err != nil {
		s.log.Warn().Err(err).Msg("setting notice failed")
	}

	decision := domain.AdoptionDecision{
		RequestID: requestID,
		Status:    d.Status(),
		DecidedBy: actor.Identity.UserID,
		DecidedAt: s.now(),
	}
	if err := s.decisions.SubmitDecision(context.WithoutCancel(ctx), decision); err != nil {
		s.log.Error().Err(err).Str("request_id", requestID).Msg("decision submission failed")
	}
	return nil
}

// fetchPets replaces the pet page on success and leaves it untouched on
// failure.
func (s *DashboardService) fetchPets(ctx context.Context, sess *Session, view *DashboardView, page int) {
	var got domain.PetPage
	err := inFlight(ctx, s.guard, s.log, sess.ID(), "list_pets", func() error {
		var err error
		got, err = s.pets.ListPets(ctx, page)
		return err
	})
	if err != nil || canceled(ctx) {
		s.logFetch(err, "list_pets")
		return
	}
	view.Pets = got
}

func (s *DashboardService) fetchUsers(ctx context.Context, sess *Session, view *DashboardView, page int) {
	var got domain.UserPage
	err := inFlight(ctx, s.guard, s.log, sess.ID(), "list_users", func() error {
		var err error
		got, err = s.users.ListUsers(ctx, page)
		return err
	})
	if err != nil || canceled(ctx) {
		s.logFetch(err, "list_users")
		return
	}
	view.Users = got
}

func (s *DashboardService) fetchRequests(ctx context.Context, sess *Session, view *DashboardView) {
	var got []domain.AdoptionRequest
	err := inFlight(ctx, s.guard, s.log, sess.ID(), "list_adoption_requests", func() error {
		var err error
		got, err = s.adoptions.ListAdoptionRequests(ctx)
		return err
	})
	if err != nil || canceled(ctx) {
		s.logFetch(err, "list_adoption_requests")
		return
	}
	view.Requests = got
}

func (s *DashboardService) logFetch(err error, op string) {
	if err == nil {
		return
	}
	if errors.Is(err, domain.ErrRequestInFlight) {
		s.log.Debug().Str("operation", op).Msg("list fetch already in flight")
		return
	}
	s.log.Warn().Err(err).Str("operation", op).Msg("list fetch failed; keeping previous list")
}

package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/shaggymission/adoption-web/internal/api/middleware"
	"github.com/shaggymission/adoption-web/internal/api/view"
	"github.com/shaggymission/adoption-web/internal/core/domain"
	"github.com/shaggymission/adoption-web/internal/core/service"
)

// DashboardService is the set of dashboard actions.
type DashboardService interface {
	Page(ctx context.Context, sess *service.Session, actor service.Actor, notice string) service.DashboardPage
	Navigate(ctx context.Context, sess *service.Session, actor service.Actor, section domain.Section) error
	PetsPage(ctx context.Context, sess *service.Session, actor service.Actor, page int) error
	UsersPage(ctx context.Context, sess *service.Session, actor service.Actor, page int) error
	Search(ctx context.Context, sess *service.Session, actor service.Actor, breed string) error
	ClearSearch(ctx context.Context, sess *service.Session, actor service.Actor) error
	RegisterPet(ctx context.Context, sess *service.Session, actor service.Actor, form service.PetForm) error
	StartEdit(ctx context.Context, sess *service.Session, actor service.Actor, petID string) error
	CancelEdit(ctx context.Context, sess *service.Session, actor service.Actor) error
	UpdatePet(ctx context.Context, sess *service.Session, actor service.Actor, petID string, form service.PetForm) error
	DeletePet(ctx context.Context, sess *service.Session, actor service.Actor, petID string) error
	DeleteUser(ctx context.Context, sess *service.Session, actor service.Actor, userID string) error
	OpenAdopt(ctx context.Context, sess *service.Session, actor service.Actor, petID string) error
	CloseAdopt(ctx context.Context, sess *service.Session, actor service.Actor) error
	SubmitAdoption(ctx context.Context, sess *service.Session, actor service.Actor, message string) error
	DecideAdoption(ctx context.Context, sess *service.Session, actor service.Actor, requestID string, d domain.Decision) error
}

// DashboardHandler renders the dashboard and turns every action into a
// redirect back to it.
type DashboardHandler struct {
	dashboard DashboardService
	log       zerolog.Logger
}

func NewDashboardHandler(dashboard DashboardService, log zerolog.Logger) *DashboardHandler {
	return &DashboardHandler{dashboard: dashboard, log: log}
}

type noRolePage struct {
	Name   string
	Notice string
}

// Show renders the sections of the resolved role, or the no-role screen.
func (h *DashboardHandler) Show(c echo.Context) error {
	actor := middleware.ActorFrom(c)
	notice := middleware.RoleNoticeFrom(c)
	if actor.Role == domain.RoleNone {
		return render(c, http.StatusOK, view.PageNoRole, view.Page{
			Title: "Dashboard",
			Data:  noRolePage{Name: actor.Identity.DisplayName("there"), Notice: notice},
		})
	}

	page := h.dashboard.Page(c.Request().Context(), middleware.SessionFrom(c), actor, notice)
	if gone(c) {
		return nil
	}
	return render(c, http.StatusOK, view.PageDashboard, view.Page{Title: "Dashboard", Data: page})
}

func (h *DashboardHandler) Navigate(c echo.Context) error {
	section, ok := domain.ParseSection(c.Param("section"))
	if !ok {
		return echo.ErrNotFound
	}
	return h.done(c, h.dashboard.Navigate(c.Request().Context(), middleware.SessionFrom(c), middleware.ActorFrom(c), section))
}

func (h *DashboardHandler) PetsPage(c echo.Context) error {
	page, err := pageParam(c)
	if err != nil {
		return err
	}
	return h.done(c, h.dashboard.PetsPage(c.Request().Context(), middleware.SessionFrom(c), middleware.ActorFrom(c), page))
}

func (h *DashboardHandler) UsersPage(c echo.Context) error {
	page, err := pageParam(c)
	if err != nil {
		return err
	}
	return h.done(c, h.dashboard.UsersPage(c.Request().Context(), middleware.SessionFrom(c), middleware.ActorFrom(c), page))
}

func (h *DashboardHandler) Search(c echo.Context) error {
	var req searchForm
	if err := c.Bind(&req); err != nil {
		return errInvalidForm
	}
	if err := c.Validate(&req); err != nil {
		fields, ok := fieldErrors(err)
		if !ok {
			return err
		}
		return h.invalid(c, fields, nil)
	}
	return h.done(c, h.dashboard.Search(c.Request().Context(), middleware.SessionFrom(c), middleware.ActorFrom(c), req.Breed))
}

func (h *DashboardHandler) ClearSearch(c echo.Context) error {
	return h.done(c, h.dashboard.ClearSearch(c.Request().Context(), middleware.SessionFrom(c), middleware.ActorFrom(c)))
}

func (h *DashboardHandler) RegisterPet(c echo.Context) error {
	var form service.PetForm
	if err := c.Bind(&form); err != nil {
		return errInvalidForm
	}
	if err := c.Validate(&form); err != nil {
		fields, ok := fieldErrors(err)
		if !ok {
			return err
		}
		return h.invalid(c, fields, func(v *service.DashboardView) {
			v.ActiveSection = domain.SectionRegisterPet
			v.RegisterForm = form
		})
	}
	return h.done(c, h.dashboard.RegisterPet(c.Request().Context(), middleware.SessionFrom(c), middleware.ActorFrom(c), form))
}

func (h *DashboardHandler) StartEdit(c echo.Context) error {
	return h.done(c, h.dashboard.StartEdit(c.Request().Context(), middleware.SessionFrom(c), middleware.ActorFrom(c), c.Param("id")))
}

func (h *DashboardHandler) CancelEdit(c echo.Context) error {
	return h.done(c, h.dashboard.CancelEdit(c.Request().Context(), middleware.SessionFrom(c), middleware.ActorFrom(c)))
}

func (h *DashboardHandler) UpdatePet(c echo.Context) error {
	petID := c.Param("id")
	var form service.PetForm
	if err := c.Bind(&form); err != nil {
		return errInvalidForm
	}
	if err := c.Validate(&form); err != nil {
		fields, ok := fieldErrors(err)
		if !ok {
			return err
		}
		return h.invalid(c, fields, func(v *service.DashboardView) {
			v.ActiveSection = domain.SectionPets
			v.EditingPetID = petID
			v.EditForm = form
		})
	}
	return h.done(c, h.dashboard.UpdatePet(c.Request().Context(), middleware.SessionFrom(c), middleware.ActorFrom(c), petID, form))
}

func (h *DashboardHandler) DeletePet(c echo.Context) error {
	return h.done(c, h.dashboard.DeletePet(c.Request().Context(), middleware.SessionFrom(c), middleware.ActorFrom(c), c.Param("id")))
}

func (h *DashboardHandler) DeleteUser(c echo.Context) error {
	return h.done(c, h.dashboard.DeleteUser(c.Request().Context(), middleware.SessionFrom(c), middleware.ActorFrom(c), c.Param("id")))
}

func (h *DashboardHandler) OpenAdopt(c echo.Context) error {
	return h.done(c, h.dashboard.OpenAdopt(c.Request().Context(), middleware.SessionFrom(c), middleware.ActorFrom(c), c.Param("id")))
}

func (h *DashboardHandler) CloseAdopt(c echo.Context) error {
	return h.done(c, h.dashboard.CloseAdopt(c.Request().Context(), middleware.SessionFrom(c), middleware.ActorFrom(c)))
}

func (h *DashboardHandler) SubmitAdoption(c echo.Context) error {
	var req adoptionForm
	if err := c.Bind(&req); err != nil {
		return errInvalidForm
	}
	if err := c.Validate(&req); err != nil {
		fields, ok := fieldErrors(err)
		if !ok {
			return err
		}
		return h.invalid(c, fields, nil)
	}
	return h.done(c, h.dashboard.SubmitAdoption(c.Request().Context(), middleware.SessionFrom(c), middleware.ActorFrom(c), req.Message))
}

func (h *DashboardHandler) DecideAdoption(c echo.Context) error {
	d, ok := domain.ParseDecision(c.Param("decision"))
	if !ok {
		return echo.ErrNotFound
	}
	return h.done(c, h.dashboard.DecideAdoption(c.Request().Context(), middleware.SessionFrom(c), middleware.ActorFrom(c), c.Param("id"), d))
}

// done finishes an action: back to the dashboard on success or when the
// same action is already running, nothing at all when the browser left.
func (h *DashboardHandler) done(c echo.Context, err error) error {
	switch {
	case err == nil:
	case gone(c):
		return nil
	case errors.Is(err, domain.ErrRequestInFlight):
		ctx := c.Request().Context()
		if ferr := middleware.SessionFrom(c).SetFlash(ctx, service.FlashNotice, service.InFlightMessage, 0); ferr != nil {
			h.log.Warn().Err(ferr).Msg("setting in-flight notice failed")
		}
	default:
		return err
	}
	return c.Redirect(http.StatusSeeOther, service.PathDashboard)
}

// invalid re-renders the dashboard with field errors and the typed values.
func (h *DashboardHandler) invalid(c echo.Context, fields map[string]string, apply func(*service.DashboardView)) error {
	actor := middleware.ActorFrom(c)
	page := h.dashboard.Page(c.Request().Context(), middleware.SessionFrom(c), actor, middleware.RoleNoticeFrom(c))
	if apply != nil {
		apply(&page.View)
	}
	page.FormErrors = fields
	return render(c, http.StatusUnprocessableEntity, view.PageDashboard, view.Page{Title: "Dashboard", Data: page})
}

func pageParam(c echo.Context) (int, error) {
	page, err := strconv.Atoi(c.Param("page"))
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid page number")
	}
	return page, nil
}

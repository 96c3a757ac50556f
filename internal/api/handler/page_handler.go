package handler

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/shaggymission/adoption-web/internal/api/middleware"
	"github.com/shaggymission/adoption-web/internal/api/view"
	"github.com/shaggymission/adoption-web/internal/core/domain"
	"github.com/shaggymission/adoption-web/internal/core/service"
)

type CollaboratorService interface {
	Page(ctx context.Context, id domain.Identity, section service.CollaboratorSection) (service.CollaboratorPage, error)
}

// PageHandler serves the home, welcome, and collaborator pages.
type PageHandler struct {
	collaborators CollaboratorService
}

func NewPageHandler(collaborators CollaboratorService) *PageHandler {
	return &PageHandler{collaborators: collaborators}
}

func (h *PageHandler) Home(c echo.Context) error {
	return render(c, http.StatusOK, view.PageHome, view.Page{})
}

type welcomePage struct {
	Name string
}

func (h *PageHandler) Welcome(c echo.Context) error {
	id, _ := middleware.IdentityFrom(c)
	return render(c, http.StatusOK, view.PageWelcome, view.Page{
		Title: "Welcome",
		Data:  welcomePage{Name: id.DisplayName("Collaborator")},
	})
}

// Collaborator renders the tab named by the section query parameter.
func (h *PageHandler) Collaborator(c echo.Context) error {
	id, _ := middleware.IdentityFrom(c)
	section := service.ParseCollaboratorSection(c.QueryParam("section"))

	page, err := h.collaborators.Page(c.Request().Context(), id, section)
	if err != nil {
		if gone(c) {
			return nil
		}
		return err
	}
	return render(c, http.StatusOK, view.PageCollaborator, view.Page{Title: "Collaborator", Data: page})
}

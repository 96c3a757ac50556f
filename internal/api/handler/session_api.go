package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/shaggymission/adoption-web/internal/api/middleware"
	"github.com/shaggymission/adoption-web/internal/core/domain"
)

type SessionAPIHandler struct{}

func NewSessionAPIHandler() *SessionAPIHandler {
	return &SessionAPIHandler{}
}

type sessionResponse struct {
	Identity    domain.Identity     `json:"identity"`
	Role        domain.Role         `json:"role"`
	Sections    []domain.Section    `json:"sections"`
	Affordances []domain.Affordance `json:"affordances"`
	Notice      string              `json:"notice,omitempty"`
}

// Get describes the signed-in session: who the user is, the role resolved
// for this request, and what that role may see and do.
//
// @Summary      Current session
// @Tags         session
// @Produce      json
// @Success      200  {object}  sessionResponse
// @Failure      401  {object}  map[string]string
// @Router       /api/v1/session [get]
func (h *SessionAPIHandler) Get(c echo.Context) error {
	id, _ := middleware.IdentityFrom(c)
	role := middleware.RoleFrom(c)

	sections := domain.VisibleSections(role)
	if sections == nil {
		sections = []domain.Section{}
	}

	return c.JSON(http.StatusOK, sessionResponse{
		Identity:    id,
		Role:        role,
		Sections:    sections,
		Affordances: domain.Affordances(role),
		Notice:      middleware.RoleNoticeFrom(c),
	})
}

package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/blendpos/pos-backend/internal/core/ports"
)

// RoleHandler serves the read-mostly role catalog.
type RoleHandler struct {
	roles ports.RoleService
}

func NewRoleHandler(roles ports.RoleService) *RoleHandler {
	return &RoleHandler{roles: roles}
}

// List returns the role catalog.
//
// @Summary      List roles
// @Tags         roles
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  envelope{data=[]domain.Role}
// @Failure      401  {object}  envelope
// @Failure      403  {object}  envelope
// @Router       /api/roles [get]
func (h *RoleHandler) List(c echo.Context) error {
	roles, err := h.roles.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, envelope{Success: true, Data: roles})
}

package handlers

import (
	"github.com/gin-gonic/gin"

	domain "github.com/BruksfildServices01/team-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/team-scheduler/internal/dto"
	"github.com/BruksfildServices01/team-scheduler/internal/httperr"
	"github.com/BruksfildServices01/team-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/team-scheduler/internal/middleware"
)

type MeHandler struct {
	directory domain.UserDirectory
}

func NewMeHandler(directory domain.UserDirectory) *MeHandler {
	return &MeHandler{directory: directory}
}

func (h *MeHandler) GetMe(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		httperr.Unauthorized(c, "user_not_in_context", "Failed to authenticate")
		return
	}

	u, err := h.directory.FindByID(c.Request.Context(), userID)
	if err != nil {
		writeError(c, err)
		return
	}

	httpresp.OK(c, "Current user", dto.NewUserDTO(u))
}

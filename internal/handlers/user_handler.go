package handlers

import (
	"github.com/gin-gonic/gin"

	domain "github.com/BruksfildServices01/team-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/team-scheduler/internal/dto"
	"github.com/BruksfildServices01/team-scheduler/internal/httpresp"
)

type UserHandler struct {
	directory domain.UserDirectory
}

func NewUserHandler(directory domain.UserDirectory) *UserHandler {
	return &UserHandler{directory: directory}
}

func (h *UserHandler) List(c *gin.Context) {
	users, err := h.directory.ListUsers(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}

	out := make([]dto.UserDTO, 0, len(users))
	for i := range users {
		out = append(out, dto.NewUserDTO(&users[i]))
	}

	httpresp.OK(c, "Users retrieved successfully", out)
}

package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/team-scheduler/internal/dto"
	"github.com/BruksfildServices01/team-scheduler/internal/httperr"
	"github.com/BruksfildServices01/team-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/team-scheduler/internal/usecase/user"
)

type AuthHandler struct {
	users *user.Service
}

func NewAuthHandler(users *user.Service) *AuthHandler {
	return &AuthHandler{users: users}
}

// --------- Requests ---------

type RegisterRequest struct {
	Name     string `json:"name" binding:"required,max=100"`
	Handle   string `json:"handle" binding:"required,min=2,max=100"`
	Timezone string `json:"timezone" binding:"required,iana_tz"`
	Password string `json:"password" binding:"required,min=6"`
}

type LoginRequest struct {
	Handle   string `json:"handle" binding:"required"`
	Password string `json:"password"`
}

// --------- Handlers ---------

func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	session, err := h.users.Register(c.Request.Context(), user.RegisterInput{
		Name:     req.Name,
		Handle:   req.Handle,
		Timezone: req.Timezone,
		Password: req.Password,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	httpresp.Created(c, "User registered", dto.SessionDTO{
		User:  dto.NewUserDTO(session.User),
		Token: session.Token,
	})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	session, err := h.users.Login(c.Request.Context(), req.Handle, req.Password)
	if err != nil {
		writeError(c, err)
		return
	}

	httpresp.OK(c, "Login successful", dto.SessionDTO{
		User:  dto.NewUserDTO(session.User),
		Token: session.Token,
	})
}

package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/team-scheduler/internal/dto"
	"github.com/BruksfildServices01/team-scheduler/internal/httperr"
	"github.com/BruksfildServices01/team-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/team-scheduler/internal/middleware"
	ucAppointment "github.com/BruksfildServices01/team-scheduler/internal/usecase/appointment"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	create *ucAppointment.CreateAppointment
	list   *ucAppointment.ListAppointments
}

func NewAppointmentHandler(
	create *ucAppointment.CreateAppointment,
	list *ucAppointment.ListAppointments,
) *AppointmentHandler {
	return &AppointmentHandler{
		create: create,
		list:   list,
	}
}

// ======================================================
// REQUESTS
// ======================================================

// CreateAppointmentRequest takes start and end as RFC 3339 instants.
// Older clients send the invitee list as invitedUsers; it is honoured when
// invited_users is absent.
type CreateAppointmentRequest struct {
	Title             string    `json:"title" binding:"required,max=255"`
	Start             time.Time `json:"start" binding:"required"`
	End               time.Time `json:"end" binding:"required"`
	InvitedUsers      []uint    `json:"invited_users"`
	InvitedUsersCamel []uint    `json:"invitedUsers"`
}

func (r CreateAppointmentRequest) inviteeIDs() []uint {
	if r.InvitedUsers != nil {
		return r.InvitedUsers
	}
	return r.InvitedUsersCamel
}

// ======================================================
// CREATE
// ======================================================

func (h *AppointmentHandler) Create(c *gin.Context) {
	creatorID, ok := middleware.UserID(c)
	if !ok {
		httperr.Unauthorized(c, "user_not_in_context", "Failed to authenticate")
		return
	}

	var req CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	out, err := h.create.Execute(c.Request.Context(), ucAppointment.CreateAppointmentInput{
		CreatorID:  creatorID,
		Title:      req.Title,
		Start:      req.Start,
		End:        req.End,
		InviteeIDs: req.inviteeIDs(),
	})
	if err != nil {
		writeError(c, err)
		return
	}

	httpresp.Created(c, "Appointment created successfully", dto.CreatedAppointmentDTO{
		Appointment: dto.NewAppointmentDTO(out.Appointment),
		Invitees:    out.Invitees,
	})
}

// ======================================================
// LIST
// ======================================================

func (h *AppointmentHandler) List(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		httperr.Unauthorized(c, "user_not_in_context", "Failed to authenticate")
		return
	}

	items, err := h.list.Execute(c.Request.Context(), userID)
	if err != nil {
		writeError(c, err)
		return
	}

	httpresp.OK(c, "Appointments retrieved successfully", items)
}

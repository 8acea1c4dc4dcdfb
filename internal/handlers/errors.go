package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	domain "github.com/BruksfildServices01/team-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/team-scheduler/internal/httperr"
	"github.com/BruksfildServices01/team-scheduler/internal/logger"
	"github.com/BruksfildServices01/team-scheduler/internal/timezone"
)

type schedulingDetails struct {
	Party    domain.Party    `json:"party"`
	UserID   uint            `json:"user_id"`
	Timezone string          `json:"timezone,omitempty"`
	Boundary domain.Boundary `json:"boundary,omitempty"`
	Local    string          `json:"local,omitempty"`
}

// writeError renders err with the status its kind maps to.
func writeError(c *gin.Context, err error) {
	if se, ok := domain.AsSchedulingError(err); ok {
		writeSchedulingError(c, se)
		return
	}

	switch {
	case errors.Is(err, domain.ErrUserNotFound):
		httperr.NotFound(c, "user_not_found", "User not found")
	case httperr.IsBusiness(err, "handle_taken"):
		httperr.Conflict(c, "handle_taken", "Handle already registered")
	case httperr.IsBusiness(err, "invalid_timezone"):
		httperr.BadRequest(c, "invalid_timezone", "Unknown IANA timezone")
	case httperr.IsBusiness(err, "invalid_credentials"):
		httperr.Unauthorized(c, "invalid_credentials", "Invalid credentials")
	case errors.Is(err, timezone.ErrInvalidTimezone):
		logger.WithModule("http").Error("stored timezone is invalid", zap.Error(err))
		httperr.Internal(c, "invalid_timezone", "Stored timezone is invalid")
	case httperr.BusinessCode(err) != "":
		code := httperr.BusinessCode(err)
		httperr.BadRequest(c, code, code)
	case errors.Is(err, context.DeadlineExceeded):
		httperr.Write(c, http.StatusGatewayTimeout, "timeout", "Request timed out")
	default:
		logger.WithModule("http").Error("request failed",
			zap.String("path", c.FullPath()),
			zap.Error(err),
		)
		httperr.Internal(c, "internal_error", "Internal server error")
	}
}

func writeSchedulingError(c *gin.Context, se *domain.SchedulingError) {
	details := schedulingDetails{
		Party:    se.Party,
		UserID:   se.UserID,
		Timezone: se.Timezone,
		Boundary: se.Boundary,
	}
	if se.Kind == domain.KindOutsideWorkingHours {
		details.Local = se.Local.String()
	}

	switch se.Kind {
	case domain.KindUserNotFound:
		httperr.WriteData(c, http.StatusNotFound, string(se.Kind), se.Error(), details)
	case domain.KindOutsideWorkingHours, domain.KindInvalidTimeRange:
		httperr.WriteData(c, http.StatusBadRequest, string(se.Kind), se.Error(), details)
	case domain.KindInvalidTimezone:
		// stored data is broken, not the request
		logger.WithModule("http").Error("user has invalid timezone",
			zap.Uint("user_id", se.UserID),
			zap.String("timezone", se.Timezone),
		)
		httperr.WriteData(c, http.StatusInternalServerError, string(se.Kind), se.Error(), details)
	default:
		httperr.Internal(c, "internal_error", se.Error())
	}
}

package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/BruksfildServices01/team-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/team-scheduler/internal/httperr"
	"github.com/BruksfildServices01/team-scheduler/internal/timezone"
	"github.com/BruksfildServices01/team-scheduler/internal/usecase/user"
)

func TestWriteError_StatusMapping(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"creator not found", &domain.SchedulingError{Kind: domain.KindUserNotFound, Party: domain.PartyCreator, UserID: 3}, http.StatusNotFound, "user_not_found"},
		{"outside hours", &domain.SchedulingError{Kind: domain.KindOutsideWorkingHours, Party: domain.PartyInvitee, UserID: 4, Boundary: domain.BoundaryEnd}, http.StatusBadRequest, "outside_working_hours"},
		{"time range", &domain.SchedulingError{Kind: domain.KindInvalidTimeRange}, http.StatusBadRequest, "invalid_time_range"},
		{"stored timezone", &domain.SchedulingError{Kind: domain.KindInvalidTimezone, Timezone: "Bad/Zone"}, http.StatusInternalServerError, "invalid_timezone"},
		{"wrapped timezone", fmt.Errorf("format: %w", timezone.ErrInvalidTimezone), http.StatusInternalServerError, "invalid_timezone"},
		{"plain not found", domain.ErrUserNotFound, http.StatusNotFound, "user_not_found"},
		{"handle taken", user.ErrHandleTaken, http.StatusConflict, "handle_taken"},
		{"credentials", user.ErrInvalidCredentials, http.StatusUnauthorized, "invalid_credentials"},
		{"other business rule", fmt.Errorf("x: %w", httperr.ErrBusiness("handle_reserved")), http.StatusBadRequest, "handle_reserved"},
		{"deadline", fmt.Errorf("lookup: %w", context.DeadlineExceeded), http.StatusGatewayTimeout, "timeout"},
		{"other", errors.New("boom"), http.StatusInternalServerError, "internal_error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(rec)
			c.Request = httptest.NewRequest(http.MethodPost, "/api/appointments", nil)

			writeError(c, tt.err)

			assert.Equal(t, tt.status, rec.Code)
			var body map[string]any
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, "error", body["status"])
			assert.Equal(t, tt.code, body["error_code"])
		})
	}
}

func TestWriteError_OutsideHoursDetails(t *testing.T) {
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodPost, "/api/appointments", nil)

	writeError(c, &domain.SchedulingError{
		Kind:     domain.KindOutsideWorkingHours,
		Party:    domain.PartyInvitee,
		UserID:   9,
		Handle:   "kenji",
		Timezone: "Asia/Tokyo",
		Boundary: domain.BoundaryStart,
		Local:    timezone.Civil{Year: 2024, Month: 6, Day: 10, Hour: 22},
	})

	var body struct {
		Data schedulingDetails `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, domain.PartyInvitee, body.Data.Party)
	assert.Equal(t, uint(9), body.Data.UserID)
	assert.Equal(t, domain.BoundaryStart, body.Data.Boundary)
	assert.NotEmpty(t, body.Data.Local)
}

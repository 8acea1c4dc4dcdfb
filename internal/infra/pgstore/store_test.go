package pgstore

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/team-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/team-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/team-scheduler/internal/models"
	"github.com/BruksfildServices01/team-scheduler/internal/usecase/user"
)

func setup(t *testing.T) *Store {
	t.Helper()
	url := os.Getenv("DATABASE_URL")
	if url == "" {
		t.Skip("DATABASE_URL not set")
	}

	ctx := context.Background()
	st, err := Connect(ctx, url)
	require.NoError(t, err)
	t.Cleanup(st.Close)
	require.NoError(t, st.Migrate(ctx))
	return st
}

func newUser(t *testing.T, st *Store, tz string) *models.User {
	t.Helper()
	u := &models.User{
		Name:     "Test User",
		Handle:   fmt.Sprintf("test-%s", uuid.New().String()[:8]),
		Timezone: tz,
	}
	require.NoError(t, st.CreateUser(context.Background(), u))
	return u
}

func TestStore_Users(t *testing.T) {
	st := setup(t)
	ctx := context.Background()

	u := newUser(t, st, "Asia/Tokyo")

	got, err := st.FindByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, u.Handle, got.Handle)

	got, err = st.FindByHandle(ctx, u.Handle)
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)

	_, err = st.FindByHandle(ctx, "missing-"+uuid.NewString())
	require.ErrorIs(t, err, domain.ErrUserNotFound)

	dup := &models.User{Name: "x", Handle: u.Handle, Timezone: "UTC"}
	require.ErrorIs(t, st.CreateUser(ctx, dup), user.ErrHandleTaken)
}

func TestStore_CreateAndList(t *testing.T) {
	st := setup(t)
	ctx := context.Background()
	a := newUser(t, st, "UTC")
	b := newUser(t, st, "UTC")

	start := time.Now().UTC().Truncate(time.Second)
	ap, err := st.CreateAppointment(ctx, &domain.BookingPlan{
		Title: "pg", CreatorID: a.ID, Start: start, End: start.Add(time.Hour),
		InviteeIDs: []uint{b.ID},
	})
	require.NoError(t, err)
	assert.Len(t, ap.Participations, 2)

	list, err := st.ListAppointmentsForUser(ctx, b.ID)
	require.NoError(t, err)
	require.NotEmpty(t, list)
	found := false
	for _, x := range list {
		if x.ID == ap.ID {
			found = true
			assert.Len(t, x.Participations, 2)
			assert.True(t, x.StartTime.Equal(start))
		}
	}
	assert.True(t, found)
}

func TestStore_CreateAppointmentRollsBack(t *testing.T) {
	st := setup(t)
	ctx := context.Background()
	a := newUser(t, st, "UTC")

	title := "rollback-" + uuid.NewString()
	start := time.Now().UTC()
	_, err := st.CreateAppointment(ctx, &domain.BookingPlan{
		Title: title, CreatorID: a.ID, Start: start, End: start.Add(time.Hour),
		InviteeIDs: []uint{1 << 30},
	})
	require.Error(t, err)

	var n int
	require.NoError(t, st.pool.QueryRow(ctx, `SELECT COUNT(*) FROM appointments WHERE title = $1`, title).Scan(&n))
	assert.Zero(t, n)
}

func TestStore_AuditLogs(t *testing.T) {
	st := setup(t)
	ctx := context.Background()
	u := newUser(t, st, "UTC")

	for _, action := range []string{"user_registered", "appointment_created", "appointment_created"} {
		require.NoError(t, st.SaveAuditLog(ctx, &models.AuditLog{UserID: &u.ID, Action: action, Entity: "appointment"}))
	}

	logs, total, err := st.ListAuditLogs(ctx, audit.Filter{UserID: u.ID, Action: "appointment_created", Limit: 1})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	require.Len(t, logs, 1)
	assert.Equal(t, u.ID, *logs[0].UserID)
	assert.WithinDuration(t, time.Now(), logs[0].CreatedAt, time.Minute)
}

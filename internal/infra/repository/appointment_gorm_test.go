package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/team-scheduler/internal/audit"
	"github.com/BruksfildServices01/team-scheduler/internal/db/testutil"
	domain "github.com/BruksfildServices01/team-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/team-scheduler/internal/models"
	"github.com/BruksfildServices01/team-scheduler/internal/usecase/user"
)

func seedUsers(t *testing.T, repo *GormRepository, users ...models.User) []models.User {
	t.Helper()
	out := make([]models.User, 0, len(users))
	for i := range users {
		u := users[i]
		require.NoError(t, repo.CreateUser(context.Background(), &u))
		out = append(out, u)
	}
	return out
}

func TestGormRepository_Users(t *testing.T) {
	repo := NewGormRepository(testutil.MustOpenTestDB(t))
	ctx := context.Background()

	users := seedUsers(t, repo,
		models.User{Name: "Ana", Handle: "ana", Timezone: "America/New_York"},
		models.User{Name: "Kenji", Handle: "kenji", Timezone: "Asia/Tokyo"},
	)

	got, err := repo.FindByID(ctx, users[1].ID)
	require.NoError(t, err)
	assert.Equal(t, "Asia/Tokyo", got.Timezone)

	got, err = repo.FindByHandle(ctx, "ana")
	require.NoError(t, err)
	assert.Equal(t, users[0].ID, got.ID)

	_, err = repo.FindByID(ctx, 999)
	require.ErrorIs(t, err, domain.ErrUserNotFound)
	_, err = repo.FindByHandle(ctx, "nobody")
	require.ErrorIs(t, err, domain.ErrUserNotFound)

	all, err := repo.ListUsers(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	dup := models.User{Name: "Other", Handle: "ana", Timezone: "UTC"}
	require.ErrorIs(t, repo.CreateUser(ctx, &dup), user.ErrHandleTaken)
}

func TestGormRepository_CreateAppointmentWritesAllParticipants(t *testing.T) {
	repo := NewGormRepository(testutil.MustOpenTestDB(t))
	ctx := context.Background()
	users := seedUsers(t, repo,
		models.User{Name: "A", Handle: "a", Timezone: "UTC"},
		models.User{Name: "B", Handle: "b", Timezone: "UTC"},
		models.User{Name: "C", Handle: "c", Timezone: "UTC"},
	)

	start := time.Date(2024, 6, 10, 9, 0, 0, 0, time.UTC)
	ap, err := repo.CreateAppointment(ctx, &domain.BookingPlan{
		Title:      "retro",
		CreatorID:  users[0].ID,
		Start:      start,
		End:        start.Add(time.Hour),
		InviteeIDs: []uint{users[1].ID, users[2].ID},
	})
	require.NoError(t, err)
	require.NotZero(t, ap.ID)
	require.Len(t, ap.Participations, 3)
	assert.Equal(t, models.RoleCreator, ap.Participations[0].Role)

	for _, u := range users {
		list, err := repo.ListAppointmentsForUser(ctx, u.ID)
		require.NoError(t, err)
		require.Len(t, list, 1, u.Handle)
		assert.Equal(t, "retro", list[0].Title)
		assert.True(t, list[0].StartTime.Equal(start))
		assert.Len(t, list[0].Participations, 3)
	}
}

func TestGormRepository_CreateAppointmentIsAtomic(t *testing.T) {
	gdb := testutil.MustOpenTestDB(t)
	repo := NewGormRepository(gdb)
	ctx := context.Background()
	users := seedUsers(t, repo, models.User{Name: "A", Handle: "a", Timezone: "UTC"})

	start := time.Date(2024, 6, 10, 9, 0, 0, 0, time.UTC)
	_, err := repo.CreateAppointment(ctx, &domain.BookingPlan{
		Title:      "broken",
		CreatorID:  users[0].ID,
		Start:      start,
		End:        start.Add(time.Hour),
		InviteeIDs: []uint{4242}, // violates the user foreign key
	})
	require.Error(t, err)

	var appointments, participations int64
	require.NoError(t, gdb.Model(&models.Appointment{}).Count(&appointments).Error)
	require.NoError(t, gdb.Model(&models.Participation{}).Count(&participations).Error)
	assert.Zero(t, appointments)
	assert.Zero(t, participations)
}

func TestGormRepository_ListOrdersByStart(t *testing.T) {
	repo := NewGormRepository(testutil.MustOpenTestDB(t))
	ctx := context.Background()
	users := seedUsers(t, repo,
		models.User{Name: "A", Handle: "a", Timezone: "UTC"},
		models.User{Name: "B", Handle: "b", Timezone: "UTC"},
	)

	late := time.Date(2024, 6, 11, 9, 0, 0, 0, time.UTC)
	early := time.Date(2024, 6, 10, 9, 0, 0, 0, time.UTC)
	for _, s := range []time.Time{late, early} {
		_, err := repo.CreateAppointment(ctx, &domain.BookingPlan{
			Title: s.Format("Jan 2"), CreatorID: users[0].ID, Start: s, End: s.Add(time.Hour),
		})
		require.NoError(t, err)
	}

	list, err := repo.ListAppointmentsForUser(ctx, users[0].ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Jun 10", list[0].Title)

	list, err = repo.ListAppointmentsForUser(ctx, users[1].ID)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestGormRepository_SaveAuditLog(t *testing.T) {
	gdb := testutil.MustOpenTestDB(t)
	repo := NewGormRepository(gdb)

	require.NoError(t, repo.SaveAuditLog(context.Background(), &models.AuditLog{Action: "appointment_created"}))

	var n int64
	require.NoError(t, gdb.Model(&models.AuditLog{}).Count(&n).Error)
	assert.Equal(t, int64(1), n)
}

func TestGormRepository_ListAuditLogs(t *testing.T) {
	repo := NewGormRepository(testutil.MustOpenTestDB(t))
	ctx := context.Background()

	uid, other := uint(1), uint(2)
	for _, e := range []models.AuditLog{
		{UserID: &uid, Action: "user_registered", Entity: "user"},
		{UserID: &uid, Action: "appointment_created", Entity: "appointment"},
		{UserID: &uid, Action: "appointment_created", Entity: "appointment"},
		{UserID: &other, Action: "appointment_created", Entity: "appointment"},
	} {
		require.NoError(t, repo.SaveAuditLog(ctx, &e))
	}

	logs, total, err := repo.ListAuditLogs(ctx, audit.Filter{UserID: uid})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Len(t, logs, 3)

	logs, total, err = repo.ListAuditLogs(ctx, audit.Filter{UserID: uid, Action: "appointment_created", Limit: 1})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	require.Len(t, logs, 1)
	assert.Equal(t, "appointment_created", logs[0].Action)
}

package appointment

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/team-scheduler/internal/db/testutil"
	domain "github.com/BruksfildServices01/team-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/team-scheduler/internal/infra/repository"
	"github.com/BruksfildServices01/team-scheduler/internal/models"
	"github.com/BruksfildServices01/team-scheduler/internal/timezone"
)

type fixture struct {
	repo   *repository.GormRepository
	create *CreateAppointment
	list   *ListAppointments
	users  map[string]models.User
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	repo := repository.NewGormRepository(testutil.MustOpenTestDB(t))
	ctx := context.Background()

	users := map[string]models.User{}
	for handle, tz := range map[string]string{
		"ny":     "America/New_York",
		"london": "Europe/London",
		"tokyo":  "Asia/Tokyo",
	} {
		u := models.User{Name: handle, Handle: handle, Timezone: tz}
		require.NoError(t, repo.CreateUser(ctx, &u))
		users[handle] = u
	}

	validator := domain.NewBookingValidator(repo, timezone.Converter{}, domain.DefaultWorkingHours)
	return &fixture{
		repo:   repo,
		create: NewCreateAppointment(validator, repo, nil),
		list:   NewListAppointments(repo, repo),
		users:  users,
	}
}

func TestCreateAppointment_PersistsCreatorAndAcceptedInvitees(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	start := time.Date(2024, 6, 10, 13, 0, 0, 0, time.UTC)
	out, err := f.create.Execute(ctx, CreateAppointmentInput{
		CreatorID:  f.users["ny"].ID,
		Title:      "planning",
		Start:      start,
		End:        start.Add(time.Hour),
		InviteeIDs: []uint{f.users["london"].ID, 4242},
	})
	require.NoError(t, err)
	require.Len(t, out.Appointment.Participations, 2)
	assert.Equal(t, f.users["ny"].ID, out.Appointment.CreatorID)
	assert.True(t, out.Appointment.StartTime.Equal(start))

	require.Len(t, out.Invitees, 2)
	assert.Equal(t, domain.InviteeAccepted, out.Invitees[0].Status)
	assert.Equal(t, domain.InviteeSkipped, out.Invitees[1].Status)
}

func TestCreateAppointment_RejectionWritesNothing(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	start := time.Date(2024, 6, 10, 13, 0, 0, 0, time.UTC)
	_, err := f.create.Execute(ctx, CreateAppointmentInput{
		CreatorID:  f.users["ny"].ID,
		Title:      "too late for tokyo",
		Start:      start,
		End:        start.Add(time.Hour),
		InviteeIDs: []uint{f.users["london"].ID, f.users["tokyo"].ID},
	})
	require.ErrorIs(t, err, domain.ErrOutsideWorkingHours)

	se, ok := domain.AsSchedulingError(err)
	require.True(t, ok)
	assert.Equal(t, domain.PartyInvitee, se.Party)
	assert.Equal(t, f.users["tokyo"].ID, se.UserID)

	for _, u := range f.users {
		list, err := f.repo.ListAppointmentsForUser(ctx, u.ID)
		require.NoError(t, err)
		assert.Empty(t, list)
	}
}

func TestCreateAppointment_UnknownCreator(t *testing.T) {
	f := newFixture(t)

	start := time.Date(2024, 6, 10, 13, 0, 0, 0, time.UTC)
	_, err := f.create.Execute(context.Background(), CreateAppointmentInput{
		CreatorID: 999,
		Title:     "ghost",
		Start:     start,
		End:       start.Add(time.Hour),
	})
	require.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestListAppointments_FormatsInViewerZone(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	start := time.Date(2024, 1, 10, 14, 0, 0, 0, time.UTC)
	_, err := f.create.Execute(ctx, CreateAppointmentInput{
		CreatorID:  f.users["ny"].ID,
		Title:      "winter sync",
		Start:      start,
		End:        start.Add(30 * time.Minute),
		InviteeIDs: []uint{f.users["london"].ID},
	})
	require.NoError(t, err)

	ny, err := f.list.Execute(ctx, f.users["ny"].ID)
	require.NoError(t, err)
	require.Len(t, ny, 1)
	assert.Equal(t, "2024-01-10 09:00", ny[0].Start)
	assert.Equal(t, "2024-01-10 09:30", ny[0].End)
	assert.ElementsMatch(t, []uint{f.users["ny"].ID, f.users["london"].ID}, ny[0].ParticipantIDs)

	london, err := f.list.Execute(ctx, f.users["london"].ID)
	require.NoError(t, err)
	require.Len(t, london, 1)
	assert.Equal(t, "2024-01-10 14:00", london[0].Start)
	assert.Equal(t, "Europe/London", london[0].Timezone)

	tokyo, err := f.list.Execute(ctx, f.users["tokyo"].ID)
	require.NoError(t, err)
	assert.Empty(t, tokyo)

	_, err = f.list.Execute(ctx, 999)
	require.ErrorIs(t, err, domain.ErrUserNotFound)
}

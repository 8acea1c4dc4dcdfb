package cache

import (
	"context"
	"os"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/BruksfildServices01/team-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/team-scheduler/internal/models"
)

type countingDirectory struct {
	calls atomic.Int32
	user  models.User
}

func (d *countingDirectory) FindByID(_ context.Context, id uint) (*models.User, error) {
	d.calls.Add(1)
	if id != d.user.ID {
		return nil, domain.ErrUserNotFound
	}
	u := d.user
	return &u, nil
}

func (d *countingDirectory) FindByHandle(context.Context, string) (*models.User, error) {
	u := d.user
	return &u, nil
}

func (d *countingDirectory) ListUsers(context.Context) ([]models.User, error) {
	return []models.User{d.user}, nil
}

func TestUserDirectory_ReadThrough(t *testing.T) {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("REDIS_ADDR not set")
	}
	ctx := context.Background()

	client, err := NewRedisClient(ctx, addr, os.Getenv("REDIS_PASSWORD"), 0)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	next := &countingDirectory{user: models.User{
		ID: uint(time.Now().UnixNano() % 1_000_000_000), Handle: "cached", Timezone: "Asia/Tokyo", PasswordHash: "secret",
	}}
	dir := NewUserDirectory(next, client, time.Minute)
	t.Cleanup(func() { _ = dir.Invalidate(ctx, next.user.ID) })

	first, err := dir.FindByID(ctx, next.user.ID)
	require.NoError(t, err)
	second, err := dir.FindByID(ctx, next.user.ID)
	require.NoError(t, err)

	assert.Equal(t, int32(1), next.calls.Load())
	assert.Equal(t, "Asia/Tokyo", second.Timezone)
	assert.Equal(t, first.Handle, second.Handle)
	assert.Empty(t, second.PasswordHash)

	_, err = dir.FindByID(ctx, next.user.ID+1)
	require.ErrorIs(t, err, domain.ErrUserNotFound)
}

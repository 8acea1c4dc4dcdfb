package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	domain "github.com/BruksfildServices01/team-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/team-scheduler/internal/logger"
	"github.com/BruksfildServices01/team-scheduler/internal/models"
)

const keyPrefix = "scheduler:user:"

// cachedUser mirrors models.User without the password hash, which never
// leaves the database.
type cachedUser struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	Handle    string    `json:"handle"`
	Timezone  string    `json:"timezone"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// UserDirectory is a read-through cache for id lookups. Handle lookups feed
// the login flow and always go to the underlying directory.
type UserDirectory struct {
	next   domain.UserDirectory
	client *redis.Client
	ttl    time.Duration
}

func NewUserDirectory(next domain.UserDirectory, client *redis.Client, ttl time.Duration) *UserDirectory {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &UserDirectory{next: next, client: client, ttl: ttl}
}

func NewRedisClient(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis: ping %s: %w", addr, err)
	}
	return client, nil
}

func (d *UserDirectory) FindByID(ctx context.Context, id uint) (*models.User, error) {
	key := fmt.Sprintf("%s%d", keyPrefix, id)
	log := logger.WithModule("cache")

	raw, err := d.client.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var cu cachedUser
		if jerr := json.Unmarshal(raw, &cu); jerr == nil {
			return cu.user(), nil
		}
		log.Warn("dropping undecodable cache entry", zap.String("key", key))
		_ = d.client.Del(ctx, key).Err()
	case !errors.Is(err, redis.Nil):
		// cache outage degrades to direct lookups
		log.Warn("redis get failed", zap.String("key", key), zap.Error(err))
	}

	u, err := d.next.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if b, err := json.Marshal(toCached(u)); err == nil {
		if err := d.client.Set(ctx, key, b, d.ttl).Err(); err != nil {
			log.Warn("redis set failed", zap.String("key", key), zap.Error(err))
		}
	}
	return u, nil
}

func (d *UserDirectory) FindByHandle(ctx context.Context, handle string) (*models.User, error) {
	return d.next.FindByHandle(ctx, handle)
}

func (d *UserDirectory) ListUsers(ctx context.Context) ([]models.User, error) {
	return d.next.ListUsers(ctx)
}

// Invalidate removes a cached user.
func (d *UserDirectory) Invalidate(ctx context.Context, id uint) error {
	return d.client.Del(ctx, fmt.Sprintf("%s%d", keyPrefix, id)).Err()
}

func toCached(u *models.User) cachedUser {
	return cachedUser{
		ID:        u.ID,
		Name:      u.Name,
		Handle:    u.Handle,
		Timezone:  u.Timezone,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

func (c cachedUser) user() *models.User {
	return &models.User{
		ID:        c.ID,
		Name:      c.Name,
		Handle:    c.Handle,
		Timezone:  c.Timezone,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

var _ domain.UserDirectory = (*UserDirectory)(nil)

package user

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/BruksfildServices01/team-scheduler/internal/audit"
	"github.com/BruksfildServices01/team-scheduler/internal/auth"
	domain "github.com/BruksfildServices01/team-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/team-scheduler/internal/httperr"
	"github.com/BruksfildServices01/team-scheduler/internal/logger"
	"github.com/BruksfildServices01/team-scheduler/internal/models"
	"github.com/BruksfildServices01/team-scheduler/internal/timezone"
)

var (
	ErrHandleTaken        = httperr.ErrBusiness("handle_taken")
	ErrInvalidTimezone    = httperr.ErrBusiness("invalid_timezone")
	ErrInvalidCredentials = httperr.ErrBusiness("invalid_credentials")
)

type Repository interface {
	CreateUser(ctx context.Context, u *models.User) error
	FindByHandle(ctx context.Context, handle string) (*models.User, error)
}

type RegisterInput struct {
	Name     string
	Handle   string
	Timezone string
	Password string
}

type Session struct {
	User  *models.User
	Token string
}

type Service struct {
	repo   Repository
	tokens *auth.Issuer
	audit  *audit.Dispatcher
}

func NewService(
	repo Repository,
	tokens *auth.Issuer,
	audit *audit.Dispatcher,
) *Service {
	return &Service{
		repo:   repo,
		tokens: tokens,
		audit:  audit,
	}
}

func (s *Service) Register(ctx context.Context, in RegisterInput) (*Session, error) {
	handle := normalizeHandle(in.Handle)
	tz := strings.TrimSpace(in.Timezone)

	if !timezone.IsValid(tz) {
		return nil, ErrInvalidTimezone
	}

	if _, err := s.repo.FindByHandle(ctx, handle); err == nil {
		return nil, ErrHandleTaken
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	u := &models.User{
		Name:         strings.TrimSpace(in.Name),
		Handle:       handle,
		Timezone:     tz,
		PasswordHash: hash,
	}
	if err := s.repo.CreateUser(ctx, u); err != nil {
		return nil, err
	}

	logger.WithModule("user").Info("user registered",
		zap.Uint("user_id", u.ID),
		zap.String("handle", u.Handle),
		zap.String("timezone", u.Timezone),
	)

	s.audit.Dispatch(audit.Event{
		UserID:   &u.ID,
		Action:   "user_registered",
		Entity:   "user",
		EntityID: &u.ID,
	})

	return s.session(u)
}

// Login authenticates by handle. Accounts provisioned without a password
// log in by handle alone.
func (s *Service) Login(ctx context.Context, handle, password string) (*Session, error) {
	u, err := s.repo.FindByHandle(ctx, normalizeHandle(handle))
	if err != nil {
		return nil, err
	}

	if u.PasswordHash != "" && !auth.CheckPassword(u.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}

	return s.session(u)
}

func (s *Service) session(u *models.User) (*Session, error) {
	token, err := s.tokens.MakeToken(u.ID)
	if err != nil {
		return nil, err
	}
	return &Session{User: u, Token: token}, nil
}

func normalizeHandle(h string) string {
	return strings.ToLower(strings.TrimSpace(h))
}

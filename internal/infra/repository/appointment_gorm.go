package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/BruksfildServices01/team-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/team-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/team-scheduler/internal/models"
	"github.com/BruksfildServices01/team-scheduler/internal/usecase/user"
)

type GormRepository struct {
	db *gorm.DB
}

func NewGormRepository(db *gorm.DB) *GormRepository {
	return &GormRepository{db: db}
}

// --------------------------------------------------
// Users
// --------------------------------------------------

func (r *GormRepository) FindByID(
	ctx context.Context,
	id uint,
) (*models.User, error) {

	var u models.User
	if err := r.db.WithContext(ctx).First(&u, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &u, nil
}

func (r *GormRepository) FindByHandle(
	ctx context.Context,
	handle string,
) (*models.User, error) {

	var u models.User
	if err := r.db.WithContext(ctx).
		Where("handle = ?", handle).
		First(&u).Error; err != nil {
		return nil, notFound(err)
	}
	return &u, nil
}

func (r *GormRepository) ListUsers(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if err := r.db.WithContext(ctx).
		Order("id ASC").
		Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (r *GormRepository) CreateUser(
	ctx context.Context,
	u *models.User,
) error {
	err := r.db.WithContext(ctx).Create(u).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return user.ErrHandleTaken
	}
	return err
}

// --------------------------------------------------
// Appointments
// --------------------------------------------------

func (r *GormRepository) CreateAppointment(
	ctx context.Context,
	plan *domain.BookingPlan,
) (*models.Appointment, error) {

	var created models.Appointment

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		ap := models.Appointment{
			Title:     plan.Title,
			StartTime: plan.Start.UTC(),
			EndTime:   plan.End.UTC(),
			CreatorID: plan.CreatorID,
		}
		if err := tx.Omit(clause.Associations).Create(&ap).Error; err != nil {
			return fmt.Errorf("insert appointment: %w", err)
		}

		rows := make([]models.Participation, 0, len(plan.InviteeIDs)+1)
		for i, id := range plan.ParticipantIDs() {
			role := models.RoleInvitee
			if i == 0 {
				role = models.RoleCreator
			}
			rows = append(rows, models.Participation{
				AppointmentID: ap.ID,
				UserID:        id,
				Role:          role,
			})
		}

		if err := tx.
			Omit(clause.Associations).
			Clauses(clause.OnConflict{DoNothing: true}).
			Create(&rows).Error; err != nil {
			return fmt.Errorf("insert participations: %w", err)
		}

		ap.Participations = rows
		created = ap
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &created, nil
}

func (r *GormRepository) ListAppointmentsForUser(
	ctx context.Context,
	userID uint,
) ([]models.Appointment, error) {

	var apps []models.Appointment

	err := r.db.WithContext(ctx).
		Where("id IN (?)", r.db.
			Model(&models.Participation{}).
			Select("appointment_id").
			Where("user_id = ?", userID)).
		Preload("Participations", func(db *gorm.DB) *gorm.DB {
			return db.Order("role ASC, user_id ASC")
		}).
		Order("start_time ASC, id ASC").
		Find(&apps).Error
	if err != nil {
		return nil, err
	}

	return apps, nil
}

// --------------------------------------------------
// Audit
// --------------------------------------------------

func (r *GormRepository) SaveAuditLog(
	ctx context.Context,
	entry *models.AuditLog,
) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *GormRepository) ListAuditLogs(
	ctx context.Context,
	f audit.Filter,
) ([]models.AuditLog, int64, error) {

	q := r.db.WithContext(ctx).
		Model(&models.AuditLog{}).
		Where("user_id = ?", f.UserID)

	if f.Action != "" {
		q = q.Where("action = ?", f.Action)
	}
	if f.Entity != "" {
		q = q.Where("entity = ?", f.Entity)
	}
	if !f.From.IsZero() {
		q = q.Where("created_at >= ?", f.From)
	}
	if !f.To.IsZero() {
		q = q.Where("created_at < ?", f.To)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	limit := f.Limit
	if limit <= 0 {
		limit = 50
	}

	var logs []models.AuditLog
	if err := q.
		Order("created_at DESC").
		Order("id DESC").
		Limit(limit).
		Offset(f.Offset).
		Find(&logs).Error; err != nil {
		return nil, 0, err
	}

	return logs, total, nil
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.ErrUserNotFound
	}
	return err
}

// Compile-time checks
var (
	_ domain.UserDirectory    = (*GormRepository)(nil)
	_ domain.AppointmentStore = (*GormRepository)(nil)
	_ user.Repository         = (*GormRepository)(nil)
	_ audit.Sink              = (*GormRepository)(nil)
	_ audit.Reader            = (*GormRepository)(nil)
)

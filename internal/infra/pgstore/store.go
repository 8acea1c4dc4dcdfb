package pgstore

import (
	"context"
	_ "embed"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/BruksfildServices01/team-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/team-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/team-scheduler/internal/models"
	"github.com/BruksfildServices01/team-scheduler/internal/usecase/user"
)

//go:embed schema.sql
var schema string

const uniqueViolation = "23505"

// Store implements the directory and appointment store on a pgx pool.
type Store struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

func Connect(ctx context.Context, url string) (*Store, error) {
	pool, err := pgxpool.New(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("pgstore: connect: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pgstore: ping: %w", err)
	}
	return New(pool), nil
}

func (s *Store) Migrate(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("pgstore: migrate: %w", err)
	}
	return nil
}

func (s *Store) Close() {
	s.pool.Close()
}

// --------------------------------------------------
// Users
// --------------------------------------------------

const userColumns = `id, name, handle, timezone, password_hash, created_at, updated_at`

func scanUser(row pgx.Row) (*models.User, error) {
	u := &models.User{}
	var id int64
	err := row.Scan(&id, &u.Name, &u.Handle, &u.Timezone, &u.PasswordHash, &u.CreatedAt, &u.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	u.ID = uint(id)
	return u, nil
}

func (s *Store) FindByID(ctx context.Context, id uint) (*models.User, error) {
	return scanUser(s.pool.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1`, int64(id)))
}

func (s *Store) FindByHandle(ctx context.Context, handle string) (*models.User, error) {
	return scanUser(s.pool.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE handle = $1`, handle))
}

func (s *Store) ListUsers(ctx context.Context) ([]models.User, error) {
	rows, err := s.pool.Query(ctx, `SELECT `+userColumns+` FROM users ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *u)
	}
	return out, rows.Err()
}

func (s *Store) CreateUser(ctx context.Context, u *models.User) error {
	var id int64
	err := s.pool.QueryRow(ctx,
		`INSERT INTO users (name, handle, timezone, password_hash)
		 VALUES ($1,$2,$3,$4)
		 RETURNING id, created_at, updated_at`,
		u.Name, u.Handle, u.Timezone, u.PasswordHash,
	).Scan(&id, &u.CreatedAt, &u.UpdatedAt)

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return user.ErrHandleTaken
	}
	if err != nil {
		return err
	}
	u.ID = uint(id)
	return nil
}

// --------------------------------------------------
// Appointments
// --------------------------------------------------

func (s *Store) CreateAppointment(ctx context.Context, plan *domain.BookingPlan) (*models.Appointment, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	ap := &models.Appointment{
		Title:     plan.Title,
		StartTime: plan.Start.UTC(),
		EndTime:   plan.End.UTC(),
		CreatorID: plan.CreatorID,
	}

	var id int64
	err = tx.QueryRow(ctx,
		`INSERT INTO appointments (title, start_time, end_time, creator_id)
		 VALUES ($1,$2,$3,$4)
		 RETURNING id, created_at`,
		ap.Title, ap.StartTime, ap.EndTime, int64(ap.CreatorID),
	).Scan(&id, &ap.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("insert appointment: %w", err)
	}
	ap.ID = uint(id)

	for i, uid := range plan.ParticipantIDs() {
		role := models.RoleInvitee
		if i == 0 {
			role = models.RoleCreator
		}
		p := models.Participation{AppointmentID: ap.ID, UserID: uid, Role: role}
		err = tx.QueryRow(ctx,
			`INSERT INTO participations (appointment_id, user_id, role)
			 VALUES ($1,$2,$3)
			 ON CONFLICT DO NOTHING
			 RETURNING created_at`,
			id, int64(uid), string(role),
		).Scan(&p.CreatedAt)
		if errors.Is(err, pgx.ErrNoRows) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("insert participation: %w", err)
		}
		ap.Participations = append(ap.Participations, p)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return ap, nil
}

func (s *Store) ListAppointmentsForUser(ctx context.Context, userID uint) ([]models.Appointment, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT a.id, a.title, a.start_time, a.end_time, a.creator_id, a.created_at
		 FROM appointments a
		 JOIN participations p ON p.appointment_id = a.id
		 WHERE p.user_id = $1
		 ORDER BY a.start_time, a.id`, int64(userID),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Appointment
	index := map[uint]int{}
	for rows.Next() {
		var a models.Appointment
		var id, creator int64
		if err := rows.Scan(&id, &a.Title, &a.StartTime, &a.EndTime, &creator, &a.CreatedAt); err != nil {
			return nil, err
		}
		a.ID, a.CreatorID = uint(id), uint(creator)
		index[a.ID] = len(out)
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return out, nil
	}

	ids := make([]int64, 0, len(out))
	for _, a := range out {
		ids = append(ids, int64(a.ID))
	}

	prows, err := s.pool.Query(ctx,
		`SELECT appointment_id, user_id, role, created_at
		 FROM participations
		 WHERE appointment_id = ANY($1)
		 ORDER BY appointment_id, role, user_id`, ids,
	)
	if err != nil {
		return nil, err
	}
	defer prows.Close()

	for prows.Next() {
		var p models.Participation
		var aid, uid int64
		var role string
		if err := prows.Scan(&aid, &uid, &role, &p.CreatedAt); err != nil {
			return nil, err
		}
		p.AppointmentID, p.UserID, p.Role = uint(aid), uint(uid), models.ParticipationRole(role)
		i := index[p.AppointmentID]
		out[i].Participations = append(out[i].Participations, p)
	}
	return out, prows.Err()
}

// --------------------------------------------------
// Audit
// --------------------------------------------------

func (s *Store) SaveAuditLog(ctx context.Context, e *models.AuditLog) error {
	var uid, eid *int64
	if e.UserID != nil {
		v := int64(*e.UserID)
		uid = &v
	}
	if e.EntityID != nil {
		v := int64(*e.EntityID)
		eid = &v
	}
	_, err := s.pool.Exec(ctx,
		`INSERT INTO audit_logs (user_id, action, entity, entity_id, metadata)
		 VALUES ($1,$2,$3,$4,$5)`,
		uid, e.Action, e.Entity, eid, e.Metadata,
	)
	return err
}

func (s *Store) ListAuditLogs(ctx context.Context, f audit.Filter) ([]models.AuditLog, int64, error) {
	where := "user_id = $1"
	args := []any{int64(f.UserID)}

	add := func(cond string, v any) {
		args = append(args, v)
		where += fmt.Sprintf(" AND %s $%d", cond, len(args))
	}
	if f.Action != "" {
		add("action =", f.Action)
	}
	if f.Entity != "" {
		add("entity =", f.Entity)
	}
	if !f.From.IsZero() {
		add("created_at >=", f.From)
	}
	if !f.To.IsZero() {
		add("created_at <", f.To)
	}

	var total int64
	if err := s.pool.QueryRow(ctx, "SELECT COUNT(*) FROM audit_logs WHERE "+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count audit logs: %w", err)
	}

	limit := f.Limit
	if limit <= 0 {
		limit = 50
	}
	args = append(args, limit, f.Offset)
	rows, err := s.pool.Query(ctx, fmt.Sprintf(
		`SELECT id, user_id, action, COALESCE(entity, ''), entity_id, COALESCE(metadata, ''), created_at
		 FROM audit_logs WHERE %s ORDER BY created_at DESC, id DESC LIMIT $%d OFFSET $%d`,
		where, len(args)-1, len(args)), args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list audit logs: %w", err)
	}
	defer rows.Close()

	var out []models.AuditLog
	for rows.Next() {
		var (
			e        models.AuditLog
			id       int64
			uid, eid *int64
		)
		if err := rows.Scan(&id, &uid, &e.Action, &e.Entity, &eid, &e.Metadata, &e.CreatedAt); err != nil {
			return nil, 0, err
		}
		e.ID = uint(id)
		if uid != nil {
			v := uint(*uid)
			e.UserID = &v
		}
		if eid != nil {
			v := uint(*eid)
			e.EntityID = &v
		}
		out = append(out, e)
	}
	return out, total, rows.Err()
}

var (
	_ domain.UserDirectory    = (*Store)(nil)
	_ domain.AppointmentStore = (*Store)(nil)
	_ user.Repository         = (*Store)(nil)
	_ audit.Sink              = (*Store)(nil)
	_ audit.Reader            = (*Store)(nil)
)

package audit

import (
	"context"
	"time"

	"github.com/BruksfildServices01/team-scheduler/internal/models"
)

// Filter selects one user's audit rows. Zero values mean no constraint.
type Filter struct {
	UserID uint
	Action string
	Entity string
	From   time.Time
	To     time.Time
	Limit  int
	Offset int
}

// Reader lists audit rows, newest first, with the unpaged total.
type Reader interface {
	ListAuditLogs(ctx context.Context, f Filter) ([]models.AuditLog, int64, error)
}

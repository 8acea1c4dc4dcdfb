package main

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/BruksfildServices01/team-scheduler/internal/audit"
	"github.com/BruksfildServices01/team-scheduler/internal/config"
	dbpkg "github.com/BruksfildServices01/team-scheduler/internal/db"
	"github.com/BruksfildServices01/team-scheduler/internal/infra/pgstore"
	"github.com/BruksfildServices01/team-scheduler/internal/infra/repository"
	"github.com/BruksfildServices01/team-scheduler/internal/logger"
	"github.com/BruksfildServices01/team-scheduler/internal/routes"
)

type backend interface {
	routes.Store
	audit.Sink
}

// openStore returns the configured backend and a function that releases it.
func openStore(ctx context.Context, cfg config.DatabaseConfig) (backend, func(), error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Driver)) {
	case "pgx":
		s, err := pgstore.Connect(ctx, cfg.URL)
		if err != nil {
			return nil, nil, err
		}
		if err := s.Migrate(ctx); err != nil {
			s.Close()
			return nil, nil, err
		}
		return s, s.Close, nil

	default:
		gdb, err := dbpkg.NewDB(cfg)
		if err != nil {
			return nil, nil, err
		}
		sqlDB, err := gdb.DB()
		if err != nil {
			return nil, nil, fmt.Errorf("db: get sql.DB: %w", err)
		}
		closeFn := func() {
			if err := sqlDB.Close(); err != nil {
				logger.WithModule("db").Warn("close database failed", zap.Error(err))
			}
		}
		return repository.NewGormRepository(gdb), closeFn, nil
	}
}

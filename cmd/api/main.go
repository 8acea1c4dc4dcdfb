package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/team-scheduler/internal/audit"
	"github.com/BruksfildServices01/team-scheduler/internal/config"
	"github.com/BruksfildServices01/team-scheduler/internal/infra/cache"
	"github.com/BruksfildServices01/team-scheduler/internal/logger"
	"github.com/BruksfildServices01/team-scheduler/internal/middleware"
	"github.com/BruksfildServices01/team-scheduler/internal/routes"
	"github.com/BruksfildServices01/team-scheduler/internal/validators"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("team-scheduler", flag.ContinueOnError)
	configDir := fs.String("config", "", "directory containing config.yaml")
	if err := fs.Parse(args); err != nil {
		return err
	}

	var paths []string
	if *configDir != "" {
		paths = append(paths, *configDir)
	}
	cfg, err := config.Load(paths...)
	if err != nil {
		return err
	}

	if err := logger.Init(cfg.Server.LogLevel); err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer logger.Sync() //nolint:errcheck

	log := logger.WithModule("bootstrap")

	if err := validators.Register(); err != nil {
		return fmt.Errorf("register validators: %w", err)
	}

	// --------------------------------------------------
	// Storage
	// --------------------------------------------------
	store, closeStore, err := openStore(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer closeStore()

	deps := routes.Deps{Store: store}

	if cfg.Cache.Redis.Enabled {
		rc := cfg.Cache.Redis
		client, err := cache.NewRedisClient(ctx, rc.Address, rc.Password, rc.DB)
		if err != nil {
			log.Warn("redis unavailable, using direct user lookups", zap.Error(err))
		} else {
			defer client.Close()
			deps.Directory = cache.NewUserDirectory(store, client, rc.TTL)
			log.Info("redis connected", zap.String("addr", rc.Address))
		}
	}

	// --------------------------------------------------
	// Background workers
	// --------------------------------------------------
	dispatcher := audit.NewDispatcher(audit.New(store), cfg.Scheduling.AuditBuffer)
	defer dispatcher.Close()
	deps.Audit = dispatcher

	limiter := middleware.NewRateLimiter(cfg.RateLimit.LoginRPS, cfg.RateLimit.LoginBurst)
	sweepStop := make(chan struct{})
	defer close(sweepStop)
	go limiter.Run(sweepStop)
	deps.LoginLimiter = limiter

	// --------------------------------------------------
	// HTTP
	// --------------------------------------------------
	gin.SetMode(cfg.Server.Mode)
	r := gin.New()
	r.Use(gin.Recovery())
	routes.RegisterRoutes(r, cfg, deps)

	server := &http.Server{
		Addr:    cfg.Addr(),
		Handler: r,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Info("server listening",
			zap.String("addr", server.Addr),
			zap.String("driver", cfg.Database.Driver),
			zap.Int("work_start_hour", cfg.Scheduling.WorkStartHour),
			zap.Int("work_end_hour", cfg.Scheduling.WorkEndHour),
		)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case <-ctx.Done():
		log.Info("shutdown signal received")
	case err := <-serverErr:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("graceful shutdown: %w", err)
	}

	log.Info("server stopped gracefully")
	return nil
}

package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/BruksfildServices01/team-scheduler/internal/audit"
	"github.com/BruksfildServices01/team-scheduler/internal/auth"
	"github.com/BruksfildServices01/team-scheduler/internal/config"
	domain "github.com/BruksfildServices01/team-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/team-scheduler/internal/handlers"
	"github.com/BruksfildServices01/team-scheduler/internal/middleware"
	"github.com/BruksfildServices01/team-scheduler/internal/timezone"
	ucAppointment "github.com/BruksfildServices01/team-scheduler/internal/usecase/appointment"
	ucUser "github.com/BruksfildServices01/team-scheduler/internal/usecase/user"
)

// Store is everything the HTTP layer needs from persistence. The gorm
// repository and the pgx store both satisfy it.
type Store interface {
	domain.UserDirectory
	domain.AppointmentStore
	ucUser.Repository
	audit.Reader
}

type Deps struct {
	Store Store
	// Directory overrides Store for user lookups, e.g. with a cache.
	Directory    domain.UserDirectory
	Audit        *audit.Dispatcher
	LoginLimiter *middleware.RateLimiter
}

func RegisterRoutes(r *gin.Engine, cfg *config.Config, deps Deps) {

	// ======================================================
	// MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(
		middleware.RequestID(),
		middleware.Logger(),
		middleware.Metrics(),
		middleware.CORSMiddleware(cfg.Server.AllowedOrigins),
	)

	// ======================================================
	// INFRA
	// ======================================================
	directory := deps.Directory
	if directory == nil {
		directory = deps.Store
	}

	tokens := auth.NewIssuer(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)

	policy := domain.HourWindow{
		Open:  cfg.Scheduling.WorkStartHour,
		Close: cfg.Scheduling.WorkEndHour,
	}
	validator := domain.NewBookingValidator(directory, timezone.Converter{}, policy)

	loginLimiter := deps.LoginLimiter
	if loginLimiter == nil {
		loginLimiter = middleware.NewRateLimiter(cfg.RateLimit.LoginRPS, cfg.RateLimit.LoginBurst)
	}

	// ======================================================
	// USE CASES
	// ======================================================
	userService := ucUser.NewService(deps.Store, tokens, deps.Audit)
	createAppointmentUC := ucAppointment.NewCreateAppointment(validator, deps.Store, deps.Audit)
	listAppointmentsUC := ucAppointment.NewListAppointments(directory, deps.Store)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(userService)
	meHandler := handlers.NewMeHandler(directory)
	userHandler := handlers.NewUserHandler(directory)
	appointmentHandler := handlers.NewAppointmentHandler(createAppointmentUC, listAppointmentsUC)
	auditLogsHandler := handlers.NewAuditLogsHandler(deps.Store)

	// ======================================================
	// OPS
	// ======================================================
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// AUTH
		// ------------------------------
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", loginLimiter.Middleware(), authHandler.Login)

		// ------------------------------
		// PRIVATE
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(tokens))
		{
			secured.GET("/me", meHandler.GetMe)
			secured.GET("/me/audit-logs", auditLogsHandler.List)

			secured.GET("/users", userHandler.List)

			secured.GET("/appointments", appointmentHandler.List)
			secured.POST("/appointments", appointmentHandler.Create)
		}
	}
}

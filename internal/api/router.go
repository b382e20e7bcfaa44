package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/medibook/appointment-system/internal/api/handler"
	"github.com/medibook/appointment-system/internal/api/middleware"
	"github.com/medibook/appointment-system/internal/core/service"
	"github.com/medibook/appointment-system/internal/core/session"
	mongodb "github.com/medibook/appointment-system/internal/infrastructure/db/mongo"
	redisinfra "github.com/medibook/appointment-system/internal/infrastructure/db/redis"
	"github.com/medibook/appointment-system/internal/pkg/config"
)

// NewRouter builds and returns the Echo instance with all routes registered.
// The audit enqueuer is constructed by the caller because its worker pool is
// tied to the process lifecycle.
func NewRouter(
	db *mongo.Database,
	rdb *redis.Client,
	cfg *config.Config,
	log zerolog.Logger,
	audit service.AuditEnqueuer,
) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)
	e.Validator = handler.NewValidator()

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("appointments"))

	// --- Repositories ---
	bookingRepo := mongodb.NewBookingRepository(db)
	physicianRepo := mongodb.NewPhysicianRepository(db)
	userRepo := mongodb.NewUserRepository(db)
	roleRepo := mongodb.NewRoleRepository(db, userRepo)
	paymentRepo := mongodb.NewPaymentRepository(db)

	// --- Services ---
	availability := service.NewAvailabilityEngine(nil)
	bookingService := service.NewBookingService(bookingRepo, physicianRepo, availability, audit, log)
	authService := service.NewAuthService(userRepo, roleRepo, cfg.JWTSecret, time.Duration(cfg.TokenTTLHours)*time.Hour, log)
	roleService := service.NewRoleService(roleRepo, log)
	physicianService := service.NewPhysicianService(physicianRepo, bookingRepo, log)
	userService := service.NewUserService(userRepo, roleRepo, log)
	paymentService := service.NewPaymentService(paymentRepo, log)
	sessions := session.NewManager(redisinfra.NewSessionCacheFactory(rdb), log)

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(authService, sessions)
	bookingHandler := handler.NewBookingHandler(bookingService)
	availabilityHandler := handler.NewAvailabilityHandler(availability)
	roleHandler := handler.NewRoleHandler(roleService)
	physicianHandler := handler.NewPhysicianHandler(physicianService)
	userHandler := handler.NewUserHandler(userService)
	paymentHandler := handler.NewPaymentHandler(paymentService)
	healthHandler := handler.NewHealthHandler(db, rdb)

	authMW := middleware.Auth(cfg.JWTSecret)

	// --- Public routes ---
	e.POST("/v1/auth/login", authHandler.Login)
	e.GET("/v1/availability", availabilityHandler.Slots)
	e.POST("/v1/bookings", bookingHandler.Create) // booking form is customer-facing
	e.GET("/v1/physicians", physicianHandler.List)

	// --- Authenticated routes ---
	auth := e.Group("/v1", authMW)
	auth.POST("/auth/logout", authHandler.Logout)
	auth.GET("/auth/session", authHandler.Session)
	auth.GET("/bookings", bookingHandler.List)
	auth.GET("/bookings/:reference", bookingHandler.Get)
	auth.POST("/bookings/:reference/confirm", bookingHandler.Confirm)
	auth.POST("/bookings/:reference/cancel", bookingHandler.Cancel)
	auth.POST("/bookings/:reference/complete", bookingHandler.Complete)

	// --- Admin-only resources, gated by the console navigation policy ---
	physicians := e.Group("/v1/physicians", authMW, middleware.Access("/admin/physicians"))
	physicians.GET("/:id", physicianHandler.Get)
	physicians.POST("", physicianHandler.Create)
	physicians.PUT("/:id", physicianHandler.Update)
	physicians.DELETE("/:id", physicianHandler.Delete)

	roles := e.Group("/v1/roles", authMW, middleware.Access("/admin/roles"))
	roles.GET("", roleHandler.List)
	roles.POST("", roleHandler.Create)
	roles.PUT("/:id", roleHandler.Update)
	roles.DELETE("/:id", roleHandler.Delete)

	users := e.Group("/v1/users", authMW, middleware.Access("/admin/users"))
	users.GET("", userHandler.List)
	users.POST("", userHandler.Create)
	users.PUT("/:id", userHandler.Update)
	users.DELETE("/:id", userHandler.Delete)

	payments := e.Group("/v1/payments", authMW, middleware.Access("/admin/payments"))
	payments.GET("", paymentHandler.List)
	payments.POST("", paymentHandler.Create)

	// --- Health probes and metrics (no auth required) ---
	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}

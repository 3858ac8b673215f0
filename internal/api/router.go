package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/collabhub/identity-service/internal/api/handler"
	"github.com/collabhub/identity-service/internal/api/middleware"
	"github.com/collabhub/identity-service/internal/core/ports"
	"github.com/collabhub/identity-service/internal/core/service"
	"github.com/collabhub/identity-service/internal/infrastructure/config"
	mongostore "github.com/collabhub/identity-service/internal/infrastructure/db/mongo"
	redisinfra "github.com/collabhub/identity-service/internal/infrastructure/db/redis"
	"github.com/collabhub/identity-service/internal/infrastructure/http/handlers"
)

// NewRouter builds and returns the Echo instance with all routes registered.
// The delivery queue is owned by the caller so its worker lifecycle outlives
// any single request.
func NewRouter(db *mongo.Database, rdb *redis.Client, cfg *config.Config, deliveries ports.DeliveryQueue, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("identity"))

	// --- Dependencies ---
	store := mongostore.NewUserStore(db)
	col := service.NewCollection(store)
	identity := service.NewIdentityService(col)
	sessions := service.NewSessionService(cfg.JWTSecret, cfg.JWTTTL)
	throttle := redisinfra.NewResetThrottle(rdb, 0, 0)
	resets := service.NewPasswordResetService(col, throttle, deliveries, log)

	authHandler := handler.NewAuthHandler(identity, sessions, resets, !cfg.Production())
	oauthHandler := handler.NewOAuthHandler(identity, sessions)
	authMiddleware := middleware.Auth(cfg.JWTSecret)

	// --- Auth routes ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)
	e.POST("/auth/login/phone", authHandler.LoginPhone)
	e.POST("/auth/forgot-password", authHandler.ForgotPassword)
	e.POST("/auth/reset-password", authHandler.ResetPassword)
	e.POST("/auth/oauth/:provider", oauthHandler.Resolve)
	e.GET("/auth/me", authHandler.Me, authMiddleware)

	// --- Observability ---
	e.GET("/metrics", echoprometheus.NewHandler())

	// --- Health probes (no auth required) ---
	healthHandler := handlers.NewHealthHandler()
	healthDepsHandler := handlers.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	return e
}

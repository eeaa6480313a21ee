package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/acquisitions/accounts-api/internal/api/handler"
	"github.com/acquisitions/accounts-api/internal/api/middleware"
	"github.com/acquisitions/accounts-api/internal/core/domain"
	"github.com/acquisitions/accounts-api/internal/core/ports"
	"github.com/acquisitions/accounts-api/internal/core/service"
	mongodb "github.com/acquisitions/accounts-api/internal/infrastructure/db/mongo"
	redisdb "github.com/acquisitions/accounts-api/internal/infrastructure/db/redis"
	"github.com/acquisitions/accounts-api/internal/pkg/config"
)

// NewRouter builds and returns the Echo instance with all routes registered.
// The audit trail is passed in already started: its worker lifecycle is
// owned by main, not by the router.
func NewRouter(cfg *config.Config, codec ports.TokenCodec, db *mongo.Database, rdb *redis.Client, audit ports.AuditTrail, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)
	e.Validator = handler.NewValidator()

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Secure())
	e.Use(echomiddleware.BodyLimit("100K"))
	e.Use(echomiddleware.Gzip())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins:     cfg.Origins(),
		AllowCredentials: true,
	}))
	e.Use(echomiddleware.LoggerWithConfig(echomiddleware.LoggerConfig{
		Skipper: func(c echo.Context) bool { return c.Path() == "/health" },
	}))
	e.Use(echoprometheus.NewMiddleware("accounts"))

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(db)
	authService := service.NewAuthService(userRepo, cfg.BcryptCost, log)
	userService := service.NewUserService(userRepo, log)

	authHandler := handler.NewAuthHandler(authService, codec, audit, cfg.IsProduction())
	userHandler := handler.NewUserHandler(userService, audit)

	authenticate := middleware.Authenticate(codec, log)
	limiter := redisdb.NewFixedWindowLimiter(rdb, cfg.RateLimit.Max, cfg.RateLimit.Window)

	// --- Auth routes (rate limited to slow brute force) ---
	auth := e.Group("/auth", middleware.RateLimit(limiter, "auth", log))
	auth.POST("/sign-up", authHandler.SignUp)
	auth.POST("/sign-in", authHandler.SignIn)
	auth.POST("/sign-out", authHandler.SignOut)

	// --- User routes ---
	users := e.Group("/users", authenticate, middleware.RequireAuthenticated())
	users.GET("", userHandler.List, middleware.RequireRole(domain.RoleAdmin))
	users.GET("/:id", userHandler.GetByID, middleware.RequireSelfOrRole("id", domain.RoleAdmin))
	users.PUT("/:id", userHandler.Update, middleware.RequireSelfOrRole("id", domain.RoleAdmin))
	users.DELETE("/:id", userHandler.Delete, middleware.RequireSelfOrRole("id", domain.RoleAdmin))

	// --- Health probes and metrics (no auth required) ---
	healthHandler := handler.NewHealthHandler(db, rdb)
	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthHandler.Readiness)     // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}

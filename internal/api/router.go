package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/blendpos/pos-backend/internal/api/handler"
	"github.com/blendpos/pos-backend/internal/api/middleware"
	"github.com/blendpos/pos-backend/internal/core/domain"
	"github.com/blendpos/pos-backend/internal/core/ports"
	"github.com/blendpos/pos-backend/internal/core/service"
	mongodb "github.com/blendpos/pos-backend/internal/infrastructure/db/mongo"
	"github.com/blendpos/pos-backend/internal/pkg/config"
)

// NewRouter builds and returns the Echo instance with all routes registered.
// The services are wired together exactly once here and handed to handlers by
// reference; nothing is ambient.
func NewRouter(db *mongo.Database, rdb *redis.Client, cfg *config.Config, audit ports.AuditRecorder, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.Gzip())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: []string{cfg.FrontendURL},
	}))
	e.Use(echoprometheus.NewMiddleware("pos"))

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(db)
	roleRepo := mongodb.NewRoleRepository(db)
	hasher := service.NewBcryptHasher(cfg.BcryptCost)
	tokens := service.NewJWTTokenService(cfg.JWTSecret)
	userService := service.NewUserService(userRepo, roleRepo, hasher, tokens, audit, service.UserServiceOptions{
		TokenTTL:            cfg.JWTTTL,
		ListIncludeInactive: cfg.UsersListIncludeInactive,
	}, log)
	roleService := service.NewCatalogRoleService(roleRepo)

	userHandler := handler.NewUserHandler(userService)
	roleHandler := handler.NewRoleHandler(roleService)

	authn := middleware.Auth(tokens, log)
	loginLimiter := middleware.NewLoginRateLimiter(rdb, cfg.LoginRateMax, cfg.LoginRateWindow, log)

	// --- Public routes ---
	e.POST("/api/auth/login", userHandler.Login, loginLimiter.Middleware())
	e.POST("/api/auth/register", userHandler.Register)

	// --- Protected routes: one declarative policy per operation ---
	users := e.Group("/api/users", authn)
	users.GET("", userHandler.List, middleware.Guard(domain.Policy{
		AllowedRoles: []string{domain.RoleAdmin},
	}))
	users.GET("/:id", userHandler.Get, middleware.Guard(domain.Policy{
		AllowedRoles: []string{domain.RoleAdmin, domain.RoleSupervisor},
		AllowSelf:    true,
	}))
	users.PUT("/:id", userHandler.Update, middleware.Guard(domain.Policy{
		AllowedRoles: []string{domain.RoleAdmin},
		AllowSelf:    true,
	}))
	users.DELETE("/:id", userHandler.Delete, middleware.Guard(domain.Policy{
		AllowedRoles: []string{domain.RoleAdmin},
	}))

	roles := e.Group("/api/roles", authn)
	roles.GET("", roleHandler.List, middleware.Guard(domain.Policy{
		AllowedRoles: []string{domain.RoleAdmin, domain.RoleSupervisor},
	}))

	// --- Health probes and metrics (no auth required) ---
	healthHandler := handler.NewHealthHandler(cfg.Env)
	healthDepsHandler := handler.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}

package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/gunceapp/diary-api/docs"
	"github.com/gunceapp/diary-api/internal/api/handler"
	"github.com/gunceapp/diary-api/internal/api/middleware"
	"github.com/gunceapp/diary-api/internal/core/domain"
	"github.com/gunceapp/diary-api/internal/core/service"
	"github.com/gunceapp/diary-api/internal/infrastructure/config"
	mongodb "github.com/gunceapp/diary-api/internal/infrastructure/db/mongo"
	redisdb "github.com/gunceapp/diary-api/internal/infrastructure/db/redis"
	"github.com/gunceapp/diary-api/internal/infrastructure/queue"
)

// NewRouter builds the Echo instance with all routes registered and returns
// it together with the audit dispatcher, which the caller must Start.
func NewRouter(db *mongo.Database, rdb *redis.Client, cfg *config.Config, log zerolog.Logger) (*echo.Echo, *queue.Dispatcher, error) {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("diary"))

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(db)
	sessionRepo := mongodb.NewSessionRepository(db)
	auditRepo := mongodb.NewAuditRepository(db)
	sessionCache := redisdb.NewSessionCache(rdb)

	issuer, err := service.NewTokenIssuer(service.TokenConfig{
		AccessSecret:  cfg.Auth.AccessSecret,
		RefreshSecret: cfg.Auth.RefreshSecret,
		AccessTTL:     cfg.Auth.AccessTTL,
		RefreshTTL:    cfg.Auth.RefreshTTL,
	})
	if err != nil {
		return nil, nil, err
	}

	auditService := service.NewAuditService(auditRepo, log)
	dispatcher := queue.NewDispatcher(cfg.Audit.Workers, auditService, log)

	authService := service.NewAuthService(
		userRepo,
		sessionRepo,
		service.NewPasswordHasher(),
		issuer,
		sessionCache,
		dispatcher,
		cfg.Auth.RotateRefresh,
		log,
	)

	authHandler := handler.NewAuthHandler(authService, handler.CookieConfig{
		Secure: cfg.IsProduction(),
		TTL:    cfg.Auth.RefreshTTL,
	}, log)
	adminHandler := handler.NewAdminHandler(auditService)
	requireAuth := middleware.Auth(issuer)
	requireAdmin := middleware.RequireRole(userRepo, domain.RoleAdmin)

	// --- Auth routes ---
	auth := e.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.POST("/google", authHandler.GoogleLogin)
	auth.POST("/refresh", authHandler.Refresh)
	auth.POST("/logout", authHandler.Logout)
	auth.POST("/logout-all", authHandler.LogoutAll, requireAuth)
	auth.POST("/change-password", authHandler.ChangePassword, requireAuth)
	auth.GET("/me", authHandler.Me, requireAuth)

	// --- Admin routes ---
	admin := e.Group("/admin", requireAuth, requireAdmin)
	admin.GET("/auth-events", adminHandler.ListAuthEvents)

	// --- Observability (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e, dispatcher, nil
}

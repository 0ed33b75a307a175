package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/tkaing/ecologie-api/internal/api/handler"
	"github.com/tkaing/ecologie-api/internal/api/validation"
	"github.com/tkaing/ecologie-api/internal/core/ports"
	"github.com/tkaing/ecologie-api/internal/core/schema"
	"github.com/tkaing/ecologie-api/internal/core/service"
	mongodb "github.com/tkaing/ecologie-api/internal/infrastructure/db/mongo"
	redisdb "github.com/tkaing/ecologie-api/internal/infrastructure/db/redis"
)

// NewRouter builds and returns the Echo instance with every resource route
// registered. rdb may be nil; login throttling is then disabled.
func NewRouter(db *mongo.Database, rdb *redis.Client, jwtSecret string, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("ecologie"))

	// --- Shared dependencies ---
	validate := validation.New()
	creds := service.NewCredentialService(jwtSecret, 24*time.Hour)

	var limiter ports.LoginLimiter
	if rdb != nil {
		limiter = redisdb.NewLoginLimiter(rdb)
	}

	// --- Resource routes, one generic handler per descriptor ---
	for _, desc := range schema.All() {
		repo := mongodb.NewDocumentRepository(db, desc.Name)
		svc := service.NewResourceService(desc, repo, creds, limiter, log)
		handler.NewResourceHandler(desc, svc, validate).Register(e)
	}

	// --- Health probes and metrics (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}

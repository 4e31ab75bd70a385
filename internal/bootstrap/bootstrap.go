// Package bootstrap wires the application together: configuration,
// logging, database, cache, services, controllers, and routes.
package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/campustrack/campustrack/internal/app/controllers"
	"github.com/campustrack/campustrack/internal/app/migrations"
	"github.com/campustrack/campustrack/internal/app/repositories"
	"github.com/campustrack/campustrack/internal/app/routes"
	"github.com/campustrack/campustrack/internal/app/services"
	"github.com/campustrack/campustrack/internal/cache"
	"github.com/campustrack/campustrack/internal/config"
	"github.com/campustrack/campustrack/internal/db"
	"github.com/campustrack/campustrack/internal/middleware"
	"github.com/campustrack/campustrack/internal/pkg/auth"
	"github.com/campustrack/campustrack/internal/pkg/logger"
	"github.com/campustrack/campustrack/internal/seed"
)

// Dependencies holds everything the server needs to run.
type Dependencies struct {
	Config   *config.Config
	Database *db.PostgresDB
	Cache    *cache.Redis

	Repositories *repositories.Repositories
	Services     *services.Services

	AuthController        *controllers.AuthController
	StudentController     *controllers.StudentController
	FacultyController     *controllers.FacultyController
	ActivityController    *controllers.ActivityController
	CertificateController *controllers.CertificateController
	EventController       *controllers.EventController
	AnalyticsController   *controllers.AnalyticsController

	AuthMiddleware *middleware.AuthMiddleware
}

// LoadConfigAndSetupLogger loads the configuration and configures the
// global logger from it.
func LoadConfigAndSetupLogger() (*config.Config, error) {
	cfg, err := config.LoadConfig("configs/config.yaml")
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logger.Configure(logger.Config{
		Level:  logger.LogLevel(cfg.Logging.Level),
		Pretty: cfg.Logging.Format != "json",
	})

	logger.Info().
		Str("mode", cfg.Server.Mode).
		Str("port", cfg.Server.Port).
		Msg("Configuration loaded")

	return cfg, nil
}

// SetupDatabase connects to PostgreSQL, applies pending migrations and
// seeds the default dataset.
func SetupDatabase(cfg *config.Config) (*db.PostgresDB, error) {
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	migrator := migrations.NewMigrator(database.Pool)
	if err := migrator.MigrateFromDirectory("migrations"); err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := seed.CreateDefaultData(ctx, database.Pool, logger.With("component", "seed")); err != nil {
		logger.Warn().Err(err).Msg("Seeding default data failed")
	}

	return database, nil
}

// BuildDependencies constructs the full dependency graph.
func BuildDependencies(cfg *config.Config, database *db.PostgresDB) (*Dependencies, error) {
	accessExp, err := time.ParseDuration(cfg.JWT.AccessTokenExpiration)
	if err != nil {
		return nil, fmt.Errorf("invalid access token expiration: %w", err)
	}
	refreshExp, err := time.ParseDuration(cfg.JWT.RefreshTokenExpiration)
	if err != nil {
		return nil, fmt.Errorf("invalid refresh token expiration: %w", err)
	}

	jwtService := auth.NewJWTService(auth.JWTConfig{
		SecretKey:       cfg.JWT.Secret,
		AccessTokenExp:  accessExp,
		RefreshTokenExp: refreshExp,
		TokenIssuer:     cfg.JWT.Issuer,
	})

	analyticsCache := cache.NewRedis(cfg.Redis.Addr, cfg.CacheTTL())

	repos := repositories.NewRepositories(database.Pool)
	svcs := services.NewServices(repos, jwtService, analyticsCache)

	deps := &Dependencies{
		Config:       cfg,
		Database:     database,
		Cache:        analyticsCache,
		Repositories: repos,
		Services:     svcs,

		AuthController:        controllers.NewAuthController(svcs.AuthService),
		StudentController:     controllers.NewStudentController(svcs.StudentService, svcs.ActivityService, svcs.CertificateService),
		FacultyController:     controllers.NewFacultyController(svcs.FacultyService),
		ActivityController:    controllers.NewActivityController(svcs.ActivityService, svcs.AnalyticsService),
		CertificateController: controllers.NewCertificateController(svcs.CertificateService, svcs.AnalyticsService),
		EventController:       controllers.NewEventController(svcs.EventService, svcs.AnalyticsService),
		AnalyticsController:   controllers.NewAnalyticsController(svcs.AnalyticsService),

		AuthMiddleware: middleware.NewAuthMiddleware(jwtService),
	}

	return deps, nil
}

// SetupRouter creates the gin engine with all middleware and routes.
func SetupRouter(deps *Dependencies) *gin.Engine {
	if deps.Config.Server.Mode == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger())
	router.Use(middleware.CORS())

	limiter := middleware.NewTokenBucket(deps.Config.RateLimit.Capacity, deps.Config.RateLimit.PerMinute)
	router.Use(limiter.GinMiddleware())

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.GET("/healthz", func(ctx *gin.Context) {
		checkCtx, cancel := context.WithTimeout(ctx.Request.Context(), 2*time.Second)
		defer cancel()

		if err := deps.Database.Pool.Ping(checkCtx); err != nil {
			ctx.JSON(http.StatusServiceUnavailable, gin.H{"status": "down", "database": "down"})
			return
		}
		// The cache is best effort; a missing redis degrades but does not
		// fail the check.
		cache := "ok"
		if !deps.Cache.Healthy(checkCtx) {
			cache = "down"
		}
		ctx.JSON(http.StatusOK, gin.H{"status": "ok", "cache": cache})
	})

	routes.SetupRouter(
		router,
		deps.AuthController,
		deps.StudentController,
		deps.FacultyController,
		deps.ActivityController,
		deps.CertificateController,
		deps.EventController,
		deps.AnalyticsController,
		deps.AuthMiddleware,
	)

	return router
}

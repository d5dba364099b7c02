package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/group7/resmatch/internal/app/controllers"
	appMigrations "github.com/group7/resmatch/internal/app/migrations"
	appRepos "github.com/group7/resmatch/internal/app/repositories"
	appRoutes "github.com/group7/resmatch/internal/app/routes"
	appServices "github.com/group7/resmatch/internal/app/services"
	"github.com/group7/resmatch/internal/config"
	"github.com/group7/resmatch/internal/db"
	"github.com/group7/resmatch/internal/middleware"
	"github.com/group7/resmatch/internal/pkg/auth"
	"github.com/group7/resmatch/internal/pkg/helpers"
	"github.com/group7/resmatch/internal/pkg/logger"
)

// DefaultConfigPath is used when no --config flag is given.
const DefaultConfigPath = "configs/config.yaml"

// Dependencies holds what the load and serve commands share
type Dependencies struct {
	DB          *db.PostgresDB
	Repos       *appRepos.Repositories
	LoadService *appServices.LoadService
	Logger      zerolog.Logger
}

// Close releases the database pool.
func (d *Dependencies) Close() {
	if d.DB != nil {
		d.DB.Close()
	}
}

// LoadConfigAndSetupLogger loads .env, then the configuration, and initializes the logger.
func LoadConfigAndSetupLogger(configPath string) (*config.Config, zerolog.Logger, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		logger.Warn().Err(err).Msg("Failed to read .env file")
	}

	if configPath == "" {
		configPath = DefaultConfigPath
	}
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Str("path", configPath).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.LogLevel(strings.ToLower(cfg.Logging.Level))
	prettyLog := strings.ToLower(cfg.Logging.Format) == "text"

	logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: prettyLog,
		Output: os.Stderr,
	})

	lgr := log.Logger
	lgr.Debug().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Str("config", configPath).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupDatabase establishes the database connection and runs migrations.
func SetupDatabase(ctx context.Context, cfg *config.Config, lgr zerolog.Logger) (*db.PostgresDB, error) {
	lgr.Info().Str("host", cfg.Database.Host).Str("db", cfg.Database.DBName).Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(ctx, cfg, lgr)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}
	lgr.Info().Msg("Database connection successfully established.")

	migrationsDir := cfg.Database.MigrationsDir
	if _, err := os.Stat(migrationsDir); errors.Is(err, fs.ErrNotExist) {
		database.Close()
		lgr.Error().Str("path", migrationsDir).Msg("Migrations directory not found")
		return nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}

	lgr.Info().Str("path", migrationsDir).Msg("Running database migrations...")
	migrator := appMigrations.NewMigrator(database.Pool, lgr)
	if err := migrator.MigrateFromDirectory(ctx, migrationsDir); err != nil {
		database.Close()
		lgr.Error().Err(err).Msg("Database migration error")
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}
	lgr.Info().Msg("Database migrations successfully applied.")

	return database, nil
}

// BuildDependencies connects, migrates and wires the load service.
func BuildDependencies(ctx context.Context, cfg *config.Config, lgr zerolog.Logger) (*Dependencies, error) {
	database, err := SetupDatabase(ctx, cfg, lgr)
	if err != nil {
		return nil, err
	}

	deps := &Dependencies{DB: database, Logger: lgr}
	deps.Repos = appRepos.NewRepositories(database.Pool, lgr)
	deps.LoadService = appServices.NewLoadService(deps.Repos.SeedRepository, lgr)
	return deps, nil
}

// APIDependencies holds what the serve command needs on top of Dependencies
type APIDependencies struct {
	*Dependencies
	Controllers    appRoutes.Controllers
	AuthMiddleware *middleware.AuthMiddleware
	Metrics        *middleware.Metrics
}

// BuildAPIDependencies wires JWT, the API services and their controllers.
func BuildAPIDependencies(ctx context.Context, cfg *config.Config, lgr zerolog.Logger) (*APIDependencies, error) {
	deps, err := BuildDependencies(ctx, cfg, lgr)
	if err != nil {
		return nil, err
	}

	jwtService := auth.NewJWTService(auth.JWTConfig{
		SecretKey:       cfg.JWT.Secret,
		AccessTokenExp:  helpers.ParseDuration(cfg.JWT.AccessTokenExpiration, 15*time.Minute),
		RefreshTokenExp: helpers.ParseDuration(cfg.JWT.RefreshTokenExpiration, 7*24*time.Hour),
		TokenIssuer:     cfg.JWT.Issuer,
	})
	policy := appServices.LoginPolicy{
		MaxFailures: cfg.Auth.MaxLoginFailures,
		Window:      helpers.ParseDuration(cfg.Auth.LoginFailureWindow, 5*time.Minute),
	}

	repos := deps.Repos
	authService := appServices.NewAuthService(repos.UserRepository, repos.SessionRepository, jwtService, policy, lgr)
	resourceService := appServices.NewResourceService(repos.ResourceRepository, repos.UserRepository, lgr)
	studentService := appServices.NewStudentService(repos.StudentRepository, repos.UserRepository, lgr)
	applicationService := appServices.NewApplicationService(repos.ApplicationRepository, repos.ResourceRepository, repos.StudentRepository, lgr)

	if n, err := repos.SessionRepository.CleanupExpired(ctx, time.Now(), policy.Window); err != nil {
		lgr.Warn().Err(err).Msg("Failed to clean up expired sessions")
	} else if n > 0 {
		lgr.Debug().Int64("sessions", n).Msg("Expired sessions removed at startup")
	}

	return &APIDependencies{
		Dependencies: deps,
		Controllers: appRoutes.Controllers{
			Auth:        controllers.NewAuthController(authService, lgr),
			Resource:    controllers.NewResourceController(resourceService, lgr),
			Student:     controllers.NewStudentController(studentService, lgr),
			Application: controllers.NewApplicationController(applicationService, lgr),
		},
		AuthMiddleware: middleware.NewAuthMiddleware(jwtService),
		Metrics:        middleware.NewMetrics(),
	}, nil
}

// GinMode maps server.mode to a gin mode; "production" is an alias of release.
func GinMode(mode string) string {
	switch strings.ToLower(mode) {
	case "production", gin.ReleaseMode:
		return gin.ReleaseMode
	case gin.TestMode:
		return gin.TestMode
	default:
		return gin.DebugMode
	}
}

// SetupRouter builds the gin engine with the API routes, /health and /metrics.
func SetupRouter(cfg *config.Config, deps *APIDependencies, lgr zerolog.Logger) *gin.Engine {
	mode := GinMode(cfg.Server.Mode)
	gin.SetMode(mode)
	lgr.Info().Str("mode", mode).Msg("Gin mode set")

	router := gin.New()
	router.Use(gin.Recovery(), middleware.RequestLogger(lgr), deps.Metrics.Middleware())

	appRoutes.SetupRouter(router, deps.Controllers, deps.AuthMiddleware)

	router.GET("/health", func(c *gin.Context) {
		if err := deps.DB.Pool.Ping(c.Request.Context()); err != nil {
			lgr.Warn().Err(err).Msg("Health check failed")
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(deps.Metrics.Handler()))

	return router
}

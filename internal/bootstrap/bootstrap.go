package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	appControllers "github.com/yigit/claimboard/internal/app/controllers"
	appMigrations "github.com/yigit/claimboard/internal/app/migrations"
	appRepos "github.com/yigit/claimboard/internal/app/repositories"
	appRoutes "github.com/yigit/claimboard/internal/app/routes"
	appServices "github.com/yigit/claimboard/internal/app/services"
	"github.com/yigit/claimboard/internal/config"
	"github.com/yigit/claimboard/internal/db"
	appMiddleware "github.com/yigit/claimboard/internal/middleware"
	pkgAuth "github.com/yigit/claimboard/internal/pkg/auth"
	"github.com/yigit/claimboard/internal/pkg/cache"
	"github.com/yigit/claimboard/internal/pkg/events"
	"github.com/yigit/claimboard/internal/pkg/filestorage"
	"github.com/yigit/claimboard/internal/pkg/logger"
	"github.com/yigit/claimboard/internal/seed"
)

// ConfigPathEnv overrides the default config file location
const ConfigPathEnv = "CLAIMBOARD_CONFIG"

// HealthCheck reports whether a backing service answers
type HealthCheck func(ctx context.Context) error

// Dependencies holds all the application dependencies
type Dependencies struct {
	UserService           appServices.UserService
	ClaimService          appServices.ClaimService
	LeaderboardService    appServices.LeaderboardService
	FallbackMentor        appServices.FallbackMentorResolver
	UserController        *appControllers.UserController
	ClaimController       *appControllers.ClaimController
	LeaderboardController *appControllers.LeaderboardController
	AuthMiddleware        *appMiddleware.AuthMiddleware
	Repos                 *appRepos.Repositories
	JWTService            *pkgAuth.JWTService
	FileStorage           *filestorage.LocalStorage
	HealthChecks          map[string]HealthCheck
	Logger                zerolog.Logger
}

// ConfigPath returns the config file to load
func ConfigPath() string {
	return config.GetEnv(ConfigPathEnv, filepath.Join("configs", "config.yaml"))
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	cfg, err := config.LoadConfig(ConfigPath())
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	lgr := SetupLogger(cfg)
	lgr.Info().Str("logLevel", cfg.Logging.Level).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupLogger configures the global logger from cfg
func SetupLogger(cfg *config.Config) zerolog.Logger {
	return logger.Configure(logger.Config{
		Level:   logger.LogLevel(strings.ToLower(cfg.Logging.Level)),
		Pretty:  strings.ToLower(cfg.Logging.Format) == "text",
		Service: "claimboard",
	})
}

// SetupDatabase establishes the database connection and runs migrations.
func SetupDatabase(ctx context.Context, cfg *config.Config, lgr zerolog.Logger) (*db.PostgresDB, error) {
	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(ctx, cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}

	migrationsDir := cfg.Database.MigrationsDir
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		database.Close()
		lgr.Error().Str("path", migrationsDir).Msg("Migrations directory not found")
		return nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}

	lgr.Info().Str("path", migrationsDir).Msg("Running database migrations...")
	if err := appMigrations.NewMigrator(database).MigrateFromDirectory(ctx, migrationsDir); err != nil {
		database.Close()
		lgr.Error().Err(err).Msg("Database migration error")
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}
	lgr.Info().Msg("Database migrations successfully applied.")

	return database, nil
}

// SetupRedis connects to redis. A blank URL disables the leaderboard cache and the event
// stream and yields a nil client.
func SetupRedis(ctx context.Context, cfg *config.Config, lgr zerolog.Logger) (*redis.Client, error) {
	client, err := cache.NewRedisClient(ctx, cfg.Redis.URL)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to redis")
		return nil, err
	}
	if client == nil {
		lgr.Warn().Msg("Redis not configured; leaderboard cache and claim events disabled")
	} else {
		lgr.Info().Msg("Redis connection established")
	}
	return client, nil
}

// BuildDependencies initializes application repositories, services, and controllers.
func BuildDependencies(cfg *config.Config, database *db.PostgresDB, redisClient *redis.Client, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{
		Logger:       lgr,
		HealthChecks: map[string]HealthCheck{"postgres": database.Ping},
	}
	if redisClient != nil {
		deps.HealthChecks["redis"] = func(ctx context.Context) error {
			ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
			defer cancel()
			return redisClient.Ping(ctx).Err()
		}
	}

	deps.Repos = appRepos.NewRepositories(database.Pool)

	var err error
	deps.FileStorage, err = filestorage.NewLocalStorage(cfg.Server.StoragePath, "claims", cfg.MaxUploadBytes())
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to initialize file storage")
		return nil, fmt.Errorf("failed to initialize file storage: %w", err)
	}

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:      cfg.JWT.Secret,
		AccessTokenExp: cfg.AccessTokenTTL(),
		TokenIssuer:    cfg.JWT.Issuer,
	})

	standings := cache.NewLeaderboardCache(redisClient, cfg.LeaderboardCacheTTL())
	publisher := events.NewPublisher(redisClient, cfg.Redis.EventStream, cfg.Redis.EventMaxLen)

	deps.FallbackMentor = appServices.NewFallbackMentorResolver(
		cfg.Claims.FallbackMentorEmail,
		deps.Repos.UserRepository,
		logger.Component("fallback-mentor"),
	)
	deps.UserService = appServices.NewUserService(deps.Repos.UserRepository, standings, logger.Component("users"))
	deps.ClaimService = appServices.NewClaimService(
		deps.Repos.ClaimRepository,
		deps.Repos.UserRepository,
		deps.FileStorage,
		deps.FallbackMentor,
		standings,
		publisher,
		logger.Component("claims"),
	)
	deps.LeaderboardService = appServices.NewLeaderboardService(
		deps.Repos.ClaimRepository,
		deps.Repos.UserRepository,
		standings,
		logger.Component("leaderboard"),
	)

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService, deps.Repos.UserRepository)

	deps.UserController = appControllers.NewUserController(deps.UserService)
	deps.ClaimController = appControllers.NewClaimController(deps.ClaimService)
	deps.LeaderboardController = appControllers.NewLeaderboardController(deps.LeaderboardService)

	return deps, nil
}

// SeedDefaultData runs the seed step; failures are logged and startup continues
func SeedDefaultData(ctx context.Context, cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) {
	if err := seed.CreateDefaultData(ctx, cfg, deps.UserService, deps.FallbackMentor, lgr); err != nil {
		lgr.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
	}
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if strings.ToLower(cfg.Server.Mode) == "production" {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	router := gin.New()
	router.Use(appMiddleware.Recovery(), appMiddleware.RequestLogger(), appMiddleware.CORS(cfg.Server.CorsOrigins))
	// Room for the non-file form fields on top of the proof itself
	router.MaxMultipartMemory = cfg.MaxUploadBytes() + 1<<20

	appRoutes.SetupSwagger(router)
	appRoutes.SetupRouter(router,
		deps.UserController,
		deps.ClaimController,
		deps.LeaderboardController,
		deps.AuthMiddleware,
	)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong", "status": "success"})
	})
	router.GET("/health", healthHandler(deps.HealthChecks, lgr))

	return router
}

// healthHandler runs every check and answers 503 when any of them fails
func healthHandler(checks map[string]HealthCheck, lgr zerolog.Logger) gin.HandlerFunc {
	names := make([]string, 0, len(checks))
	for name := range checks {
		names = append(names, name)
	}
	sort.Strings(names)

	return func(c *gin.Context) {
		status := http.StatusOK
		results := make(gin.H, len(names))
		for _, name := range names {
			if err := checks[name](c.Request.Context()); err != nil {
				lgr.Warn().Err(err).Str("check", name).Msg("Health check failed")
				results[name] = "down"
				status = http.StatusServiceUnavailable
				continue
			}
			results[name] = "up"
		}

		state := "ok"
		if status != http.StatusOK {
			state = "degraded"
		}
		c.JSON(status, gin.H{"status": state, "checks": results})
	}
}

package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	appControllers "github.com/vmerk/tutorium/internal/app/controllers"
	appMigrations "github.com/vmerk/tutorium/internal/app/migrations"
	appRepos "github.com/vmerk/tutorium/internal/app/repositories"
	appRoutes "github.com/vmerk/tutorium/internal/app/routes"
	appServices "github.com/vmerk/tutorium/internal/app/services"
	"github.com/vmerk/tutorium/internal/config"
	"github.com/vmerk/tutorium/internal/db"
	appMiddleware "github.com/vmerk/tutorium/internal/middleware"
	pkgAuth "github.com/vmerk/tutorium/internal/pkg/auth"
	"github.com/vmerk/tutorium/internal/pkg/helpers"
	"github.com/vmerk/tutorium/internal/pkg/logger"
	"github.com/vmerk/tutorium/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	AuthService            *appServices.AuthService
	UserService            *appServices.UserService
	AssociationService     *appServices.AssociationService
	DisciplineService      *appServices.DisciplineService
	BranchService          *appServices.BranchService
	SubscriptionService    *appServices.SubscriptionService
	LessonService          *appServices.LessonService
	AuthController         *appControllers.AuthController
	UserController         *appControllers.UserController
	AssociationController  *appControllers.AssociationController
	DisciplineController   *appControllers.DisciplineController
	BranchController       *appControllers.BranchController
	SubscriptionController *appControllers.SubscriptionController
	LessonController       *appControllers.LessonController
	AuthMiddleware         *appMiddleware.AuthMiddleware
	Repos                  *appRepos.Repositories
	JWTService             *pkgAuth.JWTService
	Logger                 zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	configPath := filepath.Join("configs", "config.yaml")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.LogLevel(strings.ToLower(cfg.Logging.Level))
	prettyLog := strings.ToLower(cfg.Logging.Format) == "text"

	logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: prettyLog,
	})

	lgr := log.Logger
	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupDatabase establishes the database connection, runs migrations and
// seeds the default data.
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*db.PostgresDB, error) {
	lgr.Info().Msg("Establishing database connection...")
	store, err := db.NewPostgresDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := store.Pool.Ping(ctx); err != nil {
		lgr.Error().Err(err).Msg("Failed to ping database")
		store.Close()
		return nil, err
	}
	lgr.Info().Msg("Database connection established")

	lgr.Info().Msg("Running database migrations...")
	migrator := appMigrations.NewMigrator(store.Pool)

	migrationsDir := "migrations"
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		lgr.Error().Str("path", migrationsDir).Msg("Migrations directory not found")
		store.Close()
		return nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}

	if err := migrator.MigrateFromDirectory(migrationsDir); err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		store.Close()
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}
	lgr.Info().Msg("Database migrations applied")

	if err := seed.CreateDefaultData(context.Background(), store, lgr); err != nil {
		// The application is usable without seed data, so log and continue.
		lgr.Error().Err(err).Msg("Failed to create default data, proceeding anyway")
	}

	// Expired refresh tokens accumulate between restarts; purge them here.
	tokenRepo := appRepos.NewTokenRepository(store.Pool)
	if purged, err := tokenRepo.DeleteExpiredTokens(context.Background()); err != nil {
		lgr.Error().Err(err).Msg("Failed to purge expired refresh tokens, proceeding anyway")
	} else if purged > 0 {
		lgr.Info().Int64("count", purged).Msg("Purged expired refresh tokens")
	}

	return store, nil
}

// BuildDependencies initializes application repositories, services,
// middleware and controllers.
func BuildDependencies(cfg *config.Config, store *db.PostgresDB, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	deps.Repos = appRepos.NewRepositories(store)

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:       cfg.JWT.Secret,
		AccessTokenExp:  helpers.ParseDuration(cfg.JWT.AccessTokenExpiration, 1*time.Hour),
		RefreshTokenExp: helpers.ParseDuration(cfg.JWT.RefreshTokenExpiration, 720*time.Hour),
		TokenIssuer:     cfg.JWT.Issuer,
	})

	deps.AuthService = appServices.NewAuthService(deps.Repos.Users, deps.Repos.Tokens, deps.JWTService)
	deps.UserService = appServices.NewUserService(deps.Repos.Users)
	deps.AssociationService = appServices.NewAssociationService(deps.Repos.Associations, deps.Repos.Users)
	deps.DisciplineService = appServices.NewDisciplineService(deps.Repos.Disciplines, deps.Repos.Users)
	deps.BranchService = appServices.NewBranchService(deps.Repos.Branches, deps.Repos.Classrooms)
	deps.SubscriptionService = appServices.NewSubscriptionService(deps.Repos.Subscriptions, deps.Repos.Associations, deps.Repos.Users)
	deps.LessonService = appServices.NewLessonService(deps.Repos.Lessons, deps.Repos.Associations)

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService)

	deps.AuthController = appControllers.NewAuthController(deps.AuthService)
	deps.UserController = appControllers.NewUserController(deps.UserService)
	deps.AssociationController = appControllers.NewAssociationController(deps.AssociationService)
	deps.DisciplineController = appControllers.NewDisciplineController(deps.DisciplineService)
	deps.BranchController = appControllers.NewBranchController(deps.BranchService)
	deps.SubscriptionController = appControllers.NewSubscriptionController(deps.SubscriptionService)
	deps.LessonController = appControllers.NewLessonController(deps.LessonService)

	return deps, nil
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
	router.Use(gin.Recovery())
	router.Use(appMiddleware.RequestLogger())

	appRoutes.SetupRouter(router,
		deps.AuthController,
		deps.UserController,
		deps.AssociationController,
		deps.DisciplineController,
		deps.BranchController,
		deps.SubscriptionController,
		deps.LessonController,
		deps.AuthMiddleware,
	)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong", "status": "success"})
	})

	return router
}

package bootstrap

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	appControllers "github.com/arjun/placementhub/internal/app/controllers"
	appMigrations "github.com/arjun/placementhub/internal/app/migrations"
	appRepos "github.com/arjun/placementhub/internal/app/repositories"
	appRoutes "github.com/arjun/placementhub/internal/app/routes"
	appServices "github.com/arjun/placementhub/internal/app/services"
	"github.com/arjun/placementhub/internal/config"
	"github.com/arjun/placementhub/internal/db"
	appMiddleware "github.com/arjun/placementhub/internal/middleware"
	pkgAuth "github.com/arjun/placementhub/internal/pkg/auth"
	"github.com/arjun/placementhub/internal/pkg/email"
	"github.com/arjun/placementhub/internal/pkg/filestorage"
	"github.com/arjun/placementhub/internal/pkg/helpers"
	"github.com/arjun/placementhub/internal/pkg/logger"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	AuthService        appServices.AuthService
	DriveService       appServices.DriveService
	QuestionService    appServices.InterviewQuestionService
	MaterialService    appServices.PlacementMaterialService
	AuthController     *appControllers.AuthController
	DriveController    *appControllers.DriveController
	QuestionController *appControllers.InterviewQuestionController
	MaterialController *appControllers.PlacementMaterialController
	AuthMiddleware     gin.HandlerFunc
	Repos              *appRepos.Repositories
	JWTService         *pkgAuth.JWTService
	Mailer             email.Mailer
	FileStorage        *filestorage.LocalStorage
	Logger             zerolog.Logger
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

// SetupDatabase establishes the database connection and runs migrations.
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*pgxpool.Pool, error) {
	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}
	dbPool := database.Pool

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := dbPool.Ping(ctx); err != nil {
		lgr.Error().Err(err).Msg("Failed to ping database")
		dbPool.Close()
		return nil, err
	}
	lgr.Info().Msg("Database connection successfully established.")

	lgr.Info().Msg("Running database migrations...")
	migrator := appMigrations.NewMigrator(dbPool)

	migrationsDir := "migrations"
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		lgr.Error().Str("path", migrationsDir).Msg("Migrations directory not found")
		return nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}

	if err := migrator.MigrateFromDirectory(migrationsDir); err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}

	lgr.Info().Msg("Database migrations successfully applied.")
	return dbPool, nil
}

// BuildDependencies initializes application repositories, services, and controllers.
func BuildDependencies(cfg *config.Config, dbPool *pgxpool.Pool, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	deps.Repos = appRepos.NewRepositories(dbPool)

	// File storage base URL must match the static file serving path
	baseURL := cfg.Server.BaseURL
	if baseURL == "" {
		baseURL = "http://localhost:" + cfg.Server.Port
	}
	fileStorage, err := filestorage.NewLocalStorage(cfg.Server.StoragePath, baseURL+"/uploads")
	if err != nil {
		return nil, fmt.Errorf("failed to initialize file storage: %w", err)
	}
	deps.FileStorage = fileStorage

	tokenExp := helpers.ParseDuration(cfg.JWT.TokenExpiration, 7*time.Hour)
	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:   cfg.JWT.Secret,
		TokenExp:    tokenExp,
		TokenIssuer: cfg.JWT.Issuer,
	})

	deps.Mailer = email.NewSMTPMailer(email.SMTPConfig{
		Host:      cfg.SMTP.Host,
		Port:      cfg.SMTP.Port,
		Username:  cfg.SMTP.Username,
		Password:  cfg.SMTP.Password,
		FromName:  cfg.SMTP.FromName,
		FromEmail: cfg.SMTP.FromEmail,
		UseTLS:    cfg.SMTP.UseTLS,
	}, lgr)

	deps.AuthService = appServices.NewAuthService(deps.Repos.UserRepository, deps.JWTService, deps.Mailer, deps.FileStorage)
	deps.DriveService = appServices.NewDriveService(deps.Repos.DriveRepository)
	deps.QuestionService = appServices.NewInterviewQuestionService(deps.Repos.InterviewQuestionRepository)
	deps.MaterialService = appServices.NewPlacementMaterialService(deps.Repos.PlacementMaterialRepository, deps.FileStorage)

	deps.AuthController = appControllers.NewAuthController(deps.AuthService)
	deps.DriveController = appControllers.NewDriveController(deps.DriveService)
	deps.QuestionController = appControllers.NewInterviewQuestionController(deps.QuestionService)
	deps.MaterialController = appControllers.NewPlacementMaterialController(deps.MaterialService)

	deps.AuthMiddleware = appMiddleware.AuthMiddleware(deps.JWTService, deps.Repos.UserRepository)

	return deps, nil
}

// SetupRouter builds the gin engine and registers all routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if strings.ToLower(cfg.Server.Mode) == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestLogger(lgr))

	appRoutes.SetupRouter(
		router,
		deps.AuthController,
		deps.DriveController,
		deps.QuestionController,
		deps.MaterialController,
		deps.AuthMiddleware,
	)

	return router
}

// requestLogger logs one line per request with method, path, status and latency.
func requestLogger(lgr zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		lgr.Info().
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Dur("latency", time.Since(start)).
			Msg("Request handled")
	}
}

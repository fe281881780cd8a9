package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"os"
	"time"

	"github.com/fieldforce/sfm_backend/internal/apperrors"
	"github.com/fieldforce/sfm_backend/internal/core/domain"
	portsrepo "github.com/fieldforce/sfm_backend/internal/core/ports/repositories"
	"github.com/fieldforce/sfm_backend/internal/core/services"
	"github.com/fieldforce/sfm_backend/internal/handlers"
	"github.com/fieldforce/sfm_backend/internal/middleware"
	"github.com/fieldforce/sfm_backend/internal/platform/config"
	"github.com/fieldforce/sfm_backend/internal/repositories/database/pgsql"
	"github.com/fieldforce/sfm_backend/internal/utils"
	"github.com/fieldforce/sfm_backend/pkg/database"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	migrate "github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/jackc/pgx/v5/stdlib"
)

//go:generate swag init -g main.go -d ./,../../internal/handlers,../../internal/dto -o ../docs --parseDependency

// @title SFM Backend API
// @version 1.0
// @description Sales-force management backend: hierarchy-scoped records and approvals.

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @security BearerAuth
func main() {
	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Initialize database connection pool (for application use)
	dbPool, err := database.NewPgxPool(context.Background(), cfg.DatabaseURL, cfg.EnableDBCheck)
	if err != nil {
		logger.Error("Failed to initialize database pool", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer database.ClosePgxPool(dbPool)
	logger.Info("Database connection pool established.")

	if err := runMigrations(cfg.DatabaseURL, logger); err != nil {
		logger.Error("Failed to run database migrations", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Wire repositories and services
	repos := pgsql.NewRepositoryProvider(dbPool)
	serviceContainer := services.NewServiceContainer(cfg, repos)

	// Bootstrap admin account for a fresh database
	if err := seedAdminUser(context.Background(), repos, logger); err != nil {
		logger.Error("Failed to seed admin user", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware (logging, recovery, CORS, analytics)
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery())

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = cfg.CORSAllowedOrigins
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization")
	r.Use(cors.New(corsConfig))

	posthogClient := utils.InitializePosthogClient(cfg.PosthogAPIKey, logger)
	defer posthogClient.Close()
	r.Use(middleware.PosthogMiddleware(posthogClient))

	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	handlers.RegisterRoutes(r, cfg, serviceContainer)

	logger.Info("Server starting", slog.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Error("Server failed to run", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

// runMigrations applies all pending "up" migrations from the migrations
// directory using a temporary database/sql connection.
func runMigrations(databaseURL string, logger *slog.Logger) error {
	logger.Info("Running database migrations...")

	migrationDB, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := migrationDB.Close(); cerr != nil {
			logger.Error("Error closing migration DB connection", slog.String("error", cerr.Error()))
		}
	}()
	if err := migrationDB.Ping(); err != nil {
		return err
	}

	driver, err := postgres.WithInstance(migrationDB, &postgres.Config{})
	if err != nil {
		return err
	}

	m, err := migrate.NewWithDatabaseInstance("file://migrations", "postgres", driver)
	if err != nil {
		return err
	}

	upErr := m.Up()
	if upErr != nil && !errors.Is(upErr, migrate.ErrNoChange) {
		return upErr
	}

	sourceErr, dbErr := m.Close()
	if sourceErr != nil {
		return sourceErr
	}
	if dbErr != nil {
		return dbErr
	}

	if errors.Is(upErr, migrate.ErrNoChange) {
		logger.Info("No new migrations to apply.")
	} else {
		logger.Info("Database migrations applied successfully.")
	}
	return nil
}

// seedAdminUser creates the bootstrap admin account when the database has no
// "admin" user yet. It writes through the repository directly because every
// service path requires an existing admin. The password comes from
// ADMIN_PASSWORD, defaulting to a development value that must be rotated in
// production.
func seedAdminUser(ctx context.Context, repos portsrepo.RepositoryProvider, logger *slog.Logger) error {
	_, err := repos.UserRepo.FindUserByUsername(ctx, "admin")
	if err == nil {
		return nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return err
	}

	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		password = "admin123"
		logger.Warn("ADMIN_PASSWORD not set; seeding admin with the default development password")
	}
	passwordHash, err := utils.HashPassword(password)
	if err != nil {
		return err
	}

	now := time.Now()
	adminID := uuid.New().String()
	admin := domain.User{
		UserID:       adminID,
		Username:     "admin",
		PasswordHash: passwordHash,
		Name:         "Administrator",
		Role:         domain.RoleAdmin,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     adminID,
			LastUpdatedAt: now,
			LastUpdatedBy: adminID,
		},
	}
	if err := repos.UserRepo.SaveUser(ctx, admin); err != nil {
		return err
	}

	logger.Info("Seeded bootstrap admin user", slog.String("user_id", adminID))
	return nil
}

package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // PostgreSQL driver for database/sql (migrations)
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/xemob/coopnet/pkg/auth"
	"github.com/xemob/coopnet/pkg/config"
	"github.com/xemob/coopnet/pkg/database"
	"github.com/xemob/coopnet/pkg/handlers"
	"github.com/xemob/coopnet/pkg/logging"
	"github.com/xemob/coopnet/pkg/middleware"
	"github.com/xemob/coopnet/pkg/repositories"
	"github.com/xemob/coopnet/pkg/services"
)

// Version is set at build time via ldflags
var Version = "dev"

func main() {
	// .env is optional; real environment variables win
	_ = godotenv.Load()

	cfg, err := config.Load(Version)
	if err != nil {
		// No logger yet
		os.Stderr.WriteString("Failed to load config: " + err.Error() + "\n")
		os.Exit(1)
	}

	logger := newLogger(cfg.Env)
	defer func() { _ = logger.Sync() }()

	logger.Info("Configuration loaded",
		zap.String("env", cfg.Env),
		zap.String("version", cfg.Version),
		zap.String("addr", cfg.Addr()),
		zap.String("database", logging.SanitizeConnectionString(cfg.Database.URL())),
		zap.Duration("token_ttl", cfg.Auth.TokenTTL))

	ctx := context.Background()

	db, err := database.NewConnection(ctx, &database.Config{
		URL:            cfg.Database.URL(),
		MaxConnections: cfg.Database.MaxConnections,
	}, logger)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.String("error", logging.SanitizeError(err)))
	}
	defer db.Close()

	if cfg.Database.AutoMigrate {
		if err := migrate(cfg, logger); err != nil {
			logger.Fatal("Failed to run migrations", zap.String("error", logging.SanitizeError(err)))
		}
	}

	// Repositories
	userRepo := repositories.NewUserRepository()
	orgRepo := repositories.NewOrganizationRepository()
	profileRepo := repositories.NewCooperatorProfileRepository()
	portfolioRepo := repositories.NewPortfolioItemRepository()
	projectRepo := repositories.NewProjectRepository()
	coopRepo := repositories.NewCooperationRepository()
	reviewRepo := repositories.NewReviewRepository()
	messageRepo := repositories.NewMessageRepository()

	// Services
	userService := services.NewUserService(userRepo, logger)
	orgService := services.NewOrganizationService(orgRepo, logger)
	profileService := services.NewCooperatorProfileService(profileRepo, logger)
	portfolioService := services.NewPortfolioItemService(portfolioRepo, logger)
	projectService := services.NewProjectService(projectRepo, orgRepo, logger)
	coopService := services.NewCooperationService(coopRepo, projectRepo, orgRepo, userRepo, logger)
	reviewService := services.NewReviewService(reviewRepo, coopRepo, projectRepo, userRepo, logger)
	messageService := services.NewMessageService(messageRepo, userRepo, logger)

	// Auth
	tokens := auth.NewTokenIssuer(cfg.Auth.TokenSecret, cfg.Auth.TokenTTL, cfg.Auth.Issuer)
	authMiddleware := auth.NewMiddleware(auth.NewAuthService(tokens, userService, logger), logger)

	router := &handlers.Router{
		Health:             handlers.NewHealthHandler(cfg, db, logger),
		Users:              handlers.NewUsersHandler(userService, tokens, logger),
		Organizations:      handlers.NewOrganizationsHandler(orgService, logger),
		CooperatorProfiles: handlers.NewCooperatorProfilesHandler(profileService, logger),
		PortfolioItems:     handlers.NewPortfolioItemsHandler(portfolioService, logger),
		Projects:           handlers.NewProjectsHandler(projectService, logger),
		Cooperations:       handlers.NewCooperationsHandler(coopService, logger),
		Reviews:            handlers.NewReviewsHandler(reviewService, logger),
		Messages:           handlers.NewMessagesHandler(messageService, logger),
	}

	mux := http.NewServeMux()
	router.RegisterRoutes(mux, authMiddleware, database.WithScopeContext(db, logger))

	server := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           middleware.Chain(mux, middleware.RequestID, middleware.RequestLogger(logger)),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       cfg.ReadTimeout,
		WriteTimeout:      cfg.WriteTimeout,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("Starting coopnet", zap.String("addr", server.Addr), zap.String("version", cfg.Version))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		if err != nil {
			logger.Fatal("Server failed", zap.Error(err))
		}
	case sig := <-stop:
		logger.Info("Shutting down", zap.String("signal", sig.String()))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Graceful shutdown failed", zap.Error(err))
	}
}

func newLogger(env string) *zap.Logger {
	var logger *zap.Logger
	var err error
	switch env {
	case "local", "test":
		logger, err = zap.NewDevelopment()
	default:
		logger, err = zap.NewProduction()
	}
	if err != nil {
		return zap.NewNop()
	}
	return logger
}

// migrate applies embedded migrations over a short-lived database/sql handle.
func migrate(cfg *config.Config, logger *zap.Logger) error {
	sqlDB, err := sql.Open("pgx", cfg.Database.URL())
	if err != nil {
		return err
	}
	defer sqlDB.Close()
	return database.RunMigrations(sqlDB, logger)
}

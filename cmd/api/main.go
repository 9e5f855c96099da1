package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	identityUseCase "github.com/campuspoints/points-api/internal/domain/usecase/identity"
	ledgerUseCase "github.com/campuspoints/points-api/internal/domain/usecase/ledger"
	userUseCase "github.com/campuspoints/points-api/internal/domain/usecase/user"

	authAdapter "github.com/campuspoints/points-api/internal/infrastructure/adapter/auth"
	"github.com/campuspoints/points-api/internal/infrastructure/adapter/api/handler"
	"github.com/campuspoints/points-api/internal/infrastructure/adapter/api/routes"
	"github.com/campuspoints/points-api/internal/infrastructure/adapter/cache"
	"github.com/campuspoints/points-api/internal/infrastructure/adapter/database"
	"github.com/campuspoints/points-api/internal/infrastructure/adapter/database/migration"
	"github.com/campuspoints/points-api/internal/infrastructure/adapter/logger"
	"github.com/campuspoints/points-api/internal/infrastructure/adapter/repository"
	timeProvider "github.com/campuspoints/points-api/internal/infrastructure/adapter/time"
	"github.com/campuspoints/points-api/internal/infrastructure/config"

	"github.com/gin-gonic/gin"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	appLogger := logger.NewZapLogger(cfg.IsProduction())
	defer func() { _ = appLogger.Flush() }()

	dbConfig := &database.Config{
		Driver:          "postgres",
		Host:            cfg.Database.Host,
		Port:            database.ParsePort(cfg.Database.Port),
		Username:        cfg.Database.Username,
		Password:        cfg.Database.Password,
		Database:        cfg.Database.Database,
		SSLMode:         cfg.Database.SSLMode,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
		ConnMaxIdleTime: cfg.Database.ConnMaxIdleTime,
		QueryTimeout:    cfg.Database.QueryTimeout,
		LogLevel:        cfg.Logger.Level,
		RetryAttempts:   cfg.Database.RetryAttempts,
		RetryDelay:      int(cfg.Database.RetryDelay.Seconds()),
	}

	tp := timeProvider.NewRealTimeProvider()

	dbManager := database.NewManager(dbConfig, appLogger, tp)
	if _, err := dbManager.Connect(); err != nil {
		appLogger.Error("Failed to connect to database", map[string]any{
			"error": err.Error(),
		})
		os.Exit(1)
	}
	defer dbManager.Close()

	// Run migrations and seed the admin accounts
	migrationMgr := migration.NewMigrationManager(dbManager.DB(), appLogger, tp)
	if err := migrationMgr.MigrateAll(); err != nil {
		appLogger.Error("Failed to run migrations", map[string]any{
			"error": err.Error(),
		})
		os.Exit(1)
	}
	if err := migrationMgr.SeedAdmins(nil); err != nil {
		appLogger.Error("Failed to seed admin users", map[string]any{
			"error": err.Error(),
		})
		os.Exit(1)
	}

	// Repositories and unit of work
	userRepo := repository.NewUserRepository(dbManager.DB(), appLogger)
	transactionRepo := repository.NewTransactionRepository(dbManager.DB(), appLogger)
	uow := database.NewUnitOfWork(dbManager.DB(), appLogger)

	// Optional Redis cache for user profile reads
	var userCache *cache.UserCache
	if cfg.Redis.Enabled {
		userCache, err = cache.NewUserCache(context.Background(), cache.Config{
			Addr:     cfg.Redis.Addr(),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			TTL:      cfg.Redis.TTL,
		}, appLogger)
		if err != nil {
			appLogger.Error("Failed to connect to Redis", map[string]any{
				"error": err.Error(),
			})
			os.Exit(1)
		}
		defer userCache.Close()
	}

	// Auth adapters
	tokens := authAdapter.NewJWTIssuer(authAdapter.JWTConfig{
		Secret:   cfg.Auth.JWTSecret,
		TokenTTL: cfg.Auth.TokenTTL,
		Issuer:   cfg.Auth.Issuer,
	}, tp)
	verifier := authAdapter.NewRegistry(authAdapter.VerifierConfig{
		AllowDevLogin: cfg.Auth.AllowDevLogin && !cfg.IsProduction(),
	}, appLogger)

	// Use cases
	identityConfig := identityUseCase.DefaultConfig()
	identityConfig.InitialGiftBalance = cfg.Identity.InitialGiftBalance
	if cfg.Identity.UsernameMaxAttempts > 0 {
		identityConfig.Allocator.MaxAttempts = cfg.Identity.UsernameMaxAttempts
	}

	identityService := identityUseCase.NewService(userRepo, verifier, tokens, identityConfig, tp, appLogger)
	ledgerService := ledgerUseCase.NewService(uow, transactionRepo, tp, appLogger)
	userService := userUseCase.NewService(userRepo, transactionRepo, appLogger)

	// API handlers
	authHandler := handler.NewAuthHandler(identityService, appLogger)
	userHandler := handler.NewUserHandler(userService, userCache, appLogger)
	adminHandler := handler.NewAdminHandler(ledgerService, userCache, appLogger)

	router := gin.New()
	routes.SetupMiddlewares(router, appLogger)
	routes.SetupRoutes(router, authHandler, userHandler, adminHandler, tokens, userService, appLogger)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           router,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		ReadHeaderTimeout: cfg.Server.ReadHeaderTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
	}

	go func() {
		appLogger.Info("Starting server", map[string]any{
			"port": cfg.Server.Port,
			"env":  cfg.Environment,
		})

		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.Error("Failed to start server", map[string]any{
				"error": err.Error(),
			})
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server...", nil)

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		appLogger.Error("Server forced to shutdown", map[string]any{
			"error": err.Error(),
		})
	}

	appLogger.Info("Server exited gracefully", nil)
}

package main

import (
	"context"
	"errors"
	"log"
	"os"

	"github.com/campuspoints/points-api/internal/domain/entity"
	domainerr "github.com/campuspoints/points-api/internal/domain/error"
	coreport "github.com/campuspoints/points-api/internal/domain/port/core"
	"github.com/campuspoints/points-api/internal/domain/port/persistence"
	"github.com/campuspoints/points-api/internal/domain/port/usecase"
	identityUseCase "github.com/campuspoints/points-api/internal/domain/usecase/identity"
	ledgerUseCase "github.com/campuspoints/points-api/internal/domain/usecase/ledger"

	"github.com/campuspoints/points-api/internal/infrastructure/adapter/database"
	"github.com/campuspoints/points-api/internal/infrastructure/adapter/database/migration"
	"github.com/campuspoints/points-api/internal/infrastructure/adapter/logger"
	"github.com/campuspoints/points-api/internal/infrastructure/adapter/repository"
	timeProvider "github.com/campuspoints/points-api/internal/infrastructure/adapter/time"
	"github.com/campuspoints/points-api/internal/infrastructure/config"
)

// demoStudent is one sample account with its opening ledger entries
type demoStudent struct {
	email    string
	fullName string
	history  []demoEntry
}

type demoEntry struct {
	amount      int64
	txType      entity.TransactionType
	description string
}

var demoStudents = []demoStudent{
	{
		email:    "jordan.lee@student.campuspoints.local",
		fullName: "Jordan Lee",
		history: []demoEntry{
			{amount: 50, txType: entity.TypeEarn, description: "Orientation scavenger hunt"},
			{amount: -20, txType: entity.TypeSpend, description: "Cafeteria voucher"},
		},
	},
	{
		email:    "sam.rivera@student.campuspoints.local",
		fullName: "Sam Rivera",
		history: []demoEntry{
			{amount: 30, txType: entity.TypeEarn, description: "Library volunteering"},
		},
	},
	{
		email:    "alex.kim@student.campuspoints.local",
		fullName: "Alex Kim",
		history:  nil,
	},
}

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	appLogger := logger.NewZapLogger(false)
	defer func() { _ = appLogger.Flush() }()

	tp := timeProvider.NewRealTimeProvider()

	dbConfig := &database.Config{
		Driver:        "postgres",
		Host:          cfg.Database.Host,
		Port:          database.ParsePort(cfg.Database.Port),
		Username:      cfg.Database.Username,
		Password:      cfg.Database.Password,
		Database:      cfg.Database.Database,
		SSLMode:       cfg.Database.SSLMode,
		MaxOpenConns:  cfg.Database.MaxOpenConns,
		MaxIdleConns:  cfg.Database.MaxIdleConns,
		QueryTimeout:  cfg.Database.QueryTimeout,
		LogLevel:      cfg.Logger.Level,
		RetryAttempts: 1,
		RetryDelay:    1,
	}

	dbManager := database.NewManager(dbConfig, appLogger, tp)
	if _, err := dbManager.Connect(); err != nil {
		appLogger.Error("Failed to connect to database", map[string]any{
			"error": err.Error(),
		})
		os.Exit(1)
	}
	defer dbManager.Close()

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

	userRepo := repository.NewUserRepository(dbManager.DB(), appLogger)
	transactionRepo := repository.NewTransactionRepository(dbManager.DB(), appLogger)
	uow := database.NewUnitOfWork(dbManager.DB(), appLogger)

	ledgerService := ledgerUseCase.NewService(uow, transactionRepo, tp, appLogger)

	ctx := context.Background()

	// Resolve demo students the same way a first login would, then run
	// their sample history through the ledger so balances and entries
	// stay paired.
	allocator := identityUseCase.NewAllocator(userRepo, identityUseCase.DefaultAllocatorConfig(), appLogger)
	for _, student := range demoStudents {
		user, err := seedStudent(ctx, userRepo, allocator, tp, student)
		if err != nil {
			appLogger.Error("Failed to seed student", map[string]any{
				"email": student.email,
				"error": err.Error(),
			})
			os.Exit(1)
		}

		for _, item := range student.history {
			if _, err := ledgerService.ApplyDelta(ctx, usecase.Delta{
				UserID:      user.ID,
				Amount:      item.amount,
				Type:        item.txType,
				Description: item.description,
			}); err != nil {
				appLogger.Error("Failed to seed transaction", map[string]any{
					"email": student.email,
					"error": err.Error(),
				})
				os.Exit(1)
			}
		}

		appLogger.Info("Seeded student", map[string]any{
			"email":   student.email,
			"entries": len(student.history),
		})
	}

	appLogger.Info("Seeding complete", nil)
}

// seedStudent returns the existing user for the email or creates a new
// one with an allocated handle, mirroring the first-login flow
func seedStudent(
	ctx context.Context,
	users persistence.UserRepository,
	allocator *identityUseCase.Allocator,
	tp coreport.TimeProvider,
	student demoStudent,
) (*entity.User, error) {
	existing, err := users.GetByEmail(ctx, student.email)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, domainerr.ErrUserNotFound) {
		return nil, err
	}

	username, err := allocator.Allocate(ctx, student.fullName)
	if err != nil {
		return nil, err
	}

	user, err := entity.NewUser(student.email, student.fullName, username, 25, tp)
	if err != nil {
		return nil, err
	}
	if err := users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

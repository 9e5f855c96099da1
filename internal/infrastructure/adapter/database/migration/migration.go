package migration

import (
	"errors"

	coreport "github.com/campuspoints/points-api/internal/domain/port/core"
	"github.com/campuspoints/points-api/internal/infrastructure/adapter/model"
	"gorm.io/gorm"
)

const (
	// CurrentSchemaVersion represents the current database schema version
	CurrentSchemaVersion = "1.1.0"
)

// MigrationManager manages database migrations
type MigrationManager struct {
	db           *gorm.DB
	logger       coreport.Logger
	timeProvider coreport.TimeProvider
}

// NewMigrationManager creates a new migration manager
func NewMigrationManager(db *gorm.DB, logger coreport.Logger, timeProvider coreport.TimeProvider) *MigrationManager {
	return &MigrationManager{
		db:           db,
		logger:       logger,
		timeProvider: timeProvider,
	}
}

// MigrateAll brings the schema up to the current version
func (m *MigrationManager) MigrateAll() error {
	m.logger.Info("Starting database migrations", map[string]any{
		"target_version": CurrentSchemaVersion,
	})

	if err := m.db.AutoMigrate(&model.MigrationVersion{}); err != nil {
		return err
	}

	currentVersion, err := m.currentVersion()
	if err != nil {
		return err
	}
	if currentVersion == CurrentSchemaVersion {
		m.logger.Info("Database already at target version, skipping migration", map[string]any{
			"version": currentVersion,
		})
		return nil
	}

	if err := m.db.AutoMigrate(
		&model.User{},
		&model.Transaction{},
		&model.Request{},
	); err != nil {
		m.logger.Error("Failed to auto-migrate models", map[string]any{
			"error": err.Error(),
		})
		return err
	}

	if err := m.createIndexes(); err != nil {
		m.logger.Error("Failed to create indexes", map[string]any{
			"error": err.Error(),
		})
		return err
	}

	if err := m.recordVersion(); err != nil {
		return err
	}

	m.logger.Info("Database migrations completed", map[string]any{
		"version": CurrentSchemaVersion,
	})
	return nil
}

// createIndexes creates composite indexes the model tags don't cover.
// The user-history listing orders by created_at descending within one
// user, so that pair gets a dedicated index.
func (m *MigrationManager) createIndexes() error {
	statements := []string{
		"CREATE INDEX IF NOT EXISTS idx_transactions_user_created ON transactions (user_id, created_at DESC)",
		"CREATE INDEX IF NOT EXISTS idx_requests_recipient_status ON requests (recipient_id, status)",
	}
	for _, stmt := range statements {
		if err := m.db.Exec(stmt).Error; err != nil {
			return err
		}
	}
	return nil
}

// currentVersion returns the most recently applied schema version
func (m *MigrationManager) currentVersion() (string, error) {
	var version model.MigrationVersion
	err := m.db.Order("id DESC").First(&version).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return version.Version, nil
}

// recordVersion stamps the schema with the current version
func (m *MigrationManager) recordVersion() error {
	return m.db.Create(&model.MigrationVersion{
		Version:   CurrentSchemaVersion,
		AppliedAt: m.timeProvider.Now(),
	}).Error
}

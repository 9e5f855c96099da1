package migration

import (
	"github.com/campuspoints/points-api/internal/domain/entity"
	"github.com/campuspoints/points-api/internal/infrastructure/adapter/model"
	"gorm.io/gorm/clause"
)

// AdminSeed describes one administrator account created at startup
type AdminSeed struct {
	Email    string
	Username string
	FullName string
}

// DefaultAdminSeeds are the administrator accounts provisioned on a
// fresh database. Existing rows with the same email are left alone.
var DefaultAdminSeeds = []AdminSeed{
	{Email: "admin@campuspoints.local", Username: "@admin", FullName: "Points Admin"},
	{Email: "ops@campuspoints.local", Username: "@ops", FullName: "Points Ops"},
}

// SeedAdmins inserts the administrator accounts, skipping any email
// that already exists
func (m *MigrationManager) SeedAdmins(seeds []AdminSeed) error {
	if len(seeds) == 0 {
		seeds = DefaultAdminSeeds
	}

	for _, seed := range seeds {
		admin := model.User{
			Email:       seed.Email,
			Username:    seed.Username,
			FullName:    seed.FullName,
			Balance:     0,
			GiftBalance: 0,
			Role:        string(entity.RoleAdmin),
			IsActive:    true,
			CreatedAt:   m.timeProvider.Now(),
		}
		result := m.db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "email"}},
			DoNothing: true,
		}).Create(&admin)
		if result.Error != nil {
			m.logger.Error("Failed to seed admin user", map[string]any{
				"email": seed.Email,
				"error": result.Error.Error(),
			})
			return result.Error
		}
		if result.RowsAffected > 0 {
			m.logger.Info("Seeded admin user", map[string]any{
				"email":    seed.Email,
				"username": seed.Username,
			})
		}
	}
	return nil
}

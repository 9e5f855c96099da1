package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/campuspoints/points-api/internal/domain/entity"
	errs "github.com/campuspoints/points-api/internal/domain/error"
	coreport "github.com/campuspoints/points-api/internal/domain/port/core"
	"github.com/campuspoints/points-api/internal/infrastructure/adapter/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// UserRepository implements the persistence.UserRepository interface using GORM
type UserRepository struct {
	db              *gorm.DB
	logger          coreport.Logger
	errorClassifier *ErrorClassifier
}

// NewUserRepository creates a new UserRepository instance
func NewUserRepository(db *gorm.DB, logger coreport.Logger) *UserRepository {
	return &UserRepository{
		db:              db,
		logger:          logger,
		errorClassifier: NewErrorClassifier(),
	}
}

// modelToEntity converts a user model to a domain entity
func (r *UserRepository) modelToEntity(m *model.User) *entity.User {
	return &entity.User{
		ID:          m.ID,
		Email:       m.Email,
		Username:    m.Username,
		FullName:    m.FullName,
		Balance:     m.Balance,
		GiftBalance: m.GiftBalance,
		Role:        entity.Role(m.Role),
		IsActive:    m.IsActive,
		CreatedAt:   m.CreatedAt,
	}
}

// entityToModel converts a domain entity to a user model
func (r *UserRepository) entityToModel(u *entity.User) model.User {
	return model.User{
		ID:          u.ID,
		Email:       u.Email,
		Username:    u.Username,
		FullName:    u.FullName,
		Balance:     u.Balance,
		GiftBalance: u.GiftBalance,
		Role:        string(u.Role),
		IsActive:    u.IsActive,
		CreatedAt:   u.CreatedAt,
	}
}

// handleDatabaseError standardizes database error handling for user lookups
func (r *UserRepository) handleDatabaseError(operation string, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errs.ErrUserNotFound
	}

	r.logger.Error(fmt.Sprintf("Database error when %s", operation), map[string]any{
		"error": err.Error(),
	})

	if r.errorClassifier.IsUsernameConflict(err) {
		return fmt.Errorf("%w: %s", errs.ErrUsernameTaken, err.Error())
	}
	if r.errorClassifier.IsEmailConflict(err) || r.errorClassifier.IsDuplicateKeyError(err) {
		return fmt.Errorf("%w: %s", errs.ErrEmailTaken, err.Error())
	}
	if r.errorClassifier.IsConstraintError(err) {
		return fmt.Errorf("%w: %s", errs.ErrConstraintViolation, err.Error())
	}

	return fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, err.Error())
}

// GetByID retrieves a user by ID
func (r *UserRepository) GetByID(ctx context.Context, id uint64) (*entity.User, error) {
	var userModel model.User
	result := r.db.WithContext(ctx).First(&userModel, id)
	if result.Error != nil {
		return nil, r.handleDatabaseError("getting user by id", result.Error)
	}
	return r.modelToEntity(&userModel), nil
}

// GetByIDForUpdate retrieves a user by ID under an exclusive row lock.
// Meaningful only inside a unit of work; the lock is held until the
// surrounding transaction commits or rolls back.
func (r *UserRepository) GetByIDForUpdate(ctx context.Context, id uint64) (*entity.User, error) {
	var userModel model.User
	result := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&userModel, id)
	if result.Error != nil {
		return nil, r.handleDatabaseError("locking user row", result.Error)
	}
	return r.modelToEntity(&userModel), nil
}

// GetByEmail retrieves a user by exact email match
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	var userModel model.User
	result := r.db.WithContext(ctx).Where("email = ?", email).First(&userModel)
	if result.Error != nil {
		return nil, r.handleDatabaseError("getting user by email", result.Error)
	}
	return r.modelToEntity(&userModel), nil
}

// GetByUsername retrieves a user by handle
func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*entity.User, error) {
	var userModel model.User
	result := r.db.WithContext(ctx).Where("username = ?", username).First(&userModel)
	if result.Error != nil {
		return nil, r.handleDatabaseError("getting user by username", result.Error)
	}
	return r.modelToEntity(&userModel), nil
}

// UsernameTaken reports whether a handle is already in use
func (r *UserRepository) UsernameTaken(ctx context.Context, username string) (bool, error) {
	var count int64
	result := r.db.WithContext(ctx).Model(&model.User{}).
		Where("username = ?", username).
		Count(&count)
	if result.Error != nil {
		return false, fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, result.Error.Error())
	}
	return count > 0, nil
}

// Create inserts a new user and fills in the assigned ID
func (r *UserRepository) Create(ctx context.Context, user *entity.User) error {
	userModel := r.entityToModel(user)

	result := r.db.WithContext(ctx).Create(&userModel)
	if result.Error != nil {
		return r.handleDatabaseError("creating user", result.Error)
	}

	user.ID = userModel.ID
	user.CreatedAt = userModel.CreatedAt

	r.logger.Info("User created", map[string]any{
		"user_id":  user.ID,
		"username": user.Username,
	})
	return nil
}

// UpdateBalance writes a new balance for the user. The ledger service
// calls this while holding the row lock from GetByIDForUpdate.
func (r *UserRepository) UpdateBalance(ctx context.Context, userID uint64, balance int64) error {
	result := r.db.WithContext(ctx).Model(&model.User{}).
		Where("id = ?", userID).
		Update("balance", balance)
	if result.Error != nil {
		return r.handleDatabaseError("updating balance", result.Error)
	}
	if result.RowsAffected == 0 {
		return errs.ErrUserNotFound
	}
	return nil
}

// List returns users ordered by primary key
func (r *UserRepository) List(ctx context.Context, offset, limit int) ([]*entity.User, error) {
	var userModels []model.User
	result := r.db.WithContext(ctx).
		Order("id").
		Offset(offset).
		Limit(limit).
		Find(&userModels)
	if result.Error != nil {
		return nil, fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, result.Error.Error())
	}

	users := make([]*entity.User, 0, len(userModels))
	for i := range userModels {
		users = append(users, r.modelToEntity(&userModels[i]))
	}
	return users, nil
}

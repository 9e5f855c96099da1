package repository

import (
	"context"
	"fmt"

	"github.com/campuspoints/points-api/internal/domain/entity"
	errs "github.com/campuspoints/points-api/internal/domain/error"
	coreport "github.com/campuspoints/points-api/internal/domain/port/core"
	"github.com/campuspoints/points-api/internal/infrastructure/adapter/model"
	"gorm.io/gorm"
)

// TransactionRepository implements persistence.TransactionRepository
// using GORM. The ledger is append-only, so there is no update path.
type TransactionRepository struct {
	db              *gorm.DB
	logger          coreport.Logger
	errorClassifier *ErrorClassifier
}

// NewTransactionRepository creates a new TransactionRepository instance
func NewTransactionRepository(db *gorm.DB, logger coreport.Logger) *TransactionRepository {
	return &TransactionRepository{
		db:              db,
		logger:          logger,
		errorClassifier: NewErrorClassifier(),
	}
}

// entityToModel converts a ledger entry to a database model
func (r *TransactionRepository) entityToModel(t *entity.Transaction) model.Transaction {
	return model.Transaction{
		UserID:      t.UserID,
		AdminID:     t.AdminID,
		Amount:      t.Amount,
		Type:        string(t.Type),
		Description: t.Description,
		RecipientID: t.RecipientID,
		RequestID:   t.RequestID,
		CreatedAt:   t.CreatedAt,
	}
}

// modelToEntity converts a transaction model to a ledger entry
func (r *TransactionRepository) modelToEntity(m *model.Transaction) *entity.Transaction {
	return &entity.Transaction{
		ID:          m.ID,
		UserID:      m.UserID,
		AdminID:     m.AdminID,
		Amount:      m.Amount,
		Type:        entity.TransactionType(m.Type),
		Description: m.Description,
		RecipientID: m.RecipientID,
		RequestID:   m.RequestID,
		CreatedAt:   m.CreatedAt,
	}
}

// Create appends a new ledger entry and fills in the assigned ID
func (r *TransactionRepository) Create(ctx context.Context, transaction *entity.Transaction) error {
	transactionModel := r.entityToModel(transaction)

	result := r.db.WithContext(ctx).Create(&transactionModel)
	if result.Error != nil {
		r.logger.Error("Failed to create transaction", map[string]any{
			"user_id": transaction.UserID,
			"amount":  transaction.Amount,
			"error":   result.Error.Error(),
		})
		if r.errorClassifier.IsConstraintError(result.Error) {
			return fmt.Errorf("%w: %s", errs.ErrConstraintViolation, result.Error.Error())
		}
		return fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, result.Error.Error())
	}

	transaction.ID = transactionModel.ID
	return nil
}

// ListByUser returns a user's ledger entries, newest first, ties broken
// by primary key
func (r *TransactionRepository) ListByUser(ctx context.Context, userID uint64, offset, limit int) ([]*entity.Transaction, error) {
	var transactionModels []model.Transaction
	result := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Offset(offset).
		Limit(limit).
		Find(&transactionModels)
	if result.Error != nil {
		return nil, fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, result.Error.Error())
	}
	return r.modelsToEntities(transactionModels), nil
}

// List returns all ledger entries ordered by primary key
func (r *TransactionRepository) List(ctx context.Context, offset, limit int) ([]*entity.Transaction, error) {
	var transactionModels []model.Transaction
	result := r.db.WithContext(ctx).
		Order("id").
		Offset(offset).
		Limit(limit).
		Find(&transactionModels)
	if result.Error != nil {
		return nil, fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, result.Error.Error())
	}
	return r.modelsToEntities(transactionModels), nil
}

// SumByUser returns the sum of amounts over a user's ledger entries
func (r *TransactionRepository) SumByUser(ctx context.Context, userID uint64) (int64, error) {
	var sum *int64
	result := r.db.WithContext(ctx).Model(&model.Transaction{}).
		Where("user_id = ?", userID).
		Select("SUM(amount)").
		Scan(&sum)
	if result.Error != nil && result.Error != gorm.ErrRecordNotFound {
		return 0, fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, result.Error.Error())
	}
	if sum == nil {
		return 0, nil
	}
	return *sum, nil
}

func (r *TransactionRepository) modelsToEntities(models []model.Transaction) []*entity.Transaction {
	entries := make([]*entity.Transaction, 0, len(models))
	for i := range models {
		entries = append(entries, r.modelToEntity(&models[i]))
	}
	return entries
}

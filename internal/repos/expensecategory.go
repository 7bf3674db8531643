package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/storefront-backend/internal/logger"
	"github.com/yungbote/storefront-backend/internal/types"
)

type ExpenseCategoryRepo interface {
	Create(ctx context.Context, tx *gorm.DB, categories []*types.ExpenseCategory) ([]*types.ExpenseCategory, error)
	Update(ctx context.Context, tx *gorm.DB, category *types.ExpenseCategory) error
	Delete(ctx context.Context, tx *gorm.DB, categoryIDs []uuid.UUID) error
	GetByIDs(ctx context.Context, tx *gorm.DB, categoryIDs []uuid.UUID) ([]*types.ExpenseCategory, error)
	List(ctx context.Context, tx *gorm.DB) ([]*types.ExpenseCategory, error)
}

type expenseCategoryRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewExpenseCategoryRepo(db *gorm.DB, baseLog *logger.Logger) ExpenseCategoryRepo {
	repoLog := baseLog.With("repo", "ExpenseCategoryRepo")
	return &expenseCategoryRepo{db: db, log: repoLog}
}

func (er *expenseCategoryRepo) Create(ctx context.Context, tx *gorm.DB, categories []*types.ExpenseCategory) ([]*types.ExpenseCategory, error) {
	transaction := tx
	if transaction == nil {
		transaction = er.db
	}
	if len(categories) == 0 {
		return []*types.ExpenseCategory{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

func (er *expenseCategoryRepo) Update(ctx context.Context, tx *gorm.DB, category *types.ExpenseCategory) error {
	transaction := tx
	if transaction == nil {
		transaction = er.db
	}
	return transaction.WithContext(ctx).Save(category).Error
}

func (er *expenseCategoryRepo) Delete(ctx context.Context, tx *gorm.DB, categoryIDs []uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = er.db
	}
	if len(categoryIDs) == 0 {
		return nil
	}
	return transaction.WithContext(ctx).
		Where("id IN ?", categoryIDs).
		Delete(&types.ExpenseCategory{}).Error
}

func (er *expenseCategoryRepo) GetByIDs(ctx context.Context, tx *gorm.DB, categoryIDs []uuid.UUID) ([]*types.ExpenseCategory, error) {
	transaction := tx
	if transaction == nil {
		transaction = er.db
	}
	var results []*types.ExpenseCategory
	if len(categoryIDs) == 0 {
		return results, nil
	}
	if err := transaction.WithContext(ctx).
		Where("id IN ?", categoryIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (er *expenseCategoryRepo) List(ctx context.Context, tx *gorm.DB) ([]*types.ExpenseCategory, error) {
	transaction := tx
	if transaction == nil {
		transaction = er.db
	}
	var results []*types.ExpenseCategory
	if err := transaction.WithContext(ctx).
		Order("name ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

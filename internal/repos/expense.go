package repos

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/storefront-backend/internal/logger"
	"github.com/yungbote/storefront-backend/internal/types"
)

type ExpenseFilter struct {
	CategoryID *uuid.UUID
	From       *time.Time
	To         *time.Time
	Limit      int
	Offset     int
}

type ExpenseCategorySum struct {
	CategoryID *uuid.UUID `json:"category_id"`
	Total      int64      `json:"total"`
}

type ExpenseMonthSum struct {
	Month time.Time `json:"month"`
	Total int64     `json:"total"`
}

type ExpenseRepo interface {
	Create(ctx context.Context, tx *gorm.DB, expenses []*types.Expense) ([]*types.Expense, error)
	Update(ctx context.Context, tx *gorm.DB, expense *types.Expense) error
	Delete(ctx context.Context, tx *gorm.DB, expenseIDs []uuid.UUID) error
	GetByIDs(ctx context.Context, tx *gorm.DB, expenseIDs []uuid.UUID) ([]*types.Expense, error)
	List(ctx context.Context, tx *gorm.DB, filter ExpenseFilter) ([]*types.Expense, error)
	SumByCategory(ctx context.Context, tx *gorm.DB, from, to *time.Time) ([]*ExpenseCategorySum, error)
	SumByMonth(ctx context.Context, tx *gorm.DB, from, to *time.Time) ([]*ExpenseMonthSum, error)
}

type expenseRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewExpenseRepo(db *gorm.DB, baseLog *logger.Logger) ExpenseRepo {
	repoLog := baseLog.With("repo", "ExpenseRepo")
	return &expenseRepo{db: db, log: repoLog}
}

func (er *expenseRepo) Create(ctx context.Context, tx *gorm.DB, expenses []*types.Expense) ([]*types.Expense, error) {
	transaction := tx
	if transaction == nil {
		transaction = er.db
	}
	if len(expenses) == 0 {
		return []*types.Expense{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&expenses).Error; err != nil {
		return nil, err
	}
	return expenses, nil
}

func (er *expenseRepo) Update(ctx context.Context, tx *gorm.DB, expense *types.Expense) error {
	transaction := tx
	if transaction == nil {
		transaction = er.db
	}
	return transaction.WithContext(ctx).Save(expense).Error
}

func (er *expenseRepo) Delete(ctx context.Context, tx *gorm.DB, expenseIDs []uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = er.db
	}
	if len(expenseIDs) == 0 {
		return nil
	}
	return transaction.WithContext(ctx).
		Where("id IN ?", expenseIDs).
		Delete(&types.Expense{}).Error
}

func (er *expenseRepo) GetByIDs(ctx context.Context, tx *gorm.DB, expenseIDs []uuid.UUID) ([]*types.Expense, error) {
	transaction := tx
	if transaction == nil {
		transaction = er.db
	}
	var results []*types.Expense
	if len(expenseIDs) == 0 {
		return results, nil
	}
	if err := transaction.WithContext(ctx).
		Preload("Category").
		Where("id IN ?", expenseIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (er *expenseRepo) List(ctx context.Context, tx *gorm.DB, filter ExpenseFilter) ([]*types.Expense, error) {
	transaction := tx
	if transaction == nil {
		transaction = er.db
	}
	query := transaction.WithContext(ctx).Model(&types.Expense{})
	query = applyExpenseRange(query, filter.From, filter.To)
	if filter.CategoryID != nil {
		query = query.Where("category_id = ?", *filter.CategoryID)
	}
	query = query.Order("spent_at DESC")
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		query = query.Offset(filter.Offset)
	}
	var results []*types.Expense
	if err := query.Preload("Category").Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (er *expenseRepo) SumByCategory(ctx context.Context, tx *gorm.DB, from, to *time.Time) ([]*ExpenseCategorySum, error) {
	transaction := tx
	if transaction == nil {
		transaction = er.db
	}
	var results []*ExpenseCategorySum
	query := transaction.WithContext(ctx).Model(&types.Expense{})
	query = applyExpenseRange(query, from, to)
	if err := query.
		Select("category_id, COALESCE(SUM(amount), 0) AS total").
		Group("category_id").
		Scan(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (er *expenseRepo) SumByMonth(ctx context.Context, tx *gorm.DB, from, to *time.Time) ([]*ExpenseMonthSum, error) {
	transaction := tx
	if transaction == nil {
		transaction = er.db
	}
	var results []*ExpenseMonthSum
	query := transaction.WithContext(ctx).Model(&types.Expense{})
	query = applyExpenseRange(query, from, to)
	if err := query.
		Select("date_trunc('month', spent_at) AS month, COALESCE(SUM(amount), 0) AS total").
		Group("date_trunc('month', spent_at)").
		Order("month ASC").
		Scan(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func applyExpenseRange(query *gorm.DB, from, to *time.Time) *gorm.DB {
	if from != nil {
		query = query.Where("spent_at >= ?", *from)
	}
	if to != nil {
		query = query.Where("spent_at < ?", *to)
	}
	return query
}

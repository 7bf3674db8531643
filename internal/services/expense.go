package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/storefront-backend/internal/logger"
	"github.com/yungbote/storefront-backend/internal/normalization"
	"github.com/yungbote/storefront-backend/internal/repos"
	"github.com/yungbote/storefront-backend/internal/requestdata"
	"github.com/yungbote/storefront-backend/internal/types"
)

// ExpenseSummary is the admin dashboard rollup: spend by category, spend by
// month, and the order counters next to them.
type ExpenseSummary struct {
	ByCategory []*repos.ExpenseCategorySum `json:"by_category"`
	ByMonth    []*repos.ExpenseMonthSum    `json:"by_month"`
	Orders     *repos.OrderStats           `json:"orders"`
}

type ExpenseService interface {
	CreateExpense(ctx context.Context, expense *types.Expense) (*types.Expense, error)
	UpdateExpense(ctx context.Context, expense *types.Expense) (*types.Expense, error)
	DeleteExpense(ctx context.Context, expenseID uuid.UUID) error
	ListExpenses(ctx context.Context, filter repos.ExpenseFilter) ([]*types.Expense, error)
	Summary(ctx context.Context, from, to *time.Time) (*ExpenseSummary, error)

	ListCategories(ctx context.Context) ([]*types.ExpenseCategory, error)
	CreateCategory(ctx context.Context, category *types.ExpenseCategory) (*types.ExpenseCategory, error)
	UpdateCategory(ctx context.Context, category *types.ExpenseCategory) (*types.ExpenseCategory, error)
	DeleteCategory(ctx context.Context, categoryID uuid.UUID) error
}

type expenseService struct {
	db           *gorm.DB
	log          *logger.Logger
	expenseRepo  repos.ExpenseRepo
	categoryRepo repos.ExpenseCategoryRepo
	orderRepo    repos.OrderRepo
}

func NewExpenseService(
	db *gorm.DB,
	log *logger.Logger,
	expenseRepo repos.ExpenseRepo,
	categoryRepo repos.ExpenseCategoryRepo,
	orderRepo repos.OrderRepo,
) ExpenseService {
	serviceLog := log.With("service", "ExpenseService")
	return &expenseService{
		db:           db,
		log:          serviceLog,
		expenseRepo:  expenseRepo,
		categoryRepo: categoryRepo,
		orderRepo:    orderRepo,
	}
}

func (es *expenseService) CreateExpense(ctx context.Context, expense *types.Expense) (*types.Expense, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.UserID == uuid.Nil {
		return nil, fmt.Errorf("unauthorized")
	}
	if err := validateExpense(expense); err != nil {
		return nil, err
	}
	expense.ID = uuid.New()
	expense.CreatedByID = rd.UserID
	if expense.SpentAt.IsZero() {
		expense.SpentAt = time.Now()
	}
	if _, err := es.expenseRepo.Create(ctx, nil, []*types.Expense{expense}); err != nil {
		return nil, fmt.Errorf("failed to create expense: %w", err)
	}
	return expense, nil
}

func (es *expenseService) UpdateExpense(ctx context.Context, expense *types.Expense) (*types.Expense, error) {
	if expense == nil || expense.ID == uuid.Nil {
		return nil, fmt.Errorf("expense id required")
	}
	existing, err := es.expenseRepo.GetByIDs(ctx, nil, []uuid.UUID{expense.ID})
	if err != nil {
		return nil, fmt.Errorf("error fetching expense: %w", err)
	}
	if len(existing) == 0 {
		return nil, fmt.Errorf("expense not found")
	}
	if err := validateExpense(expense); err != nil {
		return nil, err
	}
	expense.CreatedByID = existing[0].CreatedByID
	expense.CreatedAt = existing[0].CreatedAt
	if err := es.expenseRepo.Update(ctx, nil, expense); err != nil {
		return nil, fmt.Errorf("failed to update expense: %w", err)
	}
	return expense, nil
}

func (es *expenseService) DeleteExpense(ctx context.Context, expenseID uuid.UUID) error {
	if err := es.expenseRepo.Delete(ctx, nil, []uuid.UUID{expenseID}); err != nil {
		return fmt.Errorf("failed to delete expense: %w", err)
	}
	return nil
}

func (es *expenseService) ListExpenses(ctx context.Context, filter repos.ExpenseFilter) ([]*types.Expense, error) {
	if filter.Limit <= 0 {
		filter.Limit = defaultPageSize
	}
	if filter.Limit > maxPageSize {
		filter.Limit = maxPageSize
	}
	return es.expenseRepo.List(ctx, nil, filter)
}

func (es *expenseService) Summary(ctx context.Context, from, to *time.Time) (*ExpenseSummary, error) {
	byCategory, cErr := es.expenseRepo.SumByCategory(ctx, nil, from, to)
	if cErr != nil {
		return nil, fmt.Errorf("error summing by category: %w", cErr)
	}
	byMonth, mErr := es.expenseRepo.SumByMonth(ctx, nil, from, to)
	if mErr != nil {
		return nil, fmt.Errorf("error summing by month: %w", mErr)
	}
	orderStats, oErr := es.orderRepo.Stats(ctx, nil)
	if oErr != nil {
		return nil, fmt.Errorf("error loading order stats: %w", oErr)
	}
	return &ExpenseSummary{ByCategory: byCategory, ByMonth: byMonth, Orders: orderStats}, nil
}

func (es *expenseService) ListCategories(ctx context.Context) ([]*types.ExpenseCategory, error) {
	return es.categoryRepo.List(ctx, nil)
}

func (es *expenseService) CreateCategory(ctx context.Context, category *types.ExpenseCategory) (*types.ExpenseCategory, error) {
	if category == nil {
		return nil, fmt.Errorf("no category given")
	}
	category.Name = normalization.TrimInputString(category.Name)
	if category.Name == "" {
		return nil, fmt.Errorf("category name required")
	}
	category.ID = uuid.New()
	if _, err := es.categoryRepo.Create(ctx, nil, []*types.ExpenseCategory{category}); err != nil {
		return nil, fmt.Errorf("failed to create expense category: %w", err)
	}
	return category, nil
}

func (es *expenseService) UpdateCategory(ctx context.Context, category *types.ExpenseCategory) (*types.ExpenseCategory, error) {
	if category == nil || category.ID == uuid.Nil {
		return nil, fmt.Errorf("category id required")
	}
	category.Name = normalization.TrimInputString(category.Name)
	if category.Name == "" {
		return nil, fmt.Errorf("category name required")
	}
	existing, err := es.categoryRepo.GetByIDs(ctx, nil, []uuid.UUID{category.ID})
	if err != nil {
		return nil, fmt.Errorf("error fetching expense category: %w", err)
	}
	if len(existing) == 0 {
		return nil, fmt.Errorf("expense category not found")
	}
	category.CreatedAt = existing[0].CreatedAt
	if err := es.categoryRepo.Update(ctx, nil, category); err != nil {
		return nil, fmt.Errorf("failed to update expense category: %w", err)
	}
	return category, nil
}

func (es *expenseService) DeleteCategory(ctx context.Context, categoryID uuid.UUID) error {
	if err := es.categoryRepo.Delete(ctx, nil, []uuid.UUID{categoryID}); err != nil {
		return fmt.Errorf("failed to delete expense category: %w", err)
	}
	return nil
}

func validateExpense(expense *types.Expense) error {
	if expense == nil {
		return fmt.Errorf("no expense given")
	}
	expense.Title = normalization.TrimInputString(expense.Title)
	if expense.Title == "" {
		return fmt.Errorf("expense title required")
	}
	if expense.Amount <= 0 {
		return fmt.Errorf("expense amount must be positive")
	}
	return nil
}

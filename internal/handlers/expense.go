package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/storefront-backend/internal/repos"
	"github.com/yungbote/storefront-backend/internal/services"
	"github.com/yungbote/storefront-backend/internal/types"
)

type ExpenseHandler struct {
	expenseService services.ExpenseService
}

func NewExpenseHandler(expenseService services.ExpenseService) *ExpenseHandler {
	return &ExpenseHandler{expenseService: expenseService}
}

type expenseRequest struct {
	CategoryID *uuid.UUID `json:"category_id"`
	Title      string     `json:"title"`
	Amount     int64      `json:"amount"`
	Note       string     `json:"note"`
	SpentAt    *time.Time `json:"spent_at"`
}

func (er *expenseRequest) toExpense() *types.Expense {
	expense := &types.Expense{
		CategoryID: er.CategoryID,
		Title:      er.Title,
		Amount:     er.Amount,
		Note:       er.Note,
	}
	if er.SpentAt != nil {
		expense.SpentAt = *er.SpentAt
	}
	return expense
}

func (eh *ExpenseHandler) CreateExpense(c *gin.Context) {
	var req expenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	created, err := eh.expenseService.CreateExpense(c.Request.Context(), req.toExpense())
	if err != nil {
		RespondError(c, http.StatusBadRequest, "expense_create_failed", err)
		return
	}
	RespondOK(c, gin.H{"expense": created})
}

func (eh *ExpenseHandler) UpdateExpense(c *gin.Context) {
	expenseID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return
	}
	var req expenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	expense := req.toExpense()
	expense.ID = expenseID
	updated, err := eh.expenseService.UpdateExpense(c.Request.Context(), expense)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "expense_update_failed", err)
		return
	}
	RespondOK(c, gin.H{"expense": updated})
}

func (eh *ExpenseHandler) DeleteExpense(c *gin.Context) {
	expenseID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return
	}
	if err := eh.expenseService.DeleteExpense(c.Request.Context(), expenseID); err != nil {
		RespondError(c, http.StatusBadRequest, "expense_delete_failed", err)
		return
	}
	RespondOK(c, gin.H{"deleted": expenseID})
}

func (eh *ExpenseHandler) ListExpenses(c *gin.Context) {
	filter := repos.ExpenseFilter{}
	if raw := c.Query("category_id"); raw != "" {
		categoryID, err := uuid.Parse(raw)
		if err != nil {
			RespondError(c, http.StatusBadRequest, "invalid_category_id", err)
			return
		}
		filter.CategoryID = &categoryID
	}
	var parseErr error
	filter.From, filter.To, parseErr = parseDateRange(c)
	if parseErr != nil {
		RespondError(c, http.StatusBadRequest, "invalid_date_range", parseErr)
		return
	}
	filter.Limit, _ = strconv.Atoi(c.Query("limit"))
	filter.Offset, _ = strconv.Atoi(c.Query("offset"))

	expenses, err := eh.expenseService.ListExpenses(c.Request.Context(), filter)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "expenses_list_failed", err)
		return
	}
	RespondOK(c, gin.H{"expenses": expenses})
}

func (eh *ExpenseHandler) Summary(c *gin.Context) {
	from, to, err := parseDateRange(c)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_date_range", err)
		return
	}
	summary, err := eh.expenseService.Summary(c.Request.Context(), from, to)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "expense_summary_failed", err)
		return
	}
	RespondOK(c, summary)
}

func (eh *ExpenseHandler) ListCategories(c *gin.Context) {
	categories, err := eh.expenseService.ListCategories(c.Request.Context())
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "expense_categories_failed", err)
		return
	}
	RespondOK(c, gin.H{"categories": categories})
}

func (eh *ExpenseHandler) CreateCategory(c *gin.Context) {
	var req struct {
		Name        string `json:"name"`
		Description string `json:"description"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	created, err := eh.expenseService.CreateCategory(c.Request.Context(), &types.ExpenseCategory{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		RespondError(c, http.StatusBadRequest, "expense_category_create_failed", err)
		return
	}
	RespondOK(c, gin.H{"category": created})
}

func (eh *ExpenseHandler) UpdateCategory(c *gin.Context) {
	categoryID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return
	}
	var req struct {
		Name        string `json:"name"`
		Description string `json:"description"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	updated, err := eh.expenseService.UpdateCategory(c.Request.Context(), &types.ExpenseCategory{
		ID:          categoryID,
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		RespondError(c, http.StatusBadRequest, "expense_category_update_failed", err)
		return
	}
	RespondOK(c, gin.H{"category": updated})
}

func (eh *ExpenseHandler) DeleteCategory(c *gin.Context) {
	categoryID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return
	}
	if err := eh.expenseService.DeleteCategory(c.Request.Context(), categoryID); err != nil {
		RespondError(c, http.StatusBadRequest, "expense_category_delete_failed", err)
		return
	}
	RespondOK(c, gin.H{"deleted": categoryID})
}

// parseDateRange reads optional RFC 3339 date bounds from ?from= and ?to=.
func parseDateRange(c *gin.Context) (*time.Time, *time.Time, error) {
	var from, to *time.Time
	if raw := c.Query("from"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return nil, nil, err
		}
		from = &parsed
	}
	if raw := c.Query("to"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return nil, nil, err
		}
		to = &parsed
	}
	return from, to, nil
}

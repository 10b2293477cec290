package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "budgetbuddy/internal/errors"
	"budgetbuddy/internal/models"
	"budgetbuddy/internal/services"
)

// ExpenseHandler handles expense-related requests for the authenticated user.
type ExpenseHandler struct {
	expenseService services.ExpenseServicer
	auditService   services.AuditServicer
}

// NewExpenseHandler creates a new ExpenseHandler
func NewExpenseHandler(expenseService services.ExpenseServicer, auditService services.AuditServicer) *ExpenseHandler {
	return &ExpenseHandler{expenseService: expenseService, auditService: auditService}
}

// ExpenseRequest is the payload for creating or replacing an expense.
// Amount is a decimal number with at most two fractional digits.
type ExpenseRequest struct {
	Description string        `json:"description" binding:"required,notblank,max=255"`
	Amount      *models.Money `json:"amount" binding:"required,gt=0" swaggertype:"number" example:"3.50"`
	Category    *string       `json:"category" binding:"omitempty,max=100"`
	Date        string        `json:"date" binding:"required,calendar_date" example:"2024-01-01"`
}

// ExpenseQuery holds the optional list filters.
type ExpenseQuery struct {
	From     string `form:"from" binding:"omitempty,calendar_date"`
	To       string `form:"to" binding:"omitempty,calendar_date"`
	Category string `form:"category" binding:"max=100"`
}

func (r *ExpenseRequest) fields() (models.ExpenseFields, error) {
	date, err := models.ParseDate(r.Date)
	if err != nil {
		return models.ExpenseFields{}, apperrors.WithMessage(apperrors.ErrValidation, err.Error())
	}
	return models.ExpenseFields{
		Description: r.Description,
		Amount:      *r.Amount,
		Category:    r.Category,
		Date:        date,
	}, nil
}

func (q *ExpenseQuery) filter() (models.ExpenseFilter, error) {
	var filter models.ExpenseFilter
	var err error
	if q.From != "" {
		if filter.From, err = models.ParseDate(q.From); err != nil {
			return filter, apperrors.WithMessage(apperrors.ErrValidation, err.Error())
		}
	}
	if q.To != "" {
		if filter.To, err = models.ParseDate(q.To); err != nil {
			return filter, apperrors.WithMessage(apperrors.ErrValidation, err.Error())
		}
	}
	if q.Category != "" {
		category := q.Category
		filter.Category = &category
	}
	return filter, nil
}

func bindExpenseQuery(c *gin.Context) (models.ExpenseFilter, error) {
	var q ExpenseQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		return models.ExpenseFilter{}, bindError(err)
	}
	return q.filter()
}

// ListExpenses returns the user's expenses
// @Summary     List expenses
// @Description Get the authenticated user's expenses, newest first
// @Tags        expenses
// @Produce     json
// @Security    BearerAuth
// @Param       from     query string false "Earliest date (YYYY-MM-DD), inclusive"
// @Param       to       query string false "Latest date (YYYY-MM-DD), inclusive"
// @Param       category query string false "Category, or 'uncategorized'"
// @Success     200 {array}  models.Expense "Expenses"
// @Failure     400 {object} ErrorResponse "Invalid filter"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /expenses [get]
func (h *ExpenseHandler) ListExpenses(c *gin.Context) {
	identity, err := getIdentity(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	filter, err := bindExpenseQuery(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	expenses, err := h.expenseService.List(c.Request.Context(), identity.ID, filter)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, expenses)
}

// GetExpenseSummary returns spending totals
// @Summary     Expense summary
// @Description Total, per-category and per-month spending for the authenticated user
// @Tags        expenses
// @Produce     json
// @Security    BearerAuth
// @Param       from     query string false "Earliest date (YYYY-MM-DD), inclusive"
// @Param       to       query string false "Latest date (YYYY-MM-DD), inclusive"
// @Param       category query string false "Category, or 'uncategorized'"
// @Success     200 {object} services.ExpenseSummary "Summary"
// @Failure     400 {object} ErrorResponse "Invalid filter"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /expenses/summary [get]
func (h *ExpenseHandler) GetExpenseSummary(c *gin.Context) {
	identity, err := getIdentity(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	filter, err := bindExpenseQuery(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	summary, err := h.expenseService.Summary(c.Request.Context(), identity.ID, filter)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, summary)
}

// GetExpense returns one expense
// @Summary     Get expense
// @Description Get one of the authenticated user's expenses
// @Tags        expenses
// @Produce     json
// @Security    BearerAuth
// @Param       id  path     int true "Expense ID"
// @Success     200 {object} models.Expense "Expense"
// @Failure     400 {object} ErrorResponse "Invalid ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Expense not found"
// @Router      /expenses/{id} [get]
func (h *ExpenseHandler) GetExpense(c *gin.Context) {
	identity, err := getIdentity(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	expenseID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	expense, err := h.expenseService.Get(c.Request.Context(), identity.ID, expenseID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, expense)
}

// CreateExpense records a new expense
// @Summary     Create expense
// @Description Record a new expense for the authenticated user
// @Tags        expenses
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body     ExpenseRequest true "Expense data"
// @Success     201     {object} models.Expense "Created expense"
// @Failure     400     {object} ErrorResponse  "Invalid input"
// @Failure     401     {object} ErrorResponse  "Unauthorized"
// @Failure     500     {object} ErrorResponse  "Server error"
// @Router      /expenses [post]
func (h *ExpenseHandler) CreateExpense(c *gin.Context) {
	identity, err := getIdentity(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req ExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, bindError(err))
		return
	}
	fields, err := req.fields()
	if err != nil {
		respondWithError(c, err)
		return
	}

	expense, err := h.expenseService.Create(c.Request.Context(), identity.ID, fields)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(c.Request.Context(), services.AuditEntry{
		UserID:       identity.ID,
		Action:       services.ActionCreateExpense,
		ResourceType: "expense",
		ResourceID:   expense.ID,
		IPAddress:    c.ClientIP(),
		Changes:      expenseChanges(expense),
	})

	c.JSON(http.StatusCreated, expense)
}

// UpdateExpense replaces an expense
// @Summary     Update expense
// @Description Replace every field of one of the authenticated user's expenses
// @Tags        expenses
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path     int            true "Expense ID"
// @Param       request body     ExpenseRequest true "Expense data"
// @Success     200     {object} models.Expense "Updated expense"
// @Failure     400     {object} ErrorResponse  "Invalid input"
// @Failure     401     {object} ErrorResponse  "Unauthorized"
// @Failure     404     {object} ErrorResponse  "Expense not found"
// @Failure     500     {object} ErrorResponse  "Server error"
// @Router      /expenses/{id} [put]
func (h *ExpenseHandler) UpdateExpense(c *gin.Context) {
	identity, err := getIdentity(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	expenseID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req ExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, bindError(err))
		return
	}
	fields, err := req.fields()
	if err != nil {
		respondWithError(c, err)
		return
	}

	expense, err := h.expenseService.Update(c.Request.Context(), identity.ID, expenseID, fields)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(c.Request.Context(), services.AuditEntry{
		UserID:       identity.ID,
		Action:       services.ActionUpdateExpense,
		ResourceType: "expense",
		ResourceID:   expense.ID,
		IPAddress:    c.ClientIP(),
		Changes:      expenseChanges(expense),
	})

	c.JSON(http.StatusOK, expense)
}

// DeleteExpense removes an expense
// @Summary     Delete expense
// @Description Delete one of the authenticated user's expenses
// @Tags        expenses
// @Produce     json
// @Security    BearerAuth
// @Param       id  path     int true "Expense ID"
// @Success     200 {object} MessageResponse "Expense deleted"
// @Failure     400 {object} ErrorResponse   "Invalid ID"
// @Failure     401 {object} ErrorResponse   "Unauthorized"
// @Failure     404 {object} ErrorResponse   "Expense not found"
// @Failure     500 {object} ErrorResponse   "Server error"
// @Router      /expenses/{id} [delete]
func (h *ExpenseHandler) DeleteExpense(c *gin.Context) {
	identity, err := getIdentity(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	expenseID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.expenseService.Delete(c.Request.Context(), identity.ID, expenseID); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(c.Request.Context(), services.AuditEntry{
		UserID:       identity.ID,
		Action:       services.ActionDeleteExpense,
		ResourceType: "expense",
		ResourceID:   expenseID,
		IPAddress:    c.ClientIP(),
	})

	c.JSON(http.StatusOK, MessageResponse{Message: "Expense deleted successfully"})
}

func expenseChanges(e *models.Expense) map[string]any {
	return map[string]any{
		"description": e.Description,
		"amount":      e.Amount.String(),
		"category":    e.Category,
		"date":        e.Date.String(),
	}
}

package services

import (
	"context"

	"budgetbuddy/internal/auth"
	"budgetbuddy/internal/models"
)

// UserRepository is the credential store the auth service depends on.
type UserRepository interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, id uint) (*models.User, error)
	Create(ctx context.Context, name *string, email, passwordHash string) (*models.User, error)
}

// ExpenseRepository is the owner-scoped expense store.
type ExpenseRepository interface {
	ListByOwner(ctx context.Context, ownerID uint, filter models.ExpenseFilter) ([]models.Expense, error)
	GetByOwnerAndID(ctx context.Context, ownerID, id uint) (*models.Expense, error)
	Create(ctx context.Context, ownerID uint, fields models.ExpenseFields) (*models.Expense, error)
	Update(ctx context.Context, ownerID, id uint, fields models.ExpenseFields) (bool, error)
	Delete(ctx context.Context, ownerID, id uint) (bool, error)
}

// TokenIssuer signs identity tokens.
type TokenIssuer interface {
	Issue(userID uint, email string) (string, error)
}

// AuthResult is returned by a successful registration or login.
type AuthResult struct {
	User  *models.User
	Token string
}

// AuthServicer defines the contract for registration and login.
type AuthServicer interface {
	Register(ctx context.Context, name *string, email, password string) (*AuthResult, error)
	Login(ctx context.Context, email, password string) (*AuthResult, error)
	GetUser(ctx context.Context, id uint) (*models.User, error)
}

// CategoryTotal is the spending in one category.
type CategoryTotal struct {
	Category string       `json:"category"`
	Total    models.Money `json:"total"`
	Count    int          `json:"count"`
}

// MonthTotal is the spending in one calendar month (YYYY-MM).
type MonthTotal struct {
	Month string       `json:"month"`
	Total models.Money `json:"total"`
	Count int          `json:"count"`
}

// ExpenseSummary aggregates a user's expenses for charts.
type ExpenseSummary struct {
	Total      models.Money    `json:"total"`
	Count      int             `json:"count"`
	ByCategory []CategoryTotal `json:"by_category"`
	ByMonth    []MonthTotal    `json:"by_month"`
}

// ExpenseServicer defines the contract for owner-scoped expense operations.
type ExpenseServicer interface {
	List(ctx context.Context, userID uint, filter models.ExpenseFilter) ([]models.Expense, error)
	Get(ctx context.Context, userID, expenseID uint) (*models.Expense, error)
	Create(ctx context.Context, userID uint, input models.ExpenseFields) (*models.Expense, error)
	Update(ctx context.Context, userID, expenseID uint, input models.ExpenseFields) (*models.Expense, error)
	Delete(ctx context.Context, userID, expenseID uint) error
	Summary(ctx context.Context, userID uint, filter models.ExpenseFilter) (*ExpenseSummary, error)
}

// AuditServicer defines the contract for audit logging.
type AuditServicer interface {
	Log(ctx context.Context, entry AuditEntry)
}

// Audit actions.
const (
	ActionRegister      = "REGISTER"
	ActionLogin         = "LOGIN"
	ActionCreateExpense = "CREATE_EXPENSE"
	ActionUpdateExpense = "UPDATE_EXPENSE"
	ActionDeleteExpense = "DELETE_EXPENSE"
)

// AuditEntry describes one audited operation.
type AuditEntry struct {
	UserID       uint
	Action       string
	ResourceType string
	ResourceID   uint
	IPAddress    string
	Changes      map[string]interface{}
}

var _ AuthServicer = (*authService)(nil)
var _ ExpenseServicer = (*expenseService)(nil)
var _ AuditServicer = (*auditService)(nil)

var _ TokenIssuer = (*auth.TokenService)(nil)

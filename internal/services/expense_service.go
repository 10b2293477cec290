package services

import (
	"context"
	"errors"
	"sort"
	"strings"

	apperrors "budgetbuddy/internal/errors"
	"budgetbuddy/internal/models"
	"budgetbuddy/internal/store"
)

// expenseService handles expense business logic. Ownership is enforced by
// the repository queries themselves.
type expenseService struct {
	expenses ExpenseRepository
}

// NewExpenseService creates a new ExpenseServicer.
func NewExpenseService(expenses ExpenseRepository) ExpenseServicer {
	return &expenseService{expenses: expenses}
}

// List returns the user's expenses, most recent first.
func (s *expenseService) List(ctx context.Context, userID uint, filter models.ExpenseFilter) ([]models.Expense, error) {
	if err := validateFilter(filter); err != nil {
		return nil, err
	}
	expenses, err := s.expenses.ListByOwner(ctx, userID, filter)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if expenses == nil {
		expenses = []models.Expense{}
	}
	return expenses, nil
}

// Get retrieves one of the user's expenses.
func (s *expenseService) Get(ctx context.Context, userID, expenseID uint) (*models.Expense, error) {
	expense, err := s.expenses.GetByOwnerAndID(ctx, userID, expenseID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperrors.ErrExpenseNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return expense, nil
}

// Create records a new expense for the user.
func (s *expenseService) Create(ctx context.Context, userID uint, input models.ExpenseFields) (*models.Expense, error) {
	fields, err := normalizeExpense(input)
	if err != nil {
		return nil, err
	}

	expense, err := s.expenses.Create(ctx, userID, fields)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return expense, nil
}

// Update replaces every editable field of the user's expense.
func (s *expenseService) Update(ctx context.Context, userID, expenseID uint, input models.ExpenseFields) (*models.Expense, error) {
	fields, err := normalizeExpense(input)
	if err != nil {
		return nil, err
	}

	updated, err := s.expenses.Update(ctx, userID, expenseID, fields)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if !updated {
		return nil, apperrors.ErrExpenseNotFound
	}

	return s.Get(ctx, userID, expenseID)
}

// Delete removes one of the user's expenses.
func (s *expenseService) Delete(ctx context.Context, userID, expenseID uint) error {
	deleted, err := s.expenses.Delete(ctx, userID, expenseID)
	if err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if !deleted {
		return apperrors.ErrExpenseNotFound
	}
	return nil
}

// Summary totals the user's expenses overall, per category and per month.
// Categories are ordered by total descending, months chronologically.
func (s *expenseService) Summary(ctx context.Context, userID uint, filter models.ExpenseFilter) (*ExpenseSummary, error) {
	expenses, err := s.List(ctx, userID, filter)
	if err != nil {
		return nil, err
	}

	summary := &ExpenseSummary{
		ByCategory: []CategoryTotal{},
		ByMonth:    []MonthTotal{},
	}
	categories := make(map[string]*CategoryTotal)
	months := make(map[string]*MonthTotal)

	for i := range expenses {
		e := &expenses[i]
		summary.Total = summary.Total.Add(e.Amount)
		summary.Count++

		label := e.CategoryLabel()
		ct, ok := categories[label]
		if !ok {
			ct = &CategoryTotal{Category: label}
			categories[label] = ct
		}
		ct.Total = ct.Total.Add(e.Amount)
		ct.Count++

		key := e.Date.MonthKey()
		mt, ok := months[key]
		if !ok {
			mt = &MonthTotal{Month: key}
			months[key] = mt
		}
		mt.Total = mt.Total.Add(e.Amount)
		mt.Count++
	}

	for _, ct := range categories {
		summary.ByCategory = append(summary.ByCategory, *ct)
	}
	sort.Slice(summary.ByCategory, func(i, j int) bool {
		a, b := summary.ByCategory[i], summary.ByCategory[j]
		if a.Total != b.Total {
			return a.Total > b.Total
		}
		return a.Category < b.Category
	})

	for _, mt := range months {
		summary.ByMonth = append(summary.ByMonth, *mt)
	}
	sort.Slice(summary.ByMonth, func(i, j int) bool {
		return summary.ByMonth[i].Month < summary.ByMonth[j].Month
	})

	return summary, nil
}

// normalizeExpense trims text fields and checks the required ones.
func normalizeExpense(input models.ExpenseFields) (models.ExpenseFields, error) {
	fields := input
	fields.Description = strings.TrimSpace(input.Description)

	var missing []string
	if fields.Description == "" {
		missing = append(missing, "description")
	}
	if fields.Amount == 0 {
		missing = append(missing, "amount")
	}
	if fields.Date.IsZero() {
		missing = append(missing, "date")
	}
	if len(missing) > 0 {
		return fields, apperrors.WithMessage(apperrors.ErrValidation,
			strings.Join(missing, ", ")+" required")
	}
	if fields.Amount < 0 {
		return fields, apperrors.WithMessage(apperrors.ErrValidation, "amount must be positive")
	}
	if fields.Amount > models.MaxAmount {
		return fields, apperrors.WithMessage(apperrors.ErrValidation,
			"amount must not exceed "+models.MaxAmount.String())
	}

	if fields.Category != nil {
		category := strings.TrimSpace(*fields.Category)
		if category == "" {
			fields.Category = nil
		} else {
			fields.Category = &category
		}
	}
	return fields, nil
}

func validateFilter(filter models.ExpenseFilter) error {
	if !filter.From.IsZero() && !filter.To.IsZero() && filter.To.Before(filter.From.Time) {
		return apperrors.WithMessage(apperrors.ErrValidation, "from must not be after to")
	}
	return nil
}

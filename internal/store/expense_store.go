package store

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"budgetbuddy/internal/models"
)

// ExpenseStore persists expenses. Every method takes the owner id and
// filters on it inside the same query.
type ExpenseStore struct {
	db *gorm.DB
}

// NewExpenseStore creates a new ExpenseStore.
func NewExpenseStore(db *gorm.DB) *ExpenseStore {
	return &ExpenseStore{db: db}
}

// ListByOwner returns the owner's expenses, newest date first and, within a
// date, most recently created first.
func (s *ExpenseStore) ListByOwner(ctx context.Context, ownerID uint, filter models.ExpenseFilter) ([]models.Expense, error) {
	query := s.db.WithContext(ctx).Where("user_id = ?", ownerID)
	if !filter.From.IsZero() {
		query = query.Where("date >= ?", filter.From)
	}
	if !filter.To.IsZero() {
		query = query.Where("date <= ?", filter.To)
	}
	if filter.Category != nil {
		if *filter.Category == models.UncategorizedLabel {
			query = query.Where("category IS NULL")
		} else {
			query = query.Where("category = ?", *filter.Category)
		}
	}

	expenses := []models.Expense{}
	if err := query.Order("date DESC").Order("created_at DESC").Order("id DESC").Find(&expenses).Error; err != nil {
		return nil, err
	}
	return expenses, nil
}

// GetByOwnerAndID returns the expense only if it belongs to ownerID.
func (s *ExpenseStore) GetByOwnerAndID(ctx context.Context, ownerID, id uint) (*models.Expense, error) {
	var expense models.Expense
	err := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, ownerID).
		First(&expense).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &expense, nil
}

// Create inserts an expense owned by ownerID.
func (s *ExpenseStore) Create(ctx context.Context, ownerID uint, fields models.ExpenseFields) (*models.Expense, error) {
	expense := &models.Expense{
		UserID:      ownerID,
		Description: fields.Description,
		Amount:      fields.Amount,
		Category:    fields.Category,
		Date:        fields.Date,
	}
	if err := s.db.WithContext(ctx).Create(expense).Error; err != nil {
		return nil, err
	}
	return expense, nil
}

// Update replaces all editable fields of the owner's expense in a single
// statement. It reports whether a row matched both id and owner.
func (s *ExpenseStore) Update(ctx context.Context, ownerID, id uint, fields models.ExpenseFields) (bool, error) {
	result := s.db.WithContext(ctx).
		Model(&models.Expense{}).
		Where("id = ? AND user_id = ?", id, ownerID).
		Updates(map[string]interface{}{
			"description": fields.Description,
			"amount":      fields.Amount,
			"category":    fields.Category,
			"date":        fields.Date,
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// Delete removes the owner's expense. It reports whether a row was removed.
func (s *ExpenseStore) Delete(ctx context.Context, ownerID, id uint) (bool, error) {
	result := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, ownerID).
		Delete(&models.Expense{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

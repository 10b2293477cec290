package models

// UncategorizedLabel is shown for expenses without a category.
const UncategorizedLabel = "uncategorized"

// Expense is a single spending record owned by exactly one user.
type Expense struct {
	Base
	UserID      uint    `gorm:"not null;index:idx_expenses_user_date,priority:1" json:"user_id"`
	Description string  `gorm:"size:255;not null" json:"description"`
	Amount      Money   `gorm:"type:bigint;not null" json:"amount"`
	Category    *string `gorm:"size:100" json:"category"`
	Date        Date    `gorm:"not null;index:idx_expenses_user_date,priority:2" json:"date"`
}

// CategoryLabel returns the category or UncategorizedLabel when unset.
func (e *Expense) CategoryLabel() string {
	if e.Category == nil || *e.Category == "" {
		return UncategorizedLabel
	}
	return *e.Category
}

// ExpenseFields are the owner-editable fields of an expense. An update
// replaces all of them.
type ExpenseFields struct {
	Description string
	Amount      Money
	Category    *string
	Date        Date
}

// ExpenseFilter narrows an owner's expense listing. Zero values mean no
// restriction.
type ExpenseFilter struct {
	From     Date
	To       Date
	Category *string
}

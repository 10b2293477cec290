package models

// User represents a registered account holder.
// Email is unique and compared exactly as stored.
type User struct {
	Base
	Name         *string   `gorm:"size:100" json:"name"`
	Email        string    `gorm:"uniqueIndex;size:255;not null" json:"email"`
	PasswordHash string    `gorm:"not null" json:"-"`
	Expenses     []Expense `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

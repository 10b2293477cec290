package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"budgetbuddy/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// TestPassword is the plaintext password of every fixture user.
const TestPassword = "password123"

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// CreateTestUser creates a user with a hashed password and unique email.
func CreateTestUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	email := fmt.Sprintf("user%d@test.com", nextID())
	return CreateTestUserWithEmail(t, db, email)
}

// CreateTestUserWithEmail creates a user with the given email.
func CreateTestUserWithEmail(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(TestPassword), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &models.User{
		Email:        email,
		PasswordHash: string(hash),
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateTestExpense creates an uncategorized expense dated today.
func CreateTestExpense(t *testing.T, db *gorm.DB, userID uint) *models.Expense {
	t.Helper()
	return CreateTestExpenseWith(t, db, userID, models.ExpenseFields{
		Description: fmt.Sprintf("Test Expense %d", nextID()),
		Amount:      1000, // 10.00
		Date:        models.DateOf(time.Now()),
	})
}

// CreateTestExpenseWith creates an expense with explicit fields.
func CreateTestExpenseWith(t *testing.T, db *gorm.DB, userID uint, fields models.ExpenseFields) *models.Expense {
	t.Helper()

	expense := &models.Expense{
		UserID:      userID,
		Description: fields.Description,
		Amount:      fields.Amount,
		Category:    fields.Category,
		Date:        fields.Date,
	}
	if err := db.Create(expense).Error; err != nil {
		t.Fatalf("failed to create test expense: %v", err)
	}
	return expense
}

// StrPtr returns a pointer to s.
func StrPtr(s string) *string {
	return &s
}

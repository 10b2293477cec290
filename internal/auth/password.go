package auth

import (
	"golang.org/x/crypto/bcrypt"
)

// MinCost is the lowest bcrypt work factor a PasswordHasher will use.
const MinCost = 10

// MaxPasswordBytes is the longest password bcrypt accepts, in bytes.
const MaxPasswordBytes = 72

// PasswordHasher hashes and verifies passwords with bcrypt.
type PasswordHasher struct {
	cost int
	// dummy is compared against when no user exists, so an unknown email
	// costs the same as a wrong password.
	dummy []byte
}

// NewPasswordHasher creates a PasswordHasher. Costs below MinCost are raised
// to MinCost.
func NewPasswordHasher(cost int) *PasswordHasher {
	if cost < MinCost {
		cost = MinCost
	}
	if cost > bcrypt.MaxCost {
		cost = bcrypt.MaxCost
	}
	dummy, err := bcrypt.GenerateFromPassword([]byte("budgetbuddy-dummy-password"), cost)
	if err != nil {
		dummy = nil
	}
	return &PasswordHasher{cost: cost, dummy: dummy}
}

// Hash generates a salted bcrypt hash of the password.
func (h *PasswordHasher) Hash(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// Verify checks if the provided password matches the hash.
func (h *PasswordHasher) Verify(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// VerifyDummy burns one comparison and always reports false.
func (h *PasswordHasher) VerifyDummy(password string) bool {
	if h.dummy != nil {
		_ = bcrypt.CompareHashAndPassword(h.dummy, []byte(password))
	}
	return false
}

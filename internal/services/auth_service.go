package services

import (
	"context"
	"errors"
	"strings"

	"budgetbuddy/internal/auth"
	apperrors "budgetbuddy/internal/errors"
	"budgetbuddy/internal/models"
	"budgetbuddy/internal/store"
)

// authService handles registration and login.
type authService struct {
	users  UserRepository
	hasher *auth.PasswordHasher
	tokens TokenIssuer
}

// NewAuthService creates a new AuthServicer.
func NewAuthService(users UserRepository, hasher *auth.PasswordHasher, tokens TokenIssuer) AuthServicer {
	return &authService{users: users, hasher: hasher, tokens: tokens}
}

// Register creates a user and returns it with a fresh token.
func (s *authService) Register(ctx context.Context, name *string, email, password string) (*AuthResult, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, apperrors.WithMessage(apperrors.ErrValidation, "email and password are required")
	}
	if len(password) > auth.MaxPasswordBytes {
		return nil, apperrors.WithMessage(apperrors.ErrValidation, "password must be at most 72 bytes")
	}
	name = normalizeName(name)

	// Check if user with email exists
	if _, err := s.users.FindByEmail(ctx, email); err == nil {
		return nil, apperrors.ErrEmailTaken
	} else if !errors.Is(err, store.ErrNotFound) {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	user, err := s.users.Create(ctx, name, email, hash)
	if err != nil {
		// A concurrent registration won the race after our check.
		if errors.Is(err, store.ErrDuplicateEmail) {
			return nil, apperrors.ErrEmailTaken
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return s.issue(user)
}

// Login verifies credentials and returns the user with a fresh token. An
// unknown email and a wrong password produce the same error.
func (s *authService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, apperrors.WithMessage(apperrors.ErrValidation, "email and password are required")
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			s.hasher.VerifyDummy(password)
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	if !s.hasher.Verify(user.PasswordHash, password) {
		return nil, apperrors.ErrInvalidCredentials
	}

	return s.issue(user)
}

// GetUser retrieves a user by ID
func (s *authService) GetUser(ctx context.Context, id uint) (*models.User, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return user, nil
}

func (s *authService) issue(user *models.User) (*AuthResult, error) {
	token, err := s.tokens.Issue(user.ID, user.Email)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &AuthResult{User: user, Token: token}, nil
}

func normalizeName(name *string) *string {
	if name == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*name)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

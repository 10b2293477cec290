package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"budgetbuddy/internal/testutil"
)

func TestUserStore_CreateAndFind(t *testing.T) {
	db := testutil.SetupTestDB(t)
	users := NewUserStore(db)
	ctx := context.Background()

	created, err := users.Create(ctx, testutil.StrPtr("Ana"), "ana@example.com", "hash")
	require.NoError(t, err)
	assert.NotZero(t, created.ID)

	byEmail, err := users.FindByEmail(ctx, "ana@example.com")
	require.NoError(t, err)
	assert.Equal(t, created.ID, byEmail.ID)
	require.NotNil(t, byEmail.Name)
	assert.Equal(t, "Ana", *byEmail.Name)
	assert.Equal(t, "hash", byEmail.PasswordHash)

	byID, err := users.FindByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "ana@example.com", byID.Email)
}

func TestUserStore_CreateWithoutName(t *testing.T) {
	db := testutil.SetupTestDB(t)
	users := NewUserStore(db)

	created, err := users.Create(context.Background(), nil, "anon@example.com", "hash")
	require.NoError(t, err)

	found, err := users.FindByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Nil(t, found.Name)
}

func TestUserStore_DuplicateEmail(t *testing.T) {
	db := testutil.SetupTestDB(t)
	users := NewUserStore(db)
	ctx := context.Background()

	_, err := users.Create(ctx, nil, "dup@example.com", "hash1")
	require.NoError(t, err)

	_, err = users.Create(ctx, nil, "dup@example.com", "hash2")
	assert.ErrorIs(t, err, ErrDuplicateEmail)
}

func TestUserStore_EmailIsCaseSensitive(t *testing.T) {
	db := testutil.SetupTestDB(t)
	users := NewUserStore(db)
	ctx := context.Background()

	_, err := users.Create(ctx, nil, "Case@Example.com", "hash")
	require.NoError(t, err)

	_, err = users.FindByEmail(ctx, "case@example.com")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUserStore_NotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)
	users := NewUserStore(db)
	ctx := context.Background()

	_, err := users.FindByEmail(ctx, "nobody@example.com")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = users.FindByID(ctx, 99999)
	assert.ErrorIs(t, err, ErrNotFound)
}

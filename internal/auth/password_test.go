package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestPasswordHasher_HashAndVerify(t *testing.T) {
	h := NewPasswordHasher(MinCost)

	hash, err := h.Hash("hunter2")
	require.NoError(t, err)
	assert.NotEqual(t, "hunter2", hash)

	assert.True(t, h.Verify(hash, "hunter2"))
	assert.False(t, h.Verify(hash, "hunter3"))
}

func TestPasswordHasher_Salted(t *testing.T) {
	h := NewPasswordHasher(MinCost)

	first, err := h.Hash("same-password")
	require.NoError(t, err)
	second, err := h.Hash("same-password")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestPasswordHasher_CostFloor(t *testing.T) {
	h := NewPasswordHasher(bcrypt.MinCost)

	hash, err := h.Hash("pw")
	require.NoError(t, err)
	cost, err := bcrypt.Cost([]byte(hash))
	require.NoError(t, err)
	assert.GreaterOrEqual(t, cost, MinCost)
}

func TestPasswordHasher_VerifyDummy(t *testing.T) {
	h := NewPasswordHasher(MinCost)
	assert.False(t, h.VerifyDummy("anything"))
}

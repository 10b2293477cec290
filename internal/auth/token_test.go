package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "budgetbuddy/internal/errors"
)

func newTestTokenService(t *testing.T, secret string, now func() time.Time) *TokenService {
	t.Helper()
	svc, err := NewTokenService(TokenConfig{
		Secret: secret,
		TTL:    7 * 24 * time.Hour,
		Issuer: "budgetbuddy-test",
		Now:    now,
	})
	require.NoError(t, err)
	return svc
}

func TestNewTokenService_rejectsBadConfig(t *testing.T) {
	_, err := NewTokenService(TokenConfig{Secret: "", TTL: time.Hour})
	assert.Error(t, err)

	_, err = NewTokenService(TokenConfig{Secret: "s", TTL: 0})
	assert.Error(t, err)
}

func TestTokenService_IssueAndVerify(t *testing.T) {
	svc := newTestTokenService(t, "test-secret", nil)

	token, err := svc.Issue(42, "a@x.com")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "a@x.com", claims.Email)
	assert.Equal(t, "42", claims.Subject)
	assert.Equal(t, "budgetbuddy-test", claims.Issuer)
	assert.NotEmpty(t, claims.ID)
	assert.WithinDuration(t, time.Now().Add(7*24*time.Hour), claims.ExpiresAt.Time, 5*time.Second)
}

func TestTokenService_UniqueTokenIDs(t *testing.T) {
	svc := newTestTokenService(t, "test-secret", nil)

	first, err := svc.Issue(1, "a@x.com")
	require.NoError(t, err)
	second, err := svc.Issue(1, "a@x.com")
	require.NoError(t, err)

	assert.NotEqual(t, first, second, "tokens issued in the same second should still differ")
}

func TestTokenService_Expired(t *testing.T) {
	issuedAt := time.Date(2024, time.January, 1, 12, 0, 0, 0, time.UTC)
	clock := issuedAt
	svc := newTestTokenService(t, "test-secret", func() time.Time { return clock })

	token, err := svc.Issue(7, "late@x.com")
	require.NoError(t, err)

	clock = issuedAt.Add(7*24*time.Hour - time.Minute)
	_, err = svc.Verify(token)
	require.NoError(t, err, "token should still be valid just before expiry")

	clock = issuedAt.Add(7*24*time.Hour + time.Second)
	_, err = svc.Verify(token)
	assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
}

func TestTokenService_ForeignSecret(t *testing.T) {
	issuer := newTestTokenService(t, "secret-one", nil)
	verifier := newTestTokenService(t, "secret-two", nil)

	token, err := issuer.Issue(1, "a@x.com")
	require.NoError(t, err)

	_, err = verifier.Verify(token)
	assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
}

func TestTokenService_Tampered(t *testing.T) {
	svc := newTestTokenService(t, "test-secret", nil)

	token, err := svc.Issue(1, "a@x.com")
	require.NoError(t, err)

	parts := strings.Split(token, ".")
	require.Len(t, parts, 3)
	other, err := svc.Issue(2, "b@x.com")
	require.NoError(t, err)
	forged := parts[0] + "." + strings.Split(other, ".")[1] + "." + parts[2]

	_, err = svc.Verify(forged)
	assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
}

func TestTokenService_Malformed(t *testing.T) {
	svc := newTestTokenService(t, "test-secret", nil)

	for _, token := range []string{"", "not-a-jwt", "a.b.c"} {
		_, err := svc.Verify(token)
		assert.ErrorIs(t, err, apperrors.ErrInvalidToken, "token %q", token)
	}
}

func TestTokenService_RejectsOtherAlgorithms(t *testing.T) {
	svc := newTestTokenService(t, "test-secret", nil)

	claims := &Claims{
		UserID: 1,
		Email:  "a@x.com",
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "budgetbuddy-test",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}

	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = svc.Verify(unsigned)
	assert.ErrorIs(t, err, apperrors.ErrInvalidToken)

	hs512, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	_, err = svc.Verify(hs512)
	assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
}

func TestTokenService_WrongIssuer(t *testing.T) {
	svc := newTestTokenService(t, "test-secret", nil)
	other, err := NewTokenService(TokenConfig{Secret: "test-secret", TTL: time.Hour, Issuer: "someone-else"})
	require.NoError(t, err)

	token, err := other.Issue(1, "a@x.com")
	require.NoError(t, err)

	_, err = svc.Verify(token)
	assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
}

package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arjun/placementhub/internal/app/models"
)

func newTestJWTService(exp time.Duration) *JWTService {
	return NewJWTService(JWTConfig{
		SecretKey:   "test-secret",
		TokenExp:    exp,
		TokenIssuer: "test-issuer",
	})
}

func TestGenerateAndValidateToken(t *testing.T) {
	svc := newTestJWTService(time.Hour)
	user := &models.User{ID: 42, Role: "ADMIN"}

	token, expiresIn, err := svc.GenerateToken(user)
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, 3600, expiresIn)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, "ADMIN", claims.Role)
	assert.Equal(t, "test-issuer", claims.Issuer)
}

func TestValidateTokenExpired(t *testing.T) {
	svc := newTestJWTService(-time.Minute)
	token, _, err := svc.GenerateToken(&models.User{ID: 1, Role: "PATIENT"})
	require.NoError(t, err)

	_, err = svc.ValidateToken(token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestValidateTokenWrongSecret(t *testing.T) {
	token, _, err := newTestJWTService(time.Hour).GenerateToken(&models.User{ID: 1, Role: "PATIENT"})
	require.NoError(t, err)

	other := NewJWTService(JWTConfig{SecretKey: "different-secret", TokenExp: time.Hour})
	_, err = other.ValidateToken(token)
	assert.Error(t, err)
}

func TestValidateAndExtractClaimsRejectsNonPositiveUserID(t *testing.T) {
	svc := newTestJWTService(time.Hour)
	token, _, err := svc.GenerateToken(&models.User{ID: 0, Role: "PATIENT"})
	require.NoError(t, err)

	_, err = svc.ValidateAndExtractClaims(token)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = svc.ValidateAndExtractClaims("")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestExtractBearerToken(t *testing.T) {
	token, err := ExtractBearerToken("Bearer abc.def.ghi")
	require.NoError(t, err)
	assert.Equal(t, "abc.def.ghi", token)

	// A raw token without the Bearer prefix is accepted as-is
	token, err = ExtractBearerToken("abc.def.ghi")
	require.NoError(t, err)
	assert.Equal(t, "abc.def.ghi", token)

	_, err = ExtractBearerToken("")
	assert.ErrorIs(t, err, ErrInvalidFormat)
}

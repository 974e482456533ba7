package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "inkwell/internal/errors"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func TestJWTService_GenerateAndValidate(t *testing.T) {
	svc := NewJWTService(testSecret, "inkwell", time.Hour)

	token, err := svc.Generate("alice@example.com")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", claims.Email)
	assert.Equal(t, "inkwell", claims.Issuer)
	assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt.Time, 5*time.Second)
	assert.WithinDuration(t, time.Now(), claims.NotBefore.Time, 5*time.Second)
}

func TestJWTService_Validate_WrongSecret(t *testing.T) {
	issuing := NewJWTService(testSecret, "inkwell", time.Hour)
	verifying := NewJWTService("ffffffffffffffffffffffffffffffff", "inkwell", time.Hour)

	token, err := issuing.Generate("alice@example.com")
	require.NoError(t, err)

	_, err = verifying.Validate(token)
	assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
}

func TestJWTService_Validate_Expired(t *testing.T) {
	svc := NewJWTService(testSecret, "inkwell", time.Hour)

	// Sign an already expired token with the same key and algorithm.
	now := time.Now()
	claims := &Claims{
		Email: "alice@example.com",
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "inkwell",
			ExpiresAt: jwt.NewNumericDate(now.Add(-time.Minute)),
			NotBefore: jwt.NewNumericDate(now.Add(-2 * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(now.Add(-2 * time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)

	_, err = svc.Validate(token)
	assert.ErrorIs(t, err, apperrors.ErrTokenExpired)
}

func TestJWTService_Validate_WrongIssuer(t *testing.T) {
	issuing := NewJWTService(testSecret, "someone-else", time.Hour)
	verifying := NewJWTService(testSecret, "inkwell", time.Hour)

	token, err := issuing.Generate("alice@example.com")
	require.NoError(t, err)

	_, err = verifying.Validate(token)
	assert.ErrorIs(t, err, apperrors.ErrInvalidIssuer)
}

func TestJWTService_Validate_MissingEmailClaim(t *testing.T) {
	svc := NewJWTService(testSecret, "inkwell", time.Hour)

	now := time.Now()
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "inkwell",
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
			NotBefore: jwt.NewNumericDate(now),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)

	_, err = svc.Validate(token)
	assert.ErrorIs(t, err, apperrors.ErrMalformedClaims)
}

func TestJWTService_Validate_Garbage(t *testing.T) {
	svc := NewJWTService(testSecret, "inkwell", time.Hour)

	for _, tokenString := range []string{"", "not-a-token", "a.b.c"} {
		_, err := svc.Validate(tokenString)
		assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
	}
}

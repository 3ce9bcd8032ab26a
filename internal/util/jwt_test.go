package util

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/okorolev/pulseblog/internal/model"
)

const testSecret = "unit-test-secret"

func TestAccessTokenRoundTrip(t *testing.T) {
	userId := uuid.New()

	token, err := GenerateAccessToken(userId, testSecret)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	parsedId, err := ValidateAccessToken(BearerPrefix+token, testSecret)
	require.NoError(t, err)
	assert.Equal(t, userId, parsedId)
}

func TestValidateAccessTokenHeaderErrors(t *testing.T) {
	token, err := GenerateAccessToken(uuid.New(), testSecret)
	require.NoError(t, err)

	tests := []struct {
		name       string
		authHeader string
	}{
		{name: "empty header", authHeader: ""},
		{name: "missing bearer prefix", authHeader: token},
		{name: "empty token after prefix", authHeader: BearerPrefix},
		{name: "malformed token", authHeader: BearerPrefix + "not.a.jwt"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ValidateAccessToken(tt.authHeader, testSecret)
			require.Error(t, err)

			var validationErr *model.ValidationError
			require.ErrorAs(t, err, &validationErr)
			assert.Equal(t, "accessToken", validationErr.Param)
		})
	}
}

func TestValidateAccessTokenWrongSecret(t *testing.T) {
	token, err := GenerateAccessToken(uuid.New(), testSecret)
	require.NoError(t, err)

	_, err = ValidateAccessToken(BearerPrefix+token, "another-secret")
	require.Error(t, err)

	var validationErr *model.ValidationError
	require.ErrorAs(t, err, &validationErr)
}

func TestValidateAccessTokenExpiredCarriesUserId(t *testing.T) {
	userId := uuid.New()
	past := time.Now().UTC().Add(-time.Hour)

	claims := &model.Claims{
		UserId: userId,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(past.Add(15 * time.Minute)),
			IssuedAt:  jwt.NewNumericDate(past),
			NotBefore: jwt.NewNumericDate(past),
			Issuer:    TokenIssuer,
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)

	_, err = ValidateAccessToken(BearerPrefix+token, testSecret)
	require.Error(t, err)

	var expiredErr *TokenExpiredError
	require.True(t, errors.As(err, &expiredErr), "expired token should yield TokenExpiredError")
	assert.Equal(t, userId, expiredErr.UserId, "expired error should still say whose session lapsed")
}

func TestValidateAccessTokenMissingSecret(t *testing.T) {
	_, err := ValidateAccessToken(BearerPrefix+"whatever", "")
	require.Error(t, err)
}

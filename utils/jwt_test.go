package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"teamnest/config"
	"teamnest/models"
)

func TestJWTTokenRoundTrip(t *testing.T) {
	config.AppConfig.JWTSecret = "test-secret"

	user := &models.User{}
	user.ID = 42

	accessToken, refreshToken, err := GenerateJWTToken(user)
	require.NoError(t, err)
	assert.NotEmpty(t, accessToken)
	assert.NotEmpty(t, refreshToken)
	assert.NotEqual(t, accessToken, refreshToken)

	claims, err := ParseJWTToken(accessToken)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)

	claims, err = ParseJWTToken(refreshToken)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
}

func TestParseJWTTokenRejectsGarbage(t *testing.T) {
	config.AppConfig.JWTSecret = "test-secret"

	_, err := ParseJWTToken("not.a.token")
	assert.Error(t, err)
}

func TestParseJWTTokenRejectsWrongSecret(t *testing.T) {
	config.AppConfig.JWTSecret = "first-secret"
	user := &models.User{}
	user.ID = 7
	accessToken, _, err := GenerateJWTToken(user)
	require.NoError(t, err)

	config.AppConfig.JWTSecret = "second-secret"
	_, err = ParseJWTToken(accessToken)
	assert.Error(t, err)
}

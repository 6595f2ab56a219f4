package services_test

import (
	"testing"

	"github.com/lexivault/lexivault/internal/config"
	"github.com/lexivault/lexivault/internal/services"
	"github.com/lexivault/lexivault/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPasswordHashRoundtrip(t *testing.T) {
	creds := newTestCredentials()

	hash, err := creds.HashPassword("secret123")
	require.NoError(t, err)
	assert.NotEqual(t, "secret123", hash)

	assert.True(t, creds.VerifyPassword("secret123", hash))
	assert.False(t, creds.VerifyPassword("wrong", hash))
}

func TestAccessTokenSubjectRoundtrip(t *testing.T) {
	creds := newTestCredentials()

	token, err := creds.IssueAccessToken("user-42")
	require.NoError(t, err)

	sub, err := creds.Subject(token)
	require.NoError(t, err)
	assert.Equal(t, "user-42", sub)
}

func TestVerifyTokenCarriesClaims(t *testing.T) {
	creds := newTestCredentials()

	token, err := creds.IssueVerifyToken(map[string]interface{}{
		"user_id":   "user-42",
		"new_email": "new@example.com",
	})
	require.NoError(t, err)

	claims, err := creds.Decode(token)
	require.NoError(t, err)
	assert.Equal(t, "user-42", claims["user_id"])
	assert.Equal(t, "new@example.com", claims["new_email"])
}

func TestDecodeRejectsTamperedToken(t *testing.T) {
	creds := newTestCredentials()

	token, err := creds.IssueAccessToken("user-42")
	require.NoError(t, err)

	_, err = creds.Decode(token + "x")
	require.Error(t, err)
	assert.Equal(t, types.KindInvalidToken, types.KindOf(err))
}

func TestDecodeRejectsForeignSecret(t *testing.T) {
	other := services.NewCredentials(&config.Config{
		SecretKey:          "different-secret",
		AccessTokenMinutes: 30,
		VerifyTokenMinutes: 60,
	})

	token, err := other.IssueAccessToken("user-42")
	require.NoError(t, err)

	_, err = newTestCredentials().Decode(token)
	require.Error(t, err)
	assert.Equal(t, types.KindInvalidToken, types.KindOf(err))
}

func TestDecodeRejectsExpiredToken(t *testing.T) {
	expired := services.NewCredentials(&config.Config{
		SecretKey:          "test-secret",
		AccessTokenMinutes: -1,
		VerifyTokenMinutes: 60,
	})

	token, err := expired.IssueAccessToken("user-42")
	require.NoError(t, err)

	_, err = newTestCredentials().Decode(token)
	require.Error(t, err)
	assert.Equal(t, types.KindInvalidToken, types.KindOf(err))
}

func TestSubjectRequiresSubClaim(t *testing.T) {
	creds := newTestCredentials()

	token, err := creds.IssueVerifyToken(map[string]interface{}{"new_email": "x@example.com"})
	require.NoError(t, err)

	_, err = creds.Subject(token)
	require.Error(t, err)
	assert.Equal(t, types.KindInvalidToken, types.KindOf(err))
}

package pkg

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndParsePair(t *testing.T) {
	pair, err := GeneratePair(42, "admin")
	require.NoError(t, err)
	require.NotEmpty(t, pair.AccessToken)
	require.NotEmpty(t, pair.RefreshToken)

	claims, err := ParseAccess(pair.AccessToken)
	require.NoError(t, err)
	assert.EqualValues(t, 42, claims.UserID)
	assert.Equal(t, "admin", claims.Role)
}

func TestParseAccessGarbage(t *testing.T) {
	_, err := ParseAccess("not-a-token")
	assert.Error(t, err)
}

func TestRefreshKeepsIdentity(t *testing.T) {
	pair, err := GeneratePair(7, "user")
	require.NoError(t, err)

	next, err := Refresh(pair.RefreshToken)
	require.NoError(t, err)

	claims, err := ParseAccess(next.AccessToken)
	require.NoError(t, err)
	assert.EqualValues(t, 7, claims.UserID)
	assert.Equal(t, "user", claims.Role)
}

func TestRefreshRejectsAccessToken(t *testing.T) {
	pair, err := GeneratePair(7, "user")
	require.NoError(t, err)

	// access 和 refresh 密钥不同，不能混用
	_, err = Refresh(pair.AccessToken)
	assert.Error(t, err)
}

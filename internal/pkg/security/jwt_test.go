package security

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	token, err := GenerateToken("u-1", "alice@example.com")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "u-1", claims.UID)
	assert.Equal(t, "alice@example.com", claims.Email)
	assert.Equal(t, "Evergreen", claims.Issuer)
}

func TestValidateToken(t *testing.T) {
	t.Run("garbage token", func(t *testing.T) {
		_, err := ValidateToken("not.a.token")
		assert.Error(t, err)
	})

	t.Run("tampered payload", func(t *testing.T) {
		token, err := GenerateToken("u-1", "alice@example.com")
		require.NoError(t, err)

		other, err := GenerateToken("u-2", "eve@example.com")
		require.NoError(t, err)

		parts := strings.Split(token, ".")
		otherParts := strings.Split(other, ".")
		require.Len(t, parts, 3)
		require.Len(t, otherParts, 3)

		// 换入他人 payload，签名对不上
		_, err = ValidateToken(parts[0] + "." + otherParts[1] + "." + parts[2])
		assert.Error(t, err)
	})
}

func TestExtractSignature(t *testing.T) {
	token, err := GenerateToken("u-1", "alice@example.com")
	require.NoError(t, err)

	sig, err := ExtractSignature(token)
	require.NoError(t, err)
	assert.Equal(t, strings.Split(token, ".")[2], sig)

	_, err = ExtractSignature("malformed")
	assert.Error(t, err)
}

func TestPasswordHash(t *testing.T) {
	t.Run("round trip", func(t *testing.T) {
		hash, err := HashPassword("secret-pass")
		require.NoError(t, err)
		assert.NotEqual(t, "secret-pass", hash)
		assert.NoError(t, CheckPasswordHash("secret-pass", hash))
	})

	t.Run("mismatch", func(t *testing.T) {
		hash, err := HashPassword("secret-pass")
		require.NoError(t, err)
		assert.Error(t, CheckPasswordHash("wrong-pass", hash))
	})

	t.Run("empty password", func(t *testing.T) {
		_, err := HashPassword("")
		assert.Error(t, err)
	})
}

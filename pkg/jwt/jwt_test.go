package jwt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndVerify(t *testing.T) {
	m := NewManager("secret", 900)

	token, err := m.GenerateToken("user-a", "Alice")
	require.NoError(t, err)

	claims, err := m.VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-a", claims.UserID)
	assert.Equal(t, "Alice", claims.FullName)
	assert.Equal(t, "user-a", claims.Subject)
}

func TestVerifyToken_Expired(t *testing.T) {
	m := NewManager("secret", -60)

	token, err := m.GenerateToken("user-a", "")
	require.NoError(t, err)

	_, err = m.VerifyToken(token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestVerifyToken_WrongSecret(t *testing.T) {
	token, err := NewManager("secret", 900).GenerateToken("user-a", "")
	require.NoError(t, err)

	_, err = NewManager("other", 900).VerifyToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyToken_Garbage(t *testing.T) {
	_, err := NewManager("secret", 900).VerifyToken("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

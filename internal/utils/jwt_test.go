package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSessionTokenClaims(t *testing.T) {
	st, err := NewSessionToken("secret", "sess-1", "7", 30)
	require.NoError(t, err)
	require.NotEmpty(t, st.Token)
	assert.WithinDuration(t, time.Now().UTC().Add(30*time.Minute), st.Exp, 5*time.Second)

	tok, err := jwt.Parse(st.Token, func(tok *jwt.Token) (interface{}, error) {
		return []byte("secret"), nil
	})
	require.NoError(t, err)
	require.True(t, tok.Valid)

	claims, ok := tok.Claims.(jwt.MapClaims)
	require.True(t, ok)
	assert.Equal(t, "sess-1", claims["sid"])
	assert.Equal(t, "7", claims["sub"])
}

func TestNewSessionTokenWrongSecretRejected(t *testing.T) {
	st, err := NewSessionToken("secret", "sess-1", "7", 30)
	require.NoError(t, err)

	_, err = jwt.Parse(st.Token, func(tok *jwt.Token) (interface{}, error) {
		return []byte("other"), nil
	})
	assert.Error(t, err)
}

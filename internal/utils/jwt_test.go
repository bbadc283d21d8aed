package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAccessTokenClaims(t *testing.T) {
	tok, err := NewAccessToken("s3cret", "alice", "EDITOR", 15)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(15*time.Minute), tok.Exp, 5*time.Second)

	parsed, err := jwt.Parse(tok.Token, func(*jwt.Token) (interface{}, error) {
		return []byte("s3cret"), nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	require.NoError(t, err)

	claims := parsed.Claims.(jwt.MapClaims)
	assert.Equal(t, "alice", claims["sub"])
	assert.Equal(t, "EDITOR", claims["role"])
	assert.EqualValues(t, tok.Exp.Unix(), claims["exp"])
}

func TestNewAccessTokenWrongSecret(t *testing.T) {
	tok, err := NewAccessToken("s3cret", "alice", "EDITOR", 15)
	require.NoError(t, err)

	_, err = jwt.Parse(tok.Token, func(*jwt.Token) (interface{}, error) {
		return []byte("other"), nil
	})
	assert.ErrorIs(t, err, jwt.ErrSignatureInvalid)
}

func TestNewAccessTokenRejectsBadInput(t *testing.T) {
	_, err := NewAccessToken("", "alice", "EDITOR", 15)
	assert.Error(t, err)
	_, err = NewAccessToken("s3cret", "alice", "EDITOR", 0)
	assert.Error(t, err)
}

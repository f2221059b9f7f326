package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPasswordHashing(t *testing.T) {
	svc := New("secret", time.Hour)

	hash, err := svc.HashPassword("correct horse battery staple")
	require.NoError(t, err)
	assert.NotEqual(t, "correct horse battery staple", hash)

	assert.True(t, svc.CheckPassword(hash, "correct horse battery staple"))
	assert.False(t, svc.CheckPassword(hash, "wrong password"))
}

func TestTokenRoundTrip(t *testing.T) {
	svc := New("secret", time.Hour)

	token, err := svc.IssueToken("p1")
	require.NoError(t, err)

	playerID, err := svc.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, "p1", playerID)
}

func TestTokenExpiry(t *testing.T) {
	svc := New("secret", time.Minute)
	issued := time.Now()
	svc.now = func() time.Time { return issued }

	token, err := svc.IssueToken("p1")
	require.NoError(t, err)

	svc.now = func() time.Time { return issued.Add(2 * time.Minute) }
	_, err = svc.ParseToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenWrongSecret(t *testing.T) {
	token, err := New("secret-a", time.Hour).IssueToken("p1")
	require.NoError(t, err)

	_, err = New("secret-b", time.Hour).ParseToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenGarbage(t *testing.T) {
	_, err := New("secret", time.Hour).ParseToken("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

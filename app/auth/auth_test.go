package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"yatube/app/access"
	"yatube/app/apperrors"
)

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("correct horse")
	require.NoError(t, err)
	assert.NotEqual(t, "correct horse", hash)

	assert.NoError(t, CheckPassword(hash, "correct horse"))
	assert.ErrorIs(t, CheckPassword(hash, "wrong horse"), apperrors.ErrInvalidCredentials)

	_, err = HashPassword("short")
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}

func TestTokenRoundTrip(t *testing.T) {
	m, err := NewTokenManager("s3cret", time.Hour, "yatube")
	require.NoError(t, err)

	token, exp, err := m.Issue(access.Actor{ID: 12, Username: "leo"})
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), exp, 5*time.Second)

	actor, err := m.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, uint(12), actor.ID)
	assert.Equal(t, "leo", actor.Username)
}

func TestTokenRejection(t *testing.T) {
	m, err := NewTokenManager("s3cret", time.Hour, "yatube")
	require.NoError(t, err)
	token, _, err := m.Issue(access.Actor{ID: 1, Username: "leo"})
	require.NoError(t, err)

	t.Run("garbage", func(t *testing.T) {
		_, err := m.Parse("not-a-token")
		assert.ErrorIs(t, err, apperrors.ErrTokenInvalid)
	})

	t.Run("other secret", func(t *testing.T) {
		other, err := NewTokenManager("different", time.Hour, "yatube")
		require.NoError(t, err)
		_, err = other.Parse(token)
		assert.ErrorIs(t, err, apperrors.ErrTokenInvalid)
	})

	t.Run("other issuer", func(t *testing.T) {
		other, err := NewTokenManager("s3cret", time.Hour, "elsewhere")
		require.NoError(t, err)
		_, err = other.Parse(token)
		assert.ErrorIs(t, err, apperrors.ErrTokenInvalid)
	})

	t.Run("expired", func(t *testing.T) {
		m.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
		defer func() { m.now = time.Now }()
		_, err := m.Parse(token)
		assert.ErrorIs(t, err, apperrors.ErrTokenInvalid)
	})
}

func TestNewTokenManagerRequiresSecret(t *testing.T) {
	_, err := NewTokenManager("", time.Hour, "yatube")
	assert.ErrorIs(t, err, ErrMissingSecret)
}

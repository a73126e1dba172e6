package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestSignAndVerifySession(t *testing.T) {
	token, err := SignSession("test-secret", "admin@example.com", time.Now())
	require.NoError(t, err)

	email, err := VerifySession("test-secret", token)
	require.NoError(t, err)
	require.Equal(t, "admin@example.com", email)
}

func TestVerifySessionWrongSecret(t *testing.T) {
	token, err := SignSession("secret-a", "admin@example.com", time.Now())
	require.NoError(t, err)

	_, err = VerifySession("secret-b", token)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifySessionExpired(t *testing.T) {
	issued := time.Now().Add(-SessionTTL - time.Minute)
	token, err := SignSession("secret", "admin@example.com", issued)
	require.NoError(t, err)

	_, err = VerifySession("secret", token)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifySessionGarbage(t *testing.T) {
	_, err := VerifySession("secret", "not-a-token")
	require.ErrorIs(t, err, ErrInvalidToken)
}

package service

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenManager_RoundTrip(t *testing.T) {
	m := NewTokenManager("test-secret", time.Minute)
	id := uuid.New()

	token, err := m.GenerateAccess(id)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	parsed, err := m.ParseAccess(token)
	require.NoError(t, err)
	assert.Equal(t, id, parsed)
}

func TestTokenManager_WrongSecret(t *testing.T) {
	issuer := NewTokenManager("secret-one", time.Minute)
	verifier := NewTokenManager("secret-two", time.Minute)

	token, err := issuer.GenerateAccess(uuid.New())
	require.NoError(t, err)

	parsed, err := verifier.ParseAccess(token)
	assert.Error(t, err)
	assert.Equal(t, uuid.Nil, parsed)
}

func TestTokenManager_Expired(t *testing.T) {
	m := NewTokenManager("test-secret", -time.Minute)

	token, err := m.GenerateAccess(uuid.New())
	require.NoError(t, err)

	_, err = m.ParseAccess(token)
	assert.Error(t, err)
}

func TestTokenManager_Garbage(t *testing.T) {
	m := NewTokenManager("test-secret", time.Minute)

	_, err := m.ParseAccess("не.токен.вовсе")
	assert.Error(t, err)
}

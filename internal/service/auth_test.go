package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainerrors "github.com/basetic/osint-terminal/internal/errors"
)

func TestOperatorLoginWithSeedCredentials(t *testing.T) {
	env := setupTestServices(t)

	account, err := env.auth.Login("Admin", "baseti123456")
	require.NoError(t, err)
	assert.Equal(t, "Admin", account.Username)
	assert.True(t, account.IsAdmin())

	current := env.auth.Current()
	require.NotNil(t, current)
	assert.Equal(t, account.ID, current.ID)
}

func TestOperatorLoginRejectsWrongPassword(t *testing.T) {
	env := setupTestServices(t)

	_, err := env.auth.Login("Admin", "wrong")
	require.Error(t, err)
	assert.True(t, domainerrors.Is(err, domainerrors.ErrInvalidCredentials))
	assert.Nil(t, env.auth.Current())
}

func TestOperatorLoginIsCaseSensitive(t *testing.T) {
	env := setupTestServices(t)

	_, err := env.auth.Login("admin", "baseti123456")
	require.Error(t, err)
	assert.True(t, domainerrors.Is(err, domainerrors.ErrInvalidCredentials))
}

func TestOperatorLogoutAlwaysSucceeds(t *testing.T) {
	env := setupTestServices(t)

	env.auth.Logout() // not signed in; still fine
	assert.Nil(t, env.auth.Current())

	_, err := env.auth.Login("Admin", "baseti123456")
	require.NoError(t, err)
	env.auth.Logout()
	assert.Nil(t, env.auth.Current())
}

func TestOperatorAndMemberSessionsCoexist(t *testing.T) {
	env := setupTestServices(t)

	_, err := env.auth.Login("Admin", "baseti123456")
	require.NoError(t, err)

	_, err = env.members.SocialLogin("Ana Silva", "ana@example.com")
	require.NoError(t, err)

	assert.NotNil(t, env.auth.Current())
	assert.NotNil(t, env.members.Current())

	env.auth.Logout()
	assert.Nil(t, env.auth.Current())
	assert.NotNil(t, env.members.Current())
}

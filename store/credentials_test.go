package store

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stockpile/models"
)

func TestRegisterAndAuthenticate(t *testing.T) {
	adapter := &mockAdapter{}
	creds := NewCredentialStore(adapter, models.Credentials{})

	require.NoError(t, creds.Register("alice", "x"))
	assert.Equal(t, 1, adapter.credSaves)

	assert.NoError(t, creds.Authenticate("alice", "x"))
	assert.ErrorIs(t, creds.Authenticate("alice", "wrong"), ErrAuthenticationFailed)
	assert.ErrorIs(t, creds.Authenticate("bob", "x"), ErrAuthenticationFailed)
}

func TestRegisterDuplicateUsername(t *testing.T) {
	adapter := &mockAdapter{}
	creds := NewCredentialStore(adapter, models.Credentials{})

	require.NoError(t, creds.Register("alice", "x"))
	assert.ErrorIs(t, creds.Register("alice", "y"), ErrUsernameTaken)

	// The first password still works.
	assert.NoError(t, creds.Authenticate("alice", "x"))
}

func TestRegisterValidation(t *testing.T) {
	creds := NewCredentialStore(&mockAdapter{}, nil)

	assert.ErrorIs(t, creds.Register("", "x"), ErrInvalidArgument)
	assert.ErrorIs(t, creds.Register("alice", ""), ErrInvalidArgument)
}

func TestRegisterStoresHashNotPassword(t *testing.T) {
	adapter := &mockAdapter{}
	creds := NewCredentialStore(adapter, models.Credentials{})

	require.NoError(t, creds.Register("alice", "hunter2"))

	stored := adapter.creds["alice"]
	assert.NotEmpty(t, stored)
	assert.NotEqual(t, "hunter2", stored)
}

func TestRegisterRollsBackOnFailedSave(t *testing.T) {
	adapter := &mockAdapter{saveCredErr: errors.New("disk full")}
	creds := NewCredentialStore(adapter, models.Credentials{})

	assert.ErrorIs(t, creds.Register("alice", "x"), ErrPersistence)
	assert.False(t, creds.Exists("alice"))

	adapter.saveCredErr = nil
	assert.NoError(t, creds.Register("alice", "x"))
}

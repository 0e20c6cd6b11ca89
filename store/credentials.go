package store

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"stockpile/models"
	"stockpile/storage"
)

// CredentialStore maps usernames to bcrypt hashes of their passwords. Like the
// inventory store it rewrites its whole document on every change.
//
// Authentication is a plain comparison with no lockout or throttling; there is
// nothing here to slow down a brute-force attempt.
type CredentialStore struct {
	adapter storage.Adapter
	users   models.Credentials
}

// NewCredentialStore wraps the loaded credential document.
func NewCredentialStore(adapter storage.Adapter, users models.Credentials) *CredentialStore {
	if users == nil {
		users = models.Credentials{}
	}
	return &CredentialStore{adapter: adapter, users: users}
}

// Register creates a new account. The password is stored as a bcrypt hash,
// never in the clear.
func (c *CredentialStore) Register(username, password string) error {
	if username == "" {
		return fmt.Errorf("%w: username must not be empty", ErrInvalidArgument)
	}
	if password == "" {
		return fmt.Errorf("%w: password must not be empty", ErrInvalidArgument)
	}
	if _, ok := c.users[username]; ok {
		return fmt.Errorf("%w: %q", ErrUsernameTaken, username)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hashing password: %w", err)
	}

	c.users[username] = string(hash)
	if err := c.adapter.SaveCredentials(c.users); err != nil {
		delete(c.users, username)
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return nil
}

// Authenticate checks a username/password pair. It never mutates state; an
// unknown username and a wrong password fail identically.
func (c *CredentialStore) Authenticate(username, password string) error {
	hash, ok := c.users[username]
	if !ok {
		return ErrAuthenticationFailed
	}
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return ErrAuthenticationFailed
	}
	return nil
}

// Exists reports whether an account is registered under username.
func (c *CredentialStore) Exists(username string) bool {
	_, ok := c.users[username]
	return ok
}

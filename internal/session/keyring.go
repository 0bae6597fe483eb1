package session

import (
	"errors"
	"fmt"

	"github.com/zalando/go-keyring"
)

const (
	keychainService = "solemate-cli"
	keychainToken   = "access_token"
	keychainUserID  = "user_id"
	keychainEmail   = "email"
)

// KeyringBackend persists the session in the OS keychain.
type KeyringBackend struct{}

// NewKeyringBackend creates a keychain-backed session backend.
func NewKeyringBackend() *KeyringBackend {
	return &KeyringBackend{}
}

// Load reads the persisted session from the keychain. An absent entry
// yields (nil, nil).
func (b *KeyringBackend) Load() (*Session, error) {
	token, err := keyring.Get(keychainService, keychainToken)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("could not read keychain: %w", err)
	}
	if token == "" {
		return nil, nil
	}

	userID, _ := keyring.Get(keychainService, keychainUserID)
	email, _ := keyring.Get(keychainService, keychainEmail)

	return &Session{AccessToken: token, UserID: userID, Email: email}, nil
}

// Save writes the session to the keychain.
func (b *KeyringBackend) Save(sess Session) error {
	if err := keyring.Set(keychainService, keychainToken, sess.AccessToken); err != nil {
		return fmt.Errorf("could not store access token: %w", err)
	}
	if err := keyring.Set(keychainService, keychainUserID, sess.UserID); err != nil {
		return fmt.Errorf("could not store user id: %w", err)
	}
	if err := keyring.Set(keychainService, keychainEmail, sess.Email); err != nil {
		return fmt.Errorf("could not store email: %w", err)
	}
	return nil
}

// Delete removes the session from the keychain.
func (b *KeyringBackend) Delete() error {
	for _, key := range []string{keychainToken, keychainUserID, keychainEmail} {
		if err := keyring.Delete(keychainService, key); err != nil && !errors.Is(err, keyring.ErrNotFound) {
			return fmt.Errorf("could not remove %s from keychain: %w", key, err)
		}
	}
	return nil
}

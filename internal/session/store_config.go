package session

import (
	"github.com/solemate/cli/internal/config"
)

// NewStoreFromConfig builds the session store with the backend named in
// the configuration: "keyring" for the OS keychain, anything else falls
// back to the session file.
func NewStoreFromConfig(cfg *config.Config) (*Store, error) {
	if cfg.Session.Storage == "keyring" {
		return NewStore(NewKeyringBackend()), nil
	}

	backend, err := NewFileBackend("")
	if err != nil {
		return nil, err
	}
	return NewStore(backend), nil
}

package session

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileBackend persists the session as a YAML file with 0600 permissions.
type FileBackend struct {
	path string
}

// NewFileBackend creates a file backend at the given path. An empty path
// defaults to ~/.solemate-session.yaml.
func NewFileBackend(path string) (*FileBackend, error) {
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("could not get home directory: %w", err)
		}
		path = filepath.Join(home, ".solemate-session.yaml")
	}
	return &FileBackend{path: path}, nil
}

// Load reads the persisted session. A missing file yields (nil, nil).
func (b *FileBackend) Load() (*Session, error) {
	data, err := os.ReadFile(b.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("could not read session file: %w", err)
	}

	var sess Session
	if err := yaml.Unmarshal(data, &sess); err != nil {
		return nil, fmt.Errorf("could not parse session file: %w", err)
	}
	if sess.AccessToken == "" {
		return nil, nil
	}
	return &sess, nil
}

// Save writes the session to disk.
func (b *FileBackend) Save(sess Session) error {
	data, err := yaml.Marshal(sess)
	if err != nil {
		return err
	}
	return os.WriteFile(b.path, data, 0600)
}

// Delete removes the session file. Deleting an absent file is not an error.
func (b *FileBackend) Delete() error {
	if err := os.Remove(b.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

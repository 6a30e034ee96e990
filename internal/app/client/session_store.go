package client

import (
	"errors"
	"intake-service/internal/app/models"
	"intake-service/internal/pkg/exceptions"
	"os"
	"path/filepath"

	"github.com/goccy/go-json"
)

// Credentials is what the client keeps between runs: the bearer token and
// the session it stands for.
type Credentials struct {
	Token   string         `json:"token"`
	Session models.Session `json:"session"`
}

type SessionStore interface {
	// Load returns nil without error when nothing is stored.
	Load() (*Credentials, error)
	Save(credentials *Credentials) error
	Clear() error
}

// FileSessionStore keeps credentials in a file readable only by the owner.
type FileSessionStore struct {
	Path string
}

func NewFileSessionStore(path string) *FileSessionStore {
	return &FileSessionStore{Path: path}
}

func (s *FileSessionStore) Load() (*Credentials, error) {
	data, err := os.ReadFile(s.Path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	credentials := new(Credentials)
	err = json.Unmarshal(data, credentials)
	if err != nil {
		return nil, exceptions.ErrCannotParseJSON(err)
	}
	if credentials.Token == "" {
		return nil, nil
	}
	return credentials, nil
}

func (s *FileSessionStore) Save(credentials *Credentials) error {
	data, err := json.Marshal(credentials)
	if err != nil {
		return exceptions.ErrCannotMarshalJSON(err)
	}

	err = os.MkdirAll(filepath.Dir(s.Path), 0o700)
	if err != nil {
		return err
	}
	return os.WriteFile(s.Path, data, 0o600)
}

func (s *FileSessionStore) Clear() error {
	err := os.Remove(s.Path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

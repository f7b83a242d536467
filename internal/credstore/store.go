// Package credstore persists the credentials that outlive a single process:
// the app id/secret pair, the OAuth tokens, and the default mailbox.
package credstore

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// Field names a single stored credential value.
type Field string

const (
	FieldAppID          Field = "app_id"
	FieldAppSecret      Field = "app_secret"
	FieldAccessToken    Field = "access_token"
	FieldRefreshToken   Field = "refresh_token"
	FieldDefaultMailbox Field = "default_mailbox"
)

// Store provides per-field access to persisted credentials. Get returns an
// empty string for unset fields; only I/O failures surface as errors.
type Store interface {
	Get(field Field) (string, error)
	Set(field Field, value string) error
	Clear(field Field) error
}

// envByField maps fields to environment variables that can supply them when
// the store has no value. Env values are read-only overlays, never written.
var envByField = map[Field]string{
	FieldAppID:     "HELPSCOUT_APP_ID",
	FieldAppSecret: "HELPSCOUT_APP_SECRET",
}

// FileStore keeps credentials in a single JSON file with 0600 permissions.
type FileStore struct {
	path string

	mu sync.Mutex
}

// NewFileStore creates a store backed by the given file path. The file is
// created lazily on first Set.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Get returns the stored value for a field, falling back to the field's
// environment variable when nothing is stored.
func (s *FileStore) Get(field Field) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	fields, err := s.read()
	if err != nil {
		return "", err
	}
	if v := fields[field]; v != "" {
		return v, nil
	}
	if env, ok := envByField[field]; ok {
		return os.Getenv(env), nil
	}
	return "", nil
}

// Set stores a value for a field, creating the file if needed.
func (s *FileStore) Set(field Field, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	fields, err := s.read()
	if err != nil {
		return err
	}
	fields[field] = value
	return s.write(fields)
}

// Clear removes a single field. Clearing an absent field is a no-op.
func (s *FileStore) Clear(field Field) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	fields, err := s.read()
	if err != nil {
		return err
	}
	if _, ok := fields[field]; !ok {
		return nil
	}
	delete(fields, field)
	return s.write(fields)
}

func (s *FileStore) read() (map[Field]string, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return map[Field]string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read credentials: %w", err)
	}

	fields := map[Field]string{}
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, fmt.Errorf("parse credentials file %s: %w", s.path, err)
	}
	return fields, nil
}

func (s *FileStore) write(fields map[Field]string) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
		return fmt.Errorf("create credentials directory: %w", err)
	}
	data, err := json.MarshalIndent(fields, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return fmt.Errorf("write credentials: %w", err)
	}
	return nil
}

// MemStore is an in-memory Store for tests.
type MemStore struct {
	mu     sync.Mutex
	fields map[Field]string
}

// NewMemStore creates an empty in-memory store, optionally seeded.
func NewMemStore(seed map[Field]string) *MemStore {
	fields := map[Field]string{}
	for k, v := range seed {
		fields[k] = v
	}
	return &MemStore{fields: fields}
}

func (s *MemStore) Get(field Field) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.fields[field], nil
}

func (s *MemStore) Set(field Field, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fields[field] = value
	return nil
}

func (s *MemStore) Clear(field Field) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.fields, field)
	return nil
}

var (
	_ Store = (*FileStore)(nil)
	_ Store = (*MemStore)(nil)
)

package session

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

// CredentialStore holds the bearer token shared by every component.
// Writers do not coordinate: the last Save or Clear wins.
type CredentialStore interface {
	Token() string
	HasToken() bool
	Username() string
	Save(token, username string) error
	Clear() error
}

// credentials is the document kept under the fixed keys token and username
type credentials struct {
	Token    string `yaml:"token"`
	Username string `yaml:"username,omitempty"`
}

// MemoryStore keeps credentials in process memory
type MemoryStore struct {
	mu    sync.RWMutex
	creds credentials
}

// NewMemoryStore creates a store, optionally pre-seeded with a token
func NewMemoryStore(token string) *MemoryStore {
	return &MemoryStore{creds: credentials{Token: token}}
}

func (s *MemoryStore) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.creds.Token
}

func (s *MemoryStore) HasToken() bool {
	return s.Token() != ""
}

func (s *MemoryStore) Username() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.creds.Username
}

func (s *MemoryStore) Save(token, username string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.creds = credentials{Token: token, Username: username}
	return nil
}

func (s *MemoryStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.creds = credentials{}
	return nil
}

// DefaultCredentialFile is where FileStore keeps credentials unless configured
const DefaultCredentialFile = "~/.config/pilly/credentials.yaml"

// FileStore persists credentials as a YAML file readable only by the owner
type FileStore struct {
	mu    sync.RWMutex
	path  string
	creds credentials
}

// NewFileStore opens the store at path and loads any saved credentials
func NewFileStore(path string) (*FileStore, error) {
	if strings.TrimSpace(path) == "" {
		path = DefaultCredentialFile
	}
	s := &FileStore{path: expandPath(path)}
	if err := s.Load(); err != nil {
		return nil, err
	}
	return s, nil
}

// Path returns the expanded file location
func (s *FileStore) Path() string {
	return s.path
}

// Load rereads the file. A missing file means logged out.
func (s *FileStore) Load() error {
	// #nosec G304 - path comes from configuration
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			s.set(credentials{})
			return nil
		}
		return fmt.Errorf("failed to read credentials: %w", err)
	}

	var creds credentials
	if err := yaml.Unmarshal(data, &creds); err != nil {
		return fmt.Errorf("failed to parse credentials: %w", err)
	}
	s.set(creds)
	return nil
}

func (s *FileStore) set(c credentials) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.creds = c
}

func (s *FileStore) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.creds.Token
}

func (s *FileStore) HasToken() bool {
	return s.Token() != ""
}

func (s *FileStore) Username() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.creds.Username
}

// Save writes the credentials to disk
func (s *FileStore) Save(token, username string) error {
	creds := credentials{Token: token, Username: username}
	data, err := yaml.Marshal(&creds)
	if err != nil {
		return fmt.Errorf("failed to marshal credentials: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("failed to create credentials directory: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write credentials: %w", err)
	}

	s.set(creds)
	return nil
}

// Clear removes the credentials file
func (s *FileStore) Clear() error {
	s.set(credentials{})
	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to remove credentials: %w", err)
	}
	return nil
}

// expandPath expands ~ to the home directory
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[2:])
		}
	}
	return path
}

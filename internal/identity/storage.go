package identity

import (
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/Uried/Nexora/internal/errs"
)

// Storage persists the device identity between runs. Implementations are
// best-effort: a failing Store must not prevent identity resolution.
type Storage interface {
	// Load returns the value under key, or errs.ErrNotFound.
	Load(key string) (string, error)
	// Store writes value under key, overwriting any previous value.
	Store(key, value string) error
}

// FileStorage keeps one file per key under a config directory,
// following the usual XDG layout.
type FileStorage struct {
	dir string
}

// NewFileStorage resolves the config dir: explicit dir, then
// NEXORA_CONFIG_DIR, then XDG_CONFIG_HOME/nexora, then ~/.config/nexora.
func NewFileStorage(dir string) *FileStorage {
	if dir == "" {
		dir = os.Getenv("NEXORA_CONFIG_DIR")
	}
	if dir == "" {
		if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
			dir = filepath.Join(v, "nexora")
		} else {
			home, _ := os.UserHomeDir()
			dir = filepath.Join(home, ".config", "nexora")
		}
	}
	return &FileStorage{dir: dir}
}

func (s *FileStorage) path(key string) string {
	return filepath.Join(s.dir, key)
}

func (s *FileStorage) Load(key string) (string, error) {
	b, err := os.ReadFile(s.path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return "", errs.ErrNotFound
		}
		return "", err
	}
	v := strings.TrimSpace(string(b))
	if v == "" {
		return "", errs.ErrNotFound
	}
	return v, nil
}

func (s *FileStorage) Store(key, value string) error {
	_ = os.MkdirAll(s.dir, 0o700)
	return os.WriteFile(s.path(key), []byte(value), 0o600)
}

// MemStorage is an in-memory Storage for tests.
type MemStorage struct {
	mu   sync.Mutex
	m    map[string]string
	fail bool
}

// NewMemStorage returns an empty in-memory store.
func NewMemStorage() *MemStorage { return &MemStorage{m: map[string]string{}} }

// Fail makes every subsequent Load/Store return an error,
// simulating unavailable client storage.
func (s *MemStorage) Fail(v bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fail = v
}

func (s *MemStorage) Load(key string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fail {
		return "", errs.ErrNotFound
	}
	v, ok := s.m[key]
	if !ok {
		return "", errs.ErrNotFound
	}
	return v, nil
}

func (s *MemStorage) Store(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fail {
		return os.ErrPermission
	}
	s.m[key] = value
	return nil
}

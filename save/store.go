package save

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// ErrNotFound is returned when loading a key that was never saved
var ErrNotFound = errors.New("save not found")

// Store persists opaque save blobs by key
type Store interface {
	Save(ctx context.Context, key string, blob []byte) error
	Load(ctx context.Context, key string) ([]byte, error)
}

// FileStore keeps one file per key under a base directory
type FileStore struct {
	basePath string
}

// NewFileStore creates a store rooted at basePath
func NewFileStore(basePath string) *FileStore {
	return &FileStore{basePath: basePath}
}

// FilePath returns the path for a key
func (s *FileStore) FilePath(key string) string {
	return filepath.Join(s.basePath, sanitizeKey(key)+".json")
}

// Exists checks if a save file exists
func (s *FileStore) Exists(key string) bool {
	_, err := os.Stat(s.FilePath(key))
	return err == nil
}

// Save writes blob to disk, replacing any previous save atomically
func (s *FileStore) Save(ctx context.Context, key string, blob []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.MkdirAll(s.basePath, 0755); err != nil {
		return fmt.Errorf("save %q: %w", key, err)
	}

	path := s.FilePath(key)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, blob, 0644); err != nil {
		return fmt.Errorf("save %q: %w", key, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("save %q: %w", key, err)
	}
	return nil
}

// Load reads a save from disk
func (s *FileStore) Load(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	blob, err := os.ReadFile(s.FilePath(key))
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load %q: %w", key, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("load %q: %w", key, err)
	}
	return blob, nil
}

// sanitizeKey keeps keys from escaping the base directory
func sanitizeKey(key string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', '.', 0:
			return '_'
		}
		return r
	}, key)
}

// MemoryStore keeps saves in memory
type MemoryStore struct {
	mu    sync.RWMutex
	blobs map[string][]byte
}

// NewMemoryStore creates an empty in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{blobs: make(map[string][]byte)}
}

// Save stores a copy of blob
func (s *MemoryStore) Save(ctx context.Context, key string, blob []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.blobs[key] = append([]byte(nil), blob...)
	return nil
}

// Load returns a copy of the blob under key
func (s *MemoryStore) Load(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	blob, ok := s.blobs[key]
	if !ok {
		return nil, fmt.Errorf("load %q: %w", key, ErrNotFound)
	}
	return append([]byte(nil), blob...), nil
}

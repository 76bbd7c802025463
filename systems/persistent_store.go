package systems

import (
	"encoding/json"
	"fmt"
	"slices"
	"sort"
	"sync"
)

// PersistentStore is the long-lived key/value state of a run: flags, counters
// and small lists that outlive any one transition. Values keep their Go type
// across a JSON round trip.
type PersistentStore struct {
	mu     sync.RWMutex
	values map[string]any
}

// NewPersistentStore creates an empty store
func NewPersistentStore() *PersistentStore {
	return &PersistentStore{values: make(map[string]any)}
}

// Set stores value under key. Supported types are bool, int, float64,
// string and []string.
func (s *PersistentStore) Set(key string, value any) error {
	switch v := value.(type) {
	case bool, int, float64, string:
	case []string:
		value = slices.Clone(v)
	default:
		return fmt.Errorf("persistent %q: unsupported value type %T", key, value)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
	return nil
}

// Get returns the raw value under key
func (s *PersistentStore) Get(key string) (any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.values[key]
	return v, ok
}

// Delete removes key
func (s *PersistentStore) Delete(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.values, key)
}

// Keys returns every key, sorted
func (s *PersistentStore) Keys() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	keys := make([]string, 0, len(s.values))
	for k := range s.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Len returns the number of stored keys
func (s *PersistentStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.values)
}

type persistentEntry struct {
	Type  string          `json:"type"`
	Value json.RawMessage `json:"value"`
}

// MarshalJSON writes every value tagged with its type
func (s *PersistentStore) MarshalJSON() ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[string]persistentEntry, len(s.values))
	for key, value := range s.values {
		var kind string
		switch value.(type) {
		case bool:
			kind = "bool"
		case int:
			kind = "int"
		case float64:
			kind = "float"
		case string:
			kind = "string"
		case []string:
			kind = "strings"
		default:
			return nil, fmt.Errorf("persistent %q: unsupported value type %T", key, value)
		}
		raw, err := json.Marshal(value)
		if err != nil {
			return nil, fmt.Errorf("persistent %q: %w", key, err)
		}
		out[key] = persistentEntry{Type: kind, Value: raw}
	}
	return json.Marshal(out)
}

// UnmarshalJSON replaces the store's contents with the tagged values in raw
func (s *PersistentStore) UnmarshalJSON(raw []byte) error {
	var entries map[string]persistentEntry
	if err := json.Unmarshal(raw, &entries); err != nil {
		return err
	}

	values := make(map[string]any, len(entries))
	for key, entry := range entries {
		var err error
		switch entry.Type {
		case "bool":
			values[key], err = decodeAs[bool](entry.Value)
		case "int":
			values[key], err = decodeAs[int](entry.Value)
		case "float":
			values[key], err = decodeAs[float64](entry.Value)
		case "string":
			values[key], err = decodeAs[string](entry.Value)
		case "strings":
			values[key], err = decodeAs[[]string](entry.Value)
		default:
			err = fmt.Errorf("unknown type tag %q", entry.Type)
		}
		if err != nil {
			return fmt.Errorf("persistent %q: %w", key, err)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.values = values
	return nil
}

func decodeAs[T any](raw json.RawMessage) (T, error) {
	var v T
	err := json.Unmarshal(raw, &v)
	return v, err
}

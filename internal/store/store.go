package store

import (
	"encoding/json"
	"errors"
	"fmt"

	log "github.com/sirupsen/logrus"
)

// Namespaces of the record store. Each one holds a single JSON-encoded array.
const (
	NamespaceTodos     = "myTodos"
	NamespaceSchedules = "calendarSchedules"
	NamespaceDiary     = "diaryPosts"
	NamespaceAccounts  = "accounts"
)

// ErrQuotaExceeded is returned by Save when the serialized array does not fit
// the configured quota. Callers must report it to the user instead of losing
// the in-memory state; the previously persisted array stays intact.
var ErrQuotaExceeded = errors.New("record store quota exceeded")

// RecordStore persists one JSON array per namespace. There are no partial
// writes and no transactions across namespaces.
type RecordStore interface {
	// Read returns the raw JSON for a namespace, or nil when absent.
	Read(namespace string) ([]byte, error)
	// Write replaces the whole namespace with the given JSON.
	Write(namespace string, data []byte) error
}

// Load decodes the array stored under the namespace. An absent namespace or a
// payload that fails to parse both yield an empty slice: parse failures are
// swallowed and treated as "no data".
func Load[T any](s RecordStore, namespace string) ([]T, error) {
	raw, err := s.Read(namespace)
	if err != nil {
		return nil, fmt.Errorf("failed to read namespace %q: %w", namespace, err)
	}
	if raw == nil {
		return []T{}, nil
	}

	var items []T
	if err := json.Unmarshal(raw, &items); err != nil {
		log.Debugf("record store: namespace %q holds unparseable data, treating as empty: %v", namespace, err)
		return []T{}, nil
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

// Save serializes the items and overwrites the entire namespace.
func Save[T any](s RecordStore, namespace string, items []T) error {
	if items == nil {
		items = []T{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("failed to serialize namespace %q: %w", namespace, err)
	}
	if err := s.Write(namespace, data); err != nil {
		return fmt.Errorf("failed to write namespace %q: %w", namespace, err)
	}
	return nil
}

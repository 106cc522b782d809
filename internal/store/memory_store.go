package store

import "sync"

// MemoryStore is an in-memory RecordStore used in tests in place of the
// file-backed one. MaxBytes, when non-zero, makes Write fail with
// ErrQuotaExceeded the same way the file store does.
type MemoryStore struct {
	mu       sync.RWMutex
	data     map[string][]byte
	MaxBytes int
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string][]byte)}
}

func (m *MemoryStore) Read(namespace string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	data, ok := m.data[namespace]
	if !ok {
		return nil, nil
	}
	out := make([]byte, len(data))
	copy(out, data)
	return out, nil
}

func (m *MemoryStore) Write(namespace string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.MaxBytes > 0 && len(data) > m.MaxBytes {
		return ErrQuotaExceeded
	}
	stored := make([]byte, len(data))
	copy(stored, data)
	m.data[namespace] = stored
	return nil
}

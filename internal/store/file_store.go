package store

import (
	"fmt"
	"os"
	"path/filepath"

	log "github.com/sirupsen/logrus"
)

// FileStore keeps one "<namespace>.json" file per namespace under a data
// directory. Writes go through a temporary file and a rename, so a failed or
// rejected write never corrupts the previously persisted array.
type FileStore struct {
	dir      string
	maxBytes int
}

// NewFileStore creates the data directory if needed. maxBytes of 0 disables
// the quota.
func NewFileStore(dir string, maxBytes int) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create record store directory: %w", err)
	}
	return &FileStore{dir: dir, maxBytes: maxBytes}, nil
}

func (f *FileStore) path(namespace string) string {
	return filepath.Join(f.dir, namespace+".json")
}

func (f *FileStore) Read(namespace string) ([]byte, error) {
	data, err := os.ReadFile(f.path(namespace))
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return data, nil
}

func (f *FileStore) Write(namespace string, data []byte) error {
	if f.maxBytes > 0 && len(data) > f.maxBytes {
		log.Warnf("record store: write of %d bytes to %q exceeds quota of %d bytes", len(data), namespace, f.maxBytes)
		return ErrQuotaExceeded
	}

	tmp, err := os.CreateTemp(f.dir, namespace+"-*.tmp")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), f.path(namespace))
}

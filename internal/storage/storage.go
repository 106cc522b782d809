package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	log "github.com/sirupsen/logrus"
)

// Store uploads binary objects and returns the public URL they are served at.
// The backend-synced diary variant stores that URL, never the raw bytes.
type Store interface {
	Upload(ctx context.Context, objectName string, content []byte) (string, error)
}

// DiskStore writes objects to a local directory served under a public base URL.
type DiskStore struct {
	dir           string
	publicBaseURL string
}

func NewDiskStore(dir string, publicBaseURL string) (*DiskStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}
	return &DiskStore{dir: dir, publicBaseURL: publicBaseURL}, nil
}

// Dir returns the directory objects are written to, for serving them back.
func (s *DiskStore) Dir() string {
	return s.dir
}

func (s *DiskStore) Upload(ctx context.Context, objectName string, content []byte) (string, error) {
	objectName = filepath.Base(objectName)
	path := filepath.Join(s.dir, objectName)
	if err := os.WriteFile(path, content, 0o644); err != nil {
		return "", fmt.Errorf("failed to store object %q: %w", objectName, err)
	}
	log.Debugf("stored object %q (%d bytes)", objectName, len(content))
	return s.publicBaseURL + "/" + objectName, nil
}

// StubStore records uploads in memory for tests.
type StubStore struct {
	Objects map[string][]byte
}

func NewStubStore() *StubStore {
	return &StubStore{Objects: make(map[string][]byte)}
}

func (s *StubStore) Upload(ctx context.Context, objectName string, content []byte) (string, error) {
	s.Objects[objectName] = content
	return "stub://" + objectName, nil
}

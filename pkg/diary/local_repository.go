package diary

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/hyoniii710/gimyo-sns/internal/store"
)

var ErrEntryNotFound = errors.New("diary entry not found")

// LocalRepository keeps diary posts in the record store. Images are embedded
// as self-contained data URLs, so no upload step or remote round-trip is
// involved. "Most recent" is the last array element.
type LocalRepository struct {
	store store.RecordStore
	mu    sync.Mutex
}

func NewLocalRepository(recordStore store.RecordStore) *LocalRepository {
	return &LocalRepository{store: recordStore}
}

func (r *LocalRepository) Latest(ctx context.Context) (*Entry, error) {
	entries, err := store.Load[Entry](r.store, store.NamespaceDiary)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, nil
	}
	latest := entries[len(entries)-1]
	return &latest, nil
}

func (r *LocalRepository) List(ctx context.Context) ([]Entry, error) {
	return store.Load[Entry](r.store, store.NamespaceDiary)
}

func (r *LocalRepository) Get(ctx context.Context, id string) (*Entry, error) {
	entries, err := store.Load[Entry](r.store, store.NamespaceDiary)
	if err != nil {
		return nil, err
	}
	for _, e := range entries {
		if e.ID == id {
			return &e, nil
		}
	}
	return nil, ErrEntryNotFound
}

func (r *LocalRepository) Create(ctx context.Context, entry Entry, image *ImageUpload) (*Entry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	entries, err := store.Load[Entry](r.store, store.NamespaceDiary)
	if err != nil {
		return nil, err
	}

	entry.ID = uuid.NewString()
	if image != nil {
		dataURL := dataURL(image)
		entry.ImageURL = &dataURL
	}
	entries = append(entries, entry)

	if err := store.Save(r.store, store.NamespaceDiary, entries); err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *LocalRepository) Update(ctx context.Context, entry Entry, image *ImageUpload) (*Entry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	entries, err := store.Load[Entry](r.store, store.NamespaceDiary)
	if err != nil {
		return nil, err
	}

	idx := -1
	for i, e := range entries {
		if e.ID == entry.ID {
			idx = i
			break
		}
	}
	if idx == -1 {
		return nil, ErrEntryNotFound
	}

	if image != nil {
		dataURL := dataURL(image)
		entry.ImageURL = &dataURL
	} else if entry.ImageURL == nil {
		// Keep the previously attached image on update without a new one.
		entry.ImageURL = entries[idx].ImageURL
	}
	entries[idx] = entry

	if err := store.Save(r.store, store.NamespaceDiary, entries); err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *LocalRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	entries, err := store.Load[Entry](r.store, store.NamespaceDiary)
	if err != nil {
		return err
	}

	idx := -1
	for i, e := range entries {
		if e.ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		return ErrEntryNotFound
	}

	entries = append(entries[:idx], entries[idx+1:]...)
	return store.Save(r.store, store.NamespaceDiary, entries)
}

func dataURL(image *ImageUpload) string {
	contentType := image.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	return fmt.Sprintf("data:%s;base64,%s", contentType, base64.StdEncoding.EncodeToString(image.Content))
}

package diary

import (
	"context"
	"errors"
	"strings"

	log "github.com/sirupsen/logrus"
)

var ErrEntryDataInvalid = errors.New("diary entry requires a title and content")

// Service wraps the active Repository variant and applies the presentation
// fallback: an entry without an image gets a fetched placeholder image
// instead, best-effort.
type Service struct {
	repo        Repository
	placeholder PlaceholderClient
}

func NewService(repo Repository, placeholder PlaceholderClient) *Service {
	return &Service{repo: repo, placeholder: placeholder}
}

func (s *Service) Latest(ctx context.Context) (*Entry, error) {
	entry, err := s.repo.Latest(ctx)
	if err != nil {
		return nil, err
	}
	return s.withPlaceholder(ctx, entry), nil
}

func (s *Service) List(ctx context.Context) ([]Entry, error) {
	return s.repo.List(ctx)
}

func (s *Service) Get(ctx context.Context, id string) (*Entry, error) {
	entry, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.withPlaceholder(ctx, entry), nil
}

func (s *Service) Create(ctx context.Context, entry Entry, image *ImageUpload) (*Entry, error) {
	if strings.TrimSpace(entry.Title) == "" || strings.TrimSpace(entry.Content) == "" {
		return nil, ErrEntryDataInvalid
	}
	return s.repo.Create(ctx, entry, image)
}

func (s *Service) Update(ctx context.Context, entry Entry, image *ImageUpload) (*Entry, error) {
	if strings.TrimSpace(entry.Title) == "" || strings.TrimSpace(entry.Content) == "" {
		return nil, ErrEntryDataInvalid
	}
	return s.repo.Update(ctx, entry, image)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

// withPlaceholder fills in a fetched placeholder image for an entry without
// one. A failed fetch never blocks rendering of the text fields.
func (s *Service) withPlaceholder(ctx context.Context, entry *Entry) *Entry {
	if entry == nil {
		return nil
	}
	if entry.ImageURL != nil && *entry.ImageURL != "" {
		return entry
	}
	url, err := s.placeholder.RandomImage(ctx)
	if err != nil {
		log.Debugf("placeholder image unavailable: %v", err)
		return entry
	}
	entry.ImageURL = &url
	return entry
}

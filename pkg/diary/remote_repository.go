package diary

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/hyoniii710/gimyo-sns/internal/storage"
	"github.com/hyoniii710/gimyo-sns/internal/utils"
	"github.com/hyoniii710/gimyo-sns/pkg/user"
	log "github.com/sirupsen/logrus"
)

// RemoteRepository stores diary posts in the database, scoped by the
// authenticated user. New images are uploaded to object storage first and
// only the returned public URL is stored. Without a user identity every
// operation is a silent no-op. "Most recent" is the newest row by creation
// time.
type RemoteRepository struct {
	db      *sql.DB
	storage storage.Store
	clock   utils.Clock
}

func NewRemoteRepository(db *sql.DB, store storage.Store, clock utils.Clock) *RemoteRepository {
	return &RemoteRepository{db: db, storage: store, clock: clock}
}

func (r *RemoteRepository) Latest(ctx context.Context) (*Entry, error) {
	userId, err := user.CurrentId(ctx)
	if errors.Is(err, user.ErrNoUser) {
		return nil, nil
	} else if err != nil {
		return nil, err
	}

	query := `SELECT id, date, title, content, image_url, mood, weather FROM diary_post
				WHERE user_id = ?
				ORDER BY created_at DESC
				LIMIT 1`
	entry, err := scanEntry(r.db.QueryRowContext(ctx, query, userId))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	} else if err != nil {
		err := fmt.Errorf("could not query latest diary post: %w", err)
		log.Error(err)
		return nil, err
	}
	return entry, nil
}

func (r *RemoteRepository) List(ctx context.Context) ([]Entry, error) {
	userId, err := user.CurrentId(ctx)
	if errors.Is(err, user.ErrNoUser) {
		return []Entry{}, nil
	} else if err != nil {
		return nil, err
	}

	query := `SELECT id, date, title, content, image_url, mood, weather FROM diary_post
				WHERE user_id = ?
				ORDER BY created_at`
	rows, err := r.db.QueryContext(ctx, query, userId)
	if err != nil {
		err := fmt.Errorf("could not query diary posts: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	entries := make([]Entry, 0, 10)
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			err := fmt.Errorf("could not scan row: %w", err)
			log.Error(err)
			return nil, err
		}
		entries = append(entries, *entry)
	}
	return entries, rows.Err()
}

func (r *RemoteRepository) Get(ctx context.Context, id string) (*Entry, error) {
	userId, err := user.CurrentId(ctx)
	if errors.Is(err, user.ErrNoUser) {
		return nil, nil
	} else if err != nil {
		return nil, err
	}

	query := `SELECT id, date, title, content, image_url, mood, weather FROM diary_post
				WHERE id = ? AND user_id = ?`
	entry, err := scanEntry(r.db.QueryRowContext(ctx, query, id, userId))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrEntryNotFound
	} else if err != nil {
		err := fmt.Errorf("could not query diary post: %w", err)
		log.Error(err)
		return nil, err
	}
	return entry, nil
}

func (r *RemoteRepository) Create(ctx context.Context, entry Entry, image *ImageUpload) (*Entry, error) {
	userId, err := user.CurrentId(ctx)
	if errors.Is(err, user.ErrNoUser) {
		return nil, nil
	} else if err != nil {
		return nil, err
	}

	if image != nil {
		publicURL, err := r.uploadImage(ctx, userId, image)
		if err != nil {
			return nil, err
		}
		entry.ImageURL = &publicURL
	}
	entry.ID = uuid.NewString()

	query := `INSERT INTO diary_post (id, user_id, date, title, content, image_url, mood, weather, created_at)
				VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err = r.db.ExecContext(ctx, query,
		entry.ID, userId, entry.Date, entry.Title, entry.Content,
		entry.ImageURL, entry.Mood, entry.Weather, r.clock.Now().UnixMilli(),
	)
	if err != nil {
		err := fmt.Errorf("could not insert diary post: %w", err)
		log.Error(err)
		return nil, err
	}
	return &entry, nil
}

func (r *RemoteRepository) Update(ctx context.Context, entry Entry, image *ImageUpload) (*Entry, error) {
	userId, err := user.CurrentId(ctx)
	if errors.Is(err, user.ErrNoUser) {
		return nil, nil
	} else if err != nil {
		return nil, err
	}

	if image != nil {
		publicURL, err := r.uploadImage(ctx, userId, image)
		if err != nil {
			return nil, err
		}
		entry.ImageURL = &publicURL
	}

	query := `UPDATE diary_post SET date = ?, title = ?, content = ?, image_url = ?, mood = ?, weather = ?
				WHERE id = ? AND user_id = ?`
	result, err := r.db.ExecContext(ctx, query,
		entry.Date, entry.Title, entry.Content, entry.ImageURL, entry.Mood, entry.Weather,
		entry.ID, userId,
	)
	if err != nil {
		err := fmt.Errorf("could not update diary post: %w", err)
		log.Error(err)
		return nil, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, ErrEntryNotFound
	}
	return &entry, nil
}

func (r *RemoteRepository) Delete(ctx context.Context, id string) error {
	userId, err := user.CurrentId(ctx)
	if errors.Is(err, user.ErrNoUser) {
		return nil
	} else if err != nil {
		return err
	}

	query := `DELETE FROM diary_post WHERE id = ? AND user_id = ?`
	result, err := r.db.ExecContext(ctx, query, id, userId)
	if err != nil {
		err := fmt.Errorf("could not delete diary post: %w", err)
		log.Error(err)
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrEntryNotFound
	}
	return nil
}

func (r *RemoteRepository) uploadImage(ctx context.Context, userId int, image *ImageUpload) (string, error) {
	objectName := fmt.Sprintf("%d-%d%s", userId, r.clock.Now().UnixMilli(), filepath.Ext(image.Filename))
	publicURL, err := r.storage.Upload(ctx, objectName, image.Content)
	if err != nil {
		return "", fmt.Errorf("failed to upload diary image: %w", err)
	}
	return publicURL, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEntry(row rowScanner) (*Entry, error) {
	var entry Entry
	var imageURL sql.NullString
	err := row.Scan(&entry.ID, &entry.Date, &entry.Title, &entry.Content, &imageURL, &entry.Mood, &entry.Weather)
	if err != nil {
		return nil, err
	}
	if imageURL.Valid {
		entry.ImageURL = &imageURL.String
	}
	return &entry, nil
}

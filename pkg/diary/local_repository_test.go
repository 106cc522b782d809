package diary

import (
	"testing"

	"github.com/hyoniii710/gimyo-sns/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalRepository_Update(t *testing.T) {
	t.Run("should keep the previous image when none is supplied", func(t *testing.T) {
		repo := NewLocalRepository(store.NewMemoryStore())
		created, err := repo.Create(ctx, Entry{Title: "title", Content: "content"},
			&ImageUpload{ContentType: "image/png", Content: []byte{1}})
		require.NoError(t, err)
		require.NotNil(t, created.ImageURL)

		updated, err := repo.Update(ctx, Entry{ID: created.ID, Title: "title", Content: "edited"}, nil)

		require.NoError(t, err)
		require.NotNil(t, updated.ImageURL)
		assert.Equal(t, *created.ImageURL, *updated.ImageURL)
	})

	t.Run("should replace the image when a new one is supplied", func(t *testing.T) {
		repo := NewLocalRepository(store.NewMemoryStore())
		created, err := repo.Create(ctx, Entry{Title: "title", Content: "content"},
			&ImageUpload{ContentType: "image/png", Content: []byte{1}})
		require.NoError(t, err)

		updated, err := repo.Update(ctx, Entry{ID: created.ID, Title: "title", Content: "content"},
			&ImageUpload{ContentType: "image/jpeg", Content: []byte{2}})

		require.NoError(t, err)
		require.NotNil(t, updated.ImageURL)
		assert.NotEqual(t, *created.ImageURL, *updated.ImageURL)
		assert.Contains(t, *updated.ImageURL, "data:image/jpeg;base64,")
	})

	t.Run("should return error for unknown id", func(t *testing.T) {
		repo := NewLocalRepository(store.NewMemoryStore())

		_, err := repo.Update(ctx, Entry{ID: "missing", Title: "t", Content: "c"}, nil)

		assert.ErrorIs(t, err, ErrEntryNotFound)
	})
}

func TestLocalRepository_Get(t *testing.T) {
	t.Run("should find an entry by id", func(t *testing.T) {
		repo := NewLocalRepository(store.NewMemoryStore())
		created, err := repo.Create(ctx, Entry{Title: "title", Content: "content"}, nil)
		require.NoError(t, err)

		got, err := repo.Get(ctx, created.ID)

		require.NoError(t, err)
		assert.Equal(t, created, got)
	})

	t.Run("should return error for unknown id", func(t *testing.T) {
		repo := NewLocalRepository(store.NewMemoryStore())

		_, err := repo.Get(ctx, "missing")

		assert.ErrorIs(t, err, ErrEntryNotFound)
	})
}

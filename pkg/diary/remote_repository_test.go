package diary

import (
	"context"
	"database/sql"
	"fmt"
	"testing"
	"time"

	"github.com/hyoniii710/gimyo-sns/internal/storage"
	"github.com/hyoniii710/gimyo-sns/internal/test_utils"
	"github.com/hyoniii710/gimyo-sns/internal/utils"
	"github.com/hyoniii710/gimyo-sns/pkg/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRemoteRepo(t *testing.T) (*RemoteRepository, *storage.StubStore, *utils.MockClock, context.Context) {
	db := test_utils.SetupTestDB(t)
	insertTestUser(t, db, 1, "uid-1", "tester")

	stubStore := storage.NewStubStore()
	clock := &utils.MockClock{FixedNow: time.Date(2024, 5, 3, 10, 0, 0, 0, time.UTC)}
	repo := NewRemoteRepository(db, stubStore, clock)

	userCtx := user.WithUser(context.Background(), user.User{Id: 1, Uid: "uid-1", Username: "tester"})
	return repo, stubStore, clock, userCtx
}

func insertTestUser(t *testing.T, db *sql.DB, id int, uid string, username string) {
	t.Helper()
	_, err := db.Exec("INSERT INTO users (id, uid, username, display_name) VALUES (?, ?, ?, ?)",
		id, uid, username, username)
	require.NoError(t, err)
}

func TestRemoteRepository_Create(t *testing.T) {
	t.Run("should create an entry for the current user", func(t *testing.T) {
		repo, _, _, userCtx := setupRemoteRepo(t)

		created, err := repo.Create(userCtx, Entry{
			Date:    "2024-05-03",
			Title:   "좋은 하루",
			Content: "산책을 했다.",
			Mood:    "😊",
		}, nil)

		require.NoError(t, err)
		require.NotNil(t, created)
		assert.NotEmpty(t, created.ID)

		got, err := repo.Get(userCtx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, created.Title, got.Title)
		assert.Equal(t, "😊", got.Mood)
		assert.Nil(t, got.ImageURL)
	})

	t.Run("should upload the image and store its public URL", func(t *testing.T) {
		repo, stubStore, clock, userCtx := setupRemoteRepo(t)

		created, err := repo.Create(userCtx, Entry{Title: "t", Content: "c"},
			&ImageUpload{Filename: "photo.png", ContentType: "image/png", Content: []byte{1, 2, 3}})

		require.NoError(t, err)
		require.NotNil(t, created.ImageURL)

		wantObject := fmt.Sprintf("1-%d.png", clock.FixedNow.UnixMilli())
		assert.Equal(t, "stub://"+wantObject, *created.ImageURL)
		assert.Equal(t, []byte{1, 2, 3}, stubStore.Objects[wantObject])
	})

	t.Run("should be a no-op without a user", func(t *testing.T) {
		repo, _, _, _ := setupRemoteRepo(t)

		created, err := repo.Create(context.Background(), Entry{Title: "t", Content: "c"}, nil)

		assert.NoError(t, err)
		assert.Nil(t, created)
	})
}

func TestRemoteRepository_Latest(t *testing.T) {
	t.Run("should return the newest entry by creation time", func(t *testing.T) {
		repo, _, clock, userCtx := setupRemoteRepo(t)

		_, err := repo.Create(userCtx, Entry{Title: "older", Content: "c"}, nil)
		require.NoError(t, err)
		clock.SetNow(clock.FixedNow.Add(time.Minute))
		_, err = repo.Create(userCtx, Entry{Title: "newer", Content: "c"}, nil)
		require.NoError(t, err)

		latest, err := repo.Latest(userCtx)

		require.NoError(t, err)
		require.NotNil(t, latest)
		assert.Equal(t, "newer", latest.Title)
	})

	t.Run("should return nil when the user has no entries", func(t *testing.T) {
		repo, _, _, userCtx := setupRemoteRepo(t)

		latest, err := repo.Latest(userCtx)

		assert.NoError(t, err)
		assert.Nil(t, latest)
	})

	t.Run("should return nil without a user", func(t *testing.T) {
		repo, _, _, _ := setupRemoteRepo(t)

		latest, err := repo.Latest(context.Background())

		assert.NoError(t, err)
		assert.Nil(t, latest)
	})
}

func TestRemoteRepository_List(t *testing.T) {
	t.Run("should only return entries of the current user", func(t *testing.T) {
		repo, _, clock, userCtx := setupRemoteRepo(t)
		_, err := repo.Create(userCtx, Entry{Title: "mine", Content: "c"}, nil)
		require.NoError(t, err)

		otherCtx := user.WithUser(context.Background(), user.User{Id: 2, Uid: "uid-2"})
		insertTestUser(t, repo.db, 2, "uid-2", "other")
		clock.SetNow(clock.FixedNow.Add(time.Second))
		_, err = repo.Create(otherCtx, Entry{Title: "theirs", Content: "c"}, nil)
		require.NoError(t, err)

		entries, err := repo.List(userCtx)

		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, "mine", entries[0].Title)
	})

	t.Run("should return empty slice without a user", func(t *testing.T) {
		repo, _, _, _ := setupRemoteRepo(t)

		entries, err := repo.List(context.Background())

		assert.NoError(t, err)
		assert.Empty(t, entries)
	})
}

func TestRemoteRepository_Update(t *testing.T) {
	t.Run("should update an entry", func(t *testing.T) {
		repo, _, _, userCtx := setupRemoteRepo(t)
		created, err := repo.Create(userCtx, Entry{Title: "before", Content: "c"}, nil)
		require.NoError(t, err)

		updated, err := repo.Update(userCtx, Entry{ID: created.ID, Title: "after", Content: "c"}, nil)

		require.NoError(t, err)
		assert.Equal(t, "after", updated.Title)

		got, err := repo.Get(userCtx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, "after", got.Title)
	})

	t.Run("should not touch another user's entry", func(t *testing.T) {
		repo, _, _, userCtx := setupRemoteRepo(t)
		created, err := repo.Create(userCtx, Entry{Title: "mine", Content: "c"}, nil)
		require.NoError(t, err)

		insertTestUser(t, repo.db, 2, "uid-2", "other")
		otherCtx := user.WithUser(context.Background(), user.User{Id: 2, Uid: "uid-2"})
		_, err = repo.Update(otherCtx, Entry{ID: created.ID, Title: "hijacked", Content: "c"}, nil)

		assert.ErrorIs(t, err, ErrEntryNotFound)
	})
}

func TestRemoteRepository_Delete(t *testing.T) {
	t.Run("should delete an entry", func(t *testing.T) {
		repo, _, _, userCtx := setupRemoteRepo(t)
		created, err := repo.Create(userCtx, Entry{Title: "t", Content: "c"}, nil)
		require.NoError(t, err)

		err = repo.Delete(userCtx, created.ID)

		require.NoError(t, err)
		_, err = repo.Get(userCtx, created.ID)
		assert.ErrorIs(t, err, ErrEntryNotFound)
	})

	t.Run("should return error for unknown id", func(t *testing.T) {
		repo, _, _, userCtx := setupRemoteRepo(t)

		err := repo.Delete(userCtx, "missing")

		assert.ErrorIs(t, err, ErrEntryNotFound)
	})
}

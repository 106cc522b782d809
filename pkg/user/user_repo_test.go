package user

import (
	"context"
	"testing"

	"github.com/hyoniii710/gimyo-sns/internal/test_utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var ctx = context.Background()

func TestUserRepoImpl_CreateUser(t *testing.T) {
	t.Run("should create a user and return its id", func(t *testing.T) {
		repo := NewUserRepo(test_utils.SetupTestDB(t))

		id, err := repo.CreateUser(ctx, User{Uid: "uid-1", Username: "tester", DisplayName: "Tester"})

		require.NoError(t, err)
		assert.Greater(t, id, 0)

		user, err := repo.GetUser(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, "uid-1", user.Uid)
		assert.Equal(t, "tester", user.Username)
	})

	t.Run("should reject a duplicate username", func(t *testing.T) {
		repo := NewUserRepo(test_utils.SetupTestDB(t))
		_, err := repo.CreateUser(ctx, User{Uid: "uid-1", Username: "tester", DisplayName: "Tester"})
		require.NoError(t, err)

		_, err = repo.CreateUser(ctx, User{Uid: "uid-2", Username: "tester", DisplayName: "Other"})

		assert.Error(t, err)
	})
}

func TestUserRepoImpl_GetUserByUid(t *testing.T) {
	t.Run("should find a user by uid", func(t *testing.T) {
		repo := NewUserRepo(test_utils.SetupTestDB(t))
		id, err := repo.CreateUser(ctx, User{Uid: "uid-1", Username: "tester", DisplayName: "Tester"})
		require.NoError(t, err)

		user, err := repo.GetUserByUid(ctx, "uid-1")

		require.NoError(t, err)
		assert.Equal(t, id, user.Id)
	})

	t.Run("should return ErrUserNotFound for unknown uid", func(t *testing.T) {
		repo := NewUserRepo(test_utils.SetupTestDB(t))

		_, err := repo.GetUserByUid(ctx, "missing")

		assert.ErrorIs(t, err, ErrUserNotFound)
	})
}

func TestUserRepoImpl_IsUsernameAvailable(t *testing.T) {
	t.Run("should report taken and free usernames", func(t *testing.T) {
		repo := NewUserRepo(test_utils.SetupTestDB(t))
		_, err := repo.CreateUser(ctx, User{Uid: "uid-1", Username: "tester", DisplayName: "Tester"})
		require.NoError(t, err)

		taken, err := repo.IsUsernameAvailable(ctx, "tester")
		require.NoError(t, err)
		free, err := repo.IsUsernameAvailable(ctx, "someone-else")
		require.NoError(t, err)

		assert.False(t, taken)
		assert.True(t, free)
	})
}

func TestUserServiceImpl_CreateUser(t *testing.T) {
	t.Run("should generate a uid when missing", func(t *testing.T) {
		service := NewUserService(NewStubUserRepository())

		user, err := service.CreateUser(ctx, User{Username: "tester", DisplayName: "Tester"})

		require.NoError(t, err)
		assert.NotEmpty(t, user.Uid)
		assert.NotZero(t, user.Id)
	})

	t.Run("should reject missing username or display name", func(t *testing.T) {
		service := NewUserService(NewStubUserRepository())

		_, err := service.CreateUser(ctx, User{Username: "", DisplayName: "Tester"})
		assert.ErrorIs(t, err, ErrUserDataInvalid)

		_, err = service.CreateUser(ctx, User{Username: "tester", DisplayName: ""})
		assert.ErrorIs(t, err, ErrUserDataInvalid)
	})
}

func TestUserServiceImpl_GetCurrentUser(t *testing.T) {
	t.Run("should resolve the user from the context", func(t *testing.T) {
		repo := NewStubUserRepository()
		service := NewUserService(repo)
		created, err := service.CreateUser(ctx, User{Username: "tester", DisplayName: "Tester"})
		require.NoError(t, err)

		user, err := service.GetCurrentUser(WithUser(ctx, created))

		require.NoError(t, err)
		assert.Equal(t, created.Id, user.Id)
	})

	t.Run("should fail without a user in context", func(t *testing.T) {
		service := NewUserService(NewStubUserRepository())

		_, err := service.GetCurrentUser(ctx)

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to get current user")
	})
}

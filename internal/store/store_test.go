package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type record struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

func TestLoad(t *testing.T) {
	t.Run("should return empty slice for absent namespace", func(t *testing.T) {
		s := NewMemoryStore()

		items, err := Load[record](s, NamespaceTodos)

		assert.NoError(t, err)
		assert.Empty(t, items)
		assert.NotNil(t, items)
	})

	t.Run("should return what was saved", func(t *testing.T) {
		s := NewMemoryStore()
		saved := []record{{ID: 1, Name: "first"}, {ID: 2, Name: "second"}}
		require.NoError(t, Save(s, NamespaceTodos, saved))

		items, err := Load[record](s, NamespaceTodos)

		assert.NoError(t, err)
		assert.Equal(t, saved, items)
	})

	t.Run("should treat unparseable data as empty", func(t *testing.T) {
		s := NewMemoryStore()
		require.NoError(t, s.Write(NamespaceTodos, []byte("not json at all")))

		items, err := Load[record](s, NamespaceTodos)

		assert.NoError(t, err)
		assert.Empty(t, items)
	})

	t.Run("should not modify unparseable data until next save", func(t *testing.T) {
		s := NewMemoryStore()
		require.NoError(t, s.Write(NamespaceTodos, []byte("{broken")))

		_, err := Load[record](s, NamespaceTodos)
		require.NoError(t, err)

		raw, err := s.Read(NamespaceTodos)
		require.NoError(t, err)
		assert.Equal(t, []byte("{broken"), raw)
	})
}

func TestSave(t *testing.T) {
	t.Run("should serialize nil as empty array", func(t *testing.T) {
		s := NewMemoryStore()

		err := Save[record](s, NamespaceTodos, nil)

		assert.NoError(t, err)
		raw, _ := s.Read(NamespaceTodos)
		assert.JSONEq(t, "[]", string(raw))
	})

	t.Run("should return quota error and keep previous data", func(t *testing.T) {
		s := NewMemoryStore()
		require.NoError(t, Save(s, NamespaceTodos, []record{{ID: 1, Name: "a"}}))
		s.MaxBytes = 10

		err := Save(s, NamespaceTodos, []record{{ID: 1, Name: "a"}, {ID: 2, Name: "a much longer name"}})

		assert.ErrorIs(t, err, ErrQuotaExceeded)
		items, loadErr := Load[record](s, NamespaceTodos)
		require.NoError(t, loadErr)
		assert.Equal(t, []record{{ID: 1, Name: "a"}}, items)
	})
}

func TestFileStore(t *testing.T) {
	t.Run("should round-trip a namespace through disk", func(t *testing.T) {
		s, err := NewFileStore(t.TempDir(), 0)
		require.NoError(t, err)

		saved := []record{{ID: 7, Name: "on disk"}}
		require.NoError(t, Save(s, NamespaceSchedules, saved))

		items, err := Load[record](s, NamespaceSchedules)
		assert.NoError(t, err)
		assert.Equal(t, saved, items)
	})

	t.Run("should return nil for a namespace never written", func(t *testing.T) {
		s, err := NewFileStore(t.TempDir(), 0)
		require.NoError(t, err)

		raw, err := s.Read(NamespaceDiary)

		assert.NoError(t, err)
		assert.Nil(t, raw)
	})

	t.Run("should keep previous file intact when quota rejects a write", func(t *testing.T) {
		s, err := NewFileStore(t.TempDir(), 40)
		require.NoError(t, err)
		require.NoError(t, Save(s, NamespaceTodos, []record{{ID: 1, Name: "ok"}}))

		err = Save(s, NamespaceTodos, []record{
			{ID: 1, Name: "ok"},
			{ID: 2, Name: "this one does not fit the quota anymore"},
		})

		assert.ErrorIs(t, err, ErrQuotaExceeded)
		items, loadErr := Load[record](s, NamespaceTodos)
		require.NoError(t, loadErr)
		assert.Equal(t, []record{{ID: 1, Name: "ok"}}, items)
	})

	t.Run("should keep namespaces independent", func(t *testing.T) {
		s, err := NewFileStore(t.TempDir(), 0)
		require.NoError(t, err)

		require.NoError(t, Save(s, NamespaceTodos, []record{{ID: 1, Name: "todo"}}))
		require.NoError(t, Save(s, NamespaceSchedules, []record{{ID: 2, Name: "schedule"}}))

		todos, err := Load[record](s, NamespaceTodos)
		require.NoError(t, err)
		schedules, err := Load[record](s, NamespaceSchedules)
		require.NoError(t, err)
		assert.Equal(t, []record{{ID: 1, Name: "todo"}}, todos)
		assert.Equal(t, []record{{ID: 2, Name: "schedule"}}, schedules)
	})
}

package sqlitestore

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenRejectsEmptyPath(t *testing.T) {
	_, err := Open("  ")
	assert.Error(t, err)
}

func TestStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "tada.db")
	s, err := Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	assert.Equal(t, path, s.Path())

	_, ok, err := s.Get("todos")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Set("todos", "[]"))
	require.NoError(t, s.Set("todos", `[{"id":"a","content":"x","isCompleted":true}]`))

	v, ok, err := s.Get("todos")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `[{"id":"a","content":"x","isCompleted":true}]`, v)
}

func TestReopenKeepsValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tada.db")
	s, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s.Set("todos", "[]"))
	require.NoError(t, s.Close())

	s, err = Open(path)
	require.NoError(t, err)
	defer s.Close()
	v, ok, err := s.Get("todos")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "[]", v)
}

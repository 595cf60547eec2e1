package kv

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemory(t *testing.T) {
	m := NewMemory()

	t.Run("absent key", func(t *testing.T) {
		v, ok, err := m.Get("todos")
		require.NoError(t, err)
		assert.False(t, ok)
		assert.Empty(t, v)
	})

	t.Run("set then get", func(t *testing.T) {
		require.NoError(t, m.Set("todos", "[]"))
		v, ok, err := m.Get("todos")
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, "[]", v)
		assert.Equal(t, 1, m.Writes())
	})

	t.Run("failing writes keep the old value", func(t *testing.T) {
		m.FailWrites(true)
		assert.ErrorIs(t, m.Set("todos", "[1]"), ErrWriteFailed)
		m.FailWrites(false)

		v, _, err := m.Get("todos")
		require.NoError(t, err)
		assert.Equal(t, "[]", v)
		assert.Equal(t, 1, m.Writes())
	})
}

package todo

import (
	"errors"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Makepad-fr/tada/internal/kv"
	"github.com/Makepad-fr/tada/internal/model"
	"github.com/Makepad-fr/tada/internal/store/jsonstore"
	"github.com/Makepad-fr/tada/internal/store/sqlitestore"
)

// seqIDs returns an id generator yielding a, b, c, ...
func seqIDs() func() string {
	n := 0
	return func() string {
		id := string(rune('a' + n))
		n++
		return id
	}
}

func newList(t *testing.T, store kv.Store, opts ...Option) *List {
	t.Helper()
	l := New(store, opts...)
	require.NoError(t, l.Initialize())
	return l
}

func add(t *testing.T, l *List, content string) model.Item {
	t.Helper()
	l.UpdateDraft(content)
	it, err := l.AddTodo()
	require.NoError(t, err)
	return it
}

func ids(items []model.Item) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, it.ID)
	}
	return out
}

func TestInitialize(t *testing.T) {
	t.Run("absent key is initialized to an empty array", func(t *testing.T) {
		store := kv.NewMemory()
		l := newList(t, store)
		assert.Empty(t, l.Items())

		v, ok, err := store.Get(DefaultKey)
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, "[]", v)
	})

	t.Run("hydrates a persisted array", func(t *testing.T) {
		store := kv.NewMemory()
		require.NoError(t, store.Set(DefaultKey,
			`[{"id":"x","content":"buy milk","isCompleted":false},{"id":"y","content":"call mom","isCompleted":true}]`))

		l := newList(t, store)
		assert.Equal(t, []model.Item{
			{ID: "x", Content: "buy milk"},
			{ID: "y", Content: "call mom", IsCompleted: true},
		}, l.Items())
		assert.Equal(t, 1, store.Writes())
	})

	t.Run("null is treated as absent", func(t *testing.T) {
		store := kv.NewMemory()
		require.NoError(t, store.Set(DefaultKey, "null"))

		l := newList(t, store)
		assert.Empty(t, l.Items())
		v, _, err := store.Get(DefaultKey)
		require.NoError(t, err)
		assert.Equal(t, "[]", v)
	})

	t.Run("custom key", func(t *testing.T) {
		store := kv.NewMemory()
		newList(t, store, WithKey("work"))
		_, ok, _ := store.Get("work")
		assert.True(t, ok)
		_, ok, _ = store.Get(DefaultKey)
		assert.False(t, ok)
	})

	malformed := map[string]string{
		"not json":      `{oops`,
		"object":        `{"id":"x"}`,
		"wrong types":   `[{"id":"x","content":"a","isCompleted":"yes"}]`,
		"missing field": `[{"id":"x","content":"a"}]`,
		"empty id":      `[{"id":"","content":"a","isCompleted":false}]`,
		"duplicate ids": `[{"id":"x","content":"a","isCompleted":false},{"id":"x","content":"b","isCompleted":true}]`,
	}
	for name, raw := range malformed {
		t.Run("malformed value fails soft: "+name, func(t *testing.T) {
			store := kv.NewMemory()
			require.NoError(t, store.Set(DefaultKey, raw))

			l := New(store)
			require.NoError(t, l.Initialize())
			assert.Empty(t, l.Items())

			v, _, _ := store.Get(DefaultKey)
			assert.Equal(t, raw, v, "malformed value is kept until the next mutation")
		})
	}
}

func TestAddTodo(t *testing.T) {
	t.Run("add then list", func(t *testing.T) {
		l := newList(t, kv.NewMemory())
		it := add(t, l, "buy milk")

		visible := l.VisibleItems()
		require.Len(t, visible, 1)
		assert.Equal(t, "buy milk", visible[0].Content)
		assert.False(t, visible[0].IsCompleted)
		assert.Equal(t, it.ID, visible[0].ID)
		assert.NotEmpty(t, it.ID)
		assert.Empty(t, l.Draft(), "draft resets after commit")
	})

	t.Run("empty content is rejected", func(t *testing.T) {
		store := kv.NewMemory()
		l := newList(t, store)
		add(t, l, "one")
		writes := store.Writes()

		l.UpdateDraft("")
		_, err := l.AddTodo()
		assert.ErrorIs(t, err, ErrEmptyContent)
		assert.ErrorIs(t, err, ErrValidation)
		ve, ok := AsValidation(err)
		require.True(t, ok)
		assert.Equal(t, "content", ve.Field)
		assert.Equal(t, "Todo cannot be empty!", err.Error())

		assert.Len(t, l.Items(), 1)
		assert.Equal(t, writes, store.Writes())
	})

	t.Run("whitespace is kept literally", func(t *testing.T) {
		l := newList(t, kv.NewMemory())
		it := add(t, l, "  ")
		assert.Equal(t, "  ", it.Content)
	})

	t.Run("one write per add", func(t *testing.T) {
		store := kv.NewMemory()
		l := newList(t, store)
		before := store.Writes()
		add(t, l, "a")
		add(t, l, "b")
		assert.Equal(t, before+2, store.Writes())
	})

	t.Run("draft edits do not generate ids", func(t *testing.T) {
		calls := 0
		l := newList(t, kv.NewMemory(), WithIDFunc(func() string {
			calls++
			return fmt.Sprintf("id-%d", calls)
		}))
		for _, s := range []string{"b", "bu", "buy", "buy milk"} {
			l.UpdateDraft(s)
		}
		assert.Equal(t, "buy milk", l.Draft())
		assert.Zero(t, calls)

		it, err := l.AddTodo()
		require.NoError(t, err)
		assert.Equal(t, "id-1", it.ID)
		assert.Equal(t, 1, calls)
	})

	t.Run("ids are unique", func(t *testing.T) {
		l := newList(t, kv.NewMemory())
		for i := 0; i < 200; i++ {
			add(t, l, fmt.Sprintf("task %d", i))
		}
		seen := map[string]bool{}
		for _, it := range l.Items() {
			assert.False(t, seen[it.ID], "duplicate id %s", it.ID)
			seen[it.ID] = true
		}
		assert.Len(t, seen, 200)
	})
}

func TestToggleCompleted(t *testing.T) {
	t.Run("twice restores the original value", func(t *testing.T) {
		l := newList(t, kv.NewMemory())
		it := add(t, l, "buy milk")

		got, err := l.ToggleCompleted(it.ID)
		require.NoError(t, err)
		assert.True(t, got.IsCompleted)

		got, err = l.ToggleCompleted(it.ID)
		require.NoError(t, err)
		assert.False(t, got.IsCompleted)
		assert.Len(t, l.Items(), 1)
	})

	t.Run("unknown id is not found and writes nothing", func(t *testing.T) {
		store := kv.NewMemory()
		l := newList(t, store)
		add(t, l, "a")
		writes := store.Writes()

		_, err := l.ToggleCompleted("missing")
		assert.ErrorIs(t, err, ErrNotFound)
		assert.Equal(t, writes, store.Writes())
		assert.False(t, l.Items()[0].IsCompleted)
	})

	t.Run("only the first duplicate is toggled", func(t *testing.T) {
		l := newList(t, kv.NewMemory(), WithIDFunc(func() string { return "same" }))
		add(t, l, "first")
		add(t, l, "second")

		_, err := l.ToggleCompleted("same")
		require.NoError(t, err)
		items := l.Items()
		assert.True(t, items[0].IsCompleted)
		assert.False(t, items[1].IsCompleted)
	})
}

func TestDeleteTodo(t *testing.T) {
	t.Run("removes exactly one and keeps order", func(t *testing.T) {
		l := newList(t, kv.NewMemory(), WithIDFunc(seqIDs()))
		add(t, l, "1")
		add(t, l, "2")
		add(t, l, "3")
		require.Equal(t, []string{"a", "b", "c"}, ids(l.Items()))

		require.NoError(t, l.DeleteTodo("b"))
		assert.Equal(t, []string{"a", "c"}, ids(l.Items()))
	})

	t.Run("missing id is an idempotent no-op that still writes", func(t *testing.T) {
		store := kv.NewMemory()
		l := newList(t, store, WithIDFunc(seqIDs()))
		add(t, l, "1")
		before, _, _ := store.Get(DefaultKey)
		writes := store.Writes()

		require.NoError(t, l.DeleteTodo("zzz"))
		require.NoError(t, l.DeleteTodo("zzz"))
		after, _, _ := store.Get(DefaultKey)
		assert.Equal(t, before, after)
		assert.Equal(t, writes+2, store.Writes())
		assert.Equal(t, []string{"a"}, ids(l.Items()))
	})
}

func TestVisibility(t *testing.T) {
	l := newList(t, kv.NewMemory(), WithIDFunc(seqIDs()))
	add(t, l, "pending")
	add(t, l, "done")
	_, err := l.ToggleCompleted("b")
	require.NoError(t, err)

	assert.False(t, l.ShowCompleted())
	assert.Equal(t, []string{"a"}, ids(l.VisibleItems()))

	assert.True(t, l.ToggleVisibility())
	assert.Equal(t, []string{"b"}, ids(l.VisibleItems()))

	assert.False(t, l.ToggleVisibility())

	t.Run("each item is visible in exactly one view", func(t *testing.T) {
		for _, it := range l.Items() {
			inPending := contains(l.VisibleItems(), it.ID)
			l.ToggleVisibility()
			inDone := contains(l.VisibleItems(), it.ID)
			l.ToggleVisibility()

			assert.NotEqual(t, inPending, inDone, it.ID)
			assert.Equal(t, it.IsCompleted, inDone, it.ID)
		}
	})

	t.Run("toggling visibility does not persist", func(t *testing.T) {
		store := kv.NewMemory()
		l := newList(t, store)
		writes := store.Writes()
		l.ToggleVisibility()
		assert.Equal(t, writes, store.Writes())
	})
}

func contains(items []model.Item, id string) bool {
	for _, it := range items {
		if it.ID == id {
			return true
		}
	}
	return false
}

func TestStatsAndLookup(t *testing.T) {
	l := newList(t, kv.NewMemory(), WithIDFunc(func() func() string {
		next := []string{"abc1", "abc2", "xyz"}
		return func() string {
			id := next[0]
			next = next[1:]
			return id
		}
	}()))
	add(t, l, "1")
	add(t, l, "2")
	add(t, l, "3")
	_, err := l.ToggleCompleted("xyz")
	require.NoError(t, err)

	done, pending := l.Stats()
	assert.Equal(t, 1, done)
	assert.Equal(t, 2, pending)

	tests := []struct {
		ref  string
		want string
		err  error
	}{
		{ref: "abc1", want: "abc1"},
		{ref: "x", want: "xyz"},
		{ref: "abc", err: ErrAmbiguousID},
		{ref: "nope", err: ErrNotFound},
		{ref: "", err: ErrNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.ref, func(t *testing.T) {
			it, err := l.Lookup(tt.ref)
			if tt.err != nil {
				assert.ErrorIs(t, err, tt.err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, it.ID)
		})
	}
}

func TestPersistenceErrors(t *testing.T) {
	store := kv.NewMemory()
	l := newList(t, store, WithIDFunc(seqIDs()))
	add(t, l, "kept")

	store.FailWrites(true)
	it, err := l.AddTodo()
	assert.ErrorIs(t, err, ErrEmptyContent, "validation runs before any write")

	l.UpdateDraft("diverged")
	it, err = l.AddTodo()
	require.Error(t, err)
	assert.True(t, IsPersistence(err))
	assert.ErrorIs(t, err, kv.ErrWriteFailed)
	var pe *PersistenceError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, "set", pe.Op)
	assert.Equal(t, DefaultKey, pe.Key)

	assert.Equal(t, "b", it.ID, "item is returned with the error")
	assert.Equal(t, []string{"a", "b"}, ids(l.Items()), "in-memory state stays authoritative")
	assert.True(t, l.Dirty())

	store.FailWrites(false)
	_, err = l.ToggleCompleted("a")
	require.NoError(t, err)
	assert.False(t, l.Dirty())

	fresh := newList(t, store)
	assert.Equal(t, l.Items(), fresh.Items(), "next mutation rewrites everything")
}

type failingGet struct{ kv.Store }

func (failingGet) Get(string) (string, bool, error) { return "", false, errors.New("disk gone") }

func TestInitializeReadFailure(t *testing.T) {
	l := New(failingGet{kv.NewMemory()})
	err := l.Initialize()
	require.Error(t, err)
	assert.True(t, IsPersistence(err))
	assert.Empty(t, l.Items())
}

func TestRoundTrip(t *testing.T) {
	backends := map[string]func(t *testing.T) kv.Store{
		"memory": func(t *testing.T) kv.Store { return kv.NewMemory() },
		"json": func(t *testing.T) kv.Store {
			s, err := jsonstore.New(t.TempDir())
			require.NoError(t, err)
			return s
		},
		"sqlite": func(t *testing.T) kv.Store {
			s, err := sqlitestore.Open(filepath.Join(t.TempDir(), "tada.db"))
			require.NoError(t, err)
			t.Cleanup(func() { _ = s.Close() })
			return s
		},
	}
	for name, open := range backends {
		t.Run(name, func(t *testing.T) {
			store := open(t)
			l := newList(t, store)
			a := add(t, l, "buy milk")
			b := add(t, l, "call mom")
			c := add(t, l, "water plants")
			_, err := l.ToggleCompleted(a.ID)
			require.NoError(t, err)
			require.NoError(t, l.DeleteTodo(b.ID))
			_, err = l.ToggleCompleted(c.ID)
			require.NoError(t, err)
			_, err = l.ToggleCompleted(c.ID)
			require.NoError(t, err)

			fresh := newList(t, store)
			assert.Equal(t, l.Items(), fresh.Items())
			assert.Equal(t, []model.Item{
				{ID: a.ID, Content: "buy milk", IsCompleted: true},
				{ID: c.ID, Content: "water plants"},
			}, fresh.Items())
		})
	}
}

// Package todo holds the todo list state machine and keeps it in lockstep
// with a kv.Store.
//
// Every mutation (add, toggle, delete) rewrites the full list under one key.
// The store is read once, in Initialize. A List is not safe for concurrent
// use; each surface owns its own.
package todo

import (
	"errors"
	"io"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/Makepad-fr/tada/internal/kv"
	"github.com/Makepad-fr/tada/internal/model"
)

// DefaultKey is the storage key holding the serialized list.
const DefaultKey = "todos"

// List is the in-memory todo list plus its view flag and input draft.
type List struct {
	store kv.Store
	key   string
	newID func() string
	log   logrus.FieldLogger

	items         []model.Item
	showCompleted bool
	draft         string
	dirty         bool
}

// Option configures a List.
type Option func(*List)

// WithKey overrides the storage key.
func WithKey(key string) Option {
	return func(l *List) { l.key = key }
}

// WithIDFunc overrides the id generator.
func WithIDFunc(fn func() string) Option {
	return func(l *List) { l.newID = fn }
}

// WithLogger sets the logger for hydrate and write-through events.
func WithLogger(log logrus.FieldLogger) Option {
	return func(l *List) { l.log = log }
}

// New returns an empty List backed by store. Call Initialize to hydrate it.
func New(store kv.Store, opts ...Option) *List {
	l := &List{
		store: store,
		key:   DefaultKey,
		newID: uuid.NewString,
	}
	for _, o := range opts {
		o(l)
	}
	if l.log == nil {
		quiet := logrus.New()
		quiet.SetOutput(io.Discard)
		l.log = quiet
	}
	l.log = l.log.WithField("key", l.key)
	return l
}

// Initialize hydrates the list from the store. An absent key is initialized
// to an empty array. A malformed value is logged and ignored, leaving the
// list empty; the value is overwritten by the next mutation.
func (l *List) Initialize() error {
	l.items = nil
	l.dirty = false

	raw, ok, err := l.store.Get(l.key)
	if err != nil {
		l.log.WithError(err).Warn("read failed, starting with an empty list")
		return &PersistenceError{Op: "get", Key: l.key, Err: err}
	}
	// A JSON null counts as absent.
	if !ok || strings.TrimSpace(raw) == "null" {
		l.log.Debug("no persisted list, writing an empty one")
		return l.persist()
	}

	items, err := decodeItems(raw)
	if err != nil {
		l.log.WithError(err).Warn("persisted list is malformed, starting with an empty list")
		return nil
	}
	l.items = items
	l.log.WithField("count", len(items)).Debug("hydrated")
	return nil
}

// UpdateDraft replaces the pending input text. Nothing is persisted.
func (l *List) UpdateDraft(text string) { l.draft = text }

// Draft is the pending input text.
func (l *List) Draft() string { return l.draft }

// AddTodo commits the draft as a new item and clears the draft. An empty
// draft yields ErrEmptyContent and changes nothing. The content is not
// trimmed.
func (l *List) AddTodo() (model.Item, error) {
	if l.draft == "" {
		return model.Item{}, ErrEmptyContent
	}
	it := model.Item{ID: l.newID(), Content: l.draft}
	l.items = append(l.items, it)
	l.draft = ""
	return it, l.persist()
}

// ToggleCompleted flips the completion flag of the first item with id.
func (l *List) ToggleCompleted(id string) (model.Item, error) {
	i := l.indexOf(id)
	if i < 0 {
		return model.Item{}, ErrNotFound
	}
	l.items[i].IsCompleted = !l.items[i].IsCompleted
	return l.items[i], l.persist()
}

// DeleteTodo removes every item with id. Deleting a missing id is a no-op
// that still rewrites the unchanged list.
func (l *List) DeleteTodo(id string) error {
	kept := make([]model.Item, 0, len(l.items))
	for _, it := range l.items {
		if it.ID != id {
			kept = append(kept, it)
		}
	}
	l.items = kept
	return l.persist()
}

// ToggleVisibility flips between the pending and the finished view and
// returns the new value of ShowCompleted.
func (l *List) ToggleVisibility() bool {
	l.showCompleted = !l.showCompleted
	return l.showCompleted
}

// ShowCompleted reports whether the finished view is active.
func (l *List) ShowCompleted() bool { return l.showCompleted }

// VisibleItems returns the finished items when ShowCompleted is set and the
// pending ones otherwise. There is no view with both.
func (l *List) VisibleItems() []model.Item {
	out := make([]model.Item, 0, len(l.items))
	for _, it := range l.items {
		if it.IsCompleted == l.showCompleted {
			out = append(out, it)
		}
	}
	return out
}

// Items returns a copy of every item in insertion order.
func (l *List) Items() []model.Item {
	out := make([]model.Item, len(l.items))
	copy(out, l.items)
	return out
}

// Stats counts finished and pending items.
func (l *List) Stats() (done, pending int) {
	for _, it := range l.items {
		if it.IsCompleted {
			done++
		} else {
			pending++
		}
	}
	return
}

// Lookup resolves an exact id or a unique id prefix.
func (l *List) Lookup(ref string) (model.Item, error) {
	if ref == "" {
		return model.Item{}, ErrNotFound
	}
	if i := l.indexOf(ref); i >= 0 {
		return l.items[i], nil
	}
	var (
		found model.Item
		n     int
	)
	for _, it := range l.items {
		if strings.HasPrefix(it.ID, ref) {
			found = it
			n++
		}
	}
	switch n {
	case 0:
		return model.Item{}, ErrNotFound
	case 1:
		return found, nil
	}
	return model.Item{}, ErrAmbiguousID
}

// Dirty reports whether the last write-through failed.
func (l *List) Dirty() bool { return l.dirty }

func (l *List) indexOf(id string) int {
	for i, it := range l.items {
		if it.ID == id {
			return i
		}
	}
	return -1
}

func (l *List) persist() error {
	raw, err := encodeItems(l.items)
	if err != nil {
		l.dirty = true
		return &PersistenceError{Op: "set", Key: l.key, Err: err}
	}
	if err := l.store.Set(l.key, raw); err != nil {
		l.dirty = true
		l.log.WithError(err).Warn("write-through failed, keeping in-memory state")
		return &PersistenceError{Op: "set", Key: l.key, Err: err}
	}
	if l.dirty {
		l.log.Info("store caught up after an earlier failed write")
	}
	l.dirty = false
	l.log.WithField("count", len(l.items)).Debug("persisted")
	return nil
}

// AsValidation unwraps a *ValidationError from err.
func AsValidation(err error) (*ValidationError, bool) {
	var ve *ValidationError
	ok := errors.As(err, &ve)
	return ve, ok
}

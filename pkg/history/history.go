// Package history implements a bounded, linear undo/redo timeline of immutable snapshots.
package history

import "github.com/aretw0/pageforge/pkg/domain"

// Timeline holds snapshots and a cursor pointing at the current one.
// Entries after the cursor can be redone, entries before it undone.
//
// A Timeline is not safe for concurrent use; callers serialize access
// (see session.Manager).
type Timeline[T any] struct {
	entries []T
	cursor  int
	limit   int
}

// Option configures a Timeline.
type Option func(*options)

type options struct {
	limit int
}

// WithLimit bounds the number of entries kept. Values below 1 are ignored.
func WithLimit(limit int) Option {
	return func(o *options) {
		if limit > 0 {
			o.limit = limit
		}
	}
}

// New creates a timeline seeded with initial.
func New[T any](initial T, opts ...Option) *Timeline[T] {
	o := options{limit: domain.MaxHistory}
	for _, opt := range opts {
		opt(&o)
	}
	return &Timeline[T]{
		entries: []T{initial},
		limit:   o.limit,
	}
}

// Current returns the entry under the cursor.
func (t *Timeline[T]) Current() T {
	return t.entries[t.cursor]
}

// Commit discards any redoable entries, appends next and moves the cursor onto it.
// The oldest entries are dropped once the limit is exceeded.
func (t *Timeline[T]) Commit(next T) {
	t.entries = append(t.entries[:t.cursor+1:t.cursor+1], next)
	if over := len(t.entries) - t.limit; over > 0 {
		t.entries = append([]T(nil), t.entries[over:]...)
	}
	t.cursor = len(t.entries) - 1
}

// CommitSkippingHistory replaces the current entry in place without creating an undo
// point. Redoable entries are kept.
func (t *Timeline[T]) CommitSkippingHistory(next T) {
	t.entries[t.cursor] = next
}

// Undo moves the cursor back one entry. At the first entry it does nothing and
// returns false.
func (t *Timeline[T]) Undo() (T, bool) {
	if !t.CanUndo() {
		return t.Current(), false
	}
	t.cursor--
	return t.Current(), true
}

// Redo moves the cursor forward one entry. At the last entry it does nothing and
// returns false.
func (t *Timeline[T]) Redo() (T, bool) {
	if !t.CanRedo() {
		return t.Current(), false
	}
	t.cursor++
	return t.Current(), true
}

func (t *Timeline[T]) CanUndo() bool { return t.cursor > 0 }

func (t *Timeline[T]) CanRedo() bool { return t.cursor < len(t.entries)-1 }

// Len returns the number of entries in the timeline.
func (t *Timeline[T]) Len() int { return len(t.entries) }

// Cursor returns the index of the current entry.
func (t *Timeline[T]) Cursor() int { return t.cursor }

// Limit returns the maximum number of entries kept.
func (t *Timeline[T]) Limit() int { return t.limit }

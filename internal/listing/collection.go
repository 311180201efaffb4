// Package listing holds the in-memory collection behind one listing view.
//
// A Collection is the only mutation surface for a view's rows. Local
// changes (toggles, patches, removals) are optimistic: they survive only
// until the next ReplaceAll, which lands a fresh server fetch and discards
// every prior local change. After Close, all mutations are ignored so late
// responses for a view that no longer exists cannot resurrect it.
package listing

import (
	"context"
	"sync"
)

type Entity interface {
	EntityID() int64
}

type Collection[T Entity] struct {
	mu     sync.RWMutex
	items  []T
	toggle func(T) T
	closed bool
}

// New returns an empty collection. toggle flips the kind's status field and may be nil
// for kinds without one.
func New[T Entity](toggle func(T) T) *Collection[T] {
	return &Collection[T]{toggle: toggle}
}

// ReplaceAll reconciles with server truth. It reports false if the view was closed.
func (c *Collection[T]) ReplaceAll(items []T) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return false
	}
	c.items = append(make([]T, 0, len(items)), items...)
	return true
}

// ApplyToggle flips the status of the matching row locally. Nothing is persisted.
func (c *Collection[T]) ApplyToggle(id int64) bool {
	if c.toggle == nil {
		return false
	}
	return c.ApplyPatch(id, c.toggle)
}

// ApplyPatch replaces the matching row with patch(row).
func (c *Collection[T]) ApplyPatch(id int64, patch func(T) T) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return false
	}
	for i, it := range c.items {
		if it.EntityID() == id {
			c.items[i] = patch(it)
			return true
		}
	}
	return false
}

// ApplyRemoval calls remove and drops the row only once it succeeded.
// On failure the collection is untouched and the error is returned as is.
func (c *Collection[T]) ApplyRemoval(ctx context.Context, id int64, remove func(context.Context, int64) error) error {
	if err := remove(ctx, id); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil
	}
	for i, it := range c.items {
		if it.EntityID() == id {
			c.items = append(c.items[:i:i], c.items[i+1:]...)
			break
		}
	}
	return nil
}

// Append adds a row created through a form without waiting for a refetch.
func (c *Collection[T]) Append(item T) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return false
	}
	c.items = append(c.items, item)
	return true
}

func (c *Collection[T]) Find(id int64) (T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, it := range c.items {
		if it.EntityID() == id {
			return it, true
		}
	}
	var zero T
	return zero, false
}

// Items returns a copy of the current rows.
func (c *Collection[T]) Items() []T {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append(make([]T, 0, len(c.items)), c.items...)
}

func (c *Collection[T]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

// Close ends the view's lifetime and drops its rows.
func (c *Collection[T]) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	c.items = nil
}

func (c *Collection[T]) Closed() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.closed
}

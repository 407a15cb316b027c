package memory

import (
	"slices"
	"sync"

	"github.com/oksasatya/onesteptask/internal/domain/repository"
)

// collection is an id-keyed set of values guarded by its own lock.
// Values go in and come out through clone so callers never share state
// with the stored copy.
type collection[T any] struct {
	mu     sync.RWMutex
	nextID int64
	items  map[int64]T
	clone  func(T) T
}

func newCollection[T any](clone func(T) T) *collection[T] {
	if clone == nil {
		clone = func(v T) T { return v }
	}
	return &collection[T]{nextID: 1, items: make(map[int64]T), clone: clone}
}

func (c *collection[T]) get(id int64) (*T, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	v, ok := c.items[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	out := c.clone(v)
	return &out, nil
}

// find returns the lowest-id value matching pred.
func (c *collection[T]) find(pred func(T) bool) (*T, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, id := range c.sortedIDs() {
		if v := c.items[id]; pred(v) {
			out := c.clone(v)
			return &out, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (c *collection[T]) list(pred func(T) bool) []T {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]T, 0, len(c.items))
	for _, id := range c.sortedIDs() {
		v := c.items[id]
		if pred == nil || pred(v) {
			out = append(out, c.clone(v))
		}
	}
	return out
}

// insert runs check against every stored value, then stores build(id).
// The id is only consumed when the insert succeeds.
func (c *collection[T]) insert(check func(T) error, build func(id int64) T) (T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if check != nil {
		for _, v := range c.items {
			if err := check(v); err != nil {
				var zero T
				return zero, err
			}
		}
	}
	id := c.nextID
	v := c.clone(build(id))
	c.items[id] = v
	c.nextID++
	return c.clone(v), nil
}

// update applies fn to a copy of the stored value and replaces it wholesale
// when fn succeeds. A failing fn leaves the stored value untouched.
func (c *collection[T]) update(id int64, fn func(*T) error) (*T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	cur, ok := c.items[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	next := c.clone(cur)
	if err := fn(&next); err != nil {
		return nil, err
	}
	c.items[id] = c.clone(next)
	return &next, nil
}

func (c *collection[T]) remove(id int64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.items[id]; !ok {
		return false
	}
	delete(c.items, id)
	return true
}

func (c *collection[T]) sortedIDs() []int64 {
	ids := make([]int64, 0, len(c.items))
	for id := range c.items {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

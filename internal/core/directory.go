package core

import (
	"fmt"
	"slices"
	"sync"
)

// registry is the in-memory id-keyed store shared by the record directories.
// Ids are assigned as max+1 and never handed out twice within a process.
type registry[T any] struct {
	mu     sync.RWMutex
	entity string
	items  map[int]T
	lastID int
	idOf   func(T) int
}

func newRegistry[T any](entity string, idOf func(T) int) *registry[T] {
	return &registry[T]{entity: entity, items: map[int]T{}, idOf: idOf}
}

func (r *registry[T]) find(id int) (T, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	v, ok := r.items[id]
	if !ok {
		var zero T
		return zero, notFound(r.entity, id)
	}
	return v, nil
}

func (r *registry[T]) add(build func(id int) T) T {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lastID++
	v := build(r.lastID)
	r.items[r.lastID] = v
	return v
}

func (r *registry[T]) insert(v T) error {
	id := r.idOf(v)
	if id <= 0 {
		return fmt.Errorf("%s id %d must be positive: %w", r.entity, id, ErrMalformedRow)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.items[id]; exists {
		return fmt.Errorf("duplicate %s id %d: %w", r.entity, id, ErrMalformedRow)
	}
	r.items[id] = v
	if id > r.lastID {
		r.lastID = id
	}
	return nil
}

func (r *registry[T]) reserve(id int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lastID = max(r.lastID, id)
}

func (r *registry[T]) delete(id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[id]; !ok {
		return notFound(r.entity, id)
	}
	delete(r.items, id)
	return nil
}

func (r *registry[T]) list() []T {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]T, 0, len(r.items))
	for _, v := range r.items {
		out = append(out, v)
	}
	slices.SortFunc(out, func(a, b T) int { return r.idOf(a) - r.idOf(b) })
	return out
}

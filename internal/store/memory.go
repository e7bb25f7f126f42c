package store

import (
	"context"
	"sync"
)

// Memory keeps entities in a process-local map. Insertion order is preserved
// for List. The id counter is monotonic and survives deletes.
type Memory[T any] struct {
	mu     sync.RWMutex
	nextID int64
	byID   map[int64]T
	order  []int64
}

// NewMemory constructs an empty in-memory store.
func NewMemory[T any]() *Memory[T] {
	return &Memory[T]{nextID: 1, byID: make(map[int64]T)}
}

// Create implements Store.
func (m *Memory[T]) Create(_ context.Context, build func(id int64) T) (T, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	id := m.nextID
	m.nextID++
	entity := build(id)
	m.byID[id] = entity
	m.order = append(m.order, id)
	return entity, nil
}

// Get implements Store.
func (m *Memory[T]) Get(_ context.Context, id int64) (T, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	entity, ok := m.byID[id]
	if !ok {
		var zero T
		return zero, ErrNotFound
	}
	return entity, nil
}

// List implements Store.
func (m *Memory[T]) List(_ context.Context) ([]T, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := make([]T, 0, len(m.byID))
	for _, id := range m.order {
		if entity, ok := m.byID[id]; ok {
			result = append(result, entity)
		}
	}
	return result, nil
}

// Update implements Store.
func (m *Memory[T]) Update(_ context.Context, id int64, fn func(T) (T, error)) (T, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	entity, ok := m.byID[id]
	if !ok {
		var zero T
		return zero, ErrNotFound
	}
	updated, err := fn(entity)
	if err != nil {
		var zero T
		return zero, err
	}
	m.byID[id] = updated
	return updated, nil
}

// Delete implements Store.
func (m *Memory[T]) Delete(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.byID[id]; !ok {
		return ErrNotFound
	}
	delete(m.byID, id)
	for i, candidate := range m.order {
		if candidate == id {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	return nil
}

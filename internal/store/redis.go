package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"

	"github.com/redis/go-redis/v9"
)

// Redis keeps entities as JSON values in a hash, with the id counter in a
// separate key so identifiers stay monotonic across deletes. It implements
// the same transient contract as Memory; it exists so the backend can be
// swapped without touching the services.
type Redis[T any] struct {
	client *redis.Client
	hash   string
	seq    string
}

// NewRedis constructs a Redis-backed store under the given namespace,
// e.g. "khohang:items".
func NewRedis[T any](client *redis.Client, namespace string) *Redis[T] {
	return &Redis[T]{
		client: client,
		hash:   namespace,
		seq:    namespace + ":next_id",
	}
}

// Create implements Store.
func (r *Redis[T]) Create(ctx context.Context, build func(id int64) T) (T, error) {
	var zero T
	id, err := r.client.Incr(ctx, r.seq).Result()
	if err != nil {
		return zero, fmt.Errorf("store: next id: %w", err)
	}
	entity := build(id)
	payload, err := json.Marshal(entity)
	if err != nil {
		return zero, fmt.Errorf("store: marshal: %w", err)
	}
	if err := r.client.HSet(ctx, r.hash, strconv.FormatInt(id, 10), payload).Err(); err != nil {
		return zero, fmt.Errorf("store: set: %w", err)
	}
	return entity, nil
}

// Get implements Store.
func (r *Redis[T]) Get(ctx context.Context, id int64) (T, error) {
	var zero T
	payload, err := r.client.HGet(ctx, r.hash, strconv.FormatInt(id, 10)).Bytes()
	if err == redis.Nil {
		return zero, ErrNotFound
	}
	if err != nil {
		return zero, fmt.Errorf("store: get: %w", err)
	}
	var entity T
	if err := json.Unmarshal(payload, &entity); err != nil {
		return zero, fmt.Errorf("store: unmarshal: %w", err)
	}
	return entity, nil
}

// List implements Store. Entities come back in ascending id order, which
// matches insertion order because ids are assigned sequentially.
func (r *Redis[T]) List(ctx context.Context) ([]T, error) {
	raw, err := r.client.HGetAll(ctx, r.hash).Result()
	if err != nil {
		return nil, fmt.Errorf("store: list: %w", err)
	}
	ids := make([]int64, 0, len(raw))
	byID := make(map[int64]string, len(raw))
	for field, payload := range raw {
		id, err := strconv.ParseInt(field, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("store: corrupt hash field %q", field)
		}
		ids = append(ids, id)
		byID[id] = payload
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	result := make([]T, 0, len(ids))
	for _, id := range ids {
		var entity T
		if err := json.Unmarshal([]byte(byID[id]), &entity); err != nil {
			return nil, fmt.Errorf("store: unmarshal id %d: %w", id, err)
		}
		result = append(result, entity)
	}
	return result, nil
}

// Update implements Store.
func (r *Redis[T]) Update(ctx context.Context, id int64, fn func(T) (T, error)) (T, error) {
	var zero T
	entity, err := r.Get(ctx, id)
	if err != nil {
		return zero, err
	}
	updated, err := fn(entity)
	if err != nil {
		return zero, err
	}
	payload, err := json.Marshal(updated)
	if err != nil {
		return zero, fmt.Errorf("store: marshal: %w", err)
	}
	if err := r.client.HSet(ctx, r.hash, strconv.FormatInt(id, 10), payload).Err(); err != nil {
		return zero, fmt.Errorf("store: set: %w", err)
	}
	return updated, nil
}

// Delete implements Store.
func (r *Redis[T]) Delete(ctx context.Context, id int64) error {
	removed, err := r.client.HDel(ctx, r.hash, strconv.FormatInt(id, 10)).Result()
	if err != nil {
		return fmt.Errorf("store: delete: %w", err)
	}
	if removed == 0 {
		return ErrNotFound
	}
	return nil
}

package kvstore

import (
	"context"
	"errors"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestStore(t *testing.T) *RedisStore {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewRedisStore(client)
}

func TestRedisStore_SetGet(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	type record struct {
		Name  string `json:"name"`
		Count int    `json:"count"`
	}

	if err := store.Set(ctx, "test:1", record{Name: "alpha", Count: 3}); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	var got record
	if err := store.Get(ctx, "test:1", &got); err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.Name != "alpha" || got.Count != 3 {
		t.Errorf("unexpected record: %+v", got)
	}
}

func TestRedisStore_GetMissingKey(t *testing.T) {
	store := newTestStore(t)

	var dest string
	err := store.Get(context.Background(), "missing", &dest)
	if !errors.Is(err, ErrKeyNotFound) {
		t.Errorf("expected ErrKeyNotFound, got %v", err)
	}
}

func TestRedisStore_GetByPrefix(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	for _, key := range []string{"user:1", "user:2", "user:3"} {
		if err := store.Set(ctx, key, key); err != nil {
			t.Fatalf("Set failed: %v", err)
		}
	}
	// A key outside the prefix must not appear in the scan.
	if err := store.Set(ctx, "scholarship:1", "other"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	values, err := store.GetByPrefix(ctx, "user:")
	if err != nil {
		t.Fatalf("GetByPrefix failed: %v", err)
	}
	if len(values) != 3 {
		t.Errorf("expected 3 values, got %d", len(values))
	}
}

func TestRedisStore_GetByPrefixEmpty(t *testing.T) {
	store := newTestStore(t)

	values, err := store.GetByPrefix(context.Background(), "contribution:")
	if err != nil {
		t.Fatalf("GetByPrefix failed: %v", err)
	}
	if len(values) != 0 {
		t.Errorf("expected no values, got %d", len(values))
	}
}

func TestRedisStore_Delete(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	if err := store.Set(ctx, "test:1", "value"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if err := store.Delete(ctx, "test:1"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	var dest string
	if err := store.Get(ctx, "test:1", &dest); !errors.Is(err, ErrKeyNotFound) {
		t.Errorf("expected ErrKeyNotFound after delete, got %v", err)
	}
}

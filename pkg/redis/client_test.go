package redis

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

type stubStore struct {
	values map[string]string
}

func (s *stubStore) Ping(ctx context.Context) *redis.StatusCmd {
	return redis.NewStatusResult("PONG", nil)
}

func (s *stubStore) Set(ctx context.Context, key string, value any, ttl time.Duration) *redis.StatusCmd {
	if s.values == nil {
		s.values = map[string]string{}
	}
	s.values[key] = value.(string)
	return redis.NewStatusResult("OK", nil)
}

func (s *stubStore) Get(ctx context.Context, key string) *redis.StringCmd {
	if val, ok := s.values[key]; ok {
		return redis.NewStringResult(val, nil)
	}
	return redis.NewStringResult("", redis.Nil)
}

func (s *stubStore) Exists(ctx context.Context, keys ...string) *redis.IntCmd {
	var n int64
	for _, key := range keys {
		if _, ok := s.values[key]; ok {
			n++
		}
	}
	return redis.NewIntResult(n, nil)
}

func (s *stubStore) Del(ctx context.Context, keys ...string) *redis.IntCmd {
	var n int64
	for _, key := range keys {
		if _, ok := s.values[key]; ok {
			delete(s.values, key)
			n++
		}
	}
	return redis.NewIntResult(n, nil)
}

func TestKeyNamespacing(t *testing.T) {
	t.Parallel()

	c := &Client{}
	if got := c.CartKey("sess-1"); got != "gm:cart:sess-1" {
		t.Fatalf("unexpected cart key %q", got)
	}
	if got := c.RevocationKey("tok-1"); got != "gm:revoked:tok-1" {
		t.Fatalf("unexpected revocation key %q", got)
	}
}

func TestSetGetDelRoundTrip(t *testing.T) {
	t.Parallel()

	c := &Client{store: &stubStore{}}
	ctx := context.Background()

	key := c.CartKey("sess-2")
	if err := c.Set(ctx, key, `[{"qty":1}]`, 0); err != nil {
		t.Fatalf("set: %v", err)
	}

	val, err := c.Get(ctx, key)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if val != `[{"qty":1}]` {
		t.Fatalf("unexpected value %q", val)
	}

	ok, err := c.Exists(ctx, key)
	if err != nil || !ok {
		t.Fatalf("expected key to exist, ok=%v err=%v", ok, err)
	}

	if err := c.Del(ctx, key); err != nil {
		t.Fatalf("del: %v", err)
	}
	if _, err := c.Get(ctx, key); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestUninitializedClient(t *testing.T) {
	t.Parallel()

	var c Client
	if err := c.Set(context.Background(), "k", "v", 0); err == nil {
		t.Fatal("expected error from uninitialized client")
	}
}

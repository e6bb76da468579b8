package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/i9team/guilherme-ecommerce/pkg/redis"
)

// Storage persists cart snapshots keyed by session id. Load on a session
// with no stored cart returns an empty cart, not an error.
type Storage interface {
	Load(ctx context.Context, sessionID string) (*Cart, error)
	Save(ctx context.Context, sessionID string, cart *Cart) error
	Delete(ctx context.Context, sessionID string) error
}

// Carts outlive checkout drafts; sessions that never return eventually fall
// off on their own.
const cartTTL = 30 * 24 * time.Hour

type redisStorage struct {
	client *redis.Client
}

// NewRedisStorage persists carts as JSON blobs in Redis.
func NewRedisStorage(client *redis.Client) (Storage, error) {
	if client == nil {
		return nil, fmt.Errorf("redis client required")
	}
	return &redisStorage{client: client}, nil
}

func (s *redisStorage) Load(ctx context.Context, sessionID string) (*Cart, error) {
	raw, err := s.client.Get(ctx, s.client.CartKey(sessionID))
	if err != nil {
		if errors.Is(err, redis.ErrNotFound) {
			return &Cart{}, nil
		}
		return nil, fmt.Errorf("load cart: %w", err)
	}
	var cart Cart
	if err := json.Unmarshal([]byte(raw), &cart); err != nil {
		return nil, fmt.Errorf("decode cart: %w", err)
	}
	return &cart, nil
}

func (s *redisStorage) Save(ctx context.Context, sessionID string, cart *Cart) error {
	raw, err := json.Marshal(cart)
	if err != nil {
		return fmt.Errorf("encode cart: %w", err)
	}
	if err := s.client.Set(ctx, s.client.CartKey(sessionID), string(raw), cartTTL); err != nil {
		return fmt.Errorf("save cart: %w", err)
	}
	return nil
}

func (s *redisStorage) Delete(ctx context.Context, sessionID string) error {
	if err := s.client.Del(ctx, s.client.CartKey(sessionID)); err != nil {
		return fmt.Errorf("delete cart: %w", err)
	}
	return nil
}

// MemoryStorage is the in-process Storage used by tests and local runs
// without Redis.
type MemoryStorage struct {
	mu    sync.Mutex
	carts map[string][]byte

	FailSaves bool
}

// NewMemoryStorage builds an empty in-memory store.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{carts: map[string][]byte{}}
}

func (s *MemoryStorage) Load(_ context.Context, sessionID string) (*Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	raw, ok := s.carts[sessionID]
	if !ok {
		return &Cart{}, nil
	}
	var cart Cart
	if err := json.Unmarshal(raw, &cart); err != nil {
		return nil, err
	}
	return &cart, nil
}

func (s *MemoryStorage) Save(_ context.Context, sessionID string, cart *Cart) error {
	if s.FailSaves {
		return errors.New("storage unavailable")
	}
	raw, err := json.Marshal(cart)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.carts[sessionID] = raw
	return nil
}

func (s *MemoryStorage) Delete(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.carts, sessionID)
	return nil
}

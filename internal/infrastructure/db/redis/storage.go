package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/shaggymission/adoption-web/internal/core/ports"
)

// Storage keeps per-session items in Redis.
//
// Key format: session:<sid>:item:<key>. The set session:<sid>:keys indexes
// the item keys so Clear can drop a whole session. Items without their own
// ttl live as long as the session.
type Storage struct {
	client     *redis.Client
	sessionTTL time.Duration
}

func NewStorage(client *redis.Client, sessionTTL time.Duration) *Storage {
	return &Storage{client: client, sessionTTL: sessionTTL}
}

var _ ports.Storage = (*Storage)(nil)

func (s *Storage) GetItem(ctx context.Context, sid, key string) (string, error) {
	v, err := s.client.Get(ctx, itemKey(sid, key)).Result()
	if errors.Is(err, redis.Nil) {
		return "", ports.ErrItemNotFound
	}
	if err != nil {
		return "", fmt.Errorf("session get %s: %w", key, err)
	}
	return v, nil
}

func (s *Storage) SetItem(ctx context.Context, sid, key, value string, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = s.sessionTTL
	}
	_, err := s.client.TxPipelined(ctx, func(p redis.Pipeliner) error {
		p.Set(ctx, itemKey(sid, key), value, ttl)
		p.SAdd(ctx, indexKey(sid), key)
		if s.sessionTTL > 0 {
			p.Expire(ctx, indexKey(sid), s.sessionTTL)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("session set %s: %w", key, err)
	}
	return nil
}

func (s *Storage) RemoveItem(ctx context.Context, sid, key string) error {
	_, err := s.client.TxPipelined(ctx, func(p redis.Pipeliner) error {
		p.Del(ctx, itemKey(sid, key))
		p.SRem(ctx, indexKey(sid), key)
		return nil
	})
	if err != nil {
		return fmt.Errorf("session remove %s: %w", key, err)
	}
	return nil
}

func (s *Storage) Clear(ctx context.Context, sid string) error {
	keys, err := s.client.SMembers(ctx, indexKey(sid)).Result()
	if err != nil {
		return fmt.Errorf("session clear: %w", err)
	}
	del := make([]string, 0, len(keys)+1)
	for _, k := range keys {
		del = append(del, itemKey(sid, k))
	}
	del = append(del, indexKey(sid))
	if err := s.client.Del(ctx, del...).Err(); err != nil {
		return fmt.Errorf("session clear: %w", err)
	}
	return nil
}

func itemKey(sid, key string) string {
	return fmt.Sprintf("session:%s:item:%s", sid, key)
}

func indexKey(sid string) string {
	return fmt.Sprintf("session:%s:keys", sid)
}

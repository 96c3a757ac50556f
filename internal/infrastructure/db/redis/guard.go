package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/shaggymission/adoption-web/internal/core/ports"
)

// defaultGuardTTL bounds how long a crashed request can hold a guard.
const defaultGuardTTL = 30 * time.Second

// SubmitGuard marks operations in flight per session using SETNX.
// Key format: inflight:<sid>:<operation>
type SubmitGuard struct {
	client *redis.Client
	ttl    time.Duration
}

// NewSubmitGuard creates a guard. ttl <= 0 uses defaultGuardTTL.
func NewSubmitGuard(client *redis.Client, ttl time.Duration) *SubmitGuard {
	if ttl <= 0 {
		ttl = defaultGuardTTL
	}
	return &SubmitGuard{client: client, ttl: ttl}
}

var _ ports.SubmitGuard = (*SubmitGuard)(nil)

func (g *SubmitGuard) Acquire(ctx context.Context, sid, op string) (bool, error) {
	ok, err := g.client.SetNX(ctx, guardKey(sid, op), "1", g.ttl).Result()
	if err != nil {
		return false, fmt.Errorf("guard acquire %s: %w", op, err)
	}
	return ok, nil
}

func (g *SubmitGuard) Release(ctx context.Context, sid, op string) error {
	if err := g.client.Del(ctx, guardKey(sid, op)).Err(); err != nil {
		return fmt.Errorf("guard release %s: %w", op, err)
	}
	return nil
}

func guardKey(sid, op string) string {
	return fmt.Sprintf("inflight:%s:%s", sid, op)
}

package memory

import (
	"context"
	"sync"
	"time"

	"github.com/shaggymission/adoption-web/internal/core/ports"
)

const defaultGuardTTL = 30 * time.Second

// SubmitGuard is an in-memory ports.SubmitGuard.
type SubmitGuard struct {
	mu    sync.Mutex
	holds map[string]time.Time
	ttl   time.Duration
	now   func() time.Time
}

func NewSubmitGuard(ttl time.Duration) *SubmitGuard {
	if ttl <= 0 {
		ttl = defaultGuardTTL
	}
	return &SubmitGuard{holds: make(map[string]time.Time), ttl: ttl, now: time.Now}
}

var _ ports.SubmitGuard = (*SubmitGuard)(nil)

func (g *SubmitGuard) Acquire(_ context.Context, sid, op string) (bool, error) {
	key := sid + ":" + op
	now := g.now()

	g.mu.Lock()
	defer g.mu.Unlock()
	if exp, held := g.holds[key]; held && now.Before(exp) {
		return false, nil
	}
	g.holds[key] = now.Add(g.ttl)
	return true, nil
}

func (g *SubmitGuard) Release(_ context.Context, sid, op string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.holds, sid+":"+op)
	return nil
}

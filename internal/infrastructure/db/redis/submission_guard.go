package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const guardTTL = 30 * time.Second

// SubmissionGuard holds a short-lived key while a submission is in flight so a
// double click cannot run the same signup twice. Keys expire on their own if
// the holder never releases them.
// Key format: guard:<scope>:<key>
type SubmissionGuard struct {
	client redis.Cmdable
	ttl    time.Duration
}

func NewSubmissionGuard(client redis.Cmdable) *SubmissionGuard {
	return &SubmissionGuard{client: client, ttl: guardTTL}
}

// Acquire reports false when key is already held.
func (g *SubmissionGuard) Acquire(ctx context.Context, scope, key string) (bool, error) {
	ok, err := g.client.SetNX(ctx, g.key(scope, key), "1", g.ttl).Result()
	if err != nil {
		return false, fmt.Errorf("submission guard: %w", err)
	}
	return ok, nil
}

func (g *SubmissionGuard) Release(ctx context.Context, scope, key string) error {
	return g.client.Del(ctx, g.key(scope, key)).Err()
}

func (g *SubmissionGuard) key(scope, key string) string {
	return fmt.Sprintf("guard:%s:%s", scope, key)
}

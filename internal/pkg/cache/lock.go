package cache

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Lock is a best-effort distributed lock on a single Redis key, used to keep
// overlapping cron invocations of batch jobs from running concurrently. The
// token guards Release against deleting a lock a later run re-acquired after
// this one's TTL lapsed.
type Lock struct {
	key   string
	token string
}

// NewLock creates a lock handle for the given key.
func NewLock(key string) *Lock {
	return &Lock{key: key, token: uuid.New().String()}
}

// Acquire tries to take the lock for at most ttl. Returns false when another
// holder owns the key.
func (l *Lock) Acquire(ctx context.Context, ttl time.Duration) (bool, error) {
	return GetClient().SetNX(ctx, l.key, l.token, ttl).Result()
}

// Release frees the lock if this handle still owns it.
func (l *Lock) Release(ctx context.Context) error {
	const script = `
if redis.call("get", KEYS[1]) == ARGV[1] then
	return redis.call("del", KEYS[1])
end
return 0`
	err := GetClient().Eval(ctx, script, []string{l.key}, l.token).Err()
	if err == redis.Nil {
		return nil
	}
	return err
}

package lock

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/dipika-maharjan/tripwise-backend/internal/pkg/apperror"
	"github.com/dipika-maharjan/tripwise-backend/internal/pkg/logger"
)

// releaseScript deletes the key only if it still holds our token, so an
// expired lock re-acquired by someone else is never released by us.
var releaseScript = redis.NewScript(`
if redis.call("get", KEYS[1]) == ARGV[1] then
	return redis.call("del", KEYS[1])
end
return 0
`)

// RedisProvider implements Provider with SET NX PX. The TTL bounds the
// hold time so a crashed process cannot wedge a key forever.
type RedisProvider struct {
	client *redis.Client
	ttl    time.Duration
	prefix string
}

// NewRedisProvider creates a Redis-backed lock provider. ttl should
// comfortably exceed the longest admission (validation + pricing +
// persistence); 30s is a safe default.
func NewRedisProvider(client *redis.Client, ttl time.Duration) *RedisProvider {
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	return &RedisProvider{
		client: client,
		ttl:    ttl,
		prefix: "admission:",
	}
}

// TryAcquire sets the key with NX; an existing key means another
// admission holds it and the call fails with ErrHeld.
func (p *RedisProvider) TryAcquire(ctx context.Context, key string) (ReleaseFunc, error) {
	token := uuid.New().String()
	full := p.prefix + key

	ok, err := p.client.SetNX(ctx, full, token, p.ttl).Result()
	if err != nil {
		return nil, apperror.Internal(fmt.Errorf("acquire lock %q: %w", key, err))
	}
	if !ok {
		return nil, ErrHeld
	}

	release := func() {
		// Release must not inherit a cancelled request context.
		rctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := releaseScript.Run(rctx, p.client, []string{full}, token).Err(); err != nil {
			logger.L().Warn("failed to release admission lock",
				zap.String("key", key),
				zap.Error(err),
			)
		}
	}
	return release, nil
}

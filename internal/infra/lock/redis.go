package lock

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const defaultRetryInterval = 50 * time.Millisecond

// releaseScript удаляет ключ, только если он все еще принадлежит владельцу токена
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// RedisClient подмножество go-redis клиента, нужное блокировщику
type RedisClient interface {
	redis.Scripter
	SetNX(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.BoolCmd
}

// RedisLocker распределенная блокировка SET NX PX с токеном владельца
type RedisLocker struct {
	client        RedisClient
	ttl           time.Duration
	retryInterval time.Duration
}

// NewRedisLocker создает блокировщик на Redis.
// ttl ограничивает и время жизни ключа, и время ожидания блокировки.
func NewRedisLocker(client RedisClient, ttl time.Duration) *RedisLocker {
	return &RedisLocker{
		client:        client,
		ttl:           ttl,
		retryInterval: defaultRetryInterval,
	}
}

// Lock ждет освобождения ключа (venueID, date) не дольше ttl
func (l *RedisLocker) Lock(ctx context.Context, venueID int64, date time.Time) (Release, error) {
	key := lockName(venueID, date)
	token := uuid.NewString()

	waitCtx, cancel := context.WithTimeout(ctx, l.ttl)
	defer cancel()

	ticker := time.NewTicker(l.retryInterval)
	defer ticker.Stop()

	for {
		acquired, err := l.client.SetNX(waitCtx, key, token, l.ttl).Result()
		if err != nil && waitCtx.Err() == nil {
			return nil, fmt.Errorf("%w: redis key=%s: %v", ErrAcquire, key, err)
		}
		if acquired {
			return l.release(key, token), nil
		}

		select {
		case <-waitCtx.Done():
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			return nil, fmt.Errorf("%w: redis key=%s after %s", ErrTimeout, key, l.ttl)
		case <-ticker.C:
		}
	}
}

func (l *RedisLocker) release(key, token string) Release {
	return func(ctx context.Context) error {
		if err := releaseScript.Run(ctx, l.client, []string{key}, token).Err(); err != nil {
			return fmt.Errorf("%w: redis key=%s: %v", ErrRelease, key, err)
		}
		return nil
	}
}

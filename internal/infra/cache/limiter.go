package cache

import (
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"
	redisstore "github.com/ulule/limiter/v3/drivers/store/redis"
)

// LimiterKeyPrefix префикс ключей лимитера в Redis
const LimiterKeyPrefix = "salon:ratelimit"

const memoryCleanUpInterval = time.Minute

// ErrRedisRequired возвращается, когда хранилище redis запрошено без клиента
var ErrRedisRequired = errors.New("cache: redis limiter store requires a redis client")

// NewLimiterStore создает хранилище счётчиков лимитера: "memory" или "redis"
func NewLimiterStore(kind string, client *redis.Client) (limiter.Store, error) {
	switch kind {
	case "memory":
		return memory.NewStoreWithOptions(limiter.StoreOptions{
			Prefix:          LimiterKeyPrefix,
			CleanUpInterval: memoryCleanUpInterval,
		}), nil

	case "redis":
		if client == nil {
			return nil, ErrRedisRequired
		}
		store, err := redisstore.NewStoreWithOptions(client, limiter.StoreOptions{Prefix: LimiterKeyPrefix})
		if err != nil {
			return nil, fmt.Errorf("cache: redis limiter store: %w", err)
		}
		return store, nil

	default:
		return nil, fmt.Errorf("cache: unknown limiter store %q", kind)
	}
}

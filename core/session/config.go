package session

import "github.com/redis/go-redis/v9"

// Config provides environment-based configuration for the session store.
type Config struct {
	// StorePrefix namespaces session keys in a shared Redis instance.
	StorePrefix string `env:"SESSION_STORE_PREFIX" envDefault:"dashgate"`
}

// NewRedisStoreFromConfig creates a Redis-backed session store from configuration.
func NewRedisStoreFromConfig(cfg Config, client redis.UniversalClient) *RedisStore {
	return NewRedisStore(client, cfg.StorePrefix)
}

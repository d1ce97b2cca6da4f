// File: utils/cache.go
package utils

import (
	"context"
	"log"
	"time"

	"decorhub/config"

	"github.com/go-redis/redis/v8"
)

var (
	// CacheClient is the generic cache client.
	CacheClient *redis.Client
	// AuthCacheClient is the dedicated client for verified-token caching.
	AuthCacheClient *redis.Client
)

func newRedisClient(db int) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       db,
	})
}

// InitRedis connects the cache clients. A Redis outage is not fatal: callers
// treat a nil client as a permanent cache miss.
func InitRedis() {
	CacheClient = pingOrNil(newRedisClient(config.AppConfig.RedisCacheDB), "cache")
	AuthCacheClient = pingOrNil(newRedisClient(config.AppConfig.RedisAuthDB), "auth cache")
}

func pingOrNil(client *redis.Client, name string) *redis.Client {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		log.Printf("WARNING: Redis (%s) unavailable: %v", name, err)
		_ = client.Close()
		return nil
	}
	return client
}

// GetCacheClient returns the generic cache client.
func GetCacheClient() *redis.Client {
	return CacheClient
}

// GetAuthCacheClient returns the Redis client for authorization caching.
func GetAuthCacheClient() *redis.Client {
	return AuthCacheClient
}

// RedisClients lists the connected clients, for health checks.
func RedisClients() []*redis.Client {
	var clients []*redis.Client
	for _, c := range []*redis.Client{CacheClient, AuthCacheClient} {
		if c != nil {
			clients = append(clients, c)
		}
	}
	return clients
}

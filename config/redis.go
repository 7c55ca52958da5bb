// designmecha-mes/config/redis.go
package config

import (
	"context"
	"log/slog"

	"github.com/redis/go-redis/v9"
)

var RDB *redis.Client
var Ctx = context.Background()

// ConnectRedis sets up the cache client. Redis is optional: when no
// address is configured, or the ping fails, RDB stays nil and callers
// skip caching.
func ConnectRedis() {
	if App.RedisAddr == "" {
		slog.Warn("No redis_addr configured, caching disabled")
		return
	}

	RDB = redis.NewClient(&redis.Options{
		Addr: App.RedisAddr,
	})

	if _, err := RDB.Ping(Ctx).Result(); err != nil {
		slog.Error("Failed to connect to Redis", "error", err)
		RDB = nil
		return
	}

	slog.Info("Connected to Redis")
}

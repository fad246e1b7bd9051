package config

import (
	"context"
	"os"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

var (
	RedisClient *redis.Client
	Ctx         = context.Background()
)

// ConnectRedis connects to the Redis pointed at by REDIS_URL. Redis is
// optional here: it backs session persistence and the rate limiter, and
// without it both fall back to in-memory behavior.
func ConnectRedis() {
	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		logrus.Warn("⚠️ REDIS_URL not set, sessions are memory-only")
		return
	}

	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		logrus.Fatalf("❌ invalid REDIS_URL: %v", err)
	}

	RedisClient = redis.NewClient(opt)

	res, err := RedisClient.Ping(Ctx).Result()
	if err != nil {
		logrus.Fatalf("❌ failed to connect to Redis: %v", err)
	}
	logrus.Info("✅ Connected to Redis: ", res)
}

// File: utils/cache.go
package utils

import (
	"context"
	"log"
	"time"

	"resonance/config"

	"github.com/go-redis/redis/v8"
)

var (
	// CacheClient is the generic cache client (carts, revoked tokens).
	CacheClient *redis.Client
	// OTPCacheClient is the dedicated client for one-time codes.
	OTPCacheClient *redis.Client
)

func newRedisClient(db int) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       db,
	})
}

func pingRedis(client *redis.Client, name string) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if _, err := client.Ping(ctx).Result(); err != nil {
		log.Fatalf("Failed to connect to Redis (%s): %v", name, err)
	}
}

// InitRedis connects every Redis client used by the API.
func InitRedis() {
	CacheClient = newRedisClient(config.AppConfig.RedisCacheDB)
	pingRedis(CacheClient, "Cache")

	OTPCacheClient = newRedisClient(config.AppConfig.RedisOTPDB)
	pingRedis(OTPCacheClient, "OTP")
}

// GetCacheClient returns the generic cache client.
func GetCacheClient() *redis.Client {
	if CacheClient == nil {
		CacheClient = newRedisClient(config.AppConfig.RedisCacheDB)
		pingRedis(CacheClient, "Cache")
	}
	return CacheClient
}

// GetOTPCacheClient returns the Redis client for one-time codes.
func GetOTPCacheClient() *redis.Client {
	if OTPCacheClient == nil {
		OTPCacheClient = newRedisClient(config.AppConfig.RedisOTPDB)
		pingRedis(OTPCacheClient, "OTP")
	}
	return OTPCacheClient
}

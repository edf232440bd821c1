package utils

import (
	"context"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// HealthStatus represents current status of external services.
type HealthStatus struct {
	Mongo     bool      `json:"mongo"`
	Redis     []bool    `json:"redis"`
	CheckedAt time.Time `json:"checkedAt"`
}

// Healthy reports whether every dependency answered the last check.
func (h HealthStatus) Healthy() bool {
	if !h.Mongo {
		return false
	}
	for _, ok := range h.Redis {
		if !ok {
			return false
		}
	}
	return true
}

var (
	currentHealth HealthStatus
	healthMu      sync.RWMutex
)

// GetHealthStatus returns latest stored health snapshot.
func GetHealthStatus() HealthStatus {
	healthMu.RLock()
	defer healthMu.RUnlock()
	return currentHealth
}

func setHealthStatus(h HealthStatus) {
	healthMu.Lock()
	currentHealth = h
	healthMu.Unlock()
}

// CheckHealth pings Mongo and every Redis client once.
func CheckHealth(ctx context.Context, mongoClient *mongo.Client, redisClients []*redis.Client) HealthStatus {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	status := HealthStatus{Redis: make([]bool, 0, len(redisClients)), CheckedAt: time.Now()}
	for _, client := range redisClients {
		status.Redis = append(status.Redis, client.Ping(ctx).Err() == nil)
	}
	status.Mongo = mongoClient != nil && mongoClient.Ping(ctx, nil) == nil
	return status
}

// StartHealthMonitor checks immediately and then every interval until ctx is done.
func StartHealthMonitor(ctx context.Context, interval time.Duration, mongoClient *mongo.Client, redisClients []*redis.Client) {
	if interval <= 0 {
		interval = time.Minute
	}
	setHealthStatus(CheckHealth(ctx, mongoClient, redisClients))

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				status := CheckHealth(ctx, mongoClient, redisClients)
				if !status.Healthy() {
					GetLogger().Warn("Dependency health check failed", zap.Bool("mongo", status.Mongo), zap.Bools("redis", status.Redis))
				}
				setHealthStatus(status)
			}
		}
	}()
}

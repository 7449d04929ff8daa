// File: utils/cache.go
package utils

import (
	"context"
	"log"
	"time"

	"salonbook/config"

	"github.com/go-redis/redis/v8"
)

var (
	// LockClient backs the per-professional booking lock.
	LockClient *redis.Client
	// EventsClient publishes store events to other sessions.
	EventsClient *redis.Client
)

func newRedisClient(db int, name string) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       db,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if _, err := client.Ping(ctx).Result(); err != nil {
		log.Fatalf("Failed to connect to Redis (%s): %v", name, err)
	}
	return client
}

// GetLockClient returns the Redis client used for booking locks.
func GetLockClient() *redis.Client {
	if LockClient == nil {
		LockClient = newRedisClient(config.AppConfig.RedisLockDB, "Lock")
	}
	return LockClient
}

// GetEventsClient returns the Redis client used for event fan-out.
func GetEventsClient() *redis.Client {
	if EventsClient == nil {
		EventsClient = newRedisClient(config.AppConfig.RedisEventsDB, "Events")
	}
	return EventsClient
}

// RedisClients lists the clients that have been opened, for health checks.
func RedisClients() []*redis.Client {
	var clients []*redis.Client
	for _, c := range []*redis.Client{LockClient, EventsClient} {
		if c != nil {
			clients = append(clients, c)
		}
	}
	return clients
}

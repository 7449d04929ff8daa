package events

import (
	"context"
	"encoding/json"
	"time"

	"salonbook/models"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// RedisPublisher forwards events to a Redis pub/sub channel so other
// sessions can re-query. Failures are logged and dropped.
type RedisPublisher struct {
	Client  *redis.Client
	Channel string
	Logger  *zap.Logger
}

func NewRedisPublisher(client *redis.Client, channel string, logger *zap.Logger) *RedisPublisher {
	return &RedisPublisher{Client: client, Channel: channel, Logger: logger}
}

// Handle is a Bus handler.
func (p *RedisPublisher) Handle(evt models.Event) {
	body, err := json.Marshal(evt)
	if err != nil {
		p.Logger.Error("failed to encode event", zap.String("kind", string(evt.Kind)), zap.Error(err))
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := p.Client.Publish(ctx, p.Channel, body).Err(); err != nil {
		p.Logger.Warn("failed to publish event",
			zap.String("kind", string(evt.Kind)),
			zap.String("id", evt.ID),
			zap.Error(err))
	}
}

package notifier

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const channel = "agency:events"

// RedisNotifier publishes events on a redis channel. Failures are logged and
// swallowed; the caller's transaction has already committed.
type RedisNotifier struct {
	client *redis.Client
	logger *zap.Logger
}

func NewRedisNotifier(client *redis.Client, logger *zap.Logger) *RedisNotifier {
	return &RedisNotifier{client: client, logger: logger}
}

func (n *RedisNotifier) Publish(ctx context.Context, event Event) {
	payload, err := json.Marshal(event)
	if err != nil {
		n.logger.Warn("failed to encode event", zap.String("type", event.Type), zap.Error(err))
		return
	}
	if err := n.client.Publish(ctx, channel, payload).Err(); err != nil {
		n.logger.Warn("failed to publish event", zap.String("type", event.Type), zap.Error(err))
	}
}

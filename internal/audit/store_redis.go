package audit

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore appends audit events to a Redis Stream so an external shipper
// can consume them. The stream is capped; Redis trims the oldest entries.
type RedisStore struct {
	client *redis.Client
	stream string
	maxLen int64
}

const defaultStreamMaxLen = 100_000

func NewRedisStore(client *redis.Client, stream string) *RedisStore {
	return &RedisStore{client: client, stream: stream, maxLen: defaultStreamMaxLen}
}

func (s *RedisStore) Append(ctx context.Context, event Event) error {
	metadata, err := json.Marshal(event.Metadata)
	if err != nil {
		return fmt.Errorf("marshal audit metadata: %w", err)
	}

	err = s.client.XAdd(ctx, &redis.XAddArgs{
		Stream: s.stream,
		MaxLen: s.maxLen,
		Approx: true,
		Values: map[string]interface{}{
			"id":        event.ID.String(),
			"timestamp": event.Timestamp.Format(time.RFC3339Nano),
			"category":  string(event.Category),
			"tenant_id": event.TenantID,
			"message":   event.Message,
			"metadata":  string(metadata),
		},
	}).Err()
	if err != nil {
		return fmt.Errorf("append audit event to stream %s: %w", s.stream, err)
	}
	return nil
}

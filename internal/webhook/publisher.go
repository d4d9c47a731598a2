package webhook

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	webhookQueueKey = "status_change_events"
)

// StatusChangeEvent - структура события о смене статуса инцидента
type StatusChangeEvent struct {
	IncidentID     uuid.UUID `json:"incident_id"`
	Code           string    `json:"code"`
	PreviousStatus string    `json:"previous_status"`
	NewStatus      string    `json:"new_status"`
	ActorID        int64     `json:"actor_id"`
	Motive         string    `json:"motive,omitempty"`
	Timestamp      time.Time `json:"timestamp"`
}

// EventPublisher - интерфейс для публикации событий о смене статуса
type EventPublisher interface {
	Publish(ctx context.Context, event StatusChangeEvent) error
}

// RedisEventPublisher - реализация EventPublisher, использующая Redis
type RedisEventPublisher struct {
	redisClient *redis.Client
}

// NewRedisEventPublisher создает новый RedisEventPublisher
func NewRedisEventPublisher(client *redis.Client) *RedisEventPublisher {
	return &RedisEventPublisher{
		redisClient: client,
	}
}

// Publish публикует событие о смене статуса в очередь Redis
func (p *RedisEventPublisher) Publish(ctx context.Context, event StatusChangeEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal status change event: %w", err)
	}

	// Используем LPUSH для добавления события в левую часть списка (очереди)
	if err := p.redisClient.LPush(ctx, webhookQueueKey, payload).Err(); err != nil {
		return fmt.Errorf("failed to publish status change event to Redis: %w", err)
	}
	return nil
}

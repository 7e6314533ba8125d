package webhook

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/silentvoice/anonymous_reporting_system/internal/models"
)

const (
	alertQueueKey = "report_alert_events"
)

// AlertEvent - событие о жалобе с высоким приоритетом. Описание и фото
// в алерт не попадают, чтобы не раздавать чувствительные данные получателю.
type AlertEvent struct {
	ReportID    uuid.UUID          `json:"report_id"`
	Category    models.Category    `json:"category"`
	Priority    models.Priority    `json:"priority"`
	Location    string             `json:"location"`
	Coordinates models.Coordinates `json:"coordinates"`
	CreatedAt   time.Time          `json:"created_at"`
}

// AlertPublisher - интерфейс для публикации алертов
type AlertPublisher interface {
	Publish(ctx context.Context, event AlertEvent) error
}

// RedisAlertPublisher - реализация AlertPublisher, использующая Redis
type RedisAlertPublisher struct {
	redisClient *redis.Client
}

// NewRedisAlertPublisher создает новый RedisAlertPublisher
func NewRedisAlertPublisher(client *redis.Client) *RedisAlertPublisher {
	return &RedisAlertPublisher{
		redisClient: client,
	}
}

// Publish публикует событие алерта в очередь Redis
func (p *RedisAlertPublisher) Publish(ctx context.Context, event AlertEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal alert event: %w", err)
	}

	// Используем LPUSH для добавления события в левую часть списка (очереди)
	if err := p.redisClient.LPush(ctx, alertQueueKey, payload).Err(); err != nil {
		return fmt.Errorf("failed to publish alert event to Redis: %w", err)
	}
	return nil
}

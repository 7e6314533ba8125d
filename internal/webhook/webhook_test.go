package webhook

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/silentvoice/anonymous_reporting_system/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRedis(t *testing.T) (*redis.Client, *miniredis.Miniredis) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return client, mr
}

func TestRedisAlertPublisher_Publish(t *testing.T) {
	// Подготовка
	client, _ := newTestRedis(t)
	publisher := NewRedisAlertPublisher(client)
	ctx := context.Background()
	event := AlertEvent{
		ReportID:    uuid.New(),
		Category:    models.CategoryHarassment,
		Priority:    models.PriorityHigh,
		Location:    "Main Library",
		Coordinates: models.Coordinates{Lat: 37.4287, Lng: -122.1705},
		CreatedAt:   time.Now().UTC().Truncate(time.Second),
	}

	// Действие
	err := publisher.Publish(ctx, event)

	// Проверки: событие лежит в очереди и разбирается обратно
	require.NoError(t, err)
	payload, err := client.RPop(ctx, "report_alert_events").Result()
	require.NoError(t, err)

	var got AlertEvent
	require.NoError(t, json.Unmarshal([]byte(payload), &got))
	assert.Equal(t, event.ReportID, got.ReportID)
	assert.Equal(t, event.Category, got.Category)
	assert.Equal(t, event.Priority, got.Priority)
	assert.Equal(t, event.Coordinates, got.Coordinates)
}

func TestRedisAlertPublisher_QueueOrder(t *testing.T) {
	// Подготовка
	client, _ := newTestRedis(t)
	publisher := NewRedisAlertPublisher(client)
	ctx := context.Background()

	first := AlertEvent{ReportID: uuid.New(), Priority: models.PriorityHigh}
	second := AlertEvent{ReportID: uuid.New(), Priority: models.PriorityHigh}

	// Действие
	require.NoError(t, publisher.Publish(ctx, first))
	require.NoError(t, publisher.Publish(ctx, second))

	// Проверки: LPUSH + RPOP дают FIFO, первым выйдет первое событие
	payload, err := client.RPop(ctx, "report_alert_events").Result()
	require.NoError(t, err)

	var got AlertEvent
	require.NoError(t, json.Unmarshal([]byte(payload), &got))
	assert.Equal(t, first.ReportID, got.ReportID)
}

func TestAlertEvent_PayloadOmitsSensitiveFields(t *testing.T) {
	// Подготовка
	event := AlertEvent{
		ReportID: uuid.New(),
		Category: models.CategoryAssault,
		Priority: models.PriorityHigh,
		Location: "Dormitory Block",
	}

	// Действие
	payload, err := json.Marshal(event)

	// Проверки: описание и фото в алерт не попадают
	require.NoError(t, err)
	assert.NotContains(t, string(payload), "description")
	assert.NotContains(t, string(payload), "photo")
}

func TestGenerateHMACSHA256(t *testing.T) {
	// Подготовка
	data := `{"report_id":"abc"}`
	secret := "webhook_secret"

	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(data))
	expected := hex.EncodeToString(mac.Sum(nil))

	// Действие
	signature := generateHMACSHA256(data, secret)

	// Проверки
	assert.Equal(t, expected, signature)
	assert.Len(t, signature, 64)
	// Подпись детерминированная и зависит от секрета
	assert.Equal(t, signature, generateHMACSHA256(data, secret))
	assert.NotEqual(t, signature, generateHMACSHA256(data, "other_secret"))
}

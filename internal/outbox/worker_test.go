package outbox

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/coderhafiz/Murajiah-sub001/internal/models"
	"github.com/coderhafiz/Murajiah-sub001/internal/services"
	"github.com/coderhafiz/Murajiah-sub001/internal/ws"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type fakeBroadcaster struct {
	fail     bool
	messages map[string][]ws.Message
}

func newFakeBroadcaster() *fakeBroadcaster {
	return &fakeBroadcaster{messages: make(map[string][]ws.Message)}
}

func (b *fakeBroadcaster) Broadcast(channel string, message ws.Message) error {
	if b.fail {
		return errors.New("delivery down")
	}
	b.messages[channel] = append(b.messages[channel], message)
	return nil
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Notification{}))
	return db
}

func TestDrainDeliversAndMarksSent(t *testing.T) {
	db := newTestDB(t)
	notifications := services.NewNotificationService(db)
	hub := newFakeBroadcaster()

	target := uint(5)
	require.NoError(t, notifications.Enqueue("targeted", "m", models.NotificationTypeInfo, &target))
	require.NoError(t, notifications.Enqueue("everyone", "m", models.NotificationTypeInfo, nil))

	worker := NewWorker(notifications, hub, time.Second, 10)
	worker.drain()

	require.Len(t, hub.messages["user:5"], 1)
	require.Len(t, hub.messages["broadcast"], 1)
	assert.Equal(t, "notification", hub.messages["broadcast"][0].Type)

	pending, err := notifications.PendingBatch(10)
	require.NoError(t, err)
	assert.Empty(t, pending)

	var sent int64
	db.Model(&models.Notification{}).Where("status = ?", models.NotificationStatusSent).Count(&sent)
	assert.Equal(t, int64(2), sent)
}

func TestDrainRetriesFailedDelivery(t *testing.T) {
	db := newTestDB(t)
	notifications := services.NewNotificationService(db)
	hub := newFakeBroadcaster()
	hub.fail = true

	require.NoError(t, notifications.Enqueue("flaky", "m", models.NotificationTypeInfo, nil))

	worker := NewWorker(notifications, hub, time.Second, 10)
	worker.drain()

	// Still pending after one failure, with the attempt recorded.
	var n models.Notification
	require.NoError(t, db.First(&n).Error)
	assert.Equal(t, models.NotificationStatusPending, n.Status)
	assert.Equal(t, 1, n.Attempts)

	// Delivery recovers on a later tick.
	hub.fail = false
	worker.drain()

	require.NoError(t, db.First(&n, n.ID).Error)
	assert.Equal(t, models.NotificationStatusSent, n.Status)
	require.Len(t, hub.messages["broadcast"], 1)
}

func TestDrainParksAfterAttemptBudget(t *testing.T) {
	db := newTestDB(t)
	notifications := services.NewNotificationService(db)
	hub := newFakeBroadcaster()
	hub.fail = true

	require.NoError(t, notifications.Enqueue("doomed", "m", models.NotificationTypeInfo, nil))

	worker := NewWorker(notifications, hub, time.Second, 10)
	for i := 0; i < 5; i++ {
		worker.drain()
	}

	var n models.Notification
	require.NoError(t, db.First(&n).Error)
	assert.Equal(t, models.NotificationStatusFailed, n.Status)

	// Parked rows are not retried.
	hub.fail = false
	worker.drain()
	assert.Empty(t, hub.messages)
}

func TestWorkerStartStop(t *testing.T) {
	db := newTestDB(t)
	notifications := services.NewNotificationService(db)
	hub := newFakeBroadcaster()

	worker := NewWorker(notifications, hub, 10*time.Millisecond, 10)
	worker.Start()
	worker.Stop()
}

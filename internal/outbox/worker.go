package outbox

import (
	"fmt"
	"time"

	"github.com/coderhafiz/Murajiah-sub001/internal/services"
	"github.com/coderhafiz/Murajiah-sub001/internal/ws"

	"github.com/sirupsen/logrus"
)

// Broadcaster is the delivery edge; the websocket hub satisfies it.
type Broadcaster interface {
	Broadcast(channel string, message ws.Message) error
}

// Worker drains pending notification rows on a fixed interval and pushes
// them over the hub. Delivery is independent of the request that enqueued
// the row: a failed push stays pending and is retried on the next tick
// until the attempt budget runs out.
type Worker struct {
	notifications *services.NotificationService
	hub           Broadcaster
	interval      time.Duration
	batchSize     int

	stopCh chan struct{}
}

func NewWorker(notifications *services.NotificationService, hub Broadcaster, interval time.Duration, batchSize int) *Worker {
	if batchSize <= 0 {
		batchSize = 50
	}
	return &Worker{
		notifications: notifications,
		hub:           hub,
		interval:      interval,
		batchSize:     batchSize,
		stopCh:        make(chan struct{}),
	}
}

func (w *Worker) Start() {
	go w.loop()
	logrus.Info("outbox worker started")
}

func (w *Worker) Stop() {
	close(w.stopCh)
	logrus.Info("outbox worker stopped")
}

func (w *Worker) loop() {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()
	for {
		select {
		case <-w.stopCh:
			return
		case <-ticker.C:
			w.drain()
		}
	}
}

func (w *Worker) drain() {
	batch, err := w.notifications.PendingBatch(w.batchSize)
	if err != nil {
		logrus.WithError(err).Warn("outbox: pending batch read failed")
		return
	}

	for _, n := range batch {
		channel := "broadcast"
		if n.TargetUserID != nil {
			channel = fmt.Sprintf("user:%d", *n.TargetUserID)
		}

		err := w.hub.Broadcast(channel, ws.Message{Type: "notification", Data: n})
		if err != nil {
			logrus.WithError(err).WithField("notification_id", n.ID).Warn("outbox: delivery failed")
			if err := w.notifications.RecordFailure(n.ID); err != nil {
				logrus.WithError(err).Warn("outbox: failure record failed")
			}
			continue
		}

		if err := w.notifications.MarkSent(n.ID); err != nil {
			logrus.WithError(err).WithField("notification_id", n.ID).Warn("outbox: mark sent failed")
		}
	}
}

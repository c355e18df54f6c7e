package services

import (
	"time"

	"github.com/coderhafiz/Murajiah-sub001/internal/models"

	"gorm.io/gorm"
)

// maxDeliveryAttempts is how many times the outbox worker may fail to
// deliver a notification before it is parked as failed.
const maxDeliveryAttempts = 5

type NotificationService struct {
	db *gorm.DB
}

func NewNotificationService(db *gorm.DB) *NotificationService {
	return &NotificationService{db: db}
}

// Enqueue writes a pending outbox row. Delivery happens later, from the
// outbox worker; producers never block on it. A nil targetUserID means
// broadcast. Unknown types fall back to info.
func (s *NotificationService) Enqueue(title, message, typ string, targetUserID *uint) error {
	switch typ {
	case models.NotificationTypeInfo, models.NotificationTypeWarning, models.NotificationTypeSuccess:
	default:
		typ = models.NotificationTypeInfo
	}

	n := models.Notification{
		Title:        title,
		Message:      message,
		Type:         typ,
		TargetUserID: targetUserID,
		Status:       models.NotificationStatusPending,
	}
	return s.db.Create(&n).Error
}

// ListForUser returns the user's inbox: notifications targeted at them plus
// broadcasts, newest first.
func (s *NotificationService) ListForUser(userID uint, limit int) ([]models.Notification, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}

	var notifications []models.Notification
	err := s.db.Where("target_user_id = ? OR target_user_id IS NULL", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&notifications).Error
	if err != nil {
		return nil, err
	}
	return notifications, nil
}

func (s *NotificationService) PendingBatch(limit int) ([]models.Notification, error) {
	var notifications []models.Notification
	err := s.db.Where("status = ?", models.NotificationStatusPending).
		Order("created_at ASC").
		Limit(limit).
		Find(&notifications).Error
	if err != nil {
		return nil, err
	}
	return notifications, nil
}

func (s *NotificationService) MarkSent(id uint) error {
	now := time.Now()
	return s.db.Model(&models.Notification{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":  models.NotificationStatusSent,
			"sent_at": &now,
		}).Error
}

// RecordFailure bumps the attempt counter and parks the row as failed once
// the attempt budget is spent; otherwise it stays pending for the next
// drain.
func (s *NotificationService) RecordFailure(id uint) error {
	var n models.Notification
	if err := s.db.First(&n, id).Error; err != nil {
		return err
	}

	n.Attempts++
	if n.Attempts >= maxDeliveryAttempts {
		n.Status = models.NotificationStatusFailed
	}
	return s.db.Save(&n).Error
}

package models

import "time"

// Notification is an outbox row: producers insert it as pending and the
// outbox worker delivers it later. A nil TargetUserID means broadcast.
type Notification struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	Title        string     `gorm:"size:255;not null" json:"title"`
	Message      string     `gorm:"type:text;not null" json:"message"`
	Type         string     `gorm:"size:20;not null;default:'info'" json:"type"`
	TargetUserID *uint      `gorm:"index" json:"target_user_id,omitempty"`
	Status       string     `gorm:"size:20;not null;default:'pending';index" json:"status"`
	Attempts     int        `gorm:"not null;default:0" json:"attempts"`
	CreatedAt    time.Time  `json:"created_at"`
	SentAt       *time.Time `json:"sent_at,omitempty"`
}

const (
	NotificationTypeInfo    = "info"
	NotificationTypeWarning = "warning"
	NotificationTypeSuccess = "success"

	NotificationStatusPending = "pending"
	NotificationStatusSent    = "sent"
	NotificationStatusFailed  = "failed"
)

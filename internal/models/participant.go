package models

import "time"

type Participant struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	SessionID  uint      `gorm:"not null;index" json:"session_id"`
	UserID     uint      `gorm:"default:0" json:"user_id,omitempty"`
	Nickname   string    `gorm:"size:100;not null" json:"nickname"`
	GuestToken string    `gorm:"size:36;index" json:"guest_token,omitempty"`
	JoinedAt   time.Time `json:"joined_at"`
}

package models

import "time"

// GameSession is one live run of a quiz, joinable by PIN while it is not
// finished. The PIN is assigned once at creation and never reassigned.
type GameSession struct {
	ID           uint          `gorm:"primaryKey" json:"id"`
	QuizID       uint          `gorm:"not null;index" json:"quiz_id"`
	Quiz         Quiz          `gorm:"foreignKey:QuizID" json:"quiz,omitempty"`
	HostID       uint          `gorm:"not null;index" json:"host_id"`
	Pin          string        `gorm:"size:6;index" json:"pin"`
	Status       string        `gorm:"size:20;not null;default:'waiting'" json:"status"`
	IsPreview    bool          `gorm:"not null;default:false" json:"is_preview"`
	Participants []Participant `gorm:"foreignKey:SessionID" json:"participants,omitempty"`
	CreatedAt    time.Time     `json:"created_at"`
	EndedAt      *time.Time    `json:"ended_at,omitempty"`
}

const (
	GameStatusWaiting  = "waiting"
	GameStatusActive   = "active"
	GameStatusFinished = "finished"
)

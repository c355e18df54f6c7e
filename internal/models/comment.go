package models

import "time"

type Comment struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	QuizID    uint      `gorm:"not null;index" json:"quiz_id"`
	AuthorID  uint      `gorm:"not null;index" json:"author_id"`
	Author    User      `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE" json:"-"`
	Body      string    `gorm:"type:text;not null" json:"body"`
	Hidden    bool      `gorm:"not null;default:false" json:"hidden"`
	CreatedAt time.Time `json:"created_at"`
}

package models

import "time"

// MaxMessageLength bounds the text of a single message.
const MaxMessageLength = 140

// Message represents a short post authored by a user.
type Message struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Text      string    `gorm:"size:140;not null" json:"text"`
	Timestamp time.Time `gorm:"not null" json:"timestamp"`
	UserID    uint      `gorm:"column:user_id;not null" json:"user_id"`
	User      User      `gorm:"foreignKey:UserID" json:"-"`
}

// TableName overrides the table name used by GORM
func (Message) TableName() string {
	return "messages"
}

package dto

import (
	"time"

	"github.com/kathyn262/Waddle/models"
)

// MessageDTO is a Data Transfer Object for the message response
type MessageDTO struct {
	ID        uint      `json:"id"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
	UserID    uint      `json:"user_id"`
	Username  string    `json:"username"`
}

func NewMessageDTO(m models.Message) MessageDTO {
	return MessageDTO{
		ID:        m.ID,
		Text:      m.Text,
		Timestamp: m.Timestamp,
		UserID:    m.UserID,
		Username:  m.User.Username,
	}
}

func NewMessageDTOs(messages []models.Message) []MessageDTO {
	dtos := make([]MessageDTO, len(messages))
	for i, m := range messages {
		dtos[i] = NewMessageDTO(m)
	}
	return dtos
}

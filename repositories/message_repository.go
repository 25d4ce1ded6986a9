package repositories

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/kathyn262/Waddle/models"
)

// HomeFeedLimit caps the number of messages composed into a home feed.
const HomeFeedLimit = 100

type messageRepository struct {
	db *gorm.DB
}

func NewMessageRepository(db *gorm.DB) MessageRepository {
	return &messageRepository{db: db}
}

// Create inserts a message with a server-assigned timestamp.
func (r *messageRepository) Create(userID uint, text string) (*models.Message, error) {
	if text == "" || len(text) > models.MaxMessageLength {
		return nil, ErrInvalid
	}

	message := models.Message{
		Text:      text,
		Timestamp: time.Now(),
		UserID:    userID,
	}
	if err := r.db.Create(&message).Error; err != nil {
		return nil, err
	}
	return &message, nil
}

func (r *messageRepository) GetByID(id uint) (*models.Message, error) {
	var message models.Message
	err := r.db.Preload("User").First(&message, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &message, nil
}

// Delete removes a message. Only the author may delete it.
func (r *messageRepository) Delete(id, requesterID uint) error {
	var message models.Message
	err := r.db.First(&message, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	if message.UserID != requesterID {
		return ErrForbidden
	}

	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("message_id = ?", id).Delete(&models.Like{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Message{}, id).Error
	})
}

// ListByUser returns a user's most recent messages, newest first.
func (r *messageRepository) ListByUser(userID uint, limit int) ([]models.Message, error) {
	var messages []models.Message
	err := r.db.Preload("User").
		Where("user_id = ?", userID).
		Order("timestamp DESC").
		Limit(limit).
		Find(&messages).Error
	return messages, err
}

// HomeFeed composes the timeline for a user: messages authored by the
// user or by anyone they follow, newest first, capped at HomeFeedLimit.
func (r *messageRepository) HomeFeed(userID uint) ([]models.Message, error) {
	following := r.db.Model(&models.Follow{}).
		Select("user_being_followed_id").
		Where("user_following_id = ?", userID)

	var messages []models.Message
	err := r.db.Preload("User").
		Where("user_id IN (?) OR user_id = ?", following, userID).
		Order("timestamp DESC").
		Limit(HomeFeedLimit).
		Find(&messages).Error
	return messages, err
}

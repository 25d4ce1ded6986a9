package repositories

import (
	"errors"

	"gorm.io/gorm"

	"github.com/kathyn262/Waddle/models"
)

type likeRepository struct {
	db *gorm.DB
}

func NewLikeRepository(db *gorm.DB) LikeRepository {
	return &likeRepository{db: db}
}

// Like records userID liking messageID. Users cannot like their own
// messages, and repeat likes leave a single edge.
func (r *likeRepository) Like(userID, messageID uint) error {
	var message models.Message
	err := r.db.First(&message, messageID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	if message.UserID == userID {
		return ErrForbidden
	}

	liked, err := r.IsLiked(userID, messageID)
	if err != nil {
		return err
	}
	if liked {
		return nil
	}

	like := models.Like{UserID: userID, MessageID: messageID}
	return r.db.Create(&like).Error
}

// Unlike removes a like edge; absent message or edge is not-found.
func (r *likeRepository) Unlike(userID, messageID uint) error {
	var message models.Message
	err := r.db.First(&message, messageID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}

	res := r.db.
		Where("user_id = ? AND message_id = ?", userID, messageID).
		Delete(&models.Like{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *likeRepository) IsLiked(userID, messageID uint) (bool, error) {
	var count int64
	err := r.db.Model(&models.Like{}).
		Where("user_id = ? AND message_id = ?", userID, messageID).
		Count(&count).Error
	return count > 0, err
}

// ListLikedByUser returns the messages a user has liked, newest first.
func (r *likeRepository) ListLikedByUser(userID uint) ([]models.Message, error) {
	var messages []models.Message
	err := r.db.Preload("User").
		Joins("INNER JOIN likes ON likes.message_id = messages.id").
		Where("likes.user_id = ?", userID).
		Order("messages.timestamp DESC").
		Find(&messages).Error
	return messages, err
}

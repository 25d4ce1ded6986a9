package repositories

import "github.com/kathyn262/Waddle/models"

// ProfileUpdate carries the editable fields of a user profile.
type ProfileUpdate struct {
	Username       string
	Email          string
	ImageURL       string
	HeaderImageURL string
	Bio            string
	Location       string
}

type UserRepository interface {
	Signup(username, email, password, imageURL string) (*models.User, error)
	Authenticate(username, password string) (*models.User, bool)
	GetByID(id uint) (*models.User, error)
	GetByUsername(username string) (*models.User, error)
	Search(q string) ([]models.User, error)
	UpdateProfile(id uint, update ProfileUpdate) (*models.User, error)
	Delete(id uint) error
	Follow(followerID, followeeID uint) error
	Unfollow(followerID, followeeID uint) error
	IsFollowing(followerID, followeeID uint) (bool, error)
	IsFollowedBy(followeeID, followerID uint) (bool, error)
	GetFollowing(userID uint) ([]models.User, error)
	GetFollowers(userID uint) ([]models.User, error)
}

type MessageRepository interface {
	Create(userID uint, text string) (*models.Message, error)
	GetByID(id uint) (*models.Message, error)
	Delete(id, requesterID uint) error
	ListByUser(userID uint, limit int) ([]models.Message, error)
	HomeFeed(userID uint) ([]models.Message, error)
}

type LikeRepository interface {
	Like(userID, messageID uint) error
	Unlike(userID, messageID uint) error
	IsLiked(userID, messageID uint) (bool, error)
	ListLikedByUser(userID uint) ([]models.Message, error)
}

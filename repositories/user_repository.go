package repositories

import (
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/kathyn262/Waddle/models"
)

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

// Signup creates a user with a bcrypt-hashed password. Username and email
// must be unique.
func (r *userRepository) Signup(username, email, password, imageURL string) (*models.User, error) {
	var count int64
	err := r.db.Model(&models.User{}).
		Where("username = ? OR email = ?", username, email).
		Count(&count).Error
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrDuplicate
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	if imageURL == "" {
		imageURL = models.DefaultImageURL
	}

	user := models.User{
		Username:       username,
		Email:          email,
		PwHash:         string(hashed),
		ImageURL:       imageURL,
		HeaderImageURL: models.DefaultHeaderImageURL,
	}
	if err := r.db.Create(&user).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicate
		}
		return nil, err
	}
	return &user, nil
}

// Authenticate verifies a username/password pair. Unknown usernames and
// wrong passwords both come back as a plain false; callers cannot tell
// the two apart.
func (r *userRepository) Authenticate(username, password string) (*models.User, bool) {
	var user models.User
	err := r.db.Where("username = ?", username).First(&user).Error
	if err != nil {
		return nil, false
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PwHash), []byte(password)) != nil {
		return nil, false
	}
	return &user, true
}

func (r *userRepository) GetByID(id uint) (*models.User, error) {
	var user models.User
	err := r.db.First(&user, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GetByUsername(username string) (*models.User, error) {
	var user models.User
	err := r.db.Where("username = ?", username).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Search lists all users, or those whose username contains q.
func (r *userRepository) Search(q string) ([]models.User, error) {
	var users []models.User
	query := r.db.Order("username ASC")
	if q != "" {
		query = query.Where("username LIKE ?", "%"+q+"%")
	}
	err := query.Find(&users).Error
	return users, err
}

func (r *userRepository) UpdateProfile(id uint, update ProfileUpdate) (*models.User, error) {
	user, err := r.GetByID(id)
	if err != nil {
		return nil, err
	}

	var count int64
	err = r.db.Model(&models.User{}).
		Where("(username = ? OR email = ?) AND id <> ?", update.Username, update.Email, id).
		Count(&count).Error
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrDuplicate
	}

	user.Username = update.Username
	user.Email = update.Email
	user.ImageURL = update.ImageURL
	if user.ImageURL == "" {
		user.ImageURL = models.DefaultImageURL
	}
	user.HeaderImageURL = update.HeaderImageURL
	if user.HeaderImageURL == "" {
		user.HeaderImageURL = models.DefaultHeaderImageURL
	}
	user.Bio = update.Bio
	user.Location = update.Location

	if err := r.db.Save(user).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicate
		}
		return nil, err
	}
	return user, nil
}

// Delete removes the user together with their messages, likes (given and
// received), and follow edges in both directions.
func (r *userRepository) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		messageIDs := tx.Model(&models.Message{}).Select("id").Where("user_id = ?", id)
		if err := tx.Where("message_id IN (?)", messageIDs).Delete(&models.Like{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", id).Delete(&models.Like{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", id).Delete(&models.Message{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_being_followed_id = ? OR user_following_id = ?", id, id).
			Delete(&models.Follow{}).Error; err != nil {
			return err
		}

		res := tx.Delete(&models.User{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}

// Follow inserts a follow edge. Repeats are no-ops.
func (r *userRepository) Follow(followerID, followeeID uint) error {
	exists, err := r.IsFollowing(followerID, followeeID)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}
	follow := models.Follow{UserBeingFollowedID: followeeID, UserFollowingID: followerID}
	return r.db.Create(&follow).Error
}

// Unfollow removes a follow edge. Removing an absent edge is a no-op.
func (r *userRepository) Unfollow(followerID, followeeID uint) error {
	return r.db.
		Where("user_being_followed_id = ? AND user_following_id = ?", followeeID, followerID).
		Delete(&models.Follow{}).Error
}

func (r *userRepository) IsFollowing(followerID, followeeID uint) (bool, error) {
	var count int64
	err := r.db.Model(&models.Follow{}).
		Where("user_being_followed_id = ? AND user_following_id = ?", followeeID, followerID).
		Count(&count).Error
	return count > 0, err
}

func (r *userRepository) IsFollowedBy(followeeID, followerID uint) (bool, error) {
	return r.IsFollowing(followerID, followeeID)
}

// GetFollowing returns the users that userID follows.
func (r *userRepository) GetFollowing(userID uint) ([]models.User, error) {
	var users []models.User
	err := r.db.Model(&models.User{}).
		Joins("INNER JOIN follows ON follows.user_being_followed_id = users.id").
		Where("follows.user_following_id = ?", userID).
		Order("users.username ASC").
		Find(&users).Error
	return users, err
}

// GetFollowers returns the users following userID.
func (r *userRepository) GetFollowers(userID uint) ([]models.User, error) {
	var users []models.User
	err := r.db.Model(&models.User{}).
		Joins("INNER JOIN follows ON follows.user_following_id = users.id").
		Where("follows.user_being_followed_id = ?", userID).
		Order("users.username ASC").
		Find(&users).Error
	return users, err
}

// isUniqueViolation matches the duplicate-key wording of both the
// postgres and sqlite drivers.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate key") || strings.Contains(msg, "unique constraint")
}

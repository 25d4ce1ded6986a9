package repositories

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/kathyn262/Waddle/models"
)

func TestSignupHashesPassword(t *testing.T) {
	db := newTestDB(t)
	users := NewUserRepository(db)

	user, err := users.Signup("penguin", "penguin@example.com", "password123", "")
	require.NoError(t, err)

	assert.NotEqual(t, "password123", user.PwHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PwHash), []byte("password123")))
	assert.Equal(t, models.DefaultImageURL, user.ImageURL)
	assert.Equal(t, models.DefaultHeaderImageURL, user.HeaderImageURL)
}

func TestSignupDuplicateUsername(t *testing.T) {
	db := newTestDB(t)
	users := NewUserRepository(db)

	signupTestUser(t, users, "penguin")

	_, err := users.Signup("penguin", "other@example.com", "password123", "")
	assert.ErrorIs(t, err, ErrDuplicate)

	var count int64
	require.NoError(t, db.Model(&models.User{}).Where("username = ?", "penguin").Count(&count).Error)
	assert.Equal(t, int64(1), count, "duplicate signup must not create a second row")
}

func TestSignupDuplicateEmail(t *testing.T) {
	db := newTestDB(t)
	users := NewUserRepository(db)

	signupTestUser(t, users, "penguin")

	_, err := users.Signup("otherbird", "penguin@example.com", "password123", "")
	assert.ErrorIs(t, err, ErrDuplicate)
}

func TestAuthenticate(t *testing.T) {
	db := newTestDB(t)
	users := NewUserRepository(db)
	created := signupTestUser(t, users, "penguin")

	user, ok := users.Authenticate("penguin", "password123")
	require.True(t, ok)
	assert.Equal(t, created.ID, user.ID)

	user, ok = users.Authenticate("penguin", "wrongpassword")
	assert.False(t, ok)
	assert.Nil(t, user)

	user, ok = users.Authenticate("nobody", "password123")
	assert.False(t, ok)
	assert.Nil(t, user)
}

func TestFollowLifecycle(t *testing.T) {
	db := newTestDB(t)
	users := NewUserRepository(db)
	a := signupTestUser(t, users, "alpha")
	b := signupTestUser(t, users, "beta")

	require.NoError(t, users.Follow(a.ID, b.ID))

	following, err := users.IsFollowing(a.ID, b.ID)
	require.NoError(t, err)
	assert.True(t, following)

	followedBy, err := users.IsFollowedBy(b.ID, a.ID)
	require.NoError(t, err)
	assert.True(t, followedBy)

	require.NoError(t, users.Unfollow(a.ID, b.ID))

	following, err = users.IsFollowing(a.ID, b.ID)
	require.NoError(t, err)
	assert.False(t, following)

	followedBy, err = users.IsFollowedBy(b.ID, a.ID)
	require.NoError(t, err)
	assert.False(t, followedBy)

	// unfollowing an absent edge is a no-op
	assert.NoError(t, users.Unfollow(a.ID, b.ID))
}

func TestFollowIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	users := NewUserRepository(db)
	a := signupTestUser(t, users, "alpha")
	b := signupTestUser(t, users, "beta")

	require.NoError(t, users.Follow(a.ID, b.ID))
	require.NoError(t, users.Follow(a.ID, b.ID))

	var count int64
	require.NoError(t, db.Model(&models.Follow{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestFollowingAndFollowersLists(t *testing.T) {
	db := newTestDB(t)
	users := NewUserRepository(db)
	a := signupTestUser(t, users, "alpha")
	b := signupTestUser(t, users, "beta")
	c := signupTestUser(t, users, "gamma")

	require.NoError(t, users.Follow(a.ID, b.ID))
	require.NoError(t, users.Follow(a.ID, c.ID))
	require.NoError(t, users.Follow(c.ID, b.ID))

	following, err := users.GetFollowing(a.ID)
	require.NoError(t, err)
	require.Len(t, following, 2)
	assert.Equal(t, "beta", following[0].Username)
	assert.Equal(t, "gamma", following[1].Username)

	followers, err := users.GetFollowers(b.ID)
	require.NoError(t, err)
	require.Len(t, followers, 2)
	assert.Equal(t, "alpha", followers[0].Username)
	assert.Equal(t, "gamma", followers[1].Username)

	followers, err = users.GetFollowers(a.ID)
	require.NoError(t, err)
	assert.Empty(t, followers)
}

func TestSearch(t *testing.T) {
	db := newTestDB(t)
	users := NewUserRepository(db)
	signupTestUser(t, users, "penguin")
	signupTestUser(t, users, "kingpenguin")
	signupTestUser(t, users, "walrus")

	all, err := users.Search("")
	require.NoError(t, err)
	assert.Len(t, all, 3)

	matches, err := users.Search("penguin")
	require.NoError(t, err)
	require.Len(t, matches, 2)
	assert.Equal(t, "kingpenguin", matches[0].Username)
	assert.Equal(t, "penguin", matches[1].Username)
}

func TestUpdateProfile(t *testing.T) {
	db := newTestDB(t)
	users := NewUserRepository(db)
	user := signupTestUser(t, users, "penguin")

	updated, err := users.UpdateProfile(user.ID, ProfileUpdate{
		Username: "emperor",
		Email:    "emperor@example.com",
		ImageURL: "/static/images/emperor.png",
		Bio:      "waddling since 2020",
		Location: "Antarctica",
	})
	require.NoError(t, err)
	assert.Equal(t, "emperor", updated.Username)
	assert.Equal(t, "waddling since 2020", updated.Bio)
	assert.Equal(t, "Antarctica", updated.Location)
	// blank header falls back to the default
	assert.Equal(t, models.DefaultHeaderImageURL, updated.HeaderImageURL)
}

func TestUpdateProfileDuplicateUsername(t *testing.T) {
	db := newTestDB(t)
	users := NewUserRepository(db)
	signupTestUser(t, users, "taken")
	user := signupTestUser(t, users, "penguin")

	_, err := users.UpdateProfile(user.ID, ProfileUpdate{
		Username: "taken",
		Email:    "penguin@example.com",
	})
	assert.ErrorIs(t, err, ErrDuplicate)
}

func TestDeleteCascades(t *testing.T) {
	db := newTestDB(t)
	users := NewUserRepository(db)
	messages := NewMessageRepository(db)
	likes := NewLikeRepository(db)

	victim := signupTestUser(t, users, "victim")
	other := signupTestUser(t, users, "other")

	victimMsg, err := messages.Create(victim.ID, "soon gone")
	require.NoError(t, err)
	otherMsg, err := messages.Create(other.ID, "staying put")
	require.NoError(t, err)

	require.NoError(t, users.Follow(victim.ID, other.ID))
	require.NoError(t, users.Follow(other.ID, victim.ID))
	require.NoError(t, likes.Like(victim.ID, otherMsg.ID))
	require.NoError(t, likes.Like(other.ID, victimMsg.ID))

	require.NoError(t, users.Delete(victim.ID))

	_, err = users.GetByID(victim.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	var msgCount, followCount, likeCount int64
	require.NoError(t, db.Model(&models.Message{}).Count(&msgCount).Error)
	require.NoError(t, db.Model(&models.Follow{}).Count(&followCount).Error)
	require.NoError(t, db.Model(&models.Like{}).Count(&likeCount).Error)
	assert.Equal(t, int64(1), msgCount, "only the other user's message survives")
	assert.Equal(t, int64(0), followCount)
	assert.Equal(t, int64(0), likeCount)

	// the bystander is untouched
	_, err = users.GetByID(other.ID)
	assert.NoError(t, err)

	assert.ErrorIs(t, users.Delete(victim.ID), ErrNotFound)
}

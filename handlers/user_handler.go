package handlers

import (
	"fmt"
	"net/http"
	"net/mail"

	"github.com/sirupsen/logrus"

	"github.com/kathyn262/Waddle/dto"
	"github.com/kathyn262/Waddle/middleware"
	"github.com/kathyn262/Waddle/models"
	"github.com/kathyn262/Waddle/monitoring"
	"github.com/kathyn262/Waddle/repositories"
)

const minPasswordLength = 6

// UserHandler serves signup, login, profile, and social-graph endpoints.
type UserHandler struct {
	Users   repositories.UserRepository
	Msgs    repositories.MessageRepository
	Likes   repositories.LikeRepository
	Session *middleware.Session
}

func NewUserHandler(users repositories.UserRepository, msgs repositories.MessageRepository,
	likes repositories.LikeRepository, session *middleware.Session) *UserHandler {
	return &UserHandler{Users: users, Msgs: msgs, Likes: likes, Session: session}
}

// requireUser returns the logged-in user, or redirects to the landing
// page with a flash notice and returns nil. Anonymous requests never
// reach the repositories.
func (h *UserHandler) requireUser(w http.ResponseWriter, r *http.Request) *models.User {
	user := middleware.CurrentUser(r)
	if user == nil {
		h.Session.Flash(w, r, "Access unauthorized.")
		http.Redirect(w, r, "/", http.StatusFound)
		return nil
	}
	return user
}

// Signup creates an account and logs the new user in.
func (h *UserHandler) Signup(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid form data")
		return
	}

	username := r.PostFormValue("username")
	email := r.PostFormValue("email")
	password := r.PostFormValue("password")
	password2 := r.PostForm.Get("password2")
	imageURL := r.PostFormValue("image_url")

	if username == "" {
		writeError(w, http.StatusBadRequest, "You have to enter a username")
		return
	}
	if _, err := mail.ParseAddress(email); err != nil {
		writeError(w, http.StatusBadRequest, "You have to enter a valid email address")
		return
	}
	if password == "" {
		writeError(w, http.StatusBadRequest, "You have to enter a password")
		return
	}
	if len(password) < minPasswordLength {
		writeError(w, http.StatusBadRequest, "The password must be at least 6 characters long")
		return
	}
	if _, sent := r.PostForm["password2"]; sent && password != password2 {
		writeError(w, http.StatusBadRequest, "The two passwords do not match")
		return
	}

	user, err := h.Users.Signup(username, email, password, imageURL)
	if err == repositories.ErrDuplicate {
		writeError(w, http.StatusBadRequest, "The username is already taken")
		return
	}
	if err != nil {
		logrus.WithError(err).Error("signup failed")
		writeError(w, http.StatusInternalServerError, "Database error")
		return
	}

	if err := h.Session.Login(w, r, user.ID); err != nil {
		logrus.WithError(err).Error("failed to establish session")
		writeError(w, http.StatusInternalServerError, "Session error")
		return
	}

	monitoring.SignupSuccess.Inc()
	http.Redirect(w, r, "/", http.StatusFound)
}

// Login authenticates a user and establishes a session. Unknown usernames
// and wrong passwords get the same response.
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid form data")
		return
	}

	username := r.PostFormValue("username")
	password := r.PostFormValue("password")

	if username == "" {
		writeError(w, http.StatusBadRequest, "You have to enter a username")
		return
	}
	if password == "" {
		writeError(w, http.StatusBadRequest, "You have to enter a password")
		return
	}

	user, ok := h.Users.Authenticate(username, password)
	if !ok {
		monitoring.LoginFailure.WithLabelValues("invalid credentials").Inc()
		writeError(w, http.StatusUnauthorized, "Invalid credentials.")
		return
	}

	if err := h.Session.Login(w, r, user.ID); err != nil {
		logrus.WithError(err).Error("failed to establish session")
		writeError(w, http.StatusInternalServerError, "Session error")
		return
	}

	monitoring.LoginSuccess.Inc()
	h.Session.Flash(w, r, fmt.Sprintf("Hello, %s!", user.Username))
	http.Redirect(w, r, "/", http.StatusFound)
}

// Logout clears the session.
func (h *UserHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.Session.Logout(w, r); err != nil {
		logrus.WithError(err).Warn("failed to clear session")
	}
	h.Session.Flash(w, r, "Successfully logged out!")
	http.Redirect(w, r, "/login", http.StatusFound)
}

// ListUsers lists all users, optionally filtered by the q query param.
func (h *UserHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.Users.Search(r.URL.Query().Get("q"))
	if err != nil {
		logrus.WithError(err).Error("user search failed")
		writeError(w, http.StatusInternalServerError, "Database error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"users": dto.NewUserDTOs(users)})
}

// ShowUser returns a profile together with the user's last 100 messages.
func (h *UserHandler) ShowUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid user ID")
		return
	}

	user, err := h.Users.GetByID(id)
	if err == repositories.ErrNotFound {
		writeError(w, http.StatusNotFound, "User not found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Database error")
		return
	}

	messages, err := h.Msgs.ListByUser(id, repositories.HomeFeedLimit)
	if err != nil {
		logrus.WithError(err).Error("failed to list user messages")
		writeError(w, http.StatusInternalServerError, "Database error")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"user":     dto.NewUserDTO(*user),
		"messages": dto.NewMessageDTOs(messages),
	})
}

// ShowFollowing lists the users a profile is following.
func (h *UserHandler) ShowFollowing(w http.ResponseWriter, r *http.Request) {
	if h.requireUser(w, r) == nil {
		return
	}
	h.relationshipList(w, r, "following", h.Users.GetFollowing)
}

// ShowFollowers lists a profile's followers.
func (h *UserHandler) ShowFollowers(w http.ResponseWriter, r *http.Request) {
	if h.requireUser(w, r) == nil {
		return
	}
	h.relationshipList(w, r, "followers", h.Users.GetFollowers)
}

func (h *UserHandler) relationshipList(w http.ResponseWriter, r *http.Request,
	key string, list func(uint) ([]models.User, error)) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid user ID")
		return
	}

	user, err := h.Users.GetByID(id)
	if err == repositories.ErrNotFound {
		writeError(w, http.StatusNotFound, "User not found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Database error")
		return
	}

	users, err := list(id)
	if err != nil {
		logrus.WithError(err).Error("failed to list relationships")
		writeError(w, http.StatusInternalServerError, "Database error")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"user": dto.NewUserDTO(*user),
		key:    dto.NewUserDTOs(users),
	})
}

// AddFollow makes the current user follow the target user.
func (h *UserHandler) AddFollow(w http.ResponseWriter, r *http.Request) {
	current := h.requireUser(w, r)
	if current == nil {
		return
	}

	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid user ID")
		return
	}

	if _, err := h.Users.GetByID(id); err != nil {
		writeError(w, http.StatusNotFound, "User not found")
		return
	}

	if err := h.Users.Follow(current.ID, id); err != nil {
		logrus.WithError(err).Error("follow failed")
		writeError(w, http.StatusInternalServerError, "Database error")
		return
	}

	monitoring.FollowsCreated.Inc()
	http.Redirect(w, r, fmt.Sprintf("/users/%d/following", current.ID), http.StatusFound)
}

// StopFollowing makes the current user unfollow the target user.
func (h *UserHandler) StopFollowing(w http.ResponseWriter, r *http.Request) {
	current := h.requireUser(w, r)
	if current == nil {
		return
	}

	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid user ID")
		return
	}

	if err := h.Users.Unfollow(current.ID, id); err != nil {
		logrus.WithError(err).Error("unfollow failed")
		writeError(w, http.StatusInternalServerError, "Database error")
		return
	}

	http.Redirect(w, r, fmt.Sprintf("/users/%d/following", current.ID), http.StatusFound)
}

// EditProfile updates the current user's profile after re-verifying
// their password.
func (h *UserHandler) EditProfile(w http.ResponseWriter, r *http.Request) {
	current := h.requireUser(w, r)
	if current == nil {
		return
	}

	if err := r.ParseForm(); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid form data")
		return
	}

	if _, ok := h.Users.Authenticate(current.Username, r.PostFormValue("password")); !ok {
		h.Session.Flash(w, r, "Wrong Password!")
		http.Redirect(w, r, "/", http.StatusFound)
		return
	}

	username := r.PostFormValue("username")
	email := r.PostFormValue("email")
	if username == "" {
		writeError(w, http.StatusBadRequest, "You have to enter a username")
		return
	}
	if _, err := mail.ParseAddress(email); err != nil {
		writeError(w, http.StatusBadRequest, "You have to enter a valid email address")
		return
	}

	_, err := h.Users.UpdateProfile(current.ID, repositories.ProfileUpdate{
		Username:       username,
		Email:          email,
		ImageURL:       r.PostFormValue("image_url"),
		HeaderImageURL: r.PostFormValue("header_image_url"),
		Bio:            r.PostFormValue("bio"),
		Location:       r.PostFormValue("location"),
	})
	if err == repositories.ErrDuplicate {
		writeError(w, http.StatusBadRequest, "The username is already taken")
		return
	}
	if err != nil {
		logrus.WithError(err).Error("profile update failed")
		writeError(w, http.StatusInternalServerError, "Database error")
		return
	}

	http.Redirect(w, r, fmt.Sprintf("/users/%d", current.ID), http.StatusFound)
}

// DeleteUser removes the current user's account and everything they own.
func (h *UserHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	current := h.requireUser(w, r)
	if current == nil {
		return
	}

	if err := h.Users.Delete(current.ID); err != nil {
		logrus.WithError(err).Error("account deletion failed")
		writeError(w, http.StatusInternalServerError, "Database error")
		return
	}

	if err := h.Session.Logout(w, r); err != nil {
		logrus.WithError(err).Warn("failed to clear session")
	}
	http.Redirect(w, r, "/signup", http.StatusFound)
}

// ShowLikes lists the messages a user has liked.
func (h *UserHandler) ShowLikes(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid user ID")
		return
	}

	user, err := h.Users.GetByID(id)
	if err == repositories.ErrNotFound {
		writeError(w, http.StatusNotFound, "User not found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Database error")
		return
	}

	liked, err := h.Likes.ListLikedByUser(id)
	if err != nil {
		logrus.WithError(err).Error("failed to list likes")
		writeError(w, http.StatusInternalServerError, "Database error")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"user":  dto.NewUserDTO(*user),
		"likes": dto.NewMessageDTOs(liked),
	})
}

package handlers

import (
	"fmt"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/kathyn262/Waddle/dto"
	"github.com/kathyn262/Waddle/middleware"
	"github.com/kathyn262/Waddle/models"
	"github.com/kathyn262/Waddle/monitoring"
	"github.com/kathyn262/Waddle/repositories"
)

// MessageHandler serves message creation, display, deletion, and likes.
type MessageHandler struct {
	Msgs    repositories.MessageRepository
	Likes   repositories.LikeRepository
	Session *middleware.Session
}

func NewMessageHandler(msgs repositories.MessageRepository, likes repositories.LikeRepository,
	session *middleware.Session) *MessageHandler {
	return &MessageHandler{Msgs: msgs, Likes: likes, Session: session}
}

func (h *MessageHandler) requireUser(w http.ResponseWriter, r *http.Request, notice string) *models.User {
	user := middleware.CurrentUser(r)
	if user == nil {
		h.Session.Flash(w, r, notice)
		http.Redirect(w, r, "/", http.StatusFound)
		return nil
	}
	return user
}

// CreateMessage posts a new message for the current user.
func (h *MessageHandler) CreateMessage(w http.ResponseWriter, r *http.Request) {
	current := h.requireUser(w, r, "Access unauthorized.")
	if current == nil {
		return
	}

	if err := r.ParseForm(); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid form data")
		return
	}

	text := r.PostFormValue("text")
	if text == "" {
		writeError(w, http.StatusBadRequest, "You have to enter a message")
		return
	}

	if _, err := h.Msgs.Create(current.ID, text); err != nil {
		if err == repositories.ErrInvalid {
			writeError(w, http.StatusBadRequest, "The message is too long")
			return
		}
		logrus.WithError(err).Error("failed to post message")
		writeError(w, http.StatusInternalServerError, "Database error")
		return
	}

	monitoring.MessagesPosted.Inc()
	http.Redirect(w, r, fmt.Sprintf("/users/%d", current.ID), http.StatusFound)
}

// ShowMessage returns a single message.
func (h *MessageHandler) ShowMessage(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid message ID")
		return
	}

	message, err := h.Msgs.GetByID(id)
	if err == repositories.ErrNotFound {
		writeError(w, http.StatusNotFound, "Message not found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Database error")
		return
	}

	writeJSON(w, http.StatusOK, dto.NewMessageDTO(*message))
}

// DeleteMessage removes a message. Only the author may delete it.
func (h *MessageHandler) DeleteMessage(w http.ResponseWriter, r *http.Request) {
	current := h.requireUser(w, r, "Access unauthorized.")
	if current == nil {
		return
	}

	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid message ID")
		return
	}

	switch err := h.Msgs.Delete(id, current.ID); err {
	case nil:
	case repositories.ErrNotFound:
		writeError(w, http.StatusNotFound, "Message not found")
		return
	case repositories.ErrForbidden:
		writeError(w, http.StatusForbidden, "You can only delete your own messages")
		return
	default:
		logrus.WithError(err).Error("failed to delete message")
		writeError(w, http.StatusInternalServerError, "Database error")
		return
	}

	monitoring.MessagesDeleted.Inc()
	http.Redirect(w, r, fmt.Sprintf("/users/%d", current.ID), http.StatusFound)
}

// LikeMessage records a like by the current user.
func (h *MessageHandler) LikeMessage(w http.ResponseWriter, r *http.Request) {
	current := h.requireUser(w, r, "Must be logged in to 'like' something.")
	if current == nil {
		return
	}

	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid message ID")
		return
	}

	switch err := h.Likes.Like(current.ID, id); err {
	case nil:
	case repositories.ErrNotFound:
		writeError(w, http.StatusNotFound, "Message not found")
		return
	case repositories.ErrForbidden:
		writeError(w, http.StatusForbidden, "You cannot like your own message")
		return
	default:
		logrus.WithError(err).Error("failed to like message")
		writeError(w, http.StatusInternalServerError, "Database error")
		return
	}

	monitoring.LikesCreated.Inc()
	http.Redirect(w, r, "/", http.StatusFound)
}

// UnlikeMessage removes the current user's like.
func (h *MessageHandler) UnlikeMessage(w http.ResponseWriter, r *http.Request) {
	current := h.requireUser(w, r, "Must be logged in to 'like' something.")
	if current == nil {
		return
	}

	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid message ID")
		return
	}

	switch err := h.Likes.Unlike(current.ID, id); err {
	case nil:
	case repositories.ErrNotFound:
		writeError(w, http.StatusNotFound, "Like not found")
		return
	default:
		logrus.WithError(err).Error("failed to unlike message")
		writeError(w, http.StatusInternalServerError, "Database error")
		return
	}

	target := r.Referer()
	if target == "" {
		target = "/"
	}
	http.Redirect(w, r, target, http.StatusFound)
}

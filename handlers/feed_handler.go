package handlers

import (
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/kathyn262/Waddle/dto"
	"github.com/kathyn262/Waddle/middleware"
	"github.com/kathyn262/Waddle/repositories"
)

// FeedHandler serves the home timeline.
type FeedHandler struct {
	Msgs    repositories.MessageRepository
	Session *middleware.Session
}

func NewFeedHandler(msgs repositories.MessageRepository, session *middleware.Session) *FeedHandler {
	return &FeedHandler{Msgs: msgs, Session: session}
}

// Home returns the current user's feed: the 100 most recent messages
// authored by them or anyone they follow. Anonymous visitors get an
// empty landing payload.
func (h *FeedHandler) Home(w http.ResponseWriter, r *http.Request) {
	notices := h.Session.Flashes(w, r)

	current := middleware.CurrentUser(r)
	if current == nil {
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"messages": []dto.MessageDTO{},
			"notices":  notices,
		})
		return
	}

	messages, err := h.Msgs.HomeFeed(current.ID)
	if err != nil {
		logrus.WithError(err).Error("failed to compose home feed")
		writeError(w, http.StatusInternalServerError, "Database error")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"user":     dto.NewUserDTO(*current),
		"messages": dto.NewMessageDTOs(messages),
		"notices":  notices,
	})
}

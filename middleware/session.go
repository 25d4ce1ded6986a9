package middleware

import (
	"context"
	"encoding/gob"
	"net/http"

	"github.com/gorilla/sessions"
	"github.com/sirupsen/logrus"

	"github.com/kathyn262/Waddle/models"
	"github.com/kathyn262/Waddle/repositories"
)

const (
	sessionName = "waddle-session"
	userIDKey   = "user_id"
)

type contextKey int

const currentUserKey contextKey = iota

// Flash slices travel through the gob-encoded session cookie.
func init() {
	gob.Register([]interface{}{})
}

// Session resolves the logged-in user from the cookie-backed session and
// hands it to handlers through the request context. The current user is
// always an explicit request-scoped value, never package state.
type Session struct {
	store *sessions.CookieStore
	users repositories.UserRepository
}

func NewSession(secret string, users repositories.UserRepository) *Session {
	return &Session{
		store: sessions.NewCookieStore([]byte(secret)),
		users: users,
	}
}

// LoadUser looks up the session's user id, if any, and stores the user in
// the request context. A stale id (deleted account) is treated as anonymous.
func (s *Session) LoadUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		session, _ := s.store.Get(r, sessionName)

		if id, ok := session.Values[userIDKey].(uint); ok {
			user, err := s.users.GetByID(id)
			if err == nil {
				ctx := context.WithValue(r.Context(), currentUserKey, user)
				r = r.WithContext(ctx)
			} else if err != repositories.ErrNotFound {
				logrus.WithError(err).Warn("failed to load session user")
			}
		}

		next.ServeHTTP(w, r)
	})
}

// CurrentUser returns the logged-in user for this request, or nil.
func CurrentUser(r *http.Request) *models.User {
	user, _ := r.Context().Value(currentUserKey).(*models.User)
	return user
}

// Login stores the user id in the session.
func (s *Session) Login(w http.ResponseWriter, r *http.Request, userID uint) error {
	session, _ := s.store.Get(r, sessionName)
	session.Values[userIDKey] = userID
	return session.Save(r, w)
}

// Logout drops the user id from the session.
func (s *Session) Logout(w http.ResponseWriter, r *http.Request) error {
	session, _ := s.store.Get(r, sessionName)
	delete(session.Values, userIDKey)
	return session.Save(r, w)
}

// Flash queues a one-shot notice for the next page load.
func (s *Session) Flash(w http.ResponseWriter, r *http.Request, message string) {
	session, _ := s.store.Get(r, sessionName)
	session.AddFlash(message)
	if err := session.Save(r, w); err != nil {
		logrus.WithError(err).Warn("failed to save flash")
	}
}

// Flashes drains and returns the queued notices.
func (s *Session) Flashes(w http.ResponseWriter, r *http.Request) []string {
	session, _ := s.store.Get(r, sessionName)
	raw := session.Flashes()
	if len(raw) > 0 {
		if err := session.Save(r, w); err != nil {
			logrus.WithError(err).Warn("failed to clear flashes")
		}
	}

	notices := make([]string, 0, len(raw))
	for _, f := range raw {
		if msg, ok := f.(string); ok {
			notices = append(notices, msg)
		}
	}
	return notices
}

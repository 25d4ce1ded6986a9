package routes

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/kathyn262/Waddle/handlers"
	"github.com/kathyn262/Waddle/middleware"
	"github.com/kathyn262/Waddle/monitoring"
)

// SetupRoutes initializes all the application routes
// The routing logic is isolated here
func SetupRoutes(userHandler *handlers.UserHandler, messageHandler *handlers.MessageHandler,
	feedHandler *handlers.FeedHandler, session *middleware.Session) http.Handler {
	router := mux.NewRouter()

	// Auth routes
	router.HandleFunc("/signup", userHandler.Signup).Methods("POST")
	router.HandleFunc("/login", userHandler.Login).Methods("POST")
	router.HandleFunc("/logout", userHandler.Logout).Methods("GET")

	// User routes
	router.HandleFunc("/users", userHandler.ListUsers).Methods("GET")
	router.HandleFunc("/users/profile", userHandler.EditProfile).Methods("POST")
	router.HandleFunc("/users/delete", userHandler.DeleteUser).Methods("POST")
	router.HandleFunc("/users/follow/{id}", userHandler.AddFollow).Methods("POST")
	router.HandleFunc("/users/stop-following/{id}", userHandler.StopFollowing).Methods("POST")
	router.HandleFunc("/users/{id}", userHandler.ShowUser).Methods("GET")
	router.HandleFunc("/users/{id}/following", userHandler.ShowFollowing).Methods("GET")
	router.HandleFunc("/users/{id}/followers", userHandler.ShowFollowers).Methods("GET")
	router.HandleFunc("/users/{id}/likes", userHandler.ShowLikes).Methods("GET")

	// Message routes
	router.HandleFunc("/messages/new", messageHandler.CreateMessage).Methods("POST")
	router.HandleFunc("/messages/{id}", messageHandler.ShowMessage).Methods("GET")
	router.HandleFunc("/messages/{id}/delete", messageHandler.DeleteMessage).Methods("POST")
	router.HandleFunc("/messages/{id}/like", messageHandler.LikeMessage).Methods("POST")
	router.HandleFunc("/messages/{id}/unlike", messageHandler.UnlikeMessage).Methods("POST")

	// Home feed
	router.HandleFunc("/", feedHandler.Home).Methods("GET")

	// Add metrics endpoint
	router.Handle("/metrics", promhttp.Handler()).Methods("GET")

	return monitoring.InstrumentHandler(session.LoadUser(router))
}

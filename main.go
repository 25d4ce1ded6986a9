package main

import (
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/kathyn262/Waddle/config"
	"github.com/kathyn262/Waddle/database"
	"github.com/kathyn262/Waddle/handlers"
	"github.com/kathyn262/Waddle/logger"
	"github.com/kathyn262/Waddle/middleware"
	"github.com/kathyn262/Waddle/repositories"
	"github.com/kathyn262/Waddle/routes"
)

func main() {
	logger.InitLogger()
	cfg := config.Load()

	db, err := database.New(cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBSSLMode)
	if err != nil {
		logrus.WithError(err).Fatal("failed to connect to database")
	}
	if err := database.Migrate(db); err != nil {
		logrus.WithError(err).Fatal("failed to migrate database")
	}

	userRepo := repositories.NewUserRepository(db)
	messageRepo := repositories.NewMessageRepository(db)
	likeRepo := repositories.NewLikeRepository(db)

	session := middleware.NewSession(cfg.SessionSecret, userRepo)

	userHandler := handlers.NewUserHandler(userRepo, messageRepo, likeRepo, session)
	messageHandler := handlers.NewMessageHandler(messageRepo, likeRepo, session)
	feedHandler := handlers.NewFeedHandler(messageRepo, session)

	handler := routes.SetupRoutes(userHandler, messageHandler, feedHandler, session)

	logrus.WithField("port", cfg.Port).Info("Server running")
	logrus.Fatal(http.ListenAndServe(":"+cfg.Port, handler))
}

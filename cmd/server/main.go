package main

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"healthcare-backend/internal/ai"
	"healthcare-backend/internal/auth"
	"healthcare-backend/internal/config"
	"healthcare-backend/internal/database"
	"healthcare-backend/internal/handlers"
	"healthcare-backend/internal/service"
)

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}

	db, err := database.InitDB(cfg)
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}

	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.JWTTTL)
	analyzer := ai.NewGeminiClient(
		cfg.GeminiBaseURL,
		cfg.GeminiAPIKey,
		cfg.GeminiTextModel,
		cfg.GeminiVisionModel,
		cfg.GeminiTimeout,
		logger,
	)

	accounts := service.NewAccountService(db, logger)
	appointments := service.NewAppointmentService(db, logger)
	notifications := service.NewNotificationService(db, logger)
	symptoms := service.NewSymptomService(db, analyzer, ai.HeaderSegmenter{}, logger)
	dashboard := service.NewDashboardService(db, notifications, symptoms, logger)

	h := &handlers.Handlers{
		Auth:          handlers.NewAuthHandler(accounts, tokens),
		Profile:       handlers.NewProfileHandler(accounts, dashboard),
		Appointments:  handlers.NewAppointmentHandler(appointments),
		Symptoms:      handlers.NewSymptomHandler(symptoms),
		Notifications: handlers.NewNotificationHandler(notifications),
		Tokens:        tokens,
	}

	r := gin.Default()
	r.Use(cors.New(cors.Config{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Authorization"},
	}))
	handlers.RegisterRoutes(r, h)

	logger.WithField("port", cfg.ListenPort).Info("Server starting")
	if err := r.Run(":" + cfg.ListenPort); err != nil {
		logger.Fatalf("Failed to start server: %v", err)
	}
}

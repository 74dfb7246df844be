package main

import (
	"log"

	api "embox-backend/cmd/api"
	analysisUsecase "embox-backend/internal/analysis/usecase"
	authdomain "embox-backend/internal/auth/domain"
	authRepo "embox-backend/internal/auth/repository"
	authUsecase "embox-backend/internal/auth/usecase"
	botUsecase "embox-backend/internal/bot/usecase"
	emailUsecase "embox-backend/internal/email/usecase"
	taskUsecase "embox-backend/internal/task/usecase"
	"embox-backend/pkg/config"
	"embox-backend/pkg/database"
	"embox-backend/pkg/gemini"
	"embox-backend/pkg/gmail"
	"embox-backend/pkg/line"

	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg := config.Load()

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatal("Failed to create logger:", err)
	}
	defer logger.Sync()

	// Credential store: in-memory by default (credentials do not survive a
	// restart), Postgres when DATABASE_URL is set.
	var credRepo authRepo.CredentialRepository
	if cfg.DatabaseURL != "" {
		db, err := database.NewPostgresConnection(cfg.DatabaseURL)
		if err != nil {
			logger.Fatal("failed to connect to database", zap.Error(err))
		}
		if err := db.AutoMigrate(&authdomain.Credential{}); err != nil {
			logger.Fatal("failed to migrate database", zap.Error(err))
		}
		credRepo = authRepo.NewGormCredentialRepository(db)
		logger.Info("using Postgres credential store")
	} else {
		credRepo = authRepo.NewMemoryCredentialRepository()
		logger.Info("using in-memory credential store")
	}

	// External clients
	geminiService := gemini.NewService(cfg.GeminiAPIKey, cfg.GeminiTimeout)
	gmailService := gmail.NewService()
	lineClient := line.NewClient(cfg.LineChannelToken, cfg.LineChannelSecret, cfg.GeminiTimeout)

	// Use cases (dependency injection)
	authUsecaseInstance := authUsecase.NewAuthUsecase(credRepo, cfg, logger)
	analysisUsecaseInstance := analysisUsecase.NewAnalysisUsecase(geminiService, logger)
	emailUsecaseInstance := emailUsecase.NewEmailUsecase(geminiService, logger)
	taskUsecaseInstance := taskUsecase.NewTaskUsecase(geminiService, logger)

	orchestrator := botUsecase.NewOrchestrator(credRepo, gmailService, analysisUsecaseInstance, cfg.APIBaseURL, logger)
	dispatcher := botUsecase.NewDispatcher(analysisUsecaseInstance, emailUsecaseInstance, taskUsecaseInstance, orchestrator, logger)

	// HTTP handler
	handler := api.NewHandler(authUsecaseInstance, analysisUsecaseInstance, emailUsecaseInstance, taskUsecaseInstance, dispatcher, lineClient, logger)

	logger.Info("server starting", zap.String("port", cfg.Port))
	if err := handler.Start(":" + cfg.Port); err != nil {
		logger.Fatal("failed to start server", zap.Error(err))
	}
}

package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"talentlens-backend/config"
	_ "talentlens-backend/docs" // Important for Swagger
	v1 "talentlens-backend/internal/delivery/http/v1"
	"talentlens-backend/internal/repository/localstore"
	"talentlens-backend/internal/usecase"
	"talentlens-backend/pkg/extractor"
	"talentlens-backend/pkg/logger"

	"github.com/go-playground/validator/v10"
)

// @title           TalentLens Candidate API
// @version         1.0
// @description     Backend-for-frontend caching normalized candidate profiles extracted from LinkedIn URLs and CV uploads.
// @host            localhost:8081
// @BasePath        /v1
func main() {
	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 2. Setup Logger
	logger.Init()
	logger.Log.Info("Starting talentlens backend", "port", cfg.Port, "extractor", cfg.ExtractorBaseURL)

	// 3. Setup Candidate Slot + Store
	slot := localstore.NewStore(cfg.StorePath)
	store := usecase.NewCandidateStore(slot)
	logger.Log.Info("Candidate store seeded", "candidates", store.Len(), "slot", cfg.StorePath)

	// 4. Setup Extraction Backend Client
	client := extractor.NewClient(cfg.ExtractorBaseURL)

	// 5. Setup UseCases
	validate := validator.New()
	candidateUC := usecase.NewCandidateUsecase(store, client, validate)

	// 6. Setup Router
	router := v1.NewRouter(v1.RouterDeps{
		CandidateUC: candidateUC,
		Config:      cfg,
	})

	// 7. Start Server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Error("Listen failed", "error", err)
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Error("Server forced to shutdown", "error", err)
	}

	logger.Log.Info("Server exiting")
}

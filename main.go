package main

import (
	"log"
	"net/http"

	"sangbangcopy/backend/internal/config"
	copy_application "sangbangcopy/backend/internal/features/copywriting/application"
	"sangbangcopy/backend/internal/features/copywriting/infrastructure"
	copy_http "sangbangcopy/backend/internal/features/copywriting/presentation/http"
	learning_application "sangbangcopy/backend/internal/features/learning/application"
	learning_http "sangbangcopy/backend/internal/features/learning/presentation/http"
	translation_application "sangbangcopy/backend/internal/features/translation/application"
	translation_http "sangbangcopy/backend/internal/features/translation/presentation/http"
	"sangbangcopy/backend/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Load .env file
	err := godotenv.Load()
	if err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	store, err := storage.NewSQLite(cfg.Store.Path)
	if err != nil {
		log.Fatalf("Failed to open store: %v", err)
	}
	defer store.Close()

	aiClient, err := infrastructure.NewAIClient(cfg.AI.APIKey, cfg.AI.BaseURL)
	if err != nil {
		log.Fatalf("Failed to create AI client: %v", err)
	}

	// Initialize services
	learningService, err := learning_application.NewLearningService(store)
	if err != nil {
		log.Fatalf("Failed to load learning items: %v", err)
	}
	translationService, err := translation_application.NewTranslationService(store)
	if err != nil {
		log.Fatalf("Failed to load translation rules: %v", err)
	}
	generationService := copy_application.NewGenerationService(aiClient, learningService, translationService, copy_application.Models{
		Pro:   cfg.AI.ProModel,
		Flash: cfg.AI.FlashModel,
	})

	r := gin.Default()

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
		})
	})

	// Copy generation API routes
	copyGroup := r.Group("/api/copy")
	{
		handler := copy_http.NewCopyHandler(generationService)
		copyGroup.POST("/generate", handler.GenerateHandler)
		copyGroup.GET("/sessions/:id", handler.GetSessionHandler)
		copyGroup.POST("/sessions/:id/title/regenerate", handler.RegenerateMainTitleHandler)
		copyGroup.POST("/sessions/:id/sections/:index/title/regenerate", handler.RegenerateSectionTitleHandler)
		copyGroup.GET("/sessions/:id/export", handler.ExportHandler)
	}

	// Learning material API routes
	learningGroup := r.Group("/api/learning")
	{
		handler := learning_http.NewLearningHandler(learningService)
		learningGroup.GET("", handler.ListHandler)
		learningGroup.POST("", handler.CreateHandler)
		learningGroup.PUT("/:id", handler.UpdateHandler)
		learningGroup.DELETE("/:id", handler.DeleteHandler)
	}

	// Translation rule API routes
	translationGroup := r.Group("/api/translations")
	{
		handler := translation_http.NewTranslationHandler(translationService)
		translationGroup.GET("", handler.ListHandler)
		translationGroup.POST("", handler.CreateHandler)
		translationGroup.DELETE("/:id", handler.DeleteHandler)
	}

	r.Run(cfg.Server.Addr)
}

package main

import (
	"context"
	"log"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/googleai"
	"go.uber.org/zap"

	"github.com/careoch/careoch-backend/internal/auth"
	"github.com/careoch/careoch-backend/internal/config"
	"github.com/careoch/careoch-backend/internal/database"
	"github.com/careoch/careoch-backend/internal/handlers"
	"github.com/careoch/careoch-backend/internal/insights"
	"github.com/careoch/careoch-backend/internal/scheduler"
	"github.com/careoch/careoch-backend/internal/services"
)

func main() {
	// 1. Environment & config (.env is optional outside local dev)
	_ = godotenv.Load()
	cfg := config.Load()

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatal("Failed to create logger:", err)
	}
	defer logger.Sync()

	// 2. Database connection. A missing or unreachable database runs the API
	// in degraded mode rather than refusing to start.
	db, err := database.Connect(cfg.DatabaseURL, logger)
	if err != nil {
		logger.Warn("database connection failed, running without persistence", zap.Error(err))
		db = nil
	}

	// 3. Gemini client. Without a key the insight paths serve deterministic
	// fallback data.
	var model llms.Model
	if cfg.GeminiAPIKey != "" {
		llm, err := googleai.New(context.Background(),
			googleai.WithAPIKey(cfg.GeminiAPIKey),
			googleai.WithDefaultModel(cfg.GeminiModel),
		)
		if err != nil {
			logger.Warn("failed to create Gemini client, using fallback insights", zap.Error(err))
		} else {
			model = llm
			logger.Info("Gemini client connected", zap.String("model", cfg.GeminiModel))
		}
	} else {
		logger.Warn("GEMINI_API_KEY is not configured, using fallback insights")
	}
	generator := insights.NewGenerator(model, logger)

	// 4. Core services
	insightService := services.NewInsightService(db, generator, cfg.InsightRefreshTTL, logger)
	userService := services.NewUserService(db, generator, cfg.InsightTxTimeout, cfg.InsightRefreshTTL, logger)
	resumeService := services.NewResumeService(db)
	coverLetterService := services.NewCoverLetterService(db)

	// 5. Background refresh of stale insights
	sched := scheduler.New(insightService, cfg.RefreshCron, logger)
	if err := sched.Start(context.Background()); err != nil {
		logger.Fatal("failed to start scheduler", zap.Error(err))
	}
	defer sched.Stop()

	// 6. Handlers
	dashboardHandler := handlers.NewDashboardHandler(insightService)
	userHandler := handlers.NewUserHandler(userService)
	resumeHandler := handlers.NewResumeHandler(userService, resumeService)
	coverLetterHandler := handlers.NewCoverLetterHandler(userService, coverLetterService)

	// 7. Router & CORS
	r := gin.Default()
	corsCfg := cors.DefaultConfig()
	corsCfg.AllowAllOrigins = true // For development only
	corsCfg.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization", auth.HeaderUserID}
	r.Use(cors.New(corsCfg))
	r.Use(auth.Middleware())

	// 8. Routes
	api := r.Group("/api/v1")
	{
		api.GET("/health", handlers.HealthCheck)

		api.GET("/dashboard/insights", dashboardHandler.GetInsights)

		api.POST("/users/sync", userHandler.SyncUser)
		api.GET("/users/me/onboarding", userHandler.OnboardingStatus)
		api.PUT("/users/me/profile", userHandler.UpdateProfile)

		api.GET("/resume", resumeHandler.GetResume)
		api.PUT("/resume", resumeHandler.SaveResume)

		api.GET("/cover-letters", coverLetterHandler.List)
		api.POST("/cover-letters", coverLetterHandler.Create)
		api.GET("/cover-letters/:id", coverLetterHandler.Get)
		api.DELETE("/cover-letters/:id", coverLetterHandler.Delete)
	}

	logger.Info("server starting", zap.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Fatal("server failed to start", zap.Error(err))
	}
}

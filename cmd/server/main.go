package main

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/sessions"
	redisStore "github.com/gin-contrib/sessions/redis"
	"github.com/gin-gonic/gin"
	"github.com/yukikurage/job-marketplace-api/internal/config"
	"github.com/yukikurage/job-marketplace-api/internal/constants"
	"github.com/yukikurage/job-marketplace-api/internal/database"
	"github.com/yukikurage/job-marketplace-api/internal/handlers"
	"github.com/yukikurage/job-marketplace-api/internal/middleware"
	"github.com/yukikurage/job-marketplace-api/internal/repository"
	"github.com/yukikurage/job-marketplace-api/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	// Connect to database
	if err := database.Connect(cfg); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run migrations
	if err := database.Migrate(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	r := gin.Default()
	r.Use(middleware.RequestID())

	if len(cfg.CORSAllowedOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     cfg.CORSAllowedOrigins,
			AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
			AllowHeaders:     []string{"Origin", "Content-Type", constants.RequestIDHeader},
			ExposeHeaders:    []string{constants.RequestIDHeader},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}

	// Setup session middleware with Redis
	redisAddr := cfg.RedisHost + ":" + cfg.RedisPort
	store, err := redisStore.NewStore(
		10,        // Redis pool size
		"tcp",     // network type
		redisAddr, // Redis address from config
		"",        // password (empty = no password)
		[]byte(cfg.SessionSecret),
	)
	if err != nil {
		log.Fatalf("Failed to create Redis store: %v", err)
	}
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7,
		HttpOnly: true,
		Secure:   cfg.GinMode == gin.ReleaseMode,
		SameSite: http.SameSiteLaxMode,
	})
	r.Use(sessions.Sessions(constants.SessionCookieName, store))

	var aiService *services.AIService
	if cfg.OpenAIAPIKey != "" {
		aiService = services.NewAIService(cfg.OpenAIAPIKey)
	} else {
		log.Println("OPENAI_API_KEY not set; job drafting disabled")
	}

	db := database.GetDB()
	userRepo := repository.NewUserRepository(db)
	jobRepo := repository.NewJobRepository(db)
	appRepo := repository.NewApplicationRepository(db)

	authService := services.NewAuthService(userRepo)
	profileService := services.NewProfileService(userRepo, repository.NewProfileRepository(db))
	jobService := services.NewJobService(jobRepo, repository.NewCategoryRepository(db), appRepo, aiService)
	applicationService := services.NewApplicationService(appRepo, jobRepo)
	interviewService := services.NewInterviewService(repository.NewInterviewRepository(db), appRepo)

	handlers.RegisterRoutes(r, handlers.Handlers{
		Auth:        handlers.NewAuthHandler(authService),
		Dashboard:   handlers.NewDashboardHandler(jobService, applicationService),
		Job:         handlers.NewJobHandler(jobService),
		Application: handlers.NewApplicationHandler(applicationService),
		Interview:   handlers.NewInterviewHandler(interviewService),
		Profile:     handlers.NewProfileHandler(profileService),
	})

	log.Printf("Server starting on :%s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

package main

import (
	"context"
	"log"
	"time"

	"github.com/AlchemistChaos/nt-2-sub001/config"
	"github.com/AlchemistChaos/nt-2-sub001/internal/api"
	"github.com/AlchemistChaos/nt-2-sub001/internal/database"
	"github.com/AlchemistChaos/nt-2-sub001/internal/middleware"
	"github.com/AlchemistChaos/nt-2-sub001/internal/router"
	"github.com/AlchemistChaos/nt-2-sub001/internal/server"
	"github.com/AlchemistChaos/nt-2-sub001/internal/service"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.New(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := database.RunMigrations(db, "migrations"); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	redisClient, err := database.NewRedisClient(cfg)
	if err != nil {
		log.Printf("Redis unavailable, caching and rate limiting disabled: %v", err)
		redisClient = nil
	}

	s3Cfg, err := config.NewS3Config(context.Background())
	if err != nil {
		log.Printf("S3 unavailable, photo uploads disabled: %v", err)
		s3Cfg = nil
	}

	authService := service.NewAuthService(db, cfg.JWTSecret)
	profileService := service.NewProfileService(db)
	biometricService := service.NewBiometricService(db)
	goalService := service.NewGoalService(db)
	targetService := service.NewTargetService(db, redisClient, goalService, biometricService)
	mealService := service.NewMealService(db, targetService)
	menuItemService := service.NewMenuItemService(db, mealService)

	var photoService *service.PhotoService
	if s3Cfg != nil {
		if err := s3Cfg.SetupBucketPolicy(context.Background()); err != nil {
			log.Printf("Failed to apply bucket policy, photos may not be publicly readable: %v", err)
		}
		photoService = service.NewPhotoService(s3Cfg)
	}

	assistantService, err := service.NewAssistantService(mealService, targetService)
	if err != nil {
		log.Printf("Assistant unavailable: %v", err)
	}

	var limiter *middleware.RateLimiter
	if redisClient != nil {
		limiter = middleware.NewRateLimiter(redisClient, middleware.RateLimitConfig{
			Limit:     20,
			Window:    time.Minute,
			KeyPrefix: "assistant",
		})
	}

	handlers := router.Handlers{
		Auth:       api.NewAuthHandler(authService),
		Profile:    api.NewProfileHandler(profileService),
		Biometrics: api.NewBiometricHandler(biometricService),
		Goals:      api.NewGoalHandler(goalService),
		Targets:    api.NewTargetHandler(targetService),
		Meals:      api.NewMealHandler(mealService, photoService),
		MenuItems:  api.NewMenuItemHandler(menuItemService),
		Assistant:  api.NewAssistantHandler(assistantService),
	}

	engine := router.SetupRouter(handlers, authService, limiter)

	srv := server.NewServer(engine)
	log.Printf("Starting server on port %s", cfg.ServerPort)
	if err := srv.Start(cfg.ServerPort); err != nil {
		log.Fatalf("Server error: %v", err)
	}
	log.Println("Server stopped")
}

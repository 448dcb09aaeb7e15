package main

import (
	"context"
	"log"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/recipe-notebook/backend/config"
	"github.com/recipe-notebook/backend/internal/api"
	"github.com/recipe-notebook/backend/internal/database"
	"github.com/recipe-notebook/backend/internal/imageset"
	"github.com/recipe-notebook/backend/internal/middleware"
	"github.com/recipe-notebook/backend/internal/router"
	"github.com/recipe-notebook/backend/internal/server"
	"github.com/recipe-notebook/backend/internal/service"
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

	// Redis backs the genre-name cache and the upload rate limiter; the
	// service degrades to direct reads and unlimited uploads without it.
	redisClient, err := database.NewRedisClient(cfg)
	if err != nil {
		log.Printf("Redis unavailable, continuing without cache and rate limiting: %v", err)
		redisClient = nil
	}

	recipeService := service.NewRecipeService(db)
	genreService := service.NewGenreService(db, redisClient, recipeService)
	favoriteService := service.NewFavoriteService(db)
	identityService := service.NewIdentityService(cfg.TokenSecret)

	// Without object storage the API still runs; saves simply keep
	// recipes imageless.
	var imageService *service.ImageService
	var imageHandler *api.ImageHandler
	s3Config, err := config.NewS3Config(context.Background(), cfg)
	if err != nil {
		log.Printf("S3 unavailable, continuing without image uploads: %v", err)
	} else {
		if err := s3Config.SetupBucketPolicy(context.Background()); err != nil {
			log.Printf("Failed to apply bucket policy, uploaded images may not be public: %v", err)
		}
		imageService = service.NewImageService(s3Config)
		var limiter *middleware.RateLimiter
		if redisClient != nil {
			limiter = middleware.NewImageUploadRateLimiter(redisClient)
		}
		imageHandler = api.NewImageHandler(imageService, limiter)
	}

	var uploader imageset.Uploader
	if imageService != nil {
		uploader = imageService
	}

	engine := router.SetupRouter(router.Handlers{
		Health:   api.NewHealthHandler(db),
		Identity: api.NewIdentityHandler(identityService),
		Recipe:   api.NewRecipeHandler(recipeService, favoriteService, genreService, uploader),
		Genre:    api.NewGenreHandler(genreService),
		Favorite: api.NewFavoriteHandler(recipeService, favoriteService),
		Image:    imageHandler,
	}, identityService, cfg.CORSOrigins)

	srv := server.New(net.JoinHostPort(cfg.ServerHost, cfg.ServerPort), engine)

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		if err != nil {
			log.Fatalf("Server error: %v", err)
		}
	case sig := <-quit:
		log.Printf("Received signal: %v", sig)
	}

	log.Println("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server shutdown error: %v", err)
	}
	log.Println("Server stopped")
}

package main

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"

	"github.com/wayfareapp/wayfare-backend/internal/config"
	"github.com/wayfareapp/wayfare-backend/internal/database"
	"github.com/wayfareapp/wayfare-backend/internal/handlers"
	"github.com/wayfareapp/wayfare-backend/internal/middleware"
	"github.com/wayfareapp/wayfare-backend/internal/routes"
	"github.com/wayfareapp/wayfare-backend/internal/services"
	"github.com/wayfareapp/wayfare-backend/internal/store"
)

func main() {
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	if err := godotenv.Load(); err != nil {
		log.Info("no .env file found")
	}
	cfg := config.Load()

	log.Info("connecting to MongoDB")
	mongoClient, db, err := database.Connect(cfg.MongoURI)
	if err != nil {
		log.Error("failed to connect to MongoDB", "error", err)
		os.Exit(1)
	}
	defer database.Disconnect(mongoClient)

	log.Info("connecting to Redis")
	redisClient, err := database.ConnectRedis(cfg.RedisURI)
	if err != nil {
		log.Error("failed to connect to Redis", "error", err)
		os.Exit(1)
	}
	defer redisClient.Close()

	// Stores and services, injected into handlers. No globals.
	users := store.NewUsers(db)
	trips := store.NewTrips(db)
	reviews := store.NewReviews(db)
	sessions := services.NewSessions(redisClient)

	var uploader handlers.ImageUploader
	if cfg.CloudinaryName != "" && cfg.CloudinaryAPIKey != "" && cfg.CloudinaryAPISecret != "" {
		cld, err := services.NewCloudinaryService(cfg.CloudinaryName, cfg.CloudinaryAPIKey, cfg.CloudinaryAPISecret)
		if err != nil {
			log.Warn("failed to initialize Cloudinary, uploads disabled", "error", err)
		} else {
			uploader = cld
			log.Info("Cloudinary service initialized")
		}
	} else {
		log.Warn("Cloudinary credentials not set, uploads disabled")
	}

	authHandler := handlers.NewAuthHandler(users, sessions, log)
	tripHandler := handlers.NewTripHandler(trips, users, log)
	reviewHandler := handlers.NewReviewHandler(reviews, users, log)
	uploadHandler := handlers.NewUploadHandler(uploader, log)

	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(middleware.RequestLogger(log))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	if cfg.IsProduction() {
		r.Use(middleware.SecurityHeaders)
	}
	r.Use(middleware.RateLimit(redisClient))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	routes.SetupRoutes(r, authHandler, tripHandler, reviewHandler, uploadHandler, sessions)

	log.Info("wayfare backend running", "port", cfg.Port, "env", cfg.Environment)
	if err := http.ListenAndServe(":"+cfg.Port, r); err != nil {
		log.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

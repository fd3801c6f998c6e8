package api

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog/log"

	"github.com/rpupo63/portfolio-backend/config"
	"github.com/rpupo63/portfolio-backend/database"
	"github.com/rpupo63/portfolio-backend/services"
)

type Server struct {
	*http.Server
	startupTime time.Time
}

func NewServer(database database.Database) (Server, error) {
	c := config.New()

	port := config.GetString(c, "PORT", "8080")
	address := fmt.Sprintf("0.0.0.0:%s", port) // Bind to 0.0.0.0 for external access

	startupTime := time.Now()

	router, err := newRouter(database, withConfig(c), withStartupTime(startupTime))
	if err != nil {
		return Server{}, err
	}

	server := &http.Server{
		Addr:         address,
		Handler:      router,
		ReadTimeout:  config.GetDuration(c, "READ_TIMEOUT", 180*time.Second),
		WriteTimeout: config.GetDuration(c, "WRITE_TIMEOUT", 180*time.Second),
		IdleTimeout:  config.GetDuration(c, "IDLE_TIMEOUT", 180*time.Second),
	}

	return Server{server, startupTime}, nil
}

type router struct {
	config      map[string]string
	startupTime time.Time
}

func withConfig(c map[string]string) func(*router) {
	return func(r *router) {
		r.config = c
	}
}

func withStartupTime(startupTime time.Time) func(*router) {
	return func(r *router) {
		r.startupTime = startupTime
	}
}

func newRouter(database database.Database, opts ...func(*router)) (*chi.Mux, error) {
	var router router
	for _, opt := range opts {
		opt(&router)
	}

	chiRouter := chi.NewRouter()
	chiRouter.Use(LogInternalServerErrors)

	acceptedOrigins := strings.Split(config.GetString(router.config, "ACCEPTED_ORIGINS", "*"), ",")
	chiRouter.Use(cors.Handler(cors.Options{
		AllowedOrigins:   acceptedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Object storage collaborator for project images. Uploads are disabled
	// when no bucket is configured; projects then fall back to URL fields.
	var uploader imageStorage
	if bucket := config.GetString(router.config, "S3_BUCKET", ""); bucket != "" {
		storage, err := services.NewS3ImageStorage(context.Background(), services.S3Config{
			Bucket:    bucket,
			Region:    config.GetString(router.config, "S3_REGION", "us-east-1"),
			BaseURL:   config.GetString(router.config, "S3_BASE_URL", ""),
			AccessKey: config.GetString(router.config, "S3_ACCESS_KEY", ""),
			SecretKey: config.GetString(router.config, "S3_SECRET_KEY", ""),
		})
		if err != nil {
			return nil, err
		}
		uploader = storage
	} else {
		log.Warn().Msg("S3_BUCKET not set, image uploads are disabled")
	}

	// Auth collaborator gating the admin routes.
	var sessions sessionValidator
	if projectID := config.GetString(router.config, "DESCOPE_PROJECT_ID", ""); projectID != "" {
		auth, err := services.NewDescopeAuth(projectID)
		if err != nil {
			return nil, err
		}
		sessions = auth
	}
	adminToken := config.GetString(router.config, "BACKEND_PASSWORD", "")
	if sessions == nil && adminToken == "" {
		log.Warn().Msg("No admin credentials configured, admin routes will reject every request")
	}

	notifier := services.NewOwnerNotifier(router.config)

	handlers := initializeHandlers(database, uploader, notifier)
	authMiddleware := newAuthMiddleware(sessions, adminToken)

	setupRoutes(chiRouter, handlers, authMiddleware)

	return chiRouter, nil
}

func (s Server) Start(errChannel chan<- error) {
	log.Info().Msgf("Server started on: %s", s.Addr)
	errChannel <- s.ListenAndServe()
}

func (s Server) ShutdownGracefully(timeout time.Duration) {
	log.Info().Msg("Gracefully shutting down...")

	gracefullCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := s.Shutdown(gracefullCtx); err != nil {
		log.Error().Msgf("Error shutting down the server: %v", err)
	} else {
		log.Info().Msg("HttpServer gracefully shut down")
	}
}

// File: app/server.go
package app

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"tailorpro/config"
	"tailorpro/handler"
	"tailorpro/logger"
	"tailorpro/model"
	"tailorpro/repository"
	"tailorpro/router"
	"tailorpro/service"
	"time"
)

// FrontendClientID and FrontendClientSecret identify the consumer the stand-in
// server is seeded with.
const (
	FrontendClientID     = "tailor-frontend"
	FrontendClientSecret = "tailor-secret-123"
)

// ServerOptions configure the stand-in server.
type ServerOptions struct {
	JWTSecret     string
	AccessTTL     time.Duration
	RefreshTTL    time.Duration
	BcryptCost    int
	Clients       map[string]string
	AdminName     string
	AdminPassword string
}

// Server is the wired stand-in of the remote API. Its repositories are
// exposed so tests can arrange data directly.
type Server struct {
	Router    http.Handler
	Users     *repository.UserRepository
	Tokens    *repository.TokenRepository
	Resources *repository.ResourceRepository
	Issuer    *service.TokenIssuer
}

// NewServer wires repositories, handlers and router and seeds the fixture
// data: the four measurement types, the frontend consumer and an
// administrator account.
func NewServer(opts ServerOptions) (*Server, error) {
	clients := map[string]string{FrontendClientID: FrontendClientSecret}
	for id, secret := range opts.Clients {
		clients[id] = secret
	}

	s := &Server{
		Users:     repository.NewUserRepository(opts.BcryptCost),
		Tokens:    repository.NewTokenRepository(),
		Resources: repository.NewResourceRepository(),
		Issuer:    service.NewTokenIssuer(opts.JWTSecret, opts.AccessTTL),
	}

	// --- Wiring All Layers Together ---
	s.Router = router.NewRouter(router.Handlers{
		Issuer:       s.Issuer,
		OAuth:        handler.NewOAuthHandler(s.Users, s.Tokens, s.Issuer, clients, opts.RefreshTTL),
		Users:        handler.NewUserHandler(s.Users),
		Measurements: handler.NewMeasurementHandler(s.Resources),
	})

	seedMeasurementTypes(s.Resources)
	if opts.AdminName != "" {
		if _, err := s.Users.CreateUser(opts.AdminName, opts.AdminName+"@tailorpro.local", opts.AdminPassword, []string{model.RoleAdministrator}); err != nil {
			return nil, err
		}
	}
	return s, nil
}

func seedMeasurementTypes(resources *repository.ResourceRepository) {
	for _, garment := range model.GarmentOrder {
		description := model.GarmentDescriptions[garment]
		resources.Create(model.Resource{
			Type: model.MeasurementTypeResourceType,
			Attributes: map[string]any{
				"name": garment,
				"description": map[string]any{
					"value":     description,
					"format":    "plain_text",
					"processed": description,
				},
			},
		})
	}
}

// RunServer starts the stand-in server from AppConfig and blocks until
// SIGINT or SIGTERM.
func RunServer() {
	cfg := config.AppConfig.Server
	s, err := NewServer(ServerOptions{
		JWTSecret:     cfg.JWTSecret,
		AccessTTL:     cfg.AccessTTL,
		RefreshTTL:    cfg.RefreshTTL,
		Clients:       map[string]string{config.AppConfig.OAuth.ClientID: config.AppConfig.OAuth.ClientSecret},
		AdminName:     cfg.AdminName,
		AdminPassword: cfg.AdminPassword,
	})
	if err != nil {
		logger.Log.Fatalf("Error seeding the stand-in server: %v", err)
	}

	// --- Start the Server with Graceful Shutdown ---
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           s.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Log.Infof("Server starting on port :%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Log.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Log.Warn("Shutdown signal received. Starting graceful shutdown...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Fatalf("Server forced to shutdown: %v", err)
	}

	logger.Log.Info("Server exited properly")
}

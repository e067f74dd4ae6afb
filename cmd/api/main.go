// Package main wires together all layers and starts the HTTP server.
package main

import (
	"context"
	"database/sql"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"

	"corazones/config"
	adapterauth "corazones/internal/adapters/auth"
	adapteremail "corazones/internal/adapters/email"
	delivery "corazones/internal/delivery/http"
	"corazones/internal/delivery/http/controllers"
	"corazones/internal/repository/postgres"
	"corazones/internal/services"
	"corazones/internal/usecase"
)

const serviceTimeout = 10 * time.Second

// @title Corazones API
// @version 1.0
// @description Event registration and product catalog API.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		os.Exit(1)
	}
	logger := config.NewLogger(cfg.Environment)

	db, err := sql.Open("postgres", cfg.DBUrl)
	if err != nil {
		logger.Error("failed to open database", "err", err)
		os.Exit(1)
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		logger.Error("failed to ping database", "err", err)
		os.Exit(1)
	}

	// Repositories
	personRepo := postgres.NewPersonRepository(db)
	eventRepo := postgres.NewEventRepository(db)
	registrationRepo := postgres.NewRegistrationRepository(db)
	productRepo := postgres.NewProductRepository(db)
	packageRepo := postgres.NewPackageRepository(db)
	tagRepo := postgres.NewTagRepository(db)

	// Adapters
	hasher := adapterauth.NewBcryptHasher(0)
	issuer, verifier := adapterauth.NewJWTTokens(cfg.JWTSecret)
	mailer, err := adapteremail.NewMailer(cfg.Mailer)
	if err != nil {
		logger.Error("failed to configure mailer", "err", err)
		os.Exit(1)
	}
	renderer := adapteremail.NewTemplateRenderer()

	// Services
	emailService := services.NewEmailService(mailer, renderer, logger)
	eventService := services.NewEventService(eventRepo, serviceTimeout)
	registrationService := services.NewRegistrationService(
		eventRepo, personRepo, registrationRepo, emailService, logger, serviceTimeout)
	catalogService := services.NewCatalogService(productRepo, packageRepo, tagRepo, serviceTimeout)
	authService := services.NewAuthService(cfg.AdminEmail, cfg.AdminPasswordHash, hasher, issuer, cfg.JWTExpiry)

	fetcher := usecase.NewSheetHTTPFetcher(&http.Client{Timeout: 30 * time.Second})
	importer := usecase.NewSheetImporter(productRepo, tagRepo, fetcher, logger, 2*time.Minute)

	// Controllers
	eventController := controllers.NewEventController(logger, eventService)
	registrationController := controllers.NewRegistrationController(logger, registrationService)
	catalogController := controllers.NewCatalogController(logger, catalogService)
	authController := controllers.NewAuthController(logger, authService)
	adminController := controllers.NewAdminController(logger, importer)

	router := delivery.NewRouter(
		logger, verifier,
		eventController, registrationController, catalogController,
		authController, adminController,
	)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server listening", "port", cfg.Port, "env", cfg.Environment)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "err", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", "err", err)
		os.Exit(1)
	}
	logger.Info("server stopped")
}

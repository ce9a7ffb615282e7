package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/clinicdesk/clinicdesk/internal/config"
	"github.com/clinicdesk/clinicdesk/internal/domain/auth"
	"github.com/clinicdesk/clinicdesk/internal/domain/clinic"
	"github.com/clinicdesk/clinicdesk/internal/domain/patient"
	"github.com/clinicdesk/clinicdesk/internal/domain/transcribe"
	"github.com/clinicdesk/clinicdesk/internal/platform/kvstore"
	"github.com/clinicdesk/clinicdesk/internal/platform/middleware"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "clinicd",
		Short: "Clinic front-desk API server",
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(migrateCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer()
		},
	}
}

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Fold legacy unprefixed keys into the default clinic",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger()

			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			ctx := context.Background()
			store, err := kvstore.Connect(ctx, kvstore.Config{
				Addr:     cfg.RedisAddr,
				Password: cfg.RedisPassword,
				DB:       cfg.RedisDB,
			})
			if err != nil {
				return err
			}

			clinicSvc := clinic.NewService(clinic.NewRepo(store))
			migrated, err := clinicSvc.MigrateLegacyData(ctx, cfg.DefaultClinic)
			if err != nil {
				return err
			}
			if migrated {
				logger.Info().Str("clinic", cfg.DefaultClinic).Msg("legacy data migrated")
			} else {
				logger.Info().Msg("nothing to migrate")
			}
			return nil
		},
	}
}

func newLogger() zerolog.Logger {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	if os.Getenv("ENV") == "development" || os.Getenv("ENV") == "" {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()
	}
	return logger
}

func runServer() error {
	logger := newLogger()

	// Config
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load config")
	}
	if err := cfg.Validate(); err != nil {
		logger.Fatal().Err(err).Msg("invalid config")
	}

	// Store
	ctx := context.Background()
	store, err := kvstore.Connect(ctx, kvstore.Config{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to store")
	}
	logger.Info().Str("addr", cfg.RedisAddr).Msg("connected to store")

	// Services
	patientSvc := patient.NewService(patient.NewRepo(store))
	clinicSvc := clinic.NewService(clinic.NewRepo(store))
	authSvc := auth.NewService(clinicSvc, cfg.SessionSecret)
	engine := transcribe.NewAzureEngine(transcribe.AzureConfig{
		TranscriptionEndpoint: cfg.TranscriptionEndpoint,
		TranscriptionAPIKey:   cfg.TranscriptionAPIKey,
		CompletionEndpoint:    cfg.CompletionEndpoint,
		CompletionAPIKey:      cfg.CompletionAPIKey,
	})

	// Pre-tenancy installs keep working: fold their keys into the default
	// clinic before serving traffic.
	if _, err := clinicSvc.MigrateLegacyData(ctx, cfg.DefaultClinic); err != nil {
		logger.Warn().Err(err).Msg("legacy migration failed")
	}

	// Echo server
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Global middleware
	e.Use(middleware.Recovery(logger))
	e.Use(middleware.RequestID())
	e.Use(middleware.Logger(logger))
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: cfg.CORSOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete},
		AllowHeaders: []string{"Authorization", "Content-Type", "X-Request-ID"},
	}))

	e.GET("/health", func(c echo.Context) error {
		if err := store.Ping(c.Request().Context()); err != nil {
			return c.JSON(http.StatusServiceUnavailable, map[string]string{"status": "down"})
		}
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	// API routes
	apiV1 := e.Group("/api/v1")
	patient.NewHandler(patientSvc).RegisterRoutes(apiV1)
	clinic.NewHandler(clinicSvc, cfg.DefaultClinic).RegisterRoutes(apiV1)
	auth.NewHandler(authSvc).RegisterRoutes(apiV1)
	transcribe.NewHandler(engine).RegisterRoutes(apiV1)

	// Graceful shutdown
	go func() {
		addr := ":" + cfg.Port
		logger.Info().Str("addr", addr).Msg("starting server")
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Fatal().Err(err).Msg("server shutdown failed")
	}
	logger.Info().Msg("server stopped")
	return nil
}

package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	_ "github.com/lib/pq"

	"github.com/azevedorenato22-stack/bolaodafamilia-sub000/config"
	"github.com/azevedorenato22-stack/bolaodafamilia-sub000/db"
	"github.com/azevedorenato22-stack/bolaodafamilia-sub000/handlers"
	"github.com/azevedorenato22-stack/bolaodafamilia-sub000/live"
	"github.com/azevedorenato22-stack/bolaodafamilia-sub000/middleware"
	"github.com/azevedorenato22-stack/bolaodafamilia-sub000/repositories"
	api "github.com/azevedorenato22-stack/bolaodafamilia-sub000/routes"
	"github.com/azevedorenato22-stack/bolaodafamilia-sub000/services"
	"github.com/azevedorenato22-stack/bolaodafamilia-sub000/storage"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("configuration loaded", slog.Int("port", cfg.ServerPort))

	dbConn, err := db.Connect(cfg.DatabaseURL, 5*time.Second)
	if err != nil {
		logger.Error("failed to connect to database", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := dbConn.Close(); err != nil {
			logger.Error("failed to close database connection", slog.Any("error", err))
		}
	}()
	logger.Info("database connection established")

	uploader, err := storage.NewCloudflareR2Uploader(storage.CloudflareR2UploaderConfig{
		AccountID:       cfg.R2AccountID,
		AccessKeyID:     cfg.R2AccessKeyID,
		SecretAccessKey: cfg.R2SecretAccessKey,
		BucketName:      cfg.R2BucketName,
		PublicBaseURL:   cfg.R2PublicBaseURL,
	})
	if err != nil {
		logger.Error("failed to initialize Cloudflare R2 uploader", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("Cloudflare R2 uploader initialized")

	hub := live.NewHub(logger)
	go hub.Run()
	logger.Info("live hub started")

	userRepo := repositories.NewPostgresUserRepository(dbConn)
	teamRepo := repositories.NewPostgresTeamRepository(dbConn)
	roundRepo := repositories.NewPostgresRoundRepository(dbConn)
	bolaoRepo := repositories.NewPostgresBolaoRepository(dbConn)
	matchRepo := repositories.NewPostgresMatchRepository(dbConn)
	predictionRepo := repositories.NewPostgresPredictionRepository(dbConn)
	championRepo := repositories.NewPostgresChampionRepository(dbConn)
	pickRepo := repositories.NewPostgresChampionPickRepository(dbConn)

	authService := services.NewAuthService(userRepo)
	userService := services.NewUserService(userRepo)
	teamService := services.NewTeamService(teamRepo, uploader)
	roundService := services.NewRoundService(roundRepo)
	matchService := services.NewMatchService(dbConn, matchRepo, predictionRepo, bolaoRepo, hub, logger)
	// matchService doubles as the rescorer for point-config changes.
	bolaoService := services.NewBolaoService(bolaoRepo, matchRepo, matchService, logger)
	predictionService := services.NewPredictionService(predictionRepo, matchRepo, bolaoRepo)
	championService := services.NewChampionService(dbConn, championRepo, pickRepo, bolaoRepo, hub, logger)
	rankingService := services.NewRankingService(bolaoRepo, predictionRepo, pickRepo)
	logger.Info("services initialized")

	authHandler := handlers.NewAuthHandler(authService, cfg.JWTSecretKey)
	userHandler := handlers.NewUserHandler(userService)
	teamHandler := handlers.NewTeamHandler(teamService)
	roundHandler := handlers.NewRoundHandler(roundService)
	bolaoHandler := handlers.NewBolaoHandler(bolaoService)
	matchHandler := handlers.NewMatchHandler(matchService)
	predictionHandler := handlers.NewPredictionHandler(predictionService)
	championHandler := handlers.NewChampionHandler(championService)
	rankingHandler := handlers.NewRankingHandler(rankingService)
	wsHandler := handlers.NewWebsocketHandler(hub, logger)

	authenticator := middleware.NewAuthenticator(cfg.JWTSecretKey)

	router := chi.NewRouter()
	api.SetupRoutes(
		router,
		authenticator,
		authHandler,
		userHandler,
		teamHandler,
		roundHandler,
		bolaoHandler,
		matchHandler,
		predictionHandler,
		championHandler,
		rankingHandler,
		wsHandler,
	)
	logger.Info("routes configured")

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("starting server", slog.String("address", server.Addr))
		serverErrors <- server.ListenAndServe()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", slog.Any("error", err))
			os.Exit(1)
		}
	case sig := <-quit:
		logger.Info("shutdown signal received", slog.String("signal", sig.String()))

		shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancelShutdown()

		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("graceful shutdown failed", slog.Any("error", err))
			if closeErr := server.Close(); closeErr != nil {
				logger.Error("failed to force close server", slog.Any("error", closeErr))
			}
			os.Exit(1)
		}
	}
	logger.Info("application exited")
}

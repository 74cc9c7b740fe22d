package main

import (
	"context"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/qaforum/qaforum-go/internal/config"
	"github.com/qaforum/qaforum-go/internal/crypto"
	"github.com/qaforum/qaforum-go/internal/handler"
	"github.com/qaforum/qaforum-go/internal/logging"
	"github.com/qaforum/qaforum-go/internal/moderation"
	"github.com/qaforum/qaforum-go/internal/repository"
	"github.com/qaforum/qaforum-go/internal/service"
)

func main() {
	configPath := flag.String("config", "", "path to a YAML config file")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		slog.Warn("no .env file found, using environment variables")
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat, os.Stdout)
	if err != nil {
		slog.Error("invalid logging configuration", "error", err)
		os.Exit(1)
	}
	slog.SetDefault(logger)

	ctx := context.Background()

	db, err := repository.NewDB(ctx, cfg.DatabaseDSN)
	if err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := repository.Migrate(ctx, db); err != nil {
		slog.Error("database migration failed", "error", err)
		os.Exit(1)
	}

	tokens, err := crypto.NewTokenCodec([]byte(cfg.TokenKey), cfg.TokenTTL)
	if err != nil {
		slog.Error("token codec setup failed", "error", err)
		os.Exit(1)
	}

	censor, err := moderation.NewClient(moderation.Config{
		BaseURL: cfg.BadWordsURL,
		APIKey:  cfg.BadWordsAPIKey,
		Timeout: cfg.BadWordsTimeout,
	},
		moderation.WithRateLimit(cfg.BadWordsRPS, 1),
		moderation.WithLogger(logger),
	)
	if err != nil {
		slog.Error("moderation client setup failed", "error", err)
		os.Exit(1)
	}

	hasher := crypto.NewHasher(crypto.DefaultHashParams())

	router := handler.NewRouter(handler.Services{
		Accounts:  service.NewAccountService(repository.NewAccountRepository(db), hasher, tokens, logger),
		Questions: service.NewQuestionService(repository.NewQuestionRepository(db), censor, logger),
		Answers:   service.NewAnswerService(repository.NewAnswerRepository(db), censor, logger),
	}, tokens, logger)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		slog.Info("server starting", "port", cfg.Port, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server forced shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped")
}

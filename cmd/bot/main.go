package main

import (
	"context"
	"errors"
	"log"
	"os/signal"
	"syscall"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/aliskhannn/wiki-quiz-bot/internal/config"
	"github.com/aliskhannn/wiki-quiz-bot/internal/delivery/telegram"
	"github.com/aliskhannn/wiki-quiz-bot/internal/infra/postgres"
	"github.com/aliskhannn/wiki-quiz-bot/internal/infra/postgres/repository"
	"github.com/aliskhannn/wiki-quiz-bot/internal/infra/quizapi"
	"github.com/aliskhannn/wiki-quiz-bot/internal/logger"
	"github.com/aliskhannn/wiki-quiz-bot/internal/service"
	"github.com/aliskhannn/wiki-quiz-bot/internal/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	lg, err := logger.New(cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = lg.Sync() }()

	bot, err := tgbotapi.NewBotAPI(cfg.TelegramAPIToken)
	if err != nil {
		lg.Fatal("failed to create bot", zap.Error(err))
	}

	_, err = bot.Request(tgbotapi.NewSetMyCommands(telegram.Commands()...))
	if err != nil {
		lg.Warn("failed to set bot commands", zap.Error(err))
	}

	bot.Debug = cfg.Debug
	lg.Info("authorized", zap.String("account", bot.Self.UserName))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	dsn, err := cfg.DB.DSN()
	if err != nil {
		lg.Fatal("database is not configured", zap.Error(err))
	}

	pool, err := postgres.NewPool(ctx, dsn, postgres.PoolConfig{
		MaxConns:        int32(cfg.DB.MaxConnections),
		MaxConnLifetime: cfg.DB.MaxConnLifetime,
	})
	if err != nil {
		lg.Fatal("failed to connect to database", zap.Error(err))
	}
	defer pool.Close()

	if err := postgres.Migrate(ctx, postgres.NewTransactor(pool)); err != nil {
		lg.Fatal("failed to migrate database", zap.Error(err))
	}

	// Initialize repositories and services.
	userRepo := repository.NewUserRepository(pool)
	generationRepo := repository.NewGenerationRepository(pool)

	quizAPI := quizapi.New(quizapi.Config{
		BaseURL: cfg.QuizAPI.BaseURL,
		Timeout: cfg.QuizAPI.Timeout,
	}, lg)

	workspaces := storage.NewWorkspaceStore()

	quizService := service.NewQuizService(workspaces, quizAPI, quizAPI, generationRepo, lg)
	userService := service.NewUserService(userRepo)

	janitor := service.NewJanitor(workspaces, cfg.Workspace.IdleTTL, cfg.Workspace.PruneSchedule, lg)
	go func() {
		if err := janitor.Start(ctx); err != nil {
			lg.Error("workspace janitor failed", zap.Error(err))
		}
	}()

	handler := telegram.NewHandler(bot, lg, quizService, userService)
	if err := handler.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		lg.Error("telegram handler failed", zap.Error(err))
	}

	lg.Info("shutdown signal received")
}

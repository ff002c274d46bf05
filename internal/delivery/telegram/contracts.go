package telegram

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/aliskhannn/wiki-quiz-bot/internal/domain/entities"
	"github.com/aliskhannn/wiki-quiz-bot/internal/quiz"
	"github.com/aliskhannn/wiki-quiz-bot/internal/workspace"
)

// Bot is the part of the Telegram API the handler uses.
// *tgbotapi.BotAPI satisfies it.
type Bot interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	StopReceivingUpdates()
}

type UserService interface {
	EnsureUser(ctx context.Context, userID, chatID int64) (bool, error)
}

type QuizService interface {
	Workspace(chatID int64) *workspace.Workspace
	Reset(chatID int64) *workspace.Workspace
	ValidateURL(raw string) (string, error)
	SelectTab(chatID int64, tab workspace.Tab)
	Generate(ctx context.Context, chatID int64, rawURL string) (quiz.View, error)
	ShowHistory(ctx context.Context, chatID int64) ([]entities.HistoryEntry, error)
	OpenHistory(ctx context.Context, chatID, quizID int64) (quiz.View, error)
	CloseOverlay(chatID, seq int64) bool
	Act(chatID int64, target workspace.Target, seq int64, action workspace.Action) (quiz.View, bool, error)
	Current(chatID int64, target workspace.Target) (quiz.View, bool)
}

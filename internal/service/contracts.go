package service

import (
	"context"
	"time"

	"github.com/aliskhannn/wiki-quiz-bot/internal/domain/entities"
	"github.com/aliskhannn/wiki-quiz-bot/internal/workspace"
)

// GenerationGateway builds a quiz for an article URL.
type GenerationGateway interface {
	Generate(ctx context.Context, url string) (*entities.QuizContent, error)
}

// HistoryGateway lists and loads previously generated quizzes.
type HistoryGateway interface {
	List(ctx context.Context) ([]entities.HistoryEntry, error)
	FetchByID(ctx context.Context, id int64) (*entities.QuizContent, error)
}

type GenerationJournal interface {
	Save(ctx context.Context, rec *entities.GenerationRecord) error
}

type UserRepository interface {
	Save(ctx context.Context, user *entities.User) (bool, error)
}

type WorkspaceStore interface {
	GetOrCreate(chatID int64, now time.Time) *workspace.Workspace
	Reset(chatID int64, now time.Time) *workspace.Workspace
	PruneIdle(before time.Time) int
}

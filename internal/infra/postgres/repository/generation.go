package repository

import (
	"context"
	"fmt"

	"github.com/aliskhannn/wiki-quiz-bot/internal/domain/entities"
	"github.com/aliskhannn/wiki-quiz-bot/internal/infra/postgres"
)

// GenerationRepository journals quiz generation requests.
type GenerationRepository struct {
	db postgres.DBTX
}

func NewGenerationRepository(db postgres.DBTX) *GenerationRepository {
	return &GenerationRepository{db: db}
}

// Save appends a finished generation request and sets its ID.
func (r *GenerationRepository) Save(ctx context.Context, rec *entities.GenerationRecord) error {
	query := `
		INSERT INTO generation_requests (chat_id, url, status, reason, duration_ms, requested_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`

	err := r.db.QueryRow(ctx, query,
		rec.ChatID,
		rec.URL,
		string(rec.Status),
		rec.Reason,
		rec.Duration.Milliseconds(),
		rec.RequestedAt,
	).Scan(&rec.ID)
	if err != nil {
		return fmt.Errorf("save generation request: %w", err)
	}

	return nil
}

package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/aliskhannn/wiki-quiz-bot/internal/domain/entities"
	"github.com/aliskhannn/wiki-quiz-bot/internal/quiz"
	"github.com/aliskhannn/wiki-quiz-bot/internal/workspace"
)

// generateInput is the URL submitted from the generate view.
type generateInput struct {
	URL string `validate:"required,http_url"`
}

// QuizService drives the chat workspaces: generation, history browsing
// and interaction with the primary and overlay quiz sessions.
type QuizService struct {
	store     WorkspaceStore
	generator GenerationGateway
	history   HistoryGateway
	journal   GenerationJournal
	validate  *validator.Validate
	logger    *zap.Logger
	now       func() time.Time
}

func NewQuizService(
	store WorkspaceStore,
	generator GenerationGateway,
	history HistoryGateway,
	journal GenerationJournal,
	logger *zap.Logger,
) *QuizService {
	return &QuizService{
		store:     store,
		generator: generator,
		history:   history,
		journal:   journal,
		validate:  validator.New(),
		logger:    logger,
		now:       time.Now,
	}
}

// Workspace returns the workspace of chatID, creating it on first use.
func (s *QuizService) Workspace(chatID int64) *workspace.Workspace {
	return s.store.GetOrCreate(chatID, s.now())
}

// Reset drops everything the chat had open and starts over.
func (s *QuizService) Reset(chatID int64) *workspace.Workspace {
	return s.store.Reset(chatID, s.now())
}

// ValidateURL trims raw and checks it is an absolute http(s) URL.
func (s *QuizService) ValidateURL(raw string) (string, error) {
	in := generateInput{URL: strings.TrimSpace(raw)}
	if err := s.validate.Struct(in); err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidURL, err)
	}
	return in.URL, nil
}

// SelectTab switches the chat to tab.
func (s *QuizService) SelectTab(chatID int64, tab workspace.Tab) {
	s.Workspace(chatID).SetTab(tab)
}

// Generate validates rawURL, asks the quiz service for a quiz and opens
// it as the chat's primary session in review mode. Invalid input never
// reaches the gateway. A failed generation leaves the primary session as it was.
func (s *QuizService) Generate(ctx context.Context, chatID int64, rawURL string) (quiz.View, error) {
	url, err := s.ValidateURL(rawURL)
	if err != nil {
		return quiz.View{}, err
	}

	ws := s.Workspace(chatID)
	ticket, err := ws.BeginGeneration()
	if err != nil {
		return quiz.View{}, err
	}

	rec := entities.NewGenerationRecord(chatID, url, s.now())
	s.logger.Info("generating quiz",
		zap.Int64("chat_id", chatID),
		zap.String("url", url),
		zap.String("ticket", ticket.String()),
	)

	content, err := s.generator.Generate(ctx, url)
	if err != nil {
		ws.FailGeneration(ticket)
		gwErr := newGatewayError("generate quiz", err)
		rec.Fail(gwErr.Reason, s.now())
		s.record(ctx, rec)
		return quiz.View{}, gwErr
	}

	rec.Succeed(s.now())
	s.record(ctx, rec)

	view, err := ws.CompleteGeneration(ticket, content)
	if err != nil {
		s.logger.Info("dropping generated quiz",
			zap.Int64("chat_id", chatID),
			zap.String("ticket", ticket.String()),
			zap.Error(err),
		)
		return quiz.View{}, err
	}

	return view, nil
}

// ShowHistory activates the history view and lists stored quizzes.
// Every activation fetches the list again.
func (s *QuizService) ShowHistory(ctx context.Context, chatID int64) ([]entities.HistoryEntry, error) {
	ws := s.Workspace(chatID)
	ws.SetTab(workspace.TabHistory)

	if err := ws.BeginHistory(); err != nil {
		return nil, err
	}

	entries, err := s.history.List(ctx)
	if err != nil {
		ws.FailHistory()
		return nil, newGatewayError("list quizzes", err)
	}

	if err := ws.CompleteHistory(entries); err != nil {
		return nil, err
	}

	entries, _ = ws.History()
	return entries, nil
}

// OpenHistory loads a stored quiz into the chat's overlay session.
func (s *QuizService) OpenHistory(ctx context.Context, chatID, quizID int64) (quiz.View, error) {
	ws := s.Workspace(chatID)
	if err := ws.BeginOpen(); err != nil {
		return quiz.View{}, err
	}

	content, err := s.history.FetchByID(ctx, quizID)
	if err != nil {
		ws.FailOpen()
		return quiz.View{}, newGatewayError("fetch quiz", err)
	}

	return ws.CompleteOpen(content)
}

// CloseOverlay discards the overlay session identified by seq.
func (s *QuizService) CloseOverlay(chatID, seq int64) bool {
	return s.Workspace(chatID).CloseOverlay(seq)
}

// Act applies a user action to one of the chat's sessions.
func (s *QuizService) Act(chatID int64, target workspace.Target, seq int64, action workspace.Action) (quiz.View, bool, error) {
	v, applied, err := s.Workspace(chatID).Apply(target, seq, action)
	if err != nil {
		return quiz.View{}, false, err
	}

	s.logger.Debug("quiz action",
		zap.Int64("chat_id", chatID),
		zap.String("target", string(target)),
		zap.String("action", string(action.Kind)),
		zap.Bool("applied", applied),
		zap.Stringer("state", v.State),
	)
	return v, applied, nil
}

// Current returns the view of a chat's session, if one is open.
func (s *QuizService) Current(chatID int64, target workspace.Target) (quiz.View, bool) {
	return s.Workspace(chatID).Session(target)
}

func (s *QuizService) record(ctx context.Context, rec *entities.GenerationRecord) {
	if s.journal == nil {
		return
	}
	// The request context may already be done when the gateway timed out.
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()

	if err := s.journal.Save(ctx, rec); err != nil {
		s.logger.Error("failed to journal generation request",
			zap.Int64("chat_id", rec.ChatID),
			zap.String("url", rec.URL),
			zap.Error(err),
		)
	}
}

// IsUserError reports whether err should be shown to the user as is
// rather than as an internal failure.
func IsUserError(err error) bool {
	var gw *GatewayError
	return errors.Is(err, ErrInvalidURL) ||
		errors.Is(err, workspace.ErrRequestPending) ||
		errors.As(err, &gw)
}

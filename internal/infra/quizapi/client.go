package quizapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/aliskhannn/wiki-quiz-bot/internal/domain/entities"
)

const (
	defaultTimeout = 90 * time.Second
	maxErrorBody   = 64 << 10

	defaultGenerateReason = "Failed to generate quiz"
	defaultHistoryReason  = "Failed to load quiz history"
	defaultFetchReason    = "Failed to load quiz"
)

var ErrQuizNotFound = errors.New("quiz not found")

// APIError is a non-2xx response from the quiz API.
type APIError struct {
	Status int
	Detail string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("quiz api: status %d: %s", e.Status, e.Detail)
}

// Reason returns the human readable failure reason.
func (e *APIError) Reason() string {
	return e.Detail
}

// Config configures the quiz API client.
type Config struct {
	BaseURL string
	Timeout time.Duration
}

// Client talks to the quiz generation and history service.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *zap.Logger
}

// New creates a quiz API client.
func New(cfg Config, logger *zap.Logger) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL: cfg.BaseURL,
		http:    &http.Client{Timeout: timeout},
		logger:  logger,
	}
}

// Generate asks the service to build a quiz for a Wikipedia article.
// The returned content has no ID: it is not part of history until listed.
func (c *Client) Generate(ctx context.Context, articleURL string) (*entities.QuizContent, error) {
	body, err := json.Marshal(generateRequest{URL: articleURL})
	if err != nil {
		return nil, fmt.Errorf("marshal generate request: %w", err)
	}

	var dto quizDTO
	if err := c.do(ctx, http.MethodPost, "/generate-quiz", body, defaultGenerateReason, &dto); err != nil {
		return nil, err
	}

	return dto.toContent(false), nil
}

// List returns the summaries of every stored quiz.
func (c *Client) List(ctx context.Context) ([]entities.HistoryEntry, error) {
	var items []historyItemDTO
	if err := c.do(ctx, http.MethodGet, "/quizzes", nil, defaultHistoryReason, &items); err != nil {
		return nil, err
	}

	entries := make([]entities.HistoryEntry, 0, len(items))
	for _, it := range items {
		entries = append(entries, it.toEntry())
	}
	return entries, nil
}

// FetchByID loads a stored quiz.
func (c *Client) FetchByID(ctx context.Context, id int64) (*entities.QuizContent, error) {
	var dto quizDTO
	path := "/quiz/" + strconv.FormatInt(id, 10)
	if err := c.do(ctx, http.MethodGet, path, nil, defaultFetchReason, &dto); err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound {
			return nil, fmt.Errorf("%w: %w", ErrQuizNotFound, err)
		}
		return nil, err
	}

	return dto.toContent(true), nil
}

func (c *Client) do(ctx context.Context, method, path string, body []byte, reason string, out any) error {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("new request: %w", err)
	}

	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	res, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer res.Body.Close()

	c.logger.Debug("quiz api response",
		zap.String("method", method),
		zap.String("path", path),
		zap.String("request_id", requestID),
		zap.Int("status", res.StatusCode),
		zap.Duration("took", time.Since(start)),
	)

	if res.StatusCode/100 != 2 {
		return &APIError{
			Status: res.StatusCode,
			Detail: readDetail(res.Body, reason),
		}
	}

	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s response: %w", path, err)
	}

	return nil
}

// readDetail extracts the "detail" field of an error body.
// Validation errors carry a list instead of a string; those fall back to reason.
func readDetail(r io.Reader, reason string) string {
	var e errorDTO
	if err := json.NewDecoder(io.LimitReader(r, maxErrorBody)).Decode(&e); err != nil {
		return reason
	}
	if s, ok := e.Detail.(string); ok && s != "" {
		return s
	}
	return reason
}

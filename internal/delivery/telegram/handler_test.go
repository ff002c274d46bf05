package telegram

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/aliskhannn/wiki-quiz-bot/internal/domain/entities"
	"github.com/aliskhannn/wiki-quiz-bot/internal/service"
	"github.com/aliskhannn/wiki-quiz-bot/internal/storage"
	"github.com/aliskhannn/wiki-quiz-bot/internal/workspace"
)

type fakeBot struct {
	mu     sync.Mutex
	sent   []tgbotapi.Chattable
	nextID int
}

func (b *fakeBot) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.sent = append(b.sent, c)
	b.nextID++
	return tgbotapi.Message{MessageID: 100 + b.nextID}, nil
}

func (b *fakeBot) Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.sent = append(b.sent, c)
	return &tgbotapi.APIResponse{Ok: true}, nil
}

func (b *fakeBot) GetUpdatesChan(tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel {
	return make(chan tgbotapi.Update)
}

func (b *fakeBot) StopReceivingUpdates() {}

func (b *fakeBot) edits(msgID int) []tgbotapi.EditMessageTextConfig {
	b.mu.Lock()
	defer b.mu.Unlock()

	var out []tgbotapi.EditMessageTextConfig
	for _, c := range b.sent {
		if e, ok := c.(tgbotapi.EditMessageTextConfig); ok && e.MessageID == msgID {
			out = append(out, e)
		}
	}
	return out
}

func (b *fakeBot) messages() []tgbotapi.MessageConfig {
	b.mu.Lock()
	defer b.mu.Unlock()

	var out []tgbotapi.MessageConfig
	for _, c := range b.sent {
		if m, ok := c.(tgbotapi.MessageConfig); ok {
			out = append(out, m)
		}
	}
	return out
}

type stubHistory struct {
	mu      sync.Mutex
	entries []entities.HistoryEntry
	err     error
}

func (g *stubHistory) Generate(context.Context, string) (*entities.QuizContent, error) {
	return nil, errors.New("not used")
}

func (g *stubHistory) List(context.Context) ([]entities.HistoryEntry, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.entries, g.err
}

func (g *stubHistory) FetchByID(context.Context, int64) (*entities.QuizContent, error) {
	return nil, errors.New("not used")
}

func (g *stubHistory) fail(err error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.err = err
}

type nopJournal struct{}

func (nopJournal) Save(context.Context, *entities.GenerationRecord) error { return nil }

type nopUsers struct{}

func (nopUsers) EnsureUser(context.Context, int64, int64) (bool, error) { return false, nil }

func newTestHandler(gw *stubHistory) (*Handler, *fakeBot) {
	bot := &fakeBot{}
	svc := service.NewQuizService(storage.NewWorkspaceStore(), gw, gw, nopJournal{}, zap.NewNop())
	return NewHandler(bot, zap.NewNop(), svc, nopUsers{}), bot
}

func press(h *Handler, chatID int64, msgID int, data string) {
	h.handleCallback(context.Background(), &tgbotapi.CallbackQuery{
		ID:      "cb",
		Data:    data,
		Message: &tgbotapi.Message{MessageID: msgID, Chat: &tgbotapi.Chat{ID: chatID}},
	})
	h.wg.Wait()
}

func hasDismiss(markup interface{}) bool {
	kb, ok := markup.(tgbotapi.InlineKeyboardMarkup)
	if !ok {
		return false
	}
	for _, row := range kb.InlineKeyboard {
		for _, b := range row {
			if b.CallbackData != nil && *b.CallbackData == buildDismissCallback() {
				return true
			}
		}
	}
	return false
}

func historyEntries(n int) []entities.HistoryEntry {
	out := make([]entities.HistoryEntry, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, entities.HistoryEntry{
			ID:            int64(n - i),
			Title:         fmt.Sprintf("Article %d", n-i),
			QuestionCount: 7,
		})
	}
	return out
}

func TestRefreshFailureKeepsHistoryList(t *testing.T) {
	gw := &stubHistory{entries: historyEntries(3)}
	h, bot := newTestHandler(gw)

	press(h, 1, 10, buildHistoryRefreshCallback())
	if got := len(bot.edits(10)); got != 1 {
		t.Fatalf("list edits = %d, want 1", got)
	}

	gw.fail(errors.New("connection refused"))
	press(h, 1, 10, buildHistoryRefreshCallback())

	if got := len(bot.edits(10)); got != 1 {
		t.Fatalf("failed refresh edited the list message (%d edits)", got)
	}

	msgs := bot.messages()
	if len(msgs) != 1 {
		t.Fatalf("new messages = %d, want 1", len(msgs))
	}
	if !hasDismiss(msgs[0].ReplyMarkup) {
		t.Fatalf("failure notice has no dismiss button")
	}
	if !strings.Contains(msgs[0].Text, md("Could not reach the quiz service")) {
		t.Fatalf("failure notice = %q", msgs[0].Text)
	}
}

func TestHistoryFailureReplacesLoadingMessage(t *testing.T) {
	gw := &stubHistory{err: errors.New("connection refused")}
	h, bot := newTestHandler(gw)

	press(h, 1, 10, buildTabCallback(workspace.TabHistory))

	// The loading placeholder is the first message the bot sent.
	edits := bot.edits(101)
	if len(edits) != 1 {
		t.Fatalf("loading message edits = %d, want 1", len(edits))
	}
	if edits[0].ReplyMarkup == nil || !hasDismiss(*edits[0].ReplyMarkup) {
		t.Fatalf("failure notice has no dismiss button")
	}
}

func TestHistoryPageTurnsInPlace(t *testing.T) {
	gw := &stubHistory{entries: historyEntries(20)}
	h, bot := newTestHandler(gw)

	press(h, 1, 10, buildHistoryRefreshCallback())
	press(h, 1, 10, buildHistoryPageCallback(2))

	edits := bot.edits(10)
	if len(edits) != 2 {
		t.Fatalf("list edits = %d, want 2", len(edits))
	}

	last := edits[1]
	if !strings.Contains(last.Text, "Page 3/3") {
		t.Fatalf("third page not shown:\n%s", last.Text)
	}
	// Entries 17-20 of the list are the oldest quizzes, Article 4..1.
	if !strings.Contains(last.Text, "Article 1") || strings.Contains(last.Text, "Article 20") {
		t.Fatalf("wrong entries on the last page:\n%s", last.Text)
	}

	opens := 0
	for _, row := range last.ReplyMarkup.InlineKeyboard {
		for _, b := range row {
			if b.CallbackData != nil && strings.HasPrefix(*b.CallbackData, actionHistory+":"+historyOpen+":") {
				opens++
			}
		}
	}
	if opens != 4 {
		t.Fatalf("open buttons on the last page = %d, want 4", opens)
	}
}

func TestErrorHandlingExplainsUserErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"invalid url", fmt.Errorf("%w: scheme", service.ErrInvalidURL), msgInvalidURL},
		{"gateway", &service.GatewayError{Op: "generate", Reason: "Article not found", Err: errors.New("404")}, "⚠️ Article not found"},
		{"internal", errors.New("boom"), msgInternalError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, bot := newTestHandler(&stubHistory{})

			fn := h.withErrorHandling(func(context.Context, int64) error { return tt.err })
			if err := fn(context.Background(), 1); err != nil {
				t.Fatalf("middleware returned %v", err)
			}

			msgs := bot.messages()
			if len(msgs) != 1 || msgs[0].Text != tt.want {
				t.Fatalf("sent %+v, want %q", msgs, tt.want)
			}
		})
	}
}

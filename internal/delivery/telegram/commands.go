package telegram

import (
	"context"
	"errors"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/aliskhannn/wiki-quiz-bot/internal/domain/entities"
	"github.com/aliskhannn/wiki-quiz-bot/internal/quiz"
	"github.com/aliskhannn/wiki-quiz-bot/internal/service"
	"github.com/aliskhannn/wiki-quiz-bot/internal/workspace"
)

// Commands returns the bot command menu.
func Commands() []tgbotapi.BotCommand {
	return []tgbotapi.BotCommand{
		{Command: "generate", Description: "Generate a quiz from a Wikipedia link"},
		{Command: "history", Description: "Browse past quizzes"},
		{Command: "quiz", Description: "Show the current quiz"},
		{Command: "help", Description: "How to use the bot"},
		{Command: "start", Description: "Start over"},
	}
}

func (h *Handler) handleCommand(ctx context.Context, message *tgbotapi.Message) {
	chatID := message.Chat.ID

	switch message.Command() {
	case "start":
		_ = h.withErrorHandling(h.startHandler())(ctx, chatID)

	case "generate":
		_ = h.withErrorHandling(h.generateHandler(message.CommandArguments()))(ctx, chatID)

	case "history":
		_ = h.withErrorHandling(h.historyHandler())(ctx, chatID)

	case "quiz":
		_ = h.withErrorHandling(h.currentQuizHandler())(ctx, chatID)

	case "help":
		h.send(newMessage(chatID, helpMessage()))

	default:
		h.send(newPlainMessage(chatID, msgUnknownCommand))
	}
}

// startHandler drops whatever the chat had open and shows the welcome screen.
func (h *Handler) startHandler() HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		h.quizService.Reset(chatID)

		msg := newMessage(chatID, welcomeMessage())
		msg.ReplyMarkup = buildTabKeyboard()
		h.send(msg)
		return nil
	}
}

// generateHandler activates the generate view. A link passed as an
// argument is submitted right away.
func (h *Handler) generateHandler(args string) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		h.quizService.SelectTab(chatID, workspace.TabGenerate)

		if args != "" {
			return h.submitURLHandler(args)(ctx, chatID)
		}

		h.send(newMessage(chatID, generatePromptMessage()))
		return nil
	}
}

// textHandler treats plain text in the generate view as a link submission.
func (h *Handler) textHandler(text string) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		if h.quizService.Workspace(chatID).Tab() != workspace.TabGenerate {
			msg := newPlainMessage(chatID, "Switch to \"Generate quiz\" to submit a link.")
			msg.ReplyMarkup = buildTabKeyboard()
			h.send(msg)
			return nil
		}
		return h.submitURLHandler(text)(ctx, chatID)
	}
}

// submitURLHandler validates the link, posts a progress message and
// generates the quiz in the background. The progress message is
// replaced by the quiz or by the failure reason.
func (h *Handler) submitURLHandler(raw string) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		url, err := h.quizService.ValidateURL(raw)
		if err != nil {
			return err
		}

		if h.quizService.Workspace(chatID).Pending(workspace.RequestGenerate) {
			h.send(newPlainMessage(chatID, msgGenerationPending))
			return nil
		}

		progress, err := h.bot.Send(newMessage(chatID, generatingMessage(url)))
		if err != nil {
			return fmt.Errorf("send progress message: %w", err)
		}

		h.async(ctx, func(ctx context.Context) {
			v, err := h.quizService.Generate(ctx, chatID, url)
			if err != nil {
				h.reportFailure(chatID, progress.MessageID, workspace.RequestGenerate, err)
				return
			}
			h.showQuiz(chatID, progress.MessageID, workspace.TargetPrimary, v, 0)
		})
		return nil
	}
}

// historyHandler activates the history view and loads the list in the background.
func (h *Handler) historyHandler() HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		if h.quizService.Workspace(chatID).Pending(workspace.RequestHistory) {
			h.send(newPlainMessage(chatID, msgHistoryPending))
			return nil
		}

		loading, err := h.bot.Send(newMessage(chatID, md("⏳ Loading past quizzes…")))
		if err != nil {
			return fmt.Errorf("send loading message: %w", err)
		}

		h.loadHistory(ctx, chatID, loading.MessageID, false)
		return nil
	}
}

// loadHistory fetches the history list and renders its first page into msgID.
// When msgID already shows a list, keepOnFailure leaves it in place and
// reports a failure in a separate message.
func (h *Handler) loadHistory(ctx context.Context, chatID int64, msgID int, keepOnFailure bool) {
	h.async(ctx, func(ctx context.Context) {
		entries, err := h.quizService.ShowHistory(ctx, chatID)
		if err != nil {
			target := msgID
			if keepOnFailure {
				target = 0
			}
			h.reportFailure(chatID, target, workspace.RequestHistory, err)
			return
		}

		h.showHistory(chatID, msgID, entries, 0)
	})
}

// showHistory renders page index of entries into msgID.
func (h *Handler) showHistory(chatID int64, msgID int, entries []entities.HistoryEntry, index int) {
	pages := renderHistoryPages(entries)
	index = clampPage(index, len(pages))

	edit := newEdit(chatID, msgID, pages[index].Text)
	kb := buildHistoryKeyboard(entries, pages, index)
	edit.ReplyMarkup = &kb
	h.send(edit)
}

// currentQuizHandler shows the primary quiz again as a fresh message.
func (h *Handler) currentQuizHandler() HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		v, ok := h.quizService.Current(chatID, workspace.TargetPrimary)
		if !ok {
			h.send(newPlainMessage(chatID, msgQuizUnavailable))
			return nil
		}

		h.showQuiz(chatID, 0, workspace.TargetPrimary, v, 0)
		return nil
	}
}

// showQuiz renders page index of a session into msgID, or into a new
// message when msgID is 0. An out of range index shows the nearest page.
func (h *Handler) showQuiz(chatID int64, msgID int, target workspace.Target, v quiz.View, index int) {
	pages := renderQuizPages(v)
	index = clampPage(index, len(pages))
	kb := buildQuizKeyboard(target, v, pages, index)

	if msgID == 0 {
		msg := newMessage(chatID, pages[index].Text)
		msg.ReplyMarkup = kb
		h.send(msg)
		return
	}

	edit := newEdit(chatID, msgID, pages[index].Text)
	edit.ReplyMarkup = &kb
	h.send(edit)
}

// reportFailure replaces msgID (or sends a new message when msgID is 0)
// with a description of a failed background request.
func (h *Handler) reportFailure(chatID int64, msgID int, kind workspace.RequestKind, err error) {
	var (
		gw   *service.GatewayError
		text string
		kb   *tgbotapi.InlineKeyboardMarkup
	)

	switch {
	case errors.Is(err, context.Canceled):
		h.logger.Info("request cancelled by shutdown",
			zap.Int64("chat_id", chatID),
			zap.String("request", string(kind)),
		)
		return

	case errors.As(err, &gw):
		h.logger.Warn("quiz service request failed",
			zap.Int64("chat_id", chatID),
			zap.String("request", string(kind)),
			zap.Error(err),
		)
		text = failureMessage(gw.Reason)
		dismiss := buildDismissKeyboard()
		kb = &dismiss

	case errors.Is(err, workspace.ErrRequestPending):
		text = md(pendingMessage(kind))

	case errors.Is(err, workspace.ErrStaleResponse), errors.Is(err, workspace.ErrClosed):
		text = md("This request was cancelled.")

	default:
		h.logger.Error("background request failed",
			zap.Int64("chat_id", chatID),
			zap.String("request", string(kind)),
			zap.Error(err),
		)
		text = md(msgInternalError)
	}

	if msgID == 0 {
		msg := newMessage(chatID, text)
		if kb != nil {
			msg.ReplyMarkup = *kb
		}
		h.send(msg)
		return
	}

	edit := newEdit(chatID, msgID, text)
	edit.ReplyMarkup = kb
	h.send(edit)
}

func pendingMessage(kind workspace.RequestKind) string {
	switch kind {
	case workspace.RequestHistory:
		return msgHistoryPending
	case workspace.RequestOpen:
		return msgOpenPending
	default:
		return msgGenerationPending
	}
}

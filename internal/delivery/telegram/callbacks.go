package telegram

import (
	"context"
	"errors"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/aliskhannn/wiki-quiz-bot/internal/quiz"
	"github.com/aliskhannn/wiki-quiz-bot/internal/workspace"
)

func (h *Handler) handleCallback(ctx context.Context, cb *tgbotapi.CallbackQuery) {
	var notice string

	// Remove the user's "clock", optionally with a short notice.
	defer func() {
		h.request(tgbotapi.NewCallback(cb.ID, notice))
	}()

	if cb.Message == nil {
		return
	}

	chatID := cb.Message.Chat.ID
	msgID := cb.Message.MessageID
	data := decodeCallback(cb.Data)

	switch data.Action {
	case actionTab:
		notice = h.handleTabCallback(ctx, chatID, data.Params)
	case actionQuiz:
		notice = h.handleQuizCallback(chatID, msgID, data.Params)
	case actionHistory:
		notice = h.handleHistoryCallback(ctx, chatID, msgID, data.Params)
	case actionDismiss:
		h.request(tgbotapi.NewDeleteMessage(chatID, msgID))
	default:
		h.logger.Warn("unknown callback",
			zap.Int64("chat_id", chatID),
			zap.String("data", cb.Data),
		)
	}
}

func (h *Handler) handleTabCallback(ctx context.Context, chatID int64, params []string) string {
	if len(params) != 1 {
		return ""
	}

	switch workspace.Tab(params[0]) {
	case workspace.TabGenerate:
		_ = h.withErrorHandling(h.generateHandler(""))(ctx, chatID)
	case workspace.TabHistory:
		_ = h.withErrorHandling(h.historyHandler())(ctx, chatID)
	}
	return ""
}

// handleQuizCallback applies a keyboard press to the session it was rendered for,
// or turns its page, and re-renders the message in place.
func (h *Handler) handleQuizCallback(chatID int64, msgID int, params []string) string {
	qc, err := parseQuizCallback(params)
	if err != nil {
		h.logger.Warn("invalid quiz callback",
			zap.Int64("chat_id", chatID),
			zap.Strings("params", params),
		)
		return ""
	}

	if qc.Navigate {
		v, ok := h.quizService.Current(chatID, qc.Target)
		if !ok || v.Seq != qc.Seq {
			h.removeKeyboard(chatID, msgID)
			return msgStaleQuiz
		}
		h.showQuiz(chatID, msgID, qc.Target, v, qc.Page)
		return ""
	}

	v, applied, err := h.quizService.Act(chatID, qc.Target, qc.Seq, qc.Action)
	if err != nil {
		if errors.Is(err, workspace.ErrStaleSession) {
			h.removeKeyboard(chatID, msgID)
			return msgStaleQuiz
		}
		h.logger.Error("quiz action failed",
			zap.Int64("chat_id", chatID),
			zap.Error(err),
		)
		return msgInternalError
	}

	if !applied {
		return refusalNotice(qc.Action, v)
	}

	// Answering keeps the page; a mode change starts over from the header.
	index := 0
	if qc.Action.Kind == workspace.ActionAnswer {
		index = qc.Page
	}
	h.showQuiz(chatID, msgID, qc.Target, v, index)
	return ""
}

// removeKeyboard strips the buttons from a message that no longer accepts input.
func (h *Handler) removeKeyboard(chatID int64, msgID int) {
	h.request(tgbotapi.NewEditMessageReplyMarkup(chatID, msgID, tgbotapi.InlineKeyboardMarkup{
		InlineKeyboard: [][]tgbotapi.InlineKeyboardButton{},
	}))
}

// refusalNotice explains why an action had no effect.
func refusalNotice(action workspace.Action, v quiz.View) string {
	switch action.Kind {
	case workspace.ActionSubmit:
		if v.State == quiz.StateAttempting {
			return answerAllFirst(v.Answered, len(v.Questions))
		}
	case workspace.ActionAnswer:
		if v.State != quiz.StateAttempting {
			return msgAnswerInAttempt
		}
	}
	return ""
}

func (h *Handler) handleHistoryCallback(ctx context.Context, chatID int64, msgID int, params []string) string {
	if len(params) == 0 {
		return ""
	}

	switch params[0] {
	case historyOpen:
		quizID, err := parseIDParam(params, 1)
		if err != nil {
			return ""
		}
		return h.openHistory(ctx, chatID, quizID)

	case historyClose:
		seq, err := parseIDParam(params, 1)
		if err != nil {
			return ""
		}
		// A stale close only removes the message, the current overlay stays open.
		h.quizService.CloseOverlay(chatID, seq)
		h.request(tgbotapi.NewDeleteMessage(chatID, msgID))
		return msgOverlayClosed

	case historyRefresh:
		if h.quizService.Workspace(chatID).Pending(workspace.RequestHistory) {
			return msgHistoryPending
		}
		h.loadHistory(ctx, chatID, msgID, true)
		return ""

	case historyPage:
		index, err := parseIDParam(params, 1)
		if err != nil {
			return ""
		}
		entries, loaded := h.quizService.Workspace(chatID).History()
		if !loaded {
			if h.quizService.Workspace(chatID).Pending(workspace.RequestHistory) {
				return msgHistoryPending
			}
			h.loadHistory(ctx, chatID, msgID, true)
			return ""
		}
		h.showHistory(chatID, msgID, entries, int(index))
		return ""
	}

	return ""
}

// openHistory loads a stored quiz into the overlay and posts it as a new message.
func (h *Handler) openHistory(ctx context.Context, chatID, quizID int64) string {
	if h.quizService.Workspace(chatID).Pending(workspace.RequestOpen) {
		return msgOpenPending
	}

	h.async(ctx, func(ctx context.Context) {
		v, err := h.quizService.OpenHistory(ctx, chatID, quizID)
		if err != nil {
			h.reportFailure(chatID, 0, workspace.RequestOpen, err)
			return
		}
		h.showQuiz(chatID, 0, workspace.TargetOverlay, v, 0)
	})
	return msgLoadingQuiz
}

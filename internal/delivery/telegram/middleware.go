package telegram

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/aliskhannn/wiki-quiz-bot/internal/service"
	"github.com/aliskhannn/wiki-quiz-bot/internal/workspace"
)

type HandlerFunc func(ctx context.Context, chatID int64) error

// withErrorHandling logs errors returned by fn and tells the user about
// them. Errors caused by the user's input or by the quiz service are
// explained; anything else gets the generic message.
func (h *Handler) withErrorHandling(fn HandlerFunc) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		err := fn(ctx, chatID)
		if err == nil {
			return nil
		}

		if service.IsUserError(err) {
			h.logger.Info("request refused",
				zap.Int64("chat_id", chatID),
				zap.Error(err),
			)
			h.sendError(chatID, userErrorMessage(err))
			return nil
		}

		h.logger.Error("handle error",
			zap.Int64("chat_id", chatID),
			zap.Error(err),
		)
		h.sendError(chatID, msgInternalError)
		return nil
	}
}

// userErrorMessage returns the text shown for an error accepted by service.IsUserError.
func userErrorMessage(err error) string {
	var gw *service.GatewayError
	switch {
	case errors.As(err, &gw):
		return "⚠️ " + gw.Reason
	case errors.Is(err, service.ErrInvalidURL):
		return msgInvalidURL
	case errors.Is(err, workspace.ErrRequestPending):
		return msgRequestPending
	default:
		return msgInternalError
	}
}

package telegram

import (
	"context"
	"errors"

	"go.uber.org/zap"
)

type HandlerFunc func(ctx context.Context, chatID int64) error

// UserHandlerFunc is a HandlerFunc that needs the logged-in username.
type UserHandlerFunc func(ctx context.Context, chatID int64, username string) error

var errNotLoggedIn = errors.New("not logged in")

// withErrorHandling reports domain errors to the user and logs the rest.
func (h *Handler) withErrorHandling(fn HandlerFunc) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		if err := fn(ctx, chatID); err != nil {
			if text, ok := userMessage(err); ok {
				h.sendText(chatID, text)
				return nil
			}
			h.logger.Error("handle error",
				zap.Int64("chat_id", chatID),
				zap.Error(err),
			)
			h.sendText(chatID, msgInternalError)
			return nil
		}
		return nil
	}
}

func (h *Handler) requireLogin(fn UserHandlerFunc) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		username, ok := h.logins.get(chatID)
		if !ok {
			return errNotLoggedIn
		}
		return fn(ctx, chatID, username)
	}
}

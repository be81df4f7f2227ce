package telegram

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/myflowlab/stem-certification-quiz/internal/domain/entities"
)

func (h *Handler) handleCallback(ctx context.Context, cb *tgbotapi.CallbackQuery) {
	defer h.answerCallback(cb.ID)

	if cb.Message == nil {
		return
	}

	data := decodeCallback(cb.Data)
	switch data.Action {
	case actionQuiz:
		chatID := cb.Message.Chat.ID
		_ = h.withErrorHandling(h.requireLogin(func(ctx context.Context, chatID int64, username string) error {
			return h.handleQuizCallback(ctx, chatID, cb.Message.MessageID, username, data.Params)
		}))(ctx, chatID)
	default:
		h.logger.Debug("unknown callback", zap.String("data", cb.Data))
	}
}

func (h *Handler) handleQuizCallback(ctx context.Context, chatID int64, messageID int, username string, params []string) error {
	if len(params) == 0 {
		return nil
	}
	sid := sessionID(chatID)

	var (
		view *entities.QuestionView
		err  error
	)

	switch params[0] {
	case quizAnswer:
		index, choice, ok := parseQuizAnswer(params)
		if !ok {
			h.logger.Debug("invalid answer callback", zap.Strings("params", params))
			return nil
		}
		view, err = h.quizService.Answer(ctx, sid, username, index, choice)

	case quizPrev:
		view, err = h.quizService.Advance(ctx, sid, username, entities.DirectionPrev)

	case quizNext:
		view, err = h.quizService.Advance(ctx, sid, username, entities.DirectionNext)

	case quizSubmit:
		result, err := h.quizService.Submit(ctx, sid, username)
		if err != nil {
			return err
		}
		return h.send(newEdit(chatID, messageID, formatResult(result)))

	default:
		return nil
	}

	if err != nil {
		return err
	}

	edit := newEdit(chatID, messageID, formatQuestion(view))
	kb := buildQuestionKeyboard(view)
	edit.ReplyMarkup = &kb
	return h.send(edit)
}

// answerCallback removes the loading indicator on the pressed button.
func (h *Handler) answerCallback(id string) {
	if _, err := h.bot.Request(tgbotapi.NewCallback(id, "")); err != nil {
		h.logger.Debug("callback answer error", zap.Error(err))
	}
}

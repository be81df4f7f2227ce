package telegram

import (
	"context"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/myflowlab/stem-certification-quiz/internal/certificate"
	"github.com/myflowlab/stem-certification-quiz/internal/domain/entities"
	"github.com/myflowlab/stem-certification-quiz/internal/service"
)

// parseSignupArgs reads "<username> <password> <code> [full name;nric;email]".
func parseSignupArgs(args string) (service.RegisterInput, bool) {
	fields := strings.Fields(args)
	if len(fields) < 3 {
		return service.RegisterInput{}, false
	}

	in := service.RegisterInput{
		Username:   fields[0],
		Password:   fields[1],
		AccessCode: fields[2],
	}

	if len(fields) > 3 {
		identity := strings.Split(strings.Join(fields[3:], " "), ";")
		if len(identity) != 3 {
			return service.RegisterInput{}, false
		}
		in.Identity = entities.Identity{
			FullName: strings.TrimSpace(identity[0]),
			NRIC:     strings.TrimSpace(identity[1]),
			Email:    strings.TrimSpace(identity[2]),
		}
	}

	return in, true
}

func (h *Handler) handleSignup(args string) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		in, ok := parseSignupArgs(args)
		if !ok {
			return h.send(newPlainMessage(chatID, msgUseSignup))
		}

		if _, err := h.authService.Register(ctx, in); err != nil {
			return err
		}

		return h.send(newPlainMessage(chatID, msgSignedUp))
	}
}

func (h *Handler) handleLogin(args string) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		fields := strings.Fields(args)
		if len(fields) != 2 {
			return h.send(newPlainMessage(chatID, msgUseLogin))
		}

		user, err := h.authService.Authenticate(ctx, fields[0], fields[1])
		if err != nil {
			return err
		}
		if h.authService.IsAdmin(user.Username) {
			return h.send(newPlainMessage(chatID, msgAdminUseConsole))
		}

		h.logins.set(chatID, user.Username)
		h.logger.Info("telegram login",
			zap.Int64("chat_id", chatID),
			zap.String("username", user.Username),
		)

		msg := newMessage(chatID, formatStatus(user))
		return h.send(msg)
	}
}

func (h *Handler) handleLogout() HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		if err := h.quizService.Discard(ctx, sessionID(chatID)); err != nil {
			h.logger.Warn("failed to discard quiz session",
				zap.Int64("chat_id", chatID),
				zap.Error(err),
			)
		}
		h.logins.delete(chatID)
		return h.send(newPlainMessage(chatID, msgLoggedOut))
	}
}

func (h *Handler) handleStatus(ctx context.Context, chatID int64, username string) error {
	user, err := h.quizService.Status(ctx, username)
	if err != nil {
		return err
	}
	return h.send(newMessage(chatID, formatStatus(user)))
}

func (h *Handler) handleQuiz(ctx context.Context, chatID int64, username string) error {
	view, err := h.quizService.Start(ctx, sessionID(chatID), username)
	if err != nil {
		return err
	}

	msg := newMessage(chatID, formatQuestion(view))
	msg.ReplyMarkup = buildQuestionKeyboard(view)
	return h.send(msg)
}

func (h *Handler) handleCertificate(ctx context.Context, chatID int64, username string) error {
	doc, err := h.certificateService.Issue(ctx, username)
	if err != nil {
		return err
	}

	file := tgbotapi.NewDocument(chatID, tgbotapi.FileBytes{
		Name:  certificate.FileName(username),
		Bytes: doc,
	})
	file.Caption = msgCertificateReady
	return h.send(file)
}

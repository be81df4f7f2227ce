package telegram

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

type Handler struct {
	bot                BotAPI
	logger             *zap.Logger
	authService        AuthService
	quizService        QuizService
	certificateService CertificateService
	logins             *chatLogins
}

func NewHandler(
	bot BotAPI,
	logger *zap.Logger,
	authService AuthService,
	quizService QuizService,
	certificateService CertificateService,
) *Handler {
	return &Handler{
		bot:                bot,
		logger:             logger,
		authService:        authService,
		quizService:        quizService,
		certificateService: certificateService,
		logins:             newChatLogins(),
	}
}

// Commands is the bot command menu.
func Commands() []tgbotapi.BotCommand {
	return []tgbotapi.BotCommand{
		{Command: "start", Description: "Welcome message"},
		{Command: "signup", Description: "Register: /signup <username> <password> <access code>"},
		{Command: "login", Description: "Log in: /login <username> <password>"},
		{Command: "quiz", Description: "Start the certification quiz"},
		{Command: "status", Description: "Show your score and attempts left"},
		{Command: "certificate", Description: "Download your certificate"},
		{Command: "logout", Description: "Log out"},
		{Command: "help", Description: "Help"},
	}
}

func (h *Handler) Run(ctx context.Context) error {
	h.logger.Info("telegram handler started")
	defer h.logger.Info("telegram handler stopped")

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := h.bot.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			return nil
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			h.handleUpdate(ctx, update)
		}
	}
}

func (h *Handler) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	if update.CallbackQuery != nil {
		h.logger.Debug("callback received",
			zap.Int64("user_id", update.CallbackQuery.From.ID),
			zap.String("data", update.CallbackQuery.Data),
		)
		h.handleCallback(ctx, update.CallbackQuery)
		return
	}

	if update.Message == nil {
		h.logger.Debug("update without message and callback")
		return
	}

	chatID := update.Message.Chat.ID
	h.logger.Debug("update received", zap.Int64("chat_id", chatID))

	if !update.Message.IsCommand() {
		h.sendText(chatID, msgUnknownCommand)
		return
	}

	args := update.Message.CommandArguments()

	switch update.Message.Command() {
	case "start":
		h.sendText(chatID, msgWelcome)

	case "help":
		h.sendText(chatID, msgHelp)

	case "signup":
		_ = h.withErrorHandling(h.handleSignup(args))(ctx, chatID)
		h.deleteMessage(chatID, update.Message.MessageID)

	case "login":
		_ = h.withErrorHandling(h.handleLogin(args))(ctx, chatID)
		h.deleteMessage(chatID, update.Message.MessageID)

	case "logout":
		_ = h.withErrorHandling(h.handleLogout())(ctx, chatID)

	case "status":
		_ = h.withErrorHandling(h.requireLogin(h.handleStatus))(ctx, chatID)

	case "quiz":
		_ = h.withErrorHandling(h.requireLogin(h.handleQuiz))(ctx, chatID)

	case "certificate":
		_ = h.withErrorHandling(h.requireLogin(h.handleCertificate))(ctx, chatID)

	default:
		h.sendText(chatID, msgUnknownCommand)
	}
}

func (h *Handler) sendText(chatID int64, text string) {
	_ = h.send(newPlainMessage(chatID, text))
}

func (h *Handler) send(c tgbotapi.Chattable) error {
	if _, err := h.bot.Send(c); err != nil {
		h.logger.Error("failed to send telegram message",
			zap.Error(err),
		)
		return err
	}
	return nil
}

// deleteMessage removes a command that carried a password. Failures are only logged.
func (h *Handler) deleteMessage(chatID int64, messageID int) {
	if _, err := h.bot.Request(tgbotapi.NewDeleteMessage(chatID, messageID)); err != nil {
		h.logger.Debug("failed to delete message",
			zap.Int64("chat_id", chatID),
			zap.Error(err),
		)
	}
}

package telegram

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/myflowlab/stem-certification-quiz/internal/domain/entities"
	"github.com/myflowlab/stem-certification-quiz/internal/service"
)

// BotAPI is the part of *tgbotapi.BotAPI the handler uses.
type BotAPI interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
}

type AuthService interface {
	Register(ctx context.Context, in service.RegisterInput) (*entities.User, error)
	Authenticate(ctx context.Context, username, password string) (*entities.User, error)
	IsAdmin(username string) bool
}

type QuizService interface {
	Status(ctx context.Context, username string) (*entities.User, error)
	Start(ctx context.Context, sessionID, username string) (*entities.QuestionView, error)
	Current(ctx context.Context, sessionID, username string) (*entities.QuestionView, error)
	Answer(ctx context.Context, sessionID, username string, index int, choice string) (*entities.QuestionView, error)
	Advance(ctx context.Context, sessionID, username string, dir entities.Direction) (*entities.QuestionView, error)
	Submit(ctx context.Context, sessionID, username string) (*entities.QuizResult, error)
	Discard(ctx context.Context, sessionID string) error
}

type CertificateService interface {
	Issue(ctx context.Context, username string) ([]byte, error)
}

package handlers

import (
	"context"
	"io"

	"github.com/myflowlab/stem-certification-quiz/internal/domain/entities"
	"github.com/myflowlab/stem-certification-quiz/internal/repository"
	"github.com/myflowlab/stem-certification-quiz/internal/service"
)

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

type AdminService interface {
	ListQuestions(ctx context.Context) ([]entities.Question, error)
	AddQuestion(ctx context.Context, q entities.Question) error
	UpdateQuestion(ctx context.Context, index int, q entities.Question) error
	DeleteQuestion(ctx context.Context, index int) error
	ListRoster(ctx context.Context) ([]*entities.AccessCodeEntry, error)
	ImportRoster(ctx context.Context, r io.Reader, filename string) (repository.MergeReport, error)
	CertifiedUsers(ctx context.Context) ([]*entities.User, error)
}

type CertificateService interface {
	Issue(ctx context.Context, username string) ([]byte, error)
	WriteBundle(ctx context.Context, w io.Writer) (int, error)
}

package service

import (
	"context"

	"github.com/myflowlab/stem-certification-quiz/internal/domain/entities"
	"github.com/myflowlab/stem-certification-quiz/internal/repository"
)

//go:generate mockgen -source=contracts.go -destination=mock/mock_contracts.go -package=mock_service

type UserRepository interface {
	List(ctx context.Context) ([]*entities.User, error)
	GetByUsername(ctx context.Context, username string) (*entities.User, error)
	Save(ctx context.Context, user *entities.User) error
}

type QuestionRepository interface {
	List(ctx context.Context) ([]entities.Question, error)
	Add(ctx context.Context, q entities.Question) error
	Update(ctx context.Context, index int, q entities.Question) error
	Delete(ctx context.Context, index int) error
}

type AccessCodeRepository interface {
	List(ctx context.Context) ([]*entities.AccessCodeEntry, error)
	Get(ctx context.Context, code string) (*entities.AccessCodeEntry, error)
	Merge(ctx context.Context, entries []entities.AccessCodeEntry) (repository.MergeReport, error)
}

// SessionStore keeps quiz sessions between requests.
type SessionStore interface {
	Save(ctx context.Context, session *entities.QuizSession) error
	Get(ctx context.Context, id string) (*entities.QuizSession, error)
	Delete(ctx context.Context, id string) error
}

// CertificateGenerator renders a certificate document.
type CertificateGenerator interface {
	Generate(username string, score int) ([]byte, error)
}

// CertificateArchive keeps a copy of issued certificates.
type CertificateArchive interface {
	Put(ctx context.Context, key string, data []byte) error
}

// ExpiredSessionDeleter drops quiz sessions whose TTL has passed.
type ExpiredSessionDeleter interface {
	DeleteExpired(ctx context.Context) (int, error)
}

package service

import (
	"context"
	"io"
	"strings"

	"go.uber.org/zap"

	"github.com/myflowlab/stem-certification-quiz/internal/domain/entities"
	"github.com/myflowlab/stem-certification-quiz/internal/importer"
	"github.com/myflowlab/stem-certification-quiz/internal/repository"
)

type AdminService struct {
	users       UserRepository
	questions   QuestionRepository
	accessCodes AccessCodeRepository
	logger      *zap.Logger
}

func NewAdminService(
	users UserRepository,
	questions QuestionRepository,
	accessCodes AccessCodeRepository,
	logger *zap.Logger,
) *AdminService {
	return &AdminService{
		users:       users,
		questions:   questions,
		accessCodes: accessCodes,
		logger:      logger,
	}
}

func (s *AdminService) ListQuestions(ctx context.Context) ([]entities.Question, error) {
	return s.questions.List(ctx)
}

// AddQuestion appends a question; every field is required.
func (s *AdminService) AddQuestion(ctx context.Context, q entities.Question) error {
	q = normalizeQuestion(q)
	if err := q.Validate(); err != nil {
		return err
	}
	if err := s.questions.Add(ctx, q); err != nil {
		return err
	}
	s.logger.Info("question added", zap.String("question", q.Text))
	return nil
}

// UpdateQuestion replaces the question at index.
func (s *AdminService) UpdateQuestion(ctx context.Context, index int, q entities.Question) error {
	q = normalizeQuestion(q)
	if err := q.Validate(); err != nil {
		return err
	}
	if err := s.questions.Update(ctx, index, q); err != nil {
		return err
	}
	s.logger.Info("question updated", zap.Int("index", index))
	return nil
}

// DeleteQuestion removes the question at index.
func (s *AdminService) DeleteQuestion(ctx context.Context, index int) error {
	if err := s.questions.Delete(ctx, index); err != nil {
		return err
	}
	s.logger.Info("question deleted", zap.Int("index", index))
	return nil
}

func (s *AdminService) ListRoster(ctx context.Context) ([]*entities.AccessCodeEntry, error) {
	return s.accessCodes.List(ctx)
}

// ImportRoster merges an uploaded candidate list into the roster.
func (s *AdminService) ImportRoster(ctx context.Context, r io.Reader, filename string) (repository.MergeReport, error) {
	entries, err := importer.ParseRoster(r, filename)
	if err != nil {
		return repository.MergeReport{}, err
	}

	report, err := s.accessCodes.Merge(ctx, entries)
	if err != nil {
		return repository.MergeReport{}, err
	}

	s.logger.Info("roster imported",
		zap.String("file", filename),
		zap.Int("added", report.Added),
		zap.Int("skipped", report.Skipped),
	)
	return report, nil
}

// CertifiedUsers lists users that passed, in sheet order.
func (s *AdminService) CertifiedUsers(ctx context.Context) ([]*entities.User, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*entities.User, 0, len(users))
	for _, u := range users {
		if u.Certified {
			out = append(out, u)
		}
	}
	return out, nil
}

func normalizeQuestion(q entities.Question) entities.Question {
	q.CorrectAnswer = strings.ToLower(strings.TrimSpace(q.CorrectAnswer))
	return q
}

package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/myflowlab/stem-certification-quiz/internal/domain/entities"
)

type QuizService struct {
	users     UserRepository
	questions QuestionRepository
	sessions  SessionStore
	logger    *zap.Logger
}

func NewQuizService(
	users UserRepository,
	questions QuestionRepository,
	sessions SessionStore,
	logger *zap.Logger,
) *QuizService {
	return &QuizService{
		users:     users,
		questions: questions,
		sessions:  sessions,
		logger:    logger,
	}
}

// Status returns the stored user record.
func (s *QuizService) Status(ctx context.Context, username string) (*entities.User, error) {
	return s.users.GetByUsername(ctx, username)
}

// Start opens a fresh session at the first question, replacing any session with the same ID.
func (s *QuizService) Start(ctx context.Context, sessionID, username string) (*entities.QuestionView, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if err := user.CanStartQuiz(); err != nil {
		return nil, err
	}

	questions, err := s.questions.List(ctx)
	if err != nil {
		return nil, err
	}

	session := entities.NewQuizSession(sessionID, username)
	if err := session.Start(questions); err != nil {
		return nil, err
	}
	if err := s.sessions.Save(ctx, session); err != nil {
		return nil, err
	}

	s.logger.Debug("quiz session started",
		zap.String("session_id", sessionID),
		zap.String("username", username),
		zap.Int("total_questions", session.Total()),
		zap.Int("attempts", user.Attempts),
	)

	return session.CurrentView()
}

// Current returns the question under the cursor.
func (s *QuizService) Current(ctx context.Context, sessionID, username string) (*entities.QuestionView, error) {
	session, err := s.load(ctx, sessionID, username)
	if err != nil {
		return nil, err
	}
	return session.CurrentView()
}

// Answer records a choice for the question at index without moving the cursor.
func (s *QuizService) Answer(ctx context.Context, sessionID, username string, index int, choice string) (*entities.QuestionView, error) {
	session, err := s.load(ctx, sessionID, username)
	if err != nil {
		return nil, err
	}
	if err := session.Answer(index, entities.Choice(choice)); err != nil {
		return nil, err
	}
	if err := s.sessions.Save(ctx, session); err != nil {
		return nil, err
	}
	return session.CurrentView()
}

// Advance moves one question back or forward; boundaries are no-ops.
func (s *QuizService) Advance(ctx context.Context, sessionID, username string, dir entities.Direction) (*entities.QuestionView, error) {
	session, err := s.load(ctx, sessionID, username)
	if err != nil {
		return nil, err
	}
	if err := session.Advance(dir); err != nil {
		return nil, err
	}
	if err := s.sessions.Save(ctx, session); err != nil {
		return nil, err
	}
	return session.CurrentView()
}

// Submit scores the session and persists the user.
// The session is closed only after the user record has been written.
func (s *QuizService) Submit(ctx context.Context, sessionID, username string) (*entities.QuizResult, error) {
	session, err := s.load(ctx, sessionID, username)
	if err != nil {
		return nil, err
	}
	if err := session.CanSubmit(); err != nil {
		return nil, err
	}

	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if err := user.CanStartQuiz(); err != nil {
		s.discard(ctx, sessionID)
		return nil, err
	}

	score := session.Score()
	user.ApplyScore(score)

	if err := s.users.Save(ctx, user); err != nil {
		s.logger.Error("failed to persist quiz result",
			zap.String("username", username),
			zap.Int("score", score),
			zap.Error(err),
		)
		return nil, err
	}

	session.Complete()
	s.discard(ctx, sessionID)

	s.logger.Info("quiz submitted",
		zap.String("username", username),
		zap.Int("score", score),
		zap.Bool("certified", user.Certified),
		zap.Int("attempts", user.Attempts),
	)

	return &entities.QuizResult{
		Username:     user.Username,
		Score:        score,
		Certified:    user.Certified,
		Attempts:     user.Attempts,
		AttemptsLeft: user.AttemptsLeft(),
	}, nil
}

// Discard drops the session, e.g. on logout.
func (s *QuizService) Discard(ctx context.Context, sessionID string) error {
	return s.sessions.Delete(ctx, sessionID)
}

func (s *QuizService) load(ctx context.Context, sessionID, username string) (*entities.QuizSession, error) {
	session, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.Username != username {
		return nil, entities.ErrSessionNotFound
	}
	return session, nil
}

func (s *QuizService) discard(ctx context.Context, sessionID string) {
	if err := s.sessions.Delete(ctx, sessionID); err != nil {
		s.logger.Warn("failed to delete quiz session",
			zap.String("session_id", sessionID),
			zap.Error(err),
		)
	}
}

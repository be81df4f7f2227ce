package storage

import (
	"context"
	"sync"
	"time"

	"github.com/myflowlab/stem-certification-quiz/internal/domain/entities"
)

type quizEntry struct {
	session   *entities.QuizSession
	expiresAt time.Time // zero means no expiry
}

// QuizStorage provides in-memory storage for quiz sessions by session ID.
type QuizStorage struct {
	mu       sync.RWMutex
	sessions map[string]quizEntry
	ttl      time.Duration
	now      func() time.Time
}

// NewQuizStorage creates a new QuizStorage.
// A session expires ttl after its last save; a zero ttl keeps sessions until they are deleted.
func NewQuizStorage(ttl time.Duration) *QuizStorage {
	return &QuizStorage{
		sessions: make(map[string]quizEntry),
		ttl:      ttl,
		now:      time.Now,
	}
}

// Save stores a copy of the session, replacing any previous one with the same ID.
func (s *QuizStorage) Save(_ context.Context, session *entities.QuizSession) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	e := quizEntry{session: copySession(session)}
	if s.ttl > 0 {
		e.expiresAt = s.now().Add(s.ttl)
	}
	s.sessions[session.ID] = e
	return nil
}

// Get retrieves a copy of the session for a given ID. Expired sessions are not found.
func (s *QuizStorage) Get(_ context.Context, id string) (*entities.QuizSession, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.sessions[id]
	if !ok || e.expired(s.now()) {
		return nil, entities.ErrSessionNotFound
	}
	return copySession(e.session), nil
}

// Delete removes the session for a given ID.
func (s *QuizStorage) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
	return nil
}

// DeleteExpired drops every expired session and returns how many were removed.
func (s *QuizStorage) DeleteExpired(_ context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	removed := 0
	for id, e := range s.sessions {
		if e.expired(now) {
			delete(s.sessions, id)
			removed++
		}
	}
	return removed, nil
}

func (e quizEntry) expired(now time.Time) bool {
	return !e.expiresAt.IsZero() && !now.Before(e.expiresAt)
}

func copySession(in *entities.QuizSession) *entities.QuizSession {
	out := *in
	out.Questions = append([]entities.Question(nil), in.Questions...)
	out.Answers = make(map[int]entities.Choice, len(in.Answers))
	for k, v := range in.Answers {
		out.Answers[k] = v
	}
	return &out
}

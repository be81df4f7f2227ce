package storage

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/myflowlab/stem-certification-quiz/internal/domain/entities"
)

func startedSession(t *testing.T, id string) *entities.QuizSession {
	t.Helper()
	session := entities.NewQuizSession(id, "alice")
	require.NoError(t, session.Start([]entities.Question{{Text: "q", CorrectAnswer: "a"}}))
	return session
}

func TestQuizStorage(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := NewQuizStorage(0)

	_, err := s.Get(ctx, "sid")
	assert.ErrorIs(t, err, entities.ErrSessionNotFound)

	session := startedSession(t, "sid")
	require.NoError(t, s.Save(ctx, session))

	require.NoError(t, session.Answer(0, "b"))

	got, err := s.Get(ctx, "sid")
	require.NoError(t, err)
	assert.Empty(t, got.Answers, "stored copy must not see later mutations")

	require.NoError(t, s.Delete(ctx, "sid"))
	_, err = s.Get(ctx, "sid")
	assert.ErrorIs(t, err, entities.ErrSessionNotFound)
}

func TestQuizStorage_Expiry(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	now := time.Date(2026, 1, 2, 10, 0, 0, 0, time.UTC)
	s := NewQuizStorage(time.Hour)
	s.now = func() time.Time { return now }

	require.NoError(t, s.Save(ctx, startedSession(t, "old")))

	now = now.Add(30 * time.Minute)
	require.NoError(t, s.Save(ctx, startedSession(t, "fresh")))

	_, err := s.Get(ctx, "old")
	require.NoError(t, err)

	now = now.Add(30 * time.Minute)
	_, err = s.Get(ctx, "old")
	assert.ErrorIs(t, err, entities.ErrSessionNotFound)
	_, err = s.Get(ctx, "fresh")
	assert.NoError(t, err)

	removed, err := s.DeleteExpired(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, removed)
	assert.Len(t, s.sessions, 1)
	assert.Contains(t, s.sessions, "fresh")
}

func TestQuizStorage_SaveExtendsExpiry(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	now := time.Date(2026, 1, 2, 10, 0, 0, 0, time.UTC)
	s := NewQuizStorage(time.Hour)
	s.now = func() time.Time { return now }

	session := startedSession(t, "sid")
	require.NoError(t, s.Save(ctx, session))

	now = now.Add(50 * time.Minute)
	require.NoError(t, s.Save(ctx, session))

	now = now.Add(50 * time.Minute)
	_, err := s.Get(ctx, "sid")
	assert.NoError(t, err)
}

func TestQuizStorage_ZeroTTLNeverExpires(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := NewQuizStorage(0)
	require.NoError(t, s.Save(ctx, startedSession(t, "sid")))

	removed, err := s.DeleteExpired(ctx)
	require.NoError(t, err)
	assert.Zero(t, removed)
}

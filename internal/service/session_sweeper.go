package service

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// SessionSweeper drops expired quiz sessions on a cron schedule.
type SessionSweeper struct {
	sessions ExpiredSessionDeleter
	schedule string
	logger   *zap.Logger
}

// NewSessionSweeper creates a sweeper. schedule is a cron spec such as "@every 10m".
func NewSessionSweeper(sessions ExpiredSessionDeleter, schedule string, logger *zap.Logger) *SessionSweeper {
	return &SessionSweeper{
		sessions: sessions,
		schedule: schedule,
		logger:   logger,
	}
}

// Start runs the sweep schedule until ctx is cancelled.
func (s *SessionSweeper) Start(ctx context.Context) error {
	c := cron.New(cron.WithLocation(time.UTC))

	if _, err := c.AddFunc(s.schedule, func() { s.sweep(ctx) }); err != nil {
		return fmt.Errorf("add session sweep job: %w", err)
	}

	c.Start()
	s.logger.Info("session sweeper started", zap.String("schedule", s.schedule))

	<-ctx.Done()

	<-c.Stop().Done()
	s.logger.Info("session sweeper stopped")
	return nil
}

func (s *SessionSweeper) sweep(ctx context.Context) {
	removed, err := s.sessions.DeleteExpired(ctx)
	if err != nil {
		s.logger.Error("failed to delete expired sessions", zap.Error(err))
		return
	}
	if removed > 0 {
		s.logger.Info("expired sessions removed", zap.Int("count", removed))
	}
}

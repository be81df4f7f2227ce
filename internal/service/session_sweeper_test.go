package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	mock_service "github.com/myflowlab/stem-certification-quiz/internal/service/mock"
)

func TestSessionSweeper_Sweep(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		removed int
		err     error
	}{
		{name: "removes expired", removed: 3},
		{name: "nothing expired", removed: 0},
		{name: "store error is logged", err: errors.New("boom")},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			ctrl := gomock.NewController(t)
			sessions := mock_service.NewMockExpiredSessionDeleter(ctrl)
			sessions.EXPECT().DeleteExpired(gomock.Any()).Return(tt.removed, tt.err)

			NewSessionSweeper(sessions, "@every 1m", zap.NewNop()).sweep(context.Background())
		})
	}
}

func TestSessionSweeper_StartRejectsBadSchedule(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	sessions := mock_service.NewMockExpiredSessionDeleter(ctrl)

	err := NewSessionSweeper(sessions, "not a schedule", zap.NewNop()).Start(context.Background())
	assert.Error(t, err)
}

func TestSessionSweeper_StartStopsWithContext(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	sessions := mock_service.NewMockExpiredSessionDeleter(ctrl)
	sessions.EXPECT().DeleteExpired(gomock.Any()).Return(0, nil).AnyTimes()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- NewSessionSweeper(sessions, "@every 1h", zap.NewNop()).Start(ctx)
	}()

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("sweeper did not stop")
	}
}

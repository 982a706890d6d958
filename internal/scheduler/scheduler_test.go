package scheduler

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/carson-networks/expense-tracker/internal/notify"
	"github.com/carson-networks/expense-tracker/internal/operator/actions"
	"github.com/carson-networks/expense-tracker/internal/session"
	"github.com/carson-networks/expense-tracker/internal/storage"
)

type mockProcessor struct {
	mock.Mock
}

func (m *mockProcessor) Process(ctx context.Context, userID string, action actions.IAction) error {
	args := m.Called(ctx, userID, action)
	return args.Error(0)
}

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func TestNewScheduler_InvalidSpec(t *testing.T) {
	_, err := NewScheduler("every now and then", nil, nil, quietLogger())
	assert.Error(t, err)
}

func TestRollover_QueuesEveryOpenSession(t *testing.T) {
	logger := quietLogger()
	manager := session.NewManager(storage.NewMemoryStorage(), notify.Discard{}, logger, session.Options{})
	manager.Open(context.Background(), "user-b")
	manager.Open(context.Background(), "user-a")

	op := new(mockProcessor)
	op.On("Process", mock.Anything, "user-a", mock.AnythingOfType("*actions.Rollover")).Return(nil).Once()
	op.On("Process", mock.Anything, "user-b", mock.AnythingOfType("*actions.Rollover")).Return(errors.New("stopped")).Once()

	s, err := NewScheduler("@monthly", manager, op, logger)
	require.NoError(t, err)

	ran := s.Rollover(context.Background())

	assert.Equal(t, 1, ran)
	op.AssertExpectations(t)
}

func TestStartStop(t *testing.T) {
	s, err := NewScheduler("@monthly", session.NewManager(storage.NewMemoryStorage(), nil, quietLogger(), session.Options{}), new(mockProcessor), quietLogger())
	require.NoError(t, err)

	s.Start()
	s.Stop()
}

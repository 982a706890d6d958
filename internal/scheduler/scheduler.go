// Package scheduler runs the budget rollover on a cron schedule.
package scheduler

import (
	"context"
	"fmt"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"github.com/carson-networks/expense-tracker/internal/operator/actions"
	"github.com/carson-networks/expense-tracker/internal/session"
)

type processor interface {
	Process(ctx context.Context, userID string, action actions.IAction) error
}

type sessionLister interface {
	Each(fn func(*session.Session))
}

// Scheduler re-evaluates every open session's budget so the over-budget alert
// re-arms when a new month starts.
type Scheduler struct {
	cron     *cron.Cron
	sessions sessionLister
	operator processor
	logger   *logrus.Logger
}

func NewScheduler(spec string, sessions sessionLister, op processor, logger *logrus.Logger) (*Scheduler, error) {
	s := &Scheduler{
		cron:     cron.New(),
		sessions: sessions,
		operator: op,
		logger:   logger,
	}
	if _, err := s.cron.AddFunc(spec, func() { s.Rollover(context.Background()) }); err != nil {
		return nil, fmt.Errorf("schedule budget rollover %q: %w", spec, err)
	}
	return s, nil
}

func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop prevents new runs and waits for a running rollover to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
}

// Rollover queues a rollover for each open session and returns how many ran.
func (s *Scheduler) Rollover(ctx context.Context) int {
	var userIDs []string
	s.sessions.Each(func(sess *session.Session) {
		userIDs = append(userIDs, sess.UserID)
	})

	ran := 0
	for _, userID := range userIDs {
		action := &actions.Rollover{}
		if err := s.operator.Process(ctx, userID, action); err != nil {
			s.logger.WithError(err).WithField("userID", userID).Error("Scheduler.Rollover.Error")
			continue
		}
		ran++
	}
	s.logger.WithField("sessions", ran).Info("Scheduler.Rollover.Complete")
	return ran
}

package worker

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/agentdesk/internal/cache"
	"github.com/spec-kit/agentdesk/internal/config"
	"github.com/spec-kit/agentdesk/internal/domain"
	"github.com/spec-kit/agentdesk/internal/events"
	"github.com/spec-kit/agentdesk/internal/repository"
	"github.com/spec-kit/agentdesk/internal/service"
)

const reminderClaimLimit = 100

// Locker grants a named lock for ttl. *cache.Store satisfies it.
type Locker interface {
	AcquireLock(ctx context.Context, name string, ttl time.Duration) (bool, error)
}

// Scheduler runs the periodic reminder scan and the daily birthday digest.
type Scheduler struct {
	reminders  repository.ReminderRepository
	clients    repository.ClientRepository
	dispatcher events.Dispatcher
	locks      Locker
	clock      service.Clock
	cfg        config.JobsConfig
	logger     *zap.Logger
	wg         sync.WaitGroup

	lastDigest domain.Date
}

// SchedulerDependencies bundles the scheduler's collaborators.
type SchedulerDependencies struct {
	ReminderRepo repository.ReminderRepository
	ClientRepo   repository.ClientRepository
	Dispatcher   events.Dispatcher
	Locks        Locker
	Clock        service.Clock
	Logger       *zap.Logger
}

// NewScheduler creates a scheduler.
func NewScheduler(cfg config.JobsConfig, deps SchedulerDependencies) *Scheduler {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	locks := deps.Locks
	if locks == nil {
		locks = (*cache.Store)(nil)
	}
	return &Scheduler{
		reminders:  deps.ReminderRepo,
		clients:    deps.ClientRepo,
		dispatcher: deps.Dispatcher,
		locks:      locks,
		clock:      deps.Clock,
		cfg:        cfg,
		logger:     logger,
	}
}

// Start launches the job loop until ctx is cancelled.
func (s *Scheduler) Start(ctx context.Context) {
	if !s.cfg.Enabled {
		s.logger.Info("background jobs disabled")
		return
	}
	interval := s.cfg.ReminderScanInterval
	if interval <= 0 {
		interval = time.Minute
	}
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		s.logger.Info("scheduler started", zap.Duration("reminder_scan_interval", interval), zap.Int("digest_hour", s.cfg.DigestHour))
		for {
			select {
			case <-ctx.Done():
				s.logger.Info("scheduler stopped")
				return
			case <-ticker.C:
				s.tick(ctx)
			}
		}
	}()
}

// Wait blocks until the job loop has exited.
func (s *Scheduler) Wait() {
	s.wg.Wait()
}

func (s *Scheduler) tick(ctx context.Context) {
	if _, err := s.ScanReminders(ctx); err != nil && ctx.Err() == nil {
		s.logger.Error("reminder scan failed", zap.Error(err))
	}
	if s.clock.TimeOfDay().Hour() < s.cfg.DigestHour {
		return
	}
	today := s.clock.Today()
	if s.lastDigest.Equal(today.Time) {
		return
	}
	if _, err := s.SendBirthdayDigest(ctx, today); err != nil {
		if ctx.Err() == nil {
			s.logger.Error("birthday digest failed", zap.Error(err))
		}
		return
	}
	s.lastDigest = today
}

// ScanReminders claims reminders that have come due and publishes one event per reminder.
func (s *Scheduler) ScanReminders(ctx context.Context) (int, error) {
	due, err := s.reminders.ClaimDue(ctx, s.clock.Today(), s.clock.TimeOfDay(), reminderClaimLimit)
	if err != nil {
		return 0, err
	}
	for _, rem := range due {
		err := s.dispatcher.Publish(ctx, events.Event{
			Type:    events.EventReminderDue,
			AgentID: rem.AgentID,
			Payload: events.ReminderDuePayload{Reminder: rem},
		})
		if err != nil {
			s.logger.Warn("reminder notification failed", zap.String("reminder_id", rem.ID), zap.Error(err))
		}
	}
	if len(due) > 0 {
		s.logger.Info("reminders due", zap.Int("count", len(due)))
	}
	return len(due), nil
}

// SendBirthdayDigest publishes one digest per opted-in agent with a client birthday today.
// Replicas coordinate through a Redis lock so only one sends per day. The lock
// is taken after the load so a failed load can be retried on the next tick.
func (s *Scheduler) SendBirthdayDigest(ctx context.Context, today domain.Date) (int, error) {
	entries, err := s.clients.BirthdayDigest(ctx, today)
	if err != nil {
		return 0, err
	}

	ok, err := s.locks.AcquireLock(ctx, fmt.Sprintf("birthday-digest:%s", today), 24*time.Hour)
	if err != nil {
		return 0, err
	}
	if !ok {
		s.logger.Debug("birthday digest already claimed", zap.String("date", today.String()))
		return 0, nil
	}

	digests := groupDigest(entries)
	for _, d := range digests {
		if err := s.dispatcher.Publish(ctx, events.Event{Type: events.EventBirthdayDigest, AgentID: d.agentID, Payload: d.payload}); err != nil {
			s.logger.Warn("birthday digest notification failed", zap.String("agent_id", d.agentID), zap.Error(err))
		}
	}
	s.logger.Info("birthday digest sent", zap.String("date", today.String()), zap.Int("agents", len(digests)))
	return len(digests), nil
}

type agentDigest struct {
	agentID string
	payload events.BirthdayDigestPayload
}

// groupDigest folds rows into one digest per agent, preserving first-seen order.
func groupDigest(entries []repository.DigestEntry) []agentDigest {
	index := make(map[string]int)
	var out []agentDigest
	for _, e := range entries {
		i, ok := index[e.AgentID]
		if !ok {
			i = len(out)
			index[e.AgentID] = i
			out = append(out, agentDigest{
				agentID: e.AgentID,
				payload: events.BirthdayDigestPayload{AgentEmail: e.AgentEmail, AgentName: e.AgentName},
			})
		}
		out[i].payload.Birthdays = append(out[i].payload.Birthdays, e.Birthday)
	}
	return out
}

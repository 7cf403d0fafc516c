package jobs

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

var cronParser = cron.NewParser(
	cron.SecondOptional | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor,
)

// SessionSweeper expires stale QR sessions and reports how many it touched.
type SessionSweeper interface {
	Execute(ctx context.Context) (int, error)
}

type Scheduler struct {
	sched *cron.Cron
	log   *zap.Logger
}

func NewScheduler(loc *time.Location, log *zap.Logger) *Scheduler {
	return &Scheduler{
		sched: cron.New(cron.WithLocation(loc), cron.WithParser(cronParser)),
		log:   log,
	}
}

// AddSessionCleanup runs sweeper on spec (for example "@every 1m"). Runs
// never overlap: a tick that fires while a sweep is still going is skipped.
func (s *Scheduler) AddSessionCleanup(spec string, sweeper SessionSweeper) error {
	job := cron.NewChain(cron.SkipIfStillRunning(cron.DiscardLogger)).Then(
		cron.FuncJob(func() { s.SweepSessions(sweeper) }),
	)
	_, err := s.sched.AddJob(spec, job)
	return err
}

// SweepSessions runs one cleanup pass.
func (s *Scheduler) SweepSessions(sweeper SessionSweeper) {
	defer func() {
		if err := recover(); err != nil {
			s.log.Error("session cleanup panicked", zap.Any("panic", err))
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	n, err := sweeper.Execute(ctx)
	if err != nil {
		s.log.Error("session cleanup failed", zap.Error(err))
		return
	}
	if n > 0 {
		s.log.Info("expired qr sessions", zap.Int("count", n))
	}
}

func (s *Scheduler) Start() {
	s.sched.Start()
}

// Stop halts the schedule and waits for a running job to finish.
func (s *Scheduler) Stop() {
	<-s.sched.Stop().Done()
}

package rate

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

var ErrSchedulerNotRunning = errors.New("scheduler is not running")

// Scheduler runs the store's deferred retries and the periodic background jobs.
type Scheduler struct {
	mu    sync.Mutex
	sched gocron.Scheduler
}

func (s *Scheduler) Start(ctx context.Context) error {
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.sched = scheduler
	s.mu.Unlock()

	scheduler.Start()

	// Stop scheduler when the provided context is canceled.
	go func() {
		<-ctx.Done()
		if sdErr := s.Shutdown(); sdErr != nil {
			logrus.Errorf("Scheduler shutdown error: %v", sdErr)
		}
	}()
	return nil
}

// Defer runs task once after delay.
func (s *Scheduler) Defer(delay time.Duration, task func()) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.sched == nil {
		return ErrSchedulerNotRunning
	}

	_, err := s.sched.NewJob(
		gocron.OneTimeJob(gocron.OneTimeJobStartDateTime(time.Now().Add(delay))),
		gocron.NewTask(task),
		gocron.WithLimitedRuns(1),
	)
	return err
}

// Every runs task each interval. A run that is still going when the next one is
// due pushes the next one back.
func (s *Scheduler) Every(name string, interval time.Duration, task func(ctx context.Context)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.sched == nil {
		return ErrSchedulerNotRunning
	}

	job := func(jobCtx context.Context) {
		logrus.WithFields(logrus.Fields{"job": name, "exec_id": uuid.NewString()}).Trace("Running scheduled job")
		task(jobCtx)
	}

	_, err := s.sched.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(job),
		gocron.WithName(name),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
		gocron.WithStartAt(gocron.WithStartImmediately()),
	)
	return err
}

func (s *Scheduler) Shutdown() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.sched == nil {
		return nil
	}
	err := s.sched.Shutdown()
	s.sched = nil
	return err
}

func NewScheduler() *Scheduler {
	return &Scheduler{}
}

package rate

import (
	"context"
	"sync"
	"time"

	"fxconvert/internal/adapters"
	"fxconvert/internal/domain"
	"fxconvert/internal/metrics"

	"github.com/go-co-op/gocron/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Job is a periodic background task; Run receives a fresh execID per run.
type Job struct {
	Name     string
	Interval time.Duration
	Run      func(ctx context.Context, execID string) error
}

// SweepJob drops expired entries from the cache. Lookups never prune on their own.
func SweepJob(cache adapters.ExpiredSweeper, m *metrics.Metrics, interval time.Duration) Job {
	return Job{
		Name:     "sweep-expired-rates",
		Interval: interval,
		Run: func(_ context.Context, execID string) error {
			removed := cache.Sweep()
			m.Swept(removed)
			logrus.Debugf("%d expired rates swept; execID: %s", removed, execID)
			return nil
		},
	}
}

func WarmJob(svc *Service, pairs []domain.RatePair, interval time.Duration) Job {
	return Job{
		Name:     "warm-rate-pairs",
		Interval: interval,
		Run: func(ctx context.Context, execID string) error {
			_, err := svc.WarmPairs(ctx, execID, pairs)
			return err
		},
	}
}

type Scheduler struct {
	jobs []Job
	// -----
	mu    sync.Mutex
	sched gocron.Scheduler
}

func (s *Scheduler) Start(ctx context.Context) error {
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return err
	}

	for _, j := range s.jobs {
		job := j
		task := func(jobCtx context.Context) {
			execID := uuid.NewString()
			if runErr := job.Run(jobCtx, execID); runErr != nil {
				logrus.Errorf("Job %s (%s) failed: %v", job.Name, execID, runErr)
			}
		}
		_, err = scheduler.NewJob(
			gocron.DurationJob(job.Interval),
			gocron.NewTask(task),
			gocron.WithName(job.Name),
			gocron.WithSingletonMode(gocron.LimitModeReschedule),
		)
		if err != nil {
			_ = scheduler.Shutdown()
			return err
		}
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

func (s *Scheduler) Shutdown() error {
	s.mu.Lock()
	sched := s.sched
	s.sched = nil
	s.mu.Unlock()

	if sched == nil {
		return nil
	}
	return sched.Shutdown()
}

func (s *Scheduler) running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sched != nil
}

// NewScheduler skips jobs without a positive interval.
func NewScheduler(jobs ...Job) *Scheduler {
	enabled := make([]Job, 0, len(jobs))
	for _, j := range jobs {
		if j.Interval > 0 && j.Run != nil {
			enabled = append(enabled, j)
		}
	}
	return &Scheduler{jobs: enabled}
}

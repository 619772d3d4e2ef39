package app

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/mileusna/crontab"

	"github.com/heartmarshall/rastreio-bot/internal/config"
	"github.com/heartmarshall/rastreio-bot/internal/service/housekeeping"
)

type housekeeper interface {
	CompleteIdleEnding(ctx context.Context, now time.Time) (int64, error)
	CloseInactive(ctx context.Context, now time.Time) (int64, error)
	PurgeOld(ctx context.Context, now time.Time) (housekeeping.PurgeResult, error)
}

// Scheduler runs the housekeeping sweeps on their cron schedules. A run that
// is still going when its next tick fires is skipped.
type Scheduler struct {
	ctab *crontab.Crontab
	hk   housekeeper
	cfg  config.HousekeepingConfig
	log  *slog.Logger
	now  func() time.Time

	mu       sync.Mutex
	running  map[string]*atomic.Bool
	stopping bool
	wg       sync.WaitGroup
}

// NewScheduler creates a Scheduler. Nothing runs until Run.
func NewScheduler(log *slog.Logger, hk housekeeper, cfg config.HousekeepingConfig) *Scheduler {
	return &Scheduler{
		ctab:    crontab.New(),
		hk:      hk,
		cfg:     cfg,
		log:     log.With("component", "scheduler"),
		now:     time.Now,
		running: make(map[string]*atomic.Bool),
	}
}

type scheduledJob struct {
	name string
	cron string
	fn   func(ctx context.Context) (int64, error)
}

func (s *Scheduler) jobs() []scheduledJob {
	jobs := []scheduledJob{{
		name: housekeeping.JobIdleEnding,
		cron: s.cfg.IdleSweepCron,
		fn: func(ctx context.Context) (int64, error) {
			return s.hk.CompleteIdleEnding(ctx, s.now())
		},
	}}
	if s.cfg.InactivityWindow > 0 {
		jobs = append(jobs, scheduledJob{
			name: housekeeping.JobInactive,
			cron: s.cfg.InactiveCron,
			fn: func(ctx context.Context) (int64, error) {
				return s.hk.CloseInactive(ctx, s.now())
			},
		})
	}
	if s.cfg.PurgeCron != "" {
		jobs = append(jobs, scheduledJob{
			name: housekeeping.JobPurge,
			cron: s.cfg.PurgeCron,
			fn: func(ctx context.Context) (int64, error) {
				res, err := s.hk.PurgeOld(ctx, s.now())
				return res.Total(), err
			},
		})
	}
	return jobs
}

// Run registers the jobs, sweeps idle endings once immediately and blocks
// until ctx is done. In-flight jobs are cancelled and awaited on return.
func (s *Scheduler) Run(ctx context.Context) error {
	for _, j := range s.jobs() {
		if err := s.ctab.AddJob(j.cron, func() { s.runJob(ctx, j.name, j.fn) }); err != nil {
			s.ctab.Shutdown()
			return fmt.Errorf("schedule %s (%q): %w", j.name, j.cron, err)
		}
		s.log.Info("job scheduled", slog.String("job", j.name), slog.String("cron", j.cron))
	}

	s.runJob(ctx, housekeeping.JobIdleEnding, s.jobs()[0].fn)

	<-ctx.Done()
	s.ctab.Shutdown()

	s.mu.Lock()
	s.stopping = true
	s.mu.Unlock()
	s.wg.Wait()
	return nil
}

// runJob executes fn under the job timeout unless the previous run of the
// same job is still in progress.
func (s *Scheduler) runJob(ctx context.Context, name string, fn func(ctx context.Context) (int64, error)) {
	if ctx.Err() != nil || !s.track() {
		return
	}
	defer s.wg.Done()

	flag := s.flag(name)
	if !flag.CompareAndSwap(false, true) {
		s.log.Warn("previous run still in progress, skipping", slog.String("job", name))
		return
	}
	defer flag.Store(false)

	ctx, cancel := context.WithTimeout(ctx, s.cfg.JobTimeout)
	defer cancel()

	if _, err := fn(ctx); err != nil {
		s.log.ErrorContext(ctx, "housekeeping job failed",
			slog.String("job", name),
			slog.String("error", err.Error()),
		)
	}
}

// track counts a run in the wait group unless Run is already draining.
func (s *Scheduler) track() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopping {
		return false
	}
	s.wg.Add(1)
	return true
}

func (s *Scheduler) flag(name string) *atomic.Bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	f, ok := s.running[name]
	if !ok {
		f = &atomic.Bool{}
		s.running[name] = f
	}
	return f
}

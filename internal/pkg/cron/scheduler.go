package cron

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// defaultRunTimeout bounds a single run so a stuck sweep cannot hold the
// scheduler open across shutdown.
const defaultRunTimeout = 5 * time.Minute

// Job is one periodic maintenance task. The first run happens at
// registration interval, not immediately, so startup is not serialized
// behind the sweeps.
type Job struct {
	Name       string
	Interval   time.Duration
	RunTimeout time.Duration
	Fn         func(ctx context.Context) error
}

// Scheduler runs maintenance jobs in-process on fixed intervals.
type Scheduler struct {
	logger *slog.Logger
	jobs   []Job
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
	mu     sync.Mutex
}

func NewScheduler(logger *slog.Logger) *Scheduler {
	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{
		logger: logger,
		ctx:    ctx,
		cancel: cancel,
	}
}

// AddJob registers a job. A zero RunTimeout gets the default.
func (s *Scheduler) AddJob(job Job) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if job.RunTimeout <= 0 {
		job.RunTimeout = defaultRunTimeout
	}
	s.jobs = append(s.jobs, job)
	s.logger.Info("maintenance job registered", "job", job.Name, "interval", job.Interval)
}

// Start launches every registered job on its own ticker.
func (s *Scheduler) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, job := range s.jobs {
		s.wg.Add(1)
		go s.runJob(job)
	}
	s.logger.Info("scheduler started", "job_count", len(s.jobs))
}

// Stop cancels all jobs and waits for in-flight runs to finish.
func (s *Scheduler) Stop() {
	s.cancel()
	s.wg.Wait()
	s.logger.Info("scheduler stopped")
}

func (s *Scheduler) runJob(job Job) {
	defer s.wg.Done()

	ticker := time.NewTicker(job.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.ctx.Done():
			return
		case <-ticker.C:
			s.executeJob(job)
		}
	}
}

func (s *Scheduler) executeJob(job Job) {
	runCtx, cancel := context.WithTimeout(s.ctx, job.RunTimeout)
	defer cancel()

	log := s.logger.With("job", job.Name)
	start := time.Now()
	if err := job.Fn(runCtx); err != nil {
		log.Error("job run failed", "error", err, "duration", time.Since(start))
		return
	}
	log.Debug("job run completed", "duration", time.Since(start))
}

// RunOnce runs every registered job once on the caller's context.
func (s *Scheduler) RunOnce(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, job := range s.jobs {
		if err := job.Fn(ctx); err != nil {
			s.logger.Error("job run failed", "job", job.Name, "error", err)
		}
	}
}

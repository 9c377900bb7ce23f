// Package scheduler coordinates sync and onboarding passes and runs them periodically
package scheduler

import (
	"context"
	"fmt"
	"sync"

	log "github.com/go-pkgz/lgr"
	"github.com/robfig/cron/v3"
)

// Syncer runs a full sync pass
type Syncer interface {
	SyncAll(ctx context.Context) (SyncResult, error)
}

// Config holds scheduler configuration
type Config struct {
	Schedule   string // cron expression or descriptor, e.g. "@every 6h" or "0 */4 * * *"
	RunOnStart bool
}

// Scheduler runs periodic sync passes on a cron schedule. A pass still running when
// the next one is due makes the next one skipped.
type Scheduler struct {
	syncer Syncer
	cfg    Config
	cron   *cron.Cron

	wg     sync.WaitGroup
	cancel context.CancelFunc
}

// NewScheduler creates a new scheduler, the schedule is validated here
func NewScheduler(syncer Syncer, cfg Config) (*Scheduler, error) {
	if cfg.Schedule == "" {
		cfg.Schedule = "@every 6h"
	}
	if _, err := cron.ParseStandard(cfg.Schedule); err != nil {
		return nil, fmt.Errorf("invalid sync schedule %q: %w", cfg.Schedule, err)
	}
	logger := cronLogger{}
	return &Scheduler{
		syncer: syncer,
		cfg:    cfg,
		cron:   cron.New(cron.WithLogger(logger), cron.WithChain(cron.Recover(logger), cron.SkipIfStillRunning(logger))),
	}, nil
}

// Start schedules sync passes, they run with ctx until Stop
func (s *Scheduler) Start(ctx context.Context) error {
	ctx, s.cancel = context.WithCancel(ctx)
	if _, err := s.cron.AddFunc(s.cfg.Schedule, func() { s.run(ctx) }); err != nil {
		s.cancel()
		return fmt.Errorf("schedule sync: %w", err)
	}
	s.cron.Start()

	if s.cfg.RunOnStart {
		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			s.run(ctx)
		}()
	}
	log.Printf("[INFO] scheduler started, sync schedule %q", s.cfg.Schedule)
	return nil
}

// Stop cancels running passes and waits for them to finish
func (s *Scheduler) Stop() {
	log.Printf("[INFO] stopping scheduler...")
	if s.cancel != nil {
		s.cancel()
	}
	<-s.cron.Stop().Done()
	s.wg.Wait()
	log.Printf("[INFO] scheduler stopped")
}

func (s *Scheduler) run(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}
	log.Printf("[INFO] scheduled sync started")
	res, err := s.syncer.SyncAll(ctx)
	if err != nil {
		log.Printf("[WARN] scheduled sync failed: %v", err)
		return
	}
	log.Printf("[INFO] scheduled sync done: %d sources, %d new events, %d failed", res.Sources, res.Persisted, res.Failed)
}

// cronLogger routes cron's own messages to lgr
type cronLogger struct{}

func (cronLogger) Info(msg string, keysAndValues ...any) {
	log.Printf("[DEBUG] cron %s %v", msg, keysAndValues)
}

func (cronLogger) Error(err error, msg string, keysAndValues ...any) {
	log.Printf("[WARN] cron %s: %v %v", msg, err, keysAndValues)
}

package sync

import (
	"context"
	"errors"
	"fmt"
	"time"

	"ge-sync/core/lock"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Scheduler runs unified syncs for the configured locations on a cron schedule.
type Scheduler struct {
	cron         *cron.Cron
	orchestrator *Orchestrator
	locker       lock.Locker
	companyID    string
	locations    []string
	timeout      time.Duration
	logger       *zap.Logger
}

// NewScheduler validates spec and registers the job. Ticks that fire while the previous
// one is still running are skipped.
func NewScheduler(spec string, orchestrator *Orchestrator, locker lock.Locker, companyID string, locations []string, timeout time.Duration, logger *zap.Logger) (*Scheduler, error) {
	cl := cronLogger{logger.Sugar()}
	s := &Scheduler{
		cron:         cron.New(cron.WithLogger(cl), cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl))),
		orchestrator: orchestrator,
		locker:       locker,
		companyID:    companyID,
		locations:    locations,
		timeout:      timeout,
		logger:       logger,
	}

	if _, err := s.cron.AddFunc(spec, s.tick); err != nil {
		return nil, fmt.Errorf("invalid sync schedule %q: %w", spec, err)
	}
	return s, nil
}

// Start begins firing the schedule in the background.
func (s *Scheduler) Start() {
	s.logger.Info("Sync scheduler started", zap.Strings("locations", s.locations))
	s.cron.Start()
}

// Stop stops the schedule. The returned context is done once a running tick finishes.
func (s *Scheduler) Stop() context.Context {
	return s.cron.Stop()
}

func (s *Scheduler) tick() {
	ctx := context.Background()
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}
	s.RunOnce(ctx)
}

// RunOnce syncs every location in sequence. Locations whose lock is held elsewhere
// are skipped until the next tick.
func (s *Scheduler) RunOnce(ctx context.Context) []*RunResult {
	var results []*RunResult

	for _, loc := range s.locations {
		l := s.logger.With(zap.String("location", loc))

		req := Request{CompanyID: s.companyID, LocationID: loc, Trigger: "cron"}

		release, err := s.orchestrator.Syncer().Lock(ctx, s.locker, AllUnits, req)
		if errors.Is(err, ErrLocked) {
			l.Info("Scheduled sync skipped, location is locked")
			continue
		}
		if err != nil {
			l.Error("Scheduled sync could not take lock", zap.Error(err))
			continue
		}

		res := s.orchestrator.SyncAll(ctx, req)
		release()

		if !res.Success {
			l.Warn("Scheduled sync finished with errors", zap.String("error", res.Error))
		}
		results = append(results, res)
	}

	return results
}

// cronLogger adapts zap to cron.Logger.
type cronLogger struct {
	s *zap.SugaredLogger
}

func (c cronLogger) Info(msg string, keysAndValues ...interface{}) {
	c.s.Debugw(msg, keysAndValues...)
}

func (c cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	c.s.Errorw(msg, append(keysAndValues, "error", err)...)
}

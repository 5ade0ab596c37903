// Package maintenance runs periodic housekeeping jobs against the store.
package maintenance

import (
	"context"
	"fmt"
	"time"

	"github.com/latoulicious/adventour/pkg/config"
	"github.com/latoulicious/adventour/pkg/logging"
	"github.com/robfig/cron/v3"
)

// pruneTimeout bounds a single prune run
const pruneTimeout = 5 * time.Minute

// LogPruner deletes persisted log rows older than a cutoff
type LogPruner interface {
	Prune(ctx context.Context, before time.Time) (int64, error)
}

// Scheduler runs the log pruning job on a cron schedule
type Scheduler struct {
	cron      *cron.Cron
	entry     cron.EntryID
	pruner    LogPruner
	retention time.Duration
	logger    logging.Logger
	now       func() time.Time
}

// NewScheduler registers the prune job described by cfg. The job does not
// run until Start is called.
func NewScheduler(pruner LogPruner, cfg config.MaintenanceConfig, logger logging.Logger) (*Scheduler, error) {
	if cfg.LogRetention <= 0 {
		return nil, fmt.Errorf("log retention must be positive, got %v", cfg.LogRetention)
	}

	adapter := cronLogger{logger: logger}
	s := &Scheduler{
		cron: cron.New(cron.WithChain(
			cron.Recover(adapter),
			cron.SkipIfStillRunning(adapter),
		)),
		pruner:    pruner,
		retention: cfg.LogRetention,
		logger:    logger,
		now:       time.Now,
	}

	entry, err := s.cron.AddFunc(cfg.PruneSchedule, s.runPrune)
	if err != nil {
		return nil, fmt.Errorf("invalid prune schedule %q: %w", cfg.PruneSchedule, err)
	}
	s.entry = entry

	return s, nil
}

// Start begins running scheduled jobs in the background
func (s *Scheduler) Start() {
	s.cron.Start()
	s.logger.Info("Maintenance scheduler started", map[string]interface{}{
		"next_prune": s.Next(),
		"retention":  s.retention.String(),
	})
}

// Stop halts the scheduler and waits for a running job to finish
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	s.logger.Info("Maintenance scheduler stopped", nil)
}

// Next reports when the prune job runs next. It is zero before Start.
func (s *Scheduler) Next() time.Time {
	return s.cron.Entry(s.entry).Next
}

// PruneLogs deletes log rows older than the retention window
func (s *Scheduler) PruneLogs(ctx context.Context) (int64, error) {
	cutoff := s.now().Add(-s.retention)
	removed, err := s.pruner.Prune(ctx, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to prune logs: %w", err)
	}

	s.logger.Info("Pruned application logs", map[string]interface{}{
		"removed": removed,
		"cutoff":  cutoff,
	})
	return removed, nil
}

func (s *Scheduler) runPrune() {
	ctx, cancel := context.WithTimeout(context.Background(), pruneTimeout)
	defer cancel()

	if _, err := s.PruneLogs(ctx); err != nil {
		s.logger.Error("Scheduled log prune failed", err, nil)
	}
}

// cronLogger routes cron's own messages through the application logger
type cronLogger struct {
	logger logging.Logger
}

func (c cronLogger) Info(msg string, keysAndValues ...interface{}) {
	c.logger.Debug(msg, pairs(keysAndValues))
}

func (c cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	c.logger.Error(msg, err, pairs(keysAndValues))
}

func pairs(keysAndValues []interface{}) map[string]interface{} {
	fields := make(map[string]interface{}, len(keysAndValues)/2)
	for i := 0; i+1 < len(keysAndValues); i += 2 {
		fields[fmt.Sprint(keysAndValues[i])] = keysAndValues[i+1]
	}
	return fields
}

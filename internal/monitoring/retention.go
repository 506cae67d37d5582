package monitoring

import (
	"fmt"
	"time"

	"github.com/isdelr/issue-tracker-be/internal/services"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
)

// RetentionSweeper prunes audit log entries past their retention window on
// a cron schedule.
type RetentionSweeper struct {
	audit     services.AuditServiceProvider
	schedule  cron.Schedule
	retention time.Duration
	ticker    *time.Ticker
	done      chan bool
	nextRun   time.Time
}

// NewRetentionSweeper creates a sweeper that keeps retentionDays of audit
// history, running at the times described by the standard cron expression.
func NewRetentionSweeper(audit services.AuditServiceProvider, cronSpec string, retentionDays int) (*RetentionSweeper, error) {
	schedule, err := cron.ParseStandard(cronSpec)
	if err != nil {
		return nil, fmt.Errorf("invalid sweep schedule %q: %w", cronSpec, err)
	}
	if retentionDays <= 0 {
		return nil, fmt.Errorf("retention must be at least one day, got %d", retentionDays)
	}
	return &RetentionSweeper{
		audit:     audit,
		schedule:  schedule,
		retention: time.Duration(retentionDays) * 24 * time.Hour,
		done:      make(chan bool),
	}, nil
}

// Run starts the sweeper's ticking loop.
func (s *RetentionSweeper) Run() {
	log.Info().Msg("Starting audit retention sweeper...")
	s.nextRun = s.schedule.Next(time.Now())
	s.ticker = time.NewTicker(1 * time.Minute)
	defer s.ticker.Stop()

	for {
		select {
		case <-s.done:
			log.Info().Msg("Stopping audit retention sweeper.")
			return
		case <-s.ticker.C:
			now := time.Now()
			if now.After(s.nextRun) {
				s.sweep(now)
				s.nextRun = s.schedule.Next(now)
			}
		}
	}
}

// Stop halts the sweeper.
func (s *RetentionSweeper) Stop() {
	s.done <- true
}

// sweep prunes everything older than the retention window.
func (s *RetentionSweeper) sweep(now time.Time) {
	cutoff := now.Add(-s.retention)
	pruned, err := s.audit.PruneBefore(cutoff)
	if err != nil {
		log.Error().Err(err).Msg("Audit retention sweep failed")
		return
	}
	if pruned > 0 {
		log.Info().Int64("pruned", pruned).Time("cutoff", cutoff).Msg("Pruned expired audit log entries")
	}
}

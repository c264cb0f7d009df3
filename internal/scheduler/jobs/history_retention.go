// Package jobs holds the scheduled maintenance jobs.
package jobs

import (
	"context"
	"time"

	"github.com/wonny/tickerscan/internal/history"
	"github.com/wonny/tickerscan/pkg/logger"
)

// HistoryRetentionJob deletes persisted scans past the retention window.
type HistoryRetentionJob struct {
	repo      *history.Repository
	retention time.Duration
	logger    *logger.Logger
}

// NewHistoryRetentionJob creates a new retention job.
func NewHistoryRetentionJob(repo *history.Repository, retention time.Duration, log *logger.Logger) *HistoryRetentionJob {
	return &HistoryRetentionJob{
		repo:      repo,
		retention: retention,
		logger:    log,
	}
}

// Name returns the job name
func (j *HistoryRetentionJob) Name() string {
	return "history_retention"
}

// Schedule returns the cron schedule (every day at 4 AM)
func (j *HistoryRetentionJob) Schedule() string {
	return "0 0 4 * * *"
}

// Run deletes scans older than the retention window.
func (j *HistoryRetentionJob) Run(ctx context.Context) error {
	cutoff := time.Now().Add(-j.retention)

	deleted, err := j.repo.DeleteOlderThan(ctx, cutoff)
	if err != nil {
		return err
	}

	if deleted > 0 {
		j.logger.WithFields(map[string]interface{}{
			"deleted": deleted,
			"cutoff":  cutoff.Format("2006-01-02"),
		}).Info("History retention completed")
	}

	return nil
}

package jobs

import (
	"context"
	"fmt"

	"github.com/wonny/tickerscan/internal/dictionary"
	"github.com/wonny/tickerscan/internal/external/nasdaq"
	"github.com/wonny/tickerscan/pkg/logger"
)

// DictionarySyncJob refreshes the ticker dictionary file from the Nasdaq
// symbol directory. The running engine keeps its in-memory dictionary; the
// refreshed file is picked up on the next start.
type DictionarySyncJob struct {
	client *nasdaq.Client
	path   string
	logger *logger.Logger
}

// NewDictionarySyncJob creates a new dictionary sync job.
func NewDictionarySyncJob(client *nasdaq.Client, path string, log *logger.Logger) *DictionarySyncJob {
	return &DictionarySyncJob{
		client: client,
		path:   path,
		logger: log,
	}
}

// Name returns the job name
func (j *DictionarySyncJob) Name() string {
	return "dictionary_sync"
}

// Schedule returns the cron schedule (every day at 6 AM, after the
// directory files are republished)
func (j *DictionarySyncJob) Schedule() string {
	return "0 0 6 * * *"
}

// Run downloads the symbol directory and rewrites the dictionary file.
func (j *DictionarySyncJob) Run(ctx context.Context) error {
	entries, err := j.client.FetchEntries(ctx)
	if err != nil {
		return fmt.Errorf("dictionary sync: %w", err)
	}
	if len(entries) == 0 {
		return fmt.Errorf("dictionary sync: upstream returned no entries")
	}

	if err := dictionary.WriteFile(j.path, entries); err != nil {
		return fmt.Errorf("dictionary sync: %w", err)
	}

	j.logger.WithFields(map[string]interface{}{
		"symbols": len(entries),
		"path":    j.path,
	}).Info("Dictionary synced")

	return nil
}

package jobs

import (
	"fmt"
	"log/slog"

	"platetrack/internal/core/application/usecases/queries"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	solventStatusJob *SolventStatusJob
}

// NewJobManager creates a new job manager with all required jobs.
func NewJobManager(
	getSolventStatusHandler queries.GetSolventStatusQueryHandler,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		solventStatusJob: NewSolventStatusJob(getSolventStatusHandler, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.solventStatusJob.Start(); err != nil {
		return fmt.Errorf("failed to start solvent status job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.solventStatusJob.Stop()
}

// Package jobs provides scheduled background tasks for the workflow service.
//
// Jobs are cron-based (github.com/robfig/cron/v3) and managed through
// JobManager, which starts and stops them as a unit:
//
//	jobManager := jobs.NewJobManager(getSolventStatusHandler, logger)
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// # Available Jobs
//
// SolventStatusJob runs every 30 seconds, reads the solvent ledger snapshot
// and logs it. Overdrawn stock and fill levels below the reorder threshold
// are escalated to warnings.
package jobs

package jobs

import (
	"context"
	"log/slog"

	"platetrack/internal/core/application/usecases/queries"

	"github.com/robfig/cron/v3"
)

// lowFillThresholdPercent is the fill level below which the job escalates its
// log to a warning so operators reorder solvent in time.
const lowFillThresholdPercent = 15.0

// SolventStatusJob periodically reads the solvent ledger status and logs a
// snapshot. Overdrawn stock and low fill levels are logged as warnings.
type SolventStatusJob struct {
	handler queries.GetSolventStatusQueryHandler
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewSolventStatusJob creates the periodic ledger status job.
// Uses GetSolventStatusQueryHandler for the read; runs every 30 seconds.
func NewSolventStatusJob(handler queries.GetSolventStatusQueryHandler, logger *slog.Logger) *SolventStatusJob {
	return &SolventStatusJob{
		handler: handler,
		cron:    cron.New(cron.WithSeconds()),
		logger:  logger.With("component", "solvent_status_job"),
	}
}

// Start begins the status job to run every 30 seconds.
func (j *SolventStatusJob) Start() error {
	_, err := j.cron.AddFunc("*/30 * * * * *", func() {
		ctx := context.Background()
		query := queries.NewGetSolventStatusQuery()

		status, err := j.handler.Handle(ctx, query)
		if err != nil {
			j.logger.ErrorContext(ctx, "Solvent status job failed", "error", err)
			return
		}

		attrs := []any{
			"currentLiters", status.CurrentLiters,
			"totalBarrels", status.TotalBarrels,
			"fillPercentage", status.Metrics.FillPercentage,
		}

		switch {
		case status.CurrentLiters < 0:
			j.logger.WarnContext(ctx, "Solvent stock is overdrawn", attrs...)
		case status.Metrics.FillPercentage < lowFillThresholdPercent:
			j.logger.WarnContext(ctx, "Solvent stock is low", attrs...)
		default:
			j.logger.InfoContext(ctx, "Solvent status", attrs...)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Solvent status job started (running every 30 seconds)")
	return nil
}

// Stop stops the status job.
func (j *SolventStatusJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Solvent status job stopped")
}

package jobs

import (
	"context"
	"log/slog"
	"time"

	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/pkg/errs"

	"github.com/robfig/cron/v3"
)

// DefaultSweepSchedule runs the sweep at the top of every minute.
const DefaultSweepSchedule = "0 * * * * *"

type SweepBidsHandler interface {
	Handle(ctx context.Context, command commands.SweepBidsCommand) (commands.SweepBidsResult, error)
}

// BidSweepJob periodically expires stale bids and rejects bids on sold lots.
type BidSweepJob struct {
	handler   SweepBidsHandler
	schedule  string
	ttl       time.Duration
	batchSize int
	cron      *cron.Cron
	logger    *slog.Logger
}

func NewBidSweepJob(handler SweepBidsHandler, schedule string, ttl time.Duration, batchSize int, logger *slog.Logger) *BidSweepJob {
	if schedule == "" {
		schedule = DefaultSweepSchedule
	}

	return &BidSweepJob{
		handler:   handler,
		schedule:  schedule,
		ttl:       ttl,
		batchSize: batchSize,
		cron:      cron.New(cron.WithSeconds(), cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		logger:    logger.With("component", "bid_sweep_job"),
	}
}

// Start registers the sweep on its schedule. A malformed schedule or a
// non-positive ttl fails here rather than on the first tick.
func (j *BidSweepJob) Start() error {
	if _, err := commands.NewSweepBidsCommand(j.ttl, j.batchSize); err != nil {
		return err
	}

	if _, err := j.cron.AddFunc(j.schedule, func() { j.run(context.Background()) }); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Bid sweep job started", "schedule", j.schedule, "ttl", j.ttl)
	return nil
}

// Stop halts the schedule and waits for a running sweep to finish.
func (j *BidSweepJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Bid sweep job stopped")
}

func (j *BidSweepJob) run(ctx context.Context) {
	cmd, err := commands.NewSweepBidsCommand(j.ttl, j.batchSize)
	if err != nil {
		j.logger.ErrorContext(ctx, "Bid sweep job misconfigured", "error", err)
		return
	}

	result, err := j.handler.Handle(ctx, cmd)
	if err != nil {
		// A bid accepted mid-sweep rolls the batch back; the next tick retries.
		if errs.IsRetryable(err) {
			j.logger.WarnContext(ctx, "Bid sweep lost a race, retrying next run", "error", err)
			return
		}
		j.logger.ErrorContext(ctx, "Bid sweep job failed", "error", err)
		return
	}

	if result.Expired+result.Rejected > 0 {
		j.logger.InfoContext(ctx, "Bids swept", "expired", result.Expired, "rejected", result.Rejected)
	}
}

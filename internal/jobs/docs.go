// Package jobs runs the coordinator's periodic work on github.com/robfig/cron/v3
// schedules with second precision.
//
// BidSweepJob expires pending bids older than the bid time to live and rejects
// pending bids whose lot has already been sold. Overlapping ticks are skipped,
// so a slow sweep never runs twice at once.
//
// Usage:
//
//	sweep := jobs.NewBidSweepJob(sweepHandler, "0 * * * * *", 24*time.Hour, 0, logger)
//	manager := jobs.NewJobManager(sweep)
//	if err := manager.StartAll(); err != nil {
//		log.Fatal(err)
//	}
//	defer manager.StopAll()
package jobs

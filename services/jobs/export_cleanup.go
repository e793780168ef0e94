package jobs

import (
	"context"
	"log"
	"time"

	"datasheet_studio_go/services"

	"github.com/robfig/cron/v3"
)

// ExportCleanupSchedule runs the retention purge once a day at midnight
const ExportCleanupSchedule = "@daily"

// StartScheduler registers the export retention job and starts the cron runner.
// The caller stops it with the returned cron's Stop.
func StartScheduler(archive *services.ExportArchive, retentionDays int) (*cron.Cron, error) {
	c := cron.New()

	_, err := c.AddFunc(ExportCleanupSchedule, func() {
		log.Println("[CRON] Purging expired datasheet exports...")
		PurgeExpiredExports(context.Background(), archive, retentionDays, time.Now())
	})
	if err != nil {
		return nil, err
	}

	c.Start()
	log.Printf("[CRON] Scheduler started (export retention: %d days)", retentionDays)
	return c, nil
}

// PurgeExpiredExports deletes exports older than retentionDays. A non-positive
// retention keeps everything.
func PurgeExpiredExports(ctx context.Context, archive *services.ExportArchive, retentionDays int, now time.Time) int {
	if retentionDays <= 0 {
		log.Println("[CRON] Export retention disabled, nothing purged")
		return 0
	}

	cutoff := now.AddDate(0, 0, -retentionDays)
	purged, err := archive.PurgeOlderThan(ctx, cutoff)
	if err != nil {
		log.Printf("[CRON] Error purging exports: %v", err)
		return purged
	}

	log.Printf("[CRON] Purged %d exports created before %s", purged, cutoff.Format(time.RFC3339))
	return purged
}

package cleanupworker

import (
	"context"
	"time"

	"carelink-backend/config"
	filestorage "carelink-backend/lib/file-storage"
	baseworker "carelink-backend/lib/utils/base-worker"
	"carelink-backend/lib/utils/helpers"

	log "github.com/sirupsen/logrus"
)

// StartWorker sweeps orphaned uploads: objects whose locator row is no longer
// referenced by the owning application. Orphans are an accepted outcome of a
// submission failing between upload and record write.
func StartWorker(ctx context.Context) {
	worker := baseworker.NewInstance(
		"file_cleanup",
		time.Minute,
		time.Minute*time.Duration(config.Conf.Cleanup.RunIntervalMin),
	)
	go worker.Run(ctx, job)
}

func job(ctx context.Context) {
	logger := log.WithField("worker_name", "file_cleanup")
	orphans, err := filestorage.Instance.ListOrphans(config.Conf.Cleanup.GracePeriodHour)
	if err != nil {
		logger.WithError(err).Error("orphan listing failed")
		return
	}
	for _, rec := range orphans {
		if helpers.IsContextDone(ctx) {
			return
		}
		if err := filestorage.Instance.DeleteFile(ctx, rec); err != nil {
			logger.
				WithError(err).
				WithField("file_id", rec.ID).
				Error("orphan delete failed")
			continue
		}
		logger.WithField("file_id", rec.ID).Info("orphaned upload removed")
	}
}

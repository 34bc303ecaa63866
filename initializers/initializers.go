package initializers

import (
	"context"

	"carelink-backend/config"
	"carelink-backend/fiberlog"
	"carelink-backend/lib/applications"
	"carelink-backend/lib/auth"
	xlsexport "carelink-backend/lib/export/xls"
	filestorage "carelink-backend/lib/file-storage"
	cleanupworker "carelink-backend/lib/file-storage/cleanup-worker"
	"carelink-backend/lib/notification"

	log "github.com/sirupsen/logrus"
)

var LoggerConfig *fiberlog.Config

func InitAllServices(ctx context.Context) {
	LoggerConfig = InitLogger()
	config.InitConfig()
	InitDBConnection()
	InitS3()
	InitSmtp()
	notification.NewHandler(
		config.Conf.Mail.Host,
		config.Conf.Mail.Port,
		config.Conf.Mail.ApiKey,
		config.Conf.Mail.SenderEmail,
		config.Conf.Mail.SenderName,
	)
	filestorage.NewHandler()
	if err := filestorage.Instance.EnsureBucket(ctx); err != nil {
		log.WithError(err).Error("bucket check failed")
	}
	auth.NewHandler()
	applications.NewHandler()
	xlsexport.NewHandler()
	go initWorkers(ctx)
}

func initWorkers(ctx context.Context) {
	// Orphaned-upload sweep, see lib/file-storage/cleanup-worker.
	cleanupworker.StartWorker(ctx)
}

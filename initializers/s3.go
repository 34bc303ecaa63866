package initializers

import (
	"context"

	"carelink-backend/config"
	s3client "carelink-backend/s3"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	log "github.com/sirupsen/logrus"
)

func InitS3() {
	minioClient, err := minio.New(config.Conf.S3.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(config.Conf.S3.AccessKeyID, config.Conf.S3.SecretAccessKey, ""),
		Secure: *config.Conf.S3.UseSSL,
	})
	if err != nil {
		log.WithError(err).Error("S3 client initialization failed")
		return
	}

	_, err = minioClient.ListBuckets(context.Background())
	if err != nil {
		log.WithError(err).Error("S3 connection check failed, ListBuckets returned an error")
	}

	s3client.Client = minioClient
	log.Info("S3 client initialized")
}

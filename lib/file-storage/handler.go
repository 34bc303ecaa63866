package filestorage

import (
	"context"

	"carelink-backend/config"
	"carelink-backend/db"
	filesdbstorage "carelink-backend/lib/file-storage/store"
	s3client "carelink-backend/s3"
	dbmodels "carelink-backend/models/db"
)

// Provider is the object-storage boundary. Callers receive locators
// (FileStorage row ids) only; bytes never pass through the application record.
type Provider interface {
	Upload(ctx context.Context, info dbmodels.UploadFileInfo, body []byte) (fileID string, err error)
	GetFile(ctx context.Context, fileID string) (rec dbmodels.FileStorage, body []byte, err error)
	ListByApplication(applicationID string) (list []dbmodels.FileStorage, err error)
	DeleteFile(ctx context.Context, rec dbmodels.FileStorage) error
	ListOrphans(graceHours int) (list []dbmodels.FileStorage, err error)
	EnsureBucket(ctx context.Context) error
}

var Instance Provider

func NewHandler() {
	Instance = &impl{
		s3client:   s3client.Client,
		bucketName: config.Conf.S3.BucketName,
		store:      filesdbstorage.NewInstance(db.DB),
	}
}

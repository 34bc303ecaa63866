package filestorage

import (
	"bytes"
	"context"
	"fmt"
	"io"

	dbmodels "carelink-backend/models/db"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/pkg/errors"
	filesdbstorage "carelink-backend/lib/file-storage/store"
)

type impl struct {
	s3client   *minio.Client
	bucketName string
	store      filesdbstorage.Provider
}

// Upload writes the object first and the locator row second, so a row never
// points at a missing object. A failure between the two leaves an orphaned
// object for the cleanup worker.
func (i impl) Upload(ctx context.Context, info dbmodels.UploadFileInfo, body []byte) (string, error) {
	if !info.FileType.IsValid() {
		return "", errors.Errorf("unknown file type: %v", info.FileType)
	}
	contentType := info.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	objectKey := i.getObjectKey(info.ApplicationID, info.FileType)
	_, err := i.s3client.PutObject(ctx, i.bucketName, objectKey,
		bytes.NewReader(body), int64(len(body)),
		minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return "", errors.Wrap(err, "object upload failed")
	}
	rec := dbmodels.FileStorage{
		Name:          info.FileName,
		ApplicationID: info.ApplicationID,
		Type:          info.FileType,
		ContentType:   contentType,
		ObjectKey:     objectKey,
	}
	fileID, err := i.store.SaveFile(rec)
	if err != nil {
		return "", errors.Wrap(err, "file record save failed")
	}
	return fileID, nil
}

func (i impl) GetFile(ctx context.Context, fileID string) (dbmodels.FileStorage, []byte, error) {
	rec, err := i.store.GetByID(fileID)
	if err != nil {
		return dbmodels.FileStorage{}, nil, err
	}
	if rec == nil {
		return dbmodels.FileStorage{}, nil, errors.New("file not found")
	}
	object, err := i.s3client.GetObject(ctx, i.bucketName, rec.ObjectKey, minio.GetObjectOptions{})
	if err != nil {
		return dbmodels.FileStorage{}, nil, errors.Wrap(err, "object read failed")
	}
	defer object.Close()
	body, err := io.ReadAll(object)
	if err != nil {
		return dbmodels.FileStorage{}, nil, errors.Wrap(err, "object read failed")
	}
	return *rec, body, nil
}

func (i impl) ListByApplication(applicationID string) ([]dbmodels.FileStorage, error) {
	return i.store.GetListByApplication(applicationID)
}

func (i impl) ListOrphans(graceHours int) ([]dbmodels.FileStorage, error) {
	return i.store.GetOrphans(graceHours)
}

// DeleteFile removes the row first so readers stop resolving the locator
// before the object disappears.
func (i impl) DeleteFile(ctx context.Context, rec dbmodels.FileStorage) error {
	if err := i.store.Delete(rec.ID); err != nil {
		return err
	}
	err := i.s3client.RemoveObject(ctx, i.bucketName, rec.ObjectKey, minio.RemoveObjectOptions{})
	if err != nil {
		return errors.Wrap(err, "object remove failed")
	}
	return nil
}

func (i impl) EnsureBucket(ctx context.Context) error {
	exists, err := i.s3client.BucketExists(ctx, i.bucketName)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}
	return i.s3client.MakeBucket(ctx, i.bucketName, minio.MakeBucketOptions{Region: "us-east-1"})
}

func (i impl) getObjectKey(applicationID string, fileType dbmodels.FileType) string {
	return fmt.Sprintf("applications/%s/%s/%s", applicationID, fileType, uuid.NewString())
}

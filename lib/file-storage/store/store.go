package filesdbstorage

import (
	"fmt"

	dbmodels "carelink-backend/models/db"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type Provider interface {
	SaveFile(rec dbmodels.FileStorage) (id string, err error)
	GetByID(id string) (rec *dbmodels.FileStorage, err error)
	GetListByApplication(applicationID string) (list []dbmodels.FileStorage, err error)
	GetOrphans(graceHours int) (list []dbmodels.FileStorage, err error)
	Delete(id string) error
}

func NewInstance(db *gorm.DB) Provider {
	return &impl{db: db}
}

type impl struct {
	db *gorm.DB
}

func (i impl) SaveFile(rec dbmodels.FileStorage) (id string, err error) {
	err = i.db.Save(&rec).Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) GetByID(id string) (*dbmodels.FileStorage, error) {
	rec := dbmodels.FileStorage{}
	err := i.db.
		Model(&dbmodels.FileStorage{}).
		Where("id = ?", id).
		First(&rec).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}

func (i impl) GetListByApplication(applicationID string) (list []dbmodels.FileStorage, err error) {
	err = i.db.
		Model(&dbmodels.FileStorage{}).
		Where("application_id = ?", applicationID).
		Find(&list).
		Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	return list, nil
}

// GetOrphans returns CV/video rows past the grace period whose application no
// longer references them through its locator columns, plus rows whose
// application vanished. Certification rows are referenced by listing only and
// are never orphans.
func (i impl) GetOrphans(graceHours int) (list []dbmodels.FileStorage, err error) {
	err = i.db.
		Model(&dbmodels.FileStorage{}).
		Where(fmt.Sprintf("file_storages.created_at < now() - interval '%d hours'", graceHours)).
		Where("file_storages.type in ?", []dbmodels.FileType{dbmodels.ApplicationCV, dbmodels.ApplicationVideo}).
		Where("not exists (select 1 from applications a where a.id = file_storages.application_id and (a.cv_file_id = file_storages.id or a.video_file_id = file_storages.id))").
		Find(&list).
		Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	return list, nil
}

func (i impl) Delete(id string) error {
	return i.db.
		Where("id = ?", id).
		Delete(&dbmodels.FileStorage{}).
		Error
}

package applicationstore

import (
	"strings"

	"carelink-backend/models"
	dbmodels "carelink-backend/models/db"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Provider interface {
	Create(rec dbmodels.Application) (id string, err error)
	Update(id string, updMap map[string]interface{}) error
	GetByID(id string) (rec *dbmodels.ApplicationExt, err error)
	GetByUserID(userID string) (rec *dbmodels.Application, err error)
	List(filter dbmodels.ApplicationFilter, page, limit int) (list []dbmodels.ApplicationExt, rowCount int64, err error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.Application) (id string, err error) {
	err = i.db.Omit(clause.Associations).
		Save(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) Update(id string, updMap map[string]interface{}) error {
	if len(updMap) == 0 {
		return nil
	}
	tx := i.db.
		Model(&dbmodels.Application{}).
		Where("id = ?", id).
		Updates(updMap)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return errors.New("application not found")
	}
	return nil
}

func (i impl) GetByID(id string) (*dbmodels.ApplicationExt, error) {
	rec := dbmodels.ApplicationExt{}
	err := i.db.
		Select("applications.*, u.first_name as user_first_name, u.last_name as user_last_name, u.email as user_email").
		Model(&dbmodels.Application{}).
		Joins("left join users as u on user_id = u.id").
		Where("applications.id = ?", id).
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

func (i impl) GetByUserID(userID string) (*dbmodels.Application, error) {
	rec := dbmodels.Application{}
	err := i.db.
		Model(&dbmodels.Application{}).
		Where("user_id = ?", userID).
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

func (i impl) List(filter dbmodels.ApplicationFilter, page, limit int) (list []dbmodels.ApplicationExt, rowCount int64, err error) {
	list = []dbmodels.ApplicationExt{}
	tx := i.db.
		Select("applications.*, u.first_name as user_first_name, u.last_name as user_last_name, u.email as user_email").
		Model(&dbmodels.Application{}).
		Joins("left join users as u on user_id = u.id")
	i.addFilter(tx, filter)
	err = tx.Count(&rowCount).Error
	if err != nil {
		return nil, 0, err
	}
	err = tx.
		Order("applications.created_at desc").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&list).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return list, 0, nil
		}
		return nil, 0, err
	}
	return list, rowCount, nil
}

func (i impl) addFilter(tx *gorm.DB, filter dbmodels.ApplicationFilter) {
	if filter.Status != "" {
		tx.Where("applications.status = ?", filter.Status)
	}
	if filter.StageStatus != "" {
		i.addStageFilter(tx, filter.StageStatus)
	}
	if filter.Search != "" {
		searchValue := "%" + strings.ToLower(filter.Search) + "%"
		tx.Where("LOWER(CONCAT(u.last_name,' ', u.first_name)) like ? or u.email like ? or preferred_work_location like ?",
			searchValue, searchValue, searchValue)
	}
}

// addStageFilter inverts the stage-status projection into status/step predicates.
func (i impl) addStageFilter(tx *gorm.DB, stage models.StageStatus) {
	switch stage {
	case models.StageStatusDraft:
		tx.Where("applications.status = ? and application_step < ?", models.ApplicationStatusPending, models.FinalApplicationStep)
	case models.StageStatusPendingReview:
		tx.Where("(applications.status = ? and application_step >= ?) or applications.status = ?",
			models.ApplicationStatusPending, models.FinalApplicationStep, models.ApplicationStatusUnderReview)
	case models.StageStatusInAssessment:
		tx.Where("applications.status in ?", []models.ApplicationStatus{
			models.ApplicationStatusInterview,
			models.ApplicationStatusTraining,
			models.ApplicationStatusInternship,
		})
	case models.StageStatusApproved:
		tx.Where("applications.status = ?", models.ApplicationStatusHired)
	case models.StageStatusRejected:
		tx.Where("applications.status = ?", models.ApplicationStatusRejected)
	}
}

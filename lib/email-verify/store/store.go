package emailverifystore

import (
	"time"

	dbmodels "carelink-backend/models/db"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type Provider interface {
	Create(verifyData dbmodels.EmailVerify) error
	GetByCode(code string) (*dbmodels.EmailVerify, error)
	ExistActive(email string) (bool, error)
	UpdateByCode(code string, updMap map[string]interface{}) error
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(verifyData dbmodels.EmailVerify) error {
	return i.db.
		Save(&verifyData).
		Error
}

func (i impl) GetByCode(code string) (*dbmodels.EmailVerify, error) {
	rec := dbmodels.EmailVerify{}
	err := i.db.
		Where("code = ?", code).
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

// ExistActive reports an unexpired, unused code for the address.
func (i impl) ExistActive(email string) (bool, error) {
	err := i.db.
		Where("email = ?", email).
		Where("date_expires > ?", time.Now()).
		Where("date_used < ?", time.Now().AddDate(-50, 0, 0)).
		First(&dbmodels.EmailVerify{}).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (i impl) UpdateByCode(code string, updMap map[string]interface{}) error {
	return i.db.
		Model(&dbmodels.EmailVerify{}).
		Where("code = ?", code).
		Updates(updMap).
		Error
}

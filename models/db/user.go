package dbmodels

import (
	"carelink-backend/models"
)

type User struct {
	BaseModel
	Email           string          `gorm:"type:varchar(255);uniqueIndex"`
	Password        string          `gorm:"type:varchar(64)"`
	FirstName       string          `gorm:"type:varchar(255)"`
	LastName        string          `gorm:"type:varchar(255)"`
	Phone           string          `gorm:"type:varchar(50)"`
	Role            models.UserRole `gorm:"type:varchar(50);index"`
	IsEmailVerified bool
}

func (u User) DisplayName() string {
	if u.FirstName == "" {
		return u.Email
	}
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}
